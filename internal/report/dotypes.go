package report

import (
	"time"

	"github.com/packagewjx/tabprep/internal/classify"
	"gorm.io/gorm"
)

type RunRecordDO struct {
	gorm.Model
	Name       string `gorm:"index;size:128"`
	StartedAt  time.Time
	DurationMs int64
	InputRows  int
	CleanRows  int
	TrainRows  int
	TestRows   int
	Features   []string `gorm:"type:text;serializer:json"`

	Accuracy      float64
	Precision     float64
	Recall        float64
	F1            float64
	TruePositive  int
	FalsePositive int
	TrueNegative  int
	FalseNegative int

	Config string `gorm:"type:text"`
}

func runToDO(r *Run) *RunRecordDO {
	return &RunRecordDO{
		Name:          r.Name,
		StartedAt:     r.StartedAt,
		DurationMs:    r.Duration.Milliseconds(),
		InputRows:     r.InputRows,
		CleanRows:     r.CleanRows,
		TrainRows:     r.TrainRows,
		TestRows:      r.TestRows,
		Features:      r.Features,
		Accuracy:      r.Scores.Accuracy,
		Precision:     r.Scores.Precision,
		Recall:        r.Scores.Recall,
		F1:            r.Scores.F1,
		TruePositive:  r.Scores.TruePositive,
		FalsePositive: r.Scores.FalsePositive,
		TrueNegative:  r.Scores.TrueNegative,
		FalseNegative: r.Scores.FalseNegative,
		Config:        r.Config,
	}
}

func doToRun(do *RunRecordDO) *Run {
	return &Run{
		ID:        do.ID,
		Name:      do.Name,
		StartedAt: do.StartedAt,
		Duration:  time.Duration(do.DurationMs) * time.Millisecond,
		InputRows: do.InputRows,
		CleanRows: do.CleanRows,
		TrainRows: do.TrainRows,
		TestRows:  do.TestRows,
		Features:  do.Features,
		Scores: classify.Scores{
			Accuracy:      do.Accuracy,
			Precision:     do.Precision,
			Recall:        do.Recall,
			F1:            do.F1,
			TruePositive:  do.TruePositive,
			FalsePositive: do.FalsePositive,
			TrueNegative:  do.TrueNegative,
			FalseNegative: do.FalseNegative,
		},
		Config: do.Config,
	}
}
