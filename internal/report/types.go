package report

import (
	"time"

	"github.com/packagewjx/tabprep/internal/classify"
)

// Run summarises one training run.
type Run struct {
	ID        uint
	Name      string
	StartedAt time.Time
	Duration  time.Duration
	InputRows int
	CleanRows int
	TrainRows int
	TestRows  int
	Features  []string
	Scores    classify.Scores
	// Config is the serialised configuration the run used.
	Config string
}
