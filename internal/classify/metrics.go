package classify

import (
	"github.com/packagewjx/tabprep/pkg/core"
	"github.com/pkg/errors"
)

type Scores struct {
	Accuracy  float64 `json:"accuracy"`
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`

	TruePositive  int `json:"tp"`
	FalsePositive int `json:"fp"`
	TrueNegative  int `json:"tn"`
	FalseNegative int `json:"fn"`
}

// Metrics scores binary predictions against the true labels. Undefined ratios
// are reported as 0.
func Metrics(yTrue, yPred []float64, positive float64) (*Scores, error) {
	if len(yTrue) != len(yPred) {
		return nil, errors.Wrapf(core.ErrValue, "%d labels but %d predictions", len(yTrue), len(yPred))
	}
	if len(yTrue) == 0 {
		return nil, errors.Wrap(core.ErrValue, "nothing to score")
	}

	s := &Scores{}
	for i := range yTrue {
		actual, predicted := yTrue[i] == positive, yPred[i] == positive
		switch {
		case actual && predicted:
			s.TruePositive++
		case !actual && predicted:
			s.FalsePositive++
		case actual && !predicted:
			s.FalseNegative++
		default:
			s.TrueNegative++
		}
	}

	correct := 0
	for i := range yTrue {
		if yTrue[i] == yPred[i] {
			correct++
		}
	}
	s.Accuracy = float64(correct) / float64(len(yTrue))
	if s.TruePositive+s.FalsePositive > 0 {
		s.Precision = float64(s.TruePositive) / float64(s.TruePositive+s.FalsePositive)
	}
	if s.TruePositive+s.FalseNegative > 0 {
		s.Recall = float64(s.TruePositive) / float64(s.TruePositive+s.FalseNegative)
	}
	if s.Precision+s.Recall > 0 {
		s.F1 = 2 * s.Precision * s.Recall / (s.Precision + s.Recall)
	}
	return s, nil
}
