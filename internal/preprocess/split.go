package preprocess

import (
	"math"
	"math/rand"
	"time"

	"github.com/packagewjx/tabprep/pkg/core"
	"github.com/pkg/errors"
)

// SplitFeaturesLabels separates the label column from the feature table.
func SplitFeaturesLabels(table *core.Table, label string) (*core.Table, *core.Column, error) {
	labels, err := table.MustColumn(label)
	if err != nil {
		return nil, nil, err
	}
	return table.Without(label), labels, nil
}

type Split struct {
	TrainFeatures *core.Table
	TestFeatures  *core.Table
	TrainLabels   *core.Column
	TestLabels    *core.Column
}

type splitOptions struct {
	seed    int64
	hasSeed bool
}

type SplitOption func(o *splitOptions)

// WithSeed makes the split reproducible.
func WithSeed(seed int64) SplitOption {
	return func(o *splitOptions) {
		o.seed = seed
		o.hasSeed = true
	}
}

// TrainTestSplit shuffles the rows and assigns ceil(testFraction*n) of them to
// the test partition. Feature rows and labels stay aligned.
func TrainTestSplit(features *core.Table, labels *core.Column, testFraction float64, opts ...SplitOption) (*Split, error) {
	if !(testFraction > 0 && testFraction < 1) {
		return nil, errors.Wrapf(core.ErrValue, "test fraction %v is not in (0, 1)", testFraction)
	}
	n := labels.Len()
	if features.NumCols() > 0 && features.NumRows() != n {
		return nil, errors.Wrapf(core.ErrSchema, "%d feature rows but %d labels", features.NumRows(), n)
	}
	nTest := int(math.Ceil(testFraction * float64(n)))
	nTrain := n - nTest
	if nTest == 0 || nTrain == 0 {
		return nil, errors.Wrapf(core.ErrValue, "%d rows cannot be split with test fraction %v", n, testFraction)
	}

	o := &splitOptions{}
	for _, opt := range opts {
		opt(o)
	}
	if !o.hasSeed {
		o.seed = time.Now().UnixNano()
	}
	perm := rand.New(rand.NewSource(o.seed)).Perm(n)
	testIdx, trainIdx := perm[:nTest], perm[nTest:]

	return &Split{
		TrainFeatures: features.Take(trainIdx),
		TestFeatures:  features.Take(testIdx),
		TrainLabels:   labels.Take(trainIdx),
		TestLabels:    labels.Take(testIdx),
	}, nil
}
