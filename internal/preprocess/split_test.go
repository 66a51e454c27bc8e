package preprocess

import (
	"math"
	"sort"
	"testing"

	"github.com/packagewjx/tabprep/pkg/core"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sequence(n int) *core.Table {
	ids := make([]float64, n)
	labels := make([]float64, n)
	for i := range ids {
		ids[i] = float64(i)
		labels[i] = float64(i % 2)
	}
	return core.MustNewTable(
		core.NewColumn("id", numbers(ids...)),
		core.NewColumn("label", numbers(labels...)),
	)
}

func TestSplitFeaturesLabels(t *testing.T) {
	features, labels, err := SplitFeaturesLabels(sequence(4), "label")
	require.NoError(t, err)
	assert.Equal(t, []string{"id"}, features.Names())
	assert.Equal(t, "label", labels.Name)
	assert.Equal(t, 4, labels.Len())

	/*
		joining the label back by position rebuilds the table
	*/
	joined, err := features.WithColumn(labels)
	require.NoError(t, err)
	original := sequence(4)
	assert.Equal(t, original.Names(), joined.Names())
	for i := 0; i < original.NumRows(); i++ {
		assert.Equal(t, original.Row(i), joined.Row(i))
	}

	_, _, err = SplitFeaturesLabels(sequence(4), "isFraud")
	assert.True(t, errors.Is(err, core.ErrSchema))
}

func TestTrainTestSplit(t *testing.T) {
	features, labels, err := SplitFeaturesLabels(sequence(10), "label")
	require.NoError(t, err)

	split, err := TrainTestSplit(features, labels, 0.3, WithSeed(42))
	require.NoError(t, err)
	assert.Equal(t, 3, split.TestFeatures.NumRows())
	assert.Equal(t, 7, split.TrainFeatures.NumRows())
	assert.Equal(t, 3, split.TestLabels.Len())
	assert.Equal(t, 7, split.TrainLabels.Len())

	/*
		partitions are disjoint, cover every row and keep labels aligned
	*/
	var ids []float64
	for _, part := range []struct {
		features *core.Table
		labels   *core.Column
	}{{split.TrainFeatures, split.TrainLabels}, {split.TestFeatures, split.TestLabels}} {
		got := floats(t, column(t, part.features, "id"))
		lbl := floats(t, part.labels)
		for i, id := range got {
			assert.Equal(t, math.Mod(id, 2), lbl[i])
		}
		ids = append(ids, got...)
	}
	sort.Float64s(ids)
	assert.Equal(t, []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, ids)

	/*
		the same seed gives the same split
	*/
	again, err := TrainTestSplit(features, labels, 0.3, WithSeed(42))
	require.NoError(t, err)
	assert.Equal(t, floats(t, column(t, split.TestFeatures, "id")), floats(t, column(t, again.TestFeatures, "id")))

	/*
		ceil on the test size
	*/
	split, err = TrainTestSplit(features, labels, 0.25)
	require.NoError(t, err)
	assert.Equal(t, 3, split.TestFeatures.NumRows())
}

func TestTrainTestSplitErrors(t *testing.T) {
	features, labels, err := SplitFeaturesLabels(sequence(2), "label")
	require.NoError(t, err)

	for _, f := range []float64{0, 1, -0.1, 1.5, math.NaN()} {
		_, err = TrainTestSplit(features, labels, f)
		assert.True(t, errors.Is(err, core.ErrValue), "%v", f)
	}

	/*
		an empty partition is rejected
	*/
	_, err = TrainTestSplit(features, labels, 0.9)
	assert.True(t, errors.Is(err, core.ErrValue))

	one, oneLabels, err := SplitFeaturesLabels(sequence(1), "label")
	require.NoError(t, err)
	_, err = TrainTestSplit(one, oneLabels, 0.5)
	assert.True(t, errors.Is(err, core.ErrValue))
}
