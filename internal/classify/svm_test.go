package classify

import (
	"math"
	"testing"

	"github.com/packagewjx/tabprep/pkg/core"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// separable returns points on both sides of x0 = 0 with a gap of 2, labelled
// neg and pos.
func separable(neg, pos float64) ([][]float64, []float64) {
	var X [][]float64
	var y []float64
	for i := 0; i < 20; i++ {
		offset := 1 + float64(i)/20
		noise := float64(i%5) * 100
		X = append(X, []float64{-offset, noise}, []float64{offset, noise})
		y = append(y, neg, pos)
	}
	return X, y
}

func TestLinearSVC(t *testing.T) {
	X, y := separable(3, 7)
	model := NewLinearSVC(42)
	require.NoError(t, model.Fit(X, y))

	pred, err := model.Predict(X)
	require.NoError(t, err)
	scores, err := Metrics(y, pred, 7)
	require.NoError(t, err)
	assert.Equal(t, 1.0, scores.Accuracy)
	for _, p := range pred {
		assert.True(t, p == 3 || p == 7)
	}
	assert.Greater(t, model.Weights()[0], 0.0)

	pred, err = model.Predict([][]float64{{-5, 0}, {5, 0}})
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 7}, pred)

	/*
		the same seed trains the same model
	*/
	again := NewLinearSVC(42)
	require.NoError(t, again.Fit(X, y))
	assert.Equal(t, model.Weights(), again.Weights())
	assert.Equal(t, model.Bias(), again.Bias())
}

func TestLinearSVCSingleClass(t *testing.T) {
	model := NewLinearSVC(1)
	require.NoError(t, model.Fit([][]float64{{1}, {2}, {3}}, []float64{0, 0, 0}))
	pred, err := model.Predict([][]float64{{-10}, {10}})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0}, pred)
}

func TestLinearSVCErrors(t *testing.T) {
	model := NewLinearSVC(1)
	_, err := model.Predict([][]float64{{1}})
	assert.True(t, errors.Is(err, core.ErrValue))

	err = model.Fit([][]float64{{1}, {2}, {3}}, []float64{0, 1, 2})
	assert.True(t, errors.Is(err, core.ErrValue))

	err = model.Fit([][]float64{{1}, {2}}, []float64{0})
	assert.True(t, errors.Is(err, core.ErrValue))

	err = model.Fit([][]float64{{1}, {math.NaN()}}, []float64{0, 1})
	assert.True(t, errors.Is(err, core.ErrValue))

	err = model.Fit([][]float64{{1, 2}, {3}}, []float64{0, 1})
	assert.True(t, errors.Is(err, core.ErrValue))

	err = model.Fit(nil, nil)
	assert.True(t, errors.Is(err, core.ErrValue))

	model.C = 0
	err = model.Fit([][]float64{{1}, {2}}, []float64{0, 1})
	assert.True(t, errors.Is(err, core.ErrValue))

	model = NewLinearSVC(1)
	require.NoError(t, model.Fit([][]float64{{1}, {2}}, []float64{0, 1}))
	_, err = model.Predict([][]float64{{1, 2}})
	assert.True(t, errors.Is(err, core.ErrValue))
}

func TestMetrics(t *testing.T) {
	scores, err := Metrics([]float64{1, 1, 0, 0, 1}, []float64{1, 0, 0, 1, 1}, 1)
	require.NoError(t, err)
	assert.InDelta(t, 0.6, scores.Accuracy, 1e-9)
	assert.InDelta(t, 2.0/3, scores.Precision, 1e-9)
	assert.InDelta(t, 2.0/3, scores.Recall, 1e-9)
	assert.InDelta(t, 2.0/3, scores.F1, 1e-9)
	assert.Equal(t, 2, scores.TruePositive)
	assert.Equal(t, 1, scores.FalsePositive)
	assert.Equal(t, 1, scores.TrueNegative)
	assert.Equal(t, 1, scores.FalseNegative)

	/*
		no positive predictions
	*/
	scores, err = Metrics([]float64{1, 0}, []float64{0, 0}, 1)
	require.NoError(t, err)
	assert.Equal(t, 0.5, scores.Accuracy)
	assert.Equal(t, 0.0, scores.Precision)
	assert.Equal(t, 0.0, scores.F1)

	_, err = Metrics([]float64{1}, nil, 1)
	assert.True(t, errors.Is(err, core.ErrValue))
	_, err = Metrics(nil, nil, 1)
	assert.True(t, errors.Is(err, core.ErrValue))
}

func TestTableToMatrix(t *testing.T) {
	table := core.MustNewTable(
		core.NewColumn("amount", []core.Value{core.Number(1.5), core.Number(2)}),
		core.NewColumn("type_TRANSFER", []core.Value{core.Bool(true), core.Bool(false)}),
	)
	matrix, err := TableToMatrix(table)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{1.5, 1}, {2, 0}}, matrix)

	f32, err := TableToFloat32(table)
	require.NoError(t, err)
	assert.Equal(t, [][]float32{{1.5, 1}, {2, 0}}, f32)

	withString, err := table.WithColumn(core.NewColumn("type", []core.Value{core.String("a"), core.String("b")}))
	require.NoError(t, err)
	_, err = TableToMatrix(withString)
	assert.True(t, errors.Is(err, core.ErrValue))

	withNull, err := table.WithColumn(core.NewColumn("x", []core.Value{core.Number(1), core.Null()}))
	require.NoError(t, err)
	_, err = TableToMatrix(withNull)
	assert.True(t, errors.Is(err, core.ErrValue))
}
