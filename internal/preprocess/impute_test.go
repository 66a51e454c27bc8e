package preprocess

import (
	"math"
	"testing"

	"github.com/packagewjx/tabprep/pkg/core"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImputeMean(t *testing.T) {
	nan := math.NaN()
	train := core.MustNewTable(core.NewColumn("x", numbers(1, nan, 3, 0)))
	test := core.MustNewTable(core.NewColumn("x", numbers(nan, 5)))

	train2, test2, err := Impute(train, test, []string{"x"}, core.Null(), StrategyMean, nil)
	require.NoError(t, err)
	assert.InDelta(t, 4.0/3, floats(t, column(t, train2, "x"))[1], 1e-9)
	assert.InDelta(t, 4.0/3, floats(t, column(t, test2, "x"))[0], 1e-9)
	assert.Equal(t, 5.0, floats(t, column(t, test2, "x"))[1])
	// inputs untouched
	assert.Equal(t, 1, column(t, train, "x").MissingCount())

	/*
		statistics never depend on the test table
	*/
	outlier := core.MustNewTable(core.NewColumn("x", numbers(nan, 1e9)))
	_, test3, err := Impute(train, outlier, []string{"x"}, core.Null(), StrategyMean, nil)
	require.NoError(t, err)
	assert.InDelta(t, 4.0/3, floats(t, column(t, test3, "x"))[0], 1e-9)
}

func TestImputeMedian(t *testing.T) {
	nan := math.NaN()
	imp := &Imputer{Missing: core.Null(), Strategy: StrategyMedian}

	stats, err := imp.Fit(core.MustNewTable(core.NewColumn("x", numbers(5, 1, 3, nan, 2))), []string{"x"})
	require.NoError(t, err)
	f, _ := stats.Values["x"].Float()
	assert.Equal(t, 2.5, f)

	stats, err = imp.Fit(core.MustNewTable(core.NewColumn("x", numbers(3, 1, 2))), []string{"x"})
	require.NoError(t, err)
	f, _ = stats.Values["x"].Float()
	assert.Equal(t, 2.0, f)
}

func TestImputeMostFrequent(t *testing.T) {
	train := core.MustNewTable(
		core.NewColumn("s", strs("b", "a", "b", "a", "c", "")),
		core.NewColumn("n", numbers(7, 7, 2, 9, 9, math.NaN())),
	)
	imp := &Imputer{Missing: core.Null(), Strategy: StrategyMostFrequent}
	stats, err := imp.Fit(train, []string{"s", "n"})
	require.NoError(t, err)
	assert.Equal(t, core.String("a"), stats.Values["s"])
	assert.Equal(t, core.Number(7), stats.Values["n"])

	result, err := stats.Apply(train)
	require.NoError(t, err)
	assert.Equal(t, "a", column(t, result, "s").Values[5].String())
	assert.Equal(t, "7", column(t, result, "n").Values[5].String())
}

func TestImputeMarker(t *testing.T) {
	nan := math.NaN()
	train := core.MustNewTable(core.NewColumn("oldbalanceDest", numbers(0, 2, 4, nan)))
	test := core.MustNewTable(core.NewColumn("oldbalanceDest", numbers(0, 1)))

	/*
		zeros replaced by the constant -1, other cells untouched
	*/
	minusOne := core.Number(-1)
	train2, test2, err := Impute(train, test, []string{"oldbalanceDest"}, core.Number(0), StrategyConstant, &minusOne)
	require.NoError(t, err)
	got := floats(t, column(t, train2, "oldbalanceDest"))
	assert.Equal(t, []float64{-1, 2, 4}, got[:3])
	assert.True(t, math.IsNaN(got[3]))
	assert.Equal(t, []float64{-1, 1}, floats(t, column(t, test2, "oldbalanceDest")))

	/*
		with a marker, neither marked nor null cells count towards the mean
	*/
	train3, _, err := Impute(train, test, []string{"oldbalanceDest"}, core.Number(0), StrategyMean, nil)
	require.NoError(t, err)
	got = floats(t, column(t, train3, "oldbalanceDest"))
	assert.Equal(t, 3.0, got[0])
	assert.True(t, math.IsNaN(got[3]))
}

func TestImputeErrors(t *testing.T) {
	nan := math.NaN()
	train := core.MustNewTable(
		core.NewColumn("x", numbers(1, 2)),
		core.NewColumn("s", strs("a", "b")),
		core.NewColumn("empty", numbers(nan, nan)),
	)

	_, _, err := Impute(train, train, []string{"x"}, core.Null(), StrategyConstant, nil)
	assert.True(t, errors.Is(err, core.ErrValue))

	_, _, err = Impute(train, train, []string{"s"}, core.Null(), StrategyMean, nil)
	assert.True(t, errors.Is(err, core.ErrValue))

	_, _, err = Impute(train, train, []string{"empty"}, core.Null(), StrategyMedian, nil)
	assert.True(t, errors.Is(err, core.ErrValue))

	_, _, err = Impute(train, train, []string{"x"}, core.Null(), Strategy("mode"), nil)
	assert.True(t, errors.Is(err, core.ErrValue))

	other := core.MustNewTable(core.NewColumn("y", numbers(1)))
	_, _, err = Impute(train, other, []string{"x"}, core.Null(), StrategyMean, nil)
	assert.True(t, errors.Is(err, core.ErrSchema))
	_, _, err = Impute(other, train, []string{"x"}, core.Null(), StrategyMean, nil)
	assert.True(t, errors.Is(err, core.ErrSchema))

	st, err := ParseStrategy("most_frequent")
	assert.NoError(t, err)
	assert.Equal(t, StrategyMostFrequent, st)
}
