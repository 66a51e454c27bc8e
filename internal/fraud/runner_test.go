package fraud

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/packagewjx/tabprep/internal/preprocess"
	"github.com/packagewjx/tabprep/pkg/core"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// transactions builds PaySim shaped rows: every fourth row is a PAYMENT, and
// fraudulent transfers empty the origin account into a blank destination.
func transactions(n int) *core.Table {
	names := []string{"step", "type", "amount", "nameOrig", "oldbalanceOrg", "newbalanceOrig",
		"nameDest", "oldbalanceDest", "newbalanceDest", "isFraud", "isFlaggedFraud"}
	values := make([][]core.Value, len(names))
	kinds := []string{"TRANSFER", "CASH_OUT", "TRANSFER", "PAYMENT"}
	for i := 0; i < n; i++ {
		amount := 1000 + float64(i)*10
		oldOrg, newOrig, oldDest, newDest, fraud := amount*3, amount*2, 5000.0, 5000+amount, 0.0
		if i%4 == 0 {
			oldOrg, newOrig, oldDest, newDest, fraud = amount, 0, 0, 0, 1
		}
		if i == 5 {
			oldOrg, newOrig = 0, 0
		}
		row := []core.Value{
			core.Number(float64(i / 10)),
			core.String(kinds[i%4]),
			core.Number(amount),
			core.String(fmt.Sprintf("C%d", i)),
			core.Number(oldOrg),
			core.Number(newOrig),
			core.String(fmt.Sprintf("M%d", i)),
			core.Number(oldDest),
			core.Number(newDest),
			core.Number(fraud),
			core.Number(0),
		}
		for j, v := range row {
			values[j] = append(values[j], v)
		}
	}
	columns := make([]*core.Column, len(names))
	for j, name := range names {
		columns[j] = core.NewColumn(name, values[j])
	}
	return core.MustNewTable(columns...)
}

func seeded(seed int64) *Config {
	cfg := DefaultConfig()
	cfg.Seed = &seed
	return cfg
}

func TestRun(t *testing.T) {
	observed, logs := observer.New(zap.InfoLevel)
	result, err := Run(context.Background(), seeded(7), transactions(40), zap.New(observed))
	require.NoError(t, err)

	assert.Equal(t, 40, result.InputRows)
	assert.Equal(t, 29, result.CleanRows)
	assert.Equal(t, 9, result.TestRows)
	assert.Equal(t, 20, result.TrainRows)
	assert.Equal(t, []string{"type", "amount", "oldbalanceOrg", "newbalanceOrig", "oldbalanceDest",
		"newbalanceDest", "errorBalanceOrig", "errorBalanceDest"}, result.Features)
	assert.Equal(t, 9, len(result.Predictions))
	assert.Equal(t, 9, len(result.Labels))
	for _, p := range result.Predictions {
		assert.True(t, p == 0 || p == 1)
	}
	assert.GreaterOrEqual(t, result.Scores.Accuracy, 0.75)
	assert.Equal(t, len(result.Features), len(result.Model.Weights()))

	steps := logs.FilterMessage("步骤完成").All()
	require.Equal(t, 7, len(steps))
	assert.Equal(t, "filter", steps[0].ContextMap()["step"])
	assert.Equal(t, int64(30), steps[0].ContextMap()["rows"])
	assert.Equal(t, "derive", steps[6].ContextMap()["step"])

	/*
		the same seed gives the same run
	*/
	again, err := Run(context.Background(), seeded(7), transactions(40), nil)
	require.NoError(t, err)
	assert.Equal(t, result.Labels, again.Labels)
	assert.Equal(t, result.Predictions, again.Predictions)
}

func TestRunWithImputation(t *testing.T) {
	cfg := seeded(3)
	cfg.KeepMissing = true
	cfg.Imputations = []Imputation{
		{Columns: []string{"oldbalanceOrg", "newbalanceOrig", "errorBalanceOrig"}, Strategy: "median"},
	}
	result, err := Run(context.Background(), cfg, transactions(40), nil)
	require.NoError(t, err)
	assert.Equal(t, 30, result.CleanRows)
	assert.Equal(t, 30, result.TrainRows+result.TestRows)
	for _, p := range result.Predictions {
		assert.False(t, math.IsNaN(p))
	}
}

func TestRunErrors(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, seeded(1), transactions(40), nil)
	assert.True(t, errors.Is(err, context.Canceled))

	/*
		a column named in the configuration is absent
	*/
	table := transactions(40).Without("isFlaggedFraud")
	_, err = Run(context.Background(), seeded(1), table, nil)
	assert.True(t, errors.Is(err, core.ErrSchema))

	cfg := seeded(1)
	cfg.TestFraction = 1.5
	_, err = Run(context.Background(), cfg, transactions(40), nil)
	assert.True(t, errors.Is(err, core.ErrValue))
}

func TestConfigComplete(t *testing.T) {
	cfg := &Config{LabelColumn: "isFraud"}
	require.NoError(t, cfg.Complete())
	assert.Equal(t, DefaultTestFraction, cfg.TestFraction)
	assert.Equal(t, 20, cfg.SVC.Epochs)

	for name, broken := range map[string]*Config{
		"label":      {},
		"type":       {LabelColumn: "y", KeepTypes: []string{"A"}},
		"override":   {LabelColumn: "y", Overrides: []Override{{Where: "a > 1"}}},
		"feature":    {LabelColumn: "y", Features: []preprocess.Derivation{{Name: "x"}}},
		"strategy":   {LabelColumn: "y", Imputations: []Imputation{{Columns: []string{"a"}, Strategy: "mode"}}},
		"svc":        {LabelColumn: "y", SVC: SVCConfig{C: -1}},
		"testFactor": {LabelColumn: "y", TestFraction: -0.2},
		"typeCodes":  {LabelColumn: "y", TypeColumn: "t", TypeCodes: []TypeCode{{Value: "A"}, {Value: "A", Code: 1}}},
	} {
		err := broken.Complete()
		assert.True(t, errors.Is(err, core.ErrValue), name)
	}

	assert.Equal(t, "`type` == 'TRANSFER' or `type` == 'CASH_OUT'", keepTypesPredicate("type", []string{"TRANSFER", "CASH_OUT"}))
	assert.Equal(t, "`x` == 'it\\'s'", keepTypesPredicate("x", []string{"it's"}))
}
