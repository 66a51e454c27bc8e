package preprocess

import (
	"fmt"

	"github.com/packagewjx/tabprep/internal/utils"
	"github.com/packagewjx/tabprep/pkg/core"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"
)

type Strategy string

const (
	StrategyMean         Strategy = "mean"
	StrategyMedian       Strategy = "median"
	StrategyMostFrequent Strategy = "most_frequent"
	StrategyConstant     Strategy = "constant"
)

func ParseStrategy(s string) (Strategy, error) {
	switch st := Strategy(s); st {
	case StrategyMean, StrategyMedian, StrategyMostFrequent, StrategyConstant:
		return st, nil
	}
	return "", errors.Wrapf(core.ErrValue, "unknown imputation strategy %q", s)
}

// Imputer learns one fill value per column from a training table. A cell is
// missing when it equals Missing, or, if Missing is null, when it is null or
// NaN.
type Imputer struct {
	Missing  core.Value
	Strategy Strategy
	// Constant is required by StrategyConstant and ignored otherwise.
	Constant *core.Value
}

// Statistics are the learned fill values, keyed by column name.
type Statistics struct {
	Missing core.Value
	Values  map[string]core.Value
}

func (imp *Imputer) Fit(train *core.Table, columns []string) (*Statistics, error) {
	if _, err := ParseStrategy(string(imp.Strategy)); err != nil {
		return nil, err
	}
	if imp.Strategy == StrategyConstant && imp.Constant == nil {
		return nil, errors.Wrap(core.ErrValue, "constant strategy needs a fill value")
	}

	stats := &Statistics{Missing: imp.Missing, Values: make(map[string]core.Value, len(columns))}
	for _, name := range columns {
		c, err := train.MustColumn(name)
		if err != nil {
			return nil, err
		}
		if imp.Strategy == StrategyConstant {
			stats.Values[name] = *imp.Constant
			continue
		}

		valid := make([]core.Value, 0, c.Len())
		for _, v := range c.Values {
			if !isMissing(v, imp.Missing) && !v.IsMissing() {
				valid = append(valid, v)
			}
		}
		if len(valid) == 0 {
			return nil, errors.Wrapf(core.ErrValue, "column %s has no values to compute %s", name, imp.Strategy)
		}

		var fill core.Value
		switch imp.Strategy {
		case StrategyMean, StrategyMedian:
			fill, err = numericStatistic(imp.Strategy, valid)
			if err != nil {
				return nil, errors.Wrapf(err, "column %s", name)
			}
		case StrategyMostFrequent:
			fill = mostFrequent(valid)
		}
		stats.Values[name] = fill
	}
	return stats, nil
}

// Apply fills the missing cells of every fitted column with its statistic.
func (s *Statistics) Apply(table *core.Table) (*core.Table, error) {
	result := table
	for name, fill := range s.Values {
		c, err := table.MustColumn(name)
		if err != nil {
			return nil, err
		}
		updated := c.Clone()
		for i, v := range updated.Values {
			if isMissing(v, s.Missing) {
				updated.Values[i] = fill
			}
		}
		if result, err = result.WithColumn(updated); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// Impute fits on train and applies the same statistics to both tables, so
// nothing from test leaks into the fill values.
func Impute(train, test *core.Table, columns []string, missing core.Value, strategy Strategy,
	constant *core.Value) (*core.Table, *core.Table, error) {
	for _, name := range columns {
		if _, err := test.MustColumn(name); err != nil {
			return nil, nil, err
		}
	}
	imp := &Imputer{Missing: missing, Strategy: strategy, Constant: constant}
	stats, err := imp.Fit(train, columns)
	if err != nil {
		return nil, nil, err
	}
	train, err = stats.Apply(train)
	if err != nil {
		return nil, nil, err
	}
	test, err = stats.Apply(test)
	if err != nil {
		return nil, nil, err
	}
	return train, test, nil
}

func isMissing(v, marker core.Value) bool {
	if marker.IsMissing() {
		return v.IsMissing()
	}
	return v.Equal(marker)
}

func numericStatistic(strategy Strategy, values []core.Value) (core.Value, error) {
	xs := make([]float64, len(values))
	for i, v := range values {
		if v.Kind() != core.KindNumber {
			return core.Null(), errors.Wrapf(core.ErrValue, "%s needs numeric data, got %s", strategy, v.Kind())
		}
		xs[i], _ = v.Float()
	}
	if strategy == StrategyMean {
		return core.Number(stat.Mean(xs, nil)), nil
	}

	n := len(xs)
	upper := utils.GetSortedPositionValue(xs, n/2)
	if n%2 == 1 {
		return core.Number(upper), nil
	}
	lower := utils.GetSortedPositionValue(xs, n/2-1)
	return core.Number((lower + upper) / 2), nil
}

// mostFrequent picks the value with the highest count, preferring the smallest
// one on ties.
func mostFrequent(values []core.Value) core.Value {
	counts := make(map[string]int, len(values))
	firsts := make(map[string]core.Value, len(values))
	for _, v := range values {
		key := fmt.Sprintf("%d:%s", v.Kind(), v.String())
		if _, ok := firsts[key]; !ok {
			firsts[key] = v
		}
		counts[key]++
	}

	var best core.Value
	bestCount := 0
	for key, cnt := range counts {
		v := firsts[key]
		if cnt > bestCount || (cnt == bestCount && v.Less(best)) {
			best, bestCount = v, cnt
		}
	}
	return best
}
