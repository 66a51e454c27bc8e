package preprocess

import (
	"github.com/packagewjx/tabprep/pkg/core"
	"github.com/pkg/errors"
)

// Sample returns the first n rows. n larger than the table is clamped.
func Sample(table *core.Table, n int) (*core.Table, error) {
	if n < 0 {
		return nil, errors.Wrapf(core.ErrValue, "sample size %d is negative", n)
	}
	if n > table.NumRows() {
		n = table.NumRows()
	}
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	return table.Take(indices), nil
}

func ColumnTypes(table *core.Table) map[string]core.ColumnType {
	result := make(map[string]core.ColumnType, table.NumCols())
	for _, c := range table.Columns() {
		result[c.Name] = c.Type()
	}
	return result
}

func MissingCounts(table *core.Table) map[string]int {
	result := make(map[string]int, table.NumCols())
	for _, c := range table.Columns() {
		result[c.Name] = c.MissingCount()
	}
	return result
}

type Report struct {
	Sample        *core.Table
	Types         map[string]core.ColumnType
	MissingCounts map[string]int
}

func Inspect(table *core.Table, n int) (*Report, error) {
	sample, err := Sample(table, n)
	if err != nil {
		return nil, err
	}
	return &Report{
		Sample:        sample,
		Types:         ColumnTypes(table),
		MissingCounts: MissingCounts(table),
	}, nil
}
