package classify

import (
	"github.com/packagewjx/tabprep/pkg/core"
	"github.com/pkg/errors"
)

// TableToMatrix converts a table of numeric and boolean columns into row-major
// float64 samples.
func TableToMatrix(table *core.Table) ([][]float64, error) {
	columns := table.Columns()
	result := make([][]float64, table.NumRows())
	for i := range result {
		result[i] = make([]float64, len(columns))
	}
	for j, c := range columns {
		vec, err := ColumnToVector(c)
		if err != nil {
			return nil, err
		}
		for i, f := range vec {
			result[i][j] = f
		}
	}
	return result, nil
}

func ColumnToVector(c *core.Column) ([]float64, error) {
	result := make([]float64, c.Len())
	for i, v := range c.Values {
		if v.IsMissing() {
			return nil, errors.Wrapf(core.ErrValue, "column %s row %d is missing", c.Name, i)
		}
		f, ok := v.Float()
		if !ok {
			return nil, errors.Wrapf(core.ErrValue, "column %s row %d is %s, not numeric", c.Name, i, v.Kind())
		}
		result[i] = f
	}
	return result, nil
}

// TableToFloat32 is TableToMatrix in the precision the clustering algorithms
// work with.
func TableToFloat32(table *core.Table) ([][]float32, error) {
	matrix, err := TableToMatrix(table)
	if err != nil {
		return nil, err
	}
	result := make([][]float32, len(matrix))
	for i, row := range matrix {
		result[i] = make([]float32, len(row))
		for j, f := range row {
			result[i][j] = float32(f)
		}
	}
	return result, nil
}
