package preprocess

import (
	"github.com/packagewjx/tabprep/internal/expr"
	"github.com/packagewjx/tabprep/pkg/core"
	"github.com/pkg/errors"
	"github.com/zeebo/xxh3"
)

// Filter keeps the rows for which predicate is true, in their original order.
func Filter(table *core.Table, predicate string) (*core.Table, error) {
	mask, err := evalMask(table, predicate)
	if err != nil {
		return nil, err
	}
	indices := make([]int, 0, table.NumRows())
	for i, keep := range mask {
		if keep {
			indices = append(indices, i)
		}
	}
	return table.Take(indices), nil
}

// SetWhere overwrites columns with value on every row matching predicate.
func SetWhere(table *core.Table, predicate string, columns []string, value core.Value) (*core.Table, error) {
	targets := make([]*core.Column, len(columns))
	for i, name := range columns {
		c, err := table.MustColumn(name)
		if err != nil {
			return nil, err
		}
		targets[i] = c
	}
	mask, err := evalMask(table, predicate)
	if err != nil {
		return nil, err
	}

	result := table
	for _, c := range targets {
		updated := c.Clone()
		for i, hit := range mask {
			if hit {
				updated.Values[i] = value
			}
		}
		if result, err = result.WithColumn(updated); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func evalMask(table *core.Table, predicate string) ([]bool, error) {
	prog, err := expr.CompileString(predicate, table)
	if err != nil {
		return nil, err
	}
	mask := make([]bool, table.NumRows())
	for i := range mask {
		mask[i], err = prog.EvalBool(i)
		if err != nil {
			return nil, errors.Wrapf(err, "row %d", i)
		}
	}
	return mask, nil
}

// DropMissing removes rows holding a missing value in any of columns, or in
// any column at all when none are named.
func DropMissing(table *core.Table, columns ...string) (*core.Table, error) {
	checked := table.Columns()
	if len(columns) > 0 {
		checked = checked[:0]
		for _, name := range columns {
			c, err := table.MustColumn(name)
			if err != nil {
				return nil, err
			}
			checked = append(checked, c)
		}
	}

	indices := make([]int, 0, table.NumRows())
	for i := 0; i < table.NumRows(); i++ {
		complete := true
		for _, c := range checked {
			if c.Values[i].IsMissing() {
				complete = false
				break
			}
		}
		if complete {
			indices = append(indices, i)
		}
	}
	return table.Take(indices), nil
}

// DropDuplicates keeps the first occurrence of every distinct row.
func DropDuplicates(table *core.Table) *core.Table {
	buckets := make(map[uint64][]int, table.NumRows())
	indices := make([]int, 0, table.NumRows())
	var buf []byte
	for i := 0; i < table.NumRows(); i++ {
		buf = rowKey(buf[:0], table, i)
		h := xxh3.Hash(buf)
		duplicate := false
		for _, j := range buckets[h] {
			if rowsEqual(table, i, j) {
				duplicate = true
				break
			}
		}
		if !duplicate {
			buckets[h] = append(buckets[h], i)
			indices = append(indices, i)
		}
	}
	return table.Take(indices)
}

func rowKey(buf []byte, table *core.Table, row int) []byte {
	for _, c := range table.Columns() {
		v := c.Values[row]
		if v.IsMissing() {
			buf = append(buf, byte(core.KindNull), 0)
			continue
		}
		buf = append(buf, byte(v.Kind()))
		if f, ok := v.Float(); ok && v.Kind() == core.KindNumber && f == 0 {
			// -0 equals 0
			v = core.Number(0)
		}
		buf = append(buf, v.String()...)
		buf = append(buf, 0)
	}
	return buf
}

func rowsEqual(table *core.Table, a, b int) bool {
	for _, c := range table.Columns() {
		if !c.Values[a].Equal(c.Values[b]) {
			return false
		}
	}
	return true
}
