package preprocess

import (
	"sort"

	"github.com/packagewjx/tabprep/pkg/core"
	"github.com/pkg/errors"
)

// OneHotEncode replaces every string column with one boolean indicator column
// per distinct value, named <column>_<value>. The remaining columns keep their
// order and come first.
func OneHotEncode(table *core.Table) (*core.Table, error) {
	var kept, indicators []*core.Column
	for _, c := range table.Columns() {
		if c.Type() != core.TypeString {
			kept = append(kept, c)
			continue
		}
		indicators = append(indicators, indicatorColumns(c)...)
	}
	if len(indicators) == 0 {
		return table, nil
	}

	result, err := core.NewTable(append(kept, indicators...)...)
	if err != nil {
		return nil, errors.Wrap(err, "indicator column name collides")
	}
	return result, nil
}

func indicatorColumns(c *core.Column) []*core.Column {
	seen := make(map[string]struct{})
	for _, v := range c.Values {
		if !v.IsMissing() {
			seen[v.String()] = struct{}{}
		}
	}
	categories := make([]string, 0, len(seen))
	for k := range seen {
		categories = append(categories, k)
	}
	sort.Strings(categories)

	result := make([]*core.Column, len(categories))
	for i, category := range categories {
		values := make([]core.Value, c.Len())
		for j, v := range c.Values {
			values[j] = core.Bool(!v.IsMissing() && v.String() == category)
		}
		result[i] = core.NewColumn(c.Name+"_"+category, values)
	}
	return result
}
