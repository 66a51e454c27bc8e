package preprocess

import (
	"github.com/packagewjx/tabprep/pkg/core"
)

// Drop removes the named columns. Every name must exist; duplicates are
// ignored and an empty list returns an unchanged copy.
func Drop(table *core.Table, names ...string) (*core.Table, error) {
	for _, name := range names {
		if _, err := table.MustColumn(name); err != nil {
			return nil, err
		}
	}
	return table.Without(names...), nil
}
