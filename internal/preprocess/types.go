package preprocess

import (
	"github.com/packagewjx/tabprep/pkg/core"
)

// Preprocessor is one table-to-table step. Implementations never modify their
// input.
type Preprocessor interface {
	Name() string
	Preprocess(table *core.Table) (*core.Table, error)
}

type funcPreprocessor struct {
	name string
	fn   func(table *core.Table) (*core.Table, error)
}

func (f *funcPreprocessor) Name() string { return f.name }

func (f *funcPreprocessor) Preprocess(table *core.Table) (*core.Table, error) {
	return f.fn(table)
}

// Step adapts a function into a named Preprocessor.
func Step(name string, fn func(table *core.Table) (*core.Table, error)) Preprocessor {
	return &funcPreprocessor{name: name, fn: fn}
}

type chainPreprocess struct {
	chain []Preprocessor
}

func (d *chainPreprocess) Name() string { return "chain" }

func (d *chainPreprocess) Preprocess(table *core.Table) (*core.Table, error) {
	var err error
	for _, processor := range d.chain {
		table, err = processor.Preprocess(table)
		if err != nil {
			return nil, err
		}
	}
	return table, nil
}

func Chain(steps ...Preprocessor) Preprocessor {
	return &chainPreprocess{chain: steps}
}
