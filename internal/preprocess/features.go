package preprocess

import (
	"github.com/packagewjx/tabprep/internal/expr"
	"github.com/packagewjx/tabprep/pkg/core"
	"github.com/pkg/errors"
)

type Derivation struct {
	Name string `mapstructure:"name" json:"name"`
	Expr string `mapstructure:"expr" json:"expr"`
}

// AddFeatures evaluates each derivation row by row and stores the result under
// its name. Later derivations may refer to earlier ones.
func AddFeatures(table *core.Table, derivations []Derivation) (*core.Table, error) {
	result := table
	for _, d := range derivations {
		if d.Name == "" {
			return nil, errors.Wrapf(core.ErrValue, "derivation %q has no name", d.Expr)
		}
		prog, err := expr.CompileString(d.Expr, result)
		if err != nil {
			return nil, errors.Wrapf(err, "derive %s", d.Name)
		}
		values := make([]core.Value, result.NumRows())
		for i := range values {
			if values[i], err = prog.Eval(i); err != nil {
				return nil, errors.Wrapf(err, "derive %s at row %d", d.Name, i)
			}
		}
		if result, err = result.WithColumn(core.NewColumn(d.Name, values)); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// Recode maps the values of a categorical column to numeric codes.
func Recode(table *core.Table, column string, codes map[string]float64) (*core.Table, error) {
	c, err := table.MustColumn(column)
	if err != nil {
		return nil, err
	}
	values := make([]core.Value, c.Len())
	for i, v := range c.Values {
		if v.IsMissing() {
			values[i] = core.Null()
			continue
		}
		code, ok := codes[v.String()]
		if !ok {
			return nil, errors.Wrapf(core.ErrValue, "no code for %q in column %s", v.String(), column)
		}
		values[i] = core.Number(code)
	}
	return table.WithColumn(core.NewColumn(column, values))
}
