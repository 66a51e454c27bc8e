package core

import (
	"github.com/pkg/errors"
)

type Column struct {
	Name   string
	Values []Value
}

func NewColumn(name string, values []Value) *Column {
	return &Column{Name: name, Values: values}
}

func (c *Column) Len() int { return len(c.Values) }

// Type derives the logical type from the non-missing values.
func (c *Column) Type() ColumnType {
	typ := TypeUnknown
	for _, v := range c.Values {
		if v.IsMissing() {
			continue
		}
		var t ColumnType
		switch v.Kind() {
		case KindNumber:
			t = TypeNumeric
		case KindBool:
			t = TypeBoolean
		default:
			return TypeString
		}
		if typ == TypeUnknown {
			typ = t
		} else if typ != t {
			return TypeString
		}
	}
	return typ
}

func (c *Column) MissingCount() int {
	cnt := 0
	for _, v := range c.Values {
		if v.IsMissing() {
			cnt++
		}
	}
	return cnt
}

func (c *Column) Clone() *Column {
	values := make([]Value, len(c.Values))
	copy(values, c.Values)
	return &Column{Name: c.Name, Values: values}
}

func (c *Column) Take(indices []int) *Column {
	values := make([]Value, len(indices))
	for i, idx := range indices {
		values[i] = c.Values[idx]
	}
	return &Column{Name: c.Name, Values: values}
}

// Table is an ordered set of equally long, uniquely named columns.
type Table struct {
	columns []*Column
	index   map[string]int
	rows    int
}

func NewTable(columns ...*Column) (*Table, error) {
	t := &Table{
		columns: make([]*Column, 0, len(columns)),
		index:   make(map[string]int, len(columns)),
	}
	for i, c := range columns {
		if _, ok := t.index[c.Name]; ok {
			return nil, errors.Wrapf(ErrSchema, "duplicate column %q", c.Name)
		}
		if i == 0 {
			t.rows = c.Len()
		} else if c.Len() != t.rows {
			return nil, errors.Wrapf(ErrSchema, "column %q has %d rows, expected %d", c.Name, c.Len(), t.rows)
		}
		t.index[c.Name] = len(t.columns)
		t.columns = append(t.columns, c)
	}
	return t, nil
}

// MustNewTable is NewTable for literals known to be valid.
func MustNewTable(columns ...*Column) *Table {
	t, err := NewTable(columns...)
	if err != nil {
		panic(err)
	}
	return t
}

func (t *Table) NumRows() int { return t.rows }

func (t *Table) NumCols() int { return len(t.columns) }

func (t *Table) Names() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.Name
	}
	return names
}

func (t *Table) Columns() []*Column {
	result := make([]*Column, len(t.columns))
	copy(result, t.columns)
	return result
}

func (t *Table) Column(name string) (*Column, bool) {
	idx, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return t.columns[idx], true
}

func (t *Table) ColumnAt(i int) *Column { return t.columns[i] }

func (t *Table) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

// MustColumn returns the named column or an ErrSchema.
func (t *Table) MustColumn(name string) (*Column, error) {
	c, ok := t.Column(name)
	if !ok {
		return nil, errors.Wrapf(ErrSchema, "column %q not found", name)
	}
	return c, nil
}

func (t *Table) Row(i int) []Value {
	row := make([]Value, len(t.columns))
	for j, c := range t.columns {
		row[j] = c.Values[i]
	}
	return row
}

func (t *Table) Clone() *Table {
	columns := make([]*Column, len(t.columns))
	for i, c := range t.columns {
		columns[i] = c.Clone()
	}
	return MustNewTable(columns...)
}

// Take returns a table holding the rows at indices, in that order.
func (t *Table) Take(indices []int) *Table {
	columns := make([]*Column, len(t.columns))
	for i, c := range t.columns {
		columns[i] = c.Take(indices)
	}
	result := MustNewTable(columns...)
	result.rows = len(indices)
	return result
}

// WithColumn replaces the column of the same name, or appends it.
func (t *Table) WithColumn(col *Column) (*Table, error) {
	if t.NumCols() > 0 && col.Len() != t.rows {
		return nil, errors.Wrapf(ErrSchema, "column %q has %d rows, expected %d", col.Name, col.Len(), t.rows)
	}
	columns := t.Columns()
	if idx, ok := t.index[col.Name]; ok {
		columns[idx] = col
	} else {
		columns = append(columns, col)
	}
	return NewTable(columns...)
}

// Without drops the named columns. Unknown names are ignored here.
func (t *Table) Without(names ...string) *Table {
	skip := make(map[string]struct{}, len(names))
	for _, n := range names {
		skip[n] = struct{}{}
	}
	columns := make([]*Column, 0, len(t.columns))
	for _, c := range t.columns {
		if _, ok := skip[c.Name]; !ok {
			columns = append(columns, c)
		}
	}
	result := MustNewTable(columns...)
	if len(columns) == 0 {
		result.rows = t.rows
	}
	return result
}
