package expr

import (
	"math"

	"github.com/packagewjx/tabprep/pkg/core"
	"github.com/pkg/errors"
)

// Program is a parsed expression bound to the columns of one table.
type Program struct {
	root    Node
	columns map[string]*core.Column
}

func Compile(node Node, table *core.Table) (*Program, error) {
	columns := make(map[string]*core.Column)
	for _, name := range Columns(node) {
		c, err := table.MustColumn(name)
		if err != nil {
			return nil, err
		}
		columns[name] = c
	}
	return &Program{root: node, columns: columns}, nil
}

// CompileString parses and binds src in one step.
func CompileString(src string, table *core.Table) (*Program, error) {
	node, err := Parse(src)
	if err != nil {
		return nil, err
	}
	return Compile(node, table)
}

func (p *Program) String() string { return p.root.String() }

func (p *Program) Eval(row int) (core.Value, error) {
	return p.eval(p.root, row)
}

// EvalBool evaluates a predicate. A missing result counts as false.
func (p *Program) EvalBool(row int) (bool, error) {
	v, err := p.Eval(row)
	if err != nil {
		return false, err
	}
	if v.IsMissing() {
		return false, nil
	}
	b, ok := v.Truth()
	if !ok {
		return false, errors.Wrapf(core.ErrExpression, "%s yields %s, not bool", p.root, v.Kind())
	}
	return b, nil
}

func (p *Program) eval(n Node, row int) (core.Value, error) {
	switch v := n.(type) {
	case *Literal:
		return v.Value, nil
	case *ColumnRef:
		return p.columns[v.Name].Values[row], nil
	case *Unary:
		operand, err := p.eval(v.Operand, row)
		if err != nil {
			return core.Null(), err
		}
		if v.Op == "not" {
			b, err := asBool(operand)
			if err != nil {
				return core.Null(), err
			}
			return core.Bool(!b), nil
		}
		if operand.IsMissing() {
			return core.Null(), nil
		}
		f, err := asNumber(operand)
		if err != nil {
			return core.Null(), err
		}
		return core.Number(-f), nil
	case *Binary:
		return p.evalBinary(v, row)
	default:
		return core.Null(), errors.Wrapf(core.ErrExpression, "unsupported node %T", n)
	}
}

func (p *Program) evalBinary(b *Binary, row int) (core.Value, error) {
	left, err := p.eval(b.Left, row)
	if err != nil {
		return core.Null(), err
	}

	// right side of and/or is skipped once the result is known
	switch b.Op {
	case "and", "or":
		l, err := asBool(left)
		if err != nil {
			return core.Null(), err
		}
		if b.Op == "and" && !l {
			return core.Bool(false), nil
		}
		if b.Op == "or" && l {
			return core.Bool(true), nil
		}
		right, err := p.eval(b.Right, row)
		if err != nil {
			return core.Null(), err
		}
		r, err := asBool(right)
		if err != nil {
			return core.Null(), err
		}
		return core.Bool(r), nil
	}

	right, err := p.eval(b.Right, row)
	if err != nil {
		return core.Null(), err
	}

	switch b.Op {
	case "==":
		return core.Bool(equal(left, right)), nil
	case "!=":
		return core.Bool(!equal(left, right)), nil
	case "<", "<=", ">", ">=":
		return compare(b.Op, left, right)
	}

	if left.IsMissing() || right.IsMissing() {
		if _, err := asNumberOrMissing(left); err != nil {
			return core.Null(), err
		}
		if _, err := asNumberOrMissing(right); err != nil {
			return core.Null(), err
		}
		return core.Null(), nil
	}
	l, err := asNumber(left)
	if err != nil {
		return core.Null(), err
	}
	r, err := asNumber(right)
	if err != nil {
		return core.Null(), err
	}
	switch b.Op {
	case "+":
		return core.Number(l + r), nil
	case "-":
		return core.Number(l - r), nil
	case "*":
		return core.Number(l * r), nil
	case "/":
		return core.Number(l / r), nil
	case "%":
		return core.Number(math.Mod(l, r)), nil
	}
	return core.Null(), errors.Wrapf(core.ErrExpression, "unknown operator %q", b.Op)
}

// equal is false whenever either side is missing.
func equal(l, r core.Value) bool {
	if l.IsMissing() || r.IsMissing() {
		return false
	}
	return l.Equal(r)
}

func compare(op string, l, r core.Value) (core.Value, error) {
	if l.IsMissing() || r.IsMissing() {
		return core.Bool(false), nil
	}
	var less, eq bool
	ls, lok := l.Str()
	rs, rok := r.Str()
	switch {
	case lok && rok:
		less, eq = ls < rs, ls == rs
	case l.Kind() == core.KindNumber && r.Kind() == core.KindNumber:
		lf, _ := l.Float()
		rf, _ := r.Float()
		less, eq = lf < rf, lf == rf
	default:
		return core.Null(), errors.Wrapf(core.ErrExpression, "cannot order %s and %s", l.Kind(), r.Kind())
	}
	switch op {
	case "<":
		return core.Bool(less), nil
	case "<=":
		return core.Bool(less || eq), nil
	case ">":
		return core.Bool(!less && !eq), nil
	default:
		return core.Bool(!less), nil
	}
}

func asBool(v core.Value) (bool, error) {
	if v.IsMissing() {
		return false, nil
	}
	b, ok := v.Truth()
	if !ok {
		return false, errors.Wrapf(core.ErrExpression, "expected bool, got %s %q", v.Kind(), v.String())
	}
	return b, nil
}

func asNumber(v core.Value) (float64, error) {
	f, ok := v.Float()
	if !ok {
		return 0, errors.Wrapf(core.ErrExpression, "expected number, got %s %q", v.Kind(), v.String())
	}
	return f, nil
}

func asNumberOrMissing(v core.Value) (float64, error) {
	if v.IsMissing() {
		return math.NaN(), nil
	}
	return asNumber(v)
}
