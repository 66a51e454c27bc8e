// Package expr implements the closed expression language used by row filters,
// cell overrides and feature derivations. Source text is parsed into a small
// AST of literals, column references and operators; nothing is executed that
// the grammar does not name.
package expr

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/packagewjx/tabprep/pkg/core"
	"github.com/pkg/errors"
)

type Node interface {
	String() string
}

type Literal struct {
	Value core.Value
}

func (l *Literal) String() string {
	if s, ok := l.Value.Str(); ok {
		return strconv.Quote(s)
	}
	if l.Value.IsMissing() {
		return "null"
	}
	return l.Value.String()
}

type ColumnRef struct {
	Name string
}

func (c *ColumnRef) String() string { return "`" + c.Name + "`" }

type Unary struct {
	Op      string
	Operand Node
}

func (u *Unary) String() string { return fmt.Sprintf("(%s %s)", u.Op, u.Operand) }

type Binary struct {
	Op          string
	Left, Right Node
}

func (b *Binary) String() string { return fmt.Sprintf("(%s %s %s)", b.Left, b.Op, b.Right) }

// Columns lists the column names a node references, in first-seen order.
func Columns(n Node) []string {
	seen := map[string]struct{}{}
	var result []string
	var walk func(Node)
	walk = func(n Node) {
		switch v := n.(type) {
		case *ColumnRef:
			if _, ok := seen[v.Name]; !ok {
				seen[v.Name] = struct{}{}
				result = append(result, v.Name)
			}
		case *Unary:
			walk(v.Operand)
		case *Binary:
			walk(v.Left)
			walk(v.Right)
		}
	}
	walk(n)
	return result
}

type parser struct {
	tokens []token
	pos    int
	src    string
}

func Parse(src string) (Node, error) {
	if strings.TrimSpace(src) == "" {
		return nil, errors.Wrap(core.ErrExpression, "empty expression")
	}
	tokens, err := tokenize(src)
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens, src: src}
	node, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.kind != tokEOF {
		return nil, p.errorf(tok, "unexpected %q", tok.text)
	}
	return node, nil
}

func (p *parser) peek() token { return p.tokens[p.pos] }

func (p *parser) next() token {
	tok := p.tokens[p.pos]
	if tok.kind != tokEOF {
		p.pos++
	}
	return tok
}

func (p *parser) acceptOp(ops ...string) (string, bool) {
	tok := p.peek()
	if tok.kind != tokOp {
		return "", false
	}
	for _, op := range ops {
		if tok.text == op {
			p.pos++
			return op, true
		}
	}
	return "", false
}

func (p *parser) errorf(tok token, format string, args ...interface{}) error {
	return errors.Wrapf(core.ErrExpression, "%s at position %d in %q", fmt.Sprintf(format, args...), tok.pos, p.src)
}

func (p *parser) parseOr() (Node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for {
		if _, ok := p.acceptOp("or"); !ok {
			return left, nil
		}
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: "or", Left: left, Right: right}
	}
}

func (p *parser) parseAnd() (Node, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for {
		if _, ok := p.acceptOp("and"); !ok {
			return left, nil
		}
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: "and", Left: left, Right: right}
	}
}

func (p *parser) parseNot() (Node, error) {
	if _, ok := p.acceptOp("not"); ok {
		operand, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return &Unary{Op: "not", Operand: operand}, nil
	}
	return p.parseComparison()
}

func (p *parser) parseComparison() (Node, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	op, ok := p.acceptOp("==", "!=", "<", "<=", ">", ">=")
	if !ok {
		return left, nil
	}
	right, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.kind == tokOp {
		switch tok.text {
		case "==", "!=", "<", "<=", ">", ">=":
			return nil, p.errorf(tok, "chained comparison")
		}
	}
	return &Binary{Op: op, Left: left, Right: right}, nil
}

func (p *parser) parseAdditive() (Node, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.acceptOp("+", "-")
		if !ok {
			return left, nil
		}
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: op, Left: left, Right: right}
	}
}

func (p *parser) parseMultiplicative() (Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.acceptOp("*", "/", "%")
		if !ok {
			return left, nil
		}
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: op, Left: left, Right: right}
	}
}

func (p *parser) parseUnary() (Node, error) {
	if _, ok := p.acceptOp("-"); ok {
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &Unary{Op: "-", Operand: operand}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (Node, error) {
	tok := p.next()
	switch tok.kind {
	case tokNumber:
		f, err := strconv.ParseFloat(tok.text, 64)
		if err != nil {
			return nil, p.errorf(tok, "bad number %q", tok.text)
		}
		return &Literal{Value: core.Number(f)}, nil
	case tokString:
		return &Literal{Value: core.String(tok.text)}, nil
	case tokIdent:
		if !tok.quoted {
			switch strings.ToLower(tok.text) {
			case "true":
				return &Literal{Value: core.Bool(true)}, nil
			case "false":
				return &Literal{Value: core.Bool(false)}, nil
			case "null", "nan", "none":
				return &Literal{Value: core.Null()}, nil
			}
		}
		return &ColumnRef{Name: tok.text}, nil
	case tokLParen:
		node, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if closing := p.next(); closing.kind != tokRParen {
			return nil, p.errorf(closing, "expected )")
		}
		return node, nil
	case tokEOF:
		return nil, p.errorf(tok, "unexpected end of expression")
	default:
		return nil, p.errorf(tok, "unexpected %q", tok.text)
	}
}
