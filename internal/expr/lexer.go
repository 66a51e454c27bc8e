package expr

import (
	"strings"
	"unicode"

	"github.com/packagewjx/tabprep/pkg/core"
	"github.com/pkg/errors"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokString
	tokIdent
	tokOp
	tokLParen
	tokRParen
)

type token struct {
	kind   tokenKind
	text   string
	pos    int
	quoted bool
}

var keywordOps = map[string]string{
	"and": "and",
	"or":  "or",
	"not": "not",
}

// symbol aliases are folded to the keyword form so the parser sees one spelling
var symbolOps = map[string]string{
	"==": "==",
	"!=": "!=",
	"<=": "<=",
	">=": ">=",
	"&&": "and",
	"||": "or",
	"<":  "<",
	">":  ">",
	"+":  "+",
	"-":  "-",
	"*":  "*",
	"/":  "/",
	"%":  "%",
	"&":  "and",
	"|":  "or",
	"!":  "not",
	"~":  "not",
}

func tokenize(src string) ([]token, error) {
	tokens := make([]token, 0, 16)
	runes := []rune(src)
	i := 0
	for i < len(runes) {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case r == '(':
			tokens = append(tokens, token{kind: tokLParen, text: "(", pos: i})
			i++
		case r == ')':
			tokens = append(tokens, token{kind: tokRParen, text: ")", pos: i})
			i++
		case r == '\'' || r == '"':
			start := i
			i++
			var sb strings.Builder
			for i < len(runes) && runes[i] != r {
				if runes[i] == '\\' && i+1 < len(runes) {
					i++
				}
				sb.WriteRune(runes[i])
				i++
			}
			if i >= len(runes) {
				return nil, errors.Wrapf(core.ErrExpression, "unterminated string at %d", start)
			}
			i++
			tokens = append(tokens, token{kind: tokString, text: sb.String(), pos: start})
		case r == '`':
			start := i
			i++
			for i < len(runes) && runes[i] != '`' {
				i++
			}
			if i >= len(runes) {
				return nil, errors.Wrapf(core.ErrExpression, "unterminated column name at %d", start)
			}
			tokens = append(tokens, token{kind: tokIdent, text: string(runes[start+1 : i]), pos: start, quoted: true})
			i++
		case unicode.IsDigit(r) || (r == '.' && i+1 < len(runes) && unicode.IsDigit(runes[i+1])):
			start := i
			for i < len(runes) && (unicode.IsDigit(runes[i]) || runes[i] == '.') {
				i++
			}
			if i < len(runes) && (runes[i] == 'e' || runes[i] == 'E') {
				i++
				if i < len(runes) && (runes[i] == '+' || runes[i] == '-') {
					i++
				}
				for i < len(runes) && unicode.IsDigit(runes[i]) {
					i++
				}
			}
			tokens = append(tokens, token{kind: tokNumber, text: string(runes[start:i]), pos: start})
		case r == '_' || unicode.IsLetter(r):
			start := i
			for i < len(runes) && (runes[i] == '_' || runes[i] == '.' || unicode.IsLetter(runes[i]) || unicode.IsDigit(runes[i])) {
				i++
			}
			word := string(runes[start:i])
			if op, ok := keywordOps[strings.ToLower(word)]; ok {
				tokens = append(tokens, token{kind: tokOp, text: op, pos: start})
			} else {
				tokens = append(tokens, token{kind: tokIdent, text: word, pos: start})
			}
		default:
			matched := false
			if i+1 < len(runes) {
				if op, ok := symbolOps[string(runes[i:i+2])]; ok {
					tokens = append(tokens, token{kind: tokOp, text: op, pos: i})
					i += 2
					matched = true
				}
			}
			if !matched {
				op, ok := symbolOps[string(r)]
				if !ok {
					return nil, errors.Wrapf(core.ErrExpression, "unexpected character %q at %d", r, i)
				}
				tokens = append(tokens, token{kind: tokOp, text: op, pos: i})
				i++
			}
		}
	}
	tokens = append(tokens, token{kind: tokEOF, pos: len(runes)})
	return tokens, nil
}
