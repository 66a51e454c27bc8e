package core

import (
	"math"
	"strconv"
	"strings"
)

type Kind uint8

const (
	KindNull Kind = iota
	KindNumber
	KindString
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	default:
		return "null"
	}
}

// Value is a single table cell. The zero Value is the missing marker.
type Value struct {
	kind Kind
	num  float64
	str  string
}

func Null() Value { return Value{} }

func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

func String(s string) Value { return Value{kind: KindString, str: s} }

func Bool(b bool) Value {
	if b {
		return Value{kind: KindBool, num: 1}
	}
	return Value{kind: KindBool}
}

func (v Value) Kind() Kind { return v.kind }

// IsMissing reports whether v is null or a NaN number.
func (v Value) IsMissing() bool {
	return v.kind == KindNull || (v.kind == KindNumber && math.IsNaN(v.num))
}

// Float returns the numeric form of a number or bool.
func (v Value) Float() (float64, bool) {
	switch v.kind {
	case KindNumber, KindBool:
		return v.num, true
	default:
		return math.NaN(), false
	}
}

func (v Value) Str() (string, bool) {
	return v.str, v.kind == KindString
}

func (v Value) Truth() (bool, bool) {
	return v.num != 0, v.kind == KindBool
}

// Equal compares kind and content. Two missing values are equal.
func (v Value) Equal(o Value) bool {
	if v.IsMissing() || o.IsMissing() {
		return v.IsMissing() && o.IsMissing()
	}
	if v.kind != o.kind {
		return false
	}
	if v.kind == KindString {
		return v.str == o.str
	}
	return v.num == o.num
}

// Less orders values of the same kind. Missing values sort first.
func (v Value) Less(o Value) bool {
	if v.IsMissing() || o.IsMissing() {
		return v.IsMissing() && !o.IsMissing()
	}
	if v.kind != o.kind {
		return v.kind < o.kind
	}
	if v.kind == KindString {
		return v.str < o.str
	}
	return v.num < o.num
}

// String renders the value the way it is written to CSV.
func (v Value) String() string {
	if v.IsMissing() {
		return ""
	}
	switch v.kind {
	case KindString:
		return v.str
	case KindBool:
		return strconv.FormatBool(v.num != 0)
	default:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	}
}

var missingTokens = map[string]struct{}{
	"":     {},
	"NA":   {},
	"N/A":  {},
	"NaN":  {},
	"nan":  {},
	"null": {},
	"NULL": {},
	"None": {},
}

// ParseValue infers the kind of a raw CSV cell.
func ParseValue(text string) Value {
	trimmed := strings.TrimSpace(text)
	if _, ok := missingTokens[trimmed]; ok {
		return Null()
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return Number(f)
	}
	switch strings.ToLower(trimmed) {
	case "true":
		return Bool(true)
	case "false":
		return Bool(false)
	}
	return String(text)
}

type ColumnType int

const (
	TypeUnknown ColumnType = iota
	TypeNumeric
	TypeString
	TypeBoolean
)

func (c ColumnType) String() string {
	switch c {
	case TypeNumeric:
		return "numeric"
	case TypeString:
		return "string"
	case TypeBoolean:
		return "boolean"
	default:
		return "unknown"
	}
}
