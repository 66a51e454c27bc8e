package core

import "github.com/pkg/errors"

// Callers match these with errors.Is; every returned error wraps one of them.
var (
	ErrIO         = errors.New("io error")
	ErrSchema     = errors.New("schema error")
	ErrValue      = errors.New("value error")
	ErrExpression = errors.New("expression error")
)
