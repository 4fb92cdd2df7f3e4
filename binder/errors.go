package binder

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedLine = errors.New("malformed line")
	ErrParse         = errors.New("could not parse value")
)

// MalformedLineError reports an input line without a "=" separator.
type MalformedLineError struct {
	Line int // 1-based
	Text string
}

func (e *MalformedLineError) Error() string {
	return fmt.Sprintf("%v: line %d: %q has no '='", ErrMalformedLine, e.Line, e.Text)
}

func (e *MalformedLineError) Is(target error) bool {
	return target == ErrMalformedLine
}

// ParseError reports a value that could not be cast to its field's type.
// Key is the key as written in the input, Value the raw value.
type ParseError struct {
	Key   string
	Value string
	Field string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("could not parse %s from %q: %v", e.Key, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}
