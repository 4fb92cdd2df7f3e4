package node

import (
	"errors"
	"fmt"
)

var (
	ErrConversion      = errors.New("conversion failed")
	ErrTypeUnsupported = errors.New("type is not supported")
	ErrMalformedPair   = errors.New("mapping item must be a single key=value pair")

	ErrIsNotACaster         = errors.New("provided function is not a recognizable caster")
	ErrCasterIsNotAFunction = errors.New("provided caster is not a function")
	ErrCasterSource         = errors.New("caster function must accept a string")
	ErrCasterRejected       = errors.New("caster rejected the value")
)

// ConversionError reports a raw string that is not a valid literal of the requested type.
type ConversionError struct {
	Raw  string
	Type string
	Err  error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("cannot convert %q to %s: %v", e.Raw, e.Type, e.Err)
}

func (e *ConversionError) Unwrap() error { return e.Err }

func (e *ConversionError) Is(target error) bool { return target == ErrConversion }

// TypeUnsupportedError reports a descriptor that has no registered caster.
type TypeUnsupportedError struct {
	Type   string
	Reason string
}

func (e *TypeUnsupportedError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("type %s is not supported", e.Type)
	}

	return fmt.Sprintf("type %s is not supported: %s", e.Type, e.Reason)
}

func (e *TypeUnsupportedError) Is(target error) bool { return target == ErrTypeUnsupported }

func unsupported(typ, reason string) error {
	return &TypeUnsupportedError{Type: typ, Reason: reason}
}
