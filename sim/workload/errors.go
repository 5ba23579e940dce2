package workload

import (
	"errors"
	"fmt"
)

// Sentinel errors for recoverable input problems. Test with errors.Is.
var (
	ErrEmptyInput       = errors.New("no records")
	ErrMalformedRow     = errors.New("malformed row")
	ErrInvalidNumber    = errors.New("invalid number")
	ErrDuplicateName    = errors.New("duplicate name")
	ErrResourceNotFound = errors.New("resource not found")
	ErrProcessNotFound  = errors.New("process not found")
)

// ParseError locates an input problem. Line is 1-based; 0 means the whole source.
type ParseError struct {
	Source string
	Line   int
	Err    error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %v", e.Source, e.Line, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
