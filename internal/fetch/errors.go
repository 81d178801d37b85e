package fetch

import (
	"errors"
	"fmt"
)

// Code categorizes fetch failures.
type Code string

const (
	// CodeScheme indicates a source with an unsupported scheme prefix.
	// Raised before any I/O is attempted.
	CodeScheme Code = "UNSUPPORTED_SCHEME"

	// CodeHTTP indicates a network fetch failure.
	CodeHTTP Code = "HTTP_FETCH"

	// CodeFile indicates a local read failure.
	CodeFile Code = "FILE_FETCH"
)

// Error is a terminal fetch failure for one source.
type Error struct {
	Code    Code
	Source  string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%s): %v", e.Code, e.Message, e.Source, e.Err)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Source)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsSchemeError reports whether err is a scheme rejection.
// Uses errors.As to handle wrapped errors.
func IsSchemeError(err error) bool {
	var fe *Error
	return errors.As(err, &fe) && fe.Code == CodeScheme
}
