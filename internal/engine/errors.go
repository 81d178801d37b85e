package engine

import "fmt"

// Error is a terminal execution failure for one plan step.
type Error struct {
	// Op names the failing step: filter, sort, slice, project, collect.
	Op string

	// Message describes what went wrong, naming the offending column
	// or expression.
	Message string

	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("execute %s: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("execute %s: %s", e.Op, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func execErrorf(op, format string, args ...any) *Error {
	return &Error{Op: op, Message: fmt.Sprintf(format, args...)}
}
