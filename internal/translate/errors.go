package translate

import (
	"errors"
	"fmt"
)

// Code categorizes translation failures. Every failure is terminal:
// the first unsupported construct aborts the whole translation and no
// partial query is returned.
type Code string

const (
	// CodeParse indicates the SQL text did not parse at all.
	CodeParse Code = "PARSE_ERROR"

	// CodeMultiStatement indicates the input held more than one statement.
	CodeMultiStatement Code = "MULTI_STATEMENT"

	// CodeUnsupportedStatement indicates a statement shape other than a
	// plain single SELECT (DDL, DML, set operations, CTEs, grouping).
	CodeUnsupportedStatement Code = "UNSUPPORTED_STATEMENT"

	// CodeMultipleSources indicates zero or more than one FROM entry.
	CodeMultipleSources Code = "MULTIPLE_SOURCES"

	// CodeJoinUnsupported indicates any join clause in FROM.
	CodeJoinUnsupported Code = "JOIN_UNSUPPORTED"

	// CodeUnsupportedProjection indicates a projection item that is not
	// a bare column, an aliased column, or a wildcard.
	CodeUnsupportedProjection Code = "UNSUPPORTED_PROJECTION"

	// CodeUnsupportedOrderBy indicates a sort key that is not a bare column.
	CodeUnsupportedOrderBy Code = "UNSUPPORTED_ORDER_BY"

	// CodeUnsupportedExpression indicates an expression node outside the
	// translatable subset (function calls, subqueries, CASE, casts, ...).
	CodeUnsupportedExpression Code = "UNSUPPORTED_EXPRESSION"

	// CodeUnsupportedOperator indicates a binary operator outside the
	// thirteen supported tokens.
	CodeUnsupportedOperator Code = "UNSUPPORTED_OPERATOR"

	// CodeUnsupportedLiteral indicates a literal kind other than
	// numeric, boolean, or NULL, or a numeric literal that does not
	// parse as a float.
	CodeUnsupportedLiteral Code = "UNSUPPORTED_LITERAL"
)

// Error is a translation failure. Detail carries the textual form of
// the offending token or clause so the caller can fix the query.
type Error struct {
	Code    Code
	Message string
	Detail  string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s: %s", e.Code, e.Message, e.Detail)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// newError creates an Error with a detail string describing the
// offending construct.
func newError(code Code, message, detail string) *Error {
	return &Error{Code: code, Message: message, Detail: detail}
}

// wrapError creates an Error wrapping an underlying cause.
func wrapError(code Code, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// CodeOf extracts the translation code from an error chain. Returns
// the empty Code if err is not a translation Error.
func CodeOf(err error) Code {
	var te *Error
	if errors.As(err, &te) {
		return te.Code
	}
	return ""
}

// IsCode reports whether err carries the given translation code.
// Uses errors.As to handle wrapped errors.
func IsCode(err error, code Code) bool {
	return CodeOf(err) == code
}
