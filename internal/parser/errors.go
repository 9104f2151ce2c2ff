package parser

import (
	"kangaroo/internal/diag"
	"kangaroo/internal/source"
)

// Error is a structured parse error. Two errors match under errors.Is
// when their codes are equal, so callers can test against the sentinels below.
type Error struct {
	Code    diag.Code
	Span    source.Span
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

const (
	msgMissingHash       = "missing '#'!"
	msgMissingIdentifier = "missing Identifier!"
	msgMissingAssign     = "missing '='!"
	msgMissingSemicolon  = "missing ';'!"
	msgExpectExpression  = "expected expression"
	msgExpectArgument    = "expected argument name"
	msgUnclosedParen     = "missing ')'!"
)

var (
	ErrMissingHash       = &Error{Code: diag.SynMissingHash, Message: msgMissingHash}
	ErrMissingIdentifier = &Error{Code: diag.SynMissingIdentifier, Message: msgMissingIdentifier}
	ErrMissingAssign     = &Error{Code: diag.SynMissingAssign, Message: msgMissingAssign}
	ErrMissingSemicolon  = &Error{Code: diag.SynMissingSemicolon, Message: msgMissingSemicolon}
	ErrExpectExpression  = &Error{Code: diag.SynExpectExpression, Message: msgExpectExpression}
	ErrExpectArgument    = &Error{Code: diag.SynExpectArgument, Message: msgExpectArgument}
	ErrUnclosedParen     = &Error{Code: diag.SynUnclosedParen, Message: msgUnclosedParen}
)
