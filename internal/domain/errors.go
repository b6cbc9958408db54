package domain

import (
	"errors"
	"fmt"
)

// ErrorCode identifies the kind of failure a planning operation reports.
type ErrorCode string

const (
	CodeMissingProfile         ErrorCode = "MISSING_PROFILE"
	CodeMissingSubjects        ErrorCode = "MISSING_SUBJECTS"
	CodeInvalidDateRange       ErrorCode = "INVALID_DATE_RANGE"
	CodeForbiddenRegeneration  ErrorCode = "FORBIDDEN_REGENERATION"
	CodeExecutionAlreadyExists ErrorCode = "EXECUTION_ALREADY_EXISTS"
	CodeCannotExecuteRestDay   ErrorCode = "CANNOT_EXECUTE_REST_DAY"
	CodeDomainViolation        ErrorCode = "DOMAIN_VIOLATION"
	CodeInfeasiblePlan         ErrorCode = "INFEASIBLE_PLAN"
	CodeConcurrencyConflict    ErrorCode = "CONCURRENCY_CONFLICT"
)

// Error is the typed failure returned by every planning operation.
type Error struct {
	Code    ErrorCode
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Code)
	}
	return string(e.Code) + ": " + e.Message
}

// Is reports whether target is a *Error with the same code, so the sentinel
// values below can be used with errors.Is.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// Sentinels for errors.Is comparisons.
var (
	ErrMissingProfile         = &Error{Code: CodeMissingProfile}
	ErrMissingSubjects        = &Error{Code: CodeMissingSubjects}
	ErrInvalidDateRange       = &Error{Code: CodeInvalidDateRange}
	ErrForbiddenRegeneration  = &Error{Code: CodeForbiddenRegeneration}
	ErrExecutionAlreadyExists = &Error{Code: CodeExecutionAlreadyExists}
	ErrCannotExecuteRestDay   = &Error{Code: CodeCannotExecuteRestDay}
	ErrDomainViolation        = &Error{Code: CodeDomainViolation}
	ErrInfeasiblePlan         = &Error{Code: CodeInfeasiblePlan}
	ErrConcurrencyConflict    = &Error{Code: CodeConcurrencyConflict}
)

// Errorf builds a typed error with a formatted message.
func Errorf(code ErrorCode, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// CodeOf returns the code of the first *Error in err's chain, or "" when
// err carries no domain code.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
