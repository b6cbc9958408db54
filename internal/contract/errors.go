package contract

import "github.com/alexanderramin/pauta/internal/domain"

type ErrorCode = domain.ErrorCode

const (
	ErrMissingProfile         ErrorCode = domain.CodeMissingProfile
	ErrMissingSubjects        ErrorCode = domain.CodeMissingSubjects
	ErrInvalidDateRange       ErrorCode = domain.CodeInvalidDateRange
	ErrForbiddenRegeneration  ErrorCode = domain.CodeForbiddenRegeneration
	ErrExecutionAlreadyExists ErrorCode = domain.CodeExecutionAlreadyExists
	ErrCannotExecuteRestDay   ErrorCode = domain.CodeCannotExecuteRestDay
	ErrDomainViolation        ErrorCode = domain.CodeDomainViolation
	ErrInfeasiblePlan         ErrorCode = domain.CodeInfeasiblePlan
	ErrConcurrencyConflict    ErrorCode = domain.CodeConcurrencyConflict
)

type Error = domain.Error
