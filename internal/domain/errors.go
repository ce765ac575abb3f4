package domain

import (
	"errors"
	"time"
)

// Domain errors
var (
	// Team errors
	ErrTeamNotFound = errors.New("team not found")

	// Player errors
	ErrPlayerNotFound = errors.New("player not found")

	// Transfer errors
	ErrInsufficientBalance = errors.New("insufficient balance to pay the transfer fee")
	ErrInvalidAge          = errors.New("player age must be greater than zero")
	ErrConcurrencyConflict = errors.New("transfer conflicted with a concurrent transaction")

	// General errors
	ErrInvalidInput  = errors.New("invalid input")
	ErrInternalError = errors.New("internal server error")
)

// ErrorCode represents API error codes
type ErrorCode string

const (
	CodeNotFound            ErrorCode = "NOT_FOUND"
	CodeInsufficientBalance ErrorCode = "INSUFFICIENT_BALANCE"
	CodeValidationFailed    ErrorCode = "VALIDATION_FAILED"
	CodeBadRequest          ErrorCode = "BAD_REQUEST"
	CodeConflict            ErrorCode = "CONFLICT"
	CodeInternalError       ErrorCode = "INTERNAL_ERROR"
)

// APIError represents a structured error response
type APIError struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Timestamp string    `json:"timestamp"`
}

// Error implements error interface
func (e *APIError) Error() string {
	return string(e.Code) + ": " + e.Message
}

// NewAPIError creates a new API error. The timestamp is taken at construction
// time; there is no shared formatter state.
func NewAPIError(code ErrorCode, message string) *APIError {
	return &APIError{
		Code:      code,
		Message:   message,
		Timestamp: time.Now().UTC().Format("2006-01-02 15:04"),
	}
}

// ToAPIError converts domain errors to API errors
func ToAPIError(err error) *APIError {
	switch {
	case errors.Is(err, ErrTeamNotFound), errors.Is(err, ErrPlayerNotFound):
		return NewAPIError(CodeNotFound, err.Error())
	case errors.Is(err, ErrInsufficientBalance):
		return NewAPIError(CodeInsufficientBalance, err.Error())
	case errors.Is(err, ErrConcurrencyConflict):
		return NewAPIError(CodeConflict, err.Error())
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrInvalidAge):
		return NewAPIError(CodeBadRequest, err.Error())
	default:
		return NewAPIError(CodeInternalError, "internal server error")
	}
}
