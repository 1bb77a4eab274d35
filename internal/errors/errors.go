package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents a stringlens error code.
type ErrorCode string

const (
	ErrInvalidRequest   ErrorCode = "INVALID_REQUEST"   // 400
	ErrUnparseableQuery ErrorCode = "UNPARSEABLE_QUERY" // 400
	ErrNotFound         ErrorCode = "NOT_FOUND"         // 404
	ErrAlreadyExists    ErrorCode = "ALREADY_EXISTS"    // 409
	ErrUnprocessable    ErrorCode = "UNPROCESSABLE"     // 422
	ErrInternal         ErrorCode = "INTERNAL"          // 500
)

// LensError represents a structured error with code, status, and details.
type LensError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *LensError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidRequest creates a 400 error for missing or malformed input.
func NewInvalidRequest(msg string) *LensError {
	return &LensError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewUnparseableQuery creates a 400 error for a natural-language query that no rule understood.
func NewUnparseableQuery(query string) *LensError {
	return &LensError{
		Code:    ErrUnparseableQuery,
		Status:  400,
		Message: "Unable to parse natural language query",
		Details: map[string]any{"query": query},
	}
}

// NewNotFound creates a 404 error for when a string is not in the store.
func NewNotFound(id string) *LensError {
	return &LensError{
		Code:    ErrNotFound,
		Status:  404,
		Message: "String does not exist in the system",
		Details: map[string]any{"id": id},
	}
}

// NewAlreadyExists creates a 409 error for duplicate content.
func NewAlreadyExists(id string) *LensError {
	return &LensError{
		Code:    ErrAlreadyExists,
		Status:  409,
		Message: "String already exists in the system",
		Details: map[string]any{"id": id},
	}
}

// NewUnprocessable creates a 422 error for input that parsed but has the wrong type.
func NewUnprocessable(msg string) *LensError {
	return &LensError{
		Code:    ErrUnprocessable,
		Status:  422,
		Message: msg,
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
// The message stays generic; the cause is kept in Details for logging only.
func NewInternal(err error) *LensError {
	details := map[string]any{}
	if err != nil {
		details["internal_error"] = err.Error()
	}
	return &LensError{
		Code:    ErrInternal,
		Status:  500,
		Message: "Internal Server Error",
		Details: details,
	}
}

// As returns err as a *LensError, wrapping anything else as INTERNAL.
func As(err error) *LensError {
	var lErr *LensError
	if stderrors.As(err, &lErr) {
		return lErr
	}
	return NewInternal(err)
}

// Is checks if an error is a LensError with the given code.
func Is(err error, code ErrorCode) bool {
	var lErr *LensError
	if stderrors.As(err, &lErr) {
		return lErr.Code == code
	}
	return false
}
