package errors

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific error condition
type ErrorCode string

const (
	// Configuration errors
	ErrCodeConfigNotFound   ErrorCode = "CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid    ErrorCode = "CONFIG_INVALID"
	ErrCodeConfigValidation ErrorCode = "CONFIG_VALIDATION"

	// Store errors
	ErrCodeStoreRead  ErrorCode = "STORE_READ"
	ErrCodeStoreWrite ErrorCode = "STORE_WRITE"

	// List errors
	ErrCodeDecodeFailed   ErrorCode = "DECODE_FAILED"
	ErrCodeEncodeFailed   ErrorCode = "ENCODE_FAILED"
	ErrCodeIndexRange     ErrorCode = "INDEX_OUT_OF_RANGE"
	ErrCodeBadPermutation ErrorCode = "BAD_PERMUTATION"

	// Selection errors
	ErrCodeInvalidSelection ErrorCode = "INVALID_SELECTION"

	// Host errors
	ErrCodeHostAttach ErrorCode = "HOST_ATTACH"

	// General errors
	ErrCodeInternal     ErrorCode = "INTERNAL_ERROR"
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)

// MoorError represents a structured error with context
type MoorError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Cause   error                  `json:"-"`
}

// Error implements the error interface
func (e *MoorError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *MoorError) Unwrap() error {
	return e.Cause
}

// WithDetail adds a detail to the error
func (e *MoorError) WithDetail(key string, value interface{}) *MoorError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// ToJSON converts the error to JSON
func (e *MoorError) ToJSON() string {
	data, _ := json.MarshalIndent(e, "", "  ")
	return string(data)
}

// New creates a new MoorError
func New(code ErrorCode, message string) *MoorError {
	return &MoorError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a MoorError
func Wrap(err error, code ErrorCode, message string) *MoorError {
	return &MoorError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Is checks if an error is a specific MoorError code
func Is(err error, code ErrorCode) bool {
	if err == nil {
		return false
	}

	moorErr, ok := err.(*MoorError)
	if !ok {
		// Try to unwrap
		if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
			return Is(unwrapper.Unwrap(), code)
		}
		return false
	}

	return moorErr.Code == code
}

// GetCode extracts the error code from an error
func GetCode(err error) ErrorCode {
	if err == nil {
		return ""
	}

	moorErr, ok := err.(*MoorError)
	if !ok {
		// Try to unwrap
		if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
			return GetCode(unwrapper.Unwrap())
		}
		return ""
	}

	return moorErr.Code
}
