package errors

import (
	"fmt"
)

// AppError is the single error shape crossing component boundaries. Tool
// handlers turn any AppError into an error-flagged text result; the HTTP
// layer uses StatusCode only for transport-level faults.
type AppError struct {
	Code       string                 `json:"code"`
	Message    string                 `json:"message"`
	Details    map[string]interface{} `json:"details,omitempty"`
	StatusCode int                    `json:"-"`
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func New(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Details:    make(map[string]interface{}),
	}
}

func (e *AppError) WithDetails(details map[string]interface{}) *AppError {
	e.Details = details
	return e
}

// Wrap returns a copy of base with cause appended to the message and
// recorded in Details. The shared base value is never mutated.
func Wrap(base *AppError, cause error) *AppError {
	return &AppError{
		Code:       base.Code,
		Message:    fmt.Sprintf("%s: %v", base.Message, cause),
		StatusCode: base.StatusCode,
		Details:    map[string]interface{}{"cause": cause.Error()},
	}
}
