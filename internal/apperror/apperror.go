// Package apperror defines the typed failures shared by the repositories,
// services and HTTP handlers.
//
// Services return *Error values; handlers map them to a status with HTTPStatus.
// Matching with errors.Is compares codes, so
//
//	errors.Is(err, apperror.ErrNotFound)
//
// holds for any not-found error regardless of its message.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Code is a machine-readable failure class.
type Code string

const (
	CodeValidation        Code = "VALIDATION"
	CodeNotFound          Code = "NOT_FOUND"
	CodeConflict          Code = "CONFLICT"
	CodeTransactionFailed Code = "TRANSACTION_FAILED"
	CodeStoreUnavailable  Code = "STORE_UNAVAILABLE"
	CodeInternal          Code = "INTERNAL"
)

// HTTPStatus returns the response status for the code.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeValidation:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	case CodeStoreUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Error is a domain failure with a code, a client-safe message and an optional cause.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Is matches any *Error carrying the same code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// HTTPStatus returns the response status for the error's code.
func (e *Error) HTTPStatus() int {
	return e.Code.HTTPStatus()
}

// ClientError reports whether the failure is the caller's fault (4xx).
func (e *Error) ClientError() bool {
	return e.HTTPStatus() < http.StatusInternalServerError
}

// Sentinels for errors.Is.
var (
	ErrValidation        = &Error{Code: CodeValidation, Message: "validation failed"}
	ErrNotFound          = &Error{Code: CodeNotFound, Message: "not found"}
	ErrConflict          = &Error{Code: CodeConflict, Message: "conflict"}
	ErrTransactionFailed = &Error{Code: CodeTransactionFailed, Message: "transaction failed"}
	ErrStoreUnavailable  = &Error{Code: CodeStoreUnavailable, Message: "store unavailable"}
	ErrInternal          = &Error{Code: CodeInternal, Message: "internal error"}
)

func Validation(msg string) *Error {
	return &Error{Code: CodeValidation, Message: msg}
}

// ValidationWithDetails carries per-field messages keyed by JSON field name.
func ValidationWithDetails(msg string, fields map[string]string) *Error {
	return &Error{Code: CodeValidation, Message: msg, Details: fields}
}

func NotFound(msg string) *Error {
	return &Error{Code: CodeNotFound, Message: msg}
}

func Conflict(msg string) *Error {
	return &Error{Code: CodeConflict, Message: msg}
}

// TransactionFailed wraps a failure inside a multi-row mutation that was rolled back.
func TransactionFailed(op string, err error) *Error {
	return &Error{Code: CodeTransactionFailed, Message: op + " failed and was rolled back", cause: err}
}

func StoreUnavailable(err error) *Error {
	return &Error{Code: CodeStoreUnavailable, Message: "data store unavailable", cause: err}
}

func Internal(op string, err error) *Error {
	return &Error{Code: CodeInternal, Message: op + " failed", cause: err}
}

// From returns err as an *Error, treating anything untyped as internal.
func From(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Internal("request", err)
}
