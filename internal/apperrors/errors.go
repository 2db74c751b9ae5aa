package apperrors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeInvalidInput = "INVALID_INPUT"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeUpstream     = "UPSTREAM_FETCH_FAILED"
	CodeInternal     = "INTERNAL_ERROR"
)

// AppError is an error that knows how it is presented to an HTTP caller.
type AppError struct {
	Code       string
	Message    string
	Details    string
	HTTPStatus int
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error { return e.Err }

func (e *AppError) StatusCode() int { return e.HTTPStatus }

// ErrorResponse is the body written for every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

func InvalidInput(message, details string) *AppError {
	return &AppError{
		Code:       CodeInvalidInput,
		Message:    message,
		Details:    details,
		HTTPStatus: http.StatusBadRequest,
	}
}

func Unauthorized(details string) *AppError {
	return &AppError{
		Code:       CodeUnauthorized,
		Message:    "Unauthorized",
		Details:    details,
		HTTPStatus: http.StatusUnauthorized,
	}
}

func Upstream(err error) *AppError {
	return &AppError{
		Code:       CodeUpstream,
		Message:    "Failed to fetch report",
		Details:    err.Error(),
		HTTPStatus: http.StatusBadGateway,
		Err:        err,
	}
}

func Internal(message string, err error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    message,
		Details:    "unexpected error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// AsAppError returns err as an *AppError, wrapping anything else as internal.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal("Internal server error", err)
}

func WriteError(w http.ResponseWriter, err error) {
	appErr := AsAppError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.StatusCode())
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: appErr.Message, Details: appErr.Details})
}
