// Package errors defines the application error type and the JSON error
// envelope every non-2xx response carries.
package errors

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/lingogate/lingogate/internal/server/middleware"
)

// Error is an application error carrying a machine-readable code and the
// HTTP status it maps to.
type Error struct {
	Code    string
	Message string
	Status  int
}

func (e *Error) Error() string {
	return e.Message
}

// User errors (400-level)

func NewInvalidInputError(message string) *Error {
	return &Error{Code: "INVALID_INPUT", Message: message, Status: http.StatusBadRequest}
}

func NewNotFoundError(message string) *Error {
	return &Error{Code: "NOT_FOUND", Message: message, Status: http.StatusNotFound}
}

func NewMethodNotAllowedError(message string) *Error {
	return &Error{Code: "METHOD_NOT_ALLOWED", Message: message, Status: http.StatusMethodNotAllowed}
}

func NewRateLimitedError(message string) *Error {
	return &Error{Code: "RATE_LIMITED", Message: message, Status: http.StatusTooManyRequests}
}

func NewOverloadedError(message string) *Error {
	return &Error{Code: "OVERLOADED", Message: message, Status: http.StatusServiceUnavailable}
}

// Server errors (500-level)

func NewInternalError(message string) *Error {
	return &Error{Code: "INTERNAL_ERROR", Message: message, Status: http.StatusInternalServerError}
}

func NewConfigInvalidError(message string) *Error {
	return &Error{Code: "CONFIG_INVALID", Message: message, Status: http.StatusInternalServerError}
}

// HTTPErrorResponse is the JSON envelope for error responses.
type HTTPErrorResponse struct {
	Error HTTPErrorDetail `json:"error"`
}

// HTTPErrorDetail carries the error body fields.
type HTTPErrorDetail struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// RespondWithError writes err as a JSON error envelope. Unrecognized
// errors are rendered as INTERNAL_ERROR without leaking their message.
func RespondWithError(w http.ResponseWriter, r *http.Request, err error) {
	appErr := &Error{}
	if !errors.As(err, &appErr) {
		appErr = NewInternalError("internal server error")
	}

	response := HTTPErrorResponse{
		Error: HTTPErrorDetail{
			Code:      appErr.Code,
			Message:   appErr.Message,
			RequestID: middleware.GetRequestID(r.Context()),
		},
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.Status)
	_ = json.NewEncoder(w).Encode(response)
}
