package httpx

import (
	"errors"
	"net/http"
)

// Sentinel errors for the domain layer.
var (
	ErrNotFound     = errors.New("resource not found")
	ErrDuplicate    = errors.New("duplicate entry")
	ErrValidation   = errors.New("validation failed")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")
)

// StatusError carries a specific HTTP status and user-facing message
// alongside a sentinel for errors.Is matching.
type StatusError struct {
	Code    int
	Message string
	Err     error
}

func (e *StatusError) Error() string { return e.Message }

// Unwrap exposes the sentinel for errors.Is.
func (e *StatusError) Unwrap() error { return e.Err }

// Fail builds a StatusError around a sentinel.
func Fail(code int, message string, sentinel error) error {
	return &StatusError{Code: code, Message: message, Err: sentinel}
}

// RespondError maps domain errors to envelope responses.
func RespondError(w http.ResponseWriter, err error) {
	var se *StatusError
	if errors.As(err, &se) {
		Error(w, se.Code, se.Message)
		return
	}
	switch {
	case errors.Is(err, ErrNotFound):
		Error(w, http.StatusNotFound, "Resource not found.")
	case errors.Is(err, ErrDuplicate):
		Error(w, http.StatusConflict, err.Error())
	case errors.Is(err, ErrValidation):
		Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrForbidden):
		Error(w, http.StatusForbidden, "Access denied. You do not have permission to access this resource.")
	case errors.Is(err, ErrUnauthorized):
		Error(w, http.StatusUnauthorized, "Authentication required. Please provide a valid JWT.")
	default:
		Error(w, http.StatusInternalServerError, "Internal server error.")
	}
}
