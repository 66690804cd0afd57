package routekit

import (
	"errors"
	"fmt"
	"net/http"
)

// HTTPError is an error with the status code and body a handler failure is rendered with
type HTTPError struct {
	Code     int    `json:"code"`
	Message  string `json:"message"`
	Details  any    `json:"details,omitempty"`
	Internal error  `json:"-"` // underlying error, never sent to clients
}

// Error implements the error interface
func (e *HTTPError) Error() string {
	if e.Internal != nil {
		return fmt.Sprintf("HTTP %d: %s: %v", e.Code, e.Message, e.Internal)
	}
	return fmt.Sprintf("HTTP %d: %s", e.Code, e.Message)
}

// Unwrap returns the internal error
func (e *HTTPError) Unwrap() error {
	return e.Internal
}

// NewHTTPError creates a new HTTPError. An empty message uses the status text.
func NewHTTPError(code int, message string) *HTTPError {
	if message == "" {
		message = http.StatusText(code)
	}
	return &HTTPError{Code: code, Message: message}
}

// ErrBadRequest creates a 400 Bad Request error
func ErrBadRequest(message string) *HTTPError {
	return NewHTTPError(http.StatusBadRequest, message)
}

// ErrUnauthorized creates a 401 Unauthorized error
func ErrUnauthorized(message string) *HTTPError {
	return NewHTTPError(http.StatusUnauthorized, message)
}

// ErrForbidden creates a 403 Forbidden error
func ErrForbidden(message string) *HTTPError {
	return NewHTTPError(http.StatusForbidden, message)
}

// ErrNotFound creates a 404 Not Found error
func ErrNotFound(message string) *HTTPError {
	return NewHTTPError(http.StatusNotFound, message)
}

// ErrConflict creates a 409 Conflict error
func ErrConflict(message string) *HTTPError {
	return NewHTTPError(http.StatusConflict, message)
}

// ErrTooManyRequests creates a 429 Too Many Requests error
func ErrTooManyRequests(message string) *HTTPError {
	return NewHTTPError(http.StatusTooManyRequests, message)
}

// BindError reports a request part that could not be decoded
func BindError(part string, err error) *HTTPError {
	he := ErrBadRequest("invalid " + part)
	he.Internal = err
	return he
}

// PanicError converts a value recovered from a handler panic
func PanicError(recovered any) *HTTPError {
	he := NewHTTPError(http.StatusInternalServerError, "")
	if err, ok := recovered.(error); ok {
		he.Internal = fmt.Errorf("panic: %w", err)
	} else {
		he.Internal = fmt.Errorf("panic: %v", recovered)
	}
	return he
}

// AsHTTPError returns the HTTPError in err's chain, or a 500 wrapping err
func AsHTTPError(err error) *HTTPError {
	var he *HTTPError
	if errors.As(err, &he) {
		return he
	}
	he = NewHTTPError(http.StatusInternalServerError, "")
	he.Internal = err
	return he
}
