package httpx

import "net/http"

// HTTPError represents an HTTP error with a status code, a stable machine
// code, and a human-readable message. The zero Message falls back to the
// standard status text when rendered.
type HTTPError struct {
	Status  int    // HTTP status code
	Code    string // machine-readable error code (e.g. "not_found", "unauthorized")
	Message string // human-readable message
}

// Error implements the error interface.
func (e HTTPError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Code
}

// WithMessage returns a copy of the error with a specific human message,
// keeping the status and machine code intact.
func (e HTTPError) WithMessage(msg string) HTTPError {
	e.Message = msg
	return e
}

var (
	ErrBadRequest          = HTTPError{Status: http.StatusBadRequest, Code: "bad_request"}
	ErrUnauthorized        = HTTPError{Status: http.StatusUnauthorized, Code: "unauthorized"}
	ErrPaymentRequired     = HTTPError{Status: http.StatusPaymentRequired, Code: "payment_required"}
	ErrForbidden           = HTTPError{Status: http.StatusForbidden, Code: "forbidden"}
	ErrNotFound            = HTTPError{Status: http.StatusNotFound, Code: "not_found"}
	ErrConflict            = HTTPError{Status: http.StatusConflict, Code: "conflict"}
	ErrUnprocessableEntity = HTTPError{Status: http.StatusUnprocessableEntity, Code: "validation_error"}
	ErrInternalServerError = HTTPError{Status: http.StatusInternalServerError, Code: "internal_error"}
)

// NewHTTPError creates a custom HTTP error with the given status code and machine code.
func NewHTTPError(status int, code string) HTTPError {
	return HTTPError{Status: status, Code: code}
}
