package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/careeros/backend/pkg/validator"
)

// envelope is the standard JSON response structure. Exactly one of Data and
// Error is set.
type envelope struct {
	Data  any          `json:"data,omitempty"`
	Error *errorDetail `json:"error,omitempty"`
}

type errorDetail struct {
	Code    string              `json:"code"`
	Message string              `json:"message,omitempty"`
	Details map[string][]string `json:"details,omitempty"`
}

// JSON writes a success envelope with the given status code.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Data: data})
}

// NoContent writes an empty 204 response.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// Error writes an error envelope derived from err. Validation errors render
// as 422 with per-field details, HTTPError values keep their status and
// code, request decoding failures become 400s, and anything else collapses
// to a generic 500 so internal causes are never echoed to callers.
func Error(w http.ResponseWriter, err error) {
	detail := &errorDetail{
		Code:    ErrInternalServerError.Code,
		Message: http.StatusText(http.StatusInternalServerError),
	}
	status := http.StatusInternalServerError

	var (
		verrs validator.ValidationErrors
		herr  HTTPError
	)
	switch {
	case errors.As(err, &verrs):
		status = ErrUnprocessableEntity.Status
		detail.Code = ErrUnprocessableEntity.Code
		detail.Message = "validation failed"
		detail.Details = make(map[string][]string, len(verrs.Fields()))
		for _, field := range verrs.Fields() {
			detail.Details[field] = verrs.Get(field)
		}
	case errors.As(err, &herr):
		status = herr.Status
		detail.Code = herr.Code
		detail.Message = herr.Message
		if detail.Message == "" {
			detail.Message = http.StatusText(herr.Status)
		}
	case errors.Is(err, ErrMissingContentType),
		errors.Is(err, ErrUnsupportedMediaType),
		errors.Is(err, ErrMalformedJSON),
		errors.Is(err, ErrBodyTooLarge):
		status = ErrBadRequest.Status
		detail.Code = ErrBadRequest.Code
		detail.Message = decodeErrorMessage(err)
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Error: detail})
}

// decodeErrorMessage keeps decode failure messages stable regardless of
// what the JSON parser wrapped into the error chain.
func decodeErrorMessage(err error) string {
	for _, sentinel := range []error{ErrMissingContentType, ErrUnsupportedMediaType, ErrMalformedJSON, ErrBodyTooLarge} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return ErrBadRequest.Code
}
