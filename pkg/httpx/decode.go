package httpx

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
)

// DefaultMaxBodySize limits JSON request bodies to 1 MiB. Auth and billing
// payloads are tiny; anything larger is abuse.
const DefaultMaxBodySize = 1 << 20

var (
	ErrMissingContentType   = errors.New("missing content-type header, expected application/json")
	ErrUnsupportedMediaType = errors.New("unsupported media type, expected application/json")
	ErrMalformedJSON        = errors.New("malformed JSON request body")
	ErrBodyTooLarge         = errors.New("request body too large")
)

// DecodeJSON reads and unmarshals a JSON request body into v. Unknown
// fields are rejected so typos fail loudly rather than being silently
// dropped.
func DecodeJSON(r *http.Request, v any) error {
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return ErrMissingContentType
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil || mediaType != "application/json" {
		return ErrUnsupportedMediaType
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, DefaultMaxBodySize+1))
	if err != nil {
		return errors.Join(ErrMalformedJSON, err)
	}
	if len(body) > DefaultMaxBodySize {
		return ErrBodyTooLarge
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Join(ErrMalformedJSON, err)
	}

	return nil
}
