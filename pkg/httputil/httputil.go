// Package httputil centralizes JSON encoding, request decoding, and domain
// error translation so every handler speaks the same wire envelope.
//
// Error responses carry a human-readable "message" field. Server-side
// failures additionally expose the underlying error detail under "error"
// for operators; validation failures never do.
package httputil

import (
	"encoding/json"
	"errors"
	"net/http"

	"bloodcamp/pkg/domainerrors"
)

// maxBodyBytes caps request bodies well above any legitimate registration
// payload.
const maxBodyBytes = 1 << 20

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// ErrorResponse is the error envelope for every non-2xx response.
type ErrorResponse struct {
	Message string `json:"message"`
	Detail  string `json:"error,omitempty"`
}

// WriteError translates a domain error into the HTTP error envelope.
// Unrecognized errors are treated as internal failures.
func WriteError(w http.ResponseWriter, err error) {
	var de *domainerrors.Error
	if !errors.As(err, &de) {
		de = domainerrors.Wrap(err, domainerrors.CodeInternal, "internal server error")
	}

	status := domainerrors.ToHTTPStatus(de.Code)
	resp := ErrorResponse{Message: de.Message}
	if status >= http.StatusInternalServerError {
		if cause := de.Unwrap(); cause != nil {
			resp.Detail = cause.Error()
		}
	}
	WriteJSON(w, status, resp)
}

// DecodeJSON decodes a request body into T, rejecting unknown overlong
// bodies and malformed JSON with a bad_request error.
func DecodeJSON[T any](r *http.Request) (*T, error) {
	defer r.Body.Close()

	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	v := new(T)
	if err := dec.Decode(v); err != nil {
		return nil, domainerrors.New(domainerrors.CodeBadRequest, "invalid request body")
	}
	return v, nil
}
