// Package request decodes JSON request bodies the same way in every handler.
package request

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// MaxBodyBytes caps every request body; the router enforces it.
const MaxBodyBytes = 1 << 20

var (
	// ErrEmptyBody is returned when the client sent no body at all.
	ErrEmptyBody = errors.New("request body is empty")
	// ErrBodyTooLarge is returned once a body passes MaxBodyBytes.
	ErrBodyTooLarge = errors.New("request body is too large")
)

// DecodeJSON decodes the body of r into v. An empty body is ErrEmptyBody
// and a body cut off by http.MaxBytesReader is ErrBodyTooLarge;
// malformed JSON or a type mismatch is returned as the decoder reports it.
func DecodeJSON(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return ErrEmptyBody
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return ErrBodyTooLarge
	}
	return err
}
