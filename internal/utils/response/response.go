// Package response provides helpers for writing consistent JSON HTTP responses.
//
// Every handler in this application sends JSON back to the client.
// Rather than repeating the same three lines (set header, set status,
// encode JSON) in every handler, we centralise them here, together with
// the mapping from store errors to HTTP status codes.
package response

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Xurramov-Ogabek/42-lesson-Homework/internal/store"
)

// ─────────────────────────────────────────────────────────────────────────────
// Response is the standard envelope returned for error cases:
//
//	{ "status": "error", "error": "username must be at least 3 characters long" }
//
// Success responses carry their own shape (a record, a list, or a message
// plus the affected record).
// ─────────────────────────────────────────────────────────────────────────────
type Response struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Message is the success envelope for mutations. Only one of User and
// Blog is set.
type Message struct {
	Message string `json:"message"`
	User    any    `json:"user,omitempty"`
	Blog    any    `json:"blog,omitempty"`
}

// WriteJSON writes a JSON-encoded response with the given HTTP status code.
//
// IMPORTANT ORDER: Header() → WriteHeader() → body writes.
// Once WriteHeader is called (or the first Write), headers are locked.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// GeneralError wraps any Go error into our standard Response shape.
func GeneralError(err error) Response {
	return Response{
		Status: StatusError,
		Error:  err.Error(),
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// FromError maps the store error taxonomy to a status code and body.
//
//	ValidationError, ErrConflict → 400
//	ErrInvalidCredentials        → 401
//	ErrNotFound                  → 404
//	anything else                → 500, with a generic message
//
// Storage failures and unknown errors are not echoed to the client; the
// caller is expected to log them.
// ─────────────────────────────────────────────────────────────────────────────
func FromError(err error) (int, Response) {
	var verr *store.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, GeneralError(verr)
	case errors.Is(err, store.ErrConflict):
		return http.StatusBadRequest, GeneralError(err)
	case errors.Is(err, store.ErrInvalidCredentials):
		return http.StatusUnauthorized, GeneralError(err)
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound, GeneralError(err)
	case errors.Is(err, store.ErrStorageUnavailable):
		return http.StatusInternalServerError, GeneralError(store.ErrStorageUnavailable)
	default:
		return http.StatusInternalServerError, GeneralError(errors.New("internal server error"))
	}
}

// WriteError writes the FromError response for err and logs server-side
// failures at error level.
func WriteError(w http.ResponseWriter, err error) {
	status, body := FromError(err)
	if status >= http.StatusInternalServerError {
		slog.Error("request failed", slog.String("error", err.Error()))
	}
	_ = WriteJSON(w, status, body)
}
