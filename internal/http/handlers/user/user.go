// Package user contains the HTTP handlers for user accounts.
//
// Each exported function is a factory: it receives the store once at
// startup and returns the http.HandlerFunc the router calls per request.
//
//	router.HandleFunc("POST /users", user.New(users))
package user

import (
	"log/slog"
	"net/http"

	"github.com/Xurramov-Ogabek/42-lesson-Homework/internal/types"
	"github.com/Xurramov-Ogabek/42-lesson-Homework/internal/utils/request"
	"github.com/Xurramov-Ogabek/42-lesson-Homework/internal/utils/response"
)

// Store is what the handlers need from the user store.
type Store interface {
	Create(in types.UserInput) (types.User, error)
	FindByIdentifier(identifier string) (types.User, error)
	Update(identifier string, in types.UserInput) (types.User, error)
	Delete(identifier string) error
	Authenticate(identifier, password string) (types.User, error)
}

// ─────────────────────────────────────────────────────────────────────────────
// New handles POST /users and POST /register.
//
// Request body (JSON):
//
//	{ "username": "abc", "password": "abcde", "fullName": "", "age": 12,
//	  "email": "abc@example.com", "gender": null }
//
// Success response (201 Created):
//
//	{ "message": "user registered", "user": { "id": 1, ... } }
//
// Error responses:
//
//	400 Bad Request  : empty/malformed body, failed validation, taken username or email
//	500 Internal     : storage unavailable
//
// ─────────────────────────────────────────────────────────────────────────────
func New(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("creating a user")

		var in types.UserInput
		if err := request.DecodeJSON(r, &in); err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		created, err := store.Create(in)
		if err != nil {
			slog.Info("user not created", slog.String("error", err.Error()))
			response.WriteError(w, err)
			return
		}

		slog.Info("user created", slog.Int("id", created.ID))
		response.WriteJSON(w, http.StatusCreated, response.Message{
			Message: "user registered",
			User:    created.Public(),
		})
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetByIdentifier handles GET /users/{identifier} and GET /profile/{identifier}.
// The identifier is matched against username or email.
//
// Success response (200 OK): the user without its password.
// Error responses: 404 when no user matches, 500 on storage failure.
// ─────────────────────────────────────────────────────────────────────────────
func GetByIdentifier(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identifier := r.PathValue("identifier")
		slog.Info("getting a user", slog.String("identifier", identifier))

		u, err := store.FindByIdentifier(identifier)
		if err != nil {
			response.WriteError(w, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, u.Public())
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Update handles PUT /users/{identifier}.
// Only non-empty, non-zero fields in the body replace stored values.
//
// Success response (200 OK):
//
//	{ "message": "user updated", "user": { ... } }
//
// ─────────────────────────────────────────────────────────────────────────────
func Update(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identifier := r.PathValue("identifier")
		slog.Info("updating a user", slog.String("identifier", identifier))

		var in types.UserInput
		if err := request.DecodeJSON(r, &in); err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		updated, err := store.Update(identifier, in)
		if err != nil {
			response.WriteError(w, err)
			return
		}

		slog.Info("user updated", slog.Int("id", updated.ID))
		response.WriteJSON(w, http.StatusOK, response.Message{
			Message: "user updated",
			User:    updated.Public(),
		})
	}
}

// Delete handles DELETE /users/{identifier}. Every user whose username or
// email equals the identifier is removed.
func Delete(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identifier := r.PathValue("identifier")
		slog.Info("deleting a user", slog.String("identifier", identifier))

		if err := store.Delete(identifier); err != nil {
			response.WriteError(w, err)
			return
		}

		slog.Info("user deleted", slog.String("identifier", identifier))
		response.WriteJSON(w, http.StatusOK, response.Message{Message: "user deleted"})
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Login handles POST /login.
//
// Request body (JSON):
//
//	{ "identifier": "abc", "password": "abcde" }
//
// "username" or "email" may be sent instead of "identifier".
// No token or session is issued; a 200 only confirms the credentials.
//
// Error responses: 400 for an empty body, 401 for wrong credentials.
// ─────────────────────────────────────────────────────────────────────────────
func Login(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in types.LoginInput
		if err := request.DecodeJSON(r, &in); err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		identifier := in.Login()
		slog.Info("login attempt", slog.String("identifier", identifier))

		u, err := store.Authenticate(identifier, in.Password)
		if err != nil {
			response.WriteError(w, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, response.Message{
			Message: "login successful",
			User:    u.Public(),
		})
	}
}
