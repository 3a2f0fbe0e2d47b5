// Package blog contains the HTTP handlers for blog posts.
package blog

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Xurramov-Ogabek/42-lesson-Homework/internal/types"
	"github.com/Xurramov-Ogabek/42-lesson-Homework/internal/utils/request"
	"github.com/Xurramov-Ogabek/42-lesson-Homework/internal/utils/response"
)

// Store is what the handlers need from the blog store.
type Store interface {
	Create(in types.BlogInput) (types.Blog, error)
	List() ([]types.Blog, error)
	FindByID(id int) (types.Blog, error)
	Update(id int, in types.BlogInput) (types.Blog, error)
	Delete(id int) error
}

var errInvalidID = errors.New("invalid id: must be an integer")

// ─────────────────────────────────────────────────────────────────────────────
// New handles POST /blogs and POST /blog.
//
// Request body (JSON):
//
//	{ "title": "My Post", "content": "text", "slug": "optional", "tags": ["go"] }
//
// Success response (201 Created):
//
//	{ "message": "blog created", "blog": { "id": 1, "slug": "my-post", "comments": [], ... } }
//
// ─────────────────────────────────────────────────────────────────────────────
func New(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("creating a blog")

		var in types.BlogInput
		if err := request.DecodeJSON(r, &in); err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		created, err := store.Create(in)
		if err != nil {
			response.WriteError(w, err)
			return
		}

		slog.Info("blog created", slog.Int("id", created.ID), slog.String("slug", created.Slug))
		response.WriteJSON(w, http.StatusCreated, response.Message{
			Message: "blog created",
			Blog:    created,
		})
	}
}

// GetList handles GET /blogs: every post, in insertion order, as a JSON
// array ([] when there are none).
func GetList(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("getting all blogs")

		blogs, err := store.List()
		if err != nil {
			response.WriteError(w, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, blogs)
	}
}

// GetByID handles GET /blogs/{id}.
func GetByID(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		slog.Info("getting a blog", slog.Int("id", id))

		b, err := store.FindByID(id)
		if err != nil {
			response.WriteError(w, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, b)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Update handles PUT /blogs/{id}.
// Non-empty title, slug and content replace stored values; a tags array,
// even an empty one, replaces the stored tags.
//
// Error responses:
//
//	400 Bad Request  : id is not an integer, empty/malformed body
//	404 Not Found    : no blog with that id
//
// ─────────────────────────────────────────────────────────────────────────────
func Update(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		slog.Info("updating a blog", slog.Int("id", id))

		var in types.BlogInput
		if err := request.DecodeJSON(r, &in); err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		updated, err := store.Update(id, in)
		if err != nil {
			response.WriteError(w, err)
			return
		}

		slog.Info("blog updated", slog.Int("id", id))
		response.WriteJSON(w, http.StatusOK, response.Message{
			Message: "blog updated",
			Blog:    updated,
		})
	}
}

// Delete handles DELETE /blogs/{id}.
func Delete(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		slog.Info("deleting a blog", slog.Int("id", id))

		if err := store.Delete(id); err != nil {
			response.WriteError(w, err)
			return
		}

		slog.Info("blog deleted", slog.Int("id", id))
		response.WriteJSON(w, http.StatusOK, response.Message{Message: "blog deleted"})
	}
}

// pathID parses the {id} path segment, writing a 400 itself on failure.
func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(errInvalidID))
		return 0, false
	}
	return id, true
}
