// Package router wires the HTTP routes to the user and blog handlers.
package router

import (
	"log/slog"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/Xurramov-Ogabek/42-lesson-Homework/internal/http/handlers/blog"
	"github.com/Xurramov-Ogabek/42-lesson-Homework/internal/http/handlers/user"
	"github.com/Xurramov-Ogabek/42-lesson-Homework/internal/http/middleware"
	"github.com/Xurramov-Ogabek/42-lesson-Homework/internal/utils/request"
)

// New registers every route on a stdlib ServeMux and wraps it in the
// middleware chain.
//
// Route table:
//
//	POST   /users, /register              → create a user
//	GET    /users/{identifier}            → get a user by username or email
//	GET    /profile/{identifier}          → same as above
//	PUT    /users/{identifier}            → update a user
//	DELETE /users/{identifier}            → delete a user
//	POST   /login                         → check credentials
//	POST   /blogs, /blog                  → create a blog post
//	GET    /blogs                         → list blog posts
//	GET    /blogs/{id}                    → get one blog post
//	PUT    /blogs/{id}                    → update a blog post
//	DELETE /blogs/{id}                    → delete a blog post
func New(users user.Store, blogs blog.Store, log *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /users", user.New(users))
	mux.HandleFunc("POST /register", user.New(users))
	mux.HandleFunc("GET /users/{identifier}", user.GetByIdentifier(users))
	mux.HandleFunc("GET /profile/{identifier}", user.GetByIdentifier(users))
	mux.HandleFunc("PUT /users/{identifier}", user.Update(users))
	mux.HandleFunc("DELETE /users/{identifier}", user.Delete(users))
	mux.HandleFunc("POST /login", user.Login(users))

	mux.HandleFunc("POST /blogs", blog.New(blogs))
	mux.HandleFunc("POST /blog", blog.New(blogs))
	mux.HandleFunc("GET /blogs", blog.GetList(blogs))
	mux.HandleFunc("GET /blogs/{id}", blog.GetByID(blogs))
	mux.HandleFunc("PUT /blogs/{id}", blog.Update(blogs))
	mux.HandleFunc("DELETE /blogs/{id}", blog.Delete(blogs))

	// Outermost first: the request id must exist before the logger reads
	// it, and Recoverer must sit inside the logger so a panic is logged as
	// a 500.
	var h http.Handler = mux
	h = chimw.RequestSize(request.MaxBodyBytes)(h)
	h = chimw.Recoverer(h)
	h = middleware.Logger(log)(h)
	h = chimw.RealIP(h)
	h = chimw.RequestID(h)

	return h
}
