// Package types holds the shared data structures used across the
// application. Keeping them in one place prevents import cycles: handlers,
// stores and storage can all import types without depending on each other.
//
// The json tags on User and Blog are the persisted layout of the
// collection documents, so renaming one breaks existing data files.
package types

import "encoding/json"

// User is one record of the users collection.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	// Password holds whatever the configured hasher produced; with the
	// plain hasher that is the password itself.
	Password string   `json:"password"`
	FullName string   `json:"fullName"`
	Age      *float64 `json:"age,omitempty"`
	Email    string   `json:"email,omitempty"`
	Gender   *string  `json:"gender"`
}

// PublicUser is a User as returned over HTTP: everything but the password.
type PublicUser struct {
	ID       int      `json:"id"`
	Username string   `json:"username"`
	FullName string   `json:"fullName"`
	Age      *float64 `json:"age,omitempty"`
	Email    string   `json:"email,omitempty"`
	Gender   *string  `json:"gender"`
}

// Public strips the password.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:       u.ID,
		Username: u.Username,
		FullName: u.FullName,
		Age:      u.Age,
		Email:    u.Email,
		Gender:   u.Gender,
	}
}

// UserInput is the request body for registering and updating a user.
//
// On update every zero value ("" or 0) and every missing field means
// "keep the current value".
type UserInput struct {
	Username string   `json:"username"`
	Password string   `json:"password"`
	FullName string   `json:"fullName"`
	Age      *float64 `json:"age"`
	Email    string   `json:"email"`
	Gender   *string  `json:"gender"`
}

// LoginInput is the request body for POST /login. Identifier may be a
// username or an email; Username and Email are accepted as aliases.
type LoginInput struct {
	Identifier string `json:"identifier"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	Password   string `json:"password"`
}

// Login returns the identifier the client meant.
func (in LoginInput) Login() string {
	switch {
	case in.Identifier != "":
		return in.Identifier
	case in.Username != "":
		return in.Username
	default:
		return in.Email
	}
}

// Blog is one record of the blogs collection.
type Blog struct {
	ID      int      `json:"id"`
	Title   string   `json:"title"`
	Slug    string   `json:"slug"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
	// Comments are kept exactly as stored; nothing in the API creates them.
	Comments []json.RawMessage `json:"comments"`
}

// BlogInput is the request body for creating and updating a blog post.
// The validate tags apply on creation only.
type BlogInput struct {
	Title   string   `json:"title"   validate:"required"`
	Slug    string   `json:"slug"`
	Content string   `json:"content" validate:"required"`
	Tags    []string `json:"tags"`
}
