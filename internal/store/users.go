// Package store implements the user and blog collections on top of
// storage.Collection: validation, identity, sequential ids and the
// "truthy fields overwrite" update rule.
//
// Every call reloads its collection; nothing is cached between calls.
package store

import (
	"errors"
	"fmt"

	"github.com/Xurramov-Ogabek/42-lesson-Homework/internal/password"
	"github.com/Xurramov-Ogabek/42-lesson-Homework/internal/storage"
	"github.com/Xurramov-Ogabek/42-lesson-Homework/internal/types"
)

// Collection names, also the jsonfile base names.
const (
	UsersCollection = "users"
	BlogsCollection = "blogs"
)

// UserPolicy holds the creation thresholds. MinAge 0 disables the age
// check; any positive value also makes age mandatory.
type UserPolicy struct {
	MinUsernameLength int
	MinPasswordLength int
	MinAge            int
}

// DefaultUserPolicy is the lenient variant: no age requirement.
var DefaultUserPolicy = UserPolicy{MinUsernameLength: 3, MinPasswordLength: 5}

// Users is the user collection.
type Users struct {
	users  *storage.Collection[types.User]
	policy UserPolicy
	hasher password.Hasher
}

// NewUsers binds the users collection of backend. A nil hasher means
// password.Plain.
func NewUsers(backend storage.Backend, policy UserPolicy, hasher password.Hasher) *Users {
	if hasher == nil {
		hasher = password.Plain{}
	}
	return &Users{
		users:  storage.NewCollection[types.User](backend, UsersCollection),
		policy: policy,
		hasher: hasher,
	}
}

// identifies reports whether identifier names u by username or by a
// non-empty email. The two fields are matched independently.
func identifies(u types.User, identifier string) bool {
	return u.Username == identifier || (u.Email != "" && u.Email == identifier)
}

// Create validates in, rejects a taken username or email, and appends the
// new user with id len(users)+1.
func (s *Users) Create(in types.UserInput) (types.User, error) {
	if err := s.validate(in); err != nil {
		return types.User{}, err
	}

	var created types.User
	err := s.users.Mutate(func(users []types.User) ([]types.User, error) {
		for _, existing := range users {
			if existing.Username == in.Username {
				return nil, fmt.Errorf("username %q %w", in.Username, ErrConflict)
			}
			if in.Email != "" && existing.Email == in.Email {
				return nil, fmt.Errorf("email %q %w", in.Email, ErrConflict)
			}
		}

		hashed, err := s.hash(in.Password)
		if err != nil {
			return nil, err
		}

		created = types.User{
			ID:       len(users) + 1,
			Username: in.Username,
			Password: hashed,
			FullName: in.FullName,
			Age:      in.Age,
			Email:    in.Email,
			Gender:   nonEmpty(in.Gender),
		}
		return append(users, created), nil
	})
	if err != nil {
		return types.User{}, err
	}

	return created, nil
}

// FindByIdentifier returns the first user whose username or email equals
// identifier.
func (s *Users) FindByIdentifier(identifier string) (types.User, error) {
	users, err := s.users.Load()
	if err != nil {
		return types.User{}, err
	}

	for _, u := range users {
		if identifies(u, identifier) {
			return u, nil
		}
	}

	return types.User{}, fmt.Errorf("user %q %w", identifier, ErrNotFound)
}

// Update overwrites the fields of the first matching user for which in
// carries a non-zero value. Nothing is re-validated, uniqueness included.
func (s *Users) Update(identifier string, in types.UserInput) (types.User, error) {
	var updated types.User
	err := s.users.Mutate(func(users []types.User) ([]types.User, error) {
		idx := -1
		for i, u := range users {
			if identifies(u, identifier) {
				idx = i
				break
			}
		}
		if idx == -1 {
			return nil, fmt.Errorf("user %q %w", identifier, ErrNotFound)
		}

		u := users[idx]
		u.Username = pick(in.Username, u.Username)
		u.FullName = pick(in.FullName, u.FullName)
		u.Email = pick(in.Email, u.Email)
		if in.Password != "" {
			hashed, err := s.hash(in.Password)
			if err != nil {
				return nil, err
			}
			u.Password = hashed
		}
		if in.Age != nil && *in.Age != 0 {
			u.Age = in.Age
		}
		if g := nonEmpty(in.Gender); g != nil {
			u.Gender = g
		}

		users[idx] = u
		updated = u
		return users, nil
	})
	if err != nil {
		return types.User{}, err
	}

	return updated, nil
}

// Delete removes every user whose username or email equals identifier.
// With unique usernames and emails that is at most two records: one
// matched by username and another matched by email.
func (s *Users) Delete(identifier string) error {
	return s.users.Mutate(func(users []types.User) ([]types.User, error) {
		kept := make([]types.User, 0, len(users))
		for _, u := range users {
			if !identifies(u, identifier) {
				kept = append(kept, u)
			}
		}
		if len(kept) == len(users) {
			return nil, fmt.Errorf("user %q %w", identifier, ErrNotFound)
		}
		return kept, nil
	})
}

// Authenticate returns the first user named by identifier whose stored
// password the hasher accepts.
func (s *Users) Authenticate(identifier, pass string) (types.User, error) {
	users, err := s.users.Load()
	if err != nil {
		return types.User{}, err
	}

	for _, u := range users {
		if identifies(u, identifier) && s.hasher.Matches(u.Password, pass) {
			return u, nil
		}
	}

	return types.User{}, ErrInvalidCredentials
}

// validate checks the creation thresholds in order and stops at the first
// failure.
func (s *Users) validate(in types.UserInput) error {
	p := s.policy

	if err := validate.Var(in.Username, fmt.Sprintf("required,min=%d", p.MinUsernameLength)); err != nil {
		return &ValidationError{
			Field:   "username",
			Message: fmt.Sprintf("username must be at least %d characters long", p.MinUsernameLength),
		}
	}

	if err := validate.Var(in.Password, fmt.Sprintf("required,min=%d", p.MinPasswordLength)); err != nil {
		return &ValidationError{
			Field:   "password",
			Message: fmt.Sprintf("password must be at least %d characters long", p.MinPasswordLength),
		}
	}

	if p.MinAge > 0 {
		if in.Age == nil || validate.Var(*in.Age, fmt.Sprintf("gte=%d", p.MinAge)) != nil {
			return &ValidationError{
				Field:   "age",
				Message: fmt.Sprintf("age must be at least %d", p.MinAge),
			}
		}
	}

	return nil
}

// hash runs the configured hasher. A password the hasher cannot take is
// the client's fault and comes back as a ValidationError.
func (s *Users) hash(pass string) (string, error) {
	hashed, err := s.hasher.Hash(pass)
	if errors.Is(err, password.ErrTooLong) {
		return "", &ValidationError{Field: "password", Message: err.Error()}
	}
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return hashed, nil
}

// pick returns next unless it is empty.
func pick(next, current string) string {
	if next != "" {
		return next
	}
	return current
}

// nonEmpty maps a missing or empty string to nil.
func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
