// Package password decides how user passwords are stored and checked.
//
// Plain keeps the password exactly as the client sent it and compares
// strings byte for byte. It exists because the stored user format has always
// held plain text; it is a placeholder, not something to run in production.
// Bcrypt stores a salted bcrypt hash instead.
package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrTooLong is returned by Bcrypt.Hash for passwords bcrypt cannot take.
var ErrTooLong = errors.New("password must be at most 72 bytes long")

// Hasher turns a password into its stored form and checks candidates
// against a stored value.
type Hasher interface {
	Hash(password string) (string, error)
	Matches(stored, candidate string) bool
}

// New returns the hasher for a config mode: "plain" or "bcrypt".
func New(mode string) (Hasher, error) {
	switch mode {
	case "plain", "":
		return Plain{}, nil
	case "bcrypt":
		return Bcrypt{Cost: bcrypt.DefaultCost}, nil
	default:
		return nil, fmt.Errorf("unknown password hashing mode %q", mode)
	}
}

// Plain stores passwords verbatim.
type Plain struct{}

func (Plain) Hash(password string) (string, error) {
	return password, nil
}

// Matches is a plain string comparison, not constant time.
func (Plain) Matches(stored, candidate string) bool {
	return stored == candidate
}

// Bcrypt stores bcrypt hashes at Cost.
type Bcrypt struct {
	Cost int
}

func (b Bcrypt) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), b.Cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", ErrTooLong
	}
	if err != nil {
		return "", fmt.Errorf("bcrypt: %w", err)
	}
	return string(hashed), nil
}

func (Bcrypt) Matches(stored, candidate string) bool {
	// A stored value that is not a bcrypt hash never matches.
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(candidate)) == nil
}
