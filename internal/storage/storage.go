// Package storage defines the persistence contract shared by the user and
// blog stores.
//
// A Backend only knows how to read and write whole named documents. A
// Collection layers a typed, ordered record slice on top of one named
// document: Load decodes it, Save encodes it, and Mutate runs a
// load-modify-save cycle under the collection's lock.
//
// Handlers and stores never talk to a concrete backend. main.go picks one
// (jsonfile, sqlite or memory) and everything else sees this package only.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
)

// ErrUnavailable is returned when a collection's durable representation is
// missing, unreadable, corrupt or cannot be written. It is never papered
// over with an empty collection.
var ErrUnavailable = errors.New("storage unavailable")

// Backend is the durable side of a collection.
type Backend interface {
	// Read returns the full stored document for the named collection.
	// A missing collection is an error wrapping ErrUnavailable.
	Read(name string) ([]byte, error)

	// Write replaces the full stored document for the named collection.
	Write(name string, data []byte) error
}

// Collection is an ordered list of records of type T persisted as a single
// JSON array under one name.
//
// Only one Collection should exist per name and backend; the lock lives
// here, not in the backend.
type Collection[T any] struct {
	name    string
	backend Backend
	mu      sync.RWMutex
}

// NewCollection binds a typed collection to the named document in b.
func NewCollection[T any](b Backend, name string) *Collection[T] {
	return &Collection[T]{name: name, backend: b}
}

// Name returns the collection name.
func (c *Collection[T]) Name() string {
	return c.name
}

// Load reads and decodes the whole collection, preserving stored order.
func (c *Collection[T]) Load() ([]T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.load()
}

// Save encodes records as a pretty-printed JSON array and overwrites the
// stored document.
func (c *Collection[T]) Save(records []T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.save(records)
}

// Mutate loads the collection, hands it to fn and saves whatever fn returns.
// The whole cycle holds the collection's write lock, so concurrent Mutate
// calls are applied one after another and none is lost.
//
// If fn returns an error nothing is written and the error is returned as is.
func (c *Collection[T]) Mutate(fn func(records []T) ([]T, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := c.load()
	if err != nil {
		return err
	}

	updated, err := fn(records)
	if err != nil {
		return err
	}

	return c.save(updated)
}

func (c *Collection[T]) load() ([]T, error) {
	data, err := c.backend.Read(c.name)
	if err != nil {
		return nil, fmt.Errorf("Load %s: %w", c.name, err)
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("Load %s: decode: %w: %v", c.name, ErrUnavailable, err)
	}

	// A stored "null" decodes to a nil slice; callers always get a list.
	if records == nil {
		records = make([]T, 0)
	}

	return records, nil
}

func (c *Collection[T]) save(records []T) error {
	if records == nil {
		records = make([]T, 0)
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("Save %s: encode: %w", c.name, err)
	}
	data = append(data, '\n')

	if err := c.backend.Write(c.name, data); err != nil {
		return fmt.Errorf("Save %s: %w", c.name, err)
	}

	return nil
}
