// Package memory provides an in-process storage.Backend. Nothing survives a
// restart; it backs the "memory" storage driver and the store tests.
package memory

import (
	"fmt"
	"sync"

	"github.com/Xurramov-Ogabek/42-lesson-Homework/internal/storage"
)

// Memory keeps each collection document as a byte slice.
type Memory struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

// New returns a backend with every named collection seeded as an empty
// JSON array.
func New(collections ...string) *Memory {
	m := &Memory{docs: make(map[string][]byte, len(collections))}
	for _, name := range collections {
		m.docs[name] = []byte("[]\n")
	}
	return m
}

// Read returns a copy of the named document.
func (m *Memory) Read(name string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.docs[name]
	if !ok {
		return nil, fmt.Errorf("memory: collection %q: %w", name, storage.ErrUnavailable)
	}
	return append([]byte(nil), data...), nil
}

// Write stores a copy of data under name.
func (m *Memory) Write(name string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.docs[name] = append([]byte(nil), data...)
	return nil
}

// Drop forgets the named collection, so later reads fail the way a deleted
// file would.
func (m *Memory) Drop(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.docs, name)
}
