// Package kv defines the persistent key-value store the todo list writes
// through to, plus an in-memory implementation.
package kv

import (
	"errors"
	"sync"
)

// Store is a synchronous string key-value store. Each call is treated as
// atomic; there is no transaction support.
type Store interface {
	// Get returns the value at key. ok is false when the key is absent.
	Get(key string) (value string, ok bool, err error)
	// Set overwrites the value at key.
	Set(key, value string) error
}

// ErrWriteFailed is returned by Memory.Set while FailWrites is on.
var ErrWriteFailed = errors.New("kv: write failed")

// Memory keeps values in a map. Nothing outlives the process.
type Memory struct {
	mu     sync.Mutex
	values map[string]string
	fail   bool
	writes int
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{values: map[string]string{}}
}

func (m *Memory) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return ErrWriteFailed
	}
	m.values[key] = value
	m.writes++
	return nil
}

// FailWrites makes every following Set return ErrWriteFailed until turned off.
func (m *Memory) FailWrites(fail bool) {
	m.mu.Lock()
	m.fail = fail
	m.mu.Unlock()
}

// Writes counts successful Set calls.
func (m *Memory) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}
