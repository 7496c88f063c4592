// Package kv provides the narrow byte-oriented key-value capability that
// backs the gateway's sidecar state (mock collection, meta mapping,
// data-source flag). Values are opaque blobs read and rewritten whole;
// callers own serialization
package kv

import "sync"

// Store is the minimal persistence surface the services program against
type Store interface {
	// Get returns the value for key and whether it was present
	Get(key string) ([]byte, bool, error)
	// Put stores value under key, replacing any previous value
	Put(key string, value []byte) error
	// Delete removes key; deleting an absent key is not an error
	Delete(key string) error
	// Close releases any underlying resources
	Close() error
}

// Memory is an in-process Store used by tests and ephemeral runs
type Memory struct {
	mu sync.RWMutex
	m  map[string][]byte
}

// NewMemory creates an empty in-memory store
func NewMemory() *Memory { return &Memory{m: make(map[string][]byte)} }

// Get returns a copy of the stored value so callers cannot alias internal state
func (s *Memory) Get(key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.m[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

// Put stores a copy of value under key
func (s *Memory) Put(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := make([]byte, len(value))
	copy(v, value)
	s.m[key] = v
	return nil
}

// Delete removes key if present
func (s *Memory) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, key)
	return nil
}

// Close is a no-op for the in-memory store
func (s *Memory) Close() error { return nil }
