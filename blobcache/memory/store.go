// Package memory provides an in-process handle store, useful for tests
// and for callers that render attachments from memory.
package memory

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/opencontainers/go-digest"
)

// Store keeps materialized attachments in memory. Handles use a mem://
// scheme and embed a sequence number, so a handle is never reused.
type Store struct {
	mu      sync.Mutex
	seq     uint64
	entries map[string][]byte
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{entries: make(map[string][]byte)}
}

// Materialize stores a copy of content and returns a fresh handle.
func (s *Store) Materialize(key string, content []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	handle := fmt.Sprintf("mem://%s-%d", digest.FromString(key).Encoded()[:16], s.seq)
	s.entries[handle] = bytes.Clone(content)
	return handle, nil
}

// Release drops the content behind handle. Unknown handles are ignored.
func (s *Store) Release(handle string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, handle)
	return nil
}

// Bytes returns the content behind a live handle.
func (s *Store) Bytes(handle string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	content, ok := s.entries[handle]
	if !ok {
		return nil, false
	}
	return bytes.Clone(content), true
}

// Len reports the number of live handles.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
