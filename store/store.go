// Package store persists client state between runs: the session token,
// the signed-in user profile, and a mirror of the conversation list.
//
// State is one zstd-compressed JSON document rewritten atomically on
// every mutation. A missing or unreadable snapshot degrades to empty
// state; the backend stays the source of truth.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/crookedfinger/crookedfinger-go/api"
)

const (
	keyToken         = "authToken"
	keyUser          = "user"
	keyConversations = "conversations"

	dirPerm = 0o700
)

// Store is a small persistent key-value state file. All methods are
// safe for concurrent use.
type Store struct {
	path   string
	logger *slog.Logger
	enc    *zstd.Encoder

	mu     sync.Mutex
	values map[string]json.RawMessage
}

var _ api.TokenSource = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger. By default nothing is logged.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// Open loads the snapshot at path, creating parent directories as
// needed. A corrupt snapshot is dropped, not an error: the next write
// replaces it.
func Open(path string, opts ...Option) (*Store, error) {
	if path == "" {
		return nil, errors.New("store: path is empty")
	}
	s := &Store{
		path:   path,
		values: make(map[string]json.RawMessage),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return nil, fmt.Errorf("store: create state dir: %w", err)
	}
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}
	s.enc = enc

	if err := s.load(); err != nil {
		s.log().Warn("state snapshot unreadable, starting empty", "path", path, "err", err)
		s.values = make(map[string]json.RawMessage)
	}
	return s, nil
}

// Close releases the compressor. The store must not be used after
// Close.
func (s *Store) Close() error {
	return s.enc.Close()
}

// Path returns the snapshot location.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) log() *slog.Logger {
	if s.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return s.logger
}

func (s *Store) load() error {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}

	dec, err := zstd.NewReader(nil)
	if err != nil {
		return err
	}
	defer dec.Close()
	plain, err := dec.DecodeAll(data, nil)
	if err != nil {
		return fmt.Errorf("decompress: %w", err)
	}

	var values map[string]json.RawMessage
	if err := json.Unmarshal(plain, &values); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	if values == nil {
		values = make(map[string]json.RawMessage)
	}
	s.values = values
	return nil
}

// persistLocked writes the snapshot through a temp file and renames it
// into place, so readers never see a partial write.
func (s *Store) persistLocked() error {
	plain, err := json.Marshal(s.values)
	if err != nil {
		return fmt.Errorf("store: encode state: %w", err)
	}
	compressed := s.enc.EncodeAll(plain, nil)

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, "state-*")
	if err != nil {
		return fmt.Errorf("store: write state: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(compressed); err != nil {
		tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("store: write state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("store: write state: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("store: write state: %w", err)
	}
	return nil
}

// Set stores v under key and persists the snapshot.
func (s *Store) Set(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", key, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = data
	return s.persistLocked()
}

// Get loads the value under key into out. ok is false when the key is
// absent.
func (s *Store) Get(key string, out any) (bool, error) {
	s.mu.Lock()
	data, ok := s.values[key]
	s.mu.Unlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("store: decode %s: %w", key, err)
	}
	return true, nil
}

// Delete removes key and persists. Deleting an absent key is a no-op.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.values[key]; !ok {
		return nil
	}
	delete(s.values, key)
	return s.persistLocked()
}

// Reset wipes all persisted state.
func (s *Store) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = make(map[string]json.RawMessage)
	return s.persistLocked()
}

// Token returns the persisted session token. Store implements
// api.TokenSource, so it can be wired straight into api.New.
func (s *Store) Token() (string, bool) {
	var token string
	if ok, err := s.Get(keyToken, &token); !ok || err != nil {
		return "", false
	}
	return token, token != ""
}

// SetToken persists the session token.
func (s *Store) SetToken(token string) error {
	return s.Set(keyToken, token)
}

// ClearToken forgets the session token.
func (s *Store) ClearToken() error {
	return s.Delete(keyToken)
}

// User returns the persisted profile of the signed-in user.
func (s *Store) User() (api.User, bool) {
	var u api.User
	ok, err := s.Get(keyUser, &u)
	if err != nil {
		return api.User{}, false
	}
	return u, ok
}

// SetUser persists the signed-in user's profile.
func (s *Store) SetUser(u api.User) error {
	return s.Set(keyUser, u)
}

// ClearUser forgets the persisted profile.
func (s *Store) ClearUser() error {
	return s.Delete(keyUser)
}

// Conversations returns the mirrored conversation list, or nil when
// nothing was mirrored yet.
func (s *Store) Conversations() []api.Conversation {
	var list []api.Conversation
	if ok, err := s.Get(keyConversations, &list); !ok || err != nil {
		return nil
	}
	return list
}

// SetConversations replaces the mirrored conversation list.
func (s *Store) SetConversations(list []api.Conversation) error {
	return s.Set(keyConversations, list)
}

// ClearConversations forgets the mirror.
func (s *Store) ClearConversations() error {
	return s.Delete(keyConversations)
}
