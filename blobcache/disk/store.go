// Package disk provides a file-backed handle store.
package disk

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"

	"github.com/opencontainers/go-digest"
)

const (
	defaultDirPerm = 0o700
	prefixLen      = 16
)

// Store materializes attachments as files in a spool directory. Handles
// are absolute file paths, so they can be handed straight to a viewer.
type Store struct {
	dir     string
	dirPerm os.FileMode
}

// Option configures a disk store.
type Option func(*Store)

// WithDirPerm sets the permissions used when creating the spool
// directory.
func WithDirPerm(mode os.FileMode) Option {
	return func(s *Store) {
		s.dirPerm = mode
	}
}

// New creates a disk store rooted at dir.
func New(dir string, opts ...Option) (*Store, error) {
	if dir == "" {
		return nil, errors.New("spool dir is empty")
	}
	s := &Store{
		dir:     dir,
		dirPerm: defaultDirPerm,
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := os.MkdirAll(dir, s.dirPerm); err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	s.dir = abs
	return s, nil
}

// Materialize writes content to a fresh file named after the key's
// digest. CreateTemp guarantees a unique name, so a handle is never
// reused even when the same key is spooled twice.
func (s *Store) Materialize(key string, content []byte) (string, error) {
	pattern := digest.FromString(key).Encoded()[:prefixLen] + "-*" + extension(key)
	f, err := os.CreateTemp(s.dir, pattern)
	if err != nil {
		return "", err
	}
	if _, err := f.Write(content); err != nil {
		f.Close()
		_ = os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}

// Release removes the file behind handle. A handle that is already gone
// is not an error, but paths outside the spool directory are rejected.
func (s *Store) Release(handle string) error {
	if filepath.Dir(handle) != s.dir {
		return fmt.Errorf("handle %q is outside the spool directory", handle)
	}
	if err := os.Remove(handle); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// extension picks a file extension for the spooled copy so desktop
// viewers can dispatch on it. Keys without a usable extension get none.
func extension(key string) string {
	u, err := url.Parse(key)
	if err != nil {
		return ""
	}
	ext := path.Ext(u.Path)
	if len(ext) < 2 || len(ext) > 8 {
		return ""
	}
	for _, r := range ext[1:] {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		default:
			return ""
		}
	}
	return ext
}
