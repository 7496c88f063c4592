package kv

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	perr "poketrade/internal/platform/errors"
	"poketrade/internal/platform/logger"
)

// File is a file-per-key Store rooted at a directory. Writes go through a
// temp file and an atomic rename so a crash never leaves a torn value
type File struct {
	dir string
	mu  sync.Mutex
	log logger.Logger
}

// OpenFile creates the directory if needed and returns a File store
func OpenFile(dir string) (*File, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, perr.InvalidArgf("kv: empty directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "kv: mkdir %s", dir)
	}
	return &File{dir: dir, log: *logger.Named("kv")}, nil
}

// path maps a key to its backing file; keys are fixed identifiers, but
// path separators are flattened so a key can never escape the root
func (s *File) path(key string) string {
	key = strings.NewReplacer("/", "_", "\\", "_", "..", "_").Replace(key)
	return filepath.Join(s.dir, key+".json")
}

// Get reads the whole value for key
func (s *File) Get(key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, perr.Wrapf(err, perr.ErrorCodeUnavailable, "kv: read %s", key)
	}
	return b, true, nil
}

// Put rewrites the whole value for key atomically
func (s *File) Put(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	dst := s.path(key)
	tmp, err := os.CreateTemp(s.dir, "."+filepath.Base(dst)+".tmp-*")
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "kv: temp for %s", key)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(value); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "kv: write %s", key)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "kv: close %s", key)
	}
	if err := os.Rename(tmpName, dst); err != nil {
		_ = os.Remove(tmpName)
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "kv: rename %s", key)
	}
	return nil
}

// Delete removes the backing file; absent keys are fine
func (s *File) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "kv: delete %s", key)
	}
	return nil
}

// Close is a no-op today; the handle keeps no descriptors open between calls
func (s *File) Close() error {
	s.log.Debug().Str("dir", s.dir).Msg("kv closed")
	return nil
}
