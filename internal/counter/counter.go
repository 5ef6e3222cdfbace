// Package counter persists the single integer the increment action mutates.
package counter

import (
	"os"
	"strconv"
	"strings"

	"github.com/bashhack/commitpulse/internal/errors"
)

// Store reads and writes a non-negative integer kept in a text file
type Store struct {
	path string
}

// New creates a Store for the file at path
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the counter file location
func (s *Store) Path() string {
	return s.path
}

// EnsureFile creates the counter file holding "0" if it does not exist.
// An existing file is never modified.
func (s *Store) EnsureFile() error {
	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		if os.IsExist(err) {
			return nil
		}
		return errors.NewCounterError(s.path, "", errors.Wrap(err, "failed to create counter file"))
	}

	if _, err := f.WriteString("0"); err != nil {
		_ = f.Close()
		return errors.NewCounterError(s.path, "", errors.Wrap(err, "failed to initialize counter file"))
	}
	return f.Close()
}

// Read parses the file's contents. A missing file, unparseable contents or a
// negative value fail with ErrCorruptCounter and leave the file untouched.
func (s *Store) Read() (int, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return 0, errors.NewCounterError(s.path, "", errors.Wrap(errors.ErrCorruptCounter, err.Error()))
	}

	raw := strings.TrimSpace(string(data))
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.NewCounterError(s.path, raw, errors.Wrap(errors.ErrCorruptCounter, "not a base-10 integer"))
	}
	if n < 0 {
		return 0, errors.NewCounterError(s.path, raw, errors.Wrap(errors.ErrCorruptCounter, "negative value"))
	}
	return n, nil
}

// Write replaces the file's contents with n. The write is not atomic.
func (s *Store) Write(n int) error {
	if n < 0 {
		return errors.NewCounterError(s.path, "", errors.Errorf("refusing to store negative value %d", n))
	}
	if err := os.WriteFile(s.path, []byte(strconv.Itoa(n)), 0644); err != nil {
		return errors.NewCounterError(s.path, "", errors.Wrap(err, "failed to write counter file"))
	}
	return nil
}

// Increment reads the counter, adds one and persists the result
func (s *Store) Increment() (int, error) {
	n, err := s.Read()
	if err != nil {
		return 0, err
	}
	n++
	if err := s.Write(n); err != nil {
		return 0, err
	}
	return n, nil
}
