package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// ErrNotFound is returned when a requested file does not exist
var ErrNotFound = errors.New("storage: file not found")

// ReceiptStore keeps rendered receipts in a single directory
type ReceiptStore struct {
	dir string
}

// NewReceiptStore creates the directory if needed
func NewReceiptStore(dir string) (*ReceiptStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating receipts dir %s: %w", dir, err)
	}
	return &ReceiptStore{dir: dir}, nil
}

// Dir returns the directory receipts are written to
func (s *ReceiptStore) Dir() string {
	return s.dir
}

// Write renders into a temporary file and renames it into place, so a
// half-written receipt is never served.
func (s *ReceiptStore) Write(name string, render func(w io.Writer) error) error {
	tmp, err := os.CreateTemp(s.dir, ".tmp-"+name+"-*")
	if err != nil {
		return fmt.Errorf("creating %s: %w", name, err)
	}
	tmpName := tmp.Name()

	if err := render(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing %s: %w", name, err)
	}
	if err := os.Rename(tmpName, filepath.Join(s.dir, name)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("saving %s: %w", name, err)
	}
	return nil
}

// Path returns the location of an existing receipt. name must already be
// validated as a bare file name.
func (s *ReceiptStore) Path(name string) (string, error) {
	if filepath.Base(name) != name {
		return "", ErrNotFound
	}
	p := filepath.Join(s.dir, name)
	info, err := os.Stat(p)
	if errors.Is(err, os.ErrNotExist) || (err == nil && info.IsDir()) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return p, nil
}

// RemoveOlderThan deletes receipts last modified before cutoff and returns how many went
func (s *ReceiptStore) RemoveOlderThan(cutoff time.Time) (int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".pdf" {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(s.dir, e.Name())); err == nil {
				removed++
			}
		}
	}
	return removed, nil
}
