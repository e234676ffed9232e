package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/candidesk/candidesk/internal/domain/model"
)

// FileSnapshot persists the record list as a single JSON array on disk,
// the Go rendition of the original's well-known localStorage key.
type FileSnapshot struct {
	path string
}

// NewFileSnapshot creates a snapshot rooted at path. Parent directories
// are created on first save.
func NewFileSnapshot(path string) *FileSnapshot {
	return &FileSnapshot{path: path}
}

// Load reads and decodes the snapshot. A missing file is an empty list,
// not an error. Content that is not a JSON array of records surfaces as
// ErrCorruptSnapshot so the caller can log and fall back.
func (s *FileSnapshot) Load(ctx context.Context) ([]model.Candidate, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read snapshot %s: %w", s.path, err)
	}

	var records []model.Candidate
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptSnapshot, s.path, err)
	}
	return records, nil
}

// Save writes the full list atomically: encode to a temp file in the same
// directory, then rename over the target.
func (s *FileSnapshot) Save(ctx context.Context, records []model.Candidate) error {
	if records == nil {
		records = []model.Candidate{}
	}
	raw, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create snapshot dir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace snapshot %s: %w", s.path, err)
	}
	return nil
}
