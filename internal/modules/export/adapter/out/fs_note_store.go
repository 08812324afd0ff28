package out

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	exportout "readenvy/internal/modules/export/port/out"
)

type FSNoteStore struct{}

func NewFSNoteStore() exportout.NoteStore {
	return FSNoteStore{}
}

func (FSNoteStore) Read(_ context.Context, path string) (string, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read note: %w", err)
	}
	return string(b), nil
}

// Write replaces path through a temp file and rename.
func (FSNoteStore) Write(_ context.Context, path, content string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create note dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".readenvy-*.md")
	if err != nil {
		return fmt.Errorf("create temp note: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()
	if _, err := tmp.WriteString(content); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write note: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write note: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("write note: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace note: %w", err)
	}
	return nil
}
