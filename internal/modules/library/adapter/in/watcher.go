package in

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/hashicorp/go-hclog"

	"readenvy/internal/modules/library/dto"
	libraryin "readenvy/internal/modules/library/port/in"
	"readenvy/internal/platform/debounce"
	apperrors "readenvy/internal/platform/errors"
)

// FolderWatcher imports PDFs dropped into a directory. Writes to the same path
// are coalesced so a file is imported once it stops changing.
type FolderWatcher struct {
	usecase libraryin.Usecase
	settle  time.Duration
	log     hclog.Logger
	// OnImport is called after each import attempt; err is nil on success.
	OnImport func(path string, out dto.ImportOutput, err error)
}

func NewFolderWatcher(usecase libraryin.Usecase, settle time.Duration, logger hclog.Logger) *FolderWatcher {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &FolderWatcher{usecase: usecase, settle: settle, log: logger.Named("watcher")}
}

// ImportExisting imports the PDFs already present in dir.
func (w *FolderWatcher) ImportExisting(ctx context.Context, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read watch dir: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !isPDFName(entry.Name()) {
			continue
		}
		w.importFile(ctx, filepath.Join(dir, entry.Name()))
	}
	return nil
}

// Watch blocks until ctx is cancelled.
func (w *FolderWatcher) Watch(ctx context.Context, dir string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	pending := debounce.New(w.settle)
	defer pending.Stop()
	w.log.Info("watching folder", "dir", dir)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Rename) {
				continue
			}
			if !isPDFName(event.Name) {
				continue
			}
			path := event.Name
			pending.Trigger(path, func() { w.importFile(ctx, path) })
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Error("watcher error", "error", err)
		}
	}
}

func (w *FolderWatcher) importFile(ctx context.Context, path string) {
	if _, err := os.Stat(path); err != nil {
		// Renamed away or deleted before it settled.
		return
	}
	out, err := w.usecase.Import(ctx, dto.ImportInput{Path: path})
	switch {
	case err == nil:
		w.log.Info("imported", "path", path, "id", out.Book.ID)
	case errors.Is(err, apperrors.ErrImportRejected):
		w.log.Warn("import rejected", "path", path, "error", err)
	default:
		w.log.Error("import failed", "path", path, "error", err)
	}
	if w.OnImport != nil {
		w.OnImport(path, out, err)
	}
}

func isPDFName(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".pdf")
}
