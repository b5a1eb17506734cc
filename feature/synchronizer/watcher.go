package synchronizer

import (
	"context"
	"fmt"
	"path/filepath"

	"asset-sync/core/manifest"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher reloads the build manifest when its file changes and runs an
// update cycle with the new build.
type Watcher struct {
	path   string
	sync   *Synchronizer
	logger *zap.Logger
	fs     *fsnotify.Watcher
	change chan struct{}
}

// NewWatcher watches the directory holding path so editors that replace the
// file atomically are still observed.
func NewWatcher(path string, s *Synchronizer, logger *zap.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("invalid manifest path %s: %w", path, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	return &Watcher{
		path:   abs,
		sync:   s,
		logger: logger.With(zap.String("manifest", abs)),
		fs:     fsw,
		change: make(chan struct{}, 1),
	}, nil
}

// Run processes file events until ctx is done or the manifest is removed.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fs.Close()
	name := filepath.Base(w.path)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if isRemove(event) {
				w.logger.Error("Build manifest removed, stopping watcher")
				return nil
			}
			if isChange(event) {
				w.sendEvent()
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("Watcher error", zap.Error(err))
		case <-w.change:
			w.reload(ctx)
		}
	}
}

// sendEvent coalesces bursts of writes into one pending reload.
func (w *Watcher) sendEvent() {
	select {
	case w.change <- struct{}{}:
	default:
	}
}

func (w *Watcher) reload(ctx context.Context) {
	build, err := manifest.Load(w.path)
	if err != nil {
		w.logger.Error("Failed to reload build manifest", zap.Error(err))
		return
	}
	if err := w.sync.Stage(build); err != nil {
		w.logger.Error("Failed to stage build", zap.Error(err))
		return
	}
	if _, err := w.sync.Update(ctx); err != nil {
		w.logger.Error("Update after manifest change failed", zap.Error(err))
	}
}

func isRemove(event fsnotify.Event) bool {
	return event.Op&fsnotify.Remove == fsnotify.Remove
}

func isChange(event fsnotify.Event) bool {
	return event.Op&fsnotify.Write == fsnotify.Write ||
		event.Op&fsnotify.Create == fsnotify.Create ||
		event.Op&fsnotify.Chmod == fsnotify.Chmod
}
