package monitoring

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// ModelWatcher reports changes to model files after startup. The registry
// is load-once, so a change only takes effect after a restart.
type ModelWatcher struct {
	watcher  *fsnotify.Watcher
	files    map[string]bool
	logger   *zap.Logger
	onChange func(path string)
}

func NewModelWatcher(dir string, files []string, logger *zap.Logger, onChange func(path string)) (*ModelWatcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	// watch the directory so atomic renames over a model file are seen
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}
	watched := make(map[string]bool, len(files))
	for _, f := range files {
		watched[filepath.Base(f)] = true
	}
	return &ModelWatcher{watcher: w, files: watched, logger: logger, onChange: onChange}, nil
}

// Run blocks until ctx is cancelled or the watcher is closed.
func (mw *ModelWatcher) Run(ctx context.Context) {
	defer mw.watcher.Close()
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-mw.watcher.Events:
			if !ok {
				return
			}
			if !mw.files[filepath.Base(event.Name)] {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			mw.logger.Warn("model file changed on disk; restart to load it",
				zap.String("path", event.Name),
				zap.String("op", event.Op.String()))
			if mw.onChange != nil {
				mw.onChange(event.Name)
			}
		case err, ok := <-mw.watcher.Errors:
			if !ok {
				return
			}
			mw.logger.Error("model watcher error", zap.Error(err))
		}
	}
}

func (mw *ModelWatcher) Close() error {
	return mw.watcher.Close()
}
