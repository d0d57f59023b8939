package config

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/Dimo99/angular/domain/routes"
)

// RoutesWatcher reloads a route configuration file whenever it changes
// on disk and hands the validated result to a callback. Files that fail
// to parse or validate are logged and skipped, keeping the previous
// configuration active.
type RoutesWatcher struct {
	watcher  *fsnotify.Watcher
	path     string
	logger   *zap.Logger
	onReload func([]routes.Route)
	done     chan struct{}
}

// WatchRoutes starts watching the given routes file. The callback runs
// on the watcher's goroutine for every successful reload.
func WatchRoutes(path string, logger *zap.Logger, onReload func([]routes.Route)) (*RoutesWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// Watch the directory rather than the file: editors and config
	// deployers commonly replace the file, which drops a file-level
	// watch.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, err
	}

	w := &RoutesWatcher{
		watcher:  watcher,
		path:     filepath.Clean(path),
		logger:   logger,
		onReload: onReload,
		done:     make(chan struct{}),
	}
	go w.run()
	return w, nil
}

func (w *RoutesWatcher) run() {
	defer close(w.done)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("routes watcher error", zap.Error(err))
		}
	}
}

func (w *RoutesWatcher) reload() {
	loaded, err := LoadRoutes(w.path)
	if err != nil {
		w.logger.Warn("routes file changed but could not be loaded",
			zap.String("path", w.path),
			zap.Error(err),
		)
		return
	}
	w.logger.Info("routes file reloaded",
		zap.String("path", w.path),
		zap.Int("routes", len(loaded)),
	)
	w.onReload(loaded)
}

// Close stops the watcher and waits for its goroutine to exit
func (w *RoutesWatcher) Close() error {
	err := w.watcher.Close()
	<-w.done
	return err
}
