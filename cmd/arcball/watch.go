package main

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/phanxgames/arcball"
	"go.uber.org/zap"
)

// configWatcher reloads a config file when it changes and delivers each
// valid config on a channel. Invalid files are logged and skipped.
type configWatcher struct {
	watcher *fsnotify.Watcher
	path    string
	log     *zap.Logger

	debounceDur time.Duration

	mu      sync.Mutex
	running bool
	updates chan arcball.Config
	stopCh  chan struct{}
	doneCh  chan struct{}
}

func newConfigWatcher(path string, log *zap.Logger) (*configWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		_ = watcher.Close()
		return nil, err
	}
	return &configWatcher{
		watcher:     watcher,
		path:        abs,
		log:         log,
		debounceDur: 100 * time.Millisecond, // editors write in bursts
		updates:     make(chan arcball.Config, 1),
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}, nil
}

// Start watches the directory containing the file, so editors that replace
// the file by rename are followed. It returns the update channel; the
// channel is closed when the watcher stops.
func (w *configWatcher) Start(ctx context.Context) (<-chan arcball.Config, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return w.updates, nil
	}
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return nil, err
	}
	w.running = true
	w.log.Info("watching config", zap.String("path", w.path))
	go w.run(ctx)
	return w.updates, nil
}

// Stop stops the watcher and waits for cleanup.
func (w *configWatcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh

	if err := w.watcher.Close(); err != nil {
		w.log.Warn("closing config watcher", zap.Error(err))
	}
}

func (w *configWatcher) run(ctx context.Context) {
	defer close(w.doneCh)
	defer close(w.updates)

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return

		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			pending = time.After(w.debounceDur)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("config watcher error", zap.Error(err))

		case <-pending:
			pending = nil
			w.reload()
		}
	}
}

// reload parses the file and publishes it, replacing an undelivered update.
func (w *configWatcher) reload() {
	cfg, err := arcball.LoadConfigFile(w.path)
	if err != nil {
		w.log.Warn("config reload failed", zap.Error(err))
		return
	}
	select {
	case <-w.updates:
	default:
	}
	w.updates <- cfg
	w.log.Debug("config reloaded", zap.String("path", w.path))
}
