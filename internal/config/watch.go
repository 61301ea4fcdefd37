package config

import (
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DebounceInterval is how long the watcher waits after the last change
// before reloading.
const DebounceInterval = 100 * time.Millisecond

// Watcher reloads a config file when it changes. Successfully validated
// configs arrive on Updates; read and parse failures arrive on Errors and
// leave the running config untouched.
type Watcher struct {
	Updates chan *Config
	Errors  chan error

	path    string
	logger  *slog.Logger
	watcher *fsnotify.Watcher
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// NewWatcher watches the directory holding path, so editors that replace
// the file through a rename are still seen.
func NewWatcher(path string, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, err
	}

	w := &Watcher{
		Updates: make(chan *Config, 1),
		Errors:  make(chan error, 1),
		path:    abs,
		logger:  logger.With("system", "config"),
		watcher: fw,
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Close stops the watcher and closes both channels.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
	})
	return err
}

func (w *Watcher) run() {
	defer func() {
		close(w.Updates)
		close(w.Errors)
		close(w.done)
	}()

	timer := time.NewTimer(DebounceInterval)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			timer.Reset(DebounceInterval)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.publishError(err)
		case <-timer.C:
			cfg, err := Load(w.path)
			if err != nil {
				w.logger.Warn("config reload failed", "path", w.path, "err", err)
				w.publishError(err)
				continue
			}
			w.logger.Info("config reloaded", "path", w.path)
			w.publishUpdate(cfg)
		case <-w.closeCh:
			return
		}
	}
}

// publishUpdate replaces any update the reader has not picked up yet.
func (w *Watcher) publishUpdate(cfg *Config) {
	select {
	case <-w.Updates:
	default:
	}
	select {
	case w.Updates <- cfg:
	case <-w.closeCh:
	}
}

func (w *Watcher) publishError(err error) {
	select {
	case w.Errors <- err:
	default:
		w.logger.Debug("dropping config error", "err", err)
	}
}
