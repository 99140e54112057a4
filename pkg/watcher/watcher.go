package watcher

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultPollInterval is used when fsnotify is unavailable.
const DefaultPollInterval = 2 * time.Second

// Option configures a FileWatcher.
type Option func(*FileWatcher)

// WithDebounce sets the window used to coalesce bursts of file events.
func WithDebounce(d time.Duration) Option {
	return func(w *FileWatcher) { w.debounce = NewDebouncer(d) }
}

// WithPollInterval sets the interval of the polling fallback.
func WithPollInterval(d time.Duration) Option {
	return func(w *FileWatcher) { w.pollInterval = d }
}

// WithPolling forces the polling fallback even when fsnotify works.
func WithPolling() Option {
	return func(w *FileWatcher) { w.forcePoll = true }
}

// WithLogger sets the logger for watch errors.
func WithLogger(l *slog.Logger) Option {
	return func(w *FileWatcher) { w.logger = l }
}

// FileWatcher reports changes to a single file. It watches the parent
// directory so editors that replace the file by rename are still seen.
type FileWatcher struct {
	path         string
	debounce     *Debouncer
	pollInterval time.Duration
	forcePoll    bool
	logger       *slog.Logger

	changes chan struct{}
	done    chan struct{}
	fs      *fsnotify.Watcher
	wg      sync.WaitGroup

	closeOnce sync.Once
}

// NewFileWatcher starts watching path. Changes arrive on Changes() after the
// debounce window.
func NewFileWatcher(path string, opts ...Option) (*FileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	w := &FileWatcher{
		path:         abs,
		pollInterval: DefaultPollInterval,
		changes:      make(chan struct{}, 1),
		done:         make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.debounce == nil {
		w.debounce = NewDebouncer(0)
	}
	if w.logger == nil {
		w.logger = slog.Default()
	}

	if !w.forcePoll {
		err := w.startNotify()
		if err == nil {
			return w, nil
		}
		w.logger.Warn("fsnotify unavailable, falling back to polling", "path", abs, "error", err)
	}
	if _, err := os.Stat(abs); err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	w.startPolling()
	return w, nil
}

func (w *FileWatcher) startNotify() error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		fw.Close()
		return err
	}
	w.fs = fw

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		for {
			select {
			case <-w.done:
				return
			case ev, ok := <-fw.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != w.path {
					continue
				}
				if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) || ev.Has(fsnotify.Remove) {
					w.debounce.Trigger(w.notify)
				}
			case err, ok := <-fw.Errors:
				if !ok {
					return
				}
				w.logger.Warn("watch error", "path", w.path, "error", err)
			}
		}
	}()
	return nil
}

type fileStamp struct {
	mod  time.Time
	size int64
	ok   bool
}

func stat(path string) fileStamp {
	info, err := os.Stat(path)
	if err != nil {
		return fileStamp{}
	}
	return fileStamp{mod: info.ModTime(), size: info.Size(), ok: true}
}

func (w *FileWatcher) startPolling() {
	last := stat(w.path)
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		ticker := time.NewTicker(w.pollInterval)
		defer ticker.Stop()
		for {
			select {
			case <-w.done:
				return
			case <-ticker.C:
				cur := stat(w.path)
				if cur != last {
					last = cur
					w.debounce.Trigger(w.notify)
				}
			}
		}
	}()
}

// notify never blocks: a pending unread change already covers this one.
func (w *FileWatcher) notify() {
	select {
	case w.changes <- struct{}{}:
	default:
	}
}

// Changes delivers one value per debounced burst of changes.
func (w *FileWatcher) Changes() <-chan struct{} {
	return w.changes
}

// Polling reports whether the watcher fell back to polling.
func (w *FileWatcher) Polling() bool {
	return w.fs == nil
}

// Path returns the absolute path being watched.
func (w *FileWatcher) Path() string {
	return w.path
}

// Close stops watching. Pending changes are dropped.
func (w *FileWatcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		w.debounce.Stop()
		close(w.done)
		if w.fs != nil {
			err = w.fs.Close()
		}
		w.wg.Wait()
	})
	if errors.Is(err, fsnotify.ErrClosed) {
		return nil
	}
	return err
}
