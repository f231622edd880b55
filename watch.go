package twcfg

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/yacobolo/twcfg/internal/logging"
)

// DefaultDebounce is how long the watcher waits after the last file event
// before reloading. Editors and os.WriteFile emit several events per save
// (truncate, write, rename); only the settled file is read.
const DefaultDebounce = 100 * time.Millisecond

// WatchOptions configures callbacks fired after each reload attempt.
type WatchOptions struct {
	OnChange func(cfg *Config) // called after a successful swap
	OnError  func(err error)   // called when a reload is rejected
	Debounce time.Duration     // 0 means DefaultDebounce
}

// Watcher keeps a Holder in sync with a declaration file.
//
// Every change re-reads and validates the whole file. A valid result replaces
// the held Config; an invalid one is reported and the previous Config stays
// active. The parent directory is watched, so a file that is removed and
// recreated (editors saving via rename, rm && cp) keeps being tracked.
//
//	holder := twcfg.NewHolder(nil)
//	w := twcfg.NewWatcher("tailwind.config.js", holder, twcfg.WatchOptions{}, logger)
//	if err := w.Start(); err != nil {
//		return err
//	}
//	defer w.Stop()
type Watcher struct {
	path    string
	holder  *Holder
	logger  *slog.Logger
	options WatchOptions

	mu      sync.Mutex
	fsw     *fsnotify.Watcher
	timer   *time.Timer
	started bool
	stopped bool
	wg      sync.WaitGroup

	// reloadMu serializes reloads from the debounce timer, SIGHUP and callers.
	reloadMu sync.Mutex

	listenersMu sync.RWMutex
	listeners   []chan<- *Config
}

// NewWatcher creates a watcher for path. A nil logger discards log output.
func NewWatcher(path string, holder *Holder, options WatchOptions, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = logging.Discard()
	}
	if options.Debounce <= 0 {
		options.Debounce = DefaultDebounce
	}
	return &Watcher{
		path:    path,
		holder:  holder,
		logger:  logger,
		options: options,
	}
}

// Reload loads the file once and swaps the holder on success.
func (w *Watcher) Reload() (*Config, error) {
	w.reloadMu.Lock()
	defer w.reloadMu.Unlock()

	cfg, err := LoadFile(w.path)
	if err != nil {
		w.logger.Error("Reload rejected, keeping previous configuration", "path", w.path, "error", err)
		if w.options.OnError != nil {
			w.options.OnError(err)
		}
		return nil, err
	}

	w.holder.Store(cfg)
	w.logger.Info("Configuration loaded",
		"path", w.path,
		"patterns", len(cfg.Content),
		"plugins", len(cfg.Plugins))

	if w.options.OnChange != nil {
		w.options.OnChange(cfg)
	}
	w.notify(cfg)
	return cfg, nil
}

// Subscribe registers ch to receive every config accepted by a reload.
// Sends never block: a listener whose buffer is full misses that update.
func (w *Watcher) Subscribe(ch chan<- *Config) {
	w.listenersMu.Lock()
	defer w.listenersMu.Unlock()
	w.listeners = append(w.listeners, ch)
}

func (w *Watcher) notify(cfg *Config) {
	w.listenersMu.RLock()
	defer w.listenersMu.RUnlock()

	for _, ch := range w.listeners {
		select {
		case ch <- cfg:
		default:
			w.logger.Warn("Skipped notifying listener (channel full)", "path", w.path)
		}
	}
}

// Start loads the file if the holder is empty and begins watching it.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return errors.New("watcher already stopped")
	}
	if w.started {
		return errors.New("watcher already started")
	}

	if w.holder.Current() == nil {
		if _, err := w.Reload(); err != nil {
			return err
		}
	}

	target, err := filepath.Abs(w.path)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", w.path, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(target)); err != nil {
		_ = fsw.Close()
		return fmt.Errorf("watching %s: %w", w.path, err)
	}

	w.fsw = fsw
	w.started = true
	w.wg.Add(1)
	go w.loop(fsw, target)

	w.logger.Info("File watcher started", "path", w.path)
	return nil
}

// loop forwards events for the declaration file to the debounce timer.
func (w *Watcher) loop(fsw *fsnotify.Watcher, target string) {
	defer w.wg.Done()

	for {
		select {
		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
				event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				w.logger.Debug("Declaration changed", "path", w.path, "op", event.Op.String())
				w.schedule()
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.logger.Error("File watcher error", "path", w.path, "error", err)
			if w.options.OnError != nil {
				w.options.OnError(err)
			}
		}
	}
}

// schedule restarts the debounce timer; the reload runs once events settle.
func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.options.Debounce, func() {
		w.mu.Lock()
		stopped := w.stopped
		w.mu.Unlock()
		if stopped {
			return
		}
		_, _ = w.Reload()
	})
}

// Stop ends watching. Safe to call multiple times.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return nil
	}
	w.stopped = true
	if w.timer != nil {
		w.timer.Stop()
	}
	if !w.started {
		w.mu.Unlock()
		return nil
	}
	err := w.fsw.Close()
	w.mu.Unlock()

	w.wg.Wait()
	w.logger.Info("File watcher stopped", "path", w.path)
	return err
}

// Run starts the watcher and blocks until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	if err := w.Start(); err != nil {
		return err
	}
	<-ctx.Done()
	return w.Stop()
}
