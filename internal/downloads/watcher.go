package downloads

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// verifyDebounce coalesces bursts of filesystem events into one
// verification pass.
const verifyDebounce = 2 * time.Second

// Watcher reacts to external removals in the downloads directory by
// re-verifying the ledger. It covers the gap between screen loads: when the
// OS or the user deletes files behind the app's back, the ledger catches up
// without waiting for the next opportunistic Verify.
type Watcher struct {
	ledger *Ledger
	dir    string
	logger *slog.Logger

	fw   *fsnotify.Watcher
	done chan struct{}

	mu    sync.Mutex
	timer *time.Timer
}

// NewWatcher creates a watcher over the downloads directory.
func NewWatcher(ledger *Ledger, dir string, logger *slog.Logger) *Watcher {
	return &Watcher{
		ledger: ledger,
		dir:    dir,
		logger: logger,
		done:   make(chan struct{}),
	}
}

// Start begins watching. Failure to start is returned so the caller can
// treat it as non-fatal: verification on screen load still covers
// correctness, the watcher only tightens the window.
func (w *Watcher) Start() error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := fw.Add(w.dir); err != nil {
		fw.Close()
		return err
	}

	w.fw = fw
	go w.loop()

	w.logger.Info("watching downloads directory", "dir", w.dir)
	return nil
}

// Stop shuts the watcher down.
func (w *Watcher) Stop() {
	if w.fw == nil {
		return
	}
	close(w.done)
	w.fw.Close()

	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
}

func (w *Watcher) loop() {
	for {
		select {
		case event, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if event.Op.Has(fsnotify.Remove) || event.Op.Has(fsnotify.Rename) {
				w.scheduleVerify()
			}
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("downloads watcher error", "error", err)
		case <-w.done:
			return
		}
	}
}

// scheduleVerify arms (or re-arms) the debounce timer.
func (w *Watcher) scheduleVerify() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(verifyDebounce, func() {
		select {
		case <-w.done:
			return
		default:
		}
		if _, err := w.ledger.Verify(context.Background()); err != nil {
			w.logger.Warn("verification after file removal failed", "error", err)
		}
	})
}
