package server

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/jonathan/brand-insights/internal/schemas"
	"github.com/sirupsen/logrus"
)

// DefaultDebounce is how long the data directory must stay quiet before a reload.
const DefaultDebounce = 500 * time.Millisecond

// Watcher reloads the dataset when any input document in the data directory
// changes. Bursts of events collapse into one reload.
type Watcher struct {
	watcher  *fsnotify.Watcher
	dir      string
	debounce time.Duration
	reload   func() error
	log      logrus.FieldLogger
	watched  map[string]bool

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewWatcher creates a watcher on dir that calls reload after changes settle.
func NewWatcher(dir string, debounce time.Duration, reload func() error, log logrus.FieldLogger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	watched := make(map[string]bool, len(schemas.Documents))
	for _, d := range schemas.Documents {
		watched[d.FileName()] = true
	}

	return &Watcher{
		watcher:  fw,
		dir:      dir,
		debounce: debounce,
		reload:   reload,
		log:      log.WithField("component", "watcher"),
		watched:  watched,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Start begins watching. It is non-blocking; events are handled in a goroutine.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}
	if err := w.watcher.Add(w.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.dir, err)
	}
	w.running = true
	w.log.WithField("dir", w.dir).Info("watching data directory")

	go w.run(ctx)
	return nil
}

// Stop stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	wasRunning := w.running
	w.running = false
	w.mu.Unlock()

	if wasRunning {
		close(w.stopCh)
		<-w.doneCh
	}
	if err := w.watcher.Close(); err != nil {
		w.log.WithError(err).Error("failed to close watcher")
	}
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

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
			if !w.relevant(event) {
				continue
			}
			w.log.WithFields(logrus.Fields{"file": event.Name, "op": event.Op.String()}).Debug("data file changed")
			timer.Reset(w.debounce)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.WithError(err).Error("watcher error")

		case <-timer.C:
			if err := w.reload(); err != nil {
				w.log.WithError(err).Warn("reload failed, keeping previous dataset")
			}
		}
	}
}

// relevant reports whether the event touches one of the seven input documents.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	return w.watched[filepath.Base(event.Name)]
}
