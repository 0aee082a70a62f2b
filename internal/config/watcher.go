package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"dropgrip/internal/eventbus"
)

const watchDebounce = 150 * time.Millisecond

// Watcher publishes ConfigChangedEvent when the config file is written.
// It watches the parent directory so editors that replace the file are seen too.
type Watcher struct {
	path     string
	bus      eventbus.EventBus
	watcher  *fsnotify.Watcher
	debounce time.Duration
}

// NewWatcher creates a watcher for path
func NewWatcher(path string, bus eventbus.EventBus) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create config watcher: %w", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to resolve config path: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch config directory: %w", err)
	}
	return &Watcher{
		path:     abs,
		bus:      bus,
		watcher:  fw,
		debounce: watchDebounce,
	}, nil
}

// Run delivers change events until ctx is done
func (w *Watcher) Run(ctx context.Context) {
	defer w.watcher.Close()

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			// editors write in bursts; report once they settle
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			slog.Debug("config file changed", "path", w.path)
			w.bus.Publish(eventbus.ConfigChangedEvent{Path: w.path})
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("config watcher error", "error", err)
		}
	}
}
