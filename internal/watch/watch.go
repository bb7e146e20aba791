// Package watch reruns a build whenever a contract source changes.
package watch

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce collapses bursts of events from a single save
const DefaultDebounce = 100 * time.Millisecond

// Watcher watches source directories for changed files
type Watcher struct {
	Dirs     []string
	Suffix   string
	Debounce time.Duration
}

// Watch blocks until ctx is done, calling build after every write or create
// of a file with the watched suffix. Build failures are logged and the loop
// keeps going.
func (w *Watcher) Watch(ctx context.Context, build func() error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	for _, dir := range w.Dirs {
		if _, err := os.Stat(dir); err == nil {
			if err := watcher.Add(dir); err != nil {
				return err
			}
			log.Debug("Watching directory", "dir", dir)
		}
	}

	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	pending := false

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			log.Info("File changed", "file", event.Name)
			if pending && !timer.Stop() {
				<-timer.C
			}
			timer.Reset(debounce)
			pending = true
		case <-timer.C:
			pending = false
			if err := build(); err != nil {
				log.Error("Build failed", "err", err)
			} else {
				log.Info("Rebuild complete")
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("Watcher error", "err", err)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if w.Suffix != "" && !strings.HasSuffix(event.Name, w.Suffix) {
		return false
	}
	return event.Op&fsnotify.Write == fsnotify.Write || event.Op&fsnotify.Create == fsnotify.Create
}
