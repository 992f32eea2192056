package server

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/factsheet/internal/common"
)

// watcher observes the data directory and reports which property changed.
// fsnotify does not recurse, so the data directory and every property
// subdirectory are registered individually; new property directories are
// added as they appear.
type watcher struct {
	fsw      *fsnotify.Watcher
	dataDir  string
	onChange func(propertyID string)
	debounce time.Duration
	logger   arbor.ILogger

	mu      sync.Mutex
	pending map[string]*time.Timer
	done    chan struct{}
}

func newWatcher(config *common.Config, onChange func(propertyID string), logger arbor.ILogger) (*watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &watcher{
		fsw:      fsw,
		dataDir:  config.Site.DataDir,
		onChange: onChange,
		debounce: config.DebounceDuration(),
		logger:   logger,
		pending:  make(map[string]*time.Timer),
		done:     make(chan struct{}),
	}

	if err := fsw.Add(w.dataDir); err != nil {
		fsw.Close()
		return nil, err
	}

	entries, err := os.ReadDir(w.dataDir)
	if err != nil {
		fsw.Close()
		return nil, err
	}
	for _, entry := range entries {
		if entry.IsDir() {
			if err := fsw.Add(filepath.Join(w.dataDir, entry.Name())); err != nil {
				logger.Warn().Err(err).Str("dir", entry.Name()).Msg("Failed to watch property directory")
			}
		}
	}

	return w, nil
}

func (w *watcher) start() {
	go w.loop()
	w.logger.Info().Str("dir", w.dataDir).Dur("debounce", w.debounce).Msg("File watcher started")
}

func (w *watcher) stop() {
	close(w.done)
	w.fsw.Close()

	w.mu.Lock()
	for _, timer := range w.pending {
		timer.Stop()
	}
	w.pending = make(map[string]*time.Timer)
	w.mu.Unlock()
}

func (w *watcher) loop() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn().Err(err).Msg("File watcher error")
		}
	}
}

func (w *watcher) handleEvent(event fsnotify.Event) {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) == 0 {
		return
	}

	// A newly created property directory needs its own watch.
	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.fsw.Add(event.Name); err != nil {
				w.logger.Warn().Err(err).Str("dir", event.Name).Msg("Failed to watch new directory")
			}
		}
	}

	propertyID := w.propertyFor(event.Name)
	if propertyID == "" {
		return
	}

	w.schedule(propertyID)
}

// propertyFor maps a changed path to the property directory that contains
// it. Changes directly in the data directory root are ignored.
func (w *watcher) propertyFor(path string) string {
	rel, err := filepath.Rel(w.dataDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return ""
	}

	parts := strings.Split(filepath.ToSlash(rel), "/")
	if len(parts) < 2 {
		return ""
	}
	return parts[0]
}

// schedule debounces per property: the rebuild fires once the directory has
// been quiet for the debounce interval.
func (w *watcher) schedule(propertyID string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, ok := w.pending[propertyID]; ok {
		timer.Reset(w.debounce)
		return
	}

	w.pending[propertyID] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.pending, propertyID)
		w.mu.Unlock()

		select {
		case <-w.done:
			return
		default:
		}

		w.logger.Debug().Str("property_id", propertyID).Msg("Change detected")
		w.onChange(propertyID)
	})
}
