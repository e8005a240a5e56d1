package project

import (
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher observes the primary store for log activity, maps
// changed files back to project identifiers, invalidates their
// cached canonical paths, and reports the identifiers to a
// callback after debouncing. New project directories are added
// to the watch list as they appear.
type Watcher struct {
	root     string
	cache    *DirCache
	onChange func(identifiers []string)
	watcher  *fsnotify.Watcher
	debounce time.Duration
	pending  map[string]time.Time
	mu       sync.Mutex
	started  bool
	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
	now      func() time.Time
}

// NewWatcher creates a watcher over the store rooted at root.
// onChange receives deduplicated project identifiers once their
// activity has settled for the debounce period.
func NewWatcher(
	root string, debounce time.Duration,
	cache *DirCache, onChange func([]string),
) (*Watcher, error) {
	if onChange == nil {
		return nil, fmt.Errorf(
			"onChange callback is nil: %w", os.ErrInvalid,
		)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		root:     root,
		cache:    cache,
		onChange: onChange,
		watcher:  fsw,
		debounce: debounce,
		pending:  make(map[string]time.Time),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
		now:      time.Now,
	}, nil
}

// Start watches the store tree and begins processing events.
func (w *Watcher) Start() error {
	err := filepath.WalkDir(w.root,
		func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil // skip inaccessible dirs
			}
			if d.IsDir() {
				if addErr := w.watcher.Add(path); addErr != nil {
					log.Printf("watching %s: %v", path, addErr)
				}
			}
			return nil
		})
	if err != nil {
		return fmt.Errorf("walking %s: %w", w.root, err)
	}

	w.mu.Lock()
	w.started = true
	w.mu.Unlock()
	go w.loop()
	return nil
}

// Stop stops the watcher and waits for it to finish. Stopping a
// watcher that was never started only releases its resources.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stop)
		w.mu.Lock()
		started := w.started
		w.mu.Unlock()
		if started {
			<-w.done
		}
		w.watcher.Close()
	})
}

func (w *Watcher) loop() {
	defer close(w.done)
	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	for {
		select {
		case <-w.stop:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("watcher error: %v", err)

		case <-ticker.C:
			w.flush()
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove) == 0 {
		return
	}

	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			_ = w.watcher.Add(event.Name)
		}
	}

	id := w.identifierFor(event.Name)
	if id == "" {
		return
	}

	w.mu.Lock()
	w.pending[id] = w.now()
	w.mu.Unlock()
}

// identifierFor maps a changed path to the project identifier
// that owns it: the first path element below the store root.
func (w *Watcher) identifierFor(path string) string {
	rel, err := filepath.Rel(w.root, path)
	if err != nil || rel == "." ||
		strings.HasPrefix(rel, "..") {
		return ""
	}
	parts := strings.SplitN(
		rel, string(filepath.Separator), 2,
	)
	return parts[0]
}

// flush invalidates and reports identifiers whose activity has
// settled.
func (w *Watcher) flush() {
	w.mu.Lock()
	now := w.now()
	var ready []string
	for id, t := range w.pending {
		if now.Sub(t) >= w.debounce {
			ready = append(ready, id)
		}
	}
	for _, id := range ready {
		delete(w.pending, id)
	}
	w.mu.Unlock()

	if len(ready) == 0 {
		return
	}
	sort.Strings(ready)

	for _, id := range ready {
		w.cache.Invalidate(id)
	}
	w.onChange(ready)
}
