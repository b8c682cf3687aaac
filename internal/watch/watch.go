// Package watch reports when a browser store changes on disk.
//
// Browsers replace files atomically and keep sqlite changes in -wal and
// -journal sidecars, so the watcher observes each store's parent directory
// and maps any event on the store or its sidecars back to the source.
// Bursts of events are debounced into one notification per source.
package watch

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/five82/trawl/internal/browser"
	"github.com/five82/trawl/internal/logging"
)

const DefaultDebounce = 250 * time.Millisecond

// Watcher emits a Source on Events after its store changes.
type Watcher struct {
	fs       *fsnotify.Watcher
	files    map[string][]browser.Source
	debounce time.Duration
	log      logrus.FieldLogger

	events chan browser.Source
	done   chan struct{}
	wg     sync.WaitGroup
	once   sync.Once
}

// New starts watching the stores in paths. Directories that do not exist
// are skipped with a warning; the watcher still runs for the rest.
func New(paths map[browser.Source][]string, debounce time.Duration, log logrus.FieldLogger) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	w := &Watcher{
		fs:       fsw,
		files:    make(map[string][]browser.Source),
		debounce: debounce,
		log:      logging.OrDiscard(log).WithField("component", "watch"),
		events:   make(chan browser.Source, len(browser.Sources())),
		done:     make(chan struct{}),
	}

	dirs := make(map[string]bool)
	for source, files := range paths {
		for _, f := range files {
			if f == "" {
				continue
			}
			clean := filepath.Clean(f)
			w.files[clean] = append(w.files[clean], source)
			dirs[filepath.Dir(clean)] = true
		}
	}
	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			w.log.WithField("dir", dir).Warnf("cannot watch store directory: %v", err)
		}
	}

	w.wg.Add(1)
	go w.loop()
	return w, nil
}

// Events delivers changed sources. It is closed by Close.
func (w *Watcher) Events() <-chan browser.Source { return w.events }

// Close stops the watcher and closes Events.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fs.Close()
		w.wg.Wait()
		close(w.events)
	})
	return err
}

// sourcesFor maps an event path to the sources whose store it touches.
func (w *Watcher) sourcesFor(name string) []browser.Source {
	name = filepath.Clean(name)
	if s, ok := w.files[name]; ok {
		return s
	}
	for file, sources := range w.files {
		if strings.HasPrefix(name, file+"-") {
			return sources
		}
	}
	return nil
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	pending := make(map[browser.Source]bool)
	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if event.Op == fsnotify.Chmod {
				continue
			}
			sources := w.sourcesFor(event.Name)
			if len(sources) == 0 {
				continue
			}
			for _, s := range sources {
				pending[s] = true
			}
			timer.Reset(w.debounce)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.log.Warnf("watcher error: %v", err)
		case <-timer.C:
			for _, s := range browser.Sources() {
				if !pending[s] {
					continue
				}
				delete(pending, s)
				w.log.WithField("source", s).Debug("store changed")
				select {
				case w.events <- s:
				default:
					// A notification for s is already queued.
				}
			}
		}
	}
}
