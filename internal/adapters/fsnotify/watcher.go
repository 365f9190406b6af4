// Package fsnotify watches a drop directory for corpus files using
// github.com/fsnotify/fsnotify. Per-file events are debounced until writes
// settle, so a corpus still being copied in is not picked up half-written.
package fsnotify

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// corpusExts are the file extensions that count as corpora.
var corpusExts = map[string]bool{
	".csv": true,
	".tsv": true,
}

// tempSuffixes mark in-progress editor or browser writes.
var tempSuffixes = []string{".swp", ".tmp", ".part", ".crdownload", "~"}

// settleInterval is how long a corpus file must stay quiet before the
// callback fires. Spreadsheet exports and network copies write in bursts.
const settleInterval = 500 * time.Millisecond

// Watcher watches a drop directory and reports settled corpus files.
type Watcher struct {
	fw      *fsnotify.Watcher
	done    chan struct{}
	stopped bool
	mu      sync.Mutex

	pending map[string]*time.Timer
	pmu     sync.Mutex
}

// NewWatcher creates a new drop-directory watcher.
func NewWatcher() (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		fw:      fw,
		done:    make(chan struct{}),
		pending: make(map[string]*time.Timer),
	}, nil
}

// Watch starts monitoring dir recursively. onCorpus is called with the
// absolute path of each created or modified corpus file once its writes
// have settled.
func (w *Watcher) Watch(dir string, onCorpus func(path string)) error {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return err
	}

	// Walk and add all directories
	err = filepath.Walk(absPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // skip inaccessible paths
		}
		if info.IsDir() {
			if hiddenDir(info.Name()) && path != absPath {
				return filepath.SkipDir
			}
			return w.fw.Add(path)
		}
		return nil
	})
	if err != nil {
		return err
	}

	go func() {
		for {
			select {
			case event, ok := <-w.fw.Events:
				if !ok {
					return
				}
				path := event.Name

				// New directories join the watch list
				if event.Has(fsnotify.Create) {
					if info, err := os.Stat(path); err == nil && info.IsDir() {
						if !hiddenDir(info.Name()) {
							w.fw.Add(path)
						}
						continue
					}
				}

				if !isCorpusFile(path) {
					continue
				}

				// Only arrivals and writes matter; a removed corpus has
				// nothing left to analyze.
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
					w.schedule(path, onCorpus)
				}

			case _, ok := <-w.fw.Errors:
				if !ok {
					return
				}
				// Errors are swallowed — fsnotify recovers automatically

			case <-w.done:
				return
			}
		}
	}()

	return nil
}

// schedule arms (or re-arms) the settle timer for one corpus file.
func (w *Watcher) schedule(path string, onCorpus func(string)) {
	w.pmu.Lock()
	defer w.pmu.Unlock()

	if timer, ok := w.pending[path]; ok {
		timer.Reset(settleInterval)
		return
	}
	w.pending[path] = time.AfterFunc(settleInterval, func() {
		w.pmu.Lock()
		delete(w.pending, path)
		w.pmu.Unlock()

		select {
		case <-w.done:
			return
		default:
		}
		onCorpus(path)
	})
}

// Stop ends monitoring, cancels pending settle timers, and releases all
// resources. Safe to call multiple times.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return nil
	}
	w.stopped = true
	close(w.done)

	w.pmu.Lock()
	for path, timer := range w.pending {
		timer.Stop()
		delete(w.pending, path)
	}
	w.pmu.Unlock()

	return w.fw.Close()
}

// isCorpusFile reports whether path looks like a finished corpus drop.
func isCorpusFile(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return false
	}
	for _, suffix := range tempSuffixes {
		if strings.HasSuffix(base, suffix) {
			return false
		}
	}
	return corpusExts[strings.ToLower(filepath.Ext(base))]
}

// hiddenDir reports whether a directory name should be skipped.
func hiddenDir(name string) bool {
	return strings.HasPrefix(name, ".")
}
