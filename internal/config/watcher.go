package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// A Watcher reloads a profile when its file changes on disk. Editors
// often write config files as a rename-over or a burst of small
// writes, so events are debounced before the reload fires.
type Watcher struct {
	path     string
	debounce time.Duration
	onReload func(Profile)
	onError  func(error)

	fs      *fsnotify.Watcher
	closeCh chan struct{}

	mu     sync.Mutex
	timer  *time.Timer
	closed bool
}

// DefaultDebounce is the reload settle delay.
const DefaultDebounce = 100 * time.Millisecond

// Watch starts watching path and invokes onReload with each newly
// loaded profile. Load failures are passed to onError; onError may be
// nil. Watching the parent directory keeps coverage across editors
// that replace the file instead of writing in place.
func Watch(path string, debounce time.Duration, onReload func(Profile), onError func(error)) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fs.Add(filepath.Dir(abs)); err != nil {
		fs.Close()
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	w := &Watcher{
		path:     abs,
		debounce: debounce,
		onReload: onReload,
		onError:  onError,
		fs:       fs,
		closeCh:  make(chan struct{}),
	}
	go w.processLoop()
	return w, nil
}

// Close stops watching. Pending debounced reloads are dropped.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	close(w.closeCh)
	return w.fs.Close()
}

func (w *Watcher) processLoop() {
	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !w.relevant(ev) {
				continue
			}
			w.arm()
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.fail(err)
		case <-w.closeCh:
			return
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.path {
		return false
	}
	return ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Create) || ev.Op.Has(fsnotify.Rename)
}

// arm resets the debounce timer so a burst of writes produces one
// reload after the burst settles.
func (w *Watcher) arm() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.reload)
}

func (w *Watcher) reload() {
	w.mu.Lock()
	closed := w.closed
	w.mu.Unlock()
	if closed {
		return
	}

	p, err := Load(w.path)
	if err != nil {
		w.fail(err)
		return
	}
	w.onReload(p)
}

func (w *Watcher) fail(err error) {
	if w.onError != nil {
		w.onError(err)
	}
}
