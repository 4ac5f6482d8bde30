package dialect

import (
	"errors"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ErrWatcherClosed is returned by Watcher methods after Close.
var ErrWatcherClosed = errors.New("dialect watcher closed")

// Watcher reloads a dialect file whenever it changes on disk. Editors tend
// to produce bursts of writes (and some replace the file via rename), so
// the watcher watches the containing directory and debounces before
// reloading.
type Watcher struct {
	path    string
	fsw     *fsnotify.Watcher
	configs chan *Config
	errs    chan error

	debounce time.Duration

	mu     sync.Mutex
	closed bool
	done   chan struct{}
	wg     sync.WaitGroup
}

// WatchFile starts watching a dialect file. The current content is parsed
// immediately and delivered as the first config.
func WatchFile(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		path:     abs,
		fsw:      fsw,
		configs:  make(chan *Config, 1),
		errs:     make(chan error, 1),
		debounce: 100 * time.Millisecond,
		done:     make(chan struct{}),
	}

	cfg, err := Load(abs)
	if err != nil {
		fsw.Close()
		return nil, err
	}
	w.configs <- cfg

	w.wg.Add(1)
	go w.loop()
	return w, nil
}

// Configs delivers each successfully reloaded config. Reloads that fail to
// parse go to Errors instead and the previous config stays in effect.
func (w *Watcher) Configs() <-chan *Config {
	return w.configs
}

// Errors delivers reload failures.
func (w *Watcher) Errors() <-chan error {
	return w.errs
}

// Close stops watching and closes both channels.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return ErrWatcherClosed
	}
	w.closed = true
	close(w.done)
	w.mu.Unlock()

	err := w.fsw.Close()
	w.wg.Wait()
	close(w.configs)
	close(w.errs)
	return err
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write | fsnotify.Create | fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				timer.Reset(w.debounce)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.deliverError(err)
		case <-timerC:
			timerC = nil
			timer = nil
			cfg, err := Load(w.path)
			if err != nil {
				w.deliverError(err)
				continue
			}
			w.deliver(cfg)
		}
	}
}

func (w *Watcher) deliver(cfg *Config) {
	select {
	case w.configs <- cfg:
	case <-w.done:
	default:
		// Drop the stale pending config and queue the newest.
		select {
		case <-w.configs:
		default:
		}
		select {
		case w.configs <- cfg:
		default:
		}
	}
}

func (w *Watcher) deliverError(err error) {
	select {
	case w.errs <- err:
	case <-w.done:
	default:
	}
}
