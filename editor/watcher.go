package editor

import (
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher forwards filesystem change events for a fixed set of files onto a
// channel drained by the main loop. Watching happens per directory because
// many editors save by writing a temp file and renaming it over the
// original, which a direct file watch loses track of.
type Watcher struct {
	fs     *fsnotify.Watcher
	paths  map[string]struct{}
	events chan string
}

// NewWatcher watches the given files. Paths should be absolute and cleaned;
// events are reported under the same names.
func NewWatcher(paths ...string) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fs:     fs,
		paths:  make(map[string]struct{}, len(paths)),
		events: make(chan string, 16),
	}

	dirs := make(map[string]struct{})
	for _, p := range paths {
		p = filepath.Clean(p)
		w.paths[p] = struct{}{}
		dirs[filepath.Dir(p)] = struct{}{}
	}
	for dir := range dirs {
		if err := fs.Add(dir); err != nil {
			fs.Close()
			return nil, err
		}
	}

	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				close(w.events)
				return
			}
			if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) {
				continue
			}
			name := filepath.Clean(ev.Name)
			if _, tracked := w.paths[name]; !tracked {
				continue
			}
			// Drop when the main loop is behind; the debounce window
			// makes a lost intermediate event harmless.
			select {
			case w.events <- name:
			default:
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				close(w.events)
				return
			}
			slog.Warn("file watcher error", "err", err)
		}
	}
}

// Events yields the paths of watched files that changed. The channel closes
// after Close.
func (w *Watcher) Events() <-chan string {
	return w.events
}

func (w *Watcher) Close() error {
	return w.fs.Close()
}
