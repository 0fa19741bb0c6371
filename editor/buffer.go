// Package editor provides the file-backed editing surfaces glslpad watches,
// plus the debounce timers that turn raw edits into compile and save
// requests.
package editor

import (
	"errors"
	"os"
)

// Buffer is one editing surface backed by a file on disk. The file is the
// authoritative text: SetValue writes through to it, Reload re-reads it
// after an external edit. Buffers are confined to the main loop.
type Buffer struct {
	path     string
	value    string
	onChange []func()
}

// NewBuffer opens the buffer for path. An existing file wins over initial;
// a missing file is created with initial as its contents.
func NewBuffer(path, initial string) (*Buffer, error) {
	b := &Buffer{path: path}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		b.value = string(data)
	case errors.Is(err, os.ErrNotExist):
		if err := os.WriteFile(path, []byte(initial), 0o644); err != nil {
			return nil, err
		}
		b.value = initial
	default:
		return nil, err
	}
	return b, nil
}

func (b *Buffer) Path() string {
	return b.path
}

func (b *Buffer) Value() string {
	return b.value
}

// SetValue replaces the buffer text, writes it through to the file and
// fires change notifications.
func (b *Buffer) SetValue(text string) error {
	if err := os.WriteFile(b.path, []byte(text), 0o644); err != nil {
		return err
	}
	b.value = text
	b.notify()
	return nil
}

// Reload re-reads the file after a watcher event. Notifications fire only
// when the text actually changed, so the write-through of SetValue and the
// duplicate events some editors emit do not echo back as edits.
func (b *Buffer) Reload() error {
	data, err := os.ReadFile(b.path)
	if err != nil {
		return err
	}
	text := string(data)
	if text == b.value {
		return nil
	}
	b.value = text
	b.notify()
	return nil
}

// OnChange registers a callback fired on every text mutation.
func (b *Buffer) OnChange(f func()) {
	b.onChange = append(b.onChange, f)
}

func (b *Buffer) notify() {
	for _, f := range b.onChange {
		f()
	}
}
