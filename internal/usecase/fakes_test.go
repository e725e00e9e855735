package usecase

import (
	"context"
	"io/fs"
	"sync"
	"time"

	"wbs-desktop/internal/domain"
)

// recordingBus records published events.
type recordingBus struct {
	mu     sync.Mutex
	events []domain.Event
}

func (b *recordingBus) Publish(_ context.Context, e domain.Event) {
	b.mu.Lock()
	b.events = append(b.events, e)
	b.mu.Unlock()
}

func (b *recordingBus) Events() []domain.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	cp := make([]domain.Event, len(b.events))
	copy(cp, b.events)
	return cp
}

// fakeDialogs returns canned picker results and records what it was shown.
type fakeDialogs struct {
	mu       sync.Mutex
	path     string
	err      error
	titles   []string
	filters  []domain.FileFilter
	messages []string
	kinds    []domain.MessageKind
}

func (d *fakeDialogs) record(title string, filter domain.FileFilter) {
	d.mu.Lock()
	d.titles = append(d.titles, title)
	d.filters = append(d.filters, filter)
	d.mu.Unlock()
}

func (d *fakeDialogs) SaveFile(_ context.Context, title string, filter domain.FileFilter) (string, error) {
	d.record(title, filter)
	return d.path, d.err
}

func (d *fakeDialogs) OpenFile(_ context.Context, title string, filter domain.FileFilter) (string, error) {
	d.record(title, filter)
	return d.path, d.err
}

func (d *fakeDialogs) Message(_ context.Context, kind domain.MessageKind, title, message string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.kinds = append(d.kinds, kind)
	d.messages = append(d.messages, title+": "+message)
	return d.err
}

// fakeWindow records title changes and quit requests.
type fakeWindow struct {
	mu       sync.Mutex
	title    string
	quitCode int
	quits    int
}

func (w *fakeWindow) SetTitle(_ context.Context, title string) error {
	w.mu.Lock()
	w.title = title
	w.mu.Unlock()
	return nil
}

func (w *fakeWindow) Quit(_ context.Context, code int) error {
	w.mu.Lock()
	w.quitCode = code
	w.quits++
	w.mu.Unlock()
	return nil
}

// stubFS serves a fixed modification time for every Stat.
type stubFS struct {
	modTime time.Time
}

func (s stubFS) ReadFile(string) ([]byte, error)             { return nil, fs.ErrNotExist }
func (s stubFS) WriteFile(string, []byte, fs.FileMode) error { return fs.ErrPermission }
func (s stubFS) Stat(path string) (fs.FileInfo, error)       { return stubInfo{name: path, mod: s.modTime}, nil }
func (s stubFS) Name() string                                { return "stub" }

type stubInfo struct {
	name string
	mod  time.Time
}

func (i stubInfo) Name() string       { return i.name }
func (i stubInfo) Size() int64        { return 0 }
func (i stubInfo) Mode() fs.FileMode  { return 0o644 }
func (i stubInfo) ModTime() time.Time { return i.mod }
func (i stubInfo) IsDir() bool        { return false }
func (i stubInfo) Sys() any           { return nil }
