// Package desktop hosts the front-end in a Wails web-view and routes its
// native calls (dialogs, window, events) through the Wails runtime.
package desktop

import (
	"context"
	"strings"
	"sync"

	"github.com/wailsapp/wails/v2/pkg/runtime"

	"wbs-desktop/internal/domain"
)

// Shell is the subset of the Wails runtime the host uses.
type Shell interface {
	OpenFileDialog(ctx context.Context, opts runtime.OpenDialogOptions) (string, error)
	SaveFileDialog(ctx context.Context, opts runtime.SaveDialogOptions) (string, error)
	MessageDialog(ctx context.Context, opts runtime.MessageDialogOptions) (string, error)
	EventsEmit(ctx context.Context, name string, data ...interface{})
	WindowSetTitle(ctx context.Context, title string)
	Quit(ctx context.Context)
}

// WailsShell forwards to the Wails runtime package.
type WailsShell struct{}

func (WailsShell) OpenFileDialog(ctx context.Context, opts runtime.OpenDialogOptions) (string, error) {
	return runtime.OpenFileDialog(ctx, opts)
}

func (WailsShell) SaveFileDialog(ctx context.Context, opts runtime.SaveDialogOptions) (string, error) {
	return runtime.SaveFileDialog(ctx, opts)
}

func (WailsShell) MessageDialog(ctx context.Context, opts runtime.MessageDialogOptions) (string, error) {
	return runtime.MessageDialog(ctx, opts)
}

func (WailsShell) EventsEmit(ctx context.Context, name string, data ...interface{}) {
	runtime.EventsEmit(ctx, name, data...)
}

func (WailsShell) WindowSetTitle(ctx context.Context, title string) {
	runtime.WindowSetTitle(ctx, title)
}

func (WailsShell) Quit(ctx context.Context) {
	runtime.Quit(ctx)
}

// Runtime holds the context Wails hands to OnStartup. Every runtime call
// must use that context, so callers' contexts are only used for tracing.
type Runtime struct {
	shell Shell

	mu       sync.RWMutex
	ctx      context.Context
	exitCode int
}

// NewRuntime wraps shell. It is unusable until Attach is called.
func NewRuntime(shell Shell) *Runtime {
	return &Runtime{shell: shell}
}

// Attach records the Wails context.
func (r *Runtime) Attach(ctx context.Context) {
	r.mu.Lock()
	r.ctx = ctx
	r.mu.Unlock()
}

func (r *Runtime) context() (context.Context, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.ctx == nil {
		return nil, domain.ErrHostNotReady
	}
	return r.ctx, nil
}

// ExitCode returns the code passed to the last Quit.
func (r *Runtime) ExitCode() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.exitCode
}

// Emit sends an event to the front-end. Before Attach it is dropped.
func (r *Runtime) Emit(name string, data ...interface{}) bool {
	ctx, err := r.context()
	if err != nil {
		return false
	}
	r.shell.EventsEmit(ctx, name, data...)
	return true
}

// Dialogs implements domain.Dialogs with the Wails runtime dialogs.
type Dialogs struct {
	rt *Runtime
}

// NewDialogs returns dialogs bound to rt.
func NewDialogs(rt *Runtime) *Dialogs {
	return &Dialogs{rt: rt}
}

func (d *Dialogs) SaveFile(_ context.Context, title string, filter domain.FileFilter) (string, error) {
	ctx, err := d.rt.context()
	if err != nil {
		return "", err
	}
	return d.rt.shell.SaveFileDialog(ctx, runtime.SaveDialogOptions{
		Title:                title,
		Filters:              wailsFilters(filter),
		CanCreateDirectories: true,
	})
}

func (d *Dialogs) OpenFile(_ context.Context, title string, filter domain.FileFilter) (string, error) {
	ctx, err := d.rt.context()
	if err != nil {
		return "", err
	}
	return d.rt.shell.OpenFileDialog(ctx, runtime.OpenDialogOptions{
		Title:   title,
		Filters: wailsFilters(filter),
	})
}

func (d *Dialogs) Message(_ context.Context, kind domain.MessageKind, title, message string) error {
	ctx, err := d.rt.context()
	if err != nil {
		return err
	}
	_, err = d.rt.shell.MessageDialog(ctx, runtime.MessageDialogOptions{
		Type:    dialogType(kind),
		Title:   title,
		Message: message,
	})
	return err
}

// Wails takes one pattern string per filter, ';'-separated.
func wailsFilters(filter domain.FileFilter) []runtime.FileFilter {
	patterns := filter.Patterns()
	if len(patterns) == 0 {
		return nil
	}
	return []runtime.FileFilter{{
		DisplayName: filter.DisplayName,
		Pattern:     strings.Join(patterns, ";"),
	}}
}

func dialogType(kind domain.MessageKind) runtime.DialogType {
	switch kind {
	case domain.MessageError:
		return runtime.ErrorDialog
	case domain.MessageWarning:
		return runtime.WarningDialog
	default:
		return runtime.InfoDialog
	}
}

// Window implements domain.Window with the Wails runtime.
type Window struct {
	rt *Runtime
}

// NewWindow returns a window bound to rt.
func NewWindow(rt *Runtime) *Window {
	return &Window{rt: rt}
}

func (w *Window) SetTitle(_ context.Context, title string) error {
	ctx, err := w.rt.context()
	if err != nil {
		return err
	}
	w.rt.shell.WindowSetTitle(ctx, title)
	return nil
}

// Quit records code for main and asks Wails to close the application.
func (w *Window) Quit(_ context.Context, code int) error {
	ctx, err := w.rt.context()
	if err != nil {
		return err
	}
	w.rt.mu.Lock()
	w.rt.exitCode = code
	w.rt.mu.Unlock()
	w.rt.shell.Quit(ctx)
	return nil
}
