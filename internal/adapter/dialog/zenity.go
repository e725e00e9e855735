// Package dialog shows native dialogs without a web-view host, using zenity.
// It backs the browser bridge, where no Wails runtime is available.
package dialog

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ncruces/zenity"

	"wbs-desktop/internal/domain"
)

// Native implements domain.Dialogs with zenity.
type Native struct {
	logger *slog.Logger

	// Overridable for tests.
	selectFile     func(opts ...zenity.Option) (string, error)
	selectFileSave func(opts ...zenity.Option) (string, error)
	message        func(kind domain.MessageKind, text string, opts ...zenity.Option) error
}

// New creates zenity-backed dialogs.
func New(logger *slog.Logger) *Native {
	if logger == nil {
		logger = slog.Default()
	}
	return &Native{
		logger:         logger,
		selectFile:     zenity.SelectFile,
		selectFileSave: zenity.SelectFileSave,
		message:        showMessage,
	}
}

// SaveFile shows a save picker that confirms before overwriting.
func (n *Native) SaveFile(ctx context.Context, title string, filter domain.FileFilter) (string, error) {
	opts := append(pickerOptions(ctx, title, filter), zenity.ConfirmOverwrite())
	path, err := n.selectFileSave(opts...)
	return n.result("save", path, err)
}

// OpenFile shows an open picker for a single existing file.
func (n *Native) OpenFile(ctx context.Context, title string, filter domain.FileFilter) (string, error) {
	path, err := n.selectFile(pickerOptions(ctx, title, filter)...)
	return n.result("open", path, err)
}

// Message shows a message box and blocks until it is dismissed.
func (n *Native) Message(ctx context.Context, kind domain.MessageKind, title, message string) error {
	opts := []zenity.Option{zenity.Context(ctx)}
	if title != "" {
		opts = append(opts, zenity.Title(title))
	}
	err := n.message(kind, message, opts...)
	if errors.Is(err, zenity.ErrCanceled) {
		return nil
	}
	return err
}

func pickerOptions(ctx context.Context, title string, filter domain.FileFilter) []zenity.Option {
	opts := []zenity.Option{zenity.Context(ctx)}
	if title != "" {
		opts = append(opts, zenity.Title(title))
	}
	if patterns := filter.Patterns(); len(patterns) > 0 {
		opts = append(opts, zenity.FileFilter{
			Name:     filter.DisplayName,
			Patterns: patterns,
			CaseFold: true,
		})
	}
	return opts
}

// result maps zenity's cancel error to an empty selection.
func (n *Native) result(dialog, path string, err error) (string, error) {
	if errors.Is(err, zenity.ErrCanceled) {
		n.logger.Debug("dialog cancelled", "dialog", dialog)
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return path, nil
}

func showMessage(kind domain.MessageKind, text string, opts ...zenity.Option) error {
	switch kind {
	case domain.MessageError:
		return zenity.Error(text, opts...)
	case domain.MessageWarning:
		return zenity.Warning(text, opts...)
	default:
		return zenity.Info(text, opts...)
	}
}
