package dialog

import (
	"context"
	"log/slog"
	"sync"
)

// Window implements domain.Window when there is no native window to
// control. Titles are only logged; Quit hands the exit code to onQuit once.
type Window struct {
	logger *slog.Logger
	onQuit func(code int)
	once   sync.Once
}

// NewWindow returns a Window that calls onQuit on the first Quit.
func NewWindow(onQuit func(code int), logger *slog.Logger) *Window {
	if logger == nil {
		logger = slog.Default()
	}
	return &Window{logger: logger, onQuit: onQuit}
}

func (w *Window) SetTitle(_ context.Context, title string) error {
	w.logger.Debug("window title ignored without a native window", "title", title)
	return nil
}

func (w *Window) Quit(_ context.Context, code int) error {
	w.once.Do(func() {
		if w.onQuit != nil {
			w.onQuit(code)
		}
	})
	return nil
}
