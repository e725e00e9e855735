package domain

import (
	"context"
	"io/fs"
	"strings"
)

// FileSystem is the platform file access the facade forwards to.
// Paths are passed through untouched.
type FileSystem interface {
	// ReadFile reads the named file and returns its contents.
	ReadFile(path string) ([]byte, error)
	// WriteFile writes data to the named file, creating or truncating it.
	WriteFile(path string, data []byte, perm fs.FileMode) error
	// Stat returns metadata for the named file.
	Stat(path string) (fs.FileInfo, error)
	// Name returns the backend identifier (e.g. "local").
	Name() string
}

// FileFilter restricts a file dialog to one named file type.
type FileFilter struct {
	DisplayName string
	Extensions  []string // without leading dot, e.g. "json"
}

// Patterns returns glob patterns for the filter's extensions ("*.json").
func (f FileFilter) Patterns() []string {
	out := make([]string, 0, len(f.Extensions))
	for _, ext := range f.Extensions {
		out = append(out, "*."+strings.TrimPrefix(ext, "."))
	}
	return out
}

// MessageKind selects the icon and severity of a message box.
type MessageKind string

const (
	MessageInfo    MessageKind = "info"
	MessageWarning MessageKind = "warning"
	MessageError   MessageKind = "error"
)

// ParseMessageKind maps a front-end kind string to a MessageKind.
// Unknown values fall back to MessageInfo.
func ParseMessageKind(s string) MessageKind {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "warning", "warn":
		return MessageWarning
	case "error":
		return MessageError
	default:
		return MessageInfo
	}
}

// Dialogs shows native dialogs. The pickers block until the user responds
// and return "" when the user cancels.
type Dialogs interface {
	SaveFile(ctx context.Context, title string, filter FileFilter) (string, error)
	OpenFile(ctx context.Context, title string, filter FileFilter) (string, error)
	Message(ctx context.Context, kind MessageKind, title, message string) error
}

// Window controls the host window and process lifetime.
type Window interface {
	SetTitle(ctx context.Context, title string) error
	// Quit asks the host to shut down; the process exits with code afterwards.
	Quit(ctx context.Context, code int) error
}
