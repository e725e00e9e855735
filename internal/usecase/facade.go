package usecase

import (
	"context"
	"io/fs"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"wbs-desktop/internal/domain"
	"wbs-desktop/internal/infra/metrics"
	"wbs-desktop/internal/infra/tracer"
)

// Command names as the front-end invokes them.
const (
	CmdSaveFile        = "save_file"
	CmdReadFile        = "read_file"
	CmdGetModifiedTime = "get_modified_time"
	CmdPickSavePath    = "pick_save_path"
	CmdPickOpenPath    = "pick_open_path"
	CmdGetInitialFile  = "get_initial_file"
	CmdShowMessage     = "show_message"
	CmdSetWindowTitle  = "set_window_title"
	CmdExitApp         = "exit_app"
)

// FacadeDeps holds injected dependencies for the facade.
type FacadeDeps struct {
	FS        domain.FileSystem
	Dialogs   domain.Dialogs
	Window    domain.Window
	Bus       domain.EventPublisher // optional, nil = startup push disabled
	Startup   *StartupFile          // optional, nil = no startup file
	Metrics   *metrics.Metrics      // optional, nil = no metrics
	Logger    *slog.Logger
	Filter    domain.FileFilter
	SaveTitle string
	OpenTitle string
	WritePerm fs.FileMode
}

// Facade exposes the platform operations to the front-end. It keeps no
// state of its own beyond the startup file.
type Facade struct {
	deps FacadeDeps
}

// NewFacade creates a facade with the given dependencies.
func NewFacade(deps FacadeDeps) *Facade {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.WritePerm == 0 {
		deps.WritePerm = 0o644
	}
	if deps.Filter.DisplayName == "" && len(deps.Filter.Extensions) == 0 {
		deps.Filter = domain.FileFilter{DisplayName: "JSON", Extensions: []string{"json"}}
	}
	return &Facade{deps: deps}
}

// begin starts a span for op and returns a func that finishes it and
// records the command metric.
func (f *Facade) begin(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, func(error)) {
	start := time.Now()
	ctx, span := tracer.StartSpan(ctx, "facade."+op, trace.WithAttributes(attrs...))
	return ctx, func(err error) {
		tracer.Finish(span, err)
		f.deps.Metrics.ObserveCommand(op, err, time.Since(start))
	}
}

// SaveFile writes content to path, creating or truncating the file.
func (f *Facade) SaveFile(ctx context.Context, path string, content domain.Content) (err error) {
	_, done := f.begin(ctx, CmdSaveFile, tracer.PathAttr(path), tracer.IntAttr("file.size", len(content)))
	defer func() { done(err) }()

	if err = f.deps.FS.WriteFile(path, content, f.deps.WritePerm); err != nil {
		f.deps.Logger.Debug("save failed", "path", path, "error", err)
		return err
	}
	f.deps.Metrics.AddBytesWritten(len(content))
	f.deps.Logger.Debug("file saved", "path", path, "size", len(content))
	return nil
}

// ReadFile returns the full contents of path.
func (f *Facade) ReadFile(ctx context.Context, path string) (content domain.Content, err error) {
	_, done := f.begin(ctx, CmdReadFile, tracer.PathAttr(path))
	defer func() { done(err) }()

	data, err := f.deps.FS.ReadFile(path)
	if err != nil {
		f.deps.Logger.Debug("read failed", "path", path, "error", err)
		return nil, err
	}
	f.deps.Metrics.AddBytesRead(len(data))
	f.deps.Logger.Debug("file read", "path", path, "size", len(data))
	return domain.Content(data), nil
}

// ModifiedTime returns the last modification time of path in milliseconds
// since the Unix epoch. A modification time before the epoch is an error.
func (f *Facade) ModifiedTime(ctx context.Context, path string) (millis uint64, err error) {
	_, done := f.begin(ctx, CmdGetModifiedTime, tracer.PathAttr(path))
	defer func() { done(err) }()

	info, err := f.deps.FS.Stat(path)
	if err != nil {
		f.deps.Logger.Debug("stat failed", "path", path, "error", err)
		return 0, err
	}
	mod := info.ModTime()
	if mod.Before(time.Unix(0, 0)) {
		return 0, domain.NewDomainError("Facade.ModifiedTime", domain.ErrBeforeEpoch, path)
	}
	return uint64(mod.UnixMilli()), nil
}

// PickSavePath shows the save dialog. Cancellation and dialog failures both
// report no selection.
func (f *Facade) PickSavePath(ctx context.Context) (string, bool) {
	return f.pick(ctx, CmdPickSavePath, f.deps.SaveTitle, f.deps.Dialogs.SaveFile)
}

// PickOpenPath shows the open dialog. Cancellation and dialog failures both
// report no selection.
func (f *Facade) PickOpenPath(ctx context.Context) (string, bool) {
	return f.pick(ctx, CmdPickOpenPath, f.deps.OpenTitle, f.deps.Dialogs.OpenFile)
}

type pickFunc func(ctx context.Context, title string, filter domain.FileFilter) (string, error)

func (f *Facade) pick(ctx context.Context, op, title string, show pickFunc) (string, bool) {
	ctx, done := f.begin(ctx, op)
	path, err := show(ctx, title, f.deps.Filter)
	done(err)
	if err != nil {
		f.deps.Logger.Warn("file dialog failed", "command", op, "error", err)
		return "", false
	}
	if path == "" {
		f.deps.Logger.Debug("file dialog cancelled", "command", op)
		return "", false
	}
	return path, true
}

// InitialFile returns the startup file path, if one was captured at launch.
func (f *Facade) InitialFile() (string, bool) {
	_, done := f.begin(context.Background(), CmdGetInitialFile)
	defer done(nil)
	return f.deps.Startup.Path()
}

// UIReady is called once the front-end can receive events. The first call
// pushes the startup file; later calls do nothing.
func (f *Facade) UIReady(ctx context.Context) bool {
	published := f.deps.Startup.Announce(ctx, f.deps.Bus)
	if published {
		f.deps.Metrics.EventEmitted(string(domain.EventStartupFile))
		f.deps.Logger.Info("startup file announced")
	}
	return published
}

// ShowMessage shows a native message box. Unknown kinds render as info.
func (f *Facade) ShowMessage(ctx context.Context, title, message string, kind domain.MessageKind) (err error) {
	ctx, done := f.begin(ctx, CmdShowMessage, tracer.StringAttr("message.kind", string(kind)))
	defer func() { done(err) }()

	if kind == "" {
		kind = domain.MessageInfo
	}
	return f.deps.Dialogs.Message(ctx, domain.ParseMessageKind(string(kind)), title, message)
}

// SetWindowTitle sets the native window title.
func (f *Facade) SetWindowTitle(ctx context.Context, title string) (err error) {
	ctx, done := f.begin(ctx, CmdSetWindowTitle)
	defer func() { done(err) }()
	return f.deps.Window.SetTitle(ctx, title)
}

// Exit asks the host to shut down with the given status code.
func (f *Facade) Exit(ctx context.Context, code int) (err error) {
	ctx, done := f.begin(ctx, CmdExitApp, tracer.IntAttr("exit.code", code))
	defer func() { done(err) }()

	f.deps.Logger.Info("exit requested", "code", code)
	return f.deps.Window.Quit(ctx, code)
}
