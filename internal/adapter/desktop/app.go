package desktop

import (
	"context"
	"encoding/json"
	"io/fs"
	"log/slog"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"

	"wbs-desktop/internal/domain"
	"wbs-desktop/internal/infra/config"
	"wbs-desktop/internal/usecase"
)

// App is bound into the web-view. Its exported methods are the commands the
// front-end invokes; Wails derives the JavaScript names from them.
type App struct {
	facade *usecase.Facade
	rt     *Runtime
	bus    domain.EventBus
	logger *slog.Logger
	unsub  func()
}

// NewApp creates the bound application object.
func NewApp(facade *usecase.Facade, rt *Runtime, bus domain.EventBus, logger *slog.Logger) *App {
	return &App{facade: facade, rt: rt, bus: bus, logger: logger}
}

// startup is the Wails OnStartup hook.
func (a *App) startup(ctx context.Context) {
	a.rt.Attach(ctx)
	a.unsub = a.bus.Subscribe(domain.EventStartupFile, a.forward)
	a.logger.Info("desktop host started")
}

// domReady is the Wails OnDomReady hook. The front-end can receive events
// from this point on.
func (a *App) domReady(ctx context.Context) {
	a.facade.UIReady(ctx)
}

// shutdown is the Wails OnShutdown hook.
func (a *App) shutdown(_ context.Context) {
	if a.unsub != nil {
		a.unsub()
	}
	a.bus.Close()
	a.logger.Info("desktop host stopped", "exit_code", a.rt.ExitCode())
}

// forward pushes a bus event to the web-view under its own name.
func (a *App) forward(_ context.Context, event domain.Event) {
	var payload interface{}
	if len(event.Payload) > 0 {
		if err := json.Unmarshal(event.Payload, &payload); err != nil {
			a.logger.Warn("undecodable event payload", "event", event.Type, "event_id", event.ID, "error", err)
			return
		}
	}
	if !a.rt.Emit(string(event.Type), payload) {
		a.logger.Warn("event dropped: runtime not attached", "event", event.Type, "event_id", event.ID)
		return
	}
	a.logger.Debug("event pushed", "event", event.Type, "event_id", event.ID)
}

func (a *App) ctx() context.Context {
	if ctx, err := a.rt.context(); err == nil {
		return ctx
	}
	return context.Background()
}

// SaveFile writes content to path. Content arrives as a number array.
func (a *App) SaveFile(path string, content domain.Content) error {
	return a.facade.SaveFile(a.ctx(), path, content)
}

// ReadFile returns the bytes of path as a number array.
func (a *App) ReadFile(path string) (domain.Content, error) {
	return a.facade.ReadFile(a.ctx(), path)
}

// GetModifiedTime returns the modification time of path in Unix milliseconds.
func (a *App) GetModifiedTime(path string) (uint64, error) {
	return a.facade.ModifiedTime(a.ctx(), path)
}

// PickSavePath returns the chosen path, or null when cancelled.
func (a *App) PickSavePath() *string {
	return optional(a.facade.PickSavePath(a.ctx()))
}

// PickOpenPath returns the chosen path, or null when cancelled.
func (a *App) PickOpenPath() *string {
	return optional(a.facade.PickOpenPath(a.ctx()))
}

// GetInitialFile returns the startup file, or null when none was given.
func (a *App) GetInitialFile() *string {
	return optional(a.facade.InitialFile())
}

// ShowMessage shows a native message box; kind is info, warning or error.
func (a *App) ShowMessage(title, message, kind string) error {
	return a.facade.ShowMessage(a.ctx(), title, message, domain.ParseMessageKind(kind))
}

// SetWindowTitle sets the native window title.
func (a *App) SetWindowTitle(title string) error {
	return a.facade.SetWindowTitle(a.ctx(), title)
}

// ExitApp closes the window and exits the process with code.
func (a *App) ExitApp(code int) error {
	return a.facade.Exit(a.ctx(), code)
}

func optional(s string, ok bool) *string {
	if !ok {
		return nil
	}
	return &s
}

// Run starts the Wails application and blocks until the window closes.
func Run(cfg config.WindowConfig, app *App, assets fs.FS) error {
	return wails.Run(&options.App{
		Title:     cfg.Title,
		Width:     cfg.Width,
		Height:    cfg.Height,
		MinWidth:  cfg.MinWidth,
		MinHeight: cfg.MinHeight,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		OnStartup:  app.startup,
		OnDomReady: app.domReady,
		OnShutdown: app.shutdown,
		Bind: []interface{}{
			app,
		},
	})
}
