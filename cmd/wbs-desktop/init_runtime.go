package main

import (
	"context"
	"fmt"
	"log/slog"

	"wbs-desktop/internal/adapter/fsys"
	"wbs-desktop/internal/domain"
	"wbs-desktop/internal/infra/config"
	"wbs-desktop/internal/infra/logger"
	"wbs-desktop/internal/infra/metrics"
	"wbs-desktop/internal/infra/tracer"
	"wbs-desktop/internal/usecase"
	"wbs-desktop/internal/usecase/eventbus"
)

// CoreComponents holds what both host modes share.
type CoreComponents struct {
	Config  *config.Config
	Logger  *slog.Logger
	Metrics *metrics.Metrics
	Bus     *eventbus.Bus
}

// initCore loads config and sets up logging, tracing, metrics and the bus.
// The returned cleanup runs in reverse order of setup.
func initCore(ctx context.Context) (*CoreComponents, func(), error) {
	cfg, err := config.Load(config.DefaultPath())
	if err != nil {
		return nil, func() {}, fmt.Errorf("%w: %v", domain.ErrConfigLoad, err)
	}

	log, logCloser, err := logger.New(cfg.Logger)
	if err != nil {
		return nil, func() {}, fmt.Errorf("logger: %w", err)
	}

	tracerShutdown, err := tracer.Setup(ctx, cfg.Tracer)
	if err != nil {
		logCloser()
		return nil, func() {}, fmt.Errorf("tracer: %w", err)
	}

	m := metrics.New()
	if cfg.Metrics.Addr != "" {
		go func() {
			if err := m.Serve(ctx, cfg.Metrics.Addr, log); err != nil {
				log.Error("metrics server error", "error", err)
			}
		}()
	}

	bus := eventbus.New(log)

	cleanup := func() {
		bus.Close()
		if err := tracerShutdown(context.Background()); err != nil {
			log.Warn("tracer shutdown", "error", err)
		}
		logCloser()
	}

	return &CoreComponents{Config: cfg, Logger: log, Metrics: m, Bus: bus}, cleanup, nil
}

// newFacade wires the facade to the host's dialogs and window.
func newFacade(core *CoreComponents, dialogs domain.Dialogs, window domain.Window, startup *usecase.StartupFile) *usecase.Facade {
	cfg := core.Config
	return usecase.NewFacade(usecase.FacadeDeps{
		FS:      fsys.NewLocal(),
		Dialogs: dialogs,
		Window:  window,
		Bus:     core.Bus,
		Startup: startup,
		Metrics: core.Metrics,
		Logger:  core.Logger,
		Filter: domain.FileFilter{
			DisplayName: cfg.Dialog.FilterName,
			Extensions:  cfg.Dialog.Extensions,
		},
		SaveTitle: cfg.Dialog.SaveTitle,
		OpenTitle: cfg.Dialog.OpenTitle,
		WritePerm: cfg.Files.WritePerm,
	})
}
