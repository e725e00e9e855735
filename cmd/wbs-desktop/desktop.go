package main

import (
	"context"
	"fmt"

	"wbs-desktop/frontend"
	"wbs-desktop/internal/adapter/desktop"
	"wbs-desktop/internal/usecase"
)

// runDesktop opens the Wails window and returns the exit code requested by
// the front-end (0 when the window is simply closed).
func runDesktop(args []string) (int, error) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	core, cleanup, err := initCore(ctx)
	defer cleanup()
	if err != nil {
		return 1, err
	}

	startup := usecase.StartupFromArgs(args, core.Config.Startup.Extension)
	if path, ok := startup.Path(); ok {
		core.Logger.Info("startup file", "path", path)
	}

	rt := desktop.NewRuntime(desktop.WailsShell{})
	facade := newFacade(core, desktop.NewDialogs(rt), desktop.NewWindow(rt), startup)
	app := desktop.NewApp(facade, rt, core.Bus, core.Logger)

	assets, err := frontend.Assets()
	if err != nil {
		return 1, fmt.Errorf("assets: %w", err)
	}
	if err := desktop.Run(core.Config.Window, app, assets); err != nil {
		return 1, fmt.Errorf("desktop: %w", err)
	}
	return rt.ExitCode(), nil
}
