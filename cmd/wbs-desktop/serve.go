package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"wbs-desktop/frontend"
	"wbs-desktop/internal/adapter/dialog"
	"wbs-desktop/internal/adapter/gateway"
	"wbs-desktop/internal/infra/middleware"
	"wbs-desktop/internal/usecase"
)

// runServe exposes the commands over the websocket bridge until interrupted
// or until the front-end calls exit_app. args[0] is "serve".
func runServe(args []string) (int, error) {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	core, cleanup, err := initCore(ctx)
	defer cleanup()
	if err != nil {
		return 1, err
	}
	cfg := core.Config
	log := core.Logger

	startup := usecase.StartupFromArgs(args, cfg.Startup.Extension)

	var exitCode atomic.Int32
	window := dialog.NewWindow(func(code int) {
		exitCode.Store(int32(code))
		cancel()
	}, log)
	facade := newFacade(core, dialog.New(log), window, startup)

	cmds, err := usecase.NewCommands(facade)
	if err != nil {
		return 1, fmt.Errorf("commands: %w", err)
	}

	auth, loopbackOnly := gateway.NewAuthenticator(cfg.Gateway.Auth.Tokens)
	srv := gateway.NewServer(core.Bus, auth, cfg.Gateway.Addr, log)
	srv.SetMetrics(core.Metrics)

	mws := []func(http.Handler) http.Handler{middleware.SecurityHeaders}
	if loopbackOnly {
		mws = append(mws, middleware.LoopbackOnly(log))
	}
	mws = append(mws, middleware.RateLimit(ctx, cfg.Gateway.RateLimit.RequestsPerMin, cfg.Gateway.RateLimit.Burst))
	srv.Use(mws...)

	deps := gateway.HandlerDeps{
		Commands: cmds,
		Metrics:  core.Metrics,
		Logger:   log,
		Version:  version,
	}
	gateway.RegisterDefaultHandlers(srv, deps)
	gateway.RegisterRESTHandlers(srv, deps)

	assets, err := frontend.Assets()
	if err != nil {
		return 1, fmt.Errorf("assets: %w", err)
	}
	srv.RegisterHTTPRoute("/", http.FileServer(http.FS(assets)))

	srv.OnConnect(func(ctx context.Context, _ *gateway.ClientInfo) {
		facade.UIReady(ctx)
	})

	if err := srv.Start(ctx); err != nil {
		return 1, err
	}
	return int(exitCode.Load()), nil
}
