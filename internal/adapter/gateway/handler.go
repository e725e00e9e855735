package gateway

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"wbs-desktop/internal/domain"
	"wbs-desktop/internal/infra/metrics"
	"wbs-desktop/internal/usecase"
)

// HandlerDeps holds dependencies needed by RPC handlers and HTTP routes.
type HandlerDeps struct {
	Commands *usecase.Commands
	Metrics  *metrics.Metrics // can be nil
	Logger   *slog.Logger
	Version  string
}

// RegisterDefaultHandlers registers one RPC method per command.
func RegisterDefaultHandlers(s *Server, deps HandlerDeps) {
	for _, name := range deps.Commands.Names() {
		s.RegisterHandler(name, commandHandler(deps, name))
	}
}

// commandHandler adapts a command to the gateway's raw JSON RPC shape.
func commandHandler(deps HandlerDeps, name string) RPCHandler {
	return func(ctx context.Context, client *ClientInfo, payload json.RawMessage) (json.RawMessage, error) {
		result, err := deps.Commands.Dispatch(ctx, name, payload)
		if err != nil {
			deps.Logger.Debug("command failed", "command", name, "client", client.Name, "error", err)
			return nil, err
		}
		out, err := json.Marshal(result)
		if err != nil {
			return nil, domain.WrapOp(name, err)
		}
		return out, nil
	}
}

// RegisterRESTHandlers registers the HTTP endpoints that sit next to /ws.
func RegisterRESTHandlers(s *Server, deps HandlerDeps) {
	startTime := time.Now()

	s.RegisterHTTPRoute("/healthz", http.HandlerFunc(healthHandler))
	s.RegisterHTTPRoute("/api/v1/status", statusHandler(s, deps, startTime))
	if deps.Metrics != nil {
		s.RegisterHTTPRoute("/metrics", deps.Metrics.Handler())
	}
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok\n"))
}
