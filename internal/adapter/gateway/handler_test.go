package gateway

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"wbs-desktop/internal/adapter/dialog"
	"wbs-desktop/internal/adapter/fsys"
	"wbs-desktop/internal/domain"
	"wbs-desktop/internal/infra/metrics"
	"wbs-desktop/internal/usecase"
)

// cannedDialogs always returns the same pick.
type cannedDialogs struct {
	path string
}

func (d cannedDialogs) SaveFile(context.Context, string, domain.FileFilter) (string, error) {
	return d.path, nil
}

func (d cannedDialogs) OpenFile(context.Context, string, domain.FileFilter) (string, error) {
	return d.path, nil
}

func (d cannedDialogs) Message(context.Context, domain.MessageKind, string, string) error {
	return nil
}

type bridge struct {
	srv    *Server
	quit   chan int
	facade *usecase.Facade
}

func startBridge(t *testing.T, startup *usecase.StartupFile, pick string) *bridge {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	bus := &testBus{}
	quit := make(chan int, 1)
	m := metrics.New()

	facade := usecase.NewFacade(usecase.FacadeDeps{
		FS:      fsys.NewLocal(),
		Dialogs: cannedDialogs{path: pick},
		Window:  dialog.NewWindow(func(code int) { quit <- code }, logger),
		Bus:     bus,
		Startup: startup,
		Metrics: m,
		Logger:  logger,
	})
	cmds, err := usecase.NewCommands(facade)
	if err != nil {
		t.Fatalf("NewCommands: %v", err)
	}
	deps := HandlerDeps{Commands: cmds, Metrics: m, Logger: logger, Version: "test"}

	srv := startTestServer(t, bus, func(s *Server) {
		s.SetMetrics(m)
		RegisterDefaultHandlers(s, deps)
		RegisterRESTHandlers(s, deps)
		s.OnConnect(func(ctx context.Context, _ *ClientInfo) {
			facade.UIReady(ctx)
		})
	})
	return &bridge{srv: srv, quit: quit, facade: facade}
}

// call sends one request and returns the matching response, skipping events.
func call(t *testing.T, ws *websocket.Conn, id uint64, method string, payload any) Frame {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := wsjson.Write(ctx, ws, Frame{Type: FrameTypeRequest, ID: id, Method: method, Payload: raw}); err != nil {
		t.Fatalf("write: %v", err)
	}
	for {
		var resp Frame
		if err := wsjson.Read(ctx, ws, &resp); err != nil {
			t.Fatalf("read: %v", err)
		}
		if resp.Type == FrameTypeResponse && resp.ID == id {
			return resp
		}
	}
}

func TestBridgeSaveReadRoundTrip(t *testing.T) {
	b := startBridge(t, nil, "")
	ws := dialWS(t, b.srv.BoundAddr(), "test-token")
	path := filepath.Join(t.TempDir(), "plan.json")

	resp := call(t, ws, 1, "save_file", map[string]any{"path": path, "content": []int{123, 125}})
	if resp.Error != "" {
		t.Fatalf("save_file error: %s", resp.Error)
	}

	resp = call(t, ws, 2, "read_file", map[string]any{"path": path})
	if resp.Error != "" {
		t.Fatalf("read_file error: %s", resp.Error)
	}
	if string(resp.Payload) != "[123,125]" {
		t.Errorf("read_file payload = %s, want [123,125]", resp.Payload)
	}

	resp = call(t, ws, 3, "get_modified_time", map[string]any{"path": path})
	if resp.Error != "" {
		t.Fatalf("get_modified_time error: %s", resp.Error)
	}
	var millis uint64
	if err := json.Unmarshal(resp.Payload, &millis); err != nil || millis == 0 {
		t.Errorf("get_modified_time = %s (%v)", resp.Payload, err)
	}
}

func TestBridgeReadMissingFile(t *testing.T) {
	b := startBridge(t, nil, "")
	ws := dialWS(t, b.srv.BoundAddr(), "test-token")

	resp := call(t, ws, 1, "read_file", map[string]any{"path": filepath.Join(t.TempDir(), "nope.json")})
	if resp.Error == "" {
		t.Fatal("expected error for missing file")
	}
	if len(resp.Payload) != 0 {
		t.Errorf("payload = %s, want none on error", resp.Payload)
	}
}

func TestBridgeInvalidPayload(t *testing.T) {
	b := startBridge(t, nil, "")
	ws := dialWS(t, b.srv.BoundAddr(), "test-token")

	resp := call(t, ws, 1, "read_file", map[string]any{"file": "x"})
	if resp.Error == "" {
		t.Fatal("expected validation error")
	}
}

func TestBridgePickers(t *testing.T) {
	b := startBridge(t, nil, "/docs/plan.json")
	ws := dialWS(t, b.srv.BoundAddr(), "test-token")

	for i, method := range []string{"pick_save_path", "pick_open_path"} {
		resp := call(t, ws, uint64(i+1), method, nil)
		if string(resp.Payload) != `"/docs/plan.json"` {
			t.Errorf("%s = %s", method, resp.Payload)
		}
	}

	resp := call(t, ws, 9, "get_initial_file", nil)
	if string(resp.Payload) != "null" {
		t.Errorf("get_initial_file = %s, want null", resp.Payload)
	}
}

func TestBridgeStartupEventOnConnect(t *testing.T) {
	b := startBridge(t, usecase.NewStartupFile("/docs/plan.wbs"), "")
	ws := dialWS(t, b.srv.BoundAddr(), "test-token")

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	var frame Frame
	if err := wsjson.Read(ctx, ws, &frame); err != nil {
		t.Fatalf("read: %v", err)
	}
	if frame.Type != FrameTypeEvent || frame.Event != "startup-file" {
		t.Fatalf("frame = %+v, want startup-file event", frame)
	}
	if string(frame.Payload) != `"/docs/plan.wbs"` {
		t.Errorf("payload = %s", frame.Payload)
	}

	// A second client does not get the push again, but can still pull.
	ws2 := dialWS(t, b.srv.BoundAddr(), "test-token")
	resp := call(t, ws2, 1, "get_initial_file", nil)
	if string(resp.Payload) != `"/docs/plan.wbs"` {
		t.Errorf("get_initial_file = %s", resp.Payload)
	}
}

func TestBridgeExitApp(t *testing.T) {
	b := startBridge(t, nil, "")
	ws := dialWS(t, b.srv.BoundAddr(), "test-token")

	resp := call(t, ws, 1, "exit_app", map[string]any{"code": 3})
	if resp.Error != "" {
		t.Fatalf("exit_app error: %s", resp.Error)
	}
	select {
	case code := <-b.quit:
		if code != 3 {
			t.Errorf("code = %d, want 3", code)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("quit not requested")
	}
}

func TestHealthz(t *testing.T) {
	b := startBridge(t, nil, "")

	resp, err := http.Get("http://" + b.srv.BoundAddr() + "/healthz")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || string(body) != "ok\n" {
		t.Errorf("healthz = %d %q", resp.StatusCode, body)
	}
}
