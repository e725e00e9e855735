package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"wbs-desktop/internal/adapter/dialog"
	"wbs-desktop/internal/domain"
	"wbs-desktop/internal/usecase"
)

func TestInitCoreDefaults(t *testing.T) {
	t.Setenv("WBSDESK_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))
	t.Setenv("WBSDESK_LOGGER_OUTPUT", "discard")

	core, cleanup, err := initCore(context.Background())
	defer cleanup()
	if err != nil {
		t.Fatalf("initCore: %v", err)
	}
	if core.Config.Startup.Extension != ".wbs" {
		t.Errorf("extension = %q, want .wbs", core.Config.Startup.Extension)
	}
}

func TestInitCoreBadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("window:\n  width: -1\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("WBSDESK_CONFIG", path)

	_, cleanup, err := initCore(context.Background())
	defer cleanup()
	if err == nil {
		t.Fatal("expected config error")
	}
}

func TestNewFacadeUsesConfig(t *testing.T) {
	t.Setenv("WBSDESK_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))
	t.Setenv("WBSDESK_LOGGER_OUTPUT", "discard")

	core, cleanup, err := initCore(context.Background())
	defer cleanup()
	if err != nil {
		t.Fatalf("initCore: %v", err)
	}

	facade := newFacade(core, dialog.New(core.Logger), dialog.NewWindow(nil, core.Logger),
		usecase.StartupFromArgs([]string{"serve", "/docs/plan.wbs"}, core.Config.Startup.Extension))

	path, ok := facade.InitialFile()
	if !ok || path != "/docs/plan.wbs" {
		t.Errorf("InitialFile = %q, %v", path, ok)
	}

	file := filepath.Join(t.TempDir(), "plan.json")
	if err := facade.SaveFile(context.Background(), file, domain.Content("{}")); err != nil {
		t.Fatalf("SaveFile: %v", err)
	}
	got, err := facade.ReadFile(context.Background(), file)
	if err != nil || string(got) != "{}" {
		t.Errorf("ReadFile = %q, %v", got, err)
	}
}
