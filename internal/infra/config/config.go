package config

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// AppName names the config directory and the window title default.
const AppName = "wbs-desktop"

// Config is the top-level application configuration.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Dialog  DialogConfig  `yaml:"dialog"`
	Startup StartupConfig `yaml:"startup"`
	Files   FilesConfig   `yaml:"files"`
	Logger  LoggerConfig  `yaml:"logger"`
	Tracer  TracerConfig  `yaml:"tracer"`
	Metrics MetricsConfig `yaml:"metrics"`
	Gateway GatewayConfig `yaml:"gateway"`
}

// WindowConfig holds the desktop window settings.
type WindowConfig struct {
	Title     string `yaml:"title"`
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	MinWidth  int    `yaml:"min_width"`
	MinHeight int    `yaml:"min_height"`
}

// DialogConfig holds the filter applied to the open and save pickers.
type DialogConfig struct {
	FilterName string   `yaml:"filter_name"`
	Extensions []string `yaml:"extensions"`
	SaveTitle  string   `yaml:"save_title,omitempty"`
	OpenTitle  string   `yaml:"open_title,omitempty"`
}

// StartupConfig controls which launch argument is treated as the startup file.
type StartupConfig struct {
	Extension string `yaml:"extension"` // literal suffix, e.g. ".wbs"
}

// FilesConfig holds file write settings.
type FilesConfig struct {
	WritePerm fs.FileMode `yaml:"write_perm"`
}

// LoggerConfig holds logging settings.
type LoggerConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// TracerConfig holds tracing settings.
type TracerConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Exporter string `yaml:"exporter"`
}

// MetricsConfig holds Prometheus exposition settings. Empty Addr disables the listener.
type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

// GatewayConfig holds the browser bridge settings used by "serve".
type GatewayConfig struct {
	Addr      string          `yaml:"addr"`
	Auth      AuthConfig      `yaml:"auth"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// AuthConfig holds gateway authentication settings.
type AuthConfig struct {
	Tokens []TokenConfig `yaml:"tokens,omitempty"`
}

// TokenConfig holds a single gateway auth token.
type TokenConfig struct {
	Token string `yaml:"token"`
	Name  string `yaml:"name"`
}

// RateLimitConfig holds per-client HTTP rate limiting for the bridge.
type RateLimitConfig struct {
	RequestsPerMin int `yaml:"requests_per_min"`
	Burst          int `yaml:"burst"`
}

// Defaults returns a Config with sensible defaults.
func Defaults() *Config {
	return &Config{
		Window: WindowConfig{
			Title:     "WBS",
			Width:     1280,
			Height:    800,
			MinWidth:  800,
			MinHeight: 600,
		},
		Dialog: DialogConfig{
			FilterName: "JSON",
			Extensions: []string{"json"},
		},
		Startup: StartupConfig{
			Extension: ".wbs",
		},
		Files: FilesConfig{
			WritePerm: 0o644,
		},
		Logger: LoggerConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
		Tracer: TracerConfig{
			Enabled:  false,
			Exporter: "noop",
		},
		Gateway: GatewayConfig{
			Addr: "127.0.0.1:8095",
			RateLimit: RateLimitConfig{
				RequestsPerMin: 600,
				Burst:          100,
			},
		},
	}
}

// DefaultPath returns the config path: $WBSDESK_CONFIG if set, otherwise
// <user config dir>/wbs-desktop/config.yaml. Falls back to ./config.yaml.
func DefaultPath() string {
	if v := os.Getenv("WBSDESK_CONFIG"); v != "" {
		return v
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(dir, AppName, "config.yaml")
}

// Load reads a YAML config file and applies env var overrides.
// A missing file is not an error: defaults plus env overrides are returned.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			ApplyEnvOverrides(cfg)
			if err := Validate(cfg); err != nil {
				return nil, err
			}
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := validatePermissions(path); err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	ApplyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnvOverrides maps WBSDESK_* env vars to config fields.
func ApplyEnvOverrides(cfg *Config) {
	if v := os.Getenv("WBSDESK_LOGGER_LEVEL"); v != "" {
		cfg.Logger.Level = v
	}
	if v := os.Getenv("WBSDESK_LOGGER_FORMAT"); v != "" {
		cfg.Logger.Format = v
	}
	if v := os.Getenv("WBSDESK_LOGGER_OUTPUT"); v != "" {
		cfg.Logger.Output = v
	}
	if v := os.Getenv("WBSDESK_TRACER_ENABLED"); v == "true" {
		cfg.Tracer.Enabled = true
	}
	if v := os.Getenv("WBSDESK_TRACER_EXPORTER"); v != "" {
		cfg.Tracer.Exporter = v
	}
	if v := os.Getenv("WBSDESK_METRICS_ADDR"); v != "" {
		cfg.Metrics.Addr = v
	}
	if v := os.Getenv("WBSDESK_GATEWAY_ADDR"); v != "" {
		cfg.Gateway.Addr = v
	}
	if v := os.Getenv("WBSDESK_GATEWAY_TOKENS"); v != "" {
		cfg.Gateway.Auth.Tokens = nil
		for _, tok := range splitAndTrim(v, ",") {
			if tok == "" {
				continue
			}
			cfg.Gateway.Auth.Tokens = append(cfg.Gateway.Auth.Tokens, TokenConfig{Token: tok, Name: "env"})
		}
	}
	if v := os.Getenv("WBSDESK_DIALOG_EXTENSIONS"); v != "" {
		cfg.Dialog.Extensions = splitAndTrim(v, ",")
	}
	if v := os.Getenv("WBSDESK_FILES_WRITE_PERM"); v != "" {
		if n, err := strconv.ParseUint(v, 8, 32); err == nil {
			cfg.Files.WritePerm = fs.FileMode(n)
		}
	}
}

// splitAndTrim splits s by sep and trims whitespace from each element.
func splitAndTrim(s, sep string) []string {
	parts := strings.Split(s, sep)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// enforcePermissions is false on Windows, where Mode().Perm() reports 0666
// for every writable file and says nothing about ACLs.
var enforcePermissions = runtime.GOOS != "windows"

// validatePermissions refuses config files writable by group or others,
// since the file can list gateway tokens.
func validatePermissions(path string) error {
	if !enforcePermissions {
		return nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat config: %w", err)
	}
	mode := info.Mode().Perm()
	if mode&0o022 != 0 {
		return fmt.Errorf("config file %s has insecure permissions %o (want 0600 or 0644)", path, mode)
	}
	return nil
}
