package config

import (
	"fmt"
	"net"
	"strings"
)

// ValidationError accumulates config validation errors.
type ValidationError struct {
	Errors []string
}

func (v *ValidationError) Error() string {
	return "config validation failed:\n  - " + strings.Join(v.Errors, "\n  - ")
}

// HasErrors reports whether any validation errors have been recorded.
func (v *ValidationError) HasErrors() bool {
	return len(v.Errors) > 0
}

// Add records a formatted validation error.
func (v *ValidationError) Add(format string, args ...interface{}) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}

// Validate checks cfg for structural correctness. It returns a *ValidationError
// when one or more problems are found, allowing callers to inspect all issues.
func Validate(cfg *Config) error {
	ve := &ValidationError{}
	validateWindow(cfg, ve)
	validateDialog(cfg, ve)
	validateStartup(cfg, ve)
	validateFiles(cfg, ve)
	validateLogger(cfg, ve)
	validateTracer(cfg, ve)
	validateMetrics(cfg, ve)
	validateGateway(cfg, ve)
	if ve.HasErrors() {
		return ve
	}
	return nil
}

func validateWindow(cfg *Config, ve *ValidationError) {
	if cfg.Window.Width <= 0 || cfg.Window.Height <= 0 {
		ve.Add("window.width and window.height must be > 0")
	}
	if cfg.Window.MinWidth < 0 || cfg.Window.MinHeight < 0 {
		ve.Add("window.min_width and window.min_height must be >= 0")
	}
}

func validateDialog(cfg *Config, ve *ValidationError) {
	if cfg.Dialog.FilterName == "" {
		ve.Add("dialog.filter_name must not be empty")
	}
	if len(cfg.Dialog.Extensions) == 0 {
		ve.Add("dialog.extensions must have at least one entry")
	}
	for i, ext := range cfg.Dialog.Extensions {
		if strings.TrimPrefix(ext, ".") == "" {
			ve.Add("dialog.extensions[%d] must not be empty", i)
		}
		if strings.ContainsAny(ext, "*?/\\") {
			ve.Add("dialog.extensions[%d] %q must be a bare extension", i, ext)
		}
	}
}

func validateStartup(cfg *Config, ve *ValidationError) {
	if cfg.Startup.Extension == "" {
		ve.Add("startup.extension must not be empty")
	}
}

func validateFiles(cfg *Config, ve *ValidationError) {
	if cfg.Files.WritePerm&0o600 != 0o600 {
		ve.Add("files.write_perm %o must grant owner read and write", cfg.Files.WritePerm)
	}
	if cfg.Files.WritePerm > 0o777 {
		ve.Add("files.write_perm %o must only contain permission bits", cfg.Files.WritePerm)
	}
}

func validateLogger(cfg *Config, ve *ValidationError) {
	switch strings.ToLower(cfg.Logger.Format) {
	case "", "text", "json":
	default:
		ve.Add("logger.format %q is invalid (want: text, json)", cfg.Logger.Format)
	}
}

func validateTracer(cfg *Config, ve *ValidationError) {
	if !cfg.Tracer.Enabled {
		return
	}
	switch cfg.Tracer.Exporter {
	case "", "noop", "stdout":
	default:
		ve.Add("tracer.exporter %q is invalid (want: noop, stdout)", cfg.Tracer.Exporter)
	}
}

func validateMetrics(cfg *Config, ve *ValidationError) {
	if cfg.Metrics.Addr == "" {
		return
	}
	if _, _, err := net.SplitHostPort(cfg.Metrics.Addr); err != nil {
		ve.Add("metrics.addr %q is not a valid host:port", cfg.Metrics.Addr)
	}
}

func validateGateway(cfg *Config, ve *ValidationError) {
	if cfg.Gateway.Addr == "" {
		ve.Add("gateway.addr must not be empty")
		return
	}
	if _, _, err := net.SplitHostPort(cfg.Gateway.Addr); err != nil {
		ve.Add("gateway.addr %q is not a valid host:port", cfg.Gateway.Addr)
	}
	for i, tok := range cfg.Gateway.Auth.Tokens {
		if tok.Token == "" {
			ve.Add("gateway.auth.tokens[%d].token must not be empty", i)
		}
	}
	if cfg.Gateway.RateLimit.RequestsPerMin < 0 || cfg.Gateway.RateLimit.Burst < 0 {
		ve.Add("gateway.rate_limit values must be >= 0")
	}
	if cfg.Gateway.RateLimit.RequestsPerMin > 0 && cfg.Gateway.RateLimit.Burst == 0 {
		ve.Add("gateway.rate_limit.burst must be > 0 when requests_per_min is set")
	}
}
