package config

import (
	"errors"
	"strings"
	"testing"
)

func TestConfigError_Empty(t *testing.T) {
	e := &ConfigError{Path: "/etc/eduscan/config.toml"}
	if e.HasErrors() {
		t.Error("expected HasErrors false")
	}
	if got := e.Error(); got != "" {
		t.Errorf("expected empty string for no errors, got %q", got)
	}
}

func TestConfigError_MissingVars(t *testing.T) {
	e := &ConfigError{
		Path:    "/etc/eduscan/config.toml",
		Missing: []string{"EDUSCAN_LIBRARY", "EDUSCAN_DB"},
	}
	if !e.HasErrors() {
		t.Error("expected HasErrors true")
	}
	want := "/etc/eduscan/config.toml: unset environment variables: EDUSCAN_LIBRARY, EDUSCAN_DB"
	if got := e.Error(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestConfigError_InvalidSettings(t *testing.T) {
	e := &ConfigError{
		Errors: []string{"log.level: invalid", "mediainfo.backend: invalid"},
	}
	got := e.Error()
	if !strings.HasPrefix(got, "2 invalid setting(s)") {
		t.Errorf("expected count prefix, got %q", got)
	}
	if !strings.Contains(got, "\n  mediainfo.backend: invalid") {
		t.Errorf("expected one setting per line, got %q", got)
	}
}

func TestConfigError_Both(t *testing.T) {
	e := &ConfigError{Missing: []string{"X"}, Errors: []string{"scan.workers: must be >= 0"}}
	if got := e.Error(); !strings.Contains(got, "X; 1 invalid setting(s)") {
		t.Errorf("got %q", got)
	}
}

func TestLoad_ValidationReturnsConfigError(t *testing.T) {
	cfgPath := writeConfig(t, `
[scan]
workers = -1
`)

	_, err := Load(cfgPath)
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected *ConfigError, got %T", err)
	}
	if !cfgErr.HasErrors() || cfgErr.Path != cfgPath {
		t.Errorf("unexpected config error %+v", cfgErr)
	}
}
