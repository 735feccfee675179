package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeYAML(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "vowelchart.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	return path
}

// chdirTemp moves the test into an empty directory so DefaultPath is absent.
func chdirTemp(t *testing.T) {
	t.Helper()
	origDir, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(origDir) })
	_ = os.Chdir(t.TempDir())
}

const validYAML = `
server:
  host: "127.0.0.1"
  port: 9090
  read_timeout: "5s"

log:
  level: "debug"
  format: "text"

chart:
  width: 800
  height: 600
  hide_labels: true
  sheet_path: "sheet.yaml"

audio:
  base_url: "https://cdn.example/audio"
  clip_dir: "/srv/audio"
  player: "none"
  ready_timeout: "2s"

dataset:
  path: "data/phonemes.json"
`

func TestLoad_ValidYAML(t *testing.T) {
	path := writeYAML(t, t.TempDir(), validYAML)
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Addr() != "127.0.0.1:9090" {
		t.Errorf("server addr = %q, want %q", cfg.Server.Addr(), "127.0.0.1:9090")
	}
	if cfg.Server.ReadTimeout != 5*time.Second {
		t.Errorf("server.read_timeout = %v, want 5s", cfg.Server.ReadTimeout)
	}
	if cfg.Server.WriteTimeout != 30*time.Second {
		t.Errorf("server.write_timeout = %v, want 30s (default)", cfg.Server.WriteTimeout)
	}

	if cfg.Log.Level != "debug" || cfg.Log.Format != "text" {
		t.Errorf("log = %+v", cfg.Log)
	}

	if cfg.Chart.Width != 800 || cfg.Chart.Height != 600 {
		t.Errorf("chart size = %dx%d, want 800x600", cfg.Chart.Width, cfg.Chart.Height)
	}
	if !cfg.Chart.HideLabels {
		t.Error("chart.hide_labels should be true")
	}
	if cfg.Chart.HideGrid {
		t.Error("chart.hide_grid should default to false")
	}
	if cfg.Chart.SheetPath != "sheet.yaml" {
		t.Errorf("chart.sheet_path = %q", cfg.Chart.SheetPath)
	}

	if cfg.Audio.BaseURL != "https://cdn.example/audio" {
		t.Errorf("audio.base_url = %q", cfg.Audio.BaseURL)
	}
	if cfg.Audio.Player != "none" {
		t.Errorf("audio.player = %q, want none", cfg.Audio.Player)
	}
	if cfg.Audio.ReadyTimeout != 2*time.Second {
		t.Errorf("audio.ready_timeout = %v, want 2s", cfg.Audio.ReadyTimeout)
	}

	if cfg.Dataset.Path != "data/phonemes.json" {
		t.Errorf("dataset.path = %q", cfg.Dataset.Path)
	}
}

func TestLoad_ENVOverridesYAML(t *testing.T) {
	path := writeYAML(t, t.TempDir(), validYAML)
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("SERVER_PORT", "3000")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("CHART_HIDE_GRID", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 3000 {
		t.Errorf("server.port = %d, want 3000 (ENV override)", cfg.Server.Port)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("log.level = %q, want warn (ENV override)", cfg.Log.Level)
	}
	if !cfg.Chart.HideGrid {
		t.Error("chart.hide_grid should be set from ENV")
	}
}

func TestLoad_NoFile_Defaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	chdirTemp(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("server.port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Chart.Width != 1040 || cfg.Chart.Height != 720 {
		t.Errorf("chart size = %dx%d, want 1040x720", cfg.Chart.Width, cfg.Chart.Height)
	}
	if cfg.Chart.FontSize != 13 {
		t.Errorf("chart.font_size = %v, want 13", cfg.Chart.FontSize)
	}
	if cfg.Audio.ReadyTimeout != 1200*time.Millisecond {
		t.Errorf("audio.ready_timeout = %v, want 1.2s", cfg.Audio.ReadyTimeout)
	}
	if cfg.Audio.Player != "auto" {
		t.Errorf("audio.player = %q, want auto", cfg.Audio.Player)
	}
	if cfg.Dataset.Path != "" {
		t.Errorf("dataset.path = %q, want embedded default", cfg.Dataset.Path)
	}
	if cfg.CORS.AllowedOrigins != "*" {
		t.Errorf("cors.allowed_origins = %q, want *", cfg.CORS.AllowedOrigins)
	}
}

func TestLoad_ExplicitPathNotFound(t *testing.T) {
	t.Setenv("CONFIG_PATH", "/nonexistent/vowelchart.yaml")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
	if !strings.Contains(err.Error(), "/nonexistent/vowelchart.yaml") {
		t.Errorf("error should name the path: %v", err)
	}
}

func TestValidate(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	chdirTemp(t)

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"port zero", func(c *Config) { c.Server.Port = 0 }, "server.port"},
		{"port too big", func(c *Config) { c.Server.Port = 70000 }, "server.port"},
		{"bad level", func(c *Config) { c.Log.Level = "verbose" }, "log: level"},
		{"level case", func(c *Config) { c.Log.Level = "DEBUG" }, ""},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, "log: format"},
		{"zero width", func(c *Config) { c.Chart.Width = 0 }, "chart: size"},
		{"zero font", func(c *Config) { c.Chart.FontSize = 0 }, "chart: font_size"},
		{"zero ready timeout", func(c *Config) { c.Audio.ReadyTimeout = 0 }, "audio.ready_timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load()
			if err != nil {
				t.Fatalf("load defaults: %v", err)
			}
			tt.mutate(cfg)
			err = cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q should contain %q", err, tt.wantErr)
			}
		})
	}
}
