package config

import (
	"fmt"
	"strings"
)

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"json", "text"}
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}
	if err := c.Log.validate(); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	if err := c.Chart.validate(); err != nil {
		return fmt.Errorf("chart: %w", err)
	}
	if c.Audio.ReadyTimeout <= 0 {
		return fmt.Errorf("audio.ready_timeout must be > 0 (got %s)", c.Audio.ReadyTimeout)
	}
	return nil
}

func (l *LogConfig) validate() error {
	if !oneOf(l.Level, logLevels) {
		return fmt.Errorf("level must be one of %s (got %q)", strings.Join(logLevels, ", "), l.Level)
	}
	if !oneOf(l.Format, logFormats) {
		return fmt.Errorf("format must be one of %s (got %q)", strings.Join(logFormats, ", "), l.Format)
	}
	return nil
}

func (c *ChartConfig) validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("size must be positive (got %dx%d)", c.Width, c.Height)
	}
	if c.FontSize <= 0 {
		return fmt.Errorf("font_size must be > 0 (got %d)", c.FontSize)
	}
	return nil
}

func oneOf(s string, allowed []string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, a := range allowed {
		if s == a {
			return true
		}
	}
	return false
}

// Addr is the host:port the server listens on.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
