package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Log     LogConfig     `yaml:"log"`
	Chart   ChartConfig   `yaml:"chart"`
	Audio   AudioConfig   `yaml:"audio"`
	Dataset DatasetConfig `yaml:"dataset"`
	CORS    CORSConfig    `yaml:"cors"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// LogConfig holds logging settings. File redirects output away from
// stderr, which the terminal viewer needs for drawing.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
	File   string `yaml:"file"   env:"LOG_FILE"`
}

// ChartConfig holds rendering defaults. Labels and the slot grid are drawn
// unless hidden; cleanenv cannot tell a YAML false from an unset bool.
type ChartConfig struct {
	Width      int    `yaml:"width"       env:"CHART_WIDTH"       env-default:"1040"`
	Height     int    `yaml:"height"      env:"CHART_HEIGHT"      env-default:"720"`
	FontSize   int    `yaml:"font_size"   env:"CHART_FONT_SIZE"   env-default:"13"`
	HideLabels bool   `yaml:"hide_labels" env:"CHART_HIDE_LABELS"`
	HideGrid   bool   `yaml:"hide_grid"   env:"CHART_HIDE_GRID"`
	SheetPath  string `yaml:"sheet_path"  env:"CHART_SHEET_PATH"`
	FontPath   string `yaml:"font_path"   env:"CHART_FONT_PATH"`
}

// AudioConfig holds clip lookup and playback settings.
type AudioConfig struct {
	BaseURL      string        `yaml:"base_url"      env:"AUDIO_BASE_URL"      env-default:"/audio"`
	ClipDir      string        `yaml:"clip_dir"      env:"AUDIO_CLIP_DIR"      env-default:"./audio"`
	Player       string        `yaml:"player"        env:"AUDIO_PLAYER"        env-default:"auto"`
	ReadyTimeout time.Duration `yaml:"ready_timeout" env:"AUDIO_READY_TIMEOUT" env-default:"1200ms"`
}

// DatasetConfig selects the phoneme dataset. An empty path uses the
// embedded default.
type DatasetConfig struct {
	Path string `yaml:"path" env:"DATASET_PATH"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-default:"*"`
	AllowedMethods string `yaml:"allowed_methods" env:"CORS_ALLOWED_METHODS" env-default:"GET,OPTIONS"`
	AllowedHeaders string `yaml:"allowed_headers" env:"CORS_ALLOWED_HEADERS" env-default:"Content-Type"`
	MaxAge         int    `yaml:"max_age"         env:"CORS_MAX_AGE"         env-default:"86400"`
}
