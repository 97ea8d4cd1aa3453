// Package config provides configuration for the datasc HTTP server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/ukaji3/datasc-go/pkg/datasc"
	"gopkg.in/yaml.v3"
)

// Config holds the server configuration.
type Config struct {
	// HTTP configures the listener and its timeouts.
	HTTP HTTPConfig `json:"http" yaml:"http"`

	// Session configures how long uploaded tables are kept.
	Session SessionConfig `json:"session" yaml:"session"`

	// Preview configures table previews.
	Preview PreviewConfig `json:"preview" yaml:"preview"`

	// Chart configures rendered charts.
	Chart ChartConfig `json:"chart" yaml:"chart"`
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	// Addr is the listen address.
	Addr string `json:"addr" yaml:"addr"`

	ReadTimeout     time.Duration `json:"read_timeout" yaml:"read_timeout"`
	WriteTimeout    time.Duration `json:"write_timeout" yaml:"write_timeout"`
	IdleTimeout     time.Duration `json:"idle_timeout" yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout" yaml:"shutdown_timeout"`

	// MaxUploadMB caps the size of an uploaded file.
	MaxUploadMB int `json:"max_upload_mb" yaml:"max_upload_mb"`
}

// SessionConfig holds session store configuration.
type SessionConfig struct {
	// TTL is how long an idle session keeps its table.
	TTL time.Duration `json:"ttl" yaml:"ttl"`
}

// PreviewConfig holds preview configuration.
type PreviewConfig struct {
	// Rows is the number of leading rows shown.
	Rows int `json:"rows" yaml:"rows"`
}

// ChartConfig holds chart configuration.
type ChartConfig struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`

	// LabelLineYAxis labels the y axis of line charts instead of writing
	// the x label twice.
	LabelLineYAxis bool `json:"label_line_y_axis" yaml:"label_line_y_axis"`
}

// DefaultConfig returns the default configuration for local use.
func DefaultConfig() *Config {
	opts := datasc.DefaultOptions()
	return &Config{
		HTTP: HTTPConfig{
			Addr:            ":8080",
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    60 * time.Second,
			IdleTimeout:     120 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			MaxUploadMB:     32,
		},
		Session: SessionConfig{
			TTL: 30 * time.Minute,
		},
		Preview: PreviewConfig{
			Rows: opts.PreviewRows,
		},
		Chart: ChartConfig{
			Width:  opts.ChartWidth,
			Height: opts.ChartHeight,
		},
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.HTTP.Addr == "" {
		return fmt.Errorf("http.addr is required")
	}
	if c.HTTP.MaxUploadMB < 1 || c.HTTP.MaxUploadMB > 1024 {
		return fmt.Errorf("http.max_upload_mb must be between 1 and 1024, got %d", c.HTTP.MaxUploadMB)
	}
	if c.HTTP.ShutdownTimeout < 0 {
		return fmt.Errorf("http.shutdown_timeout must not be negative")
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("session.ttl must be positive, got %s", c.Session.TTL)
	}
	if c.Preview.Rows < 1 {
		return fmt.Errorf("preview.rows must be at least 1, got %d", c.Preview.Rows)
	}
	if c.Chart.Width < 100 || c.Chart.Height < 100 {
		return fmt.Errorf("chart size must be at least 100x100, got %dx%d", c.Chart.Width, c.Chart.Height)
	}
	return nil
}

// MaxUploadBytes returns the upload size limit in bytes.
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.HTTP.MaxUploadMB) << 20
}

// Options returns the library options matching this configuration.
func (c *Config) Options() datasc.Options {
	labelY := c.Chart.LabelLineYAxis
	return datasc.Options{
		PreviewRows:    c.Preview.Rows,
		ChartWidth:     c.Chart.Width,
		ChartHeight:    c.Chart.Height,
		LabelLineYAxis: &labelY,
	}
}

// LoadFromFile loads configuration from a YAML or JSON file on top of the defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config file format: %s", ext)
	}

	return cfg, nil
}

// LoadFromEnv overrides configuration from environment variables.
// Environment variables use the DATASC_ prefix. Malformed values are ignored.
func LoadFromEnv(cfg *Config) {
	if v := os.Getenv("DATASC_HTTP_ADDR"); v != "" {
		cfg.HTTP.Addr = v
	}
	envDuration("DATASC_HTTP_READ_TIMEOUT", &cfg.HTTP.ReadTimeout)
	envDuration("DATASC_HTTP_WRITE_TIMEOUT", &cfg.HTTP.WriteTimeout)
	envDuration("DATASC_HTTP_IDLE_TIMEOUT", &cfg.HTTP.IdleTimeout)
	envDuration("DATASC_HTTP_SHUTDOWN_TIMEOUT", &cfg.HTTP.ShutdownTimeout)
	envInt("DATASC_HTTP_MAX_UPLOAD_MB", &cfg.HTTP.MaxUploadMB)

	envDuration("DATASC_SESSION_TTL", &cfg.Session.TTL)

	envInt("DATASC_PREVIEW_ROWS", &cfg.Preview.Rows)

	envInt("DATASC_CHART_WIDTH", &cfg.Chart.Width)
	envInt("DATASC_CHART_HEIGHT", &cfg.Chart.Height)
	if v := os.Getenv("DATASC_CHART_LABEL_LINE_Y_AXIS"); v != "" {
		cfg.Chart.LabelLineYAxis = v == "true" || v == "1"
	}
}

func envDuration(key string, dst *time.Duration) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}

func envInt(key string, dst *int) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
