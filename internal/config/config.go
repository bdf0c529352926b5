// Package config loads the service configuration.
//
// Configuration comes from an optional YAML file whose contents are passed
// through os.ExpandEnv first, so values like ${KLEIN_ADMIN_KEY} can be
// injected at runtime. Missing values fall back to defaults.
//
//	server:
//	  address: ":8080"
//	  admin_key: ${KLEIN_ADMIN_KEY}
//	upload:
//	  max_size_bytes: 10485760
//	compression:
//	  max_workers: 4
//	  max_queued: 64
//	database:
//	  path: /var/lib/kleincompress/stats.sqlite3
//	log:
//	  level: info
//	  format: json
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"kleincompress/internal/common"
)

// Config holds application configuration
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Upload      UploadConfig      `yaml:"upload"`
	Compression CompressionConfig `yaml:"compression"`
	Database    DatabaseConfig    `yaml:"database"`
	Log         LogConfig         `yaml:"log"`

	Logger *slog.Logger `yaml:"-"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Address         string        `yaml:"address"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	AdminKey        string        `yaml:"admin_key"` // enables PUT /api/preferences
}

// UploadConfig holds upload limits
type UploadConfig struct {
	MaxSizeBytes int64 `yaml:"max_size_bytes"`
}

// CompressionConfig sizes the worker pool
type CompressionConfig struct {
	MaxWorkers int `yaml:"max_workers"` // 0 selects min(NumCPU, 8)
	MaxQueued  int `yaml:"max_queued"`  // 0 lets callers wait without limit
}

// DatabaseConfig holds statistics database settings
type DatabaseConfig struct {
	Path string `yaml:"path"` // empty or ":memory:" keeps nothing on disk
}

// LogConfig selects the slog handler
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// New returns the default configuration.
func New() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	cfg.Logger = cfg.newLogger(os.Stderr)
	return cfg
}

// Load reads configuration from a YAML file. An empty path yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return New(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	return Parse(data)
}

// Parse decodes YAML configuration, expanding environment variables first.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	cfg.Logger = cfg.newLogger(os.Stderr)
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Address == "" {
		c.Server.Address = ":8080"
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 60 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 120 * time.Second
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 120 * time.Second
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 15 * time.Second
	}
	if c.Upload.MaxSizeBytes == 0 {
		c.Upload.MaxSizeBytes = common.DefaultMaxUploadSize
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

func (c *Config) validate() error {
	if c.Upload.MaxSizeBytes < 0 {
		return fmt.Errorf("upload.max_size_bytes must be positive, got %d", c.Upload.MaxSizeBytes)
	}
	if c.Compression.MaxWorkers < 0 {
		return fmt.Errorf("compression.max_workers must not be negative, got %d", c.Compression.MaxWorkers)
	}
	if c.Compression.MaxQueued < 0 {
		return fmt.Errorf("compression.max_queued must not be negative, got %d", c.Compression.MaxQueued)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}

	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be 'text' or 'json', got '%s'", c.Log.Format)
	}

	return nil
}

// newLogger builds the slog logger described by the log section.
func (c *Config) newLogger(w io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(c.Log.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
