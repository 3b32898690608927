// Package models defines data structures for configuration and rendering.
package models

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults used when a configuration value is absent.
const (
	DefaultMaxImageWidth = 2048
	DefaultLayoutWidth   = 960
	DefaultFetchTimeout  = 30 * time.Second
	DefaultMaxBodyBytes  = 32 << 20
	DefaultCacheTTL      = 24 * time.Hour
	DefaultUserAgent     = "cauldron/1.0 (+https://github.com/dtnitsch/cauldron)"
	DefaultBullet        = "•"
	DefaultBrokenImage   = "[image unavailable]"
)

// Config holds runtime configuration. Values come from an optional YAML
// file and may be overridden by CLI flags.
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Fetch   FetchConfig   `yaml:"fetch"`
	Images  ImagesConfig  `yaml:"images"`
	Render  RenderConfig  `yaml:"render"`
	Display DisplayConfig `yaml:"display"`
	DBPath  string        `yaml:"db_path,omitempty"`
}

// LoggingConfig selects the console log level: none, normal or debug.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// FetchConfig controls the HTTP transport shared by article and image fetches.
type FetchConfig struct {
	Timeout      time.Duration `yaml:"timeout"`
	UserAgent    string        `yaml:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes"`
}

// ImagesConfig controls image resolution.
type ImagesConfig struct {
	CacheDir      string        `yaml:"cache_dir,omitempty"` // empty disables the byte cache
	CacheTTL      time.Duration `yaml:"cache_ttl"`
	MaxConcurrent int           `yaml:"max_concurrent"` // 0 means unbounded
}

// RenderConfig controls document building.
type RenderConfig struct {
	FallThroughEmptyTiers bool `yaml:"fall_through_empty_tiers"`
}

// DisplayConfig is the presentation theme handed to a display surface at
// construction.
type DisplayConfig struct {
	Bullet        string `yaml:"bullet"`
	MaxImageWidth int    `yaml:"max_image_width"`
	LayoutWidth   int    `yaml:"layout_width"`
	BrokenImage   string `yaml:"broken_image"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	cfg := &Config{
		Logging: LoggingConfig{Level: "normal"},
		Render:  RenderConfig{FallThroughEmptyTiers: true},
	}
	cfg.applyDefaults()
	return cfg
}

// LoadConfig reads a YAML configuration file and fills in defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Logging.Level == "" {
		c.Logging.Level = "normal"
	}
	if c.Fetch.Timeout <= 0 {
		c.Fetch.Timeout = DefaultFetchTimeout
	}
	if c.Fetch.UserAgent == "" {
		c.Fetch.UserAgent = DefaultUserAgent
	}
	if c.Fetch.MaxBodyBytes <= 0 {
		c.Fetch.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if c.Images.CacheTTL <= 0 {
		c.Images.CacheTTL = DefaultCacheTTL
	}
	if c.Images.MaxConcurrent < 0 {
		c.Images.MaxConcurrent = 0
	}
	c.Display.applyDefaults()
}

func (d *DisplayConfig) applyDefaults() {
	if d.Bullet == "" {
		d.Bullet = DefaultBullet
	}
	if d.MaxImageWidth <= 0 {
		d.MaxImageWidth = DefaultMaxImageWidth
	}
	if d.LayoutWidth <= 0 {
		d.LayoutWidth = DefaultLayoutWidth
	}
	if d.BrokenImage == "" {
		d.BrokenImage = DefaultBrokenImage
	}
}

// WithDefaults returns a copy of the display config with absent values filled.
func (d DisplayConfig) WithDefaults() DisplayConfig {
	d.applyDefaults()
	return d
}
