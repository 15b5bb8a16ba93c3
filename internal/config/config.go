// Package config loads editor defaults from a YAML file. Fields absent
// from the file keep their defaults, so a partial config is valid.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Output format for exports, "srt" or "vtt"
	Format string `yaml:"format"`

	// Recognition service for word timestamps
	Provider string `yaml:"provider"`
	Model    string `yaml:"model"`
	Language string `yaml:"language"`

	// Parallel chunk transcription
	Concurrency  int `yaml:"concurrency"`
	ChunkMinutes int `yaml:"chunk_minutes"`

	// Largest gap, in seconds, a compensate pass may close
	MaxCompensateSeconds float64 `yaml:"max_compensate_seconds"`

	// Follow playback with the selection cursor
	Tracking bool `yaml:"tracking"`
}

func defaultConfig() *Config {
	return &Config{
		Format:               "srt",
		Provider:             "openai",
		Concurrency:          3,
		ChunkMinutes:         10,
		MaxCompensateSeconds: 1.5,
		Tracking:             true,
	}
}

// Load reads the config at path. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	cfg.normalize()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config to path as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	return nil
}

// MaxCompensate returns the compensate cap as a duration.
func (c *Config) MaxCompensate() time.Duration {
	return time.Duration(c.MaxCompensateSeconds * float64(time.Second))
}

// ChunkDuration returns the transcription chunk length.
func (c *Config) ChunkDuration() time.Duration {
	return time.Duration(c.ChunkMinutes) * time.Minute
}

func (c *Config) normalize() {
	c.Format = strings.TrimSpace(strings.ToLower(c.Format))
	if c.Format == "" {
		c.Format = "srt"
	}
	c.Provider = strings.TrimSpace(strings.ToLower(c.Provider))
	if c.Provider == "" {
		c.Provider = "openai"
	}
	if c.Concurrency <= 0 {
		c.Concurrency = 3
	}
	if c.ChunkMinutes <= 0 {
		c.ChunkMinutes = 10
	}
	if c.MaxCompensateSeconds <= 0 {
		c.MaxCompensateSeconds = 1.5
	}
}

func (c *Config) validate() error {
	switch c.Format {
	case "srt", "vtt":
	default:
		return fmt.Errorf("unknown format %q", c.Format)
	}
	switch c.Provider {
	case "openai", "gemini":
	default:
		return fmt.Errorf("unknown provider %q", c.Provider)
	}
	return nil
}
