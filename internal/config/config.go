package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/ALH477/AFS/internal/progress"
	"gopkg.in/yaml.v3"
)

// Config defines configuration for the afs CLI. Values are resolved in
// order: defaults, config file, environment, command-line flags. The
// resolved value is passed explicitly into the core; nothing reads it from
// ambient state afterward.
type Config struct {
	Parts       int    `yaml:"parts"`
	MaxPartSize int64  `yaml:"max_part_size"`
	Algorithm   string `yaml:"algorithm"`
	Progress    bool   `yaml:"progress"`
	Quiet       bool   `yaml:"quiet"`
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		Algorithm: "sha256",
	}
}

// yamlConfig is used for YAML unmarshaling with a string max part size.
type yamlConfig struct {
	Parts       int    `yaml:"parts"`
	MaxPartSize string `yaml:"max_part_size"`
	Algorithm   string `yaml:"algorithm"`
	Progress    bool   `yaml:"progress"`
	Quiet       bool   `yaml:"quiet"`
}

// LoadFromFile loads configuration from a YAML file on top of the
// defaults.
func LoadFromFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return Config{}, fmt.Errorf("parse config file: %w", err)
	}

	cfg := Default()

	if yc.Parts != 0 {
		cfg.Parts = yc.Parts
	}
	if yc.MaxPartSize != "" {
		size, err := progress.ParseBytes(yc.MaxPartSize)
		if err != nil {
			return Config{}, fmt.Errorf("parse max_part_size: %w", err)
		}
		cfg.MaxPartSize = size
	}
	if yc.Algorithm != "" {
		cfg.Algorithm = yc.Algorithm
	}
	cfg.Progress = yc.Progress
	cfg.Quiet = yc.Quiet

	return cfg, nil
}

// LoadFromEnv loads configuration from environment variables.
// Environment variables use the AFS_ prefix.
func (c *Config) LoadFromEnv() error {
	if v := os.Getenv("AFS_PARTS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse AFS_PARTS: %w", err)
		}
		c.Parts = n
	}
	if v := os.Getenv("AFS_MAX_PART_SIZE"); v != "" {
		size, err := progress.ParseBytes(v)
		if err != nil {
			return fmt.Errorf("parse AFS_MAX_PART_SIZE: %w", err)
		}
		c.MaxPartSize = size
	}
	if v := os.Getenv("AFS_ALGORITHM"); v != "" {
		c.Algorithm = v
	}
	if v := os.Getenv("AFS_PROGRESS"); v != "" {
		c.Progress = v == "true" || v == "1"
	}
	if v := os.Getenv("AFS_QUIET"); v != "" {
		c.Quiet = v == "true" || v == "1"
	}
	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Parts < 0 {
		return errors.New("config: parts must not be negative")
	}
	if c.MaxPartSize < 0 {
		return errors.New("config: max_part_size must not be negative")
	}
	if c.Parts != 0 && c.MaxPartSize != 0 {
		return errors.New("config: parts and max_part_size are mutually exclusive")
	}
	switch c.Algorithm {
	case "md5", "sha1", "sha256", "sha512":
	default:
		return fmt.Errorf("config: unsupported algorithm %q", c.Algorithm)
	}
	return nil
}

// Merge merges override values into c, returning a new Config.
// Zero values in override are ignored.
func (c Config) Merge(override Config) Config {
	if override.Parts != 0 {
		c.Parts = override.Parts
	}
	if override.MaxPartSize != 0 {
		c.MaxPartSize = override.MaxPartSize
	}
	if override.Algorithm != "" {
		c.Algorithm = override.Algorithm
	}
	if override.Progress {
		c.Progress = override.Progress
	}
	if override.Quiet {
		c.Quiet = override.Quiet
	}
	return c
}
