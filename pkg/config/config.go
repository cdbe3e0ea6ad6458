package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds all configuration options for windup.
type Config struct {
	// Trend baseline settings
	Trend TrendConfig `koanf:"trend"`

	// Signal detection settings
	Signals SignalConfig `koanf:"signals"`

	// Regression defaults
	Regression RegressionConfig `koanf:"regression"`

	// Cache settings
	Cache CacheConfig `koanf:"cache"`

	// Output settings
	Output OutputConfig `koanf:"output"`
}

// TrendConfig controls how the trend baseline is built.
type TrendConfig struct {
	// Type is "rolling" or "season".
	Type       string   `koanf:"type"`
	WindowDays int      `koanf:"window_days"`
	Metrics    []string `koanf:"metrics"`
	PitchTypes []string `koanf:"pitch_types"`
}

// SignalConfig controls the recent-form signal scan.
type SignalConfig struct {
	WindowDays int `koanf:"window_days"`
}

// RegressionConfig sets regression defaults.
type RegressionConfig struct {
	LagType string `koanf:"lag_type"`
	LagN    int    `koanf:"lag_n"`
}

// CacheConfig controls dataset caching behavior.
type CacheConfig struct {
	Enabled bool   `koanf:"enabled"`
	Dir     string `koanf:"dir"`
	TTL     int    `koanf:"ttl"` // TTL in hours
}

// OutputConfig controls output formatting.
type OutputConfig struct {
	Format  string `koanf:"format"` // text, json, markdown, toon
	Color   bool   `koanf:"color"`
	Verbose bool   `koanf:"verbose"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Trend: TrendConfig{
			Type:       "rolling",
			WindowDays: 30,
			Metrics:    []string{"release_speed", "release_spin_rate", "pfx_x", "pfx_z"},
			PitchTypes: nil,
		},
		Signals: SignalConfig{
			WindowDays: 14,
		},
		Regression: RegressionConfig{
			LagType: "none",
			LagN:    1,
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     ".windup/cache",
			TTL:     24,
		},
		Output: OutputConfig{
			Format:  "text",
			Color:   true,
			Verbose: false,
		},
	}
}

// Load loads configuration from a file.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		parser = toml.Parser()
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadOrDefault tries to load config from standard locations or returns
// defaults.
func LoadOrDefault() *Config {
	configNames := []string{
		"windup.toml",
		"windup.yaml",
		"windup.yml",
		"windup.json",
		".windup.toml",
		".windup.yaml",
		".windup.yml",
		".windup.json",
	}

	searchDirs := []string{".", ".windup"}

	for _, dir := range searchDirs {
		for _, name := range configNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				cfg, err := Load(path)
				if err == nil {
					return cfg
				}
			}
		}
	}

	return DefaultConfig()
}

// Validate checks that the loaded values are usable.
func (c *Config) Validate() error {
	switch c.Trend.Type {
	case "rolling", "season":
	default:
		return fmt.Errorf("trend.type must be \"rolling\" or \"season\", got %q", c.Trend.Type)
	}
	if c.Trend.WindowDays <= 0 {
		return fmt.Errorf("trend.window_days must be positive, got %d", c.Trend.WindowDays)
	}
	if c.Signals.WindowDays <= 0 {
		return fmt.Errorf("signals.window_days must be positive, got %d", c.Signals.WindowDays)
	}
	switch c.Regression.LagType {
	case "none", "point", "rolling":
	default:
		return fmt.Errorf("regression.lag_type must be \"none\", \"point\" or \"rolling\", got %q", c.Regression.LagType)
	}
	if c.Regression.LagN < 0 {
		return fmt.Errorf("regression.lag_n must not be negative, got %d", c.Regression.LagN)
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("cache.ttl must not be negative, got %d", c.Cache.TTL)
	}
	switch c.Output.Format {
	case "text", "json", "markdown", "md", "toon":
	default:
		return fmt.Errorf("output.format must be one of text, json, markdown, toon, got %q", c.Output.Format)
	}
	return nil
}
