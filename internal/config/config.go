// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jonathan/brand-insights/internal/types"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Defaults
const (
	DefaultDataDir         = "data"
	DefaultPort            = 8080
	DefaultLogLevel        = "info"
	DefaultMaxPathExamples = 5
)

// Config represents the configuration loaded from a YAML (or JSON) file.
// The brand roster must come from the file; everything else has a default.
type Config struct {
	// DataDir is the directory holding the seven input documents
	DataDir string `yaml:"data_dir,omitempty"`

	// Roster
	Brand       types.Brand   `yaml:"brand"`       // Focal brand
	Competitors []types.Brand `yaml:"competitors"` // The other four tracked brands

	// Insight rules
	ExcludedClusters []string `yaml:"excluded_clusters,omitempty"` // Cluster id substrings skipped for Opportunity; nil means the built-in list
	MaxPathExamples  int      `yaml:"max_path_examples,omitempty"` // Cap on exit/entry path examples

	Log    LogConfig    `yaml:"log,omitempty"`
	Server ServerConfig `yaml:"server,omitempty"`
}

// LogConfig configures the logger
type LogConfig struct {
	Level string `yaml:"level,omitempty"`
	File  string `yaml:"file,omitempty"` // Optional log file, written in addition to stderr
}

// ServerConfig configures the HTTP API
type ServerConfig struct {
	Port        int      `yaml:"port,omitempty"`
	CORSOrigins []string `yaml:"cors_origins,omitempty"`
}

// LoadConfig loads configuration from a YAML file. JSON files parse as well.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	return &cfg, nil
}

// Defaults returns the built-in defaults.
func Defaults() Config {
	return Config{
		DataDir:         DefaultDataDir,
		MaxPathExamples: DefaultMaxPathExamples,
		Log:             LogConfig{Level: DefaultLogLevel},
		Server:          ServerConfig{Port: DefaultPort},
	}
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Brand.Name) == "" {
		return fmt.Errorf("config error: 'brand.name' is required")
	}
	if want := types.TrackedBrandCount - 1; len(c.Competitors) != want {
		return fmt.Errorf("config error: 'competitors' must list exactly %d brands, got %d", want, len(c.Competitors))
	}

	seen := map[string]bool{c.Brand.Name: true}
	for i, b := range c.Competitors {
		if strings.TrimSpace(b.Name) == "" {
			return fmt.Errorf("config error: 'competitors[%d].name' is required", i)
		}
		if seen[b.Name] {
			return fmt.Errorf("config error: brand %q is listed twice", b.Name)
		}
		seen[b.Name] = true
	}

	if c.MaxPathExamples < 0 {
		return fmt.Errorf("config error: 'max_path_examples' must be non-negative")
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config error: 'server.port' must be between 0 and 65535")
	}
	if c.Log.Level != "" {
		if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
			return fmt.Errorf("config error: 'log.level': %w", err)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.DataDir == "" {
		result.DataDir = defaults.DataDir
	}
	if result.Log.Level == "" {
		result.Log.Level = defaults.Log.Level
	}
	if result.Log.File == "" {
		result.Log.File = defaults.Log.File
	}

	// Int fields: use default if zero
	if result.MaxPathExamples == 0 {
		result.MaxPathExamples = defaults.MaxPathExamples
	}
	if result.Server.Port == 0 {
		result.Server.Port = defaults.Server.Port
	}

	// Slices: nil means unset; an explicit empty list is kept
	if result.ExcludedClusters == nil {
		result.ExcludedClusters = defaults.ExcludedClusters
	}
	if result.Server.CORSOrigins == nil {
		result.Server.CORSOrigins = defaults.Server.CORSOrigins
	}

	return result
}

// ApplyEnv overrides fields from environment variables (DATA_DIR, LOG_LEVEL, LOG_FILE, PORT, CORS_ORIGINS).
func (c *Config) ApplyEnv() {
	if v := os.Getenv("DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("LOG_FILE"); v != "" {
		c.Log.File = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		c.Server.CORSOrigins = splitList(v)
	}
}

// Roster returns the tracked brand set.
func (c *Config) Roster() types.Roster {
	return types.NewRoster(c.Brand, c.Competitors)
}

func splitList(list string) []string {
	var out []string
	for _, item := range strings.Split(list, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
