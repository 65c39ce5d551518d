// Package config handles loading and saving objparser settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/potato3d/objparser/log"
	"gopkg.in/yaml.v3"
)

// DefaultFile is looked up in the working directory when no explicit config
// path is given.
const DefaultFile = "objparser.yaml"

// Config holds all settings.
type Config struct {
	Parser  ParserConfig  `yaml:"parser"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// ParserConfig holds parser behavior settings.
type ParserConfig struct {
	ConvertNegativeIndices bool `yaml:"convert_negative_indices"`
	FollowMaterialLibs     bool `yaml:"follow_material_libs"` // Parse mtllib references
}

// OutputConfig holds event log destinations for the parse command.
type OutputConfig struct {
	ObjLog string `yaml:"obj_log"`
	MtlLog string `yaml:"mtl_log"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Parser: ParserConfig{
			ConvertNegativeIndices: true,
			FollowMaterialLibs:     true,
		},
		Output: OutputConfig{
			ObjLog: "obj_parse_log.txt",
			MtlLog: "mtl_parse_log.txt",
		},
		Logging: LoggingConfig{
			Level:      "notice",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 7,
		},
	}
}

// Load reads configuration with priority: defaults < file. If path is empty,
// DefaultFile is used when it exists in the working directory.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		if _, err := os.Stat(DefaultFile); err != nil {
			return cfg, nil
		}
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading config from %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("loading config from %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("loading config from %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks settings that can't be expressed by the YAML schema.
func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	if c.Logging.File != "" && c.Logging.MaxSizeMB <= 0 {
		return fmt.Errorf("logging: max_size_mb must be positive; got %d", c.Logging.MaxSizeMB)
	}
	return nil
}

// SaveTo writes the config to a specific path.
func (c *Config) SaveTo(path string) error {
	// Create parent directory if needed
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
