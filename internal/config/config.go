package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/iancoleman/strcase"
	"gopkg.in/yaml.v3"
)

// Report output formats
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Log formats
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Report key cases
const (
	KeyCaseSnake      = "snake"
	KeyCaseCamel      = "camel"
	KeyCaseLowerCamel = "lower_camel"
	KeyCaseKebab      = "kebab"
)

// Config represents the complete configuration for jsonscalar
type Config struct {
	Input  InputConfig  `yaml:"input"`
	Output OutputConfig `yaml:"output"`
	Dev    DevConfig    `yaml:"dev"`
}

// InputConfig controls how input is split into documents
type InputConfig struct {
	Lines bool `yaml:"lines"` // each non-blank line is its own document
}

// OutputConfig controls report rendering
type OutputConfig struct {
	Format     string `yaml:"format"`
	Precision  int    `yaml:"precision"` // -1 is the shortest exact representation
	KeyCase    string `yaml:"key_case"`
	ShowSource bool   `yaml:"show_source"`
	Summary    bool   `yaml:"summary"`
}

// DevConfig contains development/debug options
type DevConfig struct {
	Debug     bool   `yaml:"debug"`
	Verbose   bool   `yaml:"verbose"`
	LogFormat string `yaml:"log_format"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Input: InputConfig{
			Lines: false,
		},
		Output: OutputConfig{
			Format:     FormatText,
			Precision:  -1,
			KeyCase:    KeyCaseSnake,
			ShowSource: true,
			Summary:    false,
		},
		Dev: DevConfig{
			Debug:     false,
			Verbose:   false,
			LogFormat: LogFormatText,
		},
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults
	cfg := NewConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file: %w", err)
	}

	return cfg, nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".jsonscalar.yml", ".jsonscalar.yaml", "jsonscalar.yml", "jsonscalar.yaml"}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root directory
			break
		}
		currentDir = parentDir
	}

	return ""
}

// Validate checks enumerated settings and normalizes their spelling
func (c *Config) Validate() error {
	c.Output.Format = strings.ToLower(strings.TrimSpace(c.Output.Format))
	switch c.Output.Format {
	case FormatText, FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("unknown output format '%s' (want text, json or yaml)", c.Output.Format)
	}

	// Accept "lowerCamel", "lower-camel", etc.
	c.Output.KeyCase = strcase.ToSnake(strings.TrimSpace(c.Output.KeyCase))
	switch c.Output.KeyCase {
	case KeyCaseSnake, KeyCaseCamel, KeyCaseLowerCamel, KeyCaseKebab:
	default:
		return fmt.Errorf("unknown key case '%s' (want snake, camel, lower_camel or kebab)", c.Output.KeyCase)
	}

	c.Dev.LogFormat = strings.ToLower(strings.TrimSpace(c.Dev.LogFormat))
	switch c.Dev.LogFormat {
	case LogFormatText, LogFormatJSON:
	default:
		return fmt.Errorf("unknown log format '%s' (want text or json)", c.Dev.LogFormat)
	}

	if c.Output.Precision < -1 || c.Output.Precision > 17 {
		return fmt.Errorf("precision %d out of range [-1, 17]", c.Output.Precision)
	}

	return nil
}

// KeyName renders a snake_case report key in the configured case
func (c *Config) KeyName(key string) string {
	switch c.Output.KeyCase {
	case KeyCaseCamel:
		return strcase.ToCamel(key)
	case KeyCaseLowerCamel:
		return strcase.ToLowerCamel(key)
	case KeyCaseKebab:
		return strcase.ToKebab(key)
	default:
		return strcase.ToSnake(key)
	}
}

// CLIOverrides holds command-line values that take precedence over the file.
// Empty strings and nil pointers mean "not set on the command line".
type CLIOverrides struct {
	Format  string
	Lines   *bool
	Summary *bool
	Debug   bool
}

// LoadConfigWithCLI loads config with CLI argument precedence.
// An empty configPath falls back to FindConfigFile.
func LoadConfigWithCLI(configPath string, cli CLIOverrides) (*Config, error) {
	cfg := NewConfig()

	if configPath == "" {
		configPath = FindConfigFile()
	}
	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	if cli.Format != "" {
		cfg.Output.Format = cli.Format
	}
	if cli.Lines != nil {
		cfg.Input.Lines = *cli.Lines
	}
	if cli.Summary != nil {
		cfg.Output.Summary = *cli.Summary
	}
	// Debug can only be switched on from the command line
	if cli.Debug {
		cfg.Dev.Debug = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
