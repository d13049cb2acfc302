package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestConfig_DefaultValues(t *testing.T) {
	cfg := NewConfig()

	assert.False(t, cfg.Input.Lines)
	assert.Equal(t, FormatText, cfg.Output.Format)
	assert.Equal(t, -1, cfg.Output.Precision)
	assert.Equal(t, KeyCaseSnake, cfg.Output.KeyCase)
	assert.True(t, cfg.Output.ShowSource)
	assert.False(t, cfg.Output.Summary)
	assert.False(t, cfg.Dev.Debug)
	assert.Equal(t, LogFormatText, cfg.Dev.LogFormat)
	assert.NoError(t, cfg.Validate())
}

func TestConfig_LoadFromYAML(t *testing.T) {
	yamlContent := `
input:
  lines: true
output:
  format: "YAML"
  precision: 6
  key_case: "lowerCamel"
  show_source: false
  summary: true
dev:
  debug: true
  log_format: JSON
`
	path := writeConfig(t, t.TempDir(), "config.yml", yamlContent)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.True(t, cfg.Input.Lines)
	assert.Equal(t, FormatYAML, cfg.Output.Format)
	assert.Equal(t, 6, cfg.Output.Precision)
	assert.Equal(t, KeyCaseLowerCamel, cfg.Output.KeyCase)
	assert.False(t, cfg.Output.ShowSource)
	assert.True(t, cfg.Output.Summary)
	assert.True(t, cfg.Dev.Debug)
	assert.Equal(t, LogFormatJSON, cfg.Dev.LogFormat)
}

func TestConfig_PartialYAMLKeepsDefaults(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "config.yml", "output:\n  format: json\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, FormatJSON, cfg.Output.Format)
	assert.Equal(t, -1, cfg.Output.Precision)
	assert.True(t, cfg.Output.ShowSource)
}

func TestConfig_LoadNonExistentFile(t *testing.T) {
	_, err := LoadConfig("/non/existent/config.yml")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestConfig_LoadInvalidYAML(t *testing.T) {
	invalidYAML := `
output:
  format: [unclosed array
`
	path := writeConfig(t, t.TempDir(), "invalid.yml", invalidYAML)

	_, err := LoadConfig(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"unknown format", func(c *Config) { c.Output.Format = "xml" }, "unknown output format"},
		{"unknown key case", func(c *Config) { c.Output.KeyCase = "shouty" }, "unknown key case"},
		{"precision too low", func(c *Config) { c.Output.Precision = -2 }, "out of range"},
		{"precision too high", func(c *Config) { c.Output.Precision = 18 }, "out of range"},
		{"unknown log format", func(c *Config) { c.Dev.LogFormat = "logfmt" }, "unknown log format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfig_ValidateNormalizes(t *testing.T) {
	cfg := NewConfig()
	cfg.Output.Format = " JSON "
	cfg.Output.KeyCase = "lower-camel"
	require.NoError(t, cfg.Validate())
	assert.Equal(t, FormatJSON, cfg.Output.Format)
	assert.Equal(t, KeyCaseLowerCamel, cfg.Output.KeyCase)
}

func TestConfig_KeyName(t *testing.T) {
	tests := []struct {
		keyCase  string
		expected string
	}{
		{KeyCaseSnake, "source_offset"},
		{KeyCaseCamel, "SourceOffset"},
		{KeyCaseLowerCamel, "sourceOffset"},
		{KeyCaseKebab, "source-offset"},
	}

	for _, tt := range tests {
		t.Run(tt.keyCase, func(t *testing.T) {
			cfg := NewConfig()
			cfg.Output.KeyCase = tt.keyCase
			assert.Equal(t, tt.expected, cfg.KeyName("source_offset"))
		})
	}
}

func TestConfig_FindConfigFile(t *testing.T) {
	tmpDir := t.TempDir()

	nestedDir := filepath.Join(tmpDir, "project", "subdir")
	require.NoError(t, os.MkdirAll(nestedDir, 0o755))

	configPath := writeConfig(t, filepath.Join(tmpDir, "project"), ".jsonscalar.yml", "output:\n  format: yaml\n")

	originalWd, err := os.Getwd()
	require.NoError(t, err)
	defer func() { _ = os.Chdir(originalWd) }()
	require.NoError(t, os.Chdir(nestedDir))

	found := FindConfigFile()
	// Resolve symlinks (macOS temp dirs live under /private)
	expected, err := filepath.EvalSymlinks(configPath)
	require.NoError(t, err)
	actual, err := filepath.EvalSymlinks(found)
	require.NoError(t, err)
	assert.Equal(t, expected, actual)
}

func TestLoadConfigWithCLI(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "config.yml", "output:\n  format: yaml\n  summary: true\ninput:\n  lines: true\n")

	// File values are used when the CLI is silent
	cfg, err := LoadConfigWithCLI(path, CLIOverrides{})
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, cfg.Output.Format)
	assert.True(t, cfg.Output.Summary)
	assert.True(t, cfg.Input.Lines)
	assert.False(t, cfg.Dev.Debug)

	// CLI values win
	no := false
	cfg, err = LoadConfigWithCLI(path, CLIOverrides{Format: "json", Lines: &no, Summary: &no, Debug: true})
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, cfg.Output.Format)
	assert.False(t, cfg.Output.Summary)
	assert.False(t, cfg.Input.Lines)
	assert.True(t, cfg.Dev.Debug)

	_, err = LoadConfigWithCLI(path, CLIOverrides{Format: "xml"})
	assert.Error(t, err)

	_, err = LoadConfigWithCLI(filepath.Join(t.TempDir(), "missing.yml"), CLIOverrides{})
	assert.Error(t, err)
}
