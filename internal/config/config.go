// Package config loads the optional .scriptembed.yaml project file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/example/scriptembed/internal/generator"
	"github.com/example/scriptembed/internal/scripts"
)

// FileName is the project config file, looked up in the project root.
const FileName = ".scriptembed.yaml"

// Config holds the project settings. Every field is optional; zero values
// fall back to the defaults below.
type Config struct {
	ScriptsDir string   `yaml:"scripts_dir,omitempty"` // default "scripts"
	Extension  string   `yaml:"extension,omitempty"`   // default ".lua"
	Exclude    []string `yaml:"exclude,omitempty"`     // default ["build"]
	Recursive  bool     `yaml:"recursive,omitempty"`
	OutputDir  string   `yaml:"output_dir,omitempty"`  // default "src/server"
	OutputName string   `yaml:"output_name,omitempty"` // default "generated_scripts"

	// ChunkSize is the maximum literal length in characters. 0 disables chunking.
	ChunkSize *int `yaml:"chunk_size,omitempty"`

	// CheckSyntax runs a Lua syntax check on .lua scripts before embedding.
	CheckSyntax bool `yaml:"validate,omitempty"`

	// Ledger is the SQLite run ledger path. Empty disables the ledger.
	Ledger string `yaml:"ledger,omitempty"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	size := scripts.DefaultChunkSize
	return &Config{
		ScriptsDir: "scripts",
		Extension:  ".lua",
		Exclude:    append([]string(nil), scripts.DefaultExclude...),
		OutputDir:  filepath.Join("src", "server"),
		OutputName: generator.DefaultBaseName,
		ChunkSize:  &size,
	}
}

// LoadConfig reads .scriptembed.yaml from dir. A missing file yields the
// defaults; an unreadable or invalid one is an error.
func LoadConfig(dir string) (*Config, error) {
	cfg, err := LoadConfigFile(filepath.Join(dir, FileName))
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	return cfg, err
}

// LoadConfigFile reads a config from an explicit path and fills in defaults.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

// SaveConfig writes cfg to dir/.scriptembed.yaml.
func SaveConfig(dir string, cfg *Config) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

func (c *Config) applyDefaults() {
	def := DefaultConfig()
	if c.ScriptsDir == "" {
		c.ScriptsDir = def.ScriptsDir
	}
	if c.Extension == "" {
		c.Extension = def.Extension
	}
	if c.Exclude == nil {
		c.Exclude = def.Exclude
	}
	if c.OutputDir == "" {
		c.OutputDir = def.OutputDir
	}
	if c.OutputName == "" {
		c.OutputName = def.OutputName
	}
	if c.ChunkSize == nil {
		c.ChunkSize = def.ChunkSize
	}
}

// Validate checks values that cannot be defaulted.
func (c *Config) Validate() error {
	if c.ChunkSize != nil && *c.ChunkSize < 0 {
		return fmt.Errorf("chunk_size must be >= 0, got %d", *c.ChunkSize)
	}
	if c.Extension != "" && c.Extension[0] != '.' {
		return fmt.Errorf("extension must start with '.', got %q", c.Extension)
	}
	if filepath.Base(c.OutputName) != c.OutputName {
		return fmt.Errorf("output_name must be a bare file name, got %q", c.OutputName)
	}
	return nil
}

// EffectiveChunkSize returns the configured chunk size, or the default.
func (c *Config) EffectiveChunkSize() int {
	if c.ChunkSize != nil {
		return *c.ChunkSize
	}
	return scripts.DefaultChunkSize
}

// ScriptsPath resolves the scripts directory against the project root.
func (c *Config) ScriptsPath(root string) string {
	return resolve(root, c.ScriptsDir)
}

// OutputPath resolves the output directory against the project root.
func (c *Config) OutputPath(root string) string {
	return resolve(root, c.OutputDir)
}

// LedgerPath resolves the ledger path, or returns "" when the ledger is off.
func (c *Config) LedgerPath(root string) string {
	if c.Ledger == "" {
		return ""
	}
	return resolve(root, c.Ledger)
}

// DiscoverOptions returns the discovery options for this config.
func (c *Config) DiscoverOptions() *scripts.Options {
	return &scripts.Options{
		Extension: c.Extension,
		Exclude:   c.Exclude,
		Recursive: c.Recursive,
	}
}

// OutputSpec returns where the artifacts go for the given project root.
func (c *Config) OutputSpec(root string) generator.OutputSpec {
	return generator.OutputSpec{
		Dir:      c.OutputPath(root),
		BaseName: c.OutputName,
	}
}

func resolve(root, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(root, p)
}
