package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

// Config represents the top-level closurecheck.yaml (or .toml) configuration.
type Config struct {
	// Requires is a semver constraint on the closurecheck version (e.g. ">=0.4").
	// Empty means any version.
	Requires string `yaml:"requires,omitempty" toml:"requires"`

	// LogLevel is one of silent, error, warn, verbose, debug.
	LogLevel string `yaml:"log_level,omitempty" toml:"log_level"`

	// LangItems names the callable interface family.
	LangItems LangItems `yaml:"lang_items,omitempty" toml:"lang_items"`

	// Export controls the type table export.
	Export ExportConfig `yaml:"export,omitempty" toml:"export"`
}

// LangItems names the three callable interfaces and their associated output item.
type LangItems struct {
	Fn     string `yaml:"fn,omitempty" toml:"fn"`
	FnMut  string `yaml:"fn_mut,omitempty" toml:"fn_mut"`
	FnOnce string `yaml:"fn_once,omitempty" toml:"fn_once"`
	Output string `yaml:"output,omitempty" toml:"output"`
}

// ExportConfig describes where recorded closure signatures are written.
type ExportConfig struct {
	// Database is a SQLite file path. Empty disables the export.
	Database string `yaml:"database,omitempty" toml:"database"`
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads a configuration file. The format is chosen by extension.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	cfg, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes configuration data. ext selects the decoder (".toml" or YAML otherwise).
func Parse(data []byte, ext string) (*Config, error) {
	cfg := &Config{}
	switch strings.ToLower(ext) {
	case ".toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Find looks for a config file in dir. Returns Default() if none exists.
func Find(dir string) (*Config, error) {
	for _, name := range ConfigFileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}
	return Default(), nil
}

func (c *Config) applyDefaults() {
	if c.LangItems.Fn == "" {
		c.LangItems.Fn = FnTraitName
	}
	if c.LangItems.FnMut == "" {
		c.LangItems.FnMut = FnMutTraitName
	}
	if c.LangItems.FnOnce == "" {
		c.LangItems.FnOnce = FnOnceTraitName
	}
	if c.LangItems.Output == "" {
		c.LangItems.Output = OutputItemName
	}
	if c.LogLevel == "" {
		c.LogLevel = "warn"
	}
}

// Validate checks the version constraint and the lang item names.
func (c *Config) Validate() error {
	if c.Requires != "" {
		constraint, err := semver.NewConstraint(c.Requires)
		if err != nil {
			return fmt.Errorf("invalid requires constraint %q: %w", c.Requires, err)
		}
		current := semver.MustParse(Version)
		if !constraint.Check(current) {
			return fmt.Errorf("closurecheck %s does not satisfy requires %q", Version, c.Requires)
		}
	}

	names := map[string]string{}
	for _, item := range []struct{ key, name string }{
		{"fn", c.LangItems.Fn},
		{"fn_mut", c.LangItems.FnMut},
		{"fn_once", c.LangItems.FnOnce},
	} {
		if prev, ok := names[item.name]; ok {
			return fmt.Errorf("lang items %s and %s share the name %q", prev, item.key, item.name)
		}
		names[item.name] = item.key
	}

	switch c.LogLevel {
	case "silent", "error", "warn", "verbose", "debug":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	return nil
}
