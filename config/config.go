package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the configuration file looked up in the current directory
const DefaultFile = "scomposer.yaml"

// Environment variables overriding file values
const (
	EnvBaseType   = "SCOMPOSER_BASE_TYPE"
	EnvOutput     = "SCOMPOSER_OUTPUT"
	EnvLineEnding = "SCOMPOSER_LINE_ENDING"
)

// Config represents the composer configuration.
type Config struct {
	BaseType string        `yaml:"base_type"`
	Exclude  ExcludeConfig `yaml:"exclude"`
	Output   OutputConfig  `yaml:"output"`
	Watch    WatchConfig   `yaml:"watch"`
	Beep     bool          `yaml:"beep"`
}

// ExcludeConfig defines what is never treated as a compile item.
type ExcludeConfig struct {
	Dirs      []string `yaml:"dirs"`
	FilesGlob []string `yaml:"files_glob"`
}

// OutputConfig defines where and how the composed script is delivered.
type OutputConfig struct {
	Target     string `yaml:"target"`
	Path       string `yaml:"path"`
	LineEnding string `yaml:"line_ending"`
}

// WatchConfig defines watch mode behaviour.
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		BaseType: "MyGridProgram",
		Exclude: ExcludeConfig{
			Dirs:      []string{"bin", "obj"},
			FilesGlob: []string{"**/*.Designer.cs", "**/AssemblyInfo.cs"},
		},
		Output: OutputConfig{
			Target:     "clipboard",
			LineEnding: "lf",
		},
		Watch: WatchConfig{
			Debounce: 300 * time.Millisecond,
		},
	}
}

// Load reads configuration from file, falling back to defaults, then applies environment overrides.
// If configPath is empty, it looks for scomposer.yaml in the current directory.
// A .env file in the current directory is loaded when present.
func Load(configPath string) (*Config, error) {
	defaults := Default()
	explicit := configPath != ""
	if !explicit {
		configPath = DefaultFile
	}

	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		var fileCfg Config
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return nil, err
		}
		defaults.Merge(&fileCfg)
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return nil, err
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	defaults.ApplyEnv(os.Getenv)
	return defaults, nil
}

// Merge combines another config into this one, with other taking precedence.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}
	if other.BaseType != "" {
		c.BaseType = other.BaseType
	}
	if len(other.Exclude.Dirs) > 0 {
		c.Exclude.Dirs = other.Exclude.Dirs
	}
	if len(other.Exclude.FilesGlob) > 0 {
		c.Exclude.FilesGlob = other.Exclude.FilesGlob
	}
	if other.Output.Target != "" {
		c.Output.Target = other.Output.Target
	}
	if other.Output.Path != "" {
		c.Output.Path = other.Output.Path
	}
	if other.Output.LineEnding != "" {
		c.Output.LineEnding = other.Output.LineEnding
	}
	if other.Watch.Debounce > 0 {
		c.Watch.Debounce = other.Watch.Debounce
	}
	if other.Beep {
		c.Beep = true
	}
}

// ApplyEnv overrides values from environment variables returned by lookup.
func (c *Config) ApplyEnv(lookup func(string) string) {
	if value := strings.TrimSpace(lookup(EnvBaseType)); value != "" {
		c.BaseType = value
	}
	if value := strings.TrimSpace(lookup(EnvOutput)); value != "" {
		c.Output.Target = value
	}
	if value := strings.TrimSpace(lookup(EnvLineEnding)); value != "" {
		c.Output.LineEnding = value
	}
}
