package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/willibrandon/quill/internal/logger"
)

// Config represents the root configuration structure
type Config struct {
	Generator GeneratorConfig `mapstructure:"generator" yaml:"generator"`
	Editor    EditorConfig    `mapstructure:"editor" yaml:"editor"`
	UI        UIConfig        `mapstructure:"ui" yaml:"ui"`
	History   HistoryConfig   `mapstructure:"history" yaml:"history"`
	Log       LogConfig       `mapstructure:"log" yaml:"log"`
	Debug     bool            `mapstructure:"debug" yaml:"debug"`
}

// GeneratorConfig describes the external text generation helper
type GeneratorConfig struct {
	Command string        `mapstructure:"command" yaml:"command"`
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"` // 0 waits forever
}

// MarshalYAML writes the timeout as a duration string.
func (g GeneratorConfig) MarshalYAML() (any, error) {
	return struct {
		Command string `yaml:"command"`
		Timeout string `yaml:"timeout"`
	}{g.Command, g.Timeout.String()}, nil
}

// EditorConfig holds document handling preferences
type EditorConfig struct {
	TrailingNewline bool `mapstructure:"trailing_newline" yaml:"trailing_newline"`
}

// UIConfig holds user interface preferences
type UIConfig struct {
	Theme     string `mapstructure:"theme" yaml:"theme"`
	ShowHints bool   `mapstructure:"show_hints" yaml:"show_hints"`
}

// HistoryConfig controls the local generation history database
type HistoryConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Path    string `mapstructure:"path" yaml:"path"`
}

// LogConfig controls the log file location and level
type LogConfig struct {
	Path  string `mapstructure:"path" yaml:"path"`
	Level string `mapstructure:"level" yaml:"level"` // debug, info, warn or error
}

// Dir returns the quill configuration directory, ~/.config/quill.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "quill")
	}
	return filepath.Join(home, ".config", "quill")
}

// DefaultPath returns the path of the default config file.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

// Load loads configuration from the default locations.
func Load() (*Config, error) {
	return LoadFromPath("")
}

// LoadFromPath loads configuration from a specific YAML file and environment
// variables. If configPath is empty, default locations are searched and a
// missing file means defaults.
func LoadFromPath(configPath string) (*Config, error) {
	v := viper.New()

	// Environment variable support
	v.AutomaticEnv()
	v.SetEnvPrefix("QUILL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	applyDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(Dir())
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	cfg.History.Path = expandPath(cfg.History.Path)
	cfg.Log.Path = expandPath(cfg.Log.Path)

	if err := ValidateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ValidateConfig validates the configuration values
func ValidateConfig(cfg *Config) error {
	if strings.TrimSpace(cfg.Generator.Command) == "" {
		return fmt.Errorf("generator.command cannot be empty")
	}
	if cfg.Generator.Timeout < 0 {
		return fmt.Errorf("generator.timeout must be >= 0, got %v", cfg.Generator.Timeout)
	}

	validThemes := []string{"dark", "light"}
	if !slices.Contains(validThemes, cfg.UI.Theme) {
		return fmt.Errorf("ui.theme must be one of: %v, got %s", validThemes, cfg.UI.Theme)
	}

	if _, err := logger.ParseLevel(cfg.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}

	if cfg.History.Enabled && cfg.History.Path == "" {
		return fmt.Errorf("history.path cannot be empty when history is enabled")
	}
	return nil
}

// applyDefaults sets default configuration values
func applyDefaults(v *viper.Viper) {
	v.SetDefault("generator.command", "python tet.py")
	v.SetDefault("generator.timeout", "0s")

	v.SetDefault("editor.trailing_newline", false)

	v.SetDefault("ui.theme", "dark")
	v.SetDefault("ui.show_hints", true)

	v.SetDefault("history.enabled", true)
	v.SetDefault("history.path", filepath.Join(Dir(), "quill.db"))

	v.SetDefault("log.path", filepath.Join(Dir(), "quill.log"))
	v.SetDefault("log.level", "info")

	v.SetDefault("debug", false)
}

// Default returns the configuration used when no file or environment
// overrides are present.
func Default() *Config {
	v := viper.New()
	applyDefaults(v)

	var cfg Config
	_ = v.Unmarshal(&cfg)
	return &cfg
}

// YAML renders the configuration as a YAML document.
func (c *Config) YAML() ([]byte, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return out, nil
}

// WriteDefault writes the default configuration to path. An existing file is
// left untouched unless force is set.
func WriteDefault(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file already exists: %s", path)
		}
	}

	data, err := Default().YAML()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
