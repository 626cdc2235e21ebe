// Package config handles the YAML settings file and its XDG locations.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/idilsaglam/smarttasks/internal/model"
	"github.com/idilsaglam/smarttasks/internal/ui"
)

const (
	// AppName is the directory name under the XDG config and data homes.
	AppName = "smarttasks"

	ConfigFile = "config.yaml"
	DataFile   = "tasks.json"

	DefaultStorageKey = "smartTasks"
)

// Config holds user settings. Every field is optional in the file.
type Config struct {
	// DataFile is the JSON document the task list is stored in.
	DataFile   string `yaml:"data_file"`
	StorageKey string `yaml:"storage_key"`

	DefaultPriority string `yaml:"default_priority"`
	DefaultFilter   string `yaml:"default_filter"`

	Theme    string `yaml:"theme"`
	LogLevel string `yaml:"log_level"`
}

func Default() *Config {
	c := &Config{}
	c.ApplyDefaults()
	return c
}

func (c *Config) ApplyDefaults() {
	if c.DataFile == "" {
		c.DataFile = filepath.Join(DefaultDataDir(), DataFile)
	}
	if c.StorageKey == "" {
		c.StorageKey = DefaultStorageKey
	}
	if c.DefaultPriority == "" {
		c.DefaultPriority = string(model.PriorityMedium)
	}
	if c.DefaultFilter == "" {
		c.DefaultFilter = string(model.FilterAll)
	}
	if c.Theme == "" {
		c.Theme = "classic"
	}
	if c.LogLevel == "" {
		c.LogLevel = "warn"
	}
}

// Validate checks the values that have a fixed set of options.
func (c *Config) Validate() error {
	if _, err := model.ParsePriority(c.DefaultPriority); err != nil {
		return fmt.Errorf("default_priority: %w", err)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	if !ui.ValidTheme(c.Theme) {
		return fmt.Errorf("theme: unknown theme %q (want one of %s)", c.Theme, strings.Join(ui.Themes, ", "))
	}
	return nil
}

// Priority is the parsed default priority. Call Validate first.
func (c *Config) Priority() model.Priority {
	p, err := model.ParsePriority(c.DefaultPriority)
	if err != nil {
		return model.PriorityMedium
	}
	return p
}

func (c *Config) Filter() model.Filter { return model.ParseFilter(c.DefaultFilter) }

func (c *Config) Level() log.Level {
	l, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.WarnLevel
	}
	return l
}

// Load reads path. A missing file yields defaults; a malformed one an error.
// Environment overrides are applied on top.
func Load(path string) (*Config, error) {
	var c Config
	b, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	c.applyEnv()
	c.ApplyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv("SMARTTASKS_DATA_FILE")); v != "" {
		c.DataFile = v
	}
	if v := strings.TrimSpace(os.Getenv("SMARTTASKS_THEME")); v != "" {
		c.Theme = v
	}
	if v := strings.TrimSpace(os.Getenv("SMARTTASKS_LOG_LEVEL")); v != "" {
		c.LogLevel = v
	}
}

// DefaultConfigPath is $XDG_CONFIG_HOME/smarttasks/config.yaml,
// falling back to $HOME/.config.
func DefaultConfigPath() string {
	return filepath.Join(xdgDir("XDG_CONFIG_HOME", ".config"), ConfigFile)
}

// DefaultDataDir is $XDG_DATA_HOME/smarttasks, falling back to $HOME/.local/share.
func DefaultDataDir() string {
	return xdgDir("XDG_DATA_HOME", filepath.Join(".local", "share"))
}

func xdgDir(env, fallback string) string {
	if xdg := os.Getenv(env); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, fallback, AppName)
}
