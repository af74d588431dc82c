// Package config loads workspace settings from a YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Reviewer backends.
const (
	ReviewerHTTP   = "http"
	ReviewerGemini = "gemini"
)

// Theme names.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// Config holds user settings. Zero values in the file keep the defaults.
type Config struct {
	// Reviewer selects the backend: "http" posts to Endpoint, "gemini"
	// calls the Gemini API directly.
	Reviewer string `yaml:"reviewer"`
	// Endpoint is the review service base URL.
	Endpoint string `yaml:"endpoint"`
	// Model is the Gemini model for the gemini reviewer and the serve command.
	Model string `yaml:"model"`
	// Language is the initially selected language id.
	Language string `yaml:"language"`
	// Theme is "dark" or "light".
	Theme string `yaml:"theme"`
	// Wrap wraps long lines in the code view.
	Wrap bool `yaml:"wrap"`
	// Timeout bounds each review; zero disables it.
	Timeout time.Duration `yaml:"timeout"`
	// Listen is the address for the serve command.
	Listen string `yaml:"listen"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() Config {
	return Config{
		Reviewer: ReviewerHTTP,
		Endpoint: "http://localhost:3000",
		Language: "javascript",
		Theme:    ThemeDark,
		Wrap:     true,
		Timeout:  60 * time.Second,
		Listen:   ":3000",
	}
}

// DefaultPath returns the config file location under XDG_CONFIG_HOME.
func DefaultPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "bugspotter", "config.yaml")
}

// Load reads configuration from path. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults restores defaults for fields a file set to empty.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Reviewer == "" {
		c.Reviewer = defaults.Reviewer
	}
	if c.Endpoint == "" {
		c.Endpoint = defaults.Endpoint
	}
	if c.Theme == "" {
		c.Theme = defaults.Theme
	}
	if c.Listen == "" {
		c.Listen = defaults.Listen
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	switch c.Reviewer {
	case ReviewerHTTP, ReviewerGemini:
	default:
		return fmt.Errorf("reviewer must be %q or %q, got %q", ReviewerHTTP, ReviewerGemini, c.Reviewer)
	}

	switch c.Theme {
	case ThemeDark, ThemeLight:
	default:
		return fmt.Errorf("theme must be %q or %q, got %q", ThemeDark, ThemeLight, c.Theme)
	}

	if c.Timeout < 0 {
		return fmt.Errorf("timeout cannot be negative")
	}

	return nil
}

// Dark reports whether the dark theme is selected.
func (c *Config) Dark() bool {
	return c.Theme != ThemeLight
}
