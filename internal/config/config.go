package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Config holds the complete application configuration
type Config struct {
	Version string        `yaml:"version" json:"version"`
	API     APIConfig     `yaml:"api" json:"api"`
	Session SessionConfig `yaml:"session" json:"session"`
	UI      UIConfig      `yaml:"ui" json:"ui"`
	Log     LogConfig     `yaml:"log" json:"log"`
}

// APIConfig configures the backend client
type APIConfig struct {
	BaseURL string        `yaml:"base_url" json:"base_url"` // backend root, including the /api prefix
	Timeout time.Duration `yaml:"timeout" json:"timeout"`   // per-request timeout
}

// SessionConfig configures credential persistence
type SessionConfig struct {
	CredentialFile string `yaml:"credential_file" json:"credential_file"`
	Watch          bool   `yaml:"watch" json:"watch"` // reload when another process logs in or out
}

// UIConfig configures the terminal UI
type UIConfig struct {
	Theme     string `yaml:"theme" json:"theme"`           // default|high-contrast|minimal
	NoEmoji   bool   `yaml:"no_emoji" json:"no_emoji"`     // plain text markers
	StartPath string `yaml:"start_path" json:"start_path"` // location the TUI opens at
}

// LogConfig configures diagnostic logging
type LogConfig struct {
	Verbose bool   `yaml:"verbose" json:"verbose"`
	File    string `yaml:"file" json:"file"` // empty logs nowhere while the TUI owns the terminal
}

var validThemes = map[string]bool{
	"default":       true,
	"high-contrast": true,
	"minimal":       true,
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Version: "1.0",
		API: APIConfig{
			BaseURL: "http://127.0.0.1:8000/api",
			Timeout: 15 * time.Second,
		},
		Session: SessionConfig{
			CredentialFile: "~/.config/pilly/credentials.yaml",
			Watch:          true,
		},
		UI: UIConfig{
			Theme:     "default",
			NoEmoji:   false,
			StartPath: "/",
		},
		Log: LogConfig{
			Verbose: false,
			File:    "",
		},
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.validateAPIConfig(); err != nil {
		return err
	}
	if err := c.validateSessionConfig(); err != nil {
		return err
	}
	if err := c.validateUIConfig(); err != nil {
		return err
	}
	return nil
}

// validateAPIConfig validates backend client configuration
func (c *Config) validateAPIConfig() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url must not be empty")
	}
	u, err := url.Parse(c.API.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid api.base_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid api.base_url scheme: %s (must be http or https)", u.Scheme)
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive")
	}
	return nil
}

func (c *Config) validateSessionConfig() error {
	if c.Session.CredentialFile == "" {
		return fmt.Errorf("session.credential_file must not be empty")
	}
	return nil
}

// validateUIConfig validates terminal UI configuration
func (c *Config) validateUIConfig() error {
	if c.UI.Theme != "" && !validThemes[c.UI.Theme] {
		return fmt.Errorf("invalid theme: %s (must be one of: default, high-contrast, minimal)", c.UI.Theme)
	}
	if c.UI.StartPath != "" && !strings.HasPrefix(c.UI.StartPath, "/") {
		return fmt.Errorf("ui.start_path must start with /: %s", c.UI.StartPath)
	}
	return nil
}
