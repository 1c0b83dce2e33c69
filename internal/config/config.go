// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Input
	Steps string `json:"steps,omitempty"` // Path to a workflow steps text file

	// Behavior
	Provider    string `json:"provider,omitempty"`    // LLM provider: gemini or openai
	APIKey      string `json:"api_key,omitempty"`     // API key for the chosen provider
	Sensitivity string `json:"sensitivity,omitempty"` // Default sensitivity tier: low, medium, strict
	UseMock     bool   `json:"use_mock,omitempty"`    // Serve canned assessments without API calls
	Verbose     bool   `json:"verbose,omitempty"`     // Print detailed output

	// Server
	Port          int    `json:"port,omitempty"`           // HTTP listen port
	DatabaseURL   string `json:"database_url,omitempty"`   // PostgreSQL connection URL
	SessionSecret string `json:"session_secret,omitempty"` // Secret for signing session cookies
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	switch c.Provider {
	case "", "gemini", "openai":
	default:
		return fmt.Errorf("config error: 'provider' must be gemini or openai")
	}

	switch c.Sensitivity {
	case "", "low", "medium", "strict":
	default:
		return fmt.Errorf("config error: 'sensitivity' must be low, medium or strict")
	}

	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}

	// Validate file paths exist (if specified)
	if c.Steps != "" {
		if _, err := os.Stat(c.Steps); os.IsNotExist(err) {
			return fmt.Errorf("config error: steps file not found: %s", c.Steps)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty string fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Steps == "" {
		result.Steps = defaults.Steps
	}
	if result.Provider == "" {
		result.Provider = defaults.Provider
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.Sensitivity == "" {
		result.Sensitivity = defaults.Sensitivity
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.SessionSecret == "" {
		result.SessionSecret = defaults.SessionSecret
	}

	// Int fields: use default if zero
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
