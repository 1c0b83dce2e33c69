// Package config provides session configuration functionality.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// SessionConfig holds configuration for session cookie signing.
type SessionConfig struct {
	Secret          string
	ExpirationHours int
}

// NewSessionConfig creates a session configuration from environment
// variables. It reads SESSION_SECRET (optional; an empty secret makes the
// server mint a random one per process) and SESSION_EXPIRATION_HOURS
// (default: 24).
func NewSessionConfig() (*SessionConfig, error) {
	secret := os.Getenv("SESSION_SECRET")

	expirationStr := os.Getenv("SESSION_EXPIRATION_HOURS")
	if expirationStr == "" {
		expirationStr = "24" // default
	}

	expirationHours, err := strconv.Atoi(expirationStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_EXPIRATION_HOURS: %v", err)
	}
	if expirationHours < 1 {
		return nil, fmt.Errorf("SESSION_EXPIRATION_HOURS must be at least 1 hour, got: %d", expirationHours)
	}

	return &SessionConfig{
		Secret:          secret,
		ExpirationHours: expirationHours,
	}, nil
}
