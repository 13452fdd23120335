// Package config provides configuration helpers for go-twin commands.
package config

import (
	"os"
	"strings"
)

// Defaults for the twin server.
const (
	DefaultPort     = "8090"
	DefaultLogLevel = "info"
)

// Port returns the HTTP port from the TWIN_PORT env var or the default.
func Port() string {
	if p := os.Getenv("TWIN_PORT"); p != "" {
		return p
	}
	return DefaultPort
}

// LogLevel returns the log level from TWIN_LOG_LEVEL or the default.
func LogLevel() string {
	if l := os.Getenv("TWIN_LOG_LEVEL"); l != "" {
		return l
	}
	return DefaultLogLevel
}

// IdleAnimations returns the base idle clip set from TWIN_IDLE_ANIMATIONS
// (comma-separated), or nil to use the engine's built-in defaults.
func IdleAnimations() []string {
	raw := os.Getenv("TWIN_IDLE_ANIMATIONS")
	if raw == "" {
		return nil
	}
	var names []string
	for _, part := range strings.Split(raw, ",") {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}
