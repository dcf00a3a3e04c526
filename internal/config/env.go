// Package config provides configuration helpers for go-xr commands.
package config

import (
	"os"
	"strconv"
)

// Default settings.
const (
	DefaultDashboardPort = 8181
	DefaultLogLevel      = "info"
)

// DashboardPort returns the dashboard port from XR_DASHBOARD_PORT.
// Falls back to the provided default if unset or invalid.
func DashboardPort(defaultPort int) int {
	if v := os.Getenv("XR_DASHBOARD_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil && port > 0 && port < 65536 {
			return port
		}
	}
	return defaultPort
}

// LogLevel returns the log level from XR_LOG_LEVEL or the default.
func LogLevel() string {
	if level := os.Getenv("XR_LOG_LEVEL"); level != "" {
		return level
	}
	return DefaultLogLevel
}

// TuningPath returns the tuning file path from XR_TUNING, empty when unset.
func TuningPath() string {
	return os.Getenv("XR_TUNING")
}

// Production reports whether GO_ENV is "production".
func Production() bool {
	return os.Getenv("GO_ENV") == "production"
}
