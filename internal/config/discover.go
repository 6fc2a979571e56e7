// internal/config/discover.go
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultPath returns the XDG-compliant default config path.
func DefaultPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "./eduscan.toml"
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "eduscan", "config.toml")
}

// Discover finds the config file using the standard search order.
// Search order:
//  1. EDUSCAN_CONFIG environment variable
//  2. ./eduscan.toml (current directory)
//  3. $XDG_CONFIG_HOME/eduscan/config.toml
//  4. /etc/eduscan/config.toml
func Discover() (string, error) {
	// 1. Check EDUSCAN_CONFIG env var
	if envPath := os.Getenv("EDUSCAN_CONFIG"); envPath != "" {
		if _, err := os.Stat(envPath); err != nil {
			return "", fmt.Errorf("EDUSCAN_CONFIG=%s: %w", envPath, err)
		}
		return envPath, nil
	}

	// Build search paths
	paths := []string{
		"./eduscan.toml",
		DefaultPath(),
		"/etc/eduscan/config.toml",
	}

	// 2-4. Check each path
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", fmt.Errorf("%w, checked: %s", ErrNotFound, formatPaths(paths))
}

// ErrNotFound is returned by Discover when no config file exists.
var ErrNotFound = errors.New("config not found")

func formatPaths(paths []string) string {
	return strings.Join(paths, ", ")
}
