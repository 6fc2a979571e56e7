// Package config handles TOML configuration loading with environment variable substitution.
package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the root configuration structure.
type Config struct {
	Library   LibraryConfig   `toml:"library"`
	Database  DatabaseConfig  `toml:"database"`
	Log       LogConfig       `toml:"log"`
	Scan      ScanConfig      `toml:"scan"`
	Sidecar   SidecarConfig   `toml:"sidecar"`
	MediaInfo MediaInfoConfig `toml:"mediainfo"`
}

type LibraryConfig struct {
	Root string `toml:"root"`
}

type DatabaseConfig struct {
	Path string `toml:"path"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

type ScanConfig struct {
	Workers    int      `toml:"workers"`
	Extensions []string `toml:"extensions"` // empty = built-in video list
	Prune      bool     `toml:"prune"` // drop stored lessons whose file disappeared
}

type SidecarConfig struct {
	Extension         string `toml:"extension"`
	StrictLessonMatch bool   `toml:"strict_lesson_match"`
}

type MediaInfoConfig struct {
	Enabled *bool         `toml:"enabled"` // nil = default (true)
	Backend string        `toml:"backend"` // "mediainfo" or "ffprobe"
	Binary  string        `toml:"binary"`  // defaults to the backend name, resolved on PATH
	Timeout time.Duration `toml:"timeout"` // 0 = no limit
}

// IsEnabled returns whether container metadata should be read.
// Defaults to true if not explicitly set.
func (c MediaInfoConfig) IsEnabled() bool {
	if c.Enabled == nil {
		return true
	}
	return *c.Enabled
}

// BinaryPath returns the executable to run for the configured backend.
func (c MediaInfoConfig) BinaryPath() string {
	if c.Binary != "" {
		return c.Binary
	}
	return c.Backend
}

// Defaults.
const (
	DefaultLibraryRoot  = "/Volumes/learning"
	DefaultDatabasePath = "library.db"
	DefaultLogLevel     = "info"
	DefaultBackend      = "mediainfo"
	DefaultSidecarExt   = ".nfo"
)

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Library.Root == "" {
		c.Library.Root = DefaultLibraryRoot
	}
	if c.Database.Path == "" {
		c.Database.Path = DefaultDatabasePath
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Scan.Workers == 0 {
		c.Scan.Workers = 1
	}
	if c.Sidecar.Extension == "" {
		c.Sidecar.Extension = DefaultSidecarExt
	}
	if c.MediaInfo.Backend == "" {
		c.MediaInfo.Backend = DefaultBackend
	}
}

// Load reads, parses and validates the configuration file.
// Returns a *ConfigError for unresolved environment variables or invalid values.
func Load(path string) (*Config, error) {
	cfg, err := LoadWithoutValidation(path)
	if err != nil {
		return nil, err
	}
	if cfgErr := (&ConfigError{Path: path, Errors: cfg.Validate()}); cfgErr.HasErrors() {
		return nil, cfgErr
	}
	return cfg, nil
}

// LoadWithoutValidation reads and parses the configuration file and applies
// defaults, skipping validation.
func LoadWithoutValidation(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// Substitute environment variables
	content, missing := substituteEnvVars(string(data))
	if cfgErr := (&ConfigError{Path: path, Missing: missing}); cfgErr.HasErrors() {
		return nil, cfgErr
	}

	var cfg Config
	if _, err := toml.Decode(content, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// envVarPattern matches ${VAR}, ${VAR:-default} and ${VAR:?message}.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?:(:-|:\?)([^}]*))?\}`)

// substituteEnvVars replaces environment references and reports the ones
// that could not be resolved. Unresolved references are left unchanged.
func substituteEnvVars(content string) (string, []string) {
	var missing []string
	out := envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		m := envVarPattern.FindStringSubmatch(match)
		name, op, arg := m[1], m[2], m[3]
		value, ok := os.LookupEnv(name)

		switch op {
		case ":-":
			if !ok || value == "" {
				return arg
			}
			return value
		case ":?":
			if !ok || value == "" {
				missing = append(missing, name+": "+strings.TrimSpace(arg))
				return match
			}
			return value
		}

		if !ok {
			missing = append(missing, name)
			return match
		}
		return value
	})
	return out, missing
}
