// internal/config/validate.go
package config

import (
	"fmt"
	"strings"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

var validBackends = map[string]bool{
	"mediainfo": true, "ffprobe": true, "": true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
// A library root that does not exist is not an error; scanning it yields no courses.
func (c *Config) Validate() []string {
	var errs []string

	if !validLogLevels[c.Log.Level] {
		errs = append(errs, fmt.Sprintf("log.level: must be one of debug, info, warn, error; got %q", c.Log.Level))
	}

	if c.Scan.Workers < 0 {
		errs = append(errs, fmt.Sprintf("scan.workers: must be >= 1, got %d", c.Scan.Workers))
	}
	for i, ext := range c.Scan.Extensions {
		if strings.Trim(strings.TrimSpace(ext), ".") == "" {
			errs = append(errs, fmt.Sprintf("scan.extensions[%d]: empty extension", i))
		}
	}

	if strings.ContainsAny(c.Sidecar.Extension, `/\`) {
		errs = append(errs, fmt.Sprintf("sidecar.extension: must be a file extension, got %q", c.Sidecar.Extension))
	}

	if !validBackends[c.MediaInfo.Backend] {
		errs = append(errs, fmt.Sprintf("mediainfo.backend: must be one of mediainfo, ffprobe; got %q", c.MediaInfo.Backend))
	}
	if c.MediaInfo.Timeout < 0 {
		errs = append(errs, fmt.Sprintf("mediainfo.timeout: must not be negative, got %s", c.MediaInfo.Timeout))
	}

	return errs
}
