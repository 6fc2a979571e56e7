package config

import (
	"fmt"
	"strings"
)

// ConfigError collects everything wrong with one config file so it can be
// fixed in a single pass.
type ConfigError struct {
	Path    string
	Missing []string // ${VAR} references with no value and no default
	Errors  []string // "section.key: problem"
}

// HasErrors reports whether anything was collected.
func (e *ConfigError) HasErrors() bool {
	return len(e.Missing) > 0 || len(e.Errors) > 0
}

func (e *ConfigError) Error() string {
	if !e.HasErrors() {
		return ""
	}

	var b strings.Builder
	if e.Path != "" {
		fmt.Fprintf(&b, "%s: ", e.Path)
	}
	if len(e.Missing) > 0 {
		fmt.Fprintf(&b, "unset environment variables: %s", strings.Join(e.Missing, ", "))
		if len(e.Errors) > 0 {
			b.WriteString("; ")
		}
	}
	if len(e.Errors) > 0 {
		fmt.Fprintf(&b, "%d invalid setting(s)", len(e.Errors))
		for _, msg := range e.Errors {
			fmt.Fprintf(&b, "\n  %s", msg)
		}
	}
	return b.String()
}
