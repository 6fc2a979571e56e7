// Package lessontitle derives human titles from lesson video filenames.
package lessontitle

import (
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Patterns are tried in order; the first match wins.
var (
	// "Lesson 5 - Title", "lesson 5: Title", "Lesson 5 Title"
	markerPattern = regexp.MustCompile(`(?i)^lesson\s+\d+(?:\s*[-:]\s*|\s+)(.+)$`)
	// "05 - Title", "05: Title", "05. Title"
	numberedPattern = regexp.MustCompile(`^\d+\s*[-:.]\s*(.+)$`)
	// Best-effort numeric prefix stripped when nothing else matched.
	numberPrefix = regexp.MustCompile(`^\d+\s*[-:.]?\s*`)
)

// Parse extracts a lesson title from a bare filename.
// Returns false when nothing is left after stripping the extension and numbering.
func Parse(filename string) (string, bool) {
	name := norm.NFC.String(strings.TrimSuffix(filename, filepath.Ext(filename)))

	for _, re := range []*regexp.Regexp{markerPattern, numberedPattern} {
		if m := re.FindStringSubmatch(name); m != nil {
			return nonEmpty(m[1])
		}
	}
	return nonEmpty(numberPrefix.ReplaceAllString(name, ""))
}

func nonEmpty(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	return s, true
}
