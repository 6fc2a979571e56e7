package mediainfo

//go:generate mockgen -destination=mocks/mock_prober.go -package=mocks github.com/vmunix/eduscan/internal/mediainfo Prober

import (
	"context"
	"math"
	"strconv"
	"strings"
)

// Info is the container metadata of one file. Nil fields were not reported.
type Info struct {
	DurationSeconds *int
	Title           *string
}

// Empty reports whether nothing useful was found.
func (i *Info) Empty() bool {
	return i == nil || (i.DurationSeconds == nil && i.Title == nil)
}

// Prober extracts container metadata from a video file.
type Prober interface {
	// Available reports whether the capability can be used at all.
	Available() bool
	// Probe inspects the file at path.
	Probe(ctx context.Context, path string) (*Info, error)
}

// Disabled is a Prober that is never available.
type Disabled struct{}

func (Disabled) Available() bool { return false }

func (Disabled) Probe(context.Context, string) (*Info, error) { return nil, ErrUnavailable }

// millisToSeconds converts a millisecond duration string to whole seconds,
// truncating any remainder. Sub-second durations are absent. Decimal strings such as "125000.000" are accepted.
func millisToSeconds(raw string) *int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	ms, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(ms) || math.IsInf(ms, 0) || ms <= 0 {
		return nil
	}
	secs := int(int64(ms) / 1000)
	if secs == 0 {
		return nil
	}
	return &secs
}

func optionalString(raw string) *string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	return &s
}
