package mediainfo

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

// Reader wraps a Prober and never surfaces its failures.
type Reader struct {
	prober  Prober
	timeout time.Duration
	log     *slog.Logger

	unavailableOnce sync.Once
}

// NewReader creates a Reader. A zero timeout means probes are not bounded.
func NewReader(prober Prober, timeout time.Duration, log *slog.Logger) *Reader {
	if prober == nil {
		prober = Disabled{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &Reader{prober: prober, timeout: timeout, log: log}
}

// Read returns container metadata for path, or nil when the capability is
// unavailable, probing fails, or nothing was reported.
func (r *Reader) Read(ctx context.Context, path string) *Info {
	if !r.prober.Available() {
		r.noteUnavailable()
		return nil
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	info, err := r.prober.Probe(ctx, path)
	if err != nil {
		if errors.Is(err, ErrUnavailable) {
			r.noteUnavailable()
			return nil
		}
		r.log.Warn("failed to extract container metadata", "path", path, "error", err)
		return nil
	}
	if info.Empty() {
		return nil
	}
	return info
}

func (r *Reader) noteUnavailable() {
	r.unavailableOnce.Do(func() {
		r.log.Info("container metadata capability unavailable, skipping embedded tags")
	})
}
