package mediainfo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// FFprobe probes files with ffprobe's container (format) section.
// Used where mediainfo is not installed.
type FFprobe struct {
	binary string
	run    runFunc
}

type ffprobeResult struct {
	Format struct {
		Duration string            `json:"duration"`
		Tags     map[string]string `json:"tags"`
	} `json:"format"`
}

// NewFFprobe creates an FFprobe prober. An empty binary means "ffprobe" from PATH.
func NewFFprobe(binary string) *FFprobe {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffprobe"
	}
	return &FFprobe{binary: binary, run: runCommand}
}

// Available reports whether the ffprobe binary can be found.
func (f *FFprobe) Available() bool {
	_, err := exec.LookPath(f.binary)
	return err == nil
}

// Probe returns the container duration and title tag of path.
func (f *FFprobe) Probe(ctx context.Context, path string) (*Info, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("ffprobe probe: empty path")
	}
	if !f.Available() {
		return nil, ErrUnavailable
	}

	output, err := f.run(ctx, f.binary, "-v", "error", "-hide_banner", "-show_format", "-of", "json", "--", path)
	if err != nil {
		return nil, fmt.Errorf("ffprobe probe: %w", err)
	}
	return parseFFprobe(output)
}

func parseFFprobe(output []byte) (*Info, error) {
	var result ffprobeResult
	if err := json.Unmarshal(output, &result); err != nil {
		return nil, fmt.Errorf("ffprobe parse: %w", err)
	}

	info := &Info{}
	// ffprobe reports seconds; go through milliseconds so truncation matches mediainfo.
	if secs, err := strconv.ParseFloat(strings.TrimSpace(result.Format.Duration), 64); err == nil {
		info.DurationSeconds = millisToSeconds(strconv.FormatInt(int64(secs*1000), 10))
	}
	for key, value := range result.Format.Tags {
		if strings.EqualFold(key, "title") {
			info.Title = optionalString(value)
			break
		}
	}
	return info, nil
}
