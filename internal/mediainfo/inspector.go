package mediainfo

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// generalTemplate asks mediainfo for the General track duration (ms) and title.
const generalTemplate = "--Inform=General;%Duration%|%Title%"

type runFunc func(ctx context.Context, binary string, args ...string) ([]byte, error)

func runCommand(ctx context.Context, binary string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, binary, args...)
	output, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, fmt.Errorf("%w: %s", err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return nil, err
	}
	return output, nil
}

// Inspector probes files with the mediainfo CLI.
type Inspector struct {
	binary string
	run    runFunc
}

// NewInspector creates an Inspector. An empty binary means "mediainfo" from PATH.
func NewInspector(binary string) *Inspector {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "mediainfo"
	}
	return &Inspector{binary: binary, run: runCommand}
}

// Available reports whether the mediainfo binary can be found.
func (i *Inspector) Available() bool {
	_, err := exec.LookPath(i.binary)
	return err == nil
}

// Probe returns the General track duration and title of path.
func (i *Inspector) Probe(ctx context.Context, path string) (*Info, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("mediainfo probe: empty path")
	}
	if !i.Available() {
		return nil, ErrUnavailable
	}

	output, err := i.run(ctx, i.binary, generalTemplate, path)
	if err != nil {
		return nil, fmt.Errorf("mediainfo probe: %w", err)
	}
	return parseGeneral(string(output)), nil
}

// parseGeneral decodes "<duration ms>|<title>" as produced by generalTemplate.
func parseGeneral(output string) *Info {
	line := strings.TrimRight(output, "\r\n")
	duration, title, _ := strings.Cut(line, "|")
	return &Info{
		DurationSeconds: millisToSeconds(duration),
		Title:           optionalString(title),
	}
}
