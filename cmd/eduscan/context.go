package main

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"

	"github.com/vmunix/eduscan/internal/config"
	"github.com/vmunix/eduscan/internal/library"
	"github.com/vmunix/eduscan/internal/mediainfo"
	"github.com/vmunix/eduscan/internal/nfo"
	"github.com/vmunix/eduscan/internal/report"
	"github.com/vmunix/eduscan/internal/scanner"
)

type commandContext struct {
	configFlag   string
	logLevelFlag string
	dbFlag       string
	jsonOutput   bool

	configOnce sync.Once
	config     *config.Config
	configErr  error
	configPath string

	// stderr receives log output; nil means os.Stderr.
	stderr io.Writer
}

// ensureConfig loads the configuration once. An explicit --config path must
// exist; otherwise the standard locations are searched and defaults apply
// when none has a file.
func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		path := strings.TrimSpace(c.configFlag)
		if path == "" {
			found, err := config.Discover()
			switch {
			case errors.Is(err, config.ErrNotFound):
				c.config = config.Default()
			case err != nil:
				c.configErr = err
			default:
				path = found
			}
		}
		if path != "" {
			cfg, err := config.Load(path)
			if err != nil {
				c.configErr = fmt.Errorf("load config %s: %w", path, err)
				return
			}
			c.config = cfg
			c.configPath = path
		}
		if c.config == nil {
			return
		}
		if c.logLevelFlag != "" {
			c.config.Log.Level = c.logLevelFlag
		}
		if c.dbFlag != "" {
			c.config.Database.Path = c.dbFlag
		}
	})
	return c.config, c.configErr
}

func (c *commandContext) logOutput() io.Writer {
	if c.stderr != nil {
		return c.stderr
	}
	return os.Stderr
}

func (c *commandContext) logger() *slog.Logger {
	level := config.DefaultLogLevel
	if c.config != nil {
		level = c.config.Log.Level
	}
	return slog.New(slog.NewTextHandler(c.logOutput(), &slog.HandlerOptions{
		Level: parseLogLevel(level),
	}))
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (c *commandContext) openStore() (*sql.DB, *library.Store, error) {
	db, err := library.Open(c.config.Database.Path)
	if err != nil {
		return nil, nil, err
	}
	return db, library.NewStore(db), nil
}

// newScanner wires the sidecar reader, container prober and scanner from config.
func (c *commandContext) newScanner(logger *slog.Logger, workers int) *scanner.Scanner {
	cfg := c.config

	sidecar := nfo.NewReader(nfo.Locator{
		Extension: cfg.Sidecar.Extension,
		Strict:    cfg.Sidecar.StrictLessonMatch,
	}, logger.With("component", "sidecar"))

	var prober mediainfo.Prober = mediainfo.Disabled{}
	if cfg.MediaInfo.IsEnabled() {
		switch cfg.MediaInfo.Backend {
		case "ffprobe":
			prober = mediainfo.NewFFprobe(cfg.MediaInfo.BinaryPath())
		default:
			prober = mediainfo.NewInspector(cfg.MediaInfo.BinaryPath())
		}
	}
	media := mediainfo.NewReader(prober, cfg.MediaInfo.Timeout, logger.With("component", "mediainfo"))

	if workers <= 0 {
		workers = cfg.Scan.Workers
	}
	return scanner.New(scanner.Config{
		Extensions: cfg.Scan.Extensions,
		Workers:    workers,
	}, sidecar, media, logger.With("component", "scanner"))
}

// tableStyle decorates tables only when w is a terminal.
func tableStyle(w io.Writer) report.Style {
	file, ok := w.(*os.File)
	if !ok {
		return report.StylePlain
	}
	fd := file.Fd()
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		return report.StyleRounded
	}
	return report.StylePlain
}
