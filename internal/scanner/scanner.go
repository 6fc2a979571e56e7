// Package scanner walks a library root and assembles courses and lessons.
package scanner

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/vmunix/eduscan/internal/catalog"
	"github.com/vmunix/eduscan/internal/mediainfo"
	"github.com/vmunix/eduscan/internal/nfo"
	"github.com/vmunix/eduscan/internal/resolve"
)

// Config for the scanner.
type Config struct {
	// Extensions classified as video, without dot, matched case-insensitively.
	// Empty means DefaultExtensions.
	Extensions []string
	// Workers bounds parallel lesson resolution within a course. <= 1 is sequential.
	Workers int
}

// Scanner assembles courses from a directory tree.
type Scanner struct {
	sidecar *nfo.Reader
	media   *mediainfo.Reader
	videos  videoSet
	workers int
	log     *slog.Logger
}

// New creates a scanner. sidecar and media may be nil to skip those sources.
func New(cfg Config, sidecar *nfo.Reader, media *mediainfo.Reader, log *slog.Logger) *Scanner {
	if log == nil {
		log = slog.Default()
	}
	if sidecar == nil {
		sidecar = nfo.NewReader(nfo.Locator{}, log)
	}
	if media == nil {
		media = mediainfo.NewReader(mediainfo.Disabled{}, 0, log)
	}
	return &Scanner{
		sidecar: sidecar,
		media:   media,
		videos:  newVideoSet(cfg.Extensions),
		workers: cfg.Workers,
		log:     log,
	}
}

// Result is the outcome of one scan.
type Result struct {
	ID        string
	Root      string
	Courses   []*catalog.Course
	Canceled  bool
	StartedAt time.Time
	Elapsed   time.Duration
}

// Scan assembles one course per immediate child directory of root that holds
// at least one video. A missing root yields zero courses, not an error.
// Cancellation is checked between courses; a course already being assembled
// is completed. On cancellation the result holds the courses assembled so far
// and the context error is returned with it.
func (s *Scanner) Scan(ctx context.Context, root string) (*Result, error) {
	res := &Result{ID: uuid.NewString(), Root: root, StartedAt: time.Now()}
	defer func() { res.Elapsed = time.Since(res.StartedAt) }()

	if abs, err := filepath.Abs(root); err == nil {
		res.Root = abs
	}
	log := s.log.With("scan_id", res.ID)

	info, err := os.Stat(res.Root)
	if err != nil || !info.IsDir() {
		log.Warn("library path does not exist", "path", res.Root)
		return res, nil
	}

	entries, err := os.ReadDir(res.Root)
	if err != nil {
		log.Warn("failed to read library path", "path", res.Root, "error", err)
		return res, nil
	}

	log.Info("scan started", "root", res.Root)
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			res.Canceled = true
			log.Info("scan canceled", "courses", len(res.Courses))
			return res, err
		}

		dir := filepath.Join(res.Root, e.Name())
		if !isDir(e, dir) {
			continue
		}

		// A course in progress is finished whole: probes never see the cancel.
		course, err := s.ScanCourse(context.WithoutCancel(ctx), dir)
		if err != nil {
			return res, err
		}
		if course == nil {
			log.Debug("no videos, skipping", "dir", dir)
			continue
		}
		res.Courses = append(res.Courses, course)
	}

	if err := ctx.Err(); err != nil {
		res.Canceled = true
		log.Info("scan canceled", "courses", len(res.Courses))
		return res, err
	}

	log.Info("scan complete", "courses", len(res.Courses), "elapsed", time.Since(res.StartedAt).Round(time.Millisecond))
	return res, nil
}

// ScanCourse assembles the course rooted at dir.
// Returns nil when dir holds no videos.
func (s *Scanner) ScanCourse(ctx context.Context, dir string) (*catalog.Course, error) {
	videos := findVideos(dir, s.videos, s.log)
	if len(videos) == 0 {
		return nil, nil
	}

	course := catalog.NewCourse(dir)
	resolve.Course(course, s.sidecar.Course(dir))

	claimed := s.sidecar.Locator().Claimed(dir, videos)
	course.Lessons = make([]*catalog.Lesson, len(videos))

	var g errgroup.Group
	if s.workers > 1 {
		g.SetLimit(s.workers)
	} else {
		g.SetLimit(1)
	}
	for i, path := range videos {
		g.Go(func() error {
			course.Lessons[i] = s.lesson(ctx, path, claimed)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("resolve lessons of %s: %w", dir, err)
	}

	s.log.Info("course assembled",
		"course", course.Name,
		"source", course.Source.String(),
		"lessons", len(course.Lessons),
		"with_title", course.LessonsComplete(),
	)
	return course, nil
}

func (s *Scanner) lesson(ctx context.Context, path string, claimed map[string]bool) *catalog.Lesson {
	l := catalog.NewLesson(path)
	resolve.Lesson(l, resolve.LessonInputs{
		Sidecar: s.sidecar.Lesson(path, claimed),
		Container: func() *mediainfo.Info {
			return s.media.Read(ctx, path)
		},
	})
	s.log.Debug("lesson resolved", "path", path, "source", l.Source.String())
	return l
}

// isDir follows symlinks so linked course directories are scanned.
func isDir(e os.DirEntry, path string) bool {
	if e.IsDir() {
		return true
	}
	if e.Type()&os.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
