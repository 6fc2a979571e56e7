// Package ingest writes scanned courses into the library store.
package ingest

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/vmunix/eduscan/internal/catalog"
	"github.com/vmunix/eduscan/internal/library"
	"github.com/vmunix/eduscan/internal/scanner"
)

// Config for the ingester.
type Config struct {
	// Prune removes stored lessons of a course whose video was not found in this scan.
	Prune bool
}

// Ingester persists scan results.
type Ingester struct {
	library *library.Store
	prune   bool
	log     *slog.Logger
}

// New creates a new ingester.
func New(db *sql.DB, cfg Config, log *slog.Logger) *Ingester {
	if log == nil {
		log = slog.Default()
	}
	return &Ingester{
		library: library.NewStore(db),
		prune:   cfg.Prune,
		log:     log,
	}
}

// Result counts what was written.
type Result struct {
	Courses int
	Lessons int
	Pruned  int64
}

// Store upserts every course and then its lessons, one transaction per course.
// Persistence errors are returned wrapped; courses committed before the
// failure stay stored.
func (i *Ingester) Store(ctx context.Context, courses []*catalog.Course) (*Result, error) {
	res := &Result{}
	for _, c := range courses {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		pruned, err := i.storeCourse(c)
		if err != nil {
			return res, err
		}
		res.Courses++
		res.Lessons += len(c.Lessons)
		res.Pruned += pruned
	}
	i.log.Info("stored scan results", "courses", res.Courses, "lessons", res.Lessons, "pruned", res.Pruned)
	return res, nil
}

func (i *Ingester) storeCourse(c *catalog.Course) (int64, error) {
	tx, err := i.library.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	row := library.CourseFromCatalog(c)
	if err := tx.UpsertCourse(row); err != nil {
		return 0, fmt.Errorf("upsert course: %w", err)
	}
	if err := tx.SetCourseSources(row.ID, c.Provenance); err != nil {
		return 0, fmt.Errorf("course sources: %w", err)
	}

	paths := make([]string, 0, len(c.Lessons))
	for _, l := range c.Lessons {
		lesson := library.LessonFromCatalog(row.ID, l)
		if err := tx.UpsertLesson(lesson); err != nil {
			return 0, fmt.Errorf("upsert lesson: %w", err)
		}
		if err := tx.SetLessonSources(lesson.ID, l.Provenance); err != nil {
			return 0, fmt.Errorf("lesson sources: %w", err)
		}
		paths = append(paths, l.Path)
	}

	var pruned int64
	if i.prune {
		if pruned, err = tx.PruneLessons(row.ID, paths); err != nil {
			return 0, fmt.Errorf("prune lessons: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	i.log.Debug("course stored", "course_id", row.ID, "course", row.Name, "lessons", len(c.Lessons))
	return pruned, nil
}

// RecordScan stores the scan run in the scan history.
func (i *Ingester) RecordScan(r *scanner.Result) error {
	lessons := 0
	for _, c := range r.Courses {
		lessons += len(c.Lessons)
	}
	return i.library.RecordScan(&library.Scan{
		ID:         r.ID,
		Root:       r.Root,
		StartedAt:  r.StartedAt,
		FinishedAt: r.StartedAt.Add(r.Elapsed),
		Courses:    len(r.Courses),
		Lessons:    lessons,
		Canceled:   r.Canceled,
	})
}

// Clear removes every stored course and lesson.
func (i *Ingester) Clear() error {
	start := time.Now()
	if err := i.library.Clear(); err != nil {
		return err
	}
	i.log.Info("library cleared", "elapsed", time.Since(start).Round(time.Millisecond))
	return nil
}
