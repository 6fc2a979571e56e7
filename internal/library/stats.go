package library

import (
	"fmt"

	"github.com/vmunix/eduscan/internal/catalog"
)

func statistics(q querier) (catalog.Statistics, error) {
	var s catalog.Statistics
	err := q.QueryRow(`
		SELECT
			(SELECT COUNT(*) FROM courses),
			(SELECT COUNT(*) FROM lessons),
			(SELECT COUNT(*) FROM lessons WHERE title IS NOT NULL),
			(SELECT COUNT(DISTINCT course_id) FROM lessons WHERE duration_seconds IS NOT NULL)`,
	).Scan(&s.Courses, &s.Lessons, &s.LessonsWithTitle, &s.CoursesWithDuration)
	if err != nil {
		return catalog.Statistics{}, fmt.Errorf("statistics: %w", err)
	}
	return s, nil
}

// Statistics returns library-wide counts over everything stored.
func (s *Store) Statistics() (catalog.Statistics, error) { return statistics(s.db) }

// Statistics returns library-wide counts within a transaction.
func (t *Tx) Statistics() (catalog.Statistics, error) { return statistics(t.tx) }

func clearAll(q querier) error {
	for _, table := range []string{"metadata_sources", "lessons", "courses"} {
		if _, err := q.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("clear %s: %w", table, mapSQLiteError(err))
		}
	}
	return nil
}

// Clear deletes every course, lesson and provenance row. Scan history is kept.
func (s *Store) Clear() error { return clearAll(s.db) }

// Clear deletes all library rows within a transaction.
func (t *Tx) Clear() error { return clearAll(t.tx) }
