package library

import (
	"fmt"
	"sort"

	"github.com/vmunix/eduscan/internal/catalog"
)

// owner selects the metadata_sources column a provenance row hangs off.
type owner string

const (
	ownerCourse owner = "course_id"
	ownerLesson owner = "lesson_id"
)

func setFieldSources(q querier, col owner, id int64, prov catalog.Provenance) error {
	if _, err := q.Exec("DELETE FROM metadata_sources WHERE "+string(col)+" = ?", id); err != nil {
		return fmt.Errorf("clear sources of %s %d: %w", col, id, mapSQLiteError(err))
	}

	fields := make([]string, 0, len(prov))
	for f := range prov {
		fields = append(fields, string(f))
	}
	sort.Strings(fields)

	for _, f := range fields {
		kind := prov[catalog.Field(f)]
		if kind == catalog.SourceNone {
			continue
		}
		if _, err := q.Exec(
			"INSERT INTO metadata_sources ("+string(col)+", field, source) VALUES (?, ?, ?)",
			id, f, kind.String(),
		); err != nil {
			return fmt.Errorf("insert source %s of %s %d: %w", f, col, id, mapSQLiteError(err))
		}
	}
	return nil
}

func fieldSources(q querier, col owner, id int64) (catalog.Provenance, error) {
	rows, err := q.Query("SELECT field, source FROM metadata_sources WHERE "+string(col)+" = ? ORDER BY id", id)
	if err != nil {
		return nil, fmt.Errorf("list sources of %s %d: %w", col, id, err)
	}
	defer func() { _ = rows.Close() }()

	prov := catalog.Provenance{}
	for rows.Next() {
		var field, source string
		if err := rows.Scan(&field, &source); err != nil {
			return nil, fmt.Errorf("scan source: %w", err)
		}
		prov[catalog.Field(field)] = catalog.ParseSourceKind(source)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sources: %w", err)
	}
	return prov, nil
}

// SetCourseSources replaces the per-field provenance rows of a course.
func (s *Store) SetCourseSources(courseID int64, prov catalog.Provenance) error {
	return setFieldSources(s.db, ownerCourse, courseID, prov)
}

// SetCourseSources replaces course provenance within a transaction.
func (t *Tx) SetCourseSources(courseID int64, prov catalog.Provenance) error {
	return setFieldSources(t.tx, ownerCourse, courseID, prov)
}

// SetLessonSources replaces the per-field provenance rows of a lesson.
func (s *Store) SetLessonSources(lessonID int64, prov catalog.Provenance) error {
	return setFieldSources(s.db, ownerLesson, lessonID, prov)
}

// SetLessonSources replaces lesson provenance within a transaction.
func (t *Tx) SetLessonSources(lessonID int64, prov catalog.Provenance) error {
	return setFieldSources(t.tx, ownerLesson, lessonID, prov)
}

// CourseSources returns which source supplied each stored field of a course.
func (s *Store) CourseSources(courseID int64) (catalog.Provenance, error) {
	return fieldSources(s.db, ownerCourse, courseID)
}

// LessonSources returns which source supplied each stored field of a lesson.
func (s *Store) LessonSources(lessonID int64) (catalog.Provenance, error) {
	return fieldSources(s.db, ownerLesson, lessonID)
}
