package library

import (
	"fmt"
	"strings"
	"time"

	"github.com/vmunix/eduscan/internal/catalog"
)

const lessonColumns = "id, course_id, title, file_path, file_name, duration_seconds, description, metadata_source, created_at, updated_at"

func scanLesson(r rowScanner) (*Lesson, error) {
	l := &Lesson{}
	var source string
	if err := r.Scan(&l.ID, &l.CourseID, &l.Title, &l.FilePath, &l.FileName, &l.DurationSeconds, &l.Description, &source, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return nil, err
	}
	l.MetadataSource = catalog.ParseSource(source)
	return l, nil
}

func upsertLesson(q querier, l *Lesson) error {
	now := time.Now()
	err := q.QueryRow(`
		INSERT INTO lessons (course_id, title, file_path, file_name, duration_seconds, description, metadata_source, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(file_path) DO UPDATE SET
			course_id = excluded.course_id,
			title = excluded.title,
			file_name = excluded.file_name,
			duration_seconds = excluded.duration_seconds,
			description = excluded.description,
			metadata_source = excluded.metadata_source,
			updated_at = excluded.updated_at
		RETURNING id`,
		l.CourseID, l.Title, l.FilePath, l.FileName, l.DurationSeconds, l.Description, l.MetadataSource.String(), now, now,
	).Scan(&l.ID)
	if err != nil {
		return fmt.Errorf("upsert lesson %s: %w", l.FilePath, mapSQLiteError(err))
	}
	if err := q.QueryRow("SELECT created_at FROM lessons WHERE id = ?", l.ID).Scan(&l.CreatedAt); err != nil {
		return fmt.Errorf("get lesson %d: %w", l.ID, mapSQLiteError(err))
	}
	l.UpdatedAt = now
	return nil
}

// UpsertLesson inserts a lesson or updates the one stored for the same file.
// Sets ID, CreatedAt, and UpdatedAt on the struct.
// Returns ErrConstraint if the course does not exist.
func (s *Store) UpsertLesson(l *Lesson) error { return upsertLesson(s.db, l) }

// UpsertLesson inserts or updates a lesson within a transaction.
func (t *Tx) UpsertLesson(l *Lesson) error { return upsertLesson(t.tx, l) }

func getLesson(q querier, id int64) (*Lesson, error) {
	l, err := scanLesson(q.QueryRow("SELECT "+lessonColumns+" FROM lessons WHERE id = ?", id))
	if err != nil {
		return nil, fmt.Errorf("get lesson %d: %w", id, mapSQLiteError(err))
	}
	return l, nil
}

// GetLesson retrieves a lesson by ID.
// Returns ErrNotFound if the lesson does not exist.
func (s *Store) GetLesson(id int64) (*Lesson, error) { return getLesson(s.db, id) }

// GetLesson retrieves a lesson by ID within a transaction.
func (t *Tx) GetLesson(id int64) (*Lesson, error) { return getLesson(t.tx, id) }

func getLessonByPath(q querier, path string) (*Lesson, error) {
	l, err := scanLesson(q.QueryRow("SELECT "+lessonColumns+" FROM lessons WHERE file_path = ?", path))
	if err != nil {
		return nil, fmt.Errorf("get lesson %s: %w", path, mapSQLiteError(err))
	}
	return l, nil
}

// GetLessonByPath retrieves a lesson by its video file path.
// Returns ErrNotFound if the lesson does not exist.
func (s *Store) GetLessonByPath(path string) (*Lesson, error) { return getLessonByPath(s.db, path) }

// GetLessonByPath retrieves a lesson by its video file path within a transaction.
func (t *Tx) GetLessonByPath(path string) (*Lesson, error) { return getLessonByPath(t.tx, path) }

func listLessons(q querier, f LessonFilter) ([]*Lesson, int, error) {
	var conditions []string
	var args []any

	if f.CourseID != nil {
		conditions = append(conditions, "course_id = ?")
		args = append(args, *f.CourseID)
	}
	if f.WithoutTitle {
		conditions = append(conditions, "title IS NULL")
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	if err := q.QueryRow("SELECT COUNT(*) FROM lessons "+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count lessons: %w", err)
	}

	query := "SELECT " + lessonColumns + " FROM lessons " + whereClause + " ORDER BY id"
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.Limit, f.Offset)
	}

	rows, err := q.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list lessons: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []*Lesson
	for rows.Next() {
		l, err := scanLesson(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan lesson: %w", err)
		}
		results = append(results, l)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate lessons: %w", err)
	}

	return results, total, nil
}

// ListLessons returns lessons matching the filter in insertion order.
// Returns (results, totalCount, error).
func (s *Store) ListLessons(f LessonFilter) ([]*Lesson, int, error) { return listLessons(s.db, f) }

// ListLessons returns lessons matching the filter within a transaction.
func (t *Tx) ListLessons(f LessonFilter) ([]*Lesson, int, error) { return listLessons(t.tx, f) }

func pruneLessons(q querier, courseID int64, keep []string) (int64, error) {
	query := "DELETE FROM lessons WHERE course_id = ?"
	args := []any{courseID}
	if len(keep) > 0 {
		query += " AND file_path NOT IN (?" + strings.Repeat(", ?", len(keep)-1) + ")"
		for _, p := range keep {
			args = append(args, p)
		}
	}
	result, err := q.Exec(query, args...)
	if err != nil {
		return 0, fmt.Errorf("prune lessons of course %d: %w", courseID, mapSQLiteError(err))
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}

// PruneLessons deletes lessons of the course whose file is not in keep.
// Returns the number of lessons removed.
func (s *Store) PruneLessons(courseID int64, keep []string) (int64, error) {
	return pruneLessons(s.db, courseID, keep)
}

// PruneLessons deletes stale lessons within a transaction.
func (t *Tx) PruneLessons(courseID int64, keep []string) (int64, error) {
	return pruneLessons(t.tx, courseID, keep)
}
