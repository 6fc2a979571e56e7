package library

import (
	"fmt"
	"strings"
	"time"

	"github.com/vmunix/eduscan/internal/catalog"
)

const courseColumns = "id, name, directory_path, description, instructor, year, metadata_source, created_at, updated_at"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCourse(r rowScanner) (*Course, error) {
	c := &Course{}
	var source string
	if err := r.Scan(&c.ID, &c.Name, &c.DirectoryPath, &c.Description, &c.Instructor, &c.Year, &source, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	c.MetadataSource = catalog.ParseSource(source)
	return c, nil
}

func upsertCourse(q querier, c *Course) error {
	now := time.Now()
	err := q.QueryRow(`
		INSERT INTO courses (name, directory_path, description, instructor, year, metadata_source, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(directory_path) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			instructor = excluded.instructor,
			year = excluded.year,
			metadata_source = excluded.metadata_source,
			updated_at = excluded.updated_at
		RETURNING id`,
		c.Name, c.DirectoryPath, c.Description, c.Instructor, c.Year, c.MetadataSource.String(), now, now,
	).Scan(&c.ID)
	if err != nil {
		return fmt.Errorf("upsert course %s: %w", c.DirectoryPath, mapSQLiteError(err))
	}
	if err := q.QueryRow("SELECT created_at FROM courses WHERE id = ?", c.ID).Scan(&c.CreatedAt); err != nil {
		return fmt.Errorf("get course %d: %w", c.ID, mapSQLiteError(err))
	}
	c.UpdatedAt = now
	return nil
}

// UpsertCourse inserts a course or updates the one stored for the same directory.
// Sets ID, CreatedAt, and UpdatedAt on the struct.
func (s *Store) UpsertCourse(c *Course) error { return upsertCourse(s.db, c) }

// UpsertCourse inserts or updates a course within a transaction.
func (t *Tx) UpsertCourse(c *Course) error { return upsertCourse(t.tx, c) }

func getCourse(q querier, id int64) (*Course, error) {
	c, err := scanCourse(q.QueryRow("SELECT "+courseColumns+" FROM courses WHERE id = ?", id))
	if err != nil {
		return nil, fmt.Errorf("get course %d: %w", id, mapSQLiteError(err))
	}
	return c, nil
}

// GetCourse retrieves a course by ID.
// Returns ErrNotFound if the course does not exist.
func (s *Store) GetCourse(id int64) (*Course, error) { return getCourse(s.db, id) }

// GetCourse retrieves a course by ID within a transaction.
func (t *Tx) GetCourse(id int64) (*Course, error) { return getCourse(t.tx, id) }

func getCourseByPath(q querier, dir string) (*Course, error) {
	c, err := scanCourse(q.QueryRow("SELECT "+courseColumns+" FROM courses WHERE directory_path = ?", dir))
	if err != nil {
		return nil, fmt.Errorf("get course %s: %w", dir, mapSQLiteError(err))
	}
	return c, nil
}

// GetCourseByPath retrieves a course by its directory.
// Returns ErrNotFound if the course does not exist.
func (s *Store) GetCourseByPath(dir string) (*Course, error) { return getCourseByPath(s.db, dir) }

// GetCourseByPath retrieves a course by its directory within a transaction.
func (t *Tx) GetCourseByPath(dir string) (*Course, error) { return getCourseByPath(t.tx, dir) }

func listCourses(q querier, f CourseFilter) ([]*Course, int, error) {
	var conditions []string
	var args []any

	if f.Name != nil {
		conditions = append(conditions, "name = ?")
		args = append(args, *f.Name)
	}
	if f.NameContains != nil {
		conditions = append(conditions, "name LIKE ? ESCAPE '\\'")
		args = append(args, "%"+escapeLike(*f.NameContains)+"%")
	}
	if f.DirectoryPath != nil {
		conditions = append(conditions, "directory_path = ?")
		args = append(args, *f.DirectoryPath)
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	if err := q.QueryRow("SELECT COUNT(*) FROM courses "+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count courses: %w", err)
	}

	query := "SELECT " + courseColumns + " FROM courses " + whereClause + " ORDER BY name, id"
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.Limit, f.Offset)
	}

	rows, err := q.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list courses: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []*Course
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan course: %w", err)
		}
		results = append(results, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate courses: %w", err)
	}

	return results, total, nil
}

// ListCourses returns courses matching the filter, ordered by name.
// Returns (results, totalCount, error).
func (s *Store) ListCourses(f CourseFilter) ([]*Course, int, error) { return listCourses(s.db, f) }

// ListCourses returns courses matching the filter within a transaction.
func (t *Tx) ListCourses(f CourseFilter) ([]*Course, int, error) { return listCourses(t.tx, f) }

func deleteCourse(q querier, id int64) error {
	if _, err := q.Exec("DELETE FROM courses WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete course %d: %w", id, mapSQLiteError(err))
	}
	return nil
}

// DeleteCourse removes a course; its lessons and provenance rows cascade.
func (s *Store) DeleteCourse(id int64) error { return deleteCourse(s.db, id) }

// DeleteCourse removes a course within a transaction.
func (t *Tx) DeleteCourse(id int64) error { return deleteCourse(t.tx, id) }

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
