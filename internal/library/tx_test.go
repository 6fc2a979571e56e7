// internal/library/tx_test.go
package library

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmunix/eduscan/internal/catalog"
)

func TestTx_Commit(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)

	tx, err := store.Begin()
	if err != nil {
		t.Fatalf("Begin failed: %v", err)
	}

	c := &Course{Name: "TX Course", DirectoryPath: "/lib/tx"}
	if err := tx.UpsertCourse(c); err != nil {
		t.Fatalf("UpsertCourse in tx failed: %v", err)
	}
	l := &Lesson{CourseID: c.ID, FilePath: "/lib/tx/1.mp4", FileName: "1.mp4"}
	require.NoError(t, tx.UpsertLesson(l))
	require.NoError(t, tx.SetLessonSources(l.ID, catalog.Provenance{catalog.FieldTitle: catalog.SourceFilename}))

	if err := tx.Commit(); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}

	// Should be visible outside transaction
	got, err := store.GetCourse(c.ID)
	if err != nil {
		t.Fatalf("GetCourse after commit failed: %v", err)
	}
	if got.Name != "TX Course" {
		t.Errorf("expected name 'TX Course', got %q", got.Name)
	}
	_, err = store.GetLessonByPath("/lib/tx/1.mp4")
	assert.NoError(t, err)
}

func TestTx_Rollback(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)

	tx, err := store.Begin()
	if err != nil {
		t.Fatalf("Begin failed: %v", err)
	}

	c := &Course{Name: "TX Course", DirectoryPath: "/lib/tx"}
	if err := tx.UpsertCourse(c); err != nil {
		t.Fatalf("UpsertCourse in tx failed: %v", err)
	}
	id := c.ID

	// Visible inside the transaction.
	_, err = tx.GetCourse(id)
	require.NoError(t, err)

	if err := tx.Rollback(); err != nil {
		t.Fatalf("Rollback failed: %v", err)
	}

	// Should NOT be visible outside transaction
	_, err = store.GetCourse(id)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after rollback, got %v", err)
	}
}

func TestTx_Statistics(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)

	tx, err := store.Begin()
	require.NoError(t, err)
	defer func() { _ = tx.Rollback() }()

	c := &Course{Name: "A", DirectoryPath: "/lib/a"}
	require.NoError(t, tx.UpsertCourse(c))
	require.NoError(t, tx.UpsertLesson(&Lesson{CourseID: c.ID, FilePath: "/lib/a/1.mp4", FileName: "1.mp4", Title: ptr("One")}))

	stats, err := tx.Statistics()
	require.NoError(t, err)
	assert.Equal(t, catalog.Statistics{Courses: 1, Lessons: 1, LessonsWithTitle: 1}, stats)

	require.NoError(t, tx.Clear())
	courses, _, err := tx.ListCourses(CourseFilter{})
	require.NoError(t, err)
	assert.Empty(t, courses)
}
