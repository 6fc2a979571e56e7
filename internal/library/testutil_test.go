// internal/library/testutil_test.go
package library

import (
	"database/sql"
	_ "embed"
	"testing"

	"github.com/vmunix/eduscan/internal/catalog"
)

//go:embed testdata/schema.sql
var testSchema string

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:?_pragma=foreign_keys(1)")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	// Each connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	if _, err := db.Exec(testSchema); err != nil {
		t.Fatalf("apply schema: %v", err)
	}
	return db
}

// ptr is a helper to create pointer to value
func ptr[T any](v T) *T {
	return &v
}

func addCourse(t *testing.T, store *Store, dir, name string) *Course {
	t.Helper()
	c := &Course{Name: name, DirectoryPath: dir, MetadataSource: catalog.Source{DirectoryName: true}}
	if err := store.UpsertCourse(c); err != nil {
		t.Fatalf("UpsertCourse: %v", err)
	}
	return c
}
