// Package migrations provides embedded SQL migration files.
package migrations

import (
	_ "embed"
)

// InitialSQL creates the courses, lessons, metadata_sources and scans tables.
// Every statement is idempotent, so it is safe to run on each open.
//
//go:embed sql/001_initial.sql
var InitialSQL string
