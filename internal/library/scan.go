package library

import (
	"fmt"
)

// RecordScan stores a scan run. Returns ErrDuplicate if the ID was already recorded.
func (s *Store) RecordScan(sc *Scan) error {
	_, err := s.db.Exec(`
		INSERT INTO scans (id, root, started_at, finished_at, courses, lessons, canceled)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		sc.ID, sc.Root, sc.StartedAt, sc.FinishedAt, sc.Courses, sc.Lessons, sc.Canceled,
	)
	if err != nil {
		return fmt.Errorf("record scan %s: %w", sc.ID, mapSQLiteError(err))
	}
	return nil
}

// ListScans returns the most recent scan runs first. limit <= 0 returns all.
func (s *Store) ListScans(limit int) ([]*Scan, error) {
	query := "SELECT id, root, started_at, finished_at, courses, lessons, canceled FROM scans ORDER BY started_at DESC, id"
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("list scans: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []*Scan
	for rows.Next() {
		sc := &Scan{}
		if err := rows.Scan(&sc.ID, &sc.Root, &sc.StartedAt, &sc.FinishedAt, &sc.Courses, &sc.Lessons, &sc.Canceled); err != nil {
			return nil, fmt.Errorf("scan scans row: %w", err)
		}
		results = append(results, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate scans: %w", err)
	}
	return results, nil
}
