package sqlite

import (
	"path/filepath"
	"strings"
	"time"
)

// maxRecentFiles is the number of recently opened files remembered.
const maxRecentFiles = 50

// RecentFile is a file opened in the editor.
type RecentFile struct {
	Path     string
	OpenedAt time.Time
}

// RecentFileStore remembers recently opened files for the menu.
type RecentFileStore struct {
	db *DB
}

// NewRecentFileStore creates a new recent file store.
func NewRecentFileStore(db *DB) *RecentFileStore {
	return &RecentFileStore{db: db}
}

// Touch records that path was opened now. Opening a file again moves it to
// the top instead of adding a duplicate.
func (s *RecentFileStore) Touch(path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}

	_, err := s.db.conn.Exec(`
		INSERT INTO recent_files (path, opened_at) VALUES (?, ?)
		ON CONFLICT(path) DO UPDATE SET opened_at = excluded.opened_at
	`, path, time.Now().UTC().Format(timeFormat))
	if err != nil {
		return err
	}

	_, _ = s.db.conn.Exec(`
		DELETE FROM recent_files
		WHERE path NOT IN (
			SELECT path FROM recent_files
			ORDER BY opened_at DESC
			LIMIT ?
		)
	`, maxRecentFiles)

	return nil
}

// List returns recently opened files, most recent first.
func (s *RecentFileStore) List(limit int) ([]RecentFile, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.conn.Query(`
		SELECT path, opened_at
		FROM recent_files
		ORDER BY opened_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var files []RecentFile
	for rows.Next() {
		var (
			f        RecentFile
			openedAt string
		)
		if err := rows.Scan(&f.Path, &openedAt); err != nil {
			continue
		}
		if ts, err := time.Parse(timeFormat, openedAt); err == nil {
			f.OpenedAt = ts.Local()
		}
		files = append(files, f)
	}

	return files, rows.Err()
}

// Remove forgets path, for files that no longer exist.
func (s *RecentFileStore) Remove(path string) error {
	_, err := s.db.conn.Exec("DELETE FROM recent_files WHERE path = ?", path)
	return err
}
