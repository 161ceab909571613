package sqlite

// initSchema creates the database schema if it doesn't exist.
func (db *DB) initSchema() error {
	schema := `
	-- Text generation requests and their outcome
	CREATE TABLE IF NOT EXISTS generations (
		id TEXT PRIMARY KEY,
		prompt TEXT NOT NULL,
		output TEXT NOT NULL DEFAULT '',
		error TEXT NOT NULL DEFAULT '',
		accepted INTEGER NOT NULL DEFAULT 0,
		duration_ms INTEGER NOT NULL DEFAULT 0,
		file TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_generations_created_at ON generations(created_at DESC);

	-- Files opened from the menu, most recent first
	CREATE TABLE IF NOT EXISTS recent_files (
		path TEXT PRIMARY KEY,
		opened_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_recent_files_opened_at ON recent_files(opened_at DESC);
	`

	_, err := db.conn.Exec(schema)
	return err
}
