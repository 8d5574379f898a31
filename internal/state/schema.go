package state

import (
	"database/sql"
)

const currentSchemaVersion = 1

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS player_state (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			volume REAL NOT NULL DEFAULT 0.7,
			theme TEXT NOT NULL DEFAULT ''
		);

		CREATE TABLE IF NOT EXISTS cached_surahs (
			edition TEXT NOT NULL,
			surah INTEGER NOT NULL,
			name TEXT NOT NULL,
			english_name TEXT NOT NULL,
			verse_count INTEGER NOT NULL,
			revelation_type TEXT,
			fetched_at INTEGER NOT NULL,
			PRIMARY KEY (edition, surah)
		);

		CREATE TABLE IF NOT EXISTS cached_verses (
			edition TEXT NOT NULL,
			surah INTEGER NOT NULL,
			number_in_surah INTEGER NOT NULL,
			number INTEGER NOT NULL,
			text TEXT NOT NULL,
			juz INTEGER,
			page INTEGER,
			PRIMARY KEY (edition, surah, number_in_surah)
		);
	`)
	if err != nil {
		return err
	}

	// Set initial version if not exists
	_, err = db.Exec(`
		INSERT OR IGNORE INTO schema_version (version) VALUES (?)
	`, currentSchemaVersion)
	return err
}
