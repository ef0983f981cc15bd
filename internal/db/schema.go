package db

import (
	"database/sql"
	"fmt"
)

// SchemaVersion is bumped whenever SchemaSQL changes incompatibly.
const SchemaVersion = 1

// SchemaSQL is the complete ledger schema. Tests load it via GetSchemaSQL()
// so they never drift from what Open creates.
const SchemaSQL = `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER PRIMARY KEY,
	applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Runs (one row per generation run)
CREATE TABLE IF NOT EXISTS runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	root_dir TEXT NOT NULL,
	scripts_dir TEXT NOT NULL,
	output_dir TEXT NOT NULL,
	script_count INTEGER NOT NULL,
	chunk_count INTEGER NOT NULL,
	header_hash TEXT NOT NULL,
	source_hash TEXT NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Run scripts (the table entries a run embedded)
CREATE TABLE IF NOT EXISTS run_scripts (
	run_id INTEGER NOT NULL,
	position INTEGER NOT NULL,
	name TEXT NOT NULL,
	rel_path TEXT NOT NULL,
	bytes INTEGER NOT NULL,
	num_chunks INTEGER NOT NULL CHECK(num_chunks >= 0),
	content_hash TEXT NOT NULL,
	PRIMARY KEY (run_id, position),
	FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_run_scripts_name ON run_scripts(name);
`

// InitSchema creates the ledger tables and stamps the schema version.
func InitSchema(db *sql.DB) error {
	if _, err := db.Exec(SchemaSQL); err != nil {
		return err
	}

	var current int
	err := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&current)
	if err != nil {
		return err
	}
	if current > SchemaVersion {
		return fmt.Errorf("ledger schema version %d is newer than supported version %d", current, SchemaVersion)
	}
	if current < SchemaVersion {
		if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (?)", SchemaVersion); err != nil {
			return err
		}
	}
	return nil
}

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
func GetSchemaSQL() string {
	return SchemaSQL
}
