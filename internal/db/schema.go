package db

import (
	"database/sql"
	"fmt"
)

const listingsTableDDL = `
CREATE TABLE IF NOT EXISTS listings (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    dir TEXT NOT NULL,
    recorded_at INTEGER NOT NULL,
    entry_count INTEGER NOT NULL DEFAULT 0,
    total_size INTEGER NOT NULL DEFAULT 0,
    total_blocks INTEGER NOT NULL DEFAULT 0,
    error_count INTEGER NOT NULL DEFAULT 0
);
`

const entriesTableDDL = `
CREATE TABLE IF NOT EXISTS entries (
    id INTEGER PRIMARY KEY,
    listing_id INTEGER NOT NULL,
    name TEXT NOT NULL,
    kind INTEGER NOT NULL,
    size INTEGER NOT NULL,
    blocks INTEGER NOT NULL,
    mtime INTEGER NOT NULL,
    atime INTEGER NOT NULL,
    ctime INTEGER NOT NULL
);
`

const scanErrorsTableDDL = `
CREATE TABLE IF NOT EXISTS scan_errors (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    listing_id INTEGER NOT NULL,
    path TEXT NOT NULL,
    message TEXT NOT NULL
);
`

const listingsDirIndexDDL = `CREATE INDEX IF NOT EXISTS idx_listings_dir ON listings(dir, id DESC);`
const entriesListingIndexDDL = `CREATE INDEX IF NOT EXISTS idx_entries_listing ON entries(listing_id);`
const entriesListingSizeIndexDDL = `CREATE INDEX IF NOT EXISTS idx_entries_listing_size ON entries(listing_id, size DESC);`
const scanErrorsListingIndexDDL = `CREATE INDEX IF NOT EXISTS idx_scan_errors_listing ON scan_errors(listing_id);`

// InitSchema creates all tables and indexes in the database.
func InitSchema(db *sql.DB) error {
	ddls := []string{
		listingsTableDDL,
		entriesTableDDL,
		scanErrorsTableDDL,
		listingsDirIndexDDL,
		entriesListingIndexDDL,
		entriesListingSizeIndexDDL,
		scanErrorsListingIndexDDL,
	}

	for _, ddl := range ddls {
		if _, err := db.Exec(ddl); err != nil {
			return fmt.Errorf("failed to execute DDL: %w", err)
		}
	}

	return nil
}

// ApplyWritePragmas configures SQLite for recording listings.
func ApplyWritePragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA temp_store = MEMORY",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to apply pragma %q: %w", pragma, err)
		}
	}

	return nil
}

// ApplyReadPragmas configures SQLite for read-only sessions.
func ApplyReadPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA temp_store = MEMORY",
		"PRAGMA query_only = ON",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to apply pragma %q: %w", pragma, err)
		}
	}

	return nil
}
