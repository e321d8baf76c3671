package db

import (
	"database/sql"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/michaelscutari/pathfold/internal/entry"
	"github.com/michaelscutari/pathfold/internal/pathutil"
)

const insertListingSQL = `INSERT INTO listings (dir, recorded_at, entry_count, total_size, total_blocks, error_count) VALUES (?, ?, ?, ?, ?, ?)`
const insertEntrySQL = `INSERT INTO entries (listing_id, name, kind, size, blocks, mtime, atime, ctime) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
const insertErrorSQL = `INSERT INTO scan_errors (listing_id, path, message) VALUES (?, ?, ?)`

const maxErrorsSampled = 1000

// RecordListing stores a listing with its entries and sampled errors in one
// transaction. The new listing ID is returned and stored in l.ID.
func RecordListing(db *sql.DB, l *entry.Listing) (int64, error) {
	dir := pathutil.Normalize(l.Dir)
	sum := entry.Summarize(l.Entries)

	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(insertListingSQL, dir, l.RecordedAt.Unix(), len(l.Entries), sum.TotalSize, sum.TotalBlocks, len(l.Errors))
	if err != nil {
		return 0, fmt.Errorf("failed to insert listing: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read listing id: %w", err)
	}

	entryStmt, err := tx.Prepare(insertEntrySQL)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare entry statement: %w", err)
	}
	defer entryStmt.Close()

	for _, e := range l.Entries {
		if _, err := entryStmt.Exec(id, e.Name, e.Kind, e.Size, e.Blocks,
			e.Modified.Unix(), e.Accessed.Unix(), e.Changed.Unix()); err != nil {
			return 0, fmt.Errorf("failed to insert entry %q: %w", e.Name, err)
		}
	}

	errorStmt, err := tx.Prepare(insertErrorSQL)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare error statement: %w", err)
	}
	defer errorStmt.Close()

	for i, se := range l.Errors {
		if i >= maxErrorsSampled {
			break
		}
		if _, err := errorStmt.Exec(id, se.Path, se.Message); err != nil {
			return 0, fmt.Errorf("failed to insert error: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit listing: %w", err)
	}

	if cache := getDirCache(db); cache != nil {
		cache.Set(dir, id)
	}
	l.ID = id

	logrus.WithFields(logrus.Fields{
		"dir":     dir,
		"id":      id,
		"entries": len(l.Entries),
		"errors":  len(l.Errors),
	}).Debug("recorded listing")

	return id, nil
}

// PruneListings deletes all but the newest keep listings of dir and returns
// how many were removed. keep <= 0 disables pruning.
func PruneListings(db *sql.DB, dir string, keep int) (int, error) {
	if keep <= 0 {
		return 0, nil
	}
	dir = pathutil.Normalize(dir)

	rows, err := db.Query(`SELECT id FROM listings WHERE dir = ? ORDER BY id DESC LIMIT -1 OFFSET ?`, dir, keep)
	if err != nil {
		return 0, fmt.Errorf("failed to find old listings: %w", err)
	}
	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return 0, fmt.Errorf("scan failed: %w", err)
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, id := range ids {
		for _, q := range []string{
			`DELETE FROM entries WHERE listing_id = ?`,
			`DELETE FROM scan_errors WHERE listing_id = ?`,
			`DELETE FROM listings WHERE id = ?`,
		} {
			if _, err := tx.Exec(q, id); err != nil {
				return 0, fmt.Errorf("failed to remove listing %d: %w", id, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit prune: %w", err)
	}
	return len(ids), nil
}
