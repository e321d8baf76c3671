package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/michaelscutari/pathfold/internal/entry"
	"github.com/michaelscutari/pathfold/internal/pathutil"
)

// ErrNoListing is returned when a directory has never been recorded.
var ErrNoListing = errors.New("no listing recorded")

// LatestListingID returns the ID of the newest listing of dir.
func LatestListingID(db *sql.DB, dir string) (int64, error) {
	dir = pathutil.Normalize(dir)
	cache := getDirCache(db)
	if cache != nil {
		if id, ok := cache.Get(dir); ok {
			return id, nil
		}
	}

	var id int64
	err := db.QueryRow(`SELECT id FROM listings WHERE dir = ? ORDER BY id DESC LIMIT 1`, dir).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("%w for %s", ErrNoListing, dir)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to find listing: %w", err)
	}
	if cache != nil {
		cache.Set(dir, id)
	}
	return id, nil
}

// LoadEntries loads the entries of the newest listing of dir.
func LoadEntries(db *sql.DB, dir, sortBy string, limit int) ([]entry.Entry, error) {
	id, err := LatestListingID(db, dir)
	if err != nil {
		return nil, err
	}
	return LoadListingEntries(db, id, sortBy, limit)
}

// LoadListingEntries loads the entries of a specific listing.
func LoadListingEntries(db *sql.DB, listingID int64, sortBy string, limit int) ([]entry.Entry, error) {
	orderClause := "e.size DESC"
	switch sortBy {
	case "name":
		orderClause = "e.name ASC"
	case "size":
		orderClause = "e.size DESC"
	case "blocks", "disk":
		orderClause = "e.blocks DESC"
	case "mtime", "time":
		orderClause = "e.mtime DESC"
	case "kind":
		orderClause = "e.kind DESC, e.name ASC"
	}
	if limit <= 0 {
		limit = -1
	}

	query := fmt.Sprintf(`
		SELECT l.dir, e.name, e.kind, e.size, e.blocks, e.mtime, e.atime, e.ctime
		FROM entries e
		JOIN listings l ON l.id = e.listing_id
		WHERE e.listing_id = ?
		ORDER BY %s
		LIMIT ?
	`, orderClause)

	rows, err := db.Query(query, listingID, limit)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var entries []entry.Entry
	for rows.Next() {
		var e entry.Entry
		var dir string
		var mtime, atime, ctime int64
		if err := rows.Scan(&dir, &e.Name, &e.Kind, &e.Size, &e.Blocks, &mtime, &atime, &ctime); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		e.Path, err = pathutil.Join(dir, e.Name)
		if err != nil {
			return nil, err
		}
		e.Modified = time.Unix(mtime, 0)
		e.Accessed = time.Unix(atime, 0)
		e.Changed = time.Unix(ctime, 0)
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// GetListing retrieves the metadata of one listing.
func GetListing(db *sql.DB, id int64) (*entry.ListingMeta, error) {
	var m entry.ListingMeta
	var recordedAt int64
	err := db.QueryRow(`
		SELECT id, dir, recorded_at, entry_count, total_size, error_count
		FROM listings WHERE id = ?
	`, id).Scan(&m.ID, &m.Dir, &recordedAt, &m.EntryCount, &m.TotalSize, &m.ErrorCount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w with id %d", ErrNoListing, id)
	}
	if err != nil {
		return nil, err
	}
	m.RecordedAt = time.Unix(recordedAt, 0)
	return &m, nil
}

// ListingHistory returns listing metadata newest first. An empty dir
// returns listings of every directory.
func ListingHistory(db *sql.DB, dir string, limit int) ([]entry.ListingMeta, error) {
	if limit <= 0 {
		limit = -1
	}

	var (
		rows *sql.Rows
		err  error
	)
	const cols = `SELECT id, dir, recorded_at, entry_count, total_size, error_count FROM listings`
	if dir == "" {
		rows, err = db.Query(cols+` ORDER BY id DESC LIMIT ?`, limit)
	} else {
		rows, err = db.Query(cols+` WHERE dir = ? ORDER BY id DESC LIMIT ?`, pathutil.Normalize(dir), limit)
	}
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var metas []entry.ListingMeta
	for rows.Next() {
		var m entry.ListingMeta
		var recordedAt int64
		if err := rows.Scan(&m.ID, &m.Dir, &recordedAt, &m.EntryCount, &m.TotalSize, &m.ErrorCount); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		m.RecordedAt = time.Unix(recordedAt, 0)
		metas = append(metas, m)
	}
	return metas, rows.Err()
}

// LoadErrors returns the sampled errors of a listing.
func LoadErrors(db *sql.DB, listingID int64) ([]entry.ScanError, error) {
	rows, err := db.Query(`SELECT path, message FROM scan_errors WHERE listing_id = ? ORDER BY id`, listingID)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var errs []entry.ScanError
	for rows.Next() {
		var se entry.ScanError
		if err := rows.Scan(&se.Path, &se.Message); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		errs = append(errs, se)
	}
	return errs, rows.Err()
}
