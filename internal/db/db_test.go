package db

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/michaelscutari/pathfold/internal/entry"

	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	// Every connection to :memory: is a separate database.
	database.SetMaxOpenConns(1)
	t.Cleanup(func() { database.Close() })

	if err := InitSchema(database); err != nil {
		t.Fatalf("init schema: %v", err)
	}
	return database
}

func testListing(dir string, at time.Time) *entry.Listing {
	mtime := time.Unix(1700000000, 0)
	mk := func(name string, kind entry.Kind, size int64, mod time.Time) entry.Entry {
		return entry.Entry{
			Name:   name,
			Kind:   kind,
			Size:   size,
			Blocks: 4096,
			Times:  entry.Times{Modified: mod, Accessed: mod, Changed: mod},
		}
	}
	return &entry.Listing{
		Dir:        dir,
		RecordedAt: at,
		Entries: []entry.Entry{
			mk("small.txt", entry.KindFile, 10, mtime),
			mk("big.bin", entry.KindFile, 5000, mtime.Add(-time.Hour)),
			mk("src", entry.KindDir, 4096, mtime.Add(time.Hour)),
		},
		Errors: []entry.ScanError{{Path: dir + "/locked", Message: "permission denied"}},
	}
}

func TestRecordAndLoadEntries(t *testing.T) {
	database := openTestDB(t)

	l := testListing("/data/project/", time.Unix(1700000100, 0))
	id, err := RecordListing(database, l)
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if id == 0 || l.ID != id {
		t.Fatalf("listing id not set: id=%d l.ID=%d", id, l.ID)
	}

	entries, err := LoadEntries(database, "/data/project", "size", 10)
	if err != nil {
		t.Fatalf("load entries: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].Name != "big.bin" {
		t.Fatalf("expected largest item first, got %s", entries[0].Name)
	}
	if entries[0].Path != "/data/project/big.bin" {
		t.Fatalf("unexpected path %q", entries[0].Path)
	}

	byName, err := LoadEntries(database, "/data/./project", "name", 0)
	if err != nil {
		t.Fatalf("load by name: %v", err)
	}
	if byName[0].Name != "big.bin" || byName[2].Name != "src" {
		t.Fatalf("unexpected name order: %s, %s", byName[0].Name, byName[2].Name)
	}

	byTime, err := LoadEntries(database, "/data/project", "mtime", 1)
	if err != nil {
		t.Fatalf("load by mtime: %v", err)
	}
	if len(byTime) != 1 || byTime[0].Name != "src" {
		t.Fatalf("expected newest entry src, got %+v", byTime)
	}
	if !byTime[0].Modified.Equal(time.Unix(1700003600, 0)) {
		t.Fatalf("modified time lost: %v", byTime[0].Modified)
	}

	meta, err := GetListing(database, id)
	if err != nil {
		t.Fatalf("get listing: %v", err)
	}
	if meta.Dir != "/data/project" || meta.EntryCount != 3 || meta.TotalSize != 9106 || meta.ErrorCount != 1 {
		t.Fatalf("unexpected meta: %+v", meta)
	}

	errs, err := LoadErrors(database, id)
	if err != nil {
		t.Fatalf("load errors: %v", err)
	}
	if len(errs) != 1 || errs[0].Message != "permission denied" {
		t.Fatalf("unexpected errors: %+v", errs)
	}
}

func TestLoadEntriesUnknownDir(t *testing.T) {
	database := openTestDB(t)

	if _, err := LoadEntries(database, "/nowhere", "size", 10); !errors.Is(err, ErrNoListing) {
		t.Fatalf("expected ErrNoListing, got %v", err)
	}
	if _, err := GetListing(database, 42); !errors.Is(err, ErrNoListing) {
		t.Fatalf("expected ErrNoListing, got %v", err)
	}
}

func TestLatestListingWins(t *testing.T) {
	database := openTestDB(t)

	first := testListing("/srv", time.Unix(1700000000, 0))
	if _, err := RecordListing(database, first); err != nil {
		t.Fatalf("record first: %v", err)
	}
	second := &entry.Listing{Dir: "/srv", RecordedAt: time.Unix(1700000500, 0), Entries: []entry.Entry{{Name: "only"}}}
	secondID, err := RecordListing(database, second)
	if err != nil {
		t.Fatalf("record second: %v", err)
	}

	id, err := LatestListingID(database, "/srv/")
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if id != secondID {
		t.Fatalf("latest = %d, want %d", id, secondID)
	}

	history, err := ListingHistory(database, "/srv", 0)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 2 || history[0].ID != secondID {
		t.Fatalf("unexpected history: %+v", history)
	}

	all, err := ListingHistory(database, "", 1)
	if err != nil {
		t.Fatalf("history all: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected limit to apply, got %d", len(all))
	}
}

func TestPruneListings(t *testing.T) {
	database := openTestDB(t)

	var ids []int64
	for i := 0; i < 4; i++ {
		id, err := RecordListing(database, testListing("/var/log", time.Unix(int64(1700000000+i), 0)))
		if err != nil {
			t.Fatalf("record %d: %v", i, err)
		}
		ids = append(ids, id)
	}
	if _, err := RecordListing(database, testListing("/etc", time.Unix(1700000000, 0))); err != nil {
		t.Fatalf("record other dir: %v", err)
	}

	removed, err := PruneListings(database, "/var/log", 2)
	if err != nil {
		t.Fatalf("prune: %v", err)
	}
	if removed != 2 {
		t.Fatalf("removed = %d, want 2", removed)
	}

	history, err := ListingHistory(database, "/var/log", 0)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 2 || history[0].ID != ids[3] || history[1].ID != ids[2] {
		t.Fatalf("unexpected remaining listings: %+v", history)
	}

	var orphans int
	if err := database.QueryRow(`SELECT COUNT(*) FROM entries WHERE listing_id IN (?, ?)`, ids[0], ids[1]).Scan(&orphans); err != nil {
		t.Fatalf("count orphans: %v", err)
	}
	if orphans != 0 {
		t.Fatalf("expected pruned entries to be deleted, found %d", orphans)
	}

	if others, _ := ListingHistory(database, "/etc", 0); len(others) != 1 {
		t.Fatalf("prune touched another directory")
	}

	if n, err := PruneListings(database, "/var/log", 0); err != nil || n != 0 {
		t.Fatalf("keep=0 should disable pruning, got %d, %v", n, err)
	}
}

func TestDirCacheEvicts(t *testing.T) {
	c := newDirCache(2)
	c.Set("/a", 1)
	c.Set("/b", 2)
	if _, ok := c.Get("/a"); !ok {
		t.Fatalf("expected /a cached")
	}
	c.Set("/c", 3)

	if _, ok := c.Get("/b"); ok {
		t.Fatalf("expected least recently used /b to be evicted")
	}
	if id, ok := c.Get("/c"); !ok || id != 3 {
		t.Fatalf("expected /c -> 3, got %d, %v", id, ok)
	}
	if c.Len() != 2 {
		t.Fatalf("len = %d, want 2", c.Len())
	}
}

func TestForgetDropsDirCache(t *testing.T) {
	database := openTestDB(t)

	if _, err := RecordListing(database, testListing("/srv", time.Unix(1700000000, 0))); err != nil {
		t.Fatalf("record: %v", err)
	}
	if _, ok := dbDirCaches.Load(database); !ok {
		t.Fatalf("expected a cache attached after recording")
	}

	Forget(database)
	if _, ok := dbDirCaches.Load(database); ok {
		t.Fatalf("expected cache to be dropped")
	}

	// Lookups still work and rebuild the cache from the table.
	if _, err := LatestListingID(database, "/srv"); err != nil {
		t.Fatalf("latest after forget: %v", err)
	}
	Forget(database)
	Forget(nil)
}
