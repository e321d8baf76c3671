package snapshot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/michaelscutari/pathfold/internal/db"
	"github.com/michaelscutari/pathfold/internal/entry"
	"github.com/michaelscutari/pathfold/internal/scan"

	_ "modernc.org/sqlite"
)

// DBName is the database file kept in the output directory.
const DBName = "listings.db"

// ErrLocked is returned when another process is recording.
var ErrLocked = errors.New("another recording is in progress")

// Manager records directory listings into a database with retention.
type Manager struct {
	outputDir string
	retention int
	lockFile  *os.File
}

// NewManager creates a new snapshot manager.
func NewManager(outputDir string, retention int) *Manager {
	return &Manager{
		outputDir: outputDir,
		retention: retention,
	}
}

// DBPath returns the path of the listings database.
func (m *Manager) DBPath() string {
	return filepath.Join(m.outputDir, DBName)
}

// Record lists dir, stores the listing and prunes older listings of the same
// directory beyond the retention count.
func (m *Manager) Record(ctx context.Context, dir string, opts *scan.ScanOptions) (*entry.Listing, error) {
	// Ensure output directory exists
	if err := os.MkdirAll(m.outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := m.acquireLock(); err != nil {
		return nil, err
	}
	defer m.releaseLock()

	database, err := m.Open()
	if err != nil {
		return nil, err
	}
	defer m.Close(database)

	if err := db.ApplyWritePragmas(database); err != nil {
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	listing, scanErr := scan.NewScanner(opts).Run(ctx, dir)
	if listing == nil {
		return nil, fmt.Errorf("scan failed: %w", scanErr)
	}
	if scanErr != nil {
		// Partial listings are kept so the errors are inspectable.
		logrus.WithError(scanErr).Warn("listing incomplete")
	}

	if _, err := db.RecordListing(database, listing); err != nil {
		return nil, fmt.Errorf("failed to record listing: %w", err)
	}

	removed, err := db.PruneListings(database, listing.Dir, m.retention)
	if err != nil {
		logrus.WithError(err).Warn("failed to prune old listings")
	} else if removed > 0 {
		logrus.WithFields(logrus.Fields{"dir": listing.Dir, "removed": removed}).Debug("pruned old listings")
	}

	return listing, scanErr
}

// Open opens the listings database, creating the schema when needed.
func (m *Manager) Open() (*sql.DB, error) {
	database, err := sql.Open("sqlite", m.DBPath())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.InitSchema(database); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return database, nil
}

// Close closes a database returned by Open and drops its listing cache.
func (m *Manager) Close(database *sql.DB) error {
	db.Forget(database)
	return database.Close()
}

func (m *Manager) acquireLock() error {
	lockPath := filepath.Join(m.outputDir, ".pathfold.lock")
	f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return fmt.Errorf("failed to open lock file: %w", err)
	}

	// Try to acquire exclusive lock
	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX|syscall.LOCK_NB); err != nil {
		f.Close()
		return ErrLocked
	}

	m.lockFile = f
	return nil
}

func (m *Manager) releaseLock() {
	if m.lockFile != nil {
		syscall.Flock(int(m.lockFile.Fd()), syscall.LOCK_UN)
		m.lockFile.Close()
		m.lockFile = nil
	}
}
