package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/michaelscutari/pathfold/internal/db"
	"github.com/michaelscutari/pathfold/internal/entry"
	"github.com/michaelscutari/pathfold/internal/pathutil"
	"github.com/michaelscutari/pathfold/internal/scan"
	"github.com/michaelscutari/pathfold/internal/snapshot"
)

var recordCmd = &cobra.Command{
	Use:   "record [DIR]",
	Short: "Record a listing of a directory into the listings database",
	Long: `List DIR (default: the working directory) and store the listing in
<db-dir>/listings.db. Older listings of the same directory beyond the
retention count are pruned.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRecord,
}

var (
	recordDBDir     string
	recordRetention int
	recordWorkers   int
	recordExclude   []string
	recordMaxErrors int
)

func init() {
	recordCmd.Flags().StringVarP(&recordDBDir, "db-dir", "o", "", "Directory holding listings.db (default from config)")
	recordCmd.Flags().IntVar(&recordRetention, "retention", 5, "Number of listings to retain per directory (0 = unlimited)")
	recordCmd.Flags().IntVarP(&recordWorkers, "workers", "w", 8, "Number of stat workers")
	recordCmd.Flags().StringSliceVarP(&recordExclude, "exclude", "e", nil, "Regex patterns to exclude (can be repeated)")
	recordCmd.Flags().IntVar(&recordMaxErrors, "max-errors", 0, "Stop after N errors (0 = unlimited)")
}

// newManager builds a snapshot manager from flags and config.
func newManager(cmd *cobra.Command, dbDir string, retention int) (*snapshot.Manager, error) {
	if dbDir == "" {
		dbDir = cfg.DatabaseDir()
	}
	if f := cmd.Flags().Lookup("retention"); f == nil || !f.Changed {
		retention = cfg.RetentionCount()
	}
	outDir, err := pathutil.Concat(pathutil.OSWorkDir, dbDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve database directory: %w", err)
	}
	return snapshot.NewManager(outDir, retention), nil
}

func runRecord(cmd *cobra.Command, args []string) error {
	fragment := "."
	if len(args) == 1 {
		fragment = args[0]
	}
	dir, err := pathutil.Concat(pathutil.OSWorkDir, fragment)
	if err != nil {
		return fmt.Errorf("failed to resolve directory: %w", err)
	}

	opts, err := scanOptions(cmd, recordWorkers, recordExclude)
	if err != nil {
		return err
	}
	opts.WithMaxErrors(recordMaxErrors)

	mgr, err := newManager(cmd, recordDBDir, recordRetention)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	startTime := time.Now()
	listing, err := mgr.Record(ctx, dir, opts)
	if listing == nil {
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "Recording canceled.")
			return nil
		}
		return fmt.Errorf("record failed: %w", err)
	}

	out := cmd.OutOrStdout()
	summary := entry.Summarize(listing.Entries)
	fmt.Fprintf(out, "Recorded listing #%d of %s in %s\n", listing.ID, listing.Dir, time.Since(startTime).Round(time.Millisecond))
	fmt.Fprintf(out, "Database: %s\n", mgr.DBPath())
	fmt.Fprintf(out, "\nSummary:\n")
	fmt.Fprintf(out, "  Files: %s\n", humanize.Comma(summary.Files))
	fmt.Fprintf(out, "  Directories: %s\n", humanize.Comma(summary.Dirs))
	if summary.Others > 0 {
		fmt.Fprintf(out, "  Other: %s\n", humanize.Comma(summary.Others))
	}
	fmt.Fprintf(out, "  Apparent size: %s\n", humanize.Bytes(uint64(summary.TotalSize)))
	fmt.Fprintf(out, "  Disk usage: %s\n", humanize.Bytes(uint64(summary.TotalBlocks)))
	if len(listing.Errors) > 0 {
		fmt.Fprintf(out, "  Errors: %d\n", len(listing.Errors))
	}

	if errors.Is(err, scan.ErrTooManyErrors) {
		return err
	}
	return nil
}

var historyCmd = &cobra.Command{
	Use:   "history [DIR]",
	Short: "Show recorded listings",
	Long: `Without flags, print the recorded listings of DIR newest first (all
directories when DIR is omitted). --entries prints the contents of the latest
listing of DIR, or of the listing given with --id.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

var (
	historyDBDir   string
	historyLimit   int
	historyEntries bool
	historyID      int64
	historySort    string
)

func init() {
	historyCmd.Flags().StringVarP(&historyDBDir, "db-dir", "o", "", "Directory holding listings.db (default from config)")
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 0, "Maximum number of rows (default from config)")
	historyCmd.Flags().BoolVar(&historyEntries, "entries", false, "Print the entries of a listing")
	historyCmd.Flags().Int64Var(&historyID, "id", 0, "Listing ID to print (implies --entries)")
	historyCmd.Flags().StringVarP(&historySort, "sort", "s", "", "Sort entries by: name, size, disk, mtime, kind (default from config)")
}

func runHistory(cmd *cobra.Command, args []string) error {
	mgr, err := newManager(cmd, historyDBDir, 0)
	if err != nil {
		return err
	}
	if _, err := os.Stat(mgr.DBPath()); err != nil {
		return fmt.Errorf("no listings recorded yet (%s): %w", mgr.DBPath(), err)
	}

	database, err := mgr.Open()
	if err != nil {
		return err
	}
	defer mgr.Close(database)

	if err := db.ApplyReadPragmas(database); err != nil {
		return fmt.Errorf("failed to apply pragmas: %w", err)
	}

	limit := historyLimit
	if !cmd.Flags().Changed("limit") {
		limit = cfg.ListLimit()
	}

	var dir string
	if len(args) == 1 {
		dir, err = pathutil.Concat(pathutil.OSWorkDir, args[0])
		if err != nil {
			return fmt.Errorf("failed to resolve directory: %w", err)
		}
	}

	out := cmd.OutOrStdout()
	if historyEntries || historyID != 0 {
		id := historyID
		if id == 0 {
			if dir == "" {
				if dir, err = pathutil.Concat(pathutil.OSWorkDir); err != nil {
					return err
				}
			}
			if id, err = db.LatestListingID(database, dir); err != nil {
				return err
			}
		}
		return printListing(out, database, id, limit)
	}

	metas, err := db.ListingHistory(database, dir, limit)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}
	if len(metas) == 0 {
		return db.ErrNoListing
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID\tRECORDED\tENTRIES\tSIZE\tERRORS\tDIR\n")
	for _, m := range metas {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			m.ID,
			humanize.Time(m.RecordedAt),
			humanize.Comma(m.EntryCount),
			humanize.Bytes(uint64(m.TotalSize)),
			strconv.FormatInt(m.ErrorCount, 10),
			m.Dir,
		)
	}
	return w.Flush()
}

func printListing(out io.Writer, database *sql.DB, id int64, limit int) error {
	meta, err := db.GetListing(database, id)
	if err != nil {
		return err
	}

	sortBy := historySort
	if sortBy == "" {
		sortBy = cfg.SortOrder()
	}
	entries, err := db.LoadListingEntries(database, id, sortBy, limit)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	fmt.Fprintf(out, "Listing #%d of %s, recorded %s\n\n", meta.ID, meta.Dir, meta.RecordedAt.Format(time.RFC3339))
	writeEntries(out, entries, isTerminal(os.Stdout))

	scanErrors, err := db.LoadErrors(database, id)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}
	if len(scanErrors) > 0 {
		fmt.Fprintf(out, "\nErrors (%d of %d):\n", len(scanErrors), meta.ErrorCount)
		for _, se := range scanErrors {
			fmt.Fprintf(out, "  %s: %s\n", se.Path, se.Message)
		}
	}
	return nil
}
