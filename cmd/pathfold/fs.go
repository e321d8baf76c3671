package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/michaelscutari/pathfold/internal/entry"
	"github.com/michaelscutari/pathfold/internal/pathutil"
	"github.com/michaelscutari/pathfold/internal/probe"
	"github.com/michaelscutari/pathfold/internal/scan"
)

var lsCmd = &cobra.Command{
	Use:   "ls [DIR]",
	Short: "List a directory with sizes and modification times",
	Long: `List the immediate children of DIR (default: the working directory).
--raw prints bare names in native enumeration order without probing them.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLs,
}

var (
	lsSort    string
	lsLimit   int
	lsRaw     bool
	lsWorkers int
	lsExclude []string
	lsAll     bool
)

func init() {
	lsCmd.Flags().StringVarP(&lsSort, "sort", "s", "", "Sort by: name, size, disk, mtime, kind (default from config)")
	lsCmd.Flags().IntVarP(&lsLimit, "limit", "n", 0, "Maximum number of rows (0 = all)")
	lsCmd.Flags().BoolVar(&lsRaw, "raw", false, "Print raw names in enumeration order")
	lsCmd.Flags().IntVarP(&lsWorkers, "workers", "w", 8, "Number of stat workers")
	lsCmd.Flags().BoolVarP(&lsAll, "all", "a", false, "Include entries whose names start with .")
	lsCmd.Flags().StringSliceVarP(&lsExclude, "exclude", "e", nil, "Regex patterns to exclude (can be repeated)")
}

func runLs(cmd *cobra.Command, args []string) error {
	fragment := "."
	if len(args) == 1 {
		fragment = args[0]
	}
	dir, err := pathutil.Concat(pathutil.OSWorkDir, fragment)
	if err != nil {
		return fmt.Errorf("failed to resolve directory: %w", err)
	}

	out := cmd.OutOrStdout()
	if lsRaw {
		names, err := probe.List(dir)
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Fprintln(out, name)
		}
		return nil
	}

	opts, err := scanOptions(cmd, lsWorkers, lsExclude)
	if err != nil {
		return err
	}
	opts.WithSkipHidden(!lsAll)
	listing, err := scan.NewScanner(opts).Run(cmd.Context(), dir)
	if listing == nil {
		return err
	}
	if err != nil {
		logrus.WithError(err).Warn("listing incomplete")
	}

	sortBy := lsSort
	if sortBy == "" {
		sortBy = cfg.SortOrder()
	}
	entries := sortEntries(listing.Entries, sortBy)
	if lsLimit > 0 && len(entries) > lsLimit {
		entries = entries[:lsLimit]
	}

	writeEntries(out, entries, isTerminal(os.Stdout))
	for _, se := range listing.Errors {
		logrus.WithField("path", se.Path).Warn(se.Message)
	}
	return nil
}

// sortEntries orders entries the same way the listings database does.
func sortEntries(entries []entry.Entry, by string) []entry.Entry {
	es := append([]entry.Entry(nil), entries...)
	var less func(a, b entry.Entry) bool
	switch by {
	case "size":
		less = func(a, b entry.Entry) bool { return a.Size > b.Size }
	case "disk", "blocks":
		less = func(a, b entry.Entry) bool { return a.Blocks > b.Blocks }
	case "mtime", "time":
		less = func(a, b entry.Entry) bool { return a.Modified.After(b.Modified) }
	case "kind":
		less = func(a, b entry.Entry) bool {
			if a.Kind != b.Kind {
				return a.Kind > b.Kind
			}
			return a.Name < b.Name
		}
	default:
		less = func(a, b entry.Entry) bool { return a.Name < b.Name }
	}
	sort.SliceStable(es, func(i, j int) bool { return less(es[i], es[j]) })
	return es
}

// writeEntries prints a table of entries. Sizes are humanized for terminals
// and exact byte counts otherwise.
func writeEntries(out io.Writer, entries []entry.Entry, human bool) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "KIND\tSIZE\tDISK\tMODIFIED\tNAME\n")
	for _, e := range entries {
		size, disk := strconv.FormatInt(e.Size, 10), strconv.FormatInt(e.Blocks, 10)
		modified := e.Modified.Format(time.RFC3339)
		if human {
			size = humanize.Bytes(uint64(e.Size))
			disk = humanize.Bytes(uint64(e.Blocks))
			modified = humanize.Time(e.Modified)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", e.Kind, size, disk, modified, displayName(e))
	}
	w.Flush()
}

func displayName(e entry.Entry) string {
	switch e.Kind {
	case entry.KindDir:
		return e.Name + "/"
	case entry.KindSymlink:
		return e.Name + "@"
	default:
		return e.Name
	}
}

var statCmd = &cobra.Command{
	Use:   "stat PATH...",
	Short: "Print kind, size and timestamps of each path",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runStat,
}

var statNoFollow bool

func init() {
	statCmd.Flags().BoolVarP(&statNoFollow, "no-follow", "L", false, "Report symlinks themselves instead of their targets")
}

// runStat prints every path it can probe and reports all failures together.
func runStat(cmd *cobra.Command, args []string) error {
	var result *multierror.Error
	out := cmd.OutOrStdout()
	printed := 0

	for _, arg := range args {
		p, err := pathutil.Concat(pathutil.OSWorkDir, arg)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("%s: %w", arg, err))
			continue
		}

		var e entry.Entry
		if statNoFollow {
			e, err = probe.Lstat(p)
		} else {
			e, err = probe.Stat(p)
		}
		if err != nil {
			result = multierror.Append(result, err)
			continue
		}

		if printed > 0 {
			fmt.Fprintln(out)
		}
		writeStat(out, e)
		printed++
	}

	return result.ErrorOrNil()
}

func writeStat(out io.Writer, e entry.Entry) {
	fmt.Fprintf(out, "Path:     %s\n", e.Path)
	fmt.Fprintf(out, "Kind:     %s\n", e.Kind)
	fmt.Fprintf(out, "Size:     %s (%s bytes)\n", humanize.Bytes(uint64(e.Size)), humanize.Comma(e.Size))
	fmt.Fprintf(out, "Disk:     %s\n", humanize.Bytes(uint64(e.Blocks)))
	fmt.Fprintf(out, "Modified: %s\n", e.Modified.Format(time.RFC3339Nano))
	fmt.Fprintf(out, "Accessed: %s\n", e.Accessed.Format(time.RFC3339Nano))
	fmt.Fprintf(out, "Changed:  %s\n", e.Changed.Format(time.RFC3339Nano))
}

var clockCmd = &cobra.Command{
	Use:   "clock",
	Short: "Print seconds since local midnight with microsecond precision",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintf(cmd.OutOrStdout(), "%.6f\n", probe.Clock())
		return nil
	},
}

var sleepCmd = &cobra.Command{
	Use:   "sleep [MICROSECONDS]",
	Short: "Sleep for the given number of microseconds (default 1)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSleep,
}

func runSleep(cmd *cobra.Command, args []string) error {
	var micros int64
	if len(args) == 1 {
		n, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", args[0], err)
		}
		micros = n
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := probe.SleepMicros(ctx, micros)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
