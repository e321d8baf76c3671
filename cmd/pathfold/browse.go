package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/michaelscutari/pathfold/internal/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse [DIR]",
	Short: "Browse directories interactively",
	Long: `Open an interactive browser starting at DIR (default: the working
directory). Press r inside the browser to record the current directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBrowse,
}

var (
	browseDBDir   string
	browseSort    string
	browseWorkers int
	browseExclude []string
	browseAll     bool
)

func init() {
	browseCmd.Flags().StringVarP(&browseDBDir, "db-dir", "o", "", "Directory holding listings.db (default from config)")
	browseCmd.Flags().StringVarP(&browseSort, "sort", "s", "", "Initial sort: name, size, mtime (default from config)")
	browseCmd.Flags().IntVarP(&browseWorkers, "workers", "w", 8, "Number of stat workers")
	browseCmd.Flags().BoolVarP(&browseAll, "all", "a", false, "Show entries whose names start with .")
	browseCmd.Flags().StringSliceVarP(&browseExclude, "exclude", "e", nil, "Regex patterns to exclude (can be repeated)")
}

func runBrowse(cmd *cobra.Command, args []string) error {
	start := "."
	if len(args) == 1 {
		start = args[0]
	}

	opts, err := scanOptions(cmd, browseWorkers, browseExclude)
	if err != nil {
		return err
	}
	opts.WithSkipHidden(!browseAll)
	mgr, err := newManager(cmd, browseDBDir, 0)
	if err != nil {
		return err
	}

	sortBy := browseSort
	if sortBy == "" {
		sortBy = cfg.SortOrder()
	}

	model := tui.NewModel(start, opts).
		WithSort(tui.ParseSort(sortBy)).
		WithRecorder(mgr)
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
