package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/michaelscutari/pathfold/internal/config"
	"github.com/michaelscutari/pathfold/internal/scan"
)

var version = "0.1.0"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pathfold",
	Short: "Lexical path normalization and directory listings",
	Long: `pathfold joins and normalizes paths purely lexically, without touching
the filesystem, and ships the small set of filesystem probes around it:
listings, stat, the working directory and a wall clock. Listings can be
recorded into SQLite and browsed interactively.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

var (
	configPath string
	verbose    bool

	// cfg is loaded before every command runs.
	cfg = &config.Config{}
)

func init() {
	rootCmd.Version = version
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.pathfold/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(dirnameCmd)
	rootCmd.AddCommand(basenameCmd)
	rootCmd.AddCommand(joinCmd)
	rootCmd.AddCommand(concatCmd)
	rootCmd.AddCommand(pwdCmd)
	rootCmd.AddCommand(lsCmd)
	rootCmd.AddCommand(statCmd)
	rootCmd.AddCommand(clockCmd)
	rootCmd.AddCommand(sleepCmd)
	rootCmd.AddCommand(recordCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(serveCmd)
}

func setup(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	cfg = loaded

	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(&logrus.TextFormatter{
		DisableColors: !isTerminal(os.Stderr),
		FullTimestamp: true,
	})
	logrus.SetLevel(logrus.InfoLevel)
	if verbose || cfg.Verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}
	logrus.WithField("config", cfg.Path()).Debug("config loaded")
	return nil
}

// scanOptions builds scanner options from flags, falling back to config
// values for anything the user did not set on the command line.
func scanOptions(cmd *cobra.Command, workers int, exclude []string) (*scan.ScanOptions, error) {
	if !cmd.Flags().Changed("workers") {
		workers = cfg.WorkerCount()
	}
	opts := scan.DefaultOptions().WithWorkers(workers)

	patterns := append(append([]string{}, cfg.Exclude...), exclude...)
	for _, pattern := range patterns {
		if err := opts.AddExcludePattern(pattern); err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}
	}
	return opts, nil
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
