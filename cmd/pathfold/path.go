package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/michaelscutari/pathfold/internal/pathutil"
)

var dirnameCmd = &cobra.Command{
	Use:   "dirname PATH...",
	Short: "Print the directory portion of each path",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, p := range args {
			fmt.Fprintln(cmd.OutOrStdout(), pathutil.Dirname(p))
		}
		return nil
	},
}

var basenameCmd = &cobra.Command{
	Use:   "basename PATH [SUFFIX]",
	Short: "Print the final component of a path, optionally without SUFFIX",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		suffix := ""
		if len(args) == 2 {
			suffix = args[1]
		}
		fmt.Fprintln(cmd.OutOrStdout(), pathutil.Basename(args[0], suffix))
		return nil
	},
}

var joinCmd = &cobra.Command{
	Use:   "join BASE FRAGMENT",
	Short: "Fold FRAGMENT onto BASE and print the normalized path",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		joined, err := pathutil.Join(args[0], args[1])
		if err != nil {
			return fmt.Errorf("failed to join: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), joined)
		return nil
	},
}

var concatCmd = &cobra.Command{
	Use:   "concat [FRAGMENT...]",
	Short: "Fold fragments onto the working directory in order",
	Long: `Start from the working directory (or --cwd) and join every fragment in
turn. A rooted fragment restarts from /. With no fragments the normalized
working directory is printed.`,
	RunE: runConcat,
}

var concatCwd string

func init() {
	concatCmd.Flags().StringVar(&concatCwd, "cwd", "", "Directory to start from instead of the working directory")
}

func runConcat(cmd *cobra.Command, args []string) error {
	wd := pathutil.WorkDir(pathutil.OSWorkDir)
	if concatCwd != "" {
		wd = func() (string, error) { return concatCwd, nil }
	}
	joined, err := pathutil.Concat(wd, args...)
	if err != nil {
		return fmt.Errorf("failed to concatenate: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), joined)
	return nil
}

var pwdCmd = &cobra.Command{
	Use:   "pwd",
	Short: "Print the normalized working directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := pathutil.Concat(pathutil.OSWorkDir)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), dir)
		return nil
	},
}
