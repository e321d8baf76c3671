package main

import (
	"github.com/spf13/cobra"

	"github.com/michaelscutari/pathfold/internal/mcp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the path and filesystem tools over MCP stdio",
	Long: `Start a Model Context Protocol server on stdin/stdout exposing
path_dirname, path_basename, path_join, path_concat, fs_pwd, fs_list,
fs_stat and fs_clock.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return mcp.Serve()
	},
}
