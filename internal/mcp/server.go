// Package mcp exposes the path routines and filesystem probes as Model
// Context Protocol tools served over stdio.
package mcp

import (
	"context"
	"errors"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"

	"github.com/michaelscutari/pathfold/internal/pathutil"
)

// Version is advertised to clients for capability negotiation.
const Version = "1.0.0"

// Serve starts the MCP server over stdio.
func Serve() error {
	// stdout is reserved for JSON-RPC
	logrus.SetOutput(os.Stderr)

	s := NewServer(pathutil.OSWorkDir)

	logrus.WithFields(logrus.Fields{
		"version":   Version,
		"transport": "stdio",
	}).Info("pathfold MCP server ready")

	err := server.ServeStdio(s)
	if errors.Is(err, context.Canceled) {
		logrus.Info("server stopped")
		return nil
	}
	return err
}

// NewServer builds the MCP server with every tool registered. wd resolves
// relative fragments for path_concat and fs_pwd.
func NewServer(wd pathutil.WorkDir) *server.MCPServer {
	s := server.NewMCPServer(
		"pathfold",
		Version,
		server.WithToolCapabilities(true),
	)
	registerTools(s, &handlers{wd: wd})
	return s
}

// handlers carries the working-directory provider shared by the tools.
type handlers struct {
	wd pathutil.WorkDir
}

func registerTools(s *server.MCPServer, h *handlers) {
	s.AddTool(
		mcp.NewTool("path_dirname",
			mcp.WithDescription("Return the directory portion of a path, lexically"),
			mcp.WithString("path", mcp.Required(), mcp.Description("Path to split")),
		),
		h.dirname,
	)

	s.AddTool(
		mcp.NewTool("path_basename",
			mcp.WithDescription("Return the final component of a path, optionally removing a suffix"),
			mcp.WithString("path", mcp.Required(), mcp.Description("Path to split")),
			mcp.WithString("suffix", mcp.Description("Suffix to strip, with or without the leading dot")),
		),
		h.basename,
	)

	s.AddTool(
		mcp.NewTool("path_join",
			mcp.WithDescription("Join a fragment onto a base path and normalize the result"),
			mcp.WithString("base", mcp.Required(), mcp.Description("Base path")),
			mcp.WithString("fragment", mcp.Required(), mcp.Description("Fragment to fold onto the base")),
		),
		h.join,
	)

	s.AddTool(
		mcp.NewTool("path_concat",
			mcp.WithDescription("Fold fragments onto the working directory in order"),
			mcp.WithArray("fragments", mcp.Description("Path fragments"), mcp.WithStringItems()),
			mcp.WithString("cwd", mcp.Description("Working directory to start from (default: server working directory)")),
		),
		h.concat,
	)

	s.AddTool(
		mcp.NewTool("fs_pwd",
			mcp.WithDescription("Return the server's working directory"),
		),
		h.pwd,
	)

	s.AddTool(
		mcp.NewTool("fs_list",
			mcp.WithDescription("List the entry names of a directory in enumeration order"),
			mcp.WithString("dir", mcp.Description("Directory to list (default: .)")),
		),
		h.list,
	)

	s.AddTool(
		mcp.NewTool("fs_stat",
			mcp.WithDescription("Report kind, size and timestamps for one or more paths"),
			mcp.WithArray("paths", mcp.Required(), mcp.Description("Paths to stat"), mcp.WithStringItems()),
		),
		h.stat,
	)

	s.AddTool(
		mcp.NewTool("fs_clock",
			mcp.WithDescription("Seconds since local midnight with microsecond precision"),
		),
		h.clock,
	)
}
