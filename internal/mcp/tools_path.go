package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sirupsen/logrus"

	"github.com/michaelscutari/pathfold/internal/pathutil"
)

func (h *handlers) dirname(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(pathutil.Dirname(p)), nil
}

func (h *handlers) basename(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(pathutil.Basename(p, getString(req, "suffix", ""))), nil
}

func (h *handlers) join(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	base, err := req.RequireString("base")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	fragment, err := req.RequireString("fragment")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	joined, err := pathutil.Join(base, fragment)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(joined), nil
}

func (h *handlers) concat(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	wd := h.wd
	if cwd := getString(req, "cwd", ""); cwd != "" {
		wd = func() (string, error) { return cwd, nil }
	}
	fragments, err := getStrings(req, "fragments")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	joined, err := pathutil.Concat(wd, fragments...)
	if err != nil {
		logrus.WithError(err).Debug("path_concat failed")
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(joined), nil
}
