package mcp

import (
	"context"
	"strconv"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/michaelscutari/pathfold/internal/entry"
	"github.com/michaelscutari/pathfold/internal/pathutil"
	"github.com/michaelscutari/pathfold/internal/probe"
)

// statJSON is the wire form of a probed path.
type statJSON struct {
	Path     string    `json:"path"`
	Kind     string    `json:"kind,omitempty"`
	Size     int64     `json:"size,omitempty"`
	Blocks   int64     `json:"blocks,omitempty"`
	Modified time.Time `json:"modified,omitzero"`
	Accessed time.Time `json:"accessed,omitzero"`
	Changed  time.Time `json:"changed,omitzero"`
	Error    string    `json:"error,omitempty"`
}

func toStatJSON(e entry.Entry) statJSON {
	return statJSON{
		Path:     e.Path,
		Kind:     e.Kind.String(),
		Size:     e.Size,
		Blocks:   e.Blocks,
		Modified: e.Modified,
		Accessed: e.Accessed,
		Changed:  e.Changed,
	}
}

func (h *handlers) pwd(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dir, err := pathutil.Concat(h.wd)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(dir), nil
}

func (h *handlers) list(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dir, err := pathutil.Concat(h.wd, getString(req, "dir", "."))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	names, err := probe.List(dir)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if names == nil {
		names = []string{}
	}
	return jsonResult(names)
}

// stat probes every requested path. Failures are reported per path so one
// missing file does not hide the rest.
func (h *handlers) stat(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	paths, err := getStrings(req, "paths")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(paths) == 0 {
		return mcp.NewToolResultError("paths is required"), nil
	}

	results := make([]statJSON, 0, len(paths))
	for _, p := range paths {
		abs, err := pathutil.Concat(h.wd, p)
		if err != nil {
			results = append(results, statJSON{Path: p, Error: err.Error()})
			continue
		}
		e, err := probe.Stat(abs)
		if err != nil {
			results = append(results, statJSON{Path: abs, Error: err.Error()})
			continue
		}
		results = append(results, toStatJSON(e))
	}

	if len(results) == 1 {
		return jsonResult(results[0])
	}
	return jsonResult(results)
}

func (h *handlers) clock(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(strconv.FormatFloat(probe.Clock(), 'f', 6, 64)), nil
}
