package tui

import (
	"context"
	"sort"
	"strings"

	"github.com/michaelscutari/pathfold/internal/entry"
	"github.com/michaelscutari/pathfold/internal/pathutil"
	"github.com/michaelscutari/pathfold/internal/scan"

	tea "github.com/charmbracelet/bubbletea"
)

// SortColumn represents the current sort field.
type SortColumn int

const (
	SortByName SortColumn = iota
	SortBySize
	SortByTime
)

func (s SortColumn) String() string {
	switch s {
	case SortBySize:
		return "size"
	case SortByTime:
		return "mtime"
	default:
		return "name"
	}
}

// ParseSort maps a sort name to a SortColumn, defaulting to name.
func ParseSort(s string) SortColumn {
	switch s {
	case "size", "disk":
		return SortBySize
	case "mtime", "time":
		return SortByTime
	default:
		return SortByName
	}
}

// Recorder stores a listing snapshot of a directory.
type Recorder interface {
	Record(ctx context.Context, dir string, opts *scan.ScanOptions) (*entry.Listing, error)
}

// Model holds the TUI state.
type Model struct {
	opts         *scan.ScanOptions
	recorder     Recorder
	startPath    string
	currentPath  string
	loaded       bool
	allEntries   []entry.Entry
	entries      []entry.Entry
	summary      entry.Summary
	errorCount   int
	cursor       int
	sort         SortColumn
	width        int
	height       int
	filter       string
	filterActive bool
	status       string
	err          error
}

// NewModel creates a browser rooted at start. Relative starts are resolved
// against the working directory.
func NewModel(start string, opts *scan.ScanOptions) *Model {
	if abs, err := pathutil.Concat(pathutil.OSWorkDir, start); err == nil {
		start = abs
	}
	return &Model{
		opts:        opts,
		startPath:   start,
		currentPath: start,
		sort:        SortByName,
	}
}

// WithRecorder enables the record key.
func (m *Model) WithRecorder(r Recorder) *Model {
	m.recorder = r
	return m
}

// WithSort sets the initial sort column.
func (m *Model) WithSort(s SortColumn) *Model {
	m.sort = s
	return m
}

// CurrentPath returns the directory being shown.
func (m *Model) CurrentPath() string {
	return m.currentPath
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.loadEntries(m.currentPath)
}

type entriesLoadedMsg struct {
	path    string
	entries []entry.Entry
	errors  int
	err     error
}

func (m *Model) loadEntries(path string) tea.Cmd {
	opts := m.opts
	return func() tea.Msg {
		listing, err := scan.NewScanner(opts).Run(context.Background(), path)
		if listing == nil {
			return entriesLoadedMsg{path: path, err: err}
		}
		return entriesLoadedMsg{
			path:    listing.Dir,
			entries: listing.Entries,
			errors:  len(listing.Errors),
		}
	}
}

type recordedMsg struct {
	listing *entry.Listing
	err     error
}

func (m *Model) recordCurrent() tea.Cmd {
	recorder, opts, path := m.recorder, m.opts, m.currentPath
	return func() tea.Msg {
		listing, err := recorder.Record(context.Background(), path, opts)
		return recordedMsg{listing: listing, err: err}
	}
}

func (m *Model) helpLine() string {
	if m.filterActive {
		return "Type to filter | Enter: apply | Esc: clear | q: quit"
	}
	help := "↑/↓ move | Enter: open | Backspace: up | ~: start | s/n/m: sort | /: filter | u: refresh"
	if m.recorder != nil {
		help += " | r: record"
	}
	return help + " | q: quit"
}

func (m *Model) setEntries(entries []entry.Entry) {
	m.allEntries = entries
	m.summary = entry.Summarize(entries)
	m.sortEntries()
	m.applyFilter()
}

func (m *Model) sortEntries() {
	es := m.allEntries
	switch m.sort {
	case SortBySize:
		sort.SliceStable(es, func(i, j int) bool { return es[i].Size > es[j].Size })
	case SortByTime:
		sort.SliceStable(es, func(i, j int) bool { return es[i].Modified.After(es[j].Modified) })
	default:
		sort.SliceStable(es, func(i, j int) bool {
			// Directories first, then by name
			if (es[i].Kind == entry.KindDir) != (es[j].Kind == entry.KindDir) {
				return es[i].Kind == entry.KindDir
			}
			return es[i].Name < es[j].Name
		})
	}
}

func (m *Model) applyFilter() {
	if m.filter == "" {
		m.entries = m.allEntries
	} else {
		filtered := make([]entry.Entry, 0, len(m.allEntries))
		needle := strings.ToLower(m.filter)
		for _, e := range m.allEntries {
			if strings.Contains(strings.ToLower(e.Name), needle) {
				filtered = append(filtered, e)
			}
		}
		m.entries = filtered
	}
	m.cursor = 0
}
