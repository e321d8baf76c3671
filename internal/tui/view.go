package tui

import (
	"fmt"
	"strings"

	"github.com/michaelscutari/pathfold/internal/entry"
)

// View implements tea.Model.
func (m *Model) View() string {
	if m.err != nil {
		return fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err)
	}

	if !m.loaded {
		return "Loading..."
	}

	var b strings.Builder
	headerLines := 0

	writeLine := func(line string) {
		b.WriteString(line)
		b.WriteString("\n")
		headerLines++
	}

	// Header
	writeLine(titleStyle.Render("pathfold - Directory Browser"))

	// Breadcrumbs / path
	pathLabel := fmt.Sprintf("Path: %s", truncateMiddle(m.currentPath, max(10, m.width-6)))
	writeLine(breadcrumbStyle.Render(pathLabel))

	dirInfo := fmt.Sprintf("Size: %s | Disk: %s | %s files | %s dirs",
		FormatSize(m.summary.TotalSize),
		FormatSize(m.summary.TotalBlocks),
		FormatCount(m.summary.Files),
		FormatCount(m.summary.Dirs),
	)
	if m.summary.Others > 0 {
		dirInfo += fmt.Sprintf(" | %s other", FormatCount(m.summary.Others))
	}
	if m.errorCount > 0 {
		dirInfo += fmt.Sprintf(" | %d unreadable", m.errorCount)
	}
	writeLine(statsStyle.Render(dirInfo))

	// Status line
	status := fmt.Sprintf("Items: %s", FormatCount(int64(len(m.entries))))
	if m.filter != "" {
		status += fmt.Sprintf(" | Filter: %q", m.filter)
	}
	if len(m.entries) > 0 && m.cursor < len(m.entries) {
		sel := m.entries[m.cursor]
		status += fmt.Sprintf(" | Sel: %s (%s)", sel.Name, FormatSize(sel.Size))
	}
	writeLine(statusStyle.Render(status))

	if m.status != "" {
		writeLine(errorStyle.Render(m.status))
	}

	// Filter input
	if m.filterActive {
		writeLine(filterStyle.Render(fmt.Sprintf("Filter: %s_", m.filter)))
	} else if m.filter != "" {
		writeLine(filterStyle.Render(fmt.Sprintf("Filter: %s", m.filter)))
	}

	// Column headers with sort indicator
	sizeLabel := headerLabel("SIZE", m.sort == SortBySize, "v")
	timeLabel := headerLabel("MODIFIED", m.sort == SortByTime, "v")
	nameLabel := headerLabel("NAME", m.sort == SortByName, "^")

	// Calculate visible rows
	footerLines := 2
	visibleRows := m.height - headerLines - footerLines - 2
	if visibleRows < 5 {
		visibleRows = 5
	}

	// Determine scroll offset
	startIdx := 0
	if m.cursor >= visibleRows {
		startIdx = m.cursor - visibleRows + 1
	}
	endIdx := min(len(m.entries), startIdx+visibleRows)

	widths := calcColumnWidths(m.entries, startIdx, endIdx, sizeLabel, timeLabel)
	nameWidth := calcNameWidth(m.width, widths)
	gap := strings.Repeat(" ", colGap)

	header := fmt.Sprintf("%*s%s%-*s%s%s",
		widths.size, sizeLabel,
		gap,
		widths.modified, timeLabel,
		gap,
		truncateRight(nameLabel, nameWidth),
	)
	writeLine(headerStyle.Render(header))

	// Entries
	for i := startIdx; i < endIdx; i++ {
		line := m.formatEntry(m.entries[i], i == m.cursor, widths, nameWidth)
		b.WriteString(line)
		b.WriteString("\n")
	}

	// Pad if needed
	displayedRows := min(len(m.entries)-startIdx, visibleRows)
	for i := displayedRows; i < visibleRows; i++ {
		b.WriteString("\n")
	}

	// Footer
	help := m.helpLine()
	if len(m.entries) > 0 {
		help = fmt.Sprintf("%s [%d/%d]", help, m.cursor+1, len(m.entries))
	}
	b.WriteString(helpStyle.Render(help))

	return b.String()
}

type columnWidths struct {
	size     int
	modified int
}

const (
	colGap       = 2
	minNameWidth = 10
)

func calcColumnWidths(entries []entry.Entry, startIdx, endIdx int, sizeLabel, timeLabel string) columnWidths {
	w := columnWidths{
		size:     len(sizeLabel),
		modified: len(timeLabel),
	}

	for i := startIdx; i < endIdx; i++ {
		e := entries[i]
		if n := len(FormatSize(e.Size)); n > w.size {
			w.size = n
		}
		if n := len(FormatTime(e.Modified)); n > w.modified {
			w.modified = n
		}
	}

	return w
}

func calcNameWidth(totalWidth int, w columnWidths) int {
	nameWidth := totalWidth - w.size - w.modified - colGap*2
	if nameWidth < minNameWidth {
		nameWidth = minNameWidth
	}
	return nameWidth
}

func (m *Model) formatEntry(e entry.Entry, selected bool, widths columnWidths, nameWidth int) string {
	// Format name with type indicator
	var rawName string
	switch e.Kind {
	case entry.KindDir:
		rawName = e.Name + "/"
	case entry.KindSymlink:
		rawName = e.Name + "@"
	default:
		rawName = e.Name
	}
	rawName = truncateRight(rawName, nameWidth)

	size := fmt.Sprintf("%*s", widths.size, FormatSize(e.Size))
	modified := fmt.Sprintf("%-*s", widths.modified, FormatTime(e.Modified))
	gap := strings.Repeat(" ", colGap)

	if selected {
		return selectedStyle.Render(size + gap + modified + gap + rawName)
	}

	var styledName string
	switch e.Kind {
	case entry.KindDir:
		styledName = dirStyle.Render(rawName)
	case entry.KindSymlink:
		styledName = symlinkStyle.Render(rawName)
	default:
		styledName = fileStyle.Render(rawName)
	}
	return sizeStyle.Render(size) + gap + timeStyle.Render(modified) + gap + styledName
}

func truncateRight(s string, maxLen int) string {
	if maxLen <= 0 || len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

func headerLabel(label string, active bool, dir string) string {
	if active {
		return label + dir
	}
	return label
}

func truncateMiddle(s string, maxLen int) string {
	if maxLen <= 0 || len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	head := (maxLen - 3) / 2
	tail := maxLen - 3 - head
	return s[:head] + "..." + s[len(s)-tail:]
}
