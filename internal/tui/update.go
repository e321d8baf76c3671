package tui

import (
	"fmt"

	"github.com/michaelscutari/pathfold/internal/entry"
	"github.com/michaelscutari/pathfold/internal/pathutil"

	tea "github.com/charmbracelet/bubbletea"
)

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case entriesLoadedMsg:
		if msg.err != nil {
			if !m.loaded {
				m.err = msg.err
				return m, nil
			}
			// Stay where we are; the target could not be listed
			m.status = fmt.Sprintf("cannot open %s: %v", msg.path, msg.err)
			return m, nil
		}
		m.loaded = true
		m.currentPath = msg.path
		m.errorCount = msg.errors
		m.filter = ""
		m.filterActive = false
		m.status = ""
		m.setEntries(msg.entries)
		return m, nil

	case recordedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("record failed: %v", msg.err)
		} else {
			m.status = fmt.Sprintf("recorded listing #%d (%d entries)", msg.listing.ID, len(msg.listing.Entries))
		}
		return m, nil
	}

	return m, nil
}

func (m *Model) open(fragment string) tea.Cmd {
	next, err := pathutil.Join(m.currentPath, fragment)
	if err != nil {
		m.status = err.Error()
		return nil
	}
	if next == m.currentPath {
		return nil
	}
	return m.loadEntries(next)
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.filterActive {
		switch msg.String() {
		case "enter":
			m.filterActive = false
			return m, nil

		case "esc":
			m.filterActive = false
			m.filter = ""
			m.applyFilter()
			return m, nil

		case "backspace":
			if len(m.filter) > 0 {
				runes := []rune(m.filter)
				m.filter = string(runes[:len(runes)-1])
				m.applyFilter()
			}
			return m, nil

		case "ctrl+c":
			return m, tea.Quit
		}

		if msg.Type == tea.KeyRunes {
			m.filter += msg.String()
			m.applyFilter()
			return m, nil
		}

		return m, nil
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down", "j":
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}
		return m, nil

	case "enter", "l", "right":
		if len(m.entries) > 0 && m.cursor < len(m.entries) {
			selected := m.entries[m.cursor]
			if selected.Kind == entry.KindDir {
				return m, m.open(selected.Name)
			}
		}
		return m, nil

	case "backspace", "h", "left":
		return m, m.open("..")

	case "~":
		return m, m.open(m.startPath)

	case "u":
		return m, m.loadEntries(m.currentPath)

	case "r":
		if m.recorder == nil {
			return m, nil
		}
		m.status = "recording..."
		return m, m.recordCurrent()

	case "s":
		m.sort = SortBySize
		m.sortEntries()
		m.applyFilter()
		return m, nil

	case "n":
		m.sort = SortByName
		m.sortEntries()
		m.applyFilter()
		return m, nil

	case "m":
		m.sort = SortByTime
		m.sortEntries()
		m.applyFilter()
		return m, nil

	case "/":
		m.filterActive = true
		return m, nil

	case "home", "g":
		m.cursor = 0
		return m, nil

	case "end", "G":
		if len(m.entries) > 0 {
			m.cursor = len(m.entries) - 1
		}
		return m, nil

	case "pgup":
		m.cursor -= 10
		if m.cursor < 0 {
			m.cursor = 0
		}
		return m, nil

	case "pgdown":
		m.cursor += 10
		if m.cursor >= len(m.entries) {
			m.cursor = len(m.entries) - 1
		}
		if m.cursor < 0 {
			m.cursor = 0
		}
		return m, nil
	}

	return m, nil
}
