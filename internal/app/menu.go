package app

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/willibrandon/quill/internal/storage/sqlite"
	"github.com/willibrandon/quill/internal/ui/styles"
)

// Menu texts
const (
	MenuTitle        = "Text Editor Menu"
	OpenFileLabel    = "Enter file name to open: "
	FileNotFoundText = "File not found. Press any key to continue."
)

// menuAction is what selecting a menu entry does
type menuAction int

const (
	actionNewFile menuAction = iota
	actionOpenFile
	actionOpenRecent
	actionQuit
)

type menuItem struct {
	action   menuAction
	label    string
	path     string
	openedAt string
}

// Menu is the start screen. It lists the fixed entries followed by recently
// opened files, and collects a file name for Open File.
type Menu struct {
	width  int
	height int

	items    []menuItem
	selected int

	input       textinput.Model
	inputActive bool
	notice      string
}

// NewMenu creates the start menu
func NewMenu() *Menu {
	ti := textinput.New()
	ti.Prompt = OpenFileLabel
	ti.CharLimit = 4096

	m := &Menu{input: ti}
	m.SetRecent(nil)
	return m
}

// SetSize sets the screen dimensions
func (m *Menu) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = max(10, min(60, width-len(OpenFileLabel)-4))
}

// SetRecent rebuilds the entries with the given recent files. The selection
// is kept on the same index when it still exists.
func (m *Menu) SetRecent(files []sqlite.RecentFile) {
	items := []menuItem{
		{action: actionNewFile, label: "Create New File"},
		{action: actionOpenFile, label: "Open File"},
	}
	for i, f := range files {
		if i == recentMenuLimit {
			break
		}
		items = append(items, menuItem{
			action:   actionOpenRecent,
			label:    f.Path,
			path:     f.Path,
			openedAt: humanize.Time(f.OpenedAt),
		})
	}
	items = append(items, menuItem{action: actionQuit, label: "Quit"})

	m.items = items
	m.selected = min(m.selected, len(items)-1)
}

// MoveUp selects the previous entry, wrapping to the last
func (m *Menu) MoveUp() {
	m.selected--
	if m.selected < 0 {
		m.selected = len(m.items) - 1
	}
}

// MoveDown selects the next entry, wrapping to the first
func (m *Menu) MoveDown() {
	m.selected = (m.selected + 1) % len(m.items)
}

// selectedItem returns the selected entry
func (m *Menu) selectedItem() menuItem {
	return m.items[m.selected]
}

// StartInput shows the file name prompt
func (m *Menu) StartInput() tea.Cmd {
	m.inputActive = true
	m.input.SetValue("")
	return m.input.Focus()
}

// StopInput hides the file name prompt and returns what was typed
func (m *Menu) StopInput() string {
	value := strings.TrimSpace(m.input.Value())
	m.inputActive = false
	m.input.Blur()
	m.input.SetValue("")
	return value
}

// InputActive reports whether the file name prompt is shown
func (m *Menu) InputActive() bool {
	return m.inputActive
}

// UpdateInput forwards a message to the file name prompt
func (m *Menu) UpdateInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

// ShowNotice displays a notice that is dismissed by any key
func (m *Menu) ShowNotice(text string) {
	m.notice = text
}

// DismissNotice clears the notice, reporting whether one was shown
func (m *Menu) DismissNotice() bool {
	shown := m.notice != ""
	m.notice = ""
	return shown
}

// Notice returns the current notice, empty when none
func (m *Menu) Notice() string {
	return m.notice
}

// View renders the menu
func (m *Menu) View() string {
	var b strings.Builder

	b.WriteString(styles.MenuTitleStyle.Render(MenuTitle))
	b.WriteString("\n\n")

	recentHeader := false
	for i, item := range m.items {
		if item.action == actionOpenRecent && !recentHeader {
			b.WriteString("\n")
			b.WriteString(styles.MenuSectionStyle.Render("Recent files"))
			b.WriteString("\n")
			recentHeader = true
		}
		if item.action == actionQuit && recentHeader {
			b.WriteString("\n")
		}

		label := item.label
		if item.action == actionOpenRecent {
			label = styles.Truncate(label, max(10, m.width-24))
		}
		if i == m.selected {
			b.WriteString(styles.MenuSelectedStyle.Render("> " + label))
		} else {
			b.WriteString(styles.MenuItemStyle.Render("  " + label))
		}
		if item.openedAt != "" {
			b.WriteString(" " + styles.MutedStyle.Render(item.openedAt))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch {
	case m.notice != "":
		b.WriteString(styles.WarningStyle.Render(m.notice))
	case m.inputActive:
		b.WriteString(m.input.View())
	default:
		b.WriteString(styles.MutedStyle.Render("↑/↓: Move • Enter: Select • ?: Help • Ctrl+Q: Quit"))
	}

	if m.width <= 0 || m.height <= 0 {
		return b.String()
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, b.String())
}
