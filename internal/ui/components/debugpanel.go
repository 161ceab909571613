package components

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/willibrandon/quill/internal/logger"
	"github.com/willibrandon/quill/internal/ui/styles"
)

// DebugPanel displays recent warnings and errors captured by the logger.
type DebugPanel struct {
	viewport viewport.Model
	width    int
	height   int
	visible  bool
}

// NewDebugPanel creates a new debug panel.
func NewDebugPanel() *DebugPanel {
	return &DebugPanel{viewport: viewport.New(56, 6)}
}

// SetSize sets the panel dimensions.
func (d *DebugPanel) SetSize(width, height int) {
	d.width = width
	d.height = height

	// Panel takes up 80% width, 60% height, centered
	d.viewport.Width = d.panelWidth() - 4 // Border and padding
	d.viewport.Height = max(10, height*60/100) - 4
}

func (d *DebugPanel) panelWidth() int {
	return max(60, d.width*80/100)
}

// Show shows the panel.
func (d *DebugPanel) Show() {
	d.visible = true
	d.refresh()
}

// Hide hides the panel.
func (d *DebugPanel) Hide() {
	d.visible = false
}

// IsVisible returns whether the panel is visible.
func (d *DebugPanel) IsVisible() bool {
	return d.visible
}

// refresh updates the viewport content with current log entries.
func (d *DebugPanel) refresh() {
	var lines []string
	for _, e := range logger.Entries() {
		style := styles.MutedStyle
		switch e.Level {
		case slog.LevelWarn:
			style = styles.WarningStyle
		case slog.LevelError:
			style = styles.ErrorStyle
		}
		lines = append(lines, style.Render(e.Format()))
	}

	if len(lines) == 0 {
		lines = append(lines, styles.MutedStyle.Render("No warnings or errors"))
	}

	d.viewport.SetContent(strings.Join(lines, "\n"))
	d.viewport.GotoBottom()
}

// Update handles messages. Esc or F2 closes the panel, c clears the captured
// entries, and other keys scroll.
func (d *DebugPanel) Update(msg tea.Msg) tea.Cmd {
	if !d.visible {
		return nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc", "f2":
			d.Hide()
			return nil
		case "c":
			logger.Reset()
			d.refresh()
			return nil
		}
	}

	var cmd tea.Cmd
	d.viewport, cmd = d.viewport.Update(msg)
	return cmd
}

// View renders the panel as an overlay.
func (d *DebugPanel) View() string {
	if !d.visible {
		return ""
	}

	warnCount, errCount := logger.Counts()
	header := styles.DialogTitleStyle.Render("Debug Panel") +
		styles.MutedStyle.Render(fmt.Sprintf(" (%d warnings, %d errors)", warnCount, errCount))
	help := styles.MutedStyle.Render("[F2/Esc] close  [c] clear  [↑/↓] scroll")

	width := d.panelWidth()
	content := lipgloss.JoinVertical(lipgloss.Left,
		header,
		strings.Repeat("─", width-4),
		d.viewport.View(),
		strings.Repeat("─", width-4),
		help,
	)

	panel := styles.DialogStyle.Width(width).Render(content)
	if d.width <= 0 {
		return panel
	}

	// Center the panel
	return lipgloss.Place(d.width, d.height,
		lipgloss.Center, lipgloss.Center,
		panel,
	)
}
