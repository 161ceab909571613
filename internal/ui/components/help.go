package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/willibrandon/quill/internal/ui/styles"
)

// HelpSection is a titled group of key bindings
type HelpSection struct {
	Title    string
	Bindings []key.Binding
}

// HelpText represents the help component
type HelpText struct {
	width    int
	height   int
	sections []HelpSection
}

// NewHelp creates a new help component
func NewHelp(sections ...HelpSection) *HelpText {
	return &HelpText{sections: sections}
}

// SetSize sets the size of the help component
func (h *HelpText) SetSize(width, height int) {
	h.width = width
	h.height = height
}

// View renders the help screen
func (h *HelpText) View() string {
	var b strings.Builder

	b.WriteString(styles.DialogTitleStyle.Render("Keyboard Shortcuts"))
	b.WriteString("\n\n")

	for i, section := range h.sections {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(styles.MenuSectionStyle.Render(section.Title))
		b.WriteString("\n")
		for _, binding := range section.Bindings {
			if !binding.Enabled() {
				continue
			}
			help := binding.Help()
			b.WriteString(h.formatShortcut(help.Key, help.Desc))
		}
	}
	b.WriteString("\n")
	b.WriteString(styles.MutedStyle.Render("Press any key to close"))

	dialog := styles.DialogStyle.Render(b.String())

	// Center the dialog
	if h.width > 0 {
		dialog = lipgloss.Place(
			h.width,
			h.height,
			lipgloss.Center,
			lipgloss.Center,
			dialog,
		)
	}

	return dialog
}

// formatShortcut formats a keyboard shortcut with its description
func (h *HelpText) formatShortcut(keys, description string) string {
	keyStyle := lipgloss.NewStyle().
		Foreground(styles.Colors.Accent).
		Bold(true).
		Width(14).
		Align(lipgloss.Left)

	return keyStyle.Render(keys) + description + "\n"
}
