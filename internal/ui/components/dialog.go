package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/mitchellh/go-wordwrap"

	"github.com/willibrandon/quill/internal/ui/styles"
)

// DialogType represents the kind of dialog.
type DialogType int

const (
	// DialogConfirm asks a yes or no question.
	DialogConfirm DialogType = iota
	// DialogError shows an error until any key is pressed.
	DialogError
)

// dialogWidth is the outer width of a dialog, borders included.
const dialogWidth = 60

// Dialog is a modal box drawn over a screen.
type Dialog struct {
	width      int
	height     int
	dialogType DialogType
	title      string
	body       string
	visible    bool
}

// NewDialog creates a new hidden dialog.
func NewDialog() *Dialog {
	return &Dialog{}
}

// Show displays the dialog with the given parameters.
func (d *Dialog) Show(dialogType DialogType, title, body string) {
	d.dialogType = dialogType
	d.title = title
	d.body = body
	d.visible = true
}

// Hide hides the dialog.
func (d *Dialog) Hide() {
	d.visible = false
}

// IsVisible returns whether the dialog is visible.
func (d *Dialog) IsVisible() bool {
	return d.visible
}

// Type returns the dialog type.
func (d *Dialog) Type() DialogType {
	return d.dialogType
}

// SetSize sets the screen dimensions the dialog is centered in.
func (d *Dialog) SetSize(width, height int) {
	d.width = width
	d.height = height
}

// View renders the dialog centered on the screen.
func (d *Dialog) View() string {
	if !d.visible {
		return ""
	}

	// Border and padding take 6 columns
	inner := dialogWidth - 6
	if d.width > 0 && d.width < dialogWidth {
		inner = max(10, d.width-6)
	}

	titleStyle := styles.DialogTitleStyle
	footer := "[y] Confirm  [n] Cancel"
	if d.dialogType == DialogError {
		titleStyle = titleStyle.Foreground(styles.Colors.Error)
		footer = "Press any key to continue"
	}

	parts := []string{titleStyle.Render(d.title)}
	if d.body != "" {
		parts = append(parts, wordwrap.WrapString(d.body, uint(inner)))
	}
	parts = append(parts, lipgloss.NewStyle().MarginTop(1).Bold(true).Render(footer))

	box := styles.DialogStyle.
		Width(inner + 4).
		Render(lipgloss.JoinVertical(lipgloss.Left, parts...))

	if d.width > 0 && d.height > 0 {
		return lipgloss.Place(d.width, d.height, lipgloss.Center, lipgloss.Center, box)
	}
	return box
}
