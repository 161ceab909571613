// Package styles provides centralized Lipgloss styling for the quill UI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette is the set of colors a theme is built from.
type Palette struct {
	Accent  lipgloss.Color // Titles, highlights
	Muted   lipgloss.Color // Secondary text
	Border  lipgloss.Color // All borders
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color

	// Status line
	StatusFg lipgloss.Color
	StatusBg lipgloss.Color

	// Selection in menus and the cursor cell
	SelectedFg lipgloss.Color
	SelectedBg lipgloss.Color

	// Generated text in the preview
	Inserted lipgloss.Color
}

// DarkPalette is used on dark terminals
var DarkPalette = Palette{
	Accent:     lipgloss.Color("6"),   // Cyan
	Muted:      lipgloss.Color("8"),   // Dark gray
	Border:     lipgloss.Color("240"), // Gray
	Success:    lipgloss.Color("10"),  // Green
	Warning:    lipgloss.Color("11"),  // Yellow
	Error:      lipgloss.Color("9"),   // Red
	StatusFg:   lipgloss.Color("0"),
	StatusBg:   lipgloss.Color("7"),
	SelectedFg: lipgloss.Color("229"), // Light yellow text
	SelectedBg: lipgloss.Color("57"),  // Purple background
	Inserted:   lipgloss.Color("10"),
}

// LightPalette is used on light terminals
var LightPalette = Palette{
	Accent:     lipgloss.Color("25"),
	Muted:      lipgloss.Color("245"),
	Border:     lipgloss.Color("250"),
	Success:    lipgloss.Color("28"),
	Warning:    lipgloss.Color("130"),
	Error:      lipgloss.Color("160"),
	StatusFg:   lipgloss.Color("15"),
	StatusBg:   lipgloss.Color("238"),
	SelectedFg: lipgloss.Color("0"),
	SelectedBg: lipgloss.Color("153"),
	Inserted:   lipgloss.Color("28"),
}

// Colors is the active palette
var Colors = DarkPalette
