package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Theme names accepted by Apply.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// Apply switches the active palette and rebuilds every style. Unknown names
// select the dark theme.
func Apply(themeName string) {
	switch themeName {
	case ThemeLight:
		Colors = LightPalette
	default:
		Colors = DarkPalette
	}
	build(Colors)
}

// Truncate shortens text to maxWidth cells, ending with an ellipsis when cut.
// Escape sequences are preserved.
func Truncate(text string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	return ansi.Truncate(text, maxWidth, "…")
}

// Center centers text within a given width
func Center(text string, width int) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, text)
}
