package styles

import "github.com/charmbracelet/lipgloss"

// Editor styles
var (
	// StatusBarStyle is the reverse video status line
	StatusBarStyle lipgloss.Style

	// PromptStyle is for the prompt row below the status line
	PromptStyle lipgloss.Style

	// CursorStyle marks the cursor cell
	CursorStyle lipgloss.Style

	// GeneratingStyle is for the spinner row while the generator runs
	GeneratingStyle lipgloss.Style
)

// Preview styles
var (
	// PreviewTitleStyle is for the preview heading
	PreviewTitleStyle lipgloss.Style

	// PreviewContextStyle is for document lines around the insertion
	PreviewContextStyle lipgloss.Style

	// PreviewInsertedStyle highlights the lines containing generated text
	PreviewInsertedStyle lipgloss.Style
)

// Menu styles
var (
	// MenuTitleStyle is for the menu title
	MenuTitleStyle lipgloss.Style

	// MenuItemStyle is for unselected entries
	MenuItemStyle lipgloss.Style

	// MenuSelectedStyle is for the selected entry
	MenuSelectedStyle lipgloss.Style

	// MenuSectionStyle is for section labels such as "Recent files"
	MenuSectionStyle lipgloss.Style
)

// Dialog styles
var (
	// DialogStyle wraps confirmation dialogs
	DialogStyle lipgloss.Style

	// DialogTitleStyle is for dialog titles
	DialogTitleStyle lipgloss.Style
)

// Message styles
var (
	SuccessStyle lipgloss.Style
	ErrorStyle   lipgloss.Style
	WarningStyle lipgloss.Style
	MutedStyle   lipgloss.Style
	AccentStyle  lipgloss.Style
)

func build(p Palette) {
	StatusBarStyle = lipgloss.NewStyle().
		Foreground(p.StatusFg).
		Background(p.StatusBg)
	PromptStyle = lipgloss.NewStyle().
		Bold(true)
	CursorStyle = lipgloss.NewStyle().
		Reverse(true)
	GeneratingStyle = lipgloss.NewStyle().
		Foreground(p.Accent)

	PreviewTitleStyle = lipgloss.NewStyle().
		Foreground(p.Accent).
		Bold(true).
		MarginBottom(1)
	PreviewContextStyle = lipgloss.NewStyle().
		Foreground(p.Muted)
	PreviewInsertedStyle = lipgloss.NewStyle().
		Foreground(p.Inserted).
		Bold(true)

	MenuTitleStyle = lipgloss.NewStyle().
		Foreground(p.Accent).
		Bold(true).
		MarginBottom(1)
	MenuItemStyle = lipgloss.NewStyle().
		Padding(0, 2)
	MenuSelectedStyle = MenuItemStyle.
		Foreground(p.SelectedFg).
		Background(p.SelectedBg)
	MenuSectionStyle = lipgloss.NewStyle().
		Foreground(p.Muted).
		MarginTop(1)

	DialogStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Accent).
		Padding(1, 2)
	DialogTitleStyle = lipgloss.NewStyle().
		Foreground(p.Accent).
		Bold(true).
		MarginBottom(1)

	SuccessStyle = lipgloss.NewStyle().Foreground(p.Success)
	ErrorStyle = lipgloss.NewStyle().Foreground(p.Error)
	WarningStyle = lipgloss.NewStyle().Foreground(p.Warning)
	MutedStyle = lipgloss.NewStyle().Foreground(p.Muted)
	AccentStyle = lipgloss.NewStyle().Foreground(p.Accent)
}

func init() {
	build(Colors)
}
