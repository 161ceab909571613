package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/willibrandon/quill/internal/logger"
	"github.com/willibrandon/quill/internal/ui/styles"
)

// StatusBar is the bottom row of the editor screen. It shows, in order of
// precedence, an active prompt, a transient message, or the status text.
type StatusBar struct {
	width int

	status  string
	prompt  string
	message string
	isError bool
}

// NewStatusBar creates a new status bar component
func NewStatusBar() *StatusBar {
	return &StatusBar{}
}

// SetSize sets the width of the status bar
func (s *StatusBar) SetSize(width int) {
	s.width = width
}

// SetStatus sets the file and cursor summary
func (s *StatusBar) SetStatus(status string) {
	s.status = status
}

// SetPrompt sets the active prompt text, empty when none
func (s *StatusBar) SetPrompt(prompt string) {
	s.prompt = prompt
}

// SetMessage sets a transient message
func (s *StatusBar) SetMessage(message string, isError bool) {
	s.message = message
	s.isError = isError
}

// View renders the status bar
func (s *StatusBar) View() string {
	if s.prompt != "" {
		return s.fit(styles.PromptStyle, s.prompt)
	}

	if s.message != "" {
		style := styles.StatusBarStyle.Foreground(styles.Colors.Success)
		if s.isError {
			style = styles.StatusBarStyle.Foreground(styles.Colors.Error).Bold(true)
		}
		return s.fit(style, " "+s.message)
	}

	return s.fit(styles.StatusBarStyle, s.status+s.debugSection())
}

// debugSection renders warning and error counts, only in debug mode
func (s *StatusBar) debugSection() string {
	if !logger.IsDebugEnabled() {
		return ""
	}
	warnCount, errCount := logger.Counts()
	if warnCount == 0 && errCount == 0 {
		return ""
	}

	var parts []string
	if warnCount > 0 {
		parts = append(parts, fmt.Sprintf("⚠ %d", warnCount))
	}
	if errCount > 0 {
		parts = append(parts, fmt.Sprintf("✕ %d", errCount))
	}
	return " | " + strings.Join(parts, " ")
}

// fit truncates text to the bar width and pads it so the background spans
// the whole row.
func (s *StatusBar) fit(style lipgloss.Style, text string) string {
	if s.width <= 0 {
		return style.Render(text)
	}
	text = ansi.Truncate(text, s.width, "")
	return style.Width(s.width).MaxWidth(s.width).Render(text)
}
