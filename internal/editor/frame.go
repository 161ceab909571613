package editor

import (
	"fmt"
	"strings"
)

// GeneratingLabel is shown on the prompt row while the generator runs.
const GeneratingLabel = "Generating text... Please wait."

// PreviewQuestion is shown on the prompt row while previewing generated text.
const PreviewQuestion = "Add this text? (y/n)"

// Frame is everything a renderer needs to draw one screen. The session
// computes it; it never draws.
type Frame struct {
	Lines     []string // Visible document lines
	FirstLine int      // Document index of Lines[0]
	CursorRow int      // Cursor row relative to Lines[0]
	CursorCol int      // Cursor column in runes
	Status    string   // Status line text
	Prompt    string   // Prompt row text, empty while editing
	Message   string   // Transient message, empty when none
	Mode      Mode
}

// Frame computes the visible portion of the document and the status texts.
func (s *Session) Frame() Frame {
	start, end := s.viewport.Range(s.doc.LineCount())
	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		lines = append(lines, s.doc.Line(i))
	}

	return Frame{
		Lines:     lines,
		FirstLine: start,
		CursorRow: s.cursor.Row - start,
		CursorCol: s.cursor.Col,
		Status:    s.statusLine(),
		Prompt:    s.promptLine(),
		Message:   s.message,
		Mode:      s.mode,
	}
}

func (s *Session) statusLine() string {
	name := s.DisplayName()
	if s.modified {
		name += " [+]"
	}

	status := fmt.Sprintf(" %s | Line %d/%d | Col %d",
		name, s.cursor.Row+1, s.doc.LineCount(), s.cursor.Col+1)
	if s.hints {
		status += " | Ctrl+S: Save | Ctrl+Q: Quit | Ctrl+G: Generate"
	}
	return status
}

func (s *Session) promptLine() string {
	if s.generating {
		return GeneratingLabel
	}

	switch m := s.mode.(type) {
	case ConfirmPrompt:
		return m.Question()
	case TextInputPrompt:
		return m.Label() + " " + m.Input
	case GeneratedTextPreview:
		return PreviewQuestion
	}
	return ""
}

// PreviewWindow is the context shown around previewed generated text.
type PreviewWindow struct {
	Before   []string // Up to two lines above the anchor line
	Inserted []string // The anchor line with the generated text spliced in
	After    []string // Up to three lines below the anchor line
}

// Preview returns the preview window when previewing generated text.
func (s *Session) Preview() (PreviewWindow, bool) {
	m, ok := s.mode.(GeneratedTextPreview)
	if !ok {
		return PreviewWindow{}, false
	}

	n := s.doc.LineCount()
	row := min(m.Row, n-1)
	start := max(0, row-2)
	end := min(n, row+4)

	line := []rune(s.doc.Line(row))
	col := min(m.Col, len(line))
	spliced := string(line[:col]) + m.Text + string(line[col:])

	return PreviewWindow{
		Before:   s.doc.Lines()[start:row],
		Inserted: strings.Split(strings.ReplaceAll(spliced, "\r\n", "\n"), "\n"),
		After:    s.doc.Lines()[row+1 : end],
	}, true
}
