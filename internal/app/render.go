package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/willibrandon/quill/internal/editor"
	"github.com/willibrandon/quill/internal/ui/styles"
)

// PreviewTitle heads the generated text preview screen
const PreviewTitle = "Generated text preview:"

// latencyReporter is implemented by generators that track how long they take
type latencyReporter interface {
	Average() time.Duration
}

// renderEditor draws the document area and the status row
func (m Model) renderEditor() string {
	frame := m.session.Frame()

	cursorRow := frame.CursorRow
	if _, editing := frame.Mode.(editor.Editing); !editing || m.session.Generating() {
		cursorRow = -1
	}

	m.editorView.SetSize(m.width, editor.VisibleHeight(m.height))
	body := m.editorView.View(frame.Lines, cursorRow, frame.CursorCol)

	return body + "\n" + m.renderStatusRow(frame)
}

// renderStatusRow fills the status bar from the frame. Prompts take the row
// over while active.
func (m Model) renderStatusRow(frame editor.Frame) string {
	prompt := frame.Prompt
	switch {
	case m.session.Generating():
		prompt = m.spinner.View() + " " + editor.GeneratingLabel + m.latencyHint()
	case prompt != "":
		if _, ok := frame.Mode.(editor.TextInputPrompt); ok {
			prompt += styles.CursorStyle.Render(" ")
		}
	}

	m.statusBar.SetSize(m.width)
	m.statusBar.SetStatus(frame.Status)
	m.statusBar.SetPrompt(prompt)
	m.statusBar.SetMessage(frame.Message, frame.Message != "" && m.session.LastError() != nil)
	return m.statusBar.View()
}

// latencyHint describes the typical generation time, when known
func (m Model) latencyHint() string {
	lr, ok := m.generator.(latencyReporter)
	if !ok {
		return ""
	}
	avg := lr.Average()
	if avg <= 0 {
		return ""
	}
	return fmt.Sprintf(" (usually %s)", avg.Round(100*time.Millisecond))
}

// renderPreview draws the generated text in the context of the lines around
// the insertion point
func (m Model) renderPreview(pw editor.PreviewWindow) string {
	width := max(1, m.width)
	rows := []string{styles.PreviewTitleStyle.Render(PreviewTitle), ""}

	for _, line := range pw.Before {
		rows = append(rows, styles.PreviewContextStyle.Render(previewLine(line, width)))
	}
	for _, line := range pw.Inserted {
		rows = append(rows, styles.PreviewInsertedStyle.Render(previewLine(line, width)))
	}
	for _, line := range pw.After {
		rows = append(rows, styles.PreviewContextStyle.Render(previewLine(line, width)))
	}

	height := editor.VisibleHeight(m.height)
	if len(rows) > height {
		rows = rows[:height]
		rows[height-1] = styles.MutedStyle.Render("…")
	}
	for len(rows) < height {
		rows = append(rows, "")
	}

	return strings.Join(rows, "\n") + "\n" + m.renderStatusRow(m.session.Frame())
}

func previewLine(line string, width int) string {
	return styles.Truncate(strings.ReplaceAll(line, "\t", "    "), width)
}
