package components

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/willibrandon/quill/internal/ui/styles"
)

// tabWidth is the number of columns between tab stops.
const tabWidth = 4

// cell is one drawable unit of a line: a character, or a tab expanded to
// spaces.
type cell struct {
	text  string
	width int
	col   int // Rune index in the line
}

// layoutLine splits a line into cells, expanding tabs to the next tab stop.
func layoutLine(line string) []cell {
	cells := make([]cell, 0, len(line))
	visual := 0
	col := 0
	for _, r := range line {
		if r == '\t' {
			spaces := tabWidth - (visual % tabWidth)
			cells = append(cells, cell{text: strings.Repeat(" ", spaces), width: spaces, col: col})
			visual += spaces
		} else {
			w := max(1, runewidth.RuneWidth(r))
			cells = append(cells, cell{text: string(r), width: w, col: col})
			visual += w
		}
		col++
	}
	return cells
}

// VisualColumn converts a rune column into a screen column, accounting for
// tabs and wide characters.
func VisualColumn(line string, col int) int {
	visual := 0
	for _, c := range layoutLine(line) {
		if c.col >= col {
			break
		}
		visual += c.width
	}
	return visual
}

// EditorView draws the visible document lines with a cursor cell. Lines wider
// than the view scroll horizontally to keep the cursor on screen.
type EditorView struct {
	width  int
	height int
}

// NewEditorView creates a new editor view
func NewEditorView() *EditorView {
	return &EditorView{}
}

// SetSize sets the dimensions of the text area
func (v *EditorView) SetSize(width, height int) {
	v.width = width
	v.height = height
}

// View renders lines with the cursor at (cursorRow, cursorCol), relative to
// the first line. A negative cursorRow hides the cursor. The result always
// has exactly height rows.
func (v *EditorView) View(lines []string, cursorRow, cursorCol int) string {
	width := max(1, v.width)
	height := max(1, v.height)

	offset := 0
	if cursorRow >= 0 && cursorRow < len(lines) {
		if vis := VisualColumn(lines[cursorRow], cursorCol); vis >= width {
			offset = vis - width + 1
		}
	}

	rows := make([]string, height)
	for i := 0; i < height && i < len(lines); i++ {
		col := -1
		if i == cursorRow {
			col = cursorCol
		}
		rows[i] = renderLine(lines[i], offset, width, col)
	}
	return strings.Join(rows, "\n")
}

// renderLine draws the part of line starting at screen column offset that
// fits in width columns. cursorCol < 0 means the cursor is not on this line.
func renderLine(line string, offset, width, cursorCol int) string {
	var sb strings.Builder
	visual := 0
	used := 0
	cursorDrawn := false

	for _, c := range layoutLine(line) {
		start := visual
		visual += c.width
		if visual <= offset {
			continue
		}

		text := c.text
		w := c.width
		if start < offset {
			// Wide character or tab cut by the left edge
			w = visual - offset
			text = strings.Repeat(" ", w)
		}
		if used+w > width {
			break
		}

		if c.col == cursorCol {
			sb.WriteString(styles.CursorStyle.Render(text))
			cursorDrawn = true
		} else {
			sb.WriteString(text)
		}
		used += w
	}

	// Cursor after the last character
	if cursorCol >= 0 && !cursorDrawn && used < width {
		sb.WriteString(styles.CursorStyle.Render(" "))
	}
	return sb.String()
}
