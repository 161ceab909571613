// Package editor holds the in-memory document model, cursor and viewport
// coordination, and the input state machine that mutates the document.
package editor

import (
	"slices"
	"strings"
	"unicode/utf8"
)

// Document is an ordered sequence of text lines. It always holds at least
// one line; an empty document is a single empty line.
type Document struct {
	lines []string // Text content as lines, no trailing newline per line
}

// NewDocument creates a document from the given lines. The slice is copied.
func NewDocument(lines []string) *Document {
	if len(lines) == 0 {
		return &Document{lines: []string{""}}
	}
	return &Document{lines: slices.Clone(lines)}
}

// NewDocumentFromText splits text on newlines and creates a document from it.
func NewDocumentFromText(text string) *Document {
	return NewDocument(splitLines(text))
}

// Lines returns a copy of all lines in the document.
func (d *Document) Lines() []string {
	return slices.Clone(d.lines)
}

// Text returns the document content joined with newline separators.
func (d *Document) Text() string {
	return strings.Join(d.lines, "\n")
}

// LineCount returns the number of lines in the document.
func (d *Document) LineCount() int {
	return len(d.lines)
}

// Line returns the content of the line at the given index
// Returns an empty string if the index is out of bounds
func (d *Document) Line(idx int) string {
	if idx < 0 || idx >= len(d.lines) {
		return ""
	}
	return d.lines[idx]
}

// LineLength returns the length of the line at the given index in runes.
// Returns 0 if the index is out of bounds
func (d *Document) LineLength(idx int) int {
	if idx < 0 || idx >= len(d.lines) {
		return 0
	}
	return utf8.RuneCountInString(d.lines[idx])
}

// InsertNewline splits the cursor line at the cursor column. The text after
// the cursor moves to a new line below and the cursor moves to its start.
func (d *Document) InsertNewline(c *Cursor) {
	line := []rune(d.lines[c.Row])
	head, tail := string(line[:c.Col]), string(line[c.Col:])

	d.lines[c.Row] = head
	d.lines = slices.Insert(d.lines, c.Row+1, tail)

	c.Row++
	c.Col = 0
}

// DeleteBackward removes the character before the cursor. At the start of a
// line the line is joined onto the previous one. At (0, 0) nothing happens.
func (d *Document) DeleteBackward(c *Cursor) {
	if c.Col > 0 {
		line := []rune(d.lines[c.Row])
		d.lines[c.Row] = string(line[:c.Col-1]) + string(line[c.Col:])
		c.Col--
		return
	}

	if c.Row == 0 {
		return
	}

	prevLen := d.LineLength(c.Row - 1)
	d.lines[c.Row-1] += d.lines[c.Row]
	d.lines = slices.Delete(d.lines, c.Row, c.Row+1)

	c.Row--
	c.Col = prevLen
}

// InsertChar inserts a single character at the cursor and advances the cursor.
// Callers filter non-printable input before getting here.
func (d *Document) InsertChar(c *Cursor, ch rune) {
	line := []rune(d.lines[c.Row])
	d.lines[c.Row] = string(line[:c.Col]) + string(ch) + string(line[c.Col:])
	c.Col++
}

// InsertMultiline splices text into the document at the cursor. The first
// segment joins the cursor line, every further segment becomes a new line,
// and the remainder of the original line follows the last segment. The cursor
// ends just after the inserted text.
func (d *Document) InsertMultiline(c *Cursor, text string) {
	segments := splitSegments(text)

	line := []rune(d.lines[c.Row])
	head, tail := string(line[:c.Col]), string(line[c.Col:])

	if len(segments) == 1 {
		d.lines[c.Row] = head + segments[0] + tail
		c.Col += utf8.RuneCountInString(segments[0])
		return
	}

	last := segments[len(segments)-1]
	inserted := make([]string, 0, len(segments)-1)
	inserted = append(inserted, segments[1:len(segments)-1]...)
	inserted = append(inserted, last+tail)

	d.lines[c.Row] = head + segments[0]
	d.lines = slices.Insert(d.lines, c.Row+1, inserted...)

	c.Row += len(segments) - 1
	c.Col = utf8.RuneCountInString(last)
}

// splitSegments splits text on newline boundaries, keeping empty segments.
func splitSegments(text string) []string {
	return strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
}

// splitLines splits file-style text into lines. A single trailing newline
// does not produce an extra empty line.
func splitLines(text string) []string {
	if text == "" {
		return []string{""}
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, "\n")
}
