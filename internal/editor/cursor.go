package editor

// Cursor represents a position in the document with row and column coordinates.
// Col may equal the line length, meaning "after the last character".
type Cursor struct {
	Row int // Zero-based line index
	Col int // Zero-based column index, in runes
}

// Left moves one column left. It does not wrap to the previous line.
func (c *Cursor) Left(d *Document) {
	if c.Col > 0 {
		c.Col--
	}
}

// Right moves one column right. It does not wrap to the next line.
func (c *Cursor) Right(d *Document) {
	if c.Col < d.LineLength(c.Row) {
		c.Col++
	}
}

// Up moves to the previous line, snapping the column to that line's length.
func (c *Cursor) Up(d *Document) {
	if c.Row > 0 {
		c.Row--
		c.Col = min(c.Col, d.LineLength(c.Row))
	}
}

// Down moves to the next line, snapping the column to that line's length.
func (c *Cursor) Down(d *Document) {
	if c.Row < d.LineCount()-1 {
		c.Row++
		c.Col = min(c.Col, d.LineLength(c.Row))
	}
}

// Clamp keeps the cursor within the bounds of the document.
func (c *Cursor) Clamp(d *Document) {
	if c.Row >= d.LineCount() {
		c.Row = d.LineCount() - 1
	}
	if c.Row < 0 {
		c.Row = 0
	}

	lineLen := d.LineLength(c.Row)
	if c.Col > lineLen {
		c.Col = lineLen
	}
	if c.Col < 0 {
		c.Col = 0
	}
}

// Valid reports whether the cursor is within the bounds of the document.
func (c Cursor) Valid(d *Document) bool {
	return c.Row >= 0 && c.Row < d.LineCount() &&
		c.Col >= 0 && c.Col <= d.LineLength(c.Row)
}
