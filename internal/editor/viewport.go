package editor

// ReservedRows is the number of terminal rows not available for document
// lines. One row holds the status line.
const ReservedRows = 1

// VisibleHeight returns the number of document rows that fit in a terminal
// of the given height. It is never less than one.
func VisibleHeight(terminalHeight int) int {
	return max(1, terminalHeight-ReservedRows)
}

// Recompute returns the first visible line so that row is on screen.
// If the row is above the window the window scrolls up to it, if it is
// below the window scrolls down until it is the last visible line.
func Recompute(row, top, visibleHeight int) int {
	visibleHeight = max(1, visibleHeight)
	top = max(0, top)

	if row < top {
		return row
	}
	if row >= top+visibleHeight {
		return row - visibleHeight + 1
	}
	return top
}

// Viewport maps a window of document lines to screen rows.
type Viewport struct {
	Top    int // First visible document line
	Height int // Number of visible document lines
}

// SetTerminalHeight updates the visible height for a resized terminal and
// scrolls so the given row stays visible.
func (v *Viewport) SetTerminalHeight(terminalHeight, row int) {
	v.Height = VisibleHeight(terminalHeight)
	v.Follow(row)
}

// Follow scrolls the viewport to keep row visible.
func (v *Viewport) Follow(row int) {
	v.Top = Recompute(row, v.Top, v.Height)
}

// Range returns the [start, end) interval of document lines on screen.
func (v Viewport) Range(lineCount int) (start, end int) {
	start = min(v.Top, max(0, lineCount-1))
	end = min(start+max(1, v.Height), lineCount)
	return start, end
}
