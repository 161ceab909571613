package editor

import "testing"

func TestVisibleHeight(t *testing.T) {
	tests := []struct {
		terminal int
		want     int
	}{
		{24, 23},
		{2, 1},
		{1, 1},
		{0, 1},
		{-5, 1},
	}

	for _, tt := range tests {
		if got := VisibleHeight(tt.terminal); got != tt.want {
			t.Errorf("VisibleHeight(%d) = %d, want %d", tt.terminal, got, tt.want)
		}
	}
}

func TestRecompute(t *testing.T) {
	tests := []struct {
		name             string
		row, top, height int
		want             int
	}{
		{"visible row keeps top", 5, 0, 10, 0},
		{"row above scrolls up", 2, 4, 10, 2},
		{"row below scrolls down", 10, 0, 10, 1},
		{"last visible row keeps top", 9, 0, 10, 0},
		{"height one follows row", 7, 0, 1, 7},
		{"zero height treated as one", 3, 0, 0, 3},
		{"negative top treated as zero", 0, -3, 5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Recompute(tt.row, tt.top, tt.height); got != tt.want {
				t.Errorf("Recompute(%d, %d, %d) = %d, want %d",
					tt.row, tt.top, tt.height, got, tt.want)
			}
		})
	}
}

func TestViewportSetTerminalHeight(t *testing.T) {
	v := Viewport{Top: 0, Height: 23}
	v.Follow(30)
	if v.Top != 8 {
		t.Fatalf("Expected top 8, got %d", v.Top)
	}

	// Shrinking keeps the cursor row on screen
	v.SetTerminalHeight(6, 30)
	if v.Height != 5 {
		t.Errorf("Expected height 5, got %d", v.Height)
	}
	if v.Top > 30 || 30 > v.Top+v.Height-1 {
		t.Errorf("Row 30 not visible with top %d height %d", v.Top, v.Height)
	}
}

func TestViewportRange(t *testing.T) {
	tests := []struct {
		name       string
		v          Viewport
		lineCount  int
		start, end int
	}{
		{"short document", Viewport{Top: 0, Height: 10}, 3, 0, 3},
		{"window in the middle", Viewport{Top: 5, Height: 4}, 20, 5, 9},
		{"top past end", Viewport{Top: 10, Height: 4}, 3, 2, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := tt.v.Range(tt.lineCount)
			if start != tt.start || end != tt.end {
				t.Errorf("Range(%d) = (%d, %d), want (%d, %d)",
					tt.lineCount, start, end, tt.start, tt.end)
			}
		})
	}
}
