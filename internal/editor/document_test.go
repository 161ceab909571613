package editor

import (
	"slices"
	"testing"
)

func TestNewDocument(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  []string
	}{
		{"nil is one empty line", nil, []string{""}},
		{"empty is one empty line", []string{}, []string{""}},
		{"lines are kept", []string{"a", "b"}, []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDocument(tt.lines)
			if got := d.Lines(); !slices.Equal(got, tt.want) {
				t.Errorf("Lines() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewDocumentCopiesInput(t *testing.T) {
	src := []string{"one"}
	d := NewDocument(src)
	src[0] = "changed"

	if d.Line(0) != "one" {
		t.Errorf("Expected document to be independent of input, got %q", d.Line(0))
	}
}

func TestNewDocumentFromText(t *testing.T) {
	tests := []struct {
		text string
		want []string
	}{
		{"", []string{""}},
		{"a", []string{"a"}},
		{"a\nb\n", []string{"a", "b"}},
		{"a\r\nb", []string{"a", "b"}},
		{"a\n\n", []string{"a", ""}},
	}

	for _, tt := range tests {
		if got := NewDocumentFromText(tt.text).Lines(); !slices.Equal(got, tt.want) {
			t.Errorf("NewDocumentFromText(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestLineOutOfBounds(t *testing.T) {
	d := NewDocument([]string{"héllo"})

	if d.Line(5) != "" || d.Line(-1) != "" {
		t.Error("Expected empty string for out of range lines")
	}
	if d.LineLength(0) != 5 {
		t.Errorf("Expected rune length 5, got %d", d.LineLength(0))
	}
	if d.LineLength(3) != 0 {
		t.Errorf("Expected 0 for out of range line, got %d", d.LineLength(3))
	}
}

func TestInsertNewline(t *testing.T) {
	tests := []struct {
		name       string
		lines      []string
		cursor     Cursor
		wantLines  []string
		wantCursor Cursor
	}{
		{"middle of line", []string{"hello"}, Cursor{0, 2}, []string{"he", "llo"}, Cursor{1, 0}},
		{"end of line", []string{"hello"}, Cursor{0, 5}, []string{"hello", ""}, Cursor{1, 0}},
		{"start of line", []string{"hello"}, Cursor{0, 0}, []string{"", "hello"}, Cursor{1, 0}},
		{"between lines", []string{"a", "b"}, Cursor{0, 1}, []string{"a", "", "b"}, Cursor{1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDocument(tt.lines)
			c := tt.cursor
			d.InsertNewline(&c)

			if got := d.Lines(); !slices.Equal(got, tt.wantLines) {
				t.Errorf("Lines() = %q, want %q", got, tt.wantLines)
			}
			if c != tt.wantCursor {
				t.Errorf("Cursor = %+v, want %+v", c, tt.wantCursor)
			}
		})
	}
}

func TestDeleteBackward(t *testing.T) {
	tests := []struct {
		name       string
		lines      []string
		cursor     Cursor
		wantLines  []string
		wantCursor Cursor
	}{
		{"joins lines", []string{"ab", "cd"}, Cursor{1, 0}, []string{"abcd"}, Cursor{0, 2}},
		{"removes character", []string{"abc"}, Cursor{0, 2}, []string{"ac"}, Cursor{0, 1}},
		{"origin is a no-op", []string{"abc"}, Cursor{0, 0}, []string{"abc"}, Cursor{0, 0}},
		{"joins empty line", []string{"ab", ""}, Cursor{1, 0}, []string{"ab"}, Cursor{0, 2}},
		{"multibyte character", []string{"héllo"}, Cursor{0, 2}, []string{"hllo"}, Cursor{0, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDocument(tt.lines)
			c := tt.cursor
			d.DeleteBackward(&c)

			if got := d.Lines(); !slices.Equal(got, tt.wantLines) {
				t.Errorf("Lines() = %q, want %q", got, tt.wantLines)
			}
			if c != tt.wantCursor {
				t.Errorf("Cursor = %+v, want %+v", c, tt.wantCursor)
			}
		})
	}
}

func TestInsertChar(t *testing.T) {
	d := NewDocument([]string{"ac"})
	c := Cursor{0, 1}
	d.InsertChar(&c, 'b')

	if d.Line(0) != "abc" {
		t.Errorf("Expected 'abc', got %q", d.Line(0))
	}
	if c != (Cursor{0, 2}) {
		t.Errorf("Expected cursor (0, 2), got %+v", c)
	}

	d.InsertChar(&c, 'é')
	if d.Line(0) != "abéc" || c.Col != 3 {
		t.Errorf("Expected 'abéc' with col 3, got %q col %d", d.Line(0), c.Col)
	}
}

func TestInsertMultiline(t *testing.T) {
	tests := []struct {
		name       string
		lines      []string
		cursor     Cursor
		text       string
		wantLines  []string
		wantCursor Cursor
	}{
		{"two segments", []string{"x"}, Cursor{0, 1}, "A\nB", []string{"xA", "B"}, Cursor{1, 1}},
		{"single segment", []string{"ab"}, Cursor{0, 1}, "XY", []string{"aXYb"}, Cursor{0, 3}},
		{"keeps tail", []string{"head tail"}, Cursor{0, 5}, "1\n2\n3", []string{"head 1", "2", "3tail"}, Cursor{2, 1}},
		{"trailing newline", []string{"ab"}, Cursor{0, 2}, "c\n", []string{"abc", ""}, Cursor{1, 0}},
		{"empty text", []string{"ab"}, Cursor{0, 1}, "", []string{"ab"}, Cursor{0, 1}},
		{"crlf", []string{""}, Cursor{0, 0}, "a\r\nb", []string{"a", "b"}, Cursor{1, 1}},
		{"later lines shift", []string{"a", "z"}, Cursor{0, 1}, "\nb", []string{"a", "b", "z"}, Cursor{1, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDocument(tt.lines)
			c := tt.cursor
			d.InsertMultiline(&c, tt.text)

			if got := d.Lines(); !slices.Equal(got, tt.wantLines) {
				t.Errorf("Lines() = %q, want %q", got, tt.wantLines)
			}
			if c != tt.wantCursor {
				t.Errorf("Cursor = %+v, want %+v", c, tt.wantCursor)
			}
		})
	}
}

func TestDocumentText(t *testing.T) {
	d := NewDocument([]string{"a", "", "b"})
	if d.Text() != "a\n\nb" {
		t.Errorf("Expected joined text, got %q", d.Text())
	}
	if d.LineCount() != 3 {
		t.Errorf("Expected 3 lines, got %d", d.LineCount())
	}
}
