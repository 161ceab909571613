package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestDialogVisibility(t *testing.T) {
	d := NewDialog()
	if d.IsVisible() || d.View() != "" {
		t.Fatal("Expected new dialog to be hidden")
	}

	d.Show(DialogConfirm, "Quit", "Leave quill?")
	if !d.IsVisible() || d.Type() != DialogConfirm {
		t.Fatal("Expected visible confirm dialog")
	}

	view := ansi.Strip(d.View())
	for _, want := range []string{"Quit", "Leave quill?", "[y] Confirm  [n] Cancel"} {
		if !strings.Contains(view, want) {
			t.Errorf("Expected %q in dialog, got:\n%s", want, view)
		}
	}

	d.Hide()
	if d.IsVisible() {
		t.Error("Expected dialog hidden")
	}
}

func TestErrorDialogWrapsBody(t *testing.T) {
	d := NewDialog()
	body := strings.Repeat("word ", 30)
	d.Show(DialogError, "Save failed", body)

	view := ansi.Strip(d.View())
	if !strings.Contains(view, "Press any key to continue") {
		t.Errorf("Expected error footer, got:\n%s", view)
	}
	for _, line := range strings.Split(view, "\n") {
		if w := ansi.StringWidth(line); w > dialogWidth {
			t.Errorf("Line wider than dialog (%d): %q", w, line)
		}
	}
}

func TestDialogCentered(t *testing.T) {
	d := NewDialog()
	d.SetSize(100, 30)
	d.Show(DialogConfirm, "Quit", "")

	lines := strings.Split(d.View(), "\n")
	if len(lines) != 30 {
		t.Errorf("Expected dialog placed on a 30 row screen, got %d rows", len(lines))
	}
}
