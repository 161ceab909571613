package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/willibrandon/quill/internal/editor"
)

// KeyMap defines all keyboard bindings for the application
type KeyMap struct {
	// Commands
	Save     key.Binding
	Quit     key.Binding
	Generate key.Binding
	Help     key.Binding
	Debug    key.Binding

	// Editing
	Enter     key.Binding
	Backspace key.Binding
	Escape    key.Binding

	// Navigation
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
}

// DefaultKeyMap returns the default keyboard bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+q", "ctrl+c"),
			key.WithHelp("ctrl+q", "quit"),
		),
		Generate: key.NewBinding(
			key.WithKeys("ctrl+g"),
			key.WithHelp("ctrl+g", "generate"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "toggle help"),
		),
		Debug: key.NewBinding(
			key.WithKeys("f2"),
			key.WithHelp("f2", "debug panel"),
		),

		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "new line / submit"),
		),
		Backspace: key.NewBinding(
			key.WithKeys("backspace", "ctrl+h"),
			key.WithHelp("backspace", "delete"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),

		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "right"),
		),
	}
}

// ShortHelp returns a quick help view for the key bindings
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Save, k.Quit, k.Generate}
}

// FullHelp returns the full help view for all key bindings
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Save, k.Quit, k.Generate, k.Help, k.Debug},
		{k.Enter, k.Backspace, k.Escape},
		{k.Up, k.Down, k.Left, k.Right},
	}
}

// ToEditorKey translates a terminal key event into an editor key. It reports
// false for keys the editor does not understand.
func (k KeyMap) ToEditorKey(msg tea.KeyMsg) (editor.Key, bool) {
	switch {
	case key.Matches(msg, k.Save):
		return editor.Key{Kind: editor.KeySave}, true
	case key.Matches(msg, k.Quit):
		return editor.Key{Kind: editor.KeyQuit}, true
	case key.Matches(msg, k.Generate):
		return editor.Key{Kind: editor.KeyGenerate}, true
	case key.Matches(msg, k.Enter):
		return editor.Key{Kind: editor.KeyEnter}, true
	case key.Matches(msg, k.Backspace):
		return editor.Key{Kind: editor.KeyBackspace}, true
	case key.Matches(msg, k.Escape):
		return editor.Key{Kind: editor.KeyEscape}, true
	case key.Matches(msg, k.Up):
		return editor.Key{Kind: editor.KeyUp}, true
	case key.Matches(msg, k.Down):
		return editor.Key{Kind: editor.KeyDown}, true
	case key.Matches(msg, k.Left):
		return editor.Key{Kind: editor.KeyLeft}, true
	case key.Matches(msg, k.Right):
		return editor.Key{Kind: editor.KeyRight}, true
	}

	switch msg.Type {
	case tea.KeyRunes:
		// Pasted text arrives as one message; only single characters map
		if len(msg.Runes) == 1 && !msg.Alt {
			return editor.RuneKey(msg.Runes[0]), true
		}
	case tea.KeySpace:
		return editor.RuneKey(' '), true
	}
	return editor.Key{}, false
}

// ToEditorKeys translates a key event into editor keys, expanding pasted
// text into one key per character. Newlines in pasted text become Enter.
func (k KeyMap) ToEditorKeys(msg tea.KeyMsg) []editor.Key {
	if msg.Type == tea.KeyRunes && (msg.Paste || len(msg.Runes) > 1) && !msg.Alt {
		keys := make([]editor.Key, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			switch r {
			case '\r':
				continue
			case '\n':
				keys = append(keys, editor.Key{Kind: editor.KeyEnter})
			default:
				keys = append(keys, editor.RuneKey(r))
			}
		}
		return keys
	}

	if ek, ok := k.ToEditorKey(msg); ok {
		return []editor.Key{ek}
	}
	return nil
}
