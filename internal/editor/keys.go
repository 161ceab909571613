package editor

import "unicode"

// KeyKind classifies an input event understood by the session.
type KeyKind int

const (
	KeyRune KeyKind = iota
	KeyEnter
	KeyBackspace
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeySave
	KeyQuit
	KeyGenerate
	KeyEscape
)

// String returns the name of the key kind
func (k KeyKind) String() string {
	return [...]string{
		"rune", "enter", "backspace", "left", "right", "up", "down",
		"save", "quit", "generate", "escape",
	}[k]
}

// Key is a single input event. Rune is only set for KeyRune.
type Key struct {
	Kind KeyKind
	Rune rune
}

// RuneKey returns a KeyRune event for r.
func RuneKey(r rune) Key {
	return Key{Kind: KeyRune, Rune: r}
}

// KeysFor returns one KeyRune event per character of s.
func KeysFor(s string) []Key {
	keys := make([]Key, 0, len(s))
	for _, r := range s {
		keys = append(keys, RuneKey(r))
	}
	return keys
}

// IsPrintable reports whether r may be inserted into the document.
// Control characters, including tab and newline, are rejected.
func IsPrintable(r rune) bool {
	if r >= 32 && r <= 126 {
		return true
	}
	return r > 126 && unicode.IsPrint(r)
}
