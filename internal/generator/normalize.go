package generator

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/x/ansi"
)

// Normalize prepares helper output for insertion into a document. Line
// endings become \n, terminal escape sequences are removed and other control
// characters are dropped. Tabs are kept.
func Normalize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = ansi.Strip(text)

	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, text)
}
