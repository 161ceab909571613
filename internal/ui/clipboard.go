package ui

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"sync"

	"golang.design/x/clipboard"
)

// ClipboardWriter provides cross-platform clipboard access with graceful degradation.
// The native clipboard is preferred; when it cannot be initialized (no display,
// no cgo) the platform copy tools are used instead.
type ClipboardWriter struct {
	native    bool
	tool      []string
	available bool
	errMsg    string
}

var (
	nativeOnce sync.Once
	nativeErr  error
)

// NewClipboardWriter creates a new ClipboardWriter and checks availability.
func NewClipboardWriter() *ClipboardWriter {
	cw := &ClipboardWriter{}
	cw.checkAvailability()
	return cw
}

// checkAvailability determines if clipboard is accessible.
func (cw *ClipboardWriter) checkAvailability() {
	nativeOnce.Do(func() {
		nativeErr = clipboard.Init()
	})
	if nativeErr == nil {
		cw.native = true
		cw.available = true
		return
	}

	cw.tool, cw.errMsg = copyTool(runtime.GOOS, lookPath)
	cw.available = cw.tool != nil
}

// copyTool picks the external copy command for goos.
func copyTool(goos string, look func(string) bool) ([]string, string) {
	switch goos {
	case "darwin":
		if look("pbcopy") {
			return []string{"pbcopy"}, ""
		}
		return nil, "pbcopy not found"

	case "linux":
		if look("xclip") {
			return []string{"xclip", "-selection", "clipboard"}, ""
		}
		if look("xsel") {
			return []string{"xsel", "--clipboard", "--input"}, ""
		}
		if look("wl-copy") {
			return []string{"wl-copy"}, ""
		}
		return nil, "clipboard tool not found (install xclip, xsel, or wl-copy)"

	case "windows":
		if look("clip") {
			return []string{"clip"}, ""
		}
		return nil, "clip.exe not found"
	}
	return nil, fmt.Sprintf("unsupported platform: %s", goos)
}

func lookPath(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// IsAvailable returns whether clipboard operations are supported.
func (cw *ClipboardWriter) IsAvailable() bool {
	return cw.available
}

// Error returns the reason clipboard is unavailable.
func (cw *ClipboardWriter) Error() string {
	return cw.errMsg
}

// Write copies text to the system clipboard.
func (cw *ClipboardWriter) Write(text string) error {
	if !cw.available {
		return fmt.Errorf("clipboard unavailable: %s", cw.errMsg)
	}

	if cw.native {
		clipboard.Write(clipboard.FmtText, []byte(text))
		return nil
	}

	cmd := exec.Command(cw.tool[0], cw.tool[1:]...)
	cmd.Stdin = strings.NewReader(text)
	return cmd.Run()
}
