// Package generator runs the external text generation helper.
package generator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/willibrandon/quill/internal/logger"
)

const (
	// errorPrefix marks a failure reported by the helper on stdout.
	errorPrefix = "Error: "
	// waitDelay bounds how long output pipes are drained after the helper is
	// killed.
	waitDelay = 500 * time.Millisecond
)

var (
	// ErrEmptyCommand is returned when no helper command is configured.
	ErrEmptyCommand = errors.New("empty generator command")
	// ErrTimeout is returned when the helper does not finish in time.
	ErrTimeout = errors.New("generator timed out")
)

// Error is a failure reported by the helper itself.
type Error struct {
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Command runs an external program that reads a prompt on stdin and writes
// the generated text to stdout.
type Command struct {
	Name    string
	Args    []string
	Timeout time.Duration // 0 waits until the helper exits
	Dir     string        // Working directory, empty for the current one
}

// NewCommand parses a command line such as "python tet.py". Arguments are
// split on whitespace.
func NewCommand(command string, timeout time.Duration) (*Command, error) {
	parts := strings.Fields(command)
	if len(parts) == 0 {
		return nil, ErrEmptyCommand
	}
	return &Command{
		Name:    parts[0],
		Args:    parts[1:],
		Timeout: timeout,
	}, nil
}

// String returns the command line.
func (c *Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// Generate runs the helper with prompt on stdin. Output on stderr, a non-zero
// exit, or stdout starting with "Error: " are failures; otherwise the trimmed
// and normalized stdout is returned.
func (c *Command) Generate(ctx context.Context, prompt string) (string, error) {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	cmd.WaitDelay = waitDelay
	killProcessGroup(cmd)
	cmd.Stdin = strings.NewReader(prompt)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logger.Debug("running generator", "command", c.String(), "prompt_len", len(prompt))

	err := cmd.Run()
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("%w after %s", ErrTimeout, c.Timeout)
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", &Error{Message: msg}
		}
		return "", fmt.Errorf("generator command failed: %w", err)
	}

	if msg := strings.TrimSpace(stderr.String()); msg != "" {
		return "", &Error{Message: msg}
	}

	out := strings.TrimSpace(stdout.String())
	if rest, ok := strings.CutPrefix(out, errorPrefix); ok {
		return "", &Error{Message: strings.TrimSpace(rest)}
	}
	return Normalize(out), nil
}
