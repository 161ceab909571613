package generator

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"
)

// script writes a shell script and returns a Command that runs it.
func script(t *testing.T, body string) *Command {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("generator scripts need a POSIX shell")
	}

	path := filepath.Join(t.TempDir(), "gen.sh")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0755); err != nil {
		t.Fatalf("Failed to write script: %v", err)
	}
	return &Command{Name: "sh", Args: []string{path}}
}

func TestNewCommand(t *testing.T) {
	cmd, err := NewCommand("  python   tet.py --fast ", time.Second)
	if err != nil {
		t.Fatalf("NewCommand() error = %v", err)
	}
	if cmd.Name != "python" || len(cmd.Args) != 2 || cmd.Args[1] != "--fast" {
		t.Errorf("Unexpected command %+v", cmd)
	}
	if cmd.String() != "python tet.py --fast" {
		t.Errorf("Unexpected String() %q", cmd.String())
	}

	if _, err := NewCommand("   ", 0); !errors.Is(err, ErrEmptyCommand) {
		t.Errorf("Expected ErrEmptyCommand, got %v", err)
	}
}

func TestGenerateEchoesPrompt(t *testing.T) {
	cmd := script(t, `read line; printf '  generated: %s\n\n' "$line"`)

	text, err := cmd.Generate(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if text != "generated: hello" {
		t.Errorf("Expected trimmed output, got %q", text)
	}
}

func TestGenerateMultilineOutput(t *testing.T) {
	cmd := script(t, `printf 'one\r\ntwo\n'`)

	text, err := cmd.Generate(context.Background(), "p")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if text != "one\ntwo" {
		t.Errorf("Expected normalized lines, got %q", text)
	}
}

func TestGenerateErrorOutput(t *testing.T) {
	cmd := script(t, `echo "Error: timeout"`)

	_, err := cmd.Generate(context.Background(), "hello")
	var genErr *Error
	if !errors.As(err, &genErr) {
		t.Fatalf("Expected *Error, got %v", err)
	}
	if genErr.Message != "timeout" {
		t.Errorf("Expected message 'timeout', got %q", genErr.Message)
	}
}

func TestGenerateStderrIsFailure(t *testing.T) {
	cmd := script(t, `echo "partial"; echo "model not loaded" >&2`)

	_, err := cmd.Generate(context.Background(), "hello")
	if err == nil || err.Error() != "model not loaded" {
		t.Errorf("Expected stderr as error, got %v", err)
	}
}

func TestGenerateNonZeroExit(t *testing.T) {
	cmd := script(t, `exit 3`)

	_, err := cmd.Generate(context.Background(), "hello")
	if err == nil {
		t.Fatal("Expected error for non-zero exit")
	}
	var genErr *Error
	if errors.As(err, &genErr) {
		t.Errorf("Expected exit error, not helper error: %v", err)
	}
}

func TestGenerateMissingProgram(t *testing.T) {
	cmd := &Command{Name: "quill-no-such-generator"}
	if _, err := cmd.Generate(context.Background(), "hello"); err == nil {
		t.Error("Expected error for missing program")
	}
}

func TestGenerateTimeout(t *testing.T) {
	cmd := script(t, `exec sleep 5`)
	cmd.Timeout = 50 * time.Millisecond

	start := time.Now()
	_, err := cmd.Generate(context.Background(), "hello")
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("Expected ErrTimeout, got %v", err)
	}
	if time.Since(start) > 3*time.Second {
		t.Errorf("Timeout took too long: %v", time.Since(start))
	}
}

func TestGenerateTimeoutKillsChildProcesses(t *testing.T) {
	cmd := script(t, "sleep 5\necho done")
	cmd.Timeout = 50 * time.Millisecond

	start := time.Now()
	_, err := cmd.Generate(context.Background(), "hello")
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("Expected ErrTimeout, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > 3*time.Second {
		t.Errorf("Expected the wrapped child to be killed, waited %v", elapsed)
	}
}

func TestGenerateCancelledWhileRunning(t *testing.T) {
	cmd := script(t, "sleep 5")

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(50*time.Millisecond, cancel)

	start := time.Now()
	if _, err := cmd.Generate(ctx, "hello"); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > 3*time.Second {
		t.Errorf("Cancellation took too long: %v", elapsed)
	}
}

func TestGenerateCancelled(t *testing.T) {
	cmd := script(t, `exec sleep 5`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := cmd.Generate(ctx, "hello"); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}
