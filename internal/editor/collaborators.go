package editor

import (
	"context"
	"errors"
)

var (
	// ErrNoStorage is reported when saving without a configured Storage.
	ErrNoStorage = errors.New("no storage configured")
	// ErrNoGenerator is reported when generating without a configured Generator.
	ErrNoGenerator = errors.New("no text generator configured")
)

// Storage loads and saves a whole document as a sequence of lines.
type Storage interface {
	// Load returns the lines of the file at path. A missing file yields a
	// single empty line, not an error.
	Load(path string) ([]string, error)

	// Save overwrites the file at path with lines joined by newlines.
	Save(path string, lines []string) error
}

// Generator turns a prompt into generated text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeneratorFunc adapts an ordinary function to the Generator interface.
type GeneratorFunc func(ctx context.Context, prompt string) (string, error)

// Generate calls f(ctx, prompt).
func (f GeneratorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}
