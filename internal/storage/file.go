// Package storage reads and writes documents on the local filesystem.
package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileStore loads and saves whole documents as newline separated text.
type FileStore struct {
	// TrailingNewline appends a final newline when saving.
	TrailingNewline bool
}

// NewFileStore creates a FileStore.
func NewFileStore(trailingNewline bool) *FileStore {
	return &FileStore{TrailingNewline: trailingNewline}
}

// Load reads the file at path and splits it into lines. A file that does not
// exist loads as a single empty line.
func (s *FileStore) Load(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{""}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return SplitLines(string(data)), nil
}

// Save writes lines joined by newlines to path. The content goes to a
// temporary file in the same directory first and is renamed into place, so a
// failed write never truncates the existing file.
func (s *FileStore) Save(path string, lines []string) error {
	content := strings.Join(lines, "\n")
	if s.TrailingNewline {
		content += "\n"
	}

	perm := fs.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		if info.IsDir() {
			return fmt.Errorf("cannot save %s: is a directory", path)
		}
		perm = info.Mode().Perm()
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to set permissions on %s: %w", path, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName) // Clean up temp file
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

// Exists reports whether path names an existing regular file.
func (s *FileStore) Exists(path string) bool {
	return Exists(path)
}

// Exists reports whether path names an existing regular file.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// SplitLines splits file content into lines. Both \n and \r\n end a line and
// a final line terminator does not produce an extra empty line.
func SplitLines(content string) []string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.TrimSuffix(content, "\n")
	if content == "" {
		return []string{""}
	}
	return strings.Split(content, "\n")
}
