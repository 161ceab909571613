package app

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/willibrandon/quill/internal/editor"
	"github.com/willibrandon/quill/internal/generator"
)

// FormatSaveError formats a save error with actionable guidance
func FormatSaveError(err error, path string) string {
	errMsg := err.Error()

	if errors.Is(err, editor.ErrNoStorage) {
		return fmt.Sprintf(
			"No storage is configured for this session.\n\n"+
				"The document could not be written to %s.\n"+
				"\nOriginal error: %s", path, errMsg)
	}

	if strings.Contains(errMsg, "permission denied") {
		return fmt.Sprintf(
			"Permission denied: Cannot write %s.\n\n"+
				"Troubleshooting steps:\n"+
				"  1. Check the file and directory permissions: ls -l\n"+
				"  2. Save under a different name in a directory you own\n"+
				"\nOriginal error: %s", path, errMsg)
	}

	if strings.Contains(errMsg, "no such file or directory") {
		return fmt.Sprintf(
			"Directory not found: Cannot write %s.\n\n"+
				"Troubleshooting steps:\n"+
				"  1. Verify the directory part of the file name exists\n"+
				"  2. Create it first: mkdir -p <directory>\n"+
				"\nOriginal error: %s", path, errMsg)
	}

	if strings.Contains(errMsg, "is a directory") {
		return fmt.Sprintf(
			"%s is a directory.\n\n"+
				"Troubleshooting steps:\n"+
				"  1. Save again and enter a file name instead of a directory\n"+
				"\nOriginal error: %s", path, errMsg)
	}

	if strings.Contains(errMsg, "no space left") || strings.Contains(errMsg, "read-only file system") {
		return fmt.Sprintf(
			"The file system refused the write.\n\n"+
				"Troubleshooting steps:\n"+
				"  1. Check free space: df -h\n"+
				"  2. Verify the file system is mounted read-write\n"+
				"\nOriginal error: %s", errMsg)
	}

	return fmt.Sprintf(
		"Could not save %s:\n\n"+
			"%s\n\n"+
			"Your changes are still in the editor. Try saving again.", path, errMsg)
}

// FormatGenerationError formats a generator failure with actionable guidance
func FormatGenerationError(err error, command string) string {
	errMsg := err.Error()

	var genErr *generator.Error
	switch {
	case errors.Is(err, editor.ErrNoGenerator), errors.Is(err, generator.ErrEmptyCommand):
		return "No text generator is configured.\n\n" +
			"Troubleshooting steps:\n" +
			"  1. Set generator.command in config.yaml\n" +
			"  2. Or set the QUILL_GENERATOR_COMMAND environment variable\n"

	case errors.Is(err, exec.ErrNotFound):
		return fmt.Sprintf(
			"Generator not found: %q could not be started.\n\n"+
				"Troubleshooting steps:\n"+
				"  1. Verify the program is installed and on your PATH\n"+
				"  2. Check generator.command in config.yaml\n"+
				"\nOriginal error: %s", command, errMsg)

	case errors.Is(err, generator.ErrTimeout):
		return fmt.Sprintf(
			"Generation timeout: The generator did not respond in time.\n\n"+
				"Troubleshooting steps:\n"+
				"  1. Try a shorter prompt\n"+
				"  2. Increase generator.timeout in config.yaml (0 waits forever)\n"+
				"\nOriginal error: %s", errMsg)

	case errors.As(err, &genErr):
		return fmt.Sprintf(
			"The generator reported an error:\n\n"+
				"%s\n\n"+
				"Troubleshooting steps:\n"+
				"  1. Run the generator by hand: echo 'prompt' | %s\n"+
				"  2. Check any credentials or services it depends on\n", genErr.Message, command)
	}

	return fmt.Sprintf(
		"Text generation failed:\n\n"+
			"%s\n\n"+
			"Check generator.command in config.yaml.", errMsg)
}

// FormatOpenError formats an error reading a file
func FormatOpenError(err error, path string) string {
	errMsg := err.Error()

	if strings.Contains(errMsg, "permission denied") {
		return fmt.Sprintf(
			"Permission denied: Cannot read %s.\n\n"+
				"Troubleshooting steps:\n"+
				"  1. Check the file permissions: ls -l %s\n"+
				"\nOriginal error: %s", path, path, errMsg)
	}

	return fmt.Sprintf(
		"Could not open %s:\n\n"+
			"%s", path, errMsg)
}
