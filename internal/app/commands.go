package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/willibrandon/quill/internal/editor"
	"github.com/willibrandon/quill/internal/logger"
	"github.com/willibrandon/quill/internal/storage/sqlite"
)

// recentMenuLimit is the number of recent files offered by the menu
const recentMenuLimit = 5

// historyWriteTimeout bounds a single history write
const historyWriteTimeout = 5 * time.Second

// runGeneration creates a command that runs the generator for prompt
func runGeneration(ctx context.Context, gen editor.Generator, prompt string) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		text, err := gen.Generate(ctx, prompt)
		return GenerationDoneMsg{
			Prompt:   prompt,
			Text:     text,
			Err:      err,
			Duration: time.Since(start),
		}
	}
}

// recordGeneration creates a command that stores a generation outcome
func recordGeneration(history GenerationHistory, g *sqlite.Generation) tea.Cmd {
	if history == nil || g == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), historyWriteTimeout)
		defer cancel()

		if err := history.Add(ctx, g); err != nil {
			logger.Warn("failed to record generation", "error", err)
			return HistoryRecordedMsg{Err: err}
		}
		return HistoryRecordedMsg{ID: g.ID}
	}
}

// loadRecentFiles creates a command that reads the recent file list
func loadRecentFiles(recent RecentFiles) tea.Cmd {
	if recent == nil {
		return nil
	}
	return func() tea.Msg {
		files, err := recent.List(recentMenuLimit)
		if err != nil {
			logger.Warn("failed to load recent files", "error", err)
			return RecentFilesMsg{}
		}
		return RecentFilesMsg{Files: files}
	}
}

// touchRecent creates a command that marks path as recently used
func touchRecent(recent RecentFiles, path string) tea.Cmd {
	if recent == nil || path == "" {
		return nil
	}
	return func() tea.Msg {
		if err := recent.Touch(path); err != nil {
			logger.Warn("failed to update recent files", "file", path, "error", err)
		}
		return nil
	}
}

// forgetRecent creates a command that drops a missing file from the recent
// list and reloads it
func forgetRecent(recent RecentFiles, path string) tea.Cmd {
	if recent == nil {
		return nil
	}
	return func() tea.Msg {
		if err := recent.Remove(path); err != nil {
			logger.Warn("failed to remove recent file", "file", path, "error", err)
		}
		return loadRecentFiles(recent)()
	}
}
