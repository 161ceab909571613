package app

import (
	"time"

	"github.com/willibrandon/quill/internal/storage/sqlite"
)

// GenerationDoneMsg is sent when the generator returns
type GenerationDoneMsg struct {
	Prompt   string
	Text     string
	Err      error
	Duration time.Duration
}

// RecentFilesMsg is sent when the recent file list has been loaded
type RecentFilesMsg struct {
	Files []sqlite.RecentFile
}

// HistoryRecordedMsg is sent after a generation has been written to history
type HistoryRecordedMsg struct {
	ID  string
	Err error
}
