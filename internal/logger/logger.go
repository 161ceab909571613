// Package logger provides the structured logger used across quill.
//
// Records are written as JSON to a rotating file. Warnings and errors are
// also kept in memory, with their attributes, for the debug panel and the
// status bar counters.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// journalSize is the number of warnings and errors kept in memory.
const journalSize = 100

// Level is the minimum level written to the log.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = map[Level]string{
	LevelDebug: "debug",
	LevelInfo:  "info",
	LevelWarn:  "warn",
	LevelError: "error",
}

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("level(%d)", int(l))
}

// ParseLevel parses a level name such as "info" or "WARN".
func ParseLevel(s string) (Level, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "warning" {
		name = "warn"
	}
	for level, n := range levelNames {
		if n == name {
			return level, nil
		}
	}
	return LevelInfo, fmt.Errorf("unknown log level %q (want debug, info, warn or error)", s)
}

func (l Level) slog() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

var (
	// Log is the global structured logger
	Log *slog.Logger
	// LogPath is the path to the current log file
	LogPath string

	logWriter    *lumberjack.Logger
	entries      *journal
	debugEnabled bool
)

// DefaultPath returns ~/.config/quill/quill.log, falling back to the
// temporary directory when there is no home directory.
func DefaultPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.TempDir()
	}
	return filepath.Join(homeDir, ".config", "quill", "quill.log")
}

// Init initializes the global logger writing JSON to a rotating file.
// An empty logPath selects DefaultPath.
func Init(level Level, logPath string) {
	if logPath == "" {
		logPath = DefaultPath()
	}
	_ = os.MkdirAll(filepath.Dir(logPath), 0755)
	LogPath = logPath

	logWriter = &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     7, // days
		Compress:   true,
	}
	InitWithWriter(level, logWriter)
}

// InitWithWriter initializes the global logger writing JSON to w.
func InitWithWriter(level Level, w io.Writer) {
	debugEnabled = level == LevelDebug
	entries = newJournal(journalSize)

	inner := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level.slog()})
	Log = slog.New(&captureHandler{inner: inner, journal: entries})
	slog.SetDefault(Log)
}

// Close closes the log file
func Close() {
	if logWriter != nil {
		logWriter.Close()
	}
}

func getLogger() *slog.Logger {
	if Log != nil {
		return Log
	}
	return slog.Default()
}

// Debug logs a debug message
func Debug(msg string, args ...any) {
	getLogger().Debug(msg, args...)
}

// Info logs an info message
func Info(msg string, args ...any) {
	getLogger().Info(msg, args...)
}

// Warn logs a warning message
func Warn(msg string, args ...any) {
	getLogger().Warn(msg, args...)
}

// Error logs an error message
func Error(msg string, args ...any) {
	getLogger().Error(msg, args...)
}

// With creates a new logger with additional attributes
func With(args ...any) *slog.Logger {
	return getLogger().With(args...)
}

// Counts returns how many warnings and errors were logged since Init or the
// last Reset.
func Counts() (warn, err int) {
	if entries == nil {
		return 0, 0
	}
	return entries.counts()
}

// Entries returns the kept warnings and errors, oldest first.
func Entries() []Entry {
	if entries == nil {
		return nil
	}
	return entries.all()
}

// Reset forgets the kept entries and zeroes the counters.
func Reset() {
	if entries != nil {
		entries.reset()
	}
}

// IsDebugEnabled returns true if debug logging is active.
func IsDebugEnabled() bool {
	return debugEnabled
}
