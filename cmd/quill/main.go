package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/willibrandon/quill/internal/app"
	"github.com/willibrandon/quill/internal/config"
	"github.com/willibrandon/quill/internal/generator"
	"github.com/willibrandon/quill/internal/logger"
	"github.com/willibrandon/quill/internal/storage"
	"github.com/willibrandon/quill/internal/storage/sqlite"
	"github.com/willibrandon/quill/internal/ui/styles"
)

var (
	// Version info (set by ldflags)
	version = "dev"

	// Flags
	configPath string
	debug      bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		// Error already printed by cobra
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "quill [file]",
		Short: "Terminal text editor with generated text insertion",
		Long: `quill is a small terminal text editor. Press Ctrl+G to send a prompt to an
external text generator and review the result before it is inserted at the cursor.

Keys:
  Ctrl+S   Save (asks for a file name on new documents)
  Ctrl+Q   Quit
  Ctrl+G   Generate text from a prompt

Without a file argument quill starts on a menu to create or open a file.`,
		Version:      version,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEditor(args)
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default ~/.config/quill/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(
		newHistoryCmd(),
		newConfigCmd(),
	)
	return rootCmd
}

// loadConfig loads the configuration selected by the global flags
func loadConfig() (*config.Config, error) {
	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadFromPath(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if debug {
		cfg.Debug = true
	}
	return cfg, nil
}

// initLogging starts the file logger at the configured level
func initLogging(cfg *config.Config) {
	level, _ := logger.ParseLevel(cfg.Log.Level)
	if cfg.Debug {
		level = logger.LevelDebug
	}
	logger.Init(level, cfg.Log.Path)
	if cfg.Debug {
		fmt.Fprintf(os.Stderr, "Debug mode: Logs written to %s\n", logger.LogPath)
	}
}

// runEditor runs the interactive editor
func runEditor(args []string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("quill must be run in an interactive terminal")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	initLogging(cfg)
	defer logger.Close()
	logger.Info("quill starting", "version", version, "config", configPath)

	styles.Apply(cfg.UI.Theme)

	opts := []app.Option{
		app.WithStorage(storage.NewFileStore(cfg.Editor.TrailingNewline)),
	}

	if cmdGen, err := generator.NewCommand(cfg.Generator.Command, cfg.Generator.Timeout); err != nil {
		logger.Warn("text generation unavailable", "error", err)
	} else {
		opts = append(opts, app.WithGenerator(generator.NewTimed(cmdGen)))
	}

	if cfg.History.Enabled {
		db, err := sqlite.Open(cfg.History.Path)
		if err != nil {
			// The editor works without history
			logger.Warn("history database unavailable", "path", cfg.History.Path, "error", err)
		} else {
			defer db.Close()
			opts = append(opts,
				app.WithHistory(sqlite.NewGenerationStore(db)),
				app.WithRecentFiles(sqlite.NewRecentFileStore(db)),
			)
		}
	}

	if len(args) == 1 {
		opts = append(opts, app.WithFile(args[0]))
	}

	model, err := app.New(cfg, opts...)
	if err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if m, ok := finalModel.(app.Model); ok {
		m.Cleanup()
	}
	if err != nil {
		return fmt.Errorf("error running program: %w", err)
	}

	logger.Info("quill exited")
	return nil
}
