// Package app implements the quill terminal application: the start menu, the
// editor screen and the glue between the editor session and its collaborators.
package app

import (
	"context"
	"path/filepath"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/willibrandon/quill/internal/config"
	"github.com/willibrandon/quill/internal/editor"
	"github.com/willibrandon/quill/internal/logger"
	"github.com/willibrandon/quill/internal/storage/sqlite"
	"github.com/willibrandon/quill/internal/ui"
	"github.com/willibrandon/quill/internal/ui/components"
	"github.com/willibrandon/quill/internal/ui/styles"
)

// Storage loads and saves documents and checks that a file exists
type Storage interface {
	editor.Storage
	Exists(path string) bool
}

// GenerationHistory records generation outcomes
type GenerationHistory interface {
	Add(ctx context.Context, g *sqlite.Generation) error
}

// RecentFiles tracks recently opened files
type RecentFiles interface {
	Touch(path string) error
	List(limit int) ([]sqlite.RecentFile, error)
	Remove(path string) error
}

// screen is the top level screen being shown
type screen int

const (
	screenMenu screen = iota
	screenEditor
)

// Model represents the main Bubbletea application model
type Model struct {
	// Configuration
	config *config.Config

	// Collaborators
	storage   Storage
	generator editor.Generator
	history   GenerationHistory
	recent    RecentFiles

	// UI state
	width       int
	height      int
	screen      screen
	helpVisible bool

	// Keyboard bindings
	keys ui.KeyMap

	// UI components
	help       *components.HelpText
	debugPanel *components.DebugPanel
	menu       *Menu
	dialog     *components.Dialog
	statusBar  *components.StatusBar
	editorView *components.EditorView
	spinner    spinner.Model

	// Editing state
	session *editor.Session
	file    string // File given on the command line
	pending *sqlite.Generation

	// Lifetime of background generation requests
	ctx    context.Context
	cancel context.CancelFunc
}

// Option configures the application model
type Option func(*Model)

// WithStorage sets the document storage
func WithStorage(s Storage) Option {
	return func(m *Model) {
		m.storage = s
	}
}

// WithGenerator sets the text generator
func WithGenerator(g editor.Generator) Option {
	return func(m *Model) {
		m.generator = g
	}
}

// WithHistory enables recording of generations
func WithHistory(h GenerationHistory) Option {
	return func(m *Model) {
		m.history = h
	}
}

// WithRecentFiles enables the recent files list
func WithRecentFiles(r RecentFiles) Option {
	return func(m *Model) {
		m.recent = r
	}
}

// WithFile opens path directly, skipping the start menu. Quitting the editor
// then exits the application.
func WithFile(path string) Option {
	return func(m *Model) {
		m.file = path
	}
}

// New creates a new application model
func New(cfg *config.Config, opts ...Option) (Model, error) {
	ctx, cancel := context.WithCancel(context.Background())

	keys := ui.DefaultKeyMap()
	keys.Debug.SetEnabled(logger.IsDebugEnabled())
	groups := keys.FullHelp()

	m := Model{
		config: cfg,
		keys:   keys,
		help: components.NewHelp(
			components.HelpSection{Title: "Commands", Bindings: groups[0]},
			components.HelpSection{Title: "Editing", Bindings: groups[1]},
			components.HelpSection{Title: "Navigation", Bindings: groups[2]},
		),
		debugPanel: components.NewDebugPanel(),
		menu:       NewMenu(),
		dialog:     components.NewDialog(),
		statusBar:  components.NewStatusBar(),
		editorView: components.NewEditorView(),
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(styles.GeneratingStyle),
		),
		width:  80,
		height: 24,
		screen: screenMenu,
		ctx:    ctx,
		cancel: cancel,
	}
	for _, opt := range opts {
		opt(&m)
	}

	if m.file != "" {
		session, err := m.openSession(m.file)
		if err != nil {
			cancel()
			return Model{}, err
		}
		m.session = session
		m.screen = screenEditor
	}

	return m, nil
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	if m.screen == screenEditor {
		return tea.Batch(
			tea.SetWindowTitle("quill - "+filepath.Base(m.session.DisplayName())),
			touchRecent(m.recent, m.file),
		)
	}
	return tea.Batch(
		tea.SetWindowTitle("quill"),
		loadRecentFiles(m.recent),
	)
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.SetSize(msg.Width, msg.Height)
		m.debugPanel.SetSize(msg.Width, msg.Height)
		m.menu.SetSize(msg.Width, msg.Height)
		m.dialog.SetSize(msg.Width, msg.Height)
		m.statusBar.SetSize(msg.Width)
		if m.session != nil {
			m.session.Resize(msg.Width, msg.Height)
		}
		return m, nil

	case spinner.TickMsg:
		// Stop ticking once the generator has returned
		if m.session == nil || !m.session.Generating() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case GenerationDoneMsg:
		return m.handleGenerationDone(msg)

	case RecentFilesMsg:
		m.menu.SetRecent(msg.Files)
		return m, nil

	case HistoryRecordedMsg:
		if msg.Err == nil {
			logger.Debug("generation recorded", "id", msg.ID)
		}
		return m, nil
	}

	// Cursor blink and other messages for the open file prompt
	if m.screen == screenMenu && m.menu.InputActive() {
		return m, m.menu.UpdateInput(msg)
	}
	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.dialog.IsVisible() {
		return m.handleDialogKey(msg)
	}

	// Any key closes help
	if m.helpVisible {
		m.helpVisible = false
		return m, nil
	}
	if key.Matches(msg, m.keys.Help) {
		m.helpVisible = true
		return m, nil
	}

	if m.debugPanel.IsVisible() {
		return m, m.debugPanel.Update(msg)
	}
	if key.Matches(msg, m.keys.Debug) {
		m.debugPanel.Show()
		return m, nil
	}

	if m.screen == screenMenu {
		return m.handleMenuKey(msg)
	}
	return m.handleEditorKey(msg)
}

// handleDialogKey answers the quit confirmation or dismisses an error
func (m Model) handleDialogKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.dialog.Type() != components.DialogConfirm {
		m.dialog.Hide()
		return m, nil
	}

	switch msg.String() {
	case "y", "Y":
		m.dialog.Hide()
		return m, tea.Quit
	case "n", "N", "esc":
		m.dialog.Hide()
	}
	return m, nil
}

// handleMenuKey processes keys on the start menu
func (m Model) handleMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.menu.DismissNotice() {
		return m, nil
	}

	if m.menu.InputActive() {
		switch {
		case key.Matches(msg, m.keys.Escape):
			m.menu.StopInput()
			return m, nil
		case key.Matches(msg, m.keys.Enter):
			path := m.menu.StopInput()
			if path == "" {
				return m, nil
			}
			return m.openFile(path, false)
		}
		return m, m.menu.UpdateInput(msg)
	}

	switch {
	case msg.String() == "?":
		m.helpVisible = true
	case key.Matches(msg, m.keys.Up):
		m.menu.MoveUp()
	case key.Matches(msg, m.keys.Down):
		m.menu.MoveDown()
	case key.Matches(msg, m.keys.Quit):
		m.confirmQuit()
	case key.Matches(msg, m.keys.Enter):
		item := m.menu.selectedItem()
		switch item.action {
		case actionNewFile:
			m.session = m.newSession()
			m.screen = screenEditor
			logger.Info("new document")
			return m, tea.SetWindowTitle("quill - " + editor.UntitledName)
		case actionOpenFile:
			return m, m.menu.StartInput()
		case actionOpenRecent:
			return m.openFile(item.path, true)
		case actionQuit:
			m.confirmQuit()
		}
	}
	return m, nil
}

func (m Model) confirmQuit() {
	m.dialog.Show(components.DialogConfirm, "Quit", "Are you sure you want to quit?")
}

// openFile switches to the editor for path. A missing file shows a notice on
// the menu instead.
func (m Model) openFile(path string, fromRecent bool) (tea.Model, tea.Cmd) {
	if m.storage == nil || !m.storage.Exists(path) {
		logger.Info("file not found", "file", path)
		m.menu.ShowNotice(FileNotFoundText)
		if fromRecent {
			return m, forgetRecent(m.recent, path)
		}
		return m, nil
	}

	session, err := m.openSession(path)
	if err != nil {
		m.dialog.Show(components.DialogError, "Open failed", FormatOpenError(err, path))
		return m, nil
	}

	m.session = session
	m.screen = screenEditor
	logger.Info("document opened", "file", path, "lines", session.Document().LineCount())
	return m, tea.Batch(
		tea.SetWindowTitle("quill - "+filepath.Base(path)),
		touchRecent(m.recent, path),
	)
}

func (m Model) sessionOptions() []editor.Option {
	hints := true
	if m.config != nil {
		hints = m.config.UI.ShowHints
	}
	opts := []editor.Option{
		editor.WithSize(m.width, m.height),
		editor.WithHints(hints),
	}
	if m.storage != nil {
		opts = append(opts, editor.WithStorage(m.storage))
	}
	return opts
}

func (m Model) newSession() *editor.Session {
	return editor.NewSession(m.sessionOptions()...)
}

func (m Model) openSession(path string) (*editor.Session, error) {
	if m.storage == nil {
		return nil, editor.ErrNoStorage
	}
	return editor.OpenSession(path, m.storage, m.sessionOptions()...)
}

// handleEditorKey feeds keys to the editing session. Pasted text arrives as
// one message and is replayed key by key.
func (m Model) handleEditorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.session.Generating() {
		logger.Debug("key ignored while generating", "key", msg.String())
		return m, nil
	}

	var cmds []tea.Cmd
	for _, k := range m.keys.ToEditorKeys(msg) {
		effect := m.session.HandleKey(k)
		if effect == editor.EffectNone {
			continue
		}

		next, cmd := m.handleEffect(effect)
		m = next
		cmds = append(cmds, cmd)
		if effect == editor.EffectQuit || effect == editor.EffectGenerate {
			break
		}
	}
	return m, tea.Batch(cmds...)
}

// handleEffect performs the work a session cannot do on its own
func (m Model) handleEffect(effect editor.Effect) (Model, tea.Cmd) {
	switch effect {
	case editor.EffectQuit:
		if m.file != "" {
			return m, tea.Quit
		}
		m.session = nil
		m.screen = screenMenu
		return m, tea.Batch(tea.SetWindowTitle("quill"), loadRecentFiles(m.recent))

	case editor.EffectGenerate:
		if m.generator == nil {
			m.session.CompleteGeneration("", editor.ErrNoGenerator)
			m.showGenerationError(editor.ErrNoGenerator)
			return m, nil
		}
		return m, tea.Batch(
			m.spinner.Tick,
			runGeneration(m.ctx, m.generator, m.session.PendingPrompt()),
		)

	case editor.EffectSaved:
		return m, tea.Batch(
			tea.SetWindowTitle("quill - "+filepath.Base(m.session.Filename())),
			touchRecent(m.recent, m.session.Filename()),
		)

	case editor.EffectSaveFailed:
		m.dialog.Show(components.DialogError, "Save failed",
			FormatSaveError(m.session.LastError(), m.session.SavePath()))
		return m, nil

	case editor.EffectInserted, editor.EffectDiscarded:
		g := m.pending
		m.pending = nil
		if g == nil {
			return m, nil
		}
		g.Accepted = effect == editor.EffectInserted
		logger.Info("generated text reviewed", "accepted", g.Accepted, "bytes", len(g.Output))
		return m, recordGeneration(m.history, g)
	}
	return m, nil
}

// handleGenerationDone hands the generator result to the session and records
// failures right away. Successful results are recorded once the user accepts
// or declines them.
func (m Model) handleGenerationDone(msg GenerationDoneMsg) (tea.Model, tea.Cmd) {
	if m.session == nil || !m.session.Generating() {
		return m, nil
	}

	m.session.CompleteGeneration(msg.Text, msg.Err)

	g := &sqlite.Generation{
		Prompt:   msg.Prompt,
		Output:   msg.Text,
		Duration: msg.Duration,
		File:     m.session.Filename(),
	}

	if msg.Err != nil {
		g.Error = msg.Err.Error()
		m.showGenerationError(msg.Err)
		return m, recordGeneration(m.history, g)
	}

	logger.Info("text generated", "bytes", len(msg.Text), "duration", msg.Duration)
	m.pending = g
	return m, nil
}

func (m Model) showGenerationError(err error) {
	command := ""
	if m.config != nil {
		command = m.config.Generator.Command
	}
	m.dialog.Show(components.DialogError, "Generation failed", FormatGenerationError(err, command))
}

// View renders the application
func (m Model) View() string {
	if m.dialog.IsVisible() {
		return m.dialog.View()
	}
	if m.helpVisible {
		return m.help.View()
	}
	if m.debugPanel.IsVisible() {
		return m.debugPanel.View()
	}

	if m.screen == screenMenu || m.session == nil {
		return m.menu.View()
	}

	if pw, ok := m.session.Preview(); ok {
		return m.renderPreview(pw)
	}
	return m.renderEditor()
}

// Session returns the active editing session, nil on the menu
func (m Model) Session() *editor.Session {
	return m.session
}

// Cleanup cancels any running generation
func (m Model) Cleanup() {
	if m.cancel != nil {
		m.cancel()
	}
}
