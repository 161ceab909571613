package app

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willibrandon/quill/internal/config"
	"github.com/willibrandon/quill/internal/editor"
	"github.com/willibrandon/quill/internal/generator"
	"github.com/willibrandon/quill/internal/storage/sqlite"
)

type memStorage struct {
	files   map[string][]string
	saveErr error
}

func newMemStorage() *memStorage {
	return &memStorage{files: map[string][]string{}}
}

func (s *memStorage) Load(path string) ([]string, error) {
	if lines, ok := s.files[path]; ok {
		return slices.Clone(lines), nil
	}
	return []string{""}, nil
}

func (s *memStorage) Save(path string, lines []string) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.files[path] = slices.Clone(lines)
	return nil
}

func (s *memStorage) Exists(path string) bool {
	_, ok := s.files[path]
	return ok
}

type memHistory struct {
	mu   sync.Mutex
	gens []sqlite.Generation
}

func (h *memHistory) Add(_ context.Context, g *sqlite.Generation) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	g.ID = fmt.Sprintf("gen-%d", len(h.gens)+1)
	h.gens = append(h.gens, *g)
	return nil
}

type memRecent struct {
	touched []string
	removed []string
	files   []sqlite.RecentFile
}

func (r *memRecent) Touch(path string) error {
	r.touched = append(r.touched, path)
	return nil
}

func (r *memRecent) List(limit int) ([]sqlite.RecentFile, error) {
	return r.files[:min(limit, len(r.files))], nil
}

func (r *memRecent) Remove(path string) error {
	r.removed = append(r.removed, path)
	r.files = slices.DeleteFunc(r.files, func(f sqlite.RecentFile) bool { return f.Path == path })
	return nil
}

func newTestModel(t *testing.T, opts ...Option) Model {
	t.Helper()
	m, err := New(config.Default(), opts...)
	require.NoError(t, err)
	t.Cleanup(m.Cleanup)

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

// press sends each message in turn, discarding commands.
func press(t *testing.T, m Model, msgs ...tea.KeyMsg) Model {
	t.Helper()
	for _, msg := range msgs {
		m, _ = update(t, m, msg)
	}
	return m
}

// screenText returns the rendered screen without styling.
func screenText(m Model) string {
	return ansi.Strip(m.View())
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	enter    = tea.KeyMsg{Type: tea.KeyEnter}
	down     = tea.KeyMsg{Type: tea.KeyDown}
	right    = tea.KeyMsg{Type: tea.KeyRight}
	escape   = tea.KeyMsg{Type: tea.KeyEsc}
	ctrlG    = tea.KeyMsg{Type: tea.KeyCtrlG}
	ctrlQ    = tea.KeyMsg{Type: tea.KeyCtrlQ}
	ctrlS    = tea.KeyMsg{Type: tea.KeyCtrlS}
	yes      = runes("y")
	no       = runes("n")
	anyOther = runes("k")
)

// collect runs cmd and every command batched inside it, returning the
// messages they produce.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func hasQuit(msgs []tea.Msg) bool {
	for _, msg := range msgs {
		if _, ok := msg.(tea.QuitMsg); ok {
			return true
		}
	}
	return false
}

func generationDone(t *testing.T, msgs []tea.Msg) GenerationDoneMsg {
	t.Helper()
	for _, msg := range msgs {
		if done, ok := msg.(GenerationDoneMsg); ok {
			return done
		}
	}
	t.Fatalf("no GenerationDoneMsg in %v", msgs)
	return GenerationDoneMsg{}
}

func TestNewStartsOnMenu(t *testing.T) {
	m := newTestModel(t)

	assert.Equal(t, screenMenu, m.screen)
	assert.Nil(t, m.Session())

	view := screenText(m)
	for _, want := range []string{MenuTitle, "Create New File", "Open File", "Quit"} {
		assert.Contains(t, view, want)
	}
}

func TestCreateNewFileAndQuitReturnsToMenu(t *testing.T) {
	m := newTestModel(t, WithStorage(newMemStorage()))

	m = press(t, m, enter)
	require.Equal(t, screenEditor, m.screen)
	require.NotNil(t, m.Session())
	assert.Contains(t, screenText(m), editor.UntitledName)

	m = press(t, m, runes("hi"), ctrlQ)
	assert.Contains(t, screenText(m), "Are you sure you want to quit? (y/n)")

	m, cmd := update(t, m, yes)
	assert.False(t, hasQuit(collect(cmd)), "quitting the editor should not exit")
	assert.Equal(t, screenMenu, m.screen)
	assert.Nil(t, m.Session())
}

func TestLaunchWithFileQuitExits(t *testing.T) {
	store := newMemStorage()
	store.files["doc.txt"] = []string{"hello"}
	m := newTestModel(t, WithStorage(store), WithFile("doc.txt"))

	require.Equal(t, screenEditor, m.screen)
	view := screenText(m)
	assert.Contains(t, view, "hello")
	assert.Contains(t, view, "doc.txt | Line 1/1 | Col 1")

	m = press(t, m, ctrlQ)
	_, cmd := update(t, m, yes)
	assert.True(t, hasQuit(collect(cmd)))
}

func TestNewWithUnreadableFileFails(t *testing.T) {
	_, err := New(config.Default(), WithFile("doc.txt"))
	assert.ErrorIs(t, err, editor.ErrNoStorage)
}

func TestSaveTouchesRecentFiles(t *testing.T) {
	store := newMemStorage()
	store.files["doc.txt"] = []string{"abc"}
	recent := &memRecent{}
	m := newTestModel(t, WithStorage(store), WithRecentFiles(recent), WithFile("doc.txt"))

	m = press(t, m, runes("x"), ctrlS)
	m, cmd := update(t, m, yes)
	collect(cmd)

	assert.Equal(t, []string{"xabc"}, store.files["doc.txt"])
	assert.Equal(t, []string{"doc.txt"}, recent.touched)
	assert.False(t, m.Session().Modified())
}

func TestSaveFailureShowsDialog(t *testing.T) {
	store := newMemStorage()
	store.files["doc.txt"] = []string{"abc"}
	store.saveErr = errors.New("open doc.txt: permission denied")
	m := newTestModel(t, WithStorage(store), WithFile("doc.txt"))

	m = press(t, m, runes("x"), ctrlS, yes)
	require.True(t, m.dialog.IsVisible())
	assert.Contains(t, screenText(m), "Permission denied")

	m = press(t, m, anyOther)
	assert.False(t, m.dialog.IsVisible())
	assert.Equal(t, "Save failed: open doc.txt: permission denied", m.Session().Message())
	assert.Equal(t, []string{"xabc"}, m.Session().Document().Lines(), "dismissing must not edit")
}

func TestFailedSaveAsNamesAttemptedPath(t *testing.T) {
	store := newMemStorage()
	store.saveErr = errors.New("open /ro/a.txt: permission denied")
	m := newTestModel(t, WithStorage(store))

	m = press(t, m, enter, runes("x"), ctrlS, yes, runes("/ro/a.txt"), enter)
	require.True(t, m.dialog.IsVisible())
	assert.Contains(t, screenText(m), "/ro/a.txt")
	assert.Empty(t, m.Session().Filename())

	m = press(t, m, anyOther, ctrlS, yes)
	assert.Contains(t, screenText(m), "Enter file name to save:")
}

func TestOpenFileNotFound(t *testing.T) {
	m := newTestModel(t, WithStorage(newMemStorage()))

	m = press(t, m, down, enter)
	require.True(t, m.menu.InputActive())
	assert.Contains(t, screenText(m), OpenFileLabel)

	m = press(t, m, runes("nope.txt"), enter)
	assert.Equal(t, screenMenu, m.screen)
	assert.Contains(t, screenText(m), FileNotFoundText)

	m = press(t, m, anyOther)
	assert.Empty(t, m.menu.Notice())
	assert.Equal(t, screenMenu, m.screen)
}

func TestOpenFileFromPrompt(t *testing.T) {
	store := newMemStorage()
	store.files["a.txt"] = []string{"abc", "def"}
	m := newTestModel(t, WithStorage(store))

	m = press(t, m, down, enter, runes("a.txt"), enter)
	require.Equal(t, screenEditor, m.screen)
	assert.Equal(t, "a.txt", m.Session().Filename())
	assert.Equal(t, []string{"abc", "def"}, m.Session().Document().Lines())
}

func TestOpenPromptEscapeCancels(t *testing.T) {
	m := newTestModel(t, WithStorage(newMemStorage()))

	m = press(t, m, down, enter, runes("a"), escape)
	assert.False(t, m.menu.InputActive())
	assert.Equal(t, screenMenu, m.screen)
}

func TestMissingRecentFileIsForgotten(t *testing.T) {
	recent := &memRecent{files: []sqlite.RecentFile{{Path: "/gone.txt"}}}
	m := newTestModel(t, WithStorage(newMemStorage()), WithRecentFiles(recent))

	m, _ = update(t, m, RecentFilesMsg{Files: recent.files})
	assert.Contains(t, screenText(m), "/gone.txt")

	m = press(t, m, down, down)
	m, cmd := update(t, m, enter)
	assert.Equal(t, FileNotFoundText, m.menu.Notice())

	for _, msg := range collect(cmd) {
		m, _ = update(t, m, msg)
	}
	assert.Equal(t, []string{"/gone.txt"}, recent.removed)
	assert.NotContains(t, screenText(m), "/gone.txt")
}

func TestMenuQuitConfirmation(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, ctrlQ)
	require.True(t, m.dialog.IsVisible())
	m = press(t, m, no)
	assert.False(t, m.dialog.IsVisible())

	m = press(t, m, down, down, enter)
	require.True(t, m.dialog.IsVisible(), "selecting Quit should ask first")

	_, cmd := update(t, m, yes)
	assert.True(t, hasQuit(collect(cmd)))
}

func newGeneratingModel(t *testing.T, gen editor.Generator, history GenerationHistory) (Model, tea.Cmd) {
	t.Helper()
	store := newMemStorage()
	store.files["doc.txt"] = []string{"x"}
	m := newTestModel(t, WithStorage(store), WithFile("doc.txt"), WithGenerator(gen), WithHistory(history))

	m = press(t, m, right, ctrlG, runes("p"))
	return update(t, m, enter)
}

func TestGenerationAcceptedIsRecorded(t *testing.T) {
	history := &memHistory{}
	gen := editor.GeneratorFunc(func(_ context.Context, prompt string) (string, error) {
		return "A\nB", nil
	})
	m, cmd := newGeneratingModel(t, gen, history)

	require.True(t, m.Session().Generating())
	assert.Contains(t, screenText(m), editor.GeneratingLabel)

	// Keys are ignored until the generator returns
	m = press(t, m, runes("zz"))
	assert.Equal(t, []string{"x"}, m.Session().Document().Lines())

	m, _ = update(t, m, generationDone(t, collect(cmd)))
	require.IsType(t, editor.GeneratedTextPreview{}, m.Session().Mode())
	view := screenText(m)
	assert.Contains(t, view, PreviewTitle)
	assert.Contains(t, view, editor.PreviewQuestion)
	assert.Empty(t, history.gens, "successful generations are recorded after review")

	m, cmd = update(t, m, yes)
	collect(cmd)

	assert.Equal(t, []string{"xA", "B"}, m.Session().Document().Lines())
	assert.Equal(t, editor.Cursor{Row: 1, Col: 1}, m.Session().Cursor())
	require.Len(t, history.gens, 1)
	assert.True(t, history.gens[0].Accepted)
	assert.Equal(t, "p", history.gens[0].Prompt)
	assert.Equal(t, "A\nB", history.gens[0].Output)
	assert.Equal(t, "doc.txt", history.gens[0].File)
}

func TestGenerationDeclinedIsRecorded(t *testing.T) {
	history := &memHistory{}
	gen := editor.GeneratorFunc(func(context.Context, string) (string, error) {
		return "text", nil
	})
	m, cmd := newGeneratingModel(t, gen, history)

	m, _ = update(t, m, generationDone(t, collect(cmd)))
	m, cmd = update(t, m, no)
	collect(cmd)

	assert.Equal(t, []string{"x"}, m.Session().Document().Lines())
	assert.IsType(t, editor.Editing{}, m.Session().Mode())
	require.Len(t, history.gens, 1)
	assert.False(t, history.gens[0].Accepted)
}

func TestGenerationFailureShowsDialog(t *testing.T) {
	history := &memHistory{}
	gen := editor.GeneratorFunc(func(context.Context, string) (string, error) {
		return "", &generator.Error{Message: "timeout"}
	})
	m, cmd := newGeneratingModel(t, gen, history)

	m, cmd = update(t, m, generationDone(t, collect(cmd)))
	collect(cmd)

	require.True(t, m.dialog.IsVisible())
	assert.Contains(t, screenText(m), "The generator reported an error")
	require.Len(t, history.gens, 1)
	assert.Equal(t, "timeout", history.gens[0].Error)

	m = press(t, m, anyOther)
	assert.False(t, m.dialog.IsVisible())
	assert.IsType(t, editor.Editing{}, m.Session().Mode())
	assert.Equal(t, "Generation failed: timeout", m.Session().Message())
	assert.Contains(t, screenText(m), "Generation failed: timeout")
}

func TestGenerationWithoutGenerator(t *testing.T) {
	store := newMemStorage()
	m := newTestModel(t, WithStorage(store))

	m = press(t, m, enter, ctrlG, runes("p"), enter)
	assert.False(t, m.Session().Generating())
	require.True(t, m.dialog.IsVisible())
	assert.Contains(t, screenText(m), "No text generator is configured")
}

func TestStaleGenerationResultIgnored(t *testing.T) {
	m := newTestModel(t, WithStorage(newMemStorage()))
	m = press(t, m, enter)

	m, cmd := update(t, m, GenerationDoneMsg{Prompt: "p", Text: "late"})
	assert.Nil(t, cmd)
	assert.IsType(t, editor.Editing{}, m.Session().Mode())
	assert.Equal(t, []string{""}, m.Session().Document().Lines())
}

func TestPasteInsertsText(t *testing.T) {
	m := newTestModel(t, WithStorage(newMemStorage()))
	m = press(t, m, enter)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a\nb"), Paste: true})
	assert.Equal(t, []string{"a", "b"}, m.Session().Document().Lines())
	assert.Equal(t, editor.Cursor{Row: 1, Col: 1}, m.Session().Cursor())
}

func TestWindowResize(t *testing.T) {
	m := newTestModel(t, WithStorage(newMemStorage()))
	m = press(t, m, enter)

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 40, Height: 10})
	assert.Equal(t, 9, m.Session().Viewport().Height)

	rows := strings.Split(screenText(m), "\n")
	assert.Len(t, rows, 10)
}

func TestHelpOverlay(t *testing.T) {
	m := newTestModel(t, WithStorage(newMemStorage()))

	m = press(t, m, runes("?"))
	assert.Contains(t, screenText(m), "Keyboard Shortcuts")
	assert.Contains(t, screenText(m), "generate")

	m = press(t, m, anyOther)
	assert.Contains(t, screenText(m), MenuTitle)

	// In the editor F1 opens help and the closing key is not typed
	m = press(t, m, enter, tea.KeyMsg{Type: tea.KeyF1})
	assert.Contains(t, screenText(m), "Keyboard Shortcuts")
	m = press(t, m, anyOther)
	assert.Equal(t, []string{""}, m.Session().Document().Lines())
}
