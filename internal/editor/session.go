package editor

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dustin/go-humanize"

	"github.com/willibrandon/quill/internal/logger"
)

// UntitledName is displayed for a document that has no file name yet.
const UntitledName = "untitled.txt"

// Effect tells the caller what happened as a result of a key, for the parts
// the session cannot do on its own.
type Effect int

const (
	// EffectNone needs no follow up.
	EffectNone Effect = iota
	// EffectQuit ends the editing session.
	EffectQuit
	// EffectGenerate asks the caller to run the generator for PendingPrompt
	// and report back through CompleteGeneration.
	EffectGenerate
	// EffectSaved reports a successful save.
	EffectSaved
	// EffectSaveFailed reports a failed save; see LastError.
	EffectSaveFailed
	// EffectInserted reports that previewed text was inserted.
	EffectInserted
	// EffectDiscarded reports that previewed text was declined.
	EffectDiscarded
)

// Session is a single editing session over one document. It owns the
// document, the cursor, the viewport and the active mode, and performs every
// mode transition.
type Session struct {
	doc      *Document
	cursor   Cursor
	viewport Viewport
	mode     Mode
	width    int

	filename string
	savePath string
	modified bool
	message  string
	lastErr  error
	hints    bool

	storage   Storage
	generator Generator

	pendingPrompt string
	generating    bool
}

// Option configures a Session
type Option func(*Session)

// WithDocument sets the document to edit.
func WithDocument(doc *Document) Option {
	return func(s *Session) {
		s.doc = doc
	}
}

// WithFilename associates the session with a file name.
func WithFilename(name string) Option {
	return func(s *Session) {
		s.filename = name
	}
}

// WithStorage sets the storage used for saving.
func WithStorage(storage Storage) Option {
	return func(s *Session) {
		s.storage = storage
	}
}

// WithGenerator sets the generator used by RunGeneration.
func WithGenerator(g Generator) Option {
	return func(s *Session) {
		s.generator = g
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(s *Session) {
		s.width = width
		s.viewport.Height = VisibleHeight(height)
	}
}

// WithHints enables or disables the key hints in the status line.
func WithHints(enable bool) Option {
	return func(s *Session) {
		s.hints = enable
	}
}

// NewSession creates a session over an empty document unless WithDocument
// is given.
func NewSession(opts ...Option) *Session {
	s := &Session{
		doc:      NewDocument(nil),
		mode:     Editing{},
		viewport: Viewport{Height: VisibleHeight(24)},
		width:    80,
		hints:    true,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.doc == nil {
		s.doc = NewDocument(nil)
	}
	s.cursor.Clamp(s.doc)
	return s
}

// OpenSession loads path through storage and creates a session for it.
func OpenSession(path string, storage Storage, opts ...Option) (*Session, error) {
	lines, err := storage.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	base := []Option{
		WithDocument(NewDocument(lines)),
		WithFilename(path),
		WithStorage(storage),
	}
	return NewSession(append(base, opts...)...), nil
}

// Document returns the document being edited.
func (s *Session) Document() *Document { return s.doc }

// Cursor returns the cursor position.
func (s *Session) Cursor() Cursor { return s.cursor }

// Mode returns the active mode.
func (s *Session) Mode() Mode { return s.mode }

// Viewport returns the current viewport.
func (s *Session) Viewport() Viewport { return s.viewport }

// Filename returns the associated file name, or "" for a new document.
func (s *Session) Filename() string { return s.filename }

// SavePath returns the path of the most recent save attempt, which differs
// from Filename when saving an untitled document failed.
func (s *Session) SavePath() string { return s.savePath }

// Modified reports whether the document changed since it was loaded or saved.
func (s *Session) Modified() bool { return s.modified }

// Message returns the transient status message.
func (s *Session) Message() string { return s.message }

// LastError returns the error behind the most recent failed save or generation.
func (s *Session) LastError() error { return s.lastErr }

// Generating reports whether a generation request is outstanding.
func (s *Session) Generating() bool { return s.generating }

// PendingPrompt returns the prompt of the outstanding generation request.
func (s *Session) PendingPrompt() string { return s.pendingPrompt }

// DisplayName returns the file name shown to the user.
func (s *Session) DisplayName() string {
	if s.filename == "" {
		return UntitledName
	}
	return s.filename
}

// Resize records a new terminal size. It never changes the mode; the
// viewport is re-clamped for the new height.
func (s *Session) Resize(width, height int) {
	s.width = width
	s.viewport.SetTerminalHeight(height, s.cursor.Row)
}

// HandleKey interprets a key against the active mode.
func (s *Session) HandleKey(k Key) Effect {
	// Input is not processed while the generator runs
	if s.generating {
		return EffectNone
	}

	var effect Effect
	switch m := s.mode.(type) {
	case Editing:
		effect = s.handleEditing(k)
	case ConfirmPrompt:
		effect = s.handleConfirm(m, k)
	case TextInputPrompt:
		effect = s.handleTextInput(m, k)
	case GeneratedTextPreview:
		effect = s.handlePreview(m, k)
	}

	s.viewport.Follow(s.cursor.Row)
	return effect
}

func (s *Session) handleEditing(k Key) Effect {
	s.message = ""

	switch k.Kind {
	case KeyEnter:
		s.doc.InsertNewline(&s.cursor)
		s.modified = true
	case KeyBackspace:
		if s.cursor.Row > 0 || s.cursor.Col > 0 {
			s.doc.DeleteBackward(&s.cursor)
			s.modified = true
		}
	case KeyLeft:
		s.cursor.Left(s.doc)
	case KeyRight:
		s.cursor.Right(s.doc)
	case KeyUp:
		s.cursor.Up(s.doc)
	case KeyDown:
		s.cursor.Down(s.doc)
	case KeySave:
		s.mode = ConfirmPrompt{Action: ActionSave}
	case KeyQuit:
		s.mode = ConfirmPrompt{Action: ActionQuit}
	case KeyGenerate:
		s.mode = TextInputPrompt{Purpose: InputGenerationPrompt}
	case KeyRune:
		if IsPrintable(k.Rune) {
			s.doc.InsertChar(&s.cursor, k.Rune)
			s.modified = true
		}
	}
	return EffectNone
}

func (s *Session) handleConfirm(m ConfirmPrompt, k Key) Effect {
	switch {
	case isYes(k):
		s.mode = Editing{}
		if m.Action == ActionQuit {
			logger.Debug("editor session closed", "file", s.DisplayName(), "modified", s.modified)
			return EffectQuit
		}
		if s.filename == "" {
			s.mode = TextInputPrompt{Purpose: InputFilename}
			return EffectNone
		}
		return s.save(s.filename)
	case isNo(k):
		s.mode = Editing{}
	}
	return EffectNone
}

func (s *Session) handleTextInput(m TextInputPrompt, k Key) Effect {
	switch k.Kind {
	case KeyRune:
		if IsPrintable(k.Rune) {
			m.Input += string(k.Rune)
			s.mode = m
		}
	case KeyBackspace:
		if m.Input != "" {
			_, size := utf8.DecodeLastRuneInString(m.Input)
			m.Input = m.Input[:len(m.Input)-size]
			s.mode = m
		}
	case KeyEscape:
		s.mode = Editing{}
	case KeyEnter:
		return s.submit(m)
	}
	return EffectNone
}

func (s *Session) submit(m TextInputPrompt) Effect {
	switch m.Purpose {
	case InputFilename:
		name := strings.TrimSpace(m.Input)
		if name == "" {
			s.mode = Editing{}
			return EffectNone
		}
		return s.save(name)
	default:
		if m.Input == "" {
			s.mode = Editing{}
			return EffectNone
		}
		s.pendingPrompt = m.Input
		s.generating = true
		logger.Debug("generation requested", "prompt_len", len(m.Input))
		return EffectGenerate
	}
}

func (s *Session) handlePreview(m GeneratedTextPreview, k Key) Effect {
	switch {
	case isYes(k):
		anchor := Cursor{Row: m.Row, Col: m.Col}
		anchor.Clamp(s.doc)
		s.doc.InsertMultiline(&anchor, m.Text)
		s.cursor = anchor
		if m.Text != "" {
			s.modified = true
		}
		s.mode = Editing{}
		return EffectInserted
	case isNo(k):
		s.mode = Editing{}
		return EffectDiscarded
	}
	return EffectNone
}

// CompleteGeneration delivers the outcome of the outstanding generation
// request. On success the generated text is shown for confirmation anchored
// at the current cursor; on failure the session returns to Editing with a
// visible message.
func (s *Session) CompleteGeneration(text string, err error) {
	if !s.generating {
		return
	}
	s.generating = false
	s.pendingPrompt = ""

	if err != nil {
		s.lastErr = err
		s.mode = Editing{}
		s.message = "Generation failed: " + firstLine(err.Error())
		logger.Warn("text generation failed", "error", err)
		return
	}

	s.mode = GeneratedTextPreview{
		Text: text,
		Row:  s.cursor.Row,
		Col:  s.cursor.Col,
	}
}

// RunGeneration invokes the configured generator synchronously for the
// outstanding request. Nothing else is processed until it returns.
func (s *Session) RunGeneration(ctx context.Context) {
	if !s.generating {
		return
	}
	if s.generator == nil {
		s.CompleteGeneration("", ErrNoGenerator)
		return
	}
	text, err := s.generator.Generate(ctx, s.pendingPrompt)
	s.CompleteGeneration(text, err)
}

// save writes the document to path. The session only adopts path as its file
// name once the write succeeded.
func (s *Session) save(path string) Effect {
	s.mode = Editing{}
	s.savePath = path

	if s.storage == nil {
		return s.saveFailed(ErrNoStorage)
	}

	lines := s.doc.Lines()
	if err := s.storage.Save(path, lines); err != nil {
		return s.saveFailed(err)
	}

	s.filename = path
	size := uint64(len(strings.Join(lines, "\n")))
	s.modified = false
	s.lastErr = nil
	s.message = fmt.Sprintf("Saved %s (%s)", s.filename, humanize.Bytes(size))
	logger.Info("document saved", "file", s.filename, "lines", len(lines), "bytes", size)
	return EffectSaved
}

func (s *Session) saveFailed(err error) Effect {
	s.lastErr = err
	s.message = "Save failed: " + firstLine(err.Error())
	logger.Error("document save failed", "file", s.savePath, "error", err)
	return EffectSaveFailed
}

func isYes(k Key) bool {
	return k.Kind == KeyRune && (k.Rune == 'y' || k.Rune == 'Y')
}

func isNo(k Key) bool {
	return k.Kind == KeyEscape || (k.Kind == KeyRune && (k.Rune == 'n' || k.Rune == 'N'))
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
