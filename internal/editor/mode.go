package editor

// Mode is the currently active interaction state. Exactly one mode is active
// at a time, and every modal state returns to Editing when it completes.
type Mode interface {
	mode()
	// Name returns a short label for the mode
	Name() string
}

// Action is the operation a ConfirmPrompt asks about.
type Action int

const (
	ActionSave Action = iota
	ActionQuit
)

// String returns the label used in the confirmation question.
func (a Action) String() string {
	return [...]string{"save", "quit"}[a]
}

// InputPurpose tells what a TextInputPrompt collects.
type InputPurpose int

const (
	InputFilename InputPurpose = iota
	InputGenerationPrompt
)

// Prompt labels shown while collecting text input.
const (
	FilenameLabel = "Enter file name to save:"
	GenerateLabel = "Enter prompt for text generation:"
)

// Label returns the prompt shown for the purpose.
func (p InputPurpose) Label() string {
	if p == InputFilename {
		return FilenameLabel
	}
	return GenerateLabel
}

// Editing is normal text editing.
type Editing struct{}

// ConfirmPrompt waits for a yes or no answer about Action.
type ConfirmPrompt struct {
	Action Action
}

// TextInputPrompt collects a single line of free text.
type TextInputPrompt struct {
	Purpose InputPurpose
	Input   string
}

// GeneratedTextPreview shows generated text before it is inserted at the
// anchored position.
type GeneratedTextPreview struct {
	Text string
	Row  int
	Col  int
}

func (Editing) mode()              {}
func (ConfirmPrompt) mode()        {}
func (TextInputPrompt) mode()      {}
func (GeneratedTextPreview) mode() {}

func (Editing) Name() string              { return "EDIT" }
func (ConfirmPrompt) Name() string        { return "CONFIRM" }
func (TextInputPrompt) Name() string      { return "INPUT" }
func (GeneratedTextPreview) Name() string { return "PREVIEW" }

// Label returns the action label for the prompt.
func (p ConfirmPrompt) Label() string {
	return p.Action.String()
}

// Question returns the text shown on the prompt row.
func (p ConfirmPrompt) Question() string {
	return "Are you sure you want to " + p.Action.String() + "? (y/n)"
}

// Label returns the prompt shown before the input.
func (p TextInputPrompt) Label() string {
	return p.Purpose.Label()
}
