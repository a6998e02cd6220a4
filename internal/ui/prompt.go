package ui

// PromptKind identifies what the prompt line is collecting.
type PromptKind uint8

const (
	PromptNone PromptKind = iota
	PromptFind
	PromptReplace
	PromptGoto
	PromptSaveAs
	PromptConfirmQuit
)

// Prompt is the single-line input editor shown below the status bar
// during find/replace and similar interactions. It edits runes, not
// bytes, so cursor movement lands on character boundaries.
type Prompt struct {
	Kind  PromptKind
	Label string

	input  []rune
	cursor int

	// Search option toggles, shown as indicators in the prompt line.
	CaseSensitive bool
	WholeWord     bool
}

// NewPrompt opens a prompt of the given kind with an initial value.
func NewPrompt(kind PromptKind, label, initial string) *Prompt {
	r := []rune(initial)
	return &Prompt{Kind: kind, Label: label, input: r, cursor: len(r)}
}

// Text returns the current input.
func (p *Prompt) Text() string { return string(p.input) }

// Cursor returns the rune index of the cursor.
func (p *Prompt) Cursor() int { return p.cursor }

// Insert adds r at the cursor.
func (p *Prompt) Insert(r rune) {
	p.input = append(p.input[:p.cursor], append([]rune{r}, p.input[p.cursor:]...)...)
	p.cursor++
}

// InsertString adds pasted text at the cursor.
func (p *Prompt) InsertString(s string) {
	for _, r := range s {
		if r == '\n' || r == '\r' {
			continue
		}
		p.Insert(r)
	}
}

// Backspace removes the rune before the cursor.
func (p *Prompt) Backspace() {
	if p.cursor == 0 {
		return
	}
	p.input = append(p.input[:p.cursor-1], p.input[p.cursor:]...)
	p.cursor--
}

// Delete removes the rune under the cursor.
func (p *Prompt) Delete() {
	if p.cursor >= len(p.input) {
		return
	}
	p.input = append(p.input[:p.cursor], p.input[p.cursor+1:]...)
}

// Left, Right, Home and End move the cursor.
func (p *Prompt) Left() {
	if p.cursor > 0 {
		p.cursor--
	}
}

func (p *Prompt) Right() {
	if p.cursor < len(p.input) {
		p.cursor++
	}
}

func (p *Prompt) Home() { p.cursor = 0 }
func (p *Prompt) End()  { p.cursor = len(p.input) }

// Clear empties the input.
func (p *Prompt) Clear() {
	p.input = p.input[:0]
	p.cursor = 0
}
