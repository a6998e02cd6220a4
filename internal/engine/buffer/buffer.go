package buffer

import (
	"errors"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Errors returned by buffer operations.
var (
	ErrOffsetOutOfRange = errors.New("offset out of range")
	ErrRangeInvalid     = errors.New("invalid range")
	ErrEditsOverlap     = errors.New("edits overlap or are not in reverse order")
	ErrNothingToUndo    = errors.New("nothing to undo")
)

// LineEnding specifies the line ending style.
type LineEnding uint8

const (
	LineEndingLF   LineEnding = iota // Unix: \n
	LineEndingCRLF                   // Windows: \r\n
	LineEndingCR                     // Old Mac: \r
)

// Sequence returns the actual line ending characters.
func (le LineEnding) Sequence() string {
	switch le {
	case LineEndingCRLF:
		return "\r\n"
	case LineEndingCR:
		return "\r"
	default:
		return "\n"
	}
}

// String returns the escaped representation of the line ending.
func (le LineEnding) String() string {
	switch le {
	case LineEndingCRLF:
		return "\\r\\n"
	case LineEndingCR:
		return "\\r"
	default:
		return "\\n"
	}
}

// Revision identifies a buffer state. It changes on every mutation.
type Revision = uuid.UUID

// NewRevision returns a fresh revision identifier.
func NewRevision() Revision {
	return uuid.New()
}

// undoState is the single-level undo snapshot.
type undoState struct {
	content   string
	selection Range
}

// Buffer is the notepad's document: content, selection, revision.
// All methods are safe for concurrent use, though the application
// mutates it from the UI event loop only.
type Buffer struct {
	mu         sync.RWMutex
	content    string
	selection  Range
	revision   Revision
	lineEnding LineEnding
	tabWidth   int

	// lineStarts[i] is the byte offset where line i begins.
	// Rebuilt lazily after mutations; nil means stale.
	lineStarts []ByteOffset

	undo *undoState
}

// New creates an empty buffer.
func New(opts ...Option) *Buffer {
	b := &Buffer{
		revision:   NewRevision(),
		lineEnding: LineEndingLF,
		tabWidth:   4,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// FromString creates a buffer with initial content.
func FromString(s string, opts ...Option) *Buffer {
	b := New(opts...)
	b.content = b.normalizeLineEndings(s)
	return b
}

// FromReader creates a buffer from an io.Reader.
func FromReader(r io.Reader, opts ...Option) (*Buffer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return FromString(string(data), opts...), nil
}

// normalizeLineEndings converts line endings to the buffer's style.
func (b *Buffer) normalizeLineEndings(s string) string {
	if !strings.ContainsAny(s, "\r\n") {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	if seq := b.lineEnding.Sequence(); seq != "\n" {
		s = strings.ReplaceAll(s, "\n", seq)
	}
	return s
}

// Read operations

// Text returns the full buffer content.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.content
}

// TextRange returns text in the given byte range.
// Out-of-bounds offsets are clamped.
func (b *Buffer) TextRange(start, end ByteOffset) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	r := Range{Start: start, End: end}.Clamp(len(b.content))
	return b.content[r.Start:r.End]
}

// Len returns the total byte length of the buffer.
func (b *Buffer) Len() ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.content)
}

// IsEmpty returns true if the buffer has no content.
func (b *Buffer) IsEmpty() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.content) == 0
}

// LineCount returns the number of lines. An empty buffer has one line.
func (b *Buffer) LineCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ensureLineIndex()
	return len(b.lineStarts)
}

// LineText returns the text of a line, without its line ending.
// Returns "" for out-of-range lines.
func (b *Buffer) LineText(line int) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ensureLineIndex()
	if line < 0 || line >= len(b.lineStarts) {
		return ""
	}
	start := b.lineStarts[line]
	end := b.lineEndLocked(line)
	return b.content[start:end]
}

// LineStart returns the byte offset where a line begins.
func (b *Buffer) LineStart(line int) ByteOffset {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ensureLineIndex()
	if line < 0 {
		return 0
	}
	if line >= len(b.lineStarts) {
		return len(b.content)
	}
	return b.lineStarts[line]
}

// lineEndLocked returns the offset of the end of a line, before its
// line ending. Caller must hold the lock and have a fresh line index.
func (b *Buffer) lineEndLocked(line int) ByteOffset {
	end := len(b.content)
	if line+1 < len(b.lineStarts) {
		end = b.lineStarts[line+1]
		seq := b.lineEnding.Sequence()
		if end >= len(seq) && b.content[end-len(seq):end] == seq {
			end -= len(seq)
		}
	}
	return end
}

// OffsetToPoint converts a byte offset to a line/column position.
func (b *Buffer) OffsetToPoint(offset ByteOffset) Point {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ensureLineIndex()
	if offset < 0 {
		offset = 0
	}
	if offset > len(b.content) {
		offset = len(b.content)
	}
	// First line starting after offset; the line containing it precedes.
	line := sort.Search(len(b.lineStarts), func(i int) bool {
		return b.lineStarts[i] > offset
	}) - 1
	return Point{Line: line, Column: offset - b.lineStarts[line]}
}

// PointToOffset converts a line/column position to a byte offset.
func (b *Buffer) PointToOffset(p Point) ByteOffset {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ensureLineIndex()
	if p.Line < 0 {
		return 0
	}
	if p.Line >= len(b.lineStarts) {
		return len(b.content)
	}
	offset := b.lineStarts[p.Line] + p.Column
	if offset > len(b.content) {
		offset = len(b.content)
	}
	return offset
}

// ensureLineIndex rebuilds the line-start index if stale.
// Caller must hold the write lock.
func (b *Buffer) ensureLineIndex() {
	if b.lineStarts != nil {
		return
	}
	starts := []ByteOffset{0}
	seq := b.lineEnding.Sequence()
	for i := 0; i+len(seq) <= len(b.content); {
		if b.content[i:i+len(seq)] == seq {
			starts = append(starts, i+len(seq))
			i += len(seq)
		} else {
			i++
		}
	}
	b.lineStarts = starts
}

// Write operations

// Insert inserts text at the given offset.
// Returns the offset just past the inserted text.
func (b *Buffer) Insert(offset ByteOffset, text string) (ByteOffset, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if offset < 0 || offset > len(b.content) {
		return 0, ErrOffsetOutOfRange
	}
	text = b.normalizeLineEndings(text)
	b.spliceLocked(Range{Start: offset, End: offset}, text)
	return offset + len(text), nil
}

// Delete removes text in the given range.
func (b *Buffer) Delete(start, end ByteOffset) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if start < 0 || start > end || end > len(b.content) {
		return ErrRangeInvalid
	}
	b.spliceLocked(Range{Start: start, End: end}, "")
	return nil
}

// Replace replaces text in the given range with new text.
// Returns the offset just past the replacement.
func (b *Buffer) Replace(start, end ByteOffset, text string) (ByteOffset, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if start < 0 || start > end || end > len(b.content) {
		return 0, ErrRangeInvalid
	}
	text = b.normalizeLineEndings(text)
	b.spliceLocked(Range{Start: start, End: end}, text)
	return start + len(text), nil
}

// SetText replaces the entire buffer content.
func (b *Buffer) SetText(text string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.content = b.normalizeLineEndings(text)
	b.selection = Range{}
	b.lineStarts = nil
	b.revision = NewRevision()
}

// ApplyEdits applies multiple edits atomically.
// Edits must be in reverse order (highest offset first) and must not
// overlap, so earlier splices cannot shift later edit offsets.
func (b *Buffer) ApplyEdits(edits []Edit) error {
	if len(edits) == 0 {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for i := 1; i < len(edits); i++ {
		if edits[i].Range.End > edits[i-1].Range.Start {
			return ErrEditsOverlap
		}
	}
	for _, edit := range edits {
		if edit.Range.Start < 0 || edit.Range.Start > edit.Range.End ||
			edit.Range.End > len(b.content) {
			return ErrRangeInvalid
		}
	}

	for _, edit := range edits {
		b.spliceLocked(edit.Range, b.normalizeLineEndings(edit.NewText))
	}
	return nil
}

// spliceLocked replaces r with text and adjusts the selection so it
// stays within bounds. Caller must hold the write lock and have
// validated r.
func (b *Buffer) spliceLocked(r Range, text string) {
	b.content = b.content[:r.Start] + text + b.content[r.End:]
	b.selection = b.selection.Clamp(len(b.content))
	b.lineStarts = nil
	b.revision = NewRevision()
}

// Selection

// Selection returns the current selection range. An empty range is the
// caret position.
func (b *Buffer) Selection() Range {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.selection
}

// SetSelection sets the selection, clamped to buffer bounds.
func (b *Buffer) SetSelection(r Range) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if r.End < r.Start {
		r.Start, r.End = r.End, r.Start
	}
	b.selection = r.Clamp(len(b.content))
}

// SelectedText returns the text covered by the selection.
func (b *Buffer) SelectedText() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.content[b.selection.Start:b.selection.End]
}

// Undo

// MarkUndo records the current content and selection as the undo point.
func (b *Buffer) MarkUndo() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.undo = &undoState{content: b.content, selection: b.selection}
}

// Undo restores the last marked undo point, swapping it with the
// current state so Undo toggles between the two.
func (b *Buffer) Undo() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.undo == nil {
		return ErrNothingToUndo
	}
	prev := *b.undo
	b.undo = &undoState{content: b.content, selection: b.selection}
	b.content = prev.content
	b.selection = prev.selection.Clamp(len(b.content))
	b.lineStarts = nil
	b.revision = NewRevision()
	return nil
}

// State

// Revision returns the current revision identifier.
func (b *Buffer) Revision() Revision {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.revision
}

// LineEnding returns the buffer's line ending style.
func (b *Buffer) LineEnding() LineEnding {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lineEnding
}

// TabWidth returns the buffer's tab width.
func (b *Buffer) TabWidth() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.tabWidth
}

// SetTabWidth sets the buffer's tab width.
func (b *Buffer) SetTabWidth(width int) {
	if width <= 0 {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tabWidth = width
}
