package app

import (
	"errors"

	"github.com/wenlu-dev/notepad/internal/engine/buffer"
	"github.com/wenlu-dev/notepad/internal/fileio"
	"github.com/wenlu-dev/notepad/internal/i18n"
	"github.com/wenlu-dev/notepad/internal/search"
	"github.com/wenlu-dev/notepad/internal/ui"
)

// Insert types text at the caret.
func (a *App) Insert(text string) {
	if a.readOnly() {
		a.setAlert(i18n.MsgReadOnly)
		return
	}
	if text == "" {
		return
	}
	a.buf.MarkUndo()
	end, err := a.buf.Insert(a.caret, text)
	if err != nil {
		a.log.Error("insert at %d: %v", a.caret, err)
		return
	}
	a.mutated()
	a.moveCaretTo(end)
}

// DeleteBackward removes the rune before the caret.
func (a *App) DeleteBackward() {
	if a.readOnly() {
		a.setAlert(i18n.MsgReadOnly)
		return
	}
	if sel := a.buf.Selection(); sel.End > sel.Start {
		a.deleteRange(sel.Start, sel.End)
		return
	}
	if a.caret == 0 {
		return
	}
	start := prevRuneStart(a.buf.Text(), a.caret)
	a.deleteRange(start, a.caret)
}

// DeleteForward removes the rune under the caret.
func (a *App) DeleteForward() {
	if a.readOnly() {
		a.setAlert(i18n.MsgReadOnly)
		return
	}
	if sel := a.buf.Selection(); sel.End > sel.Start {
		a.deleteRange(sel.Start, sel.End)
		return
	}
	if a.caret >= a.buf.Len() {
		return
	}
	end := nextRuneEnd(a.buf.Text(), a.caret)
	a.deleteRange(a.caret, end)
}

func (a *App) deleteRange(start, end int) {
	a.buf.MarkUndo()
	if err := a.buf.Delete(start, end); err != nil {
		a.log.Error("delete [%d,%d): %v", start, end, err)
		return
	}
	a.mutated()
	a.moveCaretTo(start)
}

// Undo reverts the last edit.
func (a *App) Undo() {
	if err := a.buf.Undo(); err != nil {
		if errors.Is(err, buffer.ErrNothingToUndo) {
			a.setMessage(i18n.MsgNothingToUndo)
		}
		return
	}
	a.mutated()
	a.moveCaretTo(a.caret)
	a.setMessage(i18n.MsgUndone)
}

// currentQuery builds the search query from the find prompt's text and
// toggles, falling back to the configured defaults.
func (a *App) currentQuery(text string) search.Query {
	q := search.Query{
		Text:          text,
		CaseSensitive: a.settings.Search.CaseSensitive,
		WholeWord:     a.settings.Search.WholeWord,
	}
	if a.prompt != nil {
		q.CaseSensitive = a.prompt.CaseSensitive
		q.WholeWord = a.prompt.WholeWord
	}
	return q
}

// runSearch executes a query and seeds the navigator. The caret
// position decides which match becomes current.
func (a *App) runSearch(q search.Query) {
	a.nav.Begin(q)
	a.matches = nil

	spans, err := a.searcher.Find(a.buf.Text(), q)
	if err != nil {
		a.nav.SetMatches(nil)
		if errors.Is(err, search.ErrInvalidQuery) || errors.Is(err, search.ErrInvalidInput) {
			a.setAlert(i18n.MsgInvalidQuery, err)
		}
		a.log.Warn("search %q: %v", q.Text, err)
		return
	}
	a.nav.SetMatches(spans)
	a.matches = spans

	if len(spans) == 0 {
		a.setAlert(i18n.MsgNoMatches, q.Text)
		return
	}
	a.nav.SeekAfter(a.caret)
	if _, err := a.nav.Next(); err == nil {
		a.jumpToCurrent()
	}
	if a.store != nil {
		if err := a.store.AddSearch(q.Text); err != nil {
			a.log.Warn("record search: %v", err)
		}
	}
}

// Search runs a query directly, outside the prompt flow.
func (a *App) Search(text string) {
	a.findText = text
	a.runSearch(a.currentQuery(text))
}

// FindNext advances to the next match, wrapping at the end.
func (a *App) FindNext() {
	if a.ensureMatches() {
		if _, err := a.nav.Next(); err == nil {
			a.jumpToCurrent()
		}
	}
}

// FindPrev moves to the previous match, wrapping at the start.
func (a *App) FindPrev() {
	if a.ensureMatches() {
		if _, err := a.nav.Prev(); err == nil {
			a.jumpToCurrent()
		}
	}
}

// ensureMatches re-runs the last query when a mutation cleared the
// navigator, so F3 after an edit searches again instead of failing.
func (a *App) ensureMatches() bool {
	switch a.nav.State() {
	case search.StateHasMatches:
		return true
	case search.StateIdle:
		if a.findText == "" {
			return false
		}
		a.runSearch(a.currentQuery(a.findText))
		return a.nav.State() == search.StateHasMatches
	default:
		return false
	}
}

// jumpToCurrent selects the current match and scrolls only if needed.
func (a *App) jumpToCurrent() {
	span, err := a.nav.Current()
	if err != nil {
		return
	}
	a.buf.SetSelection(buffer.NewRange(span.Start, span.End))
	a.caret = span.Start
	a.revealCaret()
	a.setMessage(i18n.MsgMatchCounter, a.nav.Index()+1, a.nav.Len())
}

// ReplaceOne replaces the current match and moves to the next one.
func (a *App) ReplaceOne(replacement string) {
	if a.readOnly() {
		a.setAlert(i18n.MsgReadOnly)
		return
	}
	if !a.ensureMatches() {
		return
	}
	span, err := a.nav.Current()
	if err != nil {
		return
	}
	q := a.nav.Query()

	a.buf.MarkUndo()
	if _, err := a.buf.Replace(span.Start, span.End, replacement); err != nil {
		a.setAlert(i18n.MsgStaleMatch)
		a.log.Warn("replace at %v: %v", span, err)
		return
	}
	a.mutated()
	a.caret = span.Start + len(replacement)

	// Matches after the splice shifted, so search the new content and
	// continue from just past the replacement.
	a.nav.Begin(q)
	spans, err := a.searcher.Find(a.buf.Text(), q)
	if err != nil {
		a.nav.SetMatches(nil)
		return
	}
	a.nav.SetMatches(spans)
	a.matches = spans
	if len(spans) == 0 {
		a.setMessage(i18n.MsgReplacedOne)
		a.revealCaret()
		return
	}
	a.nav.SeekAfter(a.caret)
	if _, err := a.nav.Next(); err == nil {
		a.jumpToCurrent()
	}
	a.setMessage(i18n.MsgReplacedOne)
}

// ReplaceAll replaces every match of the last query in one pass.
func (a *App) ReplaceAll(replacement string) {
	if a.readOnly() {
		a.setAlert(i18n.MsgReadOnly)
		return
	}
	q := a.currentQuery(a.findText)
	if q.IsEmpty() {
		return
	}
	text, count, err := search.ReplaceAll(a.buf.Text(), q, replacement)
	if err != nil {
		if errors.Is(err, search.ErrInvalidQuery) || errors.Is(err, search.ErrInvalidInput) {
			a.setAlert(i18n.MsgInvalidQuery, err)
		}
		a.log.Warn("replace all %q: %v", q.Text, err)
		return
	}
	if count == 0 {
		a.setAlert(i18n.MsgNoMatches, q.Text)
		return
	}
	a.buf.MarkUndo()
	a.buf.SetText(text)
	a.mutated()
	a.moveCaretTo(min(a.caret, a.buf.Len()))
	a.setMessage(i18n.MsgReplacedAll, count)
	a.log.Info("replaced %d occurrences of %q", count, q.Text)
}

// Open loads a file into the buffer, replacing the current document.
func (a *App) Open(path string) error {
	text, info, err := fileio.Load(path)
	if err != nil {
		a.setAlert(i18n.MsgOpenFailed, err)
		a.log.Error("open %s: %v", path, err)
		return NewOperationError("open", path, err)
	}

	a.buf = buffer.FromString(text,
		buffer.WithLineEnding(info.LineEnding),
		buffer.WithTabWidth(a.settings.Editor.TabWidth))
	a.file = info
	a.modified = false
	a.caret = 0
	a.quitArmed = false
	a.searcher.Invalidate()
	a.nav.Reset()
	a.matches = nil
	a.vp.ScrollTo(0)
	a.syncViewport()

	if a.store != nil {
		if err := a.store.AddRecentFile(path); err != nil {
			a.log.Warn("record recent file: %v", err)
		}
	}
	a.setMessage(i18n.MsgOpened, path)
	a.log.Info("opened %s (%s, %s)", path, info.Encoding, info.LineEnding)
	return nil
}

// Save writes the document back to its file.
func (a *App) Save() error {
	if a.file.Path == "" {
		return ErrNoFile
	}
	return a.saveTo(a.file)
}

// SaveAs writes the document to a new path in UTF-8.
func (a *App) SaveAs(path string) error {
	info := a.file
	info.Path = path
	info.ReadOnly = false
	if info.Encoding == "" {
		info.Encoding = fileio.EncodingUTF8
	}
	return a.saveTo(info)
}

func (a *App) saveTo(info fileio.FileInfo) error {
	info.LineEnding = a.buf.LineEnding()
	if err := fileio.Save(a.buf.Text(), info); err != nil {
		a.setAlert(i18n.MsgSaveFailed, err)
		a.log.Error("save %s: %v", info.Path, err)
		return NewOperationError("save", info.Path, err)
	}
	a.file = info
	a.modified = false
	a.setMessage(i18n.MsgSaved, info.Path)
	a.log.Info("saved %s", info.Path)
	if a.store != nil {
		_ = a.store.AddRecentFile(info.Path)
	}
	return nil
}

// NewDocument discards the buffer and starts empty.
func (a *App) NewDocument() {
	a.buf = buffer.New(buffer.WithTabWidth(a.settings.Editor.TabWidth))
	a.file = fileio.FileInfo{Encoding: fileio.EncodingUTF8, LineEnding: buffer.LineEndingLF}
	a.modified = false
	a.caret = 0
	a.quitArmed = false
	a.searcher.Invalidate()
	a.nav.Reset()
	a.matches = nil
	a.vp.ScrollTo(0)
	a.setMessage(i18n.MsgNewDocument)
}

// Quit returns ErrQuit when the document is clean or the user insisted.
func (a *App) Quit() error {
	if a.modified && !a.quitArmed {
		a.quitArmed = true
		a.setAlert(i18n.MsgUnsavedChanges)
		return nil
	}
	return ErrQuit
}

// OpenFindPrompt shows the find prompt preloaded with the last query.
func (a *App) OpenFindPrompt() {
	initial := a.findText
	if initial == "" && a.store != nil {
		if prev, err := a.store.Searches(1); err == nil && len(prev) > 0 {
			initial = prev[0]
		}
	}
	p := ui.NewPrompt(ui.PromptFind, a.tr.T(i18n.MsgFindPrompt), initial)
	p.CaseSensitive = a.settings.Search.CaseSensitive
	p.WholeWord = a.settings.Search.WholeWord
	a.prompt = p
}

// OpenReplacePrompt asks for the replacement after a find.
func (a *App) OpenReplacePrompt() {
	p := ui.NewPrompt(ui.PromptReplace, a.tr.T(i18n.MsgReplacePrompt), "")
	p.CaseSensitive = a.settings.Search.CaseSensitive
	p.WholeWord = a.settings.Search.WholeWord
	if a.prompt != nil && a.prompt.Kind == ui.PromptFind {
		a.findText = a.prompt.Text()
		p.CaseSensitive = a.prompt.CaseSensitive
		p.WholeWord = a.prompt.WholeWord
	}
	a.prompt = p
}

// ClosePrompt dismisses the prompt without acting.
func (a *App) ClosePrompt() {
	a.prompt = nil
}

func prevRuneStart(s string, off int) int {
	for off > 0 {
		off--
		if isRuneStart(s, off) {
			break
		}
	}
	return off
}

func nextRuneEnd(s string, off int) int {
	off++
	for off < len(s) && !isRuneStart(s, off) {
		off++
	}
	return off
}

func isRuneStart(s string, off int) bool {
	return off >= len(s) || s[off]&0xC0 != 0x80
}
