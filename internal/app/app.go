package app

import (
	"errors"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/wenlu-dev/notepad/internal/config"
	"github.com/wenlu-dev/notepad/internal/engine/buffer"
	"github.com/wenlu-dev/notepad/internal/fileio"
	"github.com/wenlu-dev/notepad/internal/i18n"
	"github.com/wenlu-dev/notepad/internal/renderer/viewport"
	"github.com/wenlu-dev/notepad/internal/search"
	"github.com/wenlu-dev/notepad/internal/storage"
	"github.com/wenlu-dev/notepad/internal/ui"
	"github.com/wenlu-dev/notepad/internal/ui/theme"
)

// Options configures a new App.
type Options struct {
	Settings  config.Settings
	ConfigDir string         // directory holding themes/, for theme lookup
	Store     *storage.Store // optional session store
	Screen    *ui.Screen     // nil in headless tests
	Logger    *Logger
	ReadOnly  bool
}

// App is the controller. It owns the document, the search machinery
// and the viewport, and is only touched from the event goroutine.
type App struct {
	log       *Logger
	tr        *i18n.Translator
	settings  config.Settings
	configDir string
	theme     *theme.Theme
	store     *storage.Store
	screen    *ui.Screen

	buf      *buffer.Buffer
	file     fileio.FileInfo
	modified bool
	forcedRO bool

	searcher *search.Searcher
	nav      *search.Navigator
	matches  []search.Span
	vp       *viewport.Viewport

	caret     int
	prompt    *ui.Prompt
	findText  string
	message   string
	alert     bool
	quitArmed bool

	stopAutosave func()
}

// New assembles an App from options. Settings must already be
// validated.
func New(opts Options) (*App, error) {
	log := opts.Logger
	if log == nil {
		log = NullLogger
	}
	th, err := theme.Load(opts.Settings.UI.Theme, opts.ConfigDir)
	if err != nil {
		return nil, NewOperationError("load theme", opts.Settings.UI.Theme, err)
	}

	width, height := 80, 24
	if opts.Screen != nil {
		width, height = opts.Screen.Size()
	}

	a := &App{
		log:       log,
		tr:        i18n.New(opts.Settings.UI.Language),
		settings:  opts.Settings,
		configDir: opts.ConfigDir,
		theme:     th,
		store:     opts.Store,
		screen:    opts.Screen,
		buf:      buffer.New(buffer.WithTabWidth(opts.Settings.Editor.TabWidth)),
		searcher: search.NewSearcher(),
		nav:      search.NewNavigator(),
		vp:       viewport.New(width, height-2),
		forcedRO: opts.ReadOnly,
	}
	a.file.Encoding = fileio.EncodingUTF8
	a.file.LineEnding = buffer.LineEndingLF
	a.message = a.tr.T(i18n.MsgReady)
	return a, nil
}

// Translator exposes the message catalog for the entry point.
func (a *App) Translator() *i18n.Translator { return a.tr }

// Caret returns the caret byte offset.
func (a *App) Caret() int { return a.caret }

// Text returns the document text.
func (a *App) Text() string { return a.buf.Text() }

// Modified reports whether the document has unsaved edits.
func (a *App) Modified() bool { return a.modified }

// Message returns the current status message.
func (a *App) Message() string { return a.message }

// FileInfo returns the backing file metadata.
func (a *App) FileInfo() fileio.FileInfo { return a.file }

// readOnly reports whether edits are rejected.
func (a *App) readOnly() bool { return a.forcedRO || a.file.ReadOnly }

// setMessage updates the status message line.
func (a *App) setMessage(key string, args ...any) {
	a.message = a.tr.T(key, args...)
	a.alert = false
}

// setAlert shows a highlighted error message.
func (a *App) setAlert(key string, args ...any) {
	a.message = a.tr.T(key, args...)
	a.alert = true
}

// mutated records a document change: the search cache and the active
// navigation are no longer valid.
func (a *App) mutated() {
	a.modified = true
	a.quitArmed = false
	a.searcher.Invalidate()
	a.nav.Reset()
	a.matches = nil
	a.buf.SetSelection(buffer.Range{})
}

// ApplySettings swaps in reloaded configuration. Called from the event
// goroutine when the config watcher posts a ReloadEvent.
func (a *App) ApplySettings(s config.Settings) {
	oldTheme, oldLang := a.settings.UI.Theme, a.settings.UI.Language
	oldAutosave := a.settings.Editor.AutosaveSeconds
	a.settings = s
	a.buf.SetTabWidth(s.Editor.TabWidth)
	if s.Editor.AutosaveSeconds != oldAutosave {
		a.startAutosave()
	}
	if s.UI.Language != oldLang {
		a.tr = i18n.New(s.UI.Language)
	}
	if s.UI.Theme != oldTheme {
		if th, err := theme.Load(s.UI.Theme, a.configDir); err == nil {
			a.theme = th
		} else {
			a.log.Warn("theme reload failed: %v", err)
		}
	}
	a.setMessage(i18n.MsgConfigReloaded)
	a.log.Info("settings reloaded")
}

// Resize updates the viewport for a new screen size.
func (a *App) Resize(width, height int) {
	if height < 3 {
		height = 3
	}
	a.vp.Resize(width, height-2)
	a.syncViewport()
}

// lines splits the document for layout computation.
func (a *App) lines() []string {
	return strings.Split(a.buf.Text(), "\n")
}

// layout computes the current visual layout.
func (a *App) layout() *viewport.Layout {
	width := a.vp.Width()
	if !a.settings.Editor.WordWrap {
		width = 1 << 30
	}
	return viewport.NewLayout(a.lines(), width, a.settings.Editor.TabWidth)
}

// caretRow returns the caret's visual row.
func (a *App) caretRow() int {
	pt := a.buf.OffsetToPoint(a.caret)
	l := a.layout()
	return l.RowOfPosition(a.buf.LineText(pt.Line), pt.Line, pt.Column)
}

// syncViewport refreshes the viewport's row bound after any change to
// the document or the wrap width.
func (a *App) syncViewport() {
	a.vp.SetMaxRow(a.layout().TotalRows())
}

// revealCaret scrolls only when the caret left the visible region.
func (a *App) revealCaret() {
	a.syncViewport()
	if action, ok := a.vp.Reveal(a.caretRow()); ok {
		a.log.Debug("scroll to row %d", action.TopRow)
	}
}

// moveCaretTo places the caret and keeps it on screen.
func (a *App) moveCaretTo(offset int) {
	if offset < 0 {
		offset = 0
	}
	if offset > a.buf.Len() {
		offset = a.buf.Len()
	}
	a.caret = offset
	a.revealCaret()
}

// CaretLeft moves one rune back.
func (a *App) CaretLeft() {
	if a.caret == 0 {
		return
	}
	_, size := utf8.DecodeLastRuneInString(a.buf.Text()[:a.caret])
	a.moveCaretTo(a.caret - size)
}

// CaretRight moves one rune forward.
func (a *App) CaretRight() {
	if a.caret >= a.buf.Len() {
		return
	}
	_, size := utf8.DecodeRuneInString(a.buf.Text()[a.caret:])
	a.moveCaretTo(a.caret + size)
}

// CaretUp and CaretDown move by buffer line, clamping the column.
func (a *App) CaretUp()   { a.caretVertical(-1) }
func (a *App) CaretDown() { a.caretVertical(1) }

func (a *App) caretVertical(delta int) {
	pt := a.buf.OffsetToPoint(a.caret)
	line := pt.Line + delta
	if line < 0 || line >= a.buf.LineCount() {
		return
	}
	col := pt.Column
	if max := len(a.buf.LineText(line)); col > max {
		col = max
	}
	a.moveCaretTo(a.buf.PointToOffset(buffer.Point{Line: line, Column: col}))
}

// CaretLineStart and CaretLineEnd jump within the current line.
func (a *App) CaretLineStart() {
	pt := a.buf.OffsetToPoint(a.caret)
	a.moveCaretTo(a.buf.LineStart(pt.Line))
}

func (a *App) CaretLineEnd() {
	pt := a.buf.OffsetToPoint(a.caret)
	a.moveCaretTo(a.buf.LineStart(pt.Line) + len(a.buf.LineText(pt.Line)))
}

// PageUp and PageDown scroll a page and drag the caret along.
func (a *App) PageUp() {
	a.vp.PageUp()
	a.caretToVisible()
}

func (a *App) PageDown() {
	a.syncViewport()
	a.vp.PageDown()
	a.caretToVisible()
}

// caretToVisible pulls the caret into the visible region after an
// explicit scroll, landing on the nearest visible line start.
func (a *App) caretToVisible() {
	row := a.caretRow()
	if a.vp.IsRowVisible(row) {
		return
	}
	target := a.vp.TopRow()
	if row >= a.vp.TopRow()+a.vp.Height() {
		target = a.vp.TopRow() + a.vp.Height() - 1
	}
	l := a.layout()
	for line := 0; line < a.buf.LineCount(); line++ {
		if l.RowOfLine(line) >= target {
			a.caret = a.buf.LineStart(line)
			return
		}
	}
	a.caret = a.buf.Len()
}

// GotoLine jumps to a 1-based line number.
func (a *App) GotoLine(n int) {
	if n < 1 {
		n = 1
	}
	if n > a.buf.LineCount() {
		n = a.buf.LineCount()
	}
	a.moveCaretTo(a.buf.LineStart(n - 1))
}

// Frame builds the render snapshot for the current state.
func (a *App) Frame() *ui.Frame {
	pt := a.buf.OffsetToPoint(a.caret)
	sel := a.buf.Selection()
	line := a.buf.LineText(pt.Line)
	col := pt.Column
	if col > len(line) {
		col = len(line)
	}

	name := a.tr.T(i18n.MsgUntitled)
	if a.file.Path != "" {
		name = filepath.Base(a.file.Path)
	}

	counter := ""
	if a.nav.State() == search.StateHasMatches {
		counter = a.tr.T(i18n.MsgMatchCounter, a.nav.Index()+1, a.nav.Len())
	}

	return &ui.Frame{
		Text:        a.buf.Text(),
		TopRow:      a.vp.TopRow(),
		WordWrap:    a.settings.Editor.WordWrap,
		TabWidth:    a.settings.Editor.TabWidth,
		CaretOffset: a.caret,
		Selection:   search.Span{Start: sel.Start, End: sel.End},
		Matches:     a.matches,
		Current:     a.nav.Index(),
		Status: ui.Status{
			FileName:   name,
			Modified:   a.modified,
			ReadOnly:   a.readOnly(),
			Encoding:   a.file.Encoding.String(),
			LineEnding: a.buf.LineEnding().String(),
			Line:       pt.Line + 1,
			Column:     utf8.RuneCountInString(line[:col]) + 1,
			Counter:    counter,
		},
		Message: a.message,
		Alert:   a.alert,
		Prompt:  a.prompt,
	}
}

// Render draws the current frame. No-op in headless tests.
func (a *App) Render() {
	if a.screen == nil {
		return
	}
	ui.Render(a.screen, a.theme, a.Frame())
}

// startAutosave (re)starts the autosave ticker goroutine from the
// configured interval. The goroutine only posts events; the event loop
// performs the write. Called from the event goroutine.
func (a *App) startAutosave() {
	if a.stopAutosave != nil {
		a.stopAutosave()
		a.stopAutosave = nil
	}
	secs := a.settings.Editor.AutosaveSeconds
	if secs <= 0 || a.screen == nil {
		return
	}
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(time.Duration(secs) * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				a.screen.PostEvent(&ui.AutosaveEvent{})
			case <-done:
				return
			}
		}
	}()
	a.stopAutosave = func() { close(done) }
}

// Autosave writes a modified document back to its file without
// touching the status message. No-op for untitled, clean or read-only
// documents.
func (a *App) Autosave() {
	if !a.modified || a.file.Path == "" || a.readOnly() {
		return
	}
	info := a.file
	info.LineEnding = a.buf.LineEnding()
	if err := fileio.Save(a.buf.Text(), info); err != nil {
		a.log.Warn("autosave %s: %v", info.Path, err)
		return
	}
	a.modified = false
	a.log.Debug("autosaved %s", info.Path)
}

// RestoreSession reopens the previous session's document and position.
// With no recorded window state it falls back to the most recent file.
func (a *App) RestoreSession() {
	if a.store == nil {
		return
	}
	ws, err := a.store.WindowState()
	if err != nil {
		if !errors.Is(err, storage.ErrNoEntry) {
			a.log.Warn("window state: %v", err)
			return
		}
		recent, err := a.store.RecentFiles(1)
		if err != nil || len(recent) == 0 {
			return
		}
		ws = storage.WindowState{LastFile: recent[0]}
	}
	if ws.LastFile == "" {
		return
	}
	if err := a.Open(ws.LastFile); err != nil {
		return
	}
	a.moveCaretTo(ws.CaretOffset)
	a.vp.ScrollTo(ws.TopRow)
}

// SaveSession records the open file and scroll position for the next
// start. Called on clean exit.
func (a *App) SaveSession() {
	if a.store == nil {
		return
	}
	ws := storage.WindowState{
		LastFile:    a.file.Path,
		TopRow:      a.vp.TopRow(),
		CaretOffset: a.caret,
	}
	if err := a.store.SaveWindowState(ws); err != nil {
		a.log.Warn("save window state: %v", err)
	}
}
