package app

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/wenlu-dev/notepad/internal/config"
	"github.com/wenlu-dev/notepad/internal/search"
	"github.com/wenlu-dev/notepad/internal/storage"
	"github.com/wenlu-dev/notepad/internal/ui"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	a, err := New(Options{Settings: config.Default()})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return a
}

func TestInsertAndCaret(t *testing.T) {
	a := newTestApp(t)
	a.Insert("你好")
	if a.Text() != "你好" {
		t.Fatalf("Text = %q", a.Text())
	}
	if a.Caret() != len("你好") {
		t.Errorf("caret = %d", a.Caret())
	}
	if !a.Modified() {
		t.Error("Modified = false after insert")
	}

	a.CaretLeft()
	if a.Caret() != len("你") {
		t.Errorf("caret after left = %d", a.Caret())
	}
	a.Insert(", ")
	if a.Text() != "你, 好" {
		t.Errorf("Text = %q", a.Text())
	}
}

func TestDeleteBackwardRune(t *testing.T) {
	a := newTestApp(t)
	a.Insert("a好b")
	a.CaretLeft()
	a.DeleteBackward()
	if a.Text() != "ab" {
		t.Errorf("Text = %q", a.Text())
	}
	if a.Caret() != 1 {
		t.Errorf("caret = %d", a.Caret())
	}
}

func TestSearchSelectsFirstMatchAfterCaret(t *testing.T) {
	a := newTestApp(t)
	a.Insert("ab xx ab xx ab")
	a.moveCaretTo(4)

	a.Search("ab")
	span, err := a.nav.Current()
	if err != nil {
		t.Fatalf("no current match: %v", err)
	}
	if span.Start != 6 {
		t.Errorf("current match start = %d, want 6", span.Start)
	}
	if a.Caret() != 6 {
		t.Errorf("caret = %d", a.Caret())
	}
}

func TestFindNextWrapsAround(t *testing.T) {
	a := newTestApp(t)
	a.Insert("ab ab ab")
	a.moveCaretTo(0)
	a.Search("ab")

	starts := []int{}
	for i := 0; i < 3; i++ {
		span, err := a.nav.Current()
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		starts = append(starts, span.Start)
		a.FindNext()
	}
	span, _ := a.nav.Current()
	if span.Start != starts[0] {
		t.Errorf("after full cycle start = %d, want %d", span.Start, starts[0])
	}
	if starts[0] != 0 || starts[1] != 3 || starts[2] != 6 {
		t.Errorf("visit order = %v", starts)
	}
}

func TestMutationInvalidatesSearch(t *testing.T) {
	a := newTestApp(t)
	a.Insert("ab ab")
	a.moveCaretTo(0)
	a.Search("ab")
	if a.nav.State() != search.StateHasMatches {
		t.Fatalf("state = %v", a.nav.State())
	}

	a.Insert("ab ")
	if a.nav.State() != search.StateIdle {
		t.Errorf("state after edit = %v, want idle", a.nav.State())
	}
	if a.matches != nil {
		t.Error("stale matches kept after edit")
	}

	// FindNext after an edit re-runs the last query on new content.
	a.FindNext()
	if a.nav.State() != search.StateHasMatches {
		t.Fatalf("state after FindNext = %v", a.nav.State())
	}
	if a.nav.Len() != 3 {
		t.Errorf("match count = %d, want 3", a.nav.Len())
	}
}

func TestReplaceOneAdvances(t *testing.T) {
	a := newTestApp(t)
	a.Insert("ab ab ab")
	a.moveCaretTo(0)
	a.Search("ab")

	a.ReplaceOne("X")
	if a.Text() != "X ab ab" {
		t.Fatalf("Text = %q", a.Text())
	}
	span, err := a.nav.Current()
	if err != nil {
		t.Fatalf("no current after replace: %v", err)
	}
	if span.Start != 2 {
		t.Errorf("next match start = %d, want 2", span.Start)
	}
}

func TestReplaceAll(t *testing.T) {
	a := newTestApp(t)
	a.Insert("ab ab ab")
	a.Search("ab")
	a.findText = "ab"

	a.ReplaceAll("X")
	if a.Text() != "X X X" {
		t.Errorf("Text = %q", a.Text())
	}
	if a.nav.State() != search.StateIdle {
		t.Errorf("state = %v, want idle after replace all", a.nav.State())
	}
}

func TestInvalidQueryIsNoOp(t *testing.T) {
	a := newTestApp(t)
	a.Insert("abc")
	before := a.Text()

	a.Search(string([]byte{0xff, 0xfe}))
	if a.Text() != before {
		t.Error("invalid query mutated the document")
	}
	if a.nav.State() == search.StateHasMatches {
		t.Error("invalid query produced matches")
	}
}

func TestOpenSaveRoundTrip(t *testing.T) {
	a := newTestApp(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.txt")
	if err := os.WriteFile(path, []byte("第一行\n第二行\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := a.Open(path); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if a.Modified() {
		t.Error("Modified = true after open")
	}

	a.Insert("标题\n")
	if err := a.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(raw) != "标题\n第一行\n第二行\n" {
		t.Errorf("saved = %q", raw)
	}
	if a.Modified() {
		t.Error("Modified = true after save")
	}
}

func TestSaveWithoutFile(t *testing.T) {
	a := newTestApp(t)
	a.Insert("x")
	if err := a.Save(); !errors.Is(err, ErrNoFile) {
		t.Errorf("err = %v, want ErrNoFile", err)
	}

	path := filepath.Join(t.TempDir(), "new.txt")
	if err := a.SaveAs(path); err != nil {
		t.Fatalf("SaveAs: %v", err)
	}
	if a.FileInfo().Path != path {
		t.Errorf("path = %q", a.FileInfo().Path)
	}
}

func TestQuitArmsOnUnsavedChanges(t *testing.T) {
	a := newTestApp(t)
	if err := a.Quit(); !errors.Is(err, ErrQuit) {
		t.Fatalf("clean quit err = %v", err)
	}

	a.Insert("x")
	if err := a.Quit(); err != nil {
		t.Fatalf("first quit with changes err = %v, want nil", err)
	}
	if err := a.Quit(); !errors.Is(err, ErrQuit) {
		t.Errorf("second quit err = %v, want ErrQuit", err)
	}

	// Any edit disarms the pending quit.
	a.Insert("y")
	if err := a.Quit(); err != nil {
		t.Errorf("quit after new edit err = %v, want nil", err)
	}
}

func TestReadOnlyRejectsEdits(t *testing.T) {
	a, err := New(Options{Settings: config.Default(), ReadOnly: true})
	if err != nil {
		t.Fatal(err)
	}
	a.Insert("x")
	if a.Text() != "" {
		t.Errorf("read-only document was edited: %q", a.Text())
	}
}

func TestUndoRestoresText(t *testing.T) {
	a := newTestApp(t)
	a.Insert("hello")
	a.Insert(" world")
	a.Undo()
	if a.Text() != "hello" {
		t.Errorf("Text = %q", a.Text())
	}
}

func TestGotoLine(t *testing.T) {
	a := newTestApp(t)
	a.Insert("a\nbb\nccc\n")
	a.GotoLine(3)
	if a.Caret() != 5 {
		t.Errorf("caret = %d, want start of line 3", a.Caret())
	}
	a.GotoLine(99)
	if a.Caret() != a.buf.LineStart(a.buf.LineCount()-1) {
		t.Errorf("caret = %d after overshoot", a.Caret())
	}
}

func TestApplySettingsSwitchesLanguage(t *testing.T) {
	a := newTestApp(t)
	s := a.settings
	s.UI.Language = "en"
	a.ApplySettings(s)
	if got := a.Message(); got != "Configuration reloaded" {
		t.Errorf("message = %q", got)
	}
}

// Reloaded settings travel inside the event and are applied by the
// event loop, never by the watcher goroutine.
func TestReloadEventAppliesSettings(t *testing.T) {
	a := newTestApp(t)
	s := a.settings
	s.UI.Language = "en"
	s.Editor.TabWidth = 8

	if err := a.HandleEvent(&ui.ReloadEvent{Settings: s}); err != nil {
		t.Fatalf("HandleEvent: %v", err)
	}
	if a.settings.Editor.TabWidth != 8 {
		t.Errorf("tab width = %d, want 8", a.settings.Editor.TabWidth)
	}
	if got := a.Message(); got != "Configuration reloaded" {
		t.Errorf("message = %q, want English after reload", got)
	}
}

func TestAutosaveWritesModifiedDocument(t *testing.T) {
	a := newTestApp(t)
	path := filepath.Join(t.TempDir(), "doc.txt")
	if err := os.WriteFile(path, []byte("old\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := a.Open(path); err != nil {
		t.Fatalf("Open: %v", err)
	}

	// A clean document is left alone.
	a.Autosave()
	if a.Modified() {
		t.Fatal("Modified = true on clean document")
	}

	a.Insert("new ")
	msg := a.Message()
	a.HandleEvent(&ui.AutosaveEvent{})

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(raw) != "new old\n" {
		t.Errorf("autosaved content = %q", raw)
	}
	if a.Modified() {
		t.Error("Modified = true after autosave")
	}
	if a.Message() != msg {
		t.Errorf("autosave changed the status message to %q", a.Message())
	}
}

func TestAutosaveSkipsUntitled(t *testing.T) {
	a := newTestApp(t)
	a.Insert("x")
	a.Autosave()
	if !a.Modified() {
		t.Error("untitled document was autosaved")
	}
}

func TestSessionRoundTrip(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "session.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	path := filepath.Join(t.TempDir(), "doc.txt")
	if err := os.WriteFile(path, []byte("one\ntwo\nthree\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	a, err := New(Options{Settings: config.Default(), Store: store})
	if err != nil {
		t.Fatal(err)
	}
	if err := a.Open(path); err != nil {
		t.Fatalf("Open: %v", err)
	}
	a.moveCaretTo(8) // start of "three"
	a.SaveSession()

	b, err := New(Options{Settings: config.Default(), Store: store})
	if err != nil {
		t.Fatal(err)
	}
	b.RestoreSession()
	if b.FileInfo().Path != path {
		t.Fatalf("restored path = %q, want %q", b.FileInfo().Path, path)
	}
	if b.Caret() != 8 {
		t.Errorf("restored caret = %d, want 8", b.Caret())
	}
}

// With no window state yet, restore falls back to the most recent file.
func TestRestoreSessionFallsBackToRecent(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "session.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	path := filepath.Join(t.TempDir(), "doc.txt")
	if err := os.WriteFile(path, []byte("hello\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := store.AddRecentFile(path); err != nil {
		t.Fatal(err)
	}

	a, err := New(Options{Settings: config.Default(), Store: store})
	if err != nil {
		t.Fatal(err)
	}
	a.RestoreSession()
	if a.FileInfo().Path != path {
		t.Errorf("restored path = %q, want %q", a.FileInfo().Path, path)
	}
}
