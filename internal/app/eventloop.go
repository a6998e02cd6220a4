package app

import (
	"errors"
	"strconv"

	"github.com/gdamore/tcell/v2"

	"github.com/wenlu-dev/notepad/internal/i18n"
	"github.com/wenlu-dev/notepad/internal/ui"
)

// Run drives the event loop until quit. The screen must be attached.
func (a *App) Run() error {
	if a.screen == nil {
		return errors.New("no screen attached")
	}
	a.startAutosave()
	defer func() {
		if a.stopAutosave != nil {
			a.stopAutosave()
		}
	}()
	a.Render()
	for {
		ev := a.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if err := a.HandleEvent(ev); err != nil {
			if errors.Is(err, ErrQuit) {
				return nil
			}
			return err
		}
		a.Render()
	}
}

// HandleEvent processes one event. Returns ErrQuit to stop the loop.
func (a *App) HandleEvent(ev tcell.Event) error {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		w, h := ev.Size()
		a.Resize(w, h)
	case *tcell.EventPaste:
		// Paste start/end brackets; the pasted runes arrive as key
		// events in between, which insert normally.
	case *ui.ReloadEvent:
		a.ApplySettings(ev.Settings)
	case *ui.AutosaveEvent:
		a.Autosave()
	case *ui.QuitEvent:
		return a.Quit()
	case *tcell.EventKey:
		return a.handleKey(ev)
	}
	return nil
}

func (a *App) handleKey(ev *tcell.EventKey) error {
	if a.prompt != nil {
		return a.handlePromptKey(ev)
	}

	switch ev.Key() {
	case tcell.KeyCtrlQ:
		return a.Quit()
	case tcell.KeyCtrlS:
		if err := a.Save(); errors.Is(err, ErrNoFile) {
			a.prompt = ui.NewPrompt(ui.PromptSaveAs, a.tr.T(i18n.MsgSaveAsPrompt), "")
		}
	case tcell.KeyCtrlN:
		a.NewDocument()
	case tcell.KeyCtrlF:
		a.OpenFindPrompt()
	case tcell.KeyCtrlR:
		a.OpenReplacePrompt()
	case tcell.KeyCtrlG:
		a.prompt = ui.NewPrompt(ui.PromptGoto, a.tr.T(i18n.MsgGotoPrompt), "")
	case tcell.KeyCtrlZ:
		a.Undo()
	case tcell.KeyF3:
		if ev.Modifiers()&tcell.ModShift != 0 {
			a.FindPrev()
		} else {
			a.FindNext()
		}
	case tcell.KeyEscape:
		a.nav.Reset()
		a.matches = nil
		a.quitArmed = false
	case tcell.KeyUp:
		a.CaretUp()
	case tcell.KeyDown:
		a.CaretDown()
	case tcell.KeyLeft:
		a.CaretLeft()
	case tcell.KeyRight:
		a.CaretRight()
	case tcell.KeyHome:
		a.CaretLineStart()
	case tcell.KeyEnd:
		a.CaretLineEnd()
	case tcell.KeyPgUp:
		a.PageUp()
	case tcell.KeyPgDn:
		a.PageDown()
	case tcell.KeyEnter:
		a.Insert("\n")
	case tcell.KeyTab:
		a.Insert("\t")
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		a.DeleteBackward()
	case tcell.KeyDelete:
		a.DeleteForward()
	case tcell.KeyRune:
		a.Insert(string(ev.Rune()))
	}
	return nil
}

func (a *App) handlePromptKey(ev *tcell.EventKey) error {
	p := a.prompt

	// Alt+C and Alt+W toggle the search options.
	if ev.Key() == tcell.KeyRune && ev.Modifiers()&tcell.ModAlt != 0 {
		switch ev.Rune() {
		case 'c', 'C':
			p.CaseSensitive = !p.CaseSensitive
			return nil
		case 'w', 'W':
			p.WholeWord = !p.WholeWord
			return nil
		}
	}

	switch ev.Key() {
	case tcell.KeyEscape:
		a.ClosePrompt()
	case tcell.KeyEnter:
		return a.submitPrompt()
	case tcell.KeyCtrlR:
		if p.Kind == ui.PromptFind {
			a.OpenReplacePrompt()
		} else if p.Kind == ui.PromptReplace {
			a.ReplaceAll(p.Text())
			a.ClosePrompt()
		}
	case tcell.KeyLeft:
		p.Left()
	case tcell.KeyRight:
		p.Right()
	case tcell.KeyHome:
		p.Home()
	case tcell.KeyEnd:
		p.End()
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		p.Backspace()
	case tcell.KeyDelete:
		p.Delete()
	case tcell.KeyCtrlU:
		p.Clear()
	case tcell.KeyRune:
		p.Insert(ev.Rune())
	}
	return nil
}

func (a *App) submitPrompt() error {
	p := a.prompt
	switch p.Kind {
	case ui.PromptFind:
		a.findText = p.Text()
		a.ClosePrompt()
		if a.findText != "" {
			q := a.currentQuery(a.findText)
			q.CaseSensitive = p.CaseSensitive
			q.WholeWord = p.WholeWord
			a.runSearch(q)
		}
	case ui.PromptReplace:
		a.ReplaceOne(p.Text())
	case ui.PromptGoto:
		a.ClosePrompt()
		if n, err := strconv.Atoi(p.Text()); err == nil {
			a.GotoLine(n)
		}
	case ui.PromptSaveAs:
		path := p.Text()
		a.ClosePrompt()
		if path != "" {
			_ = a.SaveAs(path)
		}
	default:
		a.ClosePrompt()
	}
	return nil
}
