package ui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/wenlu-dev/notepad/internal/search"
	"github.com/wenlu-dev/notepad/internal/ui/theme"
)

// Status holds what the status bar shows.
type Status struct {
	FileName   string
	Modified   bool
	ReadOnly   bool
	Encoding   string
	LineEnding string
	Line       int // 1-based caret line
	Column     int // 1-based caret column
	Counter    string
}

// Frame is one render snapshot. The controller fills it from the
// buffer, navigator and viewport; Render draws it without touching any
// of them.
type Frame struct {
	Text        string
	TopRow      int
	WordWrap    bool
	TabWidth    int
	CaretOffset int
	Selection   search.Span
	Matches     []search.Span
	Current     int // index into Matches, -1 when none active
	Status      Status
	Message     string
	Alert       bool
	Prompt      *Prompt
}

// Render draws a full frame: text area, status bar, then the prompt or
// message line, and finally places the cursor.
func Render(s *Screen, th *theme.Theme, f *Frame) {
	width, height := s.tc.Size()
	if width <= 0 || height < 3 {
		return
	}
	textRows := height - 2

	s.tc.Fill(' ', th.Text)
	caretX, caretY := -1, -1

	row := 0 // visual row in the whole document
	off := 0
	mi := 0 // index of first match whose End > off

	for _, line := range strings.Split(f.Text, "\n") {
		col := 0
		gr := uniseg.NewGraphemes(line)
		for gr.Next() {
			runes := gr.Runes()
			start, _ := gr.Positions()
			cellW := gr.Width()
			if runes[0] == '\t' {
				cellW = f.TabWidth - col%f.TabWidth
			}

			if f.WordWrap && col+cellW > width && col > 0 {
				row++
				col = 0
			}

			screenY := row - f.TopRow
			if screenY >= 0 && screenY < textRows && col < width {
				style := styleAt(th, f, off+start, f.Matches, &mi)
				if off+start == f.CaretOffset {
					caretX, caretY = col, screenY
				}
				if runes[0] == '\t' {
					for i := 0; i < cellW && col+i < width; i++ {
						s.tc.SetContent(col+i, screenY, ' ', nil, style)
					}
				} else {
					s.tc.SetContent(col, screenY, runes[0], runes[1:], style)
				}
			}
			col += cellW
		}

		// Caret at end of line (on the newline or at EOF).
		screenY := row - f.TopRow
		if off+len(line) == f.CaretOffset && screenY >= 0 && screenY < textRows && col < width {
			caretX, caretY = col, screenY
		}

		off += len(line) + 1
		row++
		if row-f.TopRow >= textRows {
			break
		}
	}

	drawStatusBar(s, th, f, width, height-2)
	drawBottomLine(s, th, f, width, height-1, &caretX, &caretY)

	if caretX >= 0 {
		s.tc.ShowCursor(caretX, caretY)
	} else {
		s.tc.HideCursor()
	}
	s.tc.Show()
}

// styleAt picks the style for the byte at off. Matches are sorted and
// offsets only grow within a frame, so mi advances monotonically.
func styleAt(th *theme.Theme, f *Frame, off int, matches []search.Span, mi *int) tcell.Style {
	for *mi < len(matches) && matches[*mi].End <= off {
		*mi++
	}
	inMatch := *mi < len(matches) && matches[*mi].Start <= off
	isCurrent := inMatch && *mi == f.Current
	inSel := f.Selection.End > f.Selection.Start && off >= f.Selection.Start && off < f.Selection.End

	switch {
	case isCurrent:
		return th.CurrentMatch
	case inSel:
		return th.Selection
	case inMatch:
		return th.Match
	default:
		return th.Text
	}
}

func drawStatusBar(s *Screen, th *theme.Theme, f *Frame, width, y int) {
	st := f.Status
	name := st.FileName
	flags := ""
	if st.Modified {
		flags += " *"
	}
	if st.ReadOnly {
		flags += " [RO]"
	}
	left := " " + name + flags

	rightParts := []string{}
	if st.Counter != "" {
		rightParts = append(rightParts, st.Counter)
	}
	rightParts = append(rightParts,
		fmt.Sprintf("%d:%d", st.Line, st.Column),
		st.Encoding,
		st.LineEnding,
	)
	right := strings.Join(rightParts, "  ") + " "

	for x := 0; x < width; x++ {
		s.tc.SetContent(x, y, ' ', nil, th.StatusBar)
	}
	drawText(s, 0, y, width, th.StatusBar, left)
	rw := uniseg.StringWidth(right)
	if rw < width {
		drawText(s, width-rw, y, width, th.StatusBar, right)
	}
}

func drawBottomLine(s *Screen, th *theme.Theme, f *Frame, width, y int, caretX, caretY *int) {
	if f.Prompt == nil {
		style := th.Prompt
		if f.Alert {
			style = th.StatusAlert
		}
		for x := 0; x < width; x++ {
			s.tc.SetContent(x, y, ' ', nil, style)
		}
		drawText(s, 0, y, width, style, " "+f.Message)
		return
	}

	p := f.Prompt
	for x := 0; x < width; x++ {
		s.tc.SetContent(x, y, ' ', nil, th.Prompt)
	}
	x := drawText(s, 0, y, width, th.PromptLabel, p.Label)
	inputX := x
	x = drawText(s, x, y, width, th.Prompt, p.Text())

	if p.Kind == PromptFind || p.Kind == PromptReplace {
		ind := indicator("Aa", p.CaseSensitive) + " " + indicator("W", p.WholeWord)
		iw := uniseg.StringWidth(ind)
		if iw < width-x-1 {
			drawText(s, width-iw-1, y, width, th.PromptLabel, ind)
		}
	}

	// Cursor lands inside the prompt while it is open.
	*caretX = inputX + uniseg.StringWidth(string([]rune(p.Text())[:p.Cursor()]))
	*caretY = y
	if *caretX >= width {
		*caretX = width - 1
	}
}

func indicator(label string, on bool) string {
	if on {
		return "[" + label + "]"
	}
	return " " + label + " "
}

// drawText writes s at (x, y), stepping by display width, clipped to
// maxX. Returns the x after the last cell written.
func drawText(s *Screen, x, y, maxX int, style tcell.Style, text string) int {
	gr := uniseg.NewGraphemes(text)
	for gr.Next() && x < maxX {
		runes := gr.Runes()
		s.tc.SetContent(x, y, runes[0], runes[1:], style)
		x += gr.Width()
	}
	return x
}
