package viewport

import "testing"

func TestReveal_VisibleRowNoAction(t *testing.T) {
	v := New(80, 20)
	v.SetMaxRow(100)
	v.ScrollTo(10)

	if _, scrolled := v.Reveal(15); scrolled {
		t.Error("Reveal of a visible row produced a scroll action")
	}
	if v.TopRow() != 10 {
		t.Errorf("TopRow = %d, want unchanged 10", v.TopRow())
	}
}

func TestReveal_BelowScrollsDown(t *testing.T) {
	v := New(80, 20)
	v.SetMaxRow(100)

	action, scrolled := v.Reveal(50)
	if !scrolled {
		t.Fatal("Reveal of an off-screen row produced no action")
	}
	top, bottom := v.VisibleRange()
	if 50 < top || 50 > bottom {
		t.Errorf("row 50 not visible after Reveal: [%d, %d]", top, bottom)
	}
	if action.TopRow != v.TopRow() {
		t.Errorf("action.TopRow = %d, viewport top = %d", action.TopRow, v.TopRow())
	}
}

func TestReveal_AboveScrollsUp(t *testing.T) {
	v := New(80, 20)
	v.SetMaxRow(100)
	v.ScrollTo(60)

	if _, scrolled := v.Reveal(5); !scrolled {
		t.Fatal("Reveal above the viewport produced no action")
	}
	top, bottom := v.VisibleRange()
	if 5 < top || 5 > bottom {
		t.Errorf("row 5 not visible after Reveal: [%d, %d]", top, bottom)
	}
}

func TestReveal_MarginKeepsContext(t *testing.T) {
	v := New(80, 20)
	v.SetMaxRow(100)
	v.SetMargins(3, 3)

	v.Reveal(50)
	if top := v.TopRow(); 50-top < 3 {
		t.Errorf("only %d context rows above target, want >= 3", 50-top)
	}
}

func TestReveal_ClampedAtEdges(t *testing.T) {
	v := New(80, 20)
	v.SetMaxRow(30)

	v.Reveal(29)
	if top := v.TopRow(); top > 10 {
		t.Errorf("TopRow = %d, want <= 10 (maxRow-height)", top)
	}

	v.Reveal(0)
	if top := v.TopRow(); top != 0 {
		t.Errorf("TopRow = %d, want 0", top)
	}
}

func TestReveal_TinyViewport(t *testing.T) {
	v := New(10, 3)
	v.SetMaxRow(50)
	v.SetMargins(5, 5) // margins exceed height; fall back to exact bounds

	if _, scrolled := v.Reveal(1); scrolled {
		t.Error("Reveal of visible row in tiny viewport scrolled")
	}
	if _, scrolled := v.Reveal(40); !scrolled {
		t.Error("Reveal of off-screen row in tiny viewport did not scroll")
	}
}

func TestScrollBy_Clamped(t *testing.T) {
	v := New(80, 20)
	v.SetMaxRow(100)

	v.ScrollBy(-10)
	if v.TopRow() != 0 {
		t.Errorf("TopRow = %d, want 0", v.TopRow())
	}
	v.ScrollBy(1000)
	if v.TopRow() != 80 {
		t.Errorf("TopRow = %d, want 80 (maxRow-height)", v.TopRow())
	}
}

func TestPageUpDown(t *testing.T) {
	v := New(80, 20)
	v.SetMaxRow(100)

	v.PageDown()
	if v.TopRow() != 18 {
		t.Errorf("TopRow after PageDown = %d, want 18", v.TopRow())
	}
	v.PageUp()
	if v.TopRow() != 0 {
		t.Errorf("TopRow after PageUp = %d, want 0", v.TopRow())
	}
}

func TestRowToScreen(t *testing.T) {
	v := New(80, 20)
	v.SetMaxRow(100)
	v.ScrollTo(10)

	if got := v.RowToScreen(10); got != 0 {
		t.Errorf("RowToScreen(10) = %d, want 0", got)
	}
	if got := v.RowToScreen(29); got != 19 {
		t.Errorf("RowToScreen(29) = %d, want 19", got)
	}
	if got := v.RowToScreen(30); got != -1 {
		t.Errorf("RowToScreen(30) = %d, want -1", got)
	}
}

func TestDisplayWidth_CJK(t *testing.T) {
	tests := []struct {
		s    string
		want int
	}{
		{"", 0},
		{"abc", 3},
		{"你好", 4},
		{"a你b", 4},
	}
	for _, tt := range tests {
		if got := DisplayWidth(tt.s); got != tt.want {
			t.Errorf("DisplayWidth(%q) = %d, want %d", tt.s, got, tt.want)
		}
	}
}

func TestRowHeight(t *testing.T) {
	tests := []struct {
		line  string
		width int
		want  int
	}{
		{"", 10, 1},
		{"short", 10, 1},
		{"exactly-10", 10, 1},
		{"this is eleven!", 10, 2},
		{"你好你好你好", 10, 2}, // 12 cells at width 10
		{"你好你好你", 10, 1},  // 10 cells
	}
	for _, tt := range tests {
		if got := RowHeight(tt.line, tt.width, 4); got != tt.want {
			t.Errorf("RowHeight(%q, %d) = %d, want %d", tt.line, tt.width, got, tt.want)
		}
	}
}

func TestRowHeight_Tabs(t *testing.T) {
	// Tab expands to the next stop: 1 + 3 + 4 = 8 cells at width 8.
	if got := RowHeight("a\tbbbb", 8, 4); got != 1 {
		t.Errorf("RowHeight = %d, want 1", got)
	}
	if got := RowHeight("a\tbbbbb", 8, 4); got != 2 {
		t.Errorf("RowHeight = %d, want 2", got)
	}
}

func TestLayout(t *testing.T) {
	lines := []string{"short", "a line that wraps twice over", ""}
	l := NewLayout(lines, 10, 4)

	if got := l.RowOfLine(0); got != 0 {
		t.Errorf("RowOfLine(0) = %d, want 0", got)
	}
	if got := l.RowOfLine(1); got != 1 {
		t.Errorf("RowOfLine(1) = %d, want 1", got)
	}
	wrapped := RowHeight(lines[1], 10, 4)
	if got := l.RowOfLine(2); got != 1+wrapped {
		t.Errorf("RowOfLine(2) = %d, want %d", got, 1+wrapped)
	}
	if got := l.TotalRows(); got != 2+wrapped {
		t.Errorf("TotalRows() = %d, want %d", got, 2+wrapped)
	}
}

func TestLayout_RowOfPosition(t *testing.T) {
	line := "aaaaaaaaaabbbbbbbbbb" // wraps at 10 into two rows
	l := NewLayout([]string{line}, 10, 4)

	if got := l.RowOfPosition(line, 0, 0); got != 0 {
		t.Errorf("RowOfPosition(col 0) = %d, want 0", got)
	}
	if got := l.RowOfPosition(line, 0, 5); got != 0 {
		t.Errorf("RowOfPosition(col 5) = %d, want 0", got)
	}
	if got := l.RowOfPosition(line, 0, 15); got != 1 {
		t.Errorf("RowOfPosition(col 15) = %d, want 1", got)
	}
}
