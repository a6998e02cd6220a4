package viewport

import "github.com/rivo/uniseg"

// DisplayWidth returns the rendered width of s in terminal cells,
// counting grapheme clusters. CJK ideographs occupy two cells.
func DisplayWidth(s string) int {
	return uniseg.StringWidth(s)
}

// RowHeight returns the number of visual rows a buffer line occupies
// when wrapped at width cells. Tabs expand to the next tab stop. An
// empty line still occupies one row.
func RowHeight(line string, width, tabWidth int) int {
	if width < 1 {
		width = 1
	}
	rows := 1
	col := 0

	g := uniseg.NewGraphemes(line)
	for g.Next() {
		w := cellWidth(g.Str(), col, tabWidth)
		if col+w > width {
			rows++
			col = 0
			// A tab at a wrap point restarts from the row head.
			w = cellWidth(g.Str(), col, tabWidth)
		}
		col += w
	}
	return rows
}

// cellWidth returns the width of a single grapheme cluster at column
// col, expanding tabs to the next stop.
func cellWidth(cluster string, col, tabWidth int) int {
	if cluster == "\t" {
		if tabWidth < 1 {
			tabWidth = 1
		}
		return tabWidth - col%tabWidth
	}
	w := uniseg.StringWidth(cluster)
	if w < 1 {
		w = 1
	}
	return w
}

// Layout maps buffer lines to visual rows for the current wrap width.
// Rebuilt when the content or the viewport width changes.
type Layout struct {
	width    int
	tabWidth int

	// rowOf[i] is the first visual row of buffer line i.
	rowOf []int
	total int
}

// NewLayout computes the visual layout of the given buffer lines.
func NewLayout(lines []string, width, tabWidth int) *Layout {
	l := &Layout{
		width:    width,
		tabWidth: tabWidth,
		rowOf:    make([]int, len(lines)),
	}
	row := 0
	for i, line := range lines {
		l.rowOf[i] = row
		row += RowHeight(line, width, tabWidth)
	}
	l.total = row
	return l
}

// TotalRows returns the total number of visual rows.
func (l *Layout) TotalRows() int {
	return l.total
}

// RowOfLine returns the first visual row of a buffer line.
// Out-of-range lines clamp to the document edges.
func (l *Layout) RowOfLine(line int) int {
	if len(l.rowOf) == 0 || line < 0 {
		return 0
	}
	if line >= len(l.rowOf) {
		return l.total
	}
	return l.rowOf[line]
}

// RowOfPosition returns the visual row of a byte column within a
// buffer line, walking the wrapped rows the same way RowHeight does.
func (l *Layout) RowOfPosition(line string, lineIndex, column int) int {
	base := l.RowOfLine(lineIndex)
	if column <= 0 {
		return base
	}
	if column > len(line) {
		column = len(line)
	}

	row := 0
	col := 0
	consumed := 0
	g := uniseg.NewGraphemes(line)
	for g.Next() && consumed < column {
		w := cellWidth(g.Str(), col, l.tabWidth)
		if col+w > l.width {
			row++
			col = 0
			w = cellWidth(g.Str(), col, l.tabWidth)
		}
		col += w
		consumed += len(g.Str())
	}
	return base + row
}
