// Package viewport models the visible region of the text area and
// decides when navigation needs to scroll.
//
// Positions here are visual rows: a buffer line wraps into one or more
// rows depending on its rendered width, so row heights are derived from
// the actual content, never assumed constant.
package viewport

import "sync"

// ScrollAction instructs the renderer to move the viewport so TopRow
// becomes the first visible row.
type ScrollAction struct {
	TopRow int
}

// Viewport is the visible window over the document's visual rows.
type Viewport struct {
	mu sync.RWMutex

	topRow int
	width  int
	height int

	// Scroll margins keep context rows around a revealed target.
	marginTop    int
	marginBottom int

	maxRow int // total visual rows in the document
}

// New creates a viewport with the given size in cells.
// Width and height are clamped to a minimum of 1.
func New(width, height int) *Viewport {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return &Viewport{
		width:        width,
		height:       height,
		marginTop:    2,
		marginBottom: 2,
	}
}

// Width returns the viewport width in cells.
func (v *Viewport) Width() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.width
}

// Height returns the viewport height in rows.
func (v *Viewport) Height() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.height
}

// TopRow returns the first visible visual row.
func (v *Viewport) TopRow() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.topRow
}

// bottomRow returns the last visible row. Caller must hold the lock.
func (v *Viewport) bottomRow() int {
	bottom := v.topRow + v.height - 1
	if v.maxRow > 0 && bottom > v.maxRow-1 {
		bottom = v.maxRow - 1
	}
	return bottom
}

// VisibleRange returns the first and last visible visual rows.
func (v *Viewport) VisibleRange() (top, bottom int) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.topRow, v.bottomRow()
}

// IsRowVisible returns true if the row is inside the viewport.
func (v *Viewport) IsRowVisible(row int) bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return row >= v.topRow && row <= v.bottomRow()
}

// Resize updates the viewport size, clamped to a minimum of 1.
func (v *Viewport) Resize(width, height int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	v.width = width
	v.height = height
	v.clampLocked()
}

// SetMaxRow sets the total number of visual rows in the document.
func (v *Viewport) SetMaxRow(maxRow int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if maxRow < 0 {
		maxRow = 0
	}
	v.maxRow = maxRow
	v.clampLocked()
}

// SetMargins sets the reveal margins.
func (v *Viewport) SetMargins(top, bottom int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if top < 0 {
		top = 0
	}
	if bottom < 0 {
		bottom = 0
	}
	v.marginTop = top
	v.marginBottom = bottom
}

// clampLocked keeps topRow within the document.
func (v *Viewport) clampLocked() {
	maxTop := v.maxRow - v.height
	if maxTop < 0 {
		maxTop = 0
	}
	if v.topRow > maxTop {
		v.topRow = maxTop
	}
	if v.topRow < 0 {
		v.topRow = 0
	}
}

// ScrollTo makes row the first visible row, clamped to the document.
func (v *Viewport) ScrollTo(row int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.topRow = row
	v.clampLocked()
}

// ScrollBy moves the viewport by a delta of rows.
func (v *Viewport) ScrollBy(delta int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.topRow += delta
	v.clampLocked()
}

// PageUp scrolls up one page, keeping two rows of overlap.
func (v *Viewport) PageUp() {
	v.mu.RLock()
	page := v.height - 2
	v.mu.RUnlock()
	if page < 1 {
		page = 1
	}
	v.ScrollBy(-page)
}

// PageDown scrolls down one page, keeping two rows of overlap.
func (v *Viewport) PageDown() {
	v.mu.RLock()
	page := v.height - 2
	v.mu.RUnlock()
	if page < 1 {
		page = 1
	}
	v.ScrollBy(page)
}

// Reveal decides whether showing row requires scrolling. It returns a
// scroll action only when the row lies outside the visible region
// (minus margins); a visible row produces no action, so navigation
// between on-screen matches never forces a redraw of the whole view.
func (v *Viewport) Reveal(row int) (ScrollAction, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	mt, mb := v.marginTop, v.marginBottom
	// A viewport shorter than its margins degenerates to exact bounds.
	if mt+mb >= v.height {
		mt, mb = 0, 0
	}
	top := v.topRow + mt
	bottom := v.bottomRow() - mb

	if row >= top && row <= bottom {
		return ScrollAction{}, false
	}

	var target int
	if row < top {
		target = row - mt
	} else {
		target = row - v.height + mb + 1
	}
	if target < 0 {
		target = 0
	}
	if maxTop := v.maxRow - v.height; maxTop >= 0 && target > maxTop {
		target = maxTop
	}

	v.topRow = target
	return ScrollAction{TopRow: target}, true
}

// CenterOn centers the viewport on the given row.
func (v *Viewport) CenterOn(row int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.topRow = row - v.height/2
	v.clampLocked()
}

// RowToScreen converts a visual row to a screen row.
// Returns -1 if the row is not visible.
func (v *Viewport) RowToScreen(row int) int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if row < v.topRow || row > v.bottomRow() {
		return -1
	}
	return row - v.topRow
}

// ScreenToRow converts a screen row to a visual row.
func (v *Viewport) ScreenToRow(screenRow int) int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if screenRow < 0 {
		return v.topRow
	}
	row := v.topRow + screenRow
	if v.maxRow > 0 && row >= v.maxRow {
		row = v.maxRow - 1
	}
	return row
}
