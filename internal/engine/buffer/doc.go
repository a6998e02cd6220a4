// Package buffer provides the notepad's document buffer: a flat UTF-8
// text store with a caret/selection range, line indexing, line ending
// normalization, and revision tracking.
//
// The buffer package provides:
//
//   - Thread-safe read/write access via sync.RWMutex
//   - Byte-offset based editing (Insert, Delete, Replace)
//   - Multi-edit application in reverse offset order
//   - Coordinate conversion between byte offsets and line/column positions
//   - A selection range clamped to buffer bounds
//   - Single-level snapshot undo
//
// Basic usage:
//
//	buf := buffer.FromString("你好，世界")
//	buf.Insert(buf.Len(), "！")
//	buf.SetSelection(buffer.Range{Start: 0, End: 6})
//
// Positions are byte offsets into the UTF-8 content. The buffer never
// splits a rune: callers are expected to pass offsets that fall on rune
// boundaries, as produced by the search core and the UI hit testing.
package buffer
