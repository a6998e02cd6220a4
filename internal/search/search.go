// Package search implements the notepad's find/replace core: query
// compilation, match location over the document text, result caching,
// match navigation with wraparound, and offset-safe replacement.
//
// Matching is Unicode-aware. Whole-word boundaries treat CJK ideographs
// as individual word units, so a Chinese term matches between adjacent
// ideographs without requiring surrounding whitespace.
package search

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	// ErrInvalidQuery reports a query that cannot be compiled into a
	// safe pattern (too long, or not valid UTF-8).
	ErrInvalidQuery = errors.New("invalid search query")

	// ErrNoMatches reports navigation over an empty match set. A search
	// with zero results is a reported state, not a failure.
	ErrNoMatches = errors.New("no matches")

	// ErrStaleSpan reports a replacement span that no longer fits the
	// content, typically because the buffer changed after the search.
	ErrStaleSpan = errors.New("stale match span")

	// ErrInvalidInput reports a nil or malformed argument.
	ErrInvalidInput = errors.New("invalid input")
)

// Query is an immutable search request: the text to find and how to
// match it.
type Query struct {
	Text          string
	CaseSensitive bool
	WholeWord     bool
}

// IsEmpty returns true if the query has no text to search for.
func (q Query) IsEmpty() bool {
	return q.Text == ""
}

// String returns a human-readable representation of the query.
func (q Query) String() string {
	return fmt.Sprintf("%q (case=%t word=%t)", q.Text, q.CaseSensitive, q.WholeWord)
}

// Span is a half-open byte range [Start, End) in the document where the
// query occurs. Spans are never empty: Start < End.
type Span struct {
	Start int
	End   int
}

// String returns a human-readable representation of the span.
func (s Span) String() string {
	return fmt.Sprintf("[%d:%d)", s.Start, s.End)
}

// Len returns the span length in bytes.
func (s Span) Len() int {
	return s.End - s.Start
}

// validIn reports whether the span fits within content of length n.
func (s Span) validIn(n int) bool {
	return 0 <= s.Start && s.Start < s.End && s.End <= n
}
