package search

import "fmt"

// State is the navigator's position in the search lifecycle.
type State uint8

const (
	// StateIdle means no search is active. Any content mutation forces
	// the navigator back here.
	StateIdle State = iota

	// StateSearching means a query was submitted but matches have not
	// been delivered yet.
	StateSearching

	// StateHasMatches means the last search found at least one match.
	StateHasMatches

	// StateNoMatches means the last search found nothing.
	StateNoMatches
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSearching:
		return "searching"
	case StateHasMatches:
		return "matches"
	case StateNoMatches:
		return "no-matches"
	default:
		return "unknown"
	}
}

// Navigator tracks the current match and moves through the match set
// with wraparound. It owns no matching logic: the controller feeds it
// the spans the searcher produced.
type Navigator struct {
	state   State
	query   Query
	matches []Span
	current int // index into matches; -1 before the first move
}

// NewNavigator returns a navigator in the idle state.
func NewNavigator() *Navigator {
	return &Navigator{current: -1}
}

// State returns the current lifecycle state.
func (n *Navigator) State() State {
	return n.state
}

// Query returns the query of the active search.
func (n *Navigator) Query() Query {
	return n.query
}

// Begin marks a new search as in flight. A later SetMatches call
// delivers its result; a newer Begin simply supersedes this one.
func (n *Navigator) Begin(q Query) {
	n.state = StateSearching
	n.query = q
	n.matches = nil
	n.current = -1
}

// SetMatches delivers the search result, moving to HasMatches or
// NoMatches.
func (n *Navigator) SetMatches(matches []Span) {
	n.matches = matches
	n.current = -1
	if len(matches) == 0 {
		n.state = StateNoMatches
		return
	}
	n.state = StateHasMatches
}

// Reset returns the navigator to idle. Called whenever the document
// content changes.
func (n *Navigator) Reset() {
	n.state = StateIdle
	n.query = Query{}
	n.matches = nil
	n.current = -1
}

// Len returns the number of matches in the active set.
func (n *Navigator) Len() int {
	return len(n.matches)
}

// Index returns the current match index, or -1 before the first move.
func (n *Navigator) Index() int {
	return n.current
}

// Current returns the current match span.
func (n *Navigator) Current() (Span, error) {
	if n.current < 0 || n.current >= len(n.matches) {
		return Span{}, ErrNoMatches
	}
	return n.matches[n.current], nil
}

// Next advances to the next match, wrapping to the first after the
// last. Fails with ErrNoMatches on an empty set.
func (n *Navigator) Next() (Span, error) {
	if len(n.matches) == 0 {
		return Span{}, ErrNoMatches
	}
	n.current = (n.current + 1) % len(n.matches)
	return n.matches[n.current], nil
}

// Prev moves to the previous match, wrapping to the last before the
// first. Fails with ErrNoMatches on an empty set.
func (n *Navigator) Prev() (Span, error) {
	if len(n.matches) == 0 {
		return Span{}, ErrNoMatches
	}
	if n.current < 0 {
		n.current = len(n.matches) - 1
	} else {
		n.current = (n.current - 1 + len(n.matches)) % len(n.matches)
	}
	return n.matches[n.current], nil
}

// SeekAfter positions the cursor so the next call to Next lands on the
// first match starting at or after offset. Used to continue a search
// from the caret instead of the document start.
func (n *Navigator) SeekAfter(offset int) {
	n.current = -1
	for i, m := range n.matches {
		if m.Start >= offset {
			n.current = i - 1
			return
		}
	}
	// All matches precede offset; Next wraps to the first.
	n.current = len(n.matches) - 1
}

// Describe returns a short position summary such as "3/17".
func (n *Navigator) Describe() string {
	if len(n.matches) == 0 || n.current < 0 {
		return fmt.Sprintf("0/%d", len(n.matches))
	}
	return fmt.Sprintf("%d/%d", n.current+1, len(n.matches))
}
