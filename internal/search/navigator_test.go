package search

import (
	"errors"
	"testing"
)

func TestNavigator_Lifecycle(t *testing.T) {
	n := NewNavigator()
	if n.State() != StateIdle {
		t.Fatalf("initial state = %v, want idle", n.State())
	}

	q := Query{Text: "x"}
	n.Begin(q)
	if n.State() != StateSearching {
		t.Errorf("state after Begin = %v, want searching", n.State())
	}
	if n.Query() != q {
		t.Errorf("Query() = %v, want %v", n.Query(), q)
	}

	n.SetMatches([]Span{{0, 1}})
	if n.State() != StateHasMatches {
		t.Errorf("state = %v, want matches", n.State())
	}

	n.Begin(q)
	n.SetMatches(nil)
	if n.State() != StateNoMatches {
		t.Errorf("state = %v, want no-matches", n.State())
	}

	// Content mutation forces idle from any state.
	n.Reset()
	if n.State() != StateIdle {
		t.Errorf("state after Reset = %v, want idle", n.State())
	}
	if n.Len() != 0 {
		t.Errorf("Len() after Reset = %d, want 0", n.Len())
	}
}

func TestNavigator_NextWraparound(t *testing.T) {
	matches := []Span{{0, 1}, {2, 3}, {4, 5}}
	n := NewNavigator()
	n.Begin(Query{Text: "a"})
	n.SetMatches(matches)

	first, err := n.Next()
	if err != nil {
		t.Fatalf("Next error = %v", err)
	}
	if first != matches[0] {
		t.Errorf("first Next = %v, want %v", first, matches[0])
	}

	// n further calls return to the same match.
	var last Span
	for i := 0; i < len(matches); i++ {
		last, err = n.Next()
		if err != nil {
			t.Fatalf("Next error = %v", err)
		}
	}
	if last != first {
		t.Errorf("after %d calls Next = %v, want %v", len(matches), last, first)
	}
}

func TestNavigator_PrevWraparound(t *testing.T) {
	matches := []Span{{0, 1}, {2, 3}, {4, 5}}
	n := NewNavigator()
	n.Begin(Query{Text: "a"})
	n.SetMatches(matches)

	got, err := n.Prev()
	if err != nil {
		t.Fatalf("Prev error = %v", err)
	}
	if got != matches[2] {
		t.Errorf("first Prev = %v, want last match %v", got, matches[2])
	}

	got, err = n.Prev()
	if err != nil {
		t.Fatalf("Prev error = %v", err)
	}
	if got != matches[1] {
		t.Errorf("second Prev = %v, want %v", got, matches[1])
	}
}

func TestNavigator_EmptyMatches(t *testing.T) {
	n := NewNavigator()
	n.Begin(Query{Text: "zz"})
	n.SetMatches(nil)

	if _, err := n.Next(); !errors.Is(err, ErrNoMatches) {
		t.Errorf("Next error = %v, want ErrNoMatches", err)
	}
	if _, err := n.Prev(); !errors.Is(err, ErrNoMatches) {
		t.Errorf("Prev error = %v, want ErrNoMatches", err)
	}
	if _, err := n.Current(); !errors.Is(err, ErrNoMatches) {
		t.Errorf("Current error = %v, want ErrNoMatches", err)
	}
}

func TestNavigator_SeekAfter(t *testing.T) {
	matches := []Span{{0, 2}, {10, 12}, {20, 22}}
	n := NewNavigator()
	n.Begin(Query{Text: "a"})
	n.SetMatches(matches)

	n.SeekAfter(5)
	got, err := n.Next()
	if err != nil {
		t.Fatalf("Next error = %v", err)
	}
	if got != matches[1] {
		t.Errorf("Next after SeekAfter(5) = %v, want %v", got, matches[1])
	}

	// Past the last match: Next wraps to the first.
	n.SeekAfter(30)
	got, err = n.Next()
	if err != nil {
		t.Fatalf("Next error = %v", err)
	}
	if got != matches[0] {
		t.Errorf("Next after SeekAfter(30) = %v, want %v", got, matches[0])
	}
}

func TestNavigator_Describe(t *testing.T) {
	n := NewNavigator()
	n.Begin(Query{Text: "a"})
	n.SetMatches([]Span{{0, 1}, {2, 3}})

	if got := n.Describe(); got != "0/2" {
		t.Errorf("Describe() = %q, want 0/2", got)
	}
	if _, err := n.Next(); err != nil {
		t.Fatal(err)
	}
	if got := n.Describe(); got != "1/2" {
		t.Errorf("Describe() = %q, want 1/2", got)
	}
}

func TestState_String(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateIdle, "idle"},
		{StateSearching, "searching"},
		{StateHasMatches, "matches"},
		{StateNoMatches, "no-matches"},
		{State(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}
