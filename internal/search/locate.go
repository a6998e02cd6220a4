package search

import (
	"fmt"
	"regexp"
	"unicode"
	"unicode/utf8"
)

// MaxQueryLen caps the query size in bytes. Text queries are quoted
// before compilation, so the resulting automaton is linear in the query
// length; the cap keeps absurd inputs from building giant programs.
const MaxQueryLen = 4096

// Pattern is a compiled query ready for matching.
type Pattern struct {
	query Query
	re    *regexp.Regexp // nil for the empty query
}

// Query returns the query this pattern was compiled from.
func (p *Pattern) Query() Query {
	return p.query
}

// Compile turns a query into a Pattern. The query text is matched
// literally (metacharacters are quoted); case-insensitive queries use
// Unicode case folding. An empty query compiles to a pattern that
// matches nothing.
func Compile(q Query) (*Pattern, error) {
	if len(q.Text) > MaxQueryLen {
		return nil, fmt.Errorf("%w: query exceeds %d bytes", ErrInvalidQuery, MaxQueryLen)
	}
	if !utf8.ValidString(q.Text) {
		return nil, fmt.Errorf("%w: query is not valid UTF-8", ErrInvalidQuery)
	}
	if q.Text == "" {
		return &Pattern{query: q}, nil
	}

	pattern := regexp.QuoteMeta(q.Text)
	if !q.CaseSensitive {
		pattern = "(?i)" + pattern
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidQuery, err)
	}
	return &Pattern{query: q, re: re}, nil
}

// FindAll returns every occurrence of the pattern in content, ordered
// by ascending start offset, non-overlapping. Whole-word queries drop
// occurrences whose edges fall inside a word.
func (p *Pattern) FindAll(content string) []Span {
	if p.re == nil {
		return nil
	}

	locs := p.re.FindAllStringIndex(content, -1)
	if len(locs) == 0 {
		return nil
	}

	spans := make([]Span, 0, len(locs))
	for _, loc := range locs {
		if loc[0] == loc[1] {
			continue
		}
		s := Span{Start: loc[0], End: loc[1]}
		if p.query.WholeWord && !wholeWordAt(content, s) {
			continue
		}
		spans = append(spans, s)
	}
	return spans
}

// Locate compiles q and returns the ordered matches in content.
// An empty query locates nothing and is not an error.
func Locate(content string, q Query) ([]Span, error) {
	p, err := Compile(q)
	if err != nil {
		return nil, err
	}
	return p.FindAll(content), nil
}

// wholeWordAt reports whether the span's edges align with word
// boundaries. A boundary is a transition between the word and non-word
// rune classes, except that a CJK ideograph is a complete word unit by
// itself: an edge touching one is always a boundary.
func wholeWordAt(content string, s Span) bool {
	first, _ := utf8.DecodeRuneInString(content[s.Start:s.End])
	last, _ := utf8.DecodeLastRuneInString(content[s.Start:s.End])

	if s.Start > 0 && !isIdeograph(first) {
		prev, _ := utf8.DecodeLastRuneInString(content[:s.Start])
		if isWordRune(prev) && !isIdeograph(prev) {
			return false
		}
	}
	if s.End < len(content) && !isIdeograph(last) {
		next, _ := utf8.DecodeRuneInString(content[s.End:])
		if isWordRune(next) && !isIdeograph(next) {
			return false
		}
	}
	return true
}

// isWordRune reports whether r belongs to the word class: letters,
// digits and underscore.
func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// isIdeograph reports whether r is a CJK ideograph, which counts as an
// individual word unit for whole-word matching.
func isIdeograph(r rune) bool {
	return unicode.Is(unicode.Han, r)
}
