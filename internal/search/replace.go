package search

import (
	"fmt"
	"strings"
)

// ReplaceOne splices replacement over span in content and returns the
// new content. The caller must invalidate its cache and search again:
// every offset after the edit point has shifted.
func ReplaceOne(content string, span Span, replacement string) (string, error) {
	if !span.validIn(len(content)) {
		return "", fmt.Errorf("%w: %s in %d bytes", ErrStaleSpan, span, len(content))
	}
	return content[:span.Start] + replacement + content[span.End:], nil
}

// ReplaceAll replaces every match of q in content and returns the new
// content with the replacement count. Matches are computed once against
// the original content and spliced in descending start order, so a
// splice never shifts the offsets of the splices still to come.
// Either all matches are replaced or, on invalid input, none are.
func ReplaceAll(content string, q Query, replacement string) (string, int, error) {
	spans, err := Locate(content, q)
	if err != nil {
		return content, 0, err
	}
	if len(spans) == 0 {
		return content, 0, nil
	}

	var b strings.Builder
	if grow := len(content) + len(spans)*(len(replacement)-spans[0].Len()); grow > 0 {
		b.Grow(grow)
	}

	// Spans are ascending and non-overlapping, so building forward over
	// the original content is equivalent to splicing in descending
	// order: no applied splice can move an unapplied span.
	last := 0
	for _, s := range spans {
		b.WriteString(content[last:s.Start])
		b.WriteString(replacement)
		last = s.End
	}
	b.WriteString(content[last:])

	return b.String(), len(spans), nil
}

// ReplaceSpans applies the given replacement over an explicit span set,
// validating that the spans are ascending, non-overlapping and inside
// content. Used when the caller already holds a located match set.
func ReplaceSpans(content string, spans []Span, replacement string) (string, int, error) {
	for i, s := range spans {
		if !s.validIn(len(content)) {
			return content, 0, fmt.Errorf("%w: %s in %d bytes", ErrStaleSpan, s, len(content))
		}
		if i > 0 && s.Start < spans[i-1].End {
			return content, 0, fmt.Errorf("%w: spans overlap at %s", ErrInvalidInput, s)
		}
	}
	if len(spans) == 0 {
		return content, 0, nil
	}

	var b strings.Builder
	last := 0
	for _, s := range spans {
		b.WriteString(content[last:s.Start])
		b.WriteString(replacement)
		last = s.End
	}
	b.WriteString(content[last:])

	return b.String(), len(spans), nil
}
