package diagnostic

import "fmt"

// Span locates a range of an expression. Start and End are byte offsets into
// the expression text (End exclusive). Filename, Line and Column are filled
// once the span is anchored to the place the expression was declared.
type Span struct {
	Filename string
	Line     int // 1-based, 0 when unanchored
	Column   int // 1-based column of Start, 0 when unanchored
	Start    int
	End      int
}

// Origin is where an expression's first byte lives in its declaring file.
// Text assembled from several places, like the structured YAML form, lists
// where each later piece was written in Parts, ordered by Offset.
type Origin struct {
	Filename string
	Line     int
	Column   int
	Parts    []Part
}

// Part places the expression text from Offset on.
type Part struct {
	Offset int
	Line   int
	Column int
}

// NewSpan returns an unanchored span covering [start, end).
func NewSpan(start, end int) Span {
	return Span{Start: start, End: end}
}

// Len returns the number of bytes covered, at least 1 so carets stay visible.
func (s Span) Len() int {
	return max(1, s.End-s.Start)
}

// To returns a span from the start of s to the end of other.
func (s Span) To(other Span) Span {
	s.End = other.End
	return s
}

// Within anchors s to origin. Expressions are single-line, so the column is
// the origin column plus the byte offset from the start of the part that
// holds it.
func (s Span) Within(o Origin) Span {
	s.Filename = o.Filename

	if o.Line > 0 {
		line, col, base := o.Line, o.Column, 0

		for _, p := range o.Parts {
			if p.Offset <= s.Start {
				line, col, base = p.Line, p.Column, p.Offset
			}
		}

		s.Line = line
		s.Column = col + s.Start - base
	}

	return s
}

// IsAnchored returns true if the span has file position information.
func (s Span) IsAnchored() bool {
	return s.Line > 0 && s.Column > 0
}

// String returns "file:line:col", "line:col", or "offset a..b" for
// unanchored spans.
func (s Span) String() string {
	switch {
	case s.IsAnchored() && s.Filename != "":
		return fmt.Sprintf("%s:%d:%d", s.Filename, s.Line, s.Column)
	case s.IsAnchored():
		return fmt.Sprintf("%d:%d", s.Line, s.Column)
	default:
		return fmt.Sprintf("offset %d..%d", s.Start, s.End)
	}
}

// String returns "file:line:col" for the origin.
func (o Origin) String() string {
	if o.Filename == "" {
		return fmt.Sprintf("%d:%d", o.Line, o.Column)
	}

	return fmt.Sprintf("%s:%d:%d", o.Filename, o.Line, o.Column)
}
