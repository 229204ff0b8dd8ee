package calc

import "strconv"

// Span is a half-open range [Begin, End) of character offsets into an input
// line. Offsets count runes, not bytes.
type Span struct {
	Begin int
	End   int
}

// Union returns the span from the beginning of a to the end of b.
func Union(a, b Span) Span {
	return Span{Begin: a.Begin, End: b.End}
}

// FromEndToEnd returns the span from the end of a to the end of b.
func FromEndToEnd(a, b Span) Span {
	return Span{Begin: a.End, End: b.End}
}

// ImmediatelyAfter returns a two-character span straddling the end of s. It
// points at the place where a missing character was expected.
func (s Span) ImmediatelyAfter() Span {
	return Span{Begin: s.End - 1, End: s.End + 1}
}

// Width is the number of characters the span covers.
func (s Span) Width() int {
	return s.End - s.Begin
}

func (s Span) String() string {
	return strconv.Itoa(s.Begin) + "-" + strconv.Itoa(s.End)
}
