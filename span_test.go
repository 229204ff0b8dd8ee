package calc

import "testing"

func TestSpan(t *testing.T) {
	a := Span{Begin: 2, End: 5}
	b := Span{Begin: 7, End: 11}
	if u := Union(a, b); u != (Span{2, 11}) {
		t.Errorf("wrong union %v", u)
	}
	if f := FromEndToEnd(a, b); f != (Span{5, 11}) {
		t.Errorf("wrong end-to-end %v", f)
	}
	if i := a.ImmediatelyAfter(); i != (Span{4, 6}) {
		t.Errorf("wrong immediately-after %v", i)
	}
	if w := b.Width(); w != 4 {
		t.Errorf("wrong width %d", w)
	}
	if s := a.String(); s != "2-5" {
		t.Errorf("wrong string %q", s)
	}
}
