package calc_test

import (
	"testing"

	"github.com/zephyrtronium/calc"
)

func FuzzEval(f *testing.F) {
	f.Add("x")
	f.Add("y")
	f.Add("x = sqrt(x, 1)")
	f.Add("root(0, -x) / inf")
	f.Fuzz(func(t *testing.T, s string) {
		_, err := calc.EvalString(s, calc.SetVar("x", 0))
		if err == nil || err == calc.ErrNoResult {
			return
		}
		e, ok := err.(calc.InputError)
		if !ok {
			t.Fatalf("%q gave non-positional error %#v", s, err)
		}
		if p := e.Pos(); p.Begin < 0 || p.Begin > p.End {
			t.Errorf("%q gave error with bad span %v", s, p)
		}
	})
}
