package calc_test

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/zephyrtronium/calc"
)

// same reports whether two results are equal, treating NaNs as equal and
// allowing a relative error of tol.
func same(want, got, tol float64) bool {
	switch {
	case math.IsNaN(want) || math.IsNaN(got):
		return math.IsNaN(want) && math.IsNaN(got)
	case want == got:
		return true
	case math.IsInf(want, 0) || math.IsInf(got, 0):
		return false
	}
	return math.Abs(want-got) <= tol*math.Max(math.Abs(want), math.Abs(got))
}

func TestEval(t *testing.T) {
	type vv struct {
		n string
		v float64
	}
	cases := []struct {
		name string
		src  string
		vars []vv
		r    float64
		tol  float64
	}{
		{"num", "1", nil, 1, 0},
		{"decimal", "4.729", nil, 4.729, 0},
		{"name", "x", []vv{{"x", 4}}, 4, 0},
		{"plus", "+x", []vv{{"x", 5}}, 5, 0},
		{"neg", "-x", []vv{{"x", 6}}, -6, 0},
		{"add", "1 + 1", nil, 2, 0},
		{"sub", "4-5-6", nil, 4 - 5 - 6, 0},
		{"mul", "4*5*6", nil, 4 * 5 * 6, 0},
		{"div", "4/5/6", nil, 4.0 / 5.0 / 6.0, 0},
		{"pow", "2^3^2", nil, 64, 0},
		{"negpow", "-2^2", nil, -4, 0},
		{"precedence", "8 / 2 * (2 + 2)", nil, 16, 0},
		{"group-after", "2 * (3) - 1", nil, 5, 0},
		{"assoc", "1 - 2 + 3", nil, 2, 0},

		{"pi", "pi", nil, math.Pi, 0},
		{"e", "e", nil, math.E, 0},
		{"tau", "tau / 2 - pi", nil, 0, 0},
		{"inf", "inf", nil, math.Inf(1), 0},
		{"nan", "nan", nil, math.NaN(), 0},
		{"shadow", "pi", []vv{{"pi", 3}}, 3, 0},

		{"div-zero", "1 / 0", nil, math.Inf(1), 0},
		{"div-negzero", "-1 / 0", nil, math.Inf(-1), 0},
		{"zero-zero", "0 / 0", nil, math.NaN(), 0},
		{"inf-inf", "inf - inf", nil, math.NaN(), 0},
		{"neg-root", "(-8) ^ (1/3)", nil, math.NaN(), 0},
		{"neg-int", "(-2) ^ 3", nil, -8, 0},

		{"sin", "sin(0)", nil, 0, 0},
		{"cos", "cos(pi)", nil, -1, 0},
		{"tan", "tan(pi / 4)", nil, 1, 1e-15},
		{"log", "log(2, 8)", nil, 3, 1e-15},
		{"log10", "log(10, 1000)", nil, 3, 1e-15},
		{"root", "root(3, 27)", nil, 3, 1e-15},
		{"sqrt", "sqrt(21 + 4)", nil, 5, 0},
		{"sqrt-neg", "sqrt(-1)", nil, math.NaN(), 0},
		{"deg", "deg(180)", nil, math.Pi, 0},
		{"deg-full", "deg(360)", nil, 2 * math.Pi, 0},
		{"rad", "rad(pi)", nil, 180, 0},
		{"nested", "sqrt(sqrt(16)) * x", []vv{{"x", 1.5}}, 3, 0},
	}
	env := calc.NewEnvironment()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			env := env.Clone()
			for _, x := range c.vars {
				env.Set(x.n, x.v)
			}
			s, err := calc.ParseString(c.src)
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.src, err)
			}
			r, ok, err := s.Execute(env)
			if err != nil {
				t.Fatalf("evaluating %q: %v", c.src, err)
			}
			if !ok {
				t.Fatalf("%q gave no result", c.src)
			}
			if !same(c.r, r, c.tol) {
				t.Errorf("wrong result for %q: want %g, got %g", c.src, c.r, r)
			}
		})
	}
}

func TestEvalErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		msg  string
		span calc.Span
	}{
		{"undef", "y", "Undefined variable 'y'", calc.Span{Begin: 0, End: 1}},
		{"undef-rhs", "1 + sin(y)", "Undefined variable 'y'", calc.Span{Begin: 8, End: 9}},
		{"undef-first", "a + b", "Undefined variable 'a'", calc.Span{Begin: 0, End: 1}},
		{"undef-long", "2 * width", "Undefined variable 'width'", calc.Span{Begin: 4, End: 9}},
		{"nofunc", "foo(1)", "Call to non-existent function 'foo'", calc.Span{Begin: 0, End: 3}},
		{"nofunc-args", "1 + foo(y)", "Call to non-existent function 'foo'", calc.Span{Begin: 4, End: 7}},
		{"case", "SIN(1)", "Call to non-existent function 'SIN'", calc.Span{Begin: 0, End: 3}},
		{"arity-more", "sqrt(4, 5)", "Bad call to 'sqrt', expected 1 arguments but got 2", calc.Span{Begin: 4, End: 10}},
		{"arity-less", "log(8)", "Bad call to 'log', expected 2 arguments but got 1", calc.Span{Begin: 3, End: 6}},
		{"arity-none", "x + sin()", "Bad call to 'sin', expected 1 arguments but got 0", calc.Span{Begin: 7, End: 9}},
		{"arity-args", "sqrt(y, 1)", "Bad call to 'sqrt', expected 1 arguments but got 2", calc.Span{Begin: 4, End: 10}},
		{"assign", "x = y", "Undefined variable 'y'", calc.Span{Begin: 4, End: 5}},
		{"var-as-func", "pi(1)", "Call to non-existent function 'pi'", calc.Span{Begin: 0, End: 2}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			env := calc.NewEnvironment(calc.SetVar("x", 1))
			s, err := calc.ParseString(c.src)
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.src, err)
			}
			r, ok, err := s.Execute(env)
			if err == nil {
				t.Fatalf("evaluating %q gave %g (%t) and no error", c.src, r, ok)
			}
			if r != 0 || ok {
				t.Errorf("evaluating %q gave result %g (%t) with error", c.src, r, ok)
			}
			var eerr *calc.EvalError
			if !errors.As(err, &eerr) {
				t.Fatalf("error was %#v, not *EvalError", err)
			}
			if eerr.Message != c.msg {
				t.Errorf("wrong message: want %q, got %q", c.msg, eerr.Message)
			}
			if eerr.Span != c.span {
				t.Errorf("wrong span: want %v, got %v", c.span, eerr.Span)
			}
			var ierr calc.InputError
			if !errors.As(err, &ierr) || ierr.Pos() != c.span {
				t.Errorf("%v doesn't report its position", err)
			}
		})
	}
}

func TestAssign(t *testing.T) {
	env := calc.NewEnvironment()
	run := func(src string) (float64, bool, error) {
		t.Helper()
		s, err := calc.ParseString(src)
		if err != nil {
			t.Fatalf("%q failed to parse: %v", src, err)
		}
		return s.Execute(env)
	}

	if r, ok, err := run("x = 5"); err != nil || ok || r != 0 {
		t.Fatalf("assignment gave %g, %t, %v", r, ok, err)
	}
	if r, ok, err := run("x * 2"); err != nil || !ok || r != 10 {
		t.Errorf("x * 2 gave %g, %t, %v", r, ok, err)
	}
	if _, _, err := run("x = x + 1"); err != nil {
		t.Fatal(err)
	}
	if x, ok := env.Lookup("x"); !ok || x != 6 {
		t.Errorf("x should be 6 but is %g (%t)", x, ok)
	}
	if _, _, err := run("pi = 3"); err != nil {
		t.Fatal(err)
	}
	if pi, _ := env.Lookup("pi"); pi != 3 {
		t.Errorf("pi should be overwritten to 3 but is %g", pi)
	}
}

func TestAssignAtomic(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"undef", "x = y"},
		{"undef-late", "x = 1 + 2 * y"},
		{"nofunc", "x = f(1)"},
		{"arity", "x = sqrt(1, 2)"},
		{"new", "z = y"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			env := calc.NewEnvironment(calc.SetVar("x", 1))
			before := env.Names()
			s, err := calc.ParseString(c.src)
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.src, err)
			}
			if _, _, err := s.Execute(env); err == nil {
				t.Fatalf("%q succeeded", c.src)
			}
			if x, _ := env.Lookup("x"); x != 1 {
				t.Errorf("x changed to %g", x)
			}
			if after := env.Names(); len(after) != len(before) {
				t.Errorf("variables changed from %q to %q", before, after)
			}
		})
	}
}

func TestEvalString(t *testing.T) {
	if r, err := calc.EvalString("1 + 1"); err != nil || r != 2 {
		t.Errorf("1 + 1 gave %g, %v", r, err)
	}
	if r, err := calc.EvalString("x * y", calc.SetVars(map[string]float64{"x": 3, "y": 4})); err != nil || r != 12 {
		t.Errorf("x * y gave %g, %v", r, err)
	}
	if _, err := calc.EvalString("x = 1"); !errors.Is(err, calc.ErrNoResult) {
		t.Errorf("assignment gave %v", err)
	}
	var lerr *calc.LexError
	if _, err := calc.EvalString("1 % 2"); !errors.As(err, &lerr) {
		t.Errorf("bad character gave %#v", err)
	}
	var perr *calc.ParseError
	if _, err := calc.EvalString("(1 + 2"); !errors.As(err, &perr) || perr.Message != "Missing Closing Parenthesis" {
		t.Errorf("unclosed paren gave %#v", err)
	}
	if _, err := calc.EvalString("1 + 2)"); !errors.As(err, &perr) || perr.Message != "Redundant Closing Parenthesis" {
		t.Errorf("extra paren gave %#v", err)
	}
}

func TestFuncs(t *testing.T) {
	want := []string{"sin", "cos", "tan", "log", "root", "sqrt", "deg", "rad"}
	got := calc.Funcs()
	if len(got) != len(want) {
		t.Fatalf("wrong functions: want %q, got %q", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("function %d: want %q, got %q", i, want[i], got[i])
		}
	}
	got[0] = "changed"
	if calc.Funcs()[0] != "sin" {
		t.Error("Funcs exposes the registry")
	}
}

func BenchmarkExecute(b *testing.B) {
	env := calc.NewEnvironment(calc.SetVars(map[string]float64{"x": 2, "y": 3, "z": 4}))
	cases := []struct {
		name string
		src  string
	}{
		{"nums", "2+3+4"},
		{"vars", "x+y+z"},
		{"calls", "root(3, x) * log(y, z) + sin(tau)"},
	}
	for _, c := range cases {
		s, err := calc.ParseString(c.src)
		if err != nil {
			b.Fatal(err)
		}
		b.Run(c.name, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				s.Execute(env)
			}
		})
	}
}

func Example() {
	env := calc.NewEnvironment()
	for _, line := range []string{"r = 2", "a = pi * r^2", "a", "root(2, a / pi)", "b + 1"} {
		s, err := calc.ParseString(line)
		if err != nil {
			fmt.Println(err)
			continue
		}
		v, ok, err := s.Execute(env)
		switch {
		case err != nil:
			fmt.Println(err)
		case ok:
			fmt.Println(s, "=", calc.FormatFloat(v))
		default:
			fmt.Println(s)
		}
	}

	// Output:
	// SET r = 2.0
	// SET a = ( v:pi ( v:r 2.0 ^ ) * )
	// v:a = 12.566370614359172
	// ( 2.0 ( v:a v:pi / ) >| root ) = 2.0
	// 0-1: Undefined variable 'b'
}
