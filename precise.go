package calc

import (
	"math"
	"math/big"

	"github.com/zephyrtronium/bigfloat"
)

// DefaultPrec is the precision ExecutePrecise uses when given zero.
const DefaultPrec = 64

// ExecutePrecise evaluates the statement like Execute, but computes with
// big.Float values of prec bits of precision. Literals are read from their
// source text at that precision, so e.g. 0.1 is not first rounded to a
// float64. Variables still hold float64 values: an assignment stores the
// result rounded to the nearest float64.
//
// Since big.Float has no NaN, operations whose IEEE-754 result would be NaN,
// such as inf - inf or the square root of a negative number, and reading a
// variable holding NaN, fail with an *EvalError. Trigonometric functions,
// any function applied to an infinity, and powers whose result lies outside
// the float64 exponent range are computed in float64.
func (s *Statement) ExecutePrecise(env *Environment, prec uint) (*big.Float, bool, error) {
	if prec == 0 {
		prec = DefaultPrec
	}
	ctx := precise{env: env, prec: prec}
	n := s.n
	if n.kind == nodeAssign {
		n = n.right
	}
	if err := n.evalPrecise(&ctx); err != nil {
		return nil, false, err
	}
	r := ctx.result()
	if s.n.kind == nodeAssign {
		v, _ := r.Float64()
		env.Set(s.n.left.name, v)
		return nil, false, nil
	}
	return r, true, nil
}

// precise is a context for evaluating a tree with big.Float values. Nodes
// push their results to its stack.
type precise struct {
	env   *Environment
	prec  uint
	stack []*big.Float
}

// push ensures a settable value on the stack.
func (ctx *precise) push() *big.Float {
	if len(ctx.stack) < cap(ctx.stack) {
		ctx.stack = ctx.stack[:len(ctx.stack)+1]
		if ctx.stack[len(ctx.stack)-1] == nil {
			ctx.stack[len(ctx.stack)-1] = new(big.Float).SetPrec(ctx.prec)
		}
	} else {
		ctx.stack = append(ctx.stack, new(big.Float).SetPrec(ctx.prec))
	}
	return ctx.stack[len(ctx.stack)-1]
}

// pop removes the top from the stack and returns it. The returned value may be
// modified by future node evaluations.
func (ctx *precise) pop() *big.Float {
	r := ctx.stack[len(ctx.stack)-1]
	ctx.stack = ctx.stack[:len(ctx.stack)-1]
	return r
}

// top is a shortcut to get the top element of the stack.
func (ctx *precise) top() *big.Float {
	return ctx.stack[len(ctx.stack)-1]
}

// result returns the value of an evaluated tree.
func (ctx *precise) result() *big.Float {
	if len(ctx.stack) != 1 {
		panic("calc: inconsistent precise stack (bad AST?)")
	}
	return ctx.stack[0]
}

// evalPrecise pushes the node's value to the context's stack.
func (n *node) evalPrecise(ctx *precise) error {
	switch n.kind {
	case nodeNum:
		r := ctx.push()
		if _, _, err := r.Parse(n.name, 10); err != nil {
			// The literal didn't come from the lexer. Use its float64 value.
			return setFloat(r, n.num, n, "literal")
		}
	case nodeName:
		v, ok := ctx.env.Lookup(n.name)
		if !ok {
			return errUndefined(n)
		}
		if math.IsNaN(v) {
			return &EvalError{Span: n.span, Message: "Variable '" + n.name + "' has no precise value"}
		}
		ctx.push().SetFloat64(v)
	case nodeCall:
		f, err := n.callee()
		if err != nil {
			return err
		}
		r := ctx.push()
		k := len(ctx.stack)
		for _, arg := range n.args {
			if err := arg.evalPrecise(ctx); err != nil {
				return err
			}
		}
		invoc := ctx.stack[k:len(ctx.stack):len(ctx.stack)]
		if err := callPrecise(n, f, invoc, r); err != nil {
			return err
		}
		ctx.stack = ctx.stack[:k]
	case nodeAdd, nodeSub, nodeMul, nodeDiv, nodePow:
		if err := n.left.evalPrecise(ctx); err != nil {
			return err
		}
		if err := n.right.evalPrecise(ctx); err != nil {
			return err
		}
		r := ctx.pop()
		l := ctx.top()
		return arithPrecise(n, l, r)
	case nodeAssign:
		panic("calc: evalPrecise on nested assignment")
	default:
		panic("calc: invalid AST node " + n.kind.String())
	}
	return nil
}

// arithPrecise sets l to the result of the binary operation n on l and r.
func arithPrecise(n *node, l, r *big.Float) (err error) {
	defer func() {
		e := recover()
		if e == nil {
			return
		}
		if _, ok := e.(big.ErrNaN); !ok {
			panic(e)
		}
		err = notNumber(n, n.kind.symbol())
	}()
	switch n.kind {
	case nodeAdd:
		l.Add(l, r)
	case nodeSub:
		l.Sub(l, r)
	case nodeMul:
		l.Mul(l, r)
	case nodeDiv:
		l.Quo(l, r)
	case nodePow:
		z := new(big.Float).SetPrec(l.Prec())
		if pow(z, l, r) {
			l.Set(z)
			return nil
		}
		x, _ := l.Float64()
		y, _ := r.Float64()
		return setFloat(l, math.Pow(x, y), n, "^")
	default:
		panic("calc: no arithmetic for node kind " + n.kind.String())
	}
	return nil
}

// callPrecise sets r to the result of calling f with invoc.
func callPrecise(n *node, f *builtin, invoc []*big.Float, r *big.Float) error {
	if f.big != nil && finite(invoc) && tryBig(f.big, r, invoc) {
		return nil
	}
	args := make([]float64, len(invoc))
	for i, x := range invoc {
		args[i], _ = x.Float64()
	}
	return setFloat(r, f.fn(args), n, f.name)
}

// tryBig calls a builtin's big handler, treating a NaN panic from package big
// as a request for the float64 handler.
func tryBig(f func(*big.Float, []*big.Float) bool, r *big.Float, args []*big.Float) (ok bool) {
	defer func() {
		e := recover()
		if e == nil {
			return
		}
		if _, nan := e.(big.ErrNaN); !nan {
			panic(e)
		}
		ok = false
	}()
	return f(r, args)
}

// powRange bounds |log2(x^y)| for powers computed by bigfloat.Pow, which
// returns garbage for results outside roughly the float64 exponent range.
const powRange = 1000

// pow sets z to x^y. It reports false without computing anything if the
// result needs float64 arithmetic: if either operand is infinite, if x is
// zero, if x is negative and y is not an integer, or if the result is too
// large or too small for bigfloat.Pow.
func pow(z, x, y *big.Float) bool {
	if x.IsInf() || y.IsInf() || x.Sign() == 0 {
		return false
	}
	if !powInRange(x, y) {
		return false
	}
	if x.Sign() > 0 {
		bigfloat.Pow(z, x, y)
		return true
	}
	if !y.IsInt() {
		return false
	}
	ax := new(big.Float).Abs(x)
	bigfloat.Pow(z, ax, y)
	if k, _ := y.Int(nil); k.Abs(k).Bit(0) == 1 {
		z.Neg(z)
	}
	return true
}

// powInRange estimates whether |x|^y is within powRange binary orders of
// magnitude of 1.
func powInRange(x, y *big.Float) bool {
	var m big.Float
	exp := x.MantExp(&m)
	mf, _ := m.Float64()
	yf, _ := y.Float64()
	est := yf * (float64(exp) + math.Log2(math.Abs(mf)))
	return !math.IsNaN(est) && math.Abs(est) <= powRange
}

func finite(args []*big.Float) bool {
	for _, x := range args {
		if x.IsInf() {
			return false
		}
	}
	return true
}

// setFloat sets r to a float64 computed for the node n.
func setFloat(r *big.Float, v float64, n *node, op string) error {
	if math.IsNaN(v) {
		return notNumber(n, op)
	}
	r.SetFloat64(v)
	return nil
}

func notNumber(n *node, op string) error {
	return &EvalError{Span: n.span, Message: "Result of '" + op + "' is not a number"}
}
