package calc

import (
	"errors"
	"math"
	"strconv"
)

// ErrNoResult is returned by EvalString when the evaluated line is an
// assignment, which has no value.
var ErrNoResult = errors.New("calc: statement has no result")

// Execute evaluates the statement using the variables in env. If the
// statement is an expression, the result is its value and true. If it is an
// assignment, the value is stored in env and the result is false; env is only
// modified if evaluation succeeds. The returned error, if any, is an
// *EvalError.
//
// Arithmetic follows IEEE-754, so e.g. division by zero yields an infinity
// rather than an error.
func (s *Statement) Execute(env *Environment) (float64, bool, error) {
	if s.n.kind == nodeAssign {
		v, err := s.n.right.eval(env)
		if err != nil {
			return 0, false, err
		}
		env.Set(s.n.left.name, v)
		return 0, false, nil
	}
	v, err := s.n.eval(env)
	if err != nil {
		return 0, false, err
	}
	return v, true, nil
}

// eval computes the value of an expression node. Operands are evaluated left
// to right.
func (n *node) eval(env *Environment) (float64, error) {
	switch n.kind {
	case nodeNum:
		return n.num, nil
	case nodeName:
		v, ok := env.Lookup(n.name)
		if !ok {
			return 0, errUndefined(n)
		}
		return v, nil
	case nodeCall:
		f, err := n.callee()
		if err != nil {
			return 0, err
		}
		args := make([]float64, len(n.args))
		for i, arg := range n.args {
			v, err := arg.eval(env)
			if err != nil {
				return 0, err
			}
			args[i] = v
		}
		return f.fn(args), nil
	case nodeAdd, nodeSub, nodeMul, nodeDiv, nodePow:
		l, err := n.left.eval(env)
		if err != nil {
			return 0, err
		}
		r, err := n.right.eval(env)
		if err != nil {
			return 0, err
		}
		return arith(n.kind, l, r), nil
	case nodeAssign:
		panic("calc: eval on nested assignment")
	default:
		panic("calc: invalid AST node " + n.kind.String())
	}
}

// callee resolves the function a nodeCall calls and checks its arity.
func (n *node) callee() (*builtin, error) {
	name := n.left.name
	f := lookupFunc(name)
	if f == nil {
		return nil, &EvalError{
			Span:    n.left.span,
			Message: "Call to non-existent function '" + name + "'",
		}
	}
	if len(n.args) != f.arity {
		return nil, &EvalError{
			Span:    FromEndToEnd(n.left.span, n.span),
			Message: "Bad call to '" + name + "', expected " + strconv.Itoa(f.arity) + " arguments but got " + strconv.Itoa(len(n.args)),
		}
	}
	return f, nil
}

func arith(k nodeKind, l, r float64) float64 {
	switch k {
	case nodeAdd:
		return l + r
	case nodeSub:
		return l - r
	case nodeMul:
		return l * r
	case nodeDiv:
		return l / r
	case nodePow:
		return math.Pow(l, r)
	default:
		panic("calc: no arithmetic for node kind " + k.String())
	}
}

func errUndefined(n *node) error {
	return &EvalError{Span: n.span, Message: "Undefined variable '" + n.name + "'"}
}

// EvalString is a shortcut to parse and evaluate a line as an expression in a
// new environment created with opts. If the line is an assignment, the error
// is ErrNoResult.
func EvalString(src string, opts ...EnvOption) (float64, error) {
	s, err := ParseString(src)
	if err != nil {
		return 0, err
	}
	v, ok, err := s.Execute(NewEnvironment(opts...))
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, ErrNoResult
	}
	return v, nil
}

// EvalError is an error from evaluating a statement: a reference to an
// undefined variable, a call to an unknown function, a call with the wrong
// number of arguments, or, in precise evaluation, a result that is not a
// number. It implements InputError.
type EvalError struct {
	// Span locates the part of the statement that failed.
	Span Span
	// Message describes the error.
	Message string
}

func (err *EvalError) Error() string {
	return errpos(err.Span, err.Message)
}

func (err *EvalError) Pos() Span {
	return err.Span
}
