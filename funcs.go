package calc

import (
	"math"
	"math/big"

	"github.com/zephyrtronium/bigfloat"
)

// builtin is a function callable from expressions.
type builtin struct {
	name  string
	arity int
	// fn computes the function. len(args) == arity.
	fn func(args []float64) float64
	// big computes the function at the precision of r, setting r to the
	// result. It reports false if the arguments need the float64 handler,
	// e.g. when the result is not finite. If big is nil, the function is
	// always computed by fn.
	big func(r *big.Float, args []*big.Float) bool
}

// builtins is the fixed set of functions. Handlers must be pure.
var builtins = [...]builtin{
	{name: "sin", arity: 1, fn: sin},
	{name: "cos", arity: 1, fn: cos},
	{name: "tan", arity: 1, fn: tan},
	{name: "log", arity: 2, fn: logb, big: biglogb},
	{name: "root", arity: 2, fn: root, big: bigroot},
	{name: "sqrt", arity: 1, fn: sqrt, big: bigsqrt},
	{name: "deg", arity: 1, fn: deg, big: bigdeg},
	{name: "rad", arity: 1, fn: rad, big: bigrad},
}

// lookupFunc finds a builtin by name. Returns nil if there is none.
func lookupFunc(name string) *builtin {
	for i := range builtins {
		if builtins[i].name == name {
			return &builtins[i]
		}
	}
	return nil
}

// Funcs returns the names of the functions expressions can call, in the order
// they are looked up.
func Funcs() []string {
	r := make([]string, len(builtins))
	for i, f := range builtins {
		r[i] = f.name
	}
	return r
}

func sin(a []float64) float64  { return math.Sin(a[0]) }
func cos(a []float64) float64  { return math.Cos(a[0]) }
func tan(a []float64) float64  { return math.Tan(a[0]) }
func sqrt(a []float64) float64 { return math.Sqrt(a[0]) }

// logb is the logarithm of a[1] in base a[0].
func logb(a []float64) float64 { return math.Log(a[1]) / math.Log(a[0]) }

// root is the a[0]th root of a[1].
func root(a []float64) float64 { return math.Pow(a[1], 1/a[0]) }

// deg converts a[0] from degrees to radians. The conversion takes a full
// circle to be 360 degrees.
func deg(a []float64) float64 { return a[0] / 360 * 2 * math.Pi }

// rad converts a[0] from radians to degrees.
func rad(a []float64) float64 { return a[0] / (2 * math.Pi) * 360 }

func biglogb(r *big.Float, a []*big.Float) bool {
	if a[0].Sign() <= 0 || a[1].Sign() <= 0 {
		return false
	}
	var d big.Float
	d.SetPrec(r.Prec())
	bigfloat.Log(&d, a[0])
	if d.Sign() == 0 {
		return false
	}
	bigfloat.Log(r, a[1])
	r.Quo(r, &d)
	return true
}

func bigroot(r *big.Float, a []*big.Float) bool {
	if a[0].Sign() == 0 {
		return false
	}
	var e big.Float
	e.SetPrec(r.Prec()).SetInt64(1)
	e.Quo(&e, a[0])
	return pow(r, a[1], &e)
}

func bigsqrt(r *big.Float, a []*big.Float) bool {
	if a[0].Signbit() && a[0].Sign() != 0 {
		return false
	}
	r.Sqrt(a[0])
	return true
}

func bigdeg(r *big.Float, a []*big.Float) bool {
	var pi big.Float
	bigfloat.Pi(pi.SetPrec(r.Prec()))
	r.Quo(a[0], big.NewFloat(360))
	r.Mul(r, big.NewFloat(2))
	r.Mul(r, &pi)
	return true
}

func bigrad(r *big.Float, a []*big.Float) bool {
	var tau big.Float
	bigfloat.Pi(tau.SetPrec(r.Prec()))
	tau.Mul(&tau, big.NewFloat(2))
	r.Quo(a[0], &tau)
	r.Mul(r, big.NewFloat(360))
	return true
}
