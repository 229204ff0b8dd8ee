package calc

import (
	"math"
	"strconv"
	"strings"
)

// node is a node in the abstract syntax tree of a statement.
type node struct {
	kind nodeKind
	span Span

	// num is the value of a nodeNum.
	num float64
	// name is the source text of a nodeNum or the name of a nodeName.
	name string

	// left and right are the operands of arithmetic nodes. For nodeCall, left
	// is the callee's name. For nodeAssign, left is the target variable and
	// right is the assigned value.
	left  *node
	right *node

	// args are the arguments of a nodeCall in order.
	args []*node
}

type nodeKind int8

const (
	nodeNone nodeKind = iota

	nodeNum  // literal num
	nodeName // lookup(name)
	nodeCall // call builtin left.name with args

	nodeAdd // left + right
	nodeSub // left - right
	nodeMul // left * right
	nodeDiv // left / right
	nodePow // left ^ right

	nodeAssign // store right in left.name
)

//go:generate stringer -type=nodeKind -trimprefix=node

// symbol is the operator text for a binary node kind.
func (k nodeKind) symbol() string {
	switch k {
	case nodeAdd:
		return "+"
	case nodeSub:
		return "-"
	case nodeMul:
		return "*"
	case nodeDiv:
		return "/"
	case nodePow:
		return "^"
	default:
		panic("calc: no symbol for node kind " + k.String())
	}
}

func (n *node) String() string {
	var b strings.Builder
	n.fmt(&b)
	return b.String()
}

// fmt writes the canonical form of the tree rooted at n. Operators and calls
// are written in postfix order inside spaced parentheses.
func (n *node) fmt(b *strings.Builder) {
	switch n.kind {
	case nodeNum:
		b.WriteString(FormatFloat(n.num))
	case nodeName:
		b.WriteString("v:")
		b.WriteString(n.name)
	case nodeCall:
		b.WriteString("( ")
		for _, arg := range n.args {
			arg.fmt(b)
			b.WriteByte(' ')
		}
		b.WriteString(">| ")
		b.WriteString(n.left.name)
		b.WriteString(" )")
	case nodeAdd, nodeSub, nodeMul, nodeDiv, nodePow:
		b.WriteString("( ")
		n.left.fmt(b)
		b.WriteByte(' ')
		n.right.fmt(b)
		b.WriteByte(' ')
		b.WriteString(n.kind.symbol())
		b.WriteString(" )")
	case nodeAssign:
		b.WriteString("SET ")
		b.WriteString(n.left.name)
		b.WriteString(" = ")
		n.right.fmt(b)
	default:
		panic("calc: invalid node kind " + n.kind.String() + " after writing " + b.String())
	}
}

// FormatFloat formats v the way literals are written in the canonical form of
// a statement: the shortest decimal that reads back as v, always with a
// fractional part, switching to scientific notation with an E exponent
// outside [1e-3, 1e7). Non-finite values are NaN, Infinity and -Infinity.
func FormatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}
	if a := math.Abs(v); a == 0 || 1e-3 <= a && a < 1e7 {
		s := strconv.FormatFloat(v, 'f', -1, 64)
		if !strings.ContainsRune(s, '.') {
			s += ".0"
		}
		return s
	}
	mant, exp, _ := strings.Cut(strconv.FormatFloat(v, 'e', -1, 64), "e")
	if !strings.ContainsRune(mant, '.') {
		mant += ".0"
	}
	sign := ""
	if exp[0] == '-' {
		sign = "-"
	}
	return mant + "E" + sign + strings.TrimLeft(exp[1:], "0")
}
