package calc

import (
	"errors"
	"sort"
	"strconv"
)

// Statement = word '=' Expr | Expr
// Expr = number | word | Call | Neg | Plus | Add | Sub | Mul | Div | Pow | '(' Expr ')'
// Call = word '(' [ Expr { ',' Expr } ] ')'
// Neg = '-' Expr
// Plus = '+' Expr
// Add = Expr '+' Expr
// Sub = Expr '-' Expr
// Mul = Expr '*' Expr
// Div = Expr '/' Expr
// Pow = Expr '^' Expr
//
// All binary operators are left-associative. Precedence is Add, Sub < Mul,
// Div < Pow. Prefix operators bind loosest, so -2^2 is -(2^2).

// Statement is a parsed line. It is either an expression, which evaluates to
// a value, or an assignment, which stores a value in an environment.
type Statement struct {
	// n is the root node of the statement.
	n *node
	// names is the sorted list of variable names read by the statement.
	names []string
}

// Render returns the canonical form of the statement. Parsing the same line
// always renders the same way, but the result is not meant to be parsed.
func (s *Statement) Render() string {
	return s.n.String()
}

func (s *Statement) String() string {
	return s.Render()
}

// Span returns the span of the input covered by the statement.
func (s *Statement) Span() Span {
	return s.n.span
}

// Target returns the name of the variable an assignment stores to, or the
// empty string if the statement is an expression.
func (s *Statement) Target() string {
	if s.n.kind != nodeAssign {
		return ""
	}
	return s.n.left.name
}

// Names returns the names of the variables the statement reads, sorted and
// without duplicates. An assignment's target is not included unless the
// assigned expression also reads it.
func (s *Statement) Names() []string {
	return append([]string(nil), s.names...)
}

// Parse builds a statement from the tokens of one line. If the tokens begin
// with a word followed by = and at least one more token, the statement is an
// assignment of the remaining tokens to that word; otherwise all the tokens
// form one expression. The returned error, if any, is a *ParseError.
func Parse(toks []Token) (*Statement, error) {
	p := parser{names: make(map[string]bool)}
	var root *node
	switch {
	case len(toks) == 0:
		return nil, parseErr(Span{}, msgEmpty)
	case len(toks) > 2 && toks[0].Kind == TokenWord && toks[1].Kind == TokenEquals:
		v, err := p.expr(toks[2:])
		if err != nil {
			return nil, err
		}
		target := &node{kind: nodeName, span: toks[0].Span, name: toks[0].Text}
		root = &node{kind: nodeAssign, span: Union(target.span, v.span), left: target, right: v}
	default:
		var err error
		root, err = p.expr(toks)
		if err != nil {
			return nil, err
		}
	}
	names := make([]string, 0, len(p.names))
	for name := range p.names {
		names = append(names, name)
	}
	sort.Strings(names)
	return &Statement{n: root, names: names}, nil
}

// ParseString is a shortcut to tokenize and parse a line.
func ParseString(line string) (*Statement, error) {
	toks, err := Tokenize(line)
	if err != nil {
		return nil, err
	}
	return Parse(toks)
}

// parser holds data collected over one parse.
type parser struct {
	// names is the set of variable names that have been seen this parse.
	names map[string]bool
}

// binop returns the node kind for an operator token, or nodeNone if the token
// is not an operator.
func binop(k TokenKind) nodeKind {
	switch k {
	case TokenPlus:
		return nodeAdd
	case TokenMinus:
		return nodeSub
	case TokenStar:
		return nodeMul
	case TokenSlash:
		return nodeDiv
	case TokenKarat:
		return nodePow
	default:
		return nodeNone
	}
}

// prec returns the precedence of a binary operator. Lower binds looser.
func prec(k nodeKind) int {
	switch k {
	case nodeAdd, nodeSub:
		return 0
	case nodeMul, nodeDiv:
		return 1
	case nodePow:
		return 2
	default:
		panic("calc: no precedence for node kind " + k.String())
	}
}

// expr parses a non-empty token slice as one expression.
//
// The slice is scanned once at parenthesis depth 0 for operators that are not
// immediately preceded by another depth-0 operator; those that are must be
// prefix operators of their right operand. Among the candidates, the split
// point is the one with the lowest precedence, and the rightmost of those.
// Splitting there and parsing each side recursively yields left-associative
// trees with correct precedence. A slice with no candidate must be a
// parenthesized expression or a function call.
func (p *parser) expr(toks []Token) (*node, error) {
	if len(toks) == 0 {
		panic("calc: parse of empty token list")
	}
	span := Union(toks[0].Span, toks[len(toks)-1].Span)
	if len(toks) == 1 {
		return p.leaf(toks[0])
	}

	split := -1
	depth := 0
	prevOp := false
	// top holds the indices of the tokens at depth 0.
	var top []int
	for i, tok := range toks {
		if depth == 0 {
			top = append(top, i)
		}
		switch tok.Kind {
		case TokenOpenParen:
			depth++
			prevOp = false
		case TokenCloseParen:
			if depth == 0 {
				return nil, parseErr(tok.Span, msgRedundantClose)
			}
			depth--
		default:
			if depth > 0 {
				continue
			}
			op := binop(tok.Kind)
			if op == nodeNone {
				prevOp = false
				continue
			}
			if prevOp {
				continue
			}
			prevOp = true
			if split < 0 || prec(op) <= prec(binop(toks[split].Kind)) {
				split = i
			}
		}
	}
	if depth > 0 {
		return nil, parseErr(span.ImmediatelyAfter(), msgMissingClose)
	}
	if split < 0 {
		return p.group(toks, top, span)
	}

	optok := toks[split]
	op := binop(optok.Kind)
	lhs, rhs := toks[:split], toks[split+1:]
	if len(rhs) == 0 {
		return nil, parseErr(optok.Span.ImmediatelyAfter(), msgNoRHS)
	}
	if len(lhs) == 0 {
		switch op {
		case nodeAdd:
			return p.expr(rhs)
		case nodeSub:
			r, err := p.expr(rhs)
			if err != nil {
				return nil, err
			}
			zero := &node{kind: nodeNum, span: optok.Span, name: "0"}
			return &node{kind: nodeSub, span: Union(zero.span, r.span), left: zero, right: r}, nil
		default:
			return nil, parseErr(optok.Span, msgPrefix)
		}
	}
	l, err := p.expr(lhs)
	if err != nil {
		return nil, err
	}
	r, err := p.expr(rhs)
	if err != nil {
		return nil, err
	}
	return &node{kind: op, span: Union(l.span, r.span), left: l, right: r}, nil
}

// leaf parses a single token.
func (p *parser) leaf(tok Token) (*node, error) {
	switch tok.Kind {
	case TokenNumber:
		v, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			// Only possible for tokens that didn't come from Tokenize.
			return nil, parseErr(tok.Span, msgMalformed)
		}
		return &node{kind: nodeNum, span: tok.Span, num: v, name: tok.Text}, nil
	case TokenWord:
		p.names[tok.Text] = true
		return &node{kind: nodeName, span: tok.Span, name: tok.Text}, nil
	default:
		return nil, parseErr(tok.Span, msgMalformed)
	}
}

// group parses a slice with no operator at depth 0: a fully parenthesized
// expression or a function call. top is the indices of the depth-0 tokens.
func (p *parser) group(toks []Token, top []int, span Span) (*node, error) {
	first, second, last := toks[0], toks[1], toks[len(toks)-1]
	switch {
	case first.Kind == TokenOpenParen && last.Kind == TokenCloseParen:
		if len(top) != 1 {
			return nil, parseErr(toks[top[1]].Span, msgBracket)
		}
		inner := toks[1 : len(toks)-1]
		if len(inner) == 0 {
			return nil, parseErr(span, msgEmpty)
		}
		return p.expr(inner)
	case first.Kind == TokenWord && second.Kind == TokenOpenParen && last.Kind == TokenCloseParen:
		if len(top) != 2 {
			return nil, parseErr(toks[top[2]].Span, msgCallBracket)
		}
		return p.call(toks, span)
	default:
		return nil, parseErr(span, msgMalformed)
	}
}

// call parses a function call. toks is the callee name, the open paren, the
// argument list, and the close paren.
func (p *parser) call(toks []Token, span Span) (*node, error) {
	callee := &node{kind: nodeName, span: toks[0].Span, name: toks[0].Text}
	n := &node{kind: nodeCall, span: span, left: callee}
	inner := toks[2 : len(toks)-1]
	if len(inner) == 0 {
		return n, nil
	}
	segs, err := splitAt(inner, TokenComma)
	if err != nil {
		return nil, err
	}
	// before is the token preceding the current argument, either the open
	// paren or a comma.
	before := toks[1]
	k := 0
	for _, seg := range segs {
		if len(seg) == 0 {
			return nil, parseErr(before.Span.ImmediatelyAfter(), msgEmpty)
		}
		arg, err := p.expr(seg)
		if err != nil {
			return nil, err
		}
		n.args = append(n.args, arg)
		k += len(seg)
		if k < len(inner) {
			before = inner[k]
			k++
		}
	}
	return n, nil
}

// splitAt splits toks at each depth-0 token of kind sep. There is always one
// more segment than separators, so segments may be empty.
func splitAt(toks []Token, sep TokenKind) ([][]Token, error) {
	var segs [][]Token
	depth := 0
	start := 0
	for i, tok := range toks {
		switch tok.Kind {
		case TokenOpenParen:
			depth++
		case TokenCloseParen:
			if depth == 0 {
				return nil, parseErr(tok.Span, msgRedundantClose)
			}
			depth--
		case sep:
			if depth == 0 {
				segs = append(segs, toks[start:i])
				start = i + 1
			}
		}
	}
	return append(segs, toks[start:]), nil
}
