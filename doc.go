// Package calc implements a small arithmetic calculator language with
// positions on everything.
//
// A line is either an expression, like "2 * sin(pi/4)", or an assignment, like
// "x = 2 ^ 0.5". Expressions have the binary operators + - * / ^ with the
// usual precedence, all left-associative, so "2^3^2" is "(2^3)^2". Prefix -
// and + are allowed anywhere an operand begins and bind loosest: "-2^2" is
// "-(2^2)". Functions are called with parentheses, and there is a fixed set
// of them; see Funcs.
//
// Every token and tree node records the Span of the line it came from, and
// every error from tokenizing, parsing or evaluating a line implements
// InputError, so a host can point at exactly the part of the input that
// failed.
//
// Variables live in an Environment, which starts out holding pi, e, inf, nan
// and tau. Statements evaluate with float64 arithmetic using Execute, or with
// arbitrary-precision floats using ExecutePrecise.
package calc
