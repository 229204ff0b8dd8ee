package calc

// ParseError is an error indicating a structural problem in a line: a
// missing or redundant parenthesis, a group followed by unexpected tokens, an
// operator without an operand, or tokens forming no expression at all. It
// implements InputError.
type ParseError struct {
	// Span locates the problem in the input line.
	Span Span
	// Message describes the problem.
	Message string
}

func (err *ParseError) Error() string {
	return errpos(err.Span, err.Message)
}

func (err *ParseError) Pos() Span {
	return err.Span
}

// Parse error messages.
const (
	msgRedundantClose = "Redundant Closing Parenthesis"
	msgMissingClose   = "Missing Closing Parenthesis"
	msgBracket        = "Bracket interrupt"
	msgCallBracket    = "Function Call Bracket Interrupt"
	msgMalformed      = "Malformed Expression"
	msgNoRHS          = "Expected Right Hand Expression"
	msgPrefix         = "Unsupported prefix operator"
	msgEmpty          = "Empty Expression"
)

func parseErr(span Span, msg string) *ParseError {
	return &ParseError{Span: span, Message: msg}
}

// errpos is a shortcut to create an error message with a position.
func errpos(span Span, msg string) string {
	return span.String() + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input or from evaluating it implements InputError.
type InputError interface {
	error
	// Pos returns the span of the input line responsible for the error.
	Pos() Span
}

var (
	_ InputError = (*LexError)(nil)
	_ InputError = (*ParseError)(nil)
	_ InputError = (*EvalError)(nil)
)
