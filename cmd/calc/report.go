package main

import (
	"errors"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/zephyrtronium/calc"
)

// palette colors the parts of the session's output.
type palette struct {
	result func(a ...interface{}) string
	caret  func(a ...interface{}) string
	note   func(a ...interface{}) string
}

func newPalette(enabled bool) *palette {
	cs := []*color.Color{color.New(color.FgCyan), color.New(color.FgRed), color.New(color.FgYellow)}
	for _, c := range cs {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return &palette{
		result: cs[0].SprintFunc(),
		caret:  cs[1].SprintFunc(),
		note:   cs[2].SprintFunc(),
	}
}

// underline draws a line marking where err happened in an input echoed
// indent columns from the start of its own line, followed by the message.
// Errors without a position get just the message.
func (p *palette) underline(indent int, err error) string {
	var ie calc.InputError
	if !errors.As(err, &ie) {
		return p.note(err.Error())
	}
	sp := ie.Pos()
	w := sp.Width()
	if w < 1 {
		w = 1
	}
	return strings.Repeat(" ", indent+sp.Begin) + p.caret(strings.Repeat("~", w)) + p.note(" < "+message(err))
}

// message is the description of an input error without its position.
func message(err error) string {
	var (
		lerr *calc.LexError
		perr *calc.ParseError
		eerr *calc.EvalError
	)
	switch {
	case errors.As(err, &lerr):
		return lerr.Message + " " + strconv.QuoteRune(lerr.Char)
	case errors.As(err, &perr):
		return perr.Message
	case errors.As(err, &eerr):
		return eerr.Message
	default:
		return err.Error()
	}
}
