package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/peterh/liner"
	"github.com/rs/zerolog"

	"github.com/zephyrtronium/calc"
)

// session evaluates lines one after another against a single environment.
type session struct {
	env *calc.Environment
	// out receives results. errs receives error reports.
	out, errs io.Writer
	pal       *palette
	log       zerolog.Logger

	format string
	prec   uint
	echo   bool
	// interactive selects the REPL's output style: labeled results, and
	// error carets aligned under the prompted input.
	interactive bool
	// indent is the width of the prompt in interactive sessions.
	indent int
}

func newSession(cfg Config, env *calc.Environment, out, errs io.Writer, pal *palette, log zerolog.Logger) *session {
	return &session{
		env:    env,
		out:    out,
		errs:   errs,
		pal:    pal,
		log:    log,
		format: cfg.Format,
		prec:   cfg.Precision,
		echo:   cfg.Echo,
	}
}

// run evaluates one line and writes its result. It returns false if the line
// ends the session: "exit", or in interactive sessions a line with no tokens.
// Non-interactive sessions skip blank lines instead. Errors in the line are
// reported and also returned.
func (s *session) run(line string) (bool, error) {
	if strings.TrimSpace(line) == "exit" {
		return false, nil
	}
	toks, err := calc.Tokenize(line)
	if err != nil {
		s.report(line, err)
		return true, err
	}
	if len(toks) == 0 {
		return !s.interactive, nil
	}
	st, err := calc.Parse(toks)
	if err != nil {
		s.report(line, err)
		return true, err
	}
	s.log.Debug().
		Int("tokens", len(toks)).
		Str("tree", st.Render()).
		Strs("reads", st.Names()).
		Str("target", st.Target()).
		Msg("parsed")

	r, ok, err := s.execute(st)
	if err != nil {
		s.report(line, err)
		return true, err
	}
	switch {
	case s.interactive:
		if s.echo {
			fmt.Fprintln(s.out, s.pal.result(treePrompt)+st.Render())
		}
		if ok {
			fmt.Fprintln(s.out, s.pal.result(resultPrompt)+r)
		}
		fmt.Fprintln(s.out)
	case s.echo && ok:
		fmt.Fprintf(s.out, "%v : %s\n", st, r)
	case s.echo:
		fmt.Fprintln(s.out, st)
	case ok:
		fmt.Fprintln(s.out, r)
	}
	return true, nil
}

// execute evaluates a statement at the session's precision and formats the
// result, if there is one.
func (s *session) execute(st *calc.Statement) (string, bool, error) {
	if s.prec == 0 {
		v, ok, err := st.Execute(s.env)
		if err != nil || !ok {
			return "", ok, err
		}
		if s.format == "" {
			return calc.FormatFloat(v), true, nil
		}
		return fmt.Sprintf(s.format, v), true, nil
	}
	v, ok, err := st.ExecutePrecise(s.env, s.prec)
	if err != nil || !ok {
		return "", ok, err
	}
	if s.format == "" {
		return v.Text('g', -1), true, nil
	}
	return fmt.Sprintf(s.format, v), true, nil
}

// report writes the caret line for an error in line. Outside interactive
// sessions, the line itself is written first, since it wasn't echoed.
func (s *session) report(line string, err error) {
	s.log.Debug().Err(err).Str("line", line).Msg("line failed")
	if s.interactive {
		fmt.Fprintln(s.errs, s.pal.underline(s.indent, err))
		fmt.Fprintln(s.errs)
		return
	}
	fmt.Fprintln(s.errs, line)
	fmt.Fprintln(s.errs, s.pal.underline(0, err))
}

// define evaluates the expression of a variable definition and stores it.
func (s *session) define(g Given) error {
	st, err := calc.ParseString(g.Expr)
	if err != nil {
		return fmt.Errorf("defining %s: %w", g.Name, err)
	}
	if st.Target() != "" {
		return fmt.Errorf("defining %s: %w", g.Name, calc.ErrNoResult)
	}
	var v float64
	if s.prec == 0 {
		v, _, err = st.Execute(s.env)
	} else {
		var r *big.Float
		r, _, err = st.ExecutePrecise(s.env, s.prec)
		if err == nil {
			v, _ = r.Float64()
		}
	}
	if err != nil {
		return fmt.Errorf("defining %s: %w", g.Name, err)
	}
	s.env.Set(g.Name, v)
	s.log.Debug().Str("name", g.Name).Float64("value", v).Msg("defined")
	return nil
}

// batch runs each of lines, then each line of in if it is not nil. It returns
// the number of lines that failed.
func (s *session) batch(lines []string, in io.Reader) (int, error) {
	failed := 0
	for _, line := range lines {
		more, err := s.run(line)
		if err != nil {
			failed++
		}
		if !more {
			return failed, nil
		}
	}
	if in == nil {
		return failed, nil
	}
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		more, err := s.run(sc.Text())
		if err != nil {
			failed++
		}
		if !more {
			break
		}
	}
	if err := sc.Err(); err != nil {
		return failed, fmt.Errorf("reading input: %w", err)
	}
	return failed, nil
}

// repl runs an interactive session on the terminal until the user ends it.
// History is loaded from and saved to hist if it is not empty.
func (s *session) repl(prompt, hist string) error {
	s.interactive = true
	s.indent = utf8.RuneCountInString(prompt)

	s.greet()
	defer s.farewell()
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	ln.SetCompleter(s.complete)
	if hist != "" {
		if f, err := os.Open(hist); err == nil {
			if _, err := ln.ReadHistory(f); err != nil {
				s.log.Warn().Err(err).Str("file", hist).Msg("reading history")
			}
			f.Close()
		}
	}

	for {
		line, err := ln.Prompt(prompt)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
				break
			}
			return fmt.Errorf("reading input: %w", err)
		}
		more, _ := s.run(line)
		if !more {
			break
		}
		ln.AppendHistory(line)
	}

	if hist == "" {
		return nil
	}
	f, err := os.Create(hist)
	if err != nil {
		return fmt.Errorf("saving history: %w", err)
	}
	defer f.Close()
	if _, err := ln.WriteHistory(f); err != nil {
		return fmt.Errorf("saving history: %w", err)
	}
	return nil
}

func (s *session) greet() {
	fmt.Fprintln(s.out, s.pal.note(greeting))
}

func (s *session) farewell() {
	fmt.Fprintln(s.out, s.pal.note(farewell))
}

// complete lists completions of the word at the end of line: functions,
// which are completed with their opening parenthesis, then variables.
func (s *session) complete(line string) []string {
	i := len(line)
	for i > 0 && isLetter(line[i-1]) {
		i--
	}
	head, word := line[:i], line[i:]
	if word == "" {
		return nil
	}
	var r []string
	for _, f := range calc.Funcs() {
		if strings.HasPrefix(f, word) {
			r = append(r, head+f+"(")
		}
	}
	for _, v := range s.env.Names() {
		if strings.HasPrefix(v, word) {
			r = append(r, head+v)
		}
	}
	return r
}

func isLetter(c byte) bool {
	return 'A' <= c && c <= 'Z' || 'a' <= c && c <= 'z'
}
