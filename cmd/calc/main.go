package main

import (
	"errors"
	"flag"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/zephyrtronium/calc"
)

func main() {
	var (
		cfgname, inname, verb, hist string
		given                       Vars
		echo, colored, verbose      bool
		prec                        int
	)
	addgiven := func(s string) error {
		g, err := parseGiven(s)
		if err != nil {
			return err
		}
		given = append(given, g)
		return nil
	}
	flag.StringVar(&cfgname, "config", "", "config file (default ~/"+configFile+" if it exists)")
	flag.StringVar(&inname, "in", "", "input file, or - for stdin (default stdin if no args given)")
	flag.StringVar(&verb, "fmt", "", "result formatting string (default canonical form)")
	flag.Func("given", "name=value variable definition (any number of times)", addgiven)
	flag.IntVar(&prec, "p", 0, "precision of calculations in bits (0 for float64)")
	flag.BoolVar(&echo, "echo", false, "print parse trees")
	flag.StringVar(&hist, "history", "", "interactive history file (default ~/"+historyFile+")")
	flag.BoolVar(&colored, "color", false, "color error reports (default true on terminals)")
	flag.BoolVar(&verbose, "v", false, "log debugging information")
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
		TimeFormat: time.Kitchen,
	})

	bits, err := precision(prec)
	if err != nil {
		log.Fatal().Err(err).Int("precision", prec).Msg("bad -p")
	}
	cfg, err := loadConfig(cfgname)
	if err != nil {
		log.Fatal().Err(err).Msg("loading config")
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "fmt":
			cfg.Format = verb
		case "p":
			cfg.Precision = bits
		case "echo":
			cfg.Echo = echo
		case "history":
			cfg.History = hist
		case "color":
			cfg.Color = &colored
		}
	})
	cfg.Vars = append(cfg.Vars, given...)

	stdinTerm := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	stdoutTerm := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	interactive := inname == "" && flag.NArg() == 0 && stdinTerm && stdoutTerm
	useColor := stdoutTerm
	if cfg.Color != nil {
		useColor = *cfg.Color
	}
	log.Debug().
		Bool("interactive", interactive).
		Bool("color", useColor).
		Uint("precision", cfg.Precision).
		Str("format", cfg.Format).
		Msg("starting")

	s := newSession(cfg, calc.NewEnvironment(), os.Stdout, os.Stderr, newPalette(useColor), log.Logger)
	for _, g := range cfg.Vars {
		if err := s.define(g); err != nil {
			log.Fatal().Err(err).Msg("setting variables")
		}
	}

	if interactive {
		if err := s.repl(cfg.Prompt, cfg.History); err != nil {
			log.Fatal().Err(err).Msg("interactive session")
		}
		return
	}
	in, err := infile(inname, flag.NArg() == 0)
	if err != nil {
		log.Fatal().Err(err).Msg("opening input")
	}
	failed, err := s.batch(flag.Args(), in)
	if in != nil {
		in.Close()
	}
	if err != nil {
		log.Fatal().Err(err).Msg("batch session")
	}
	if failed > 0 {
		log.Debug().Int("failed", failed).Msg("finished with errors")
		os.Exit(1)
	}
}

// infile opens the input named by inname. If inname is empty, the input is
// stdin when std is true and nothing otherwise.
func infile(inname string, std bool) (io.ReadCloser, error) {
	switch {
	case inname != "" && inname != "-":
		f, err := os.Open(inname)
		if err != nil {
			return nil, err
		}
		return f, nil
	case inname == "-", std:
		return io.NopCloser(os.Stdin), nil
	}
	return nil, nil
}

// precision checks the -p flag.
func precision(p int) (uint, error) {
	if p < 0 {
		return 0, errors.New("precision must not be negative")
	}
	return uint(p), nil
}
