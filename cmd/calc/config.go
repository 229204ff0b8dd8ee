package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the settings of a calculator session. It is usually loaded from a
// YAML file and then overridden by flags.
type Config struct {
	// Prompt is printed before each line in interactive mode.
	Prompt string `yaml:"prompt"`
	// Format is a fmt verb for results. If empty, float64 results use the
	// canonical literal form and high-precision results the shortest exact
	// decimal.
	Format string `yaml:"format"`
	// Precision is the precision in bits of calculations. Zero means float64.
	Precision uint `yaml:"precision"`
	// Echo causes the parse tree of each line to be printed.
	Echo bool `yaml:"echo"`
	// History is the file holding interactive history. Empty disables it.
	History string `yaml:"history"`
	// Color forces error coloring on or off. Nil means color only terminals.
	Color *bool `yaml:"color"`
	// Vars are variables to define before the session starts, in order.
	Vars Vars `yaml:"vars"`
}

// Given is a variable definition: a name and the expression giving its value.
type Given struct {
	Name string
	Expr string
}

// Vars is an ordered list of variable definitions. In YAML it is a mapping of
// names to expressions, which are evaluated in document order so that later
// ones can refer to earlier ones.
type Vars []Given

// UnmarshalYAML implements yaml.Unmarshaler.
func (v *Vars) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: vars must be a mapping of names to expressions", node.Line)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		k, e := node.Content[i], node.Content[i+1]
		if k.Kind != yaml.ScalarNode || e.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: variable definitions must be name: expression", k.Line)
		}
		*v = append(*v, Given{Name: k.Value, Expr: e.Value})
	}
	return nil
}

// parseGiven parses a name=expression definition from the command line.
func parseGiven(s string) (Given, error) {
	name, expr, ok := strings.Cut(s, "=")
	if !ok {
		return Given{}, fmt.Errorf(`variable definitions must be "name=value", not %q`, s)
	}
	return Given{Name: strings.TrimSpace(name), Expr: strings.TrimSpace(expr)}, nil
}

const (
	defaultPrompt = "Eval    > "
	configFile    = ".calc.yaml"
	historyFile   = ".calc_history"
	resultPrompt  = "Result  > "
	treePrompt    = "Tree    > "
	greeting      = "calc: enter an expression, or an empty line to quit"
	farewell      = "Goodbye from calc"
)

// defaultConfig returns the settings used where a config file is silent.
func defaultConfig() Config {
	cfg := Config{Prompt: defaultPrompt}
	if home, err := os.UserHomeDir(); err == nil {
		cfg.History = filepath.Join(home, historyFile)
	}
	return cfg
}

// loadConfig reads the config file at path over the defaults. If path is
// empty, the file in the user's home directory is used if it exists.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	optional := path == ""
	if optional {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(home, configFile)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := decodeConfig(b, &cfg); err != nil {
		return cfg, fmt.Errorf("decoding %s: %w", path, err)
	}
	return cfg, nil
}

// decodeConfig decodes YAML over cfg. Unknown keys are errors.
func decodeConfig(b []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
