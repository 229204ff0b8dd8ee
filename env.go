package calc

import (
	"math"
	"sort"
)

// Environment maps variable names to values for a session of evaluations.
// Variables can be created and overwritten but never removed. It is not safe
// to use an Environment concurrently.
type Environment struct {
	names map[string]float64
}

// EnvOption is an option used when creating an environment.
type EnvOption interface {
	envOption()
}

type (
	varopt struct {
		name string
		val  float64
	}
	varsopt map[string]float64
)

func (varopt) envOption()  {}
func (varsopt) envOption() {}

// SetVar sets the value of a variable in the environment.
func SetVar(name string, val float64) EnvOption {
	return varopt{name, val}
}

// SetVars sets the values of any number of variables in the environment.
func SetVars(vars map[string]float64) EnvOption {
	return varsopt(vars)
}

// Constants returns the variables every new environment starts with.
func Constants() map[string]float64 {
	return map[string]float64{
		"pi":  math.Pi,
		"e":   math.E,
		"inf": math.Inf(1),
		"nan": math.NaN(),
		"tau": 2 * math.Pi,
	}
}

// NewEnvironment creates an environment holding the constants pi, e, inf,
// nan and tau, then applies opts. Options may overwrite constants.
func NewEnvironment(opts ...EnvOption) *Environment {
	env := Environment{names: Constants()}
	return env.Clone(opts...)
}

// Set sets the value of a variable. Returns env for chaining.
func (env *Environment) Set(name string, val float64) *Environment {
	if env.names == nil {
		env.names = make(map[string]float64)
	}
	env.names[name] = val
	return env
}

// Lookup returns the value of a variable and whether it is defined.
func (env *Environment) Lookup(name string) (float64, bool) {
	v, ok := env.names[name]
	return v, ok
}

// Names returns the names of all defined variables in sorted order.
func (env *Environment) Names() []string {
	r := make([]string, 0, len(env.names))
	for name := range env.names {
		r = append(r, name)
	}
	sort.Strings(r)
	return r
}

// Clone creates a copy of an environment and applies options to it. Changes
// to either environment do not affect the other.
func (env *Environment) Clone(opts ...EnvOption) *Environment {
	n := Environment{names: make(map[string]float64, len(env.names))}
	for name, val := range env.names {
		n.names[name] = val
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		switch opt := opt.(type) {
		case varopt:
			n.names[opt.name] = opt.val
		case varsopt:
			for k, v := range opt {
				n.names[k] = v
			}
		default:
			panic("calc: unknown option type")
		}
	}
	return &n
}
