/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: variable.go
Description: Linguistic variables and their adjectives. A variable groups labelled fuzzy sets
over one crisp domain and carries the defuzzification method and optional default value used
when it is the output of a rule block.
*/

package fuzzy

import (
	"fmt"
	"math"

	"github.com/kleascm/akaylee-fuzzy/pkg/defuzz"
	"github.com/kleascm/akaylee-fuzzy/pkg/membership"
)

// Adjective is a labelled fuzzy set owned by one variable
type Adjective struct {
	Label    string
	Function membership.Function
}

// Variable is a named linguistic variable
type Variable struct {
	name       string
	unit       string
	adjectives []Adjective
	index      map[string]int
	method     defuzz.Method
	def        *float64
	min        float64
	max        float64
	domainSet  bool
}

// VariableOption configures a Variable
type VariableOption func(*Variable) error

// WithUnit sets the cosmetic unit of the variable
func WithUnit(unit string) VariableOption {
	return func(v *Variable) error {
		v.unit = unit
		return nil
	}
}

// WithDomain sets the crisp domain explicitly. Without it the domain spans the adjectives' vertices.
func WithDomain(min, max float64) VariableOption {
	return func(v *Variable) error {
		if !(min < max) || math.IsInf(min, 0) || math.IsInf(max, 0) {
			return fmt.Errorf("%w: variable %q domain [%g, %g]", ErrInvalidModel, v.name, min, max)
		}
		v.min, v.max, v.domainSet = min, max, true
		return nil
	}
}

// WithDefuzzification selects the method used when the variable is a Mamdani output
func WithDefuzzification(m defuzz.Method) VariableOption {
	return func(v *Variable) error {
		parsed, err := defuzz.Parse(string(m))
		if err != nil {
			return fmt.Errorf("variable %q: %w", v.name, err)
		}
		v.method = parsed
		return nil
	}
}

// WithDefault sets the crisp value returned when no rule fires for this variable
func WithDefault(value float64) VariableOption {
	return func(v *Variable) error {
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return fmt.Errorf("%w: variable %q default is not finite", ErrInvalidModel, v.name)
		}
		v.def = &value
		return nil
	}
}

// NewVariable builds a linguistic variable. Labels must be unique and non-empty.
func NewVariable(name string, adjectives []Adjective, opts ...VariableOption) (*Variable, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: variable name is empty", ErrInvalidModel)
	}
	if len(adjectives) == 0 {
		return nil, fmt.Errorf("%w: variable %q has no adjectives", ErrInvalidModel, name)
	}

	v := &Variable{
		name:       name,
		adjectives: make([]Adjective, 0, len(adjectives)),
		index:      make(map[string]int, len(adjectives)),
		method:     defuzz.COG,
		min:        math.Inf(1),
		max:        math.Inf(-1),
	}

	for _, adj := range adjectives {
		if adj.Label == "" {
			return nil, fmt.Errorf("%w: variable %q has an adjective without label", ErrInvalidModel, name)
		}
		if adj.Function == nil {
			return nil, fmt.Errorf("%w: adjective %q on %q has no membership function", ErrInvalidModel, adj.Label, name)
		}
		if _, dup := v.index[adj.Label]; dup {
			return nil, fmt.Errorf("%w: %q on variable %q", ErrDuplicateAdjective, adj.Label, name)
		}
		v.index[adj.Label] = len(v.adjectives)
		v.adjectives = append(v.adjectives, adj)

		lo, hi := adj.Function.Support()
		v.min = math.Min(v.min, lo)
		v.max = math.Max(v.max, hi)
	}

	for _, opt := range opts {
		if err := opt(v); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// Name returns the variable name
func (v *Variable) Name() string { return v.name }

// Unit returns the cosmetic unit, possibly empty
func (v *Variable) Unit() string { return v.unit }

// Defuzzification returns the configured method
func (v *Variable) Defuzzification() defuzz.Method { return v.method }

// Default returns the configured default and whether one is set
func (v *Variable) Default() (float64, bool) {
	if v.def == nil {
		return 0, false
	}
	return *v.def, true
}

// Domain returns the crisp domain used for output sampling
func (v *Variable) Domain() (float64, float64) { return v.min, v.max }

// Adjectives returns the adjectives in declaration order
func (v *Variable) Adjectives() []Adjective {
	out := make([]Adjective, len(v.adjectives))
	copy(out, v.adjectives)
	return out
}

// Adjective looks up an adjective by label
func (v *Variable) Adjective(label string) (*Adjective, bool) {
	i, ok := v.index[label]
	if !ok {
		return nil, false
	}
	return &v.adjectives[i], true
}

// Fuzzify evaluates every adjective at the crisp value
func (v *Variable) Fuzzify(x float64) map[string]float64 {
	degrees := make(map[string]float64, len(v.adjectives))
	for _, adj := range v.adjectives {
		degrees[adj.Label] = adj.Function.Evaluate(x)
	}
	return degrees
}
