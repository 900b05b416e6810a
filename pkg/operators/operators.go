/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: operators.go
Description: Fuzzy operator families for rule blocks. AND (t-norms), OR (s-norms),
implication/activation and accumulation operators are tagged enums parsed from their
configuration names and applied as pure functions on membership degrees.
*/

package operators

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrUnknownOperator is returned when an operator name is not recognised
var ErrUnknownOperator = errors.New("unknown operator")

// And combines two degrees conjunctively
type And string

const (
	AndMin  And = "MIN"
	AndProd And = "PROD"
	AndBDif And = "BDIF" // bounded difference, max(0, a+b-1)
)

// Or combines two degrees disjunctively
type Or string

const (
	OrMax    Or = "MAX"
	OrProbOr Or = "PROBOR" // algebraic sum, a+b-ab
	OrBSum   Or = "BSUM"   // bounded sum, min(1, a+b)
)

// Implication clips a consequent degree by a firing strength
type Implication string

const (
	ImplicationMin  Implication = "MIN"
	ImplicationProd Implication = "PROD"
)

// Accumulation merges activated consequents of the same output variable
type Accumulation string

const (
	AccumulationMax    Accumulation = "MAX"
	AccumulationBSum   Accumulation = "BSUM"
	AccumulationProbOr Accumulation = "PROBOR"
)

// Negation is the complement operator. Rules have no negation syntax; it is carried so
// operator tuples written as (AND, OR, NOT) are accepted.
type Negation string

const (
	NegationZadeh Negation = "ZADEH"
)

// Set bundles the operator configuration of one rule block
type Set struct {
	And          And          `json:"and" yaml:"and"`
	Or           Or           `json:"or" yaml:"or"`
	Not          Negation     `json:"not,omitempty" yaml:"not,omitempty"`
	Implication  Implication  `json:"implication" yaml:"implication"`
	Accumulation Accumulation `json:"accumulation" yaml:"accumulation"`
}

// Default returns the Zadeh operator set: MIN, MAX, ZADEH, MIN activation, MAX accumulation
func Default() Set {
	return Set{
		And:          AndMin,
		Or:           OrMax,
		Not:          NegationZadeh,
		Implication:  ImplicationMin,
		Accumulation: AccumulationMax,
	}
}

// Validate checks that every operator in the set is known
func (s Set) Validate() error {
	if _, err := ParseAnd(string(s.And)); err != nil {
		return err
	}
	if _, err := ParseOr(string(s.Or)); err != nil {
		return err
	}
	if s.Not != "" {
		if _, err := ParseNegation(string(s.Not)); err != nil {
			return err
		}
	}
	if _, err := ParseImplication(string(s.Implication)); err != nil {
		return err
	}
	if _, err := ParseAccumulation(string(s.Accumulation)); err != nil {
		return err
	}
	return nil
}

// ParseSet builds a Set from configuration names. Empty names fall back to the defaults.
func ParseSet(and, or, not, implication, accumulation string) (Set, error) {
	def := Default()
	var (
		s   Set
		err error
	)
	if s.And, err = ParseAnd(orDefault(and, string(def.And))); err != nil {
		return Set{}, err
	}
	if s.Or, err = ParseOr(orDefault(or, string(def.Or))); err != nil {
		return Set{}, err
	}
	if s.Not, err = ParseNegation(orDefault(not, string(def.Not))); err != nil {
		return Set{}, err
	}
	if s.Implication, err = ParseImplication(orDefault(implication, string(def.Implication))); err != nil {
		return Set{}, err
	}
	if s.Accumulation, err = ParseAccumulation(orDefault(accumulation, string(def.Accumulation))); err != nil {
		return Set{}, err
	}
	return s, nil
}

// ParseAnd parses a case-insensitive AND operator name
func ParseAnd(name string) (And, error) {
	switch op := And(strings.ToUpper(strings.TrimSpace(name))); op {
	case AndMin, AndProd, AndBDif:
		return op, nil
	}
	return "", fmt.Errorf("%w: and %q", ErrUnknownOperator, name)
}

// ParseOr parses a case-insensitive OR operator name
func ParseOr(name string) (Or, error) {
	switch op := Or(strings.ToUpper(strings.TrimSpace(name))); op {
	case OrMax, OrProbOr, OrBSum:
		return op, nil
	}
	return "", fmt.Errorf("%w: or %q", ErrUnknownOperator, name)
}

// ParseNegation parses a case-insensitive negation operator name
func ParseNegation(name string) (Negation, error) {
	switch op := Negation(strings.ToUpper(strings.TrimSpace(name))); op {
	case NegationZadeh:
		return op, nil
	}
	return "", fmt.Errorf("%w: not %q", ErrUnknownOperator, name)
}

// ParseImplication parses a case-insensitive implication operator name
func ParseImplication(name string) (Implication, error) {
	switch op := Implication(strings.ToUpper(strings.TrimSpace(name))); op {
	case ImplicationMin, ImplicationProd:
		return op, nil
	}
	return "", fmt.Errorf("%w: implication %q", ErrUnknownOperator, name)
}

// ParseAccumulation parses a case-insensitive accumulation operator name
func ParseAccumulation(name string) (Accumulation, error) {
	switch op := Accumulation(strings.ToUpper(strings.TrimSpace(name))); op {
	case AccumulationMax, AccumulationBSum, AccumulationProbOr:
		return op, nil
	}
	return "", fmt.Errorf("%w: accumulation %q", ErrUnknownOperator, name)
}

// Apply returns a AND b
func (op And) Apply(a, b float64) float64 {
	switch op {
	case AndProd:
		return a * b
	case AndBDif:
		return math.Max(0, a+b-1)
	default:
		return math.Min(a, b)
	}
}

// Apply returns a OR b
func (op Or) Apply(a, b float64) float64 {
	switch op {
	case OrProbOr:
		return a + b - a*b
	case OrBSum:
		return math.Min(1, a+b)
	default:
		return math.Max(a, b)
	}
}

// Apply returns the complement of a
func (op Negation) Apply(a float64) float64 {
	return 1 - a
}

// Apply activates a consequent degree with the rule's firing strength
func (op Implication) Apply(strength, degree float64) float64 {
	if op == ImplicationProd {
		return strength * degree
	}
	return math.Min(strength, degree)
}

// Apply merges an activated degree into the accumulated value
func (op Accumulation) Apply(acc, degree float64) float64 {
	switch op {
	case AccumulationBSum:
		return math.Min(1, acc+degree)
	case AccumulationProbOr:
		return acc + degree - acc*degree
	default:
		return math.Max(acc, degree)
	}
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
