/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: rule.go
Description: Rules and consequents. A rule pairs an antecedent expression with either a fuzzy
consequent (Mamdani) or a linear consequent (Takagi-Sugeno).
*/

package fuzzy

import "fmt"

// ConsequentKind distinguishes the two rule families
type ConsequentKind int

const (
	// FuzzyKind consequents name an output adjective
	FuzzyKind ConsequentKind = iota + 1
	// LinearKind consequents compute a linear function of the inputs
	LinearKind
)

func (k ConsequentKind) String() string {
	switch k {
	case FuzzyKind:
		return "fuzzy"
	case LinearKind:
		return "linear"
	default:
		return "unset"
	}
}

// Consequent is the "then" part of a rule
type Consequent interface {
	Kind() ConsequentKind
	String() string
}

// FuzzyConsequent assigns an output adjective
type FuzzyConsequent struct {
	Variable  *Variable
	Adjective *Adjective
}

func (c *FuzzyConsequent) Kind() ConsequentKind { return FuzzyKind }

func (c *FuzzyConsequent) String() string {
	return c.Variable.name + " is " + c.Adjective.Label
}

// LinearConsequent computes Target = Expression
type LinearConsequent struct {
	Target     string
	Expression LinearExpression
}

func (c *LinearConsequent) Kind() ConsequentKind { return LinearKind }

func (c *LinearConsequent) String() string {
	return c.Target + " = " + c.Expression.String()
}

// Then builds a fuzzy consequent from a variable and one of its labels
func Then(v *Variable, label string) (*FuzzyConsequent, error) {
	atom, err := Is(v, label)
	if err != nil {
		return nil, err
	}
	return &FuzzyConsequent{Variable: atom.Variable, Adjective: atom.Adjective}, nil
}

// Rule is one if-then statement of a rule block
type Rule struct {
	Antecedent Expression
	Consequent Consequent
	// Text is the source text when the rule was parsed, empty for structured rules
	Text string
}

// NewRule builds a structured rule
func NewRule(antecedent Expression, consequent Consequent) (*Rule, error) {
	if antecedent == nil || consequent == nil {
		return nil, fmt.Errorf("%w: rule needs an antecedent and a consequent", ErrInvalidModel)
	}
	return &Rule{Antecedent: antecedent, Consequent: consequent}, nil
}

func (r *Rule) String() string {
	return "if " + r.Antecedent.String() + " then " + r.Consequent.String()
}

// inputs calls visit for every variable whose crisp value the rule reads
func (r *Rule) inputs(visit func(*Variable)) {
	r.Antecedent.walk(func(v *Variable, _ *Adjective) { visit(v) })
	if lc, ok := r.Consequent.(*LinearConsequent); ok {
		for _, t := range lc.Expression {
			if t.Variable != nil {
				visit(t.Variable)
			}
		}
	}
}
