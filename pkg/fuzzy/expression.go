/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: expression.go
Description: Rule antecedent expression tree. Atoms test one variable against one adjective,
inner nodes combine degrees with the rule block's AND and OR operators. Linear expressions
form Takagi-Sugeno consequents evaluated over crisp inputs.
*/

package fuzzy

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kleascm/akaylee-fuzzy/pkg/operators"
)

// Degrees holds fuzzified inputs: variable name -> adjective label -> degree
type Degrees map[string]map[string]float64

// Expression is a node of a rule antecedent
type Expression interface {
	// Evaluate returns the degree to which the expression holds
	Evaluate(degrees Degrees, ops operators.Set) float64
	String() string
	walk(visit func(*Variable, *Adjective))
}

// IsExpr is the atom "variable is adjective"
type IsExpr struct {
	Variable  *Variable
	Adjective *Adjective
}

// AndExpr combines two expressions with the AND operator
type AndExpr struct {
	Left, Right Expression
}

// OrExpr combines two expressions with the OR operator
type OrExpr struct {
	Left, Right Expression
}

// Is builds an atom from a variable and one of its labels
func Is(v *Variable, label string) (*IsExpr, error) {
	if v == nil {
		return nil, fmt.Errorf("%w: nil variable", ErrInvalidModel)
	}
	adj, ok := v.Adjective(label)
	if !ok {
		return nil, &UnknownReferenceError{Kind: "adjective", Name: label, Variable: v.name}
	}
	return &IsExpr{Variable: v, Adjective: adj}, nil
}

// And joins two expressions conjunctively
func And(left, right Expression) *AndExpr { return &AndExpr{Left: left, Right: right} }

// Or joins two expressions disjunctively
func Or(left, right Expression) *OrExpr { return &OrExpr{Left: left, Right: right} }

func (e *IsExpr) Evaluate(degrees Degrees, _ operators.Set) float64 {
	return degrees[e.Variable.name][e.Adjective.Label]
}

func (e *IsExpr) String() string {
	return e.Variable.name + " is " + e.Adjective.Label
}

func (e *IsExpr) walk(visit func(*Variable, *Adjective)) {
	visit(e.Variable, e.Adjective)
}

func (e *AndExpr) Evaluate(degrees Degrees, ops operators.Set) float64 {
	return ops.And.Apply(e.Left.Evaluate(degrees, ops), e.Right.Evaluate(degrees, ops))
}

func (e *AndExpr) String() string {
	return e.Left.String() + " and " + e.Right.String()
}

func (e *AndExpr) walk(visit func(*Variable, *Adjective)) {
	e.Left.walk(visit)
	e.Right.walk(visit)
}

func (e *OrExpr) Evaluate(degrees Degrees, ops operators.Set) float64 {
	return ops.Or.Apply(e.Left.Evaluate(degrees, ops), e.Right.Evaluate(degrees, ops))
}

func (e *OrExpr) String() string {
	return e.Left.String() + " or " + e.Right.String()
}

func (e *OrExpr) walk(visit func(*Variable, *Adjective)) {
	e.Left.walk(visit)
	e.Right.walk(visit)
}

// Term is one summand of a linear expression. A nil Variable makes it a constant.
type Term struct {
	Coefficient float64
	Variable    *Variable
}

// LinearExpression is an ordered sum of terms, e.g. 0.9*yesterday - 0.4*today - 1
type LinearExpression []Term

// Evaluate sums the terms over crisp inputs. Callers validate that every variable is present.
func (l LinearExpression) Evaluate(inputs map[string]float64) float64 {
	var sum float64
	for _, t := range l {
		if t.Variable == nil {
			sum += t.Coefficient
			continue
		}
		sum += t.Coefficient * inputs[t.Variable.name]
	}
	return sum
}

func (l LinearExpression) String() string {
	if len(l) == 0 {
		return "0"
	}
	var b strings.Builder
	for i, t := range l {
		c := t.Coefficient
		switch {
		case i == 0 && c < 0:
			b.WriteString("-")
			c = -c
		case i > 0 && c < 0:
			b.WriteString(" - ")
			c = -c
		case i > 0:
			b.WriteString(" + ")
		}
		num := strconv.FormatFloat(c, 'g', -1, 64)
		if t.Variable == nil {
			b.WriteString(num)
		} else {
			b.WriteString(num + "*" + t.Variable.name)
		}
	}
	return b.String()
}
