/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: operators_test.go
Description: Tests for fuzzy operator parsing and application.
*/

package operators_test

import (
	"testing"

	"github.com/kleascm/akaylee-fuzzy/pkg/operators"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestOperatorApply tests every operator on a fixed pair of degrees
func TestOperatorApply(t *testing.T) {
	a, b := 0.75, 0.5

	assert.Equal(t, 0.5, operators.AndMin.Apply(a, b))
	assert.Equal(t, 0.375, operators.AndProd.Apply(a, b))
	assert.Equal(t, 0.25, operators.AndBDif.Apply(a, b))
	assert.Equal(t, 0.0, operators.AndBDif.Apply(0.25, 0.5))

	assert.Equal(t, 0.75, operators.OrMax.Apply(a, b))
	assert.Equal(t, 0.875, operators.OrProbOr.Apply(a, b))
	assert.Equal(t, 1.0, operators.OrBSum.Apply(a, b))

	assert.Equal(t, 0.25, operators.NegationZadeh.Apply(a))

	assert.Equal(t, 0.5, operators.ImplicationMin.Apply(a, b))
	assert.Equal(t, 0.375, operators.ImplicationProd.Apply(a, b))

	assert.Equal(t, 0.75, operators.AccumulationMax.Apply(a, b))
	assert.Equal(t, 1.0, operators.AccumulationBSum.Apply(a, b))
	assert.Equal(t, 0.875, operators.AccumulationProbOr.Apply(a, b))
}

// TestParseSet tests configuration parsing with defaults and case folding
func TestParseSet(t *testing.T) {
	s, err := operators.ParseSet("min", "Max", "zadeh", "", "")
	require.NoError(t, err)
	assert.Equal(t, operators.Default(), s)
	require.NoError(t, s.Validate())

	s, err = operators.ParseSet("prod", "probor", "", "prod", "bsum")
	require.NoError(t, err)
	assert.Equal(t, operators.AndProd, s.And)
	assert.Equal(t, operators.OrProbOr, s.Or)
	assert.Equal(t, operators.ImplicationProd, s.Implication)
	assert.Equal(t, operators.AccumulationBSum, s.Accumulation)
}

// TestParseUnknownOperators tests that unknown names are rejected
func TestParseUnknownOperators(t *testing.T) {
	cases := map[string][5]string{
		"and":          {"AVG", "", "", "", ""},
		"or":           {"", "XOR", "", "", ""},
		"not":          {"", "", "SUGENO", "", ""},
		"implication":  {"", "", "", "LUKASIEWICZ", ""},
		"accumulation": {"", "", "", "", "SUM"},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := operators.ParseSet(c[0], c[1], c[2], c[3], c[4])
			assert.ErrorIs(t, err, operators.ErrUnknownOperator)
		})
	}

	bad := operators.Default()
	bad.Accumulation = "NOPE"
	assert.ErrorIs(t, bad.Validate(), operators.ErrUnknownOperator)
}
