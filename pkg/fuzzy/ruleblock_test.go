/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: ruleblock_test.go
Description: Tests for rule blocks: structured and textual rules, consequent homogeneity,
registry ownership and freezing.
*/

package fuzzy_test

import (
	"testing"

	"github.com/kleascm/akaylee-fuzzy/pkg/fuzzy"
	"github.com/kleascm/akaylee-fuzzy/pkg/operators"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRuleBlockTextRules tests appending parsed rules and the derived names
func TestRuleBlockTextRules(t *testing.T) {
	reg := newClimate(t)
	block, err := reg.DefineRuleBlock("climate", operators.Default())
	require.NoError(t, err)

	assert.Equal(t, "climate", block.Name())
	assert.Equal(t, operators.Default(), block.Operators())
	assert.Zero(t, block.Kind())

	require.NoError(t, block.AddRules(
		"if temp is cold then fan is slow",
		"if temp is warm or temp is hot then fan is fast",
	))

	assert.Equal(t, fuzzy.FuzzyKind, block.Kind())
	assert.Len(t, block.Rules(), 2)
	assert.Equal(t, []string{"temp"}, block.Inputs())
	assert.Equal(t, []string{"fan"}, block.Outputs())
	assert.Empty(t, block.Target())

	// Rules returns a copy
	rules := block.Rules()
	rules[0] = nil
	assert.NotNil(t, block.Rules()[0])
}

// TestRuleBlockStructuredRules tests rules built without text
func TestRuleBlockStructuredRules(t *testing.T) {
	reg := newClimate(t)
	temp, err := reg.Variable("temp")
	require.NoError(t, err)
	fan, err := reg.Variable("fan")
	require.NoError(t, err)

	cold, err := fuzzy.Is(temp, "cold")
	require.NoError(t, err)
	hot, err := fuzzy.Is(temp, "hot")
	require.NoError(t, err)
	fast, err := fuzzy.Then(fan, "fast")
	require.NoError(t, err)

	rule, err := fuzzy.NewRule(fuzzy.Or(cold, hot), fast)
	require.NoError(t, err)
	assert.Equal(t, "if temp is cold or temp is hot then fan is fast", rule.String())
	assert.Empty(t, rule.Text)

	block, err := reg.DefineRuleBlock("structured", operators.Default())
	require.NoError(t, err)
	require.NoError(t, block.Add(rule))

	_, err = fuzzy.Is(temp, "lukewarm")
	assert.ErrorIs(t, err, fuzzy.ErrUnknownReference)
	_, err = fuzzy.NewRule(nil, fast)
	assert.ErrorIs(t, err, fuzzy.ErrInvalidModel)
	assert.ErrorIs(t, block.Add(&fuzzy.Rule{}), fuzzy.ErrInvalidModel)
}

// TestRuleBlockForeignVariable tests rejecting variables from another registry
func TestRuleBlockForeignVariable(t *testing.T) {
	reg := newClimate(t)
	other := newClimate(t)

	otherTemp, err := other.Variable("temp")
	require.NoError(t, err)
	fan, err := reg.Variable("fan")
	require.NoError(t, err)

	atom, err := fuzzy.Is(otherTemp, "warm")
	require.NoError(t, err)
	then, err := fuzzy.Then(fan, "slow")
	require.NoError(t, err)
	rule, err := fuzzy.NewRule(atom, then)
	require.NoError(t, err)

	block, err := reg.DefineRuleBlock("climate", operators.Default())
	require.NoError(t, err)
	assert.ErrorIs(t, block.Add(rule), fuzzy.ErrUnknownReference)
}

// TestRuleBlockMixedConsequents tests kind and target homogeneity
func TestRuleBlockMixedConsequents(t *testing.T) {
	reg := newClimate(t)

	block, err := reg.DefineRuleBlock("mixed", operators.Default())
	require.NoError(t, err)
	_, err = block.AddRule("if temp is cold then fan is slow")
	require.NoError(t, err)
	_, err = block.AddRule("if temp is warm then z = 2*temp")
	assert.ErrorIs(t, err, fuzzy.ErrMixedConsequents)

	linear, err := reg.DefineRuleBlock("linear", operators.Default())
	require.NoError(t, err)
	_, err = linear.AddRule("if temp is warm then z = 2*temp")
	require.NoError(t, err)
	assert.Equal(t, "z", linear.Target())
	assert.Equal(t, fuzzy.LinearKind, linear.Kind())

	_, err = linear.AddRule("if temp is hot then y = temp")
	assert.ErrorIs(t, err, fuzzy.ErrMixedConsequents)
	_, err = linear.AddRule("if temp is hot then fan is fast")
	assert.ErrorIs(t, err, fuzzy.ErrMixedConsequents)
	assert.Len(t, linear.Rules(), 1)
}

// TestRuleBlockErrorsWrapBlockName tests that parse failures name the block
func TestRuleBlockErrorsWrapBlockName(t *testing.T) {
	reg := newClimate(t)
	block, err := reg.DefineRuleBlock("climate", operators.Default())
	require.NoError(t, err)

	err = block.AddRules("if temp is warm then fan is fast", "if temp is then fan is fast")
	require.Error(t, err)
	assert.ErrorIs(t, err, fuzzy.ErrRuleSyntax)
	assert.Contains(t, err.Error(), `"climate"`)
	assert.Len(t, block.Rules(), 1)
}

// TestRuleBlockOperatorValidation tests rejecting unknown operators
func TestRuleBlockOperatorValidation(t *testing.T) {
	reg := newClimate(t)

	ops := operators.Default()
	ops.And = "XOR"
	_, err := reg.DefineRuleBlock("bad", ops)
	assert.ErrorIs(t, err, operators.ErrUnknownOperator)

	_, err = reg.DefineRuleBlock("", operators.Default())
	assert.ErrorIs(t, err, fuzzy.ErrInvalidModel)
}

// TestRuleBlockFrozen tests that attaching a block to a system freezes it
func TestRuleBlockFrozen(t *testing.T) {
	reg := newClimate(t)
	block, err := reg.DefineRuleBlock("climate", operators.Default())
	require.NoError(t, err)
	_, err = block.AddRule("if temp is warm then fan is medium")
	require.NoError(t, err)

	_, err = fuzzy.NewMamdaniSystem("climate", []*fuzzy.RuleBlock{block})
	require.NoError(t, err)

	_, err = block.AddRule("if temp is hot then fan is fast")
	assert.ErrorIs(t, err, fuzzy.ErrFrozenBlock)
	assert.Len(t, block.Rules(), 1)
}
