/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: ruleblock.go
Description: Rule blocks. A block is an ordered, homogeneous list of rules sharing one operator
configuration. Rules are appended during model building; once a system takes the block it is
frozen and read concurrently without locking.
*/

package fuzzy

import (
	"fmt"
	"sort"

	"github.com/kleascm/akaylee-fuzzy/pkg/operators"
)

// RuleBlock is a named set of rules evaluated together
type RuleBlock struct {
	name     string
	ops      operators.Set
	registry *Registry
	rules    []*Rule
	kind     ConsequentKind
	target   string // Sugeno output name
	frozen   bool
}

// Name returns the block name
func (b *RuleBlock) Name() string { return b.name }

// Operators returns the operator configuration
func (b *RuleBlock) Operators() operators.Set { return b.ops }

// Kind returns the consequent kind shared by all rules, zero while the block is empty
func (b *RuleBlock) Kind() ConsequentKind { return b.kind }

// Target returns the Sugeno output name, empty for Mamdani blocks
func (b *RuleBlock) Target() string { return b.target }

// Rules returns the rules in insertion order
func (b *RuleBlock) Rules() []*Rule {
	out := make([]*Rule, len(b.rules))
	copy(out, b.rules)
	return out
}

// AddRule parses rule text against the block's registry and appends it
func (b *RuleBlock) AddRule(text string) (*Rule, error) {
	if b.frozen {
		return nil, fmt.Errorf("%w: %q", ErrFrozenBlock, b.name)
	}
	rule, err := ParseRule(text, b.registry)
	if err != nil {
		return nil, fmt.Errorf("rule block %q: %w", b.name, err)
	}
	if err := b.Add(rule); err != nil {
		return nil, err
	}
	return rule, nil
}

// AddRules parses and appends several rules, stopping at the first failure
func (b *RuleBlock) AddRules(texts ...string) error {
	for _, text := range texts {
		if _, err := b.AddRule(text); err != nil {
			return err
		}
	}
	return nil
}

// Add appends a structured rule. Every variable it references must belong to the block's registry.
func (b *RuleBlock) Add(rule *Rule) error {
	if b.frozen {
		return fmt.Errorf("%w: %q", ErrFrozenBlock, b.name)
	}
	if rule == nil || rule.Antecedent == nil || rule.Consequent == nil {
		return fmt.Errorf("%w: incomplete rule", ErrInvalidModel)
	}

	var unknown *Variable
	rule.inputs(func(v *Variable) {
		if unknown == nil && !b.registry.owns(v) {
			unknown = v
		}
	})
	if unknown != nil {
		return fmt.Errorf("rule block %q: %w", b.name, &UnknownReferenceError{Kind: "variable", Name: unknown.name})
	}

	kind := rule.Consequent.Kind()
	if b.kind != 0 && b.kind != kind {
		return fmt.Errorf("%w: %q holds %s rules, got %s", ErrMixedConsequents, b.name, b.kind, kind)
	}

	switch c := rule.Consequent.(type) {
	case *FuzzyConsequent:
		if !b.registry.owns(c.Variable) {
			return fmt.Errorf("rule block %q: %w", b.name, &UnknownReferenceError{Kind: "variable", Name: c.Variable.name})
		}
	case *LinearConsequent:
		if b.target != "" && c.Target != b.target {
			return fmt.Errorf("%w: %q outputs %q, got %q", ErrMixedConsequents, b.name, b.target, c.Target)
		}
		b.target = c.Target
	}

	b.kind = kind
	b.rules = append(b.rules, rule)
	return nil
}

// Inputs returns the sorted names of every variable whose crisp value the block reads
func (b *RuleBlock) Inputs() []string {
	seen := make(map[string]bool)
	for _, r := range b.rules {
		r.inputs(func(v *Variable) { seen[v.name] = true })
	}
	return sortedNames(seen)
}

// Outputs returns the sorted names of the Mamdani output variables
func (b *RuleBlock) Outputs() []string {
	seen := make(map[string]bool)
	for _, r := range b.rules {
		if c, ok := r.Consequent.(*FuzzyConsequent); ok {
			seen[c.Variable.name] = true
		}
	}
	return sortedNames(seen)
}

func sortedNames(set map[string]bool) []string {
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
