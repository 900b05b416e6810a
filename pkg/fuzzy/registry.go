/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: registry.go
Description: Explicit symbol table for model building. Rule text is resolved against a
Registry constructed by the caller: variable names, adjective labels and optional adjective
aliases. Nothing is looked up from ambient or global state.
*/

package fuzzy

import (
	"fmt"

	"github.com/kleascm/akaylee-fuzzy/pkg/operators"
)

// Registry maps names to variables and adjectives for rule parsing
type Registry struct {
	variables map[string]*Variable
	order     []string
	aliases   map[string]map[string]string // variable -> alias -> label
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		variables: make(map[string]*Variable),
		aliases:   make(map[string]map[string]string),
	}
}

// Define registers a built variable
func (r *Registry) Define(v *Variable) error {
	if v == nil {
		return fmt.Errorf("%w: nil variable", ErrInvalidModel)
	}
	if _, dup := r.variables[v.name]; dup {
		return fmt.Errorf("%w: %q", ErrDuplicateVariable, v.name)
	}
	r.variables[v.name] = v
	r.order = append(r.order, v.name)
	return nil
}

// DefineVariable builds and registers a variable in one step
func (r *Registry) DefineVariable(name string, adjectives []Adjective, opts ...VariableOption) (*Variable, error) {
	v, err := NewVariable(name, adjectives, opts...)
	if err != nil {
		return nil, err
	}
	if err := r.Define(v); err != nil {
		return nil, err
	}
	return v, nil
}

// Alias lets rules refer to the adjective label of variable by another name
func (r *Registry) Alias(alias, variable, label string) error {
	v, err := r.Variable(variable)
	if err != nil {
		return err
	}
	if _, ok := v.Adjective(label); !ok {
		return &UnknownReferenceError{Kind: "adjective", Name: label, Variable: variable}
	}
	if existing, ok := v.Adjective(alias); ok && existing.Label != label {
		return fmt.Errorf("%w: alias %q shadows adjective on %q", ErrDuplicateAdjective, alias, variable)
	}
	if r.aliases[variable] == nil {
		r.aliases[variable] = make(map[string]string)
	}
	if prev, ok := r.aliases[variable][alias]; ok && prev != label {
		return fmt.Errorf("%w: alias %q on %q already names %q", ErrDuplicateAdjective, alias, variable, prev)
	}
	r.aliases[variable][alias] = label
	return nil
}

// Variable resolves a variable name
func (r *Registry) Variable(name string) (*Variable, error) {
	v, ok := r.variables[name]
	if !ok {
		return nil, &UnknownReferenceError{Kind: "variable", Name: name}
	}
	return v, nil
}

// Adjective resolves an adjective label or alias on the named variable
func (r *Registry) Adjective(variable, name string) (*Variable, *Adjective, error) {
	v, err := r.Variable(variable)
	if err != nil {
		return nil, nil, err
	}
	if adj, ok := v.Adjective(name); ok {
		return v, adj, nil
	}
	if label, ok := r.aliases[variable][name]; ok {
		if adj, ok := v.Adjective(label); ok {
			return v, adj, nil
		}
	}
	return nil, nil, &UnknownReferenceError{Kind: "adjective", Name: name, Variable: variable}
}

// Variables returns registered variables in definition order
func (r *Registry) Variables() []*Variable {
	out := make([]*Variable, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.variables[name])
	}
	return out
}

// owns reports whether v is the variable registered under its name
func (r *Registry) owns(v *Variable) bool {
	return v != nil && r.variables[v.name] == v
}

// DefineRuleBlock creates an empty rule block whose rules resolve against this registry
func (r *Registry) DefineRuleBlock(name string, ops operators.Set) (*RuleBlock, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: rule block name is empty", ErrInvalidModel)
	}
	if err := ops.Validate(); err != nil {
		return nil, fmt.Errorf("rule block %q: %w", name, err)
	}
	return &RuleBlock{
		name:     name,
		ops:      ops,
		registry: r,
	}, nil
}
