/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: errors.go
Description: Typed errors returned by model building and inference. Every error kind has a
sentinel usable with errors.Is and a struct carrying the offending name for errors.As.
*/

package fuzzy

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownReference   = errors.New("unknown reference")
	ErrRuleSyntax         = errors.New("rule syntax error")
	ErrMissingInput       = errors.New("missing input")
	ErrNoRuleFired        = errors.New("no rule fired")
	ErrInvalidInput       = errors.New("invalid input")
	ErrDuplicateVariable  = errors.New("duplicate variable")
	ErrDuplicateAdjective = errors.New("duplicate adjective")
	ErrMixedConsequents   = errors.New("mixed consequents in rule block")
	ErrEmptyBlock         = errors.New("rule block has no rules")
	ErrFrozenBlock        = errors.New("rule block is attached to a system")
	ErrInvalidModel       = errors.New("invalid model")
)

// UnknownReferenceError reports a rule naming a variable or adjective that was never defined
type UnknownReferenceError struct {
	Kind     string // "variable" or "adjective"
	Name     string
	Variable string // owning variable when Kind is "adjective"
}

func (e *UnknownReferenceError) Error() string {
	if e.Kind == "adjective" {
		return fmt.Sprintf("unknown reference: adjective %q on variable %q", e.Name, e.Variable)
	}
	return fmt.Sprintf("unknown reference: %s %q", e.Kind, e.Name)
}

func (e *UnknownReferenceError) Is(target error) bool { return target == ErrUnknownReference }

// RuleSyntaxError reports malformed rule text and the token it failed on
type RuleSyntaxError struct {
	Rule   string
	Token  string
	Pos    int
	Reason string
}

func (e *RuleSyntaxError) Error() string {
	return fmt.Sprintf("rule syntax error at position %d near %q: %s", e.Pos, e.Token, e.Reason)
}

func (e *RuleSyntaxError) Is(target error) bool { return target == ErrRuleSyntax }

// MissingInputError reports a compute call without a value for a referenced variable
type MissingInputError struct {
	Variable string
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("missing input: %q", e.Variable)
}

func (e *MissingInputError) Is(target error) bool { return target == ErrMissingInput }

// NoRuleFiredError reports a zero total firing strength with no usable default
type NoRuleFiredError struct {
	Block    string
	Variable string
}

func (e *NoRuleFiredError) Error() string {
	return fmt.Sprintf("no rule fired in block %q for %q", e.Block, e.Variable)
}

func (e *NoRuleFiredError) Is(target error) bool { return target == ErrNoRuleFired }
