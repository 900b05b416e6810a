/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: tomorrow.go
Description: Built-in Takagi-Sugeno model forecasting tomorrow's value from yesterday's and
today's readings. Nine rules with linear consequents combined by weighted average.
*/

package models

import (
	"fmt"
	"sort"

	"github.com/kleascm/akaylee-fuzzy/pkg/defuzz"
	"github.com/kleascm/akaylee-fuzzy/pkg/fuzzy"
	"github.com/kleascm/akaylee-fuzzy/pkg/operators"
)

const (
	TomorrowSystem = "model_takagi"
	TomorrowBlock  = "rb_takagi"
)

// TomorrowRules are the rule texts of the forecast block
var TomorrowRules = []string{
	"if yesterday is a_yesterday_low and today is a_today_low then z=0.9*yesterday-0.4*today-1",
	"if yesterday is a_yesterday_low and today is a_today_medium then z=0.2*yesterday+0.9*today",
	"if yesterday is a_yesterday_low and today is a_today_high then z=0.6*yesterday+0.5*today+1",

	"if yesterday is a_yesterday_medium and today is a_today_medium then z=0.2*yesterday+1.0*today",
	"if yesterday is a_yesterday_medium and today is a_today_high then z=0.9*yesterday+0.4*today+1",
	"if yesterday is a_yesterday_medium and today is a_today_low then z=0.4*yesterday+0.8*today",

	"if yesterday is a_yesterday_high and today is a_today_high then z=0.3*yesterday+1.5*today+1",
	"if yesterday is a_yesterday_high and today is a_today_medium then z=0.4*yesterday+0.7*today",
	"if yesterday is a_yesterday_high and today is a_today_low then z=0.4*yesterday+0.7*today",
}

// NewTomorrowRegistry defines yesterday, today and tomorrow with their aliases
func NewTomorrowRegistry() (*fuzzy.Registry, error) {
	reg := fuzzy.NewRegistry()

	for _, name := range []string{"yesterday", "today"} {
		if _, err := reg.DefineVariable(name, []fuzzy.Adjective{
			{Label: name + "_low", Function: tri(0.9, 0, 0, 1, 10, 0)},
			{Label: name + "_medium", Function: tri(1, 0, 10.5, 1, 20, 0)},
			{Label: name + "_high", Function: tri(10, 0, 20, 1, 20.1, 0)},
		}); err != nil {
			return nil, err
		}
	}

	if _, err := reg.DefineVariable("tomorrow", []fuzzy.Adjective{
		{Label: "tomorrow_low", Function: tri(-0.1, 0, 0, 1, 10, 0)},
		{Label: "tomorrow_medium", Function: tri(0, 0, 10, 1, 20, 0)},
		{Label: "tomorrow_high", Function: tri(10, 0, 20, 1, 20.1, 0)},
	}, fuzzy.WithUnit("%"), fuzzy.WithDefuzzification(defuzz.COG), fuzzy.WithDefault(0)); err != nil {
		return nil, err
	}

	for _, name := range []string{"yesterday", "today", "tomorrow"} {
		for _, level := range []string{"low", "medium", "high"} {
			label := name + "_" + level
			if err := reg.Alias("a_"+label, name, label); err != nil {
				return nil, err
			}
		}
	}
	return reg, nil
}

// NewTomorrowBlock builds the nine-rule forecast block on reg
func NewTomorrowBlock(reg *fuzzy.Registry) (*fuzzy.RuleBlock, error) {
	block, err := reg.DefineRuleBlock(TomorrowBlock, operators.Default())
	if err != nil {
		return nil, err
	}
	if err := block.AddRules(TomorrowRules...); err != nil {
		return nil, err
	}
	return block, nil
}

// NewTomorrow builds the complete forecast system. The block target z is not a declared
// variable, so the forecast falls back to tomorrow's default of 0 unless opts override it.
func NewTomorrow(opts ...fuzzy.Option) (*fuzzy.System, error) {
	reg, err := NewTomorrowRegistry()
	if err != nil {
		return nil, err
	}
	block, err := NewTomorrowBlock(reg)
	if err != nil {
		return nil, err
	}
	opts = append([]fuzzy.Option{fuzzy.WithSugenoDefault(0)}, opts...)
	return fuzzy.NewSugenoSystem(TomorrowSystem, []*fuzzy.RuleBlock{block}, opts...)
}

// Builder constructs a built-in system
type Builder func(opts ...fuzzy.Option) (*fuzzy.System, error)

var builtins = map[string]Builder{
	"accident": NewAccident,
	"tomorrow": NewTomorrow,
}

// Names lists the built-in models
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Build constructs a built-in model by name
func Build(name string, opts ...fuzzy.Option) (*fuzzy.System, error) {
	b, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("unknown built-in model %q (available: %v)", name, Names())
	}
	return b(opts...)
}
