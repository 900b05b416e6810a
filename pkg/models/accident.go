/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: accident.go
Description: Built-in Mamdani model estimating accident risk from speed (km/h) and
visibility (km). Ten rules, Zadeh operators, MIN activation and MAX accumulation, centroid
defuzzification with a default risk of 0.
*/

package models

import (
	"github.com/kleascm/akaylee-fuzzy/pkg/defuzz"
	"github.com/kleascm/akaylee-fuzzy/pkg/fuzzy"
	"github.com/kleascm/akaylee-fuzzy/pkg/membership"
	"github.com/kleascm/akaylee-fuzzy/pkg/operators"
)

const (
	AccidentSystem = "mamdani_model"
	AccidentBlock  = "rb_mamdani"
)

// AccidentRules are the rule texts of the accident block. Adjectives are referenced through
// the aliases registered by NewAccidentRegistry.
var AccidentRules = []string{
	"if speed is a_speed_s then accident is a_a_v_s",

	"if speed is a_speed_v_f and visibility is a_v_p then accident is a_a_b",
	"if speed is a_speed_v_f and visibility is a_v_a then accident is a_a_a",
	"if speed is a_speed_v_f and visibility is a_v_g then accident is a_a_s",

	"if speed is a_speed_f and visibility is a_v_p then accident is a_a_b",
	"if speed is a_speed_f and visibility is a_v_a then accident is a_a_a",
	"if speed is a_speed_f and visibility is a_v_g then accident is a_a_s",

	"if speed is a_speed_a and visibility is a_v_a then accident is a_a_a",
	"if speed is a_speed_a and visibility is a_v_p then accident is a_a_b",
	"if speed is a_speed_a and visibility is a_v_g then accident is a_a_s",
}

func tri(x0, y0, x1, y1, x2, y2 float64) membership.Function {
	return membership.MustTriangular(
		membership.Point{X: x0, Y: y0},
		membership.Point{X: x1, Y: y1},
		membership.Point{X: x2, Y: y2},
	)
}

// NewAccidentRegistry defines speed, visibility and accident with their aliases
func NewAccidentRegistry() (*fuzzy.Registry, error) {
	reg := fuzzy.NewRegistry()

	if _, err := reg.DefineVariable("speed", []fuzzy.Adjective{
		{Label: "speed_s", Function: tri(9.9, 0, 0, 1, 50, 0)},
		{Label: "speed_a", Function: tri(40, 0, 70, 1, 100, 0)},
		{Label: "speed_f", Function: tri(80, 0, 115, 1, 150, 0)},
		{Label: "speed_v_f", Function: tri(110, 0, 150, 0, 200.1, 1)},
	}, fuzzy.WithUnit("km/h")); err != nil {
		return nil, err
	}

	if _, err := reg.DefineVariable("visibility", []fuzzy.Adjective{
		{Label: "v_p", Function: tri(0.04, 0, 0, 1, 2, 0)},
		{Label: "v_a", Function: tri(0.05, 0, 2, 1, 4, 0)},
		{Label: "v_g", Function: tri(2, 0, 4, 1, 4.1, 0)},
	}, fuzzy.WithUnit("km")); err != nil {
		return nil, err
	}

	if _, err := reg.DefineVariable("accident", []fuzzy.Adjective{
		{Label: "accident_v_s", Function: tri(-0.1, 0, 0, 1, 0.2, 0)},
		{Label: "accident_s", Function: tri(0, 0, 0.2, 1, 0.4, 0)},
		{Label: "accident_a", Function: tri(0.2, 0, 0.5, 1, 0.8, 0)},
		{Label: "accident_b", Function: tri(0.5, 0, 0.8, 0, 1.1, 1)},
	}, fuzzy.WithUnit("%"), fuzzy.WithDefuzzification(defuzz.COG), fuzzy.WithDefault(0)); err != nil {
		return nil, err
	}

	aliases := [][3]string{
		{"a_speed_s", "speed", "speed_s"},
		{"a_speed_a", "speed", "speed_a"},
		{"a_speed_f", "speed", "speed_f"},
		{"a_speed_v_f", "speed", "speed_v_f"},
		{"a_v_p", "visibility", "v_p"},
		{"a_v_a", "visibility", "v_a"},
		{"a_v_g", "visibility", "v_g"},
		{"a_a_v_s", "accident", "accident_v_s"},
		{"a_a_s", "accident", "accident_s"},
		{"a_a_a", "accident", "accident_a"},
		{"a_a_b", "accident", "accident_b"},
	}
	for _, a := range aliases {
		if err := reg.Alias(a[0], a[1], a[2]); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// NewAccidentBlock builds the ten-rule accident block on reg
func NewAccidentBlock(reg *fuzzy.Registry) (*fuzzy.RuleBlock, error) {
	block, err := reg.DefineRuleBlock(AccidentBlock, operators.Default())
	if err != nil {
		return nil, err
	}
	if err := block.AddRules(AccidentRules...); err != nil {
		return nil, err
	}
	return block, nil
}

// NewAccident builds the complete accident risk system
func NewAccident(opts ...fuzzy.Option) (*fuzzy.System, error) {
	reg, err := NewAccidentRegistry()
	if err != nil {
		return nil, err
	}
	block, err := NewAccidentBlock(reg)
	if err != nil {
		return nil, err
	}
	return fuzzy.NewMamdaniSystem(AccidentSystem, []*fuzzy.RuleBlock{block}, opts...)
}
