/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: models_test.go
Description: End-to-end tests for the built-in accident and forecast models.
*/

package models_test

import (
	"testing"

	"github.com/kleascm/akaylee-fuzzy/pkg/fuzzy"
	"github.com/kleascm/akaylee-fuzzy/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func accidentRisk(t *testing.T, sys *fuzzy.System, speed, visibility float64) fuzzy.Result {
	t.Helper()
	r, err := sys.ComputeBlock(models.AccidentBlock, map[string]float64{
		"speed":      speed,
		"visibility": visibility,
	})
	require.NoError(t, err)
	return r
}

// TestAccidentModelShape tests the block structure of the accident model
func TestAccidentModelShape(t *testing.T) {
	sys, err := models.NewAccident()
	require.NoError(t, err)

	assert.Equal(t, models.AccidentSystem, sys.Name())
	assert.Equal(t, fuzzy.Mamdani, sys.Kind())
	assert.Equal(t, fuzzy.DefaultResolution, sys.Resolution())

	blocks := sys.Blocks()
	require.Len(t, blocks, 1)
	assert.Len(t, blocks[0].Rules(), 10)
	assert.Equal(t, []string{"speed", "visibility"}, blocks[0].Inputs())
	assert.Equal(t, []string{"accident"}, blocks[0].Outputs())
}

// TestAccidentFastAverageVisibility tests a single firing rule at fast speed and average
// visibility. Only "speed is fast and visibility is average" fires, so the clipped
// accident_a set is symmetric on a symmetric domain and the centroid is its peak.
func TestAccidentFastAverageVisibility(t *testing.T) {
	sys, err := models.NewAccident()
	require.NoError(t, err)

	r := accidentRisk(t, sys, 110, 2)
	assert.Equal(t, 1, r.Fired())
	assert.InDelta(t, 30.0/35.0, r.Strengths[5], 1e-12)

	risk, ok := r.Output("accident")
	require.True(t, ok)
	assert.InDelta(t, 0.5, risk, 1e-6)
	assert.Empty(t, r.Defaulted)
}

// TestAccidentBlendedRisk tests two firing rules whose consequents are accident_a and
// accident_b, landing strictly between their peaks
func TestAccidentBlendedRisk(t *testing.T) {
	sys, err := models.NewAccident()
	require.NoError(t, err)

	r := accidentRisk(t, sys, 110, 1)
	assert.Equal(t, 2, r.Fired())
	assert.InDelta(t, 0.5, r.Strengths[4], 1e-12)
	assert.InDelta(t, 0.95/1.95, r.Strengths[5], 1e-12)

	risk := r.Outputs["accident"]
	assert.Greater(t, risk, 0.5)
	assert.Less(t, risk, 0.8)
	assert.InDelta(t, 0.663, risk, 0.005)
}

// TestAccidentNoRuleFires tests the default risk when no speed adjective matches
func TestAccidentNoRuleFires(t *testing.T) {
	sys, err := models.NewAccident()
	require.NoError(t, err)

	r := accidentRisk(t, sys, 5, 2)
	assert.Equal(t, 0, r.Fired())
	assert.Equal(t, 0.0, r.Outputs["accident"])
	assert.Equal(t, []string{"accident"}, r.Defaulted)

	strict, err := models.NewAccident(fuzzy.WithNoFirePolicy(fuzzy.PolicyError))
	require.NoError(t, err)
	_, err = strict.Compute(map[string]float64{"speed": 5, "visibility": 2})
	assert.ErrorIs(t, err, fuzzy.ErrNoRuleFired)
}

// TestAccidentRiskRises tests that poorer visibility never lowers the risk at fast speed
func TestAccidentRiskRises(t *testing.T) {
	sys, err := models.NewAccident()
	require.NoError(t, err)

	good := accidentRisk(t, sys, 120, 3.5).Outputs["accident"]
	poor := accidentRisk(t, sys, 120, 0.5).Outputs["accident"]
	assert.Greater(t, poor, good)
}

// TestTomorrowSingleRule tests a forecast where only one rule fires
func TestTomorrowSingleRule(t *testing.T) {
	sys, err := models.NewTomorrow()
	require.NoError(t, err)
	assert.Equal(t, fuzzy.Sugeno, sys.Kind())

	r, err := sys.ComputeBlock(models.TomorrowBlock, map[string]float64{"yesterday": 10, "today": 1})
	require.NoError(t, err)

	// yesterday is medium (9/9.5) and today is low (0.9): z = 0.4*10 + 0.8*1
	assert.Equal(t, 1, r.Fired())
	assert.InDelta(t, 0.9, r.Strengths[5], 1e-12)
	assert.InDelta(t, 4.8, r.Value, 1e-9)
}

// TestTomorrowWeightedAverage tests a forecast blending two rules
func TestTomorrowWeightedAverage(t *testing.T) {
	sys, err := models.NewTomorrow()
	require.NoError(t, err)

	r, err := sys.ComputeBlock(models.TomorrowBlock, map[string]float64{"yesterday": 10, "today": 12})
	require.NoError(t, err)

	yMedium := 9.0 / 9.5
	tMedium := 1 - 1.5/9.5
	tHigh := 0.2

	w4 := min(yMedium, tMedium)
	w5 := min(yMedium, tHigh)
	z4 := 0.2*10 + 1.0*12
	z5 := 0.9*10 + 0.4*12 + 1

	assert.Equal(t, 2, r.Fired())
	assert.InDelta(t, (w4*z4+w5*z5)/(w4+w5), r.Value, 1e-9)
}

// TestTomorrowNoRuleFires tests the zero default of the forecast
func TestTomorrowNoRuleFires(t *testing.T) {
	sys, err := models.NewTomorrow()
	require.NoError(t, err)

	r, err := sys.ComputeBlock(models.TomorrowBlock, map[string]float64{"yesterday": 0.5, "today": 0.5})
	require.NoError(t, err)
	assert.Equal(t, 0.0, r.Value)
	assert.Equal(t, []string{"z"}, r.Defaulted)

	shifted, err := models.NewTomorrow(fuzzy.WithSugenoDefault(3))
	require.NoError(t, err)
	r, err = shifted.ComputeBlock(models.TomorrowBlock, map[string]float64{"yesterday": 0.5, "today": 0.5})
	require.NoError(t, err)
	assert.Equal(t, 3.0, r.Value)
}

// TestBuiltins tests the lookup of built-in models by name
func TestBuiltins(t *testing.T) {
	assert.Equal(t, []string{"accident", "tomorrow"}, models.Names())

	for _, name := range models.Names() {
		sys, err := models.Build(name, fuzzy.WithResolution(200))
		require.NoError(t, err, name)
		assert.Equal(t, 200, sys.Resolution())
	}

	_, err := models.Build("weather")
	assert.Error(t, err)
}
