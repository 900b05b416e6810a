/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: sweep_test.go
Description: Tests for grid sweeps over the built-in models.
*/

package sweep_test

import (
	"context"
	"testing"

	"github.com/kleascm/akaylee-fuzzy/pkg/fuzzy"
	"github.com/kleascm/akaylee-fuzzy/pkg/models"
	"github.com/kleascm/akaylee-fuzzy/pkg/sweep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseAxis tests the name:min:max:steps form
func TestParseAxis(t *testing.T) {
	a, err := sweep.ParseAxis("yesterday:0:20:21")
	require.NoError(t, err)
	assert.Equal(t, sweep.Axis{Variable: "yesterday", Min: 0, Max: 20, Steps: 21}, a)

	values := a.Values()
	require.Len(t, values, 21)
	assert.Equal(t, 0.0, values[0])
	assert.Equal(t, 20.0, values[20])
	assert.InDelta(t, 1.0, values[1], 1e-12)

	for _, bad := range []string{"", "x:0:1", "x:a:1:5", "x:0:b:5", "x:0:1:c", ":0:1:5", "x:1:0:5", "x:0:1:1"} {
		_, err := sweep.ParseAxis(bad)
		assert.Error(t, err, bad)
	}
}

// TestRunSugeno tests that every grid point matches a direct compute
func TestRunSugeno(t *testing.T) {
	sys, err := models.NewTomorrow()
	require.NoError(t, err)

	surface, err := sweep.Run(context.Background(), sys, sweep.Config{
		X:       sweep.Axis{Variable: "yesterday", Min: 0, Max: 20, Steps: 11},
		Y:       sweep.Axis{Variable: "today", Min: 0, Max: 20, Steps: 6},
		Workers: 3,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, surface.ID)
	assert.Equal(t, models.TomorrowSystem, surface.System)
	assert.Equal(t, models.TomorrowBlock, surface.Block)
	assert.Equal(t, "z", surface.Output)
	require.Len(t, surface.Z, 6)

	for j, y := range surface.Y {
		require.Len(t, surface.Z[j], 11)
		for i, x := range surface.X {
			r, err := sys.ComputeBlock(models.TomorrowBlock, map[string]float64{"yesterday": x, "today": y})
			require.NoError(t, err)
			assert.Equal(t, r.Value, surface.Z[j][i], "yesterday=%v today=%v", x, y)
		}
	}

	// yesterday=today=0 sits left of every low set's first vertex, so no rule fires there
	assert.Greater(t, surface.Defaulted, 0)
}

// TestRunMamdani tests a sweep resolving the single Mamdani output
func TestRunMamdani(t *testing.T) {
	sys, err := models.NewAccident()
	require.NoError(t, err)

	surface, err := sweep.Run(context.Background(), sys, sweep.Config{
		Block: models.AccidentBlock,
		X:     sweep.Axis{Variable: "speed", Min: 0, Max: 200, Steps: 5},
		Y:     sweep.Axis{Variable: "visibility", Min: 0, Max: 4, Steps: 3},
	})
	require.NoError(t, err)
	assert.Equal(t, "accident", surface.Output)

	r, err := sys.ComputeBlock(models.AccidentBlock, map[string]float64{"speed": 100, "visibility": 2})
	require.NoError(t, err)
	assert.Equal(t, r.Outputs["accident"], surface.Z[1][2])
}

// TestRunErrors tests configuration and evaluation failures
func TestRunErrors(t *testing.T) {
	sys, err := models.NewAccident()
	require.NoError(t, err)
	ctx := context.Background()

	speed := sweep.Axis{Variable: "speed", Min: 0, Max: 200, Steps: 3}
	vis := sweep.Axis{Variable: "visibility", Min: 0, Max: 4, Steps: 3}

	_, err = sweep.Run(ctx, sys, sweep.Config{X: speed, Y: speed})
	assert.Error(t, err)

	_, err = sweep.Run(ctx, sys, sweep.Config{Block: "nope", X: speed, Y: vis})
	assert.ErrorIs(t, err, fuzzy.ErrUnknownReference)

	_, err = sweep.Run(ctx, sys, sweep.Config{Output: "severity", X: speed, Y: vis})
	assert.ErrorIs(t, err, fuzzy.ErrUnknownReference)

	// Sweeping an unrelated variable leaves visibility unset
	_, err = sweep.Run(ctx, sys, sweep.Config{X: speed, Y: sweep.Axis{Variable: "rain", Min: 0, Max: 1, Steps: 2}})
	assert.ErrorIs(t, err, fuzzy.ErrMissingInput)

	// Fixed inputs fill the gap
	_, err = sweep.Run(ctx, sys, sweep.Config{
		X:     speed,
		Y:     sweep.Axis{Variable: "rain", Min: 0, Max: 1, Steps: 2},
		Fixed: map[string]float64{"visibility": 1},
	})
	assert.NoError(t, err)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = sweep.Run(cancelled, sys, sweep.Config{X: speed, Y: vis})
	assert.ErrorIs(t, err, context.Canceled)
}
