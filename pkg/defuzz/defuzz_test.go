/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: defuzz_test.go
Description: Tests for the defuzzification strategies.
*/

package defuzz_test

import (
	"testing"

	"github.com/kleascm/akaylee-fuzzy/pkg/defuzz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCentroid tests the weighted mean and the zero-mass case
func TestCentroid(t *testing.T) {
	xs := []float64{0, 1, 2, 3, 4}

	v, ok := defuzz.Centroid(xs, []float64{0, 0.5, 1, 0.5, 0})
	require.True(t, ok)
	assert.Equal(t, 2.0, v)

	v, ok = defuzz.Centroid(xs, []float64{0, 0, 0, 1, 1})
	require.True(t, ok)
	assert.Equal(t, 3.5, v)

	_, ok = defuzz.Centroid(xs, make([]float64, len(xs)))
	assert.False(t, ok)
}

// TestMeanOfMaximum tests plateau averaging
func TestMeanOfMaximum(t *testing.T) {
	xs := []float64{0, 1, 2, 3, 4}

	v, ok := defuzz.MeanOfMaximum(xs, []float64{0.2, 0.8, 0.8, 0.8, 0.1})
	require.True(t, ok)
	assert.Equal(t, 2.0, v)

	_, ok = defuzz.MeanOfMaximum(xs, make([]float64, len(xs)))
	assert.False(t, ok)
}

// TestBisector tests the half-mass point
func TestBisector(t *testing.T) {
	xs := []float64{0, 1, 2, 3, 4}

	v, ok := defuzz.Bisector(xs, []float64{1, 1, 1, 1, 0})
	require.True(t, ok)
	assert.Equal(t, 1.0, v)

	_, ok = defuzz.Bisector(xs, make([]float64, len(xs)))
	assert.False(t, ok)
}

// TestParseMethod tests names, aliases and strategy dispatch
func TestParseMethod(t *testing.T) {
	for _, name := range []string{"", "cog", "COG", "centroid"} {
		m, err := defuzz.Parse(name)
		require.NoError(t, err, name)
		assert.Equal(t, defuzz.COG, m)
	}

	m, err := defuzz.Parse("mom")
	require.NoError(t, err)
	assert.Equal(t, defuzz.MOM, m)

	m, err = defuzz.Parse("boa")
	require.NoError(t, err)
	assert.Equal(t, defuzz.BOA, m)

	_, err = defuzz.Parse("LOM")
	assert.ErrorIs(t, err, defuzz.ErrUnknownMethod)

	xs := []float64{0, 1, 2}
	mu := []float64{0, 1, 0}
	for _, method := range []defuzz.Method{defuzz.COG, defuzz.MOM, defuzz.BOA} {
		v, ok := method.Strategy()(xs, mu)
		require.True(t, ok, method)
		assert.Equal(t, 1.0, v, method)
	}
}
