/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: utils_test.go
Description: Tests for command input parsing.
*/

package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kleascm/akaylee-fuzzy/cmd/fuzzy/commands"
)

// TestParseInputs tests name=value parsing
func TestParseInputs(t *testing.T) {
	inputs, err := commands.ParseInputs([]string{"speed=110", " visibility = 2.5 ", "temp=-3e1"})
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"speed": 110, "visibility": 2.5, "temp": -30}, inputs)

	inputs, err = commands.ParseInputs(nil)
	require.NoError(t, err)
	assert.Empty(t, inputs)

	for _, bad := range [][]string{
		{"speed"},
		{"=1"},
		{"speed=fast"},
		{"speed=1", "speed=2"},
	} {
		_, err := commands.ParseInputs(bad)
		assert.Error(t, err, "%v", bad)
	}
}
