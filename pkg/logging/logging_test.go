/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: logging_test.go
Description: Tests for the logging system. Tests logger creation, formats, file output,
retention and the inference log helpers.
*/

package logging_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kleascm/akaylee-fuzzy/pkg/fuzzy"
	"github.com/kleascm/akaylee-fuzzy/pkg/logging"
	"github.com/kleascm/akaylee-fuzzy/pkg/models"
)

func newBufferLogger(t *testing.T, format logging.LogFormat) (*logging.Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger, err := logging.NewLogger(&logging.LoggerConfig{
		Level:   logging.LogLevelDebug,
		Format:  format,
		Console: &buf,
	})
	require.NoError(t, err)
	return logger, &buf
}

// TestLoggerCreation tests logger creation with different configurations
func TestLoggerCreation(t *testing.T) {
	logger, err := logging.NewLogger(nil)
	require.NoError(t, err)
	assert.Empty(t, logger.FilePath())
	assert.NoError(t, logger.Close())

	dir := t.TempDir()
	logger, err = logging.NewLogger(&logging.LoggerConfig{
		Level:     logging.LogLevelDebug,
		Format:    logging.LogFormatJSON,
		OutputDir: dir,
		MaxFiles:  5,
		Caller:    true,
		Console:   &bytes.Buffer{},
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filepath.Base(logger.FilePath()), "akaylee-fuzzy_"))

	logger.Info("hello", map[string]interface{}{"key": "value"})
	require.NoError(t, logger.Close())

	data, err := os.ReadFile(logger.FilePath())
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
}

// TestLoggerConfigValidation tests rejected configurations
func TestLoggerConfigValidation(t *testing.T) {
	cases := []*logging.LoggerConfig{
		{Level: logging.LogLevelInfo, Format: "xml"},
		{Level: "loud", Format: logging.LogFormatText},
		{Level: logging.LogLevelInfo, Format: logging.LogFormatText, OutputDir: t.TempDir(), MaxFiles: 0},
	}
	for _, cfg := range cases {
		_, err := logging.NewLogger(cfg)
		assert.Error(t, err)
	}
}

// TestLogLevels tests level filtering
func TestLogLevels(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.NewLogger(&logging.LoggerConfig{
		Level:   logging.LogLevelWarning,
		Format:  logging.LogFormatText,
		Console: &buf,
	})
	require.NoError(t, err)

	logger.Debug("Debug message", nil)
	logger.Info("Info message", nil)
	logger.Warning("Warning message", map[string]interface{}{"key": "value"})
	logger.Error("Error message", nil)

	out := buf.String()
	assert.NotContains(t, out, "Debug message")
	assert.NotContains(t, out, "Info message")
	assert.Contains(t, out, "Warning message")
	assert.Contains(t, out, "Error message")
}

// TestLogCompute tests the compute helper for both inference kinds
func TestLogCompute(t *testing.T) {
	logger, buf := newBufferLogger(t, logging.LogFormatJSON)

	tomorrow, err := models.NewTomorrow()
	require.NoError(t, err)
	r, err := tomorrow.ComputeBlock(models.TomorrowBlock, map[string]float64{"yesterday": 10, "today": 1})
	require.NoError(t, err)

	logger.LogCompute(tomorrow.Name(), r, time.Millisecond, logrus.Fields{"run_id": "abc"})

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "Rule block computed", line["msg"])
	assert.Equal(t, models.TomorrowSystem, line["system"])
	assert.Equal(t, "abc", line["run_id"])
	assert.InDelta(t, 4.8, line["value"], 1e-9)
	assert.Equal(t, float64(1), line["fired"])

	buf.Reset()
	r, err = tomorrow.ComputeBlock(models.TomorrowBlock, map[string]float64{"yesterday": 0.5, "today": 0.5})
	require.NoError(t, err)
	logger.LogCompute(tomorrow.Name(), r, time.Millisecond, nil)

	line = map[string]interface{}{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "warning", line["level"])
	assert.Equal(t, []interface{}{"z"}, line["defaulted"])
}

// TestLogModelLoaded tests model summary fields
func TestLogModelLoaded(t *testing.T) {
	logger, buf := newBufferLogger(t, logging.LogFormatJSON)

	accident, err := models.NewAccident(fuzzy.WithResolution(200))
	require.NoError(t, err)
	logger.LogModelLoaded(accident, "builtin", nil)

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "Model loaded", line["msg"])
	assert.Equal(t, "mamdani", line["kind"])
	assert.Equal(t, float64(len(models.AccidentRules)), line["rules"])
	assert.Equal(t, float64(200), line["resolution"])
}

// TestInferenceFormatter tests category prefixes and compact values
func TestInferenceFormatter(t *testing.T) {
	logger, buf := newBufferLogger(t, logging.LogFormatCustom)

	logger.LogSweep("0123456789abcdef", "model_takagi", "rb_takagi", 121, 3, time.Second, nil)
	out := buf.String()
	assert.Contains(t, out, "INFO [SWEEP] Surface sweep completed")
	assert.Contains(t, out, "sweep_id=01234567 ")
	assert.Contains(t, out, "defaulted=3")

	buf.Reset()
	logger.LogCompute("m", fuzzy.Result{
		Block:     "b",
		Kind:      fuzzy.Mamdani,
		Outputs:   map[string]float64{"risk": 0.5, "alarm": 1.0 / 3},
		Strengths: []float64{0, 1},
	}, time.Millisecond, nil)
	out = buf.String()
	assert.Contains(t, out, "[COMPUTE]")
	assert.Contains(t, out, "outputs={alarm:0.333333,risk:0.5}")

	// Fields render in key order
	assert.Less(t, strings.Index(out, "block="), strings.Index(out, "system="))
}

// TestCustomFormatter tests the plain formatter directly
func TestCustomFormatter(t *testing.T) {
	formatter := &logging.CustomFormatter{}
	entry := &logrus.Entry{
		Level:   logrus.ErrorLevel,
		Message: "failed",
		Data: logrus.Fields{
			"err":     errors.New("boom"),
			"elapsed": 1500 * time.Millisecond,
		},
	}
	out, err := formatter.Format(entry)
	require.NoError(t, err)
	assert.Equal(t, "ERROR failed elapsed=1.5s err=boom\n", string(out))
}

// TestLogManager tests retention
func TestLogManager(t *testing.T) {
	logDir := t.TempDir()
	manager := logging.NewLogManager(logDir, 3)

	testFiles := []string{
		"akaylee-fuzzy_2024-01-01_10-00-00.log",
		"akaylee-fuzzy_2024-01-01_11-00-00.log",
		"akaylee-fuzzy_2024-01-01_12-00-00.log",
		"akaylee-fuzzy_2024-01-01_13-00-00.log",
		"unrelated.log",
	}
	for _, name := range testFiles {
		require.NoError(t, os.WriteFile(filepath.Join(logDir, name), []byte("x"), 0644))
	}

	require.NoError(t, manager.CleanupOldLogs())

	files, err := filepath.Glob(filepath.Join(logDir, "akaylee-fuzzy_*.log"))
	require.NoError(t, err)
	require.Len(t, files, 3)
	assert.Equal(t, "akaylee-fuzzy_2024-01-01_11-00-00.log", filepath.Base(files[0]))
	assert.FileExists(t, filepath.Join(logDir, "unrelated.log"))
}
