/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: formatter.go
Description: Custom log formatters for the Akaylee fuzzy engine. CustomFormatter renders
aligned, optionally colored lines with sorted fields; InferenceFormatter adds a category
prefix for compute, sweep and model events and compact rendering of inference values.
*/

package logging

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// CustomFormatter provides structured, human readable output
type CustomFormatter struct {
	Timestamp bool
	Caller    bool
	Colors    bool
}

// Format formats a log entry
func (f *CustomFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	return f.render(entry, "", f.formatValue), nil
}

func (f *CustomFormatter) render(entry *logrus.Entry, prefix string, value func(string, interface{}) string) []byte {
	var output strings.Builder

	if f.Timestamp {
		f.paint(&output, 36, entry.Time.Format("2006-01-02 15:04:05.000")) // Cyan
		output.WriteString(" ")
	}

	f.paint(&output, f.getLevelColor(entry.Level), strings.ToUpper(entry.Level.String()))
	output.WriteString(" ")

	if prefix != "" {
		f.paint(&output, 35, "["+prefix+"]") // Magenta
		output.WriteString(" ")
	}

	if f.Caller && entry.HasCaller() {
		f.paint(&output, 33, fmt.Sprintf("[%s:%d]", entry.Caller.File, entry.Caller.Line)) // Yellow
		output.WriteString(" ")
	}

	output.WriteString(entry.Message)

	if len(entry.Data) > 0 {
		output.WriteString(" ")
		output.WriteString(f.formatFields(entry.Data, value))
	}

	output.WriteString("\n")
	return []byte(output.String())
}

func (f *CustomFormatter) paint(b *strings.Builder, color int, s string) {
	if f.Colors {
		fmt.Fprintf(b, "\033[%dm%s\033[0m", color, s)
		return
	}
	b.WriteString(s)
}

// getLevelColor returns the ANSI color code for a log level
func (f *CustomFormatter) getLevelColor(level logrus.Level) int {
	switch level {
	case logrus.DebugLevel:
		return 37 // White
	case logrus.InfoLevel:
		return 32 // Green
	case logrus.WarnLevel:
		return 33 // Yellow
	case logrus.ErrorLevel:
		return 31 // Red
	case logrus.FatalLevel, logrus.PanicLevel:
		return 35 // Magenta
	default:
		return 37 // White
	}
}

// formatFields renders fields in key order so lines diff cleanly
func (f *CustomFormatter) formatFields(fields logrus.Fields, value func(string, interface{}) string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		v := value(key, fields[key])
		if f.Colors {
			parts = append(parts, fmt.Sprintf("\033[34m%s\033[0m=\033[32m%s\033[0m", key, v)) // Blue key, Green value
		} else {
			parts = append(parts, fmt.Sprintf("%s=%s", key, v))
		}
	}
	return strings.Join(parts, " ")
}

// formatValue formats a field value appropriately
func (f *CustomFormatter) formatValue(_ string, value interface{}) string {
	switch v := value.(type) {
	case time.Duration:
		return v.String()
	case time.Time:
		return v.Format("15:04:05.000")
	case error:
		return v.Error()
	case string:
		if len(v) > 50 {
			return fmt.Sprintf("%s...", v[:50])
		}
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}

// InferenceFormatter adds inference categories to CustomFormatter output
type InferenceFormatter struct {
	CustomFormatter
}

// Format formats an inference log entry
func (f *InferenceFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	return f.render(entry, f.getPrefix(entry.Message), f.formatInferenceValue), nil
}

// getPrefix returns a category based on the log message
func (f *InferenceFormatter) getPrefix(message string) string {
	switch {
	case strings.HasPrefix(message, "Rule block"):
		return "COMPUTE"
	case strings.HasPrefix(message, "Surface sweep"):
		return "SWEEP"
	case strings.HasPrefix(message, "Model"):
		return "MODEL"
	case strings.HasPrefix(message, "Metrics"):
		return "METRICS"
	default:
		return ""
	}
}

// formatInferenceValue renders crisp values compactly
func (f *InferenceFormatter) formatInferenceValue(key string, value interface{}) string {
	switch v := value.(type) {
	case float64:
		return strconv.FormatFloat(v, 'g', 6, 64)
	case map[string]float64:
		names := make([]string, 0, len(v))
		for name := range v {
			names = append(names, name)
		}
		sort.Strings(names)
		parts := make([]string, len(names))
		for i, name := range names {
			parts[i] = name + ":" + strconv.FormatFloat(v[name], 'g', 6, 64)
		}
		return "{" + strings.Join(parts, ",") + "}"
	case string:
		if key == "sweep_id" && len(v) > 8 {
			return v[:8]
		}
	}
	return f.formatValue(key, value)
}
