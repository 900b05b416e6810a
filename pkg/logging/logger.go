/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: logger.go
Description: Logging system for the Akaylee fuzzy engine. Provides structured logging with
timestamped files, multiple output formats and helpers for model loading, rule block
evaluation and surface sweeps. Log lines go to stderr so command output on stdout stays clean.
*/

package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/kleascm/akaylee-fuzzy/pkg/fuzzy"
)

// LogLevel represents the logging level
type LogLevel string

const (
	LogLevelDebug   LogLevel = "debug"
	LogLevelInfo    LogLevel = "info"
	LogLevelWarning LogLevel = "warn"
	LogLevelError   LogLevel = "error"
	LogLevelFatal   LogLevel = "fatal"
)

// LogFormat represents the logging format
type LogFormat string

const (
	LogFormatJSON   LogFormat = "json"
	LogFormatText   LogFormat = "text"
	LogFormatCustom LogFormat = "custom"
)

const filePrefix = "akaylee-fuzzy_"

// LoggerConfig holds the configuration for the logger
type LoggerConfig struct {
	Level     LogLevel  `json:"level" mapstructure:"level"`
	Format    LogFormat `json:"format" mapstructure:"format"`
	OutputDir string    `json:"output_dir" mapstructure:"output_dir"` // empty disables file output
	MaxFiles  int       `json:"max_files" mapstructure:"max_files"`
	Timestamp bool      `json:"timestamp" mapstructure:"timestamp"`
	Caller    bool      `json:"caller" mapstructure:"caller"`
	Colors    bool      `json:"colors" mapstructure:"colors"`

	// Console receives log lines besides the file; nil means stderr
	Console io.Writer `json:"-" mapstructure:"-"`
}

// DefaultConfig returns a text logger at info level without file output
func DefaultConfig() *LoggerConfig {
	return &LoggerConfig{
		Level:     LogLevelInfo,
		Format:    LogFormatText,
		MaxFiles:  10,
		Timestamp: true,
	}
}

// Validate checks the LoggerConfig for invalid values
func (c *LoggerConfig) Validate() error {
	if c.OutputDir != "" && c.MaxFiles <= 0 {
		return fmt.Errorf("max_files must be positive")
	}
	switch c.Format {
	case LogFormatJSON, LogFormatText, LogFormatCustom:
		// ok
	default:
		return fmt.Errorf("unsupported log format: %s", c.Format)
	}
	switch c.Level {
	case LogLevelDebug, LogLevelInfo, LogLevelWarning, LogLevelError, LogLevelFatal:
		// ok
	default:
		return fmt.Errorf("unsupported log level: %s", c.Level)
	}
	return nil
}

// Logger wraps a configured logrus logger
type Logger struct {
	config     *LoggerConfig
	logger     *logrus.Logger
	fileHandle *os.File
	filePath   string
	startTime  time.Time
}

// NewLogger creates a new logger instance
func NewLogger(config *LoggerConfig) (*Logger, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid logger config: %w", err)
	}

	l := &Logger{
		config:    config,
		logger:    logrus.New(),
		startTime: time.Now(),
	}

	if err := l.setup(); err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}
	return l, nil
}

// setup configures the logger with the given configuration
func (l *Logger) setup() error {
	level, err := logrus.ParseLevel(string(l.config.Level))
	if err != nil {
		level = logrus.InfoLevel
	}
	l.logger.SetLevel(level)
	l.logger.SetReportCaller(l.config.Caller)

	if err := l.setFormatter(); err != nil {
		return err
	}

	console := l.config.Console
	if console == nil {
		console = os.Stderr
	}
	l.logger.SetOutput(console)

	return l.setupFileOutput(console)
}

// setFormatter configures the log formatter
func (l *Logger) setFormatter() error {
	prettyCaller := func(f *runtime.Frame) (string, string) {
		return "", fmt.Sprintf("%s:%d", filepath.Base(f.File), f.Line)
	}

	switch l.config.Format {
	case LogFormatJSON:
		l.logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat:  time.RFC3339,
			CallerPrettyfier: prettyCaller,
		})

	case LogFormatText:
		l.logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:    l.config.Timestamp,
			TimestampFormat:  time.RFC3339,
			ForceColors:      l.config.Colors,
			DisableColors:    !l.config.Colors,
			CallerPrettyfier: prettyCaller,
		})

	case LogFormatCustom:
		l.logger.SetFormatter(&InferenceFormatter{
			CustomFormatter: CustomFormatter{
				Timestamp: l.config.Timestamp,
				Caller:    l.config.Caller,
				Colors:    l.config.Colors,
			},
		})

	default:
		return fmt.Errorf("unsupported log format: %s", l.config.Format)
	}

	return nil
}

// setupFileOutput adds a timestamped log file next to the console writer
func (l *Logger) setupFileOutput(console io.Writer) error {
	if l.config.OutputDir == "" {
		return nil
	}

	if err := os.MkdirAll(l.config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	// Generate filename with timestamp
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	path := filepath.Join(l.config.OutputDir, fmt.Sprintf("%s%s.log", filePrefix, timestamp))

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	l.fileHandle = file
	l.filePath = path
	l.logger.SetOutput(io.MultiWriter(console, file))

	l.logger.WithFields(logrus.Fields{
		"start_time": l.startTime.Format(time.RFC3339),
		"log_file":   path,
		"level":      l.config.Level,
		"format":     l.config.Format,
	}).Debug("Logging system initialized")

	return nil
}

// Engine-specific logging methods

// LogModelLoaded logs a system that is ready for evaluation
func (l *Logger) LogModelLoaded(sys *fuzzy.System, source string, fields logrus.Fields) {
	l.entry(fields).WithFields(logrus.Fields{
		"system":     sys.Name(),
		"kind":       sys.Kind(),
		"source":     source,
		"blocks":     len(sys.Blocks()),
		"rules":      sys.RuleCount(),
		"resolution": sys.Resolution(),
	}).Info("Model loaded")
}

// LogCompute logs one rule block result
func (l *Logger) LogCompute(system string, r fuzzy.Result, duration time.Duration, fields logrus.Fields) {
	e := l.entry(fields).WithFields(logrus.Fields{
		"system":   system,
		"block":    r.Block,
		"fired":    r.Fired(),
		"rules":    len(r.Strengths),
		"duration": duration,
	})
	if r.Kind == fuzzy.Sugeno {
		e = e.WithField("value", r.Value)
	} else {
		e = e.WithField("outputs", r.Outputs)
	}
	if len(r.Defaulted) > 0 {
		e.WithField("defaulted", r.Defaulted).Warning("Rule block computed with defaults")
		return
	}
	e.Info("Rule block computed")
}

// LogSweep logs a completed surface sweep
func (l *Logger) LogSweep(id, system, block string, points, defaulted int, duration time.Duration, fields logrus.Fields) {
	l.entry(fields).WithFields(logrus.Fields{
		"sweep_id":  id,
		"system":    system,
		"block":     block,
		"points":    points,
		"defaulted": defaulted,
		"duration":  duration,
	}).Info("Surface sweep completed")
}

func (l *Logger) entry(fields logrus.Fields) *logrus.Entry {
	return l.logger.WithFields(fields)
}

// Close closes the log file and removes files beyond MaxFiles
func (l *Logger) Close() error {
	if l.fileHandle == nil {
		return nil
	}
	l.logger.SetOutput(io.Discard)
	if err := l.fileHandle.Close(); err != nil {
		return fmt.Errorf("failed to close log file: %w", err)
	}
	l.fileHandle = nil

	if err := NewLogManager(l.config.OutputDir, l.config.MaxFiles).CleanupOldLogs(); err != nil {
		return fmt.Errorf("failed to cleanup log files: %w", err)
	}
	return nil
}

// GetLogger returns the underlying logrus logger
func (l *Logger) GetLogger() *logrus.Logger {
	return l.logger
}

// FilePath returns the current log file, empty without file output
func (l *Logger) FilePath() string {
	return l.filePath
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, fields map[string]interface{}) {
	l.logger.WithFields(fields).Debug(msg)
}

// Info logs an info message
func (l *Logger) Info(msg string, fields map[string]interface{}) {
	l.logger.WithFields(fields).Info(msg)
}

// Warning logs a warning message
func (l *Logger) Warning(msg string, fields map[string]interface{}) {
	l.logger.WithFields(fields).Warning(msg)
}

// Error logs an error message
func (l *Logger) Error(msg string, fields map[string]interface{}) {
	l.logger.WithFields(fields).Error(msg)
}
