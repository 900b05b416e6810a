/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: utils.go
Description: Shared utilities for the Akaylee Fuzzy commands. Provides configuration loading,
logging setup, metrics wiring and model resolution used across all command implementations.
*/

package commands

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/kleascm/akaylee-fuzzy/pkg/fuzzy"
	"github.com/kleascm/akaylee-fuzzy/pkg/logging"
	"github.com/kleascm/akaylee-fuzzy/pkg/modelfile"
	"github.com/kleascm/akaylee-fuzzy/pkg/models"
	"github.com/kleascm/akaylee-fuzzy/pkg/monitoring"
)

// LoadConfig loads configuration from files and environment
func LoadConfig() error {
	// Set config file if specified
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// AKAYLEE_FUZZY_COMPUTE_MODEL maps to compute.model
	viper.SetEnvPrefix("AKAYLEE_FUZZY")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	return nil
}

// SetupLogging configures the logging system
func SetupLogging() (*logging.Logger, error) {
	cfg := logging.DefaultConfig()
	if level := viper.GetString("log_level"); level != "" {
		if _, err := logrus.ParseLevel(level); err != nil {
			return nil, fmt.Errorf("invalid log level: %w", err)
		}
		cfg.Level = logging.LogLevel(level)
	}
	if format := viper.GetString("log_format"); format != "" {
		cfg.Format = logging.LogFormat(format)
	}
	cfg.OutputDir = viper.GetString("log_dir")
	if n := viper.GetInt("log_max_files"); n > 0 {
		cfg.MaxFiles = n
	}

	return logging.NewLogger(cfg)
}

// Session carries what every command run shares
type Session struct {
	Logger  *logging.Logger
	RunID   string
	Metrics *monitoring.MetricsCollector

	registry *prometheus.Registry
}

// NewSession loads configuration, sets up logging and registers the metrics collector
func NewSession() (*Session, error) {
	if err := LoadConfig(); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := SetupLogging()
	if err != nil {
		return nil, fmt.Errorf("failed to setup logging: %w", err)
	}

	s := &Session{
		Logger:   logger,
		RunID:    uuid.New().String(),
		registry: monitoring.NewRegistry(true),
	}

	mcfg := monitoring.DefaultConfig()
	mcfg.Registerer = s.registry
	mcfg.Logger = s.Fields(logger.GetLogger())
	s.Metrics, err = monitoring.NewMetricsCollector(mcfg)
	if err != nil {
		logger.Close()
		return nil, err
	}
	return s, nil
}

// Fields tags a logger with the run id
func (s *Session) Fields(l logrus.FieldLogger) logrus.FieldLogger {
	return l.WithField("run_id", s.RunID)
}

// LogFields returns the fields attached to every session log line
func (s *Session) LogFields() logrus.Fields {
	return logrus.Fields{"run_id": s.RunID}
}

// SystemOptions converts global configuration into engine options
func (s *Session) SystemOptions() ([]fuzzy.Option, error) {
	opts := []fuzzy.Option{
		fuzzy.WithLogger(s.Fields(s.Logger.GetLogger())),
		fuzzy.WithObserver(s.Metrics),
	}
	// Only explicit settings override model file values
	if viper.IsSet("resolution") {
		opts = append(opts, fuzzy.WithResolution(viper.GetInt("resolution")))
	}
	if viper.IsSet("no_fire_policy") {
		p, err := fuzzy.ParsePolicy(viper.GetString("no_fire_policy"))
		if err != nil {
			return nil, err
		}
		opts = append(opts, fuzzy.WithNoFirePolicy(p))
	}
	return opts, nil
}

// LoadSystem builds either a built-in model or a model file
func (s *Session) LoadSystem(model, modelFile string) (*fuzzy.System, error) {
	if (model == "") == (modelFile == "") {
		return nil, fmt.Errorf("exactly one of --model or --model-file is required")
	}

	opts, err := s.SystemOptions()
	if err != nil {
		return nil, err
	}

	var (
		sys    *fuzzy.System
		source string
	)
	if model != "" {
		sys, err = models.Build(model, opts...)
		source = "builtin:" + model
	} else {
		sys, err = modelfile.LoadSystem(modelFile, opts...)
		source = modelFile
	}
	if err != nil {
		return nil, err
	}

	s.Logger.LogModelLoaded(sys, source, s.LogFields())
	return sys, nil
}

// Close exports metrics when requested and closes the logger
func (s *Session) Close() error {
	g := s.Metrics.GetGlobalMetrics()
	s.Logger.Debug("Metrics summary", map[string]interface{}{
		"run_id":   s.RunID,
		"computes": g.TotalComputes,
		"failures": g.TotalFailures,
		"uptime":   g.Uptime,
	})

	var err error
	if path := viper.GetString("metrics_file"); path != "" {
		if err = monitoring.WriteTextfile(s.registry, path); err != nil {
			s.Logger.Warning("Metrics export failed", map[string]interface{}{"run_id": s.RunID, "path": path, "error": err})
		} else {
			s.Logger.Info("Metrics written", map[string]interface{}{"run_id": s.RunID, "path": path})
		}
	}
	if cerr := s.Logger.Close(); err == nil {
		err = cerr
	}
	return err
}

// Finish logs a failed command and closes the session. A close error is reported
// only when the command itself succeeded.
func (s *Session) Finish(err *error) {
	if *err != nil {
		s.Logger.Error("Command failed", map[string]interface{}{"run_id": s.RunID, "error": *err})
	}
	if cerr := s.Close(); *err == nil {
		*err = cerr
	}
}

// ParseInputs parses repeated name=value pairs
func ParseInputs(pairs []string) (map[string]float64, error) {
	inputs := make(map[string]float64, len(pairs))
	for _, pair := range pairs {
		name, raw, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("input %q: want name=value", pair)
		}
		if _, dup := inputs[name]; dup {
			return nil, fmt.Errorf("input %q given more than once", name)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, fmt.Errorf("input %q: %w", name, err)
		}
		inputs[name] = v
	}
	return inputs, nil
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
