/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: metrics.go
Description: Inference metrics for the Akaylee fuzzy engine. MetricsCollector observes every
rule block evaluation and exports Prometheus counters and latency histograms, keeps in-process
totals per block, and can dump the registry to a node_exporter textfile.
*/

package monitoring

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"

	"github.com/kleascm/akaylee-fuzzy/pkg/fuzzy"
)

// Outcome labels
const (
	OutcomeOK           = "ok"
	OutcomeNoRuleFired  = "no_rule_fired"
	OutcomeMissingInput = "missing_input"
	OutcomeInvalidInput = "invalid_input"
	OutcomeError        = "error"
)

// Config configures a MetricsCollector
type Config struct {
	Namespace string
	Subsystem string
	Buckets   []float64
	// Registerer defaults to prometheus.DefaultRegisterer
	Registerer prometheus.Registerer
	Logger     logrus.FieldLogger
}

// DefaultConfig returns the standard metric naming and latency buckets
func DefaultConfig() Config {
	return Config{
		Namespace: "akaylee",
		Subsystem: "fuzzy",
		Buckets:   []float64{.00001, .00005, .0001, .0005, .001, .005, .01, .05, .1},
	}
}

// BlockMetrics holds in-process totals for one rule block
type BlockMetrics struct {
	System        string        `json:"system"`
	Block         string        `json:"block"`
	Kind          fuzzy.Kind    `json:"kind"`
	Computes      int64         `json:"computes"`
	Failures      int64         `json:"failures"`
	NoRuleFired   int64         `json:"no_rule_fired"`
	TotalDuration time.Duration `json:"total_duration"`
	LastActivity  time.Time     `json:"last_activity"`
}

// GlobalMetrics is a snapshot of every observed block
type GlobalMetrics struct {
	StartTime     time.Time      `json:"start_time"`
	Uptime        time.Duration  `json:"uptime"`
	TotalComputes int64          `json:"total_computes"`
	TotalFailures int64          `json:"total_failures"`
	Blocks        []BlockMetrics `json:"blocks"`
}

// MetricsCollector implements fuzzy.Observer
type MetricsCollector struct {
	computes    *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	noRuleFired *prometheus.CounterVec

	mu        sync.Mutex
	startTime time.Time
	blocks    map[string]*BlockMetrics

	logger logrus.FieldLogger
}

var _ fuzzy.Observer = (*MetricsCollector)(nil)

// NewMetricsCollector creates and registers the collectors
func NewMetricsCollector(cfg Config) (*MetricsCollector, error) {
	def := DefaultConfig()
	if cfg.Namespace == "" {
		cfg.Namespace = def.Namespace
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = def.Subsystem
	}
	if cfg.Buckets == nil {
		cfg.Buckets = def.Buckets
	}
	if cfg.Registerer == nil {
		cfg.Registerer = prometheus.DefaultRegisterer
	}
	if cfg.Logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		cfg.Logger = l
	}

	mc := &MetricsCollector{
		computes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "computes_total",
			Help:      "Rule block evaluations by outcome",
		}, []string{"system", "block", "kind", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "compute_duration_seconds",
			Help:      "Rule block evaluation latency",
			Buckets:   cfg.Buckets,
		}, []string{"system", "block"}),
		noRuleFired: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "no_rule_fired_total",
			Help:      "Evaluations rejected because no rule fired",
		}, []string{"system", "block"}),
		startTime: time.Now(),
		blocks:    make(map[string]*BlockMetrics),
		logger:    cfg.Logger,
	}

	for _, c := range []prometheus.Collector{mc.computes, mc.duration, mc.noRuleFired} {
		if err := cfg.Registerer.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register collector: %w", err)
		}
	}
	return mc, nil
}

// ObserveCompute records one block evaluation
func (mc *MetricsCollector) ObserveCompute(system, block string, kind fuzzy.Kind, elapsed time.Duration, err error) {
	outcome := Outcome(err)

	mc.computes.WithLabelValues(system, block, string(kind), outcome).Inc()
	mc.duration.WithLabelValues(system, block).Observe(elapsed.Seconds())
	if outcome == OutcomeNoRuleFired {
		mc.noRuleFired.WithLabelValues(system, block).Inc()
	}

	mc.mu.Lock()
	key := system + "/" + block
	bm, ok := mc.blocks[key]
	if !ok {
		bm = &BlockMetrics{System: system, Block: block, Kind: kind}
		mc.blocks[key] = bm
	}
	bm.Computes++
	bm.TotalDuration += elapsed
	bm.LastActivity = time.Now()
	if err != nil {
		bm.Failures++
	}
	if outcome == OutcomeNoRuleFired {
		bm.NoRuleFired++
	}
	mc.mu.Unlock()

	if err != nil {
		mc.logger.WithFields(logrus.Fields{
			"system":  system,
			"block":   block,
			"outcome": outcome,
		}).Debug("Rule block evaluation failed")
	}
}

// GetGlobalMetrics returns a snapshot sorted by system and block
func (mc *MetricsCollector) GetGlobalMetrics() *GlobalMetrics {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	g := &GlobalMetrics{
		StartTime: mc.startTime,
		Uptime:    time.Since(mc.startTime),
		Blocks:    make([]BlockMetrics, 0, len(mc.blocks)),
	}
	for _, bm := range mc.blocks {
		g.TotalComputes += bm.Computes
		g.TotalFailures += bm.Failures
		g.Blocks = append(g.Blocks, *bm)
	}
	sort.Slice(g.Blocks, func(i, j int) bool {
		if g.Blocks[i].System != g.Blocks[j].System {
			return g.Blocks[i].System < g.Blocks[j].System
		}
		return g.Blocks[i].Block < g.Blocks[j].Block
	})
	return g
}

// Outcome maps an evaluation error to its metric label
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, fuzzy.ErrNoRuleFired):
		return OutcomeNoRuleFired
	case errors.Is(err, fuzzy.ErrMissingInput):
		return OutcomeMissingInput
	case errors.Is(err, fuzzy.ErrInvalidInput):
		return OutcomeInvalidInput
	default:
		return OutcomeError
	}
}

// NewRegistry creates a registry, optionally carrying Go runtime and process collectors
func NewRegistry(runtimeStats bool) *prometheus.Registry {
	reg := prometheus.NewRegistry()
	if runtimeStats {
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	return reg
}

// WriteTextfile writes every gathered metric in the text exposition format
func WriteTextfile(g prometheus.Gatherer, path string) error {
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
