/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: system.go
Description: Inference systems. A System owns frozen rule blocks and evaluates them for a set
of crisp inputs: fuzzification, firing strengths, then Mamdani aggregation and defuzzification
or Takagi-Sugeno weighted averaging. Compute is pure with respect to the model and safe for
concurrent use.
*/

package fuzzy

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/kleascm/akaylee-fuzzy/pkg/membership"
)

// Kind selects the inference model
type Kind string

const (
	Mamdani Kind = "mamdani"
	Sugeno  Kind = "sugeno"
)

// ParseKind parses a case-insensitive model kind
func ParseKind(name string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(name))); k {
	case Mamdani, Sugeno:
		return k, nil
	case "takagi-sugeno", "tsk":
		return Sugeno, nil
	}
	return "", fmt.Errorf("%w: unknown system kind %q", ErrInvalidModel, name)
}

// NoFirePolicy decides what happens when the total firing strength for an output is zero
type NoFirePolicy int

const (
	// PolicyDefault returns the configured default and fails only when none is set
	PolicyDefault NoFirePolicy = iota
	// PolicyError always fails with NoRuleFired
	PolicyError
)

// ParsePolicy parses "default" or "error"
func ParsePolicy(name string) (NoFirePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "default":
		return PolicyDefault, nil
	case "error":
		return PolicyError, nil
	}
	return PolicyDefault, fmt.Errorf("%w: unknown no-fire policy %q", ErrInvalidModel, name)
}

// DefaultResolution is the number of samples used to discretize Mamdani output domains
const DefaultResolution = 1000

// Observer receives one callback per evaluated rule block
type Observer interface {
	ObserveCompute(system, block string, kind Kind, elapsed time.Duration, err error)
}

type config struct {
	resolution    int
	logger        logrus.FieldLogger
	observer      Observer
	sugenoDefault *float64
	policy        NoFirePolicy
}

// Option configures a System
type Option func(*config) error

// WithResolution sets the number of output domain samples. It is fixed for the system's lifetime.
func WithResolution(n int) Option {
	return func(c *config) error {
		if n < 2 {
			return fmt.Errorf("%w: resolution must be at least 2, got %d", ErrInvalidModel, n)
		}
		c.resolution = n
		return nil
	}
}

// WithLogger sets the logger used for debug traces of block evaluation
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *config) error {
		if l != nil {
			c.logger = l
		}
		return nil
	}
}

// WithObserver installs a compute observer such as a metrics collector
func WithObserver(o Observer) Option {
	return func(c *config) error {
		c.observer = o
		return nil
	}
}

// WithSugenoDefault sets the fallback for Sugeno blocks whose target is not a declared
// variable with its own default
func WithSugenoDefault(v float64) Option {
	return func(c *config) error {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: sugeno default is not finite", ErrInvalidModel)
		}
		c.sugenoDefault = &v
		return nil
	}
}

// WithNoFirePolicy selects the zero firing strength policy
func WithNoFirePolicy(p NoFirePolicy) Option {
	return func(c *config) error {
		c.policy = p
		return nil
	}
}

// Result is the crisp outcome of one rule block
type Result struct {
	Block string `json:"block"`
	Kind  Kind   `json:"kind"`
	// Outputs maps each Mamdani output variable to its defuzzified value
	Outputs map[string]float64 `json:"outputs,omitempty"`
	// Value is the Sugeno weighted average
	Value float64 `json:"value"`
	// Strengths holds each rule's firing strength in rule order
	Strengths []float64 `json:"strengths"`
	// Defaulted lists outputs that fell back to their configured default
	Defaulted []string `json:"defaulted,omitempty"`
}

// Output returns a named crisp value. Sugeno results answer to the block name and the target.
func (r Result) Output(name string) (float64, bool) {
	if r.Kind == Sugeno {
		return r.Value, true
	}
	v, ok := r.Outputs[name]
	return v, ok
}

// Fired returns the number of rules with non-zero firing strength
func (r Result) Fired() int {
	n := 0
	for _, w := range r.Strengths {
		if w > 0 {
			n++
		}
	}
	return n
}

// blockPlan holds what a block needs at compute time, derived once at construction
type blockPlan struct {
	block   *RuleBlock
	inputs  []*Variable
	outputs []*Variable
	def     *float64 // Sugeno fallback
}

// System evaluates a fixed set of rule blocks
type System struct {
	name    string
	kind    Kind
	cfg     config
	plans   []*blockPlan
	byName  map[string]*blockPlan
	grids   map[*Variable][]float64
	samples map[*Adjective][]float64
}

// NewSystem builds a system of the given kind and freezes its blocks
func NewSystem(kind Kind, name string, blocks []*RuleBlock, opts ...Option) (*System, error) {
	switch kind {
	case Mamdani, Sugeno:
	default:
		return nil, fmt.Errorf("%w: unknown system kind %q", ErrInvalidModel, kind)
	}
	if len(blocks) == 0 {
		return nil, fmt.Errorf("%w: system %q has no rule blocks", ErrInvalidModel, name)
	}

	discard := logrus.New()
	discard.SetOutput(io.Discard)
	cfg := config{resolution: DefaultResolution, logger: discard}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	s := &System{
		name:    name,
		kind:    kind,
		cfg:     cfg,
		byName:  make(map[string]*blockPlan, len(blocks)),
		grids:   make(map[*Variable][]float64),
		samples: make(map[*Adjective][]float64),
	}

	want := FuzzyKind
	if kind == Sugeno {
		want = LinearKind
	}

	for _, b := range blocks {
		if b == nil {
			return nil, fmt.Errorf("%w: nil rule block", ErrInvalidModel)
		}
		if _, dup := s.byName[b.name]; dup {
			return nil, fmt.Errorf("%w: duplicate rule block %q", ErrInvalidModel, b.name)
		}
		if len(b.rules) == 0 {
			return nil, fmt.Errorf("%w: %q", ErrEmptyBlock, b.name)
		}
		if b.kind != want {
			return nil, fmt.Errorf("%w: %s system %q cannot run %s block %q", ErrMixedConsequents, kind, name, b.kind, b.name)
		}

		plan, err := s.plan(b)
		if err != nil {
			return nil, err
		}
		s.plans = append(s.plans, plan)
		s.byName[b.name] = plan
	}

	for _, b := range blocks {
		b.frozen = true
	}
	return s, nil
}

// NewMamdaniSystem builds a Mamdani system
func NewMamdaniSystem(name string, blocks []*RuleBlock, opts ...Option) (*System, error) {
	return NewSystem(Mamdani, name, blocks, opts...)
}

// NewSugenoSystem builds a Takagi-Sugeno system
func NewSugenoSystem(name string, blocks []*RuleBlock, opts ...Option) (*System, error) {
	return NewSystem(Sugeno, name, blocks, opts...)
}

func (s *System) plan(b *RuleBlock) (*blockPlan, error) {
	plan := &blockPlan{block: b}

	for _, name := range b.Inputs() {
		v, err := b.registry.Variable(name)
		if err != nil {
			return nil, err
		}
		plan.inputs = append(plan.inputs, v)
	}

	if s.kind == Sugeno {
		if v, err := b.registry.Variable(b.target); err == nil {
			plan.def = v.def
		}
		if plan.def == nil {
			plan.def = s.cfg.sugenoDefault
		}
		return plan, nil
	}

	for _, name := range b.Outputs() {
		v, err := b.registry.Variable(name)
		if err != nil {
			return nil, err
		}
		plan.outputs = append(plan.outputs, v)
		if _, done := s.grids[v]; done {
			continue
		}
		lo, hi := v.Domain()
		if !(lo < hi) {
			return nil, fmt.Errorf("%w: output %q has an empty domain [%g, %g]", ErrInvalidModel, v.name, lo, hi)
		}
		xs := membership.Linspace(lo, hi, s.cfg.resolution)
		s.grids[v] = xs
		for i := range v.adjectives {
			adj := &v.adjectives[i]
			s.samples[adj] = membership.Sample(adj.Function, xs)
		}
	}
	return plan, nil
}

// Name returns the system name
func (s *System) Name() string { return s.name }

// Kind returns the inference model
func (s *System) Kind() Kind { return s.kind }

// Resolution returns the number of output domain samples
func (s *System) Resolution() int { return s.cfg.resolution }

// Blocks returns the rule blocks in evaluation order
func (s *System) Blocks() []*RuleBlock {
	out := make([]*RuleBlock, len(s.plans))
	for i, p := range s.plans {
		out[i] = p.block
	}
	return out
}

// RuleCount returns the number of rules across all blocks
func (s *System) RuleCount() int {
	n := 0
	for _, p := range s.plans {
		n += len(p.block.rules)
	}
	return n
}

// Compute evaluates every block. Any failure aborts the whole call without partial results.
func (s *System) Compute(inputs map[string]float64) (map[string]Result, error) {
	results := make(map[string]Result, len(s.plans))
	for _, p := range s.plans {
		r, err := s.run(p, inputs)
		if err != nil {
			return nil, err
		}
		results[p.block.name] = r
	}
	return results, nil
}

// ComputeBlock evaluates one named block
func (s *System) ComputeBlock(block string, inputs map[string]float64) (Result, error) {
	p, ok := s.byName[block]
	if !ok {
		return Result{}, &UnknownReferenceError{Kind: "rule block", Name: block}
	}
	return s.run(p, inputs)
}

func (s *System) run(p *blockPlan, inputs map[string]float64) (Result, error) {
	var start time.Time
	if s.cfg.observer != nil {
		start = time.Now()
	}

	r, err := s.evaluate(p, inputs)

	if s.cfg.observer != nil {
		s.cfg.observer.ObserveCompute(s.name, p.block.name, s.kind, time.Since(start), err)
	}
	if err != nil {
		return Result{}, err
	}

	s.cfg.logger.WithFields(logrus.Fields{
		"system":    s.name,
		"block":     p.block.name,
		"fired":     r.Fired(),
		"rules":     len(r.Strengths),
		"defaulted": r.Defaulted,
	}).Debug("Rule block evaluated")
	return r, nil
}

func (s *System) evaluate(p *blockPlan, inputs map[string]float64) (Result, error) {
	degrees := make(Degrees, len(p.inputs))
	for _, v := range p.inputs {
		x, ok := inputs[v.name]
		if !ok {
			return Result{}, &MissingInputError{Variable: v.name}
		}
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return Result{}, fmt.Errorf("%w: %q is %v", ErrInvalidInput, v.name, x)
		}
		degrees[v.name] = v.Fuzzify(x)
	}

	b := p.block
	strengths := make([]float64, len(b.rules))
	for i, rule := range b.rules {
		strengths[i] = rule.Antecedent.Evaluate(degrees, b.ops)
	}

	if s.kind == Sugeno {
		return s.sugeno(p, strengths, inputs)
	}
	return s.mamdani(p, strengths)
}

func (s *System) mamdani(p *blockPlan, strengths []float64) (Result, error) {
	b := p.block
	res := Result{
		Block:     b.name,
		Kind:      Mamdani,
		Outputs:   make(map[string]float64, len(p.outputs)),
		Strengths: strengths,
	}

	for _, out := range p.outputs {
		xs := s.grids[out]
		mu := make([]float64, len(xs))

		for i, rule := range b.rules {
			w := strengths[i]
			c := rule.Consequent.(*FuzzyConsequent)
			if w == 0 || c.Variable != out {
				continue
			}
			for j, degree := range s.samples[c.Adjective] {
				mu[j] = b.ops.Accumulation.Apply(mu[j], b.ops.Implication.Apply(w, degree))
			}
		}

		value, ok := out.method.Strategy()(xs, mu)
		if !ok {
			fallback, err := s.fallback(b.name, out.name, out.def)
			if err != nil {
				return Result{}, err
			}
			value = fallback
			res.Defaulted = append(res.Defaulted, out.name)
		}
		res.Outputs[out.name] = value
	}
	return res, nil
}

func (s *System) sugeno(p *blockPlan, strengths []float64, inputs map[string]float64) (Result, error) {
	b := p.block
	res := Result{Block: b.name, Kind: Sugeno, Strengths: strengths}

	var num, den float64
	for i, rule := range b.rules {
		w := strengths[i]
		if w == 0 {
			continue
		}
		z := rule.Consequent.(*LinearConsequent).Expression.Evaluate(inputs)
		num += w * z
		den += w
	}

	if den == 0 {
		fallback, err := s.fallback(b.name, b.target, p.def)
		if err != nil {
			return Result{}, err
		}
		res.Value = fallback
		res.Defaulted = []string{b.target}
		return res, nil
	}
	res.Value = num / den
	return res, nil
}

func (s *System) fallback(block, output string, def *float64) (float64, error) {
	if s.cfg.policy == PolicyDefault && def != nil {
		return *def, nil
	}
	return 0, &NoRuleFiredError{Block: block, Variable: output}
}
