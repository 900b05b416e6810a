/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: sweep.go
Description: Response surface evaluation. Sweeps two input variables of a system over a
regular grid, holding any other inputs fixed, and collects one crisp output per grid point.
Rows are evaluated concurrently; the result is plain data for an external plotting tool.
*/

package sweep

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/kleascm/akaylee-fuzzy/pkg/fuzzy"
	"github.com/kleascm/akaylee-fuzzy/pkg/membership"
)

// Axis is one swept input
type Axis struct {
	Variable string  `json:"variable"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Steps    int     `json:"steps"`
}

// ParseAxis parses "name:min:max:steps"
func ParseAxis(text string) (Axis, error) {
	parts := strings.Split(text, ":")
	if len(parts) != 4 || parts[0] == "" {
		return Axis{}, fmt.Errorf("axis %q: want name:min:max:steps", text)
	}
	lo, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return Axis{}, fmt.Errorf("axis %q: min: %w", text, err)
	}
	hi, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return Axis{}, fmt.Errorf("axis %q: max: %w", text, err)
	}
	steps, err := strconv.Atoi(parts[3])
	if err != nil {
		return Axis{}, fmt.Errorf("axis %q: steps: %w", text, err)
	}
	a := Axis{Variable: parts[0], Min: lo, Max: hi, Steps: steps}
	return a, a.Validate()
}

// Validate checks bounds and step count
func (a Axis) Validate() error {
	if a.Variable == "" {
		return fmt.Errorf("axis has no variable")
	}
	if !(a.Min < a.Max) {
		return fmt.Errorf("axis %q: min %g must be below max %g", a.Variable, a.Min, a.Max)
	}
	if a.Steps < 2 {
		return fmt.Errorf("axis %q: need at least 2 steps, got %d", a.Variable, a.Steps)
	}
	return nil
}

// Values returns the grid coordinates of the axis
func (a Axis) Values() []float64 {
	return membership.Linspace(a.Min, a.Max, a.Steps)
}

// Config selects what to sweep
type Config struct {
	// Block defaults to the system's only block
	Block string
	// Output defaults to the block's only Mamdani output; Sugeno blocks have one value
	Output string
	X, Y   Axis
	// Fixed holds values for inputs that are not swept
	Fixed   map[string]float64
	Workers int
}

// Surface is the evaluated grid. Z[j][i] is the output at (X[i], Y[j]).
type Surface struct {
	ID          string      `json:"id"`
	System      string      `json:"system"`
	Block       string      `json:"block"`
	Output      string      `json:"output"`
	XAxis       Axis        `json:"x_axis"`
	YAxis       Axis        `json:"y_axis"`
	X           []float64   `json:"x"`
	Y           []float64   `json:"y"`
	Z           [][]float64 `json:"z"`
	Defaulted   int         `json:"defaulted"`
	GeneratedAt time.Time   `json:"generated_at"`
	Duration    string      `json:"duration"`
}

// Run evaluates the grid. The first failing point cancels the sweep.
func Run(ctx context.Context, sys *fuzzy.System, cfg Config) (*Surface, error) {
	if err := cfg.X.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Y.Validate(); err != nil {
		return nil, err
	}
	if cfg.X.Variable == cfg.Y.Variable {
		return nil, fmt.Errorf("both axes sweep %q", cfg.X.Variable)
	}

	block, output, err := resolve(sys, cfg)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	s := &Surface{
		ID:          uuid.New().String(),
		System:      sys.Name(),
		Block:       block,
		Output:      output,
		XAxis:       cfg.X,
		YAxis:       cfg.Y,
		X:           cfg.X.Values(),
		Y:           cfg.Y.Values(),
		GeneratedAt: start.UTC(),
	}
	s.Z = make([][]float64, len(s.Y))
	defaulted := make([]int, len(s.Y))

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for j := range s.Y {
		j := j
		g.Go(func() error {
			row := make([]float64, len(s.X))
			inputs := make(map[string]float64, len(cfg.Fixed)+2)
			for k, v := range cfg.Fixed {
				inputs[k] = v
			}
			inputs[cfg.Y.Variable] = s.Y[j]

			for i, x := range s.X {
				if err := gctx.Err(); err != nil {
					return err
				}
				inputs[cfg.X.Variable] = x
				r, err := sys.ComputeBlock(block, inputs)
				if err != nil {
					return fmt.Errorf("at %s=%g %s=%g: %w", cfg.X.Variable, x, cfg.Y.Variable, s.Y[j], err)
				}
				v, _ := r.Output(output)
				row[i] = v
				if len(r.Defaulted) > 0 {
					defaulted[j]++
				}
			}
			s.Z[j] = row
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	for _, n := range defaulted {
		s.Defaulted += n
	}
	s.Duration = time.Since(start).String()
	return s, nil
}

func resolve(sys *fuzzy.System, cfg Config) (string, string, error) {
	blocks := sys.Blocks()

	var target *fuzzy.RuleBlock
	if cfg.Block == "" {
		if len(blocks) != 1 {
			return "", "", fmt.Errorf("system %q has %d blocks, choose one", sys.Name(), len(blocks))
		}
		target = blocks[0]
	} else {
		for _, b := range blocks {
			if b.Name() == cfg.Block {
				target = b
				break
			}
		}
		if target == nil {
			return "", "", &fuzzy.UnknownReferenceError{Kind: "rule block", Name: cfg.Block}
		}
	}

	if sys.Kind() == fuzzy.Sugeno {
		return target.Name(), target.Target(), nil
	}

	outputs := target.Outputs()
	switch {
	case cfg.Output != "":
		for _, o := range outputs {
			if o == cfg.Output {
				return target.Name(), o, nil
			}
		}
		return "", "", &fuzzy.UnknownReferenceError{Kind: "output", Name: cfg.Output}
	case len(outputs) == 1:
		return target.Name(), outputs[0], nil
	}
	return "", "", fmt.Errorf("block %q has outputs %v, choose one", target.Name(), outputs)
}
