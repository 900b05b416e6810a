/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: modelfile.go
Description: YAML model definitions. A model file declares variables with their adjectives,
rule blocks with operators and rule text, and the system tunables. Files are decoded strictly,
validated structurally, then built into a fuzzy.System through the public engine API.
*/

package modelfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/kleascm/akaylee-fuzzy/pkg/defuzz"
	"github.com/kleascm/akaylee-fuzzy/pkg/fuzzy"
	"github.com/kleascm/akaylee-fuzzy/pkg/membership"
	"github.com/kleascm/akaylee-fuzzy/pkg/operators"
)

// Model is the top-level document of a model file
type Model struct {
	Name          string     `yaml:"name" validate:"required"`
	Kind          string     `yaml:"kind" validate:"required"`
	Resolution    int        `yaml:"resolution,omitempty" validate:"omitempty,min=2"`
	NoFirePolicy  string     `yaml:"no_fire_policy,omitempty" validate:"omitempty,oneof=default error"`
	SugenoDefault *float64   `yaml:"sugeno_default,omitempty"`
	Variables     []Variable `yaml:"variables" validate:"required,min=1,dive"`
	Blocks        []Block    `yaml:"blocks" validate:"required,min=1,dive"`
}

// Variable declares a linguistic variable
type Variable struct {
	Name            string      `yaml:"name" validate:"required"`
	Unit            string      `yaml:"unit,omitempty"`
	Domain          []float64   `yaml:"domain,omitempty" validate:"omitempty,len=2"`
	Defuzzification string      `yaml:"defuzzification,omitempty"`
	Default         *float64    `yaml:"default,omitempty"`
	Adjectives      []Adjective `yaml:"adjectives" validate:"required,min=1,dive"`
}

// Adjective declares a point-list fuzzy set and the aliases rules may use for it
type Adjective struct {
	Label   string      `yaml:"label" validate:"required"`
	Aliases []string    `yaml:"aliases,omitempty" validate:"omitempty,dive,required"`
	Points  [][]float64 `yaml:"points" validate:"required,min=2,dive,len=2"`
	Left    string      `yaml:"left,omitempty" validate:"omitempty,oneof=clamp decay"`
	Right   string      `yaml:"right,omitempty" validate:"omitempty,oneof=clamp decay"`
}

// Block declares a rule block
type Block struct {
	Name      string    `yaml:"name" validate:"required"`
	Operators Operators `yaml:"operators,omitempty"`
	Rules     []string  `yaml:"rules" validate:"required,min=1,dive,required"`
}

// Operators names the operator set of a block. Empty names take the Zadeh defaults.
type Operators struct {
	And          string `yaml:"and,omitempty"`
	Or           string `yaml:"or,omitempty"`
	Not          string `yaml:"not,omitempty"`
	Implication  string `yaml:"implication,omitempty"`
	Accumulation string `yaml:"accumulation,omitempty"`
}

var validate = validator.New()

// Load reads and parses a model file
func Load(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading model file: %w", err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Parse decodes and validates a model document. Unknown fields are rejected.
func Parse(data []byte) (*Model, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var m Model
	if err := dec.Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty model file", fuzzy.ErrInvalidModel)
		}
		return nil, fmt.Errorf("%w: decoding yaml: %v", fuzzy.ErrInvalidModel, err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks the document structure. Semantic checks such as rule resolution happen in Build.
func (m *Model) Validate() error {
	err := validate.Struct(m)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", fuzzy.ErrInvalidModel, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s fails %q", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("%w: %s", fuzzy.ErrInvalidModel, strings.Join(msgs, "; "))
}

// Options returns the system options declared by the document
func (m *Model) Options() ([]fuzzy.Option, error) {
	var opts []fuzzy.Option
	if m.Resolution != 0 {
		opts = append(opts, fuzzy.WithResolution(m.Resolution))
	}
	if m.NoFirePolicy != "" {
		p, err := fuzzy.ParsePolicy(m.NoFirePolicy)
		if err != nil {
			return nil, err
		}
		opts = append(opts, fuzzy.WithNoFirePolicy(p))
	}
	if m.SugenoDefault != nil {
		opts = append(opts, fuzzy.WithSugenoDefault(*m.SugenoDefault))
	}
	return opts, nil
}

// Registry builds the variables and aliases of the document
func (m *Model) Registry() (*fuzzy.Registry, error) {
	reg := fuzzy.NewRegistry()

	for _, vd := range m.Variables {
		adjs := make([]fuzzy.Adjective, 0, len(vd.Adjectives))
		for _, ad := range vd.Adjectives {
			fn, err := ad.function()
			if err != nil {
				return nil, fmt.Errorf("variable %q adjective %q: %w", vd.Name, ad.Label, err)
			}
			adjs = append(adjs, fuzzy.Adjective{Label: ad.Label, Function: fn})
		}

		var opts []fuzzy.VariableOption
		if vd.Unit != "" {
			opts = append(opts, fuzzy.WithUnit(vd.Unit))
		}
		if len(vd.Domain) == 2 {
			opts = append(opts, fuzzy.WithDomain(vd.Domain[0], vd.Domain[1]))
		}
		if vd.Defuzzification != "" {
			opts = append(opts, fuzzy.WithDefuzzification(defuzz.Method(vd.Defuzzification)))
		}
		if vd.Default != nil {
			opts = append(opts, fuzzy.WithDefault(*vd.Default))
		}

		if _, err := reg.DefineVariable(vd.Name, adjs, opts...); err != nil {
			return nil, err
		}

		for _, ad := range vd.Adjectives {
			for _, alias := range ad.Aliases {
				if err := reg.Alias(alias, vd.Name, ad.Label); err != nil {
					return nil, err
				}
			}
		}
	}
	return reg, nil
}

func (a Adjective) function() (membership.Function, error) {
	points := make([]membership.Point, len(a.Points))
	for i, p := range a.Points {
		points[i] = membership.Point{X: p[0], Y: p[1]}
	}

	var opts []membership.Option
	if a.Left != "" {
		e, err := membership.ParseExtension(a.Left)
		if err != nil {
			return nil, err
		}
		opts = append(opts, membership.WithLeft(e))
	}
	if a.Right != "" {
		e, err := membership.ParseExtension(a.Right)
		if err != nil {
			return nil, err
		}
		opts = append(opts, membership.WithRight(e))
	}
	return membership.NewPolygon(points, opts...)
}

// Build constructs the system. Caller options apply after the document's own.
func (m *Model) Build(opts ...fuzzy.Option) (*fuzzy.System, error) {
	kind, err := fuzzy.ParseKind(m.Kind)
	if err != nil {
		return nil, err
	}
	reg, err := m.Registry()
	if err != nil {
		return nil, err
	}

	blocks := make([]*fuzzy.RuleBlock, 0, len(m.Blocks))
	for _, bd := range m.Blocks {
		o := bd.Operators
		ops, err := operators.ParseSet(o.And, o.Or, o.Not, o.Implication, o.Accumulation)
		if err != nil {
			return nil, fmt.Errorf("rule block %q: %w", bd.Name, err)
		}
		block, err := reg.DefineRuleBlock(bd.Name, ops)
		if err != nil {
			return nil, err
		}
		if err := block.AddRules(bd.Rules...); err != nil {
			return nil, err
		}
		blocks = append(blocks, block)
	}

	own, err := m.Options()
	if err != nil {
		return nil, err
	}
	return fuzzy.NewSystem(kind, m.Name, blocks, append(own, opts...)...)
}

// LoadSystem loads a model file and builds it in one step
func LoadSystem(path string, opts ...fuzzy.Option) (*fuzzy.System, error) {
	m, err := Load(path)
	if err != nil {
		return nil, err
	}
	return m.Build(opts...)
}
