// Package probe runs a binding plan described in YAML against a device:
// state is recorded on a deferred context, read back, captured into
// command lists and played on the immediate context.
package probe

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/dxbind/d3d11"
)

// Plan describes one probe run.
type Plan struct {
	Name         string         `yaml:"name"`
	Repeat       int            `yaml:"repeat"`
	RestoreState bool           `yaml:"restore_state"`
	ReuseList    bool           `yaml:"reuse_list"`
	ClearState   bool           `yaml:"clear_state"`
	Viewports    []ViewportSpec `yaml:"viewports"`
	ScissorRects []RectSpec     `yaml:"scissor_rects"`
}

// ViewportSpec is a viewport in plan files.
type ViewportSpec struct {
	X        float32 `yaml:"x"`
	Y        float32 `yaml:"y"`
	Width    float32 `yaml:"width"`
	Height   float32 `yaml:"height"`
	MinDepth float32 `yaml:"min_depth"`
	MaxDepth float32 `yaml:"max_depth"`
}

// RectSpec is a scissor rectangle in plan files.
type RectSpec struct {
	Left   int32 `yaml:"left"`
	Top    int32 `yaml:"top"`
	Right  int32 `yaml:"right"`
	Bottom int32 `yaml:"bottom"`
}

// ErrInvalidPlan is returned for plans that fail validation.
var ErrInvalidPlan = errors.New("probe: invalid plan")

// DefaultPlan binds one full-target viewport and scissor once.
func DefaultPlan() *Plan {
	return &Plan{
		Name:         "default",
		Repeat:       1,
		Viewports:    []ViewportSpec{{Width: 800, Height: 600, MaxDepth: 1}},
		ScissorRects: []RectSpec{{Right: 800, Bottom: 600}},
	}
}

// LoadPlan reads a plan file.
func LoadPlan(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading plan file: %w", err)
	}
	return ParsePlan(data)
}

// ParsePlan decodes and validates a plan. Missing fields get defaults.
func ParsePlan(data []byte) (*Plan, error) {
	var p Plan
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing plan: %w", err)
	}

	// Apply defaults
	if p.Name == "" {
		p.Name = "unnamed"
	}
	if p.Repeat == 0 {
		p.Repeat = 1
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate checks the plan for values no device would accept.
func (p *Plan) Validate() error {
	if p.Repeat < 0 {
		return fmt.Errorf("%w: repeat %d", ErrInvalidPlan, p.Repeat)
	}
	for i, v := range p.Viewports {
		if v.Width < 0 || v.Height < 0 {
			return fmt.Errorf("%w: viewport %d has negative size", ErrInvalidPlan, i)
		}
		if v.MinDepth < 0 || v.MaxDepth > 1 || v.MinDepth > v.MaxDepth {
			return fmt.Errorf("%w: viewport %d depth range [%v, %v]", ErrInvalidPlan, i, v.MinDepth, v.MaxDepth)
		}
	}
	for i, r := range p.ScissorRects {
		if r.Right < r.Left || r.Bottom < r.Top {
			return fmt.Errorf("%w: scissor rect %d is inverted", ErrInvalidPlan, i)
		}
	}
	return nil
}

func (p *Plan) viewports() []d3d11.Viewport {
	out := make([]d3d11.Viewport, len(p.Viewports))
	for i, v := range p.Viewports {
		out[i] = d3d11.Viewport{
			TopLeftX: v.X,
			TopLeftY: v.Y,
			Width:    v.Width,
			Height:   v.Height,
			MinDepth: v.MinDepth,
			MaxDepth: v.MaxDepth,
		}
	}
	return out
}

func (p *Plan) scissorRects() []d3d11.Rect {
	out := make([]d3d11.Rect, len(p.ScissorRects))
	for i, r := range p.ScissorRects {
		out[i] = d3d11.Rect(r)
	}
	return out
}
