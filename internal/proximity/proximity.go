// Package proximity turns pointer and touch positions into magnetic targets
// for nearby elements. It only ever writes targets; the motion and mandala
// lag filters carry the actual values toward them at frame rate.
package proximity

import (
	"github.com/coreman2200/breath/internal/layout"
)

// Input distinguishes the pointing device; touch gets wider radii.
type Input int

const (
	Mouse Input = iota
	Touch
)

func (i Input) String() string {
	if i == Touch {
		return "touch"
	}
	return "mouse"
}

// Radius holds the influence radius per input device, in pixels.
type Radius struct {
	Mouse float64 `yaml:"mouse"`
	Touch float64 `yaml:"touch"`
}

func (r Radius) For(in Input) float64 {
	if in == Touch {
		return r.Touch
	}
	return r.Mouse
}

type Params struct {
	WordRadius   Radius  `yaml:"word_radius"`
	PullStrength float64 `yaml:"pull_strength"`
	ScaleMax     float64 `yaml:"scale_max"`

	MandalaRadius      Radius  `yaml:"mandala_radius"`
	SpeedMultiplierMax float64 `yaml:"speed_multiplier_max"`
}

func DefaultParams() Params {
	return Params{
		WordRadius:         Radius{Mouse: 200, Touch: 260},
		PullStrength:       5,
		ScaleMax:           0.08,
		MandalaRadius:      Radius{Mouse: 400, Touch: 480},
		SpeedMultiplierMax: 4,
	}
}

// Smoothstep is t²(3−2t) on [0,1].
func Smoothstep(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	return t * t * (3 - 2*t)
}

// Strength is the eased falloff: 1 at the centre, 0 at and beyond radius.
func Strength(distance, radius float64) float64 {
	if radius <= 0 || distance >= radius {
		return 0
	}
	return Smoothstep(1 - distance/radius)
}

// Word computes the pull toward the pointer and the scale target for an
// element centred at c. A pointer exactly on the centre gives no pull.
func (p Params) Word(c, pointer layout.Point, in Input) (pull layout.Point, scale float64) {
	delta := pointer.Sub(c)
	s := Strength(delta.Len(), p.WordRadius.For(in))
	return delta.Unit().Scale(s * p.PullStrength), 1 + s*p.ScaleMax
}

// Mandala computes the spin multiplier target for a mandala centred at c.
func (p Params) Mandala(c, pointer layout.Point, in Input) float64 {
	s := Strength(pointer.Sub(c).Len(), p.MandalaRadius.For(in))
	return 1 + s*(p.SpeedMultiplierMax-1)
}

// Target is anything that can be attracted. Each setter reports false when
// the element carries no state for that concern.
type Target interface {
	Center() layout.Point
	Pull(pull layout.Point, scale float64) bool
	Spin(multiplier float64) bool
}

// Engine applies pointer events to a set of targets.
type Engine struct {
	Params Params
}

func NewEngine(p Params) *Engine { return &Engine{Params: p} }

// Pointer evaluates every target independently against one pointer
// position. Targets outside the radius are reset to neutral.
func (e *Engine) Pointer(pointer layout.Point, in Input, targets []Target) {
	for _, t := range targets {
		c := t.Center()
		pull, scale := e.Params.Word(c, pointer, in)
		t.Pull(pull, scale)
		t.Spin(e.Params.Mandala(c, pointer, in))
	}
}

// Release resets every target to neutral, on pointer-leave or touch-end.
func (e *Engine) Release(targets []Target) {
	for _, t := range targets {
		t.Pull(layout.Point{}, 1)
		t.Spin(1)
	}
}
