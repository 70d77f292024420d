// Package element binds the independent animation states to one visual
// node. Every state is optional; an element only ever touches its own.
package element

import (
	"errors"
	"fmt"

	"github.com/coreman2200/breath/internal/glow"
	"github.com/coreman2200/breath/internal/layout"
	"github.com/coreman2200/breath/internal/mandala"
	"github.com/coreman2200/breath/internal/mask"
	"github.com/coreman2200/breath/internal/motion"
	"github.com/coreman2200/breath/internal/random"
	"github.com/coreman2200/breath/internal/render"
)

// Kind selects which states an element is created with.
type Kind string

const (
	// Title glows.
	Title Kind = "title"
	// Word glows, drifts and responds to the pointer.
	Word Kind = "word"
	// Mandala rotates and breathes its edges.
	Mandala Kind = "mandala"
	// Image breathes its edges.
	Image Kind = "image"
)

var ErrUnknownKind = errors.New("element: unknown kind")

func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case Title, Word, Mandala, Image:
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Params gathers the per-concern parameters elements are created from.
type Params struct {
	Glow     glow.Params           `yaml:"glow"`
	Drift    motion.DriftParams    `yaml:"drift"`
	Magnetic motion.MagneticParams `yaml:"magnetic"`
	Mandala  mandala.Params        `yaml:"mandala"`
	Mask     mask.Params           `yaml:"mask"`
}

func DefaultParams() Params {
	return Params{
		Glow:     glow.DefaultParams(),
		Drift:    motion.DefaultDriftParams(),
		Magnetic: motion.MagneticParams{Ease: 0.08},
		Mandala:  mandala.DefaultParams(),
		Mask:     mask.DefaultParams(),
	}
}

type Element struct {
	Glow     *glow.State
	Drift    *motion.Drift
	Magnetic *motion.Magnetic
	Mandala  *mandala.State
	Mask     *mask.State

	id     string
	kind   Kind
	rect   layout.Rect
	paused bool
	src    random.Source
}

// New creates an element of the given kind with freshly randomised states.
func New(id string, kind Kind, rect layout.Rect, p Params, src random.Source) (*Element, error) {
	if src == nil {
		src = random.Default()
	}
	e := &Element{id: id, kind: kind, rect: rect, src: src}
	switch kind {
	case Title:
		e.Glow = glow.New(src, p.Glow)
	case Word:
		e.Glow = glow.New(src, p.Glow)
		e.Drift = motion.NewDrift(src, p.Drift)
		e.Magnetic = motion.NewMagnetic(p.Magnetic.Ease)
	case Mandala:
		e.Mandala = mandala.New(src, p.Mandala)
		e.Mask = mask.New(src, p.Mask)
	case Image:
		e.Mask = mask.New(src, p.Mask)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return e, nil
}

func (e *Element) ID() string          { return e.id }
func (e *Element) Kind() Kind          { return e.kind }
func (e *Element) Bounds() layout.Rect { return e.rect }
func (e *Element) Move(r layout.Rect)  { e.rect = r }
func (e *Element) Center() layout.Point {
	return e.rect.Center()
}
func (e *Element) Paused() bool { return e.paused }

// SetPaused is driven by the visibility gate. Any transition re-anchors the
// mandala clock so the hidden interval never shows up as one huge step.
func (e *Element) SetPaused(p bool) {
	if p == e.paused {
		return
	}
	e.paused = p
	if e.Mandala != nil {
		e.Mandala.Reset()
	}
}

// Update advances every state to t seconds and records the writes.
func (e *Element) Update(t float64, out *render.Props) bool {
	if e.paused {
		return false
	}
	scale := 1.0
	if e.Glow != nil {
		g := e.Glow.Sample(t)
		out.SetOpacity(g.Opacity)
		out.SetSaturation(g.Saturation)
		out.SetGlow(g.Radii)
		scale = g.Scale
	}
	if e.Drift != nil {
		e.Drift.Step(e.src)
	}
	if e.Magnetic != nil {
		e.Magnetic.Step()
	}
	if e.Drift != nil || e.Magnetic != nil {
		out.SetTransform(motion.Composite(e.Drift, e.Magnetic, scale))
	}
	if e.Mandala != nil {
		m := e.Mandala.Step(t)
		out.SetRotation(m.Degrees)
		out.SetOpacity(m.Opacity)
	}
	if e.Mask != nil {
		out.SetMask(e.Mask.Sample(t))
	}
	return !out.Empty()
}

// Pull sets the magnetic targets. It reports false for elements without a
// magnetic state.
func (e *Element) Pull(pull layout.Point, scale float64) bool {
	if e.Magnetic == nil {
		return false
	}
	e.Magnetic.SetTarget(pull.X, pull.Y, scale)
	return true
}

// Spin sets the mandala speed multiplier target.
func (e *Element) Spin(multiplier float64) bool {
	if e.Mandala == nil {
		return false
	}
	e.Mandala.SetTarget(multiplier)
	return true
}
