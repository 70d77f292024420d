// Package visibility decides which elements should animate: anything outside
// the viewport (plus a look-ahead margin) is paused, and everything is paused
// while the user prefers reduced motion.
package visibility

import "github.com/coreman2200/breath/internal/layout"

type Params struct {
	// Margin starts animating elements slightly before they scroll in.
	Margin        float64 `yaml:"margin"`
	ReducedMotion bool    `yaml:"reduced_motion"`
}

func DefaultParams() Params {
	return Params{Margin: 50}
}

// Pausable is the only thing the gate ever touches.
type Pausable interface {
	Bounds() layout.Rect
	SetPaused(bool)
}

type Gate struct {
	params   Params
	viewport layout.Rect
	known    bool
}

func NewGate(p Params) *Gate { return &Gate{params: p} }

func (g *Gate) SetViewport(vp layout.Rect) {
	g.viewport = vp
	g.known = true
}

func (g *Gate) Viewport() (layout.Rect, bool) { return g.viewport, g.known }

func (g *Gate) SetReducedMotion(v bool) { g.params.ReducedMotion = v }

func (g *Gate) ReducedMotion() bool { return g.params.ReducedMotion }

// Paused reports whether an element with bounds r should be paused. Until a
// viewport is known, only reduced motion pauses.
func (g *Gate) Paused(r layout.Rect) bool {
	if g.params.ReducedMotion {
		return true
	}
	if !g.known {
		return false
	}
	return !g.viewport.Grow(g.params.Margin).Intersects(r)
}

// Apply sets the pause flag on every element.
func (g *Gate) Apply(items ...Pausable) {
	for _, it := range items {
		it.SetPaused(g.Paused(it.Bounds()))
	}
}
