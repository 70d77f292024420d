// Package motion contains the per-element drift random walk and the
// magnetic lag filter that composite into an element's transform.
package motion

import (
	"math"

	"github.com/coreman2200/breath/internal/random"
)

// Approach moves current a fraction ease of the way to target. For ease in
// (0,1) it never overshoots and never lands on target in one step.
func Approach(current, target, ease float64) float64 {
	return current + (target-current)*ease
}

type DriftParams struct {
	// Range bounds |x| and |y| in pixels.
	Range     float64 `yaml:"range"`
	Speed     float64 `yaml:"speed"`
	Variation float64 `yaml:"variation"`
	Damping   float64 `yaml:"damping"`
	Bounce    float64 `yaml:"bounce"`
}

func DefaultDriftParams() DriftParams {
	return DriftParams{
		Range:     15,
		Speed:     0.1,
		Variation: 0.05,
		Damping:   0.95,
		Bounce:    -0.5,
	}
}

// Drift is a damped random walk kept inside ±Range.
type Drift struct {
	X, Y   float64
	VX, VY float64
	params DriftParams
}

// NewDrift starts at rest position with a random velocity in ±Speed.
func NewDrift(src random.Source, p DriftParams) *Drift {
	return &Drift{
		VX:     random.Uniform(src, -p.Speed, p.Speed),
		VY:     random.Uniform(src, -p.Speed, p.Speed),
		params: p,
	}
}

func (d *Drift) Params() DriftParams { return d.params }

// Step advances the walk by one frame.
func (d *Drift) Step(src random.Source) {
	p := &d.params
	k := p.Speed * p.Variation
	d.VX += random.Uniform(src, -k, k)
	d.VY += random.Uniform(src, -k, k)

	d.VX *= p.Damping
	d.VY *= p.Damping

	d.X += d.VX
	d.Y += d.VY

	d.X, d.VX = contain(d.X, d.VX, p.Range, p.Bounce)
	d.Y, d.VY = contain(d.Y, d.VY, p.Range, p.Bounce)
}

func contain(pos, vel, limit, bounce float64) (float64, float64) {
	if math.Abs(pos) <= limit {
		return pos, vel
	}
	return math.Copysign(limit, pos), vel * bounce
}

type MagneticParams struct {
	Ease float64 `yaml:"ease"`
}

// Magnetic smooths pull and scale toward targets set by pointer proximity.
type Magnetic struct {
	PullX, PullY, Scale                   float64
	TargetPullX, TargetPullY, TargetScale float64
	ease                                  float64
}

func NewMagnetic(ease float64) *Magnetic {
	return &Magnetic{Scale: 1, TargetScale: 1, ease: ease}
}

func (m *Magnetic) Ease() float64 { return m.ease }

// SetTarget records where the filter should head; the current values follow
// on subsequent Steps.
func (m *Magnetic) SetTarget(pullX, pullY, scale float64) {
	m.TargetPullX, m.TargetPullY, m.TargetScale = pullX, pullY, scale
}

// Release returns the targets to neutral.
func (m *Magnetic) Release() { m.SetTarget(0, 0, 1) }

func (m *Magnetic) Step() {
	m.PullX = Approach(m.PullX, m.TargetPullX, m.ease)
	m.PullY = Approach(m.PullY, m.TargetPullY, m.ease)
	m.Scale = Approach(m.Scale, m.TargetScale, m.ease)
}

// Transform is the rendered translate + scale of an element.
type Transform struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Scale float64 `json:"scale"`
}

// Composite adds drift position and magnetic pull, and multiplies breathing
// scale by magnetic scale. Either state may be nil.
func Composite(d *Drift, m *Magnetic, breathScale float64) Transform {
	tr := Transform{Scale: breathScale}
	if d != nil {
		tr.X += d.X
		tr.Y += d.Y
	}
	if m != nil {
		tr.X += m.PullX
		tr.Y += m.PullY
		tr.Scale *= m.Scale
	}
	return tr
}
