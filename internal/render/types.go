package render

import (
	"sort"

	"github.com/coreman2200/breath/internal/mask"
	"github.com/coreman2200/breath/internal/motion"
)

// Props are the presentational writes for one element in one frame. A nil
// field means the property was not touched this frame.
type Props struct {
	ID         string            `json:"id"`
	Opacity    *float64          `json:"opacity,omitempty"`
	Saturation *float64          `json:"saturation,omitempty"`
	Glow       *[4]float64       `json:"glow,omitempty"`
	Transform  *motion.Transform `json:"transform,omitempty"`
	Rotation   *float64          `json:"rotation,omitempty"`
	Mask       *mask.Edges       `json:"mask,omitempty"`
}

func (p *Props) SetOpacity(v float64)    { p.Opacity = &v }
func (p *Props) SetSaturation(v float64) { p.Saturation = &v }
func (p *Props) SetGlow(r [4]float64)    { p.Glow = &r }
func (p *Props) SetRotation(deg float64) { p.Rotation = &deg }

func (p *Props) SetTransform(t motion.Transform) { p.Transform = &t }
func (p *Props) SetMask(e mask.Edges)            { p.Mask = &e }

// Empty reports whether nothing was written.
func (p *Props) Empty() bool {
	return p.Opacity == nil && p.Saturation == nil && p.Glow == nil &&
		p.Transform == nil && p.Rotation == nil && p.Mask == nil
}

// Frame is everything written during one tick.
type Frame struct {
	Seq   uint64  `json:"seq"`
	Time  float64 `json:"t"`
	Props []Props `json:"props"`
}

// Animator is one entity driven by the engine.
type Animator interface {
	ID() string
	// Update advances to t seconds and fills out. It returns false when
	// nothing was written, e.g. while paused.
	Update(t float64, out *Props) bool
	SetPaused(bool)
}

// Registry keeps animators in registration order.
type Registry struct {
	m     map[string]Animator
	order []string
}

func NewRegistry() *Registry { return &Registry{m: map[string]Animator{}} }

// Register adds a, replacing any animator with the same ID in place.
func (r *Registry) Register(a Animator) {
	if a == nil {
		return
	}
	if _, ok := r.m[a.ID()]; !ok {
		r.order = append(r.order, a.ID())
	}
	r.m[a.ID()] = a
}

// Deregister removes the animator; it is never updated again.
func (r *Registry) Deregister(id string) bool {
	if _, ok := r.m[id]; !ok {
		return false
	}
	delete(r.m, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

func (r *Registry) Get(id string) (Animator, bool) { a, ok := r.m[id]; return a, ok }

func (r *Registry) Len() int { return len(r.order) }

// Each visits animators in registration order.
func (r *Registry) Each(fn func(Animator)) {
	for _, id := range r.order {
		fn(r.m[id])
	}
}

// List returns the IDs sorted.
func (r *Registry) List() []string {
	out := make([]string, 0, len(r.m))
	for k := range r.m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
