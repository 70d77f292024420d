package proximity

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coreman2200/breath/internal/layout"
)

type fakeTarget struct {
	c      layout.Point
	pull   layout.Point
	scale  float64
	spin   float64
	noSpin bool
}

func (f *fakeTarget) Center() layout.Point { return f.c }
func (f *fakeTarget) Pull(p layout.Point, s float64) bool {
	f.pull, f.scale = p, s
	return true
}
func (f *fakeTarget) Spin(m float64) bool {
	if f.noSpin {
		return false
	}
	f.spin = m
	return true
}

func TestStrengthEndpoints(t *testing.T) {
	assert.Equal(t, 1.0, Strength(0, 200))
	assert.Equal(t, 0.0, Strength(200, 200))
	assert.Equal(t, 0.0, Strength(500, 200))
	assert.Equal(t, 0.5, Strength(100, 200))
	assert.Equal(t, 0.0, Strength(0, 0))
}

func TestStrengthMonotonic(t *testing.T) {
	prev := Strength(0, 200)
	for d := 0.5; d <= 200; d += 0.5 {
		s := Strength(d, 200)
		if s > prev {
			t.Fatalf("strength rose at d=%v: %v -> %v", d, prev, s)
		}
		prev = s
	}
}

func TestWordAtCentre(t *testing.T) {
	p := DefaultParams()
	c := layout.Point{X: 100, Y: 100}
	pull, scale := p.Word(c, c, Mouse)
	assert.Equal(t, layout.Point{}, pull)
	assert.InDelta(t, 1+p.ScaleMax, scale, 1e-12)
}

func TestWordPullsTowardPointer(t *testing.T) {
	p := DefaultParams()
	c := layout.Point{X: 100, Y: 100}
	pull, scale := p.Word(c, layout.Point{X: 100 + 1e-6, Y: 100}, Mouse)
	assert.InDelta(t, p.PullStrength, pull.X, 1e-6)
	assert.InDelta(t, 0, pull.Y, 1e-12)
	assert.InDelta(t, 1+p.ScaleMax, scale, 1e-6)

	pull, _ = p.Word(c, layout.Point{X: 100, Y: 0}, Mouse)
	assert.InDelta(t, 0, pull.X, 1e-12)
	assert.InDelta(t, -p.PullStrength*0.5, pull.Y, 1e-12)
}

func TestTouchHasWiderReach(t *testing.T) {
	p := DefaultParams()
	c := layout.Point{}
	ptr := layout.Point{X: 230}
	_, mouse := p.Word(c, ptr, Mouse)
	_, touch := p.Word(c, ptr, Touch)
	assert.Equal(t, 1.0, mouse)
	assert.Greater(t, touch, 1.0)
}

func TestMandalaMultiplier(t *testing.T) {
	p := DefaultParams()
	c := layout.Point{}
	assert.Equal(t, p.SpeedMultiplierMax, p.Mandala(c, c, Mouse))
	assert.Equal(t, 1.0, p.Mandala(c, layout.Point{X: 1000}, Mouse))
}

func TestEnginePointerAndRelease(t *testing.T) {
	e := NewEngine(DefaultParams())
	near := &fakeTarget{c: layout.Point{X: 10}}
	far := &fakeTarget{c: layout.Point{X: 5000}, pull: layout.Point{X: 3}, scale: 1.05, spin: 2}
	plain := &fakeTarget{c: layout.Point{}, noSpin: true}

	e.Pointer(layout.Point{}, Mouse, []Target{near, far, plain})
	assert.Less(t, near.pull.X, 0.0)
	assert.Greater(t, near.scale, 1.0)
	assert.Greater(t, near.spin, 1.0)
	assert.Equal(t, layout.Point{}, far.pull)
	assert.Equal(t, 1.0, far.scale)
	assert.Equal(t, 1.0, far.spin)
	assert.Equal(t, 0.0, plain.spin)

	e.Release([]Target{near})
	assert.Equal(t, layout.Point{}, near.pull)
	assert.Equal(t, 1.0, near.scale)
	assert.Equal(t, 1.0, near.spin)
}
