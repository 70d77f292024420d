package element

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/breath/internal/layout"
	"github.com/coreman2200/breath/internal/proximity"
	"github.com/coreman2200/breath/internal/random"
	"github.com/coreman2200/breath/internal/render"
	"github.com/coreman2200/breath/internal/visibility"
)

var rect = layout.Rect{Left: 100, Top: 100, Width: 80, Height: 20}

func mustNew(t *testing.T, kind Kind) *Element {
	t.Helper()
	e, err := New(string(kind)+"-1", kind, rect, DefaultParams(), random.Default())
	require.NoError(t, err)
	return e
}

func TestKindsCarryExpectedStates(t *testing.T) {
	title := mustNew(t, Title)
	assert.NotNil(t, title.Glow)
	assert.Nil(t, title.Drift)
	assert.Nil(t, title.Mask)

	word := mustNew(t, Word)
	assert.NotNil(t, word.Glow)
	assert.NotNil(t, word.Drift)
	assert.NotNil(t, word.Magnetic)
	assert.Nil(t, word.Mandala)

	m := mustNew(t, Mandala)
	assert.NotNil(t, m.Mandala)
	assert.NotNil(t, m.Mask)
	assert.Nil(t, m.Glow)

	img := mustNew(t, Image)
	assert.NotNil(t, img.Mask)
	assert.Nil(t, img.Mandala)
}

func TestUnknownKind(t *testing.T) {
	_, err := New("x", Kind("banner"), rect, DefaultParams(), nil)
	assert.True(t, errors.Is(err, ErrUnknownKind))
	_, err = ParseKind("banner")
	assert.True(t, errors.Is(err, ErrUnknownKind))
	k, err := ParseKind("word")
	require.NoError(t, err)
	assert.Equal(t, Word, k)
}

func TestWordUpdateWritesGlowAndTransform(t *testing.T) {
	e := mustNew(t, Word)
	var p render.Props
	require.True(t, e.Update(1.0, &p))
	require.NotNil(t, p.Opacity)
	require.NotNil(t, p.Glow)
	require.NotNil(t, p.Saturation)
	require.NotNil(t, p.Transform)
	assert.Nil(t, p.Rotation)
	assert.Nil(t, p.Mask)
	assert.Equal(t, e.Glow.Scale(), p.Transform.Scale)
	assert.Equal(t, e.Drift.X, p.Transform.X)
}

func TestTitleHasNoTransform(t *testing.T) {
	e := mustNew(t, Title)
	var p render.Props
	require.True(t, e.Update(2.0, &p))
	assert.Nil(t, p.Transform)
}

func TestMandalaUpdateWritesRotationAndMask(t *testing.T) {
	e := mustNew(t, Mandala)
	var p render.Props
	require.True(t, e.Update(0, &p))
	require.NotNil(t, p.Rotation)
	require.NotNil(t, p.Mask)
	require.NotNil(t, p.Opacity)
	assert.Equal(t, 100.0, p.Mask.Inner+p.Mask.Outer)
}

func TestDriftBoundedThroughUpdates(t *testing.T) {
	e := mustNew(t, Word)
	limit := DefaultParams().Drift.Range
	var p render.Props
	for i := 0; i < 5000; i++ {
		e.Update(float64(i)/60, &p)
		assert.LessOrEqual(t, math.Abs(e.Drift.X), limit)
		assert.LessOrEqual(t, math.Abs(e.Drift.Y), limit)
	}
}

func TestPausedWritesNothingAndResumesWithoutJump(t *testing.T) {
	e := mustNew(t, Mandala)
	var p render.Props
	e.Update(0, &p)
	e.Update(1, &p)
	before := e.Mandala.CumulativeRadians

	e.SetPaused(true)
	for i := 0; i < 100; i++ {
		var q render.Props
		assert.False(t, e.Update(float64(2+i), &q))
		assert.True(t, q.Empty())
	}
	e.SetPaused(false)

	var q render.Props
	require.True(t, e.Update(5000, &q))
	assert.Equal(t, before, e.Mandala.CumulativeRadians)
	e.Update(5001, &q)
	assert.InDelta(t, before+e.Mandala.BaseSpeed, e.Mandala.CumulativeRadians, 1e-12)
}

func TestElementIsProximityTarget(t *testing.T) {
	word := mustNew(t, Word)
	m := mustNew(t, Mandala)
	img := mustNew(t, Image)
	eng := proximity.NewEngine(proximity.DefaultParams())

	eng.Pointer(rect.Center().Sub(layout.Point{X: 50}), proximity.Mouse, []proximity.Target{word, m, img})
	assert.Less(t, word.Magnetic.TargetPullX, 0.0)
	assert.Greater(t, word.Magnetic.TargetScale, 1.0)
	assert.Greater(t, m.Mandala.TargetMultiplier, 1.0)
	assert.False(t, img.Pull(layout.Point{}, 1))
	assert.False(t, img.Spin(2))

	eng.Release([]proximity.Target{word, m})
	assert.Equal(t, 1.0, word.Magnetic.TargetScale)
	assert.Equal(t, 1.0, m.Mandala.TargetMultiplier)
	// actual values only return gradually
	assert.Equal(t, 1.0, word.Magnetic.Scale)
}

func TestElementIsPausable(t *testing.T) {
	e := mustNew(t, Word)
	g := visibility.NewGate(visibility.DefaultParams())
	g.SetViewport(layout.Rect{Left: 0, Top: 2000, Width: 800, Height: 600})
	g.Apply(e)
	assert.True(t, e.Paused())
	e.Move(layout.Rect{Left: 10, Top: 2100, Width: 10, Height: 10})
	g.Apply(e)
	assert.False(t, e.Paused())
}

var _ render.Animator = (*Element)(nil)
