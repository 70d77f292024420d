package mandala

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coreman2200/breath/internal/random"
	"github.com/coreman2200/breath/internal/wave"
)

func twentyMinute() *State {
	p := DefaultParams()
	p.PeriodS = wave.Range{Min: 1200, Max: 1200}
	return New(random.Default(), p)
}

func TestQuarterTurnAfterFiveMinutes(t *testing.T) {
	s := twentyMinute()
	assert.InDelta(t, wave.TwoPi/1200, s.BaseSpeed, 1e-15)

	for ts := 0.0; ts <= 300+1e-9; ts += 1.0 / 60 {
		s.Step(ts)
	}
	assert.InDelta(t, math.Pi/2, s.CumulativeRadians, 1e-3)
	assert.InDelta(t, 90, s.Degrees(), 0.1)
}

func TestFirstFrameOnlyAnchors(t *testing.T) {
	s := twentyMinute()
	s.Step(1000)
	assert.Zero(t, s.CumulativeRadians)
	assert.True(t, s.Running())
	s.Step(1001)
	assert.InDelta(t, s.BaseSpeed, s.CumulativeRadians, 1e-12)
}

func TestResetSkipsPausedInterval(t *testing.T) {
	s := twentyMinute()
	s.Step(0)
	s.Step(1)
	before := s.CumulativeRadians

	s.Reset()
	s.Step(3600)
	assert.Equal(t, before, s.CumulativeRadians)
	s.Step(3601)
	assert.InDelta(t, before+s.BaseSpeed, s.CumulativeRadians, 1e-12)
}

func TestRotationNonDecreasing(t *testing.T) {
	s := New(random.Default(), DefaultParams())
	prev := 0.0
	for i := 0; i < 5000; i++ {
		if i == 1000 {
			s.SetTarget(4)
		}
		if i == 3000 {
			s.SetTarget(1)
		}
		out := s.Step(float64(i) * 0.016)
		assert.GreaterOrEqual(t, s.CumulativeRadians, prev)
		prev = s.CumulativeRadians
		assert.GreaterOrEqual(t, out.Degrees, 0.0)
		assert.Less(t, out.Degrees, 360.0)
		want := math.Mod(s.CumulativeRadians*180/math.Pi, 360)
		assert.InDelta(t, want, out.Degrees, 1e-9)
	}
}

func TestBackwardsTimeIgnored(t *testing.T) {
	s := twentyMinute()
	s.Step(10)
	s.Step(5)
	assert.Zero(t, s.CumulativeRadians)
}

func TestMultiplierLagsTowardTarget(t *testing.T) {
	s := twentyMinute()
	s.SetTarget(3)
	s.Step(0)
	assert.Equal(t, 1.0, s.SpeedMultiplier)
	s.Step(0.016)
	assert.InDelta(t, 1+2*DefaultParams().Ease, s.SpeedMultiplier, 1e-12)
	for i := 2; i < 2000; i++ {
		s.Step(float64(i) * 0.016)
		assert.LessOrEqual(t, s.SpeedMultiplier, 3.0)
	}
	assert.InDelta(t, 3, s.SpeedMultiplier, 1e-6)
}

func TestOpacityBreathesAroundBase(t *testing.T) {
	p := DefaultParams()
	s := New(random.Default(), p)
	for ts := 0.0; ts < 30; ts += 0.1 {
		out := s.Step(ts)
		assert.InDelta(t, p.BaseOpacity, out.Opacity, p.BreathAmplitude+1e-12)
	}
}
