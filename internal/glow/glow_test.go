package glow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/breath/internal/random"
	"github.com/coreman2200/breath/internal/wave"
)

func TestNewDrawsFromBands(t *testing.T) {
	p := DefaultParams()
	s := New(random.Default(), p)
	bands := []wave.Band{p.Primary, p.Secondary, p.Tertiary}
	require.Len(t, s.Waves(), 3)
	for i, w := range s.Waves() {
		b := bands[i]
		assert.GreaterOrEqual(t, w.Frequency, b.FreqHz.Min*wave.TwoPi)
		assert.LessOrEqual(t, w.Frequency, b.FreqHz.Max*wave.TwoPi)
		assert.GreaterOrEqual(t, w.Amplitude, b.Amplitude.Min)
		assert.LessOrEqual(t, w.Amplitude, b.Amplitude.Max)
		assert.GreaterOrEqual(t, w.Phase, 0.0)
		assert.Less(t, w.Phase, wave.TwoPi)
	}
}

func TestSampleStaysInBounds(t *testing.T) {
	p := DefaultParams()
	for n := 0; n < 20; n++ {
		s := New(random.Default(), p)
		for ts := 0.0; ts < 60; ts += 0.37 {
			out := s.Sample(ts)
			assert.GreaterOrEqual(t, out.Opacity, p.Opacity.Min)
			assert.LessOrEqual(t, out.Opacity, p.Opacity.Max)
			assert.GreaterOrEqual(t, out.Normalized, 0.0)
			assert.LessOrEqual(t, out.Normalized, 1.0)
			assert.InDelta(t, 1, out.Scale, p.ScaleVariation/2+1e-12)
			assert.GreaterOrEqual(t, out.Saturation, p.Saturation.Min)
			assert.LessOrEqual(t, out.Saturation, p.Saturation.Max)
			assert.Equal(t, out.Scale, s.Scale())
		}
	}
}

func TestRadiiFollowLayerFactors(t *testing.T) {
	p := DefaultParams()
	s := New(random.Fixed(0.25), p)
	out := s.Sample(3)
	amount := p.Intensity.Lerp(out.Normalized)
	for i, f := range p.LayerFactors {
		assert.InDelta(t, amount*f, out.Radii[i], 1e-9)
	}
	assert.Less(t, out.Radii[0], out.Radii[3])
}

func TestZeroWavesSitAtMidpoint(t *testing.T) {
	p := DefaultParams()
	p.Primary.Amplitude = wave.Range{}
	p.Secondary.Amplitude = wave.Range{}
	p.Tertiary.Amplitude = wave.Range{}
	s := New(random.Default(), p)
	out := s.Sample(12.5)
	assert.Equal(t, 0.5, out.Normalized)
	assert.Equal(t, 1.0, out.Scale)
	assert.Equal(t, p.BaseOpacity, out.Opacity)
	assert.InDelta(t, 65*0.8, out.Radii[0], 1e-9)
}

func TestBandDerivedFromAmplitudes(t *testing.T) {
	p := DefaultParams()
	p.WaveRange = 0
	assert.InDelta(t, 0.30, p.Band(), 1e-12)
}

func TestScaleBeforeSampleIsOne(t *testing.T) {
	s := New(random.Default(), DefaultParams())
	assert.Equal(t, 1.0, s.Scale())
}
