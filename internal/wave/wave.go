// Package wave holds the sine-wave oscillators every breathing effect is
// built from.
package wave

import (
	"math"

	"github.com/coreman2200/breath/internal/random"
)

const TwoPi = 2 * math.Pi

// Range is a closed interval parameters are drawn from.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Draw picks a value uniformly from the range.
func (r Range) Draw(src random.Source) float64 {
	return random.Uniform(src, r.Min, r.Max)
}

// Lerp maps x in [0,1] onto the range.
func (r Range) Lerp(x float64) float64 {
	return r.Min + (r.Max-r.Min)*x
}

// Band describes how a Wave is randomised: frequency in Hz and amplitude.
type Band struct {
	FreqHz    Range `yaml:"freq_hz"`
	Amplitude Range `yaml:"amplitude"`
}

// Wave is a single sine generator. Frequency is in radians per second.
type Wave struct {
	Frequency float64
	Phase     float64
	Amplitude float64
}

// New builds a wave with a random phase in [0, 2π).
func New(src random.Source, freqHz Range, amplitude float64) Wave {
	return Wave{
		Frequency: freqHz.Draw(src) * TwoPi,
		Phase:     random.Uniform(src, 0, TwoPi),
		Amplitude: amplitude,
	}
}

// FromBand draws frequency, phase and amplitude from b.
func FromBand(src random.Source, b Band) Wave {
	w := New(src, b.FreqHz, 0)
	w.Amplitude = b.Amplitude.Draw(src)
	return w
}

// Sample evaluates sin(t·f + φ)·A at t seconds.
func (w Wave) Sample(t float64) float64 {
	return math.Sin(t*w.Frequency+w.Phase) * w.Amplitude
}

// Composite is a sum of independent waves.
type Composite []Wave

func (c Composite) Sample(t float64) float64 {
	var sum float64
	for _, w := range c {
		sum += w.Sample(t)
	}
	return sum
}

// Normalize maps v from [-r, r] onto [0, 1], clamping anything outside
// the band.
func Normalize(v, r float64) float64 {
	if r <= 0 {
		return 0.5
	}
	return Clamp((v+r)/(2*r), 0, 1)
}

func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
