// Package glow implements the three-wave luminous breathing applied to text:
// a slow deep breath, a shimmer and a faint flicker summed together drive
// opacity, four concentric glow radii, a subtle scale and saturation.
package glow

import (
	"github.com/coreman2200/breath/internal/random"
	"github.com/coreman2200/breath/internal/wave"
)

// Layers is the number of concentric glow radii produced per frame.
const Layers = 4

type Params struct {
	Primary   wave.Band `yaml:"primary"`
	Secondary wave.Band `yaml:"secondary"`
	Tertiary  wave.Band `yaml:"tertiary"`

	BaseOpacity float64    `yaml:"base_opacity"`
	Opacity     wave.Range `yaml:"opacity"`
	// Intensity is the glow radius range in pixels.
	Intensity      wave.Range      `yaml:"intensity"`
	LayerFactors   [Layers]float64 `yaml:"layer_factors"`
	ScaleVariation float64         `yaml:"scale_variation"`
	Saturation     wave.Range      `yaml:"saturation"`

	// WaveRange is R in the [-R,R] band the summed waves are normalised
	// against. Zero derives it from the amplitude maxima.
	WaveRange float64 `yaml:"wave_range"`
}

func DefaultParams() Params {
	return Params{
		Primary: wave.Band{
			FreqHz:    wave.Range{Min: 0.08, Max: 0.15},
			Amplitude: wave.Range{Min: 0.15, Max: 0.20},
		},
		Secondary: wave.Band{
			FreqHz:    wave.Range{Min: 0.2, Max: 0.35},
			Amplitude: wave.Range{Min: 0.04, Max: 0.07},
		},
		Tertiary: wave.Band{
			FreqHz:    wave.Range{Min: 0.5, Max: 0.9},
			Amplitude: wave.Range{Min: 0.01, Max: 0.03},
		},
		BaseOpacity:    0.75,
		Opacity:        wave.Range{Min: 0.7, Max: 1.0},
		Intensity:      wave.Range{Min: 10, Max: 120},
		LayerFactors:   [Layers]float64{0.8, 1.4, 2.2, 3.5},
		ScaleVariation: 0.06,
		Saturation:     wave.Range{Min: 0.9, Max: 1.3},
		WaveRange:      0.4,
	}
}

// Band returns the normalisation half-width R.
func (p Params) Band() float64 {
	if p.WaveRange > 0 {
		return p.WaveRange
	}
	return p.Primary.Amplitude.Max + p.Secondary.Amplitude.Max + p.Tertiary.Amplitude.Max
}

// Output is one frame of glow.
type Output struct {
	Combined   float64
	Normalized float64
	Opacity    float64
	Saturation float64
	Scale      float64
	Radii      [Layers]float64
}

// State is a per-element glow generator. Its waves are fixed at creation;
// only the derived scale changes afterwards.
type State struct {
	waves  wave.Composite
	params Params
	band   float64
	scale  float64
}

func New(src random.Source, p Params) *State {
	return &State{
		waves: wave.Composite{
			wave.FromBand(src, p.Primary),
			wave.FromBand(src, p.Secondary),
			wave.FromBand(src, p.Tertiary),
		},
		params: p,
		band:   p.Band(),
		scale:  1,
	}
}

// Waves exposes the primary, secondary and tertiary generators.
func (s *State) Waves() wave.Composite { return s.waves }

// Scale is the breathing scale computed by the last Sample, 1 before that.
func (s *State) Scale() float64 { return s.scale }

// Sample evaluates the glow at t seconds.
func (s *State) Sample(t float64) Output {
	p := &s.params
	combined := s.waves.Sample(t)
	n := wave.Normalize(combined, s.band)

	out := Output{
		Combined:   combined,
		Normalized: n,
		Opacity:    wave.Clamp(p.BaseOpacity+combined, p.Opacity.Min, p.Opacity.Max),
		Saturation: p.Saturation.Lerp(n),
		Scale:      1 + (n-0.5)*p.ScaleVariation,
	}
	amount := p.Intensity.Lerp(n)
	for i, f := range p.LayerFactors {
		out.Radii[i] = amount * f
	}
	s.scale = out.Scale
	return out
}
