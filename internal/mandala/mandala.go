// Package mandala turns ornamental discs: a slow rotation whose speed can be
// nudged by pointer proximity, with an independent opacity breath.
package mandala

import (
	"math"

	"github.com/coreman2200/breath/internal/motion"
	"github.com/coreman2200/breath/internal/random"
	"github.com/coreman2200/breath/internal/wave"
)

type Params struct {
	// PeriodS is the seconds-per-revolution range.
	PeriodS         wave.Range `yaml:"period_s"`
	BreathFreqHz    wave.Range `yaml:"breath_freq_hz"`
	BaseOpacity     float64    `yaml:"base_opacity"`
	BreathAmplitude float64    `yaml:"breath_amplitude"`
	Ease            float64    `yaml:"ease"`
}

func DefaultParams() Params {
	return Params{
		PeriodS:         wave.Range{Min: 1200, Max: 1800},
		BreathFreqHz:    wave.Range{Min: 0.15, Max: 0.25},
		BaseOpacity:     0.8,
		BreathAmplitude: 0.08,
		Ease:            0.03,
	}
}

// State integrates rotation. The accumulator is never wrapped so the
// rotation rate stays continuous when the multiplier changes.
type State struct {
	BaseSpeed         float64 // rad/s
	SpeedMultiplier   float64
	TargetMultiplier  float64
	CumulativeRadians float64

	breath      wave.Wave
	baseOpacity float64
	ease        float64

	lastTime float64
	running  bool
}

func New(src random.Source, p Params) *State {
	speed := random.Uniform(src, 1/p.PeriodS.Max, 1/p.PeriodS.Min) * wave.TwoPi
	return &State{
		BaseSpeed:        speed,
		SpeedMultiplier:  1,
		TargetMultiplier: 1,
		breath:           wave.New(src, p.BreathFreqHz, p.BreathAmplitude),
		baseOpacity:      p.BaseOpacity,
		ease:             p.Ease,
	}
}

// Output is one frame of mandala.
type Output struct {
	Degrees float64
	Opacity float64
}

// Reset forgets the last frame time so the next Step only re-anchors the
// clock. Called whenever the element is paused or resumed.
func (s *State) Reset() { s.running = false }

// Running reports whether a previous frame time is known.
func (s *State) Running() bool { return s.running }

func (s *State) SetTarget(multiplier float64) { s.TargetMultiplier = multiplier }

// Step advances to t seconds.
func (s *State) Step(t float64) Output {
	if !s.running {
		s.lastTime = t
		s.running = true
	} else {
		dt := t - s.lastTime
		if dt < 0 {
			dt = 0
		}
		s.lastTime = t
		s.SpeedMultiplier = motion.Approach(s.SpeedMultiplier, s.TargetMultiplier, s.ease)
		s.CumulativeRadians += s.BaseSpeed * s.SpeedMultiplier * dt
	}
	return Output{
		Degrees: s.Degrees(),
		Opacity: s.baseOpacity + s.breath.Sample(t),
	}
}

// Degrees is the rendered angle in [0, 360).
func (s *State) Degrees() float64 {
	r := math.Mod(s.CumulativeRadians, wave.TwoPi)
	if r < 0 {
		r += wave.TwoPi
	}
	return r * 180 / math.Pi
}
