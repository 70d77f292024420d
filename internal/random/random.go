// Package random provides the pseudo-random source used to pick per-element
// animation parameters and to perturb drift velocities. Tests substitute a
// deterministic source.
package random

import "math/rand/v2"

// Source yields uniformly distributed values in [0, 1).
type Source interface {
	Float64() float64
}

type global struct{}

func (global) Float64() float64 { return rand.Float64() }

// Default returns the process-wide, non-deterministic source.
func Default() Source { return global{} }

// Seeded returns a reproducible source, handy for simulations.
func Seeded(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Uniform draws from [min, max) using src.
func Uniform(src Source, min, max float64) float64 {
	return src.Float64()*(max-min) + min
}

// Fixed always returns the same value. Fixed(0.5) makes every symmetric
// perturbation zero.
type Fixed float64

func (f Fixed) Float64() float64 { return float64(f) }

// Sequence replays its values in order, wrapping around at the end.
type Sequence struct {
	Values []float64
	i      int
}

func (s *Sequence) Float64() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	v := s.Values[s.i%len(s.Values)]
	s.i++
	return v
}
