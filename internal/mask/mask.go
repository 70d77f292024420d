// Package mask breathes the transparent edges of images: a symmetric
// vignette whose softness swells and recedes.
package mask

import (
	"fmt"

	"github.com/coreman2200/breath/internal/random"
	"github.com/coreman2200/breath/internal/wave"
)

type Params struct {
	FreqHz wave.Range `yaml:"freq_hz"`
	// Fade is the edge fade range in percent.
	Fade wave.Range `yaml:"fade"`
}

func DefaultParams() Params {
	return Params{
		FreqHz: wave.Range{Min: 0.1, Max: 0.2},
		Fade:   wave.Range{Min: 10, Max: 20},
	}
}

type State struct {
	breath wave.Wave
	fade   wave.Range
}

func New(src random.Source, p Params) *State {
	return &State{
		breath: wave.New(src, p.FreqHz, 1),
		fade:   p.Fade,
	}
}

// Edges are the gradient stops in percent: transparent at 0%, opaque from
// Inner to Outer, transparent again at 100%.
type Edges struct {
	Inner float64 `json:"inner"`
	Outer float64 `json:"outer"`
}

func (s *State) Sample(t float64) Edges {
	b := s.breath.Sample(t)
	f := s.fade.Lerp((b + 1) / 2)
	return Edges{Inner: f, Outer: 100 - f}
}

// CSS renders the two perpendicular gradients as a mask-image value.
func (e Edges) CSS() string {
	g := func(dir string) string {
		return fmt.Sprintf("linear-gradient(to %s, transparent 0%%, black %.3f%%, black %.3f%%, transparent 100%%)",
			dir, e.Inner, e.Outer)
	}
	return g("bottom") + ", " + g("right")
}
