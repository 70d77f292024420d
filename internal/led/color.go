package led

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
)

// ParseHex reads "#rrggbb" into a linear colour.
func ParseHex(s string) (RGB, error) {
	if len(s) != 7 || s[0] != '#' {
		return RGB{}, fmt.Errorf("led: bad colour %q", s)
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("led: bad colour %q: %w", s, err)
	}
	return RGB{
		R: float64(v>>16&0xff) / 255,
		G: float64(v>>8&0xff) / 255,
		B: float64(v&0xff) / 255,
	}, nil
}

// Saturate moves c away from (s > 1) or toward (s < 1) its luma.
func (c RGB) Saturate(s float64) RGB {
	l := 0.2126*c.R + 0.7152*c.G + 0.0722*c.B
	return RGB{
		R: clamp01(l + (c.R-l)*s),
		G: clamp01(l + (c.G-l)*s),
		B: clamp01(l + (c.B-l)*s),
	}
}

func (c RGB) Scale(k float64) RGB {
	return RGB{R: clamp01(c.R * k), G: clamp01(c.G * k), B: clamp01(c.B * k)}
}

func (c RGB) NRGBA() color.NRGBA {
	return color.NRGBA{R: to8(c.R), G: to8(c.G), B: to8(c.B), A: 255}
}

func to8(x float64) uint8 { return uint8(math.Round(clamp01(x) * 255)) }

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
