package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/coreman2200/breath/internal/element"
	"github.com/coreman2200/breath/internal/layout"
	"github.com/coreman2200/breath/internal/proximity"
	"github.com/coreman2200/breath/internal/visibility"
	"github.com/coreman2200/breath/internal/wave"
)

type LED struct {
	Dev      string `yaml:"dev"`      // "" picks the first SPI port
	SpeedHz  int    `yaml:"speed_hz"` // 0 picks 2.5MHz; nrzled accepts 2.4 or 2.5MHz
	Pixels   int    `yaml:"pixels"`
	Channels int    `yaml:"channels"`
	// Color is the base hue of every pixel, "#rrggbb".
	Color    string  `yaml:"color"`
	WhiteCap float64 `yaml:"white_cap"`
	BudgetMA float64 `yaml:"budget_ma"`
	ChanMA   float64 `yaml:"chan_ma"`
}

// ElementSpec seeds an element at startup, for headless runs.
type ElementSpec struct {
	ID   string      `yaml:"id"`
	Kind string      `yaml:"kind"`
	Rect layout.Rect `yaml:"rect"`
}

type Config struct {
	Addr      string  `yaml:"addr"`
	FPS       int     `yaml:"fps"`
	TimeScale float64 `yaml:"time_scale"`
	Driver    string  `yaml:"driver"` // "ws" | "led" | "term" | "sim"
	// Seed makes parameter draws reproducible; 0 keeps them unseeded.
	Seed uint64 `yaml:"seed,omitempty"`

	Animation  element.Params    `yaml:"animation"`
	Proximity  proximity.Params  `yaml:"proximity"`
	Visibility visibility.Params `yaml:"visibility"`
	LED        LED               `yaml:"led"`

	Viewport *layout.Rect  `yaml:"viewport,omitempty"`
	Scene    []ElementSpec `yaml:"scene,omitempty"`
}

func Default() *Config {
	return &Config{
		Addr:       ":8080",
		FPS:        60,
		TimeScale:  1,
		Driver:     "ws",
		Animation:  element.DefaultParams(),
		Proximity:  proximity.DefaultParams(),
		Visibility: visibility.DefaultParams(),
		LED: LED{
			Pixels:   30,
			Channels: 3,
			Color:    "#ffc878",
			WhiteCap: 2.2,
			BudgetMA: 3000,
			ChanMA:   20,
		},
	}
}

// Load reads path over the defaults and validates the result.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := Default()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}

// Validate rejects parameters the animation models cannot honour.
func (c *Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}
	rng := func(name string, r wave.Range) {
		if r.Min > r.Max {
			bad("%s: min %v > max %v", name, r.Min, r.Max)
		}
	}
	freq := func(name string, r wave.Range) {
		rng(name, r)
		if r.Min <= 0 {
			bad("%s: frequencies must be positive", name)
		}
	}
	unit := func(name string, v float64) {
		if v <= 0 || v >= 1 {
			bad("%s: %v not in (0,1)", name, v)
		}
	}

	if c.FPS <= 0 {
		bad("fps: must be positive, got %d", c.FPS)
	}
	if c.TimeScale < 0 {
		bad("time_scale: must not be negative")
	}
	switch c.Driver {
	case "ws", "led", "term", "sim":
	default:
		bad("driver: unknown %q", c.Driver)
	}

	a := &c.Animation
	bands := []struct {
		name string
		band wave.Band
	}{
		{"glow.primary", a.Glow.Primary},
		{"glow.secondary", a.Glow.Secondary},
		{"glow.tertiary", a.Glow.Tertiary},
	}
	for _, b := range bands {
		freq(b.name+".freq_hz", b.band.FreqHz)
		rng(b.name+".amplitude", b.band.Amplitude)
		if b.band.Amplitude.Min < 0 {
			bad("%s.amplitude: must not be negative", b.name)
		}
	}
	rng("glow.opacity", a.Glow.Opacity)
	rng("glow.intensity", a.Glow.Intensity)
	rng("glow.saturation", a.Glow.Saturation)

	unit("drift.damping", a.Drift.Damping)
	if a.Drift.Bounce >= 0 {
		bad("drift.bounce: must be negative, got %v", a.Drift.Bounce)
	}
	if a.Drift.Range <= 0 {
		bad("drift.range: must be positive")
	}
	unit("magnetic.ease", a.Magnetic.Ease)

	rng("mandala.period_s", a.Mandala.PeriodS)
	if a.Mandala.PeriodS.Min <= 0 {
		bad("mandala.period_s: must be positive")
	}
	freq("mandala.breath_freq_hz", a.Mandala.BreathFreqHz)
	unit("mandala.ease", a.Mandala.Ease)

	freq("mask.freq_hz", a.Mask.FreqHz)
	rng("mask.fade", a.Mask.Fade)
	if a.Mask.Fade.Min < 0 || a.Mask.Fade.Max > 50 {
		bad("mask.fade: must lie within [0,50] percent")
	}

	if c.Proximity.SpeedMultiplierMax < 1 {
		bad("proximity.speed_multiplier_max: must be >= 1")
	}
	if c.Visibility.Margin < 0 {
		bad("visibility.margin: must not be negative")
	}

	if c.LED.Pixels <= 0 {
		bad("led.pixels: must be positive")
	}
	if c.LED.Channels != 3 && c.LED.Channels != 4 {
		bad("led.channels: must be 3 or 4, got %d", c.LED.Channels)
	}
	switch c.LED.SpeedHz {
	case 0, 2400000, 2500000:
	default:
		bad("led.speed_hz: must be 2400000 or 2500000, got %d", c.LED.SpeedHz)
	}
	if !validHex(c.LED.Color) {
		bad("led.color: want #rrggbb, got %q", c.LED.Color)
	}

	seen := map[string]bool{}
	for i, s := range c.Scene {
		if s.ID == "" {
			bad("scene[%d]: missing id", i)
		}
		if seen[s.ID] {
			bad("scene[%d]: duplicate id %q", i, s.ID)
		}
		seen[s.ID] = true
		if _, err := element.ParseKind(s.Kind); err != nil {
			bad("scene[%d]: %v", i, err)
		}
	}
	return errors.Join(errs...)
}

func validHex(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	_, err := strconv.ParseUint(s[1:], 16, 32)
	return err == nil
}
