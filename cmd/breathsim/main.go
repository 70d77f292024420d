// breathsim renders a scene headless on a fixed timestep and logs frame
// summaries, for tuning parameters without a browser.
package main

import (
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/coreman2200/breath/internal/config"
	"github.com/coreman2200/breath/internal/driver/fake"
	"github.com/coreman2200/breath/internal/element"
	"github.com/coreman2200/breath/internal/layout"
	"github.com/coreman2200/breath/internal/proximity"
	"github.com/coreman2200/breath/internal/scene"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to config yaml (defaults when empty)")
		frames     = flag.Int("frames", 600, "frames to simulate")
		fps        = flag.Int("fps", 0, "simulation frames per second (overrides config)")
		seed       = flag.Uint64("seed", 1, "seed for parameter draws")
		every      = flag.Int("every", 60, "log every Nth frame")
		pointerX   = flag.Float64("pointer-x", -1, "hold a mouse pointer at this x (negative for none)")
		pointerY   = flag.Float64("pointer-y", 0, "pointer y")
	)
	flag.Parse()

	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	cfg := config.Default()
	if *configPath != "" {
		c, err := config.Load(*configPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", *configPath).Msg("config")
		}
		cfg = c
	}
	if *fps > 0 {
		cfg.FPS = *fps
	}
	cfg.Seed = *seed
	if len(cfg.Scene) == 0 {
		cfg.Scene = demoScene()
	}

	drv := fake.New(log.Logger, *every)
	sc, err := scene.New(cfg, drv, nil, nil)
	if err != nil {
		log.Fatal().Err(err).Msg("scene")
	}
	if *pointerX >= 0 {
		sc.Pointer(proximity.Mouse, layout.Point{X: *pointerX, Y: *pointerY})
	}

	step := 1 / float64(cfg.FPS)
	for i := 0; i < *frames; i++ {
		if err := sc.Tick(float64(i) * step); err != nil {
			log.Warn().Err(err).Int("frame", i).Msg("tick")
		}
	}
	n, props := drv.Count()
	snap := sc.Snapshot()
	log.Info().
		Int("frames", n).
		Int("updates", props).
		Int("elements", snap.Elements).
		Int("paused", snap.Paused).
		Float64("sim_s", float64(*frames)*step).
		Msg("done")
}

func demoScene() []config.ElementSpec {
	specs := []config.ElementSpec{
		{ID: "title", Kind: string(element.Title), Rect: layout.Rect{Left: 340, Top: 80, Width: 600, Height: 96}},
		{ID: "mandala", Kind: string(element.Mandala), Rect: layout.Rect{Left: 440, Top: 220, Width: 400, Height: 400}},
		{ID: "image", Kind: string(element.Image), Rect: layout.Rect{Left: 40, Top: 220, Width: 320, Height: 240}},
	}
	for i, w := range []string{"inhale", "hold", "exhale", "rest"} {
		specs = append(specs, config.ElementSpec{
			ID:   w,
			Kind: string(element.Word),
			Rect: layout.Rect{Left: 420 + float64(i)*120, Top: 660, Width: 100, Height: 28},
		})
	}
	return specs
}
