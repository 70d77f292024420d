package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"periph.io/x/conn/v3/physic"

	"github.com/coreman2200/breath/internal/config"
	"github.com/coreman2200/breath/internal/driver/fake"
	"github.com/coreman2200/breath/internal/driver/term"
	"github.com/coreman2200/breath/internal/led"
	"github.com/coreman2200/breath/internal/render"
	"github.com/coreman2200/breath/internal/scene"
	"github.com/coreman2200/breath/internal/ws"
)

func main() {
	var (
		configPath = flag.String("config", "breath.yaml", "path to config yaml")
		addr       = flag.String("addr", "", "HTTP listen address (overrides config)")
		driver     = flag.String("driver", "", "sink: ws | led | term | sim (overrides config)")
		fps        = flag.Int("fps", 0, "target frames per second (overrides config)")
		seed       = flag.Uint64("seed", 0, "seed for parameter draws (overrides config)")
		reduced    = flag.Bool("reduced-motion", false, "start with all animation paused")
		verbose    = flag.Bool("v", false, "debug logging")
		writeCfg   = flag.Bool("write-config", false, "write the effective config to -config and exit")
	)
	flag.Parse()

	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Fatal().Err(err).Str("path", *configPath).Msg("config invalid")
		}
		log.Warn().Str("path", *configPath).Msg("no config file; using defaults")
		cfg = config.Default()
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *driver != "" {
		cfg.Driver = *driver
	}
	if *fps > 0 {
		cfg.FPS = *fps
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	cfg.Visibility.ReducedMotion = cfg.Visibility.ReducedMotion || *reduced
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("config invalid")
	}
	if *writeCfg {
		if err := config.Save(*configPath, cfg); err != nil {
			log.Fatal().Err(err).Msg("write config")
		}
		log.Info().Str("path", *configPath).Msg("config written")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	base, err := led.ParseHex(cfg.LED.Color)
	if err != nil {
		log.Fatal().Err(err).Msg("led colour")
	}

	// ---- Sink selection: the hub always serves the browser; Next is the extra sink ----
	hub := ws.NewHub()
	hub.DriverName = cfg.Driver
	var closer io.Closer
	switch cfg.Driver {
	case "led":
		sink, err := led.Open(led.Opts{
			Dev:      cfg.LED.Dev,
			Freq:     physic.Frequency(cfg.LED.SpeedHz) * physic.Hertz,
			Pixels:   cfg.LED.Pixels,
			Channels: cfg.LED.Channels,
			Base:     base,
			Limiter:  led.Limiter{WhiteCap: cfg.LED.WhiteCap, ChanMA: cfg.LED.ChanMA, BudgetMA: cfg.LED.BudgetMA},
		})
		if err != nil {
			log.Warn().Err(err).Str("dev", cfg.LED.Dev).Msg("LED init failed; falling back to SIM")
			hub.Next = fake.New(log.Logger, cfg.FPS)
			hub.DriverName = "sim"
		} else {
			hub.Next, closer = sink, sink
		}
	case "term":
		td, err := term.Open(base)
		if err != nil {
			log.Fatal().Err(err).Msg("terminal init")
		}
		// the screen owns stdout from here on
		log.Logger = zerolog.New(io.Discard)
		hub.Next, closer = td, td
		go td.PollQuit(stop)
	case "sim":
		hub.Next = fake.New(log.Logger, cfg.FPS)
	}
	if closer != nil {
		defer closer.Close()
	}

	sc, err := scene.New(cfg, hub, render.SystemClock(), nil)
	if err != nil {
		log.Fatal().Err(err).Msg("scene")
	}
	hub.Attach(sc)

	// ---- HTTP routes ----
	mux := http.NewServeMux()
	hub.Routes(mux)
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      withCORS(mux),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		log.Info().Str("addr", cfg.Addr).Str("driver", hub.DriverName).Int("elements", len(cfg.Scene)).Msg("HTTP server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("http server crashed")
			stop()
		}
	}()

	if err := sc.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("render loop")
	}
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}

func withCORS(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		h.ServeHTTP(w, r)
	})
}
