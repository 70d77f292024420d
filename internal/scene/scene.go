// Package scene is the application core: it owns the frame engine, the
// elements it drives, pointer attraction and the visibility gate, and
// serialises every entry point so transports can call in from any goroutine.
package scene

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/coreman2200/breath/internal/config"
	"github.com/coreman2200/breath/internal/diagnostics"
	"github.com/coreman2200/breath/internal/element"
	"github.com/coreman2200/breath/internal/layout"
	"github.com/coreman2200/breath/internal/proximity"
	"github.com/coreman2200/breath/internal/random"
	"github.com/coreman2200/breath/internal/render"
	"github.com/coreman2200/breath/internal/visibility"
)

var (
	ErrDuplicateElement = errors.New("scene: duplicate element")
	ErrUnknownElement   = errors.New("scene: unknown element")
)

type Scene struct {
	mu     sync.Mutex
	eng    *render.Engine
	elems  map[string]*element.Element
	params element.Params
	prox   *proximity.Engine
	gate   *visibility.Gate
	src    random.Source
	fps    int

	// OnDiag, when set, receives lifecycle and input diagnostics.
	OnDiag func(diagnostics.Diagnostic)
}

// New wires a scene from cfg and seeds the elements it lists.
func New(cfg *config.Config, drv render.Driver, clk render.Clock, src random.Source) (*Scene, error) {
	eng, err := render.NewEngine(drv, clk)
	if err != nil {
		return nil, err
	}
	eng.TimeScale = cfg.TimeScale
	switch {
	case src != nil:
	case cfg.Seed != 0:
		src = random.Seeded(cfg.Seed)
	default:
		src = random.Default()
	}
	s := &Scene{
		eng:    eng,
		elems:  map[string]*element.Element{},
		params: cfg.Animation,
		prox:   proximity.NewEngine(cfg.Proximity),
		gate:   visibility.NewGate(cfg.Visibility),
		src:    src,
		fps:    cfg.FPS,
	}
	if cfg.Viewport != nil {
		s.gate.SetViewport(*cfg.Viewport)
	}
	for _, spec := range cfg.Scene {
		kind, err := element.ParseKind(spec.Kind)
		if err != nil {
			return nil, err
		}
		if err := s.Add(spec.ID, kind, spec.Rect); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Engine exposes the underlying scheduler. Callers must not use it
// concurrently with a running scene.
func (s *Scene) Engine() *render.Engine { return s.eng }

func (s *Scene) diag(d diagnostics.Diagnostic) {
	if s.OnDiag != nil {
		s.OnDiag(d)
	}
}

// Add creates an element and registers it with the frame engine.
func (s *Scene) Add(id string, kind element.Kind, r layout.Rect) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.elems[id]; ok {
		s.diag(diagnostics.New(diagnostics.Warn, diagnostics.CodeRejected, "Duplicate element").With("id", id))
		return fmt.Errorf("%w: %q", ErrDuplicateElement, id)
	}
	e, err := element.New(id, kind, r, s.params, s.src)
	if err != nil {
		s.diag(diagnostics.New(diagnostics.Warn, diagnostics.CodeRejected, "Element rejected").With("id", id).With("kind", string(kind)))
		return err
	}
	s.gate.Apply(e)
	s.elems[id] = e
	s.eng.Reg.Register(e)
	log.Debug().Str("id", id).Str("kind", string(kind)).Bool("paused", e.Paused()).Msg("element registered")
	s.diag(diagnostics.New(diagnostics.Info, diagnostics.CodeRegistered, "Element registered").With("id", id))
	return nil
}

// Remove deregisters the element; its states are dropped with it.
func (s *Scene) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.elems[id]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownElement, id)
	}
	delete(s.elems, id)
	s.eng.Reg.Deregister(id)
	s.eng.Forget(id)
	log.Debug().Str("id", id).Msg("element removed")
	s.diag(diagnostics.New(diagnostics.Info, diagnostics.CodeRemoved, "Element removed").With("id", id))
	return nil
}

// Move updates an element's on-screen bounds after layout changes.
func (s *Scene) Move(id string, r layout.Rect) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.elems[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownElement, id)
	}
	e.Move(r)
	s.gate.Apply(e)
	return nil
}

// Element returns the element for inspection. Not safe while Run is active.
func (s *Scene) Element(id string) (*element.Element, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.elems[id]
	return e, ok
}

func (s *Scene) targets() []proximity.Target {
	out := make([]proximity.Target, 0, len(s.elems))
	s.eng.Reg.Each(func(a render.Animator) {
		if e, ok := s.elems[a.ID()]; ok {
			out = append(out, e)
		}
	})
	return out
}

// Pointer applies a mouse or touch position to every element.
func (s *Scene) Pointer(in proximity.Input, p layout.Point) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prox.Pointer(p, in, s.targets())
}

// Touch applies the first touch point. A move without points is ignored.
func (s *Scene) Touch(points []layout.Point) bool {
	if len(points) == 0 {
		return false
	}
	s.Pointer(proximity.Touch, points[0])
	return true
}

// Leave resets every magnetic target, on pointer-leave or touch-end.
func (s *Scene) Leave() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prox.Release(s.targets())
}

func (s *Scene) SetViewport(r layout.Rect) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gate.SetViewport(r)
	s.applyGate()
}

func (s *Scene) SetReducedMotion(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gate.SetReducedMotion(v)
	s.applyGate()
	if v {
		s.diag(diagnostics.New(diagnostics.Info, diagnostics.CodeMotionPaused, "Reduced motion: all animation paused"))
	}
}

func (s *Scene) applyGate() {
	for _, e := range s.elems {
		s.gate.Apply(e)
	}
}

// Tick renders one frame at t seconds (t < 0 uses the engine clock). The
// lock is released before the driver write.
func (s *Scene) Tick(t float64) error {
	s.mu.Lock()
	f := s.eng.Compose(t)
	s.mu.Unlock()
	return s.eng.Emit(f)
}

// Run renders at the configured rate until ctx is done.
func (s *Scene) Run(ctx context.Context) error {
	fps := s.fps
	if fps <= 0 {
		fps = 60
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := s.Tick(-1); err != nil {
				log.Debug().Err(err).Msg("write frame")
			}
		}
	}
}

type Snapshot struct {
	Elements    int     `json:"elements"`
	Paused      int     `json:"paused"`
	Written     int     `json:"written"`
	RenderMS    float64 `json:"render_ms"`
	WriteErrors uint64  `json:"write_errors"`
	Reduced     bool    `json:"reduced_motion"`
	FPS         int     `json:"fps"`
}

func (s *Scene) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot{
		Elements:    len(s.elems),
		Written:     s.eng.Last.Written,
		RenderMS:    s.eng.Last.RenderMS,
		WriteErrors: s.eng.WriteErrors(),
		Reduced:     s.gate.ReducedMotion(),
		FPS:         s.fps,
	}
	for _, e := range s.elems {
		if e.Paused() {
			snap.Paused++
		}
	}
	return snap
}

// Layout lists element IDs and bounds in registration order, for sinks that
// map elements onto physical space.
func (s *Scene) Layout() []Placement {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Placement, 0, len(s.elems))
	s.eng.Reg.Each(func(a render.Animator) {
		e := s.elems[a.ID()]
		out = append(out, Placement{ID: e.ID(), Kind: e.Kind(), Rect: e.Bounds()})
	})
	return out
}

type Placement struct {
	ID   string       `json:"id"`
	Kind element.Kind `json:"kind"`
	Rect layout.Rect  `json:"rect"`
}
