// Package render drives every registered animator once per frame and hands
// the resulting property writes to a Driver.
package render

import (
	"errors"
	"sync/atomic"
	"time"
)

// Driver is the presentation sink.
type Driver interface {
	Write(Frame) error
}

// Forgetter is implemented by drivers that keep per-element state, such as
// an assigned pixel or terminal row.
type Forgetter interface {
	Forget(id string)
}

// Clock is the engine time source. Tests inject a fake.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// SystemClock returns wall-clock time.
func SystemClock() Clock { return realClock{} }

// Engine is the central frame scheduler. It is not safe for concurrent use;
// callers serialise access (see scene.Scene).
type Engine struct {
	Drv Driver
	Reg *Registry

	// TimeScale speeds up or slows down animation time; 0 means 1.
	TimeScale float64

	clock Clock
	t0    time.Time
	seq   uint64

	// metrics for the last frame
	Last struct {
		RenderMS float64
		Written  int
	}
	writeErrors atomic.Uint64
}

func NewEngine(drv Driver, clk Clock) (*Engine, error) {
	if drv == nil {
		return nil, errors.New("render: driver is nil")
	}
	if clk == nil {
		clk = SystemClock()
	}
	return &Engine{
		Drv:   drv,
		Reg:   NewRegistry(),
		clock: clk,
		t0:    clk.Now(),
	}, nil
}

// Now returns seconds since engine start, scaled by TimeScale.
func (e *Engine) Now() float64 {
	scale := 1.0
	if e.TimeScale != 0 {
		scale = e.TimeScale
	}
	return e.clock.Now().Sub(e.t0).Seconds() * scale
}

// Compose updates every animator at t seconds (t < 0 uses Now) and
// collects the writes.
func (e *Engine) Compose(t float64) Frame {
	if t < 0 {
		t = e.Now()
	}
	start := time.Now()
	e.seq++
	f := Frame{Seq: e.seq, Time: t, Props: make([]Props, 0, e.Reg.Len())}
	e.Reg.Each(func(a Animator) {
		p := Props{ID: a.ID()}
		if a.Update(t, &p) {
			f.Props = append(f.Props, p)
		}
	})
	e.Last.RenderMS = float64(time.Since(start).Microseconds()) / 1000.0
	e.Last.Written = len(f.Props)
	return f
}

// Emit writes f to the driver. Frames without writes are not sent. Emit may
// run outside the lock that guards Compose.
func (e *Engine) Emit(f Frame) error {
	if len(f.Props) == 0 {
		return nil
	}
	if err := e.Drv.Write(f); err != nil {
		e.writeErrors.Add(1)
		return err
	}
	return nil
}

// Forget tells the driver an element is gone, when it cares.
func (e *Engine) Forget(id string) {
	if f, ok := e.Drv.(Forgetter); ok {
		f.Forget(id)
	}
}

// WriteErrors counts failed driver writes.
func (e *Engine) WriteErrors() uint64 { return e.writeErrors.Load() }

// RenderOnce composes and emits a frame at t seconds (t < 0 uses Now).
func (e *Engine) RenderOnce(t float64) error {
	return e.Emit(e.Compose(t))
}

// Frame renders at a display-driver timestamp in milliseconds.
func (e *Engine) Frame(timestampMillis float64) error {
	return e.RenderOnce(timestampMillis / 1000)
}
