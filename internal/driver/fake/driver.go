// Package fake is a headless sink that logs a compact summary of frames.
package fake

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/coreman2200/breath/internal/render"
)

// Driver counts frames and logs every Every-th one (every frame when 0).
type Driver struct {
	Log   zerolog.Logger
	Every int

	mu    sync.Mutex
	count int
	props int
	last  render.Frame
}

func New(l zerolog.Logger, every int) *Driver {
	return &Driver{Log: l, Every: every}
}

func (d *Driver) Write(f render.Frame) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.count++
	d.props += len(f.Props)
	d.last = f
	if d.Every > 1 && d.count%d.Every != 0 {
		return nil
	}

	var sum float64
	var n int
	for _, p := range f.Props {
		if p.Opacity != nil {
			sum += *p.Opacity
			n++
		}
	}
	ev := d.Log.Info().
		Uint64("seq", f.Seq).
		Float64("t", f.Time).
		Int("elements", len(f.Props))
	if n > 0 {
		ev = ev.Float64("avg_opacity", sum/float64(n))
	}
	if len(f.Props) > 0 {
		first := f.Props[0]
		ev = ev.Str("first", first.ID)
		if first.Rotation != nil {
			ev = ev.Float64("rotation", *first.Rotation)
		}
	}
	ev.Msg("frame")
	return nil
}

// Count returns the number of frames written and element updates seen.
func (d *Driver) Count() (frames, props int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.count, d.props
}

func (d *Driver) Last() render.Frame {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.last
}
