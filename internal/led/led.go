// Package led maps frames onto an addressable LED strip: one pixel per
// element, lit from a base colour by the element's opacity, saturation and
// breathing scale.
package led

import (
	"fmt"
	"image"
	"io"
	"sync"

	"github.com/rs/zerolog/log"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/nrzled"
	"periph.io/x/devices/v3/screen1d"
	"periph.io/x/host/v3"

	"github.com/coreman2200/breath/internal/render"
)

// DefaultFreq is the SPI clock that encodes 800kHz NRZ at 3 bits per bit.
const DefaultFreq = 2500 * physic.KiloHertz

type Opts struct {
	Dev      string // "" picks the first SPI port
	Freq     physic.Frequency
	Pixels   int
	Channels int
	Base     RGB
	Limiter  Limiter
}

// Sink is a render.Driver backed by a display.Drawer.
type Sink struct {
	mu     sync.Mutex
	drawer display.Drawer
	port   io.Closer
	opts   Opts

	slots map[string]int
	buf   []RGB
	img   *image.NRGBA
}

// Open brings up the host, finds the SPI port and drives an NRZ strip on it.
// Without a port it draws to the console instead.
func Open(o Opts) (*Sink, error) {
	if o.Pixels <= 0 {
		return nil, fmt.Errorf("led: invalid pixel count %d", o.Pixels)
	}
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("led: host init: %w", err)
	}
	p, err := spireg.Open(o.Dev)
	if err != nil {
		log.Warn().Err(err).Str("dev", o.Dev).Msg("no SPI port; drawing to the console")
		return NewSink(screen1d.New(&screen1d.Opts{X: o.Pixels}), o), nil
	}
	freq := o.Freq
	if freq == 0 {
		freq = DefaultFreq
	}
	d, err := nrzled.NewSPI(p, &nrzled.Opts{NumPixels: o.Pixels, Channels: o.Channels, Freq: freq})
	if err != nil {
		_ = p.Close()
		return nil, fmt.Errorf("led: %w", err)
	}
	if err := d.Halt(); err != nil {
		log.Debug().Err(err).Msg("halt strip")
	}
	s := NewSink(d, o)
	s.port = p
	log.Info().Str("strip", d.String()).Int("pixels", o.Pixels).Msg("LED strip ready")
	return s, nil
}

// NewSink draws onto d. The pixel count follows d's bounds.
func NewSink(d display.Drawer, o Opts) *Sink {
	n := d.Bounds().Dx()
	if n <= 0 {
		n = o.Pixels
	}
	o.Pixels = n
	return &Sink{
		drawer: d,
		opts:   o,
		slots:  map[string]int{},
		buf:    make([]RGB, n),
		img:    image.NewNRGBA(image.Rect(0, 0, n, 1)),
	}
}

// Slot returns the pixel an element is drawn on. Elements take the lowest
// free pixel on first appearance; once the strip is full, later ones are
// skipped until Forget frees a pixel.
func (s *Sink) Slot(id string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.slot(id)
}

func (s *Sink) slot(id string) (int, bool) {
	if i, ok := s.slots[id]; ok {
		return i, true
	}
	if len(s.slots) >= len(s.buf) {
		return 0, false
	}
	taken := make([]bool, len(s.buf))
	for _, i := range s.slots {
		taken[i] = true
	}
	for i, t := range taken {
		if !t {
			s.slots[id] = i
			return i, true
		}
	}
	return 0, false
}

// Forget releases an element's pixel and blanks it on the strip.
func (s *Sink) Forget(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.slots[id]
	if !ok {
		return
	}
	delete(s.slots, id)
	s.buf[i] = RGB{}
	if err := s.draw(); err != nil {
		log.Debug().Err(err).Str("id", id).Msg("blank pixel")
	}
}

// Pixel computes the colour for one element's props. Paused elements are
// absent from a frame, so their pixel keeps its last value.
func (s *Sink) Pixel(p render.Props) RGB {
	c := s.opts.Base
	if p.Saturation != nil {
		c = c.Saturate(*p.Saturation)
	}
	k := 1.0
	if p.Opacity != nil {
		k = *p.Opacity
	}
	if p.Transform != nil {
		k *= p.Transform.Scale
	}
	return c.Scale(k)
}

func (s *Sink) Write(f render.Frame) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range f.Props {
		i, ok := s.slot(p.ID)
		if !ok {
			continue
		}
		s.buf[i] = s.Pixel(p)
	}
	return s.draw()
}

// draw limits a copy of the pixel buffer and pushes it to the drawer.
func (s *Sink) draw() error {
	out := make([]RGB, len(s.buf))
	copy(out, s.buf)
	s.opts.Limiter.Apply(out)
	for i, c := range out {
		s.img.SetNRGBA(i, 0, c.NRGBA())
	}
	return s.drawer.Draw(s.drawer.Bounds(), s.img, image.Point{})
}

// Close blanks the strip and releases the port.
func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.drawer.Halt()
	if s.port != nil {
		if cerr := s.port.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
