// Package term previews frames in a terminal: one row per element with a
// bar for opacity and the current rotation or transform.
package term

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/coreman2200/breath/internal/led"
	"github.com/coreman2200/breath/internal/render"
)

const (
	labelWidth = 12
	barWidth   = 32
)

type Driver struct {
	mu     sync.Mutex
	screen tcell.Screen
	base   led.RGB
	rows   map[string]int
}

// New takes ownership of an initialised screen.
func New(screen tcell.Screen, base led.RGB) *Driver {
	screen.HideCursor()
	screen.Clear()
	return &Driver{screen: screen, base: base, rows: map[string]int{}}
}

// Open initialises the real terminal.
func Open(base led.RGB) (*Driver, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := s.Init(); err != nil {
		return nil, err
	}
	return New(s, base), nil
}

// row returns the element's row, taking the lowest free one below the
// header on first appearance.
func (d *Driver) row(id string) int {
	if r, ok := d.rows[id]; ok {
		return r
	}
	taken := make(map[int]bool, len(d.rows))
	for _, r := range d.rows {
		taken[r] = true
	}
	r := 1
	for taken[r] {
		r++
	}
	d.rows[id] = r
	return r
}

// Forget frees the element's row and clears it.
func (d *Driver) Forget(id string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	r, ok := d.rows[id]
	if !ok {
		return
	}
	delete(d.rows, id)
	w, _ := d.screen.Size()
	for x := 0; x < w; x++ {
		d.screen.SetContent(x, r, ' ', nil, tcell.StyleDefault)
	}
	d.screen.Show()
}

func (d *Driver) Write(f render.Frame) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	dim := tcell.StyleDefault.Foreground(tcell.ColorGray)
	d.put(0, 0, fmt.Sprintf("frame %-8d t=%8.2fs", f.Seq, f.Time), dim)

	_, h := d.screen.Size()
	for _, p := range f.Props {
		y := d.row(p.ID)
		if y >= h {
			continue
		}
		d.drawRow(y, p)
	}
	d.screen.Show()
	return nil
}

func (d *Driver) drawRow(y int, p render.Props) {
	c := d.base
	if p.Saturation != nil {
		c = c.Saturate(*p.Saturation)
	}
	op := 1.0
	if p.Opacity != nil {
		op = *p.Opacity
	}
	px := c.Scale(op).NRGBA()
	lit := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(px.R), int32(px.G), int32(px.B)))
	dim := tcell.StyleDefault.Foreground(tcell.ColorGray)

	label := p.ID
	if len(label) > labelWidth-1 {
		label = label[:labelWidth-1]
	}
	d.put(0, y, fmt.Sprintf("%-*s", labelWidth, label), tcell.StyleDefault)

	n := int(op*barWidth + 0.5)
	for i := 0; i < barWidth; i++ {
		if i < n {
			d.screen.SetContent(labelWidth+i, y, '█', nil, lit)
		} else {
			d.screen.SetContent(labelWidth+i, y, '░', nil, dim)
		}
	}

	var info string
	switch {
	case p.Rotation != nil:
		info = fmt.Sprintf(" op=%.2f rot=%6.1f°", op, *p.Rotation)
	case p.Transform != nil:
		info = fmt.Sprintf(" op=%.2f dx=%+5.1f dy=%+5.1f s=%.3f", op, p.Transform.X, p.Transform.Y, p.Transform.Scale)
	default:
		info = fmt.Sprintf(" op=%.2f", op)
	}
	d.put(labelWidth+barWidth, y, fmt.Sprintf("%-40s", info), dim)
}

func (d *Driver) put(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		d.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

// PollQuit blocks on terminal events and calls quit on Esc, q or Ctrl-C.
// It returns once the screen is finalised.
func (d *Driver) PollQuit(quit func()) {
	for {
		ev := d.screen.PollEvent()
		switch ev := ev.(type) {
		case nil:
			return
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
				(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
				quit()
			}
		case *tcell.EventResize:
			d.mu.Lock()
			d.screen.Sync()
			d.mu.Unlock()
		}
	}
}

func (d *Driver) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.screen.Fini()
	return nil
}
