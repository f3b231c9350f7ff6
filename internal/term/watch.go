// Package term shows a growing field in a terminal, one lattice slice (or a
// top-down projection) at a time, using half-block glyphs for two rows per
// character cell.
package term

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"growfield/internal/core"
	"growfield/internal/lattice"
	"growfield/internal/render"
)

const upperHalf = '▀'

// Watcher steps a sim at a fixed rate and draws it to a tcell screen.
type Watcher struct {
	screen  tcell.Screen
	sim     core.Sim
	lat     lattice.Lattice
	pace    *core.FixedStep
	log     logrus.FieldLogger
	grid    *core.ByteGrid
	palette []tcell.Color

	slice   int
	project bool
	paused  bool
	err     error
}

// New returns a watcher for sim drawing to an initialized screen.
func New(screen tcell.Screen, sim core.Sim, tps int, log logrus.FieldLogger) *Watcher {
	if log == nil {
		log = logrus.StandardLogger()
	}
	size := sim.Size()
	w := &Watcher{
		screen: screen,
		sim:    sim,
		lat:    lattice.Lattice{X: size.X, Y: size.Y, Z: size.Z},
		pace:   core.NewFixedStep(tps),
		log:    log,
		grid:   core.NewByteGrid(size.X, size.Y),
		slice:  size.Z / 2,
	}
	for _, c := range render.FieldPalette(render.Levels) {
		w.palette = append(w.palette, tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
	}
	return w
}

// Slice returns the displayed Z layer.
func (w *Watcher) Slice() int { return w.slice }

// Paused reports whether ticking is suspended.
func (w *Watcher) Paused() bool { return w.paused }

// Projecting reports whether the top-down projection is shown.
func (w *Watcher) Projecting() bool { return w.project }

// HandleEvent applies one input event. It reports true when the user asked
// to quit.
func (w *Watcher) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return true
		case tcell.KeyUp:
			w.moveSlice(1)
		case tcell.KeyDown:
			w.moveSlice(-1)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return true
			case ' ':
				w.paused = !w.paused
			case 'k':
				w.moveSlice(1)
			case 'j':
				w.moveSlice(-1)
			case 'p':
				w.project = !w.project
			case 'n':
				w.stepOnce()
			case 'r':
				if err := w.sim.Reset(); err != nil {
					w.err = err
				}
			}
		}
	case *tcell.EventResize:
		w.screen.Sync()
	}
	return false
}

func (w *Watcher) moveSlice(d int) {
	w.slice += d
	if w.slice < 0 {
		w.slice = 0
	}
	if w.slice >= w.lat.Z {
		w.slice = w.lat.Z - 1
	}
}

func (w *Watcher) stepOnce() {
	if !w.sim.Growing() {
		return
	}
	if err := w.sim.Step(); err != nil {
		w.err = err
	}
}

// Tick runs the steps that are due at now unless paused.
func (w *Watcher) Tick(now time.Time) error {
	due := w.pace.Due(now)
	if w.paused {
		return nil
	}
	for i := 0; i < due && w.sim.Growing() && w.err == nil; i++ {
		w.stepOnce()
	}
	return w.err
}

// Draw renders the current view and status line.
func (w *Watcher) Draw() {
	w.screen.Clear()
	field := w.sim.Field()
	lo, hi := render.Range(field)
	var err error
	if w.project {
		err = render.Projection(w.lat, field, lo, hi, w.grid)
	} else {
		err = render.QuantizeSlice(w.lat, field, w.slice, lo, hi, w.grid)
	}
	if err != nil {
		w.err = err
		return
	}

	cols, rows := w.screen.Size()
	last := len(w.palette) - 1
	color := func(v uint8) tcell.Color {
		if int(v) > last {
			return w.palette[last]
		}
		return w.palette[v]
	}
	for y := 0; y < w.grid.H && y/2 < rows-1; y += 2 {
		for x := 0; x < w.grid.W && x < cols; x++ {
			style := tcell.StyleDefault.Foreground(color(w.grid.At(x, y)))
			if y+1 < w.grid.H {
				style = style.Background(color(w.grid.At(x, y+1)))
			}
			w.screen.SetContent(x, y/2, upperHalf, nil, style)
		}
	}
	w.drawText(0, rows-1, w.status(), tcell.StyleDefault.Foreground(tcell.ColorWhite))
	w.screen.Show()
}

func (w *Watcher) status() string {
	view := fmt.Sprintf("z=%d/%d", w.slice, w.lat.Z)
	if w.project {
		view = "projection"
	}
	state := "growing"
	switch {
	case w.err != nil:
		state = "error: " + w.err.Error()
	case !w.sim.Growing():
		state = "done"
	case w.paused:
		state = "paused"
	}
	return fmt.Sprintf("%s %s %s %s", w.sim.Name(), w.lat, view, state)
}

func (w *Watcher) drawText(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		w.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

// Run polls input and ticks until the user quits or ctx ends. Step errors
// are shown on the status line and returned on exit.
func (w *Watcher) Run(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)
	events := pollEvents(w.screen, done)

	ticker := time.NewTicker(w.pace.Interval())
	defer ticker.Stop()
	w.Draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok || w.HandleEvent(ev) {
				return w.err
			}
			w.Draw()
		case now := <-ticker.C:
			if err := w.Tick(now); err != nil {
				w.log.WithError(err).Warn("growth step failed")
			}
			w.Draw()
		}
	}
}

// pollEvents forwards screen events until the screen is finalized or done is
// closed, then closes the returned channel.
func pollEvents(screen tcell.Screen, done <-chan struct{}) <-chan tcell.Event {
	events := make(chan tcell.Event, 16)
	go func() {
		defer close(events)
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case <-done:
				return
			default:
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()
	return events
}
