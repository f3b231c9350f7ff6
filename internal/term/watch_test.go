package term

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"growfield/internal/core"
)

type countingSim struct {
	steps   int
	resets  int
	limit   int
	field   []float64
	stepErr error
}

func newCountingSim(limit int) *countingSim {
	f := make([]float64, 4*4*4)
	for i := range f {
		f[i] = float64((i / 4) % 4)
	}
	return &countingSim{limit: limit, field: f}
}

func (s *countingSim) Name() string     { return "counting" }
func (s *countingSim) Size() core.Size  { return core.Size{X: 4, Y: 4, Z: 4} }
func (s *countingSim) Growing() bool    { return s.steps < s.limit }
func (s *countingSim) Field() []float64 { return s.field }

func (s *countingSim) Reset() error {
	s.resets++
	s.steps = 0
	return nil
}

func (s *countingSim) Step() error {
	s.steps++
	return s.stepErr
}

func newScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(40, 6)
	t.Cleanup(screen.Fini)
	return screen
}

func key(r rune) *tcell.EventKey { return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone) }

func rowText(screen tcell.SimulationScreen, y, width int) string {
	var b strings.Builder
	for x := 0; x < width; x++ {
		r, _, _, _ := screen.GetContent(x, y)
		b.WriteRune(r)
	}
	return b.String()
}

func TestKeysChangeView(t *testing.T) {
	sim := newCountingSim(10)
	w := New(newScreen(t), sim, 10, nil)
	assert.Equal(t, 2, w.Slice())

	assert.False(t, w.HandleEvent(key('k')))
	assert.False(t, w.HandleEvent(key('k')))
	assert.False(t, w.HandleEvent(key('k')))
	assert.Equal(t, 3, w.Slice(), "slice stays inside the lattice")
	for i := 0; i < 6; i++ {
		w.HandleEvent(key('j'))
	}
	assert.Equal(t, 0, w.Slice())

	w.HandleEvent(key('p'))
	assert.True(t, w.Projecting())
	w.HandleEvent(key(' '))
	assert.True(t, w.Paused())
	w.HandleEvent(key('n'))
	assert.Equal(t, 1, sim.steps, "single step works while paused")
	w.HandleEvent(key('r'))
	assert.Equal(t, 1, sim.resets)

	assert.True(t, w.HandleEvent(key('q')))
	assert.True(t, w.HandleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
}

func TestTickFollowsPace(t *testing.T) {
	sim := newCountingSim(3)
	w := New(newScreen(t), sim, 10, nil)
	start := time.Unix(10, 0)

	require.NoError(t, w.Tick(start))
	assert.Equal(t, 1, sim.steps)
	require.NoError(t, w.Tick(start.Add(200*time.Millisecond)))
	assert.Equal(t, 3, sim.steps)
	require.NoError(t, w.Tick(start.Add(time.Second)))
	assert.Equal(t, 3, sim.steps, "finished sims are not stepped")

	sim.Reset()
	w.HandleEvent(key(' '))
	require.NoError(t, w.Tick(start.Add(2*time.Second)))
	assert.Zero(t, sim.steps)
}

func TestTickReportsStepError(t *testing.T) {
	sim := newCountingSim(5)
	sim.stepErr = errors.New("mesher offline")
	log, _ := test.NewNullLogger()
	w := New(newScreen(t), sim, 10, log)
	assert.ErrorIs(t, w.Tick(time.Unix(1, 0)), sim.stepErr)
}

func TestDrawHalfBlocksAndStatus(t *testing.T) {
	screen := newScreen(t)
	sim := newCountingSim(1)
	w := New(screen, sim, 10, nil)
	w.Draw()

	r, _, style, _ := screen.GetContent(0, 0)
	assert.Equal(t, upperHalf, r)
	fg, bg, _ := style.Decompose()
	assert.NotEqual(t, fg, bg)

	// 4 rows of the slice fit in two terminal rows
	r, _, _, _ = screen.GetContent(0, 2)
	assert.NotEqual(t, upperHalf, r)

	status := rowText(screen, 5, 40)
	assert.True(t, strings.HasPrefix(status, "counting 4x4x4 z=2/4"), status)

	w.HandleEvent(key('p'))
	require.NoError(t, w.Tick(time.Unix(1, 0)))
	w.Draw()
	assert.Contains(t, rowText(screen, 5, 40), "projection")
}

func TestRunQuitsOnKey(t *testing.T) {
	screen := newScreen(t)
	w := New(screen, newCountingSim(1000), 10, nil)
	errc := make(chan error, 1)
	go func() { errc <- w.Run(context.Background()) }()

	screen.PostEventWait(key('q'))
	select {
	case err := <-errc:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after q")
	}
}

func TestPollEventsStopsWhenReaderLeaves(t *testing.T) {
	screen := newScreen(t)
	done := make(chan struct{})
	events := pollEvents(screen, done)

	// more events than the forwarding buffer holds, with nobody reading
	for i := 0; i < 20; i++ {
		screen.PostEventWait(key('x'))
	}
	close(done)

	received := 0
	timeout := time.After(5 * time.Second)
	for {
		select {
		case _, ok := <-events:
			if !ok {
				assert.LessOrEqual(t, received, 16)
				return
			}
			received++
		case <-timeout:
			t.Fatal("event forwarding did not stop")
		}
	}
}
