// Package grow hosts a growth session: it owns the field state, ticks the
// engine, publishes meshes into a scene and steps frames for offline renders.
package grow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"growfield/internal/core"
	"growfield/internal/growth"
	"growfield/internal/lattice"
	"growfield/internal/mesh"
	"growfield/internal/publish"
	"growfield/internal/scene"
	"growfield/internal/seed"
)

// ErrTickLimit reports a run still growing after Config.MaxTicks ticks.
var ErrTickLimit = errors.New("grow: tick limit reached")

// World is one growth session bound to one scene object.
type World struct {
	cfg      Config
	lat      lattice.Lattice
	strategy seed.Strategy

	state  *growth.State
	engine *growth.Engine
	pub    *publish.Publisher
	scene  *scene.Scene
	now    func() time.Time
	log    logrus.FieldLogger

	saved    scene.FrameRange
	started  time.Time
	last     growth.Result
	mesh     mesh.Mesh
	finished bool
	// stale is set when a publish failed and must be retried.
	stale bool
}

// Option configures a World.
type Option func(*World)

// WithScene publishes into sc instead of a private scene.
func WithScene(sc *scene.Scene) Option {
	return func(w *World) {
		if sc != nil {
			w.scene = sc
		}
	}
}

// WithMesher replaces the surface nets mesher.
func WithMesher(m mesh.Mesher) Option {
	return func(w *World) {
		if m != nil {
			w.pub.Mesher = m
		}
	}
}

// WithLogger sets the session logger.
func WithLogger(log logrus.FieldLogger) Option {
	return func(w *World) {
		if log != nil {
			w.log = log
		}
	}
}

// WithClock replaces time.Now for both tick timing and run statistics.
func WithClock(now func() time.Time) Option {
	return func(w *World) {
		if now != nil {
			w.now = now
		}
	}
}

// New returns a session using DefaultConfig.
func New(opts ...Option) (*World, error) {
	return NewWithConfig(DefaultConfig(), opts...)
}

// NewWithConfig validates cfg, seeds the field and makes the session ready
// to Step.
func NewWithConfig(cfg Config, opts ...Option) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	lat, _ := cfg.Lattice()
	strategy, _ := cfg.Strategy()
	w := &World{
		cfg:      cfg,
		lat:      lat,
		strategy: strategy,
		scene:    scene.New(),
		now:      time.Now,
		log:      logrus.StandardLogger(),
		pub:      &publish.Publisher{Mesher: mesh.SurfaceNets{}},
	}
	for _, opt := range opts {
		opt(w)
	}
	w.log = w.log.WithField("object", cfg.Object)
	w.engine = growth.NewEngine(growth.WithClock(w.now), growth.WithLogger(w.log))
	w.pub.Scene = w.scene
	w.pub.Object = cfg.Object
	w.pub.Recenter = cfg.Recenter
	w.pub.Log = w.log
	w.scene.AddObject(cfg.Object)

	if err := w.Reset(); err != nil {
		return nil, err
	}
	return w, nil
}

// Name implements core.Sim.
func (w *World) Name() string { return w.strategy.String() }

// Size implements core.Sim.
func (w *World) Size() core.Size { return core.Size{X: w.lat.X, Y: w.lat.Y, Z: w.lat.Z} }

// Lattice returns the session lattice.
func (w *World) Lattice() lattice.Lattice { return w.lat }

// Config returns the active configuration.
func (w *World) Config() Config { return w.cfg }

// Field implements core.Sim; it is the current field.
func (w *World) Field() []float64 { return w.state.Current }

// Target returns the field the growth converges to.
func (w *World) Target() []float64 { return w.state.Target }

// Progress implements core.ProgressProvider.
func (w *World) Progress() []float64 { return w.state.Progress }

// Growing implements core.Sim.
func (w *World) Growing() bool { return !w.finished }

// Ticks returns the number of ticks since the last Reset.
func (w *World) Ticks() int { return w.state.Ticks }

// LastResult returns the summary of the most recent tick.
func (w *World) LastResult() growth.Result { return w.last }

// Mesh returns the most recently published mesh.
func (w *World) Mesh() mesh.Mesh { return w.mesh }

// Scene returns the scene the session publishes into.
func (w *World) Scene() *scene.Scene { return w.scene }

// Reset refills the field, applies the seed and restarts growth. The scene's
// frame range is saved so it can be restored when growth finishes.
func (w *World) Reset() error {
	timing, err := w.cfg.Timing()
	if err != nil {
		return err
	}
	if w.state == nil {
		w.state, err = growth.NewState(w.lat, w.cfg.BackgroundValue(), timing)
		if err != nil {
			return err
		}
	} else {
		w.state.Fill(w.cfg.BackgroundValue())
		w.state.Timing = timing
	}
	w.state.Immediate = w.cfg.Immediate

	sum, err := seed.Apply(w.strategy, w.lat, w.state.Target, w.state.Progress, w.cfg.LimitMax, w.cfg.LimitMin)
	if err != nil {
		return err
	}
	w.engine.Begin(w.state)
	w.saved = w.scene.FrameRange()
	w.started = w.now()
	w.last = growth.Result{}
	w.mesh = mesh.Mesh{}
	w.finished = !w.state.Growing && !w.state.Immediate
	w.stale = false

	w.log.WithFields(logrus.Fields{
		"lattice":   w.lat.String(),
		"seed":      w.strategy.String(),
		"mode":      timing.Mode.String(),
		"immediate": w.cfg.Immediate,
		"duration":  w.cfg.GrowSeconds,
		"fps":       w.cfg.FPS,
		"active":    sum.Active,
		"shaped":    sum.Shaped,
	}).Info("growth started")
	return nil
}

// Step advances one tick. Changed fields are published; in deterministic
// mode each tick also renders one scene frame. When the previous tick's
// publish failed, Step retries it and completes that tick instead of
// advancing the field. Calling Step after growth finished does nothing.
func (w *World) Step() error {
	if w.finished {
		return nil
	}
	if w.stale {
		if err := w.Publish(); err != nil {
			return err
		}
		return w.complete(w.last)
	}
	if w.cfg.MaxTicks > 0 && w.state.Ticks >= w.cfg.MaxTicks {
		return fmt.Errorf("%w: %d ticks", ErrTickLimit, w.state.Ticks)
	}
	res, err := w.engine.Step(w.state)
	if err != nil {
		return err
	}
	w.last = res
	if res.Changed {
		if err := w.Publish(); err != nil {
			return err
		}
	}
	return w.complete(res)
}

// complete renders the tick's frame and finishes growth once nothing is
// active.
func (w *World) complete(res growth.Result) error {
	if w.state.Timing.Mode == growth.Deterministic && !w.state.Immediate {
		if err := w.advanceFrame(); err != nil {
			return err
		}
	}
	if !res.Growing {
		w.finish()
	}
	return nil
}

// Publish meshes the current field into the scene. A field without any
// surface yet is not an error.
func (w *World) Publish() error {
	m, err := w.pub.Publish(w.lat, w.state.Current)
	switch {
	case errors.Is(err, mesh.ErrEmptyGeometry):
		w.stale = false
		w.log.WithField("tick", w.state.Ticks).Debug("no surface yet")
		return nil
	case err != nil:
		w.stale = true
		return err
	}
	w.stale = false
	w.mesh = m
	return nil
}

func (w *World) advanceFrame() error {
	cur := w.scene.Frame()
	w.scene.SetFrameRange(scene.FrameRange{Start: cur, End: cur, Current: cur})
	if err := w.scene.RenderFrame(); err != nil && !errors.Is(err, scene.ErrNoRenderer) {
		return err
	}
	w.scene.SetFrame(cur + 1)
	return nil
}

func (w *World) finish() {
	w.finished = true
	if w.state.Timing.Mode == growth.Deterministic && !w.state.Immediate {
		w.scene.SetFrameRange(w.saved)
	}
	w.log.WithFields(logrus.Fields{
		"ticks":    w.state.Ticks,
		"elapsed":  w.now().Sub(w.started).String(),
		"vertices": len(w.mesh.Vertices),
		"faces":    len(w.mesh.Faces),
	}).Info("growth finished")
}

// Run steps until growth finishes, ctx is cancelled or a step fails. A
// positive interval paces the ticks; zero runs them back to back.
func (w *World) Run(ctx context.Context, interval time.Duration) error {
	var tick <-chan time.Time
	if interval > 0 {
		t := time.NewTicker(interval)
		defer t.Stop()
		tick = t.C
	}
	for w.Growing() {
		if tick != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-tick:
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}
		if err := w.Step(); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	for _, s := range []seed.Strategy{seed.Ball, seed.Stick} {
		name := s.String()
		core.Register(name, func(cfg map[string]string) (core.Sim, error) {
			c := FromMap(cfg)
			c.Seed = name
			return NewWithConfig(c)
		})
	}
}
