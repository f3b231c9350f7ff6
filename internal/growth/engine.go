package growth

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Result summarises one tick.
type Result struct {
	// Growing is true while any cell is still active after the tick.
	Growing bool
	// Changed is true when at least one current value moved.
	Changed bool
	// Delta is the progress increment applied to every active cell.
	Delta float64

	Active    int
	Finished  int
	Activated int
}

// Engine drives ticks against a State. It holds no field data itself.
type Engine struct {
	now func() time.Time
	log logrus.FieldLogger
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock replaces time.Now as the tick clock.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithLogger sets the logger used for tick summaries.
func WithLogger(log logrus.FieldLogger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// NewEngine returns an Engine using the wall clock and the standard logger
// unless overridden.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{now: time.Now, log: logrus.StandardLogger()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Begin stamps the state so the first interactive tick measures from now.
func (e *Engine) Begin(st *State) {
	st.LastTick = e.now()
	st.SyncGrowing()
}

// Step advances st by one tick. The increment comes from TimeFactor; the
// state's LastTick is stamped with the tick time. Immediate states are
// settled in one call instead.
func (e *Engine) Step(st *State) (Result, error) {
	if err := st.Validate(); err != nil {
		return Result{}, err
	}
	now := e.now()
	if st.Immediate {
		st.LastTick = now
		return Settle(st), nil
	}
	var delta float64
	if st.Timing.Mode == Interactive && st.LastTick.IsZero() {
		delta = 0
	} else {
		delta = TimeFactor(st.Timing, st.LastTick, now)
	}
	st.LastTick = now
	res := Advance(st, delta)
	e.log.WithFields(logrus.Fields{
		"tick":      st.Ticks,
		"delta":     res.Delta,
		"active":    res.Active,
		"activated": res.Activated,
		"finished":  res.Finished,
	}).Trace("growth tick")
	return res, nil
}

// Advance applies one tick with a fixed increment. Cells are visited in
// ascending index order, so a cell activated by a lower-index neighbor is
// advanced in the same pass while one activated by a higher-index neighbor
// waits for the next tick.
func Advance(st *State, delta float64) Result {
	if delta < 0 {
		delta = 0
	}
	res := Result{Delta: delta}
	target, current, progress := st.Target, st.Current, st.Progress
	var near []int
	for i := range progress {
		old := progress[i]
		if old < 0 {
			continue
		}
		next := old + delta

		if old < activationThreshold && next >= activationThreshold {
			near = st.Lattice.AppendNeighborhood(near[:0], i, 1)
			for _, n := range near {
				if progress[n] < 0 && target[n] != current[n] {
					progress[n] = 0
					res.Activated++
				}
			}
		}

		if next < Complete {
			dif := (target[i] - current[i]) / (Complete - old) * delta
			if dif != 0 {
				res.Changed = true
			}
			current[i] += dif
			progress[i] = next
			continue
		}
		if current[i] != target[i] {
			res.Changed = true
		}
		current[i] = target[i]
		progress[i] = Dormant
		res.Finished++
	}
	res.Active = st.ActiveCells()
	res.Growing = res.Active > 0
	st.Growing = res.Growing
	st.Ticks++
	return res
}

// Settle snaps every cell to its target and makes all cells dormant. The
// result always reports a change so the host publishes the final shape.
func Settle(st *State) Result {
	res := Result{Changed: true}
	for i := range st.Target {
		if st.Progress[i] >= 0 {
			res.Finished++
		}
		st.Current[i] = st.Target[i]
		st.Progress[i] = Dormant
	}
	st.Growing = false
	st.Ticks++
	return res
}
