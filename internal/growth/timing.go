package growth

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidTiming reports a non-positive growth duration or frame rate.
var ErrInvalidTiming = errors.New("growth: invalid timing")

// Mode selects how elapsed time is measured between ticks.
type Mode int

const (
	// Deterministic advances a fixed amount per rendered frame.
	Deterministic Mode = iota
	// Interactive advances by the wall-clock time since the previous tick.
	Interactive
)

func (m Mode) String() string {
	switch m {
	case Deterministic:
		return "deterministic"
	case Interactive:
		return "interactive"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode resolves a mode by name.
func ParseMode(name string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "deterministic", "offline", "animation":
		return Deterministic, nil
	case "interactive", "realtime", "live":
		return Interactive, nil
	}
	return 0, fmt.Errorf("%w: unknown mode %q", ErrInvalidTiming, name)
}

// Timing converts elapsed time into growth progress.
type Timing struct {
	Mode Mode
	// GrowSeconds is how long a single cell takes to go from activation to
	// its target.
	GrowSeconds float64
	// FPS is the rendered frame rate; only Deterministic uses it.
	FPS float64
}

// Validate checks that the timing can produce a finite increment.
func (t Timing) Validate() error {
	if t.GrowSeconds <= 0 {
		return fmt.Errorf("%w: grow duration %gs", ErrInvalidTiming, t.GrowSeconds)
	}
	switch t.Mode {
	case Deterministic:
		if t.FPS <= 0 {
			return fmt.Errorf("%w: frame rate %g", ErrInvalidTiming, t.FPS)
		}
	case Interactive:
	default:
		return fmt.Errorf("%w: %s", ErrInvalidTiming, t.Mode)
	}
	return nil
}

// FrameDelta is the progress added per frame in Deterministic mode.
func (t Timing) FrameDelta() float64 {
	return Complete / (t.GrowSeconds * t.FPS)
}

// TimeFactor returns the progress increment, in percent of a full cell
// transition, for a tick at now whose predecessor ran at last.
//
// Deterministic mode ignores the clock. Interactive mode returns zero when no
// time has passed or the clock went backwards.
func TimeFactor(t Timing, last, now time.Time) float64 {
	if t.Mode == Deterministic {
		return t.FrameDelta()
	}
	elapsed := now.Sub(last).Seconds()
	if elapsed <= 0 {
		return 0
	}
	return elapsed / t.GrowSeconds * Complete
}
