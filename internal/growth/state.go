// Package growth advances the per-cell growth state machine over a lattice.
//
// Every cell carries a progress value: Dormant (-1) when it is not growing,
// or a percentage in [0,100) while it moves from its value at activation to
// its target. A cell that passes the half-way mark wakes its dormant
// neighbors; a cell that reaches 100 snaps to its target and goes dormant.
package growth

import (
	"errors"
	"fmt"
	"time"

	"growfield/internal/lattice"
)

// ErrFieldSize reports field slices whose length disagrees with the lattice.
var ErrFieldSize = errors.New("growth: field size does not match lattice")

const (
	// Dormant is the progress of a cell that is not growing.
	Dormant = -1.0
	// Complete is the progress at which a cell reaches its target.
	Complete = 100.0
	// activationThreshold is the progress at which a cell wakes its neighbors.
	activationThreshold = 50.0
)

// State is everything a host keeps between ticks.
type State struct {
	Lattice lattice.Lattice

	// Target is the value each cell grows towards; negative means inside.
	Target []float64
	// Current is the value handed to the mesher.
	Current []float64
	// Progress is Dormant or the growth percentage of each cell.
	Progress []float64

	Timing Timing
	// Immediate snaps the field to its target in one step.
	Immediate bool

	LastTick time.Time
	Growing  bool
	Ticks    int
}

// NewState allocates a state whose target and current fields are filled with
// background and whose cells are all dormant.
func NewState(lat lattice.Lattice, background float64, timing Timing) (*State, error) {
	if err := lat.Validate(); err != nil {
		return nil, err
	}
	if err := timing.Validate(); err != nil {
		return nil, err
	}
	n := lat.Len()
	st := &State{
		Lattice:  lat,
		Target:   make([]float64, n),
		Current:  make([]float64, n),
		Progress: make([]float64, n),
		Timing:   timing,
	}
	st.Fill(background)
	return st, nil
}

// Fill resets every cell to background and dormant.
func (s *State) Fill(background float64) {
	for i := range s.Target {
		s.Target[i] = background
		s.Current[i] = background
		s.Progress[i] = Dormant
	}
	s.Growing = false
	s.Ticks = 0
	s.LastTick = time.Time{}
}

// Validate checks the field slices against the lattice.
func (s *State) Validate() error {
	n := s.Lattice.Len()
	if len(s.Target) != n || len(s.Current) != n || len(s.Progress) != n {
		return fmt.Errorf("%w: target %d, current %d, progress %d, lattice %s",
			ErrFieldSize, len(s.Target), len(s.Current), len(s.Progress), s.Lattice)
	}
	return nil
}

// ActiveCells counts cells that are currently growing.
func (s *State) ActiveCells() int {
	n := 0
	for _, p := range s.Progress {
		if p >= 0 {
			n++
		}
	}
	return n
}

// SyncGrowing sets Growing from the progress field, typically right after
// seeding.
func (s *State) SyncGrowing() bool {
	s.Growing = s.ActiveCells() > 0
	return s.Growing
}
