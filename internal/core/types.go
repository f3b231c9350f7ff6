package core

import "sort"

// Size describes the dimensions of a volumetric simulation.
type Size struct {
	X int
	Y int
	Z int
}

// Cells returns the number of samples in the volume.
func (s Size) Cells() int { return s.X * s.Y * s.Z }

// Sim defines the contract a growth simulation exposes to hosts.
type Sim interface {
	Name() string
	Size() Size
	// Reset reseeds the field and restarts growth.
	Reset() error
	// Step advances one tick and publishes when the field changed.
	Step() error
	// Growing reports whether another Step would change anything.
	Growing() bool
	// Field is the current scalar field, x fastest. Callers must not modify it.
	Field() []float64
}

// ProgressProvider exposes per-cell growth progress (-1 dormant, 0..100).
type ProgressProvider interface {
	Progress() []float64
}

// Factory constructs a Sim using an optional configuration map.
type Factory func(cfg map[string]string) (Sim, error)

var sims = map[string]Factory{}

// Register adds a simulation factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	sims[name] = f
}

// Sims exposes the registry of available simulation factories.
func Sims() map[string]Factory {
	return sims
}

// Names lists registered simulations in sorted order.
func Names() []string {
	out := make([]string, 0, len(sims))
	for name := range sims {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
