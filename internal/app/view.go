package app

import (
	"fmt"

	"growfield/internal/core"
)

// View tracks which part of the volume is shown.
type View struct {
	Slice   int
	Depth   int
	Project bool
}

// NewView centers the view in a volume of the given depth.
func NewView(depth int) View {
	if depth < 1 {
		depth = 1
	}
	return View{Slice: depth / 2, Depth: depth}
}

// Move shifts the slice by d, staying inside the volume.
func (v *View) Move(d int) {
	v.Slice += d
	if v.Slice < 0 {
		v.Slice = 0
	}
	if v.Slice >= v.Depth {
		v.Slice = v.Depth - 1
	}
}

// Label describes the view for the window title and HUD.
func (v View) Label() string {
	if v.Project {
		return "projection"
	}
	return fmt.Sprintf("z %d/%d", v.Slice, v.Depth)
}

// Title is the window title for sim.
func Title(sim core.Sim) string {
	s := sim.Size()
	return fmt.Sprintf("growfield: %s %dx%dx%d", sim.Name(), s.X, s.Y, s.Z)
}
