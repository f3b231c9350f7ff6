// Package render turns the scalar field into 2-D byte grids and pixels.
package render

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"growfield/internal/core"
	"growfield/internal/lattice"
)

// Levels is the number of palette entries QuantizeSlice writes.
const Levels = 32

// Range returns the minimum and maximum of field. An empty field yields 0, 0.
func Range(field []float64) (lo, hi float64) {
	if len(field) == 0 {
		return 0, 0
	}
	return floats.Min(field), floats.Max(field)
}

func quantize(v, lo, hi float64) uint8 {
	if hi <= lo {
		return Levels / 2
	}
	t := (v - lo) / (hi - lo)
	switch {
	case t <= 0:
		return 0
	case t >= 1:
		return Levels - 1
	}
	return uint8(t * (Levels - 1))
}

// QuantizeSlice writes the z-th XY layer of field into dst, mapping [lo, hi]
// onto [0, Levels). dst is resized to the lattice's X by Y.
func QuantizeSlice(lat lattice.Lattice, field []float64, z int, lo, hi float64, dst *core.ByteGrid) error {
	if len(field) != lat.Len() {
		return fmt.Errorf("render: field has %d values for lattice %s", len(field), lat)
	}
	if z < 0 || z >= lat.Z {
		return fmt.Errorf("%w: slice %d outside [0,%d)", lattice.ErrCoordRange, z, lat.Z)
	}
	if dst.W != lat.X || dst.H != lat.Y {
		dst.Resize(lat.X, lat.Y)
	}
	cells := dst.Cells()
	base := z * lat.Level()
	for i := range cells {
		cells[i] = quantize(field[base+i], lo, hi)
	}
	return nil
}

// Projection writes the minimum of field along Z for every (x, y) into dst,
// which shows the full silhouette of the interior.
func Projection(lat lattice.Lattice, field []float64, lo, hi float64, dst *core.ByteGrid) error {
	if len(field) != lat.Len() {
		return fmt.Errorf("render: field has %d values for lattice %s", len(field), lat)
	}
	if dst.W != lat.X || dst.H != lat.Y {
		dst.Resize(lat.X, lat.Y)
	}
	level := lat.Level()
	column := make([]float64, lat.Z)
	cells := dst.Cells()
	for i := range cells {
		for z := range column {
			column[z] = field[i+z*level]
		}
		cells[i] = quantize(floats.Min(column), lo, hi)
	}
	return nil
}

// Mask marks cells of the z-th layer for which keep returns true.
func Mask(lat lattice.Lattice, z int, keep func(i int) bool, dst *core.ByteGrid) error {
	if z < 0 || z >= lat.Z {
		return fmt.Errorf("%w: slice %d outside [0,%d)", lattice.ErrCoordRange, z, lat.Z)
	}
	if dst.W != lat.X || dst.H != lat.Y {
		dst.Resize(lat.X, lat.Y)
	}
	cells := dst.Cells()
	base := z * lat.Level()
	for i := range cells {
		if keep(base + i) {
			cells[i] = 1
		} else {
			cells[i] = 0
		}
	}
	return nil
}
