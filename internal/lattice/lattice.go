// Package lattice maps between flat cell indices and 3-D lattice coordinates.
//
// Cells are stored in a single slice: x varies fastest, then y, then z. A
// Z-slice ("level") holds X*Y cells.
package lattice

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidLattice reports a lattice with a dimension below one.
	ErrInvalidLattice = errors.New("lattice: invalid dimensions")
	// ErrIndexRange reports a flat index outside [0, Len()).
	ErrIndexRange = errors.New("lattice: index out of range")
	// ErrCoordRange reports a coordinate outside the lattice extents.
	ErrCoordRange = errors.New("lattice: coordinate out of range")
)

// boundaryDepth is the number of cell layers on each face treated as boundary.
const boundaryDepth = 2

// Lattice holds the dimensions of a simulation grid.
type Lattice struct {
	X, Y, Z int
}

// Coord is a cell position on a lattice.
type Coord struct {
	X, Y, Z int
}

// New validates the dimensions and returns the lattice.
func New(x, y, z int) (Lattice, error) {
	l := Lattice{X: x, Y: y, Z: z}
	if err := l.Validate(); err != nil {
		return Lattice{}, err
	}
	return l, nil
}

// Validate reports ErrInvalidLattice when any dimension is below one.
func (l Lattice) Validate() error {
	if l.X < 1 || l.Y < 1 || l.Z < 1 {
		return fmt.Errorf("%w: %s", ErrInvalidLattice, l)
	}
	return nil
}

// Level returns the number of cells in one Z-slice.
func (l Lattice) Level() int { return l.X * l.Y }

// Len returns the total number of cells.
func (l Lattice) Len() int { return l.Level() * l.Z }

// Dims returns the dimensions as an array, in X, Y, Z order.
func (l Lattice) Dims() [3]int { return [3]int{l.X, l.Y, l.Z} }

// Contains reports whether i is a valid cell index.
func (l Lattice) Contains(i int) bool { return i >= 0 && i < l.Len() }

func (l Lattice) String() string { return fmt.Sprintf("%dx%dx%d", l.X, l.Y, l.Z) }

// Coord converts a flat index into lattice coordinates.
func (l Lattice) Coord(i int) (Coord, error) {
	if !l.Contains(i) {
		return Coord{}, fmt.Errorf("%w: %d not in [0,%d)", ErrIndexRange, i, l.Len())
	}
	return l.coord(i), nil
}

// Index converts lattice coordinates into a flat index.
func (l Lattice) Index(c Coord) (int, error) {
	if c.X < 0 || c.X >= l.X || c.Y < 0 || c.Y >= l.Y || c.Z < 0 || c.Z >= l.Z {
		return 0, fmt.Errorf("%w: (%d,%d,%d) on %s", ErrCoordRange, c.X, c.Y, c.Z, l)
	}
	return l.index(c), nil
}

func (l Lattice) coord(i int) Coord {
	level := l.Level()
	r := i % level
	return Coord{X: r % l.X, Y: r / l.X, Z: i / level}
}

func (l Lattice) index(c Coord) int {
	return c.X + c.Y*l.X + c.Z*l.Level()
}

// Coords precomputes the coordinate of every cell, indexed by flat index.
func (l Lattice) Coords() []Coord {
	coords := make([]Coord, l.Len())
	x, y, z := 0, 0, 0
	for i := range coords {
		coords[i] = Coord{X: x, Y: y, Z: z}
		x++
		if x == l.X {
			x = 0
			y++
		}
		if y == l.Y {
			y = 0
			z++
		}
	}
	return coords
}

// IsBoundary reports whether cell i lies within two layers of any face of the
// lattice. Indices outside the lattice are reported as boundary.
func (l Lattice) IsBoundary(i int) bool {
	if !l.Contains(i) {
		return true
	}
	level := l.Level()
	if i < boundaryDepth*level || i >= l.Len()-boundaryDepth*level {
		return true
	}
	lvlPos := i % level
	x := lvlPos % l.X
	if x < boundaryDepth || x >= l.X-boundaryDepth {
		return true
	}
	y := (lvlPos - x) / l.X
	return y < boundaryDepth || y >= l.Y-boundaryDepth
}
