// Package mesh turns a sampled scalar field into a polygon mesh.
package mesh

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

var (
	// ErrVolumeSize reports a volume whose data length disagrees with its dims.
	ErrVolumeSize = errors.New("mesh: volume data does not match dims")
	// ErrEmptyGeometry reports a field that produced no surface.
	ErrEmptyGeometry = errors.New("mesh: no geometry")
)

// Volume is a dense scalar field sampled on an integer grid. Data is indexed
// x fastest, then y, then z.
type Volume struct {
	Dims [3]int
	Data []float64
}

// Validate checks the dims against the data length.
func (v Volume) Validate() error {
	n := 1
	for _, d := range v.Dims {
		if d <= 0 {
			return fmt.Errorf("%w: dims %v", ErrVolumeSize, v.Dims)
		}
		n *= d
	}
	if len(v.Data) != n {
		return fmt.Errorf("%w: dims %v want %d values, have %d", ErrVolumeSize, v.Dims, n, len(v.Data))
	}
	return nil
}

// Mesh is an indexed polygon mesh. Faces index into Vertices.
type Mesh struct {
	Vertices []r3.Vec
	Faces    [][]int
}

// Empty reports whether the mesh has no vertices.
func (m Mesh) Empty() bool { return len(m.Vertices) == 0 }

// Box is an axis-aligned bounding box.
type Box struct {
	Min, Max r3.Vec
}

// Center returns the midpoint of the box.
func (b Box) Center() r3.Vec {
	return r3.Scale(0.5, r3.Add(b.Min, b.Max))
}

// Size returns the extent of the box along each axis.
func (b Box) Size() r3.Vec {
	return r3.Sub(b.Max, b.Min)
}

// Bounds returns the bounding box of all vertices. ok is false for an empty
// mesh.
func (m Mesh) Bounds() (box Box, ok bool) {
	if len(m.Vertices) == 0 {
		return Box{}, false
	}
	box.Min, box.Max = m.Vertices[0], m.Vertices[0]
	for _, v := range m.Vertices[1:] {
		box.Min.X = min(box.Min.X, v.X)
		box.Min.Y = min(box.Min.Y, v.Y)
		box.Min.Z = min(box.Min.Z, v.Z)
		box.Max.X = max(box.Max.X, v.X)
		box.Max.Y = max(box.Max.Y, v.Y)
		box.Max.Z = max(box.Max.Z, v.Z)
	}
	return box, true
}

// Mesher extracts a surface from a volume.
type Mesher interface {
	MeshVolume(Volume) (Mesh, error)
}

// MesherFunc adapts a function to Mesher.
type MesherFunc func(Volume) (Mesh, error)

// MeshVolume calls f.
func (f MesherFunc) MeshVolume(v Volume) (Mesh, error) { return f(v) }
