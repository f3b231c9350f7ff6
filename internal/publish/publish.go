// Package publish hands the current field to a mesher and places the result
// in a scene.
package publish

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/spatial/r3"

	"growfield/internal/lattice"
	"growfield/internal/mesh"
)

// ErrMeshGeneration wraps any mesher or scene failure during Publish.
var ErrMeshGeneration = errors.New("publish: mesh generation failed")

// Scene is the part of a host scene that Publish writes to.
type Scene interface {
	SetMeshData(object string, vertices []r3.Vec, faces [][]int) error
	ObjectOffset(object string) (r3.Vec, error)
	SetObjectOffset(object string, off r3.Vec) error
}

// Publisher meshes a field and applies it to one scene object.
type Publisher struct {
	Mesher mesh.Mesher
	Scene  Scene
	Object string
	// Recenter keeps the mesh's horizontal bounding-box center on the origin.
	Recenter bool
	Log      logrus.FieldLogger
}

func (p *Publisher) logger() logrus.FieldLogger {
	if p.Log == nil {
		return logrus.StandardLogger()
	}
	return p.Log
}

// Publish meshes current, a field over lat, replaces the object's geometry
// and, when recentering, moves the object so the mesh's X/Y bounding-box
// center sits on the origin. The object's Z offset is kept.
func (p *Publisher) Publish(lat lattice.Lattice, current []float64) (mesh.Mesh, error) {
	vol := mesh.Volume{Dims: lat.Dims(), Data: current}
	m, err := p.Mesher.MeshVolume(vol)
	if err != nil {
		return mesh.Mesh{}, fmt.Errorf("%w: %w", ErrMeshGeneration, err)
	}
	if err := p.Scene.SetMeshData(p.Object, m.Vertices, m.Faces); err != nil {
		return mesh.Mesh{}, fmt.Errorf("%w: %w", ErrMeshGeneration, err)
	}

	fields := logrus.Fields{
		"object":   p.Object,
		"vertices": len(m.Vertices),
		"faces":    len(m.Faces),
	}
	if p.Recenter {
		prev, err := p.Scene.ObjectOffset(p.Object)
		if err != nil {
			return mesh.Mesh{}, fmt.Errorf("%w: %w", ErrMeshGeneration, err)
		}
		if off, ok := CenterOffset(m, prev); ok {
			if err := p.Scene.SetObjectOffset(p.Object, off); err != nil {
				return mesh.Mesh{}, fmt.Errorf("%w: %w", ErrMeshGeneration, err)
			}
			fields["offset"] = off
		}
	}
	p.logger().WithFields(fields).Debug("published mesh")
	return m, nil
}

// CenterOffset returns the offset that puts the mesh's X/Y bounding-box
// center on the origin while keeping prev's Z. ok is false for an empty mesh.
func CenterOffset(m mesh.Mesh, prev r3.Vec) (r3.Vec, bool) {
	box, ok := m.Bounds()
	if !ok {
		return prev, false
	}
	off := r3.Scale(-1, box.Center())
	off.Z = prev.Z
	return off, true
}
