// Package scene is an in-memory stand-in for a host 3-D scene: named mesh
// objects with placement offsets, plus a frame counter and frame range used
// by offline rendering.
package scene

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"gonum.org/v1/gonum/spatial/r3"
)

// ErrUnknownObject reports an object name the scene does not hold.
var ErrUnknownObject = errors.New("scene: unknown object")

// ErrNoRenderer reports a render request on a scene without a renderer.
var ErrNoRenderer = errors.New("scene: no renderer")

// Object is a named mesh with a placement offset.
type Object struct {
	Name     string
	Vertices []r3.Vec
	Faces    [][]int
	Offset   r3.Vec
	// Revision increments on every mesh replacement.
	Revision int
}

// Placed returns the vertex positions with the offset applied.
func (o *Object) Placed() []r3.Vec {
	out := make([]r3.Vec, len(o.Vertices))
	for i, v := range o.Vertices {
		out[i] = r3.Add(v, o.Offset)
	}
	return out
}

// FrameRange is the animation range and playhead.
type FrameRange struct {
	Start, End, Current int
}

// Renderer draws one frame of the scene.
type Renderer interface {
	RenderFrame(frame int, objects []*Object) error
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(frame int, objects []*Object) error

// RenderFrame calls f.
func (f RendererFunc) RenderFrame(frame int, objects []*Object) error { return f(frame, objects) }

// Scene holds objects and frame state. It is safe for concurrent use.
type Scene struct {
	mu       sync.RWMutex
	objects  map[string]*Object
	frames   FrameRange
	renderer Renderer
	rendered int
}

// New returns an empty scene whose range is the single frame 1.
func New() *Scene {
	return &Scene{
		objects: make(map[string]*Object),
		frames:  FrameRange{Start: 1, End: 1, Current: 1},
	}
}

// AddObject creates an empty object, or returns the existing one.
func (s *Scene) AddObject(name string) *Object {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o, ok := s.objects[name]; ok {
		return o
	}
	o := &Object{Name: name}
	s.objects[name] = o
	return o
}

// Object returns a copy of the named object.
func (s *Scene) Object(name string) (Object, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.objects[name]
	if !ok {
		return Object{}, fmt.Errorf("%w: %q", ErrUnknownObject, name)
	}
	return *o, nil
}

// Objects returns the objects sorted by name.
func (s *Scene) Objects() []*Object {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortedLocked()
}

func (s *Scene) sortedLocked() []*Object {
	out := make([]*Object, 0, len(s.objects))
	for _, o := range s.objects {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// SetMeshData replaces the named object's geometry.
func (s *Scene) SetMeshData(name string, vertices []r3.Vec, faces [][]int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.objects[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownObject, name)
	}
	o.Vertices = vertices
	o.Faces = faces
	o.Revision++
	return nil
}

// ObjectOffset returns the named object's placement.
func (s *Scene) ObjectOffset(name string) (r3.Vec, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.objects[name]
	if !ok {
		return r3.Vec{}, fmt.Errorf("%w: %q", ErrUnknownObject, name)
	}
	return o.Offset, nil
}

// SetObjectOffset moves the named object.
func (s *Scene) SetObjectOffset(name string, off r3.Vec) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.objects[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownObject, name)
	}
	o.Offset = off
	return nil
}

// Frame returns the current frame.
func (s *Scene) Frame() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.frames.Current
}

// SetFrame moves the playhead.
func (s *Scene) SetFrame(f int) {
	s.mu.Lock()
	s.frames.Current = f
	s.mu.Unlock()
}

func (s *Scene) FrameRange() FrameRange {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.frames
}

// SetFrameRange sets start, end and current at once.
func (s *Scene) SetFrameRange(r FrameRange) {
	s.mu.Lock()
	s.frames = r
	s.mu.Unlock()
}

// SetRenderer installs the frame renderer.
func (s *Scene) SetRenderer(r Renderer) {
	s.mu.Lock()
	s.renderer = r
	s.mu.Unlock()
}

// Rendered counts successful RenderFrame calls.
func (s *Scene) Rendered() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rendered
}

// RenderFrame renders the current frame with the installed renderer.
func (s *Scene) RenderFrame() error {
	s.mu.RLock()
	r := s.renderer
	frame := s.frames.Current
	objects := s.sortedLocked()
	s.mu.RUnlock()
	if r == nil {
		return ErrNoRenderer
	}
	if err := r.RenderFrame(frame, objects); err != nil {
		return fmt.Errorf("scene: render frame %d: %w", frame, err)
	}
	s.mu.Lock()
	s.rendered++
	s.mu.Unlock()
	return nil
}
