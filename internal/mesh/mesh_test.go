package mesh

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func sphereVolume(n int, radius float64) Volume {
	vol := Volume{Dims: [3]int{n, n, n}, Data: make([]float64, n*n*n)}
	c := float64(n-1) * 0.5
	i := 0
	for z := 0; z < n; z++ {
		for y := 0; y < n; y++ {
			for x := 0; x < n; x++ {
				d := r3.Vec{X: float64(x) - c, Y: float64(y) - c, Z: float64(z) - c}
				vol.Data[i] = r3.Norm(d) - radius
				i++
			}
		}
	}
	return vol
}

func pointVolume() Volume {
	vol := Volume{Dims: [3]int{3, 3, 3}, Data: make([]float64, 27)}
	for i := range vol.Data {
		vol.Data[i] = 1
	}
	vol.Data[13] = -1
	return vol
}

// two adjacent inside samples along x
func pairVolume() Volume {
	vol := Volume{Dims: [3]int{4, 3, 3}, Data: make([]float64, 36)}
	for i := range vol.Data {
		vol.Data[i] = 1
	}
	vol.Data[1+4+12] = -1
	vol.Data[2+4+12] = -1
	return vol
}

func TestVolumeValidate(t *testing.T) {
	assert.NoError(t, Volume{Dims: [3]int{2, 2, 2}, Data: make([]float64, 8)}.Validate())
	assert.ErrorIs(t, Volume{Dims: [3]int{2, 2, 2}, Data: make([]float64, 7)}.Validate(), ErrVolumeSize)
	assert.ErrorIs(t, Volume{Dims: [3]int{0, 2, 2}}.Validate(), ErrVolumeSize)
}

func TestSurfaceNetsSinglePoint(t *testing.T) {
	m, err := SurfaceNets{}.MeshVolume(pointVolume())
	require.NoError(t, err)
	assert.Len(t, m.Vertices, 8)
	assert.Len(t, m.Faces, 6)

	box, ok := m.Bounds()
	require.True(t, ok)
	c := box.Center()
	assert.InDelta(t, 1.0, c.X, 1e-9)
	assert.InDelta(t, 1.0, c.Y, 1e-9)
	assert.InDelta(t, 1.0, c.Z, 1e-9)
	assert.InDelta(t, 5.0/6.0, box.Min.X, 1e-9)
	assert.InDelta(t, 7.0/6.0, box.Max.Z, 1e-9)
}

func TestSurfaceNetsConsistentWinding(t *testing.T) {
	for name, vol := range map[string]Volume{
		"point": pointVolume(),
		"pair":  pairVolume(),
	} {
		m, err := SurfaceNets{}.MeshVolume(vol)
		require.NoError(t, err, name)

		seen := make(map[[2]int]int)
		for _, f := range m.Faces {
			require.Len(t, f, 4, name)
			for k := range f {
				require.GreaterOrEqual(t, f[k], 0)
				require.Less(t, f[k], len(m.Vertices))
				seen[[2]int{f[k], f[(k+1)%4]}]++
			}
		}
		for e, n := range seen {
			assert.Equal(t, 1, n, "%s: directed edge %v used %d times", name, e, n)
			assert.Equal(t, 1, seen[[2]int{e[1], e[0]}], "%s: edge %v has no opposite", name, e)
		}
	}
}

func TestSurfaceNetsSphereRadius(t *testing.T) {
	const n, radius = 12, 3.5
	m, err := SurfaceNets{}.MeshVolume(sphereVolume(n, radius))
	require.NoError(t, err)
	require.NotEmpty(t, m.Faces)

	c := r3.Vec{X: 5.5, Y: 5.5, Z: 5.5}
	for _, v := range m.Vertices {
		assert.InDelta(t, radius, r3.Norm(r3.Sub(v, c)), 0.5)
	}
}

func TestSurfaceNetsLevel(t *testing.T) {
	vol := sphereVolume(12, 0)
	small, err := SurfaceNets{Level: 2}.MeshVolume(vol)
	require.NoError(t, err)
	large, err := SurfaceNets{Level: 4}.MeshVolume(vol)
	require.NoError(t, err)
	sb, _ := small.Bounds()
	lb, _ := large.Bounds()
	assert.Less(t, sb.Size().X, lb.Size().X)
}

func TestSurfaceNetsEmpty(t *testing.T) {
	vol := Volume{Dims: [3]int{4, 4, 4}, Data: make([]float64, 64)}
	for i := range vol.Data {
		vol.Data[i] = 4
	}
	_, err := SurfaceNets{}.MeshVolume(vol)
	assert.ErrorIs(t, err, ErrEmptyGeometry)

	for i := range vol.Data {
		vol.Data[i] = -1
	}
	_, err = SurfaceNets{}.MeshVolume(vol)
	assert.ErrorIs(t, err, ErrEmptyGeometry)

	_, err = SurfaceNets{}.MeshVolume(Volume{Dims: [3]int{4, 4, 4}})
	assert.ErrorIs(t, err, ErrVolumeSize)
}

func TestBoundsEmpty(t *testing.T) {
	_, ok := Mesh{}.Bounds()
	assert.False(t, ok)
	assert.True(t, Mesh{}.Empty())
}

func TestWriteOBJ(t *testing.T) {
	m := Mesh{
		Vertices: []r3.Vec{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 0.5}},
		Faces:    [][]int{{0, 1, 2}},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteOBJ(&buf, m, "shape"))
	want := "o shape\n" +
		"v 0.000000 0.000000 0.000000\n" +
		"v 1.000000 0.000000 0.000000\n" +
		"v 1.000000 1.000000 0.500000\n" +
		"f 1 2 3\n"
	assert.Equal(t, want, buf.String())

	m.Faces = [][]int{{0, 3, 1}}
	assert.Error(t, WriteOBJ(&bytes.Buffer{}, m, ""))
}

func TestMesherFunc(t *testing.T) {
	called := false
	var f Mesher = MesherFunc(func(v Volume) (Mesh, error) {
		called = true
		return Mesh{Vertices: []r3.Vec{{X: math.Pi}}}, nil
	})
	m, err := f.MeshVolume(Volume{})
	require.NoError(t, err)
	assert.True(t, called)
	assert.Len(t, m.Vertices, 1)
}
