package mesh

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// cubeEdges lists the 12 cube edges as corner pairs. Corner bits are x=1,
// y=2, z=4; the first three edges leave corner 0 along x, y and z.
var cubeEdges [24]int

// edgeTable maps a corner sign mask to the edges crossing the surface.
var edgeTable [256]int

func init() {
	k := 0
	for i := 0; i < 8; i++ {
		for j := 1; j <= 4; j <<= 1 {
			if p := i ^ j; i <= p {
				cubeEdges[k] = i
				cubeEdges[k+1] = p
				k += 2
			}
		}
	}
	for mask := 0; mask < 256; mask++ {
		em := 0
		for j := 0; j < 24; j += 2 {
			a := mask&(1<<cubeEdges[j]) != 0
			b := mask&(1<<cubeEdges[j+1]) != 0
			if a != b {
				em |= 1 << (j >> 1)
			}
		}
		edgeTable[mask] = em
	}
}

// SurfaceNets is a naive surface nets mesher. Cells below Level are inside.
// Each cube straddling the surface gets one vertex at the mean of its edge
// crossings, and each crossing edge becomes a quad joining the four cubes
// that share it.
type SurfaceNets struct {
	Level float64
}

// MeshVolume implements Mesher. It returns ErrEmptyGeometry when no cube
// straddles the surface.
func (s SurfaceNets) MeshVolume(vol Volume) (Mesh, error) {
	if err := vol.Validate(); err != nil {
		return Mesh{}, err
	}
	dims := vol.Dims
	// vertex index per cube, addressed by the cube's low corner
	stride := [3]int{1, dims[0], dims[0] * dims[1]}
	cube := make([]int32, len(vol.Data))
	for i := range cube {
		cube[i] = -1
	}

	var (
		out  Mesh
		grid [8]float64
		x    [3]int
	)
	for x[2] = 0; x[2] < dims[2]-1; x[2]++ {
		for x[1] = 0; x[1] < dims[1]-1; x[1]++ {
			for x[0] = 0; x[0] < dims[0]-1; x[0]++ {
				m := x[0] + stride[1]*x[1] + stride[2]*x[2]
				mask := 0
				for g := 0; g < 8; g++ {
					idx := m
					if g&1 != 0 {
						idx += stride[0]
					}
					if g&2 != 0 {
						idx += stride[1]
					}
					if g&4 != 0 {
						idx += stride[2]
					}
					p := vol.Data[idx] - s.Level
					grid[g] = p
					if p < 0 {
						mask |= 1 << g
					}
				}
				if mask == 0 || mask == 0xff {
					continue
				}

				edges := edgeTable[mask]
				var v [3]float64
				count := 0
				for e := 0; e < 12; e++ {
					if edges&(1<<e) == 0 {
						continue
					}
					e0, e1 := cubeEdges[e<<1], cubeEdges[e<<1+1]
					g0, g1 := grid[e0], grid[e1]
					t := g0 - g1
					if math.Abs(t) <= 1e-6 {
						continue
					}
					t = g0 / t
					count++
					for j, bit := 0, 1; j < 3; j, bit = j+1, bit<<1 {
						a, b := e0&bit, e1&bit
						switch {
						case a != b && a != 0:
							v[j] += 1 - t
						case a != b:
							v[j] += t
						case a != 0:
							v[j]++
						}
					}
				}
				if count == 0 {
					continue
				}
				inv := 1 / float64(count)
				cube[m] = int32(len(out.Vertices))
				out.Vertices = append(out.Vertices, r3.Vec{
					X: float64(x[0]) + inv*v[0],
					Y: float64(x[1]) + inv*v[1],
					Z: float64(x[2]) + inv*v[2],
				})

				for axis := 0; axis < 3; axis++ {
					if edges&(1<<axis) == 0 {
						continue
					}
					iu, iv := (axis+1)%3, (axis+2)%3
					if x[iu] == 0 || x[iv] == 0 {
						continue
					}
					du, dv := stride[iu], stride[iv]
					q := [4]int32{cube[m], cube[m-du], cube[m-du-dv], cube[m-dv]}
					if q[1] < 0 || q[2] < 0 || q[3] < 0 {
						continue
					}
					if mask&1 != 0 {
						out.Faces = append(out.Faces, []int{int(q[0]), int(q[1]), int(q[2]), int(q[3])})
					} else {
						out.Faces = append(out.Faces, []int{int(q[0]), int(q[3]), int(q[2]), int(q[1])})
					}
				}
			}
		}
	}
	if out.Empty() {
		return Mesh{}, ErrEmptyGeometry
	}
	return out, nil
}
