package lattice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// center of a 7x7x7 lattice: (3,3,3)
const center7 = 3 + 3*7 + 3*49

func TestAlongXStopsAtRowEdges(t *testing.T) {
	assert.Equal(t, []int{172}, AlongX(center7, 1, 7))
	assert.Equal(t, []int{170}, AlongX(center7, -1, 7))
	assert.Equal(t, []int{172, 173, 174}, AlongX(center7, 10, 7))
	assert.Equal(t, []int{170}, AlongX(center7, -10, 7))
	assert.Empty(t, AlongX(center7, 0, 7))
}

func TestAlongXNegativeNeverEntersPreviousRow(t *testing.T) {
	l := Lattice{X: 9, Y: 8, Z: 7}
	for x := 0; x <= 2; x++ {
		i, err := l.Index(Coord{X: x, Y: 3, Z: 3})
		assert.NoError(t, err)
		assert.Empty(t, AlongX(i, -3, l.X), "x=%d", x)
	}
	i, _ := l.Index(Coord{X: 5, Y: 3, Z: 3})
	assert.Equal(t, []int{i - 1, i - 2, i - 3}, AlongX(i, -9, l.X))
}

func TestAlongYStaysInsideLevel(t *testing.T) {
	assert.Equal(t, []int{178}, AlongY(center7, 1, 7, 49))
	assert.Equal(t, []int{178, 185}, AlongY(center7, 5, 7, 49))
	assert.Equal(t, []int{164, 157}, AlongY(center7, -5, 7, 49))
}

func TestAlongZStaysInsideLayers(t *testing.T) {
	assert.Equal(t, []int{220}, AlongZ(center7, 1, 49, 7))
	assert.Equal(t, []int{220, 269, 318}, AlongZ(center7, 5, 49, 7))
	assert.Equal(t, []int{122}, AlongZ(center7, -5, 49, 7))
}

func TestNeighborhoodOfInteriorCell(t *testing.T) {
	l := Lattice{X: 7, Y: 7, Z: 7}
	near := l.Neighborhood(center7, 1)
	assert.Equal(t, []int{170, 172, 164, 178, 122, 220}, near)

	seen := map[int]bool{}
	for _, n := range near {
		assert.False(t, seen[n], "duplicate neighbor %d", n)
		seen[n] = true
	}
	assert.Len(t, seen, 6)
}

func TestNeighborhoodTruncatesBlockedDirections(t *testing.T) {
	l := Lattice{X: 7, Y: 7, Z: 7}
	near := l.Neighborhood(center7, 3)
	// X-: 1, X+: 3, Y-: 2, Y+: 2, Z-: 1, Z+: 3
	assert.Len(t, near, 12)
	assert.Empty(t, l.Neighborhood(-1, 1))
	assert.Empty(t, l.Neighborhood(l.Len(), 1))
	assert.Equal(t, l.Neighborhood(center7, 2), l.Neighborhood(center7, -2))
}

func TestNeighborhoodNeverLeavesLattice(t *testing.T) {
	for _, l := range testLattices {
		for i := 0; i < l.Len(); i++ {
			for _, steps := range []int{1, 2, 4} {
				for _, n := range l.Neighborhood(i, steps) {
					if !l.Contains(n) {
						t.Fatalf("%s: neighbor %d of %d (steps %d) outside lattice", l, n, i, steps)
					}
					if n == i {
						t.Fatalf("%s: cell %d lists itself as neighbor", l, i)
					}
				}
			}
		}
	}
}

func TestNeighborsAreAxisAligned(t *testing.T) {
	l := Lattice{X: 9, Y: 8, Z: 7}
	for i := 0; i < l.Len(); i++ {
		c := l.coord(i)
		for _, n := range l.Neighborhood(i, 1) {
			nc := l.coord(n)
			diff := abs(nc.X-c.X) + abs(nc.Y-c.Y) + abs(nc.Z-c.Z)
			if diff != 1 {
				t.Fatalf("neighbor %+v of %+v is not one axis step away", nc, c)
			}
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
