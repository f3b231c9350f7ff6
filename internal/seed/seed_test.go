package seed

import (
	"testing"

	"growfield/internal/lattice"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFields(lat lattice.Lattice, background float64) ([]float64, []float64) {
	target := make([]float64, lat.Len())
	state := make([]float64, lat.Len())
	for i := range target {
		target[i] = background
		state[i] = -1
	}
	return target, state
}

func TestBallSeedCenterAndLimits(t *testing.T) {
	lat, err := lattice.New(7, 7, 7)
	require.NoError(t, err)
	target, state := newFields(lat, 99)

	sum, err := BallSeed(lat, target, state, 5, -5)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Active)
	assert.Equal(t, 26, sum.Shaped)

	center, err := lat.Index(lattice.Coord{X: 3, Y: 3, Z: 3})
	require.NoError(t, err)
	assert.Equal(t, -1.0, target[center])
	assert.Equal(t, 0.0, state[center])

	for i := range target {
		if lat.IsBoundary(i) {
			assert.Equal(t, 99.0, target[i], "boundary cell %d must keep caller default", i)
			assert.Equal(t, -1.0, state[i])
			continue
		}
		assert.GreaterOrEqual(t, target[i], -5.0)
		assert.LessOrEqual(t, target[i], 5.0)
		if i != center {
			assert.Equal(t, -1.0, state[i], "only the core cell starts growing")
		}
	}
}

func TestBallSeedRoundsAndClamps(t *testing.T) {
	lat, err := lattice.New(15, 15, 15)
	require.NoError(t, err)
	target, state := newFields(lat, 0)

	_, err = BallSeed(lat, target, state, 2, -1.5)
	require.NoError(t, err)

	near, err := lat.Index(lattice.Coord{X: 8, Y: 7, Z: 7})
	require.NoError(t, err)
	assert.Equal(t, -1.5, target[near], "distance 1 -> -2 clamps to limitMin")

	diag, err := lat.Index(lattice.Coord{X: 8, Y: 8, Z: 7})
	require.NoError(t, err)
	assert.InDelta(t, -1.5, target[diag], 1e-12, "distance sqrt2 -> -1.59 clamps to limitMin")

	mid, err := lat.Index(lattice.Coord{X: 9, Y: 9, Z: 8})
	require.NoError(t, err)
	// sqrt(4+4+1) = 3 -> 0
	assert.InDelta(t, 0.0, target[mid], 1e-12)

	odd, err := lat.Index(lattice.Coord{X: 10, Y: 8, Z: 7})
	require.NoError(t, err)
	// sqrt(9+1) = 3.1623 -> 0.16
	assert.InDelta(t, 0.16, target[odd], 1e-12)

	far, err := lat.Index(lattice.Coord{X: 12, Y: 12, Z: 12})
	require.NoError(t, err)
	assert.Equal(t, 2.0, target[far])
}

func TestStickSeed(t *testing.T) {
	lat, err := lattice.New(32, 32, 32)
	require.NoError(t, err)
	target, state := newFields(lat, 4)

	sum, err := StickSeed(lat, target, state)
	require.NoError(t, err)
	assert.Equal(t, Summary{Active: 1, Shaped: 10}, sum)

	mid := Midpoint(lat)
	assert.Equal(t, 16+32*16+1024*16, mid)
	assert.Equal(t, 0.0, state[mid])
	assert.Equal(t, -1.0, target[mid])

	active, interior := 0, 0
	for i := range target {
		if state[i] >= 0 {
			active++
		}
		if target[i] == Interior {
			interior++
			if i != mid {
				assert.True(t, i > mid && i <= mid+10, "interior cell %d not on the stick", i)
				assert.Equal(t, -1.0, state[i], "stick body cells stay dormant")
			}
		}
	}
	assert.Equal(t, 1, active)
	assert.Equal(t, 11, interior)
}

func TestStickSeedStopsAtRowEnd(t *testing.T) {
	lat, err := lattice.New(8, 8, 8)
	require.NoError(t, err)
	target, state := newFields(lat, 4)

	sum, err := StickSeed(lat, target, state)
	require.NoError(t, err)
	// midpoint x=4, cells x=5..7 remain in the row
	assert.Equal(t, 3, sum.Shaped)
}

func TestMidpointRoundsHalfToEven(t *testing.T) {
	assert.Equal(t, 2+5*2+25*2, Midpoint(lattice.Lattice{X: 5, Y: 5, Z: 5}))
	assert.Equal(t, 4+7*3+49*3, Midpoint(lattice.Lattice{X: 7, Y: 7, Z: 7}))
}

func TestSeedRejectsMismatchedFields(t *testing.T) {
	lat := lattice.Lattice{X: 4, Y: 4, Z: 4}
	_, err := BallSeed(lat, make([]float64, 3), make([]float64, 64), 1, -1)
	assert.ErrorIs(t, err, ErrFieldSize)
	_, err = StickSeed(lattice.Lattice{}, nil, nil)
	assert.ErrorIs(t, err, lattice.ErrInvalidLattice)
}

func TestParseStrategy(t *testing.T) {
	s, err := ParseStrategy(" Ball ")
	require.NoError(t, err)
	assert.Equal(t, Ball, s)
	s, err = ParseStrategy("stick")
	require.NoError(t, err)
	assert.Equal(t, Stick, s)
	assert.Equal(t, "stick", s.String())
	_, err = ParseStrategy("cube")
	assert.ErrorIs(t, err, ErrUnknownStrategy)

	lat := lattice.Lattice{X: 7, Y: 7, Z: 7}
	target, state := newFields(lat, 4)
	sum, err := Apply(Ball, lat, target, state, 4, -4)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Active)
}
