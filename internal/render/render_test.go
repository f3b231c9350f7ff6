package render

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"growfield/internal/core"
	"growfield/internal/lattice"
)

func TestFillMaskRGBA(t *testing.T) {
	buf := make([]byte, 8)
	FillMaskRGBA(buf, []uint8{1, 0}, color.RGBA{R: 255, A: 255}, color.RGBA{B: 10, A: 255})
	assert.Equal(t, []byte{255, 0, 0, 255, 0, 0, 10, 255}, buf)
}

func TestFillPaletteRGBA(t *testing.T) {
	buf := make([]byte, 8)
	palette := []color.RGBA{{R: 1, A: 255}, {G: 2, A: 255}}
	FillPaletteRGBA(buf, []uint8{0, 9}, palette)
	assert.Equal(t, []byte{1, 0, 0, 255, 0, 2, 0, 255}, buf)

	FillPaletteRGBA(buf, []uint8{0, 1}, nil)
	assert.Equal(t, make([]byte, 8), buf)
}

func TestFieldPalette(t *testing.T) {
	p := FieldPalette(Levels)
	require.Len(t, p, Levels)
	assert.Equal(t, uint8(255), p[0].R, "inside is warm")
	assert.Greater(t, p[Levels-1].B, p[Levels-1].R, "outside is blue")
	assert.Len(t, FieldPalette(0), 2)
}

func TestRange(t *testing.T) {
	lo, hi := Range([]float64{3, -1, 4})
	assert.Equal(t, -1.0, lo)
	assert.Equal(t, 4.0, hi)
	lo, hi = Range(nil)
	assert.Zero(t, lo)
	assert.Zero(t, hi)
}

func TestQuantizeSlice(t *testing.T) {
	lat := lattice.Lattice{X: 2, Y: 2, Z: 2}
	field := []float64{-4, 4, 0, 4, 9, 9, 9, -9}
	g := core.NewByteGrid(1, 1)

	require.NoError(t, QuantizeSlice(lat, field, 0, -4, 4, g))
	assert.Equal(t, 2, g.W)
	assert.Equal(t, []uint8{0, Levels - 1, 15, Levels - 1}, g.Cells())

	require.NoError(t, QuantizeSlice(lat, field, 1, -4, 4, g))
	assert.Equal(t, []uint8{Levels - 1, Levels - 1, Levels - 1, 0}, g.Cells())

	assert.ErrorIs(t, QuantizeSlice(lat, field, 2, -4, 4, g), lattice.ErrCoordRange)
	assert.Error(t, QuantizeSlice(lat, field[:3], 0, -4, 4, g))

	require.NoError(t, QuantizeSlice(lat, field, 0, 1, 1, g))
	assert.Equal(t, uint8(Levels/2), g.At(0, 0))
}

func TestProjection(t *testing.T) {
	lat := lattice.Lattice{X: 2, Y: 1, Z: 3}
	field := []float64{4, 4, 4, -4, 4, 4}
	g := core.NewByteGrid(2, 1)
	require.NoError(t, Projection(lat, field, -4, 4, g))
	assert.Equal(t, []uint8{Levels - 1, 0}, g.Cells())
}

func TestMask(t *testing.T) {
	lat := lattice.Lattice{X: 5, Y: 5, Z: 5}
	g := core.NewByteGrid(5, 5)
	require.NoError(t, Mask(lat, 2, lat.IsBoundary, g))
	assert.Equal(t, uint8(0), g.At(2, 2))
	assert.Equal(t, uint8(1), g.At(1, 2))
	assert.Equal(t, uint8(1), g.At(4, 4))
	assert.ErrorIs(t, Mask(lat, -1, lat.IsBoundary, g), lattice.ErrCoordRange)
}
