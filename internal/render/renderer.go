//go:build ebiten

package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"growfield/internal/core"
)

// GridPainter uploads a ByteGrid into a single RGBA image.
type GridPainter struct {
	w, h int
	img  *ebiten.Image
	buf  []byte
}

// NewGridPainter allocates a painter for a grid of size w*h.
func NewGridPainter(w, h int) *GridPainter {
	gp := &GridPainter{w: w, h: h, buf: make([]byte, 4*w*h)}
	gp.img = ebiten.NewImage(w, h)
	return gp
}

// Palette uploads the grid through palette and draws it scaled at (x, y).
func (gp *GridPainter) Palette(dst *ebiten.Image, g *core.ByteGrid, palette []color.RGBA, scale, x, y float64) {
	if !gp.fits(g) {
		return
	}
	FillPaletteRGBA(gp.buf, g.Cells(), palette)
	gp.draw(dst, scale, x, y, 1)
}

// Mask uploads the grid as a two-color mask and draws it with the given alpha.
func (gp *GridPainter) Mask(dst *ebiten.Image, g *core.ByteGrid, on color.Color, scale, x, y, alpha float64) {
	if !gp.fits(g) {
		return
	}
	FillMaskRGBA(gp.buf, g.Cells(), on, color.Transparent)
	gp.draw(dst, scale, x, y, alpha)
}

func (gp *GridPainter) fits(g *core.ByteGrid) bool {
	return g != nil && g.W == gp.w && g.H == gp.h
}

func (gp *GridPainter) draw(dst *ebiten.Image, scale, x, y, alpha float64) {
	gp.img.WritePixels(gp.buf)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	if alpha < 1 {
		op.ColorScale.ScaleAlpha(float32(alpha))
	}
	dst.DrawImage(gp.img, op)
}

// Size returns the dimensions of the underlying image.
func (gp *GridPainter) Size() (int, int) { return gp.w, gp.h }
