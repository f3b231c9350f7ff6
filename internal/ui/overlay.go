//go:build ebiten

package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"growfield/internal/core"
	"growfield/internal/lattice"
	"growfield/internal/render"
)

// Overlay draws optional masks over the field slice: the boundary shell the
// seed never writes, the cells currently growing, and the interior.
type Overlay struct {
	sim     core.Sim
	lat     lattice.Lattice
	painter *render.GridPainter
	grid    *core.ByteGrid

	showShell    bool
	showFront    bool
	showInterior bool
}

// NewOverlay constructs an overlay for sim over lat.
func NewOverlay(sim core.Sim, lat lattice.Lattice) *Overlay {
	return &Overlay{
		sim:       sim,
		lat:       lat,
		painter:   render.NewGridPainter(lat.X, lat.Y),
		grid:      core.NewByteGrid(lat.X, lat.Y),
		showFront: true,
	}
}

// Update toggles masks with the digit keys.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showShell = !o.showShell
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.showFront = !o.showFront
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit3) {
		o.showInterior = !o.showInterior
	}
}

// Draw renders the enabled masks for slice z.
func (o *Overlay) Draw(screen *ebiten.Image, z int, scale float64) {
	if o.showShell {
		o.drawMask(screen, z, scale, o.lat.IsBoundary, color.RGBA{R: 120, G: 120, B: 140, A: 255}, 0.35)
	}
	if o.showInterior {
		field := o.sim.Field()
		inside := func(i int) bool { return field[i] < 0 }
		o.drawMask(screen, z, scale, inside, color.RGBA{R: 255, G: 255, B: 255, A: 255}, 0.25)
	}
	if o.showFront {
		if provider, ok := o.sim.(core.ProgressProvider); ok {
			progress := provider.Progress()
			active := func(i int) bool { return progress[i] >= 0 }
			o.drawMask(screen, z, scale, active, color.RGBA{R: 80, G: 255, B: 120, A: 255}, 0.6)
		}
	}
}

func (o *Overlay) drawMask(screen *ebiten.Image, z int, scale float64, keep func(int) bool, tint color.RGBA, alpha float64) {
	if err := render.Mask(o.lat, z, keep, o.grid); err != nil {
		return
	}
	o.painter.Mask(screen, o.grid, tint, scale, 0, 0, alpha)
}
