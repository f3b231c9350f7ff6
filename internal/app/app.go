//go:build ebiten

package app

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/sirupsen/logrus"

	"growfield/internal/core"
	"growfield/internal/lattice"
	"growfield/internal/render"
	"growfield/internal/ui"
)

// Game adapts a growth simulation to the ebiten.Game interface. It shows one
// Z slice of the field, or the top-down projection, scaled up.
type Game struct {
	sim     core.Sim
	lat     lattice.Lattice
	painter *render.GridPainter
	grid    *core.ByteGrid
	palette []color.RGBA
	overlay *ui.Overlay
	hud     *ui.HUD
	log     logrus.FieldLogger

	view     View
	scale    int
	hudWidth int
	paused   bool
	tickOnce bool
}

// New constructs a Game for the provided simulation.
func New(sim core.Sim, scale, hudWidth int, log logrus.FieldLogger) *Game {
	if log == nil {
		log = logrus.StandardLogger()
	}
	size := sim.Size()
	lat := lattice.Lattice{X: size.X, Y: size.Y, Z: size.Z}
	return &Game{
		sim:      sim,
		lat:      lat,
		painter:  render.NewGridPainter(size.X, size.Y),
		grid:     core.NewByteGrid(size.X, size.Y),
		palette:  render.FieldPalette(render.Levels),
		overlay:  ui.NewOverlay(sim, lat),
		hud:      ui.NewHUD(sim, hudWidth),
		log:      log,
		view:     NewView(size.Z),
		scale:    scale,
		hudWidth: hudWidth,
	}
}

// Reset reseeds the simulation.
func (g *Game) Reset() {
	if err := g.sim.Reset(); err != nil {
		g.log.WithError(err).Error("reset failed")
	}
	g.tickOnce = false
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.paused = false
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.view.Project = !g.view.Project
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyUp) || inpututil.IsKeyJustPressed(ebiten.KeyK) {
		g.view.Move(1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDown) || inpututil.IsKeyJustPressed(ebiten.KeyJ) {
		g.view.Move(-1)
	}

	g.overlay.Update()
	g.hud.Update(g.lat.X*g.scale, g.view.Label())

	if (!g.paused || g.tickOnce) && g.sim.Growing() {
		if err := g.sim.Step(); err != nil {
			g.log.WithError(err).Error("growth step failed")
			g.paused = true
		}
		g.tickOnce = false
	}
	return nil
}

// Draw renders the current slice, overlays and HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	field := g.sim.Field()
	lo, hi := render.Range(field)
	var err error
	if g.view.Project {
		err = render.Projection(g.lat, field, lo, hi, g.grid)
	} else {
		err = render.QuantizeSlice(g.lat, field, g.view.Slice, lo, hi, g.grid)
	}
	if err != nil {
		return
	}
	s := float64(g.scale)
	g.painter.Palette(screen, g.grid, g.palette, s, 0, 0)
	g.overlay.Draw(screen, g.view.Slice, s)
	g.hud.Draw(screen, g.lat.X*g.scale, g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.lat.X*g.scale + g.hudWidth, g.lat.Y * g.scale
}
