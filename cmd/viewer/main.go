//go:build ebiten

package main

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"growfield/internal/app"
	"growfield/internal/core"
	_ "growfield/internal/sims/grow"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(pflag.CommandLine)
	pflag.Parse()

	log := logrus.StandardLogger()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}
	factory, ok := core.Sims()[cfg.Sim]
	if !ok {
		log.Fatalf("unknown sim %q (have %v)", cfg.Sim, core.Names())
	}
	sim, err := factory(cfg.Params)
	if err != nil {
		log.Fatal(err)
	}

	game := app.New(sim, cfg.Scale, cfg.HUD, log)
	size := sim.Size()

	ebiten.SetWindowTitle(app.Title(sim))
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(size.X*cfg.Scale+cfg.HUD, size.Y*cfg.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
