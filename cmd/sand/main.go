//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"falling-sand/internal/app"
	_ "falling-sand/internal/sims/sand"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	if cfg.Debug {
		f, err := app.SetupLogging(true, cfg.LogDir)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
	}

	sim, err := app.BuildSim(cfg)
	if err != nil {
		log.Fatal(err)
	}

	game := app.New(sim, cfg.Scale, cfg.Seed)
	w, h := game.ScreenSize()

	ebiten.SetWindowTitle("falling sand - " + sim.Name())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(w, h)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
