//go:build ebiten

package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"flightsim/internal/app"
	"flightsim/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	os.Exit(run())
}

// run returns the process exit code so deferred cleanup always runs.
func run() int {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	sim, log, closer, err := app.Boot(cfg, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer closer.Close()

	for _, line := range ui.Help() {
		log.Info().Msg(line)
	}

	game := app.New(sim, cfg, log)
	ebiten.SetWindowTitle("flightsim - " + sim.Name())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(cfg.Width+cfg.HUDWidth, cfg.Height)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Error().Err(err).Msg("game loop failed")
		return 1
	}
	return 0
}
