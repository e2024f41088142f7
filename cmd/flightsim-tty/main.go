package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"flightsim/internal/app"
	"flightsim/internal/core"
	"flightsim/internal/render"
	"flightsim/internal/tui"

	"github.com/gdamore/tcell/v2"
)

var errQuit = errors.New("quit")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], tcell.NewScreen)
	stop()
	os.Exit(code)
}

// run plays a terminal session until quit or ctx ends and returns the process
// exit code. The log file is closed and the terminal restored before it
// returns.
func run(ctx context.Context, args []string, newScreen func() (tcell.Screen, error)) int {
	cfg := app.NewConfig()
	cfg.LogFile = "flightsim.log"
	fs := flag.NewFlagSet("flightsim-tty", flag.ContinueOnError)
	cfg.Bind(fs)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	// The terminal belongs to the radar, so logs only go to the file.
	sim, log, closer, err := app.Boot(cfg, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer closer.Close()

	screen, err := newScreen()
	if err != nil {
		log.Error().Err(err).Msg("failed to create screen")
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		log.Error().Err(err).Msg("failed to initialize screen")
		fmt.Fprintf(os.Stderr, "Failed to initialize screen: %v\n", err)
		return 1
	}
	defer screen.Fini()
	screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack))

	events := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	controls := tui.NewControls()
	radar := tui.NewRadar()
	opts := render.DefaultOptions()
	log.Info().Str("scenario", sim.Name()).Int("tps", cfg.TPS).Msg("terminal session started")

	handle := func(ev tcell.Event) error {
		switch ev := ev.(type) {
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			key := tui.KeyFromEvent(ev)
			switch key.Rune {
			case '[':
				radar.Zoom(0.8)
				return nil
			case ']':
				radar.Zoom(1.25)
				return nil
			}
			switch controls.Handle(key, &opts) {
			case tui.ActionQuit:
				return errQuit
			case tui.ActionToggled:
				log.Debug().Interface("options", opts).Msg("render options changed")
			}
		}
		return nil
	}

	tick := func() error {
	drain:
		for {
			select {
			case ev, ok := <-events:
				if !ok {
					return errQuit
				}
				if err := handle(ev); err != nil {
					return err
				}
			default:
				break drain
			}
		}

		sim.Step(controls.Intent())
		screen.Clear()
		radar.Draw(screen, sim, opts, controls.AltControls())
		screen.Show()
		return nil
	}

	code := 0
	err = core.NewFixedStep(cfg.TPS).Run(ctx, tick)
	if err != nil && !errors.Is(err, errQuit) {
		log.Error().Err(err).Msg("loop failed")
		code = 1
	}
	log.Info().Uint64("tick", sim.Tick()).Int64("seed", sim.Seed()).Msg("terminal session ended")
	return code
}
