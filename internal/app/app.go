//go:build ebiten

package app

import (
	"flightsim/internal/render"
	"flightsim/internal/ui"
	"flightsim/internal/world"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/rs/zerolog"
)

// meshStride samples every other lattice vertex outside wireframe mode.
const meshStride = 2

var toggleKeys = map[ebiten.Key]rune{
	ebiten.KeyW:  'w',
	ebiten.KeyB:  'b',
	ebiten.KeyS:  's',
	ebiten.KeyM:  'm',
	ebiten.KeyT:  't',
	ebiten.KeyF2: 0xF2,
}

// Game adapts the world simulator to the ebiten.Game interface.
type Game struct {
	sim     *world.Simulator
	hud     *ui.HUD
	overlay *ui.Overlay
	opts    render.Options
	log     zerolog.Logger

	width, height int
	hudWidth      int

	alt      bool
	paused   bool
	tickOnce bool
}

// New constructs a Game for sim using the window settings in cfg.
func New(sim *world.Simulator, cfg *Config, log zerolog.Logger) *Game {
	return &Game{
		sim:      sim,
		hud:      ui.NewHUD(sim, cfg.HUDWidth),
		overlay:  ui.NewOverlay(sim),
		opts:     render.DefaultOptions(),
		log:      log,
		width:    cfg.Width,
		height:   cfg.Height,
		hudWidth: cfg.HUDWidth,
	}
}

// Update handles per-frame input and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.alt = !g.alt
		g.log.Debug().Bool("alt", g.alt).Msg("control mode")
	}
	for key, r := range toggleKeys {
		if inpututil.IsKeyJustPressed(key) {
			g.opts.Toggle(r)
		}
	}

	g.hud.Update(g.width)
	g.overlay.Update()

	if g.paused && !g.tickOnce {
		return nil
	}
	g.tickOnce = false
	g.sim.Step(BuildIntent(g.readKeys(), g.readPointer(), g.alt))
	return nil
}

func (g *Game) readKeys() Keys {
	return Keys{
		Accelerate: ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyEqual),
		Decelerate: ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyMinus),
		Climb:      ebiten.IsKeyPressed(ebiten.KeyArrowUp),
		Descend:    ebiten.IsKeyPressed(ebiten.KeyArrowDown),
		Fire:       ebiten.IsKeyPressed(ebiten.KeyZ) || ebiten.IsKeyPressed(ebiten.KeySpace),
		Reset:      inpututil.IsKeyJustPressed(ebiten.KeyR),
	}
}

func (g *Game) readPointer() Pointer {
	x, y := ebiten.CursorPosition()
	_, wheel := ebiten.Wheel()
	inView := x >= 0 && x < g.width && y >= 0 && y < g.height
	if !inView {
		x, y = g.width/2, g.height/2
	}
	return Pointer{
		X:      x,
		Y:      y,
		Width:  g.width,
		Height: g.height,
		Wheel:  wheel,
		Fire:   inView && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
	}
}

// Draw renders the cockpit view, the overlay and the parameter panel.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(render.SkyColor)

	cam := render.NewCamera(g.sim.Flight(), float64(g.width)/float64(g.height))
	if g.opts.Grid {
		strokeAll(screen, render.GridSegments(cam, 200, 10, g.width, g.height), 1)
	} else {
		top := float32(cam.Horizon(g.width, g.height))
		vector.DrawFilledRect(screen, 0, top, float32(g.width), float32(g.height)-top, render.SeaColor, false)
	}
	if g.opts.Mountains {
		stride, width := meshStride, float32(2)
		if g.opts.Wireframe {
			stride, width = 1, 1
		}
		for _, m := range g.sim.Meshes() {
			strokeAll(screen, render.MeshSegments(cam, m, stride, g.width, g.height, g.opts), width)
		}
	}
	for _, d := range render.ProjectileDots(cam, g.sim.Projectiles(), g.width, g.height) {
		vector.DrawFilledCircle(screen, float32(d.At.X()), float32(d.At.Y()), float32(d.Radius), d.Color, true)
	}

	g.overlay.Draw(screen, g.width, g.height, g.opts, g.alt)
	g.hud.Draw(screen, g.width, g.height)
}

func strokeAll(screen *ebiten.Image, segs []render.Segment, width float32) {
	for _, s := range segs {
		vector.StrokeLine(screen, float32(s.A.X()), float32(s.A.Y()), float32(s.B.X()), float32(s.B.Y()), width, s.Color, false)
	}
}

// Layout returns the logical screen size: the view plus the parameter panel.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width + g.hudWidth, g.height
}
