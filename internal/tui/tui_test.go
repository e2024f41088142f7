package tui

import (
	"math"
	"strings"
	"testing"

	"flightsim/internal/core"
	"flightsim/internal/render"
	"flightsim/internal/world"

	"github.com/gdamore/tcell/v2"
)

// MockScreen records SetContent calls; everything else is unused.
type MockScreen struct {
	tcell.Screen
	width, height int
	cells         map[[2]int]rune
}

func newMockScreen(w, h int) *MockScreen {
	return &MockScreen{width: w, height: h, cells: map[[2]int]rune{}}
}

func (m *MockScreen) Size() (int, int) { return m.width, m.height }

func (m *MockScreen) SetContent(x, y int, mainc rune, combc []rune, style tcell.Style) {
	m.cells[[2]int{x, y}] = mainc
}

func (m *MockScreen) at(x, y int) rune { return m.cells[[2]int{x, y}] }

func (m *MockScreen) count(r rune) int {
	n := 0
	for _, c := range m.cells {
		if c == r {
			n++
		}
	}
	return n
}

func (m *MockScreen) row(y, from, n int) string {
	var b strings.Builder
	for x := from; x < from+n; x++ {
		b.WriteRune(m.at(x, y))
	}
	return b.String()
}

func smallWorld() *world.Simulator {
	cfg := world.DefaultConfig()
	cfg.Terrain.Size = 33
	return world.New(cfg)
}

func TestHeadingGlyph(t *testing.T) {
	cases := map[float64]rune{
		0:                '↑',
		math.Pi / 2:      '→',
		math.Pi:          '↓',
		-math.Pi / 2:     '←',
		2 * math.Pi:      '↑',
		math.Pi / 4:      '↗',
		-3 * math.Pi / 4: '↙',
	}
	for h, want := range cases {
		if got := HeadingGlyph(h); got != want {
			t.Fatalf("HeadingGlyph(%v) = %q, want %q", h, got, want)
		}
	}
}

func TestControlsLatchHeldKeys(t *testing.T) {
	c := NewControls()
	c.Handle(Key{Code: tcell.KeyUp}, nil)
	for i := 0; i < DefaultHoldTicks; i++ {
		if !c.Intent().Climb {
			t.Fatalf("climb released early on tick %d", i)
		}
	}
	if c.Intent().Climb {
		t.Fatal("climb should release after the hold period")
	}

	c.Handle(Key{Code: tcell.KeyUp}, nil)
	c.Handle(Key{Code: tcell.KeyDown}, nil)
	if in := c.Intent(); in.Climb || !in.Descend {
		t.Fatalf("descend should cancel climb, got %+v", in)
	}
}

func TestControlsSteeringPersists(t *testing.T) {
	c := NewControls()
	for i := 0; i < 3; i++ {
		c.Handle(Key{Code: tcell.KeyLeft}, nil)
	}
	for i := 0; i < 20; i++ {
		if got := c.Intent().TurnBias; got != 0.15 {
			t.Fatalf("turn bias = %v, want 0.15", got)
		}
	}
	for i := 0; i < 40; i++ {
		c.Handle(Key{Code: tcell.KeyRight}, nil)
	}
	if got := c.Intent().TurnBias; got != -maxBias {
		t.Fatalf("turn bias = %v, want clamp at %v", got, -maxBias)
	}
	c.Handle(Key{Code: tcell.KeyRune, Rune: 'c'}, nil)
	if got := c.Intent().TurnBias; got != 0 {
		t.Fatalf("centred bias = %v", got)
	}
}

func TestControlsAltModeAndReset(t *testing.T) {
	c := NewControls()
	if c.Handle(Key{Code: tcell.KeyF1}, nil) != ActionToggled || !c.AltControls() {
		t.Fatal("F1 should enable alternate controls")
	}
	c.Handle(Key{Code: tcell.KeyUp}, nil)
	in := c.Intent()
	if in.Climb || in.PitchBias != biasStep || !in.AltControls {
		t.Fatalf("alt mode up = %+v", in)
	}

	c.Handle(Key{Code: tcell.KeyRune, Rune: 'r'}, nil)
	if !c.Intent().Reset {
		t.Fatal("r should request a reset")
	}
	if in := c.Intent(); in.Reset || in.PitchBias != 0 {
		t.Fatalf("reset must be one-shot and recentre, got %+v", in)
	}
}

func TestControlsActions(t *testing.T) {
	c := NewControls()
	opts := render.DefaultOptions()
	if c.Handle(Key{Code: tcell.KeyRune, Rune: 'q'}, &opts) != ActionQuit {
		t.Fatal("q should quit")
	}
	if c.Handle(Key{Code: tcell.KeyEscape}, &opts) != ActionQuit {
		t.Fatal("escape should quit")
	}
	if c.Handle(Key{Code: tcell.KeyRune, Rune: 's'}, &opts) != ActionToggled || !opts.Grid {
		t.Fatal("s should toggle the grid")
	}
	if c.Handle(Key{Code: tcell.KeyF2}, &opts) != ActionToggled || !opts.AltWeather {
		t.Fatal("F2 should toggle alternate weather")
	}
	c.Handle(Key{Code: tcell.KeyRune, Rune: 'z'}, &opts)
	c.Handle(Key{Code: tcell.KeyRune, Rune: '+'}, &opts)
	if in := c.Intent(); !in.Fire || !in.Accelerate {
		t.Fatalf("expected fire and accelerate, got %+v", in)
	}
}

func TestRadarDrawsWorld(t *testing.T) {
	sim := smallWorld()
	for i := 0; i < 3; i++ {
		sim.Step(core.ControlIntent{Climb: true, Fire: true})
	}

	screen := newMockScreen(80, 24)
	radar := NewRadar()
	radar.Zoom(2.5)
	radar.Draw(screen, sim, render.DefaultOptions(), false)

	cx, cy := (80-StatusWidth)/2, 12
	if got := screen.at(cx, cy); got != '↑' {
		t.Fatalf("aircraft glyph = %q, want ↑", got)
	}
	if screen.count(GlyphLowland)+screen.count(GlyphHighland)+screen.count(GlyphSnow) == 0 {
		t.Fatal("no terrain drawn")
	}
	if screen.count(GlyphShot) == 0 {
		t.Fatal("no projectiles drawn")
	}
	if got := screen.row(2, 80-StatusWidth+2, 3); got != "SPD" {
		t.Fatalf("status row = %q, want SPD", got)
	}
}

func TestRadarDrawsExplosion(t *testing.T) {
	sim := smallWorld()
	for sim.Flight().Alive {
		sim.Step(core.ControlIntent{Descend: true})
	}
	screen := newMockScreen(60, 20)
	NewRadar().Draw(screen, sim, render.DefaultOptions(), false)
	if got := screen.at((60-StatusWidth)/2, 10); got != GlyphExplosion {
		t.Fatalf("centre = %q, want explosion", got)
	}
}

func TestRadarOnSimulationScreen(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	defer screen.Fini()
	screen.SetSize(100, 30)

	opts := render.DefaultOptions()
	opts.Grid = true
	NewRadar().Draw(screen, smallWorld(), opts, true)
	screen.Show()
}
