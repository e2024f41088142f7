package tui

import (
	"fmt"
	"math"
	"strings"

	"flightsim/internal/render"
	"flightsim/internal/world"

	"github.com/gdamore/tcell/v2"
)

var (
	styleDefault   = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)
	styleSea       = styleDefault.Foreground(tcell.ColorNavy)
	styleGrid      = styleDefault.Foreground(tcell.ColorDarkGray)
	styleLowland   = styleDefault.Foreground(tcell.ColorGreen)
	styleHighland  = styleDefault.Foreground(tcell.ColorLime)
	styleSnow      = styleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleAircraft  = styleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleShot      = styleDefault.Foreground(tcell.ColorSilver)
	styleExplosion = styleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleHeader    = styleDefault.Foreground(tcell.ColorAqua).Bold(true)
	styleSpeed     = styleDefault.Foreground(tcell.ColorLime)
	styleAltitude  = styleDefault.Foreground(tcell.ColorBlue)
	styleWarning   = styleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorRed).Bold(true)
)

// Glyphs used on the radar.
const (
	GlyphSea       = '~'
	GlyphGrid      = '+'
	GlyphLowland   = '.'
	GlyphHighland  = '^'
	GlyphSnow      = 'A'
	GlyphShot      = '*'
	GlyphExplosion = '#'
)

var headingGlyphs = [8]rune{'↑', '↗', '→', '↘', '↓', '↙', '←', '↖'}

// HeadingGlyph returns the arrow for a heading. Heading 0 flies up the
// screen (+Z) and positive headings turn towards +X, drawn to the right.
func HeadingGlyph(heading float64) rune {
	octant := int(math.Round(heading/(math.Pi/4))) % 8
	if octant < 0 {
		octant += 8
	}
	return headingGlyphs[octant]
}

// StatusWidth is the number of columns the status board takes.
const StatusWidth = 26

// Radar draws a north-up map centred on the aircraft with a status board.
type Radar struct {
	// Scale is world units per cell.
	Scale float64
	// Stride samples every Stride-th mesh vertex.
	Stride int
}

// NewRadar returns a radar with default zoom.
func NewRadar() *Radar {
	return &Radar{Scale: 2, Stride: 2}
}

// Zoom multiplies the scale by factor, keeping it in a sane range.
func (r *Radar) Zoom(factor float64) {
	r.Scale = math.Max(0.25, math.Min(16, r.Scale*factor))
}

// Draw renders the simulator onto screen. It does not call Show.
func (r *Radar) Draw(screen tcell.Screen, sim *world.Simulator, opts render.Options, altControls bool) {
	w, h := screen.Size()
	mapW := w - StatusWidth
	if mapW < 1 {
		mapW = w
	}
	f := sim.Flight()
	cx, cy := mapW/2, h/2

	toCell := func(x, z float64) (int, int, bool) {
		col := cx + int(math.Round((x-f.Position.X())/r.Scale))
		row := cy - int(math.Round((z-f.Position.Z())/r.Scale))
		return col, row, col >= 0 && row >= 0 && col < mapW && row < h
	}

	for y := 0; y < h; y++ {
		for x := 0; x < mapW; x++ {
			screen.SetContent(x, y, GlyphSea, nil, styleSea)
		}
	}

	if opts.Grid {
		spacing := 10.0
		for y := 0; y < h; y++ {
			for x := 0; x < mapW; x++ {
				wx := f.Position.X() + float64(x-cx)*r.Scale
				wz := f.Position.Z() - float64(y-cy)*r.Scale
				if onLine(wx, spacing, r.Scale) && onLine(wz, spacing, r.Scale) {
					screen.SetContent(x, y, GlyphGrid, nil, styleGrid)
				}
			}
		}
	}

	if opts.Mountains {
		stride := max(r.Stride, 1)
		for _, m := range sim.Meshes() {
			for x := 0; x < m.Size(); x += stride {
				for z := 0; z < m.Size(); z += stride {
					height := m.Height(x, z)
					if height <= 0 {
						continue
					}
					v := m.WorldVertex(x, z)
					col, row, ok := toCell(v.X(), v.Z())
					if !ok {
						continue
					}
					glyph, style := terrainCell(height)
					screen.SetContent(col, row, glyph, nil, style)
				}
			}
		}
	}

	for _, p := range sim.Projectiles() {
		if col, row, ok := toCell(p.Position.X(), p.Position.Z()); ok {
			screen.SetContent(col, row, GlyphShot, nil, styleShot)
		}
	}

	if ex := sim.Explosion(); ex.Active {
		radius := int(math.Ceil(ex.Scale * 3))
		for dy := -radius; dy <= radius; dy++ {
			for dx := -radius; dx <= radius; dx++ {
				if dx*dx+dy*dy > radius*radius {
					continue
				}
				x, y := cx+dx, cy+dy
				if x >= 0 && y >= 0 && x < mapW && y < h {
					screen.SetContent(x, y, GlyphExplosion, nil, styleExplosion)
				}
			}
		}
	}
	if f.Alive {
		screen.SetContent(cx, cy, HeadingGlyph(f.Heading), nil, styleAircraft)
	}

	if mapW < w {
		r.drawStatus(screen, mapW, h, sim, opts, altControls)
	}
}

func (r *Radar) drawStatus(screen tcell.Screen, left, h int, sim *world.Simulator, opts render.Options, altControls bool) {
	for y := 0; y < h; y++ {
		screen.SetContent(left, y, tcell.RuneVLine, nil, styleGrid)
		for x := left + 1; x < left+StatusWidth; x++ {
			screen.SetContent(x, y, ' ', nil, styleDefault)
		}
	}
	f := sim.Flight()
	g := render.ReadGauges(f, sim.Config().Flight)
	x := left + 2
	lines := []struct {
		text  string
		style tcell.Style
	}{
		{fmt.Sprintf("%s  seed %d", sim.Name(), sim.Seed()), styleHeader},
		{fmt.Sprintf("tick %d", sim.Tick()), styleDefault},
		{"SPD " + bar(g.Speed/2, 12) + fmt.Sprintf(" %.1f", f.Speed), styleSpeed},
		{"ALT " + bar(g.Altitude, 12) + fmt.Sprintf(" %.1f", f.Position.Y()), styleAltitude},
		{fmt.Sprintf("HDG %5.1f  PIT %+.2f", math.Mod(f.Heading*180/math.Pi, 360), f.Pitch), styleDefault},
		{fmt.Sprintf("shots %d  spread %.3f", sim.ProjectileCount(), sim.Spread()), styleDefault},
		{fmt.Sprintf("zoom %.2f u/cell", r.Scale), styleDefault},
		{"", styleDefault},
		{flags(opts, altControls), styleDefault},
	}
	if !f.Alive {
		lines = append(lines, struct {
			text  string
			style tcell.Style
		}{"  DOWN - press r  ", styleWarning})
	}
	for i, line := range lines {
		if i >= h {
			break
		}
		DrawText(screen, x, i, line.text, line.style)
	}
	help := []string{"arrows steer  a/d speed", "z fire  r respawn  c centre", "w b s m t F1 F2  [ ] zoom", "q quit"}
	for i, line := range help {
		y := h - len(help) + i
		if y > len(lines) {
			DrawText(screen, x, y, line, styleGrid)
		}
	}
}

func terrainCell(height float64) (rune, tcell.Style) {
	switch render.MountainColor(height) {
	case render.MountainColor(0):
		return GlyphLowland, styleLowland
	case render.MountainColor(15):
		return GlyphSnow, styleSnow
	default:
		return GlyphHighland, styleHighland
	}
}

func onLine(v, spacing, scale float64) bool {
	r := math.Mod(math.Abs(v), spacing)
	return r < scale/2 || spacing-r < scale/2
}

func bar(ratio float64, width int) string {
	n := int(math.Round(math.Max(0, math.Min(1, ratio)) * float64(width)))
	return "[" + strings.Repeat("=", n) + strings.Repeat(" ", width-n) + "]"
}

func flags(opts render.Options, altControls bool) string {
	mark := func(on bool, name string) string {
		if on {
			return strings.ToUpper(name)
		}
		return name
	}
	return strings.Join([]string{
		mark(opts.Wireframe, "w"),
		mark(opts.Fog, "b"),
		mark(opts.Grid, "s"),
		mark(opts.Mountains, "m"),
		mark(opts.Shading, "t"),
		mark(altControls, "f1"),
		mark(opts.AltWeather, "f2"),
	}, " ")
}

// DrawText writes text starting at (x, y), one rune per cell.
func DrawText(s tcell.Screen, x, y int, text string, style tcell.Style) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}
