//go:build ebiten

package ui

import (
	"image/color"
	"math"

	"flightsim/internal/render"
	"flightsim/internal/terrain"
	"flightsim/internal/world"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

// Overlay draws the crosshair, crash effect and optional heightmap and help
// panels on top of the cockpit view.
type Overlay struct {
	sim      *world.Simulator
	showHelp bool
	showMaps bool

	maps     []*ebiten.Image
	mapBuf   []byte
	mapsFrom []*terrain.Mesh
}

// NewOverlay constructs an overlay for sim.
func NewOverlay(sim *world.Simulator) *Overlay {
	return &Overlay{sim: sim, showHelp: true}
}

// Update handles the overlay toggles.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showHelp = !o.showHelp
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.showMaps = !o.showMaps
	}
}

// Draw renders the overlay onto a w by h view.
func (o *Overlay) Draw(screen *ebiten.Image, w, h int, opts render.Options, alt bool) {
	cx, cy := float32(w)/2, float32(h)/2
	if o.sim.Flight().Alive {
		o.drawCrosshair(screen, cx, cy, float32(o.sim.Crosshair()))
	}
	if ex := o.sim.Explosion(); ex.Active {
		r := float32(ex.Scale) * float32(min(w, h)) / 2
		vector.DrawFilledCircle(screen, cx, cy, r, render.ExplosionColor, true)
	}
	if o.showMaps {
		o.drawHeightmaps(screen, w)
	}
	if o.showHelp {
		o.drawHelp(screen, h, opts, alt)
	}
}

func (o *Overlay) drawCrosshair(screen *ebiten.Image, cx, cy, scale float32) {
	const (
		gap    = 6
		length = 8
	)
	g := gap * scale
	l := length * scale
	col := color.RGBA{R: 230, G: 230, B: 230, A: 255}
	vector.StrokeLine(screen, cx-g-l, cy, cx-g, cy, 1, col, false)
	vector.StrokeLine(screen, cx+g, cy, cx+g+l, cy, 1, col, false)
	vector.StrokeLine(screen, cx, cy-g-l, cx, cy-g, 1, col, false)
	vector.StrokeLine(screen, cx, cy+g, cx, cy+g+l, 1, col, false)
}

// drawHeightmaps shows each mountain's elevation as a thumbnail along the
// top right edge. Thumbnails are rebuilt only when the world changes.
func (o *Overlay) drawHeightmaps(screen *ebiten.Image, w int) {
	meshes := o.sim.Meshes()
	if !sameMeshes(meshes, o.mapsFrom) {
		o.rebuildMaps(meshes)
	}
	const (
		thumb  = 64
		margin = 8
	)
	x := float64(w - margin - thumb)
	for _, img := range o.maps {
		n := img.Bounds().Dx()
		if n == 0 {
			continue
		}
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(thumb/float64(n), thumb/float64(n))
		op.GeoM.Translate(x, margin)
		screen.DrawImage(img, op)
		x -= thumb + margin
	}
}

func (o *Overlay) rebuildMaps(meshes []*terrain.Mesh) {
	o.maps = o.maps[:0]
	for _, m := range meshes {
		n := m.Size()
		if len(o.mapBuf) != 4*n*n {
			o.mapBuf = make([]byte, 4*n*n)
		}
		render.FillHeightmapRGBA(o.mapBuf, m.Heightfield().Samples())
		img := ebiten.NewImage(n, n)
		img.WritePixels(o.mapBuf)
		o.maps = append(o.maps, img)
	}
	o.mapsFrom = meshes
}

func sameMeshes(a, b []*terrain.Mesh) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (o *Overlay) drawHelp(screen *ebiten.Image, h int, opts render.Options, alt bool) {
	face := basicfont.Face7x13
	lines := Help()
	lines = append(lines, flagLine(opts, alt))
	y := h - len(lines)*lineSpacing
	for _, line := range lines {
		text.Draw(screen, line, face, panelPadding, y, dimColor)
		y += lineSpacing
	}
	if !o.sim.Flight().Alive {
		msg := "aircraft lost - press R to respawn"
		bounds := text.BoundString(face, msg)
		w := screen.Bounds().Dx()
		text.Draw(screen, msg, face, (w-bounds.Dx())/2, int(math.Round(float64(h)/3)), labelColor)
	}
}

func flagLine(opts render.Options, alt bool) string {
	on := func(b bool, s string) string {
		if b {
			return "[" + s + "]"
		}
		return " " + s + " "
	}
	return on(opts.Wireframe, "wire") + on(opts.Fog, "fog") + on(opts.Grid, "grid") +
		on(opts.Mountains, "mtn") + on(opts.Shading, "shade") + on(alt, "alt") + on(opts.AltWeather, "wx")
}
