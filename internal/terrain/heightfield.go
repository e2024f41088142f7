package terrain

import (
	"math"

	"flightsim/internal/core"
)

// Source supplies the integer draws consumed by terrain synthesis.
// core.RNG satisfies it.
type Source interface {
	Between(min, max int) float64
}

// Heightfield is a square grid of elevation samples. It is read-only once
// generated.
type Heightfield struct {
	grid *core.FloatGrid
}

// Size returns the side length of the grid.
func (h *Heightfield) Size() int { return h.grid.N }

// At returns the elevation at (x, z), or 0 outside the grid.
func (h *Heightfield) At(x, z int) float64 { return h.grid.At(x, z) }

// Samples returns a copy of all elevations in x-major order.
func (h *Heightfield) Samples() []float64 {
	return append([]float64(nil), h.grid.Samples()...)
}

// Jitter holds the horizontal offsets applied to each vertex when the mesh is
// placed. They never affect elevation.
type Jitter struct {
	x, z *core.FloatGrid
}

// At returns the x and z offsets for vertex (x, z).
func (j *Jitter) At(x, z int) (float64, float64) {
	return j.x.At(x, z), j.z.At(x, z)
}

// Stats reports how much recursive work a generation performed.
type Stats struct {
	// Nodes counts regions that received displacement.
	Nodes int
	// Draws counts displacement draws (five per node).
	Draws int
	// MaxDepth is the deepest iteration entered, base cases included.
	MaxDepth int
}

// ExpectedNodes returns the node count a generation with the given depth
// limit performs, independent of grid size.
func ExpectedNodes(maxDepth int) int {
	if maxDepth <= 1 {
		return 0
	}
	total := 0
	level := 1
	for i := 1; i < maxDepth; i++ {
		total += level
		level *= 4
	}
	return total
}

// Generate builds a heightfield and its jitter field. Every random draw goes
// through src in a fixed order: per cell (x-major) a jitter x then a jitter z
// draw, then five displacement draws per recursion node in depth-first
// top-left, top-right, bottom-left, bottom-right order.
func Generate(cfg Config, src Source) (*Heightfield, *Jitter, Stats) {
	g := newGenerator(cfg, src)
	g.run()
	return &Heightfield{grid: g.height}, &Jitter{x: g.jx, z: g.jz}, g.stats
}

// quadrantOrder visits top-left, top-right, bottom-left, bottom-right.
var quadrantOrder = [4]int{0, 1, 2, 3}

type generator struct {
	cfg    Config
	src    Source
	height *core.FloatGrid
	jx, jz *core.FloatGrid
	stats  Stats

	order [4]int
	// writes counts displacements per sample when non-nil.
	writes *core.FloatGrid
}

func newGenerator(cfg Config, src Source) *generator {
	cfg = cfg.normalized()
	n := cfg.Size
	return &generator{
		cfg:    cfg,
		src:    src,
		height: core.NewFloatGrid(n),
		jx:     core.NewFloatGrid(n),
		jz:     core.NewFloatGrid(n),
		order:  quadrantOrder,
	}
}

func (g *generator) run() {
	n := g.cfg.Size
	g.seedCone()
	g.raise(1, n-1, 1, n-1, 1)
	g.height.ZeroBorder()
}

func (g *generator) seedCone() {
	n := g.cfg.Size
	half := n / 2
	span := g.cfg.JitterSpan
	mid := float64(span / 2)
	for x := 0; x < n; x++ {
		for z := 0; z < n; z++ {
			dx := float64(half - x)
			dz := float64(half - z)
			distance := math.Sqrt(dx*dx+dz*dz) * g.cfg.ConeFalloff
			base := (float64(half) - distance) / 2
			g.jx.Set(x, z, (g.src.Between(0, span)-mid)/float64(span))
			g.jz.Set(x, z, (g.src.Between(0, span)-mid)/float64(span))
			if base < 0 {
				base = 0
			}
			g.height.Set(x, z, base)
		}
	}
}

// raise displaces the centre and edge midpoints of [left,right)x[top,bottom)
// and recurses into the quadrants. Odd extents split on the integer midpoint,
// so the upper quadrants overlap the lower ones by one sample; shared samples
// accumulate, which keeps the result independent of visit order.
func (g *generator) raise(left, right, top, bottom, iteration int) {
	if iteration > g.stats.MaxDepth {
		g.stats.MaxDepth = iteration
	}
	if iteration >= g.cfg.MaxDepth {
		return
	}
	g.stats.Nodes++

	width := right - left
	height := bottom - top
	scale := 2 * float64(iteration)

	g.bump(left+width/2, top+height/2, scale)
	g.bump(left, top+height/2, scale)
	g.bump(left+width/2, top, scale)
	g.bump(left+width-1, top+height/2, scale)
	g.bump(left+width/2, top+height-1, scale)

	iteration++
	quadrants := [4][4]int{
		{left, left + width/2, top, bottom - height/2},
		{left + width/2, right, top, bottom - height/2},
		{left, left + width/2, top + height/2, bottom},
		{left + width/2, right, top + height/2, bottom},
	}
	for _, q := range g.order {
		r := quadrants[q]
		g.raise(r[0], r[1], r[2], r[3], iteration)
	}
}

func (g *generator) bump(x, z int, scale float64) {
	g.stats.Draws++
	if g.writes != nil {
		g.writes.Add(x, z, 1)
	}
	g.height.Add(x, z, g.src.Between(0, g.cfg.DisplaceSpan)/scale)
}
