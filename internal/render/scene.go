package render

import (
	"image/color"
	"math"

	"flightsim/internal/projectile"
	"flightsim/internal/terrain"

	"github.com/go-gl/mathgl/mgl64"
)

// Segment is a screen-space line with a colour.
type Segment struct {
	A, B  mgl64.Vec2
	Color color.RGBA
}

// Dot is a screen-space point with a radius in pixels.
type Dot struct {
	At     mgl64.Vec2
	Radius float64
	Color  color.RGBA
}

// MeshSegments projects the mesh lattice as line segments, sampling every
// stride vertices. Segments with an end behind the camera are skipped.
func MeshSegments(c Camera, m *terrain.Mesh, stride, w, h int, opts Options) []Segment {
	if stride < 1 {
		stride = 1
	}
	n := m.Size()
	fog := opts.FogDensity(c.Eye.Y())

	type projected struct {
		at mgl64.Vec2
		ok bool
		c  color.RGBA
	}
	cols := (n-1)/stride + 1
	pts := make([]projected, cols*cols)
	for i := 0; i < cols; i++ {
		for j := 0; j < cols; j++ {
			x, z := i*stride, j*stride
			world := m.WorldVertex(x, z)
			at, ok := c.Project(world, w, h)
			col := MountainColor(m.Height(x, z))
			if opts.Shading {
				col = Shade(col, m.Normal(x, z))
			}
			col = ApplyFog(col, fog, c.Distance(world))
			pts[i*cols+j] = projected{at: at, ok: ok, c: col}
		}
	}

	var out []Segment
	link := func(a, b projected) {
		if a.ok && b.ok {
			out = append(out, Segment{A: a.at, B: b.at, Color: a.c})
		}
	}
	for i := 0; i < cols; i++ {
		for j := 0; j < cols; j++ {
			p := pts[i*cols+j]
			if i+1 < cols {
				link(p, pts[(i+1)*cols+j])
			}
			if j+1 < cols {
				link(p, pts[i*cols+j+1])
			}
		}
	}
	return out
}

// GridSegments projects a square sea-level grid centred under the eye.
func GridSegments(c Camera, extent, spacing float64, w, h int) []Segment {
	if spacing <= 0 || extent <= 0 {
		return nil
	}
	cx := math.Round(c.Eye.X()/spacing) * spacing
	cz := math.Round(c.Eye.Z()/spacing) * spacing
	var out []Segment
	line := func(a, b mgl64.Vec3) {
		pa, okA := c.Project(a, w, h)
		pb, okB := c.Project(b, w, h)
		if okA && okB {
			out = append(out, Segment{A: pa, B: pb, Color: GridColor})
		}
	}
	for d := -extent; d <= extent; d += spacing {
		line(mgl64.Vec3{cx + d, 0, cz - extent}, mgl64.Vec3{cx + d, 0, cz + extent})
		line(mgl64.Vec3{cx - extent, 0, cz + d}, mgl64.Vec3{cx + extent, 0, cz + d})
	}
	return out
}

// ProjectileDots projects projectiles, shrinking them with distance.
func ProjectileDots(c Camera, shots []projectile.Projectile, w, h int) []Dot {
	out := make([]Dot, 0, len(shots))
	for _, p := range shots {
		at, ok := c.Project(p.Position, w, h)
		if !ok {
			continue
		}
		r := math.Max(1, 30/math.Max(c.Distance(p.Position), 1))
		out = append(out, Dot{At: at, Radius: r, Color: ProjectileColor})
	}
	return out
}
