package terrain

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Placement positions a mesh in the world. The grid is centred on its own
// middle, rotated about Y, scaled, pushed out onto the ring and finally
// lowered by Origin so its flat border sits under the sea.
type Placement struct {
	Origin   mgl64.Vec3
	Ring     mgl64.Vec3
	Scale    mgl64.Vec3
	Rotation float64
	Size     int
}

// Matrix returns the local-to-world transform.
func (p Placement) Matrix() mgl64.Mat4 {
	half := float64(p.Size) / 2
	return mgl64.Translate3D(p.Origin.Elem()).
		Mul4(mgl64.Translate3D(p.Ring.Elem())).
		Mul4(mgl64.Scale3D(p.Scale.Elem())).
		Mul4(mgl64.HomogRotate3DY(p.Rotation)).
		Mul4(mgl64.Translate3D(-half, 0, -half))
}

// Apply transforms a local grid-space point into world space.
func (p Placement) Apply(v mgl64.Vec3) mgl64.Vec3 {
	return mgl64.TransformCoordinate(v, p.Matrix())
}

// Mesh is one generated mountain: elevations, jitter, derived normals and its
// placement. It is immutable after construction.
type Mesh struct {
	height    *Heightfield
	jitter    *Jitter
	normals   []mgl64.Vec3
	placement Placement
	matrix    mgl64.Mat4
	mode      Mode
	stats     Stats
}

// NewMesh derives normals for hf and binds everything to a placement.
func NewMesh(hf *Heightfield, jit *Jitter, placement Placement, mode Mode) *Mesh {
	placement.Size = hf.Size()
	return &Mesh{
		height:    hf,
		jitter:    jit,
		normals:   EstimateNormals(hf, jit, mode),
		placement: placement,
		matrix:    placement.Matrix(),
		mode:      mode,
	}
}

// Size returns the side length of the underlying grid.
func (m *Mesh) Size() int { return m.height.Size() }

// Height returns the elevation at (x, z).
func (m *Mesh) Height(x, z int) float64 { return m.height.At(x, z) }

// Heightfield exposes the read-only elevation grid.
func (m *Mesh) Heightfield() *Heightfield { return m.height }

// Jitter returns the horizontal offsets of vertex (x, z).
func (m *Mesh) Jitter(x, z int) (float64, float64) { return m.jitter.At(x, z) }

// Normal returns the precomputed normal of vertex (x, z), or Up outside the grid.
func (m *Mesh) Normal(x, z int) mgl64.Vec3 {
	n := m.Size()
	if x < 0 || z < 0 || x >= n || z >= n {
		return Up
	}
	return m.normals[x*n+z]
}

// Vertex returns the jittered local position of vertex (x, z).
func (m *Mesh) Vertex(x, z int) mgl64.Vec3 {
	return vertexAt(m.height, m.jitter, x, z)
}

// WorldVertex returns the world position of vertex (x, z).
func (m *Mesh) WorldVertex(x, z int) mgl64.Vec3 {
	return mgl64.TransformCoordinate(m.Vertex(x, z), m.matrix)
}

// Placement returns the mesh placement.
func (m *Mesh) Placement() Placement { return m.placement }

// Mode reports which normal estimation variant built the mesh.
func (m *Mesh) Mode() Mode { return m.mode }

// Stats reports the recursion work that produced the heightfield.
func (m *Mesh) Stats() Stats { return m.stats }

// BuildWorld generates count independent mountains spaced evenly around the
// ring. Each mountain draws its three axis scales and then runs a fresh
// Generate, so no heightfield is shared.
func BuildWorld(cfg Config, count int, src Source) []*Mesh {
	if count <= 0 {
		return nil
	}
	cfg = cfg.normalized()
	meshes := make([]*Mesh, 0, count)
	step := 2 * math.Pi / float64(count)
	for i := 0; i < count; i++ {
		angle := float64(i) * step
		scale := mgl64.Vec3{
			cfg.BaseScale * src.Between(cfg.ScaleMin, cfg.ScaleMax) / 100,
			cfg.BaseScale * src.Between(cfg.ScaleMin, cfg.ScaleMax) / 100,
			cfg.BaseScale * src.Between(cfg.ScaleMin, cfg.ScaleMax) / 100,
		}
		hf, jit, stats := Generate(cfg, src)
		placement := Placement{
			Origin:   mgl64.Vec3{0, cfg.SeaOffset, 0},
			Ring:     mgl64.Vec3{math.Sin(angle) * cfg.RingRadius, 0, math.Cos(angle) * cfg.RingRadius},
			Scale:    scale,
			Rotation: angle,
		}
		mesh := NewMesh(hf, jit, placement, cfg.Mode)
		mesh.stats = stats
		meshes = append(meshes, mesh)
	}
	return meshes
}

// Summary condenses a mesh into a handful of figures for tuning tools.
type Summary struct {
	Peak       float64
	Mean       float64
	BorderMax  float64
	NormalMinY float64
	NormalMaxY float64
	NaNNormals int
}

// Summarize scans the mesh once and reports its summary figures.
func Summarize(m *Mesh) Summary {
	n := m.Size()
	s := Summary{NormalMinY: math.Inf(1), NormalMaxY: math.Inf(-1)}
	total := 0.0
	for x := 0; x < n; x++ {
		for z := 0; z < n; z++ {
			h := m.Height(x, z)
			total += h
			if h > s.Peak {
				s.Peak = h
			}
			if m.height.grid.IsBorder(x, z) && math.Abs(h) > s.BorderMax {
				s.BorderMax = math.Abs(h)
			}
			nv := m.Normal(x, z)
			if math.IsNaN(nv.X()) || math.IsNaN(nv.Y()) || math.IsNaN(nv.Z()) {
				s.NaNNormals++
				continue
			}
			s.NormalMinY = math.Min(s.NormalMinY, nv.Y())
			s.NormalMaxY = math.Max(s.NormalMaxY, nv.Y())
		}
	}
	s.Mean = total / float64(n*n)
	return s
}
