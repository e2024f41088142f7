package terrain

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Up is the normal reported for border and degenerate vertices.
var Up = mgl64.Vec3{0, 1, 0}

const degenerateEpsilon = 1e-9

// faceNormal returns the unit normal of triangle (a, b, c) anchored at a. The
// second result is false when the triangle is degenerate.
func faceNormal(a, b, c mgl64.Vec3) (mgl64.Vec3, bool) {
	n := b.Sub(a).Cross(c.Sub(a))
	l := n.Len()
	if l < degenerateEpsilon {
		return Up, false
	}
	return n.Mul(1 / l), true
}

func vertexAt(hf *Heightfield, jit *Jitter, x, z int) mgl64.Vec3 {
	jx, jz := jit.At(x, z)
	return mgl64.Vec3{float64(x) + jx, hf.At(x, z), float64(z) + jz}
}

// EstimateNormal averages the face normals of the four triangles around the
// interior vertex (x, z). Border vertices, and vertices touching a degenerate
// triangle, report Up.
func EstimateNormal(hf *Heightfield, jit *Jitter, x, z int, mode Mode) mgl64.Vec3 {
	n := hf.Size()
	if x <= 0 || z <= 0 || x >= n-1 || z >= n-1 {
		return Up
	}

	c := vertexAt(hf, jit, x, z)
	top := vertexAt(hf, jit, x, z-1)
	left := vertexAt(hf, jit, x-1, z)
	right := vertexAt(hf, jit, x+1, z)
	bottom := vertexAt(hf, jit, x, z+1)

	var faces [4][3]mgl64.Vec3
	faces[0] = [3]mgl64.Vec3{c, top, left}
	faces[1] = [3]mgl64.Vec3{c, right, top}
	if mode == ModeCorrected {
		faces[2] = [3]mgl64.Vec3{c, left, bottom}
		faces[3] = [3]mgl64.Vec3{c, bottom, right}
	} else {
		// Classic layout: the lower-left face is wound the other way and
		// the lower-right face takes its x jitter from (x+1, z+1).
		jx, _ := jit.At(x+1, z+1)
		skewed := mgl64.Vec3{float64(x+1) + jx, right.Y(), right.Z()}
		faces[2] = [3]mgl64.Vec3{c, bottom, left}
		faces[3] = [3]mgl64.Vec3{c, bottom, skewed}
	}

	var sum mgl64.Vec3
	for _, f := range faces {
		fn, ok := faceNormal(f[0], f[1], f[2])
		if !ok {
			return Up
		}
		sum = sum.Add(fn)
	}
	avg := sum.Mul(0.25)

	if mode == ModeCorrected {
		if l := avg.Len(); l >= degenerateEpsilon {
			return avg.Mul(1 / l)
		}
		return Up
	}
	return avg
}

// EstimateNormals computes the normal of every vertex in x-major order.
func EstimateNormals(hf *Heightfield, jit *Jitter, mode Mode) []mgl64.Vec3 {
	n := hf.Size()
	out := make([]mgl64.Vec3, n*n)
	for x := 0; x < n; x++ {
		for z := 0; z < n; z++ {
			out[x*n+z] = EstimateNormal(hf, jit, x, z, mode)
		}
	}
	return out
}
