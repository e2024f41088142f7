// Package render turns simulation state into screen-space geometry and
// colours. It draws nothing itself; the ebiten and terminal front ends do.
package render

import (
	"flightsim/internal/flight"

	"github.com/go-gl/mathgl/mgl64"
)

// Camera is a perspective cockpit camera.
type Camera struct {
	Eye    mgl64.Vec3
	Target mgl64.Vec3
	FovY   float64 // degrees
	Aspect float64
	Near   float64
	Far    float64

	viewProj mgl64.Mat4
}

// Default projection settings.
const (
	DefaultFovY = 60
	DefaultNear = 0.1
	DefaultFar  = 1000
)

// NewCamera places a camera at the aircraft eye looking at its target.
func NewCamera(s flight.State, aspect float64) Camera {
	if aspect <= 0 {
		aspect = 1
	}
	c := Camera{
		Eye:    s.Position,
		Target: s.Target,
		FovY:   DefaultFovY,
		Aspect: aspect,
		Near:   DefaultNear,
		Far:    DefaultFar,
	}
	c.viewProj = c.Projection().Mul4(c.View())
	return c
}

// View returns the world-to-eye matrix. Up is always +Y.
func (c Camera) View() mgl64.Mat4 {
	return mgl64.LookAtV(c.Eye, c.Target, mgl64.Vec3{0, 1, 0})
}

// Projection returns the eye-to-clip matrix.
func (c Camera) Projection() mgl64.Mat4 {
	return mgl64.Perspective(mgl64.DegToRad(c.FovY), c.Aspect, c.Near, c.Far)
}

// Project maps a world point to pixel coordinates on a w by h screen, with y
// growing downwards. ok is false for points behind the near plane.
func (c Camera) Project(p mgl64.Vec3, w, h int) (screen mgl64.Vec2, ok bool) {
	clip := c.viewProj.Mul4x1(p.Vec4(1))
	if clip.W() < c.Near {
		return mgl64.Vec2{}, false
	}
	ndc := clip.Vec3().Mul(1 / clip.W())
	return mgl64.Vec2{
		(ndc.X() + 1) / 2 * float64(w),
		(1 - ndc.Y()) / 2 * float64(h),
	}, true
}

// Distance returns how far p is from the eye.
func (c Camera) Distance(p mgl64.Vec3) float64 {
	return p.Sub(c.Eye).Len()
}

// Horizon returns the screen row of the sea horizon straight ahead, clamped to
// [0, h]. Sea fills the screen below it.
func (c Camera) Horizon(w, h int) float64 {
	dir := c.Target.Sub(c.Eye)
	dir[1] = 0
	if dir.Len() == 0 {
		return float64(h)
	}
	far := dir.Normalize().Mul(c.Far * 0.9)
	p := mgl64.Vec3{c.Eye.X() + far.X(), 0, c.Eye.Z() + far.Z()}
	at, ok := c.Project(p, w, h)
	if !ok {
		return float64(h)
	}
	return max(0, min(at.Y(), float64(h)))
}
