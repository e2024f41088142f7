package flight

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// State is the aircraft as seen through the cockpit camera: Position is the
// eye and Target the point it looks at.
type State struct {
	Position mgl64.Vec3
	Target   mgl64.Vec3

	Heading float64
	// Pitch only changes under alternate controls; it doubles as the yaw of
	// fired projectiles.
	Pitch float64
	Tilt  float64
	Speed float64

	Alive bool
}

// Spawn returns the respawn state: level flight at speed 1 looking down +Z.
func Spawn() State {
	return State{
		Position: mgl64.Vec3{0, 5, -15},
		Target:   mgl64.Vec3{0, 5, -5},
		Speed:    1,
		Alive:    true,
	}
}

// Forward returns the unit direction of travel in the horizontal plane.
func (s State) Forward() mgl64.Vec3 {
	return mgl64.Vec3{math.Sin(s.Heading), 0, math.Cos(s.Heading)}
}

// Muzzle is the point projectiles leave from: one unit ahead and one unit
// below the eye, raised by the current pitch.
func (s State) Muzzle() mgl64.Vec3 {
	return s.Position.Add(mgl64.Vec3{math.Sin(s.Heading), math.Sin(s.Pitch) - 1, math.Cos(s.Heading)})
}
