package flight

import (
	"math"

	"flightsim/internal/core"

	"github.com/go-gl/mathgl/mgl64"
)

// Result is the outcome of one tick.
type Result struct {
	State State
	// Crashed is set on the tick the aircraft dropped below sea level.
	Crashed bool
}

// Step advances s by dt base ticks. It is pure: the same
// inputs always produce the same state. A dead aircraft is returned unchanged.
func Step(s State, in core.ControlIntent, p Params, dt float64) State {
	return Advance(s, in, p, dt).State
}

// Advance is Step with crash reporting.
func Advance(s State, in core.ControlIntent, p Params, dt float64) Result {
	if !s.Alive || dt <= 0 {
		return Result{State: s}
	}

	s.Heading += in.TurnBias * dt / (p.TurnDamping * (s.Speed + 1))
	s.Tilt = in.TurnBias * p.TiltGain

	switch {
	case in.Accelerate:
		s.Speed += p.Acc * dt
	case in.Decelerate:
		s.Speed -= p.Deacc * dt
	}
	s.Speed = clamp(s.Speed, p.MinSpeed, p.MaxSpeed)

	k := s.Speed + 1
	lift := 0.0
	if in.AltControls {
		bias := clamp(in.PitchBias, -1, 1)
		s.Pitch = clamp(s.Pitch+bias*dt/(p.PitchDamping*k), -p.PitchLimit, p.PitchLimit)
		s.Position[1] += math.Sin(s.Pitch) * k * dt / p.StrideDivisor
		lift = math.Sin(s.Pitch) * p.LookAhead
	} else if in.Climb {
		s.Position[1] += p.Rise * dt
	} else if in.Descend {
		s.Position[1] -= p.Fall * dt
	}

	forward := s.Forward()
	s.Position = s.Position.Add(forward.Mul(k * dt / p.StrideDivisor))
	s.Target = s.Position.Add(forward.Mul(p.LookAhead)).Add(mgl64.Vec3{0, lift, 0})

	if s.Position.Y() < p.SeaLevel-seaTolerance {
		s.Alive = false
		s.Position[1] = p.SeaLevel
		s.Target[1] = p.SeaLevel + lift
		return Result{State: s, Crashed: true}
	}
	return Result{State: s}
}

// seaTolerance absorbs rounding in accumulated descent so that landing
// exactly on sea level is not a crash.
const seaTolerance = 1e-9

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
