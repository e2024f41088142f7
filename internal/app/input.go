package app

import "flightsim/internal/core"

// Pointer is the pointer and button state sampled for one frame.
type Pointer struct {
	X, Y          int
	Width, Height int
	Wheel         float64
	Fire          bool
}

// Keys is the held key state sampled for one frame.
type Keys struct {
	Accelerate bool
	Decelerate bool
	Climb      bool
	Descend    bool
	Fire       bool
	Reset      bool
}

// BuildIntent turns one frame of device state into a control intent. The
// pointer steers; in alternate control mode it also pitches and the wheel
// changes speed.
func BuildIntent(k Keys, p Pointer, alt bool) core.ControlIntent {
	in := core.ControlIntent{
		Accelerate:  k.Accelerate,
		Decelerate:  k.Decelerate,
		Fire:        k.Fire || p.Fire,
		TurnBias:    core.PointerBias(p.X, p.Width),
		AltControls: alt,
		Reset:       k.Reset,
	}
	if alt {
		in.PitchBias = core.PointerBias(p.Y, p.Height)
		switch {
		case p.Wheel > 0:
			in.Accelerate = true
		case p.Wheel < 0:
			in.Decelerate = true
		}
	} else {
		in.Climb = k.Climb
		in.Descend = k.Descend
	}
	return in
}
