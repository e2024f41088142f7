package core

// ControlIntent is one tick's worth of pilot input, abstracted away from the
// device events that produced it.
type ControlIntent struct {
	Accelerate bool
	Decelerate bool
	Climb      bool
	Descend    bool
	Fire       bool

	// TurnBias and PitchBias are pointer offsets from the screen centre,
	// normalised by the screen extent (see PointerBias).
	TurnBias  float64
	PitchBias float64

	// AltControls selects pointer-driven pitch instead of climb/descend keys.
	AltControls bool

	// Reset requests a respawn into a freshly generated world.
	Reset bool
}

// PointerBias converts a pointer coordinate into a control bias: positive
// when the pointer sits before the centre of extent, negative after it.
func PointerBias(pos, extent int) float64 {
	if extent <= 0 {
		return 0
	}
	center := float64(extent) / 2
	return (center - float64(pos)) / float64(extent)
}
