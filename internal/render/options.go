package render

import (
	"math"

	"flightsim/internal/flight"
)

// BaseFogDensity is the fog density outside alternate weather.
const BaseFogDensity = 0.005

// Options are the presentation toggles. None of them affect the simulation.
type Options struct {
	Wireframe  bool
	Fog        bool
	Grid       bool
	Mountains  bool
	Shading    bool
	AltWeather bool
}

// DefaultOptions shows shaded mountains over the sea in fog.
func DefaultOptions() Options {
	return Options{Fog: true, Mountains: true, Shading: true}
}

// Toggle flips the option bound to key and reports whether key was bound.
// The bindings are w, b, s, m, t and F2 (passed as 0xF2).
func (o *Options) Toggle(key rune) bool {
	switch key {
	case 'w':
		o.Wireframe = !o.Wireframe
	case 'b':
		o.Fog = !o.Fog
	case 's':
		o.Grid = !o.Grid
	case 'm':
		o.Mountains = !o.Mountains
	case 't':
		o.Shading = !o.Shading
	case 0xF2:
		o.AltWeather = !o.AltWeather
	default:
		return false
	}
	return true
}

// FogDensity returns the fog density at altitude, or 0 with fog off.
// Alternate weather thickens fog as the aircraft climbs, up to twice the base
// density.
func (o Options) FogDensity(altitude float64) float64 {
	if !o.Fog {
		return 0
	}
	if !o.AltWeather {
		return BaseFogDensity
	}
	return math.Max(0, math.Min((altitude-3)/100, 2*BaseFogDensity))
}

// Gauges are the cockpit instruments as bar fill ratios.
type Gauges struct {
	// Speed is 2*speed/max, so it spans 0.5 to 2 at the default bounds.
	Speed float64
	// Altitude is altitude/20.
	Altitude float64
}

// ReadGauges derives the instrument readings from the aircraft state.
func ReadGauges(s flight.State, p flight.Params) Gauges {
	g := Gauges{Altitude: s.Position.Y() / 20}
	if p.MaxSpeed > 0 {
		g.Speed = 2 * s.Speed / p.MaxSpeed
	}
	return g
}
