package flight

import "strconv"

// Params holds the tunable rates of the flight model. Rates are per base
// tick; Step scales them by dt.
type Params struct {
	TurnDamping  float64
	TiltGain     float64
	PitchDamping float64
	PitchLimit   float64

	Acc      float64
	Deacc    float64
	MinSpeed float64
	MaxSpeed float64

	Rise float64
	Fall float64

	// StrideDivisor converts speed into distance per tick.
	StrideDivisor float64
	LookAhead     float64
	SeaLevel      float64
}

// DefaultParams returns the stock flight model.
func DefaultParams() Params {
	return Params{
		TurnDamping:   10.5,
		TiltGain:      40,
		PitchDamping:  20,
		PitchLimit:    1,
		Acc:           0.2,
		Deacc:         0.1,
		MinSpeed:      1,
		MaxSpeed:      4,
		Rise:          0.2,
		Fall:          0.2,
		StrideDivisor: 10,
		LookAhead:     10,
		SeaLevel:      2,
	}
}

// FromMap overrides DefaultParams from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Params {
	p := DefaultParams()
	if cfg == nil {
		return p
	}
	positive := func(key string, dst *float64) {
		if v, ok := cfg[key]; ok {
			if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
				*dst = parsed
			}
		}
	}
	positive("turn_damping", &p.TurnDamping)
	positive("pitch_damping", &p.PitchDamping)
	positive("pitch_limit", &p.PitchLimit)
	positive("acc", &p.Acc)
	positive("deacc", &p.Deacc)
	positive("min_speed", &p.MinSpeed)
	positive("max_speed", &p.MaxSpeed)
	positive("rise", &p.Rise)
	positive("fall", &p.Fall)
	if v, ok := cfg["tilt_gain"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			p.TiltGain = parsed
		}
	}
	if v, ok := cfg["sea_level"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			p.SeaLevel = parsed
		}
	}
	if p.MaxSpeed < p.MinSpeed {
		p.MaxSpeed = p.MinSpeed
	}
	return p
}
