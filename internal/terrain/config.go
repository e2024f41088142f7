package terrain

import (
	"strconv"
	"strings"
)

// Mode selects between the classic numerics and the corrected variant of
// the terrain maths.
type Mode uint8

const (
	// ModeStrict keeps the classic output: non-renormalised averaged
	// normals with the skewed triangle layout.
	ModeStrict Mode = iota
	// ModeCorrected uses consistent triangle winding and unit-length normals.
	ModeCorrected
)

// String returns the config spelling of the mode.
func (m Mode) String() string {
	if m == ModeCorrected {
		return "corrected"
	}
	return "strict"
}

// ParseMode maps "strict" or "corrected" to a Mode.
func ParseMode(s string) (Mode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "strict":
		return ModeStrict, true
	case "corrected":
		return ModeCorrected, true
	}
	return ModeStrict, false
}

// MinSize is the smallest grid that still has an interior vertex.
const MinSize = 3

// DepthLimit caps the displacement recursion whatever the configuration asks.
const DepthLimit = 8

// Config controls heightfield synthesis and mountain placement.
type Config struct {
	Size     int
	MaxDepth int

	// ConeFalloff scales the radial distance of the initial cone profile.
	ConeFalloff float64
	// JitterSpan is the integer range drawn for each jitter sample; samples
	// land in [-0.5, 0.5).
	JitterSpan int
	// DisplaceSpan is the integer range drawn for each displacement.
	DisplaceSpan int

	BaseScale  float64
	ScaleMin   int
	ScaleMax   int
	RingRadius float64
	SeaOffset  float64

	Mode Mode
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Size:         81,
		MaxDepth:     DepthLimit,
		ConeFalloff:  0.9,
		JitterSpan:   200,
		DisplaceSpan: 4,
		BaseScale:    0.5,
		ScaleMin:     20,
		ScaleMax:     150,
		RingRadius:   40,
		SeaOffset:    -2.5,
		Mode:         ModeStrict,
	}
}

func (c Config) normalized() Config {
	if c.Size < MinSize {
		c.Size = MinSize
	}
	c.MaxDepth = min(max(c.MaxDepth, 1), DepthLimit)
	return c
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["terrain_size"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= MinSize {
			c.Size = parsed
		}
	}
	if v, ok := cfg["terrain_depth"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 1 && parsed <= DepthLimit {
			c.MaxDepth = parsed
		}
	}
	if v, ok := cfg["terrain_mode"]; ok {
		if mode, ok := ParseMode(v); ok {
			c.Mode = mode
		}
	}
	if v, ok := cfg["ring_radius"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.RingRadius = parsed
		}
	}
	if v, ok := cfg["mountain_scale"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			c.BaseScale = parsed
		}
	}
	if v, ok := cfg["mountain_scale_min"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.ScaleMin = parsed
		}
	}
	if v, ok := cfg["mountain_scale_max"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.ScaleMax = parsed
		}
	}
	if c.ScaleMax < c.ScaleMin {
		c.ScaleMax = c.ScaleMin
	}
	return c
}
