package world

import (
	"strconv"

	"flightsim/internal/flight"
	"flightsim/internal/projectile"
	"flightsim/internal/terrain"
)

// Combat tunes the crosshair and projectiles.
type Combat struct {
	ProjectileCapacity int
	ProjectileSpeed    float64

	// The crosshair scale grows by CrosshairGrowth per tick while firing, up
	// to CrosshairMax, and shrinks by CrosshairDecay per tick back to 1.
	CrosshairGrowth float64
	CrosshairDecay  float64
	CrosshairMax    float64
	// SpreadDivisor turns the crosshair scale into a spread bound in radians.
	SpreadDivisor float64
}

// Config controls a world: its terrain, flight model, combat and pacing.
type Config struct {
	Seed      int64
	MeshCount int
	// Dt is the length of one Step in base ticks.
	Dt float64
	// ExplosionRate is how much the explosion scale grows per tick.
	ExplosionRate float64

	Terrain terrain.Config
	Flight  flight.Params
	Combat  Combat
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Seed:          1337,
		MeshCount:     3,
		Dt:            1,
		ExplosionRate: 10.0 / 50.0,
		Terrain:       terrain.DefaultConfig(),
		Flight:        flight.DefaultParams(),
		Combat: Combat{
			ProjectileCapacity: projectile.DefaultCapacity,
			ProjectileSpeed:    4,
			CrosshairGrowth:    1.3,
			CrosshairDecay:     0.5,
			CrosshairMax:       1.5,
			SpreadDivisor:      80,
		},
	}
}

// Keys lists every key FromMap understands, for binding environment overrides.
func Keys() []string {
	return []string{
		"seed", "mesh_count", "dt", "explosion_rate",
		"projectile_capacity", "projectile_speed", "crosshair_max", "spread_divisor",
		"terrain_size", "terrain_depth", "terrain_mode", "ring_radius",
		"mountain_scale", "mountain_scale_min", "mountain_scale_max",
		"turn_damping", "tilt_gain", "pitch_damping", "pitch_limit",
		"acc", "deacc", "min_speed", "max_speed", "rise", "fall", "sea_level",
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	c.Terrain = terrain.FromMap(cfg)
	c.Flight = flight.FromMap(cfg)
	if cfg == nil {
		return c
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["mesh_count"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.MeshCount = parsed
		}
	}
	if v, ok := cfg["dt"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			c.Dt = parsed
		}
	}
	if v, ok := cfg["explosion_rate"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			c.ExplosionRate = parsed
		}
	}
	if v, ok := cfg["projectile_capacity"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Combat.ProjectileCapacity = parsed
		}
	}
	if v, ok := cfg["projectile_speed"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Combat.ProjectileSpeed = parsed
		}
	}
	if v, ok := cfg["crosshair_max"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 1 {
			c.Combat.CrosshairMax = parsed
		}
	}
	if v, ok := cfg["spread_divisor"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			c.Combat.SpreadDivisor = parsed
		}
	}
	return c
}
