package world

import (
	"math"

	"flightsim/internal/core"
	"flightsim/internal/terrain"
)

// Parameters reports the configuration and live flight state for the HUD.
func (s *Simulator) Parameters() core.ParameterSnapshot {
	f := s.cfg.Flight
	c := s.cfg.Combat
	groups := []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				core.Int64Param("seed", "Seed", s.seed),
				core.IntParam("mesh_count", "Mountains", s.cfg.MeshCount),
				core.IntParam("terrain_size", "Terrain size", s.cfg.Terrain.Size),
				core.IntParam("terrain_depth", "Terrain depth", s.cfg.Terrain.MaxDepth),
				core.BoolParam("corrected_normals", "Corrected normals", s.cfg.Terrain.Mode == terrain.ModeCorrected),
				core.FloatParam("ring_radius", "Ring radius", s.cfg.Terrain.RingRadius),
			},
		},
		{
			Name: "Flight",
			Params: []core.Parameter{
				core.FloatParam("min_speed", "Min speed", f.MinSpeed),
				core.FloatParam("max_speed", "Max speed", f.MaxSpeed),
				core.FloatParam("acc", "Acceleration", f.Acc),
				core.FloatParam("deacc", "Deceleration", f.Deacc),
				core.FloatParam("rise", "Climb rate", f.Rise),
				core.FloatParam("fall", "Descent rate", f.Fall),
				core.FloatParam("turn_damping", "Turn damping", f.TurnDamping),
			},
		},
		{
			Name: "Combat",
			Params: []core.Parameter{
				core.IntParam("projectile_capacity", "Projectile capacity", c.ProjectileCapacity),
				core.FloatParam("projectile_speed", "Projectile speed", c.ProjectileSpeed),
				core.FloatParam("crosshair_max", "Crosshair max", c.CrosshairMax),
			},
		},
		{
			Name: "State",
			Params: []core.Parameter{
				core.Int64Param("tick", "Tick", int64(s.tick)),
				core.BoolParam("alive", "Alive", s.flight.Alive),
				core.FloatParam("speed", "Speed", round2(s.flight.Speed)),
				core.FloatParam("altitude", "Altitude", round2(s.flight.Position.Y())),
				core.IntParam("projectiles", "Projectiles", s.ledger.Len()),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls lists the values the HUD may adjust while flying.
func (s *Simulator) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "max_speed", Label: "Max speed", Type: core.ParamTypeFloat, Step: 0.5, Min: 1, Max: 10, HasMin: true, HasMax: true},
		{Key: "acc", Label: "Acceleration", Type: core.ParamTypeFloat, Step: 0.05, Min: 0.05, Max: 1, HasMin: true, HasMax: true},
		{Key: "deacc", Label: "Deceleration", Type: core.ParamTypeFloat, Step: 0.05, Min: 0.05, Max: 1, HasMin: true, HasMax: true},
		{Key: "rise", Label: "Climb rate", Type: core.ParamTypeFloat, Step: 0.05, Min: 0.05, Max: 1, HasMin: true, HasMax: true},
		{Key: "fall", Label: "Descent rate", Type: core.ParamTypeFloat, Step: 0.05, Min: 0.05, Max: 1, HasMin: true, HasMax: true},
		{Key: "projectile_speed", Label: "Projectile speed", Type: core.ParamTypeFloat, Step: 0.5, Min: 0, Max: 20, HasMin: true, HasMax: true},
		{Key: "projectile_capacity", Label: "Projectile capacity", Type: core.ParamTypeInt, Step: 10, Min: 1, Max: 1000, HasMin: true, HasMax: true},
	}
}

// SetFloatParameter updates a float control, clamped to its bounds. Lowering
// max_speed below the current speed takes effect on the next tick.
func (s *Simulator) SetFloatParameter(key string, value float64) bool {
	ctrl, ok := s.control(key, core.ParamTypeFloat)
	if !ok || math.IsNaN(value) {
		return false
	}
	value = clampControl(ctrl, value)
	switch key {
	case "max_speed":
		s.cfg.Flight.MaxSpeed = math.Max(value, s.cfg.Flight.MinSpeed)
	case "acc":
		s.cfg.Flight.Acc = value
	case "deacc":
		s.cfg.Flight.Deacc = value
	case "rise":
		s.cfg.Flight.Rise = value
	case "fall":
		s.cfg.Flight.Fall = value
	case "projectile_speed":
		s.cfg.Combat.ProjectileSpeed = value
	}
	return true
}

// SetIntParameter updates an integer control. A smaller projectile capacity
// evicts the oldest projectiles on the next tick.
func (s *Simulator) SetIntParameter(key string, value int) bool {
	ctrl, ok := s.control(key, core.ParamTypeInt)
	if !ok {
		return false
	}
	value = int(clampControl(ctrl, float64(value)))
	switch key {
	case "projectile_capacity":
		s.cfg.Combat.ProjectileCapacity = value
		s.ledger.SetCapacity(value)
	}
	return true
}

func (s *Simulator) control(key string, typ core.ParamType) (core.ParameterControl, bool) {
	for _, ctrl := range s.ParameterControls() {
		if ctrl.Key == key && ctrl.Type == typ {
			return ctrl, true
		}
	}
	return core.ParameterControl{}, false
}

func clampControl(ctrl core.ParameterControl, v float64) float64 {
	if ctrl.HasMin && v < ctrl.Min {
		v = ctrl.Min
	}
	if ctrl.HasMax && v > ctrl.Max {
		v = ctrl.Max
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
