package world

import (
	"fmt"
	"maps"
	"slices"
)

// scenarios maps a name to the config keys it presets. Caller overrides win.
var scenarios = map[string]map[string]string{
	"islands": nil,
	"archipelago": {
		"mesh_count":   "6",
		"ring_radius":  "28",
		"terrain_size": "49",
	},
}

// Scenarios lists the known scenario names in order.
func Scenarios() []string {
	return slices.Sorted(maps.Keys(scenarios))
}

// Open builds the named scenario with overrides applied on top of its presets.
func Open(name string, overrides map[string]string, opts ...Option) (*Simulator, error) {
	preset, ok := scenarios[name]
	if !ok {
		return nil, fmt.Errorf("unknown scenario %q (have %v)", name, Scenarios())
	}
	cfg := make(map[string]string, len(preset)+len(overrides))
	maps.Copy(cfg, preset)
	maps.Copy(cfg, overrides)
	return New(FromMap(cfg), append([]Option{WithName(name)}, opts...)...), nil
}
