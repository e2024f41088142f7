package world

import (
	"context"
	"math"
	"slices"
	"testing"

	"flightsim/internal/core"
	"flightsim/internal/flight"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

func smallConfig() Config {
	cfg := DefaultConfig()
	cfg.Terrain.Size = 17
	return cfg
}

func climbAndFire() core.ControlIntent {
	return core.ControlIntent{Climb: true, Fire: true}
}

func TestRespawnClearsProjectilesAndRebuildsWorld(t *testing.T) {
	cfg := DefaultConfig()
	sim := New(cfg)
	before := sim.Meshes()

	for i := 0; i < cfg.Combat.ProjectileCapacity+20; i++ {
		sim.Step(climbAndFire())
	}
	if got := sim.ProjectileCount(); got != 100 {
		t.Fatalf("projectiles = %d, want 100", got)
	}

	seed := sim.Seed()
	sim.Step(core.ControlIntent{Reset: true, Fire: true})

	if got := sim.ProjectileCount(); got != 0 {
		t.Fatalf("projectiles after respawn = %d, want 0", got)
	}
	if sim.Seed() == seed {
		t.Fatal("respawn should pick a fresh seed")
	}
	if sim.Flight() != flight.Spawn() {
		t.Fatalf("flight after respawn = %+v", sim.Flight())
	}
	after := sim.Meshes()
	if len(after) != 3 {
		t.Fatalf("meshes = %d, want 3", len(after))
	}
	for i, m := range after {
		if m == before[i] {
			t.Fatalf("mesh %d was reused", i)
		}
		n := m.Size()
		for j := 0; j < n; j++ {
			if m.Height(j, 0) != 0 || m.Height(j, n-1) != 0 || m.Height(0, j) != 0 || m.Height(n-1, j) != 0 {
				t.Fatalf("mesh %d has a raised border at %d", i, j)
			}
		}
	}
}

func TestRespawnUsesSeedFunc(t *testing.T) {
	cfg := smallConfig()
	sim := New(cfg, WithSeedFunc(func() int64 { return 99 }))
	sim.Respawn()
	if sim.Seed() != 99 {
		t.Fatalf("seed = %d, want 99", sim.Seed())
	}

	cfg.Seed = 99
	ref := New(cfg)
	if !slices.Equal(sim.Meshes()[0].Heightfield().Samples(), ref.Meshes()[0].Heightfield().Samples()) {
		t.Fatal("respawned world should match a world built from the same seed")
	}
}

func TestCrashStartsExplosion(t *testing.T) {
	sim := New(smallConfig())
	descend := core.ControlIntent{Descend: true}

	ticks := 0
	for sim.Flight().Alive {
		sim.Step(descend)
		ticks++
		if ticks > 100 {
			t.Fatal("aircraft never crashed")
		}
	}
	if y := sim.Flight().Position.Y(); y != 2 {
		t.Fatalf("crash altitude = %v, want 2", y)
	}
	ex := sim.Explosion()
	if !ex.Active || ex.Scale != sim.Config().ExplosionRate {
		t.Fatalf("explosion after crash = %+v", ex)
	}

	for i := 0; sim.Explosion().Active; i++ {
		if i > 10 {
			t.Fatal("explosion never finished")
		}
		sim.Step(core.ControlIntent{Fire: true})
	}
	if got := sim.Explosion(); got.Scale != 1 {
		t.Fatalf("finished explosion scale = %v, want 1", got.Scale)
	}
	if sim.ProjectileCount() != 0 {
		t.Fatal("a dead aircraft must not fire")
	}
	if sim.Flight().Alive {
		t.Fatal("aircraft should stay down until respawn")
	}
}

func TestCrosshairBoundsAndSpread(t *testing.T) {
	sim := New(smallConfig())
	maxScale := sim.Config().Combat.CrosshairMax

	for i := 0; i < 10; i++ {
		sim.Step(climbAndFire())
		if c := sim.Crosshair(); c < 1 || c > maxScale {
			t.Fatalf("crosshair %v out of bounds", c)
		}
	}
	if sim.Crosshair() != maxScale {
		t.Fatalf("crosshair = %v, want %v", sim.Crosshair(), maxScale)
	}
	bound := maxScale / sim.Config().Combat.SpreadDivisor
	for _, p := range sim.Projectiles() {
		if math.Abs(p.Heading) > bound+1e-12 || math.Abs(p.Yaw) > bound+1e-12 {
			t.Fatalf("projectile %+v exceeds spread %v", p, bound)
		}
	}

	for i := 0; i < 5; i++ {
		sim.Step(core.ControlIntent{Climb: true})
	}
	if sim.Crosshair() != 1 {
		t.Fatalf("idle crosshair = %v, want 1", sim.Crosshair())
	}
}

func TestStepDeterministic(t *testing.T) {
	script := []core.ControlIntent{
		{Climb: true, Fire: true, TurnBias: 0.2},
		{Accelerate: true, Fire: true},
		{AltControls: true, PitchBias: 0.3},
		{Decelerate: true, TurnBias: -0.4, Fire: true},
	}
	run := func() *Simulator {
		sim := New(smallConfig())
		for i := 0; i < 60; i++ {
			sim.Step(script[i%len(script)])
		}
		return sim
	}
	a, b := run(), run()
	if a.Flight() != b.Flight() {
		t.Fatalf("flight diverged: %+v vs %+v", a.Flight(), b.Flight())
	}
	if !slices.Equal(a.Projectiles(), b.Projectiles()) {
		t.Fatal("projectiles diverged")
	}
	if a.Tick() != 60 {
		t.Fatalf("tick = %d, want 60", a.Tick())
	}
}

func TestNoMeshes(t *testing.T) {
	cfg := smallConfig()
	cfg.MeshCount = 0
	sim := New(cfg)
	sim.Step(climbAndFire())
	if len(sim.Meshes()) != 0 {
		t.Fatalf("meshes = %d, want 0", len(sim.Meshes()))
	}
	if sim.ProjectileCount() != 1 {
		t.Fatalf("projectiles = %d, want 1", sim.ProjectileCount())
	}
}

func TestParameterSetters(t *testing.T) {
	sim := New(smallConfig())

	if !sim.SetFloatParameter("max_speed", 100) {
		t.Fatal("expected max_speed to be adjustable")
	}
	if got := sim.Config().Flight.MaxSpeed; got != 10 {
		t.Fatalf("max speed = %v, want clamp to 10", got)
	}
	if p, ok := sim.Parameters().Lookup("max_speed"); !ok || p.Value != "10" {
		t.Fatalf("snapshot max_speed = %+v", p)
	}
	if sim.SetFloatParameter("unknown", 1) {
		t.Fatal("unknown keys must be rejected")
	}
	if sim.SetIntParameter("max_speed", 3) {
		t.Fatal("float controls must reject integer updates")
	}

	for i := 0; i < 20; i++ {
		sim.Step(climbAndFire())
	}
	before := sim.Projectiles()
	if !sim.SetIntParameter("projectile_capacity", 5) {
		t.Fatal("expected projectile_capacity to be adjustable")
	}
	sim.Step(core.ControlIntent{Climb: true})
	after := sim.Projectiles()
	if len(after) != 5 {
		t.Fatalf("projectiles = %d, want 5", len(after))
	}
	if after[0].Age != before[15].Age+1 {
		t.Fatalf("oldest survivor age = %d, want %d", after[0].Age, before[15].Age+1)
	}
}

func TestScenarios(t *testing.T) {
	if got := Scenarios(); !slices.Equal(got, []string{"archipelago", "islands"}) {
		t.Fatalf("scenarios = %v", got)
	}
	sim, err := Open("archipelago", map[string]string{"terrain_size": "9"})
	if err != nil {
		t.Fatalf("open archipelago: %v", err)
	}
	if sim.Name() != "archipelago" || len(sim.Meshes()) != 6 {
		t.Fatalf("archipelago = %s with %d meshes", sim.Name(), len(sim.Meshes()))
	}
	if sim.Meshes()[0].Size() != 9 {
		t.Fatalf("override ignored, size = %d", sim.Meshes()[0].Size())
	}
	if _, err := Open("nowhere", nil); err == nil {
		t.Fatal("unknown scenario should fail")
	}
}

func TestFromMap(t *testing.T) {
	cfg := FromMap(map[string]string{
		"seed":                "7",
		"mesh_count":          "5",
		"projectile_capacity": "0",
		"terrain_size":        "21",
		"max_speed":           "6",
	})
	if cfg.Seed != 7 || cfg.MeshCount != 5 || cfg.Terrain.Size != 21 || cfg.Flight.MaxSpeed != 6 {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.Combat.ProjectileCapacity != 100 {
		t.Fatalf("zero capacity must be ignored, got %d", cfg.Combat.ProjectileCapacity)
	}
}

type countingMeter struct {
	noop.Meter
	counters map[string]*countingCounter
}

func (m *countingMeter) Int64Counter(name string, _ ...metric.Int64CounterOption) (metric.Int64Counter, error) {
	c := &countingCounter{}
	m.counters[name] = c
	return c, nil
}

type countingCounter struct {
	noop.Int64Counter
	n int64
}

func (c *countingCounter) Add(_ context.Context, incr int64, _ ...metric.AddOption) {
	c.n += incr
}

func TestMetrics(t *testing.T) {
	m := &countingMeter{counters: map[string]*countingCounter{}}
	sim := New(smallConfig(), WithMeter(m))

	for i := 0; i < 3; i++ {
		sim.Step(climbAndFire())
	}
	sim.Step(core.ControlIntent{Reset: true})
	for sim.Flight().Alive {
		sim.Step(core.ControlIntent{Descend: true})
	}

	want := map[string]int64{
		"flightsim.world.shots":    3,
		"flightsim.world.respawns": 1,
		"flightsim.world.crashes":  1,
	}
	for name, n := range want {
		if got := m.counters[name].n; got != n {
			t.Fatalf("%s = %d, want %d", name, got, n)
		}
	}
	if got := m.counters["flightsim.world.ticks"].n; got != 3+int64(sim.Tick()) {
		t.Fatalf("ticks = %d, want %d", got, 3+sim.Tick())
	}
}
