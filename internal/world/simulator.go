// Package world owns the simulated world: terrain meshes, the aircraft, its
// projectiles and the crash and respawn cycle.
package world

import (
	"math"
	"time"

	"flightsim/internal/core"
	"flightsim/internal/flight"
	"flightsim/internal/projectile"
	"flightsim/internal/terrain"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/metric"
)

// Explosion is the effect that plays after a crash. Scale grows from 0 and
// the effect ends once it passes 1.
type Explosion struct {
	Active bool
	Scale  float64
}

// Option customises a Simulator.
type Option func(*Simulator)

// WithLogger sets the logger used for lifecycle events.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Simulator) { s.log = log }
}

// WithSeedFunc sets where respawns get their fresh world seeds.
func WithSeedFunc(fn func() int64) Option {
	return func(s *Simulator) { s.seedFn = fn }
}

// WithMeter sets the meter for simulation metrics. The global meter provider
// is used otherwise.
func WithMeter(m metric.Meter) Option {
	return func(s *Simulator) { s.meter = m }
}

// WithName sets the scenario name reported by Name.
func WithName(name string) Option {
	return func(s *Simulator) { s.name = name }
}

// Simulator advances the world one tick at a time. It is not safe for
// concurrent use; collaborators read it between ticks.
type Simulator struct {
	cfg  Config
	name string

	seed   int64
	seedFn func() int64
	rng    *core.RNG

	meshes    []*terrain.Mesh
	flight    flight.State
	ledger    *projectile.Ledger
	explosion Explosion
	crosshair float64
	tick      uint64

	log     zerolog.Logger
	meter   metric.Meter
	metrics *metrics
}

// New builds a simulator and generates its first world from cfg.Seed.
func New(cfg Config, opts ...Option) *Simulator {
	s := &Simulator{
		cfg:  cfg,
		name: "islands",
		log:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.seedFn == nil {
		seeds := core.NewRNG(cfg.Seed ^ 0x5eed)
		s.seedFn = seeds.Int63
	}
	m, err := newMetrics(s.meter, s.name)
	if err != nil {
		s.log.Warn().Err(err).Msg("metrics disabled")
		m = noopMetrics()
	}
	s.metrics = m
	s.ledger = projectile.New(cfg.Combat.ProjectileCapacity)
	s.Reset(cfg.Seed)
	return s
}

// Name returns the scenario name.
func (s *Simulator) Name() string { return s.name }


// Reset regenerates the terrain from seed and puts a fresh aircraft at the
// spawn point. A zero seed falls back to the configured one.
func (s *Simulator) Reset(seed int64) {
	if seed == 0 {
		seed = s.cfg.Seed
	}
	s.seed = seed
	s.rng = core.NewRNG(seed)

	start := time.Now()
	s.meshes = terrain.BuildWorld(s.cfg.Terrain, s.cfg.MeshCount, s.rng)
	elapsed := time.Since(start)
	s.metrics.built(elapsed)

	s.flight = flight.Spawn()
	s.ledger.Clear()
	s.explosion = Explosion{}
	s.crosshair = 1
	s.tick = 0

	s.log.Info().
		Int64("seed", seed).
		Int("meshes", len(s.meshes)).
		Int("size", s.cfg.Terrain.Size).
		Str("mode", s.cfg.Terrain.Mode.String()).
		Dur("elapsed", elapsed).
		Msg("world built")
}

// Respawn resets into a world generated from a fresh seed.
func (s *Simulator) Respawn() {
	s.metrics.respawn()
	s.log.Debug().Uint64("tick", s.tick).Bool("alive", s.flight.Alive).Msg("respawn requested")
	s.Reset(s.seedFn())
}

// Step runs one tick: crosshair, firing, projectiles, flight, then effects.
// A Reset intent only respawns.
func (s *Simulator) Step(in core.ControlIntent) {
	if in.Reset {
		s.Respawn()
		return
	}
	s.tick++
	s.metrics.tick()
	dt := s.cfg.Dt

	s.updateCrosshair(in.Fire, dt)
	if s.flight.Alive && in.Fire {
		s.ledger.Spawn(s.flight.Muzzle(), s.flight.Heading, s.flight.Pitch, s.Spread(), s.rng)
		s.metrics.shot()
	}
	if dropped := s.ledger.EvictOverflow(); dropped > 0 {
		s.log.Debug().Int("dropped", dropped).Int("capacity", s.ledger.Cap()).Msg("projectiles evicted")
	}
	s.ledger.Advance(s.cfg.Combat.ProjectileSpeed, dt)

	res := flight.Advance(s.flight, in, s.cfg.Flight, dt)
	s.flight = res.State
	if res.Crashed {
		s.explosion = Explosion{Active: true}
		s.metrics.crash()
		s.log.Info().
			Uint64("tick", s.tick).
			Float64("x", s.flight.Position.X()).
			Float64("z", s.flight.Position.Z()).
			Msg("aircraft lost")
	}

	if s.explosion.Active {
		s.explosion.Scale += s.cfg.ExplosionRate * dt
		if s.explosion.Scale > 1 {
			s.explosion = Explosion{Scale: 1}
		}
	}
}

func (s *Simulator) updateCrosshair(firing bool, dt float64) {
	c := s.cfg.Combat
	switch {
	case firing:
		s.crosshair = math.Min(s.crosshair*math.Pow(c.CrosshairGrowth, dt), c.CrosshairMax)
	case s.crosshair > 1:
		s.crosshair = math.Max(s.crosshair*math.Pow(c.CrosshairDecay, dt), 1)
	}
}

// Flight returns the aircraft state.
func (s *Simulator) Flight() flight.State { return s.flight }

// Projectiles returns the projectiles in flight, oldest first.
func (s *Simulator) Projectiles() []projectile.Projectile { return s.ledger.Snapshot() }

// ProjectileCount reports how many projectiles are in flight.
func (s *Simulator) ProjectileCount() int { return s.ledger.Len() }

// Meshes returns the terrain meshes. The meshes themselves are immutable.
func (s *Simulator) Meshes() []*terrain.Mesh {
	return append([]*terrain.Mesh(nil), s.meshes...)
}

// Explosion returns the crash effect state.
func (s *Simulator) Explosion() Explosion { return s.explosion }

// Crosshair returns the crosshair scale, between 1 and the configured maximum.
func (s *Simulator) Crosshair() float64 { return s.crosshair }

// Spread returns the current bound on projectile heading and yaw deviation.
func (s *Simulator) Spread() float64 {
	return s.crosshair / s.cfg.Combat.SpreadDivisor
}

// Tick reports the ticks run since the last reset.
func (s *Simulator) Tick() uint64 { return s.tick }

// Seed reports the seed of the current world.
func (s *Simulator) Seed() int64 { return s.seed }

// Config returns the active configuration.
func (s *Simulator) Config() Config { return s.cfg }
