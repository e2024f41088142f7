package projectile

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// DefaultCapacity is the number of projectiles kept in flight.
const DefaultCapacity = 100

// Projectile is a ballistic round. Heading and Yaw are fixed at spawn.
type Projectile struct {
	Position mgl64.Vec3
	Heading  float64
	Yaw      float64
	Age      int
}

// Spreader draws the perturbation applied to a fresh projectile. core.RNG
// satisfies it.
type Spreader interface {
	Uniform(min, max float64) float64
}

// Ledger is a FIFO ring buffer of projectiles. Index 0 is always the oldest.
type Ledger struct {
	buf      []Projectile
	head     int
	n        int
	capacity int
}

// New returns an empty ledger holding at most capacity projectiles.
func New(capacity int) *Ledger {
	if capacity < 1 {
		capacity = 1
	}
	return &Ledger{buf: make([]Projectile, capacity), capacity: capacity}
}

// Len reports how many projectiles are in flight.
func (l *Ledger) Len() int { return l.n }

// Cap reports the configured capacity.
func (l *Ledger) Cap() int { return l.capacity }

// Push appends p, dropping the oldest projectile first when the ledger is
// full. It reports whether anything was dropped.
func (l *Ledger) Push(p Projectile) bool {
	evicted := false
	for l.n >= l.capacity {
		l.popFront()
		evicted = true
	}
	l.buf[(l.head+l.n)%len(l.buf)] = p
	l.n++
	return evicted
}

// Spawn fires a projectile from origin. Heading and yaw are each perturbed by
// an independent draw from [-spread, spread].
func (l *Ledger) Spawn(origin mgl64.Vec3, heading, yaw, spread float64, src Spreader) bool {
	spread = math.Abs(spread)
	return l.Push(Projectile{
		Position: origin,
		Heading:  heading + src.Uniform(-spread, spread),
		Yaw:      yaw + src.Uniform(-spread, spread),
	})
}

// SetCapacity changes the capacity. Projectiles beyond a reduced capacity
// stay in flight until EvictOverflow runs.
func (l *Ledger) SetCapacity(capacity int) {
	if capacity < 1 {
		capacity = 1
	}
	if capacity > len(l.buf) {
		buf := make([]Projectile, capacity)
		l.copyTo(buf)
		l.buf = buf
		l.head = 0
	}
	l.capacity = capacity
}

// EvictOverflow drops the oldest projectiles until the ledger is within
// capacity and returns how many were dropped.
func (l *Ledger) EvictOverflow() int {
	dropped := 0
	for l.n > l.capacity {
		l.popFront()
		dropped++
	}
	return dropped
}

// Advance moves every projectile along its fixed heading and yaw.
func (l *Ledger) Advance(speed, dt float64) {
	step := speed * dt
	for i := 0; i < l.n; i++ {
		p := &l.buf[(l.head+i)%len(l.buf)]
		p.Position[0] += math.Sin(p.Heading) * step
		p.Position[1] += math.Sin(p.Yaw) * step
		p.Position[2] += math.Cos(p.Heading) * step
		p.Age++
	}
}

// Clear removes every projectile.
func (l *Ledger) Clear() {
	clear(l.buf)
	l.head = 0
	l.n = 0
}

// At returns the i-th oldest projectile.
func (l *Ledger) At(i int) (Projectile, bool) {
	if i < 0 || i >= l.n {
		return Projectile{}, false
	}
	return l.buf[(l.head+i)%len(l.buf)], true
}

// Each calls fn for every projectile, oldest first.
func (l *Ledger) Each(fn func(Projectile)) {
	for i := 0; i < l.n; i++ {
		fn(l.buf[(l.head+i)%len(l.buf)])
	}
}

// Snapshot returns a copy of the projectiles, oldest first.
func (l *Ledger) Snapshot() []Projectile {
	out := make([]Projectile, l.n)
	l.copyTo(out)
	return out
}

func (l *Ledger) copyTo(dst []Projectile) {
	for i := 0; i < l.n; i++ {
		dst[i] = l.buf[(l.head+i)%len(l.buf)]
	}
}

func (l *Ledger) popFront() {
	l.buf[l.head] = Projectile{}
	l.head = (l.head + 1) % len(l.buf)
	l.n--
}
