package projectile

import (
	"math"
	"slices"
	"testing"

	"flightsim/internal/core"

	"github.com/go-gl/mathgl/mgl64"
)

func ages(l *Ledger) []int {
	var out []int
	l.Each(func(p Projectile) { out = append(out, p.Age) })
	return out
}

func TestPushKeepsNewestInOrder(t *testing.T) {
	const k, m = 100, 37
	l := New(k)
	for i := 0; i < k+m; i++ {
		// Age doubles as a firing sequence number here.
		evicted := l.Push(Projectile{Age: i})
		if evicted != (i >= k) {
			t.Fatalf("push %d: evicted = %v", i, evicted)
		}
		if l.Len() > k {
			t.Fatalf("push %d: len %d exceeds capacity", i, l.Len())
		}
	}
	if l.Len() != k {
		t.Fatalf("len = %d, want %d", l.Len(), k)
	}
	want := make([]int, 0, k)
	for i := m; i < k+m; i++ {
		want = append(want, i)
	}
	if got := ages(l); !slices.Equal(got, want) {
		t.Fatalf("survivors = %v, want %v", got, want)
	}
	if first, _ := l.At(0); first.Age != m {
		t.Fatalf("oldest = %d, want %d", first.Age, m)
	}
	if _, ok := l.At(k); ok {
		t.Fatal("At past the end should fail")
	}
}

func TestSpawnSpreadBound(t *testing.T) {
	const heading, yaw, spread = 0.7, -0.2, 1.5 / 80
	rng := core.NewRNG(99)
	l := New(DefaultCapacity)
	l.Spawn(mgl64.Vec3{}, heading, yaw, spread, rng)
	l.Spawn(mgl64.Vec3{}, heading, yaw, spread, rng)
	for _, p := range l.Snapshot() {
		if math.Abs(p.Heading-heading) > spread+1e-12 {
			t.Fatalf("heading %v deviates more than %v", p.Heading, spread)
		}
		if math.Abs(p.Yaw-yaw) > spread+1e-12 {
			t.Fatalf("yaw %v deviates more than %v", p.Yaw, spread)
		}
	}
	a, _ := l.At(0)
	b, _ := l.At(1)
	if a.Heading == b.Heading {
		t.Fatal("independent draws should differ")
	}
}

func TestSpawnZeroSpreadIsExact(t *testing.T) {
	l := New(4)
	l.Spawn(mgl64.Vec3{1, 2, 3}, 0.5, 0.25, 0, core.NewRNG(1))
	p, _ := l.At(0)
	if p.Heading != 0.5 || p.Yaw != 0.25 || p.Position != (mgl64.Vec3{1, 2, 3}) {
		t.Fatalf("unexpected projectile %+v", p)
	}
}

func TestAdvanceStraightLine(t *testing.T) {
	l := New(2)
	l.Push(Projectile{Heading: math.Pi / 2})
	for i := 0; i < 3; i++ {
		l.Advance(4, 1)
	}
	p, _ := l.At(0)
	if !p.Position.ApproxEqualThreshold(mgl64.Vec3{12, 0, 0}, 1e-9) {
		t.Fatalf("position = %v, want (12,0,0)", p.Position)
	}
	if p.Heading != math.Pi/2 || p.Age != 3 {
		t.Fatalf("heading/age changed: %+v", p)
	}
}

func TestClear(t *testing.T) {
	l := New(DefaultCapacity)
	for i := 0; i < DefaultCapacity; i++ {
		l.Push(Projectile{Age: i})
	}
	l.Clear()
	if l.Len() != 0 || len(l.Snapshot()) != 0 {
		t.Fatalf("len after clear = %d", l.Len())
	}
	l.Push(Projectile{Age: 7})
	if got := ages(l); !slices.Equal(got, []int{7}) {
		t.Fatalf("after reuse = %v", got)
	}
}

func TestCapacityChanges(t *testing.T) {
	l := New(4)
	for i := 0; i < 6; i++ {
		l.Push(Projectile{Age: i})
	}
	l.SetCapacity(8)
	l.Push(Projectile{Age: 6})
	if got := ages(l); !slices.Equal(got, []int{2, 3, 4, 5, 6}) {
		t.Fatalf("after grow = %v", got)
	}

	l.SetCapacity(2)
	if l.Len() != 5 {
		t.Fatalf("shrinking must not drop before eviction, len = %d", l.Len())
	}
	if dropped := l.EvictOverflow(); dropped != 3 {
		t.Fatalf("dropped = %d, want 3", dropped)
	}
	if got := ages(l); !slices.Equal(got, []int{5, 6}) {
		t.Fatalf("after shrink = %v", got)
	}
	if dropped := l.EvictOverflow(); dropped != 0 {
		t.Fatalf("second eviction dropped %d", dropped)
	}
}
