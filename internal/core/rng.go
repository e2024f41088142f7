package core

import "math/rand/v2"

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Between returns a whole number drawn uniformly from [min, max) as a float.
// When max <= min it returns min without consuming randomness.
func (r *RNG) Between(min, max int) float64 {
	if max <= min {
		return float64(min)
	}
	return float64(r.r.IntN(max-min) + min)
}

// Uniform returns a float drawn uniformly from [min, max). When max <= min it
// returns min without consuming randomness.
func (r *RNG) Uniform(min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + r.r.Float64()*(max-min)
}

// Int63 returns a non-negative pseudo-random 63-bit integer, used to derive
// fresh world seeds.
func (r *RNG) Int63() int64 {
	return r.r.Int64()
}
