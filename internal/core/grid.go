package core

// FloatGrid stores a square 2D grid of float64 samples in x-major order, so
// the sample at (x, z) lives at index x*N+z.
type FloatGrid struct {
	N    int
	data []float64
}

// NewFloatGrid allocates an n*n grid. Non-positive sizes become 1.
func NewFloatGrid(n int) *FloatGrid {
	if n <= 0 {
		n = 1
	}
	return &FloatGrid{N: n, data: make([]float64, n*n)}
}

// Samples exposes the backing slice so callers can read/write values directly.
func (g *FloatGrid) Samples() []float64 { return g.data }

// Index returns the linear slice index for coordinates (x, z).
func (g *FloatGrid) Index(x, z int) int { return x*g.N + z }

// In reports whether (x, z) addresses a sample of the grid.
func (g *FloatGrid) In(x, z int) bool {
	return x >= 0 && z >= 0 && x < g.N && z < g.N
}

// At returns the sample at (x, z), or 0 outside the grid.
func (g *FloatGrid) At(x, z int) float64 {
	if !g.In(x, z) {
		return 0
	}
	return g.data[g.Index(x, z)]
}

// Set stores v at (x, z). Writes outside the grid are dropped.
func (g *FloatGrid) Set(x, z int, v float64) {
	if !g.In(x, z) {
		return
	}
	g.data[g.Index(x, z)] = v
}

// Add accumulates v into (x, z). Writes outside the grid are dropped.
func (g *FloatGrid) Add(x, z int, v float64) {
	if !g.In(x, z) {
		return
	}
	g.data[g.Index(x, z)] += v
}

// IsBorder reports whether (x, z) lies on the outermost ring.
func (g *FloatGrid) IsBorder(x, z int) bool {
	return x == 0 || z == 0 || x == g.N-1 || z == g.N-1
}

// ZeroBorder forces the outermost ring of samples to exactly 0.
func (g *FloatGrid) ZeroBorder() {
	last := g.N - 1
	for i := 0; i < g.N; i++ {
		g.data[g.Index(i, 0)] = 0
		g.data[g.Index(i, last)] = 0
		g.data[g.Index(0, i)] = 0
		g.data[g.Index(last, i)] = 0
	}
}
