package testutil

import (
	"math/rand"
	"sync"

	"github.com/hupe1980/neighborhood/structure"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), // nolint gosec
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// FillUniformRange fills dst with random values in range [minVal, maxVal).
func (r *RNG) FillUniformRange(dst []float64, minVal, maxVal float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	span := maxVal - minVal
	for i := range dst {
		dst[i] = minVal + r.rand.Float64()*span
	}
}

// Structure generates n atoms at uniformly random fractional coordinates in
// [0,1) of the given cell (rows are lattice vectors). Species are drawn
// uniformly from species.
func (r *RNG) Structure(n int, cell []float64, pbc []bool, species []int) *structure.AtomicStructure {
	dim := len(pbc)
	lat, err := structure.NewLattice(dim, cell)
	if err != nil {
		panic(err)
	}

	s := &structure.AtomicStructure{
		Dim:       dim,
		Cell:      append([]float64(nil), cell...),
		Positions: make([]float64, n*dim),
		Types:     make([]int, n),
		PBC:       append([]bool(nil), pbc...),
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	frac := make([]float64, dim)
	for i := range n {
		for d := range frac {
			frac[d] = r.rand.Float64()
		}
		lat.Cartesian(s.Position(i), frac)
		s.Types[i] = species[r.rand.Intn(len(species))]
	}
	return s
}

// Jitter returns a copy of s with every coordinate displaced by a uniform
// random amount in [-amplitude, amplitude).
func (r *RNG) Jitter(s *structure.AtomicStructure, amplitude float64) *structure.AtomicStructure {
	out := s.Clone()
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range out.Positions {
		out.Positions[i] += (2*r.rand.Float64() - 1) * amplitude
	}
	return out
}
