package linkedcell

import (
	"math"
	"testing"

	"github.com/hupe1980/neighborhood/structure"
	"github.com/hupe1980/neighborhood/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func build(t *testing.T, s *structure.AtomicStructure, rc float64, ghosts bool) *Result {
	t.Helper()
	lat, err := structure.NewLattice(s.Dim, s.Cell)
	require.NoError(t, err)
	res, err := Build(Input{
		Lattice:                 lat,
		PBC:                     s.PBC,
		Positions:               s.Positions,
		Cutoff:                  rc,
		ConsiderGhostNeighbours: ghosts,
	})
	require.NoError(t, err)
	return res
}

// position returns the coordinates of any tag in res.
func position(s *structure.AtomicStructure, res *Result, tag int) []float64 {
	if tag < res.NCenters {
		return s.Position(tag)
	}
	g := tag - res.NCenters
	return res.GhostPositions[g*s.Dim : (g+1)*s.Dim]
}

func origin(res *Result, tag int) int {
	if tag < res.NCenters {
		return tag
	}
	return res.GhostOrigins[tag-res.NCenters]
}

func TestBuild_SimpleCubic(t *testing.T) {
	s, err := structure.SimpleCubic(1, [3]int{1, 1, 1}, 1)
	require.NoError(t, err)

	res := build(t, s, 1.5, false)

	assert.Equal(t, 1, res.NCenters)
	assert.Equal(t, 63, res.NGhosts())
	require.Len(t, res.NbNeigh, 64)
	assert.Equal(t, 63, res.NbNeigh[0])
	for _, n := range res.NbNeigh[1:] {
		assert.Zero(t, n)
	}
	for g := range res.NGhosts() {
		x := res.GhostPositions[3*g : 3*g+3]
		for _, v := range x {
			assert.Contains(t, []float64{-1, 0, 1, 2}, v)
		}
		assert.Equal(t, 0, res.GhostOrigins[g])
	}

	var n1, n2 int
	for _, tag := range res.NeighbourTags {
		x := position(s, res, tag)
		d := math.Sqrt(x[0]*x[0] + x[1]*x[1] + x[2]*x[2])
		switch {
		case math.Abs(d-1) < 1e-12:
			n1++
		case math.Abs(d-math.Sqrt2) < 1e-12:
			n2++
		}
	}
	assert.Equal(t, 6, n1)
	assert.Equal(t, 12, n2)
}

func TestBuild_CandidatesSortedWithoutSelf(t *testing.T) {
	rng := testutil.NewRNG(3)
	s := rng.Structure(12, []float64{4, 0, 0, 0, 4, 0, 0, 0, 4}, []bool{true, true, true}, []int{1})

	res := build(t, s, 1.7, true)

	pos := 0
	for tag, n := range res.NbNeigh {
		cands := res.NeighbourTags[pos : pos+n]
		assert.IsIncreasing(t, cands)
		assert.NotContains(t, cands, tag)
		pos += n
	}
	assert.Equal(t, len(res.NeighbourTags), pos)
}

func TestBuild_GhostNeighbours(t *testing.T) {
	s, err := structure.SimpleCubic(1, [3]int{2, 2, 2}, 1)
	require.NoError(t, err)

	without := build(t, s, 1.1, false)
	with := build(t, s, 1.1, true)

	assert.Equal(t, without.NGhosts(), with.NGhosts())
	assert.Equal(t, without.NbNeigh[:8], with.NbNeigh[:8])
	for _, n := range without.NbNeigh[8:] {
		assert.Zero(t, n)
	}
	var total int
	for _, n := range with.NbNeigh[8:] {
		total += n
	}
	assert.Positive(t, total)
}

func TestBuild_MatchesBruteForce(t *testing.T) {
	tests := []struct {
		name string
		cell []float64
		pbc  []bool
		n    int
		rc   float64
	}{
		{"CubicPeriodic", []float64{5, 0, 0, 0, 5, 0, 0, 0, 5}, []bool{true, true, true}, 20, 2.2},
		{"Triclinic", []float64{4, 0, 0, 1.3, 3.5, 0, 0.7, -0.9, 4.2}, []bool{true, true, true}, 16, 2.5},
		{"Slab", []float64{3, 0, 0, 0, 3, 0, 0, 0, 10}, []bool{true, true, false}, 15, 1.8},
		{"Cluster", []float64{6, 0, 0, 0, 6, 0, 0, 0, 6}, []bool{false, false, false}, 25, 2.0},
		{"CutoffLargerThanCell", []float64{2, 0, 0, 0.5, 2, 0, 0, 0, 2}, []bool{true, true, true}, 3, 3.1},
		{"Planar", []float64{3, 0, 1, 3}, []bool{true, false}, 10, 1.5},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng := testutil.NewRNG(int64(100 + i))
			s := rng.Structure(tt.n, tt.cell, tt.pbc, []int{1, 2})
			res := build(t, s, tt.rc, false)

			want, err := testutil.BruteForcePairs(s, tt.rc)
			require.NoError(t, err)

			pos := 0
			for center := range res.NCenters {
				xc := s.Position(center)
				var found [][]float64
				var origins []int
				for _, tag := range res.NeighbourTags[pos : pos+res.NbNeigh[center]] {
					x := position(s, res, tag)
					vec := make([]float64, s.Dim)
					var d2 float64
					for d := range vec {
						vec[d] = x[d] - xc[d]
						d2 += vec[d] * vec[d]
					}
					if d2 <= tt.rc*tt.rc {
						found = append(found, vec)
						origins = append(origins, origin(res, tag))
					}
				}
				pos += res.NbNeigh[center]

				require.Len(t, found, len(want[center]), "center %d", center)
				used := make([]bool, len(found))
				for _, p := range want[center] {
					match := -1
					for k, vec := range found {
						if !used[k] && origins[k] == p.Neighbour && almostEqual(vec, p.Vector) {
							match = k
							break
						}
					}
					require.GreaterOrEqual(t, match, 0, "center %d misses image %v of atom %d", center, p.Shift, p.Neighbour)
					used[match] = true
				}
			}
		})
	}
}

func TestBuild_AtomOutsideCell(t *testing.T) {
	s := &structure.AtomicStructure{
		Dim:       3,
		Cell:      []float64{2, 0, 0, 0, 2, 0, 0, 0, 2},
		Positions: []float64{0.5, 0.5, 0.5, 2.5, 0.5, 0.5},
		Types:     []int{1, 1},
		PBC:       []bool{true, true, true},
	}
	lat, err := structure.NewLattice(3, s.Cell)
	require.NoError(t, err)

	_, err = Build(Input{Lattice: lat, PBC: s.PBC, Positions: s.Positions, Cutoff: 1})
	assert.ErrorIs(t, err, ErrOutsideCell)

	// Along a non-periodic direction the same atom is fine.
	_, err = Build(Input{Lattice: lat, PBC: []bool{false, true, true}, Positions: s.Positions, Cutoff: 1})
	assert.NoError(t, err)
}

func TestBuild_InvalidCutoff(t *testing.T) {
	lat, err := structure.NewLattice(1, []float64{1})
	require.NoError(t, err)

	for _, rc := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err := Build(Input{Lattice: lat, PBC: []bool{true}, Positions: []float64{0.5}, Cutoff: rc})
		assert.Error(t, err)
	}
}

func TestBuild_Empty(t *testing.T) {
	lat, err := structure.NewLattice(2, []float64{1, 0, 0, 1})
	require.NoError(t, err)

	res, err := Build(Input{Lattice: lat, PBC: []bool{true, true}, Cutoff: 0.5})
	require.NoError(t, err)
	assert.Zero(t, res.NCenters)
	assert.Zero(t, res.NGhosts())
	assert.Empty(t, res.NeighbourTags)
}

func almostEqual(a, b []float64) bool {
	for i := range a {
		if math.Abs(a[i]-b[i]) > 1e-9 {
			return false
		}
	}
	return true
}

func TestBuild_MeshTooLarge(t *testing.T) {
	lat, err := structure.NewLattice(3, []float64{1, 0, 0, 0, 1, 0, 0, 0, 1})
	require.NoError(t, err)
	free := []bool{false, false, false}

	t.Run("TinyCutoff", func(t *testing.T) {
		_, err := Build(Input{Lattice: lat, PBC: free, Positions: []float64{0.5, 0.5, 0.5}, Cutoff: 1e-300})
		assert.ErrorIs(t, err, ErrMeshTooLarge)
	})

	t.Run("SparseCluster", func(t *testing.T) {
		// About 155^3 bins for two atoms.
		positions := []float64{0, 0, 0, 150, 150, 150}
		_, err := Build(Input{Lattice: lat, PBC: free, Positions: positions, Cutoff: 1})
		assert.ErrorIs(t, err, ErrMeshTooLarge)
	})

	t.Run("DenseEnough", func(t *testing.T) {
		positions := []float64{0, 0, 0, 20, 20, 20}
		res, err := Build(Input{Lattice: lat, PBC: free, Positions: positions, Cutoff: 1})
		require.NoError(t, err)
		assert.Equal(t, []int{0, 0}, res.NbNeigh)
	})
}

func TestBinLimit(t *testing.T) {
	assert.Equal(t, minBins, binLimit(0))
	assert.Equal(t, binsPerAtom*4096, binLimit(4096))
	assert.Equal(t, maxBins, binLimit(1<<30))
}
