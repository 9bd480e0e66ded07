package linkedcell

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/hupe1980/neighborhood/structure"
)

const (
	maxDim = structure.MaxDim

	// maxBins bounds the mesh allocation (heads array).
	maxBins = 1 << 26

	// Build allows at least minBins bins and binsPerAtom bins per real
	// atom beyond that, up to maxBins.
	minBins     = 1 << 20
	binsPerAtom = 1 << 10

	// fracTol is the tolerance on fractional coordinates of real atoms
	// along periodic directions.
	fracTol = 1e-8

	// boundTol widens the ghost region so images exactly on its surface
	// are kept.
	boundTol = 1e-10
)

var (
	// ErrOutsideCell is returned when a real atom lies outside the unit cell
	// along a periodic direction.
	ErrOutsideCell = errors.New("atom outside the unit cell")

	// ErrMeshTooLarge is returned when the cutoff is too small for the size
	// of the structure.
	ErrMeshTooLarge = errors.New("linked-cell mesh too large")
)

// Input describes one neighbour search.
type Input struct {
	Lattice *structure.Lattice
	PBC     []bool
	// Positions of the real atoms, row-major.
	Positions []float64
	Cutoff    float64
	// ConsiderGhostNeighbours also builds candidate lists for ghosts.
	ConsiderGhostNeighbours bool
}

// Result is the output of Build. Atom ids are tags: real atoms keep their
// input order in [0, NCenters), ghosts follow.
type Result struct {
	NCenters int
	// GhostPositions holds ghost coordinates, row-major.
	GhostPositions []float64
	// GhostOrigins holds, per ghost, the id of the real atom it images.
	GhostOrigins []int
	// NbNeigh holds the candidate count of every atom, real then ghost.
	NbNeigh []int
	// NeighbourTags holds the flattened candidate lists, each sorted.
	NeighbourTags []int
	// Bins is the number of mesh bins per direction.
	Bins []int
}

// NGhosts returns the number of ghosts.
func (r *Result) NGhosts() int { return len(r.GhostOrigins) }

// Build bins the real atoms and their periodic images and returns the
// candidate neighbour lists.
func Build(in Input) (*Result, error) {
	dim := in.Lattice.Dim()
	rc := in.Cutoff
	if !(rc > 0) || math.IsInf(rc, 0) {
		return nil, fmt.Errorf("linkedcell: invalid cutoff %g", rc)
	}
	nReal := len(in.Positions) / dim

	// Region of interest: the cell and every real atom.
	lo, hi := in.Lattice.Bounds()
	frac := make([]float64, dim)
	fatomMin := make([]float64, dim)
	fatomMax := make([]float64, dim)
	for d := range dim {
		fatomMin[d], fatomMax[d] = math.Inf(1), math.Inf(-1)
	}
	for i := range nReal {
		x := in.Positions[i*dim : (i+1)*dim]
		in.Lattice.Fractional(frac, x)
		for d := range dim {
			if in.PBC[d] && (frac[d] < -fracTol || frac[d] > 1+fracTol) {
				return nil, fmt.Errorf("%w: atom %d has fractional coordinate %g along periodic direction %d",
					ErrOutsideCell, i, frac[d], d)
			}
			fatomMin[d] = math.Min(fatomMin[d], frac[d])
			fatomMax[d] = math.Max(fatomMax[d], frac[d])
			lo[d] = math.Min(lo[d], x[d])
			hi[d] = math.Max(hi[d], x[d])
		}
	}

	// Ghosts live within one cutoff of the region; the mesh adds one more
	// cutoff of empty bins on each side.
	ghostLo := make([]float64, dim)
	ghostHi := make([]float64, dim)
	meshLo := make([]float64, dim)
	meshHi := make([]float64, dim)
	for d := range dim {
		ghostLo[d] = lo[d] - rc - boundTol
		ghostHi[d] = hi[d] + rc + boundTol
		meshLo[d] = lo[d] - 2*rc
		meshHi[d] = hi[d] + 2*rc
	}

	mesh, err := newMesh(meshLo, meshHi, rc, nReal, binLimit(nReal))
	if err != nil {
		return nil, err
	}

	res := &Result{NCenters: nReal, Bins: slices.Clone(mesh.Bins())}

	for i := range nReal {
		if _, ok := mesh.Insert(in.Positions[i*dim : (i+1)*dim]); !ok {
			return nil, fmt.Errorf("linkedcell: atom %d could not be binned", i)
		}
	}

	// Image ranges per direction; non-periodic directions stay at zero.
	nlo := make([]int, dim)
	nhi := make([]int, dim)
	if nReal > 0 {
		fmin, fmax := in.Lattice.FractionalBounds(ghostLo, ghostHi)
		for d := range dim {
			if in.PBC[d] {
				nlo[d] = int(math.Floor(fmin[d] - fatomMax[d]))
				nhi[d] = int(math.Ceil(fmax[d] - fatomMin[d]))
			}
		}
	}

	image := make([]int, dim)
	ghost := make([]float64, dim)
	for i := range nReal {
		x := in.Positions[i*dim : (i+1)*dim]
		copy(image, nlo)
		for {
			if !isZero(image) {
				in.Lattice.Translate(ghost, x, image)
				if inBox(ghost, ghostLo, ghostHi) {
					if _, ok := mesh.Insert(ghost); !ok {
						return nil, fmt.Errorf("linkedcell: ghost of atom %d could not be binned", i)
					}
					res.GhostPositions = append(res.GhostPositions, ghost...)
					res.GhostOrigins = append(res.GhostOrigins, i)
				}
			}
			if !advance(image, nlo, nhi) {
				break
			}
		}
	}

	nTotal := nReal + res.NGhosts()
	res.NbNeigh = make([]int, nTotal)
	res.NeighbourTags = make([]int, 0, nTotal)

	centers := nReal
	if in.ConsiderGhostNeighbours {
		centers = nTotal
	}
	for tag := range centers {
		var x []float64
		if tag < nReal {
			x = in.Positions[tag*dim : (tag+1)*dim]
		} else {
			g := tag - nReal
			x = res.GhostPositions[g*dim : (g+1)*dim]
		}

		start := len(res.NeighbourTags)
		res.NeighbourTags, _ = mesh.Stencil(res.NeighbourTags, x)
		cands := res.NeighbourTags[start:]
		cands = slices.DeleteFunc(cands, func(j int) bool { return j == tag })
		slices.Sort(cands)
		res.NeighbourTags = res.NeighbourTags[:start+len(cands)]
		res.NbNeigh[tag] = len(cands)
	}

	return res, nil
}

// binLimit bounds the mesh of n real atoms so sparse structures with a
// small cutoff fail instead of allocating a mostly empty grid.
func binLimit(n int) int {
	return min(maxBins, max(minBins, binsPerAtom*n))
}

func isZero(v []int) bool {
	for _, x := range v {
		if x != 0 {
			return false
		}
	}
	return true
}

func inBox(x, lo, hi []float64) bool {
	for d := range x {
		if x[d] < lo[d] || x[d] > hi[d] {
			return false
		}
	}
	return true
}

// advance steps an odometer over [lo, hi] per direction, last direction
// fastest. Returns false after the last combination.
func advance(v, lo, hi []int) bool {
	for d := len(v) - 1; d >= 0; d-- {
		v[d]++
		if v[d] <= hi[d] {
			return true
		}
		v[d] = lo[d]
	}
	return false
}
