package testutil

import (
	"math"
	"sort"

	"github.com/hupe1980/neighborhood/structure"
)

// Pair is one neighbour of a center found by BruteForcePairs.
type Pair struct {
	// Neighbour is the index of the real atom being imaged.
	Neighbour int
	// Shift is the lattice translation applied to the neighbour.
	Shift []int
	// Vector points from the center to the imaged neighbour.
	Vector   []float64
	Distance float64
}

// BruteForcePairs returns, for every atom, all periodic images of all atoms
// within cutoff, excluding the atom itself in the zero image. Each list is
// sorted by distance, then by neighbour index.
func BruteForcePairs(s *structure.AtomicStructure, cutoff float64) ([][]Pair, error) {
	lat, err := structure.NewLattice(s.Dim, s.Cell)
	if err != nil {
		return nil, err
	}
	dim := s.Dim

	// |delta frac| <= 1 between atoms of the cell, plus cutoff*|column of inverse|.
	inv := lat.Inverse()
	nmax := make([]int, dim)
	for i := range dim {
		if !s.PBC[i] {
			continue
		}
		var col float64
		for j := range dim {
			col += inv.At(j, i) * inv.At(j, i)
		}
		nmax[i] = int(math.Ceil(cutoff*math.Sqrt(col))) + 1
	}

	out := make([][]Pair, s.NumAtoms())
	shift := make([]int, dim)
	img := make([]float64, dim)
	for i := range s.NumAtoms() {
		xi := s.Position(i)
		for j := range s.NumAtoms() {
			xj := s.Position(j)
			for d := range dim {
				shift[d] = -nmax[d]
			}
			for {
				lat.Translate(img, xj, shift)
				vec := make([]float64, dim)
				var d2 float64
				for d := range dim {
					vec[d] = img[d] - xi[d]
					d2 += vec[d] * vec[d]
				}
				self := i == j && allZero(shift)
				if !self && d2 <= cutoff*cutoff {
					out[i] = append(out[i], Pair{
						Neighbour: j,
						Shift:     append([]int(nil), shift...),
						Vector:    vec,
						Distance:  math.Sqrt(d2),
					})
				}
				if !step(shift, nmax) {
					break
				}
			}
		}
		sort.SliceStable(out[i], func(a, b int) bool {
			pa, pb := out[i][a], out[i][b]
			if pa.Distance != pb.Distance {
				return pa.Distance < pb.Distance
			}
			return pa.Neighbour < pb.Neighbour
		})
	}
	return out, nil
}

func allZero(v []int) bool {
	for _, x := range v {
		if x != 0 {
			return false
		}
	}
	return true
}

func step(v, nmax []int) bool {
	for d := len(v) - 1; d >= 0; d-- {
		v[d]++
		if v[d] <= nmax[d] {
			return true
		}
		v[d] = -nmax[d]
	}
	return false
}
