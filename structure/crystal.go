package structure

import "fmt"

// Fractional basis positions of the common cubic lattices.
var (
	basisSimpleCubic = [][3]float64{{0, 0, 0}}
	basisBCC         = [][3]float64{{0, 0, 0}, {0.5, 0.5, 0.5}}
	basisFCC         = [][3]float64{{0, 0, 0}, {0, 0.5, 0.5}, {0.5, 0, 0.5}, {0.5, 0.5, 0}}
)

// SimpleCubic builds a fully periodic simple-cubic crystal with lattice
// constant a, repeated reps times along each axis.
func SimpleCubic(a float64, reps [3]int, species int) (*AtomicStructure, error) {
	return Crystal(basisSimpleCubic, a, reps, species)
}

// BCC builds a fully periodic body-centred cubic crystal.
func BCC(a float64, reps [3]int, species int) (*AtomicStructure, error) {
	return Crystal(basisBCC, a, reps, species)
}

// FCC builds a fully periodic face-centred cubic crystal.
func FCC(a float64, reps [3]int, species int) (*AtomicStructure, error) {
	return Crystal(basisFCC, a, reps, species)
}

// Crystal replicates a cubic unit cell with the given fractional basis.
// Atoms are emitted cell by cell (x slowest), basis atoms in order.
func Crystal(basis [][3]float64, a float64, reps [3]int, species int) (*AtomicStructure, error) {
	if a <= 0 {
		return nil, fmt.Errorf("%w: lattice constant %g", ErrInvalid, a)
	}
	for _, r := range reps {
		if r < 1 {
			return nil, fmt.Errorf("%w: repetitions %v", ErrInvalid, reps)
		}
	}

	n := len(basis) * reps[0] * reps[1] * reps[2]
	s := &AtomicStructure{
		Dim: 3,
		Cell: []float64{
			a * float64(reps[0]), 0, 0,
			0, a * float64(reps[1]), 0,
			0, 0, a * float64(reps[2]),
		},
		Positions: make([]float64, 0, 3*n),
		Types:     make([]int, 0, n),
		PBC:       []bool{true, true, true},
	}

	for ix := range reps[0] {
		for iy := range reps[1] {
			for iz := range reps[2] {
				for _, b := range basis {
					s.Positions = append(s.Positions,
						a*(float64(ix)+b[0]),
						a*(float64(iy)+b[1]),
						a*(float64(iz)+b[2]),
					)
					s.Types = append(s.Types, species)
				}
			}
		}
	}
	return s, nil
}
