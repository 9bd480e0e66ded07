package structure

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

// ErrInvalid is returned when an atomic structure is malformed.
var ErrInvalid = errors.New("invalid atomic structure")

// MaxDim is the largest supported spatial dimension.
const MaxDim = 3

// AtomicStructure is the raw input of a structure-manager stack.
type AtomicStructure struct {
	// Dim is the number of spatial dimensions (1..3).
	Dim int `json:"dim"`
	// Cell is the Dim x Dim lattice matrix, row-major; row j is lattice vector j.
	Cell []float64 `json:"cell"`
	// Positions holds Cartesian coordinates, atom i at [i*Dim, (i+1)*Dim).
	Positions []float64 `json:"positions"`
	// Types holds one species id per atom.
	Types []int `json:"types"`
	// PBC holds one periodic-boundary flag per spatial direction.
	PBC []bool `json:"pbc"`
}

// NumAtoms returns the number of atoms.
func (s *AtomicStructure) NumAtoms() int { return len(s.Types) }

// Position returns the coordinates of atom i. The slice aliases Positions.
func (s *AtomicStructure) Position(i int) []float64 {
	return s.Positions[i*s.Dim : (i+1)*s.Dim : (i+1)*s.Dim]
}

// Validate checks that all arrays are consistent with Dim and the atom count.
func (s *AtomicStructure) Validate() error {
	if s == nil {
		return fmt.Errorf("%w: nil structure", ErrInvalid)
	}
	if s.Dim < 1 || s.Dim > MaxDim {
		return fmt.Errorf("%w: dimension %d not in [1,%d]", ErrInvalid, s.Dim, MaxDim)
	}
	if len(s.Cell) != s.Dim*s.Dim {
		return fmt.Errorf("%w: cell has %d entries, want %d", ErrInvalid, len(s.Cell), s.Dim*s.Dim)
	}
	if len(s.PBC) != s.Dim {
		return fmt.Errorf("%w: %d periodic flags for dimension %d", ErrInvalid, len(s.PBC), s.Dim)
	}
	if len(s.Positions) != len(s.Types)*s.Dim {
		return fmt.Errorf("%w: %d coordinates for %d atoms in dimension %d",
			ErrInvalid, len(s.Positions), len(s.Types), s.Dim)
	}
	for i, x := range s.Positions {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return fmt.Errorf("%w: atom %d has non-finite coordinate", ErrInvalid, i/s.Dim)
		}
	}
	return nil
}

// IsFullyPeriodic reports whether every direction is periodic.
func (s *AtomicStructure) IsFullyPeriodic() bool {
	for _, p := range s.PBC {
		if !p {
			return false
		}
	}
	return len(s.PBC) > 0
}

// Equal reports whether both structures hold bit-identical data.
func (s *AtomicStructure) Equal(o *AtomicStructure) bool {
	if s == nil || o == nil {
		return s == o
	}
	return s.Dim == o.Dim &&
		slices.Equal(s.Cell, o.Cell) &&
		slices.Equal(s.Positions, o.Positions) &&
		slices.Equal(s.Types, o.Types) &&
		slices.Equal(s.PBC, o.PBC)
}

// Clone returns a deep copy.
func (s *AtomicStructure) Clone() *AtomicStructure {
	return &AtomicStructure{
		Dim:       s.Dim,
		Cell:      slices.Clone(s.Cell),
		Positions: slices.Clone(s.Positions),
		Types:     slices.Clone(s.Types),
		PBC:       slices.Clone(s.PBC),
	}
}

// Species returns the sorted distinct species ids.
func (s *AtomicStructure) Species() []int {
	out := slices.Clone(s.Types)
	slices.Sort(out)
	return slices.Compact(out)
}

// Wrap folds every atom back into the unit cell along periodic directions.
func (s *AtomicStructure) Wrap() error {
	lat, err := NewLattice(s.Dim, s.Cell)
	if err != nil {
		return err
	}
	frac := make([]float64, s.Dim)
	for i := range s.NumAtoms() {
		pos := s.Position(i)
		lat.Fractional(frac, pos)
		for d, periodic := range s.PBC {
			if periodic {
				frac[d] -= math.Floor(frac[d])
			}
		}
		lat.Cartesian(pos, frac)
	}
	return nil
}
