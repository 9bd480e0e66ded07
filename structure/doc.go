// Package structure defines the atomic-structure record consumed by the base
// structure manager, and the lattice geometry built on it.
//
// An AtomicStructure holds Dim-dimensional positions in a flat row-major
// slice, one species id per atom, one periodic flag per spatial direction and
// a Dim x Dim cell whose rows are the lattice vectors:
//
//	s := &structure.AtomicStructure{
//	    Dim:       3,
//	    Cell:      []float64{1, 0, 0, 0, 1, 0, 0, 0, 1},
//	    Positions: []float64{0, 0, 0},
//	    Types:     []int{1},
//	    PBC:       []bool{true, true, true},
//	}
//
// Lattice wraps the cell with gonum matrices for fractional coordinates,
// volumes and bounding boxes.
package structure
