// Package distance provides float64 geometry helpers for atomic positions.
//
// Positions are stored flat and row-major: atom i of a Dim-dimensional
// structure occupies positions[i*dim : (i+1)*dim]. The helpers here work on
// such slices without allocating unless noted.
//
// # Usage
//
//	d2 := distance.SquaredL2(a, b)
//	d := distance.L2(a, b)
//	distance.Sub(dst, b, a)      // dst = b - a
//	unit, ok := distance.DirectionCopy(dst)
package distance
