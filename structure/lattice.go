package structure

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// singularTol is the smallest accepted |det| relative to the product of the
// lattice vector lengths.
const singularTol = 1e-12

// Lattice is a cell with its inverse, used to move between Cartesian and
// fractional coordinates. Row j of the cell is lattice vector j, so a
// Cartesian point is x = f * A for fractional row vector f.
type Lattice struct {
	dim     int
	cell    *mat.Dense
	inverse *mat.Dense
	volume  float64
}

// NewLattice builds a lattice from a row-major dim x dim cell.
// A singular cell is rejected with ErrInvalid.
func NewLattice(dim int, cell []float64) (*Lattice, error) {
	if dim < 1 || dim > MaxDim || len(cell) != dim*dim {
		return nil, fmt.Errorf("%w: cell of %d entries for dimension %d", ErrInvalid, len(cell), dim)
	}
	a := mat.NewDense(dim, dim, append([]float64(nil), cell...))

	scale := 1.0
	for i := range dim {
		scale *= mat.Norm(a.RowView(i), 2)
	}
	det := mat.Det(a)
	if scale == 0 || math.Abs(det) <= singularTol*scale {
		return nil, fmt.Errorf("%w: singular cell (det=%g)", ErrInvalid, det)
	}

	var inv mat.Dense
	if err := inv.Inverse(a); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	return &Lattice{dim: dim, cell: a, inverse: &inv, volume: math.Abs(det)}, nil
}

// Dim returns the spatial dimension.
func (l *Lattice) Dim() int { return l.dim }

// Volume returns the cell volume (area in 2D, length in 1D).
func (l *Lattice) Volume() float64 { return l.volume }

// Vector returns a copy of lattice vector i.
func (l *Lattice) Vector(i int) []float64 {
	return mat.Row(nil, i, l.cell)
}

// Matrix returns the cell matrix. Callers must not modify it.
func (l *Lattice) Matrix() mat.Matrix { return l.cell }

// Inverse returns the inverse cell matrix. Callers must not modify it.
func (l *Lattice) Inverse() mat.Matrix { return l.inverse }

// Fractional writes the fractional coordinates of x into dst and returns it.
func (l *Lattice) Fractional(dst, x []float64) []float64 {
	for i := range l.dim {
		var f float64
		for j := range l.dim {
			f += x[j] * l.inverse.At(j, i)
		}
		dst[i] = f
	}
	return dst
}

// Cartesian writes the Cartesian coordinates of fractional point f into dst.
// dst may alias f.
func (l *Lattice) Cartesian(dst, f []float64) []float64 {
	var tmp [MaxDim]float64
	for j := range l.dim {
		var x float64
		for i := range l.dim {
			x += f[i] * l.cell.At(i, j)
		}
		tmp[j] = x
	}
	copy(dst, tmp[:l.dim])
	return dst
}

// Translate adds the lattice translation n (integer image vector) to x,
// writing into dst.
func (l *Lattice) Translate(dst, x []float64, n []int) []float64 {
	for j := range l.dim {
		v := x[j]
		for i := range l.dim {
			v += float64(n[i]) * l.cell.At(i, j)
		}
		dst[j] = v
	}
	return dst
}

// Bounds returns the Cartesian bounding box of the unit cell, taken over all
// 2^dim corners.
func (l *Lattice) Bounds() (lo, hi []float64) {
	lo = make([]float64, l.dim)
	hi = make([]float64, l.dim)
	corner := make([]float64, l.dim)
	for mask := range 1 << l.dim {
		for j := range l.dim {
			corner[j] = 0
			for i := range l.dim {
				if mask&(1<<i) != 0 {
					corner[j] += l.cell.At(i, j)
				}
			}
		}
		for j := range l.dim {
			lo[j] = math.Min(lo[j], corner[j])
			hi[j] = math.Max(hi[j], corner[j])
		}
	}
	return lo, hi
}

// FractionalBounds returns, per lattice direction, the range of fractional
// coordinates covered by the axis-aligned box [lo, hi].
func (l *Lattice) FractionalBounds(lo, hi []float64) (fmin, fmax []float64) {
	fmin = make([]float64, l.dim)
	fmax = make([]float64, l.dim)
	for i := range l.dim {
		fmin[i] = math.Inf(1)
		fmax[i] = math.Inf(-1)
	}
	corner := make([]float64, l.dim)
	frac := make([]float64, l.dim)
	for mask := range 1 << l.dim {
		for j := range l.dim {
			if mask&(1<<j) != 0 {
				corner[j] = hi[j]
			} else {
				corner[j] = lo[j]
			}
		}
		l.Fractional(frac, corner)
		for i := range l.dim {
			fmin[i] = math.Min(fmin[i], frac[i])
			fmax[i] = math.Max(fmax[i], frac[i])
		}
	}
	return fmin, fmax
}
