package kvec

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrInvalidCutoff is returned when kcut is not a positive finite number.
	ErrInvalidCutoff = errors.New("kvec: cutoff must be positive")

	// ErrSingularBasis is returned when the basis vectors are linearly dependent.
	ErrSingularBasis = errors.New("kvec: singular basis")
)

// boundsTol absorbs round-off when turning kcut*|column| into a search bound.
const boundsTol = 1e-9

// Basis holds three basis vectors b1, b2, b3 as rows.
type Basis [3][3]float64

// Set is a list of lattice vectors with their norms.
type Set struct {
	vectors []float64
	norms   []float64
}

// Len returns the number of vectors.
func (s *Set) Len() int { return len(s.norms) }

// Vector returns vector i. The slice aliases the set.
func (s *Set) Vector(i int) []float64 { return s.vectors[3*i : 3*i+3 : 3*i+3] }

// Norm returns the Euclidean norm of vector i.
func (s *Set) Norm(i int) float64 { return s.norms[i] }

// Vectors returns the flattened vectors, three components per entry.
func (s *Set) Vectors() []float64 { return s.vectors }

// Norms returns the norms, parallel to Vectors.
func (s *Set) Norms() []float64 { return s.norms }

func (s *Set) add(kx, ky, kz, normsq float64) {
	s.vectors = append(s.vectors, kx, ky, kz)
	s.norms = append(s.norms, math.Sqrt(normsq))
}

// Generate returns every lattice point k = n1*b1 + n2*b2 + n3*b3 with
// 0 < |k| <= kcut and |ni| <= nmax[i], keeping exactly one of k and -k.
// Points are emitted region by region, (a) then (b) then (c).
func Generate(b Basis, nmax [3]int, kcut float64) (*Set, error) {
	if !(kcut > 0) || math.IsInf(kcut, 0) {
		return nil, fmt.Errorf("%w: %g", ErrInvalidCutoff, kcut)
	}
	if nmax[0] < 0 || nmax[1] < 0 || nmax[2] < 0 {
		return nil, fmt.Errorf("kvec: negative search bounds %v", nmax)
	}

	kcutsq := kcut * kcut
	n1max, n2max, n3max := nmax[0], nmax[1], nmax[2]
	b1, b2, b3 := b[0], b[1], b[2]
	set := &Set{}

	// (a) n1 = 0, n2 = 0, n3 > 0.
	var kx, ky, kz float64
	for n3 := 1; n3 <= n3max; n3++ {
		kx += b3[0]
		ky += b3[1]
		kz += b3[2]
		if normsq := kx*kx + ky*ky + kz*kz; normsq <= kcutsq {
			set.add(kx, ky, kz, normsq)
		}
	}

	// (b) n1 = 0, n2 > 0, n3 in [-n3max, n3max]. Start one step below
	// -n3max so every iteration adds exactly b3.
	lo := float64(-n3max - 1)
	for n2 := 1; n2 <= n2max; n2++ {
		fn2 := float64(n2)
		kx = fn2*b2[0] + lo*b3[0]
		ky = fn2*b2[1] + lo*b3[1]
		kz = fn2*b2[2] + lo*b3[2]
		for range 2*n3max + 1 {
			kx += b3[0]
			ky += b3[1]
			kz += b3[2]
			if normsq := kx*kx + ky*ky + kz*kz; normsq <= kcutsq {
				set.add(kx, ky, kz, normsq)
			}
		}
	}

	// (c) n1 > 0, n2 in [-n2max, n2max], n3 in [-n3max, n3max].
	for n1 := 1; n1 <= n1max; n1++ {
		fn1 := float64(n1)
		for n2 := -n2max; n2 <= n2max; n2++ {
			fn2 := float64(n2)
			kx = fn1*b1[0] + fn2*b2[0] + lo*b3[0]
			ky = fn1*b1[1] + fn2*b2[1] + lo*b3[1]
			kz = fn1*b1[2] + fn2*b2[2] + lo*b3[2]
			for range 2*n3max + 1 {
				kx += b3[0]
				ky += b3[1]
				kz += b3[2]
				if normsq := kx*kx + ky*ky + kz*kz; normsq <= kcutsq {
					set.add(kx, ky, kz, normsq)
				}
			}
		}
	}

	return set, nil
}

// SearchBounds returns the smallest nmax such that every lattice point with
// |k| <= kcut satisfies |ni| <= nmax[i].
//
// With k = n*B (n a row vector), ni = k . ci where ci is column i of B^-1,
// hence |ni| <= kcut*|ci|.
func SearchBounds(b Basis, kcut float64) ([3]int, error) {
	var nmax [3]int
	if !(kcut > 0) || math.IsInf(kcut, 0) {
		return nmax, fmt.Errorf("%w: %g", ErrInvalidCutoff, kcut)
	}
	inv, err := invert(b)
	if err != nil {
		return nmax, err
	}
	for i := range 3 {
		col := mat.Col(nil, i, inv)
		nmax[i] = int(math.Floor(kcut*mat.Norm(mat.NewVecDense(3, col), 2) + boundsTol))
	}
	return nmax, nil
}

// Precompute derives the search bounds from kcut and generates the half
// lattice.
func Precompute(b Basis, kcut float64) (*Set, error) {
	nmax, err := SearchBounds(b, kcut)
	if err != nil {
		return nil, err
	}
	return Generate(b, nmax, kcut)
}

// ReciprocalBasis returns the reciprocal basis of a 3D cell whose rows are
// the real-space lattice vectors: bi . aj = 2*pi*delta(i,j).
func ReciprocalBasis(cell []float64) (Basis, error) {
	var out Basis
	if len(cell) != 9 {
		return out, fmt.Errorf("kvec: cell has %d entries, want 9", len(cell))
	}
	var a Basis
	for i := range 3 {
		copy(a[i][:], cell[3*i:3*i+3])
	}
	inv, err := invert(a)
	if err != nil {
		return out, err
	}
	// B = 2*pi * (A^-1)^T, so row i of B is column i of A^-1.
	for i := range 3 {
		for j := range 3 {
			out[i][j] = 2 * math.Pi * inv.At(j, i)
		}
	}
	return out, nil
}

func invert(b Basis) (*mat.Dense, error) {
	m := mat.NewDense(3, 3, []float64{
		b[0][0], b[0][1], b[0][2],
		b[1][0], b[1][1], b[1][2],
		b[2][0], b[2][1], b[2][2],
	})
	if mat.Det(m) == 0 {
		return nil, ErrSingularBasis
	}
	var inv mat.Dense
	if err := inv.Inverse(m); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSingularBasis, err)
	}
	return &inv, nil
}
