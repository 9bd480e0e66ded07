package distance

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
)

// Dot calculates the dot product of two vectors.
// Assumes vectors are the same length (caller's responsibility).
func Dot(a, b []float64) float64 {
	return floats.Dot(a, b)
}

// SquaredL2 calculates the squared Euclidean distance between two points.
func SquaredL2(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

// L2 calculates the Euclidean distance between two points.
func L2(a, b []float64) float64 {
	return floats.Distance(a, b, 2)
}

// Norm returns the Euclidean length of v.
func Norm(v []float64) float64 {
	return floats.Norm(v, 2)
}

// Sub writes a - b into dst and returns dst.
func Sub(dst, a, b []float64) []float64 {
	return floats.SubTo(dst, a, b)
}

// Within reports whether a and b are at most cutoff apart.
// The comparison is done on squared distances.
func Within(a, b []float64, cutoff float64) bool {
	return SquaredL2(a, b) <= cutoff*cutoff
}

// DirectionInPlace scales v to unit length.
// Returns false (leaving v untouched) if v has zero length.
func DirectionInPlace(v []float64) bool {
	if len(v) == 0 {
		return false
	}
	n := Norm(v)
	if n == 0 || math.IsNaN(n) {
		return false
	}
	floats.Scale(1/n, v)
	return true
}

// DirectionCopy returns a unit-length copy of src.
// Returns false if src has zero length.
func DirectionCopy(src []float64) ([]float64, bool) {
	dst := slices.Clone(src)
	if !DirectionInPlace(dst) {
		return nil, false
	}
	return dst, true
}
