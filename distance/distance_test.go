package distance

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDot(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []float64
		expected float64
	}{
		{"Simple", []float64{1, 2, 3}, []float64{4, 5, 6}, 32},
		{"Zero", []float64{0, 0, 0}, []float64{0, 0, 0}, 0},
		{"Mixed", []float64{1, -1, 2}, []float64{1, 1, -2}, -4},
		{"Single", []float64{2}, []float64{3}, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Dot(tt.a, tt.b), 1e-12)
		})
	}
}

func TestSquaredL2(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []float64
		expected float64
	}{
		{"Simple", []float64{1, 2, 3}, []float64{4, 5, 6}, 27},
		{"Identical", []float64{1, 2, 3}, []float64{1, 2, 3}, 0},
		{"Mixed", []float64{1, -1}, []float64{-1, 1}, 8},
		{"Empty", []float64{}, []float64{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, SquaredL2(tt.a, tt.b), 1e-12)
			assert.InDelta(t, math.Sqrt(tt.expected), L2(tt.a, tt.b), 1e-12)
		})
	}
}

func TestWithin(t *testing.T) {
	a := []float64{0, 0, 0}
	assert.True(t, Within(a, []float64{1, 0, 0}, 1))
	assert.True(t, Within(a, []float64{1, 1, 0}, 1.5))
	assert.False(t, Within(a, []float64{1, 1, 1}, 1.5))
}

func TestSub(t *testing.T) {
	dst := make([]float64, 3)
	got := Sub(dst, []float64{3, 2, 1}, []float64{1, 1, 1})
	assert.Equal(t, []float64{2, 1, 0}, got)
	assert.Same(t, &dst[0], &got[0])
}

func TestDirection(t *testing.T) {
	t.Run("InPlace", func(t *testing.T) {
		v := []float64{3, 4}
		assert.True(t, DirectionInPlace(v))
		assert.InDelta(t, 0.6, v[0], 1e-12)
		assert.InDelta(t, 0.8, v[1], 1e-12)
		assert.InDelta(t, 1.0, Norm(v), 1e-12)

		assert.False(t, DirectionInPlace([]float64{0, 0}))
		assert.False(t, DirectionInPlace(nil))
	})

	t.Run("Copy", func(t *testing.T) {
		v := []float64{0, 2}
		dst, ok := DirectionCopy(v)
		assert.True(t, ok)
		assert.Equal(t, []float64{0, 1}, dst)
		assert.Equal(t, []float64{0, 2}, v)

		dst, ok = DirectionCopy([]float64{0, 0})
		assert.False(t, ok)
		assert.Nil(t, dst)
	})
}
