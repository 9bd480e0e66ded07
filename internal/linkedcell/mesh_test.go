package linkedcell

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMesh(t *testing.T) {
	m, err := NewMesh([]float64{0, 0}, []float64{2.5, 1}, 1, 4)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 1}, m.Bins())
	assert.Equal(t, 3, m.TotalBins())
	assert.Equal(t, 0, m.Len())

	_, err = NewMesh([]float64{0, 0, 0}, []float64{1e4, 1e4, 1e4}, 1e-2, 0)
	assert.ErrorIs(t, err, ErrMeshTooLarge)

	// The bin count of a single direction exceeds the int range.
	_, err = NewMesh([]float64{0}, []float64{1}, 1e-300, 0)
	assert.ErrorIs(t, err, ErrMeshTooLarge)
}

func TestMesh_InsertOutside(t *testing.T) {
	m, err := NewMesh([]float64{0}, []float64{3}, 1, 0)
	require.NoError(t, err)

	_, ok := m.Insert([]float64{-0.1})
	assert.False(t, ok)
	_, ok = m.Insert([]float64{3.5})
	assert.False(t, ok)

	id, ok := m.Insert([]float64{0.5})
	require.True(t, ok)
	assert.Equal(t, 0, id)
	id, ok = m.Insert([]float64{2.5})
	require.True(t, ok)
	assert.Equal(t, 1, id)
}

func TestMesh_Stencil(t *testing.T) {
	m, err := NewMesh([]float64{0, 0}, []float64{4, 4}, 1, 0)
	require.NoError(t, err)

	points := [][]float64{
		{0.5, 0.5}, // 0
		{1.5, 1.5}, // 1
		{2.5, 2.5}, // 2
		{3.5, 3.5}, // 3
		{1.2, 0.1}, // 4
	}
	for _, p := range points {
		_, ok := m.Insert(p)
		require.True(t, ok)
	}

	got, ok := m.Stencil(nil, []float64{1.5, 1.5})
	require.True(t, ok)
	slices.Sort(got)
	assert.Equal(t, []int{0, 1, 2, 4}, got)

	// Corner bin: out-of-range neighbours are skipped.
	got, ok = m.Stencil(nil, []float64{0.1, 0.1})
	require.True(t, ok)
	slices.Sort(got)
	assert.Equal(t, []int{0, 1, 4}, got)

	got, ok = m.Stencil([]int{99}, []float64{3.9, 3.9})
	require.True(t, ok)
	assert.Equal(t, 99, got[0])
	slices.Sort(got[1:])
	assert.Equal(t, []int{2, 3}, got[1:])

	_, ok = m.Stencil(nil, []float64{5, 5})
	assert.False(t, ok)
}
