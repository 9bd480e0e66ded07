package manager

import (
	"math"
	"testing"

	"github.com/hupe1980/neighborhood/structure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func threeAtoms() *structure.AtomicStructure {
	return &structure.AtomicStructure{
		Dim:       3,
		Cell:      []float64{2, 0, 0, 0, 2, 0, 0, 0, 2},
		Positions: []float64{0, 0, 0, 1, 0, 0, 0.5, 1.5, 1},
		Types:     []int{1, 1, 8},
		PBC:       []bool{true, true, true},
	}
}

func TestKspace(t *testing.T) {
	c := NewCenters()
	ks, err := NewKspace(c, Hypers{"kcut": math.Pi * 1.01})
	require.NoError(t, err)
	require.NoError(t, ks.Update(threeAtoms()))

	assert.Equal(t, NameKspace, ks.Name())
	assert.Equal(t, 3, ks.Size())
	assert.Equal(t, 3, ks.SizeWithGhosts())
	assert.True(t, ks.HasCenterPair())
	assert.False(t, ks.IsStrict())
	assert.Equal(t, 0, ks.Layer(1))
	assert.Equal(t, 0, ks.Layer(2))

	pairs, err := ks.ClusterCount(2)
	require.NoError(t, err)
	assert.Equal(t, 9, pairs)
	for atom := range Atoms(ks) {
		assert.Equal(t, []int{0, 1, 2}, ks.ExtensionTags(1, atom.Center()))
	}

	// Reciprocal vectors of a cubic cell of edge 2 have length pi.
	require.NotNil(t, ks.KVectors())
	assert.Equal(t, 3, ks.KVectors().Len())
	for i := range ks.KVectors().Len() {
		assert.InDelta(t, math.Pi, ks.KVectors().Norm(i), 1e-9)
	}
}

func TestKspace_WithoutKcut(t *testing.T) {
	c := NewCenters()
	ks, err := NewKspace(c, nil)
	require.NoError(t, err)
	require.NoError(t, ks.Update(threeAtoms()))
	assert.Nil(t, ks.KVectors())
}

func TestKspace_RequiresPeriodicity(t *testing.T) {
	c := NewCenters()
	ks, err := NewKspace(c, nil)
	require.NoError(t, err)
	require.NoError(t, ks.Update(threeAtoms()))

	s := threeAtoms()
	s.PBC[2] = false
	err = ks.Update(s)
	assert.ErrorIs(t, err, ErrGeometry)
	assert.Equal(t, 1, ks.NUpdate())

	// The previous result is rebuilt once the structure is periodic again.
	require.NoError(t, ks.Update(threeAtoms()))
	assert.Equal(t, 2, ks.NUpdate())
}

func TestKspace_KcutNeedsThreeDimensions(t *testing.T) {
	c := NewCenters()
	ks, err := NewKspace(c, Hypers{"kcut": 1.0})
	require.NoError(t, err)

	err = ks.Update(&structure.AtomicStructure{
		Dim:       2,
		Cell:      []float64{1, 0, 0, 1},
		Positions: []float64{0, 0},
		Types:     []int{1},
		PBC:       []bool{true, true},
	})
	assert.ErrorIs(t, err, ErrGeometry)
}
