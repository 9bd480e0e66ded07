package manager

import (
	"fmt"
	"maps"
	"slices"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/neighborhood/structure"
)

// NameCenters is the name of the base manager.
const NameCenters = "Centers"

// Centers is the base of every stack. It holds the atoms of a structure and
// lists them as order-1 clusters. It has no neighbour data.
type Centers struct {
	layer
	current *structure.AtomicStructure
	lattice *structure.Lattice
	species map[int]*roaring.Bitmap
}

// NewCenters creates an empty base manager. Call Update to load a structure.
func NewCenters(optFns ...Option) *Centers {
	o := applyOptions(optFns)
	c := &Centers{
		layer:   newLayer(NameCenters, nil, 1, o),
		species: make(map[int]*roaring.Bitmap),
	}
	c.atoms = &atomTable{}
	return c
}

// Structure implements Manager.
func (c *Centers) Structure() *structure.AtomicStructure { return c.current }

// Lattice implements Manager.
func (c *Centers) Lattice() *structure.Lattice { return c.lattice }

// Update validates s and rebuilds the stack if s differs from the structure
// of the previous update or if a layer was invalidated.
func (c *Centers) Update(s *structure.AtomicStructure) error {
	if err := s.Validate(); err != nil {
		c.logger.Warn("structure rejected", "error", err)
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	changed := !s.Equal(c.current)
	if changed {
		lat, err := structure.NewLattice(s.Dim, s.Cell)
		if err != nil {
			c.logger.Warn("structure rejected", "error", err)
			return fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		c.current = s.Clone()
		c.lattice = lat
	}
	return c.updateSelf(changed, c.rebuild)
}

func (c *Centers) rebuild() error {
	s := c.current
	n := s.NumAtoms()

	c.atoms.reset(s.Dim, n)
	clear(c.species)
	for i := range n {
		c.atoms.add(s.Position(i), s.Types[i], i)
		bm, ok := c.species[s.Types[i]]
		if !ok {
			bm = roaring.New()
			c.species[s.Types[i]] = bm
		}
		bm.Add(uint32(i))
	}
	c.own(1).FillSequence(n)
	return nil
}

// Species returns the sorted species ids of the current structure.
func (c *Centers) Species() []int {
	return slices.Sorted(maps.Keys(c.species))
}

// SpeciesMask returns the tags of all atoms of the given species. The
// returned bitmap is a copy; it is empty for unknown species.
func (c *Centers) SpeciesMask(species int) *roaring.Bitmap {
	if bm, ok := c.species[species]; ok {
		return bm.Clone()
	}
	return roaring.New()
}
