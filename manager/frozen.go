package manager

import (
	"fmt"

	"github.com/hupe1980/neighborhood/structure"
)

// NameFrozen is the name of the read-only base manager.
const NameFrozen = "Frozen"

// State is the full content of one layer: atoms with ghosts and all
// extension lists, numbered from zero. It is what snapshots persist.
type State struct {
	// Source is the name of the layer the state was captured from.
	Source     string                     `json:"source"`
	Structure  *structure.AtomicStructure `json:"structure"`
	NCenters   int                        `json:"n_centers"`
	Positions  []float64                  `json:"positions"`
	Types      []int                      `json:"types"`
	Origins    []int                      `json:"origins"`
	MaxOrder   int                        `json:"max_order"`
	Strict     bool                       `json:"strict"`
	CenterPair bool                       `json:"center_pair"`
	// Extensions[k-1] extends the clusters of order k.
	Extensions []StateExtensions `json:"extensions"`
}

// StateExtensions holds the extension counts and flattened tags of one
// order.
type StateExtensions struct {
	Counts []int `json:"counts"`
	Tags   []int `json:"tags"`
}

// Capture copies the current content of m.
func Capture(m Manager) (*State, error) {
	if m.NUpdate() == 0 {
		return nil, fmt.Errorf("%w: %s has never been updated", ErrInvalidInput, m.Name())
	}

	n := m.SizeWithGhosts()
	st := &State{
		Source:     m.Name(),
		Structure:  m.Structure().Clone(),
		NCenters:   m.Size(),
		Positions:  make([]float64, 0, n*m.Dim()),
		Types:      make([]int, n),
		Origins:    make([]int, n),
		MaxOrder:   m.MaxOrder(),
		Strict:     m.IsStrict(),
		CenterPair: m.HasCenterPair(),
		Extensions: make([]StateExtensions, m.MaxOrder()-1),
	}
	for tag := range n {
		st.Positions = append(st.Positions, m.Position(tag)...)
		st.Types[tag] = m.AtomType(tag)
		st.Origins[tag] = m.AtomIndex(tag)
	}

	count := n
	for k := 1; k < m.MaxOrder(); k++ {
		e := &st.Extensions[k-1]
		e.Counts = make([]int, count)
		for i := range count {
			e.Counts[i] = m.ExtensionCount(k, i)
			e.Tags = append(e.Tags, m.ExtensionTags(k, i)...)
		}
		count = len(e.Tags)
	}
	return st, nil
}

// Frozen is a read-only base manager restored from a State. Adaptors can be
// stacked on it like on Centers.
type Frozen struct {
	layer
	source  string
	current *structure.AtomicStructure
	lattice *structure.Lattice
}

// NewFrozen restores a manager from st. The state is copied.
func NewFrozen(st *State, optFns ...Option) (*Frozen, error) {
	o := applyOptions(optFns)
	if st == nil || st.MaxOrder < 1 || len(st.Extensions) != st.MaxOrder-1 {
		return nil, fmt.Errorf("%w: malformed state", ErrInvalidInput)
	}
	s := st.Structure
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	lat, err := structure.NewLattice(s.Dim, s.Cell)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	n := len(st.Types)
	if len(st.Positions) != n*s.Dim || len(st.Origins) != n || st.NCenters != s.NumAtoms() || st.NCenters > n {
		return nil, fmt.Errorf("%w: state holds %d atoms, %d origins, %d coordinates and %d centers",
			ErrInvalidInput, n, len(st.Origins), len(st.Positions), st.NCenters)
	}
	for _, origin := range st.Origins {
		if origin < 0 || origin >= st.NCenters {
			return nil, fmt.Errorf("%w: origin %d out of range", ErrInvalidInput, origin)
		}
	}

	f := &Frozen{
		layer:   newLayer(NameFrozen, nil, st.MaxOrder, o),
		source:  st.Source,
		current: s.Clone(),
		lattice: lat,
	}
	f.strict = st.Strict
	f.centerPair = st.CenterPair
	f.atoms = &atomTable{
		dim:       s.Dim,
		nCenters:  st.NCenters,
		positions: append([]float64(nil), st.Positions...),
		types:     append([]int(nil), st.Types...),
		origins:   append([]int(nil), st.Origins...),
	}

	count := n
	f.own(1).FillSequence(count)
	for k, se := range st.Extensions {
		for _, tag := range se.Tags {
			if tag < 0 || tag >= n {
				return nil, fmt.Errorf("%w: tag %d out of range", ErrInvalidInput, tag)
			}
		}
		e := &f.ext[k]
		e.counts = append([]int(nil), se.Counts...)
		e.tags = append([]int(nil), se.Tags...)
		e.close()
		count = len(e.tags)
		f.own(k + 2).FillSequence(count)
	}
	if err := f.check(); err != nil {
		return nil, err
	}

	f.needUpdate = false
	f.nUpdate = 1
	return f, nil
}

// Source returns the name of the layer the state was captured from.
func (f *Frozen) Source() string { return f.source }

// Structure implements Manager.
func (f *Frozen) Structure() *structure.AtomicStructure { return f.current }

// Lattice implements Manager.
func (f *Frozen) Lattice() *structure.Lattice { return f.lattice }

// Update accepts only nil or the frozen structure itself. It builds the
// adaptors stacked on f that are stale.
func (f *Frozen) Update(s *structure.AtomicStructure) error {
	if s != nil && !s.Equal(f.current) {
		return fmt.Errorf("%w: %s holds a fixed structure", ErrReadOnly, f.name)
	}
	return f.updateSelf(false, func() error { return nil })
}
