package manager

import (
	"github.com/hupe1980/neighborhood/kvec"
	"github.com/hupe1980/neighborhood/structure"
)

// NameKspace is the registered name of the reciprocal-space adaptor.
const NameKspace = "AdaptorKspace"

// Kspace pairs every center with every center, itself included, as needed
// by reciprocal-space sums over a periodic crystal. With the kcut option
// it also holds the half-lattice k-vectors of the reciprocal cell up to
// that norm.
//
// Options:
//
//	kcut  optional, > 0; requires a three-dimensional structure
type Kspace struct {
	layer
	kcut     float64
	kvectors *kvec.Set
}

// NewKspace stacks the k-space adaptor on lower, which must be of order 1.
func NewKspace(lower Manager, hypers Hypers, optFns ...Option) (*Kspace, error) {
	o := applyOptions(optFns)
	if err := requireLower(NameKspace, lower, 1, 1); err != nil {
		return nil, reject(o, NameKspace, err)
	}
	var kcut float64
	if _, ok := hypers["kcut"]; ok {
		v, err := hypers.cutoff(NameKspace, "kcut")
		if err != nil {
			return nil, reject(o, NameKspace, err)
		}
		kcut = v
	}

	ks := &Kspace{layer: newLayer(NameKspace, lower, 2, o), kcut: kcut}
	ks.centerPair = true
	lower.Register(ks)
	return ks, nil
}

// KVectors returns the k-vectors of the last rebuild, nil without kcut.
func (ks *Kspace) KVectors() *kvec.Set { return ks.kvectors }

// UpdateSelf implements Adaptor.
func (ks *Kspace) UpdateSelf(changed bool) error {
	return ks.updateSelf(changed, ks.rebuild)
}

func (ks *Kspace) rebuild() error {
	low := ks.lower
	s := low.Structure()
	if !s.IsFullyPeriodic() {
		return &GeometryError{Adaptor: ks.name, Reason: "structure is not periodic in every direction"}
	}
	if low.SizeWithGhosts() != low.Size() {
		return &GeometryError{Adaptor: ks.name, Reason: "lower manager has ghosts"}
	}

	n := low.Size()
	e := &ks.ext[0]
	e.reset()
	for range n {
		for tag := range n {
			e.tags = append(e.tags, tag)
		}
		e.counts = append(e.counts, n)
	}
	e.close()
	ks.own(1).FillSequence(n)
	ks.own(2).FillSequence(len(e.tags))

	ks.kvectors = nil
	if ks.kcut > 0 {
		if s.Dim != structure.MaxDim {
			return &GeometryError{Adaptor: ks.name, Reason: "k-vectors need a three-dimensional cell"}
		}
		basis, err := kvec.ReciprocalBasis(s.Cell)
		if err != nil {
			return &GeometryError{Adaptor: ks.name, Reason: "reciprocal basis", cause: err}
		}
		set, err := kvec.Precompute(basis, ks.kcut)
		if err != nil {
			return &GeometryError{Adaptor: ks.name, Reason: "k-vector generation", cause: err}
		}
		ks.kvectors = set
	}
	return nil
}
