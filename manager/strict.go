package manager

import (
	"fmt"
	"math"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/neighborhood/cluster"
	"github.com/hupe1980/neighborhood/distance"
)

// NameStrict is the registered name of the cutoff filter.
const NameStrict = "AdaptorStrict"

// cutoffTol is the slack allowed when comparing a strict cutoff against the
// cutoff of a neighbour list beneath it.
const cutoffTol = 1e-10

// Strict keeps the pairs of the lower layer whose distance is at most the
// cutoff, in the lower layer's order. Distances and unit direction vectors
// of the retained pairs are stored alongside.
//
// Options:
//
//	cutoff  required, > 0, at most the cutoff of any neighbour list beneath
type Strict struct {
	layer
	cutoff     float64
	distances  []float64
	directions []float64
	retained   *roaring.Bitmap
}

// NewStrict stacks a cutoff filter on lower, which must be of order 2.
func NewStrict(lower Manager, hypers Hypers, optFns ...Option) (*Strict, error) {
	o := applyOptions(optFns)
	if err := requireLower(NameStrict, lower, 2, 2); err != nil {
		return nil, reject(o, NameStrict, err)
	}
	rc, err := hypers.cutoff(NameStrict, "cutoff")
	if err != nil {
		return nil, reject(o, NameStrict, err)
	}
	if below, ok := searchCutoff(lower); ok && rc > below+cutoffTol {
		err := &ConfigError{
			Adaptor: NameStrict,
			Option:  "cutoff",
			Reason:  fmt.Sprintf("%g exceeds the cutoff %g of the layers beneath", rc, below),
		}
		return nil, reject(o, NameStrict, err)
	}

	s := &Strict{
		layer:    newLayer(NameStrict, lower, 2, o),
		cutoff:   rc,
		retained: roaring.New(),
	}
	s.strict = true
	s.centerPair = lower.HasCenterPair()
	lower.Register(s)
	return s, nil
}

// searchCutoff returns the cutoff of the closest layer beneath m that has
// one.
func searchCutoff(m Manager) (float64, bool) {
	for ; m != nil; m = m.Lower() {
		if c, ok := m.(interface{ Cutoff() float64 }); ok {
			return c.Cutoff(), true
		}
	}
	return 0, false
}

// Cutoff returns the filter radius.
func (s *Strict) Cutoff() float64 { return s.cutoff }

// Distance returns the length of a pair.
func (s *Strict) Distance(pair cluster.Ref) float64 {
	return s.distances[pair.Index(s.Layer(2))]
}

// Direction returns the unit vector from the center of a pair to its
// neighbour, or the zero vector for a self pair. The slice aliases internal
// storage and must not be modified.
func (s *Strict) Direction(pair cluster.Ref) []float64 {
	dim := s.Dim()
	i := pair.Index(s.Layer(2))
	return s.directions[i*dim : (i+1)*dim : (i+1)*dim]
}

// Distances returns the pair lengths indexed by pair index at this layer.
func (s *Strict) Distances() []float64 { return s.distances }

// Retained returns the lower-layer indices of the kept pairs. The bitmap
// must not be modified.
func (s *Strict) Retained() *roaring.Bitmap { return s.retained }

// UpdateSelf implements Adaptor.
func (s *Strict) UpdateSelf(changed bool) error {
	return s.updateSelf(changed, s.rebuild)
}

func (s *Strict) rebuild() error {
	low := s.lower
	dim := low.Dim()
	lowPairs := low.Indices(2)
	rc2 := s.cutoff * s.cutoff

	s.inherit(1)
	pairs := s.stacked(2, lowPairs.Layers()+1)
	e := &s.ext[0]
	e.reset()
	s.distances = s.distances[:0]
	s.directions = s.directions[:0]
	s.retained.Clear()

	vec := make([]float64, dim)
	for center := range low.SizeWithGhosts() {
		xc := low.Position(center)
		off := low.ExtensionOffset(1, center)
		kept := 0
		for j, tag := range low.ExtensionTags(1, center) {
			distance.Sub(vec, low.Position(tag), xc)
			d2 := distance.Dot(vec, vec)
			if d2 > rc2 {
				continue
			}
			distance.DirectionInPlace(vec)
			e.tags = append(e.tags, tag)
			s.distances = append(s.distances, math.Sqrt(d2))
			s.directions = append(s.directions, vec...)
			pairs.Append(lowPairs.Row(off + j))
			s.retained.Add(uint32(off + j))
			kept++
		}
		e.counts = append(e.counts, kept)
	}
	e.close()
	return nil
}
