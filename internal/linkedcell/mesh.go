package linkedcell

import (
	"fmt"
	"math"
)

const tail = -1

// Mesh is a regular grid of cubic bins with linked-list occupancy.
type Mesh struct {
	dim     int
	width   float64
	origin  []float64
	nbins   []int
	strides []int

	// Grid-sized.
	heads []int
	// Data-sized.
	next []int
}

// NewMesh creates a mesh of cubic bins of edge width covering at least
// [lo, hi) in every direction. capacity is a hint for the number of points.
func NewMesh(lo, hi []float64, width float64, capacity int) (*Mesh, error) {
	return newMesh(lo, hi, width, capacity, maxBins)
}

func newMesh(lo, hi []float64, width float64, capacity, limit int) (*Mesh, error) {
	dim := len(lo)
	m := &Mesh{
		dim:     dim,
		width:   width,
		origin:  append([]float64(nil), lo...),
		nbins:   make([]int, dim),
		strides: make([]int, dim),
		next:    make([]int, 0, capacity),
	}

	total := 1
	for d := dim - 1; d >= 0; d-- {
		// Checked as float so huge ratios cannot wrap on conversion.
		ratio := math.Ceil((hi[d] - lo[d]) / width)
		if !(ratio <= float64(limit)) {
			return nil, fmt.Errorf("%w: more than %d bins", ErrMeshTooLarge, limit)
		}
		n := max(int(ratio), 1)
		m.nbins[d] = n
		m.strides[d] = total
		total *= n
		if total > limit {
			return nil, fmt.Errorf("%w: more than %d bins", ErrMeshTooLarge, limit)
		}
	}

	m.heads = make([]int, total)
	for i := range m.heads {
		m.heads[i] = tail
	}
	return m, nil
}

// Bins returns the number of bins per direction.
func (m *Mesh) Bins() []int { return m.nbins }

// TotalBins returns the number of bins.
func (m *Mesh) TotalBins() int { return len(m.heads) }

// Len returns the number of inserted points.
func (m *Mesh) Len() int { return len(m.next) }

// coords writes the per-direction bin coordinates of x into dst.
// Returns false if x lies outside the mesh.
func (m *Mesh) coords(dst []int, x []float64) bool {
	for d := range m.dim {
		c := int(math.Floor((x[d] - m.origin[d]) / m.width))
		if c < 0 || c >= m.nbins[d] {
			return false
		}
		dst[d] = c
	}
	return true
}

// Insert adds a point and returns its id. Ids are assigned sequentially
// from zero. Returns false if x lies outside the mesh.
func (m *Mesh) Insert(x []float64) (int, bool) {
	var c [maxDim]int
	if !m.coords(c[:m.dim], x) {
		return tail, false
	}
	idx := 0
	for d := range m.dim {
		idx += c[d] * m.strides[d]
	}
	id := len(m.next)
	m.next = append(m.next, m.heads[idx])
	m.heads[idx] = id
	return id, true
}

// Stencil appends to dst the ids of all points in the bin containing x and
// in its 3^dim-1 adjacent bins. Bins outside the mesh are skipped.
func (m *Mesh) Stencil(dst []int, x []float64) ([]int, bool) {
	var c [maxDim]int
	if !m.coords(c[:m.dim], x) {
		return dst, false
	}

	var off [maxDim]int
	for d := range m.dim {
		off[d] = -1
	}
	for {
		idx, inside := 0, true
		for d := range m.dim {
			b := c[d] + off[d]
			if b < 0 || b >= m.nbins[d] {
				inside = false
				break
			}
			idx += b * m.strides[d]
		}
		if inside {
			for id := m.heads[idx]; id != tail; id = m.next[id] {
				dst = append(dst, id)
			}
		}

		// Odometer over {-1,0,1}^dim, last direction fastest.
		d := m.dim - 1
		for d >= 0 {
			off[d]++
			if off[d] <= 1 {
				break
			}
			off[d] = -1
			d--
		}
		if d < 0 {
			return dst, true
		}
	}
}
