package cluster

import "fmt"

// Indices holds the cluster indices of one order at one layer of a stack.
//
// Rows are clusters in the layer's iteration order. Columns are the layers
// of the stack for this order, starting at the layer where the numbering of
// this order began. The last column is the layer's own numbering and always
// equals the row number.
//
// Memory layout is row-major: data[row*layers + layer].
type Indices struct {
	layers int
	data   []int
}

// NewIndices creates an empty table with the given number of layers.
func NewIndices(layers int) *Indices {
	if layers < 1 {
		panic(fmt.Sprintf("cluster: indices need at least one layer, got %d", layers))
	}
	return &Indices{layers: layers}
}

// Layers returns the number of columns.
func (ix *Indices) Layers() int { return ix.layers }

// Len returns the number of clusters.
func (ix *Indices) Len() int { return len(ix.data) / ix.layers }

// Reset drops all rows but keeps the allocation.
func (ix *Indices) Reset() { ix.data = ix.data[:0] }

// Grow reserves space for n additional rows.
func (ix *Indices) Grow(n int) {
	if need := len(ix.data) + n*ix.layers; need > cap(ix.data) {
		data := make([]int, len(ix.data), need)
		copy(data, ix.data)
		ix.data = data
	}
}

// Append adds a cluster whose indices at the lower layers are given by
// lower. The cluster's own index is the new row number.
// lower must have exactly Layers()-1 entries.
func (ix *Indices) Append(lower []int) {
	if len(lower) != ix.layers-1 {
		panic(fmt.Sprintf("cluster: expected %d lower indices, got %d", ix.layers-1, len(lower)))
	}
	row := ix.Len()
	ix.data = append(ix.data, lower...)
	ix.data = append(ix.data, row)
}

// FillSequence resets the table to n rows numbered 0..n-1. Only valid for
// tables with a single layer, i.e. where the numbering starts at this layer.
func (ix *Indices) FillSequence(n int) {
	if ix.layers != 1 {
		panic(fmt.Sprintf("cluster: fill sequence on a table with %d layers", ix.layers))
	}
	ix.Reset()
	ix.Grow(n)
	for i := range n {
		ix.data = append(ix.data, i)
	}
}

// Row returns the indices of cluster i at every layer.
// The returned slice aliases the table and must not be modified.
func (ix *Indices) Row(i int) []int {
	return ix.data[i*ix.layers : (i+1)*ix.layers : (i+1)*ix.layers]
}

// At returns the index of cluster i at the given layer.
func (ix *Indices) At(i, layer int) int {
	return ix.data[i*ix.layers+layer]
}

// Clone returns a deep copy.
func (ix *Indices) Clone() *Indices {
	data := make([]int, len(ix.data))
	copy(data, ix.data)
	return &Indices{layers: ix.layers, data: data}
}

// Validate checks that the own column is the row sequence.
func (ix *Indices) Validate() error {
	last := ix.layers - 1
	for i := range ix.Len() {
		if got := ix.At(i, last); got != i {
			return fmt.Errorf("%w: cluster %d has own index %d", ErrIndexMismatch, i, got)
		}
	}
	return nil
}
