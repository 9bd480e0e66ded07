package manager

import (
	"fmt"
	"iter"

	"github.com/hupe1980/neighborhood/cluster"
)

// Atoms iterates over the centers of m in tag order.
func Atoms(m Manager) iter.Seq[cluster.Ref] {
	return atomRefs(m, m.Size())
}

// AtomsWithGhosts iterates over the centers and then the ghosts of m.
func AtomsWithGhosts(m Manager) iter.Seq[cluster.Ref] {
	return atomRefs(m, m.SizeWithGhosts())
}

func atomRefs(m Manager, n int) iter.Seq[cluster.Ref] {
	return func(yield func(cluster.Ref) bool) {
		ix := m.Indices(1)
		for tag := range n {
			if !yield(cluster.NewRef([]int{tag}, ix.Row(tag))) {
				return
			}
		}
	}
}

// Extensions iterates over the clusters of order c.Order()+1 that extend c
// at layer m. c must come from m or from a manager stacked above m without
// restarting the numbering of c's order.
func Extensions(m Manager, c cluster.Ref) iter.Seq[cluster.Ref] {
	return func(yield func(cluster.Ref) bool) {
		order := c.Order()
		i := c.Index(m.Layer(order))
		off := m.ExtensionOffset(order, i)
		next := m.Indices(order + 1)
		for j, tag := range m.ExtensionTags(order, i) {
			tags := make([]int, order+1)
			copy(tags, c.Tags())
			tags[order] = tag
			if !yield(cluster.NewRef(tags, next.Row(off+j))) {
				return
			}
		}
	}
}

// Clusters iterates over every cluster of the given order in index order.
// Order 1 includes ghosts.
func Clusters(m Manager, order int) iter.Seq[cluster.Ref] {
	return func(yield func(cluster.Ref) bool) {
		ix := m.Indices(order)
		i := 0
		walk(m, order, func(tags []int) bool {
			ok := yield(cluster.NewRef(append([]int(nil), tags...), ix.Row(i)))
			i++
			return ok
		})
	}
}

// walk visits the tags of every cluster of order in index order. The slice
// passed to fn is reused between calls.
func walk(m Manager, order int, fn func(tags []int) bool) {
	tags := make([]int, order)
	var visit func(k, i int) bool
	visit = func(k, i int) bool {
		if k == order {
			return fn(tags)
		}
		off := m.ExtensionOffset(k, i)
		for j, tag := range m.ExtensionTags(k, i) {
			tags[k] = tag
			if !visit(k+1, off+j) {
				return false
			}
		}
		return true
	}
	for tag := range m.SizeWithGhosts() {
		tags[0] = tag
		if !visit(1, tag) {
			return
		}
	}
}

// Offset returns the index at layer m of the cluster reached by following
// counters: counters[0] is an order-1 index, and counters[k] selects the
// k-th extension at the next order. The result is an index of order
// len(counters).
func Offset(m Manager, counters ...int) int {
	if len(counters) == 0 {
		panic("manager: offset needs at least one counter")
	}
	if len(counters) > m.MaxOrder() {
		panic(fmt.Sprintf("manager: %s has no clusters of order %d", m.Name(), len(counters)))
	}
	i := counters[0]
	for k, c := range counters[1:] {
		i = m.ExtensionOffset(k+1, i) + c
	}
	return i
}
