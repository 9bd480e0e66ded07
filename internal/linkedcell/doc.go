// Package linkedcell implements the linked-cell neighbour search used by the
// full neighbour-list adaptor.
//
// Space is partitioned into cubic bins of edge length equal to the cutoff.
// Each bin keeps a singly linked list of the points inside it (Heads/Next),
// so insertion is O(1) and a bin's content is read without allocation. Two
// points closer than the cutoff are always in the same bin or in adjacent
// bins, so the candidates of a point are the contents of the 3^dim bins of
// its stencil.
//
// Build adds periodic images (ghosts) of the real atoms in a margin of one
// cutoff around the structure and keeps one further, empty layer of bins so
// the stencil of every real atom and every ghost lies inside the mesh.
package linkedcell
