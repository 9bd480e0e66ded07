// Package cluster provides the index bookkeeping shared by every layer of a
// structure-manager stack.
//
// A cluster of order k is an ordered tuple of k atom tags: atoms (k=1),
// pairs (k=2), triplets (k=3). Every layer numbers its clusters densely in
// iteration order. Because adaptors may filter or augment the clusters of the
// layer beneath, the same pair can have different indices at different
// layers. An Indices table records, per cluster, its index at each layer so
// per-layer data can be addressed in O(1) from any level of the stack.
//
// Offset tables are prefix sums over extension counts and give the first
// position of a cluster's extensions in a flattened neighbour-tag array:
//
//	offsets := cluster.BuildOffsets(nbNeigh)
//	first := offsets[i]             // first neighbour of atom i
//	count := offsets[i+1] - first   // == nbNeigh[i]
package cluster
