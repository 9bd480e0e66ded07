// Package testutil provides testing utilities for neighborhood.
//
// This package is intended for use in tests and benchmarks only.
// It provides seeded random structures and a brute-force periodic pair
// search used as ground truth for the linked-cell neighbour lists.
//
// # Random Structures
//
//	rng := testutil.NewRNG(seed)
//	s := rng.Structure(32, cell, []bool{true, true, false}, []int{1, 8})
//
// # Exact Pairs (Ground Truth)
//
//	pairs, _ := testutil.BruteForcePairs(s, cutoff)
//	for _, p := range pairs[i] { ... }
package testutil
