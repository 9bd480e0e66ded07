// Package neighborhood computes neighbour lists of atomic structures
// through a stack of structure managers.
//
// A stack starts at a base manager holding the atoms of one structure.
// Adaptors stacked on top each derive clusters from the layer beneath:
// the neighbour list finds candidate pairs with a linked-cell search, the
// strict adaptor keeps only pairs within its cutoff, the center
// contribution adaptor adds the self pair of every atom, the k-space
// adaptor pairs every atom with every other, and the max-order adaptor
// extends clusters to triplets and beyond.
//
// # Quick Start
//
//	nb, _ := neighborhood.NewBuilder().
//	    NeighbourList(3.5).
//	    Strict(3.5).
//	    Build()
//
//	s, _ := structure.FCC(3.6, [3]int{3, 3, 3}, 29)
//	_ = nb.Update(ctx, s)
//
//	for atom := range nb.Atoms() {
//	    fmt.Println(atom.Center(), nb.Neighbours(atom))
//	}
//
// # Layer Specifications
//
// Stacks can also be described as JSON:
//
//	[
//	  {"name": "AdaptorNeighbourList", "initialization_arguments": {"cutoff": 3.5}},
//	  {"name": "AdaptorStrict", "initialization_arguments": {"cutoff": 3.5}}
//	]
//
// and built with NewFromJSON.
//
// # Updates
//
// Update hands a structure to the base manager. Layers rebuild only when
// the structure differs from the previous one or a layer was invalidated.
//
// # Snapshots
//
// Save writes the topmost layer to a checksummed, optionally compressed
// file. Load restores it as a read-only manager that further adaptors can
// be stacked on. SaveTo and LoadFrom do the same through a blobstore.Store
// (local directory, S3, MinIO).
package neighborhood
