// Package manager implements structure managers: a stack of layers that
// turns an atomic structure into neighbour lists.
//
// The base of every stack is Centers (or a Frozen snapshot). Adaptors are
// stacked on top, each reading the layer beneath and exposing the same
// Manager interface:
//
//	centers := manager.NewCenters()
//	nl, _ := manager.NewNeighbourList(centers, manager.Hypers{"cutoff": 3.5})
//	strict, _ := manager.NewStrict(nl, manager.Hypers{"cutoff": 3.5})
//
//	if err := strict.Update(s); err != nil { ... }
//	for atom := range manager.Atoms(strict) {
//		for pair := range manager.Extensions(strict, atom) {
//			d := strict.Distance(pair)
//			...
//		}
//	}
//
// # Update Protocol
//
// Update on any layer hands the structure to the base. The base compares
// it with the previous one and rebuilds if it changed, then every
// registered layer rebuilds in stack order if the layer beneath rebuilt or
// if it was invalidated. Updating with an identical structure is a no-op.
//
// # Cluster Numbering
//
// Every layer numbers its clusters of each order densely. A layer that
// keeps the clusters of an order from the layer beneath (possibly
// filtered) records their lower index next to its own, so a cluster.Ref
// obtained from a layer can address data of the layers beneath it. A layer
// that creates new clusters of an order starts that order's numbering
// over.
//
// Managers are not safe for concurrent use.
package manager
