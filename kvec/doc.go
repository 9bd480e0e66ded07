// Package kvec enumerates reciprocal-lattice vectors inside a cutoff sphere.
//
// Fourier-space methods sum over lattice points k = n1*b1 + n2*b2 + n3*b3
// with |k| <= kcut. Because contributions of k and -k are related, only one
// representative of each antipodal pair is needed. Generate returns such a
// half lattice, excluding the origin, by splitting the search box into three
// disjoint regions:
//
//	(a) n1 = 0, n2 = 0, n3 > 0
//	(b) n1 = 0, n2 > 0, -n3max <= n3 <= n3max
//	(c) n1 > 0, -n2max <= n2 <= n2max, -n3max <= n3 <= n3max
//
// Together with their negations these regions tile the search box minus the
// origin exactly once. Within a region the Cartesian vector is advanced by
// one basis vector per inner step instead of being recomputed.
//
// # Usage
//
//	basis, _ := kvec.ReciprocalBasis(cell)
//	set, _ := kvec.Precompute(basis, kcut)
//	for i := range set.Len() {
//	    k, norm := set.Vector(i), set.Norm(i)
//	}
package kvec
