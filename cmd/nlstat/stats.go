package main

import (
	"fmt"
	"io"
	"math"
	"slices"

	"github.com/hupe1980/neighborhood"
	"github.com/hupe1980/neighborhood/manager"
)

// shellTol merges pair distances into one shell.
const shellTol = 1e-6

// Shell is a group of pairs of equal length.
type Shell struct {
	Distance float64
	Count    int
}

// Stats summarizes the topmost layer of a stack.
type Stats struct {
	Layers         []string
	Centers        int
	Ghosts         int
	Pairs          int
	MinNeighbours  int
	MaxNeighbours  int
	MeanNeighbours float64
	// Triplets is -1 for stacks of order 2.
	Triplets int
	// Shells is empty for stacks without a strict layer.
	Shells []Shell
}

func computeStats(nb *neighborhood.Neighborhood) (Stats, error) {
	st := nb.Stack()
	top := st.Top()

	s := Stats{
		Layers:   []string{st.Base().Name()},
		Centers:  top.Size(),
		Ghosts:   top.SizeWithGhosts() - top.Size(),
		Triplets: -1,
	}
	for _, l := range st.Layers() {
		s.Layers = append(s.Layers, l.Name())
	}
	if top.MaxOrder() < 2 {
		return s, nil
	}

	pairs, err := top.ClusterCount(2)
	if err != nil {
		return Stats{}, err
	}
	s.Pairs = pairs

	s.MinNeighbours = math.MaxInt
	for atom := range nb.Atoms() {
		n := top.ClusterSize(atom)
		s.MinNeighbours = min(s.MinNeighbours, n)
		s.MaxNeighbours = max(s.MaxNeighbours, n)
	}
	if s.Centers == 0 {
		s.MinNeighbours = 0
	} else {
		s.MeanNeighbours = float64(s.Pairs) / float64(s.Centers)
	}

	if top.MaxOrder() >= 3 {
		if s.Triplets, err = top.ClusterCount(3); err != nil {
			return Stats{}, err
		}
	}

	if a, ok := st.Find(manager.NameStrict); ok {
		s.Shells = shells(a.(*manager.Strict).Distances())
	}
	return s, nil
}

func shells(distances []float64) []Shell {
	d := slices.Clone(distances)
	slices.Sort(d)

	var out []Shell
	for _, x := range d {
		if n := len(out); n > 0 && x-out[n-1].Distance < shellTol {
			out[n-1].Count++
			continue
		}
		out = append(out, Shell{Distance: x, Count: 1})
	}
	return out
}

func printStats(w io.Writer, s Stats) {
	fmt.Fprintf(w, "%-12s %v\n", "layers:", s.Layers)
	fmt.Fprintf(w, "%-12s %d\n", "centers:", s.Centers)
	fmt.Fprintf(w, "%-12s %d\n", "ghosts:", s.Ghosts)
	fmt.Fprintf(w, "%-12s %d\n", "pairs:", s.Pairs)
	fmt.Fprintf(w, "%-12s min %d, max %d, mean %.3f\n", "neighbours:", s.MinNeighbours, s.MaxNeighbours, s.MeanNeighbours)
	if s.Triplets >= 0 {
		fmt.Fprintf(w, "%-12s %d\n", "triplets:", s.Triplets)
	}
	if len(s.Shells) > 0 {
		fmt.Fprintln(w, "shells:")
		for _, sh := range s.Shells {
			fmt.Fprintf(w, "  %10.6f %6d\n", sh.Distance, sh.Count)
		}
	}
}
