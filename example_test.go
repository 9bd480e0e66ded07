package neighborhood_test

import (
	"context"
	"fmt"

	"github.com/hupe1980/neighborhood"
	"github.com/hupe1980/neighborhood/structure"
)

func ExampleBuilder() {
	nb, err := neighborhood.NewBuilder().
		NeighbourList(1.5).
		Strict(1.5).
		Build()
	if err != nil {
		panic(err)
	}

	s, err := structure.SimpleCubic(1, [3]int{1, 1, 1}, 1)
	if err != nil {
		panic(err)
	}
	if err := nb.Update(context.Background(), s); err != nil {
		panic(err)
	}

	for atom := range nb.Atoms() {
		fmt.Println("atom", atom.Center(), "neighbours", len(nb.Neighbours(atom)))
	}
	// Output: atom 0 neighbours 18
}

func ExampleNewFromJSON() {
	spec := `[
	  {"name": "AdaptorNeighbourList", "initialization_arguments": {"cutoff": 0.9}},
	  {"name": "AdaptorStrict", "initialization_arguments": {"cutoff": 0.9}},
	  {"name": "AdaptorMaxOrder"}
	]`
	nb, err := neighborhood.NewFromJSON([]byte(spec))
	if err != nil {
		panic(err)
	}

	s, err := structure.BCC(1, [3]int{2, 2, 2}, 26)
	if err != nil {
		panic(err)
	}
	if err := nb.Update(context.Background(), s); err != nil {
		panic(err)
	}

	pairs, _ := nb.Manager().Lower().ClusterCount(2)
	fmt.Println("atoms:", nb.Manager().Size())
	fmt.Println("pairs:", pairs)
	// Output:
	// atoms: 16
	// pairs: 128
}
