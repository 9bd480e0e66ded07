// Command nlstat prints neighbour-list statistics for generated crystals
// and saved snapshots.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "nlstat:", err)
		os.Exit(1)
	}
}
