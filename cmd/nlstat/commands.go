package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hupe1980/neighborhood"
	"github.com/hupe1980/neighborhood/stack"
	"github.com/hupe1980/neighborhood/structure"
)

type globalFlags struct {
	cfg       Config
	logLevel  string
	logFormat string
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}

	root := &cobra.Command{
		Use:           "nlstat",
		Short:         "Neighbour-list statistics for atomic structures",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = g.logLevel
			}
			if cmd.Flags().Changed("log-format") {
				cfg.LogFormat = g.logFormat
			}
			g.cfg = cfg
			return nil
		},
	}
	root.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "log level (debug, info, warn, error); default $NLSTAT_LOG_LEVEL")
	root.PersistentFlags().StringVar(&g.logFormat, "log-format", "", "log format (text, json); default $NLSTAT_LOG_FORMAT")

	root.AddCommand(newCrystalCmd(g), newLoadCmd(g), newAdaptorsCmd())
	return root
}

type crystalFlags struct {
	lattice     string
	a           float64
	reps        []int
	species     int
	cutoff      float64
	strict      bool
	centerPair  bool
	triplets    bool
	ghostNeighs bool
	save        string
	compression string
}

func newCrystalCmd(g *globalFlags) *cobra.Command {
	f := &crystalFlags{}
	cmd := &cobra.Command{
		Use:   "crystal",
		Short: "Build a cubic crystal and print the statistics of its neighbour list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCrystal(cmd, g, f)
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&f.lattice, "lattice", "sc", "lattice type (sc, bcc, fcc)")
	fl.Float64Var(&f.a, "a", 1, "lattice constant")
	fl.IntSliceVar(&f.reps, "reps", []int{1, 1, 1}, "repetitions of the conventional cell")
	fl.IntVar(&f.species, "species", 1, "species id of every atom")
	fl.Float64Var(&f.cutoff, "cutoff", 1.5, "neighbour cutoff")
	fl.BoolVar(&f.strict, "strict", true, "keep only pairs within the cutoff")
	fl.BoolVar(&f.centerPair, "center-pair", false, "add the self pair of every atom")
	fl.BoolVar(&f.triplets, "triplets", false, "extend pairs to triplets")
	fl.BoolVar(&f.ghostNeighs, "ghost-neighbours", false, "also list the neighbours of ghost atoms")
	fl.StringVar(&f.save, "save", "", "write a snapshot of the topmost layer (path, s3://bucket/key or minio://bucket/key)")
	fl.StringVar(&f.compression, "compression", "", "snapshot compression (none, lz4, zstd); default $NLSTAT_COMPRESSION")
	return cmd
}

func (f *crystalFlags) builder() neighborhood.Builder {
	b := neighborhood.NewBuilder()
	if f.ghostNeighs {
		b = b.NeighbourListWithGhosts(f.cutoff)
	} else {
		b = b.NeighbourList(f.cutoff)
	}
	if f.centerPair {
		b = b.CenterContribution()
	}
	if f.strict {
		b = b.Strict(f.cutoff)
	}
	if f.triplets {
		b = b.MaxOrder()
	}
	return b
}

func (f *crystalFlags) structure() (*structure.AtomicStructure, error) {
	if len(f.reps) != 3 {
		return nil, fmt.Errorf("--reps needs 3 values, got %d", len(f.reps))
	}
	reps := [3]int{f.reps[0], f.reps[1], f.reps[2]}
	switch strings.ToLower(f.lattice) {
	case "sc":
		return structure.SimpleCubic(f.a, reps, f.species)
	case "bcc":
		return structure.BCC(f.a, reps, f.species)
	case "fcc":
		return structure.FCC(f.a, reps, f.species)
	default:
		return nil, fmt.Errorf("unknown lattice %q", f.lattice)
	}
}

func runCrystal(cmd *cobra.Command, g *globalFlags, f *crystalFlags) error {
	logger, err := g.cfg.logger()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("compression") {
		g.cfg.Compression = f.compression
	}
	compression, err := g.cfg.compression()
	if err != nil {
		return err
	}

	s, err := f.structure()
	if err != nil {
		return err
	}
	nb, err := f.builder().
		Options(neighborhood.WithLogger(logger), neighborhood.WithCompression(compression)).
		Build()
	if err != nil {
		return err
	}
	if err := nb.Update(cmd.Context(), s); err != nil {
		return err
	}

	stats, err := computeStats(nb)
	if err != nil {
		return err
	}
	printStats(cmd.OutOrStdout(), stats)

	if f.save != "" {
		store, name, err := g.cfg.openStore(cmd.Context(), f.save)
		if err != nil {
			return err
		}
		return nb.SaveTo(cmd.Context(), store, name)
	}
	return nil
}

func newLoadCmd(g *globalFlags) *cobra.Command {
	var layersFile string
	cmd := &cobra.Command{
		Use:   "load LOCATION",
		Short: "Restore a snapshot and print the statistics of its neighbour list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := g.cfg.logger()
			if err != nil {
				return err
			}
			var layers []stack.Layer
			if layersFile != "" {
				data, err := os.ReadFile(layersFile)
				if err != nil {
					return err
				}
				if layers, err = stack.ParseLayers(data, nil); err != nil {
					return err
				}
			}

			store, name, err := g.cfg.openStore(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			nb, err := neighborhood.LoadFrom(cmd.Context(), store, name, layers, neighborhood.WithLogger(logger))
			if err != nil {
				return err
			}
			stats, err := computeStats(nb)
			if err != nil {
				return err
			}
			printStats(cmd.OutOrStdout(), stats)
			return nil
		},
	}
	cmd.Flags().StringVar(&layersFile, "layers", "", "JSON file with adaptors to stack on the snapshot")
	return cmd
}

func newAdaptorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "adaptors",
		Short: "List the registered adaptors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range stack.Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
