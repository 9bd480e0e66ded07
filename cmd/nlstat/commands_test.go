package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/neighborhood/blobstore"
	"github.com/hupe1980/neighborhood/manager"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestLoadConfig(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		cfg, err := loadConfig()
		require.NoError(t, err)
		assert.Equal(t, "warn", cfg.LogLevel)
		assert.Equal(t, "text", cfg.LogFormat)
		assert.Equal(t, "none", cfg.Compression)
	})

	t.Run("Environment", func(t *testing.T) {
		t.Setenv("NLSTAT_LOG_LEVEL", "debug")
		t.Setenv("NLSTAT_LOG_FORMAT", "json")
		t.Setenv("NLSTAT_COMPRESSION", "zstd")

		cfg, err := loadConfig()
		require.NoError(t, err)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "json", cfg.LogFormat)

		_, err = cfg.logger()
		require.NoError(t, err)
		c, err := cfg.compression()
		require.NoError(t, err)
		assert.Equal(t, "zstd", c.String())
	})

	t.Run("Invalid", func(t *testing.T) {
		_, err := Config{LogLevel: "loud", LogFormat: "text"}.logger()
		assert.Error(t, err)
		_, err = Config{LogLevel: "info", LogFormat: "yaml"}.logger()
		assert.Error(t, err)
		_, err = Config{Compression: "gzip"}.compression()
		assert.Error(t, err)
	})
}

func TestCrystal(t *testing.T) {
	out, err := execute(t, "crystal", "--lattice", "sc", "--reps", "2,2,2", "--cutoff", "1.1")
	require.NoError(t, err)
	assert.Contains(t, out, "centers:     8")
	assert.Contains(t, out, "pairs:       48")
	assert.Contains(t, out, "shells:")
	assert.Contains(t, out, "1.000000     48")
}

func TestCrystal_Triplets(t *testing.T) {
	f := &crystalFlags{lattice: "sc", a: 1, reps: []int{1, 1, 1}, species: 1, cutoff: 1.5, strict: true, triplets: true}
	s, err := f.structure()
	require.NoError(t, err)
	nb, err := f.builder().Build()
	require.NoError(t, err)
	require.NoError(t, nb.Update(t.Context(), s))

	stats, err := computeStats(nb)
	require.NoError(t, err)
	assert.Equal(t, []string{manager.NameCenters, manager.NameNeighbourList, manager.NameStrict, manager.NameMaxOrder}, stats.Layers)
	assert.Equal(t, 1, stats.Centers)
	assert.Equal(t, 18, stats.Pairs)
	assert.Equal(t, 18, stats.MinNeighbours)
	assert.Equal(t, 18, stats.MaxNeighbours)
	// Every unordered pair of the 18 neighbours.
	assert.Equal(t, 153, stats.Triplets)
	assert.Equal(t, []Shell{{Distance: 1, Count: 6}, {Distance: 1.4142135623730951, Count: 12}}, roundShells(stats.Shells))
}

func roundShells(in []Shell) []Shell {
	out := make([]Shell, len(in))
	for i, s := range in {
		switch {
		case s.Distance > 0.999 && s.Distance < 1.001:
			s.Distance = 1
		case s.Distance > 1.414 && s.Distance < 1.415:
			s.Distance = 1.4142135623730951
		}
		out[i] = s
	}
	return out
}

func TestCrystal_CenterPair(t *testing.T) {
	f := &crystalFlags{lattice: "bcc", a: 1, reps: []int{2, 2, 2}, species: 26, cutoff: 0.9, strict: true, centerPair: true}
	s, err := f.structure()
	require.NoError(t, err)
	nb, err := f.builder().Build()
	require.NoError(t, err)
	require.NoError(t, nb.Update(t.Context(), s))

	stats, err := computeStats(nb)
	require.NoError(t, err)
	assert.Equal(t, 16, stats.Centers)
	assert.Equal(t, 16*9, stats.Pairs)
	assert.InDelta(t, 9.0, stats.MeanNeighbours, 1e-12)
	assert.Equal(t, -1, stats.Triplets)
	require.Len(t, stats.Shells, 2)
	assert.Equal(t, 16, stats.Shells[0].Count)
	assert.Equal(t, 0.0, stats.Shells[0].Distance)
}

func TestCrystal_Errors(t *testing.T) {
	_, err := execute(t, "crystal", "--lattice", "hcp")
	assert.ErrorContains(t, err, "unknown lattice")

	_, err = execute(t, "crystal", "--reps", "1,2")
	assert.ErrorContains(t, err, "--reps")

	_, err = execute(t, "crystal", "--cutoff=-1")
	assert.ErrorIs(t, err, manager.ErrConfiguration)

	_, err = execute(t, "crystal", "--log-format", "yaml")
	assert.ErrorContains(t, err, "log format")

	t.Setenv("NLSTAT_COMPRESSION", "gzip")
	_, err = execute(t, "crystal")
	assert.Error(t, err)
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	snap := filepath.Join(dir, "sc.snap")

	_, err := execute(t, "crystal", "--reps", "2,2,2", "--cutoff", "1.1", "--save", snap, "--compression", "lz4")
	require.NoError(t, err)

	out, err := execute(t, "load", snap)
	require.NoError(t, err)
	assert.Contains(t, out, "pairs:       48")
	assert.Contains(t, out, manager.NameFrozen)
	assert.NotContains(t, out, "shells:")

	_, err = execute(t, "load")
	assert.Error(t, err)
	_, err = execute(t, "load", filepath.Join(dir, "missing.snap"))
	assert.Error(t, err)
}

func TestOpenStore(t *testing.T) {
	cfg, err := loadConfig()
	require.NoError(t, err)

	dir := t.TempDir()
	store, name, err := cfg.openStore(context.Background(), filepath.Join(dir, "a.nbh"))
	require.NoError(t, err)
	assert.IsType(t, &blobstore.LocalStore{}, store)
	assert.Equal(t, "a.nbh", name)

	_, _, err = cfg.openStore(context.Background(), "s3://bucket")
	assert.ErrorContains(t, err, "bucket/key")
	_, _, err = cfg.openStore(context.Background(), "ftp://bucket/key")
	assert.ErrorContains(t, err, "unknown scheme")
}

func TestAdaptors(t *testing.T) {
	out, err := execute(t, "adaptors")
	require.NoError(t, err)
	names := strings.Fields(out)
	assert.Contains(t, names, manager.NameNeighbourList)
	assert.Contains(t, names, manager.NameStrict)
	assert.Len(t, names, 5)
}
