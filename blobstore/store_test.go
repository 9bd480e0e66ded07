package blobstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ifs "github.com/hupe1980/neighborhood/internal/fs"
)

func testStores(t *testing.T) map[string]Store {
	return map[string]Store{
		"Memory": NewMemoryStore(),
		"Local":  NewLocalStore(t.TempDir()),
	}
}

func TestStore_Lifecycle(t *testing.T) {
	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			data := []byte("snapshot bytes")
			require.NoError(t, store.Put(ctx, "runs/a.nbh", data))
			require.NoError(t, store.Put(ctx, "runs/b.nbh", []byte("other")))
			require.NoError(t, store.Put(ctx, "c.nbh", []byte("top")))

			got, err := store.Get(ctx, "runs/a.nbh")
			require.NoError(t, err)
			assert.Equal(t, data, got)

			// returned data must not alias the store
			got[0] = 'X'
			again, err := store.Get(ctx, "runs/a.nbh")
			require.NoError(t, err)
			assert.Equal(t, data, again)

			names, err := store.List(ctx, "runs/")
			require.NoError(t, err)
			assert.Equal(t, []string{"runs/a.nbh", "runs/b.nbh"}, names)

			all, err := store.List(ctx, "")
			require.NoError(t, err)
			assert.Equal(t, []string{"c.nbh", "runs/a.nbh", "runs/b.nbh"}, all)

			require.NoError(t, store.Put(ctx, "c.nbh", []byte("replaced")))
			got, err = store.Get(ctx, "c.nbh")
			require.NoError(t, err)
			assert.Equal(t, "replaced", string(got))

			require.NoError(t, store.Delete(ctx, "runs/a.nbh"))
			require.NoError(t, store.Delete(ctx, "runs/a.nbh"))

			_, err = store.Get(ctx, "runs/a.nbh")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestStore_Cancelled(t *testing.T) {
	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			assert.ErrorIs(t, store.Put(ctx, "x", []byte("x")), context.Canceled)
			_, err := store.Get(ctx, "x")
			assert.ErrorIs(t, err, context.Canceled)
		})
	}
}

func TestLocalStore_SkipsTemporaryFiles(t *testing.T) {
	dir := t.TempDir()
	store := NewLocalStore(dir)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "a.nbh", []byte("a")))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.nbh.tmp"), []byte("partial"), 0o644))

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.nbh"}, names)
}

func TestLocalStore_MissingRoot(t *testing.T) {
	store := NewLocalStore(filepath.Join(t.TempDir(), "missing"))

	names, err := store.List(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestLocalStore_FailedPutKeepsPrevious(t *testing.T) {
	ctx := context.Background()
	store := NewLocalStore(t.TempDir())
	require.NoError(t, store.Put(ctx, "a.nbh", []byte("first")))

	ffs := ifs.NewFaultyFS(nil)
	ffs.AddRule(".tmp", ifs.Fault{FailAfterBytes: -1, FailOnSync: true})
	store.fsys = ffs

	err := store.Put(ctx, "a.nbh", []byte("second"))
	require.ErrorIs(t, err, ifs.ErrInjected)

	got, err := store.Get(ctx, "a.nbh")
	require.NoError(t, err)
	assert.Equal(t, "first", string(got))

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.nbh"}, names)
}
