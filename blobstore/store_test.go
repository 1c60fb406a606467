package blobstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	_, err := s.Open(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Put(ctx, "results/a.json", []byte("alpha")))
	require.NoError(t, s.Put(ctx, "results/b.json", []byte("beta")))
	require.NoError(t, s.Put(ctx, "other/c.json", []byte("gamma")))

	b, err := s.Open(ctx, "results/a.json")
	require.NoError(t, err)
	data, err := ReadAll(b)
	require.NoError(t, err)
	assert.Equal(t, []byte("alpha"), data)
	assert.Equal(t, int64(5), b.Size())
	require.NoError(t, b.Close())

	// Overwrite.
	require.NoError(t, s.Put(ctx, "results/a.json", []byte("alpha2")))
	b, err = s.Open(ctx, "results/a.json")
	require.NoError(t, err)
	data, err = ReadAll(b)
	require.NoError(t, err)
	assert.Equal(t, []byte("alpha2"), data)
	require.NoError(t, b.Close())

	names, err := s.List(ctx, "results/")
	require.NoError(t, err)
	assert.Equal(t, []string{"results/a.json", "results/b.json"}, names)

	require.NoError(t, s.Delete(ctx, "results/a.json"))
	require.NoError(t, s.Delete(ctx, "results/a.json"), "delete is idempotent")
	_, err = s.Open(ctx, "results/a.json")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore(t *testing.T) {
	testStore(t, NewMemoryStore())
}

func TestLocalStore(t *testing.T) {
	s, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)
	testStore(t, s)
}

func TestLocalStore_ReadAt(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, s.Put(ctx, "blob", []byte("0123456789")))

	b, err := s.Open(ctx, "blob")
	require.NoError(t, err)
	defer b.Close()

	p := make([]byte, 4)
	n, err := b.ReadAt(p, 3)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, []byte("3456"), p)
}
