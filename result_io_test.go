package elki

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kshimauchi/elki/blobstore"
	"github.com/kshimauchi/elki/codec"
	"github.com/kshimauchi/elki/dbscan"
	"github.com/kshimauchi/elki/model"
)

func sampleResult() *dbscan.Result {
	return &dbscan.Result{
		Clusters: []dbscan.Cluster{
			{0, 1, 2},
			{5, 3, 4},
		},
		Noise: []model.ObjectID{6, 7},
	}
}

func TestSaveLoadResult(t *testing.T) {
	codecs := []codec.Codec{
		nil, // defaults to codec.Default
		codec.JSON{},
		codec.Gob{},
		codec.Zstd(codec.JSON{}),
		codec.LZ4(codec.Gob{}),
	}

	for _, c := range codecs {
		name := "default"
		if c != nil {
			name = c.Name()
		}
		t.Run(name, func(t *testing.T) {
			store := blobstore.NewMemoryStore()
			want := sampleResult()

			require.NoError(t, SaveResult(context.Background(), store, "run.result", want, c))

			got, err := LoadResult(context.Background(), store, "run.result")
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestLoadResult_NotFound(t *testing.T) {
	store := blobstore.NewMemoryStore()

	_, err := LoadResult(context.Background(), store, "missing")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}

func TestLoadResult_BadMagic(t *testing.T) {
	store := blobstore.NewMemoryStore()
	require.NoError(t, store.Put(context.Background(), "garbage", []byte("not a result blob")))

	_, err := LoadResult(context.Background(), store, "garbage")
	assert.ErrorContains(t, err, "not a clustering result")
}

func TestLoadResult_UnknownCodec(t *testing.T) {
	store := blobstore.NewMemoryStore()

	data := append([]byte(resultMagic), byte(len("bogus")))
	data = append(data, "bogus"...)
	data = append(data, '{', '}')
	require.NoError(t, store.Put(context.Background(), "odd", data))

	_, err := LoadResult(context.Background(), store, "odd")
	assert.ErrorContains(t, err, `unknown codec "bogus"`)
}

func TestLoadResult_TruncatedHeader(t *testing.T) {
	store := blobstore.NewMemoryStore()

	data := append([]byte(resultMagic), byte(200))
	data = append(data, "json"...)
	require.NoError(t, store.Put(context.Background(), "short", data))

	_, err := LoadResult(context.Background(), store, "short")
	assert.ErrorContains(t, err, "truncated header")
}
