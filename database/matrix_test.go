package database

import (
	"context"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/kshimauchi/elki/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeMatrixFile(t *testing.T, rows [][]float32) string {
	t.Helper()
	var buf []byte
	for _, row := range rows {
		for _, v := range row {
			buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(v))
		}
	}
	path := filepath.Join(t.TempDir(), "matrix.f32")
	require.NoError(t, os.WriteFile(path, buf, 0o644))
	return path
}

func TestOpenMatrix(t *testing.T) {
	path := writeMatrixFile(t, [][]float32{{0, 0}, {1, 0}, {10, 10}})

	m, err := OpenMatrix(path, WithDimension(2))
	require.NoError(t, err)
	defer m.Close()

	assert.Equal(t, 3, m.Size())

	v, ok := m.Vector(2)
	require.True(t, ok)
	assert.Equal(t, []float32{10, 10}, v)
	_, ok = m.Vector(3)
	assert.False(t, ok)
}

func TestOpenMatrix_BadSize(t *testing.T) {
	path := writeMatrixFile(t, [][]float32{{1, 2, 3}})

	_, err := OpenMatrix(path, WithDimension(2))
	assert.Error(t, err, "12 bytes is not a multiple of 8")
}

func TestMatrix_RangeQuery(t *testing.T) {
	ctx := context.Background()
	path := writeMatrixFile(t, [][]float32{{0, 0}, {1, 0}, {10, 10}})

	m, err := OpenMatrix(path, WithDimension(2))
	require.NoError(t, err)
	defer m.Close()

	got, err := m.RangeQuery(ctx, 0, 1)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, model.ObjectID(0), got[0].ID)
	assert.Equal(t, model.ObjectID(1), got[1].ID)

	_, err = m.RangeQuery(ctx, 42, 1)
	var nf *ErrObjectNotFound
	assert.ErrorAs(t, err, &nf)
}

func TestMatrix_MatchesMemory(t *testing.T) {
	ctx := context.Background()
	rows := [][]float32{{0, 0}, {0.5, 0.5}, {1, 1}, {8, 8}, {8.5, 8}}
	path := writeMatrixFile(t, rows)

	matrix, err := OpenMatrix(path, WithDimension(2))
	require.NoError(t, err)
	defer matrix.Close()

	mem, err := NewMemory(WithDimension(2))
	require.NoError(t, err)
	_, err = mem.BatchInsert(ctx, rows)
	require.NoError(t, err)

	for id := range matrix.All() {
		fromMatrix, err := matrix.RangeQuery(ctx, id, 2)
		require.NoError(t, err)
		fromMemory, err := mem.RangeQuery(ctx, id, 2)
		require.NoError(t, err)
		assert.Equal(t, fromMemory, fromMatrix, "id %d", id)
	}
}
