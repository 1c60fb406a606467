package elki

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kshimauchi/elki/database"
	"github.com/kshimauchi/elki/dbscan"
)

// newTestDatabase builds a 2D database with two well-separated groups
// of three points each.
func newTestDatabase(t *testing.T) *database.Memory {
	t.Helper()

	db, err := database.NewMemory(database.WithDimension(2))
	require.NoError(t, err)

	vectors := [][]float32{
		{0, 0}, {0, 1}, {1, 0},
		{100, 100}, {100, 101}, {101, 100},
	}
	_, err = db.BatchInsert(context.Background(), vectors)
	require.NoError(t, err)

	return db
}

func TestCluster(t *testing.T) {
	db := newTestDatabase(t)

	result, err := Cluster(context.Background(), db, 2.0, 3)
	require.NoError(t, err)

	require.Len(t, result.Clusters, 2)
	assert.Empty(t, result.Noise)
	assert.Len(t, result.Clusters[0], 3)
	assert.Len(t, result.Clusters[1], 3)
}

func TestCluster_InvalidParams(t *testing.T) {
	db := newTestDatabase(t)

	_, err := Cluster(context.Background(), db, 2.0, 0)
	var minPtsErr *ErrInvalidMinPts
	require.ErrorAs(t, err, &minPtsErr)
	assert.Equal(t, 0, minPtsErr.MinPts)

	_, err = Cluster(context.Background(), db, -1.0, 3)
	var epsErr *ErrInvalidEpsilon
	require.ErrorAs(t, err, &epsErr)
	assert.Equal(t, float32(-1.0), epsErr.Epsilon)
}

func TestCluster_ProgressCallback(t *testing.T) {
	db := newTestDatabase(t)

	var snapshots []dbscan.Progress
	_, err := Cluster(context.Background(), db, 2.0, 3,
		WithProgress(func(p dbscan.Progress) {
			snapshots = append(snapshots, p)
		}),
	)
	require.NoError(t, err)
	require.NotEmpty(t, snapshots)

	for _, p := range snapshots {
		assert.Equal(t, 6, p.Total)
		assert.LessOrEqual(t, p.Processed, p.Total)
	}
}

func TestCluster_ProgressWithThrottledLogging(t *testing.T) {
	db := newTestDatabase(t)

	var calls int
	_, err := Cluster(context.Background(), db, 2.0, 3,
		WithLogger(NoopLogger()),
		WithProgressInterval(time.Millisecond),
		WithProgress(func(dbscan.Progress) { calls++ }),
	)
	require.NoError(t, err)
	assert.Positive(t, calls)
}

func TestClusterAll(t *testing.T) {
	jobs := []Job{
		{Name: "a", Database: newTestDatabase(t), Epsilon: 2.0, MinPts: 3},
		{Name: "b", Database: newTestDatabase(t), Epsilon: 2.0, MinPts: 3},
		{Name: "c", Database: newTestDatabase(t), Epsilon: 0.5, MinPts: 3},
	}

	results, err := ClusterAll(context.Background(), jobs, WithConcurrency(2))
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Len(t, results[0].Clusters, 2)
	assert.Len(t, results[1].Clusters, 2)

	// Radius too tight for job c: everything is noise.
	assert.Empty(t, results[2].Clusters)
	assert.Len(t, results[2].Noise, 6)
}

func TestClusterAll_InvalidJob(t *testing.T) {
	jobs := []Job{
		{Name: "ok", Database: newTestDatabase(t), Epsilon: 2.0, MinPts: 3},
		{Name: "bad", Database: newTestDatabase(t), Epsilon: 2.0, MinPts: -1},
	}

	_, err := ClusterAll(context.Background(), jobs)
	var minPtsErr *ErrInvalidMinPts
	require.ErrorAs(t, err, &minPtsErr)
}

func TestClusterAll_Cancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	jobs := []Job{
		{Name: "a", Database: newTestDatabase(t), Epsilon: 2.0, MinPts: 3},
	}

	_, err := ClusterAll(ctx, jobs)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestClusterAll_Empty(t *testing.T) {
	results, err := ClusterAll(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}
