// Package elki provides density-based clustering (DBSCAN) over vector
// databases.
//
// The core lives in the dbscan package; this package wires it together
// with logging, progress reporting, result persistence, and batch
// execution.
//
// # Quick Start
//
//	ctx := context.Background()
//	db, _ := database.NewMemory(database.WithDimension(2))
//	db.BatchInsert(ctx, vectors)
//
//	result, err := elki.Cluster(ctx, db, 0.5, 4)
//	if err != nil { ... }
//	for i, cluster := range result.Clusters {
//	    fmt.Println(i, cluster)
//	}
//	fmt.Println("noise:", result.Noise)
//
// # Persistence
//
// Results can be written to any blobstore.Store (local directory, S3,
// MinIO) through a self-describing codec header:
//
//	store, _ := blobstore.NewLocalStore("./out")
//	_ = elki.SaveResult(ctx, store, "iris/v1", result, codec.Zstd(codec.JSON{}))
//	again, _ := elki.LoadResult(ctx, store, "iris/v1")
//
// # Batch runs
//
// Independent databases can be clustered concurrently; every run owns
// its own classification state:
//
//	results, err := elki.ClusterAll(ctx, jobs, elki.WithConcurrency(4))
package elki
