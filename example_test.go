package elki_test

import (
	"context"
	"fmt"
	"log"

	"github.com/kshimauchi/elki"
	"github.com/kshimauchi/elki/blobstore"
	"github.com/kshimauchi/elki/codec"
	"github.com/kshimauchi/elki/database"
)

// Example_cluster demonstrates clustering a small in-memory dataset.
func Example_cluster() {
	db, err := database.NewMemory(database.WithDimension(2))
	if err != nil {
		log.Fatal(err)
	}

	// Two dense groups far apart.
	vectors := [][]float32{
		{0, 0}, {0, 1}, {1, 0},
		{100, 100}, {100, 101}, {101, 100},
	}
	if _, err := db.BatchInsert(context.Background(), vectors); err != nil {
		log.Fatal(err)
	}

	result, err := elki.Cluster(context.Background(), db, 2.0, 3)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("clusters=%d noise=%d\n", len(result.Clusters), len(result.Noise))
	// Output: clusters=2 noise=0
}

// Example_persistence demonstrates saving and reloading a partition.
func Example_persistence() {
	db, err := database.NewMemory(database.WithDimension(2))
	if err != nil {
		log.Fatal(err)
	}
	if _, err := db.BatchInsert(context.Background(), [][]float32{
		{0, 0}, {0, 1}, {1, 0},
	}); err != nil {
		log.Fatal(err)
	}

	result, err := elki.Cluster(context.Background(), db, 2.0, 3)
	if err != nil {
		log.Fatal(err)
	}

	store := blobstore.NewMemoryStore()
	if err := elki.SaveResult(context.Background(), store, "demo", result, codec.Zstd(codec.JSON{})); err != nil {
		log.Fatal(err)
	}

	loaded, err := elki.LoadResult(context.Background(), store, "demo")
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("clusters=%d\n", len(loaded.Clusters))
	// Output: clusters=1
}
