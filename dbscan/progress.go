package dbscan

// Progress is a snapshot of a clustering run, reported after each
// classification decision. It is purely observational and never affects
// the outcome of the run.
type Progress struct {
	// Processed is the number of objects classified so far.
	Processed int

	// Total is the size of the database.
	Total int

	// Clusters is the number of clusters counted so far. While a cluster
	// is still being grown it is included once its membership exceeds
	// MinPts.
	Clusters int
}

// ProgressFunc receives progress snapshots during a run.
// Implementations must not block; the engine calls them synchronously.
type ProgressFunc func(p Progress)
