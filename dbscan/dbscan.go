package dbscan

import (
	"context"

	"github.com/kshimauchi/elki/database"
	"github.com/kshimauchi/elki/internal/queue"
	"github.com/kshimauchi/elki/model"
)

// Options contains configuration options for a Clusterer.
type Options struct {
	// Progress, if set, is invoked after each classification decision.
	Progress ProgressFunc
}

// DefaultOptions contains the default configuration options.
var DefaultOptions = Options{}

// WithProgress configures a progress callback.
func WithProgress(fn ProgressFunc) func(o *Options) {
	return func(o *Options) {
		o.Progress = fn
	}
}

// Clusterer runs the DBSCAN algorithm. A Clusterer is stateless between
// runs and may be reused; each Run owns an independent classification
// state, so independent databases can be clustered concurrently with
// the same Clusterer.
type Clusterer struct {
	epsilon  float32
	minPts   int
	progress ProgressFunc
}

// New creates a Clusterer for the given neighborhood radius and density
// threshold.
//
// The caller is responsible for validating parameters: minPts must be a
// positive integer and epsilon must be meaningful to the database's
// distance metric. The engine does not re-validate them.
func New(epsilon float32, minPts int, optFns ...func(o *Options)) *Clusterer {
	opts := DefaultOptions

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Clusterer{
		epsilon:  epsilon,
		minPts:   minPts,
		progress: opts.Progress,
	}
}

// Run clusters the database and returns the resulting partition.
//
// Objects are visited in the database's enumeration order; clusters
// appear in the result in the order their seed objects were first
// visited. Range queries are issued strictly sequentially. If a range
// query fails the run aborts and no partial result is returned.
//
// An empty database yields an empty result. A database smaller than
// MinPts cannot contain a core object, so every object is classified as
// noise without issuing a single range query.
func (c *Clusterer) Run(ctx context.Context, db database.Database) (*Result, error) {
	size := db.Size()
	st := newRunState(size)
	result := &Result{}

	if size >= c.minPts {
		for id := range db.All() {
			if !st.processed.Contains(uint32(id)) {
				if err := c.expandCluster(ctx, db, id, st, result); err != nil {
					return nil, err
				}
				if st.covered() {
					break
				}
			}
			c.report(st.processedCount(), size, len(result.Clusters))
		}
	} else {
		for id := range db.All() {
			st.noise.Add(uint32(id))
			c.report(st.noiseCount(), size, len(result.Clusters))
		}
	}

	result.Noise = st.noiseIDs()
	return result, nil
}

// expandCluster grows a new cluster from start, or classifies start as
// noise if it is not a core object. Border objects become members of
// the first cluster that reaches them.
func (c *Clusterer) expandCluster(ctx context.Context, db database.Database, start model.ObjectID, st *runState, result *Result) error {
	seeds, err := db.RangeQuery(ctx, start, c.epsilon)
	if err != nil {
		return err
	}

	// start is not a core object.
	if len(seeds) < c.minPts {
		st.noise.Add(uint32(start))
		st.processed.Add(uint32(start))
		c.report(st.processedCount(), db.Size(), len(result.Clusters))
		return nil
	}

	cluster := make(Cluster, 0, len(seeds))
	for _, seed := range seeds {
		id := uint32(seed.ID)
		if !st.processed.Contains(id) {
			cluster = append(cluster, seed.ID)
			st.processed.Add(id)
		} else if st.noise.Contains(id) {
			// Reclassification: noise objects reached by a growing
			// cluster become members of that cluster.
			cluster = append(cluster, seed.ID)
			st.noise.Remove(id)
		}
	}

	// The first seed is the query object's own range-query hit (the
	// oracle returns the query object first); it must not be
	// re-expanded as a seed.
	worklist := queue.New[model.Neighbor](len(seeds))
	for _, seed := range seeds[1:] {
		worklist.Push(seed)
	}

	for worklist.Len() > 0 {
		o, _ := worklist.Pop()
		neighborhood, err := db.RangeQuery(ctx, o.ID, c.epsilon)
		if err != nil {
			return err
		}

		if len(neighborhood) >= c.minPts {
			for _, nb := range neighborhood {
				p := uint32(nb.ID)
				inNoise := st.noise.Contains(p)
				unclassified := !st.processed.Contains(p)
				if inNoise || unclassified {
					if unclassified {
						worklist.Push(nb)
					}
					cluster = append(cluster, nb.ID)
					st.processed.Add(p)
					if inNoise {
						st.noise.Remove(p)
					}
				}
			}
		}
		// o is not a core object: it stays a border member of the
		// cluster but contributes no further seeds.

		clusters := len(result.Clusters)
		if len(cluster) > c.minPts {
			clusters++
		}
		c.report(st.processedCount(), db.Size(), clusters)

		if st.covered() {
			break
		}
	}

	if len(cluster) >= c.minPts {
		result.Clusters = append(result.Clusters, cluster)
		return nil
	}

	// Failed expansion: the start was a core object, but every seed
	// neighbor turned out non-core and the membership stayed below
	// MinPts. The whole attempt degrades back to noise.
	for _, id := range cluster {
		st.noise.Add(uint32(id))
	}
	st.noise.Add(uint32(start))
	st.processed.Add(uint32(start))
	return nil
}

func (c *Clusterer) report(processed, total, clusters int) {
	if c.progress == nil {
		return
	}
	c.progress(Progress{Processed: processed, Total: total, Clusters: clusters})
}
