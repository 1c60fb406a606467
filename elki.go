package elki

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/kshimauchi/elki/database"
	"github.com/kshimauchi/elki/dbscan"
)

// Cluster runs density-based clustering over db with the given
// neighborhood radius and density threshold. It validates parameters,
// wires progress reporting and logging, and delegates to the dbscan
// engine.
func Cluster(ctx context.Context, db database.Database, epsilon float32, minPts int, opts ...Option) (*dbscan.Result, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if err := validateParams(epsilon, minPts); err != nil {
		return nil, err
	}

	progress := composeProgress(ctx, &o)

	clusterer := dbscan.New(epsilon, minPts, dbscan.WithProgress(progress))

	start := time.Now()
	result, err := clusterer.Run(ctx, db)
	o.logger.LogRun(ctx, epsilon, minPts, result, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// composeProgress merges the user callback with rate-limited progress
// logging. Returns nil when neither is active so the engine skips
// reporting entirely.
func composeProgress(ctx context.Context, o *options) dbscan.ProgressFunc {
	var logProgress dbscan.ProgressFunc
	if o.progressInterval > 0 {
		limiter := rate.NewLimiter(rate.Every(o.progressInterval), 1)
		logger := o.logger
		logProgress = func(p dbscan.Progress) {
			if limiter.Allow() {
				logger.LogProgress(ctx, p)
			}
		}
	}

	switch {
	case o.progress == nil:
		return logProgress
	case logProgress == nil:
		return o.progress
	default:
		user := o.progress
		return func(p dbscan.Progress) {
			user(p)
			logProgress(p)
		}
	}
}

// Job describes one clustering run for ClusterAll.
type Job struct {
	// Name identifies the job in logs.
	Name string

	// Database holds the objects to cluster.
	Database database.Database

	// Epsilon is the neighborhood radius.
	Epsilon float32

	// MinPts is the density threshold.
	MinPts int
}

// ClusterAll executes the given jobs, at most WithConcurrency(n) at a
// time, and returns one result per job in job order. The first failing
// job cancels the remaining ones and its error is returned.
func ClusterAll(ctx context.Context, jobs []Job, opts ...Option) ([]*dbscan.Result, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	for _, job := range jobs {
		if err := validateParams(job.Epsilon, job.MinPts); err != nil {
			return nil, err
		}
	}

	results := make([]*dbscan.Result, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency)

	for i, job := range jobs {
		g.Go(func() error {
			logger := o.logger.With("job", job.Name)

			progress := composeProgress(gctx, &options{
				logger:           &Logger{Logger: logger},
				progress:         o.progress,
				progressInterval: o.progressInterval,
			})

			clusterer := dbscan.New(job.Epsilon, job.MinPts, dbscan.WithProgress(progress))

			start := time.Now()
			result, err := clusterer.Run(gctx, job.Database)
			(&Logger{Logger: logger}).LogRun(gctx, job.Epsilon, job.MinPts, result, time.Since(start), err)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
