package elki

import (
	"time"

	"github.com/kshimauchi/elki/dbscan"
)

type options struct {
	logger           *Logger
	progress         dbscan.ProgressFunc
	progressInterval time.Duration
	concurrency      int
}

func defaultOptions() options {
	return options{
		logger:           NoopLogger(),
		progressInterval: time.Second,
		concurrency:      1,
	}
}

// Option configures Cluster and ClusterAll.
type Option func(*options)

// WithLogger sets the logger. Progress snapshots are logged at debug
// level, throttled by the progress interval; run outcomes at info.
//
// If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithProgress installs a progress callback, invoked after each
// classification decision. It is called in addition to progress logging.
func WithProgress(fn dbscan.ProgressFunc) Option {
	return func(o *options) {
		o.progress = fn
	}
}

// WithProgressInterval sets the minimum interval between progress log
// lines. A non-positive interval disables progress logging; the
// WithProgress callback is unaffected.
func WithProgressInterval(d time.Duration) Option {
	return func(o *options) {
		o.progressInterval = d
	}
}

// WithConcurrency bounds the number of clustering runs ClusterAll
// executes in parallel. Values below 1 are treated as 1.
// Cluster ignores this option: a single run is strictly sequential.
func WithConcurrency(n int) Option {
	return func(o *options) {
		if n < 1 {
			n = 1
		}
		o.concurrency = n
	}
}
