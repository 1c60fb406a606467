package database

import (
	"context"
	"fmt"
	"iter"
	"sync"

	"github.com/kshimauchi/elki/distance"
	"github.com/kshimauchi/elki/model"
)

// Compile-time check to ensure Memory satisfies the Database interface.
var _ Database = (*Memory)(nil)

// Options contains configuration options for a database.
type Options struct {
	// Dimension is the fixed vector dimensionality.
	// It must be > 0 and is enforced for all inserts.
	Dimension int

	// Metric selects the distance function used by range queries.
	Metric distance.Metric

	// NormalizeVectors enables L2 normalization for stored vectors.
	NormalizeVectors bool
}

// DefaultOptions contains the default configuration options.
var DefaultOptions = Options{
	Dimension: 0,
	Metric:    distance.MetricL2,
}

// Memory is an in-memory vector database. Range queries are answered by
// a linear scan over all stored vectors.
// Safe for concurrent reads; writes are serialized.
type Memory struct {
	mu       sync.RWMutex
	vectors  [][]float32
	distFunc distance.Func
	opts     Options
}

// NewMemory creates a new in-memory database.
// Dimension must be set at creation time.
func NewMemory(optFns ...func(o *Options)) (*Memory, error) {
	opts := DefaultOptions

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Dimension <= 0 {
		return nil, fmt.Errorf("database: invalid dimension: %d", opts.Dimension)
	}

	distFunc, err := distance.Provider(opts.Metric)
	if err != nil {
		return nil, err
	}

	return &Memory{
		distFunc: distFunc,
		opts:     opts,
	}, nil
}

// WithMetric configures the distance metric.
func WithMetric(m distance.Metric) func(o *Options) {
	return func(o *Options) {
		o.Metric = m
	}
}

// WithDimension configures the vector dimensionality.
func WithDimension(dim int) func(o *Options) {
	return func(o *Options) {
		o.Dimension = dim
	}
}

// Insert adds a vector and returns its assigned ID.
func (m *Memory) Insert(ctx context.Context, v []float32) (model.ObjectID, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	if len(v) != m.opts.Dimension {
		return 0, &ErrDimensionMismatch{Expected: m.opts.Dimension, Actual: len(v)}
	}

	vec := v
	if m.opts.NormalizeVectors {
		norm, ok := distance.NormalizeL2Copy(v)
		if !ok {
			return 0, fmt.Errorf("database: cannot normalize zero vector")
		}
		vec = norm
	} else {
		vec = make([]float32, len(v))
		copy(vec, v)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	id := model.ObjectID(len(m.vectors))
	m.vectors = append(m.vectors, vec)
	return id, nil
}

// BatchInsert adds multiple vectors in insertion order.
// It fails fast on the first invalid vector.
func (m *Memory) BatchInsert(ctx context.Context, vectors [][]float32) ([]model.ObjectID, error) {
	ids := make([]model.ObjectID, 0, len(vectors))
	for _, v := range vectors {
		id, err := m.Insert(ctx, v)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Size returns the number of stored vectors.
func (m *Memory) Size() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.vectors)
}

// All iterates IDs in insertion order.
func (m *Memory) All() iter.Seq[model.ObjectID] {
	return enumerate(m.Size())
}

// Vector returns the stored vector for the given ID.
// The returned slice must be treated as read-only.
func (m *Memory) Vector(id model.ObjectID) ([]float32, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if int(id) >= len(m.vectors) {
		return nil, false
	}
	return m.vectors[id], true
}

// RangeQuery returns all objects within radius of the query object,
// in the canonical order documented on RangeQuerier.
func (m *Memory) RangeQuery(ctx context.Context, id model.ObjectID, radius float32) ([]model.Neighbor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if int(id) >= len(m.vectors) {
		return nil, &ErrObjectNotFound{ID: id}
	}
	q := m.vectors[id]

	var result []model.Neighbor
	for i, v := range m.vectors {
		d := m.distFunc(q, v)
		if d <= radius {
			result = append(result, model.Neighbor{ID: model.ObjectID(i), Distance: d})
		}
	}

	sortNeighbors(result, id)
	return result, nil
}
