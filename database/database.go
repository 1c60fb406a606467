// Package database provides vector databases that answer epsilon range
// queries, the neighborhood oracle consumed by the clustering engine.
package database

import (
	"context"
	"fmt"
	"iter"
	"sort"

	"github.com/kshimauchi/elki/model"
)

// ErrObjectNotFound is a named error type for range queries on unknown IDs.
type ErrObjectNotFound struct {
	ID model.ObjectID
}

// Error returns the error message for an unknown object.
func (e *ErrObjectNotFound) Error() string {
	return fmt.Sprintf("object not found: %d", uint32(e.ID))
}

// ErrDimensionMismatch is a named error type for dimension mismatch.
type ErrDimensionMismatch struct {
	Expected int // Expected dimensions
	Actual   int // Actual dimensions
}

// Error returns the error message for dimension mismatch.
func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

// RangeQuerier answers epsilon range queries.
//
// RangeQuery returns every object within the given radius of the query
// object (the query object itself included). The query object's own
// entry is always first, regardless of its self-distance value; the
// remaining entries are sorted by distance ascending, ties broken by
// ID. For a fixed database state the result is deterministic.
type RangeQuerier interface {
	RangeQuery(ctx context.Context, id model.ObjectID, radius float32) ([]model.Neighbor, error)
}

// Database is a finite, enumerable collection of vectors with range
// query support.
type Database interface {
	RangeQuerier

	// Size returns the number of objects in the database.
	Size() int

	// All iterates object IDs in natural enumeration order.
	All() iter.Seq[model.ObjectID]
}

// sortNeighbors establishes the canonical range-query result order:
// the query object's own entry first, then distance ascending, ties by
// ID. The query object is fronted unconditionally rather than by a
// zero-distance tie-break: under the negated dot metric the
// self-distance is -|q|² and need not be the minimum.
func sortNeighbors(neighbors []model.Neighbor, query model.ObjectID) {
	sort.Slice(neighbors, func(i, j int) bool {
		a, b := neighbors[i], neighbors[j]
		if (a.ID == query) != (b.ID == query) {
			return a.ID == query
		}
		if a.Distance != b.Distance {
			return a.Distance < b.Distance
		}
		return a.ID < b.ID
	})
}

// enumerate yields 0..n-1 as ObjectIDs.
func enumerate(n int) iter.Seq[model.ObjectID] {
	return func(yield func(model.ObjectID) bool) {
		for i := 0; i < n; i++ {
			if !yield(model.ObjectID(i)) {
				return
			}
		}
	}
}
