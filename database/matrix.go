package database

import (
	"context"
	"encoding/binary"
	"fmt"
	"iter"
	"math"

	"github.com/kshimauchi/elki/distance"
	"github.com/kshimauchi/elki/internal/mmap"
	"github.com/kshimauchi/elki/model"
)

// Compile-time check to ensure Matrix satisfies the Database interface.
var _ Database = (*Matrix)(nil)

// Matrix is a read-only database over a raw vector matrix file:
// row-major little-endian float32 values, one row per object. The file
// is memory-mapped, so rows are decoded on access without loading the
// whole dataset onto the heap.
type Matrix struct {
	mapping  *mmap.Mapping
	rows     int
	distFunc distance.Func
	opts     Options
}

// OpenMatrix maps the matrix file at path.
// Dimension must be set; the file size must be a multiple of the row size.
func OpenMatrix(path string, optFns ...func(o *Options)) (*Matrix, error) {
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

	m, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}

	rowSize := 4 * opts.Dimension
	if m.Size()%rowSize != 0 {
		_ = m.Close()
		return nil, fmt.Errorf("database: file size %d is not a multiple of row size %d", m.Size(), rowSize)
	}

	return &Matrix{
		mapping:  m,
		rows:     m.Size() / rowSize,
		distFunc: distFunc,
		opts:     opts,
	}, nil
}

// Close unmaps the underlying file.
func (m *Matrix) Close() error {
	return m.mapping.Close()
}

// Size returns the number of rows.
func (m *Matrix) Size() int {
	return m.rows
}

// All iterates IDs in row order.
func (m *Matrix) All() iter.Seq[model.ObjectID] {
	return enumerate(m.rows)
}

// vectorAt decodes row i into dst, which must have length Dimension.
func (m *Matrix) vectorAt(i int, dst []float32) {
	row := m.mapping.Bytes()[i*4*m.opts.Dimension:]
	for d := range dst {
		dst[d] = math.Float32frombits(binary.LittleEndian.Uint32(row[d*4:]))
	}
}

// Vector returns a copy of the row for the given ID.
func (m *Matrix) Vector(id model.ObjectID) ([]float32, bool) {
	if int(id) >= m.rows {
		return nil, false
	}
	v := make([]float32, m.opts.Dimension)
	m.vectorAt(int(id), v)
	return v, true
}

// RangeQuery returns all objects within radius of the query object,
// in the canonical order documented on RangeQuerier.
func (m *Matrix) RangeQuery(ctx context.Context, id model.ObjectID, radius float32) ([]model.Neighbor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if int(id) >= m.rows {
		return nil, &ErrObjectNotFound{ID: id}
	}

	q := make([]float32, m.opts.Dimension)
	m.vectorAt(int(id), q)

	var result []model.Neighbor
	row := make([]float32, m.opts.Dimension)
	for i := 0; i < m.rows; i++ {
		m.vectorAt(i, row)
		d := m.distFunc(q, row)
		if d <= radius {
			result = append(result, model.Neighbor{ID: model.ObjectID(i), Distance: d})
		}
	}

	sortNeighbors(result, id)
	return result, nil
}
