// Package queue provides a FIFO queue used for the cluster-expansion worklist.
package queue

// FIFO is a first-in-first-out queue backed by a ring buffer.
// Value-based storage, zero allocations in steady state.
type FIFO[T any] struct {
	items []T
	head  int
	tail  int
	size  int
}

// New creates a FIFO with the given initial capacity.
func New[T any](capacity int) *FIFO[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &FIFO[T]{items: make([]T, capacity)}
}

// Len returns the number of elements in the queue.
func (q *FIFO[T]) Len() int { return q.size }

// Push appends an item at the back of the queue.
func (q *FIFO[T]) Push(item T) {
	if q.size == len(q.items) {
		q.grow()
	}
	q.items[q.tail] = item
	q.tail = (q.tail + 1) % len(q.items)
	q.size++
}

// Pop removes and returns the item at the front of the queue.
// The second return value is false if the queue is empty.
func (q *FIFO[T]) Pop() (T, bool) {
	var zero T
	if q.size == 0 {
		return zero, false
	}
	item := q.items[q.head]
	q.items[q.head] = zero // release for GC
	q.head = (q.head + 1) % len(q.items)
	q.size--
	return item, true
}

func (q *FIFO[T]) grow() {
	next := make([]T, len(q.items)*2)
	for i := 0; i < q.size; i++ {
		next[i] = q.items[(q.head+i)%len(q.items)]
	}
	q.items = next
	q.head = 0
	q.tail = q.size
}
