package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFIFO_Order(t *testing.T) {
	q := New[int](2)
	for i := 0; i < 10; i++ {
		q.Push(i)
	}
	require.Equal(t, 10, q.Len())

	for i := 0; i < 10; i++ {
		v, ok := q.Pop()
		require.True(t, ok)
		assert.Equal(t, i, v)
	}

	_, ok := q.Pop()
	assert.False(t, ok)
	assert.Equal(t, 0, q.Len())
}

func TestFIFO_Wraparound(t *testing.T) {
	q := New[int](4)
	for i := 0; i < 3; i++ {
		q.Push(i)
	}
	for i := 0; i < 3; i++ {
		v, ok := q.Pop()
		require.True(t, ok)
		assert.Equal(t, i, v)
	}

	// head/tail now mid-buffer; push past the physical end.
	for i := 10; i < 16; i++ {
		q.Push(i)
	}
	for i := 10; i < 16; i++ {
		v, ok := q.Pop()
		require.True(t, ok)
		assert.Equal(t, i, v)
	}
}

func TestFIFO_ZeroCapacity(t *testing.T) {
	q := New[string](0)
	q.Push("a")
	v, ok := q.Pop()
	require.True(t, ok)
	assert.Equal(t, "a", v)
}
