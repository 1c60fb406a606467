package distance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSquaredL2(t *testing.T) {
	assert.Equal(t, float32(0), SquaredL2([]float32{1, 2}, []float32{1, 2}))
	assert.Equal(t, float32(25), SquaredL2([]float32{0, 0}, []float32{3, 4}))
}

func TestDot(t *testing.T) {
	assert.Equal(t, float32(11), Dot([]float32{1, 2}, []float32{3, 4}))
	assert.Equal(t, float32(0), Dot([]float32{1, 0}, []float32{0, 1}))
}

func TestManhattan(t *testing.T) {
	assert.Equal(t, float32(7), Manhattan([]float32{0, 0}, []float32{3, 4}))
	assert.Equal(t, float32(7), Manhattan([]float32{3, 4}, []float32{0, 0}))
}

func TestCosineDistance(t *testing.T) {
	assert.InDelta(t, 0, CosineDistance([]float32{1, 0}, []float32{2, 0}), 1e-6)
	assert.InDelta(t, 1, CosineDistance([]float32{1, 0}, []float32{0, 1}), 1e-6)
	assert.InDelta(t, 2, CosineDistance([]float32{1, 0}, []float32{-1, 0}), 1e-6)

	// Zero vectors are defined to be at distance 1.
	assert.Equal(t, float32(1), CosineDistance([]float32{0, 0}, []float32{1, 0}))
}

func TestNormalizeL2(t *testing.T) {
	v := []float32{3, 4}
	norm, ok := NormalizeL2Copy(v)
	require.True(t, ok)
	assert.InDelta(t, 0.6, norm[0], 1e-6)
	assert.InDelta(t, 0.8, norm[1], 1e-6)
	// Source untouched.
	assert.Equal(t, []float32{3, 4}, v)

	_, ok = NormalizeL2Copy([]float32{0, 0})
	assert.False(t, ok)
}

func TestProvider(t *testing.T) {
	for _, m := range []Metric{MetricL2, MetricCosine, MetricDot, MetricManhattan} {
		fn, err := Provider(m)
		require.NoError(t, err, m.String())
		require.NotNil(t, fn)
	}

	_, err := Provider(Metric(999))
	assert.Error(t, err)
}

func TestProvider_DotOrdering(t *testing.T) {
	fn, err := Provider(MetricDot)
	require.NoError(t, err)

	q := []float32{1, 1}
	near := []float32{2, 2}
	far := []float32{0.1, 0.1}
	assert.Less(t, fn(q, near), fn(q, far))
}

func TestParseMetric(t *testing.T) {
	m, err := ParseMetric("cosine")
	require.NoError(t, err)
	assert.Equal(t, MetricCosine, m)

	_, err = ParseMetric("chebyshev")
	assert.Error(t, err)
}
