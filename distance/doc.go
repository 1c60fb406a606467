// Package distance provides vector distance calculations.
//
// # Supported Metrics
//
//   - MetricL2: Squared Euclidean distance (default)
//   - MetricCosine: Cosine distance (1 - cosine similarity)
//   - MetricDot: Negated dot product (inner product)
//   - MetricManhattan: L1 (city block) distance
//
// # Usage
//
//	dist := distance.SquaredL2(a, b)
//	fn, err := distance.Provider(distance.MetricCosine)
package distance
