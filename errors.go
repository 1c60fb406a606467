package elki

import (
	"fmt"
	"math"
)

// ErrInvalidMinPts indicates a non-positive density threshold.
type ErrInvalidMinPts struct {
	MinPts int
}

func (e *ErrInvalidMinPts) Error() string {
	return fmt.Sprintf("invalid minpts: %d (must be a positive integer)", e.MinPts)
}

// ErrInvalidEpsilon indicates a negative or NaN neighborhood radius.
type ErrInvalidEpsilon struct {
	Epsilon float32
}

func (e *ErrInvalidEpsilon) Error() string {
	return fmt.Sprintf("invalid epsilon: %v (must be a non-negative number)", e.Epsilon)
}

// validateParams checks clustering parameters at the application
// boundary. The dbscan engine itself trusts its inputs.
func validateParams(epsilon float32, minPts int) error {
	if minPts <= 0 {
		return &ErrInvalidMinPts{MinPts: minPts}
	}
	if epsilon < 0 || math.IsNaN(float64(epsilon)) {
		return &ErrInvalidEpsilon{Epsilon: epsilon}
	}
	return nil
}
