package dbscan

import "github.com/kshimauchi/elki/model"

// Cluster is the membership of a single cluster, in discovery order:
// the order in which objects were first reached while the cluster grew.
type Cluster []model.ObjectID

// Result is the partition produced by a clustering run: clusters in
// discovery order plus a disjoint noise set. Every object of the input
// database appears in exactly one cluster or in Noise.
//
// A Result is immutable once returned.
type Result struct {
	// Clusters holds the finalized clusters in the order their seed
	// objects were first visited. Every cluster has at least MinPts
	// members.
	Clusters []Cluster

	// Noise holds the objects not density-reachable from any core
	// object, sorted by ID.
	Noise []model.ObjectID
}

// Size returns the total number of classified objects.
func (r *Result) Size() int {
	n := len(r.Noise)
	for _, c := range r.Clusters {
		n += len(c)
	}
	return n
}
