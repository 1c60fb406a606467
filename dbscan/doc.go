// Package dbscan implements density-based clustering over a vector
// database with range query support.
//
// DBSCAN classifies every object as a core object (at least MinPts
// objects inside its epsilon neighborhood), a border object (non-core,
// but within epsilon of a core object), or noise. Density-connected
// neighborhoods are merged into clusters; border objects become members
// of the first cluster that reaches them.
//
// # Usage
//
//	c := dbscan.New(0.5, 4)
//	result, err := c.Run(ctx, db)
//	for i, cluster := range result.Clusters {
//	    fmt.Println(i, cluster)
//	}
//	fmt.Println("noise:", result.Noise)
//
// Reference: M. Ester, H.-P. Kriegel, J. Sander, X. Xu:
// A Density-Based Algorithm for Discovering Clusters in Large Spatial
// Databases with Noise. KDD '96.
package dbscan
