package model

import "fmt"

// ObjectID is the dense identifier of an object stored in a database.
// IDs are assigned in insertion order starting at 0.
type ObjectID uint32

// String returns a string representation of the ObjectID.
func (id ObjectID) String() string {
	return fmt.Sprintf("Obj(%d)", uint32(id))
}

// Neighbor is a single range-query hit: an object together with its
// distance to the query object.
type Neighbor struct {
	// ID is the identifier of the neighboring object.
	ID ObjectID

	// Distance is the distance between the query object and the neighbor
	// (metric-dependent).
	Distance float32
}
