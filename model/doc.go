// Package model defines core types shared across the library.
//
//   - ObjectID: dense database identifier (uint32)
//   - Neighbor: range-query hit (ObjectID plus distance)
package model
