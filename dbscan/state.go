package dbscan

import (
	"github.com/RoaringBitmap/roaring/v2"

	"github.com/kshimauchi/elki/model"
)

// runState is the transient classification state of a single clustering
// run. It is owned exclusively by one Run invocation and discarded when
// the run ends.
//
// An object is in at most one of three places at any time: unclassified
// (in neither bitmap), noise (both bitmaps), or a cluster (processed
// only). Noise membership is provisional: an object is moved out of
// noise when a growing cluster reaches it.
type runState struct {
	processed *roaring.Bitmap
	noise     *roaring.Bitmap
	universe  uint64
}

func newRunState(size int) *runState {
	return &runState{
		processed: roaring.New(),
		noise:     roaring.New(),
		universe:  uint64(size),
	}
}

// covered reports whether every object is classified and none of them
// as noise. Once true, no further expansion can change the partition.
func (s *runState) covered() bool {
	return s.processed.GetCardinality() == s.universe && s.noise.IsEmpty()
}

func (s *runState) processedCount() int {
	return int(s.processed.GetCardinality())
}

func (s *runState) noiseCount() int {
	return int(s.noise.GetCardinality())
}

// noiseIDs returns the final noise set, sorted by ID.
func (s *runState) noiseIDs() []model.ObjectID {
	raw := s.noise.ToArray()
	ids := make([]model.ObjectID, len(raw))
	for i, v := range raw {
		ids[i] = model.ObjectID(v)
	}
	return ids
}
