package spatialindex

import (
	"math"

	"github.com/tidwall/rtree"
)

// PointIndex. r-tree over 2d points, used by the sampling planner for
// nearest-neighbor and near-set queries while the tree grows. entries
// are points, so min == max for every box.
type PointIndex[T any] struct {
	tr  *rtree.RTreeG[T]
	len int
}

func NewPointIndex[T any]() *PointIndex[T] {
	var tr rtree.RTreeG[T]
	return &PointIndex[T]{
		tr: &tr,
	}
}

func (idx *PointIndex[T]) Insert(x, y float64, data T) {
	idx.tr.Insert([2]float64{x, y}, [2]float64{x, y}, data)
	idx.len++
}

func (idx *PointIndex[T]) Len() int {
	return idx.len
}

// Nearest. the entry closest to (x, y) by euclidean distance.
func (idx *PointIndex[T]) Nearest(x, y float64) (T, bool) {
	var (
		best  T
		found bool
	)
	idx.tr.Nearby(
		rtree.BoxDist[float64, T]([2]float64{x, y}, [2]float64{x, y}, nil),
		func(min, max [2]float64, data T, dist float64) bool {
			best = data
			found = true
			return false
		},
	)
	return best, found
}

// SearchWithinRadius. all entries within radius of (x, y). the r-tree
// search box is square, so candidates get an exact distance filter.
func (idx *PointIndex[T]) SearchWithinRadius(x, y, radius float64) []T {
	results := make([]T, 0, 16)
	idx.tr.Search(
		[2]float64{x - radius, y - radius},
		[2]float64{x + radius, y + radius},
		func(min, max [2]float64, data T) bool {
			dx := min[0] - x
			dy := min[1] - y
			if math.Sqrt(dx*dx+dy*dy) <= radius {
				results = append(results, data)
			}
			return true
		},
	)
	return results
}
