package geo

import (
	"github.com/twpayne/go-polyline"
)

// PolylineFromPath encodes a sequence of grid coordinates as a google
// encoded polyline. the codec expects lat,lng pairs, so y goes first.
func PolylineFromPath(coords [][]float64) string {
	return string(polyline.EncodeCoords(coords))
}
