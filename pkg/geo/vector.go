package geo

import (
	"math"

	"github.com/golang/geo/r2"
)

// the planning frame is the grid frame: planar, x to the east, y to the
// north, one unit = one grid cell. r2 covers all the vector math we need.

func NewPoint(x, y float64) r2.Point {
	return r2.Point{X: x, Y: y}
}

// EuclideanDistance. distance between two grid positions, in cells.
func EuclideanDistance(x1, y1, x2, y2 float64) float64 {
	return r2.Point{X: x1, Y: y1}.Sub(r2.Point{X: x2, Y: y2}).Norm()
}

// Interpolate. point at fraction t in [0,1] on the segment (x1,y1)-(x2,y2).
func Interpolate(x1, y1, x2, y2, t float64) (float64, float64) {
	a := r2.Point{X: x1, Y: y1}
	b := r2.Point{X: x2, Y: y2}
	p := a.Add(b.Sub(a).Mul(t))
	return p.X, p.Y
}

// NormalizeYaw. wrap an angle into (-pi, pi], the convention the pose
// representations use for orientation.
func NormalizeYaw(yaw float64) float64 {
	yaw = math.Mod(yaw, 2*math.Pi)
	if yaw <= -math.Pi {
		yaw += 2 * math.Pi
	} else if yaw > math.Pi {
		yaw -= 2 * math.Pi
	}
	return yaw
}

// InterpolateYaw. shortest-arc interpolation between two orientations.
func InterpolateYaw(from, to, t float64) float64 {
	diff := NormalizeYaw(to - from)
	return NormalizeYaw(from + diff*t)
}
