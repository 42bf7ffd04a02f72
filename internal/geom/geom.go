package geom

import (
	"math"
	"sort"
)

// Point is a position on the stage in pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Vec is a displacement between two points.
type Vec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Scale is a per-axis scale factor (1.0 = unscaled).
type Scale struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Sub returns the displacement from q to p.
func (p Point) Sub(q Point) Vec {
	return Vec{X: p.X - q.X, Y: p.Y - q.Y}
}

// Add returns the point offset by v.
func (p Point) Add(v Vec) Point {
	return Point{X: p.X + v.X, Y: p.Y + v.Y}
}

// Dist returns the euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Lerp linearly interpolates between p and q.
func Lerp(p, q Point, t float64) Point {
	return Point{
		X: p.X + (q.X-p.X)*t,
		Y: p.Y + (q.Y-p.Y)*t,
	}
}

// BoundingBoxSize returns the extents of the axis-aligned bounding box
// covering every point of every polygon. The input must contain at least
// one point; callers guarantee non-empty input.
func BoundingBoxSize(polygons [][]Point) (width, height float64) {
	first := true
	var minX, minY, maxX, maxY float64

	for _, poly := range polygons {
		for _, p := range poly {
			if first {
				minX, maxX = p.X, p.X
				minY, maxY = p.Y, p.Y
				first = false
				continue
			}
			minX = math.Min(minX, p.X)
			maxX = math.Max(maxX, p.X)
			minY = math.Min(minY, p.Y)
			maxY = math.Max(maxY, p.Y)
		}
	}

	return maxX - minX, maxY - minY
}

// arcEpsilon is the tolerance under which an arc fraction is treated as the
// start of the polyline.
const arcEpsilon = 1e-9

// CumulativeDistances returns the running arc length along a closed polyline,
// including the closing segment back to points[0]. The result has
// len(points)+1 entries, starting at 0.
func CumulativeDistances(points []Point) []float64 {
	cum := make([]float64, len(points)+1)
	for i := 1; i < len(points); i++ {
		cum[i] = cum[i-1] + points[i].Dist(points[i-1])
	}
	cum[len(points)] = cum[len(points)-1] + points[0].Dist(points[len(points)-1])
	return cum
}

// PointAtArcFraction returns the point at fraction t of the total arc length
// of a closed polyline. cumulative is the running arc length as produced by
// CumulativeDistances. Segment endpoints wrap modulo the point count, so
// fractions near 1.0 land on the closing segment.
func PointAtArcFraction(points []Point, t float64, cumulative []float64) Point {
	if t < arcEpsilon {
		return points[0]
	}

	total := cumulative[len(cumulative)-1]
	target := t * total

	// First segment whose cumulative distance reaches the target.
	i := sort.SearchFloat64s(cumulative, target)
	if i == 0 {
		return points[0]
	}
	if i >= len(cumulative) {
		i = len(cumulative) - 1
	}

	segStart := cumulative[i-1]
	segLen := cumulative[i] - segStart
	overshoot := 0.0
	if segLen > 0 {
		overshoot = (target - segStart) / segLen
	}

	n := len(points)
	a := points[(i-1)%n]
	b := points[i%n]
	return Lerp(a, b, overshoot)
}
