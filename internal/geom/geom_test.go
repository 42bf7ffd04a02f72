package geom

import (
	"math"
	"testing"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9
}

func pointApprox(p, q Point) bool {
	return approx(p.X, q.X) && approx(p.Y, q.Y)
}

func TestBoundingBoxSize(t *testing.T) {
	tests := []struct {
		name       string
		polygons   [][]Point
		wantWidth  float64
		wantHeight float64
	}{
		{
			name:       "single point has zero extents",
			polygons:   [][]Point{{{X: 3, Y: 4}}},
			wantWidth:  0,
			wantHeight: 0,
		},
		{
			name: "axis-aligned square",
			polygons: [][]Point{
				{{0, 0}, {10, 0}, {10, 10}, {0, 10}},
			},
			wantWidth:  10,
			wantHeight: 10,
		},
		{
			name: "box spans multiple polygons",
			polygons: [][]Point{
				{{-5, 0}, {0, 2}},
				{{3, -1}, {7, 9}},
			},
			wantWidth:  12,
			wantHeight: 10,
		},
		{
			name: "negative coordinates",
			polygons: [][]Point{
				{{-10, -20}, {-4, -5}},
			},
			wantWidth:  6,
			wantHeight: 15,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := BoundingBoxSize(tt.polygons)
			if !approx(w, tt.wantWidth) || !approx(h, tt.wantHeight) {
				t.Errorf("BoundingBoxSize = (%v, %v), want (%v, %v)", w, h, tt.wantWidth, tt.wantHeight)
			}
		})
	}
}

// unitSquare is a closed polyline with total arc length 4.
var unitSquare = []Point{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

func TestCumulativeDistances(t *testing.T) {
	cum := CumulativeDistances(unitSquare)
	want := []float64{0, 1, 2, 3, 4}
	if len(cum) != len(want) {
		t.Fatalf("len = %d, want %d", len(cum), len(want))
	}
	for i := range want {
		if !approx(cum[i], want[i]) {
			t.Errorf("cum[%d] = %v, want %v", i, cum[i], want[i])
		}
	}
}

func TestPointAtArcFraction(t *testing.T) {
	cum := CumulativeDistances(unitSquare)

	tests := []struct {
		name string
		t    float64
		want Point
	}{
		{"zero is the first point", 0, Point{0, 0}},
		{"tiny fraction snaps to start", 1e-12, Point{0, 0}},
		{"first segment midpoint", 0.125, Point{0.5, 0}},
		{"corner", 0.25, Point{1, 0}},
		{"third segment midpoint", 0.625, Point{0.5, 1}},
		{"closing segment wraps to start", 0.875, Point{0, 0.5}},
		{"full fraction closes the loop", 1.0, Point{0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PointAtArcFraction(unitSquare, tt.t, cum)
			if !pointApprox(got, tt.want) {
				t.Errorf("PointAtArcFraction(%v) = %+v, want %+v", tt.t, got, tt.want)
			}
		})
	}
}

func TestPointAtArcFractionDegenerateSegment(t *testing.T) {
	// Repeated points make zero-length segments; lookup must not divide by
	// zero.
	points := []Point{{0, 0}, {0, 0}, {2, 0}, {2, 2}}
	cum := CumulativeDistances(points)
	got := PointAtArcFraction(points, 0.5, cum)
	if math.IsNaN(got.X) || math.IsNaN(got.Y) {
		t.Fatalf("got NaN point %+v", got)
	}
}

func TestPointOps(t *testing.T) {
	p := Point{X: 3, Y: 4}
	q := Point{X: 0, Y: 0}

	if d := p.Dist(q); !approx(d, 5) {
		t.Errorf("Dist = %v, want 5", d)
	}
	if v := p.Sub(q); !approx(v.X, 3) || !approx(v.Y, 4) {
		t.Errorf("Sub = %+v, want (3,4)", v)
	}
	if got := q.Add(Vec{X: 1, Y: 2}); !pointApprox(got, Point{1, 2}) {
		t.Errorf("Add = %+v, want (1,2)", got)
	}
	if got := Lerp(q, p, 0.5); !pointApprox(got, Point{1.5, 2}) {
		t.Errorf("Lerp = %+v, want (1.5,2)", got)
	}
}
