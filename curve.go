package bgrabitmap

import "math"

// Curve is a parametric curve over t in [0,1]. All implementations are
// immutable value types; the same value may be used from multiple goroutines.
type Curve interface {
	// PointAt evaluates the curve at parameter t.
	PointAt(t float64) Point

	// ToPoints approximates the curve by a polyline that deviates at most
	// tolerance from the curve. The first point equals the start point when
	// includeFirst is true, the last point always equals the end point.
	ToPoints(tolerance float64, includeFirst bool) []Point

	// Length returns the arc length of the curve.
	Length(tolerance float64) float64

	// Bounds returns the axis-aligned bounding box of the curve.
	Bounds() Rect
}

// curvePrecision estimates the number of uniform parameter steps needed to
// flatten a curve within the deviation tolerance, from the maximum squared
// length over the control-polygon edges. Flatter and shorter control polygons
// need fewer samples; this is a cheap heuristic, not an error bound.
func curvePrecision(tolerance float64, pts ...Point) int {
	maxSq := 0.0
	for i := 1; i < len(pts); i++ {
		d := pts[i].Sub(pts[i-1])
		if sq := d.Dot(d); maxSq < sq {
			maxSq = sq
		}
	}
	n := int(math.Round(math.Sqrt(math.Sqrt(maxSq / tolerance))))
	if n < 1 {
		return 1
	}
	return n
}

// polylineLength sums the chord lengths over a point sequence, skipping any
// pair that straddles a discontinuity marker.
func polylineLength(pts []Point) float64 {
	d := 0.0
	for i := 1; i < len(pts); i++ {
		if pts[i-1].IsEmpty() || pts[i].IsEmpty() {
			continue
		}
		d += pts[i].Sub(pts[i-1]).Length()
	}
	return d
}
