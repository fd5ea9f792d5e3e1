package bgrabitmap

import (
	"errors"
	"math"
)

// ErrInfiniteCurve is returned when splitting a curve that has no finite
// midpoint to split around.
var ErrInfiniteCurve = errors.New("cannot split a curve with infinite branches")

// InfiniteRect is the finite viewing region used to clip the infinite
// branches of rational curves while flattening. Points outside it are
// replaced by a discontinuity marker in the flattened sequence.
var InfiniteRect = Rect{-1.0e9, -1.0e9, 2.0e9, 2.0e9}

// RationalQuadraticCurve is a rational quadratic Bézier curve from P1 to P2
// with control point C carrying weight W, tracing a conic arc: an ellipse for
// |W| < 1, a parabola for |W| = 1 and a hyperbola for |W| > 1. Negating the
// weight selects the complementary arc of the same conic. The curve is
// continuous over [0,1] and lies in the finite plane iff W > -1; for W = -1
// it is the two infinite branches of a parabola and for W < -1 two mirrored
// infinite hyperbola branches.
type RationalQuadraticCurve struct {
	P1, C, P2 Point
	W         float64
}

// NewRationalQuadraticCurve returns the rational quadratic Bézier curve from
// p1 to p2 with control point c and weight w. A weight of 1 is the plain
// quadratic curve, a weight of 0 the straight segment p1p2.
func NewRationalQuadraticCurve(p1, c, p2 Point, w float64) RationalQuadraticCurve {
	return RationalQuadraticCurve{p1, c, p2, w}
}

// ArcCurve returns the rational quadratic curve tracing the arc of the
// ellipse with the given center, radii rx and ry, and rotation rot of the
// x-axis, from angle theta0 to theta1. All angles are in degrees and the
// sweep must stay below 180 degrees. The weight is the cosine of half the
// sweep; it is invariant under the affine transformation that maps the unit
// circle onto the ellipse.
func ArcCurve(center Point, rx, ry, rot, theta0, theta1 float64) RationalQuadraticCurve {
	half := (theta1 - theta0) * math.Pi / 360.0
	mid := (theta0 + theta1) * math.Pi / 360.0
	w := math.Cos(half)

	sin0, cos0 := math.Sincos(theta0 * math.Pi / 180.0)
	sin1, cos1 := math.Sincos(theta1 * math.Pi / 180.0)
	sinm, cosm := math.Sincos(mid)

	q := RationalQuadraticCurve{
		P1: Point{cos0, sin0},
		C:  Point{cosm / w, sinm / w},
		P2: Point{cos1, sin1},
		W:  w,
	}
	return q.Transform(Identity.Translate(center.X, center.Y).Rotate(rot).Scale(rx, ry))
}

// quadratic returns the plain quadratic curve over the same control points,
// valid as a delegate when W is 1.
func (q RationalQuadraticCurve) quadratic() QuadraticCurve {
	return QuadraticCurve{q.P1, q.C, q.P2}
}

// IsInfinite returns true if the curve has asymptotes, ie. its image
// contains points arbitrarily far away from the control polygon.
func (q RationalQuadraticCurve) IsInfinite() bool {
	return q.W <= -1.0
}

// PointAt evaluates the curve at t. At the asymptote parameters of an
// infinite curve the denominator vanishes and the "no value" point is
// returned; this cannot happen for finite weights at t=0 or t=1.
func (q RationalQuadraticCurve) PointAt(t float64) Point {
	rev := 1.0 - t
	f1 := rev * rev
	f2 := 2.0 * t * rev * q.W
	f3 := t * t
	den := f1 + f2 + f3
	if den == 0.0 {
		return EmptyPoint
	}
	return Point{
		(f1*q.P1.X + f2*q.C.X + f3*q.P2.X) / den,
		(f1*q.P1.Y + f2*q.C.Y + f3*q.P2.Y) / den,
	}
}

// BoundingPositions returns the parameters at which the curve's tangent is
// axis-aligned, each strictly inside (0,1). Between consecutive positions
// the curve is monotonic in both axes, which makes them safe subdivision
// boundaries for adaptive flattening. Values closer than 1e-6 are
// deduplicated; with sorted they are returned in ascending order.
func (q RationalQuadraticCurve) BoundingPositions(includeEnds, sorted bool) []float64 {
	ts := []float64{}
	if includeEnds {
		ts = append(ts, 0.0, 1.0)
	}
	add := func(t float64) {
		if !(0.0 < t && t < 1.0) { // also rejects NaN
			return
		}
		for _, u := range ts {
			if math.Abs(u-t) < 1e-6 {
				return
			}
		}
		ts = append(ts, t)
	}
	// with the curve translated so that P1 is the origin, the derivative
	// numerator per axis reduces to a quadratic in t over the control offset
	// gamma and the end offset rho
	roots := func(gamma, rho float64) {
		t1, t2 := solveQuadraticFormula(-rho*(1.0-q.W), rho-2.0*q.W*gamma, q.W*gamma)
		add(t1)
		add(t2)
	}
	roots(q.C.X-q.P1.X, q.P2.X-q.P1.X)
	roots(q.C.Y-q.P1.Y, q.P2.Y-q.P1.Y)

	if sorted {
		// insertion sort, there are at most six candidates
		for i := 1; i < len(ts); i++ {
			for j := i; 0 < j && ts[j] < ts[j-1]; j-- {
				ts[j], ts[j-1] = ts[j-1], ts[j]
			}
		}
	}
	return ts
}

// recursePoints returns the polyline points strictly between the curve
// points at tl and tr, bisecting the parameter interval until the midpoint
// deviates less than tolerance from the chord. A midpoint between 0.6 and
// 1.0 times the tolerance is still inserted without further recursion to
// keep the polyline smooth.
func (q RationalQuadraticCurve) recursePoints(tl float64, pl Point, tr float64, pr Point, tolerance float64) []Point {
	if tr-tl < 1e-9 {
		return nil
	}
	tm := 0.5 * (tl + tr)
	pm := q.PointAt(tm)
	if pm.IsEmpty() {
		return nil
	}

	chord := pr.Sub(pl)
	var deviation float64
	if chordLen := chord.Length(); equal(chordLen, 0.0) {
		deviation = pm.Sub(pl).Length()
	} else {
		deviation = math.Abs(chord.PerpDot(pm.Sub(pl))) / chordLen
	}

	if tolerance < deviation {
		return concatPoints(
			q.recursePoints(tl, pl, tm, pm, tolerance),
			[]Point{pm},
			q.recursePoints(tm, pm, tr, pr, tolerance),
		)
	} else if 0.6*tolerance < deviation {
		return []Point{pm}
	}
	return nil
}

// computePoints returns the polyline points over [t0,t1] excluding the point
// at t0 and including the point at t1, subdividing first at the bounding
// positions so that every recursion interval is monotonic in both axes.
func (q RationalQuadraticCurve) computePoints(t0, t1, tolerance float64) []Point {
	splits := []float64{t0}
	for _, t := range q.BoundingPositions(false, true) {
		if t0+1e-6 < t && t < t1-1e-6 {
			splits = append(splits, t)
		}
	}
	splits = append(splits, t1)

	pts := []Point{}
	pa := q.PointAt(splits[0])
	for i := 1; i < len(splits); i++ {
		pb := q.PointAt(splits[i])
		pts = append(pts, q.recursePoints(splits[i-1], pa, splits[i], pb, tolerance)...)
		pts = append(pts, pb)
		pa = pb
	}
	return pts
}

// findRectCrossing bisects the parameter interval between tIn, whose curve
// point lies inside r, and tOut, whose curve point lies outside r or is
// undefined, and returns the parameter closest to the crossing on the inside.
func (q RationalQuadraticCurve) findRectCrossing(tIn, tOut float64, r Rect) float64 {
	for i := 0; i < 52; i++ {
		tm := 0.5 * (tIn + tOut)
		if p := q.PointAt(tm); !p.IsEmpty() && r.Contains(p) {
			tIn = tm
		} else {
			tOut = tm
		}
	}
	return tIn
}

// infiniteToPoints flattens a curve with asymptotes. The finite pieces whose
// parameter ranges map inside InfiniteRect are flattened as usual and joined
// by discontinuity markers where the curve leaves the viewing region: one
// break for W = -1, up to two for W < -1.
func (q RationalQuadraticCurve) infiniteToPoints(tolerance float64, includeFirst bool) []Point {
	run := func(t0, t1 float64, includeStart bool) []Point {
		pts := []Point{}
		if includeStart {
			pts = append(pts, q.PointAt(t0))
		}
		return append(pts, q.computePoints(t0, t1, tolerance)...)
	}

	if q.W == -1.0 {
		// the denominator (1-2t)^2 vanishes only at t=0.5
		tA := q.findRectCrossing(0.0, 0.5, InfiniteRect)
		tB := q.findRectCrossing(1.0, 0.5, InfiniteRect)
		return concatPoints(
			run(0.0, tA, includeFirst),
			[]Point{EmptyPoint},
			run(tB, 1.0, true),
		)
	}

	// W < -1: the denominator has two roots flanking a finite middle arc
	delta := 1.0 - 2.0/(1.0-q.W)
	sq := math.Sqrt(delta)
	t1 := (1.0 - sq) / 2.0
	t2 := (1.0 + sq) / 2.0
	mid := 0.5 * (t1 + t2)

	tA := q.findRectCrossing(0.0, t1, InfiniteRect)
	tB1 := q.findRectCrossing(mid, t1, InfiniteRect)
	tB2 := q.findRectCrossing(mid, t2, InfiniteRect)
	tC := q.findRectCrossing(1.0, t2, InfiniteRect)
	return concatPoints(
		run(0.0, tA, includeFirst),
		[]Point{EmptyPoint},
		run(tB1, tB2, true),
		[]Point{EmptyPoint},
		run(tC, 1.0, true),
	)
}

// ToPoints flattens the curve into a polyline with maximum deviation
// tolerance. For infinite curves the sequence contains the "no value" point
// wherever the curve leaves InfiniteRect; the runs on either side are
// independent polylines.
func (q RationalQuadraticCurve) ToPoints(tolerance float64, includeFirst bool) []Point {
	if q.W == 1.0 {
		return q.quadratic().ToPoints(tolerance, includeFirst)
	}
	if q.W == 0.0 {
		// the conic degenerates to the segment P1P2
		if includeFirst {
			return []Point{q.P1, q.P2}
		}
		return []Point{q.P2}
	}
	if q.IsInfinite() {
		return q.infiniteToPoints(tolerance, includeFirst)
	}
	pts := q.computePoints(0.0, 1.0, tolerance)
	if includeFirst {
		return concatPoints([]Point{q.P1}, pts)
	}
	return pts
}

// Length returns the arc length of the curve by accumulating chord lengths
// over the adaptively flattened polyline. An infinite curve has unbounded
// length and returns +Inf.
func (q RationalQuadraticCurve) Length(tolerance float64) float64 {
	if q.W == 1.0 {
		return q.quadratic().Length(tolerance)
	}
	if q.IsInfinite() {
		return math.Inf(1)
	}
	return polylineLength(q.ToPoints(tolerance, true))
}

// Bounds returns the axis-aligned bounding box of the curve over [0,1], in
// closed form from the bounding positions. An infinite curve is unbounded
// and returns the empty rectangle.
func (q RationalQuadraticCurve) Bounds() Rect {
	if q.W == 1.0 {
		return q.quadratic().Bounds()
	}
	if q.IsInfinite() {
		return Rect{}
	}
	r := PointRect(q.P1).AddPoint(q.P2)
	for _, t := range q.BoundingPositions(false, false) {
		r = r.AddPoint(q.PointAt(t))
	}
	return r
}

// Split subdivides the curve at t=0.5 into two rational quadratic curves of
// the same conic. It returns ErrInfiniteCurve if the curve has infinite
// branches, as there is no finite midpoint to split around.
func (q RationalQuadraticCurve) Split() (RationalQuadraticCurve, RationalQuadraticCurve, error) {
	if q.IsInfinite() {
		return RationalQuadraticCurve{}, RationalQuadraticCurve{}, ErrInfiniteCurve
	}

	m := q.PointAt(0.5)
	d := q.P1.Interpolate(q.P2, 0.5)
	if q.W == 0.0 {
		// both halves are straight segments
		return RationalQuadraticCurve{q.P1, q.P1.Interpolate(m, 0.5), m, 1.0},
			RationalQuadraticCurve{m, m.Interpolate(q.P2, 0.5), q.P2, 1.0}, nil
	}
	if q.W == 1.0 || d.Equals(q.C) {
		// C lies on the axis of symmetry, the halves are plain quadratics
		return RationalQuadraticCurve{q.P1, q.P1.Interpolate(q.C, 0.5), m, 1.0},
			RationalQuadraticCurve{m, q.C.Interpolate(q.P2, 0.5), q.P2, 1.0}, nil
	}

	// scale the control legs projectively so that the new control points lie
	// on the tangents at P1 and P2
	alpha := m.Sub(d).Length() / q.C.Sub(d).Length()
	if q.W < 0.0 {
		alpha = -alpha
	}
	c1 := q.P1.Add(q.C.Sub(q.P1).Mul(alpha))
	c2 := q.P2.Add(q.C.Sub(q.P2).Mul(alpha))

	// the weight follows from where the ray from c1 through the midpoint of
	// P1 and M intersects the curve; P1 and M lie on opposite sides of that
	// ray, so bisect on the sign of the cross product
	e := q.P1.Interpolate(m, 0.5)
	dir := e.Sub(c1)
	side := func(p Point) float64 { return dir.PerpDot(p.Sub(c1)) }
	tlo, thi := 0.0, 0.5
	slo := side(q.P1)
	x := q.PointAt(0.25)
	for i := 0; i < 52; i++ {
		tm := 0.5 * (tlo + thi)
		x = q.PointAt(tm)
		s := side(x)
		if s == 0.0 {
			break
		} else if (0.0 < s) == (0.0 < slo) {
			tlo = tm
		} else {
			thi = tm
		}
	}
	w := e.Sub(c1).Length()/x.Sub(c1).Length() - 1.0

	return RationalQuadraticCurve{q.P1, c1, m, w},
		RationalQuadraticCurve{m, c2, q.P2, w}, nil
}

// Transform applies the affine transformation matrix to the control points.
// The weight is invariant under affine transformations.
func (q RationalQuadraticCurve) Transform(m Matrix) RationalQuadraticCurve {
	return RationalQuadraticCurve{m.Dot(q.P1), m.Dot(q.C), m.Dot(q.P2), q.W}
}
