package bgrabitmap

import "math"

// QuadraticCurve is a quadratic Bézier curve from P1 to P2 with control
// point C. A curve whose control point is the midpoint of P1P2 degenerates
// to the straight segment P1P2; the polynomial formulas reduce to linear
// interpolation without a special case.
type QuadraticCurve struct {
	P1, C, P2 Point
}

// NewQuadraticCurve returns the quadratic Bézier curve from p1 to p2 with
// control point c.
func NewQuadraticCurve(p1, c, p2 Point) QuadraticCurve {
	return QuadraticCurve{p1, c, p2}
}

// coefficients returns the expanded polynomial coefficients a, b so that the
// curve evaluates as P1 + t*(b + t*a).
func (q QuadraticCurve) coefficients() (Point, Point) {
	a := q.P1.Sub(q.C.Mul(2.0)).Add(q.P2)
	b := q.C.Sub(q.P1).Mul(2.0)
	return a, b
}

// PointAt evaluates the curve at t. The curve is a global polynomial, so t
// is not restricted to [0,1].
func (q QuadraticCurve) PointAt(t float64) Point {
	rev := 1.0 - t
	f1 := rev * rev
	f2 := 2.0 * t * rev
	f3 := t * t
	return Point{
		f1*q.P1.X + f2*q.C.X + f3*q.P2.X,
		f1*q.P1.Y + f2*q.C.Y + f3*q.P2.Y,
	}
}

// Split subdivides the curve at t=0.5 into two quadratic curves. The left
// half ends and the right half starts at PointAt(0.5).
func (q QuadraticCurve) Split() (QuadraticCurve, QuadraticCurve) {
	c1 := q.P1.Interpolate(q.C, 0.5)
	c2 := q.C.Interpolate(q.P2, 0.5)
	m := c1.Interpolate(c2, 0.5)
	return QuadraticCurve{q.P1, c1, m}, QuadraticCurve{m, c2, q.P2}
}

// Length returns the arc length using the closed parabolic arc-length
// formula. The tolerance is only used by the degenerate fallbacks.
func (q QuadraticCurve) Length(tolerance float64) float64 {
	a, b := q.coefficients()
	aa := a.Dot(a)
	bb := b.Dot(b)
	if equal(aa, 0.0) || equal(bb, 0.0) {
		// straight line, or a single tangent direction
		return q.P2.Sub(q.P1).Length()
	}

	// the derivative is 2*a*t + b, so that the speed is sqrt(A*t^2 + B*t + C)
	A := 4.0 * aa
	B := 4.0 * a.Dot(b)
	C := bb

	sabc := 2.0 * math.Sqrt(A+B+C)
	a2 := math.Sqrt(A)
	a32 := 2.0 * A * a2
	c2 := 2.0 * math.Sqrt(C)
	ba := B / a2
	if ba+c2 <= 0.0 {
		// the logarithm in the closed form is undefined, the curve folds
		// back onto its own tangent
		return q.lengthThroughExtremum()
	}
	return (a32*sabc + a2*B*(sabc-c2) + (4.0*C*A-B*B)*math.Log((2.0*a2+ba+sabc)/(ba+c2))) / (4.0 * a32)
}

// lengthThroughExtremum returns the arc length of a numerically degenerate
// curve as the two chords through the curve's extremum along P1P2, or as the
// straight-line distance when that extremum lies outside (0,1).
func (q QuadraticCurve) lengthThroughExtremum() float64 {
	v := q.P2.Sub(q.P1)
	a, b := q.coefficients()
	denom := a.Dot(v)
	if equal(denom, 0.0) {
		return v.Length()
	}
	t := -0.5 * b.Dot(v) / denom
	if t <= 0.0 || 1.0 <= t {
		return v.Length()
	}
	p := q.PointAt(t)
	return p.Sub(q.P1).Length() + q.P2.Sub(p).Length()
}

// ToPoints flattens the curve into a polyline with maximum deviation
// tolerance, sampling uniformly in t with the expanded polynomial
// coefficients. The first and last points are exactly P1 and P2.
func (q QuadraticCurve) ToPoints(tolerance float64, includeFirst bool) []Point {
	n := curvePrecision(tolerance, q.P1, q.C, q.P2)
	if n < 2 {
		n = 2
	}
	a, b := q.coefficients()
	pts := make([]Point, 0, n+1)
	if includeFirst {
		pts = append(pts, q.P1)
	}
	for i := 1; i < n; i++ {
		t := float64(i) / float64(n)
		pts = append(pts, Point{
			q.P1.X + t*(b.X+t*a.X),
			q.P1.Y + t*(b.Y+t*a.Y),
		})
	}
	return append(pts, q.P2)
}

// Bounds returns the axis-aligned bounding box of the curve over [0,1].
func (q QuadraticCurve) Bounds() Rect {
	r := PointRect(q.P1).AddPoint(q.P2)
	// the derivative root per axis is at t = (p1-c) / (p1-2c+p2); a near-zero
	// denominator means there is no interior extremum on that axis
	if denom := q.P1.X - 2.0*q.C.X + q.P2.X; !equal(denom, 0.0) {
		if t := (q.P1.X - q.C.X) / denom; 0.0 < t && t < 1.0 {
			r = r.AddPoint(q.PointAt(t))
		}
	}
	if denom := q.P1.Y - 2.0*q.C.Y + q.P2.Y; !equal(denom, 0.0) {
		if t := (q.P1.Y - q.C.Y) / denom; 0.0 < t && t < 1.0 {
			r = r.AddPoint(q.PointAt(t))
		}
	}
	return r
}

// Transform applies the affine transformation matrix to the control points.
func (q QuadraticCurve) Transform(m Matrix) QuadraticCurve {
	return QuadraticCurve{m.Dot(q.P1), m.Dot(q.C), m.Dot(q.P2)}
}

// ToCubic raises the order by one, returning a cubic curve that exactly
// represents this quadratic.
func (q QuadraticCurve) ToCubic() CubicCurve {
	return CubicCurve{
		q.P1,
		q.P1.Interpolate(q.C, 2.0/3.0),
		q.P2.Interpolate(q.C, 2.0/3.0),
		q.P2,
	}
}
