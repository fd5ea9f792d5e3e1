package bgrabitmap

// CubicCurve is a cubic Bézier curve from P1 to P2 with control points C1
// and C2.
type CubicCurve struct {
	P1, C1, C2, P2 Point
}

// NewCubicCurve returns the cubic Bézier curve from p1 to p2 with control
// points c1 and c2.
func NewCubicCurve(p1, c1, c2, p2 Point) CubicCurve {
	return CubicCurve{p1, c1, c2, p2}
}

// LineCurve returns the cubic Bézier curve that renders the straight segment
// from p1 to p2, with its control points at one and two thirds.
func LineCurve(p1, p2 Point) CubicCurve {
	return CubicCurve{p1, p1.Interpolate(p2, 1.0/3.0), p1.Interpolate(p2, 2.0/3.0), p2}
}

// coefficients returns the expanded polynomial coefficients a1, a2, a3 so
// that the curve evaluates as P1 + t*(a1 + t*(a2 + t*a3)).
func (c CubicCurve) coefficients() (Point, Point, Point) {
	a1 := c.C1.Sub(c.P1).Mul(3.0)
	a2 := c.P1.Sub(c.C1.Mul(2.0)).Add(c.C2).Mul(3.0)
	a3 := c.P2.Sub(c.P1).Add(c.C1.Sub(c.C2).Mul(3.0))
	return a1, a2, a3
}

// PointAt evaluates the curve at t. The curve is a global polynomial, so t
// is not restricted to [0,1].
func (c CubicCurve) PointAt(t float64) Point {
	a1, a2, a3 := c.coefficients()
	return Point{
		c.P1.X + t*(a1.X+t*(a2.X+t*a3.X)),
		c.P1.Y + t*(a1.Y+t*(a2.Y+t*a3.Y)),
	}
}

// Split subdivides the curve at t=0.5 into two cubic curves. All new control
// points are successive midpoints of the original control polygon; the left
// half ends and the right half starts at PointAt(0.5).
func (c CubicCurve) Split() (CubicCurve, CubicCurve) {
	c1 := c.P1.Interpolate(c.C1, 0.5)
	midc := c.C1.Interpolate(c.C2, 0.5)
	c2 := c.C2.Interpolate(c.P2, 0.5)
	leftC2 := c1.Interpolate(midc, 0.5)
	rightC1 := midc.Interpolate(c2, 0.5)
	m := leftC2.Interpolate(rightC1, 0.5)
	return CubicCurve{c.P1, c1, leftC2, m}, CubicCurve{m, rightC1, c2, c.P2}
}

// Length approximates the arc length by uniform polyline sampling. There is
// no closed form for cubic arc length; sampling uses half the tolerance so
// that accumulation error stays below the deviation of a plain flattening.
func (c CubicCurve) Length(tolerance float64) float64 {
	return polylineLength(c.ToPoints(0.5*tolerance, true))
}

// ToPoints flattens the curve into a polyline with maximum deviation
// tolerance, sampling uniformly in t. The first and last points are exactly
// P1 and P2.
func (c CubicCurve) ToPoints(tolerance float64, includeFirst bool) []Point {
	n := curvePrecision(tolerance, c.P1, c.C1, c.C2, c.P2)
	if n < 2 {
		n = 2
	}
	a1, a2, a3 := c.coefficients()
	pts := make([]Point, 0, n+1)
	if includeFirst {
		pts = append(pts, c.P1)
	}
	for i := 1; i < n; i++ {
		t := float64(i) / float64(n)
		pts = append(pts, Point{
			c.P1.X + t*(a1.X+t*(a2.X+t*a3.X)),
			c.P1.Y + t*(a1.Y+t*(a2.Y+t*a3.Y)),
		})
	}
	return append(pts, c.P2)
}

// Bounds returns the axis-aligned bounding box of the curve over [0,1]. The
// derivative per axis is a quadratic in t whose roots give the candidate
// extrema; only roots strictly inside (0,1) contribute.
func (c CubicCurve) Bounds() Rect {
	r := PointRect(c.P1).AddPoint(c.P2)

	ax := -3.0*c.P1.X + 9.0*c.C1.X - 9.0*c.C2.X + 3.0*c.P2.X
	bx := 6.0*c.P1.X - 12.0*c.C1.X + 6.0*c.C2.X
	cx := 3.0*c.C1.X - 3.0*c.P1.X
	t1, t2 := solveQuadraticFormula(ax, bx, cx)
	if 0.0 < t1 && t1 < 1.0 {
		r = r.AddPoint(c.PointAt(t1))
	}
	if 0.0 < t2 && t2 < 1.0 {
		r = r.AddPoint(c.PointAt(t2))
	}

	ay := -3.0*c.P1.Y + 9.0*c.C1.Y - 9.0*c.C2.Y + 3.0*c.P2.Y
	by := 6.0*c.P1.Y - 12.0*c.C1.Y + 6.0*c.C2.Y
	cy := 3.0*c.C1.Y - 3.0*c.P1.Y
	t1, t2 = solveQuadraticFormula(ay, by, cy)
	if 0.0 < t1 && t1 < 1.0 {
		r = r.AddPoint(c.PointAt(t1))
	}
	if 0.0 < t2 && t2 < 1.0 {
		r = r.AddPoint(c.PointAt(t2))
	}
	return r
}

// Transform applies the affine transformation matrix to the control points.
func (c CubicCurve) Transform(m Matrix) CubicCurve {
	return CubicCurve{m.Dot(c.P1), m.Dot(c.C1), m.Dot(c.C2), m.Dot(c.P2)}
}
