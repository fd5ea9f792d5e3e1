package bgrabitmap

import (
	"fmt"
	"math"
	"testing"

	"github.com/tdewolff/test"
)

func TestCubicCurvePointAt(t *testing.T) {
	c := NewCubicCurve(Point{0.0, 0.0}, Point{0.0, 1.0}, Point{1.0, 1.0}, Point{1.0, 0.0})
	test.T(t, c.PointAt(0.0), c.P1)
	test.T(t, c.PointAt(1.0), c.P2)
	test.T(t, c.PointAt(0.5), Point{0.5, 0.75})
}

func TestCubicCurveSplit(t *testing.T) {
	var tts = []CubicCurve{
		{Point{0.0, 0.0}, Point{0.0, 1.0}, Point{1.0, 1.0}, Point{1.0, 0.0}},
		{Point{-2.0, 1.0}, Point{3.0, 4.0}, Point{-1.0, -3.0}, Point{5.0, 2.0}},
		{Point{0.0, 0.0}, Point{1.0, 0.0}, Point{2.0, 0.0}, Point{3.0, 0.0}},
	}
	for i, c := range tts {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			left, right := c.Split()
			test.T(t, left.P1, c.P1)
			test.T(t, right.P2, c.P2)
			test.That(t, left.P2.Equals(right.P1))
			test.That(t, left.P2.Equals(c.PointAt(0.5)))
			test.T(t, left.C1, c.P1.Interpolate(c.C1, 0.5))
			test.T(t, right.C2, c.C2.Interpolate(c.P2, 0.5))
			test.That(t, left.PointAt(0.5).Equals(c.PointAt(0.25)))
			test.That(t, right.PointAt(0.5).Equals(c.PointAt(0.75)))
		})
	}
}

func TestCubicCurveLength(t *testing.T) {
	c := LineCurve(Point{0.0, 0.0}, Point{3.0, 4.0})
	test.Float(t, c.Length(0.01), 5.0)

	// the speed of this curve is the polynomial 3-6t+6t^2, so its length is
	// exactly 2; the chord sums approach it from below as the tolerance drops
	c = NewCubicCurve(Point{0.0, 0.0}, Point{0.0, 1.0}, Point{1.0, 1.0}, Point{1.0, 0.0})
	l1 := c.Length(0.01)
	l2 := c.Length(0.0001)
	test.That(t, l1 <= l2)
	test.That(t, l2 <= 2.0)
	test.That(t, math.Abs(l2-2.0) < 0.01)
}

func TestCubicCurveToPoints(t *testing.T) {
	c := NewCubicCurve(Point{0.0, 0.0}, Point{0.0, 1.0}, Point{1.0, 1.0}, Point{1.0, 0.0})
	pts := c.ToPoints(0.01, true)
	test.That(t, 3 <= len(pts))
	test.T(t, pts[0], c.P1)
	test.T(t, pts[len(pts)-1], c.P2)

	tail := c.ToPoints(0.01, false)
	test.T(t, tail, pts[1:])

	test.That(t, len(pts) <= len(c.ToPoints(0.001, true)))

	for i, pt := range pts {
		u := float64(i) / float64(len(pts)-1)
		test.That(t, pt.Equals(c.PointAt(u)))
	}
}

func TestCubicCurveBounds(t *testing.T) {
	c := NewCubicCurve(Point{0.0, 0.0}, Point{0.0, 1.0}, Point{1.0, 1.0}, Point{1.0, 0.0})
	test.T(t, c.Bounds(), Rect{0.0, 0.0, 1.0, 0.75})

	// straight line
	test.T(t, LineCurve(Point{1.0, 1.0}, Point{4.0, 2.0}).Bounds(), Rect{1.0, 1.0, 3.0, 1.0})

	// endpoints are not the extremes in x
	c = NewCubicCurve(Point{0.0, 0.0}, Point{-2.0, 0.0}, Point{3.0, 1.0}, Point{1.0, 1.0})
	b := c.Bounds()
	test.That(t, b.X < 0.0)
	test.That(t, 1.0 < b.X+b.W)
}

func TestLineCurve(t *testing.T) {
	c := LineCurve(Point{1.0, 2.0}, Point{4.0, 8.0})
	test.T(t, c.P1, Point{1.0, 2.0})
	test.T(t, c.P2, Point{4.0, 8.0})
	for _, u := range []float64{0.25, 0.5, 0.75} {
		test.That(t, c.PointAt(u).Equals(c.P1.Interpolate(c.P2, u)))
	}
}

func TestCubicCurveTransform(t *testing.T) {
	c := NewCubicCurve(Point{0.0, 0.0}, Point{0.0, 1.0}, Point{1.0, 1.0}, Point{1.0, 0.0})
	m := Identity.Rotate(90.0)
	ct := c.Transform(m)
	test.That(t, ct.PointAt(0.5).Equals(m.Dot(c.PointAt(0.5))))
	test.That(t, ct.P2.Equals(Point{0.0, 1.0}))
}
