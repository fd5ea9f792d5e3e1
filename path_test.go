package bgrabitmap

import (
	"math"
	"testing"

	"github.com/tdewolff/test"
)

func TestPathEmpty(t *testing.T) {
	p := &Path{}
	test.That(t, p.IsEmpty())
	p.MoveTo(2.0, 3.0)
	test.That(t, !p.IsEmpty())
	x, y := p.Pos()
	test.Float(t, x, 2.0)
	test.Float(t, y, 3.0)
}

func TestPathPos(t *testing.T) {
	p := &Path{}
	p.MoveTo(1.0, 1.0)
	p.LineTo(4.0, 5.0)
	x, y := p.Pos()
	test.Float(t, x, 4.0)
	test.Float(t, y, 5.0)

	// closing returns to the subpath start
	p.Close()
	x, y = p.Pos()
	test.Float(t, x, 1.0)
	test.Float(t, y, 1.0)

	p.ConicTo(2.0, 2.0, 0.5, 6.0, 0.0)
	x, y = p.Pos()
	test.Float(t, x, 6.0)
	test.Float(t, y, 0.0)
}

func TestPathAppend(t *testing.T) {
	p := &Path{}
	p.MoveTo(0.0, 0.0)
	p.LineTo(1.0, 0.0)
	q := &Path{}
	q.MoveTo(5.0, 5.0)
	q.LineTo(6.0, 5.0)
	p.Append(q)
	test.T(t, p.cmds, []PathCmd{MoveToCmd, LineToCmd, MoveToCmd, LineToCmd})
	test.T(t, p.d, []float64{0.0, 0.0, 1.0, 0.0, 5.0, 5.0, 6.0, 5.0})
}

func TestPathRect(t *testing.T) {
	p := &Path{}
	p.Rect(0.0, 0.0, 10.0, 5.0)
	test.Float(t, p.Length(0.01), 30.0)
	test.T(t, p.Bounds(), Rect{0.0, 0.0, 10.0, 5.0})

	polylines := p.Flatten(0.01)
	test.T(t, len(polylines), 1)
	test.That(t, polylines[0].Closed())
	test.T(t, polylines[0].Coords(), []Point{{0.0, 0.0}, {10.0, 0.0}, {10.0, 5.0}, {0.0, 5.0}, {0.0, 0.0}})
}

func TestPathEllipse(t *testing.T) {
	p := &Path{}
	p.Ellipse(0.0, 0.0, 2.0, 1.0)
	b := p.Bounds()
	test.That(t, math.Abs(b.X+2.0) < 1e-9)
	test.That(t, math.Abs(b.Y+1.0) < 1e-9)
	test.That(t, math.Abs(b.W-4.0) < 1e-9)
	test.That(t, math.Abs(b.H-2.0) < 1e-9)

	// circle circumference
	c := &Path{}
	c.Ellipse(0.0, 0.0, 1.0, 1.0)
	test.That(t, math.Abs(c.Length(0.0001)-2.0*math.Pi) < 1e-3)
}

func TestPathArcTo(t *testing.T) {
	p := &Path{}
	p.MoveTo(-1.0, 0.0)
	p.ArcTo(1.0, 1.0, 0.0, false, true, 1.0, 0.0)
	x, y := p.Pos()
	test.Float(t, x, 1.0)
	test.Float(t, y, 0.0)
	test.That(t, math.Abs(p.Length(0.0001)-math.Pi) < 1e-3)

	// semicircle is stored as two quarter-turn rational segments
	n := 0
	for _, cmd := range p.cmds {
		if cmd == ConicToCmd {
			n++
		}
	}
	test.T(t, n, 2)

	// a degenerate arc is dropped
	p = &Path{}
	p.MoveTo(1.0, 1.0)
	p.ArcTo(5.0, 5.0, 0.0, false, false, 1.0, 1.0)
	test.T(t, len(p.cmds), 1)
}

func TestPathFlatten(t *testing.T) {
	p := &Path{}
	p.MoveTo(0.0, 0.0)
	p.LineTo(1.0, 0.0)
	p.MoveTo(5.0, 5.0)
	p.LineTo(6.0, 5.0)
	polylines := p.Flatten(0.01)
	test.T(t, len(polylines), 2)
	test.T(t, polylines[1].Coords(), []Point{{5.0, 5.0}, {6.0, 5.0}})

	// a path without MoveTo starts at the origin
	p = &Path{}
	p.LineTo(3.0, 4.0)
	polylines = p.Flatten(0.01)
	test.T(t, len(polylines), 1)
	test.T(t, polylines[0].Coords(), []Point{{0.0, 0.0}, {3.0, 4.0}})

	// curve segments flatten within tolerance of the chord deviation
	p = &Path{}
	p.MoveTo(0.0, 0.0)
	p.QuadTo(1.0, 1.0, 2.0, 0.0)
	coords := p.Flatten(0.01)[0].Coords()
	test.That(t, 3 <= len(coords))
	test.T(t, coords[0], Point{0.0, 0.0})
	test.T(t, coords[len(coords)-1], Point{2.0, 0.0})
}

func TestPathInfiniteConic(t *testing.T) {
	p := &Path{}
	p.MoveTo(0.0, 0.0)
	p.ConicTo(1.0, 1.0, -2.0, 2.0, 0.0)
	test.T(t, p.Bounds(), Rect{})
	test.That(t, math.IsInf(p.Length(0.1), 1))

	polylines := p.Flatten(0.1)
	test.T(t, len(polylines), 1)
	test.T(t, len(polylines[0].Runs()), 3)
}

func TestPathTransform(t *testing.T) {
	p := &Path{}
	p.MoveTo(0.0, 0.0)
	p.ConicTo(1.0, 1.0, 0.75, 2.0, 0.0)
	q := p.Transform(Identity.Translate(1.0, 2.0).Scale(2.0, 1.0))
	test.T(t, q.d, []float64{1.0, 2.0, 3.0, 3.0, 0.75, 5.0, 2.0})

	// the original is left untouched
	test.T(t, p.d, []float64{0.0, 0.0, 1.0, 1.0, 0.75, 2.0, 0.0})
}

func TestParseSVGPath(t *testing.T) {
	var tts = []struct {
		orig string
		cmds []PathCmd
		d    []float64
	}{
		{"M10 0L20 10", []PathCmd{MoveToCmd, LineToCmd}, []float64{10.0, 0.0, 20.0, 10.0}},
		{"m10 0l5 5l5 -5", []PathCmd{MoveToCmd, LineToCmd, LineToCmd}, []float64{10.0, 0.0, 15.0, 5.0, 20.0, 0.0}},
		{"M0 0H10V5h-10z", []PathCmd{MoveToCmd, LineToCmd, LineToCmd, LineToCmd, CloseCmd}, []float64{0.0, 0.0, 10.0, 0.0, 10.0, 5.0, 0.0, 5.0}},
		{"M0 0Q5 10 10 0T20 0", []PathCmd{MoveToCmd, QuadToCmd, QuadToCmd}, []float64{0.0, 0.0, 5.0, 10.0, 10.0, 0.0, 15.0, -10.0, 20.0, 0.0}},
		{"M0 0C0 10 10 10 10 0S20 -10 20 0", []PathCmd{MoveToCmd, CubeToCmd, CubeToCmd}, []float64{0.0, 0.0, 0.0, 10.0, 10.0, 10.0, 10.0, 0.0, 10.0, -10.0, 20.0, -10.0, 20.0, 0.0}},
		{"M0 0 10 10 20 0", []PathCmd{MoveToCmd, LineToCmd, LineToCmd}, []float64{0.0, 0.0, 10.0, 10.0, 20.0, 0.0}},
	}
	for _, tt := range tts {
		t.Run(tt.orig, func(t *testing.T) {
			p := ParseSVGPath([]byte(tt.orig))
			test.T(t, p.cmds, tt.cmds)
			test.T(t, p.d, tt.d)
		})
	}
}

func TestParseSVGPathArc(t *testing.T) {
	p := ParseSVGPath([]byte("M-1 0A1 1 0 0 1 1 0"))
	x, y := p.Pos()
	test.Float(t, x, 1.0)
	test.Float(t, y, 0.0)
	test.That(t, math.Abs(p.Length(0.0001)-math.Pi) < 1e-3)

	b := p.Bounds()
	test.That(t, math.Abs(b.W-2.0) < 1e-9)
	test.That(t, math.Abs(b.H-1.0) < 1e-9)
}
