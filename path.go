package bgrabitmap

import (
	"math"

	"github.com/tdewolff/parse/v2/strconv"
)

type PathCmd int

const (
	MoveToCmd PathCmd = iota
	LineToCmd
	QuadToCmd
	ConicToCmd
	CubeToCmd
	CloseCmd
)

// Path is a sequence of line and curve segments. Elliptical arcs are stored
// as rational quadratic segments, one per quarter turn at most.
type Path struct {
	cmds []PathCmd
	d    []float64
	x0   float64
	y0   float64
}

func (p *Path) IsEmpty() bool {
	return len(p.cmds) == 0
}

func (p *Path) Append(q *Path) {
	p.cmds = append(p.cmds, q.cmds...)
	p.d = append(p.d, q.d...)
}

func (p *Path) Pos() (float64, float64) {
	if len(p.cmds) > 0 && p.cmds[len(p.cmds)-1] == CloseCmd {
		return p.x0, p.y0
	}
	if len(p.d) > 1 {
		return p.d[len(p.d)-2], p.d[len(p.d)-1]
	}
	return 0.0, 0.0
}

////////////////////////////////////////////////////////////////

func (p *Path) MoveTo(x, y float64) {
	p.cmds = append(p.cmds, MoveToCmd)
	p.d = append(p.d, x, y)
	p.x0, p.y0 = x, y
}

func (p *Path) LineTo(x, y float64) {
	p.cmds = append(p.cmds, LineToCmd)
	p.d = append(p.d, x, y)
}

func (p *Path) QuadTo(x1, y1, x, y float64) {
	p.cmds = append(p.cmds, QuadToCmd)
	p.d = append(p.d, x1, y1, x, y)
}

// ConicTo adds a rational quadratic segment with control point (x1,y1)
// carrying weight w, ending at (x,y).
func (p *Path) ConicTo(x1, y1, w, x, y float64) {
	p.cmds = append(p.cmds, ConicToCmd)
	p.d = append(p.d, x1, y1, w, x, y)
}

func (p *Path) CubeTo(x1, y1, x2, y2, x, y float64) {
	p.cmds = append(p.cmds, CubeToCmd)
	p.d = append(p.d, x1, y1, x2, y2, x, y)
}

// ArcTo adds an elliptical arc with radii rx and ry, with rot the rotation
// with respect to the coordinate system in degrees, large and sweep the SVG
// arc flags, ending at (x,y). The arc is converted into rational quadratic
// segments of at most a quarter turn each.
func (p *Path) ArcTo(rx, ry, rot float64, large, sweep bool, x, y float64) {
	x1, y1 := p.Pos()
	if equal(x1, x) && equal(y1, y) {
		return
	}

	cx, cy, theta0, theta1 := arcToCenter(x1, y1, rx, ry, rot, large, sweep, x, y)
	n := int(math.Ceil(math.Abs(theta1-theta0) / 90.0))
	if n == 0 {
		p.LineTo(x, y)
		return
	}
	for i := 0; i < n; i++ {
		a0 := theta0 + (theta1-theta0)*float64(i)/float64(n)
		a1 := theta0 + (theta1-theta0)*float64(i+1)/float64(n)
		q := ArcCurve(Point{cx, cy}, rx, ry, rot, a0, a1)
		end := q.P2
		if i == n-1 {
			// avoid drift on the final endpoint
			end = Point{x, y}
		}
		p.ConicTo(q.C.X, q.C.Y, q.W, end.X, end.Y)
	}
}

func (p *Path) Close() {
	p.cmds = append(p.cmds, CloseCmd)
}

////////////////////////////////////////////////////////////////

func (p *Path) Rect(x, y, w, h float64) {
	p.MoveTo(x, y)
	p.LineTo(x+w, y)
	p.LineTo(x+w, y+h)
	p.LineTo(x, y+h)
	p.Close()
}

func (p *Path) Ellipse(x, y, rx, ry float64) {
	p.MoveTo(x+rx, y)
	p.ArcTo(rx, ry, 0.0, false, false, x-rx, y)
	p.ArcTo(rx, ry, 0.0, false, false, x+rx, y)
	p.Close()
}

////////////////////////////////////////////////////////////////

// Flatten approximates the path by polylines, one per subpath, each
// deviating at most tolerance from the original segments. Rational segments
// with infinite branches yield discontinuity markers inside their polyline.
func (p *Path) Flatten(tolerance float64) []*Polyline {
	polylines := []*Polyline{}
	var cur *Polyline
	var start, pos Point
	i := 0
	for _, cmd := range p.cmds {
		if cur == nil && cmd != MoveToCmd {
			cur = &Polyline{[]Point{pos}}
			polylines = append(polylines, cur)
			start = pos
		}
		switch cmd {
		case MoveToCmd:
			pos = Point{p.d[i+0], p.d[i+1]}
			i += 2
			cur = &Polyline{[]Point{pos}}
			polylines = append(polylines, cur)
			start = pos
		case LineToCmd:
			pos = Point{p.d[i+0], p.d[i+1]}
			i += 2
			cur.coords = append(cur.coords, pos)
		case QuadToCmd:
			c := Point{p.d[i+0], p.d[i+1]}
			end := Point{p.d[i+2], p.d[i+3]}
			i += 4
			q := QuadraticCurve{pos, c, end}
			cur.coords = append(cur.coords, q.ToPoints(tolerance, false)...)
			pos = end
		case ConicToCmd:
			c := Point{p.d[i+0], p.d[i+1]}
			w := p.d[i+2]
			end := Point{p.d[i+3], p.d[i+4]}
			i += 5
			q := RationalQuadraticCurve{pos, c, end, w}
			cur.coords = append(cur.coords, q.ToPoints(tolerance, false)...)
			pos = end
		case CubeToCmd:
			c1 := Point{p.d[i+0], p.d[i+1]}
			c2 := Point{p.d[i+2], p.d[i+3]}
			end := Point{p.d[i+4], p.d[i+5]}
			i += 6
			c := CubicCurve{pos, c1, c2, end}
			cur.coords = append(cur.coords, c.ToPoints(tolerance, false)...)
			pos = end
		case CloseCmd:
			if !pos.Equals(start) {
				cur.coords = append(cur.coords, start)
			}
			pos = start
		}
	}
	return polylines
}

// Length returns the total length of the path's segments.
func (p *Path) Length(tolerance float64) float64 {
	d := 0.0
	var start, pos Point
	i := 0
	for _, cmd := range p.cmds {
		switch cmd {
		case MoveToCmd:
			pos = Point{p.d[i+0], p.d[i+1]}
			i += 2
			start = pos
		case LineToCmd:
			end := Point{p.d[i+0], p.d[i+1]}
			i += 2
			d += end.Sub(pos).Length()
			pos = end
		case QuadToCmd:
			c := Point{p.d[i+0], p.d[i+1]}
			end := Point{p.d[i+2], p.d[i+3]}
			i += 4
			d += QuadraticCurve{pos, c, end}.Length(tolerance)
			pos = end
		case ConicToCmd:
			c := Point{p.d[i+0], p.d[i+1]}
			w := p.d[i+2]
			end := Point{p.d[i+3], p.d[i+4]}
			i += 5
			d += RationalQuadraticCurve{pos, c, end, w}.Length(tolerance)
			pos = end
		case CubeToCmd:
			c1 := Point{p.d[i+0], p.d[i+1]}
			c2 := Point{p.d[i+2], p.d[i+3]}
			end := Point{p.d[i+4], p.d[i+5]}
			i += 6
			d += CubicCurve{pos, c1, c2, end}.Length(tolerance)
			pos = end
		case CloseCmd:
			d += start.Sub(pos).Length()
			pos = start
		}
	}
	return d
}

// Bounds returns the axis-aligned bounding box over all segments of the
// path. A segment with infinite branches makes the result the empty
// rectangle.
func (p *Path) Bounds() Rect {
	r, seeded := Rect{}, false
	grow := func(q Rect) {
		if seeded {
			r = r.Add(q)
		} else {
			r, seeded = q, true
		}
	}
	growPoint := func(pt Point) {
		if seeded {
			r = r.AddPoint(pt)
		} else {
			r, seeded = PointRect(pt), true
		}
	}

	var pos Point
	i := 0
	for _, cmd := range p.cmds {
		switch cmd {
		case MoveToCmd, LineToCmd:
			end := Point{p.d[i+0], p.d[i+1]}
			i += 2
			if cmd == LineToCmd {
				growPoint(pos)
			}
			growPoint(end)
			pos = end
		case QuadToCmd:
			c := Point{p.d[i+0], p.d[i+1]}
			end := Point{p.d[i+2], p.d[i+3]}
			i += 4
			grow(QuadraticCurve{pos, c, end}.Bounds())
			pos = end
		case ConicToCmd:
			c := Point{p.d[i+0], p.d[i+1]}
			w := p.d[i+2]
			end := Point{p.d[i+3], p.d[i+4]}
			i += 5
			q := RationalQuadraticCurve{pos, c, end, w}
			if q.IsInfinite() {
				return Rect{}
			}
			grow(q.Bounds())
			pos = end
		case CubeToCmd:
			c1 := Point{p.d[i+0], p.d[i+1]}
			c2 := Point{p.d[i+2], p.d[i+3]}
			end := Point{p.d[i+4], p.d[i+5]}
			i += 6
			grow(CubicCurve{pos, c1, c2, end}.Bounds())
			pos = end
		}
	}
	return r
}

// Transform applies the affine transformation matrix to all segment
// coordinates and returns the result as a new path. Rational segment weights
// are invariant.
func (p *Path) Transform(m Matrix) *Path {
	q := &Path{
		cmds: append([]PathCmd{}, p.cmds...),
		d:    append([]float64{}, p.d...),
	}
	start := m.Dot(Point{p.x0, p.y0})
	q.x0, q.y0 = start.X, start.Y
	i := 0
	mapPt := func(j int) {
		pt := m.Dot(Point{q.d[j], q.d[j+1]})
		q.d[j], q.d[j+1] = pt.X, pt.Y
	}
	for _, cmd := range p.cmds {
		switch cmd {
		case MoveToCmd, LineToCmd:
			mapPt(i)
			i += 2
		case QuadToCmd:
			mapPt(i)
			mapPt(i + 2)
			i += 4
		case ConicToCmd:
			mapPt(i)
			mapPt(i + 3)
			i += 5
		case CubeToCmd:
			mapPt(i)
			mapPt(i + 2)
			mapPt(i + 4)
			i += 6
		}
	}
	return q
}

////////////////////////////////////////////////////////////////

// arcToCenter converts an arc from the SVG endpoint parameterization to the
// center with start and end angles in degrees, following the W3C SVG
// implementation notes.
func arcToCenter(x1, y1, rx, ry, rot float64, large, sweep bool, x2, y2 float64) (float64, float64, float64, float64) {
	if x1 == x2 && y1 == y2 {
		return x1, y1, 0.0, 0.0
	}

	rot *= math.Pi / 180.0
	x1p := math.Cos(rot)*(x1-x2)/2.0 + math.Sin(rot)*(y1-y2)/2.0
	y1p := -math.Sin(rot)*(x1-x2)/2.0 + math.Cos(rot)*(y1-y2)/2.0

	// scale up radii that are too small to span the endpoints
	radiiCheck := x1p*x1p/rx/rx + y1p*y1p/ry/ry
	if radiiCheck > 1.0 {
		rx *= math.Sqrt(radiiCheck)
		ry *= math.Sqrt(radiiCheck)
	}

	sq := (rx*rx*ry*ry - rx*rx*y1p*y1p - ry*ry*x1p*x1p) / (rx*rx*y1p*y1p + ry*ry*x1p*x1p)
	if sq < 0.0 {
		sq = 0.0
	}
	coef := math.Sqrt(sq)
	if large == sweep {
		coef = -coef
	}
	cxp := coef * rx * y1p / ry
	cyp := coef * -ry * x1p / rx
	cx := math.Cos(rot)*cxp - math.Sin(rot)*cyp + (x1+x2)/2.0
	cy := math.Sin(rot)*cxp + math.Cos(rot)*cyp + (y1+y2)/2.0

	// angles between the x-axis and the start and end vectors u and v
	ux := (x1p - cxp) / rx
	uy := (y1p - cyp) / ry
	vx := -(x1p + cxp) / rx
	vy := -(y1p + cyp) / ry

	theta := math.Acos(ux / math.Sqrt(ux*ux+uy*uy))
	if uy < 0.0 {
		theta = -theta
	}
	theta *= 180.0 / math.Pi

	delta := math.Acos((ux*vx + uy*vy) / math.Sqrt((ux*ux+uy*uy)*(vx*vx+vy*vy)))
	if ux*vy-uy*vx < 0.0 {
		delta = -delta
	}
	delta *= 180.0 / math.Pi
	if !sweep && delta > 0.0 {
		delta -= 360.0
	} else if sweep && delta < 0.0 {
		delta += 360.0
	}
	return cx, cy, theta, theta + delta
}

////////////////////////////////////////////////////////////////

func skipCommaWhitespace(path []byte) int {
	i := 0
	for i < len(path) && (path[i] == ' ' || path[i] == ',' || path[i] == '\n' || path[i] == '\r' || path[i] == '\t') {
		i++
	}
	return i
}

func parseNum(path []byte) (float64, int) {
	i := skipCommaWhitespace(path)
	f, n := strconv.ParseFloat(path[i:])
	return f, i + n
}

// ParseSVGPath parses an SVG path data string.
func ParseSVGPath(path []byte) *Path {
	p := &Path{}

	var prevCmd byte
	cpx, cpy := 0.0, 0.0 // control points

	i := 0
	for i < len(path) {
		i += skipCommaWhitespace(path[i:])
		if i == len(path) {
			break
		}
		cmd := prevCmd
		if path[i] >= 'A' {
			cmd = path[i]
			i++
		}
		x, y := p.Pos()
		switch cmd {
		case 'M', 'm':
			a, n := parseNum(path[i:])
			i += n
			b, n := parseNum(path[i:])
			i += n
			if cmd == 'm' {
				a += x
				b += y
			}
			p.MoveTo(a, b)
		case 'Z', 'z':
			p.Close()
		case 'L', 'l':
			a, n := parseNum(path[i:])
			i += n
			b, n := parseNum(path[i:])
			i += n
			if cmd == 'l' {
				a += x
				b += y
			}
			p.LineTo(a, b)
		case 'H', 'h':
			a, n := parseNum(path[i:])
			i += n
			if cmd == 'h' {
				a += x
			}
			p.LineTo(a, y)
		case 'V', 'v':
			b, n := parseNum(path[i:])
			i += n
			if cmd == 'v' {
				b += y
			}
			p.LineTo(x, b)
		case 'C', 'c':
			a, n := parseNum(path[i:])
			i += n
			b, n := parseNum(path[i:])
			i += n
			c, n := parseNum(path[i:])
			i += n
			d, n := parseNum(path[i:])
			i += n
			e, n := parseNum(path[i:])
			i += n
			f, n := parseNum(path[i:])
			i += n
			if cmd == 'c' {
				a += x
				b += y
				c += x
				d += y
				e += x
				f += y
			}
			p.CubeTo(a, b, c, d, e, f)
			cpx, cpy = c, d
		case 'S', 's':
			c, n := parseNum(path[i:])
			i += n
			d, n := parseNum(path[i:])
			i += n
			e, n := parseNum(path[i:])
			i += n
			f, n := parseNum(path[i:])
			i += n
			if cmd == 's' {
				c += x
				d += y
				e += x
				f += y
			}
			a, b := x, y
			if prevCmd == 'C' || prevCmd == 'c' || prevCmd == 'S' || prevCmd == 's' {
				a, b = 2*x-cpx, 2*y-cpy
			}
			p.CubeTo(a, b, c, d, e, f)
			cpx, cpy = c, d
		case 'Q', 'q':
			a, n := parseNum(path[i:])
			i += n
			b, n := parseNum(path[i:])
			i += n
			c, n := parseNum(path[i:])
			i += n
			d, n := parseNum(path[i:])
			i += n
			if cmd == 'q' {
				a += x
				b += y
				c += x
				d += y
			}
			p.QuadTo(a, b, c, d)
			cpx, cpy = a, b
		case 'T', 't':
			c, n := parseNum(path[i:])
			i += n
			d, n := parseNum(path[i:])
			i += n
			if cmd == 't' {
				c += x
				d += y
			}
			a, b := x, y
			if prevCmd == 'Q' || prevCmd == 'q' || prevCmd == 'T' || prevCmd == 't' {
				a, b = 2*x-cpx, 2*y-cpy
			}
			p.QuadTo(a, b, c, d)
			cpx, cpy = a, b
		case 'A', 'a':
			a, n := parseNum(path[i:])
			i += n
			b, n := parseNum(path[i:])
			i += n
			c, n := parseNum(path[i:])
			i += n
			d, n := parseNum(path[i:])
			i += n
			e, n := parseNum(path[i:])
			i += n
			f, n := parseNum(path[i:])
			i += n
			g, n := parseNum(path[i:])
			i += n
			if cmd == 'a' {
				f += x
				g += y
			}
			large := math.Abs(d-1.0) < 1e-10
			sweep := math.Abs(e-1.0) < 1e-10
			p.ArcTo(a, b, c, large, sweep, f, g)
		}
		// coordinate pairs after a moveto are implicit lineto commands
		if cmd == 'M' {
			prevCmd = 'L'
		} else if cmd == 'm' {
			prevCmd = 'l'
		} else {
			prevCmd = cmd
		}
	}
	return p
}
