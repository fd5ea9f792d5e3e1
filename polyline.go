package bgrabitmap

import (
	"golang.org/x/image/math/f32"
	"golang.org/x/image/math/fixed"
)

// Polyline is a list of points in 2D space that approximates a curve or
// path. The coordinates may contain the "no value" point as a discontinuity
// marker; the runs between markers are independent polylines and are never
// connected. If the last coordinate of a run equals its first, the run is
// assumed to close itself.
type Polyline struct {
	coords []Point
}

// PolylineFromCurve returns a polyline approximating the curve with maximum
// deviation tolerance.
func PolylineFromCurve(c Curve, tolerance float64) *Polyline {
	return &Polyline{c.ToPoints(tolerance, true)}
}

// Empty returns true if the polyline has no segments.
func (p *Polyline) Empty() bool {
	return len(p.coords) < 2
}

// Add adds a new point to the polyline.
func (p *Polyline) Add(x, y float64) *Polyline {
	p.coords = append(p.coords, Point{x, y})
	return p
}

// Break marks a discontinuity; the following points form a new independent
// polyline.
func (p *Polyline) Break() *Polyline {
	p.coords = append(p.coords, EmptyPoint)
	return p
}

// Close adds a new point equal to the first, closing the polyline.
func (p *Polyline) Close() *Polyline {
	if 0 < len(p.coords) {
		p.coords = append(p.coords, p.coords[0])
	}
	return p
}

// Closed returns true if the last point coincides with the first.
func (p *Polyline) Closed() bool {
	return 0 < len(p.coords) && !p.coords[0].IsEmpty() && p.coords[0].Equals(p.coords[len(p.coords)-1])
}

// Coords returns the list of coordinates of the polyline, including any
// discontinuity markers.
func (p *Polyline) Coords() []Point {
	return p.coords
}

// Runs returns the contiguous runs of the polyline, split at the
// discontinuity markers. Empty runs are dropped.
func (p *Polyline) Runs() [][]Point {
	runs := [][]Point{}
	start := 0
	for i, coord := range p.coords {
		if coord.IsEmpty() {
			if start < i {
				runs = append(runs, p.coords[start:i])
			}
			start = i + 1
		}
	}
	if start < len(p.coords) {
		runs = append(runs, p.coords[start:])
	}
	return runs
}

// Length returns the total length of the polyline's segments, not connecting
// across discontinuity markers.
func (p *Polyline) Length() float64 {
	return polylineLength(p.coords)
}

// Bounds returns the axis-aligned bounding box over all points of the
// polyline, or the zero Rect if it has none.
func (p *Polyline) Bounds() Rect {
	r, seeded := Rect{}, false
	for _, coord := range p.coords {
		if coord.IsEmpty() {
			continue
		}
		if !seeded {
			r, seeded = PointRect(coord), true
		} else {
			r = r.AddPoint(coord)
		}
	}
	return r
}

// ToF32 converts the polyline's runs to float32 vertex slices for the
// rendering stage.
func (p *Polyline) ToF32() [][]f32.Vec2 {
	runs := p.Runs()
	out := make([][]f32.Vec2, len(runs))
	for i, run := range runs {
		vs := make([]f32.Vec2, len(run))
		for j, coord := range run {
			vs[j] = toF32Vec(coord)
		}
		out[i] = vs
	}
	return out
}

// ToFixed converts the polyline's runs to 26.6 fixed-point vertex slices for
// the rendering stage.
func (p *Polyline) ToFixed() [][]fixed.Point26_6 {
	runs := p.Runs()
	out := make([][]fixed.Point26_6, len(runs))
	for i, run := range runs {
		vs := make([]fixed.Point26_6, len(run))
		for j, coord := range run {
			vs[j] = toP26_6(coord)
		}
		out[i] = vs
	}
	return out
}
