// seehuhn.de/go/ink - a freehand ink engine
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package brush

import (
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// DistanceToSegment returns the distance from p to the segment a–b.
func DistanceToSegment(p, a, b vec.Vec2) float64 {
	ab := b.Sub(a)
	l2 := ab.Dot(ab)
	if l2 == 0 {
		return p.Sub(a).Length()
	}
	t := max(0, min(1, p.Sub(a).Dot(ab)/l2))
	return p.Sub(a.Add(ab.Mul(t))).Length()
}

// PolylineDistance returns the distance from p to the polyline through
// points. A single point is treated as a degenerate segment. The result
// is +Inf for an empty polyline.
func PolylineDistance(p vec.Vec2, points []vec.Vec2) float64 {
	switch len(points) {
	case 0:
		return math.Inf(1)
	case 1:
		return p.Sub(points[0]).Length()
	}
	best := math.Inf(1)
	for i := 1; i < len(points); i++ {
		best = min(best, DistanceToSegment(p, points[i-1], points[i]))
	}
	return best
}

// Bounds returns the bounding rectangle of points, grown by pad on every
// side. The result is the zero rectangle if points is empty.
func Bounds(points []vec.Vec2, pad float64) rect.Rect {
	if len(points) == 0 {
		return rect.Rect{}
	}
	r := rect.Rect{LLx: points[0].X, LLy: points[0].Y, URx: points[0].X, URy: points[0].Y}
	for _, p := range points[1:] {
		r.LLx = min(r.LLx, p.X)
		r.LLy = min(r.LLy, p.Y)
		r.URx = max(r.URx, p.X)
		r.URy = max(r.URy, p.Y)
	}
	return Inset(r, -pad)
}

// PathBounds returns the bounding rectangle of all points and control
// points of p.
func PathBounds(p *path.Data) rect.Rect {
	if p == nil {
		return rect.Rect{}
	}
	return Bounds(p.Coords, 0)
}

// Union returns the smallest rectangle containing a and b. Empty
// rectangles are ignored.
func Union(a, b rect.Rect) rect.Rect {
	if IsEmpty(a) {
		return b
	}
	if IsEmpty(b) {
		return a
	}
	return rect.Rect{
		LLx: min(a.LLx, b.LLx),
		LLy: min(a.LLy, b.LLy),
		URx: max(a.URx, b.URx),
		URy: max(a.URy, b.URy),
	}
}

// Intersects reports whether the closed rectangles a and b overlap.
func Intersects(a, b rect.Rect) bool {
	return a.LLx <= b.URx && b.LLx <= a.URx && a.LLy <= b.URy && b.LLy <= a.URy
}

// ContainsPoint reports whether p lies in the closed rectangle r.
func ContainsPoint(r rect.Rect, p vec.Vec2) bool {
	return p.X >= r.LLx && p.X <= r.URx && p.Y >= r.LLy && p.Y <= r.URy
}

// Inset shrinks r by d on every side. Negative d grows the rectangle.
func Inset(r rect.Rect, d float64) rect.Rect {
	return rect.Rect{LLx: r.LLx + d, LLy: r.LLy + d, URx: r.URx - d, URy: r.URy - d}
}

// IsEmpty reports whether r is the zero rectangle.
func IsEmpty(r rect.Rect) bool {
	return r == rect.Rect{}
}

// signedArea returns the shoelace area of a closed polygon.
func signedArea(pts []vec.Vec2) float64 {
	var s float64
	for i := range pts {
		a, b := pts[i], pts[(i+1)%len(pts)]
		s += a.X*b.Y - b.X*a.Y
	}
	return s / 2
}

// addPolygon appends pts as a closed subpath of positive orientation.
func addPolygon(p *path.Data, pts []vec.Vec2) {
	if signedArea(pts) >= 0 {
		p.MoveTo(pts[0])
		for _, q := range pts[1:] {
			p.LineTo(q)
		}
	} else {
		p.MoveTo(pts[len(pts)-1])
		for i := len(pts) - 2; i >= 0; i-- {
			p.LineTo(pts[i])
		}
	}
	p.Close()
}

// addDisc appends a circle of radius r around c, oriented like the
// polygons produced by addPolygon.
func addDisc(p *path.Data, c vec.Vec2, r float64) {
	const k = 0.5522847498
	kr := k * r
	cx, cy := c.X, c.Y

	p.MoveTo(vec.Vec2{X: cx, Y: cy - r})
	p.CubeTo(vec.Vec2{X: cx + kr, Y: cy - r}, vec.Vec2{X: cx + r, Y: cy - kr}, vec.Vec2{X: cx + r, Y: cy})
	p.CubeTo(vec.Vec2{X: cx + r, Y: cy + kr}, vec.Vec2{X: cx + kr, Y: cy + r}, vec.Vec2{X: cx, Y: cy + r})
	p.CubeTo(vec.Vec2{X: cx - kr, Y: cy + r}, vec.Vec2{X: cx - r, Y: cy + kr}, vec.Vec2{X: cx - r, Y: cy})
	p.CubeTo(vec.Vec2{X: cx - r, Y: cy - kr}, vec.Vec2{X: cx - kr, Y: cy - r}, vec.Vec2{X: cx, Y: cy - r})
	p.Close()
}

// Disc returns a circle of radius r around c as a path.
func Disc(c vec.Vec2, r float64) *path.Data {
	p := &path.Data{}
	addDisc(p, c, r)
	return p
}

// segmentRect returns the rectangle of half-width h around the segment
// a–b, or false if the segment has zero length.
func segmentRect(a, b vec.Vec2, h float64) ([4]vec.Vec2, bool) {
	d := b.Sub(a)
	l := d.Length()
	if l == 0 || h <= 0 {
		return [4]vec.Vec2{}, false
	}
	n := vec.Vec2{X: -d.Y / l, Y: d.X / l}.Mul(h)
	return [4]vec.Vec2{a.Add(n), b.Add(n), b.Sub(n), a.Sub(n)}, true
}
