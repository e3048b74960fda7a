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

package raster

import (
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// strokeSegment is a flattened piece of a centre line, in path
// coordinates.
type strokeSegment struct {
	A, B vec.Vec2
	T    vec.Vec2 // unit tangent, A to B
	N    vec.Vec2 // unit normal, T rotated by +90°
	L    float64  // length
}

func (s strokeSegment) reversed() strokeSegment {
	return strokeSegment{A: s.B, B: s.A, T: s.T.Mul(-1), N: s.N.Mul(-1), L: s.L}
}

// Stroke fills the outline of the centre line p, drawn with the line
// width, caps and joins configured in r. All outline pieces are filled
// together under the nonzero rule, so places where the line overlaps
// itself are painted once.
func (r *Rasterizer) Stroke(p *path.Data, emit EmitFunc) {
	if !r.buildOutline(p) {
		return
	}
	xMin, xMax, yMin, yMax, ok := r.collectOutlineEdges()
	if !ok {
		return
	}
	if (xMax-xMin)*(yMax-yMin) < r.smallPathThreshold {
		r.fillSmallPath(xMin, xMax, yMin, yMax, NonZero, emit)
	} else {
		r.fillLargePath(xMin, xMax, yMin, yMax, NonZero, emit)
	}
}

// StrokeOutline returns the outline of the centre line p as a path, in the
// coordinates of p. The result must be filled with the nonzero rule. It
// is nil if the line has no area.
func (r *Rasterizer) StrokeOutline(p *path.Data) *path.Data {
	if !r.buildOutline(p) {
		return nil
	}
	res := &path.Data{}
	r.eachPolygon(func(poly []vec.Vec2) {
		res.MoveTo(poly[0])
		for _, q := range poly[1:] {
			res.LineTo(q)
		}
		res.Close()
	})
	return res
}

// buildOutline flattens p and collects the outline polygons in r.stroke.
// It reports whether any polygon was produced.
func (r *Rasterizer) buildOutline(p *path.Data) bool {
	if p == nil || r.Width <= 0 {
		return false
	}
	r.flattenCentreLine(p)
	r.stroke = r.stroke[:0]
	r.strokeOffsets = r.strokeOffsets[:0]

	d := r.Width / 2
	for _, pt := range r.degeneratePoints {
		start := len(r.stroke)
		switch r.Cap {
		case graphics.LineCapRound:
			r.addArc(pt, d, vec.Vec2{X: 1}, 2*math.Pi, true)
		case graphics.LineCapSquare:
			r.addSquare(pt, vec.Vec2{X: 1}, d)
		}
		if len(r.stroke) > start {
			r.strokeOffsets = append(r.strokeOffsets, start)
		}
	}

	for i := range r.segsOffsets {
		segs := r.subpathSegments(i)
		if r.subpathClosed[i] {
			r.polygon(func() { r.closedSide(segs, d) })
			r.polygon(func() { r.closedSide(r.reverse(segs), d) })
		} else {
			r.polygon(func() {
				first, last := segs[0], segs[len(segs)-1]
				r.addCap(first.A, first.T.Mul(-1), d)
				r.openSide(segs, d)
				r.addCap(last.B, last.T, d)
				r.openSide(r.reverse(segs), d)
			})
		}
	}
	return len(r.strokeOffsets) > 0
}

// polygon records the points appended by build as one outline polygon.
// Polygons with fewer than three points are dropped.
func (r *Rasterizer) polygon(build func()) {
	start := len(r.stroke)
	build()
	if len(r.stroke)-start >= 3 {
		r.strokeOffsets = append(r.strokeOffsets, start)
	} else {
		r.stroke = r.stroke[:start]
	}
}

func (r *Rasterizer) eachPolygon(fn func(poly []vec.Vec2)) {
	for i, start := range r.strokeOffsets {
		end := len(r.stroke)
		if i+1 < len(r.strokeOffsets) {
			end = r.strokeOffsets[i+1]
		}
		if end-start >= 2 {
			fn(r.stroke[start:end])
		}
	}
}

func (r *Rasterizer) subpathSegments(i int) []strokeSegment {
	end := len(r.segs)
	if i+1 < len(r.segsOffsets) {
		end = r.segsOffsets[i+1]
	}
	return r.segs[r.segsOffsets[i]:end]
}

// reverse returns segs traversed backwards. The result lives in a scratch
// buffer which is overwritten by the next call.
func (r *Rasterizer) reverse(segs []strokeSegment) []strokeSegment {
	r.rev = r.rev[:0]
	for i := len(segs) - 1; i >= 0; i-- {
		r.rev = append(r.rev, segs[i].reversed())
	}
	return r.rev
}

// flattenCentreLine splits p into flattened subpaths. Subpaths which draw
// but have no extent are collected in r.degeneratePoints.
func (r *Rasterizer) flattenCentreLine(p *path.Data) {
	r.segs = r.segs[:0]
	r.segsOffsets = r.segsOffsets[:0]
	r.subpathClosed = r.subpathClosed[:0]
	r.degeneratePoints = r.degeneratePoints[:0]

	var current, start vec.Vec2
	first := 0
	open, drawn := false, false
	finish := func(closed bool) {
		switch {
		case len(r.segs) > first:
			r.segsOffsets = append(r.segsOffsets, first)
			r.subpathClosed = append(r.subpathClosed, closed)
		case drawn:
			r.degeneratePoints = append(r.degeneratePoints, start)
		}
		first = len(r.segs)
		open, drawn = false, false
	}

	k := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			if open {
				finish(false)
			}
			current = p.Coords[k]
			start = current
			open = true
			k++
		case path.CmdLineTo:
			if open {
				drawn = true
				r.addStrokeSegment(current, p.Coords[k])
				current = p.Coords[k]
			}
			k++
		case path.CmdQuadTo:
			if open {
				drawn = true
				r.flattenQuadratic(current, p.Coords[k], p.Coords[k+1], r.addStrokeSegment)
				current = p.Coords[k+1]
			}
			k += 2
		case path.CmdCubeTo:
			if open {
				drawn = true
				r.flattenCubic(current, p.Coords[k], p.Coords[k+1], p.Coords[k+2], r.addStrokeSegment)
				current = p.Coords[k+2]
			}
			k += 3
		case path.CmdClose:
			if open {
				drawn = true
				if current != start {
					r.addStrokeSegment(current, start)
				}
				finish(true)
				current = start
			}
		}
	}
	if open {
		finish(false)
	}
}

func (r *Rasterizer) addStrokeSegment(a, b vec.Vec2) {
	v := b.Sub(a)
	l := v.Length()
	if l < zeroLengthThreshold {
		return
	}
	t := v.Mul(1 / l)
	r.segs = append(r.segs, strokeSegment{A: a, B: b, T: t, N: vec.Vec2{X: -t.Y, Y: t.X}, L: l})
}

// openSide appends the +N side of an open polyline, from the start of the
// first segment to the end of the last one.
func (r *Rasterizer) openSide(segs []strokeSegment, d float64) {
	skip := false
	for i := range segs {
		seg := &segs[i]
		if !skip {
			r.stroke = append(r.stroke, seg.A.Add(seg.N.Mul(d)))
		}
		skip = false
		if i == len(segs)-1 {
			r.stroke = append(r.stroke, seg.B.Add(seg.N.Mul(d)))
			break
		}
		skip = r.corner(seg, &segs[i+1], d)
	}
}

// closedSide appends the +N side of a closed polyline as one loop. If the
// closing corner is an inner corner, the loop starts and ends at the
// intersection of the offset lines there.
func (r *Rasterizer) closedSide(segs []strokeSegment, d float64) {
	first, last := &segs[0], &segs[len(segs)-1]
	skip := false
	if cross(last.T, first.T) >= collinearityThreshold {
		if q, ok := innerIntersection(last, first, d); ok {
			r.stroke = append(r.stroke, q)
			skip = true
		}
	}
	closed := skip
	for i := range segs {
		seg := &segs[i]
		if !skip {
			r.stroke = append(r.stroke, seg.A.Add(seg.N.Mul(d)))
		}
		if i == len(segs)-1 {
			if !closed {
				r.corner(seg, first, d)
			}
			break
		}
		skip = r.corner(seg, &segs[i+1], d)
	}
}

// corner adds the +N side geometry at the point where seg meets next. It
// reports whether the offset start point of next is already covered.
func (r *Rasterizer) corner(seg, next *strokeSegment, d float64) bool {
	s := cross(seg.T, next.T)
	switch {
	case math.Abs(s) < collinearityThreshold:
		r.stroke = append(r.stroke, seg.B.Add(seg.N.Mul(d)))
		if seg.T.Dot(next.T) < 0 {
			// the line doubles back on itself
			r.addCap(seg.B, seg.T, d)
		}
		return false
	case s > 0:
		// turning towards +N: this is the inner side
		if q, ok := innerIntersection(seg, next, d); ok {
			r.stroke = append(r.stroke, q)
			return true
		}
		r.stroke = append(r.stroke, seg.B.Add(seg.N.Mul(d)), next.A.Add(next.N.Mul(d)))
		return true
	default:
		r.stroke = append(r.stroke, seg.B.Add(seg.N.Mul(d)))
		r.addJoin(seg.B, seg.T, next.T, d)
		return false
	}
}

func cross(a, b vec.Vec2) float64 {
	return a.X*b.Y - a.Y*b.X
}

// innerIntersection returns the point where the +N offset lines of seg
// and next meet. The point is rejected if it lies beyond either segment,
// which happens for short segments at sharp corners.
func innerIntersection(seg, next *strokeSegment, d float64) (vec.Vec2, bool) {
	cosTheta := seg.T.Dot(next.T)
	if cosTheta > 1-1e-9 {
		return vec.Vec2{}, false
	}
	halfAngle := math.Sqrt((1 + cosTheta) / 2)
	if halfAngle < 1e-9 {
		return vec.Vec2{}, false
	}
	dir := seg.N.Add(next.N)
	l := dir.Length()
	if l < 1e-9 {
		return vec.Vec2{}, false
	}
	dist := d / halfAngle
	reach := min(seg.L, next.L)
	if dist*dist > d*d+reach*reach {
		return vec.Vec2{}, false
	}
	return seg.B.Add(dir.Mul(dist / l)), true
}

// addCap adds a line cap at P, where T points away from the line.
func (r *Rasterizer) addCap(P, T vec.Vec2, d float64) {
	N := vec.Vec2{X: -T.Y, Y: T.X}
	switch r.Cap {
	case graphics.LineCapSquare:
		ext := P.Add(T.Mul(d))
		r.stroke = append(r.stroke, ext.Add(N.Mul(d)), ext.Sub(N.Mul(d)))
	case graphics.LineCapRound:
		// half circle from +N through T to -N
		r.addArc(P, d, N, -math.Pi, true)
	}
}

// addJoin adds the outer join geometry at P, where the direction turns
// from T1 to T2 away from the side being built.
func (r *Rasterizer) addJoin(P, T1, T2 vec.Vec2, d float64) {
	cosTheta := T1.Dot(T2)
	if cosTheta < cuspCosineThreshold {
		r.addCap(P, T1, d)
		return
	}

	switch r.Join {
	case graphics.LineJoinMiter:
		sinHalf := math.Sqrt((1 + cosTheta) / 2)
		if sinHalf > 0 && 1/sinHalf <= r.MiterLimit+1e-10 {
			N1 := vec.Vec2{X: -T1.Y, Y: T1.X}
			N2 := vec.Vec2{X: -T2.Y, Y: T2.X}
			bis := N1.Add(N2)
			if l := bis.Length(); l > zeroLengthThreshold {
				r.stroke = append(r.stroke, P.Add(bis.Mul(d/(sinHalf*l))))
			}
		}
	case graphics.LineJoinRound:
		angle := math.Acos(max(-1, min(1, cosTheta)))
		N1 := vec.Vec2{X: -T1.Y, Y: T1.X}
		r.addArc(P, d, N1, -angle, false)
	}
	// bevel: the offset points of the two segments meet directly
}

// addArc appends points on the circle of the given radius around center,
// starting in direction startDir and sweeping by sweep radians. The
// number of points follows the flatness in device space.
func (r *Rasterizer) addArc(center vec.Vec2, radius float64, startDir vec.Vec2, sweep float64, includeStart bool) {
	devRadius := max(
		r.transformLinear(vec.Vec2{X: radius}).Length(),
		r.transformLinear(vec.Vec2{Y: radius}).Length())

	n := 1
	if devRadius >= r.Flatness {
		step := 2 * math.Acos(1-r.Flatness/devRadius)
		if step <= 0 || math.IsNaN(step) {
			step = math.Pi / 4
		}
		n = max(int(math.Ceil(math.Abs(sweep)/step)), 1)
	}

	i0 := 0
	if !includeStart {
		i0 = 1
	}
	dt := sweep / float64(n)
	for i := i0; i <= n; i++ {
		sin, cos := math.Sincos(float64(i) * dt)
		dir := vec.Vec2{
			X: startDir.X*cos - startDir.Y*sin,
			Y: startDir.X*sin + startDir.Y*cos,
		}
		r.stroke = append(r.stroke, center.Add(dir.Mul(radius)))
	}
}

// addSquare adds the square of half-size d around center, aligned with T.
// This is how a dot is drawn with square caps.
func (r *Rasterizer) addSquare(center, T vec.Vec2, d float64) {
	N := vec.Vec2{X: -T.Y, Y: T.X}
	r.stroke = append(r.stroke,
		center.Add(T.Mul(d)).Add(N.Mul(d)),
		center.Add(T.Mul(d)).Sub(N.Mul(d)),
		center.Sub(T.Mul(d)).Sub(N.Mul(d)),
		center.Sub(T.Mul(d)).Add(N.Mul(d)),
	)
}

// collectOutlineEdges builds the edge list from the outline polygons,
// without an intermediate path.
func (r *Rasterizer) collectOutlineEdges() (xMin, xMax, yMin, yMax int, ok bool) {
	r.edges = r.edges[:0]
	r.edgeBBoxFirst = true
	r.eachPolygon(func(poly []vec.Vec2) {
		for j := 1; j < len(poly); j++ {
			r.addEdge(poly[j-1], poly[j])
		}
		r.addEdge(poly[len(poly)-1], poly[0])
	})
	if len(r.edges) == 0 {
		return 0, 0, 0, 0, false
	}

	xMin = max(int(math.Floor(r.edgeDevXMin)), int(r.Clip.LLx))
	xMax = min(int(math.Floor(r.edgeDevXMax))+1, int(r.Clip.URx))
	yMin = max(int(math.Floor(r.edgeDevYMin)), int(r.Clip.LLy))
	yMax = min(int(math.Floor(r.edgeDevYMax))+1, int(r.Clip.URy))
	if xMin >= xMax || yMin >= yMax {
		return 0, 0, 0, 0, false
	}
	return xMin, xMax, yMin, yMax, true
}
