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

// Package raster converts ink geometry into pixel coverage.
//
// The Rasterizer computes exact anti-aliased coverage for filled paths
// under the nonzero or even-odd rule. Nonzero filling of a set of
// consistently oriented pieces paints their union exactly once, which is
// what the brush code relies on to avoid double-darkening where a stroke
// crosses itself. Coverage can either be painted into a surface (see
// package layer) or collected into a [Region] for boolean hit-testing.
package raster

import (
	"cmp"
	"math"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// EmitFunc receives the coverage of one scanline. Coverage values are in
// [0, 1]; coverage[i] belongs to pixel xMin+i of row y. The slice is only
// valid for the duration of the call.
type EmitFunc func(y, xMin int, coverage []float32)

// FillRule selects how the winding number of a point is mapped to
// "inside".
type FillRule int

const (
	// NonZero treats every point with a nonzero winding number as inside.
	NonZero FillRule = iota

	// EvenOdd treats points with an odd winding number as inside.
	EvenOdd
)

func (r FillRule) String() string {
	switch r {
	case NonZero:
		return "nonzero"
	case EvenOdd:
		return "evenodd"
	default:
		return "unknown"
	}
}

// edge is a line segment in device coordinates.
type edge struct {
	x0, y0 float64
	x1, y1 float64
	dxdy   float64 // (x1-x0)/(y1-y0)
}

// Rasterizer converts paths to pixel coverage. Create one instance and
// reuse it: internal buffers grow as needed but never shrink.
//
// A Rasterizer is not safe for concurrent use.
type Rasterizer struct {
	// CTM maps path coordinates to device pixels. Must be non-singular.
	CTM matrix.Matrix

	// Clip bounds the output in device coordinates.
	// Coordinates must be integer-aligned.
	Clip rect.Rect

	// Flatness is the curve flattening tolerance in device pixels.
	Flatness float64

	// Width is the line width used by [Rasterizer.Stroke], in path
	// coordinates.
	Width float64

	// Cap is the line cap style for stroke end points.
	Cap graphics.LineCapStyle

	// Join is the line join style for stroke corners.
	Join graphics.LineJoinStyle

	// MiterLimit is the miter limit for miter joins.
	MiterLimit float64

	// smallPathThreshold is the maximum bounding box area (in pixels) for
	// which 2D accumulation buffers are used. Larger paths use an active
	// edge list.
	smallPathThreshold int

	cover     []float32
	area      []float32
	edges     []edge
	activeIdx []int
	rowXMin   []int
	rowXMax   []int
	crossings []float64

	// stroke outline buffers
	segs             []strokeSegment
	rev              []strokeSegment
	segsOffsets      []int
	subpathClosed    []bool
	degeneratePoints []vec.Vec2
	stroke           []vec.Vec2
	strokeOffsets    []int

	edgeBBoxFirst bool
	edgeDevXMin   float64
	edgeDevXMax   float64
	edgeDevYMin   float64
	edgeDevYMax   float64
}

// NewRasterizer returns a Rasterizer with an identity CTM and the given
// clip rectangle. Strokes default to unit width with round caps and
// joins, the shape of a pen tip.
func NewRasterizer(clip rect.Rect) *Rasterizer {
	return &Rasterizer{
		CTM:                matrix.Identity,
		Clip:               clip,
		Flatness:           defaultFlatness,
		Width:              1,
		Cap:                graphics.LineCapRound,
		Join:               graphics.LineJoinRound,
		MiterLimit:         defaultMiterLimit,
		smallPathThreshold: smallPathThreshold,
	}
}

// Reset restores the default CTM, flatness and line style and installs a
// new clip rectangle, keeping the buffer capacity.
func (r *Rasterizer) Reset(clip rect.Rect) {
	r.CTM = matrix.Identity
	r.Clip = clip
	r.Flatness = defaultFlatness
	r.Width = 1
	r.Cap = graphics.LineCapRound
	r.Join = graphics.LineJoinRound
	r.MiterLimit = defaultMiterLimit

	r.cover = r.cover[:0]
	r.area = r.area[:0]
	r.edges = r.edges[:0]
	r.activeIdx = r.activeIdx[:0]
	r.rowXMin = r.rowXMin[:0]
	r.rowXMax = r.rowXMax[:0]
	r.crossings = r.crossings[:0]
}

// FillNonZero fills p using the nonzero winding rule.
func (r *Rasterizer) FillNonZero(p *path.Data, emit EmitFunc) {
	r.Fill(p, NonZero, emit)
}

// FillEvenOdd fills p using the even-odd rule.
func (r *Rasterizer) FillEvenOdd(p *path.Data, emit EmitFunc) {
	r.Fill(p, EvenOdd, emit)
}

// Fill rasterizes p with the given fill rule. Rows are emitted in
// increasing y order. Nil and empty paths produce no output.
func (r *Rasterizer) Fill(p *path.Data, rule FillRule, emit EmitFunc) {
	if p == nil {
		return
	}
	xMin, xMax, yMin, yMax, ok := r.collectPathEdges(p)
	if !ok {
		return
	}

	width := xMax - xMin
	height := yMax - yMin
	if width*height < r.smallPathThreshold {
		r.fillSmallPath(xMin, xMax, yMin, yMax, rule, emit)
	} else {
		r.fillLargePath(xMin, xMax, yMin, yMax, rule, emit)
	}
}

// DeviceBounds returns the integer device-space bounding box of p after
// applying the CTM and the clip rectangle.
func (r *Rasterizer) DeviceBounds(p *path.Data) (xMin, xMax, yMin, yMax int, ok bool) {
	if p == nil {
		return 0, 0, 0, 0, false
	}
	return r.collectPathEdges(p)
}

func (r *Rasterizer) transformLinear(v vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: r.CTM[0]*v.X + r.CTM[2]*v.Y,
		Y: r.CTM[1]*v.X + r.CTM[3]*v.Y,
	}
}

// flattenQuadratic flattens a quadratic Bézier with CTM-aware tolerance.
func (r *Rasterizer) flattenQuadratic(p0, p1, p2 vec.Vec2, emit func(from, to vec.Vec2)) {
	e := p0.Sub(p1.Mul(2)).Add(p2).Mul(0.25)
	n := 1
	if errDev := r.transformLinear(e).Length(); errDev > r.Flatness {
		n = int(math.Ceil(math.Sqrt(errDev / r.Flatness)))
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		omt := 1 - t
		pt := p0.Mul(omt * omt).Add(p1.Mul(2 * omt * t)).Add(p2.Mul(t * t))
		emit(prev, pt)
		prev = pt
	}
}

// flattenCubic flattens a cubic Bézier using Wang's formula.
func (r *Rasterizer) flattenCubic(p0, p1, p2, p3 vec.Vec2, emit func(from, to vec.Vec2)) {
	d1 := r.transformLinear(p0.Sub(p1.Mul(2)).Add(p2))
	d2 := r.transformLinear(p1.Sub(p2.Mul(2)).Add(p3))

	n := 1
	if m := max(d1.Length(), d2.Length()); m > 0 {
		if nFloat := math.Sqrt(3 * m / (4 * r.Flatness)); nFloat > 1 {
			n = int(math.Ceil(nFloat))
		}
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		omt := 1 - t
		pt := p0.Mul(omt * omt * omt).
			Add(p1.Mul(3 * omt * omt * t)).
			Add(p2.Mul(3 * omt * t * t)).
			Add(p3.Mul(t * t * t))
		emit(prev, pt)
		prev = pt
	}
}

// collectPathEdges walks the path, transforms it to device space and
// builds the edge list. The returned box is clamped to the clip rectangle.
// Open subpaths are closed implicitly, as for any fill.
func (r *Rasterizer) collectPathEdges(p *path.Data) (xMin, xMax, yMin, yMax int, ok bool) {
	r.edges = r.edges[:0]
	r.edgeBBoxFirst = true

	var current, subpath vec.Vec2
	open := false
	coordIdx := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			if open && current != subpath {
				r.addEdge(current, subpath)
			}
			current = p.Coords[coordIdx]
			subpath = current
			open = true
			coordIdx++

		case path.CmdLineTo:
			r.addEdge(current, p.Coords[coordIdx])
			current = p.Coords[coordIdx]
			coordIdx++

		case path.CmdQuadTo:
			r.flattenQuadratic(current, p.Coords[coordIdx], p.Coords[coordIdx+1], r.addEdge)
			current = p.Coords[coordIdx+1]
			coordIdx += 2

		case path.CmdCubeTo:
			r.flattenCubic(current, p.Coords[coordIdx], p.Coords[coordIdx+1], p.Coords[coordIdx+2], r.addEdge)
			current = p.Coords[coordIdx+2]
			coordIdx += 3

		case path.CmdClose:
			if current != subpath {
				r.addEdge(current, subpath)
			}
			current = subpath
			open = false
		}
	}
	if open && current != subpath {
		r.addEdge(current, subpath)
	}

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

// addEdge adds an edge given in path coordinates.
func (r *Rasterizer) addEdge(p0, p1 vec.Vec2) {
	dx0 := r.CTM[0]*p0.X + r.CTM[2]*p0.Y + r.CTM[4]
	dy0 := r.CTM[1]*p0.X + r.CTM[3]*p0.Y + r.CTM[5]
	dx1 := r.CTM[0]*p1.X + r.CTM[2]*p1.Y + r.CTM[4]
	dy1 := r.CTM[1]*p1.X + r.CTM[3]*p1.Y + r.CTM[5]

	dy := dy1 - dy0
	if dy > -horizontalEdgeThreshold && dy < horizontalEdgeThreshold {
		return
	}

	r.edges = append(r.edges, edge{
		x0: dx0, y0: dy0,
		x1: dx1, y1: dy1,
		dxdy: (dx1 - dx0) / dy,
	})

	if r.edgeBBoxFirst {
		r.edgeDevXMin = min(dx0, dx1)
		r.edgeDevXMax = max(dx0, dx1)
		r.edgeDevYMin = min(dy0, dy1)
		r.edgeDevYMax = max(dy0, dy1)
		r.edgeBBoxFirst = false
	} else {
		r.edgeDevXMin = min(r.edgeDevXMin, dx0, dx1)
		r.edgeDevXMax = max(r.edgeDevXMax, dx0, dx1)
		r.edgeDevYMin = min(r.edgeDevYMin, dy0, dy1)
		r.edgeDevYMax = max(r.edgeDevYMax, dy0, dy1)
	}
}

// Coverage accumulation model:
//
// For each pixel we track
//   cover: signed vertical extent of the edges crossing the pixel column
//   area:  the same, weighted by the horizontal position inside the pixel
//
// Integrating a scanline from left to right,
//   pixel_coverage = accumulated_cover + area[i]
//   accumulated_cover += cover[i]
// gives the signed area of the path inside each pixel. Nonzero clamps
// |raw| to 1, so pixels covered twice by a self-overlapping shape get the
// same value as pixels covered once.

// accumulateEdge adds the contribution of e to scanline y. The buffers are
// indexed by x - bboxXMin.
func (r *Rasterizer) accumulateEdge(e *edge, y int, cover, area []float32, bboxXMin, bboxXMax int) {
	yTop := max(float64(y), min(e.y0, e.y1))
	yBot := min(float64(y+1), max(e.y0, e.y1))
	if yBot <= yTop {
		return
	}

	sign := float32(1)
	if e.y1 < e.y0 {
		sign = -1
	}

	xLeft := e.x0 + e.dxdy*(yTop-e.y0)
	xRight := e.x0 + e.dxdy*(yBot-e.y0)
	if xLeft > xRight {
		xLeft, xRight = xRight, xLeft
	}
	pixLeft := int(math.Floor(xLeft))
	pixRight := int(math.Floor(xRight))

	if pixRight < bboxXMin {
		v := sign * float32(yBot-yTop)
		cover[0] += v
		area[0] += v
		return
	}
	if pixLeft >= bboxXMax {
		return
	}
	if pixLeft == pixRight {
		accumulateInColumn(e, yTop, yBot, sign, pixLeft, cover, area, bboxXMin, bboxXMax)
		return
	}

	// split the edge where it crosses pixel column boundaries
	dydx := 1 / e.dxdy
	r.crossings = append(r.crossings[:0], yTop, yBot)
	for x := pixLeft + 1; x <= pixRight; x++ {
		yAtX := e.y0 + dydx*(float64(x)-e.x0)
		if yAtX > yTop && yAtX < yBot {
			r.crossings = append(r.crossings, yAtX)
		}
	}
	slices.Sort(r.crossings)

	for i := range len(r.crossings) - 1 {
		y0, y1 := r.crossings[i], r.crossings[i+1]
		if y1 <= y0 {
			continue
		}
		v := sign * float32(y1-y0)

		xMid := e.x0 + e.dxdy*((y0+y1)/2-e.y0)
		pix := int(math.Floor(xMid))
		switch {
		case pix < bboxXMin:
			cover[0] += v
			area[0] += v
		case pix < bboxXMax:
			idx := pix - bboxXMin
			cover[idx] += v
			area[idx] += v * float32(1-(xMid-float64(pix)))
		}
	}
}

// accumulateInColumn handles an edge piece inside a single pixel column.
func accumulateInColumn(e *edge, yTop, yBot float64, sign float32, pix int, cover, area []float32, bboxXMin, bboxXMax int) {
	v := sign * float32(yBot-yTop)
	if pix < bboxXMin {
		cover[0] += v
		area[0] += v
		return
	}
	if pix >= bboxXMax {
		return
	}

	xMid := e.x0 + e.dxdy*((yTop+yBot)/2-e.y0)
	idx := pix - bboxXMin
	cover[idx] += v
	area[idx] += v * float32(1-(xMid-float64(pix)))
}

// integrateScanline turns accumulated cover/area values into coverage.
// The cover slice is overwritten with the result.
func integrateScanline(cover, area []float32, rule FillRule) {
	var accum float32
	for i := range cover {
		raw := accum + area[i]
		accum += cover[i]
		if raw < 0 {
			raw = -raw
		}
		if rule == EvenOdd {
			mod := raw - 2*float32(int(raw/2))
			cover[i] = 1 - abs32(1-mod)
		} else {
			cover[i] = min(raw, 1)
		}
	}
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// trimZeros returns the non-zero portion of coverage and its offset.
func trimZeros(coverage []float32) (trimmed []float32, offset int) {
	n := len(coverage)
	lo := 0
	for lo < n && coverage[lo] == 0 {
		lo++
	}
	if lo == n {
		return nil, 0
	}
	hi := n - 1
	for hi > lo && coverage[hi] == 0 {
		hi--
	}
	return coverage[lo : hi+1], lo
}

// fillSmallPath accumulates all edges into 2D buffers first and then
// integrates row by row.
func (r *Rasterizer) fillSmallPath(xMin, xMax, yMin, yMax int, rule FillRule, emit EmitFunc) {
	width := xMax - xMin
	height := yMax - yMin

	size := width * height
	r.cover = slices.Grow(r.cover[:0], size)[:size]
	r.area = slices.Grow(r.area[:0], size)[:size]
	clear(r.cover)
	clear(r.area)

	r.rowXMin = slices.Grow(r.rowXMin[:0], height)[:height]
	r.rowXMax = slices.Grow(r.rowXMax[:0], height)[:height]
	for i := range r.rowXMin {
		r.rowXMin[i] = width
		r.rowXMax[i] = -1
	}

	for i := range r.edges {
		e := &r.edges[i]
		eyMin := max(int(math.Floor(min(e.y0, e.y1))), yMin)
		eyMax := min(int(math.Floor(max(e.y0, e.y1)))+1, yMax)

		for y := eyMin; y < eyMax; y++ {
			row := y - yMin
			off := row * width
			r.accumulateEdge(e, y, r.cover[off:off+width], r.area[off:off+width], xMin, xMax)

			yTop := max(float64(y), min(e.y0, e.y1))
			yBot := min(float64(y+1), max(e.y0, e.y1))
			x := int(math.Floor(e.x0 + e.dxdy*((yTop+yBot)/2-e.y0)))
			xIdx := min(max(x, xMin), xMax-1) - xMin
			r.rowXMin[row] = min(r.rowXMin[row], xIdx)
			r.rowXMax[row] = max(r.rowXMax[row], xIdx)
		}
	}

	for row := range height {
		if r.rowXMax[row] < 0 {
			continue
		}
		off := row * width
		coverage := r.cover[off : off+width]
		integrateScanline(coverage, r.area[off:off+width], rule)
		if trimmed, offset := trimZeros(coverage); trimmed != nil {
			emit(yMin+row, xMin+offset, trimmed)
		}
	}
}

// fillLargePath uses 1D buffers and an active edge list.
func (r *Rasterizer) fillLargePath(xMin, xMax, yMin, yMax int, rule FillRule, emit EmitFunc) {
	width := xMax - xMin
	r.cover = slices.Grow(r.cover[:0], width)[:width]
	r.area = slices.Grow(r.area[:0], width)[:width]

	slices.SortFunc(r.edges, func(a, b edge) int {
		return cmp.Compare(min(a.y0, a.y1), min(b.y0, b.y1))
	})

	r.activeIdx = r.activeIdx[:0]
	nextEdge := 0
	for y := yMin; y < yMax; y++ {
		yf := float64(y)
		yfNext := float64(y + 1)

		for nextEdge < len(r.edges) && min(r.edges[nextEdge].y0, r.edges[nextEdge].y1) < yfNext {
			r.activeIdx = append(r.activeIdx, nextEdge)
			nextEdge++
		}
		if len(r.activeIdx) == 0 {
			continue
		}

		clear(r.cover)
		clear(r.area)

		touched := false
		for i := 0; i < len(r.activeIdx); {
			e := &r.edges[r.activeIdx[i]]
			if max(e.y0, e.y1) <= yf {
				r.activeIdx[i] = r.activeIdx[len(r.activeIdx)-1]
				r.activeIdx = r.activeIdx[:len(r.activeIdx)-1]
				continue
			}
			r.accumulateEdge(e, y, r.cover, r.area, xMin, xMax)
			touched = true
			i++
		}
		if !touched {
			continue
		}

		integrateScanline(r.cover, r.area, rule)
		if trimmed, offset := trimZeros(r.cover); trimmed != nil {
			emit(y, xMin+offset, trimmed)
		}
	}
}

const (
	// defaultFlatness is the curve flattening tolerance in device pixels.
	defaultFlatness = 0.25

	// horizontalEdgeThreshold is the minimum vertical extent for an edge
	// to contribute to coverage.
	horizontalEdgeThreshold = 1e-10

	// smallPathThreshold is the maximum bounding box area (in pixels) for
	// using 2D buffers.
	smallPathThreshold = 65536

	// defaultMiterLimit matches the PDF default.
	defaultMiterLimit = 10.0

	// zeroLengthThreshold is the length below which a stroke segment is
	// dropped.
	zeroLengthThreshold = 1e-10

	// collinearityThreshold is the cross product of unit tangents below
	// which consecutive segments need no join.
	collinearityThreshold = 1e-6

	// cuspCosineThreshold detects segments which double back on
	// themselves. Such corners get two caps instead of a join.
	cuspCosineThreshold = -0.9999
)
