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
	"seehuhn.de/go/geom/rect"
)

// MinCoverage is the smallest pixel coverage for which a pixel is
// considered part of a region.
const MinCoverage = 1.0 / 64

// Span is the half-open pixel interval [X0, X1) on one row.
type Span struct {
	X0, X1 int
}

// Region is a set of device pixels, stored as sorted, disjoint,
// non-adjacent spans per row. The zero value is the empty region.
//
// Regions are immutable: all operations return new values.
type Region struct {
	y0   int
	rows [][]Span
}

// Region rasterizes p and returns the set of pixels whose coverage is at
// least MinCoverage.
func (r *Rasterizer) Region(p *path.Data, rule FillRule) *Region {
	return collectRegion(func(emit EmitFunc) {
		r.Fill(p, rule, emit)
	})
}

// StrokeRegion returns the pixels covered by the outline of the centre
// line p, drawn with the line style of r.
func (r *Rasterizer) StrokeRegion(p *path.Data) *Region {
	return collectRegion(func(emit EmitFunc) {
		r.Stroke(p, emit)
	})
}

// collectRegion turns the coverage rows produced by draw into a Region.
// Rows must be emitted in increasing order.
func collectRegion(draw func(EmitFunc)) *Region {
	res := &Region{}
	draw(func(y, xMin int, coverage []float32) {
		if len(res.rows) == 0 {
			res.y0 = y
		}
		for len(res.rows) < y-res.y0 {
			res.rows = append(res.rows, nil)
		}

		var row []Span
		start := -1
		for i, c := range coverage {
			if c >= MinCoverage {
				if start < 0 {
					start = i
				}
			} else if start >= 0 {
				row = append(row, Span{xMin + start, xMin + i})
				start = -1
			}
		}
		if start >= 0 {
			row = append(row, Span{xMin + start, xMin + len(coverage)})
		}
		res.rows = append(res.rows, row)
	})
	res.trim()
	return res
}

// RectRegion returns the region covering the integer pixel box
// [x0, x1) × [y0, y1).
func RectRegion(x0, y0, x1, y1 int) *Region {
	if x1 <= x0 || y1 <= y0 {
		return &Region{}
	}
	res := &Region{y0: y0, rows: make([][]Span, y1-y0)}
	for i := range res.rows {
		res.rows[i] = []Span{{x0, x1}}
	}
	return res
}

// IsEmpty reports whether the region contains no pixels.
func (g *Region) IsEmpty() bool {
	return g == nil || len(g.rows) == 0
}

// Area returns the number of pixels in the region.
func (g *Region) Area() int {
	if g == nil {
		return 0
	}
	n := 0
	for _, row := range g.rows {
		for _, s := range row {
			n += s.X1 - s.X0
		}
	}
	return n
}

// Bounds returns the smallest rectangle containing all pixels of g.
// The result is the zero rectangle for an empty region.
func (g *Region) Bounds() rect.Rect {
	if g.IsEmpty() {
		return rect.Rect{}
	}
	xMin, xMax := math.MaxInt, math.MinInt
	for _, row := range g.rows {
		if len(row) == 0 {
			continue
		}
		xMin = min(xMin, row[0].X0)
		xMax = max(xMax, row[len(row)-1].X1)
	}
	return rect.Rect{
		LLx: float64(xMin),
		LLy: float64(g.y0),
		URx: float64(xMax),
		URy: float64(g.y0 + len(g.rows)),
	}
}

// Row returns the spans of row y.
func (g *Region) Row(y int) []Span {
	if g.IsEmpty() || y < g.y0 || y >= g.y0+len(g.rows) {
		return nil
	}
	return g.rows[y-g.y0]
}

// ContainsPoint reports whether the pixel containing (x, y) is in g.
func (g *Region) ContainsPoint(x, y float64) bool {
	xi := int(math.Floor(x))
	for _, s := range g.Row(int(math.Floor(y))) {
		if xi < s.X0 {
			return false
		}
		if xi < s.X1 {
			return true
		}
	}
	return false
}

// Intersects reports whether g and h share at least one pixel.
func (g *Region) Intersects(h *Region) bool {
	if g.IsEmpty() || h.IsEmpty() {
		return false
	}
	y0 := max(g.y0, h.y0)
	y1 := min(g.y0+len(g.rows), h.y0+len(h.rows))
	for y := y0; y < y1; y++ {
		a, b := g.rows[y-g.y0], h.rows[y-h.y0]
		i, j := 0, 0
		for i < len(a) && j < len(b) {
			if a[i].X1 <= b[j].X0 {
				i++
			} else if b[j].X1 <= a[i].X0 {
				j++
			} else {
				return true
			}
		}
	}
	return false
}

// Contains reports whether every pixel of h is also in g.
// The empty region is contained in every region.
func (g *Region) Contains(h *Region) bool {
	return h.Difference(g).IsEmpty()
}

// Union returns the pixels in g or h.
func (g *Region) Union(h *Region) *Region {
	return combine(g, h, func(a, b bool) bool { return a || b })
}

// Intersect returns the pixels in both g and h.
func (g *Region) Intersect(h *Region) *Region {
	return combine(g, h, func(a, b bool) bool { return a && b })
}

// Difference returns the pixels in g which are not in h.
func (g *Region) Difference(h *Region) *Region {
	return combine(g, h, func(a, b bool) bool { return a && !b })
}

// Xor returns the pixels in exactly one of g and h.
func (g *Region) Xor(h *Region) *Region {
	return combine(g, h, func(a, b bool) bool { return a != b })
}

func combine(g, h *Region, op func(a, b bool) bool) *Region {
	gEmpty, hEmpty := g.IsEmpty(), h.IsEmpty()
	switch {
	case gEmpty && hEmpty:
		return &Region{}
	case gEmpty:
		g = &Region{y0: h.y0}
	case hEmpty:
		h = &Region{y0: g.y0}
	}

	y0 := min(g.y0, h.y0)
	y1 := max(g.y0+len(g.rows), h.y0+len(h.rows))
	res := &Region{y0: y0, rows: make([][]Span, y1-y0)}
	for y := y0; y < y1; y++ {
		res.rows[y-y0] = combineRow(nil, g.Row(y), h.Row(y), op)
	}
	res.trim()
	return res
}

// combineRow sweeps over the span boundaries of a and b and appends the
// spans where op is true to dst.
func combineRow(dst, a, b []Span, op func(a, b bool) bool) []Span {
	i, j := 0, 0
	inA, inB := false, false
	open := false
	start := 0
	for i < 2*len(a) || j < 2*len(b) {
		x := min(boundary(a, i), boundary(b, j))
		for boundary(a, i) == x {
			inA = !inA
			i++
		}
		for boundary(b, j) == x {
			inB = !inB
			j++
		}

		in := op(inA, inB)
		if in && !open {
			start = x
			open = true
		} else if !in && open {
			dst = append(dst, Span{start, x})
			open = false
		}
	}
	return dst
}

// boundary returns the k-th span boundary of row, or math.MaxInt past the
// end. Even k are span starts, odd k are span ends.
func boundary(row []Span, k int) int {
	if k >= 2*len(row) {
		return math.MaxInt
	}
	s := row[k/2]
	if k%2 == 0 {
		return s.X0
	}
	return s.X1
}

// trim removes empty rows at the top and bottom of g.
func (g *Region) trim() {
	lo := 0
	for lo < len(g.rows) && len(g.rows[lo]) == 0 {
		lo++
	}
	hi := len(g.rows)
	for hi > lo && len(g.rows[hi-1]) == 0 {
		hi--
	}
	if lo == hi {
		g.y0 = 0
		g.rows = nil
		return
	}
	g.y0 += lo
	g.rows = g.rows[lo:hi]
}
