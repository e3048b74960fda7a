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

package selection

import (
	"fmt"
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/ink/brush"
	"seehuhn.de/go/ink/document"
	"seehuhn.de/go/ink/internal/logging"
	"seehuhn.de/go/ink/raster"
)

// Policy decides which strokes a marquee selects.
type Policy int

const (
	// StrokeWise selects every stroke whose footprint overlaps the
	// marquee.
	StrokeWise Policy = iota

	// RegionInside selects only strokes whose footprint lies entirely
	// inside the marquee.
	RegionInside
)

func (p Policy) String() string {
	switch p {
	case StrokeWise:
		return "stroke-wise"
	case RegionInside:
		return "region-inside"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// Resolution is the number of region pixels per document unit used for
// the region tests.
const Resolution = 2

// Resolver tests strokes against a marquee. It keeps the rasterizer
// buffers between calls.
type Resolver struct {
	r *raster.Rasterizer
}

// NewResolver returns a new Resolver.
func NewResolver() *Resolver {
	return &Resolver{r: raster.NewRasterizer(rect.Rect{})}
}

// region rasterizes p at the test resolution, restricted to the document
// rectangle clip.
func (res *Resolver) region(p *path.Data, clip rect.Rect) *raster.Region {
	res.reset(clip)
	return res.r.Region(p, raster.NonZero)
}

// lineRegion rasterizes the stroked line l like [Resolver.region].
func (res *Resolver) lineRegion(l brush.Line, clip rect.Rect) *raster.Region {
	res.reset(clip)
	l.Setup(res.r)
	return res.r.StrokeRegion(l.Path)
}

func (res *Resolver) reset(clip rect.Rect) {
	res.r.Reset(rect.Rect{
		LLx: math.Floor(clip.LLx*Resolution) - 1,
		LLy: math.Floor(clip.LLy*Resolution) - 1,
		URx: math.Ceil(clip.URx*Resolution) + 1,
		URy: math.Ceil(clip.URy*Resolution) + 1,
	})
	res.r.CTM = matrix.Matrix{Resolution, 0, 0, Resolution, 0, 0}
}

// footprint returns the ink region of s, or nil if the stroke exceeds the
// size guards and must be tested by its raw points.
func (res *Resolver) footprint(s *document.Stroke, clip rect.Rect) *raster.Region {
	if s.Kind.UsesUnion() {
		fill := s.FillPath()
		if fill == nil {
			return nil
		}
		return res.region(fill, clip)
	}
	if brush.Guarded(s.Kind, s.Points(), s.Width) {
		return nil
	}
	l, ok := brush.CentreLine(s.Kind, s.Points(), s.Width)
	if !ok {
		return nil
	}
	return res.lineRegion(l, clip)
}

// Resolve returns the committed, visible, non-eraser strokes of doc which
// m selects under the given policy, in z-order.
func (res *Resolver) Resolve(doc *document.Document, m *Marquee, policy Policy) []*document.Stroke {
	outline := m.Path()
	if outline == nil {
		return nil
	}
	mb := m.Bounds()

	var marquee *raster.Region
	var selected []*document.Stroke
	for _, s := range doc.Strokes() {
		if s.Hidden || s.Kind.IsEraser() || s.Len() == 0 {
			continue
		}
		sb := s.Bounds()
		if !brush.Intersects(sb, mb) {
			continue
		}

		ink := res.footprint(s, brush.Union(sb, mb))
		if ink == nil {
			if rawPointTest(s.Points(), outline, mb, policy, res) {
				selected = append(selected, s)
			}
			continue
		}
		if ink.IsEmpty() {
			continue
		}

		if marquee == nil {
			marquee = res.region(outline, mb)
		}
		var hit bool
		switch policy {
		case RegionInside:
			hit = marquee.Contains(ink)
		default:
			hit = marquee.Intersects(ink)
		}
		if hit {
			selected = append(selected, s)
		}
	}
	logging.Logger().Debug("marquee resolved",
		"tool", m.Tool(), "policy", policy, "selected", len(selected))
	return selected
}

// rawPointTest tests the raw stroke points of a stroke without a
// footprint path.
func rawPointTest(points []vec.Vec2, outline *path.Data, mb rect.Rect, policy Policy, res *Resolver) bool {
	marquee := res.region(outline, mb)
	inside := func(p vec.Vec2) bool {
		return marquee.ContainsPoint(p.X*Resolution, p.Y*Resolution)
	}
	for _, p := range points {
		in := inside(p)
		if policy == RegionInside && !in {
			return false
		}
		if policy == StrokeWise && in {
			return true
		}
	}
	return policy == RegionInside
}

// Resolve is a convenience wrapper around [Resolver.Resolve].
func Resolve(doc *document.Document, m *Marquee, policy Policy) []*document.Stroke {
	return NewResolver().Resolve(doc, m, policy)
}

// HitStrokes returns the visible strokes of doc touched by a stroke
// eraser of the given radius moving from a to b, in z-order. Eraser
// strokes are never hit.
func HitStrokes(doc *document.Document, a, b vec.Vec2, radius float64) []*document.Stroke {
	box := brush.Bounds([]vec.Vec2{a, b}, radius)
	d := b.Sub(a)
	n := max(1, int(math.Ceil(d.Length()/max(radius/2, 0.5))))

	var hit []*document.Stroke
	for _, s := range doc.Strokes() {
		if s.Hidden || s.Kind.IsEraser() || s.Len() == 0 {
			continue
		}
		if !brush.Intersects(s.Bounds(), box) {
			continue
		}
		for k := 0; k <= n; k++ {
			if s.HitTest(a.Add(d.Mul(float64(k)/float64(n))), radius) {
				hit = append(hit, s)
				break
			}
		}
	}
	return hit
}
