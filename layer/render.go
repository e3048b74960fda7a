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

package layer

import (
	"image"
	"image/color"
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/ink/brush"
	"seehuhn.de/go/ink/document"
	"seehuhn.de/go/ink/raster"
)

// painter draws stroke geometry onto surfaces. It holds the scratch
// buffers shared by all drawing operations.
type painter struct {
	r *raster.Rasterizer
}

func newPainter() *painter {
	return &painter{r: raster.NewRasterizer(rect.Rect{})}
}

// line strokes the centre line of s from points[from-1] to points[to-1].
// For from == 0 the line starts at the first point, so a single point is
// drawn as a dot.
func (p *painter) line(dst *Surface, s *document.Stroke, from, to int, col color.NRGBA, mode Mode) {
	if to <= from {
		return
	}
	l, ok := brush.CentreLine(s.Kind, s.Points()[max(from-1, 0):to], s.Width)
	if !ok {
		return
	}
	dst.Stroke(p.r, l, col, mode)
}

// marker paints the centre line from points[from-1] to points[to-1] as a
// blurred thick line. With from == 0 and to == len(points) the whole
// stroke is blurred as one mask.
func (p *painter) marker(dst *Surface, s *document.Stroke, from, to int) {
	if to <= from {
		return
	}
	pts := s.Points()[max(from-1, 0):to]
	l, ok := brush.CentreLine(s.Kind, pts, s.Width)
	if !ok {
		return
	}
	blur := brush.MarkerBlurRadius(s.Width)

	margin := l.Width/2 + 2*blur + 2
	b := brush.Bounds(pts, margin)
	mr := image.Rect(
		int(math.Floor(b.LLx)), int(math.Floor(b.LLy)),
		int(math.Ceil(b.URx)), int(math.Ceil(b.URy)),
	).Intersect(dst.Bounds().Inset(-int(math.Ceil(2 * blur))))
	if mr.Empty() {
		return
	}

	mask := image.NewAlpha(mr)
	p.r.Reset(rect.Rect{URx: float64(mr.Dx()), URy: float64(mr.Dy())})
	p.r.CTM = matrix.Matrix{1, 0, 0, 1, -float64(mr.Min.X), -float64(mr.Min.Y)}
	l.Setup(p.r)
	p.r.Stroke(l.Path, func(y, xMin int, coverage []float32) {
		row := mask.Pix[y*mask.Stride+xMin:]
		for i, c := range coverage {
			row[i] = uint8(c*255 + 0.5)
		}
	})
	blurAlpha(mask, blur)
	dst.DrawMask(mask, s.Color, Over)
}

// pencil paints the stamps of the segments ending at points[from] to
// points[to-1]. The stamp phase is threaded through phase, which holds the
// phase at points[from-1] on entry and at points[to-1] on return.
func (p *painter) pencil(dst *Surface, s *document.Stroke, from, to int, phase *float64) {
	pts := s.Points()
	if from == 0 && to >= 1 {
		tex := stampTexture(s.Color, brush.MaxStampAlpha)
		size := max(s.Width, 1)
		dst.DrawStamps([]brush.Stamp{{
			Center: pts[0],
			SizeX:  size,
			SizeY:  size,
			Alpha:  brush.MaxStampAlpha,
		}}, tex)
		*phase = brush.StampSpacing(s.Width)
	}
	for i := max(from, 1); i < to; i++ {
		stamps, next := brush.PlaceStamps(pts[i-1], pts[i], s.Width, *phase, brush.SegmentRand(s.Seed, i))
		*phase = next
		if len(stamps) == 0 {
			continue
		}
		dst.DrawStamps(stamps, stampTexture(s.Color, stamps[0].Alpha))
	}
}

// stampTexture colours the pencil grain. The result is premultiplied.
func stampTexture(col color.NRGBA, alpha uint8) *image.RGBA {
	g := brush.Grain()
	tex := image.NewRGBA(g.Rect)
	scale := float32(alpha) / 255 * float32(col.A) / 255
	for i, v := range g.Pix {
		a := float32(v) * scale
		tex.Pix[4*i+0] = uint8(float32(col.R)*a/255 + 0.5)
		tex.Pix[4*i+1] = uint8(float32(col.G)*a/255 + 0.5)
		tex.Pix[4*i+2] = uint8(float32(col.B)*a/255 + 0.5)
		tex.Pix[4*i+3] = uint8(a + 0.5)
	}
	return tex
}

// unionSegments paints the segment quads of a calligraphy or fountain
// stroke between points[from-1] and points[to-1], each as a separate fill.
// Directions are smoothed incrementally starting from *dir; a NaN value
// starts from the direction of the first segment.
func (p *painter) unionSegments(dst *Surface, s *document.Stroke, from, to int, dir *float64) {
	pts := s.Points()
	if from == 0 && to == 1 {
		dst.Fill(p.r, brush.Disc(pts[0], s.Width/2), raster.NonZero, s.Color, Over)
		return
	}
	for i := max(from, 1); i < to; i++ {
		d := pts[i].Sub(pts[i-1])
		if d.Length() == 0 {
			continue
		}
		raw := math.Atan2(d.Y, d.X)
		if math.IsNaN(*dir) {
			*dir = raw
		}
		d0 := *dir
		d1 := d0 + brush.SmoothBlend*brush.WrapAngle(raw-d0)
		*dir = d1

		seg := &path.Data{}
		brush.AppendSegment(seg, s.Kind, pts[i-1], pts[i], d0, d1, s.Width)
		if s.Kind == brush.Fountain && i >= 2 {
			prev := pts[i-1].Sub(pts[i-2])
			if turn := brush.WrapAngle(raw - math.Atan2(prev.Y, prev.X)); math.Abs(turn) > brush.FountainJointAngle {
				seg = appendPath(seg, brush.Disc(pts[i-1], s.Width/2))
			}
		}
		dst.Fill(p.r, seg, raster.NonZero, s.Color, Over)
	}
}

// erase clears the eraser line from points[from-1] to points[to-1].
func (p *painter) erase(dst *Surface, s *document.Stroke, from, to int) {
	p.line(dst, s, from, to, color.NRGBA{}, Clear)
}

// appendPath concatenates the subpaths of b onto a.
func appendPath(a, b *path.Data) *path.Data {
	a.Cmds = append(a.Cmds, b.Cmds...)
	a.Coords = append(a.Coords, b.Coords...)
	return a
}

// union fills the cached union path of a calligraphy or fountain stroke,
// or paints the stroke segment by segment if the path is not available.
func (p *painter) union(dst *Surface, s *document.Stroke) {
	if fill := s.FillPath(); fill != nil {
		dst.Fill(p.r, fill, raster.NonZero, s.Color, Over)
		return
	}
	dir := math.NaN()
	p.unionSegments(dst, s, 0, s.Len(), &dir)
}

// highlightAround redraws the part of a live freehand highlighter stroke
// which falls into the document rectangle box. The box is cleared first,
// and all segments reaching into it are stroked together, so that
// overlapping parts of the stroke are painted once.
func (p *painter) highlightAround(dst *Surface, s *document.Stroke, box image.Rectangle) {
	dst.ClearRect(box)
	pts := s.Points()
	pad := brush.InkRadius(s.Kind, s.Width)
	area := rect.Rect{
		LLx: float64(box.Min.X), LLy: float64(box.Min.Y),
		URx: float64(box.Max.X), URy: float64(box.Max.Y),
	}

	near := &path.Data{}
	if len(pts) == 1 {
		near = brush.Polyline(pts)
	}
	open := false
	for i := 1; i < len(pts); i++ {
		if !brush.Intersects(brush.Bounds(pts[i-1:i+1], pad), area) {
			open = false
			continue
		}
		if !open {
			near.MoveTo(pts[i-1])
			open = true
		}
		near.LineTo(pts[i])
	}
	if len(near.Cmds) == 0 {
		return
	}
	l, _ := brush.CentreLine(s.Kind, pts[:1], s.Width)
	l.Path = near
	dst.StrokeIn(p.r, l, box, s.Color, Over)
}

// replay draws a committed stroke onto the committed surfaces of its
// section.
func (p *painter) replay(sec *Section, s *document.Stroke) {
	switch s.Kind {
	case brush.Pen:
		p.line(sec.Ink, s, 0, s.Len(), s.Color, Over)
	case brush.Calligraphy, brush.Fountain:
		p.union(sec.Ink, s)
	case brush.Highlighter, brush.HighlighterStraight:
		p.line(sec.Highlight, s, 0, s.Len(), s.Color, Over)
	case brush.Marker:
		p.marker(sec.Ink, s, 0, s.Len())
	case brush.Pencil:
		var phase float64
		p.pencil(sec.Ink, s, 0, s.Len(), &phase)
	case brush.EraserArea:
		p.erase(sec.Highlight, s, 0, s.Len())
		if !s.HighlightOnly {
			p.erase(sec.Ink, s, 0, s.Len())
		}
	}
}
