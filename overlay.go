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

package ink

import (
	"image"
	"image/color"
	"slices"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/ink/brush"
	"seehuhn.de/go/ink/layer"
	"seehuhn.de/go/ink/raster"
	"seehuhn.de/go/ink/selection"
)

var (
	marqueeColor   = color.NRGBA{R: 0x30, G: 0x60, B: 0xc0, A: 0xc0}
	frameColor     = color.NRGBA{R: 0x30, G: 0x60, B: 0xc0, A: 0xff}
	paginateColor  = color.NRGBA{R: 0x30, G: 0x60, B: 0xc0, A: 0x60}
	overlayLine    = 1.5 // line width, in pixels
	handleHalfSize = 4.0
)

// drawOverlay paints the marquee, the selection frame and the pagination
// indicator on top of the rendered view.
func (e *Engine) drawOverlay(dst *image.RGBA) {
	var outline, handles *path.Data

	if m := e.marquee; m != nil {
		pts := m.Points()
		if len(pts) > 2 {
			pts = append(slices.Clip(pts), pts[0])
		}
		outline = e.polyline(outline, pts)
	}

	if b, ok := e.sel.Bounds(); ok && e.tf == nil {
		corners := []vec.Vec2{
			{X: b.LLx, Y: b.LLy}, {X: b.URx, Y: b.LLy},
			{X: b.URx, Y: b.URy}, {X: b.LLx, Y: b.URy}, {X: b.LLx, Y: b.LLy},
		}
		outline = e.polyline(outline, corners)
		handles = &path.Data{}
		for h := selection.TopLeft; h <= selection.Left; h++ {
			c := e.view.ToView(h.Point(b))
			handles.MoveTo(vec.Vec2{X: c.X - handleHalfSize, Y: c.Y - handleHalfSize})
			handles.LineTo(vec.Vec2{X: c.X + handleHalfSize, Y: c.Y - handleHalfSize})
			handles.LineTo(vec.Vec2{X: c.X + handleHalfSize, Y: c.Y + handleHalfSize})
			handles.LineTo(vec.Vec2{X: c.X - handleHalfSize, Y: c.Y + handleHalfSize})
			handles.Close()
		}
	}

	var band *path.Data
	if e.pagination > 0 {
		db := dst.Bounds()
		h := float64(db.Dy()) * 0.02 * (1 + e.pagination)
		band = &path.Data{}
		band.MoveTo(vec.Vec2{X: float64(db.Min.X), Y: float64(db.Max.Y) - h})
		band.LineTo(vec.Vec2{X: float64(db.Min.X) + float64(db.Dx())*e.pagination, Y: float64(db.Max.Y) - h})
		band.LineTo(vec.Vec2{X: float64(db.Min.X) + float64(db.Dx())*e.pagination, Y: float64(db.Max.Y)})
		band.LineTo(vec.Vec2{X: float64(db.Min.X), Y: float64(db.Max.Y)})
		band.Close()
	}

	if outline == nil && handles == nil && band == nil {
		return
	}
	surf := &layer.Surface{Img: dst, Origin: dst.Rect.Min}
	r := raster.NewRasterizer(rect.Rect{})
	if outline != nil {
		line := brush.Line{Path: outline, Width: overlayLine, Cap: graphics.LineCapRound}
		surf.Stroke(r, line, marqueeColor, layer.Over)
	}
	surf.Fill(r, handles, raster.NonZero, frameColor, layer.Over)
	surf.Fill(r, band, raster.NonZero, paginateColor, layer.Over)
}

// polyline appends the document space polyline pts, mapped to view
// coordinates, to p as a new subpath.
func (e *Engine) polyline(p *path.Data, pts []vec.Vec2) *path.Data {
	if len(pts) < 2 {
		return p
	}
	if p == nil {
		p = &path.Data{}
	}
	p.MoveTo(e.view.ToView(pts[0]))
	for _, q := range pts[1:] {
		p.LineTo(e.view.ToView(q))
	}
	return p
}
