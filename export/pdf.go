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

package export

import (
	"image/color"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf"
	pdfdoc "seehuhn.de/go/pdf/document"
	pdfcolor "seehuhn.de/go/pdf/graphics/color"

	"seehuhn.de/go/ink/brush"
	"seehuhn.de/go/ink/document"
	"seehuhn.de/go/ink/raster"
)

// pencilOpacity scales the color alpha of pencil strokes in vector
// output, where the grain texture is not available.
const pencilOpacity = 0.55

// WriteVectorPDF writes the visible strokes of doc as filled paths to a
// single-page PDF file. The page covers all sections. Highlighter strokes
// are drawn beneath all other ink, translucent colors are blended against
// paper, and area erasers are painted in the paper color.
func WriteVectorPDF(name string, doc *document.Document, paper color.Color) error {
	w, h := doc.Width(), doc.Height()
	page, err := pdfdoc.CreateSinglePage(name, &pdf.Rectangle{URx: w, URy: h}, pdf.V1_7, nil)
	if err != nil {
		return err
	}

	bg := color.NRGBAModel.Convert(paper).(color.NRGBA)
	bg.A = 255

	// PDF origin is bottom-left; documents grow downwards from the top.
	page.Transform(matrix.Matrix{1, 0, 0, -1, 0, h})

	page.SetFillColor(pdfcolor.DeviceRGB(blend(bg, bg)))
	for _, sec := range doc.Sections() {
		page.Rectangle(0, sec.Y, w, sec.Height)
	}
	page.Fill()

	strokes := doc.Visible()
	for _, highlight := range []bool{true, false} {
		for _, s := range strokes {
			col := s.Color
			switch {
			case s.Kind == brush.EraserArea:
				if s.HighlightOnly && !highlight {
					continue
				}
				col = bg
			case s.Kind.IsEraser(), s.Kind.IsHighlight() != highlight:
				continue
			case s.Kind == brush.Pencil:
				col.A = uint8(float64(col.A)*pencilOpacity + 0.5)
			}

			p := outline(s)
			if p == nil {
				continue
			}
			page.SetFillColor(pdfcolor.DeviceRGB(blend(col, bg)))
			for cmd, pts := range p.Iter().ToCubic() {
				switch cmd {
				case path.CmdMoveTo:
					page.MoveTo(pts[0].X, pts[0].Y)
				case path.CmdLineTo:
					page.LineTo(pts[0].X, pts[0].Y)
				case path.CmdCubeTo:
					page.CurveTo(pts[0].X, pts[0].Y, pts[1].X, pts[1].Y, pts[2].X, pts[2].Y)
				case path.CmdClose:
					page.ClosePath()
				}
			}
			page.Fill()
		}
	}

	return page.Close()
}

// blend returns the color c painted over the opaque color bg, as PDF
// color components.
func blend(c, bg color.NRGBA) (r, g, b float64) {
	a := float64(c.A) / 255
	mix := func(x, y uint8) float64 {
		return (float64(x)*a + float64(y)*(1-a)) / 255
	}
	return mix(c.R, bg.R), mix(c.G, bg.G), mix(c.B, bg.B)
}

// outline returns the filled region of s in vector output.
func outline(s *document.Stroke) *path.Data {
	if s.Kind != brush.EraserArea {
		if p := s.AreaPath(); p != nil {
			return p
		}
	}
	return sweep(s.Points(), brush.FootprintRadius(s.Kind, s.Width))
}

// sweep returns the area covered by a disc of radius r moving along pts.
func sweep(pts []vec.Vec2, r float64) *path.Data {
	if len(pts) == 0 {
		return nil
	}
	ras := raster.NewRasterizer(rect.Rect{})
	ras.Width = 2 * r
	return ras.StrokeOutline(brush.Polyline(pts))
}
