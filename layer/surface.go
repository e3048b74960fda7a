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

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/ink/brush"
	"seehuhn.de/go/ink/raster"
)

// Mode selects how paint is combined with the existing surface content.
type Mode int

const (
	// Over paints the source on top of the destination.
	Over Mode = iota

	// Clear removes destination content in proportion to the coverage,
	// leaving transparent pixels.
	Clear
)

// Surface is a premultiplied RGBA raster placed in document space.
type Surface struct {
	Img *image.RGBA

	// Origin is the document position of pixel (0, 0).
	Origin image.Point

	dirty image.Rectangle // pixel coordinates
}

// NewSurface allocates a transparent w×h surface at the given document
// position.
func NewSurface(origin image.Point, w, h int) *Surface {
	return &Surface{
		Img:    image.NewRGBA(image.Rect(0, 0, max(w, 0), max(h, 0))),
		Origin: origin,
	}
}

// Bounds returns the area covered by the surface, in document
// coordinates.
func (s *Surface) Bounds() image.Rectangle {
	return s.Img.Rect.Add(s.Origin)
}

// Clear makes every pixel transparent.
func (s *Surface) Clear() {
	clear(s.Img.Pix)
	s.dirty = s.Img.Rect
}

// ClearRect makes the pixels inside r transparent. The rectangle is given
// in document coordinates.
func (s *Surface) ClearRect(r image.Rectangle) {
	r = r.Sub(s.Origin).Intersect(s.Img.Rect)
	if r.Empty() {
		return
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		i := y*s.Img.Stride + 4*r.Min.X
		clear(s.Img.Pix[i : i+4*r.Dx()])
	}
	s.markDirty(r)
}

// IsEmpty reports whether all pixels are transparent.
func (s *Surface) IsEmpty() bool {
	for _, v := range s.Img.Pix {
		if v != 0 {
			return false
		}
	}
	return true
}

// TakeDirty returns the area changed since the last call, in document
// coordinates, and resets it.
func (s *Surface) TakeDirty() image.Rectangle {
	d := s.dirty
	s.dirty = image.Rectangle{}
	if d.Empty() {
		return image.Rectangle{}
	}
	return d.Add(s.Origin)
}

func (s *Surface) markDirty(r image.Rectangle) {
	r = r.Intersect(s.Img.Rect)
	if !r.Empty() {
		s.dirty = s.dirty.Union(r)
	}
}

// Fill rasterizes the document-space path p onto the surface.
func (s *Surface) Fill(r *raster.Rasterizer, p *path.Data, rule raster.FillRule, col color.NRGBA, mode Mode) {
	if p == nil {
		return
	}
	s.reset(r, s.Bounds())
	r.Fill(p, rule, func(y, xMin int, coverage []float32) {
		s.Blend(y, xMin, coverage, col, mode)
	})
}

// Stroke draws the document-space line l onto the surface.
func (s *Surface) Stroke(r *raster.Rasterizer, l brush.Line, col color.NRGBA, mode Mode) {
	s.StrokeIn(r, l, s.Bounds(), col, mode)
}

// StrokeIn draws l like [Surface.Stroke], but only touches pixels inside
// the document rectangle clip.
func (s *Surface) StrokeIn(r *raster.Rasterizer, l brush.Line, clip image.Rectangle, col color.NRGBA, mode Mode) {
	if l.Path == nil {
		return
	}
	s.reset(r, clip)
	l.Setup(r)
	r.Stroke(l.Path, func(y, xMin int, coverage []float32) {
		s.Blend(y, xMin, coverage, col, mode)
	})
}

// reset prepares r for drawing document coordinates onto s, restricted to
// the document rectangle clip.
func (s *Surface) reset(r *raster.Rasterizer, clip image.Rectangle) {
	c := clip.Sub(s.Origin).Intersect(s.Img.Rect)
	r.Reset(rect.Rect{
		LLx: float64(c.Min.X), LLy: float64(c.Min.Y),
		URx: float64(c.Max.X), URy: float64(c.Max.Y),
	})
	r.CTM = matrix.Matrix{1, 0, 0, 1, -float64(s.Origin.X), -float64(s.Origin.Y)}
}

// Blend combines one row of coverage values with the surface, starting at
// pixel (x, y).
func (s *Surface) Blend(y, x int, coverage []float32, col color.NRGBA, mode Mode) {
	if y < 0 || y >= s.Img.Rect.Dy() {
		return
	}
	lo := max(0, -x)
	hi := min(len(coverage), s.Img.Rect.Dx()-x)
	if lo >= hi {
		return
	}

	row := s.Img.Pix[y*s.Img.Stride:]
	switch mode {
	case Clear:
		for i := lo; i < hi; i++ {
			keep := 1 - coverage[i]
			px := row[4*(x+i) : 4*(x+i)+4]
			for k := range px {
				px[k] = uint8(float32(px[k])*keep + 0.5)
			}
		}
	default:
		a := float32(col.A) / 255
		sr := float32(col.R) * a
		sg := float32(col.G) * a
		sb := float32(col.B) * a
		sa := float32(col.A)
		for i := lo; i < hi; i++ {
			c := coverage[i]
			keep := 1 - a*c
			px := row[4*(x+i) : 4*(x+i)+4]
			px[0] = uint8(sr*c + float32(px[0])*keep + 0.5)
			px[1] = uint8(sg*c + float32(px[1])*keep + 0.5)
			px[2] = uint8(sb*c + float32(px[2])*keep + 0.5)
			px[3] = uint8(sa*c + float32(px[3])*keep + 0.5)
		}
	}
	s.markDirty(image.Rect(x+lo, y, x+hi, y+1))
}

// DrawMask paints col through an alpha mask whose bounds are given in
// document coordinates.
func (s *Surface) DrawMask(mask *image.Alpha, col color.NRGBA, mode Mode) {
	mb := mask.Rect
	coverage := make([]float32, mb.Dx())
	for y := mb.Min.Y; y < mb.Max.Y; y++ {
		row := mask.Pix[(y-mb.Min.Y)*mask.Stride:]
		nonzero := false
		for i := range coverage {
			coverage[i] = float32(row[i]) / 255
			nonzero = nonzero || row[i] != 0
		}
		if nonzero {
			s.Blend(y-s.Origin.Y, mb.Min.X-s.Origin.X, coverage, col, mode)
		}
	}
}

// DrawStamps draws each stamp as a rotated and scaled copy of tex,
// centred on the stamp position, using source-over compositing.
func (s *Surface) DrawStamps(stamps []brush.Stamp, tex *image.RGBA) {
	tb := tex.Bounds()
	cx := float64(tb.Dx()) / 2
	cy := float64(tb.Dy()) / 2
	for _, st := range stamps {
		sx := st.SizeX / float64(tb.Dx())
		sy := st.SizeY / float64(tb.Dy())
		sin, cos := math.Sincos(st.Angle)
		a, b := cos*sx, -sin*sy
		d, e := sin*sx, cos*sy
		px := st.Center.X - float64(s.Origin.X)
		py := st.Center.Y - float64(s.Origin.Y)
		s2d := f64.Aff3{
			a, b, px - (a*cx + b*cy),
			d, e, py - (d*cx + e*cy),
		}
		draw.BiLinear.Transform(s.Img, s2d, tex, tb, draw.Over, nil)

		rad := math.Hypot(st.SizeX, st.SizeY)/2 + 1
		s.markDirty(image.Rect(
			int(math.Floor(px-rad)), int(math.Floor(py-rad)),
			int(math.Ceil(px+rad)), int(math.Ceil(py+rad)),
		))
	}
}
