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

// Package layer renders strokes into raster surfaces.
//
// Every document section owns four surfaces. Committed strokes are
// replayed into the committed-ink and committed-highlight surfaces, while
// the stroke being drawn goes into the scratch surfaces, so that a new
// input sample only touches the pixels of its newest segment. Per section
// the surfaces are composited bottom to top as committed-highlight,
// scratch-highlight, committed-ink, scratch-ink: highlighter ink always
// shows beneath regular ink.
package layer

import (
	"image"
	"image/color"
	"math"
	"time"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/ink/brush"
	"seehuhn.de/go/ink/document"
	"seehuhn.de/go/ink/internal/logging"
)

// Section holds the surfaces of one document section.
type Section struct {
	Ink              *Surface
	Highlight        *Surface
	ScratchInk       *Surface
	ScratchHighlight *Surface
}

func newSection(origin image.Point, w, h int) *Section {
	return &Section{
		Ink:              NewSurface(origin, w, h),
		Highlight:        NewSurface(origin, w, h),
		ScratchInk:       NewSurface(origin, w, h),
		ScratchHighlight: NewSurface(origin, w, h),
	}
}

// layers returns the surfaces in compositing order.
func (s *Section) layers() [4]*Surface {
	return [4]*Surface{s.Highlight, s.ScratchHighlight, s.Ink, s.ScratchInk}
}

// scratch returns a view of s which paints committed content into the
// scratch surfaces.
func (s *Section) scratch() *Section {
	return &Section{Ink: s.ScratchInk, Highlight: s.ScratchHighlight}
}

// View describes how the document is shown on screen. A document point p
// appears at view position (p - Offset) * Scale.
type View struct {
	Scale  float64
	Offset vec.Vec2
}

// Compositor maintains the raster surfaces of a document.
type Compositor struct {
	// Paper is painted behind each section by RenderView.
	Paper color.Color

	// Desk is painted between and around the sections by RenderView.
	Desk color.Color

	doc      *document.Document
	sections []*Section
	paint    *painter

	live     *document.Stroke
	lastDir  float64
	liveArea image.Rectangle // straight highlighter footprint in the scratch layer

	floatExt image.Rectangle

	dirty image.Rectangle // areas of discarded surfaces
}

// New allocates surfaces for all sections of doc and replays its strokes.
func New(doc *document.Document) *Compositor {
	c := &Compositor{
		Paper: color.White,
		Desk:  color.NRGBA{R: 0xd8, G: 0xd8, B: 0xd8, A: 0xff},
		doc:   doc,
		paint: newPainter(),
	}
	c.Sync()
	c.Rebuild()
	return c
}

// Document returns the document rendered by c.
func (c *Compositor) Document() *document.Document {
	return c.doc
}

// Len returns the number of sections with surfaces.
func (c *Compositor) Len() int {
	return len(c.sections)
}

// Section returns the surfaces of section i.
func (c *Compositor) Section(i int) *Section {
	return c.sections[i]
}

// sectionRect returns the pixel rectangle of document section i.
func (c *Compositor) sectionRect(i int) image.Rectangle {
	sec := c.doc.Section(i)
	y := int(math.Round(sec.Y))
	return image.Rect(0, y, int(math.Ceil(c.doc.Width())), y+int(math.Ceil(sec.Height)))
}

// Sync reallocates the surfaces of every section whose size or position
// changed, and adds surfaces for new sections. Newly allocated surfaces
// are transparent; Sync reports whether a rebuild is needed.
func (c *Compositor) Sync() bool {
	changed := false
	n := len(c.doc.Sections())
	for i := range n {
		r := c.sectionRect(i)
		if i < len(c.sections) && c.sections[i].Ink.Bounds() == r {
			continue
		}
		sec := newSection(r.Min, r.Dx(), r.Dy())
		sec.Ink.markDirty(sec.Ink.Img.Rect)
		if i < len(c.sections) {
			c.dirty = c.dirty.Union(c.sections[i].Ink.Bounds())
			c.sections[i] = sec
		} else {
			c.sections = append(c.sections, sec)
		}
		changed = true
	}
	if len(c.sections) > n {
		for _, sec := range c.sections[n:] {
			c.dirty = c.dirty.Union(sec.Ink.Bounds())
		}
		c.sections = c.sections[:n]
		changed = true
	}
	return changed
}

// AppendSection adds a section of height h to the document and allocates
// its surfaces. It returns the index of the new section.
func (c *Compositor) AppendSection(h float64) int {
	idx := c.doc.AppendSection(h)
	c.Sync()
	return idx
}

// Resize changes the document width and the height of section 0 and
// rebuilds all surfaces.
func (c *Compositor) Resize(width, height float64) {
	c.doc.SetWidth(width)
	c.doc.ResizeSection(0, height)
	if c.Sync() {
		c.Rebuild()
	}
}

// Rebuild clears all committed surfaces and replays the visible strokes of
// the document, oldest first. The stroke list is not modified.
func (c *Compositor) Rebuild() {
	start := time.Now()
	for _, sec := range c.sections {
		sec.Ink.Clear()
		sec.Highlight.Clear()
	}
	visible := c.doc.Visible()
	for _, s := range visible {
		c.DrawStroke(s)
	}
	logging.Logger().Debug("committed layers rebuilt",
		"strokes", len(visible), "sections", len(c.sections), "elapsed", time.Since(start))
}

// DrawStroke paints a committed stroke into the committed surfaces of its
// section.
func (c *Compositor) DrawStroke(s *document.Stroke) {
	sec := c.sectionOf(s)
	if sec == nil {
		return
	}
	c.paint.replay(sec, s)
}

func (c *Compositor) sectionOf(s *document.Stroke) *Section {
	if s.Section < 0 || s.Section >= len(c.sections) {
		logging.Logger().Warn("stroke outside all sections",
			"stroke", s.ID, "section", s.Section)
		return nil
	}
	return c.sections[s.Section]
}

// BeginScratch starts rendering the live stroke s, which must contain
// exactly its first point.
func (c *Compositor) BeginScratch(s *document.Stroke) {
	c.ClearScratch()
	c.live = s
	c.lastDir = math.NaN()
	s.StampPhase = 0
	c.ExtendScratch(s, 0)
}

// ExtendScratch renders the part of the live stroke s starting at point
// index from. Area erasers clear the committed surfaces directly.
func (c *Compositor) ExtendScratch(s *document.Stroke, from int) {
	sec := c.sectionOf(s)
	if sec == nil {
		return
	}
	to := s.Len()
	p := c.paint
	switch s.Kind {
	case brush.Pen:
		p.line(sec.ScratchInk, s, from, to, s.Color, Over)
	case brush.Marker:
		p.marker(sec.ScratchInk, s, from, to)
	case brush.Pencil:
		p.pencil(sec.ScratchInk, s, from, to, &s.StampPhase)
	case brush.Calligraphy, brush.Fountain:
		p.unionSegments(sec.ScratchInk, s, from, to, &c.lastDir)
	case brush.Highlighter:
		pad := brush.InkRadius(s.Kind, s.Width)
		p.highlightAround(sec.ScratchHighlight, s, pixelRect(brush.Bounds(s.Points()[max(from-1, 0):to], pad)))
	case brush.HighlighterStraight:
		sec.ScratchHighlight.ClearRect(c.liveArea)
		p.line(sec.ScratchHighlight, s, 0, to, s.Color, Over)
		c.liveArea = pixelRect(s.InkBounds())
	case brush.EraserArea:
		c.EraseAlong(s, from)
	}
}

// ClearScratch discards the content of the scratch surfaces.
func (c *Compositor) ClearScratch() {
	if c.live != nil {
		r := pixelRect(c.live.InkBounds())
		for _, sec := range c.sections {
			sec.ScratchInk.ClearRect(r)
			sec.ScratchHighlight.ClearRect(r)
		}
	}
	c.live = nil
	c.liveArea = image.Rectangle{}
	c.clearFloating()
}

// EraseAlong clears the committed surfaces along the area eraser stroke s,
// starting at point index from. If s.HighlightOnly is set, only the
// highlight surface is affected.
func (c *Compositor) EraseAlong(s *document.Stroke, from int) {
	sec := c.sectionOf(s)
	if sec == nil {
		return
	}
	c.paint.erase(sec.Highlight, s, from, s.Len())
	if !s.HighlightOnly {
		c.paint.erase(sec.Ink, s, from, s.Len())
	}
}

// SetFloating replaces the strokes drawn into the scratch surfaces while a
// selection is being transformed. The strokes are hidden in the document,
// so they are not part of the committed surfaces.
func (c *Compositor) SetFloating(strokes []*document.Stroke) {
	c.clearFloating()
	for _, s := range strokes {
		sec := c.sectionOf(s)
		if sec == nil {
			continue
		}
		c.paint.replay(sec.scratch(), s)
		c.floatExt = c.floatExt.Union(pixelRect(s.InkBounds()))
	}
}

func (c *Compositor) clearFloating() {
	if c.floatExt.Empty() {
		return
	}
	for _, sec := range c.sections {
		sec.ScratchInk.ClearRect(c.floatExt)
		sec.ScratchHighlight.ClearRect(c.floatExt)
	}
	c.floatExt = image.Rectangle{}
}

// TakeDirty returns the document area changed since the last call, or the
// zero rectangle if nothing changed.
func (c *Compositor) TakeDirty() rect.Rect {
	r := c.dirty
	c.dirty = image.Rectangle{}
	for _, sec := range c.sections {
		for _, s := range sec.layers() {
			r = r.Union(s.TakeDirty())
		}
	}
	if r.Empty() {
		return rect.Rect{}
	}
	return rect.Rect{
		LLx: float64(r.Min.X), LLy: float64(r.Min.Y),
		URx: float64(r.Max.X), URy: float64(r.Max.Y),
	}
}

// Compose renders all sections at native resolution into one image, top to
// bottom by section offset. The image is filled with bg first.
func (c *Compositor) Compose(bg color.Color) *image.RGBA {
	w := int(math.Ceil(c.doc.Width()))
	h := int(math.Ceil(c.doc.Height()))
	dst := image.NewRGBA(image.Rect(0, 0, max(w, 0), max(h, 0)))
	draw.Draw(dst, dst.Rect, image.NewUniform(bg), image.Point{}, draw.Src)
	for _, sec := range c.sections {
		for _, s := range sec.layers() {
			draw.Draw(dst, s.Bounds(), s.Img, image.Point{}, draw.Over)
		}
	}
	return dst
}

// ComposeSection renders section i at native resolution on the
// background bg. The image bounds start at the origin.
func (c *Compositor) ComposeSection(i int, bg color.Color) *image.RGBA {
	sec := c.sections[i]
	sb := sec.Ink.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, sb.Dx(), sb.Dy()))
	draw.Draw(dst, dst.Rect, image.NewUniform(bg), image.Point{}, draw.Src)
	for _, s := range sec.layers() {
		draw.Draw(dst, dst.Rect, s.Img, image.Point{}, draw.Over)
	}
	return dst
}

// RenderView draws the visible part of the document into dst.
func (c *Compositor) RenderView(dst *image.RGBA, v View) {
	if v.Scale <= 0 {
		v.Scale = 1
	}
	db := dst.Bounds()
	draw.Draw(dst, db, image.NewUniform(c.Desk), image.Point{}, draw.Src)

	visible := rect.Rect{
		LLx: v.Offset.X + float64(db.Min.X)/v.Scale,
		LLy: v.Offset.Y + float64(db.Min.Y)/v.Scale,
		URx: v.Offset.X + float64(db.Max.X)/v.Scale,
		URy: v.Offset.Y + float64(db.Max.Y)/v.Scale,
	}
	for i, sec := range c.sections {
		if !brush.Intersects(c.doc.SectionBounds(i), visible) {
			continue
		}
		origin := sec.Ink.Origin
		s2d := f64.Aff3{
			v.Scale, 0, (float64(origin.X) - v.Offset.X) * v.Scale,
			0, v.Scale, (float64(origin.Y) - v.Offset.Y) * v.Scale,
		}
		page := image.Rect(
			int(math.Round(s2d[2])), int(math.Round(s2d[5])),
			int(math.Round(s2d[2]+float64(sec.Ink.Img.Rect.Dx())*v.Scale)),
			int(math.Round(s2d[5]+float64(sec.Ink.Img.Rect.Dy())*v.Scale)),
		)
		draw.Draw(dst, page.Intersect(db), image.NewUniform(c.Paper), image.Point{}, draw.Src)
		for _, s := range sec.layers() {
			draw.ApproxBiLinear.Transform(dst, s2d, s.Img, s.Img.Rect, draw.Over, nil)
		}
	}
}

// pixelRect returns the smallest pixel rectangle containing r.
func pixelRect(r rect.Rect) image.Rectangle {
	if brush.IsEmpty(r) {
		return image.Rectangle{}
	}
	return image.Rect(
		int(math.Floor(r.LLx)), int(math.Floor(r.LLy)),
		int(math.Ceil(r.URx)), int(math.Ceil(r.URy)),
	)
}
