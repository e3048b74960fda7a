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
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/ink/brush"
	"seehuhn.de/go/ink/document"
	"seehuhn.de/go/ink/gesture"
	"seehuhn.de/go/ink/internal/logging"
	"seehuhn.de/go/ink/selection"
)

var _ gesture.Handler = (*Engine)(nil)

// BeginStroke implements [gesture.Handler].
func (e *Engine) BeginStroke(p vec.Vec2, eraser bool) {
	if !e.sel.IsEmpty() {
		e.sel.Clear()
		e.redraw()
	}

	kind := e.kind
	if eraser {
		kind = e.eraserKind
	}
	s := document.NewStroke(kind, e.color, e.width, e.doc.SectionIndexForY(p.Y), p)
	s.HighlightOnly = kind == brush.EraserArea && e.highlightOnly
	e.live = s

	if kind == brush.EraserStroke {
		e.erased = e.erased[:0]
		e.eraseStrokes(p, p)
		return
	}
	e.comp.BeginScratch(s)
	e.redraw()
}

// ExtendStroke implements [gesture.Handler]. Samples closer to the
// previous point than the minimum movement of the brush are dropped.
func (e *Engine) ExtendStroke(p vec.Vec2) {
	s := e.live
	if s == nil {
		return
	}
	prev := s.Last()
	if p.Sub(prev).Length() < s.Kind.MinMove(s.Width) {
		return
	}
	s.Append(p)

	if s.Kind == brush.EraserStroke {
		e.eraseStrokes(prev, p)
		return
	}
	e.comp.ExtendScratch(s, s.Len()-1)
	e.redraw()
}

// eraseStrokes hides the strokes touched by the stroke eraser moving
// from a to b. They are removed from the document when the eraser lifts.
func (e *Engine) eraseStrokes(a, b vec.Vec2) {
	hit := selection.HitStrokes(e.doc, a, b, e.live.Width/2)
	if len(hit) == 0 {
		return
	}
	for _, s := range hit {
		s.Hidden = true
	}
	e.erased = append(e.erased, hit...)
	e.comp.Rebuild()
	e.redraw()
}

// EndStroke implements [gesture.Handler].
func (e *Engine) EndStroke() {
	s := e.live
	if s == nil {
		return
	}
	e.live = nil

	if s.Kind == brush.EraserStroke {
		for _, h := range e.erased {
			h.Hidden = false
		}
		if len(e.erased) > 0 {
			e.doc.Remove(e.erased)
			logging.Logger().Debug("strokes erased", "count", len(e.erased))
		}
		e.erased = e.erased[:0]
		e.rebuild()
		return
	}

	e.comp.ClearScratch()
	e.doc.Add(s)
	if s.Kind == brush.EraserArea {
		// the live samples already erased, so replay the eraser exactly once
		e.comp.Rebuild()
	} else {
		e.comp.DrawStroke(s)
	}
	e.redraw()
}

// CancelStroke implements [gesture.Handler].
func (e *Engine) CancelStroke() {
	s := e.live
	if s == nil {
		return
	}
	e.live = nil

	switch s.Kind {
	case brush.EraserStroke:
		for _, h := range e.erased {
			h.Hidden = false
		}
		e.erased = e.erased[:0]
		e.comp.Rebuild()
	case brush.EraserArea:
		// the committed surfaces were erased directly
		e.comp.ClearScratch()
		e.comp.Rebuild()
	default:
		e.comp.ClearScratch()
	}
	e.redraw()
}

// BeginMarquee implements [gesture.Handler].
func (e *Engine) BeginMarquee(p vec.Vec2) {
	tool := e.selTool
	if tool == selection.None {
		tool = selection.Lasso
	}
	e.marquee = selection.Begin(tool, p, e.view.Scale)
	e.sel.Clear()
	e.redraw()
}

// ExtendMarquee implements [gesture.Handler].
func (e *Engine) ExtendMarquee(p vec.Vec2) {
	if e.marquee == nil {
		return
	}
	e.marquee.Extend(p)
	e.redraw()
}

// EndMarquee implements [gesture.Handler].
func (e *Engine) EndMarquee() {
	if e.marquee == nil {
		return
	}
	e.sel.Set(e.resolver.Resolve(e.doc, e.marquee, e.policy))
	e.marquee = nil
	e.redraw()
}

// CancelMarquee implements [gesture.Handler].
func (e *Engine) CancelMarquee() {
	e.marquee = nil
	e.redraw()
}

// GrabSelection implements [gesture.Handler].
func (e *Engine) GrabSelection(p vec.Vec2, tolerance float64) bool {
	b, ok := e.sel.Bounds()
	if !ok {
		return false
	}
	h := selection.HitHandle(b, p, tolerance)
	tf := selection.BeginTransform(e.doc, &e.sel, h, p)
	if tf == nil {
		return false
	}
	e.tf = tf
	e.comp.Rebuild()
	e.comp.SetFloating(tf.Strokes())
	e.redraw()
	return true
}

// UpdateTransform implements [gesture.Handler].
func (e *Engine) UpdateTransform(p vec.Vec2) {
	if e.tf == nil {
		return
	}
	e.tf.Update(p)
	e.comp.SetFloating(e.tf.Strokes())
	e.redraw()
}

// EndTransform implements [gesture.Handler].
func (e *Engine) EndTransform() {
	tf := e.tf
	if tf == nil {
		return
	}
	e.tf = nil
	tf.End(e.transformSurface(tf.Strokes()))
	e.comp.ClearScratch()
	e.rebuild()
}

// CancelTransform implements [gesture.Handler].
func (e *Engine) CancelTransform() {
	tf := e.tf
	if tf == nil {
		return
	}
	e.tf = nil
	tf.Cancel()
	e.comp.ClearScratch()
	e.rebuild()
}

// transformSurface returns the area transformed strokes must stay in:
// their section if they share one, the whole document otherwise.
func (e *Engine) transformSurface(strokes []*document.Stroke) rect.Rect {
	sec := -1
	for _, s := range strokes {
		switch {
		case sec < 0:
			sec = s.Section
		case s.Section != sec:
			return rect.Rect{URx: e.doc.Width(), URy: e.doc.Height()}
		}
	}
	if sec < 0 || sec >= len(e.doc.Sections()) {
		return rect.Rect{URx: e.doc.Width(), URy: e.doc.Height()}
	}
	return e.doc.SectionBounds(sec)
}

// Paste implements [gesture.Handler].
func (e *Engine) Paste(p vec.Vec2) {
	pasted := e.clip.Paste(e.doc, p, &e.sel)
	if pasted == nil {
		return
	}
	for _, s := range pasted {
		e.comp.DrawStroke(s)
	}
	logging.Logger().Debug("pasted", "strokes", len(pasted), "at", p)
	e.redraw()
}

// Pagination implements [gesture.Handler].
func (e *Engine) Pagination(progress float64) {
	e.pagination = progress
	if e.onPagination != nil {
		e.onPagination(progress)
	}
	e.redraw()
}

// AppendSection implements [gesture.Handler]. The new section has the
// height of the first one.
func (e *Engine) AppendSection() {
	e.comp.AppendSection(e.doc.Section(0).Height)
	e.syncContent()
	e.redraw()
}

// ViewChanged implements [gesture.Handler].
func (e *Engine) ViewChanged() {
	e.redraw()
}
