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
	"math"
	"slices"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/ink/document"
	"seehuhn.de/go/ink/internal/logging"
)

// MinScale is the smallest scale factor a transform applies.
const MinScale = 0.1

// Op is the kind of change a transform applies.
type Op int

const (
	Translate Op = iota
	ScaleX
	ScaleY
	ScaleUniform
)

func opFor(h Handle) Op {
	switch {
	case h.IsCorner():
		return ScaleUniform
	case h == Left || h == Right:
		return ScaleX
	case h == Top || h == Bottom:
		return ScaleY
	default:
		return Translate
	}
}

// Transform is an active move or scale of the selected strokes. While a
// transform is active the strokes are hidden in the document, so that the
// committed layers show the ink behind them.
//
// All updates are computed from a snapshot taken at the start, so the
// result only depends on the current pointer position.
type Transform struct {
	doc     *document.Document
	strokes []*document.Stroke
	before  []document.Geometry
	order   []*document.Stroke

	op     Op
	handle Handle
	start  vec.Vec2
	anchor vec.Vec2
	bounds rect.Rect

	done bool
}

// BeginTransform starts a transform of the selected strokes, grabbed by
// handle h at document position p. It returns nil if the selection is
// empty or h is NoHandle.
func BeginTransform(doc *document.Document, sel *Selection, h Handle, p vec.Vec2) *Transform {
	b, ok := sel.Bounds()
	if !ok || h == NoHandle {
		return nil
	}
	t := &Transform{
		doc:     doc,
		strokes: slices.Clone(sel.Strokes()),
		order:   slices.Clone(doc.Strokes()),
		op:      opFor(h),
		handle:  h,
		start:   p,
		anchor:  h.Anchor(b),
		bounds:  b,
	}
	t.before = make([]document.Geometry, len(t.strokes))
	for i, s := range t.strokes {
		t.before[i] = s.Geometry()
		s.Hidden = true
	}
	logging.Logger().Debug("transform started", "handle", h, "strokes", len(t.strokes))
	return t
}

// Op returns the kind of transform.
func (t *Transform) Op() Op {
	return t.op
}

// Strokes returns the strokes being transformed.
func (t *Transform) Strokes() []*document.Stroke {
	return t.strokes
}

// StartBounds returns the selection bounds at the start of the transform.
func (t *Transform) StartBounds() rect.Rect {
	return t.bounds
}

// ratio returns the scale factor along one axis for a pointer which
// moved from start to cur, relative to the anchor coordinate a.
func ratio(start, cur, a float64) float64 {
	d := start - a
	if math.Abs(d) < 1e-9 {
		return 1
	}
	return max((cur-a)/d, MinScale)
}

// Scale returns the scale factors for the pointer position p.
func (t *Transform) Scale(p vec.Vec2) (sx, sy float64) {
	sx, sy = 1, 1
	switch t.op {
	case ScaleX:
		sx = ratio(t.start.X, p.X, t.anchor.X)
	case ScaleY:
		sy = ratio(t.start.Y, p.Y, t.anchor.Y)
	case ScaleUniform:
		s := max(ratio(t.start.X, p.X, t.anchor.X), ratio(t.start.Y, p.Y, t.anchor.Y))
		sx, sy = s, s
	}
	return sx, sy
}

// Update applies the transform for the pointer position p to all strokes.
// Scaling derives the stroke width from the base width of each stroke.
func (t *Transform) Update(p vec.Vec2) {
	if t.done {
		return
	}
	if t.op == Translate {
		d := p.Sub(t.start)
		for i, s := range t.strokes {
			pts := make([]vec.Vec2, len(t.before[i].Points))
			for j, q := range t.before[i].Points {
				pts[j] = q.Add(d)
			}
			s.SetGeometry(pts, t.before[i].Width)
			t.follow(s)
		}
		return
	}

	sx, sy := t.Scale(p)
	a := t.anchor
	for i, s := range t.strokes {
		pts := make([]vec.Vec2, len(t.before[i].Points))
		for j, q := range t.before[i].Points {
			pts[j] = vec.Vec2{X: a.X + (q.X-a.X)*sx, Y: a.Y + (q.Y-a.Y)*sy}
		}
		base := s.BaseWidth
		if base <= 0 {
			base = t.before[i].Width
		}
		s.SetGeometry(pts, base*(math.Abs(sx)+math.Abs(sy))/2)
		t.follow(s)
	}
}

// follow assigns s to the section under its centre, so that a stroke
// dragged across a section boundary is drawn in its new section.
func (t *Transform) follow(s *document.Stroke) {
	b := s.Bounds()
	s.Section = t.doc.NearestSection((b.LLy + b.URy) / 2)
}

// End finishes the transform. The strokes are shown again, moved above
// all other strokes and shifted back inside surface if they were dragged
// out of it. Each stroke then belongs to the section nearest to its
// centre, and is shifted inside that section. The change is recorded as
// one undoable edit. End reports whether the strokes changed.
func (t *Transform) End(surface rect.Rect) bool {
	if t.done {
		return false
	}
	t.done = true
	for _, s := range t.strokes {
		s.Hidden = false
	}

	if b, ok := strokeBounds(t.strokes); ok {
		d := clampInto(b, surface)
		if d != (vec.Vec2{}) {
			for _, s := range t.strokes {
				s.Translate(d)
			}
		}
	}
	for _, s := range t.strokes {
		t.settle(s)
	}

	changed := false
	for i, s := range t.strokes {
		g := t.before[i]
		if s.Width != g.Width || s.Section != g.Section || !slices.Equal(s.Points(), g.Points) {
			changed = true
			break
		}
	}
	if !changed {
		logging.Logger().Debug("transform ended without change")
		return false
	}
	t.doc.MoveToTop(t.strokes)
	t.doc.RecordTransform(t.strokes, t.before, t.order)
	logging.Logger().Debug("transform ended", "op", t.op, "strokes", len(t.strokes))
	return true
}

// settle assigns s to the section nearest to its centre and shifts it
// inside that section.
func (t *Transform) settle(s *document.Stroke) {
	b := s.Bounds()
	i := t.doc.NearestSection((b.LLy + b.URy) / 2)
	if d := clampInto(b, t.doc.SectionBounds(i)); d != (vec.Vec2{}) {
		s.Translate(d)
	}
	s.Section = i
}

// clampInto returns the shift which moves b inside target.
func clampInto(b, target rect.Rect) vec.Vec2 {
	return vec.Vec2{
		X: clampShift(b.LLx, b.URx, target.LLx, target.URx),
		Y: clampShift(b.LLy, b.URy, target.LLy, target.URy),
	}
}

// clampShift returns the shift which moves [lo, hi] inside [min, max].
// Intervals larger than the target are aligned with its lower end.
func clampShift(lo, hi, minV, maxV float64) float64 {
	if maxV <= minV {
		return 0
	}
	switch {
	case lo < minV || hi-lo > maxV-minV:
		return minV - lo
	case hi > maxV:
		return maxV - hi
	default:
		return 0
	}
}

// Cancel restores the original geometry of all strokes and shows them
// again. The z-order is not changed.
func (t *Transform) Cancel() {
	if t.done {
		return
	}
	t.done = true
	for i, s := range t.strokes {
		s.SetGeometryFrom(t.before[i])
		s.Hidden = false
	}
	logging.Logger().Debug("transform cancelled", "strokes", len(t.strokes))
}
