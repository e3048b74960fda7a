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

// Package document holds the data model of the ink engine: strokes in
// z-order, the stack of sections (pages) they live on, and the undo
// history.
//
// A Document is not safe for concurrent use. All access happens on the
// thread which handles input events.
package document

import (
	"math"
	"slices"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/ink/internal/logging"
)

// SectionGap is the vertical distance between consecutive sections.
const SectionGap = 24

// Section is one page-like region of the document.
type Section struct {
	Y      float64 // top edge, in document coordinates
	Height float64
}

// Contains reports whether the document y coordinate lies in s.
func (s Section) Contains(y float64) bool {
	return y >= s.Y && y < s.Y+s.Height
}

// Document is an ordered list of strokes on a stack of sections.
// Strokes later in the list are drawn on top.
type Document struct {
	width    float64
	strokes  []*Stroke
	sections []Section

	undo      []edit
	redo      []edit
	onHistory func(undo, redo int)
}

// New returns an empty document with a single section of the given size.
func New(width, height float64) *Document {
	return &Document{
		width:    width,
		sections: []Section{{Y: 0, Height: height}},
	}
}

// Width returns the common width of all sections.
func (d *Document) Width() float64 {
	return d.width
}

// SetWidth changes the width of all sections.
func (d *Document) SetWidth(w float64) {
	d.width = w
}

// Strokes returns all strokes in z-order, including hidden ones.
// The slice must not be modified.
func (d *Document) Strokes() []*Stroke {
	return d.strokes
}

// Len returns the number of strokes.
func (d *Document) Len() int {
	return len(d.strokes)
}

// Visible returns the strokes which are not hidden, in z-order.
func (d *Document) Visible() []*Stroke {
	res := make([]*Stroke, 0, len(d.strokes))
	for _, s := range d.strokes {
		if !s.Hidden {
			res = append(res, s)
		}
	}
	return res
}

// IndexOf returns the z-order position of s, or -1.
func (d *Document) IndexOf(s *Stroke) int {
	return slices.Index(d.strokes, s)
}

// ByID returns the stroke with the given ID, or nil.
func (d *Document) ByID(id string) *Stroke {
	for _, s := range d.strokes {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// Add freezes s and puts it on top of all other strokes, as an undoable
// edit.
func (d *Document) Add(s *Stroke) {
	s.Freeze()
	d.strokes = append(d.strokes, s)
	d.push(&addEdit{stroke: s})
}

// Remove takes the given strokes out of the document, as one undoable
// edit. Undo puts them back at their former positions. Strokes which are
// not in the document are ignored. Remove reports whether anything was
// removed.
func (d *Document) Remove(set []*Stroke) bool {
	var removed []placed
	for i, s := range d.strokes {
		if slices.Contains(set, s) {
			removed = append(removed, placed{index: i, stroke: s})
		}
	}
	if len(removed) == 0 {
		return false
	}
	e := &removeEdit{removed: removed}
	e.redo(d)
	d.push(e)
	return true
}

// Insert adds strokes on top of the document as one undoable edit, as
// used for pasting.
func (d *Document) Insert(strokes []*Stroke) {
	if len(strokes) == 0 {
		return
	}
	for _, s := range strokes {
		s.Freeze()
	}
	e := &insertEdit{strokes: slices.Clone(strokes)}
	e.redo(d)
	d.push(e)
}

// Clear removes all strokes as one undoable edit. The sections are kept.
func (d *Document) Clear() {
	if len(d.strokes) == 0 {
		return
	}
	e := &clearEdit{strokes: d.strokes}
	e.redo(d)
	d.push(e)
	logging.Logger().Info("document cleared", "strokes", len(e.strokes))
}

// MoveToTop moves the given strokes above all others, keeping their
// relative order. This is not recorded in the history on its own; see
// [Document.RecordTransform].
func (d *Document) MoveToTop(set []*Stroke) {
	rest := make([]*Stroke, 0, len(d.strokes))
	var top []*Stroke
	for _, s := range d.strokes {
		if slices.Contains(set, s) {
			top = append(top, s)
		} else {
			rest = append(rest, s)
		}
	}
	d.strokes = append(rest, top...)
}

// RecordTransform records a completed transform as one undoable edit.
// Before holds the geometry of the strokes prior to the transform and
// order the z-order prior to any reordering. The strokes must already
// carry their new geometry.
func (d *Document) RecordTransform(strokes []*Stroke, before []Geometry, order []*Stroke) {
	e := &transformEdit{
		strokes:     slices.Clone(strokes),
		before:      before,
		after:       make([]Geometry, len(strokes)),
		orderBefore: slices.Clone(order),
		orderAfter:  slices.Clone(d.strokes),
	}
	for i, s := range strokes {
		e.after[i] = s.Geometry()
	}
	d.push(e)
}

// Sections returns the section list. The slice must not be modified.
func (d *Document) Sections() []Section {
	return d.sections
}

// Section returns section i.
func (d *Document) Section(i int) Section {
	return d.sections[i]
}

// AppendSection adds a new section of height h below the last one and
// returns its index.
func (d *Document) AppendSection(h float64) int {
	last := d.sections[len(d.sections)-1]
	d.sections = append(d.sections, Section{Y: last.Y + last.Height + SectionGap, Height: h})
	idx := len(d.sections) - 1
	logging.Logger().Info("section appended", "index", idx, "height", h)
	return idx
}

// ResizeSection changes the height of section i. The sections below move
// to keep the gap, and so do their strokes.
func (d *Document) ResizeSection(i int, h float64) {
	if d.sections[i].Height == h {
		return
	}
	d.sections[i].Height = h
	for j := i + 1; j < len(d.sections); j++ {
		prev := d.sections[j-1]
		y := prev.Y + prev.Height + SectionGap
		delta := y - d.sections[j].Y
		d.sections[j].Y = y
		if delta != 0 {
			d.shiftSection(j, delta)
		}
	}
}

// shiftSection moves all strokes of section j down by dy. This includes
// strokes which are only held by the undo and redo history, and the
// geometry snapshots recorded for section j, so that undo and redo place
// strokes relative to the moved section.
func (d *Document) shiftSection(j int, dy float64) {
	moved := make(map[*Stroke]bool)
	move := func(s *Stroke) {
		if s.Section == j && !moved[s] {
			moved[s] = true
			s.Translate(vec.Vec2{Y: dy})
		}
	}
	for _, s := range d.strokes {
		move(s)
	}
	for _, e := range slices.Concat(d.undo, d.redo) {
		e.shift(j, dy, move)
	}
}

// SetSections replaces the section list, as used when loading a document.
func (d *Document) SetSections(heights []float64) {
	d.sections = d.sections[:0]
	y := 0.0
	for _, h := range heights {
		d.sections = append(d.sections, Section{Y: y, Height: h})
		y += h + SectionGap
	}
}

// SectionIndexForY returns the first section containing the document y
// coordinate, or 0 if no section does.
func (d *Document) SectionIndexForY(y float64) int {
	for i, s := range d.sections {
		if s.Contains(y) {
			return i
		}
	}
	return 0
}

// NearestSection returns the section containing the document y
// coordinate. If no section contains y, the closest section is returned.
func (d *Document) NearestSection(y float64) int {
	best, bestDist := 0, math.Inf(1)
	for i, s := range d.sections {
		if s.Contains(y) {
			return i
		}
		dist := min(math.Abs(y-s.Y), math.Abs(y-(s.Y+s.Height)))
		if dist < bestDist {
			best, bestDist = i, dist
		}
	}
	return best
}

// ToSection maps a document point into the coordinates of section i.
func (d *Document) ToSection(i int, p vec.Vec2) vec.Vec2 {
	return vec.Vec2{X: p.X, Y: p.Y - d.sections[i].Y}
}

// FromSection maps a point in the coordinates of section i to document
// coordinates.
func (d *Document) FromSection(i int, p vec.Vec2) vec.Vec2 {
	return vec.Vec2{X: p.X, Y: p.Y + d.sections[i].Y}
}

// SectionBounds returns the rectangle of section i in document
// coordinates.
func (d *Document) SectionBounds(i int) rect.Rect {
	s := d.sections[i]
	return rect.Rect{LLx: 0, LLy: s.Y, URx: d.width, URy: s.Y + s.Height}
}

// Height returns the distance from the top of the first section to the
// bottom of the last one.
func (d *Document) Height() float64 {
	last := d.sections[len(d.sections)-1]
	return last.Y + last.Height
}

// Load replaces all strokes without recording history, and resets the
// history.
func (d *Document) Load(strokes []*Stroke) {
	for _, s := range strokes {
		s.Freeze()
	}
	d.strokes = slices.Clone(strokes)
	d.undo, d.redo = nil, nil
	d.notify()
}
