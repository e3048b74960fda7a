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

package document

import (
	"slices"

	"seehuhn.de/go/geom/vec"
)

// edit is one entry of the undo history.
type edit interface {
	undo(d *Document)
	redo(d *Document)

	// shift passes every stroke held by the edit to move, and moves the
	// geometry snapshots of section j down by dy.
	shift(j int, dy float64, move func(*Stroke))
}

// OnHistoryChange registers fn to be called with the new undo and redo
// depths whenever either of them changes. Only one callback is kept.
func (d *Document) OnHistoryChange(fn func(undo, redo int)) {
	d.onHistory = fn
}

// UndoDepth returns the number of edits which can be undone.
func (d *Document) UndoDepth() int {
	return len(d.undo)
}

// RedoDepth returns the number of edits which can be redone.
func (d *Document) RedoDepth() int {
	return len(d.redo)
}

// Undo reverts the most recent edit. It reports false if there is nothing
// to undo.
func (d *Document) Undo() bool {
	n := len(d.undo)
	if n == 0 {
		return false
	}
	e := d.undo[n-1]
	d.undo = d.undo[:n-1]
	e.undo(d)
	d.redo = append(d.redo, e)
	d.notify()
	return true
}

// Redo re-applies the most recently undone edit. It reports false if there
// is nothing to redo.
func (d *Document) Redo() bool {
	n := len(d.redo)
	if n == 0 {
		return false
	}
	e := d.redo[n-1]
	d.redo = d.redo[:n-1]
	e.redo(d)
	d.undo = append(d.undo, e)
	d.notify()
	return true
}

func (d *Document) push(e edit) {
	d.undo = append(d.undo, e)
	d.redo = nil
	d.notify()
}

func (d *Document) notify() {
	if d.onHistory != nil {
		d.onHistory(len(d.undo), len(d.redo))
	}
}

func (d *Document) removeStroke(s *Stroke) {
	if i := d.IndexOf(s); i >= 0 {
		d.strokes = slices.Delete(d.strokes, i, i+1)
	}
}

type addEdit struct {
	stroke *Stroke
}

func (e *addEdit) undo(d *Document) {
	d.removeStroke(e.stroke)
}

func (e *addEdit) redo(d *Document) {
	d.strokes = append(d.strokes, e.stroke)
}

func (e *addEdit) shift(_ int, _ float64, move func(*Stroke)) {
	move(e.stroke)
}

type placed struct {
	index  int
	stroke *Stroke
}

// removeEdit is a stroke-eraser hit. Entries are in increasing index
// order.
type removeEdit struct {
	removed []placed
}

func (e *removeEdit) undo(d *Document) {
	for _, p := range e.removed {
		idx := min(p.index, len(d.strokes))
		d.strokes = slices.Insert(d.strokes, idx, p.stroke)
	}
}

func (e *removeEdit) redo(d *Document) {
	for i := len(e.removed) - 1; i >= 0; i-- {
		d.removeStroke(e.removed[i].stroke)
	}
}

func (e *removeEdit) shift(_ int, _ float64, move func(*Stroke)) {
	for _, p := range e.removed {
		move(p.stroke)
	}
}

type insertEdit struct {
	strokes []*Stroke
}

func (e *insertEdit) undo(d *Document) {
	for _, s := range e.strokes {
		d.removeStroke(s)
	}
}

func (e *insertEdit) redo(d *Document) {
	d.strokes = append(d.strokes, e.strokes...)
}

func (e *insertEdit) shift(_ int, _ float64, move func(*Stroke)) {
	for _, s := range e.strokes {
		move(s)
	}
}

type clearEdit struct {
	strokes []*Stroke
}

func (e *clearEdit) undo(d *Document) {
	d.strokes = slices.Clone(e.strokes)
}

func (e *clearEdit) redo(d *Document) {
	d.strokes = nil
}

func (e *clearEdit) shift(_ int, _ float64, move func(*Stroke)) {
	for _, s := range e.strokes {
		move(s)
	}
}

type transformEdit struct {
	strokes     []*Stroke
	before      []Geometry
	after       []Geometry
	orderBefore []*Stroke
	orderAfter  []*Stroke
}

func (e *transformEdit) undo(d *Document) {
	for i, s := range e.strokes {
		s.SetGeometryFrom(e.before[i])
	}
	d.strokes = slices.Clone(e.orderBefore)
}

func (e *transformEdit) redo(d *Document) {
	for i, s := range e.strokes {
		s.SetGeometryFrom(e.after[i])
	}
	d.strokes = slices.Clone(e.orderAfter)
}

func (e *transformEdit) shift(j int, dy float64, move func(*Stroke)) {
	for _, s := range slices.Concat(e.orderBefore, e.orderAfter) {
		move(s)
	}
	for i, s := range e.strokes {
		move(s)
		for _, g := range []*Geometry{&e.before[i], &e.after[i]} {
			if g.Section == j {
				g.translate(vec.Vec2{Y: dy})
			}
		}
	}
}
