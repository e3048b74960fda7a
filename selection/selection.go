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
	"slices"

	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/ink/brush"
	"seehuhn.de/go/ink/document"
)

// Selection is an ordered set of strokes. Eraser strokes are never
// members.
type Selection struct {
	strokes []*document.Stroke
}

// Add appends s to the selection. It reports false if s is an eraser or
// is already selected.
func (sel *Selection) Add(s *document.Stroke) bool {
	if s == nil || s.Kind.IsEraser() || slices.Contains(sel.strokes, s) {
		return false
	}
	sel.strokes = append(sel.strokes, s)
	return true
}

// Set replaces the members of the selection.
func (sel *Selection) Set(strokes []*document.Stroke) {
	sel.strokes = sel.strokes[:0]
	for _, s := range strokes {
		sel.Add(s)
	}
}

// Clear empties the selection.
func (sel *Selection) Clear() {
	sel.strokes = nil
}

// Strokes returns the selected strokes in insertion order.
// The slice must not be modified.
func (sel *Selection) Strokes() []*document.Stroke {
	return sel.strokes
}

// Len returns the number of selected strokes.
func (sel *Selection) Len() int {
	return len(sel.strokes)
}

// IsEmpty reports whether no stroke is selected.
func (sel *Selection) IsEmpty() bool {
	return len(sel.strokes) == 0
}

// Contains reports whether s is selected.
func (sel *Selection) Contains(s *document.Stroke) bool {
	return slices.Contains(sel.strokes, s)
}

// Prune drops the strokes which are no longer part of doc, as happens
// after undo.
func (sel *Selection) Prune(doc *document.Document) {
	sel.strokes = slices.DeleteFunc(sel.strokes, func(s *document.Stroke) bool {
		return doc.IndexOf(s) < 0
	})
}

// Bounds returns the union of the footprint bounds of all selected
// strokes. The second return value is false if the selection is empty.
func (sel *Selection) Bounds() (rect.Rect, bool) {
	return strokeBounds(sel.strokes)
}

func strokeBounds(strokes []*document.Stroke) (rect.Rect, bool) {
	if len(strokes) == 0 {
		return rect.Rect{}, false
	}
	b := strokes[0].Bounds()
	for _, s := range strokes[1:] {
		b = brush.Union(b, s.Bounds())
	}
	return b, true
}
