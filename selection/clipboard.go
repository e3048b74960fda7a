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
	"github.com/google/uuid"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/ink/document"
)

// Clipboard holds copies of previously selected strokes. The copies are
// independent of the document.
type Clipboard struct {
	strokes []*document.Stroke
	bounds  rect.Rect
}

// Copy replaces the clipboard content with deep copies of the selected
// strokes. It reports false, leaving the clipboard unchanged, if the
// selection is empty.
func (c *Clipboard) Copy(sel *Selection) bool {
	b, ok := sel.Bounds()
	if !ok {
		return false
	}
	c.strokes = c.strokes[:0]
	for _, s := range sel.Strokes() {
		c.strokes = append(c.strokes, s.Clone())
	}
	c.bounds = b
	return true
}

// IsEmpty reports whether the clipboard holds no strokes.
func (c *Clipboard) IsEmpty() bool {
	return len(c.strokes) == 0
}

// Len returns the number of strokes on the clipboard.
func (c *Clipboard) Len() int {
	return len(c.strokes)
}

// Bounds returns the bounds of the copied strokes at the time of copying.
func (c *Clipboard) Bounds() rect.Rect {
	return c.bounds
}

// Paste inserts new copies of the clipboard strokes into doc, centred on
// at, as one undoable edit, and makes them the selection. Each pasted
// stroke gets a new ID and is assigned to the section containing its
// first point. Paste with an empty clipboard does nothing and returns nil.
func (c *Clipboard) Paste(doc *document.Document, at vec.Vec2, sel *Selection) []*document.Stroke {
	if c.IsEmpty() {
		return nil
	}
	centre := vec.Vec2{
		X: (c.bounds.LLx + c.bounds.URx) / 2,
		Y: (c.bounds.LLy + c.bounds.URy) / 2,
	}
	d := at.Sub(centre)

	pasted := make([]*document.Stroke, len(c.strokes))
	for i, s := range c.strokes {
		p := s.Clone()
		p.ID = uuid.NewString()
		p.Translate(d)
		p.Section = doc.SectionIndexForY(p.Points()[0].Y)
		pasted[i] = p
	}
	doc.Insert(pasted)
	sel.Set(pasted)
	return pasted
}
