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
	"image/color"
	"slices"
	"testing"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/ink/brush"
)

var black = color.NRGBA{A: 255}

func line(kind brush.Kind, x0, y0, x1, y1 float64) *Stroke {
	s := NewStroke(kind, black, 4, 0, vec.Vec2{X: x0, Y: y0})
	s.Append(vec.Vec2{X: x1, Y: y1})
	return s
}

func TestStrokeCache(t *testing.T) {
	s := line(brush.Calligraphy, 0, 0, 50, 0)
	fill := s.FillPath()
	if fill == nil {
		t.Fatal("no fill path")
	}
	if s.AreaPath() != fill {
		t.Error("calligraphy area path is not its fill path")
	}

	s.Append(vec.Vec2{X: 50, Y: 50})
	if s.FillPath() == fill {
		t.Error("cache survived Append")
	}

	fill = s.FillPath()
	s.SetGeometry(s.Geometry().Points, 8)
	if s.FillPath() == fill {
		t.Error("cache survived SetGeometry")
	}
}

func TestStrokeFrozen(t *testing.T) {
	d := New(100, 100)
	s := line(brush.Pen, 0, 0, 10, 0)
	d.Add(s)
	if !s.Frozen() {
		t.Fatal("stroke not frozen after Add")
	}
	if s.Append(vec.Vec2{X: 20, Y: 0}) {
		t.Error("frozen stroke accepted a point")
	}
	if s.Len() != 2 {
		t.Errorf("frozen stroke has %d points", s.Len())
	}
}

func TestNewStrokeIDs(t *testing.T) {
	a := line(brush.Pen, 0, 0, 1, 1)
	b := line(brush.Pen, 0, 0, 1, 1)
	if a.ID == b.ID || a.Seed == b.Seed {
		t.Error("strokes share ID or seed")
	}
	c := a.Clone()
	if c.ID != a.ID || &c.Points()[0] == &a.Points()[0] {
		t.Error("clone does not deep-copy points")
	}
}

func TestHitTest(t *testing.T) {
	s := line(brush.Pen, 0, 0, 100, 0)
	if !s.HitTest(vec.Vec2{X: 50, Y: 1.5}, 0) {
		t.Error("point on the ink not hit")
	}
	if s.HitTest(vec.Vec2{X: 50, Y: 5}, 0) {
		t.Error("point beside the ink hit")
	}
	if !s.HitTest(vec.Vec2{X: 50, Y: 5}, 3) {
		t.Error("tolerance ignored")
	}
}

func TestSections(t *testing.T) {
	d := New(200, 300)
	i := d.AppendSection(400)
	if i != 1 {
		t.Fatalf("new section index %d", i)
	}
	if s := d.Section(1); s.Y != 300+SectionGap || s.Height != 400 {
		t.Errorf("section 1 = %+v", s)
	}
	if h := d.Height(); h != 300+SectionGap+400 {
		t.Errorf("height = %g", h)
	}

	type testCase struct {
		y    float64
		want int
	}
	for _, tc := range []testCase{
		{0, 0}, {299.9, 0}, {300, 0}, {310, 0}, {324, 1}, {723.9, 1}, {724, 0}, {-5, 0},
	} {
		if got := d.SectionIndexForY(tc.y); got != tc.want {
			t.Errorf("SectionIndexForY(%g) = %d, want %d", tc.y, got, tc.want)
		}
	}

	p := vec.Vec2{X: 7, Y: 400}
	q := d.ToSection(1, p)
	if q != (vec.Vec2{X: 7, Y: 76}) {
		t.Errorf("ToSection = %v", q)
	}
	if back := d.FromSection(1, q); back != p {
		t.Errorf("FromSection = %v, want %v", back, p)
	}
}

func TestResizeSectionMovesStrokes(t *testing.T) {
	d := New(200, 300)
	d.AppendSection(300)
	s := NewStroke(brush.Pen, black, 2, 1, vec.Vec2{X: 10, Y: 400})
	d.Add(s)

	d.ResizeSection(0, 350)
	if y := d.Section(1).Y; y != 350+SectionGap {
		t.Errorf("section 1 at %g", y)
	}
	if p := s.Points()[0]; p.Y != 450 {
		t.Errorf("stroke point at y=%g, want 450", p.Y)
	}
}

// TestResizeSectionHistory resizes a section while strokes below it are
// only held by the history. Undo must bring them back relative to their
// moved section.
func TestResizeSectionHistory(t *testing.T) {
	d := New(200, 100)
	d.AppendSection(100)
	b := NewStroke(brush.Pen, black, 4, 1, vec.Vec2{X: 50, Y: 150})
	b.Append(vec.Vec2{X: 150, Y: 150})
	d.Add(b)
	c := NewStroke(brush.Pen, black, 4, 1, vec.Vec2{X: 50, Y: 180})
	d.Add(c)

	d.Remove([]*Stroke{b})
	d.Undo()
	d.Undo() // c is now only held by the redo list

	d.ResizeSection(0, 200)
	if y := b.Points()[0].Y; y != 250 {
		t.Errorf("stroke held by the history at y=%g, want 250", y)
	}
	d.Redo()
	if !slices.Equal(d.Strokes(), []*Stroke{b, c}) {
		t.Fatalf("strokes after redo: %v", d.Strokes())
	}
	if y := c.Points()[0].Y; y != 280 {
		t.Errorf("redone stroke at y=%g, want 280", y)
	}
	if y := b.Points()[0].Y; y != 250 {
		t.Errorf("stroke moved twice: y=%g", y)
	}

	d.Remove([]*Stroke{b})
	d.ResizeSection(0, 100)
	d.Undo()
	if y := b.Points()[1].Y; y != 150 {
		t.Errorf("restored stroke at y=%g, want 150", y)
	}
}

func TestResizeSectionTransformHistory(t *testing.T) {
	d := New(200, 100)
	d.AppendSection(100)
	a := line(brush.Pen, 10, 50, 60, 50)
	b := NewStroke(brush.Pen, black, 4, 1, vec.Vec2{X: 10, Y: 150})
	d.Add(a)
	d.Add(b)

	// move a from section 0 into section 1, and b within section 1
	order := slices.Clone(d.Strokes())
	before := []Geometry{a.Geometry(), b.Geometry()}
	a.Translate(vec.Vec2{Y: 100})
	a.Section = 1
	b.Translate(vec.Vec2{Y: 20})
	d.MoveToTop([]*Stroke{a, b})
	d.RecordTransform([]*Stroke{a, b}, before, order)

	d.ResizeSection(0, 200)
	if y := a.Points()[0].Y; y != 250 {
		t.Errorf("a at y=%g, want 250", y)
	}

	d.Undo()
	if y := a.Points()[0].Y; y != 50 || a.Section != 0 {
		t.Errorf("undo put a at y=%g in section %d", y, a.Section)
	}
	if y := b.Points()[0].Y; y != 250 {
		t.Errorf("undo put b at y=%g, want 250", y)
	}

	d.Redo()
	if y := a.Points()[0].Y; y != 250 || a.Section != 1 {
		t.Errorf("redo put a at y=%g in section %d", y, a.Section)
	}
	if y := b.Points()[0].Y; y != 270 {
		t.Errorf("redo put b at y=%g, want 270", y)
	}
}

func TestNearestSection(t *testing.T) {
	d := New(100, 100)
	d.AppendSection(100) // 124 to 224
	for _, tc := range []struct {
		y    float64
		want int
	}{
		{-20, 0}, {50, 0}, {105, 0}, {120, 1}, {150, 1}, {500, 1},
	} {
		if got := d.NearestSection(tc.y); got != tc.want {
			t.Errorf("NearestSection(%g) = %d, want %d", tc.y, got, tc.want)
		}
	}
}

func TestUndoRedoAdd(t *testing.T) {
	d := New(100, 100)
	var depths [][2]int
	d.OnHistoryChange(func(u, r int) { depths = append(depths, [2]int{u, r}) })

	a := line(brush.Pen, 0, 0, 10, 0)
	b := line(brush.Pen, 0, 5, 10, 5)
	d.Add(a)
	d.Add(b)
	d.Undo()
	if !slices.Equal(d.Strokes(), []*Stroke{a}) {
		t.Errorf("after undo: %d strokes", d.Len())
	}
	d.Redo()
	if !slices.Equal(d.Strokes(), []*Stroke{a, b}) {
		t.Errorf("after redo: %d strokes", d.Len())
	}
	if d.Redo() {
		t.Error("redo with empty stack")
	}

	want := [][2]int{{1, 0}, {2, 0}, {1, 1}, {2, 0}}
	if !slices.Equal(depths, want) {
		t.Errorf("history notifications %v, want %v", depths, want)
	}

	// a new edit clears the redo stack
	d.Undo()
	d.Add(line(brush.Pen, 0, 9, 10, 9))
	if d.RedoDepth() != 0 {
		t.Error("redo stack survived a new edit")
	}
}

func TestUndoRemove(t *testing.T) {
	d := New(100, 100)
	s := make([]*Stroke, 5)
	for i := range s {
		s[i] = line(brush.Pen, 0, float64(i), 10, float64(i))
		d.Add(s[i])
	}

	if !d.Remove([]*Stroke{s[1], s[3]}) {
		t.Fatal("nothing removed")
	}
	if !slices.Equal(d.Strokes(), []*Stroke{s[0], s[2], s[4]}) {
		t.Fatal("wrong strokes removed")
	}
	d.Undo()
	if !slices.Equal(d.Strokes(), s) {
		t.Error("undo did not restore the original order")
	}
	d.Redo()
	if d.Len() != 3 {
		t.Errorf("redo left %d strokes", d.Len())
	}

	if d.Remove([]*Stroke{line(brush.Pen, 0, 0, 1, 1)}) {
		t.Error("removing a foreign stroke reported success")
	}
}

func TestUndoClearAndInsert(t *testing.T) {
	d := New(100, 100)
	a := line(brush.Pen, 0, 0, 10, 0)
	d.Add(a)
	d.Clear()
	if d.Len() != 0 {
		t.Fatal("clear left strokes")
	}
	d.Undo()
	if !slices.Equal(d.Strokes(), []*Stroke{a}) {
		t.Error("undo of clear failed")
	}

	b, c := line(brush.Pen, 1, 1, 2, 2), line(brush.Pen, 3, 3, 4, 4)
	d.Insert([]*Stroke{b, c})
	if !slices.Equal(d.Strokes(), []*Stroke{a, b, c}) {
		t.Error("insert did not append")
	}
	d.Undo()
	if !slices.Equal(d.Strokes(), []*Stroke{a}) {
		t.Error("undo of insert failed")
	}
}

func TestUndoTransform(t *testing.T) {
	d := New(100, 100)
	a := line(brush.Pen, 0, 0, 10, 0)
	b := line(brush.Pen, 0, 5, 10, 5)
	d.Add(a)
	d.Add(b)

	order := slices.Clone(d.Strokes())
	before := []Geometry{a.Geometry()}
	a.Translate(vec.Vec2{X: 20, Y: 20})
	d.MoveToTop([]*Stroke{a})
	d.RecordTransform([]*Stroke{a}, before, order)

	if !slices.Equal(d.Strokes(), []*Stroke{b, a}) {
		t.Fatal("MoveToTop failed")
	}
	d.Undo()
	if !slices.Equal(d.Strokes(), []*Stroke{a, b}) {
		t.Error("undo did not restore z-order")
	}
	if p := a.Points()[0]; p != (vec.Vec2{}) {
		t.Errorf("undo did not restore geometry: %v", p)
	}
	d.Redo()
	if p := a.Points()[0]; p != (vec.Vec2{X: 20, Y: 20}) {
		t.Errorf("redo did not re-apply geometry: %v", p)
	}
}

func TestVisible(t *testing.T) {
	d := New(100, 100)
	a, b := line(brush.Pen, 0, 0, 1, 1), line(brush.Pen, 2, 2, 3, 3)
	d.Add(a)
	d.Add(b)
	a.Hidden = true
	if v := d.Visible(); !slices.Equal(v, []*Stroke{b}) {
		t.Errorf("visible = %v", v)
	}
	if d.IndexOf(a) != 0 || d.ByID(b.ID) != b {
		t.Error("hidden strokes must stay in the list")
	}
}
