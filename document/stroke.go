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
	"encoding/binary"
	"image/color"
	"slices"

	"github.com/google/uuid"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/ink/brush"
)

// Stroke is one piece of ink. Points are in document coordinates.
//
// While a stroke is being drawn, points are only ever appended. Once the
// stroke is committed it is frozen, and its geometry changes only through
// [Stroke.SetGeometry] during a transform.
type Stroke struct {
	ID    string
	Kind  brush.Kind
	Color color.NRGBA
	Width float64

	// BaseWidth is the width the stroke was drawn with. Scaling a
	// selection derives the new width from it, so repeated scaling does
	// not compound.
	BaseWidth float64

	// Section is the index of the section the stroke belongs to. It is
	// fixed when the stroke is created.
	Section int

	// Hidden suppresses rendering while the stroke is being transformed.
	Hidden bool

	// HighlightOnly restricts an area eraser to the highlight layer.
	HighlightOnly bool

	// Seed drives the random placement of pencil stamps.
	Seed uint64

	// StampPhase is the distance to the next pencil stamp at the end of
	// the points rendered so far.
	StampPhase float64

	points []vec.Vec2
	frozen bool

	// derived geometry, nil-valued when absent
	fill      *path.Data
	fillValid bool
	area      *path.Data
	areaValid bool
}

// NewStroke starts a new stroke at p, with a fresh ID.
func NewStroke(kind brush.Kind, col color.NRGBA, width float64, section int, p vec.Vec2) *Stroke {
	id := uuid.New()
	return &Stroke{
		ID:        id.String(),
		Kind:      kind,
		Color:     col,
		Width:     width,
		BaseWidth: width,
		Section:   section,
		Seed:      binary.LittleEndian.Uint64(id[:8]),
		points:    []vec.Vec2{p},
	}
}

// Restore builds a committed stroke from stored fields.
func Restore(id string, kind brush.Kind, col color.NRGBA, width float64, section int, seed uint64, highlightOnly bool, points []vec.Vec2) *Stroke {
	return &Stroke{
		ID:            id,
		Kind:          kind,
		Color:         col,
		Width:         width,
		BaseWidth:     width,
		Section:       section,
		Seed:          seed,
		HighlightOnly: highlightOnly,
		points:        slices.Clone(points),
		frozen:        true,
	}
}

// Points returns the points of the stroke. The slice must not be modified.
func (s *Stroke) Points() []vec.Vec2 {
	return s.points
}

// Len returns the number of points.
func (s *Stroke) Len() int {
	return len(s.points)
}

// Last returns the most recent point.
func (s *Stroke) Last() vec.Vec2 {
	return s.points[len(s.points)-1]
}

// Append adds a point to a live stroke. It reports false, and does
// nothing, if the stroke has been frozen.
func (s *Stroke) Append(p vec.Vec2) bool {
	if s.frozen {
		return false
	}
	s.points = append(s.points, p)
	s.invalidate()
	return true
}

// Freeze marks the stroke as committed.
func (s *Stroke) Freeze() {
	s.frozen = true
}

// Frozen reports whether the stroke has been committed.
func (s *Stroke) Frozen() bool {
	return s.frozen
}

// SetGeometry replaces points and width and discards all derived geometry.
func (s *Stroke) SetGeometry(points []vec.Vec2, width float64) {
	s.points = points
	s.Width = width
	s.invalidate()
}

// Translate moves all points by d.
func (s *Stroke) Translate(d vec.Vec2) {
	pts := make([]vec.Vec2, len(s.points))
	for i, p := range s.points {
		pts[i] = p.Add(d)
	}
	s.SetGeometry(pts, s.Width)
}

func (s *Stroke) invalidate() {
	s.fill, s.fillValid = nil, false
	s.area, s.areaValid = nil, false
}

// FillPath returns the union fill geometry of a calligraphy or fountain
// stroke, or nil. The result is computed on first use and cached until
// the geometry changes.
func (s *Stroke) FillPath() *path.Data {
	if !s.fillValid {
		s.fill = brush.FillPath(s.Kind, s.points, s.Width)
		s.fillValid = true
	}
	return s.fill
}

// AreaPath returns the ink footprint of the stroke, or nil if none is
// available. The result is cached like [Stroke.FillPath].
func (s *Stroke) AreaPath() *path.Data {
	if !s.areaValid {
		if s.Kind.UsesUnion() {
			s.area = s.FillPath()
		} else {
			s.area = brush.AreaPath(s.Kind, s.points, s.Width)
		}
		s.areaValid = true
	}
	return s.area
}

// Bounds returns the bounding rectangle of the stroke footprint.
func (s *Stroke) Bounds() rect.Rect {
	return brush.Bounds(s.points, brush.FootprintRadius(s.Kind, s.Width))
}

// InkBounds returns a rectangle containing every pixel the stroke may
// paint.
func (s *Stroke) InkBounds() rect.Rect {
	return brush.Bounds(s.points, brush.InkRadius(s.Kind, s.Width))
}

// HitTest reports whether p touches the stroke, within tolerance.
// Strokes without an area path fall back to the distance from the raw
// points.
func (s *Stroke) HitTest(p vec.Vec2, tolerance float64) bool {
	r := brush.FootprintRadius(s.Kind, s.Width) + tolerance
	if !brush.ContainsPoint(brush.Inset(s.Bounds(), -tolerance), p) {
		return false
	}
	return brush.PolylineDistance(p, s.points) <= r
}

// Clone returns a deep copy of s. The copy keeps the ID and is not hidden.
// Derived geometry is shared, since paths are never modified in place.
func (s *Stroke) Clone() *Stroke {
	c := *s
	c.points = slices.Clone(s.points)
	c.Hidden = false
	return &c
}

// Geometry is a snapshot of the mutable geometry of a stroke.
type Geometry struct {
	Points  []vec.Vec2
	Width   float64
	Section int
}

// Geometry returns a snapshot of the current points, width and section.
func (s *Stroke) Geometry() Geometry {
	return Geometry{Points: slices.Clone(s.points), Width: s.Width, Section: s.Section}
}

// SetGeometryFrom restores a snapshot taken with [Stroke.Geometry].
func (s *Stroke) SetGeometryFrom(g Geometry) {
	s.Section = g.Section
	s.SetGeometry(slices.Clone(g.Points), g.Width)
}

// translate moves the points of the snapshot by d.
func (g *Geometry) translate(d vec.Vec2) {
	for i, p := range g.Points {
		g.Points[i] = p.Add(d)
	}
}
