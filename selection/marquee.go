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

// Package selection implements marquee selection of strokes, the
// transformation of selected strokes and the clipboard.
//
// Selection membership is decided on the exact ink footprint of each
// stroke: marquee and footprints are rasterized into regions, which are
// then compared with boolean region operations.
package selection

import (
	"fmt"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/ink/brush"
)

// Tool selects the shape of the marquee.
type Tool int

const (
	// None disables marquee selection.
	None Tool = iota

	// Lasso records a freehand outline.
	Lasso

	// Rectangle spans an axis-aligned rectangle between the start point
	// and the current point.
	Rectangle
)

func (t Tool) String() string {
	switch t {
	case None:
		return "none"
	case Lasso:
		return "lasso"
	case Rectangle:
		return "rect"
	default:
		return fmt.Sprintf("Tool(%d)", int(t))
	}
}

// Marquee is the outline drawn by the user to select strokes.
// Coordinates are in document space.
type Marquee struct {
	tool      Tool
	points    []vec.Vec2
	start     vec.Vec2
	current   vec.Vec2
	tolerance float64
}

// Begin starts a marquee at p. Scale is the current zoom factor of the
// view; it controls how densely lasso points are recorded.
func Begin(tool Tool, p vec.Vec2, scale float64) *Marquee {
	if scale <= 0 {
		scale = 1
	}
	return &Marquee{
		tool:      tool,
		points:    []vec.Vec2{p},
		start:     p,
		current:   p,
		tolerance: max(1.5, 2.5/scale),
	}
}

// Tool returns the marquee shape.
func (m *Marquee) Tool() Tool {
	return m.tool
}

// Extend moves the marquee to p. A lasso records p only if it is further
// than the tolerance from the last recorded point.
func (m *Marquee) Extend(p vec.Vec2) {
	m.current = p
	if m.tool != Lasso {
		return
	}
	if p.Sub(m.points[len(m.points)-1]).Length() > m.tolerance {
		m.points = append(m.points, p)
	}
}

// Len returns the number of vertices of the marquee outline.
func (m *Marquee) Len() int {
	if m.tool == Rectangle {
		return 4
	}
	return len(m.points)
}

// Points returns the vertices of the marquee outline.
func (m *Marquee) Points() []vec.Vec2 {
	if m.tool == Rectangle {
		b := m.Bounds()
		return []vec.Vec2{
			{X: b.LLx, Y: b.LLy}, {X: b.URx, Y: b.LLy},
			{X: b.URx, Y: b.URy}, {X: b.LLx, Y: b.URy},
		}
	}
	return m.points
}

// Bounds returns the bounding rectangle of the marquee.
func (m *Marquee) Bounds() rect.Rect {
	if m.tool == Rectangle {
		return rect.Rect{
			LLx: min(m.start.X, m.current.X), LLy: min(m.start.Y, m.current.Y),
			URx: max(m.start.X, m.current.X), URy: max(m.start.Y, m.current.Y),
		}
	}
	return brush.Bounds(m.points, 0)
}

// Path returns the closed marquee outline, or nil if it encloses no area.
func (m *Marquee) Path() *path.Data {
	pts := m.Points()
	if len(pts) < 3 {
		return nil
	}
	b := m.Bounds()
	if b.URx <= b.LLx || b.URy <= b.LLy {
		return nil
	}
	p := &path.Data{}
	p.MoveTo(pts[0])
	for _, q := range pts[1:] {
		p.LineTo(q)
	}
	p.Close()
	return p
}
