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

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Handle identifies the part of the selection frame grabbed by the user.
// Document y coordinates grow downwards, so the top edge is at LLy.
type Handle int

const (
	NoHandle Handle = iota
	TopLeft
	Top
	TopRight
	Right
	BottomRight
	Bottom
	BottomLeft
	Left
	Body
)

// DefaultHandleTolerance is the touch radius of a handle, in view units.
const DefaultHandleTolerance = 24

var handleNames = [...]string{
	"none", "top-left", "top", "top-right", "right",
	"bottom-right", "bottom", "bottom-left", "left", "body",
}

func (h Handle) String() string {
	if h < 0 || int(h) >= len(handleNames) {
		return "invalid"
	}
	return handleNames[h]
}

// IsCorner reports whether h is one of the four corner handles.
func (h Handle) IsCorner() bool {
	return h == TopLeft || h == TopRight || h == BottomRight || h == BottomLeft
}

// rel returns the position of the handle on the frame, as fractions of
// the width and height measured from the top-left corner.
func (h Handle) rel() (fx, fy float64) {
	switch h {
	case TopLeft:
		return 0, 0
	case Top:
		return 0.5, 0
	case TopRight:
		return 1, 0
	case Right:
		return 1, 0.5
	case BottomRight:
		return 1, 1
	case Bottom:
		return 0.5, 1
	case BottomLeft:
		return 0, 1
	case Left:
		return 0, 0.5
	default:
		return 0.5, 0.5
	}
}

func at(b rect.Rect, fx, fy float64) vec.Vec2 {
	return vec.Vec2{
		X: b.LLx + fx*(b.URx-b.LLx),
		Y: b.LLy + fy*(b.URy-b.LLy),
	}
}

// Point returns the position of the handle on the frame b.
func (h Handle) Point(b rect.Rect) vec.Vec2 {
	fx, fy := h.rel()
	return at(b, fx, fy)
}

// Anchor returns the point which stays fixed while h is dragged: the
// opposite corner or edge midpoint.
func (h Handle) Anchor(b rect.Rect) vec.Vec2 {
	fx, fy := h.rel()
	return at(b, 1-fx, 1-fy)
}

var frameHandles = [...]Handle{TopLeft, Top, TopRight, Right, BottomRight, Bottom, BottomLeft, Left}

// HitHandle returns the handle of the frame b at p. Handles take
// precedence over the body; the closest handle within tolerance wins.
func HitHandle(b rect.Rect, p vec.Vec2, tolerance float64) Handle {
	best, bestDist := NoHandle, math.Inf(1)
	for _, h := range frameHandles {
		q := h.Point(b)
		d := math.Max(math.Abs(p.X-q.X), math.Abs(p.Y-q.Y))
		if d <= tolerance && d < bestDist {
			best, bestDist = h, d
		}
	}
	if best != NoHandle {
		return best
	}
	if p.X >= b.LLx && p.X <= b.URx && p.Y >= b.LLy && p.Y <= b.URy {
		return Body
	}
	return NoHandle
}
