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

// Package gesture turns pointer events into drawing, panning, zooming,
// selection and paste gestures.
//
// A [Machine] is always in exactly one [State]. Pointer positions arrive
// in view coordinates and are passed on to the [Handler] in document
// coordinates, using the [Viewport].
package gesture

import (
	"fmt"
	"time"

	"seehuhn.de/go/geom/vec"
)

// PointerKind is the class of input device behind a pointer.
type PointerKind int

const (
	Finger PointerKind = iota
	Stylus
	Eraser // the eraser end of a stylus
	Mouse
)

func (k PointerKind) String() string {
	switch k {
	case Finger:
		return "finger"
	case Stylus:
		return "stylus"
	case Eraser:
		return "eraser"
	case Mouse:
		return "mouse"
	default:
		return fmt.Sprintf("PointerKind(%d)", int(k))
	}
}

// Precise reports whether pointers of kind k may draw. Fingers never
// draw.
func (k PointerKind) Precise() bool {
	return k != Finger
}

// Action is the phase of a pointer event.
type Action int

const (
	Down Action = iota
	Move
	Up
	Cancel
)

func (a Action) String() string {
	switch a {
	case Down:
		return "down"
	case Move:
		return "move"
	case Up:
		return "up"
	case Cancel:
		return "cancel"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

// PointerEvent is one sample of one pointer.
type PointerEvent struct {
	ID     int
	Kind   PointerKind
	Action Action
	Pos    vec.Vec2 // view coordinates
	Time   time.Time
}

// State is the gesture currently in progress.
type State int

const (
	Idle State = iota
	Drawing
	Panning
	Pinching
	MarqueeSelecting
	Transforming
	PastePending
)

var stateNames = [...]string{
	"idle", "drawing", "panning", "pinching", "marquee", "transforming", "paste-pending",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("State(%d)", int(s))
	}
	return stateNames[s]
}

// PanSource tells what started a pan.
type PanSource int

const (
	// PanFinger is a pan by touch, or by two pointers after a pinch.
	PanFinger PanSource = iota

	// PanTool is a pan by a precise pointer, either in pan mode or
	// after a long press.
	PanTool
)

// Tool is the mode selected by the user.
type Tool int

const (
	ToolDraw Tool = iota
	ToolPan
	ToolSelect
)

func (t Tool) String() string {
	switch t {
	case ToolDraw:
		return "draw"
	case ToolPan:
		return "pan"
	case ToolSelect:
		return "select"
	default:
		return fmt.Sprintf("Tool(%d)", int(t))
	}
}

// Handler receives the gestures recognised by a Machine. All positions
// are in document coordinates.
type Handler interface {
	// BeginStroke starts a stroke at p. Eraser is set for the eraser end
	// of a stylus.
	BeginStroke(p vec.Vec2, eraser bool)
	ExtendStroke(p vec.Vec2)
	EndStroke()
	CancelStroke()

	BeginMarquee(p vec.Vec2)
	ExtendMarquee(p vec.Vec2)
	EndMarquee()
	CancelMarquee()

	// GrabSelection reports whether p lies on the current selection,
	// within tolerance, and starts a transform if so.
	GrabSelection(p vec.Vec2, tolerance float64) bool
	UpdateTransform(p vec.Vec2)
	EndTransform()
	CancelTransform()

	Paste(p vec.Vec2)

	// Pagination reports the progress of the pull-to-add-a-section
	// gesture, between 0 and 1.
	Pagination(progress float64)

	// AppendSection is called once per drag when the pull passes the
	// commit threshold.
	AppendSection()

	// ViewChanged is called when the viewport has moved or zoomed.
	ViewChanged()
}
