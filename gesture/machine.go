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

package gesture

import (
	"slices"
	"time"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/ink/internal/logging"
)

// Config holds the tunable parameters of a Machine.
type Config struct {
	// HandleTolerance is the touch radius of selection handles, in view
	// units.
	HandleTolerance float64

	// LongPressDelay is how long a precise pointer must rest before it
	// starts a temporary pan.
	LongPressDelay time.Duration

	// LongPressSlop is the distance, in view units, a pointer may move
	// during a long press.
	LongPressSlop float64

	// PullStart and PullCommit delimit the pagination band, as fractions
	// of the view height by which the bottom edge of the document is
	// pulled above the bottom of the view.
	PullStart, PullCommit float64
}

// DefaultConfig returns the default parameters.
func DefaultConfig() Config {
	return Config{
		HandleTolerance: 24,
		LongPressDelay:  500 * time.Millisecond,
		LongPressSlop:   8,
		PullStart:       0.2,
		PullCommit:      0.4,
	}
}

type pointer struct {
	id   int
	kind PointerKind
	pos  vec.Vec2
}

// Machine is the gesture state machine. It is not safe for concurrent
// use; events must be delivered in order from a single goroutine.
type Machine struct {
	Tool   Tool
	Config Config
	View   *Viewport

	h        Handler
	state    State
	pan      PanSource
	pointers []pointer
	primary  int

	// pointer consumed by a paste, ignored until it goes up
	swallowed int
	swallow   bool

	longPress bool
	downAt    time.Time
	downPos   vec.Vec2

	pinchMid  vec.Vec2
	pinchDist float64

	velocity vec.Vec2
	lastMove time.Time

	paged    bool
	progress float64
}

// NewMachine returns a machine in the Idle state which reports gestures
// to h.
func NewMachine(h Handler, v *Viewport) *Machine {
	return &Machine{
		Config: DefaultConfig(),
		View:   v,
		h:      h,
	}
}

// State returns the current state.
func (m *Machine) State() State {
	return m.state
}

// PanSource returns what started the current pan. The value is only
// meaningful in the Panning state.
func (m *Machine) PanSource() PanSource {
	return m.pan
}

func (m *Machine) setState(s State) {
	if s == m.state {
		return
	}
	logging.Logger().Debug("gesture state", "from", m.state, "to", s)
	m.state = s
}

// ArmPaste ends any active gesture. The next pointer-down places the
// clipboard content.
func (m *Machine) ArmPaste() {
	m.stop(true)
	m.setState(PastePending)
}

// Abort discards any active gesture and forgets all pointers.
func (m *Machine) Abort() {
	m.stop(true)
	m.pointers = m.pointers[:0]
	m.swallow = false
	m.resetPull()
	m.setState(Idle)
}

func (m *Machine) find(id int) int {
	return slices.IndexFunc(m.pointers, func(p pointer) bool { return p.id == id })
}

func (m *Machine) doc(p vec.Vec2) vec.Vec2 {
	return m.View.ToDocument(p)
}

// Handle processes one pointer event.
func (m *Machine) Handle(ev PointerEvent) {
	switch ev.Action {
	case Down:
		m.down(ev)
	case Move:
		m.move(ev)
	case Up:
		m.up(ev)
	case Cancel:
		m.Abort()
		m.View.Release(vec.Vec2{}, ev.Time)
	}
}

func (m *Machine) down(ev PointerEvent) {
	if m.find(ev.ID) >= 0 {
		return
	}
	m.View.Hold()
	m.pointers = append(m.pointers, pointer{id: ev.ID, kind: ev.Kind, pos: ev.Pos})

	switch len(m.pointers) {
	case 1:
		m.primary = ev.ID
		m.velocity = vec.Vec2{}
		m.lastMove = ev.Time
		if m.state == PastePending {
			m.h.Paste(m.doc(ev.Pos))
			m.swallow, m.swallowed = true, ev.ID
			m.setState(Idle)
			return
		}
		m.start(ev)
	case 2:
		if m.swallow {
			return
		}
		// a second pointer always turns the gesture into a pinch
		m.stop(true)
		m.pinchMid, m.pinchDist = m.pinch()
		m.setState(Pinching)
	}
}

// start chooses the gesture for the first pointer of a sequence.
func (m *Machine) start(ev PointerEvent) {
	p := m.doc(ev.Pos)
	tol := m.Config.HandleTolerance / m.View.Scale
	m.longPress = false
	switch {
	case m.Tool == ToolPan:
		m.startPan(PanTool)
	case m.h.GrabSelection(p, tol):
		m.setState(Transforming)
	case m.Tool == ToolSelect:
		m.h.BeginMarquee(p)
		m.setState(MarqueeSelecting)
		m.armLongPress(ev)
	case ev.Kind.Precise():
		m.h.BeginStroke(p, ev.Kind == Eraser)
		m.setState(Drawing)
		m.armLongPress(ev)
	default:
		m.startPan(PanFinger)
	}
}

func (m *Machine) armLongPress(ev PointerEvent) {
	if !ev.Kind.Precise() {
		return
	}
	m.longPress = true
	m.downAt = ev.Time
	m.downPos = ev.Pos
}

func (m *Machine) startPan(src PanSource) {
	m.pan = src
	m.paged = false
	m.setState(Panning)
}

// checkLongPress turns a resting precise pointer into a temporary pan.
func (m *Machine) checkLongPress(pos vec.Vec2, now time.Time) {
	if !m.longPress {
		return
	}
	if pos.Sub(m.downPos).Length() > m.Config.LongPressSlop {
		m.longPress = false
		return
	}
	if now.Sub(m.downAt) < m.Config.LongPressDelay {
		return
	}
	m.longPress = false
	m.stop(true)
	m.startPan(PanTool)
	logging.Logger().Debug("long press", "pointer", m.primary)
}

// stop ends the active single-pointer gesture, discarding or finishing
// its result.
func (m *Machine) stop(discard bool) {
	m.longPress = false
	switch m.state {
	case Drawing:
		if discard {
			m.h.CancelStroke()
		} else {
			m.h.EndStroke()
		}
	case MarqueeSelecting:
		if discard {
			m.h.CancelMarquee()
		} else {
			m.h.EndMarquee()
		}
	case Transforming:
		if discard {
			m.h.CancelTransform()
		} else {
			m.h.EndTransform()
		}
	case Panning:
		m.resetPull()
	}
	if m.state != PastePending {
		m.setState(Idle)
	}
}

func (m *Machine) move(ev PointerEvent) {
	i := m.find(ev.ID)
	if i < 0 {
		if m.state != Idle && m.state != PastePending {
			logging.Logger().Warn("stale pointer", "pointer", ev.ID, "state", m.state)
			m.stop(false)
			m.pointers = m.pointers[:0]
			m.View.Release(vec.Vec2{}, ev.Time)
		}
		return
	}
	prev := m.pointers[i].pos
	m.pointers[i].pos = ev.Pos
	if m.swallow || (ev.ID != m.primary && m.state != Pinching) {
		return
	}

	m.checkLongPress(ev.Pos, ev.Time)

	p := m.doc(ev.Pos)
	switch m.state {
	case Drawing:
		m.h.ExtendStroke(p)
	case MarqueeSelecting:
		m.h.ExtendMarquee(p)
	case Transforming:
		m.h.UpdateTransform(p)
	case Panning:
		d := ev.Pos.Sub(prev)
		m.trackVelocity(d, ev.Time)
		m.View.PanBy(d)
		m.updatePull()
		m.h.ViewChanged()
	case Pinching:
		if len(m.pointers) < 2 {
			return
		}
		mid, dist := m.pinch()
		m.trackVelocity(mid.Sub(m.pinchMid), ev.Time)
		m.View.PanBy(mid.Sub(m.pinchMid))
		if m.pinchDist > 0 && dist > 0 {
			m.View.ZoomAt(mid, dist/m.pinchDist)
		}
		m.pinchMid, m.pinchDist = mid, dist
		m.h.ViewChanged()
	}
}

// pinch returns the midpoint and distance of the first two pointers.
func (m *Machine) pinch() (vec.Vec2, float64) {
	a, b := m.pointers[0].pos, m.pointers[1].pos
	return a.Add(b).Mul(0.5), b.Sub(a).Length()
}

func (m *Machine) trackVelocity(d vec.Vec2, now time.Time) {
	dt := now.Sub(m.lastMove).Seconds()
	m.lastMove = now
	if dt <= 0 {
		return
	}
	m.velocity = d.Mul(0.8 / dt).Add(m.velocity.Mul(0.2))
}

// updatePull tracks the pull-to-add-a-section gesture.
func (m *Machine) updatePull() {
	if m.paged || len(m.pointers) != 1 {
		return
	}
	v := m.View
	bottom := v.ToView(vec.Vec2{Y: v.ContentH}).Y
	pull := (v.ViewH - bottom) / v.ViewH
	band := m.Config.PullCommit - m.Config.PullStart
	progress := max(0, min(1, (pull-m.Config.PullStart)/band))
	if progress != m.progress {
		m.progress = progress
		m.h.Pagination(progress)
	}
	if pull >= m.Config.PullCommit {
		m.paged = true
		m.h.AppendSection()
		m.resetPull()
	}
}

func (m *Machine) resetPull() {
	if m.progress != 0 {
		m.progress = 0
		m.h.Pagination(0)
	}
}

func (m *Machine) up(ev PointerEvent) {
	i := m.find(ev.ID)
	if i < 0 {
		if m.state != Idle && m.state != PastePending {
			logging.Logger().Warn("stale pointer", "pointer", ev.ID, "state", m.state)
			m.stop(false)
		}
		return
	}
	m.pointers[i].pos = ev.Pos
	m.pointers = slices.Delete(m.pointers, i, i+1)

	switch {
	case m.swallow:
		if ev.ID == m.swallowed {
			m.swallow = false
		}
	case m.state == Pinching:
		if len(m.pointers) == 1 {
			// the remaining pointer keeps panning
			m.primary = m.pointers[0].id
			m.startPan(PanFinger)
			m.paged = true
		}
	case ev.ID == m.primary:
		if m.state == Drawing {
			m.h.ExtendStroke(m.doc(ev.Pos))
		}
		m.stop(false)
	}

	if len(m.pointers) == 0 {
		vel := m.velocity
		if ev.Time.Sub(m.lastMove) > 100*time.Millisecond {
			vel = vec.Vec2{}
		}
		if m.state == Panning {
			m.stop(false)
		}
		m.paged = false
		m.View.Release(vel, ev.Time)
		m.velocity = vec.Vec2{}
	}
}

// Tick advances long-press detection and viewport animations to time
// now. It reports whether a redraw is needed.
func (m *Machine) Tick(now time.Time) bool {
	if m.longPress {
		if i := m.find(m.primary); i >= 0 {
			m.checkLongPress(m.pointers[i].pos, now)
		}
	}
	if m.View.Tick(now) {
		m.h.ViewChanged()
		return true
	}
	return false
}
