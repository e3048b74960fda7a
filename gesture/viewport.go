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
	"math"
	"time"

	"seehuhn.de/go/geom/vec"
)

const (
	// Resistance is the fraction of the pointer movement applied while
	// the view is pulled past the edge of the document.
	Resistance = 0.5

	// Friction is the decay rate of a fling, per second.
	Friction = 4.0

	// MinFlingSpeed is the speed, in view units per second, below which a
	// fling stops.
	MinFlingSpeed = 20.0

	// SnapRate is the rate, per second, at which overscroll and zoom
	// return to their limits.
	SnapRate = 12.0

	maxTickStep = 100 * time.Millisecond
)

// Viewport maps between view and document coordinates. A document point
// p appears at view position (p - Offset) * Scale.
type Viewport struct {
	Scale  float64
	Offset vec.Vec2

	// ViewW and ViewH give the size of the view.
	ViewW, ViewH float64

	// ContentW and ContentH give the size of the document.
	ContentW, ContentH float64

	// MinScale and MaxScale limit zooming. After a gesture, scales below
	// 1 return to 1.
	MinScale, MaxScale float64

	held     bool
	velocity vec.Vec2 // view units per second
	lastTick time.Time
}

// NewViewport returns a viewport showing content of the given size at
// scale 1.
func NewViewport(viewW, viewH, contentW, contentH float64) *Viewport {
	return &Viewport{
		Scale:    1,
		ViewW:    viewW,
		ViewH:    viewH,
		ContentW: contentW,
		ContentH: contentH,
		MinScale: 0.5,
		MaxScale: 6,
	}
}

// ToDocument maps a view position to document coordinates.
func (v *Viewport) ToDocument(p vec.Vec2) vec.Vec2 {
	return p.Mul(1 / v.Scale).Add(v.Offset)
}

// ToView maps a document position to view coordinates.
func (v *Viewport) ToView(p vec.Vec2) vec.Vec2 {
	return p.Sub(v.Offset).Mul(v.Scale)
}

// axisLimits returns the range of valid offsets along one axis. Content
// smaller than the view is centred.
func axisLimits(content, view, scale float64) (lo, hi float64) {
	span := content - view/scale
	if span < 0 {
		return span / 2, span / 2
	}
	return 0, span
}

func (v *Viewport) limits() (lo, hi vec.Vec2) {
	lo.X, hi.X = axisLimits(v.ContentW, v.ViewW, v.Scale)
	lo.Y, hi.Y = axisLimits(v.ContentH, v.ViewH, v.Scale)
	return lo, hi
}

// target returns the closest valid offset.
func (v *Viewport) target() vec.Vec2 {
	lo, hi := v.limits()
	return vec.Vec2{
		X: max(lo.X, min(hi.X, v.Offset.X)),
		Y: max(lo.Y, min(hi.Y, v.Offset.Y)),
	}
}

// Overscroll returns how far, in document units, the view has been pulled
// past the edges of the document.
func (v *Viewport) Overscroll() vec.Vec2 {
	return v.Offset.Sub(v.target())
}

// elastic moves o by delta. Movement which leads further outside
// [lo, hi] is reduced by the resistance factor.
func elastic(o, delta, lo, hi float64) float64 {
	var free float64
	if delta < 0 {
		free = max(delta, min(0, lo-o))
	} else {
		free = min(delta, max(0, hi-o))
	}
	return o + free + (delta-free)*Resistance
}

// PanBy moves the content by the view space distance d, following the
// pointer.
func (v *Viewport) PanBy(d vec.Vec2) {
	lo, hi := v.limits()
	delta := d.Mul(-1 / v.Scale)
	v.Offset.X = elastic(v.Offset.X, delta.X, lo.X, hi.X)
	v.Offset.Y = elastic(v.Offset.Y, delta.Y, lo.Y, hi.Y)
}

// ZoomAt multiplies the scale by factor, keeping the document point under
// the view position c fixed. The scale is clamped to the limits.
func (v *Viewport) ZoomAt(c vec.Vec2, factor float64) {
	if factor <= 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return
	}
	v.setScale(c, v.Scale*factor)
}

func (v *Viewport) setScale(c vec.Vec2, s float64) {
	s = max(v.MinScale, min(v.MaxScale, s))
	anchor := v.ToDocument(c)
	v.Scale = s
	v.Offset = anchor.Sub(c.Mul(1 / s))
}

// Hold stops all animations while a pointer is down.
func (v *Viewport) Hold() {
	v.held = true
	v.velocity = vec.Vec2{}
}

// Release starts the animations after the last pointer went up. Velocity
// is the pointer speed in view units per second; a fast enough release
// starts a fling.
func (v *Viewport) Release(velocity vec.Vec2, now time.Time) {
	v.held = false
	v.lastTick = now
	if velocity.Length() >= MinFlingSpeed && v.Overscroll() == (vec.Vec2{}) {
		v.velocity = velocity
	}
}

// Animating reports whether Tick will change the viewport.
func (v *Viewport) Animating() bool {
	if v.held {
		return false
	}
	return v.velocity != (vec.Vec2{}) || v.Overscroll() != (vec.Vec2{}) || v.Scale < 1
}

// Tick advances fling, snap-back and zoom-snap animations to time now.
// It reports whether the viewport changed.
func (v *Viewport) Tick(now time.Time) bool {
	if !v.Animating() {
		v.lastTick = now
		return false
	}
	dt := now.Sub(v.lastTick)
	v.lastTick = now
	if dt <= 0 {
		return false
	}
	dt = min(dt, maxTickStep)
	sec := dt.Seconds()
	k := 1 - math.Exp(-SnapRate*sec)

	if v.Scale < 1 {
		c := vec.Vec2{X: v.ViewW / 2, Y: v.ViewH / 2}
		s := v.Scale + (1-v.Scale)*k
		if 1-s < 1e-3 {
			s = 1
		}
		v.setScale(c, s)
	}

	if v.velocity != (vec.Vec2{}) {
		v.Offset = v.Offset.Sub(v.velocity.Mul(sec / v.Scale))
		v.velocity = v.velocity.Mul(math.Exp(-Friction * sec))
		t := v.target()
		if t.X != v.Offset.X {
			v.Offset.X, v.velocity.X = t.X, 0
		}
		if t.Y != v.Offset.Y {
			v.Offset.Y, v.velocity.Y = t.Y, 0
		}
		if v.velocity.Length() < MinFlingSpeed {
			v.velocity = vec.Vec2{}
		}
		return true
	}

	t := v.target()
	d := t.Sub(v.Offset)
	if d.Length()*v.Scale < 0.5 {
		v.Offset = t
	} else {
		v.Offset = v.Offset.Add(d.Mul(k))
	}
	return true
}
