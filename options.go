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

package ink

import (
	"image/color"
	"time"

	"seehuhn.de/go/ink/brush"
	"seehuhn.de/go/ink/selection"
)

// Option configures an Engine during creation.
type Option func(*Engine)

// WithSelectionPolicy sets how marquees select strokes. The default is
// [selection.StrokeWise].
func WithSelectionPolicy(p selection.Policy) Option {
	return func(e *Engine) {
		e.policy = p
	}
}

// WithHandleTolerance sets the touch radius of selection handles, in view
// units.
func WithHandleTolerance(tol float64) Option {
	return func(e *Engine) {
		if tol > 0 {
			e.machine.Config.HandleTolerance = tol
		}
	}
}

// WithLongPressDelay sets how long a stylus must rest before it starts a
// temporary pan.
func WithLongPressDelay(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.machine.Config.LongPressDelay = d
		}
	}
}

// WithScaleLimits sets the zoom range of the view. Zooming out below 1
// always snaps back to 1 once the gesture ends.
func WithScaleLimits(minScale, maxScale float64) Option {
	return func(e *Engine) {
		if minScale > 0 && maxScale >= minScale {
			e.view.MinScale = minScale
			e.view.MaxScale = maxScale
		}
	}
}

// WithBackground sets the paper color behind each section and the desk
// color around them.
func WithBackground(paper, desk color.Color) Option {
	return func(e *Engine) {
		if paper != nil {
			e.comp.Paper = paper
		}
		if desk != nil {
			e.comp.Desk = desk
		}
	}
}

// WithBrush sets the initial brush, color and width.
func WithBrush(kind brush.Kind, col color.NRGBA, width float64) Option {
	return func(e *Engine) {
		e.SetBrush(kind)
		e.SetColor(col)
		e.SetWidth(width)
	}
}
