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

package brush

import (
	"math"
	"slices"

	"seehuhn.de/go/geom/vec"
)

// SmoothBlend is the low-pass factor applied to successive tangent angles.
const SmoothBlend = 0.35

// ResampleStep returns the arc-length step used to resample the input
// points of a stroke with the given base width.
func ResampleStep(width float64) float64 {
	return max(0.33*width, 0.9)
}

// Resample returns points spaced step apart along the polyline, found by
// linear interpolation. The first and the exact last source point are
// always included. Zero-length input segments are skipped.
func Resample(points []vec.Vec2, step float64) []vec.Vec2 {
	if len(points) < 2 || !(step > 0) {
		return slices.Clone(points)
	}

	res := make([]vec.Vec2, 1, len(points))
	res[0] = points[0]

	travelled := 0.0 // distance since the last emitted point
	for i := 1; i < len(points); i++ {
		a, b := points[i-1], points[i]
		d := b.Sub(a)
		segLen := d.Length()
		if segLen == 0 {
			continue
		}

		t := step - travelled
		for t <= segLen {
			res = append(res, a.Add(d.Mul(t/segLen)))
			t += step
		}
		travelled = segLen - (t - step)
	}

	last := points[len(points)-1]
	if n := len(res); res[n-1] != last {
		if n > 1 && last.Sub(res[n-1]).Length() < 0.01*step {
			res[n-1] = last
		} else {
			res = append(res, last)
		}
	}
	return res
}

// Directions returns a smoothed tangent angle for every point.
//
// Raw angles use centered differences, with one-sided differences at the
// ends. They are then low-pass filtered with [SmoothBlend], always moving
// along the shorter way around the circle.
func Directions(points []vec.Vec2) []float64 {
	n := len(points)
	dirs := make([]float64, n)
	if n < 2 {
		return dirs
	}

	for i := range points {
		var d vec.Vec2
		switch i {
		case 0:
			d = points[1].Sub(points[0])
		case n - 1:
			d = points[n-1].Sub(points[n-2])
		default:
			d = points[i+1].Sub(points[i-1])
		}
		dirs[i] = math.Atan2(d.Y, d.X)
	}

	for i := 1; i < n; i++ {
		dirs[i] = dirs[i-1] + SmoothBlend*WrapAngle(dirs[i]-dirs[i-1])
	}
	return dirs
}

// WrapAngle maps a to the interval [-π, π].
func WrapAngle(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}
