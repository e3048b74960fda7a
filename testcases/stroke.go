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

package testcases

import (
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/ink/brush"
)

var penCases = []Scenario{
	{
		Name:    "line",
		Width:   64,
		Height:  64,
		Strokes: along(brush.Pen, black, 8, horizontalLine(10, 32, 54)),
	},
	{
		Name:    "line_thin",
		Width:   64,
		Height:  64,
		Strokes: along(brush.Pen, black, 0.5, horizontalLine(10, 32.5, 54)),
	},
	{
		Name:    "corner",
		Width:   64,
		Height:  64,
		Strokes: along(brush.Pen, black, 6, corner(10, 50, 32, 14, 54, 50)),
	},
	{
		Name:    "corner_sharp",
		Width:   64,
		Height:  64,
		Strokes: along(brush.Pen, blue, 6, corner(10, 54, 32, 10, 40, 54)),
	},
	{
		Name:   "dot",
		Width:  32,
		Height: 32,
		Strokes: []Stroke{
			{Kind: brush.Pen, Color: black, Width: 10, Points: pts(16, 16)},
		},
	},
	{
		Name:   "overlap",
		Width:  64,
		Height: 64,
		Strokes: join(
			along(brush.Pen, red, 10, horizontalLine(8, 32, 56)),
			along(brush.Pen, blue, 10, corner(32, 8, 32, 32, 32, 56)),
		),
	},
	{
		Name:    "marker_line",
		Width:   64,
		Height:  64,
		Strokes: along(brush.Marker, blue, 8, horizontalLine(10, 32, 54)),
	},
	{
		Name:    "marker_corner",
		Width:   64,
		Height:  64,
		Strokes: along(brush.Marker, red, 6, corner(10, 50, 32, 14, 54, 50)),
	},
}

// pts returns a point list from coordinate pairs.
func pts(xy ...float64) []vec.Vec2 {
	res := make([]vec.Vec2, 0, len(xy)/2)
	for i := 0; i+1 < len(xy); i += 2 {
		res = append(res, pt(xy[i], xy[i+1]))
	}
	return res
}

// horizontalLine builds a horizontal line segment.
func horizontalLine(x1, y, x2 float64) *path.Data {
	return (&path.Data{}).
		MoveTo(pt(x1, y)).
		LineTo(pt(x2, y))
}

// corner builds a path with two line segments meeting at a corner.
func corner(x1, y1, x2, y2, x3, y3 float64) *path.Data {
	return (&path.Data{}).
		MoveTo(pt(x1, y1)).
		LineTo(pt(x2, y2)).
		LineTo(pt(x3, y3))
}
