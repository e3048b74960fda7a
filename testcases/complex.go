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
	"math"

	"seehuhn.de/go/geom/path"

	"seehuhn.de/go/ink/brush"
)

var textureCases = []Scenario{
	{
		Name:    "pencil_line",
		Width:   96,
		Height:  32,
		Strokes: along(brush.Pencil, black, 3, horizontalLine(8, 16, 88)),
	},
	{
		Name:    "pencil_wide",
		Width:   96,
		Height:  48,
		Strokes: along(brush.Pencil, blue, 12, horizontalLine(12, 24, 84)),
	},
	{
		Name:    "pencil_spiral",
		Width:   128,
		Height:  128,
		Strokes: along(brush.Pencil, black, 2, spiral(64, 64, 4, 56, 4)),
	},
	{
		Name:    "pencil_overlap",
		Width:   96,
		Height:  64,
		Strokes: along(brush.Pencil, black, 4, zigzag(8, 32, 88, 20)),
	},
	{
		Name:    "marker_figure_eight",
		Width:   96,
		Height:  128,
		Strokes: along(brush.Marker, red, 8, figureEight(48, 64, 48)),
	},
	{
		Name:    "marker_zigzag",
		Width:   96,
		Height:  64,
		Strokes: along(brush.Marker, blue, 10, zigzag(8, 32, 88, 20)),
	},
	{
		Name:    "pen_figure_eight",
		Width:   96,
		Height:  128,
		Strokes: along(brush.Pen, black, 6, figureEight(48, 64, 48)),
	},
}

var highlightCases = []Scenario{
	{
		Name:    "freehand",
		Width:   96,
		Height:  48,
		Strokes: along(brush.Highlighter, yellow, 14, zigzag(12, 24, 84, 8)),
	},
	{
		Name:    "straight",
		Width:   96,
		Height:  48,
		Strokes: along(brush.HighlighterStraight, yellow, 14, zigzag(12, 24, 84, 8)),
	},
	{
		Name:   "below_ink",
		Width:  96,
		Height: 48,
		Strokes: join(
			along(brush.Pen, black, 3, horizontalLine(8, 24, 88)),
			along(brush.Highlighter, yellow, 16, horizontalLine(8, 24, 88)),
		),
	},
	{
		Name:   "crossing",
		Width:  96,
		Height: 96,
		Strokes: join(
			along(brush.Highlighter, yellow, 16, horizontalLine(8, 48, 88)),
			along(brush.Highlighter, green, 16, corner(48, 8, 48, 48, 48, 88)),
		),
	},
}

// spiral builds an Archimedean spiral that overlaps itself.
func spiral(cx, cy, rMin, rMax float64, turns float64) *path.Data {
	steps := max(int(turns*32), 8) // 32 segments per turn

	totalAngle := turns * 2 * math.Pi
	rGrowth := (rMax - rMin) / totalAngle

	p := (&path.Data{}).MoveTo(pt(cx+rMin, cy))
	for i := 1; i <= steps; i++ {
		angle := float64(i) / float64(steps) * totalAngle
		r := rMin + rGrowth*angle
		p = p.LineTo(pt(cx+r*math.Cos(angle), cy+r*math.Sin(angle)))
	}
	return p
}

// figureEight builds a figure-eight from two loops meeting in the centre.
func figureEight(cx, cy, size float64) *path.Data {
	r := size / 2
	k := r * kappa
	topCy := cy - r/2
	botCy := cy + r/2

	return (&path.Data{}).
		MoveTo(pt(cx, cy)).
		// upper loop
		CubeTo(pt(cx+k, cy-r/4), pt(cx+r, topCy-k/2), pt(cx+r, topCy)).
		CubeTo(pt(cx+r, topCy-k), pt(cx+k, topCy-r), pt(cx, topCy-r)).
		CubeTo(pt(cx-k, topCy-r), pt(cx-r, topCy-k), pt(cx-r, topCy)).
		CubeTo(pt(cx-r, topCy+k/2), pt(cx-k, cy-r/4), pt(cx, cy)).
		// lower loop, in the other direction
		CubeTo(pt(cx-k, cy+r/4), pt(cx-r, botCy-k/2), pt(cx-r, botCy)).
		CubeTo(pt(cx-r, botCy+k), pt(cx-k, botCy+r), pt(cx, botCy+r)).
		CubeTo(pt(cx+k, botCy+r), pt(cx+r, botCy+k), pt(cx+r, botCy)).
		CubeTo(pt(cx+r, botCy-k/2), pt(cx+k, cy+r/4), pt(cx, cy))
}

// tightCurve builds a U-turn whose radius is small relative to the
// stroke width.
func tightCurve(cx, cy, size float64) *path.Data {
	r := size
	k := r * kappa

	return (&path.Data{}).
		MoveTo(pt(cx-r, cy-size)).
		LineTo(pt(cx-r, cy)).
		CubeTo(pt(cx-r, cy+k), pt(cx-k, cy+r), pt(cx, cy+r)).
		CubeTo(pt(cx+k, cy+r), pt(cx+r, cy+k), pt(cx+r, cy)).
		LineTo(pt(cx+r, cy-size))
}

// zigzag builds a zigzag where adjacent thick strokes overlap.
func zigzag(x1, cy, x2, amplitude float64) *path.Data {
	const segments = 5
	segWidth := (x2 - x1) / segments

	p := (&path.Data{}).MoveTo(pt(x1, cy))
	for i := 1; i <= segments; i++ {
		y := cy + amplitude
		if i%2 == 1 {
			y = cy - amplitude
		}
		p = p.LineTo(pt(x1+float64(i)*segWidth, y))
	}
	return p
}
