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

	"seehuhn.de/go/ink/brush"
)

// largeCases are full-page documents, used for benchmarks and for
// checking behaviour across section boundaries.
var largeCases = []Scenario{
	{
		Name:    "hatch",
		Width:   512,
		Height:  512,
		Strokes: along(brush.Pen, black, 2, hatch(8, 8, 512, 512, 4)),
	},
	{
		Name:    "pencil_hatch",
		Width:   512,
		Height:  512,
		Strokes: along(brush.Pencil, black, 3, hatch(6, 6, 512, 512, 6)),
	},
	{
		Name:    "calligraphy_spirals",
		Width:   512,
		Height:  512,
		Strokes: along(brush.Calligraphy, black, 6, spirals(4, 4, 512, 512)),
	},
	{
		Name:     "sections",
		Width:    256,
		Height:   192,
		Sections: 3,
		Strokes: join(
			along(brush.Pen, black, 4, zigzag(16, 96, 240, 60)),
			along(brush.Fountain, blue, 5, circle(128, 312, 80)),
			along(brush.Highlighter, yellow, 20, horizontalLine(16, 312, 240)),
			along(brush.Marker, red, 8, zigzag(16, 528, 240, 60)),
			along(brush.EraserArea, black, 16, horizontalLine(16, 528, 240)),
		),
	},
}

// hatch builds a grid of cells, each crossed by a diagonal, as separate
// subpaths.
func hatch(rows, cols, width, height int, gap float64) *path.Data {
	cellW := float64(width) / float64(cols)
	cellH := float64(height) / float64(rows)

	p := &path.Data{}
	for row := range rows {
		for col := range cols {
			x1 := float64(col)*cellW + gap
			y1 := float64(row)*cellH + gap
			x2 := float64(col+1)*cellW - gap
			y2 := float64(row+1)*cellH - gap

			p = p.
				MoveTo(pt(x1, y1)).
				LineTo(pt(x2, y1)).
				LineTo(pt(x2, y2)).
				LineTo(pt(x1, y2)).
				Close().
				MoveTo(pt(x1, y1)).
				LineTo(pt(x2, y2))
		}
	}
	return p
}

// spirals builds a grid of spirals, one subpath each.
func spirals(rows, cols, width, height int) *path.Data {
	cellW := float64(width) / float64(cols)
	cellH := float64(height) / float64(rows)
	r := min(cellW, cellH)/2 - 8

	p := &path.Data{}
	for row := range rows {
		for col := range cols {
			s := spiral(cellW*(float64(col)+0.5), cellH*(float64(row)+0.5), 2, r, 3)
			p.Cmds = append(p.Cmds, s.Cmds...)
			p.Coords = append(p.Coords, s.Coords...)
		}
	}
	return p
}
