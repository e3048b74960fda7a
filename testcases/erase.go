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
	"seehuhn.de/go/ink/brush"
)

var eraseCases = []Scenario{
	{
		Name:   "area",
		Width:  64,
		Height: 64,
		Strokes: join(
			along(brush.Pen, black, 8, horizontalLine(8, 32, 56)),
			along(brush.EraserArea, black, 10, corner(32, 8, 32, 32, 32, 56)),
		),
	},
	{
		Name:   "area_then_ink",
		Width:  64,
		Height: 64,
		Strokes: join(
			along(brush.Pen, black, 8, horizontalLine(8, 32, 56)),
			along(brush.EraserArea, black, 10, corner(32, 8, 32, 32, 32, 56)),
			along(brush.Pen, red, 4, corner(8, 8, 32, 32, 56, 56)),
		),
	},
	{
		Name:   "highlight_only",
		Width:  96,
		Height: 48,
		Strokes: join(
			along(brush.Pen, black, 3, horizontalLine(8, 24, 88)),
			along(brush.Highlighter, yellow, 16, horizontalLine(8, 24, 88)),
			[]Stroke{{
				Kind:          brush.EraserArea,
				Color:         black,
				Width:         20,
				HighlightOnly: true,
				Points:        pts(48, 12, 48, 36),
			}},
		),
	},
	{
		Name:   "nib_under_eraser",
		Width:  96,
		Height: 96,
		Strokes: join(
			along(brush.Calligraphy, blue, 8, circle(48, 48, 32)),
			along(brush.EraserArea, black, 12, horizontalLine(8, 48, 88)),
		),
	},
}
