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

// kappa for cubic Bezier approximation of a quarter circle
const kappa = 0.5522847498307936

var nibCases = []Scenario{
	{
		Name:    "calligraphy_circle",
		Width:   96,
		Height:  96,
		Strokes: along(brush.Calligraphy, black, 8, circle(48, 48, 32)),
	},
	{
		Name:    "calligraphy_line",
		Width:   64,
		Height:  64,
		Strokes: along(brush.Calligraphy, black, 6, corner(8, 56, 32, 8, 56, 56)),
	},
	{
		Name:    "calligraphy_scurve",
		Width:   96,
		Height:  64,
		Strokes: along(brush.Calligraphy, blue, 6, sCurve(8, 32, 88, 32)),
	},
	{
		Name:    "calligraphy_tight",
		Width:   64,
		Height:  64,
		Strokes: along(brush.Calligraphy, black, 10, tightCurve(32, 30, 8)),
	},
	{
		Name:    "fountain_circle",
		Width:   96,
		Height:  96,
		Strokes: along(brush.Fountain, black, 6, circle(48, 48, 32)),
	},
	{
		Name:    "fountain_ellipse",
		Width:   128,
		Height:  80,
		Strokes: along(brush.Fountain, red, 4, ellipse(64, 40, 56, 28)),
	},
	{
		Name:    "fountain_arc",
		Width:   96,
		Height:  96,
		Strokes: along(brush.Fountain, black, 5, arc(48, 48, 36, 3)),
	},
	{
		Name:   "fountain_curves",
		Width:  96,
		Height: 64,
		Strokes: join(
			along(brush.Fountain, blue, 4, cubicCurve(8, 56, 24, 4, 72, 4, 88, 56)),
			along(brush.Fountain, blue, 4, quadraticCurve(8, 60, 48, 20, 88, 60)),
		),
	},
}

// quadraticCurve builds an open path with a quadratic Bezier curve.
func quadraticCurve(x1, y1, cx, cy, x2, y2 float64) *path.Data {
	return (&path.Data{}).
		MoveTo(pt(x1, y1)).
		QuadTo(pt(cx, cy), pt(x2, y2))
}

// cubicCurve builds an open path with a cubic Bezier curve.
func cubicCurve(x1, y1, c1x, c1y, c2x, c2y, x2, y2 float64) *path.Data {
	return (&path.Data{}).
		MoveTo(pt(x1, y1)).
		CubeTo(pt(c1x, c1y), pt(c2x, c2y), pt(x2, y2))
}

// sCurve builds an S-shaped path from two quadratic Bezier curves.
func sCurve(x1, y1, x2, y2 float64) *path.Data {
	midX := (x1 + x2) / 2
	midY := (y1 + y2) / 2

	return (&path.Data{}).
		MoveTo(pt(x1, y1)).
		QuadTo(pt((x1+midX)/2, y1-20), pt(midX, midY)).
		QuadTo(pt((midX+x2)/2, y2+20), pt(x2, y2))
}

// circle builds an approximate circle using four cubic Bezier curves.
func circle(cx, cy, r float64) *path.Data {
	return ellipse(cx, cy, r, r)
}

// ellipse builds an approximate ellipse using four cubic Bezier curves.
func ellipse(cx, cy, rx, ry float64) *path.Data {
	kx := rx * kappa
	ky := ry * kappa

	return (&path.Data{}).
		MoveTo(pt(cx+rx, cy)).                                     // start at right
		CubeTo(pt(cx+rx, cy-ky), pt(cx+kx, cy-ry), pt(cx, cy-ry)). // top-right quadrant
		CubeTo(pt(cx-kx, cy-ry), pt(cx-rx, cy-ky), pt(cx-rx, cy)). // top-left quadrant
		CubeTo(pt(cx-rx, cy+ky), pt(cx-kx, cy+ry), pt(cx, cy+ry)). // bottom-left quadrant
		CubeTo(pt(cx+kx, cy+ry), pt(cx+rx, cy+ky), pt(cx+rx, cy)). // bottom-right quadrant
		Close()
}

// arc builds an open circular arc of the given number of quarter turns,
// starting on the right and running counter-clockwise on screen.
func arc(cx, cy, r float64, quadrants int) *path.Data {
	k := r * kappa
	p := (&path.Data{}).MoveTo(pt(cx+r, cy))
	if quadrants >= 1 {
		p = p.CubeTo(pt(cx+r, cy-k), pt(cx+k, cy-r), pt(cx, cy-r))
	}
	if quadrants >= 2 {
		p = p.CubeTo(pt(cx-k, cy-r), pt(cx-r, cy-k), pt(cx-r, cy))
	}
	if quadrants >= 3 {
		p = p.CubeTo(pt(cx-r, cy+k), pt(cx-k, cy+r), pt(cx, cy+r))
	}
	if quadrants >= 4 {
		p = p.CubeTo(pt(cx+k, cy+r), pt(cx+r, cy+k), pt(cx+r, cy))
	}
	return p
}
