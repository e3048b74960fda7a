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
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/ink/raster"
)

// Line is the centre line of a stroked brush kind, together with the line
// style used to draw it.
type Line struct {
	Path  *path.Data
	Width float64
	Cap   graphics.LineCapStyle
}

// CentreLine returns the centre line of a pen, marker, pencil, eraser or
// highlighter stroke. The marker line uses [MarkerLineWidth]. The
// straight highlighter runs from the first to the last point with square
// caps. The second return value is false for calligraphy and fountain
// strokes and for empty input.
func CentreLine(kind Kind, points []vec.Vec2, width float64) (Line, bool) {
	if len(points) == 0 || kind.UsesUnion() || width <= 0 {
		return Line{}, false
	}
	l := Line{Width: width, Cap: graphics.LineCapRound}
	switch kind {
	case Marker:
		l.Width = MarkerLineWidth(width)
		l.Path = Polyline(points)
	case HighlighterStraight:
		l.Cap = graphics.LineCapSquare
		l.Path = Polyline([]vec.Vec2{points[0], points[len(points)-1]})
	default:
		l.Path = Polyline(points)
	}
	return l, true
}

// Polyline returns the open path through points. A single point gives a
// zero-length subpath, which is drawn as a dot.
func Polyline(points []vec.Vec2) *path.Data {
	p := &path.Data{}
	if len(points) == 0 {
		return p
	}
	p.MoveTo(points[0])
	if len(points) == 1 {
		p.LineTo(points[0])
	}
	for _, q := range points[1:] {
		p.LineTo(q)
	}
	return p
}

// Setup configures r to stroke the line.
func (l Line) Setup(r *raster.Rasterizer) {
	r.Width = l.Width
	r.Cap = l.Cap
	r.Join = graphics.LineJoinRound
}
