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

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/ink/internal/logging"
	"seehuhn.de/go/ink/raster"
)

const (
	// NibAngle is the direction of the virtual flat calligraphy nib.
	NibAngle = math.Pi / 4

	// MaxCachedPoints is the largest number of input points for which fill
	// and area paths are built.
	MaxCachedPoints = 2000

	// MaxCachedArea is the largest padded bounding box area, in square
	// document units, for which fill and area paths are built.
	MaxCachedArea = 16e6

	// FountainJointAngle is the direction change above which a fountain
	// stroke gets a round joint.
	FountainJointAngle = 15 * math.Pi / 180
)

// CalligraphyHalfWidth returns the half-width of a calligraphy stroke
// moving in direction dir. Strokes along the nib get the floor width,
// strokes across the nib get 1.05 times the base width.
func CalligraphyHalfWidth(dir, width float64) float64 {
	floor := calligraphyFloor(width)
	return floor + (1.05*width-floor)*math.Abs(math.Sin(dir-NibAngle))
}

func calligraphyFloor(width float64) float64 {
	return max(0.12*width, 0.35)
}

// SegmentQuad returns the quadrilateral covering one segment of a
// calligraphy or fountain stroke, with positive signed area. d0 and d1 are
// the smoothed directions at p0 and p1. The second return value is false
// for degenerate segments and for other brush kinds.
//
// Calligraphy quads are spanned by the constant nib direction, fountain
// quads by the normal of the segment itself.
func SegmentQuad(kind Kind, p0, p1 vec.Vec2, d0, d1, width float64) ([4]vec.Vec2, bool) {
	var n0, n1 vec.Vec2
	switch kind {
	case Calligraphy:
		nib := vec.Vec2{X: math.Cos(NibAngle), Y: math.Sin(NibAngle)}
		n0 = nib.Mul(CalligraphyHalfWidth(d0, width))
		n1 = nib.Mul(CalligraphyHalfWidth(d1, width))
	case Fountain:
		d := p1.Sub(p0)
		l := d.Length()
		if l == 0 {
			return [4]vec.Vec2{}, false
		}
		n0 = vec.Vec2{X: -d.Y / l, Y: d.X / l}.Mul(width / 2)
		n1 = n0
	default:
		return [4]vec.Vec2{}, false
	}

	q := [4]vec.Vec2{p0.Add(n0), p1.Add(n1), p1.Sub(n1), p0.Sub(n0)}
	a := signedArea(q[:])
	if math.Abs(a) < 1e-9 {
		return q, false
	}
	if a < 0 {
		q[0], q[1], q[2], q[3] = q[3], q[2], q[1], q[0]
	}
	return q, true
}

// FillPath returns the fill geometry of a calligraphy or fountain stroke:
// the union of all segment quads, to be filled with the nonzero rule.
// The result is nil for other kinds, for empty input, and for strokes
// exceeding [MaxCachedPoints] or [MaxCachedArea].
func FillPath(kind Kind, points []vec.Vec2, width float64) *path.Data {
	if !kind.UsesUnion() || len(points) == 0 {
		return nil
	}
	if Guarded(kind, points, width) {
		return nil
	}

	pts := Resample(points, ResampleStep(width))
	p := &path.Data{}
	if len(pts) == 1 {
		addDisc(p, pts[0], width/2)
		return p
	}

	dirs := Directions(pts)
	for i := 1; i < len(pts); i++ {
		AppendSegment(p, kind, pts[i-1], pts[i], dirs[i-1], dirs[i], width)

		if kind == Fountain && i+1 < len(pts) {
			in := pts[i].Sub(pts[i-1])
			out := pts[i+1].Sub(pts[i])
			turn := WrapAngle(math.Atan2(out.Y, out.X) - math.Atan2(in.Y, in.X))
			if math.Abs(turn) > FountainJointAngle {
				addDisc(p, pts[i], width/2)
			}
		}
	}
	return p
}

// AppendSegment appends the geometry of one segment of a calligraphy or
// fountain stroke to p. Calligraphy segments running parallel to the nib
// collapse to a line, so they additionally get a core of the floor width.
func AppendSegment(p *path.Data, kind Kind, p0, p1 vec.Vec2, d0, d1, width float64) {
	if q, ok := SegmentQuad(kind, p0, p1, d0, d1, width); ok {
		addPolygon(p, q[:])
	}
	if kind == Calligraphy {
		if q, ok := segmentRect(p0, p1, calligraphyFloor(width)); ok {
			addPolygon(p, q[:])
		}
	}
}

// AreaPath returns the exact ink footprint of a stroke, as a path to be
// filled with the nonzero rule. It is used where a path object is needed,
// for vector export and for the cached footprint of a stroke.
//
// Pen, marker, pencil and highlighter footprints are the outline of the
// [CentreLine] with round joins. Calligraphy and fountain strokes reuse
// [FillPath]. Erasers, empty input and strokes exceeding the size guards
// have no footprint and give nil.
func AreaPath(kind Kind, points []vec.Vec2, width float64) *path.Data {
	if len(points) == 0 || kind.IsEraser() {
		return nil
	}
	if kind.UsesUnion() {
		return FillPath(kind, points, width)
	}
	if Guarded(kind, points, width) {
		return nil
	}
	l, ok := CentreLine(kind, points, width)
	if !ok {
		return nil
	}
	r := raster.NewRasterizer(rect.Rect{})
	l.Setup(r)
	return r.StrokeOutline(l.Path)
}

// FootprintRadius returns the distance from the centre line within which a
// point counts as touching a stroke when no area path is available.
func FootprintRadius(kind Kind, width float64) float64 {
	switch {
	case kind == Marker:
		return MarkerLineWidth(width) / 2
	case kind == Calligraphy:
		return 1.05 * width
	case kind == HighlighterStraight:
		return width / 2 * math.Sqrt2
	default:
		return width / 2
	}
}

// InkRadius returns the distance from the centre line within which a
// stroke may leave ink on a surface, including anti-aliasing, pencil
// jitter and marker blur.
func InkRadius(kind Kind, width float64) float64 {
	switch kind {
	case Pencil:
		return 0.25*width + 0.75*max(width, 1) + 0.2*StampSpacing(width) + 1
	case Marker:
		return MarkerLineWidth(width)/2 + 2*MarkerBlurRadius(width) + 1
	case EraserArea:
		return width/2 + 1
	default:
		return FootprintRadius(kind, width) + 1
	}
}

// Guarded reports whether a stroke is too large for path construction.
// Strokes beyond the limits are logged at warning level.
func Guarded(kind Kind, points []vec.Vec2, width float64) bool {
	if len(points) > MaxCachedPoints {
		logging.Logger().Warn("path construction skipped",
			"kind", kind, "points", len(points), "limit", MaxCachedPoints)
		return true
	}
	b := Bounds(points, FootprintRadius(kind, width))
	if area := (b.URx - b.LLx) * (b.URy - b.LLy); area > MaxCachedArea {
		logging.Logger().Warn("path construction skipped",
			"kind", kind, "area", area, "limit", MaxCachedArea)
		return true
	}
	return false
}
