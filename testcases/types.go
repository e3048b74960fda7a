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

// Package testcases provides stroke scenarios shared by tests, benchmarks
// and the reference generators.
//
// Pointer trajectories are described as paths and sampled the way a
// pointer device would report them, at a fixed spacing along the curve.
package testcases

import (
	"fmt"
	"image/color"
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/ink/brush"
	"seehuhn.de/go/ink/document"
)

// Scenario is a document to render.
type Scenario struct {
	Name     string // lowercase a-z, 0-9 and _ only
	Width    int    // section width in pixels
	Height   int    // section height in pixels
	Sections int    // number of sections, zero means one
	Strokes  []Stroke
}

// Stroke is one stroke of a scenario.
type Stroke struct {
	Kind          brush.Kind
	Color         color.NRGBA
	Width         float64
	HighlightOnly bool
	Points        []vec.Vec2
}

// Document builds the document described by sc. Stroke IDs and pencil
// seeds are derived from the scenario, so that every call gives an
// identical document.
func (sc Scenario) Document() *document.Document {
	doc := document.New(float64(sc.Width), float64(sc.Height))
	for i := 1; i < sc.Sections; i++ {
		doc.AppendSection(float64(sc.Height))
	}
	strokes := make([]*document.Stroke, 0, len(sc.Strokes))
	for i, st := range sc.Strokes {
		if len(st.Points) == 0 {
			continue
		}
		section := doc.SectionIndexForY(st.Points[0].Y)
		seed := uint64(i+1) * 0x9e3779b97f4a7c15
		s := document.Restore(fmt.Sprintf("%s-%d", sc.Name, i), st.Kind, st.Color,
			st.Width, section, seed, st.HighlightOnly, st.Points)
		strokes = append(strokes, s)
	}
	doc.Load(strokes)
	return doc
}

var (
	black  = color.NRGBA{A: 255}
	blue   = color.NRGBA{R: 0x20, G: 0x40, B: 0xc0, A: 255}
	red    = color.NRGBA{R: 0xc0, G: 0x20, B: 0x20, A: 255}
	yellow = color.NRGBA{R: 0xff, G: 0xe0, B: 0x20, A: 0x80}
	green  = color.NRGBA{R: 0x40, G: 0xd0, B: 0x60, A: 0x80}
)

// sampleStep is the distance between pointer samples along a trajectory.
const sampleStep = 2.0

// pt is a helper to create a vec.Vec2 from x, y coordinates.
func pt(x, y float64) vec.Vec2 {
	return vec.Vec2{X: x, Y: y}
}

// trace samples every subpath of p at spacing step. Closed subpaths end
// on their starting point.
func trace(p *path.Data, step float64) [][]vec.Vec2 {
	var res [][]vec.Vec2
	var cur []vec.Vec2
	var current, start vec.Vec2

	flush := func() {
		if len(cur) > 0 {
			res = append(res, cur)
		}
		cur = nil
	}
	sample := func(n int, at func(t float64) vec.Vec2) {
		for i := 1; i <= n; i++ {
			cur = append(cur, at(float64(i)/float64(n)))
		}
	}
	steps := func(length float64) int {
		return max(1, int(math.Ceil(length/step)))
	}

	k := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			flush()
			current = p.Coords[k]
			start = current
			cur = []vec.Vec2{current}
			k++
		case path.CmdLineTo:
			a, b := current, p.Coords[k]
			sample(steps(b.Sub(a).Length()), func(t float64) vec.Vec2 {
				return a.Add(b.Sub(a).Mul(t))
			})
			current = b
			k++
		case path.CmdQuadTo:
			a, c, b := current, p.Coords[k], p.Coords[k+1]
			n := steps(c.Sub(a).Length() + b.Sub(c).Length())
			sample(n, func(t float64) vec.Vec2 {
				s := 1 - t
				return a.Mul(s * s).Add(c.Mul(2 * s * t)).Add(b.Mul(t * t))
			})
			current = b
			k += 2
		case path.CmdCubeTo:
			a, c1, c2, b := current, p.Coords[k], p.Coords[k+1], p.Coords[k+2]
			n := steps(c1.Sub(a).Length() + c2.Sub(c1).Length() + b.Sub(c2).Length())
			sample(n, func(t float64) vec.Vec2 {
				s := 1 - t
				return a.Mul(s * s * s).Add(c1.Mul(3 * s * s * t)).
					Add(c2.Mul(3 * s * t * t)).Add(b.Mul(t * t * t))
			})
			current = b
			k += 3
		case path.CmdClose:
			if current != start {
				a, b := current, start
				sample(steps(b.Sub(a).Length()), func(t float64) vec.Vec2 {
					return a.Add(b.Sub(a).Mul(t))
				})
			}
			current = start
		}
	}
	flush()
	return res
}

// along returns one stroke per subpath of p.
func along(kind brush.Kind, col color.NRGBA, width float64, p *path.Data) []Stroke {
	var res []Stroke
	for _, pts := range trace(p, sampleStep) {
		res = append(res, Stroke{Kind: kind, Color: col, Width: width, Points: pts})
	}
	return res
}

// join concatenates stroke lists.
func join(lists ...[]Stroke) []Stroke {
	var res []Stroke
	for _, l := range lists {
		res = append(res, l...)
	}
	return res
}
