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

package raster

import (
	"math"
	"testing"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

func polyline(xy ...float64) *path.Data {
	p := &path.Data{}
	p.MoveTo(vec.Vec2{X: xy[0], Y: xy[1]})
	if len(xy) == 2 {
		p.LineTo(vec.Vec2{X: xy[0], Y: xy[1]})
	}
	for i := 2; i+1 < len(xy); i += 2 {
		p.LineTo(vec.Vec2{X: xy[i], Y: xy[i+1]})
	}
	return p
}

// renderStroke strokes p into a float buffer of size w×h.
func renderStroke(r *Rasterizer, p *path.Data, w, h int) []float32 {
	buf := make([]float32, w*h)
	r.Stroke(p, func(y, xMin int, coverage []float32) {
		copy(buf[y*w+xMin:], coverage)
	})
	return buf
}

func sum(buf []float32) float64 {
	var s float64
	for _, c := range buf {
		s += float64(c)
	}
	return s
}

func TestStrokeLine(t *testing.T) {
	const w, h = 60, 30
	r := NewRasterizer(rect.Rect{URx: w, URy: h})
	r.Width = 6
	r.Flatness = 0.01
	buf := renderStroke(r, polyline(10, 10, 40, 10), w, h)

	if c := buf[10*w+25]; c < 0.999 {
		t.Errorf("centre coverage %g", c)
	}
	if c := buf[10*w+8]; c < 0.99 {
		t.Errorf("round cap coverage %g", c)
	}
	if c := buf[10*w+45]; c != 0 {
		t.Errorf("coverage beyond the cap %g", c)
	}
	if c := buf[20*w+25]; c != 0 {
		t.Errorf("coverage beside the line %g", c)
	}

	// 30×6 body plus a disc of radius 3
	want := 30*6 + math.Pi*9
	if got := sum(buf); math.Abs(got-want) > 1 {
		t.Errorf("area = %g, want %g", got, want)
	}
}

func TestStrokeCaps(t *testing.T) {
	const w, h = 40, 20
	at := func(cap graphics.LineCapStyle) float32 {
		r := NewRasterizer(rect.Rect{URx: w, URy: h})
		r.Width = 4
		r.Cap = cap
		return renderStroke(r, polyline(10, 10, 30, 10), w, h)[10*w+8]
	}
	if c := at(graphics.LineCapSquare); c < 0.999 {
		t.Errorf("square cap coverage %g", c)
	}
	if c := at(graphics.LineCapRound); c < 0.1 || c > 0.99 {
		t.Errorf("round cap coverage %g", c)
	}
	if c := at(graphics.LineCapButt); c != 0 {
		t.Errorf("butt cap coverage %g", c)
	}
}

func TestStrokeDot(t *testing.T) {
	const w, h = 40, 40
	for _, tc := range []struct {
		cap  graphics.LineCapStyle
		want float64
	}{
		{graphics.LineCapRound, math.Pi * 9},
		{graphics.LineCapSquare, 36},
		{graphics.LineCapButt, 0},
	} {
		r := NewRasterizer(rect.Rect{URx: w, URy: h})
		r.Width = 6
		r.Cap = tc.cap
		r.Flatness = 0.01
		got := sum(renderStroke(r, polyline(20, 20), w, h))
		if math.Abs(got-tc.want) > 0.5 {
			t.Errorf("cap %v: area = %g, want %g", tc.cap, got, tc.want)
		}
	}
}

// TestStrokeSelfCrossing draws a line which crosses itself. The crossing
// must be painted exactly once.
func TestStrokeSelfCrossing(t *testing.T) {
	const w, h = 60, 60
	r := NewRasterizer(rect.Rect{URx: w, URy: h})
	r.Width = 4
	buf := renderStroke(r, polyline(10, 10, 50, 50, 50, 10, 10, 50), w, h)
	for _, xy := range [][2]int{{29, 29}, {30, 30}, {20, 20}, {50, 30}} {
		if c := buf[xy[1]*w+xy[0]]; c < 0.999 || c > 1 {
			t.Errorf("coverage at %v = %g", xy, c)
		}
	}
}

// TestStrokeDoublesBack checks that a line which reverses direction gets a
// round end at the turning point.
func TestStrokeDoublesBack(t *testing.T) {
	const w, h = 60, 40
	r := NewRasterizer(rect.Rect{URx: w, URy: h})
	r.Width = 6
	buf := renderStroke(r, polyline(10, 20, 40, 20, 20, 20), w, h)
	if c := buf[20*w+41]; c < 0.99 {
		t.Errorf("coverage at the turning point %g", c)
	}
	if c := buf[20*w+15]; c < 0.999 {
		t.Errorf("coverage on the line %g", c)
	}
}

func TestStrokeClosed(t *testing.T) {
	const w, h = 60, 60
	r := NewRasterizer(rect.Rect{URx: w, URy: h})
	r.Width = 4
	buf := renderStroke(r, square(10, 10, 40, true), w, h)
	if c := buf[30*w+30]; c != 0 {
		t.Errorf("inside of a closed outline painted: %g", c)
	}
	for _, xy := range [][2]int{{10, 30}, {49, 30}, {30, 10}, {30, 49}} {
		if c := buf[xy[1]*w+xy[0]]; c < 0.999 {
			t.Errorf("coverage on the outline at %v = %g", xy, c)
		}
	}
}

// TestStrokeOutline checks that filling the outline path gives the same
// coverage as stroking directly.
func TestStrokeOutline(t *testing.T) {
	const w, h = 80, 60
	line := polyline(10, 10, 60, 15, 20, 40, 70, 50)
	r := NewRasterizer(rect.Rect{URx: w, URy: h})
	r.Width = 5
	direct := renderStroke(r, line, w, h)
	outline := r.StrokeOutline(line)
	if outline == nil {
		t.Fatal("no outline")
	}
	filled := render(NewRasterizer(rect.Rect{URx: w, URy: h}), outline, NonZero, w, h)
	for i := range direct {
		if math.Abs(float64(direct[i]-filled[i])) > 1e-5 {
			t.Fatalf("pixel (%d,%d): stroke %g, outline fill %g", i%w, i/w, direct[i], filled[i])
		}
	}

	r.Width = 0
	if r.StrokeOutline(line) != nil {
		t.Error("zero width line has an outline")
	}
}

func TestStrokeRegion(t *testing.T) {
	r := NewRasterizer(rect.Rect{URx: 100, URy: 100})
	r.Width = 6
	g := r.StrokeRegion(polyline(10, 50, 90, 50))
	if !g.ContainsPoint(50, 50) || !g.ContainsPoint(8, 50) {
		t.Error("line region misses the line")
	}
	if g.ContainsPoint(50, 60) {
		t.Error("line region too wide")
	}
}
