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

package layer

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/ink/brush"
	"seehuhn.de/go/ink/document"
)

var (
	black  = color.NRGBA{A: 255}
	yellow = color.NRGBA{R: 255, G: 230, A: 128}
)

// newStroke builds a stroke through the given coordinate pairs.
func newStroke(kind brush.Kind, col color.NRGBA, width float64, section int, xy ...float64) *document.Stroke {
	s := document.NewStroke(kind, col, width, section, vec.Vec2{X: xy[0], Y: xy[1]})
	for i := 2; i+1 < len(xy); i += 2 {
		s.Append(vec.Vec2{X: xy[i], Y: xy[i+1]})
	}
	return s
}

// drawLive feeds the points of s into the scratch layer one at a time, the
// way the input handler does.
func drawLive(c *Compositor, s *document.Stroke) {
	pts := slices.Clone(s.Points())
	live := document.NewStroke(s.Kind, s.Color, s.Width, s.Section, pts[0])
	live.Seed = s.Seed
	live.HighlightOnly = s.HighlightOnly
	c.BeginScratch(live)
	for _, p := range pts[1:] {
		live.Append(p)
		c.ExtendScratch(live, live.Len()-1)
	}
	*s = *live
}

func alphaAt(s *Surface, x, y int) uint8 {
	return s.Img.RGBAAt(x-s.Origin.X, y-s.Origin.Y).A
}

// dump writes img to the test output directory, for inspection after a
// failure.
func dump(t *testing.T, name string, img image.Image) {
	t.Helper()
	dir := filepath.Join("testdata", "failed")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Log(err)
		return
	}
	buf := &bytes.Buffer{}
	if err := png.Encode(buf, img); err != nil {
		t.Log(err)
		return
	}
	fname := filepath.Join(dir, name+".png")
	if err := os.WriteFile(fname, buf.Bytes(), 0o644); err != nil {
		t.Log(err)
		return
	}
	t.Logf("image written to %s", fname)
}

func sampleDocument() *document.Document {
	doc := document.New(200, 150)
	doc.AppendSection(100)
	for _, s := range []*document.Stroke{
		newStroke(brush.Pen, black, 4, 0, 10, 10, 80, 40, 150, 20),
		newStroke(brush.Highlighter, yellow, 12, 0, 20, 60, 180, 60),
		newStroke(brush.Marker, color.NRGBA{B: 200, A: 255}, 6, 0, 30, 100, 60, 120, 90, 100),
		newStroke(brush.Pencil, black, 3, 0, 100, 100, 130, 130, 170, 110),
		newStroke(brush.Calligraphy, black, 8, 0, 20, 130, 60, 90, 120, 140),
		newStroke(brush.Fountain, black, 5, 1, 20, 190, 100, 240, 180, 190),
		newStroke(brush.HighlighterStraight, yellow, 10, 1, 10, 250, 190, 210),
		newStroke(brush.EraserArea, black, 16, 0, 60, 0, 60, 150),
	} {
		doc.Add(s)
	}
	return doc
}

func TestRebuildIdempotent(t *testing.T) {
	c := New(sampleDocument())

	var before [][]byte
	for i := range c.Len() {
		sec := c.Section(i)
		before = append(before, slices.Clone(sec.Ink.Img.Pix), slices.Clone(sec.Highlight.Img.Pix))
	}
	if c.Section(0).Ink.IsEmpty() || c.Section(1).Ink.IsEmpty() {
		t.Fatal("strokes were not drawn")
	}

	c.Rebuild()
	for i := range c.Len() {
		sec := c.Section(i)
		if !bytes.Equal(before[2*i], sec.Ink.Img.Pix) {
			t.Errorf("section %d: ink changed after second rebuild", i)
		}
		if !bytes.Equal(before[2*i+1], sec.Highlight.Img.Pix) {
			t.Errorf("section %d: highlight changed after second rebuild", i)
		}
	}
}

func TestRebuildSkipsHidden(t *testing.T) {
	doc := document.New(100, 100)
	s := newStroke(brush.Pen, black, 6, 0, 10, 50, 90, 50)
	doc.Add(s)
	c := New(doc)
	if alphaAt(c.Section(0).Ink, 50, 50) != 255 {
		t.Fatal("stroke not drawn")
	}

	s.Hidden = true
	c.Rebuild()
	if !c.Section(0).Ink.IsEmpty() {
		t.Error("hidden stroke was drawn")
	}
	if doc.Len() != 1 {
		t.Error("rebuild modified the stroke list")
	}
}

func TestUnionNoDoubleDarkening(t *testing.T) {
	translucent := color.NRGBA{R: 20, G: 40, B: 160, A: 128}
	for _, kind := range []brush.Kind{brush.Fountain, brush.Calligraphy} {
		t.Run(kind.String(), func(t *testing.T) {
			doc := document.New(100, 100)
			s := newStroke(kind, translucent, 10, 0, 10, 10, 90, 90, 90, 10, 10, 90)
			doc.Add(s)
			c := New(doc)
			ink := c.Section(0).Ink

			single := alphaAt(ink, 30, 30)
			double := alphaAt(ink, 50, 50)
			if single < 120 || single > 130 {
				t.Errorf("alpha on single pass = %d", single)
			}
			if d := int(double) - int(single); d < -1 || d > 1 {
				t.Errorf("alpha at crossing = %d, single pass = %d", double, single)
				dump(t, "union-"+kind.String(), ink.Img)
			}
		})
	}
}

func TestPencilScratchMatchesReplay(t *testing.T) {
	doc := document.New(120, 80)
	c := New(doc)
	s := newStroke(brush.Pencil, color.NRGBA{R: 40, G: 40, B: 40, A: 255}, 4,
		0, 10, 10, 25, 20, 27, 21, 60, 50, 100, 30, 101, 31)

	drawLive(c, s)
	sec := c.Section(0)
	live := slices.Clone(sec.ScratchInk.Img.Pix)
	if sec.ScratchInk.IsEmpty() {
		t.Fatal("nothing drawn into the scratch layer")
	}

	doc.Add(s)
	c.ClearScratch()
	c.DrawStroke(s)

	if !sec.ScratchInk.IsEmpty() {
		t.Error("scratch layer not cleared")
	}
	if !bytes.Equal(live, sec.Ink.Img.Pix) {
		t.Error("replayed pencil stroke differs from the live rendering")
		dump(t, "pencil-live", &image.RGBA{Pix: live, Stride: sec.Ink.Img.Stride, Rect: sec.Ink.Img.Rect})
		dump(t, "pencil-replay", sec.Ink.Img)
	}
}

// TestHighlighterScratchMatchesReplay draws a long self-overlapping
// highlighter stroke sample by sample. Each sample only redraws the area
// around the newest segment, and the result must still match the replay
// of the committed stroke, with overlaps painted once.
func TestHighlighterScratchMatchesReplay(t *testing.T) {
	doc := document.New(140, 120)
	c := New(doc)

	var xy []float64
	for i := range 120 {
		phi := float64(i) / 119 * 2 * math.Pi
		xy = append(xy, 70+50*math.Cos(phi), 60+40*math.Sin(2*phi))
	}
	s := newStroke(brush.Highlighter, yellow, 12, 0, xy...)

	drawLive(c, s)
	sec := c.Section(0)
	live := slices.Clone(sec.ScratchHighlight.Img.Pix)

	doc.Add(s)
	c.ClearScratch()
	c.DrawStroke(s)

	for i, v := range sec.Highlight.Img.Pix {
		if d := int(v) - int(live[i]); d < -2 || d > 2 {
			x, y := (i%sec.Highlight.Img.Stride)/4, i/sec.Highlight.Img.Stride
			t.Errorf("pixel (%d,%d): live %d, replay %d", x, y, live[i], v)
			dump(t, "highlighter-live", &image.RGBA{Pix: live, Stride: sec.Highlight.Img.Stride, Rect: sec.Highlight.Img.Rect})
			dump(t, "highlighter-replay", sec.Highlight.Img)
			break
		}
	}

	// the figure eight crosses itself at the centre
	single := alphaAt(sec.Highlight, 120, 60)
	crossing := alphaAt(sec.Highlight, 70, 60)
	if single == 0 || crossing != single {
		t.Errorf("alpha at crossing = %d, single pass = %d", crossing, single)
	}
}

func TestScratchDelta(t *testing.T) {
	doc := document.New(100, 100)
	c := New(doc)
	c.TakeDirty()

	s := newStroke(brush.Pen, black, 4, 0, 10, 10)
	c.BeginScratch(s)
	s.Append(vec.Vec2{X: 50, Y: 10})
	c.ExtendScratch(s, 1)
	c.TakeDirty()

	s.Append(vec.Vec2{X: 50, Y: 60})
	c.ExtendScratch(s, 2)
	d := c.TakeDirty()
	if d.LLy < 7 || d.URy > 63 || d.LLx < 47 || d.URx > 53 {
		t.Errorf("dirty area %v exceeds the newest segment", d)
	}
	if alphaAt(c.Section(0).ScratchInk, 50, 40) != 255 {
		t.Error("newest segment missing")
	}
	if alphaAt(c.Section(0).ScratchInk, 30, 10) != 255 {
		t.Error("older segment lost")
	}
}

func TestEraseAlong(t *testing.T) {
	type testCase struct {
		highlightOnly bool
		ink, hl       uint8
	}
	for _, tc := range []testCase{
		{false, 0, 0},
		{true, 255, 0},
	} {
		doc := document.New(100, 100)
		doc.Add(newStroke(brush.Pen, black, 6, 0, 10, 50, 90, 50))
		doc.Add(newStroke(brush.Highlighter, yellow, 12, 0, 10, 50, 90, 50))
		c := New(doc)
		sec := c.Section(0)
		if alphaAt(sec.Ink, 50, 50) != 255 || alphaAt(sec.Highlight, 50, 50) == 0 {
			t.Fatal("strokes not drawn")
		}

		e := newStroke(brush.EraserArea, black, 10, 0, 50, 10, 50, 90)
		e.HighlightOnly = tc.highlightOnly
		drawLive(c, e)
		if a := alphaAt(sec.Ink, 50, 50); a != tc.ink {
			t.Errorf("highlightOnly=%t: ink alpha %d, want %d", tc.highlightOnly, a, tc.ink)
		}
		if a := alphaAt(sec.Highlight, 50, 50); a != tc.hl {
			t.Errorf("highlightOnly=%t: highlight alpha %d, want %d", tc.highlightOnly, a, tc.hl)
		}
		if alphaAt(sec.Ink, 20, 50) != 255 {
			t.Error("eraser cleared too much")
		}

		// the committed eraser stroke has the same effect on replay
		doc.Add(e)
		ink := slices.Clone(sec.Ink.Img.Pix)
		c.Rebuild()
		if !bytes.Equal(ink, sec.Ink.Img.Pix) {
			t.Errorf("highlightOnly=%t: replay of the eraser differs", tc.highlightOnly)
		}
	}
}

func TestHighlightBelowInk(t *testing.T) {
	doc := document.New(100, 100)
	doc.Add(newStroke(brush.Pen, black, 6, 0, 10, 50, 90, 50))
	doc.Add(newStroke(brush.Highlighter, color.NRGBA{R: 255, G: 255, A: 255}, 12, 0, 50, 10, 50, 90))
	c := New(doc)

	img := c.Compose(color.White)
	if got := img.RGBAAt(50, 50); got != (color.RGBA{A: 255}) {
		t.Errorf("crossing = %v, want black", got)
	}
	if got := img.RGBAAt(50, 20); got != (color.RGBA{R: 255, G: 255, A: 255}) {
		t.Errorf("highlighter = %v", got)
	}
}

func TestCompose(t *testing.T) {
	doc := document.New(100, 50)
	doc.AppendSection(30)
	doc.Add(newStroke(brush.Pen, black, 4, 1, 10, 90, 90, 90))
	c := New(doc)

	bg := color.RGBA{R: 250, G: 245, B: 230, A: 255}
	img := c.Compose(bg)
	if b := img.Bounds(); b.Dx() != 100 || b.Dy() != 50+document.SectionGap+30 {
		t.Fatalf("image size %v", b)
	}
	if got := img.RGBAAt(50, 90); got != (color.RGBA{A: 255}) {
		t.Errorf("stroke pixel = %v", got)
	}
	if got := img.RGBAAt(50, 60); got != bg {
		t.Errorf("gap pixel = %v", got)
	}
}

func TestComposeSection(t *testing.T) {
	doc := document.New(100, 50)
	doc.AppendSection(30)
	doc.Add(newStroke(brush.Pen, black, 4, 1, 10, 90, 90, 90))
	c := New(doc)

	img := c.ComposeSection(1, color.White)
	if b := img.Bounds(); b != image.Rect(0, 0, 100, 30) {
		t.Fatalf("image bounds %v", b)
	}
	y := 90 - int(doc.Section(1).Y)
	if got := img.RGBAAt(50, y); got != (color.RGBA{A: 255}) {
		t.Errorf("stroke pixel = %v", got)
	}
	if got := c.ComposeSection(0, color.White).RGBAAt(50, y); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("stroke leaked into section 0: %v", got)
	}
}

func TestAppendSection(t *testing.T) {
	doc := document.New(100, 50)
	c := New(doc)
	c.TakeDirty()

	i := c.AppendSection(40)
	if i != 1 || c.Len() != 2 {
		t.Fatalf("AppendSection = %d, %d sections", i, c.Len())
	}
	sec := c.Section(1)
	if sec.Ink.Bounds() != image.Rect(0, 74, 100, 114) {
		t.Errorf("new surfaces at %v", sec.Ink.Bounds())
	}
	for _, s := range sec.layers() {
		if !s.IsEmpty() {
			t.Error("new surface is not transparent")
		}
	}
}

func TestResize(t *testing.T) {
	doc := document.New(100, 50)
	doc.AppendSection(40)
	s := newStroke(brush.Pen, black, 4, 1, 10, 90, 90, 90)
	doc.Add(s)
	c := New(doc)

	c.Resize(120, 60)
	if c.Section(0).Ink.Bounds() != image.Rect(0, 0, 120, 60) {
		t.Errorf("section 0 at %v", c.Section(0).Ink.Bounds())
	}
	sec := c.Section(1)
	if sec.Ink.Bounds() != image.Rect(0, 84, 120, 124) {
		t.Errorf("section 1 at %v", sec.Ink.Bounds())
	}
	if alphaAt(sec.Ink, 50, 100) != 255 {
		t.Error("stroke did not move with its section")
	}
}

func TestTakeDirty(t *testing.T) {
	doc := document.New(100, 100)
	c := New(doc)
	c.TakeDirty()
	if d := c.TakeDirty(); !brush.IsEmpty(d) {
		t.Errorf("unexpected dirty area %v", d)
	}

	s := newStroke(brush.Pen, black, 4, 0, 20, 30, 60, 30)
	doc.Add(s)
	c.DrawStroke(s)
	d := c.TakeDirty()
	b := s.InkBounds()
	if d.LLx < b.LLx-1 || d.URx > b.URx+1 || d.LLy < b.LLy-1 || d.URy > b.URy+1 {
		t.Errorf("dirty area %v exceeds ink bounds %v", d, b)
	}
	if d.LLx > 19 || d.URx < 61 {
		t.Errorf("dirty area %v misses the stroke", d)
	}
	if d := c.TakeDirty(); !brush.IsEmpty(d) {
		t.Errorf("dirty area not reset: %v", d)
	}
}

func TestFloating(t *testing.T) {
	doc := document.New(100, 100)
	s := newStroke(brush.Pen, black, 4, 0, 20, 30, 60, 30)
	doc.Add(s)
	c := New(doc)
	sec := c.Section(0)

	s.Hidden = true
	c.Rebuild()
	c.SetFloating([]*document.Stroke{s})
	if !sec.Ink.IsEmpty() || alphaAt(sec.ScratchInk, 40, 30) != 255 {
		t.Fatal("floating stroke not in the scratch layer")
	}

	s.Translate(vec.Vec2{Y: 40})
	c.SetFloating([]*document.Stroke{s})
	if alphaAt(sec.ScratchInk, 40, 30) != 0 || alphaAt(sec.ScratchInk, 40, 70) != 255 {
		t.Error("floating stroke not redrawn at its new position")
	}

	c.ClearScratch()
	if !sec.ScratchInk.IsEmpty() {
		t.Error("scratch layer not cleared")
	}
}

func TestRenderView(t *testing.T) {
	doc := document.New(50, 50)
	doc.Add(newStroke(brush.Pen, black, 10, 0, 0, 25, 50, 25))
	c := New(doc)

	dst := image.NewRGBA(image.Rect(0, 0, 120, 120))
	c.RenderView(dst, View{Scale: 2, Offset: vec.Vec2{X: -5, Y: 0}})

	if got := dst.RGBAAt(60, 50); got != (color.RGBA{A: 255}) {
		t.Errorf("stroke pixel = %v", got)
	}
	if got := dst.RGBAAt(60, 20); got != (color.RGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Errorf("paper pixel = %v", got)
	}
	if got := dst.RGBAAt(5, 20); got != color.RGBAModel.Convert(c.Desk) {
		t.Errorf("desk pixel = %v", got)
	}
}
