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

package export

import (
	"bytes"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/ink/brush"
	"seehuhn.de/go/ink/document"
	"seehuhn.de/go/ink/layer"
)

func sample() *document.Document {
	doc := document.New(120, 80)
	doc.AppendSection(80)
	add := func(kind brush.Kind, col color.NRGBA, width float64, xy ...float64) {
		p := vec.Vec2{X: xy[0], Y: xy[1]}
		s := document.NewStroke(kind, col, width, doc.SectionIndexForY(p.Y), p)
		for i := 2; i+1 < len(xy); i += 2 {
			s.Append(vec.Vec2{X: xy[i], Y: xy[i+1]})
		}
		doc.Add(s)
	}
	black := color.NRGBA{A: 255}
	add(brush.Highlighter, color.NRGBA{R: 255, G: 230, A: 128}, 12, 10, 40, 110, 40)
	add(brush.Pen, black, 4, 10, 20, 60, 60, 110, 20)
	add(brush.Fountain, black, 5, 10, 130, 60, 150, 110, 130)
	add(brush.Pencil, black, 3, 20, 170, 100, 170)
	add(brush.EraserArea, black, 10, 60, 0, 60, 60)
	return doc
}

func TestWritePNG(t *testing.T) {
	doc := sample()
	c := layer.New(doc)
	buf := &bytes.Buffer{}
	if err := WritePNG(buf, c, color.White); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(buf)
	if err != nil {
		t.Fatal(err)
	}
	want := c.Compose(color.White)
	if img.Bounds() != want.Bounds() {
		t.Fatalf("bounds %v, want %v", img.Bounds(), want.Bounds())
	}
	for _, p := range [][2]int{{10, 20}, {35, 40}, {60, 150}, {5, 5}} {
		r0, g0, b0, a0 := img.At(p[0], p[1]).RGBA()
		r1, g1, b1, a1 := want.At(p[0], p[1]).RGBA()
		if r0 != r1 || g0 != g1 || b0 != b1 || a0 != a1 {
			t.Errorf("pixel %v differs", p)
		}
	}
}

func TestSavePNG(t *testing.T) {
	name := filepath.Join(t.TempDir(), "out.png")
	c := layer.New(sample())
	if err := SavePNG(name, c.Compose(color.White)); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(name)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 120 || cfg.Height != 80+document.SectionGap+80 {
		t.Errorf("image size %dx%d", cfg.Width, cfg.Height)
	}
}

var pageRe = regexp.MustCompile(`/Type\s*/Page\b`)

func TestWritePagedPDF(t *testing.T) {
	c := layer.New(sample())
	buf := &bytes.Buffer{}
	if err := WritePagedPDF(buf, c, color.White); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "%PDF-") {
		t.Fatalf("output does not start with a PDF header: %q", out[:min(len(out), 16)])
	}
	if n := len(pageRe.FindAllString(out, -1)); n != 2 {
		t.Errorf("%d pages, want one per section", n)
	}
}

func TestWriteVectorPDF(t *testing.T) {
	name := filepath.Join(t.TempDir(), "out.pdf")
	if err := WriteVectorPDF(name, sample(), color.White); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(name)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Error("output does not start with a PDF header")
	}
}

func TestBlend(t *testing.T) {
	white := color.NRGBA{255, 255, 255, 255}
	type testCase struct {
		c       color.NRGBA
		r, g, b float64
	}
	for _, tc := range []testCase{
		{color.NRGBA{A: 255}, 0, 0, 0},
		{color.NRGBA{R: 255, A: 0}, 1, 1, 1},
		{color.NRGBA{R: 255, A: 51}, 1, 0.8, 0.8},
	} {
		r, g, b := blend(tc.c, white)
		if abs(r-tc.r) > 1e-9 || abs(g-tc.g) > 1e-9 || abs(b-tc.b) > 1e-9 {
			t.Errorf("blend(%v) = %g %g %g", tc.c, r, g, b)
		}
	}
}

func TestSweep(t *testing.T) {
	if sweep(nil, 2) != nil {
		t.Error("empty sweep is not nil")
	}
	p := sweep([]vec.Vec2{{X: 0, Y: 0}, {X: 10, Y: 0}}, 2)
	b := brush.PathBounds(p)
	// the round caps are flattened, so they may fall slightly short
	if abs(b.LLx+2) > 0.25 || abs(b.URx-12) > 0.25 || abs(b.LLy+2) > 1e-6 || abs(b.URy-2) > 1e-6 {
		t.Errorf("sweep bounds %v", b)
	}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
