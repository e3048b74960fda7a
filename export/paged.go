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
	"fmt"
	"image/color"
	"io"

	"github.com/jung-kurt/gofpdf"

	"seehuhn.de/go/ink/layer"
)

// WritePagedPDF writes one PDF page per document section to w. Each page
// shows the composed section raster on the background bg, at one point
// per document unit.
func WritePagedPDF(w io.Writer, c *layer.Compositor, bg color.Color) error {
	if c.Len() == 0 {
		return fmt.Errorf("document has no sections")
	}

	first := c.Section(0).Ink.Bounds()
	doc := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: float64(first.Dx()), Ht: float64(first.Dy())},
	})
	doc.SetAutoPageBreak(false, 0)
	doc.SetMargins(0, 0, 0)

	opt := gofpdf.ImageOptions{ImageType: "PNG"}
	for i := range c.Len() {
		img := c.ComposeSection(i, bg)
		var buf bytes.Buffer
		if err := EncodePNG(&buf, img); err != nil {
			return fmt.Errorf("section %d: %w", i, err)
		}

		wd, ht := float64(img.Rect.Dx()), float64(img.Rect.Dy())
		doc.AddPageFormat("P", gofpdf.SizeType{Wd: wd, Ht: ht})
		name := fmt.Sprintf("section-%d", i)
		doc.RegisterImageOptionsReader(name, opt, &buf)
		doc.ImageOptions(name, 0, 0, wd, ht, false, opt, 0, "")
		if err := doc.Error(); err != nil {
			return fmt.Errorf("section %d: %w", i, err)
		}
	}
	return doc.Output(w)
}
