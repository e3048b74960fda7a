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

// Package export writes ink documents to image and PDF files.
//
// Raster output is composed from the layer surfaces at native resolution,
// one pixel per document unit. [WriteVectorPDF] writes the stroke
// geometry instead, one PDF unit per document unit.
package export

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"

	"seehuhn.de/go/ink/layer"
)

var pngEncoder = &png.Encoder{CompressionLevel: png.BestSpeed}

// EncodePNG writes img to w in PNG format.
func EncodePNG(w io.Writer, img image.Image) error {
	if err := pngEncoder.Encode(w, img); err != nil {
		return fmt.Errorf("encoding PNG: %w", err)
	}
	return nil
}

// WritePNG composes all sections of c on the background bg and writes the
// image to w in PNG format.
func WritePNG(w io.Writer, c *layer.Compositor, bg color.Color) error {
	return EncodePNG(w, c.Compose(bg))
}

// SavePNG writes the image img to the named file in PNG format.
func SavePNG(name string, img image.Image) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if err := EncodePNG(f, img); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}
