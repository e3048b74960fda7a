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

// Command inkrender renders documents from a document store to PNG or PDF
// files.
package main

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"os"
	"strings"

	"github.com/tdewolff/argp"
	"golang.org/x/image/draw"

	"seehuhn.de/go/ink"
	"seehuhn.de/go/ink/export"
	"seehuhn.de/go/ink/layer"
	"seehuhn.de/go/ink/store"
)

type Render struct {
	Dir        string  `short:"d" default:"." desc:"Document store directory"`
	Format     string  `short:"f" default:"png" desc:"Output format: png, pdf (vector) or pages (one raster page per section)"`
	Background string  `short:"b" default:"#ffffff" desc:"Paper color as #rrggbb"`
	Scale      float64 `short:"s" default:"1" desc:"Scale factor for png output"`
	Output     string  `short:"o" desc:"Output file, default is the document name with the format extension"`
	Verbose    bool    `short:"v" desc:"Log diagnostics to standard error"`
	Name       string  `index:"0" desc:"Document name"`
}

type List struct {
	Dir string `short:"d" default:"." desc:"Document store directory"`
}

func main() {
	root := argp.NewCmd(&Render{}, "Render freehand ink documents")
	root.AddCmd(&List{}, "list", "List stored documents")
	root.Parse()
	root.PrintHelp()
}

func (cmd *Render) Run() error {
	if cmd.Name == "" {
		return argp.ShowUsage
	}
	if cmd.Verbose {
		ink.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}
	bg, err := parseColor(cmd.Background)
	if err != nil {
		return err
	}
	if cmd.Scale <= 0 {
		return fmt.Errorf("invalid scale %g", cmd.Scale)
	}

	st, err := store.Open(cmd.Dir)
	if err != nil {
		return err
	}
	doc, err := st.Load(cmd.Name)
	if err != nil {
		return err
	}

	out := cmd.Output
	switch cmd.Format {
	case "png":
		if out == "" {
			out = cmd.Name + ".png"
		}
		img := layer.New(doc).Compose(bg)
		return export.SavePNG(out, scale(img, cmd.Scale))
	case "pdf":
		if out == "" {
			out = cmd.Name + ".pdf"
		}
		return export.WriteVectorPDF(out, doc, bg)
	case "pages":
		if out == "" {
			out = cmd.Name + ".pdf"
		}
		return writePages(out, layer.New(doc), bg)
	default:
		return fmt.Errorf("unknown format %q", cmd.Format)
	}
}

func writePages(name string, c *layer.Compositor, bg color.Color) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return export.WritePagedPDF(f, c, bg)
}

// scale resizes img by the factor s.
func scale(img *image.RGBA, s float64) image.Image {
	if s == 1 {
		return img
	}
	b := img.Bounds()
	w := max(1, int(float64(b.Dx())*s+0.5))
	h := max(1, int(float64(b.Dy())*s+0.5))
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

func parseColor(s string) (color.NRGBA, error) {
	var c color.NRGBA
	c.A = 255
	hex, ok := strings.CutPrefix(s, "#")
	if !ok || (len(hex) != 6 && len(hex) != 8) {
		return c, fmt.Errorf("invalid color %q", s)
	}
	var err error
	if len(hex) == 6 {
		_, err = fmt.Sscanf(hex, "%02x%02x%02x", &c.R, &c.G, &c.B)
	} else {
		_, err = fmt.Sscanf(hex, "%02x%02x%02x%02x", &c.R, &c.G, &c.B, &c.A)
	}
	if err != nil {
		return c, fmt.Errorf("invalid color %q", s)
	}
	return c, nil
}

func (cmd *List) Run() error {
	st, err := store.Open(cmd.Dir)
	if err != nil {
		return err
	}
	list, err := st.List()
	if err != nil {
		return err
	}
	for _, info := range list {
		snap := ""
		if info.Snapshot {
			snap = "  [png]"
		}
		fmt.Printf("%-30s %s  %s%s\n", info.Name, info.ID,
			info.Modified.Format("2006-01-02 15:04"), snap)
	}
	return nil
}
