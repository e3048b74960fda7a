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

package store

import (
	"encoding/json"
	"fmt"
	"image/color"
	"io"
	"math"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/ink/brush"
	"seehuhn.de/go/ink/document"
)

// FormatVersion is the version of the stroke file format written by
// [Encode].
const FormatVersion = 1

type fileData struct {
	Version  int          `json:"version"`
	ID       string       `json:"id"`
	Width    float64      `json:"width"`
	Sections []float64    `json:"sections"`
	Strokes  []strokeData `json:"strokes"`
}

type strokeData struct {
	ID            string       `json:"id"`
	Kind          brush.Kind   `json:"kind"`
	Color         hexColor     `json:"color"`
	Width         float64      `json:"width"`
	BaseWidth     float64      `json:"base_width,omitempty"`
	Section       int          `json:"section"`
	Seed          uint64       `json:"seed,string"`
	HighlightOnly bool         `json:"highlight_only,omitempty"`
	Points        [][2]float64 `json:"points"`
}

// hexColor is a color in #rrggbbaa notation.
type hexColor color.NRGBA

func (c hexColor) MarshalText() ([]byte, error) {
	return fmt.Appendf(nil, "#%02x%02x%02x%02x", c.R, c.G, c.B, c.A), nil
}

func (c *hexColor) UnmarshalText(text []byte) error {
	var r, g, b, a uint8
	n, err := fmt.Sscanf(string(text), "#%02x%02x%02x%02x", &r, &g, &b, &a)
	if err != nil || n != 4 || len(text) != 9 {
		return fmt.Errorf("invalid color %q", text)
	}
	*c = hexColor{R: r, G: g, B: b, A: a}
	return nil
}

// Encode writes the sections and strokes of doc to w, as JSON. The id
// identifies the document across renames.
func Encode(w io.Writer, id string, doc *document.Document) error {
	data := fileData{
		Version: FormatVersion,
		ID:      id,
		Width:   doc.Width(),
	}
	for _, sec := range doc.Sections() {
		data.Sections = append(data.Sections, sec.Height)
	}
	data.Strokes = make([]strokeData, 0, doc.Len())
	for _, s := range doc.Strokes() {
		pts := make([][2]float64, len(s.Points()))
		for i, p := range s.Points() {
			pts[i] = [2]float64{p.X, p.Y}
		}
		data.Strokes = append(data.Strokes, strokeData{
			ID:            s.ID,
			Kind:          s.Kind,
			Color:         hexColor(s.Color),
			Width:         s.Width,
			BaseWidth:     s.BaseWidth,
			Section:       s.Section,
			Seed:          s.Seed,
			HighlightOnly: s.HighlightOnly,
			Points:        pts,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "\t")
	return enc.Encode(&data)
}

// Decode reads a document written by [Encode]. It returns the document
// and its id. The history of the new document is empty.
func Decode(r io.Reader) (*document.Document, string, error) {
	var data fileData
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, "", fmt.Errorf("decode: %w", err)
	}
	if data.Version < 1 || data.Version > FormatVersion {
		return nil, "", fmt.Errorf("%w: %d", ErrVersion, data.Version)
	}
	if !positive(data.Width) || len(data.Sections) == 0 {
		return nil, "", fmt.Errorf("decode: invalid document size")
	}
	for _, h := range data.Sections {
		if !positive(h) {
			return nil, "", fmt.Errorf("decode: invalid section height %g", h)
		}
	}

	doc := document.New(data.Width, data.Sections[0])
	doc.SetSections(data.Sections)

	strokes := make([]*document.Stroke, 0, len(data.Strokes))
	for i, sd := range data.Strokes {
		if len(sd.Points) == 0 {
			return nil, "", fmt.Errorf("decode: stroke %d has no points", i)
		}
		if sd.Section < 0 || sd.Section >= len(data.Sections) {
			return nil, "", fmt.Errorf("decode: stroke %d: invalid section %d", i, sd.Section)
		}
		if !positive(sd.Width) {
			return nil, "", fmt.Errorf("decode: stroke %d: invalid width %g", i, sd.Width)
		}
		pts := make([]vec.Vec2, len(sd.Points))
		for j, p := range sd.Points {
			pts[j] = vec.Vec2{X: p[0], Y: p[1]}
		}
		s := document.Restore(sd.ID, sd.Kind, color.NRGBA(sd.Color), sd.Width,
			sd.Section, sd.Seed, sd.HighlightOnly, pts)
		if positive(sd.BaseWidth) {
			s.BaseWidth = sd.BaseWidth
		}
		strokes = append(strokes, s)
	}
	doc.Load(strokes)
	return doc, data.ID, nil
}

func positive(x float64) bool {
	return x > 0 && !math.IsInf(x, 0)
}
