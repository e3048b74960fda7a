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

// Package brush implements the stroke geometry of the ink engine.
//
// For every brush kind the package knows how to turn a sequence of input
// points into fill geometry (calligraphy and fountain pens), into an exact
// ink footprint for hit-testing ([AreaPath]) or into a sequence of texture
// stamps (pencil). All functions are pure; rendering happens in package
// layer.
package brush

import "fmt"

// Kind identifies a brush or eraser.
type Kind int

// These are the supported brush kinds.
const (
	Pen Kind = iota
	Marker
	Pencil
	Calligraphy
	Fountain
	Highlighter
	HighlighterStraight
	EraserArea
	EraserStroke
)

var kindNames = [...]string{
	Pen:                 "pen",
	Marker:              "marker",
	Pencil:              "pencil",
	Calligraphy:         "calligraphy",
	Fountain:            "fountain",
	Highlighter:         "highlighter",
	HighlighterStraight: "highlighter-straight",
	EraserArea:          "eraser-area",
	EraserStroke:        "eraser-stroke",
}

// Kinds lists all brush kinds in declaration order.
var Kinds = []Kind{
	Pen, Marker, Pencil, Calligraphy, Fountain,
	Highlighter, HighlighterStraight, EraserArea, EraserStroke,
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind returns the kind with the given name, as produced by
// [Kind.String].
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("unknown brush kind %q", s)
}

// MarshalText implements [encoding.TextMarshaler].
func (k Kind) MarshalText() ([]byte, error) {
	if k < 0 || int(k) >= len(kindNames) {
		return nil, fmt.Errorf("invalid brush kind %d", int(k))
	}
	return []byte(kindNames[k]), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (k *Kind) UnmarshalText(text []byte) error {
	kind, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = kind
	return nil
}

// IsEraser reports whether k removes ink instead of adding it.
func (k Kind) IsEraser() bool {
	return k == EraserArea || k == EraserStroke
}

// IsHighlight reports whether strokes of kind k belong to the translucent
// highlight class, which is always composited beneath opaque ink.
func (k Kind) IsHighlight() bool {
	return k == Highlighter || k == HighlighterStraight
}

// UsesUnion reports whether the fill geometry of k is built as the union
// of per-segment quadrilaterals.
func (k Kind) UsesUnion() bool {
	return k == Calligraphy || k == Fountain
}

// MinMove returns the minimum pointer movement, in document units, before a
// new input sample is processed for a stroke of the given width.
func (k Kind) MinMove(width float64) float64 {
	if k.UsesUnion() {
		return 0.35 * width
	}
	return minMoveDefault
}

const minMoveDefault = 0.7
