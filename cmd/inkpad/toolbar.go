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

package main

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"seehuhn.de/go/ink/brush"
	"seehuhn.de/go/ink/gesture"
	"seehuhn.de/go/ink/selection"
)

var palette = []color.NRGBA{
	{A: 255},
	{R: 0xc0, G: 0x20, B: 0x20, A: 255},
	{R: 0x20, G: 0x90, B: 0x30, A: 255},
	{R: 0x20, G: 0x40, B: 0xc0, A: 255},
	{R: 0xff, G: 0xe0, B: 0x20, A: 0x80},
}

// colorSwatch is a tappable color square.
type colorSwatch struct {
	widget.BaseWidget
	Color    color.NRGBA
	OnTapped func(color.NRGBA)
}

func newColorSwatch(c color.NRGBA, tapped func(color.NRGBA)) *colorSwatch {
	s := &colorSwatch{Color: c, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(s.Color)
	rect.SetMinSize(fyne.NewSize(28, 28))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(rect, border))
}

func (s *colorSwatch) Tapped(*fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Color)
	}
}

func newToolbar(p *padWidget, save func()) fyne.CanvasObject {
	e := p.engine

	names := make([]string, len(brush.Kinds))
	for i, k := range brush.Kinds {
		names[i] = k.String()
	}
	brushSelect := widget.NewSelect(names, func(name string) {
		if k, err := brush.ParseKind(name); err == nil {
			e.SetBrush(k)
			e.SetTool(gesture.ToolDraw)
		}
	})
	brushSelect.SetSelected(e.Brush().String())

	swatches := container.NewHBox()
	for _, c := range palette {
		swatches.Add(newColorSwatch(c, e.SetColor))
	}

	width := widget.NewSlider(0.5, 40)
	width.Step = 0.5
	width.SetValue(3)
	width.OnChanged = e.SetWidth
	widthBox := container.New(layout.NewGridWrapLayout(fyne.NewSize(120, 35)), width)

	highlightOnly := widget.NewCheck("highlight only", e.SetEraserScope)

	policy := widget.NewSelect([]string{"strokes", "region"}, func(s string) {
		if s == "region" {
			e.SetSelectionPolicy(selection.RegionInside)
		} else {
			e.SetSelectionPolicy(selection.StrokeWise)
		}
	})
	policy.SetSelected("strokes")

	tools := container.NewHBox(
		widget.NewButton("Draw", func() { e.SetTool(gesture.ToolDraw) }),
		widget.NewButton("Pan", func() { e.SetTool(gesture.ToolPan) }),
		widget.NewButton("Lasso", func() { e.SetSelectionTool(selection.Lasso) }),
		widget.NewButton("Rect", func() { e.SetSelectionTool(selection.Rectangle) }),
	)

	actions := widget.NewToolbar(
		widget.NewToolbarAction(theme.ContentUndoIcon(), func() { e.Undo() }),
		widget.NewToolbarAction(theme.ContentRedoIcon(), func() { e.Redo() }),
		widget.NewToolbarAction(theme.ContentCopyIcon(), func() { e.CopySelection() }),
		widget.NewToolbarAction(theme.ContentPasteIcon(), e.ArmPaste),
		widget.NewToolbarAction(theme.DeleteIcon(), e.ClearAll),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), save),
	)

	return container.NewHBox(
		brushSelect,
		swatches,
		widthBox,
		highlightOnly,
		widget.NewSeparator(),
		tools,
		policy,
		widget.NewSeparator(),
		actions,
		layout.NewSpacer(),
	)
}
