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
	"image"
	"math"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/ink"
	"seehuhn.de/go/ink/gesture"
)

// padWidget shows the engine view and forwards mouse input to it.
type padWidget struct {
	widget.BaseWidget

	engine *ink.Engine
	raster *canvas.Raster

	pointer int // id of the last pointer
	down    bool
	kind    gesture.PointerKind
}

var (
	_ fyne.Widget       = (*padWidget)(nil)
	_ fyne.Draggable    = (*padWidget)(nil)
	_ desktop.Mouseable = (*padWidget)(nil)
)

func newPadWidget(e *ink.Engine) *padWidget {
	p := &padWidget{engine: e}
	p.raster = canvas.NewRaster(p.draw)
	e.OnRedraw(p.raster.Refresh)
	p.ExtendBaseWidget(p)
	return p
}

// draw renders the view at engine resolution. Fyne scales the image to
// the device pixels.
func (p *padWidget) draw(_, _ int) image.Image {
	v := p.engine.View()
	w := max(1, int(math.Ceil(v.ViewW)))
	h := max(1, int(math.Ceil(v.ViewH)))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	p.engine.Render(img)
	return img
}

func (p *padWidget) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(p.raster)
}

func (p *padWidget) MinSize() fyne.Size {
	return fyne.NewSize(200, 200)
}

func (p *padWidget) Resize(size fyne.Size) {
	p.BaseWidget.Resize(size)
	p.engine.Resize(float64(size.Width), float64(size.Height))
}

func (p *padWidget) send(action gesture.Action, pos fyne.Position) {
	p.engine.HandlePointer(gesture.PointerEvent{
		ID:     p.pointer,
		Kind:   p.kind,
		Action: action,
		Pos:    vec.Vec2{X: float64(pos.X), Y: float64(pos.Y)},
		Time:   time.Now(),
	})
}

func (p *padWidget) MouseDown(e *desktop.MouseEvent) {
	if p.down {
		return
	}
	switch e.Button {
	case desktop.MouseButtonPrimary:
		p.kind = gesture.Mouse
	case desktop.MouseButtonSecondary:
		p.kind = gesture.Eraser
	default:
		return
	}
	p.pointer++
	p.down = true
	p.send(gesture.Down, e.Position)
}

func (p *padWidget) MouseUp(e *desktop.MouseEvent) {
	if !p.down {
		return
	}
	p.down = false
	p.send(gesture.Up, e.Position)
}

func (p *padWidget) Dragged(e *fyne.DragEvent) {
	if p.down {
		p.send(gesture.Move, e.Position)
	}
}

func (p *padWidget) DragEnd() {}

// animate drives flings, snap-back and long-press detection until done
// is closed.
func (p *padWidget) animate(done <-chan struct{}, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case now := <-ticker.C:
			fyne.Do(func() {
				if p.engine.Tick(now) {
					p.raster.Refresh()
				}
			})
		}
	}
}
