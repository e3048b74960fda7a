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

// Package ink implements a freehand ink engine for pen and touch input.
//
// An [Engine] owns a document of strokes on a stack of page-like sections,
// the raster surfaces showing them, a selection with clipboard, and the
// gesture state machine which turns pointer events into drawing, panning,
// zooming, selecting and transforming. The host shell forwards pointer
// events and frame ticks, and calls [Engine.Render] when notified through
// the redraw callback.
//
// All methods must be called from a single goroutine.
package ink

//go:generate go run ./testcases/export
//go:generate go run ./testcases/genpdf

import (
	"image"
	"image/color"
	"time"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/ink/brush"
	"seehuhn.de/go/ink/document"
	"seehuhn.de/go/ink/gesture"
	"seehuhn.de/go/ink/internal/logging"
	"seehuhn.de/go/ink/layer"
	"seehuhn.de/go/ink/selection"
)

// MinWidth is the smallest brush width accepted by [Engine.SetWidth].
const MinWidth = 0.2

// Engine is the core of the ink engine.
type Engine struct {
	doc      *document.Document
	comp     *layer.Compositor
	view     *gesture.Viewport
	machine  *gesture.Machine
	resolver *selection.Resolver

	sel  selection.Selection
	clip selection.Clipboard

	kind          brush.Kind
	eraserKind    brush.Kind
	color         color.NRGBA
	width         float64
	highlightOnly bool
	selTool       selection.Tool
	policy        selection.Policy

	live    *document.Stroke
	erased  []*document.Stroke // hidden by the stroke eraser in progress
	marquee *selection.Marquee
	tf      *selection.Transform

	onRedraw     func()
	onPagination func(progress float64)
	pagination   float64
}

// New returns an engine with an empty document whose first section has
// the given size. The view initially has the same size.
func New(width, height float64, opts ...Option) *Engine {
	return NewWithDocument(document.New(width, height), width, height, opts...)
}

// NewWithDocument returns an engine editing doc in a view of the given
// size.
func NewWithDocument(doc *document.Document, viewW, viewH float64, opts ...Option) *Engine {
	e := &Engine{
		doc:        doc,
		comp:       layer.New(doc),
		view:       gesture.NewViewport(viewW, viewH, doc.Width(), doc.Height()),
		resolver:   selection.NewResolver(),
		kind:       brush.Pen,
		eraserKind: brush.EraserArea,
		color:      color.NRGBA{A: 255},
		width:      3,
		selTool:    selection.Lasso,
		policy:     selection.StrokeWise,
	}
	e.machine = gesture.NewMachine(e, e.view)
	for _, opt := range opts {
		opt(e)
	}
	logging.Logger().Info("engine created",
		"width", doc.Width(), "height", doc.Height(), "strokes", doc.Len())
	return e
}

// Document returns the document edited by e.
func (e *Engine) Document() *document.Document {
	return e.doc
}

// View returns the viewport.
func (e *Engine) View() *gesture.Viewport {
	return e.view
}

// State returns the active gesture state.
func (e *Engine) State() gesture.State {
	return e.machine.State()
}

// Selection returns the selected strokes.
func (e *Engine) Selection() []*document.Stroke {
	return e.sel.Strokes()
}

// SelectionBounds returns the bounds of the selection. The result is
// false if nothing is selected.
func (e *Engine) SelectionBounds() (rect.Rect, bool) {
	return e.sel.Bounds()
}

// Brush returns the current brush kind.
func (e *Engine) Brush() brush.Kind {
	return e.kind
}

// SetBrush selects the brush for new strokes. Choosing an eraser kind
// also sets the kind used by the eraser end of a stylus.
func (e *Engine) SetBrush(kind brush.Kind) {
	e.kind = kind
	if kind.IsEraser() {
		e.eraserKind = kind
	}
}

// SetColor sets the color of new strokes.
func (e *Engine) SetColor(c color.NRGBA) {
	e.color = c
}

// SetWidth sets the width of new strokes, in document units.
func (e *Engine) SetWidth(w float64) {
	e.width = max(w, MinWidth)
}

// SetTool switches between drawing, panning and selecting. Any active
// gesture is discarded. Leaving the select tool clears the selection.
func (e *Engine) SetTool(t gesture.Tool) {
	e.machine.Abort()
	e.machine.Tool = t
	if t == gesture.ToolSelect && e.selTool == selection.None {
		e.selTool = selection.Lasso
	}
	if t != gesture.ToolSelect && !e.sel.IsEmpty() {
		e.sel.Clear()
		e.redraw()
	}
}

// Tool returns the current tool.
func (e *Engine) Tool() gesture.Tool {
	return e.machine.Tool
}

// SetEraserScope restricts area erasers to highlighter ink.
func (e *Engine) SetEraserScope(highlightOnly bool) {
	e.highlightOnly = highlightOnly
}

// SetSelectionTool chooses the marquee shape. Lasso and Rectangle switch
// to the select tool, None returns to drawing.
func (e *Engine) SetSelectionTool(t selection.Tool) {
	e.selTool = t
	switch {
	case t != selection.None:
		e.SetTool(gesture.ToolSelect)
	case e.machine.Tool == gesture.ToolSelect:
		e.SetTool(gesture.ToolDraw)
	}
}

// SetSelectionPolicy chooses how marquees select strokes.
func (e *Engine) SetSelectionPolicy(p selection.Policy) {
	e.policy = p
}

// OnHistoryChange registers fn to be called whenever the undo or redo
// depth changes.
func (e *Engine) OnHistoryChange(fn func(undo, redo int)) {
	e.doc.OnHistoryChange(fn)
}

// OnRedraw registers fn to be called whenever the view needs to be
// rendered again.
func (e *Engine) OnRedraw(fn func()) {
	e.onRedraw = fn
}

// OnPagination registers fn to receive the progress of the
// pull-to-add-a-section gesture, between 0 and 1.
func (e *Engine) OnPagination(fn func(progress float64)) {
	e.onPagination = fn
}

func (e *Engine) redraw() {
	if e.onRedraw != nil {
		e.onRedraw()
	}
}

// rebuild replays all committed strokes and drops selected strokes which
// are no longer in the document.
func (e *Engine) rebuild() {
	e.comp.Sync()
	e.comp.Rebuild()
	e.sel.Prune(e.doc)
	e.syncContent()
	e.redraw()
}

func (e *Engine) syncContent() {
	e.view.ContentW = e.doc.Width()
	e.view.ContentH = e.doc.Height()
}

// Undo reverts the most recent edit, discarding any active gesture. It
// reports whether there was anything to undo.
func (e *Engine) Undo() bool {
	e.machine.Abort()
	if !e.doc.Undo() {
		return false
	}
	e.rebuild()
	return true
}

// Redo repeats the most recently undone edit.
func (e *Engine) Redo() bool {
	e.machine.Abort()
	if !e.doc.Redo() {
		return false
	}
	e.rebuild()
	return true
}

// ClearAll removes all strokes, as one undoable edit.
func (e *Engine) ClearAll() {
	e.machine.Abort()
	e.sel.Clear()
	e.doc.Clear()
	e.rebuild()
}

// CopySelection copies the selected strokes to the clipboard. It reports
// false if nothing is selected.
func (e *Engine) CopySelection() bool {
	ok := e.clip.Copy(&e.sel)
	if ok {
		logging.Logger().Debug("copied", "strokes", e.clip.Len())
	}
	return ok
}

// PasteAt inserts the clipboard content centred on the document point p.
// Pasting an empty clipboard does nothing.
func (e *Engine) PasteAt(p vec.Vec2) {
	e.machine.Abort()
	e.Paste(p)
}

// ArmPaste makes the next pointer-down paste the clipboard content at the
// pointer position.
func (e *Engine) ArmPaste() {
	if e.clip.IsEmpty() {
		return
	}
	e.machine.ArmPaste()
}

// HandlePointer processes one pointer event.
func (e *Engine) HandlePointer(ev gesture.PointerEvent) {
	e.machine.Handle(ev)
}

// Tick advances animations to time now. It reports whether the view
// changed.
func (e *Engine) Tick(now time.Time) bool {
	return e.machine.Tick(now)
}

// Resize adapts the engine to a new view size. The first section follows
// the view height and all sections follow the view width.
func (e *Engine) Resize(w, h float64) {
	if w <= 0 || h <= 0 {
		return
	}
	e.machine.Abort()
	e.view.ViewW, e.view.ViewH = w, h
	e.comp.Resize(w, h)
	e.sel.Prune(e.doc)
	e.syncContent()
	e.redraw()
}

// Dirty returns the document area painted since the last call.
func (e *Engine) Dirty() rect.Rect {
	return e.comp.TakeDirty()
}

// Render draws the current view into dst, including the marquee and the
// selection frame.
func (e *Engine) Render(dst *image.RGBA) {
	e.comp.RenderView(dst, layer.View{Scale: e.view.Scale, Offset: e.view.Offset})
	e.drawOverlay(dst)
}

// Export composes all sections at native resolution into one image on the
// background bg.
func (e *Engine) Export(bg color.Color) *image.RGBA {
	return e.comp.Compose(bg)
}
