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

// Command inkpad is a minimal desktop shell for the ink engine.
//
// The primary mouse button draws with the selected brush and the
// secondary button acts as the eraser end of a stylus. Holding the
// primary button still for half a second starts panning.
package main

import (
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/tdewolff/argp"

	"seehuhn.de/go/ink"
	"seehuhn.de/go/ink/document"
	"seehuhn.de/go/ink/store"
)

type Pad struct {
	Dir     string  `short:"d" default:"." desc:"Document store directory"`
	Width   float64 `default:"800" desc:"Page width of a new document"`
	Height  float64 `default:"1000" desc:"Page height of a new document"`
	Verbose bool    `short:"v" desc:"Log diagnostics to standard error"`
	Name    string  `index:"0" desc:"Document name"`
}

func main() {
	root := argp.NewCmd(&Pad{}, "Freehand ink pad")
	root.Parse()
	root.PrintHelp()
}

func (cmd *Pad) Run() error {
	if cmd.Name == "" {
		cmd.Name = "untitled"
	}
	if cmd.Width <= 0 || cmd.Height <= 0 {
		return argp.ShowUsage
	}
	if cmd.Verbose {
		ink.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	st, err := store.Open(cmd.Dir)
	if err != nil {
		return err
	}
	doc, err := st.Load(cmd.Name)
	if errors.Is(err, store.ErrNotFound) {
		doc = document.New(cmd.Width, cmd.Height)
	} else if err != nil {
		return err
	}

	e := ink.NewWithDocument(doc, doc.Width(), doc.Section(0).Height)

	a := app.New()
	win := a.NewWindow("inkpad - " + cmd.Name)
	win.Resize(fyne.NewSize(float32(doc.Width()), 768))

	pad := newPadWidget(e)
	status := widget.NewLabel("Ready")
	save := func() {
		if _, err := st.Save(cmd.Name, e.Document(), e.Export(color.White)); err != nil {
			status.SetText(fmt.Sprintf("Save failed: %v", err))
			return
		}
		status.SetText("Saved " + cmd.Name)
	}
	e.OnHistoryChange(func(undo, redo int) {
		status.SetText(fmt.Sprintf("%d strokes, undo %d, redo %d", e.Document().Len(), undo, redo))
	})
	e.OnPagination(func(progress float64) {
		if progress >= 1 {
			status.SetText(fmt.Sprintf("%d sections", len(e.Document().Sections())))
		}
	})

	shortcut := func(key fyne.KeyName, fn func()) {
		win.Canvas().AddShortcut(&desktop.CustomShortcut{
			KeyName:  key,
			Modifier: fyne.KeyModifierShortcutDefault,
		}, func(fyne.Shortcut) { fn() })
	}
	shortcut(fyne.KeyZ, func() { e.Undo() })
	shortcut(fyne.KeyY, func() { e.Redo() })
	shortcut(fyne.KeyC, func() { e.CopySelection() })
	shortcut(fyne.KeyV, e.ArmPaste)
	shortcut(fyne.KeyS, save)

	content := container.NewBorder(newToolbar(pad, save), status, nil, nil, pad)
	win.SetContent(content)

	done := make(chan struct{})
	go pad.animate(done, time.Second/60)
	win.ShowAndRun()
	close(done)
	return nil
}
