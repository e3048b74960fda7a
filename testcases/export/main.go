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

// Command export writes all scenarios to a document store, for use as
// sample documents and by external reference renderers.
// Run from the module root directory.
package main

import (
	"image/color"
	"maps"
	"slices"

	"seehuhn.de/go/ink/layer"
	"seehuhn.de/go/ink/store"
	"seehuhn.de/go/ink/testcases"
)

const outDir = "testdata/scenarios"

func main() {
	st, err := store.Open(outDir)
	if err != nil {
		panic(err)
	}

	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, sc := range testcases.All[category] {
			doc := sc.Document()
			snapshot := layer.New(doc).Compose(color.White)
			if _, err := st.Save(category+"_"+sc.Name, doc, snapshot); err != nil {
				panic(err)
			}
		}
	}
}
