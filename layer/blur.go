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

package layer

import (
	"image"
	"math"
)

// blurAlpha applies two passes of a separable box filter of the given
// radius to m, which approximates a Gaussian blur. Pixels outside the
// mask count as transparent, so m should have a margin of at least
// 2·radius around its content.
func blurAlpha(m *image.Alpha, radius float64) {
	r := int(math.Round(radius))
	if r < 1 {
		return
	}
	w, h := m.Rect.Dx(), m.Rect.Dy()
	buf := make([]uint32, max(w, h))
	for range 2 {
		for y := range h {
			row := m.Pix[y*m.Stride : y*m.Stride+w]
			boxLine(row, 1, w, r, buf)
		}
		for x := range w {
			boxLine(m.Pix[x:], m.Stride, h, r, buf)
		}
	}
}

// boxLine blurs the n values pix[0], pix[stride], ... in place using a
// running sum.
func boxLine(pix []uint8, stride, n, r int, buf []uint32) {
	for i := range n {
		buf[i] = uint32(pix[i*stride])
	}
	div := uint32(2*r + 1)
	var sum uint32
	for i := 0; i <= min(r, n-1); i++ {
		sum += buf[i]
	}
	for i := range n {
		pix[i*stride] = uint8((sum + div/2) / div)
		if j := i + r + 1; j < n {
			sum += buf[j]
		}
		if j := i - r; j >= 0 {
			sum -= buf[j]
		}
	}
}
