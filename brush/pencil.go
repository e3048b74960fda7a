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

package brush

import (
	"image"
	"math"
	"math/rand/v2"
	"sync"

	"seehuhn.de/go/geom/vec"
)

// GrainSize is the side length of the pencil grain texture in pixels.
const GrainSize = 32

const (
	// MaxStampRotation is the largest deviation of a stamp from the
	// segment direction.
	MaxStampRotation = 10 * math.Pi / 180

	// MinStampAlpha and MaxStampAlpha bound the opacity of a single stamp.
	MinStampAlpha = 30
	MaxStampAlpha = 140

	grainSeed = 0x9e3779b97f4a7c15
)

var (
	grainOnce sync.Once
	grain     *image.Alpha
)

// Grain returns the shared pencil grain texture: a few octaves of blurred
// noise, multiplied by a radial falloff. The texture is built on first use
// and must not be modified.
func Grain() *image.Alpha {
	grainOnce.Do(func() {
		grain = makeGrain()
	})
	return grain
}

func makeGrain() *image.Alpha {
	const n = GrainSize
	rng := rand.New(rand.NewPCG(grainSeed, 1))

	sum := make([]float64, n*n)
	noise := make([]float64, n*n)
	weight := 1.0
	for octave := range 3 {
		for i := range noise {
			noise[i] = rng.Float64()
		}
		boxBlur(noise, n, 1<<octave)
		for i, v := range noise {
			sum[i] += weight * v
		}
		weight /= 2
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range sum {
		lo = min(lo, v)
		hi = max(hi, v)
	}

	img := image.NewAlpha(image.Rect(0, 0, n, n))
	centre := float64(n-1) / 2
	for y := range n {
		for x := range n {
			v := (sum[y*n+x] - lo) / (hi - lo)
			r := math.Hypot(float64(x)-centre, float64(y)-centre) / (float64(n) / 2)
			falloff := max(0, 1-r*r)
			img.Pix[y*img.Stride+x] = uint8(math.Round(255 * v * v * falloff))
		}
	}
	return img
}

// boxBlur blurs the n×n field v in place with a separable box filter of
// the given radius. Samples outside the field are clamped to the border.
func boxBlur(v []float64, n, radius int) {
	tmp := make([]float64, len(v))
	norm := 1 / float64(2*radius+1)
	for y := range n {
		for x := range n {
			var s float64
			for k := -radius; k <= radius; k++ {
				s += v[y*n+min(max(x+k, 0), n-1)]
			}
			tmp[y*n+x] = s * norm
		}
	}
	for y := range n {
		for x := range n {
			var s float64
			for k := -radius; k <= radius; k++ {
				s += tmp[min(max(y+k, 0), n-1)*n+x]
			}
			v[y*n+x] = s * norm
		}
	}
}

// Stamp is one placement of the grain texture.
type Stamp struct {
	Center vec.Vec2

	// Angle is the rotation of the texture x axis.
	Angle float64

	// SizeX and SizeY are the extents of the texture along its own axes,
	// in document units.
	SizeX, SizeY float64

	Alpha uint8
}

// StampSpacing returns the distance between successive pencil stamps.
func StampSpacing(width float64) float64 {
	return max(0.20*width, 1.2)
}

// StampAlpha returns the stamp opacity for an input segment of the given
// length. Short segments (slow movement) give dark stamps, long ones light
// stamps.
func StampAlpha(segLen, width float64) uint8 {
	t := max(0, min(1, segLen/(4*max(width, 0.5))))
	return uint8(math.Round(MaxStampAlpha + (MinStampAlpha-MaxStampAlpha)*t))
}

// SegmentRand returns the random source for segment i of a pencil stroke
// with the given seed. Live drawing and replay use the same sources, so a
// replayed stroke is identical to the live one.
func SegmentRand(seed uint64, i int) *rand.Rand {
	return rand.New(rand.NewPCG(seed, uint64(i)))
}

// PlaceStamps places the stamps for the segment a–b. Phase is the distance
// from a to the first stamp, as returned for the previous segment of the
// same stroke; the new phase is returned together with the stamps.
func PlaceStamps(a, b vec.Vec2, width, phase float64, rng *rand.Rand) ([]Stamp, float64) {
	d := b.Sub(a)
	segLen := d.Length()
	if segLen == 0 {
		return nil, phase
	}
	spacing := StampSpacing(width)
	dir := d.Mul(1 / segLen)
	normal := vec.Vec2{X: -dir.Y, Y: dir.X}
	angle := math.Atan2(dir.Y, dir.X)
	alpha := StampAlpha(segLen, width)

	var stamps []Stamp
	t := max(phase, 0)
	for ; t <= segLen; t += spacing {
		jn := (2*rng.Float64() - 1) * 0.25 * width
		jt := (2*rng.Float64() - 1) * 0.2 * spacing
		c := a.Add(dir.Mul(t + jt)).Add(normal.Mul(jn))

		size := max(width, 1)
		stamps = append(stamps, Stamp{
			Center: c,
			Angle:  angle + (2*rng.Float64()-1)*MaxStampRotation,
			SizeX:  size * (0.85 + 0.3*rng.Float64()),
			SizeY:  size * (0.55 + 0.3*rng.Float64()),
			Alpha:  alpha,
		})
	}
	return stamps, t - segLen
}

// MarkerLineWidth returns the rendered line width of a marker stroke.
func MarkerLineWidth(width float64) float64 {
	return 1.30 * width
}

// MarkerBlurRadius returns the blur radius applied to a marker stroke.
func MarkerBlurRadius(width float64) float64 {
	return 0.22 * width
}
