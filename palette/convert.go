// SPDX-License-Identifier: GPL-2.0-or-later
package palette

import (
	"github.com/chewxy/math32"

	qmath "neoquake/math"
)

// TransparentIndex is the palette slot conventionally rendered as
// transparent in Quake assets.
const TransparentIndex = 255

// IndexedToRGBA converts 8-bit palette indices to RGBA8. Index 255 gets
// alpha 0, everything else 255. Without a valid palette the conversion
// degrades to grayscale so a missing palette.lmp still puts something on
// screen.
func IndexedToRGBA(indices, rgb []byte) []byte {
	return IndexedToRGBAOpts(indices, rgb, Options{TransparentIndex: TransparentIndex, Gamma: 1})
}

// Options control IndexedToRGBAOpts.
type Options struct {
	TransparentIndex int  // palette slot to zero alpha, -1 for none
	Premultiply      bool // multiply RGB by alpha, for correct edge filtering
	Gamma            float32
}

// IndexedToRGBAOpts is IndexedToRGBA with explicit control over the
// transparent slot, premultiplication and gamma.
func IndexedToRGBAOpts(indices, rgb []byte, o Options) []byte {
	if len(indices) == 0 {
		return nil
	}
	var lut *[256]byte
	if o.Gamma != 0 && math32.Abs(o.Gamma-1) > 1e-5 {
		inv := 1 / math32.Max(o.Gamma, 1e-6)
		lut = new([256]byte)
		for v := range lut {
			lut[v] = qmath.ClampByte(math32.Pow(float32(v)/255, inv) * 255)
		}
	}

	pal := Valid(rgb)
	out := make([]byte, len(indices)*4)
	for i, idx := range indices {
		var r, g, b byte
		if pal {
			r, g, b = rgb[int(idx)*3], rgb[int(idx)*3+1], rgb[int(idx)*3+2]
		} else {
			r, g, b = idx, idx, idx
		}
		if lut != nil {
			r, g, b = lut[r], lut[g], lut[b]
		}
		a := byte(255)
		if int(idx) == o.TransparentIndex {
			a = 0
		}
		if o.Premultiply && a == 0 {
			r, g, b = 0, 0, 0
		}
		out[i*4] = r
		out[i*4+1] = g
		out[i*4+2] = b
		out[i*4+3] = a
	}
	return out
}

// Checker returns an opaque gray checkerboard RGBA buffer, the fallback for
// textures whose pixel data is externally stored.
func Checker(width, height, cell int) []byte {
	if width < 2 {
		width = 2
	}
	if height < 2 {
		height = 2
	}
	if cell < 1 {
		cell = 1
	}
	out := make([]byte, width*height*4)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := byte(60)
			if (x/cell+y/cell)&1 != 0 {
				v = 200
			}
			i := (y*width + x) * 4
			out[i] = v
			out[i+1] = v
			out[i+2] = v
			out[i+3] = 255
		}
	}
	return out
}
