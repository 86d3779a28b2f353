// SPDX-License-Identifier: GPL-2.0-or-later
package palette

import (
	"github.com/chewxy/math32"

	qmath "neoquake/math"
)

// In-place tone operations on a palette buffer. Everything is a silent
// no-op when the buffer is not exactly 768 bytes.

// ApplyGamma applies display gamma to every channel. gamma 1.0 leaves the
// palette unchanged, 2.2 is the usual brightening value. Not exactly
// invertible because of byte rounding.
func ApplyGamma(rgb []byte, gamma float32) {
	if !Valid(rgb) || math32.Abs(gamma-1) <= 1e-5 {
		return
	}
	inv := 1 / math32.Max(gamma, 1e-6)
	var lut [256]byte
	for v := range lut {
		lut[v] = qmath.ClampByte(math32.Pow(float32(v)/255, inv) * 255)
	}
	for i := range rgb {
		rgb[i] = lut[rgb[i]]
	}
}

// ApplyBrightnessContrast tweaks the palette with both knobs in a 0..1
// range where 0.5 means no change. Contrast pivots around mid gray,
// brightness shifts, both clamp at the extremes.
func ApplyBrightnessContrast(rgb []byte, brightness, contrast float32) {
	if !Valid(rgb) {
		return
	}
	b := (brightness - 0.5) * 2
	c := (contrast - 0.5) * 2
	for i := range rgb {
		v := float32(rgb[i]) / 255
		v = (v-0.5)*(1+c) + 0.5
		v += b * 0.5
		v = qmath.Clamp(0, v, 1)
		rgb[i] = byte(v*255 + 0.5)
	}
}

// NearestIndex finds the palette entry closest to r,g,b by squared RGB
// distance.
func NearestIndex(rgb []byte, r, g, b byte) int {
	if !Valid(rgb) {
		return 0
	}
	best, bestDist := 0, int(^uint(0)>>1)
	for i := 0; i < 256; i++ {
		dr := int(rgb[i*3]) - int(r)
		dg := int(rgb[i*3+1]) - int(g)
		db := int(rgb[i*3+2]) - int(b)
		d := dr*dr + dg*dg + db*db
		if d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}

// RemapTable maps every index of src to the nearest color of dst. Apply the
// result to index buffers to recolor textures without touching pixels.
func RemapTable(src, dst []byte) []byte {
	remap := make([]byte, 256)
	if !Valid(src) || !Valid(dst) {
		for i := range remap { // identity, the no-op table
			remap[i] = byte(i)
		}
		return remap
	}
	for i := 0; i < 256; i++ {
		remap[i] = byte(NearestIndex(dst, src[i*3], src[i*3+1], src[i*3+2]))
	}
	return remap
}

// ApplyIndexRemap rewrites an index buffer in place through a 256-entry
// remap table.
func ApplyIndexRemap(indices, remap []byte) {
	if len(remap) != 256 {
		return
	}
	for i := range indices {
		indices[i] = remap[indices[i]]
	}
}
