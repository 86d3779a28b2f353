// SPDX-License-Identifier: GPL-2.0-or-later
package bsp

import (
	"bytes"

	"neoquake/palette"
)

// Texture is a decoded miptex entry. Only mip level 0 is kept. A texture
// with an empty Indices slice is externally stored (usually in a WAD) and
// the renderer has to substitute a fallback.
type Texture struct {
	name    string
	Width   int
	Height  int
	Indices []byte // one palette index per pixel, mip level 0
}

func (t *Texture) Name() string {
	return t.name
}

// External reports whether the pixel data lives outside the BSP.
func (t *Texture) External() bool {
	return len(t.Indices) == 0
}

// RGBA decodes the palette indices into an RGBA8 buffer. With a missing or
// short palette the conversion degrades to grayscale.
func (t *Texture) RGBA(pal []byte) []byte {
	return palette.IndexedToRGBA(t.Indices, pal)
}

func texName(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}

// parseMipTex decodes one embedded miptex record. rec spans from the record
// header to the end of the miptex lump so pixel offsets can be bounds
// checked.
func parseMipTex(rec []byte) *Texture {
	t := &Texture{
		name:   texName(rec[:16]),
		Width:  int(readU32(rec, 16)),
		Height: int(readU32(rec, 20)),
	}
	if t.Width <= 0 || t.Height <= 0 {
		return t
	}
	pix := int64(readU32(rec, 24)) // mip level 0 only
	n := int64(t.Width) * int64(t.Height)
	if pix <= 0 || pix+n > int64(len(rec)) {
		// Pixel data missing or cut short. Keep the named entry without
		// pixels instead of failing the load.
		return t
	}
	t.Indices = append([]byte(nil), rec[pix:pix+n]...)
	return t
}
