// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

import (
	"fmt"
	"log"

	"neoquake/filesystem"
	"neoquake/math/vec"
	"neoquake/palette"
	"neoquake/wad"
)

// Version is the BSP format version this loader expects. Some derivative
// formats claim 29 while staying layout compatible, so a mismatch is only
// logged, never fatal.
const Version = 29

type config struct {
	palettePath string
	wads        []*wad.Archive
}

type Option func(*config)

// WithPalette loads the given palette.lmp alongside the map. A missing or
// short palette is not fatal, the map just carries no palette.
func WithPalette(path string) Option {
	return func(c *config) { c.palettePath = path }
}

// WithWad resolves externally stored textures from the given archive.
func WithWad(a *wad.Archive) Option {
	return func(c *config) { c.wads = append(c.wads, a) }
}

// LoadFile reads name through the filesystem search path and decodes it.
func LoadFile(name string, opts ...Option) (*Map, error) {
	b, err := filesystem.GetFileContents(name)
	if err != nil {
		return nil, fmt.Errorf("read bsp %s: %w", name, err)
	}
	return Load(b, opts...)
}

// Load decodes a BSP29 buffer. Structural damage to a load-critical lump
// (vertexes, edges, surfedges, faces, texinfo) fails the load; everything
// else degrades to the affected entity only, so a renderable map comes back
// whenever structurally possible. Meshes are built before returning,
// lightmaps are not: call BuildLightmaps on the result.
func Load(data []byte, opts ...Option) (*Map, error) {
	var cfg config
	for _, o := range opts {
		o(&cfg)
	}

	if len(data) < headerSize {
		return nil, fmt.Errorf("bsp: file too small: %d bytes", len(data))
	}
	h := readHeader(data)
	m := &Map{Version: h.Version}
	if m.Version != Version {
		log.Printf("bsp: version %d, expected %d; trying anyway", m.Version, Version)
	}

	// critical returns the lump span after enforcing the record size. A nil
	// span (directory pointing outside the file) decodes as empty.
	critical := func(idx, recSize int) ([]byte, error) {
		l := h.lump(data, idx)
		if len(l)%recSize != 0 {
			return nil, fmt.Errorf("bsp: bad %s lump size %d", lumpNames[idx], len(l))
		}
		return l, nil
	}

	if l, err := critical(lumpVertexes, vertexSize); err != nil {
		return nil, err
	} else {
		m.Vertices = make([]vec.Vec3, len(l)/vertexSize)
		for i := range m.Vertices {
			o := i * vertexSize
			m.Vertices[i] = vec.Vec3{
				X: readF32(l, o),
				Y: readF32(l, o+4),
				Z: readF32(l, o+8),
			}
		}
	}

	if l, err := critical(lumpEdges, edgeSize); err != nil {
		return nil, err
	} else {
		m.Edges = make([]Edge, len(l)/edgeSize)
		for i := range m.Edges {
			o := i * edgeSize
			m.Edges[i] = Edge{V0: readU16(l, o), V1: readU16(l, o+2)}
		}
	}

	if l, err := critical(lumpSurfEdges, surfEdgeSize); err != nil {
		return nil, err
	} else {
		m.SurfEdges = make([]int32, len(l)/surfEdgeSize)
		for i := range m.SurfEdges {
			m.SurfEdges[i] = readI32(l, i*surfEdgeSize)
		}
	}

	if l, err := critical(lumpFaces, faceSize); err != nil {
		return nil, err
	} else {
		m.Faces = make([]Face, len(l)/faceSize)
		for i := range m.Faces {
			o := i * faceSize
			f := &m.Faces[i]
			f.PlaneID = readI16(l, o)
			f.Side = readI16(l, o+2)
			f.FirstEdge = readI32(l, o+4)
			f.NumEdges = readI16(l, o+8)
			f.TexInfoID = readI16(l, o+10)
			copy(f.Styles[:], l[o+12:o+16])
			f.LightOfs = readI32(l, o+16)
		}
	}

	if l, err := critical(lumpTexInfo, texInfoSize); err != nil {
		return nil, err
	} else {
		m.TexInfos = make([]TexInfo, len(l)/texInfoSize)
		for i := range m.TexInfos {
			o := i * texInfoSize
			ti := &m.TexInfos[i]
			for v := 0; v < 2; v++ {
				ti.Vecs[v].Pos = vec.Vec3{
					X: readF32(l, o),
					Y: readF32(l, o+4),
					Z: readF32(l, o+8),
				}
				ti.Vecs[v].Offset = readF32(l, o+12)
				o += 16
			}
			ti.MipTexID = readI32(l, o)
			ti.Flags = readI32(l, o+4)
		}
	}

	// The lighting lump is taken as-is, a zero size is fine.
	m.Lighting = append([]byte(nil), h.lump(data, lumpLighting)...)

	if l := h.lump(data, lumpModels); len(l) > 0 && len(l)%modelSize == 0 {
		m.Models = make([]Model, len(l)/modelSize)
		for i := range m.Models {
			o := i * modelSize
			md := &m.Models[i]
			md.Mins = vec.Vec3{X: readF32(l, o), Y: readF32(l, o+4), Z: readF32(l, o+8)}
			md.Maxs = vec.Vec3{X: readF32(l, o+12), Y: readF32(l, o+16), Z: readF32(l, o+20)}
			md.Origin = vec.Vec3{X: readF32(l, o+24), Y: readF32(l, o+28), Z: readF32(l, o+32)}
			for j := range md.HeadNode {
				md.HeadNode[j] = readI32(l, o+36+j*4)
			}
			md.VisLeafCount = readI32(l, o+52)
			md.FirstFace = readI32(l, o+56)
			md.FaceCount = readI32(l, o+60)
		}
	}

	m.Textures = loadMipTex(h.lump(data, lumpMipTex), cfg.wads)
	m.Entities = ParseEntities(h.lump(data, lumpEntities))

	if cfg.palettePath != "" {
		pal, err := palette.Load(cfg.palettePath)
		if err != nil {
			log.Printf("bsp: palette %s: %v", cfg.palettePath, err)
		} else {
			m.Palette = pal
		}
	}

	log.Printf("bsp: verts=%d faces=%d edges=%d surfedges=%d texinfos=%d textures=%d entities=%d",
		len(m.Vertices), len(m.Faces), len(m.Edges), len(m.SurfEdges),
		len(m.TexInfos), len(m.Textures), len(m.Entities))

	buildMeshes(m)
	return m, nil
}

// loadMipTex decodes the two-level miptex lump: a count, then offsets
// relative to the lump start, then the texture records. An offset of zero
// or less, or one pointing outside the lump, marks a slot as externally
// stored; such slots keep a named but pixel-less entry unless a WAD in the
// search list carries the texture.
func loadMipTex(l []byte, wads []*wad.Archive) []*Texture {
	if len(l) < 4 {
		return nil
	}
	count := int(readI32(l, 0))
	if count < 0 || 4+4*count > len(l) {
		log.Printf("bsp: malformed miptex lump, ignoring %d textures", count)
		return nil
	}
	ts := make([]*Texture, count)
	for i := range ts {
		ts[i] = &Texture{}
		off := int64(readI32(l, 4+4*i))
		if off <= 0 || off >= int64(len(l)) || off+mipTexSize > int64(len(l)) {
			continue // externally stored
		}
		ts[i] = parseMipTex(l[off:])
		if ts[i].External() {
			resolveExternal(ts[i], wads)
		}
	}
	return ts
}

func resolveExternal(t *Texture, wads []*wad.Archive) {
	if t.name == "" {
		return
	}
	for _, a := range wads {
		rec, ok := a.MipTex(t.name)
		if !ok || len(rec) < mipTexSize {
			continue
		}
		if w := parseMipTex(rec); !w.External() {
			t.Width = w.Width
			t.Height = w.Height
			t.Indices = w.Indices
			return
		}
	}
}
