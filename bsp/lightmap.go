// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

import (
	"log"

	"github.com/chewxy/math32"

	"neoquake/math/vec"
)

// Lightmaps are sampled on a 16 world-unit grid ("luxels"). Per-face blocks
// of light bytes are packed into one shared atlas so the renderer needs a
// single lightmap image for the whole map.
const (
	luxelSize      = 16
	atlasStartSize = 1024
	atlasMaxSize   = 8192
)

// LightmapRect is the placement of one face's light block in the atlas.
type LightmapRect struct {
	X, Y, W, H int
	LightOfs   int32
	Valid      bool // false means no lightmap data, draw fullbright
}

// LightmapAtlas is a single RGBA image holding every face's lightmap. The
// light bytes are grayscale broadcast into RGB with A=255. PerFace stays
// 1:1 with Map.Faces.
type LightmapAtlas struct {
	Width   int
	Height  int
	Pix     []byte
	PerFace []LightmapRect
}

// shelfPacker places rectangles left to right in horizontal bands. No
// sorting, no splitting: deterministic and good enough for Quake 1 maps.
type shelfPacker struct {
	w, h   int
	x, y   int
	shelfH int
}

func (p *shelfPacker) place(w, h int) (int, int, bool) {
	if w > p.w || h > p.h {
		return 0, 0, false
	}
	if p.x+w > p.w { // new shelf
		p.y += p.shelfH
		p.x = 0
		p.shelfH = 0
	}
	if p.y+h > p.h {
		return 0, 0, false
	}
	x, y := p.x, p.y
	p.x += w
	if h > p.shelfH {
		p.shelfH = h
	}
	return x, y, true
}

// faceLM is the per-face extent info gathered before packing.
type faceLM struct {
	w, h         int
	sminA, tminA float32
	hasLM        bool
}

func floor16(v float32) float32 {
	return math32.Floor(v/luxelSize) * luxelSize
}

func ceil16(v float32) float32 {
	return math32.Ceil(v/luxelSize) * luxelSize
}

// lightmapExtents computes the luxel-space size of a face's light block and
// the 16-aligned minimum of its S/T bounding box. The vertex loop is walked
// again rather than read back from the mesh, the mesh buffer only holds
// normalized UVs.
func (m *Map) lightmapExtents(fi int) faceLM {
	f := &m.Faces[fi]
	if int(f.TexInfoID) < 0 || int(f.TexInfoID) >= len(m.TexInfos) {
		return faceLM{}
	}
	ti := &m.TexInfos[f.TexInfoID]
	loop := m.faceLoop(f)
	if len(loop) < 3 {
		return faceLM{}
	}

	smin, tmin := float32(math32.MaxFloat32), float32(math32.MaxFloat32)
	smax, tmax := float32(-math32.MaxFloat32), float32(-math32.MaxFloat32)
	for _, vi := range loop {
		s, t := projectST(m.Vertices[vi], ti)
		smin = math32.Min(smin, s)
		smax = math32.Max(smax, s)
		tmin = math32.Min(tmin, t)
		tmax = math32.Max(tmax, t)
	}

	sminA, tminA := floor16(smin), floor16(tmin)
	w := int(ceil16(smax)-sminA)/luxelSize + 1
	h := int(ceil16(tmax)-tminA)/luxelSize + 1
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return faceLM{w: w, h: h, sminA: sminA, tminA: tminA, hasLM: true}
}

// BuildLightmaps packs every face's light block into a shared atlas and
// rewrites all mesh vertex buffers from the unlit to the lit stride, with
// u1=v1=0 wherever no lightmap data exists. It runs at most once per Map; a
// second call is a no-op since the buffers are already in lit layout. When
// the meshes are not 1:1 with the faces nothing happens at all.
func (m *Map) BuildLightmaps() {
	if m.lightmapped {
		return
	}
	if len(m.Faces) == 0 || len(m.Meshes) != len(m.Faces) {
		return
	}

	lm := make([]faceLM, len(m.Faces))
	totalArea := 0
	for fi := range m.Faces {
		f := &m.Faces[fi]
		if f.LightOfs < 0 || int(f.LightOfs) >= len(m.Lighting) {
			continue
		}
		info := m.lightmapExtents(fi)
		if info.hasLM && info.w > 0 && info.h > 0 {
			lm[fi] = info
			totalArea += info.w * info.h
		}
	}

	if totalArea == 0 {
		// Nothing to pack. Keep the stride contract anyway so consumers
		// see a uniform vertex layout.
		log.Printf("bsp: no lightmap data, map stays fullbright")
		m.expandMeshes(lm, 0, 0)
		m.lightmapped = true
		return
	}

	atlasW, atlasH := atlasStartSize, atlasStartSize
	for {
		p := shelfPacker{w: atlasW, h: atlasH}
		ok := true
		for fi := range m.Faces {
			if !lm[fi].hasLM {
				continue
			}
			if _, _, placed := p.place(lm[fi].w, lm[fi].h); !placed {
				ok = false
				break
			}
		}
		if ok {
			break
		}
		if atlasW <= atlasH {
			atlasW *= 2
		} else {
			atlasH *= 2
		}
		if atlasW > atlasMaxSize || atlasH > atlasMaxSize {
			log.Printf("bsp: lightmap atlas exceeds %d, dropping lightmaps", atlasMaxSize)
			m.Atlas = nil
			m.expandMeshes(lm, 0, 0)
			m.lightmapped = true
			return
		}
	}

	atlas := &LightmapAtlas{
		Width:   atlasW,
		Height:  atlasH,
		PerFace: make([]LightmapRect, len(m.Faces)),
	}
	p := shelfPacker{w: atlasW, h: atlasH}
	for fi := range m.Faces {
		if !lm[fi].hasLM {
			continue
		}
		x, y, placed := p.place(lm[fi].w, lm[fi].h)
		if !placed {
			continue // cannot happen after the sizing loop
		}
		atlas.PerFace[fi] = LightmapRect{
			X: x, Y: y, W: lm[fi].w, H: lm[fi].h,
			LightOfs: m.Faces[fi].LightOfs,
			Valid:    true,
		}
	}

	// Unused atlas regions stay opaque white, which is also the fullbright
	// fallback for malformed light offsets.
	atlas.Pix = make([]byte, atlasW*atlasH*4)
	for i := range atlas.Pix {
		atlas.Pix[i] = 255
	}
	for fi := range m.Faces {
		rect := &atlas.PerFace[fi]
		if !rect.Valid {
			continue
		}
		// One byte per luxel, first lighting style only.
		ofs := int(rect.LightOfs)
		if ofs+rect.W*rect.H > len(m.Lighting) {
			continue // block stays white instead of reading out of bounds
		}
		for y := 0; y < rect.H; y++ {
			for x := 0; x < rect.W; x++ {
				v := m.Lighting[ofs+y*rect.W+x]
				a := ((rect.Y+y)*atlasW + rect.X + x) * 4
				atlas.Pix[a] = v
				atlas.Pix[a+1] = v
				atlas.Pix[a+2] = v
				atlas.Pix[a+3] = 255
			}
		}
	}

	m.Atlas = atlas
	m.expandMeshes(lm, atlasW, atlasH)
	m.lightmapped = true
	log.Printf("bsp: lightmap atlas %dx%d for %d faces", atlasW, atlasH, len(m.Faces))
}

// expandMeshes rewrites every mesh buffer from the unlit to the lit stride.
// Faces without a placed rect get u1=v1=0. The second UV set is not
// v-flipped; the atlas is addressed in the same top-left origin its pixels
// were written in.
func (m *Map) expandMeshes(lm []faceLM, atlasW, atlasH int) {
	for fi, mesh := range m.Meshes {
		var rect *LightmapRect
		if m.Atlas != nil && m.Atlas.PerFace[fi].Valid {
			rect = &m.Atlas.PerFace[fi]
		}
		var ti *TexInfo
		if f := &m.Faces[fi]; int(f.TexInfoID) >= 0 && int(f.TexInfoID) < len(m.TexInfos) {
			ti = &m.TexInfos[f.TexInfoID]
		}

		old := mesh.Vertices
		nv := make([]float32, 0, len(old)/strideUnlit*strideLit)
		for i := 0; i+strideUnlit <= len(old); i += strideUnlit {
			px, py, pz := old[i], old[i+1], old[i+2]
			u1, v1 := float32(0), float32(0)
			if rect != nil && ti != nil {
				s, t := projectST(vec.Vec3{X: px, Y: py, Z: pz}, ti)
				ls := (s - lm[fi].sminA) / luxelSize
				lt := (t - lm[fi].tminA) / luxelSize
				// +0.5 samples the texel center, keeping bilinear
				// filtering inside the block.
				u1 = (float32(rect.X) + ls + 0.5) / float32(atlasW)
				v1 = (float32(rect.Y) + lt + 0.5) / float32(atlasH)
			}
			nv = append(nv, px, py, pz, old[i+3], old[i+4], u1, v1)
		}
		mesh.Vertices = nv
	}
}
