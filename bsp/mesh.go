// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

import (
	"neoquake/math/vec"
)

// Vertex strides of a mesh buffer. Meshes come out of Load with position
// and one UV pair; BuildLightmaps rewrites every buffer to the lit stride.
const (
	strideUnlit = 5 // x y z u0 v0
	strideLit   = 7 // x y z u0 v0 u1 v1
)

// Mesh is the triangulated form of one face. Meshes stay 1:1 with
// Map.Faces; a degenerate face keeps an empty mesh so indices line up.
type Mesh struct {
	TextureID int // index into Map.Textures, -1 when unresolved
	FaceID    int
	Vertices  []float32
}

// faceLoop resolves the vertex loop of f by walking its surfedges. A
// non-negative surfedge selects the edge's first vertex, a negative one the
// second vertex of the edge at the absolute value; that is how adjacent
// faces share one edge list with opposite winding. Any index pointing
// outside the map collapses the loop to nil, which degrades the face to an
// empty mesh.
func (m *Map) faceLoop(f *Face) []int {
	n := int(f.NumEdges)
	first := int(f.FirstEdge)
	if n < 3 || first < 0 || first+n > len(m.SurfEdges) {
		return nil
	}
	loop := make([]int, 0, n)
	for _, se := range m.SurfEdges[first : first+n] {
		var vi int
		if se >= 0 {
			if int(se) >= len(m.Edges) {
				return nil
			}
			vi = int(m.Edges[se].V0)
		} else {
			if int(-se) >= len(m.Edges) {
				return nil
			}
			vi = int(m.Edges[-se].V1)
		}
		if vi >= len(m.Vertices) {
			return nil
		}
		loop = append(loop, vi)
	}
	return loop
}

// projectST maps a world position into texture space by dotting it with the
// two texinfo planes.
func projectST(p vec.Vec3, ti *TexInfo) (float32, float32) {
	s := vec.Dot(p, ti.Vecs[0].Pos) + ti.Vecs[0].Offset
	t := vec.Dot(p, ti.Vecs[1].Pos) + ti.Vecs[1].Offset
	return s, t
}

// buildMeshes fan-triangulates every face and computes the diffuse UV set.
// BSP faces are convex by construction, so the fan is always valid.
func buildMeshes(m *Map) {
	m.Meshes = make([]*Mesh, 0, len(m.Faces))
	for fi := range m.Faces {
		f := &m.Faces[fi]
		mesh := &Mesh{TextureID: -1, FaceID: fi}
		m.Meshes = append(m.Meshes, mesh)

		loop := m.faceLoop(f)
		if len(loop) < 3 {
			continue
		}
		if int(f.TexInfoID) < 0 || int(f.TexInfoID) >= len(m.TexInfos) {
			continue
		}
		ti := &m.TexInfos[f.TexInfoID]
		if id := int(ti.MipTexID); id >= 0 && id < len(m.Textures) {
			mesh.TextureID = id
		}

		// Texture size for UV normalization, guarded against zero.
		w, h := float32(1), float32(1)
		if mesh.TextureID >= 0 {
			tex := m.Textures[mesh.TextureID]
			if tex.Width > 0 {
				w = float32(tex.Width)
			}
			if tex.Height > 0 {
				h = float32(tex.Height)
			}
		}

		mesh.Vertices = make([]float32, 0, (len(loop)-2)*3*strideUnlit)
		emit := func(vi int) {
			p := m.Vertices[vi]
			s, t := projectST(p, ti)
			// The GL image origin is top left, texture space is bottom
			// left, so v flips.
			mesh.Vertices = append(mesh.Vertices,
				p.X, p.Y, p.Z, s/w, 1-t/h)
		}
		for i := 1; i+1 < len(loop); i++ {
			emit(loop[0])
			emit(loop[i])
			emit(loop[i+1])
		}
	}
}
