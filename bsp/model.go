// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

import (
	"neoquake/math/vec"
)

// Map is the decoded, renderable form of a BSP29 file. All relationships
// are index based: edges index into Vertices, surfedges into Edges, faces
// into SurfEdges and TexInfos, texinfos into Textures. Meshes and the atlas
// per-face rects stay 1:1 with Faces.
//
// A Map is built once by Load and is read-only afterwards, except for
// BuildLightmaps which rewrites the mesh vertex buffers exactly once.
type Map struct {
	Version   int32
	Vertices  []vec.Vec3
	Edges     []Edge
	SurfEdges []int32
	Faces     []Face
	TexInfos  []TexInfo
	Textures  []*Texture
	Models    []Model
	Lighting  []byte // raw lighting lump, one byte per luxel per style
	Palette   []byte // 768 bytes RGB, empty when no palette was loaded
	Entities  []*Entity

	Meshes []*Mesh
	Atlas  *LightmapAtlas // nil until BuildLightmaps, nil again on abort

	lightmapped bool
}

// Worldspawn returns the first entity, by convention the world itself, or
// nil for maps with no entity lump.
func (m *Map) Worldspawn() *Entity {
	if len(m.Entities) == 0 {
		return nil
	}
	return m.Entities[0]
}

// FindEntities returns all entities with the given classname.
func (m *Map) FindEntities(classname string) []*Entity {
	var es []*Entity
	for _, e := range m.Entities {
		if e.Classname() == classname {
			es = append(es, e)
		}
	}
	return es
}
