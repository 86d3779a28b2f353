// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

// Lump indices of the BSP29 directory.
const (
	lumpEntities = iota
	lumpPlanes
	lumpMipTex
	lumpVertexes
	lumpVisibility
	lumpNodes
	lumpTexInfo
	lumpFaces
	lumpLighting
	lumpClipNodes
	lumpLeafs
	lumpMarkSurfaces
	lumpEdges
	lumpSurfEdges
	lumpModels
	lumpCount
)

var lumpNames = [lumpCount]string{
	"entities", "planes", "miptex", "vertexes", "visibility",
	"nodes", "texinfo", "faces", "lighting", "clipnodes",
	"leafs", "marksurfaces", "edges", "surfedges", "models",
}

func readHeader(data []byte) header {
	var h header
	h.Version = readI32(data, 0)
	for i := 0; i < lumpCount; i++ {
		h.Lumps[i].Offset = readI32(data, 4+i*8)
		h.Lumps[i].Size = readI32(data, 4+i*8+4)
	}
	return h
}

// lump returns the byte span of the given lump within data, or nil when the
// directory entry points outside the file. Callers treat nil as an absent
// lump and degrade to an empty collection.
func (h *header) lump(data []byte, idx int) []byte {
	d := h.Lumps[idx]
	off, size := int64(d.Offset), int64(d.Size)
	if off < 0 || size < 0 || off+size > int64(len(data)) {
		return nil
	}
	return data[off : off+size]
}
