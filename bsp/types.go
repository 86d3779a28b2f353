package bsp

import (
	"neoquake/math/vec"
)

// On-disk record layouts of the BSP29 format. All fields are little-endian.
// The sizes are used to validate lump lengths before decoding.

// called lump_t in the original c sources
type directory struct {
	Offset int32
	Size   int32
}

type header struct {
	Version int32
	Lumps   [lumpCount]directory
}

const (
	headerSize   = 4 + lumpCount*8 // version + 15 * (offset,size)
	vertexSize   = 12              // 3 * float32
	edgeSize     = 4               // 2 * uint16
	surfEdgeSize = 4               // int32
	faceSize     = 20
	texInfoSize  = 40
	modelSize    = 64
	mipTexSize   = 40 // 16 byte name + width + height + 4 mip offsets
)

// Edge connects two vertices by index. Direction is encoded by the sign of
// the surfedge referencing it, not by the edge itself.
type Edge struct {
	V0 uint16
	V1 uint16
}

// Face is a convex polygon described as a run of surfedges.
type Face struct {
	PlaneID   int16
	Side      int16
	FirstEdge int32 // index into Map.SurfEdges
	NumEdges  int16
	TexInfoID int16
	Styles    [4]byte
	LightOfs  int32 // offset into Map.Lighting, -1 for none
}

// TexInfoPos is one of the two texture space projection planes.
type TexInfoPos struct {
	Pos    vec.Vec3
	Offset float32
}

// TexInfo projects a world position into texture space. Vecs[0] is the
// horizontal S plane, Vecs[1] the vertical T plane.
type TexInfo struct {
	Vecs     [2]TexInfoPos
	MipTexID int32
	Flags    int32
}

// Model is a brush model. Index 0 is the world, the rest are doors, plats
// and other movers.
type Model struct {
	Mins         vec.Vec3
	Maxs         vec.Vec3
	Origin       vec.Vec3
	HeadNode     [4]int32
	VisLeafCount int32
	FirstFace    int32
	FaceCount    int32
}
