package bsp

import (
	"testing"

	"neoquake/math/vec"
)

// quadMap builds a map with a single square face without going through the
// binary loader. side is the edge length in world units.
func quadMap(side float32) *Map {
	m := &Map{
		Vertices: []vec.Vec3{
			{X: 0, Y: 0, Z: 0},
			{X: side, Y: 0, Z: 0},
			{X: side, Y: side, Z: 0},
			{X: 0, Y: side, Z: 0},
		},
		Edges: []Edge{
			{V0: 0, V1: 1},
			{V0: 1, V1: 2},
			{V0: 2, V1: 3},
			{V0: 3, V1: 0},
		},
		SurfEdges: []int32{0, 1, 2, 3},
		TexInfos: []TexInfo{{
			Vecs: [2]TexInfoPos{
				{Pos: vec.Vec3{X: 1}},
				{Pos: vec.Vec3{Y: 1}},
			},
			MipTexID: -1,
		}},
		Faces: []Face{{
			FirstEdge: 0,
			NumEdges:  4,
			TexInfoID: 0,
			LightOfs:  -1,
		}},
	}
	return m
}

func TestSurfedgeDirection(t *testing.T) {
	m := &Map{
		Vertices: make([]vec.Vec3, 16),
		Edges: []Edge{
			{}, {}, {},
			{V0: 5, V1: 9},
		},
	}
	m.TexInfos = []TexInfo{{}}
	m.Faces = []Face{{FirstEdge: 0, NumEdges: 3}}

	// forward traversal picks v0
	m.SurfEdges = []int32{3, 0, 1}
	loop := m.faceLoop(&m.Faces[0])
	if len(loop) != 3 || loop[0] != 5 {
		t.Errorf("surfedge 3 resolved to %v, want first vertex 5", loop)
	}

	// reverse traversal picks v1
	m.SurfEdges = []int32{-3, 0, 1}
	loop = m.faceLoop(&m.Faces[0])
	if len(loop) != 3 || loop[0] != 9 {
		t.Errorf("surfedge -3 resolved to %v, want first vertex 9", loop)
	}
}

func TestFaceLoopBounds(t *testing.T) {
	m := quadMap(32)

	// surfedge run past the end of the slice
	f := Face{FirstEdge: 2, NumEdges: 4}
	if loop := m.faceLoop(&f); loop != nil {
		t.Errorf("out of range surfedge run produced %v", loop)
	}

	// edge index out of range
	m.SurfEdges = []int32{0, 1, 9}
	f = Face{FirstEdge: 0, NumEdges: 3}
	if loop := m.faceLoop(&f); loop != nil {
		t.Errorf("out of range edge index produced %v", loop)
	}
}

func TestFanTriangulation(t *testing.T) {
	m := quadMap(1)
	buildMeshes(m)
	if len(m.Meshes) != 1 {
		t.Fatalf("meshes = %d", len(m.Meshes))
	}
	verts := m.Meshes[0].Vertices
	// a quad fans into 2 triangles
	if len(verts) != 2*3*strideUnlit {
		t.Fatalf("vertex floats = %d want %d", len(verts), 2*3*strideUnlit)
	}
	// both triangles anchor on loop[0]
	if verts[0] != 0 || verts[1] != 0 {
		t.Errorf("triangle 0 anchor = (%v,%v) want (0,0)", verts[0], verts[1])
	}
	a := 3 * strideUnlit
	if verts[a] != 0 || verts[a+1] != 0 {
		t.Errorf("triangle 1 anchor = (%v,%v) want (0,0)", verts[a], verts[a+1])
	}
}

func TestMeshUVDivisorGuards(t *testing.T) {
	m := quadMap(2)
	m.Textures = []*Texture{{name: "zero", Width: 0, Height: 0}}
	m.TexInfos[0].MipTexID = 0
	buildMeshes(m)
	verts := m.Meshes[0].Vertices
	for i := 0; i+strideUnlit <= len(verts); i += strideUnlit {
		u := verts[i+3]
		if u != verts[i] { // divisor defaulted to 1
			t.Fatalf("u = %v want %v", u, verts[i])
		}
	}
}
