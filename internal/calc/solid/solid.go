// Package solid builds the bolt as a signed-distance solid with sdfx and
// tessellates it into a triangle mesh for shaded previews.
package solid

import (
	"fmt"

	"boltgen/internal/calc/bolt"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// DefaultCells controls the marching cubes resolution along the longest axis.
const DefaultCells = 64

// Mesh is a triangle mesh with flat arrays: 3 floats per vertex and
// normal, 3 indices per triangle.
type Mesh struct {
	Vertices []float32 `json:"vertices"`
	Normals  []float32 `json:"normals"`
	Indices  []uint32  `json:"indices"`
}

func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / 3
}

func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}

// Solid returns the bolt as the union of two cylinders placed like the
// surface mesh: head on [0, HeadThickness], shank on [-ShankLength, 0].
func Solid(p bolt.Parameters) (sdf.SDF3, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	head, err := sdf.Cylinder3D(p.HeadThickness, p.HeadDiameter/2, 0)
	if err != nil {
		return nil, fmt.Errorf("head cylinder: %w", err)
	}
	shank, err := sdf.Cylinder3D(p.ShankLength, p.ShankDiameter/2, 0)
	if err != nil {
		return nil, fmt.Errorf("shank cylinder: %w", err)
	}
	// Cylinder3D is centered on the origin.
	head = sdf.Transform3D(head, sdf.Translate3d(v3.Vec{Z: p.HeadThickness / 2}))
	shank = sdf.Transform3D(shank, sdf.Translate3d(v3.Vec{Z: -p.ShankLength / 2}))
	return sdf.Union3D(head, shank), nil
}

// Tessellate converts the bolt solid to triangles using marching cubes.
func Tessellate(p bolt.Parameters, cells int) (*Mesh, error) {
	if cells <= 0 {
		cells = DefaultCells
	}
	s, err := Solid(p)
	if err != nil {
		return nil, err
	}

	renderer := render.NewMarchingCubesUniform(cells)
	triangles := render.ToTriangles(s, renderer)

	numVerts := len(triangles) * 3
	mesh := &Mesh{
		Vertices: make([]float32, 0, numVerts*3),
		Normals:  make([]float32, 0, numVerts*3),
		Indices:  make([]uint32, 0, numVerts),
	}
	for i, tri := range triangles {
		n := tri.Normal()
		for j := 0; j < 3; j++ {
			v := tri[j]
			mesh.Vertices = append(mesh.Vertices, float32(v.X), float32(v.Y), float32(v.Z))
			mesh.Normals = append(mesh.Normals, float32(n.X), float32(n.Y), float32(n.Z))
			mesh.Indices = append(mesh.Indices, uint32(i*3+j))
		}
	}
	return mesh, nil
}
