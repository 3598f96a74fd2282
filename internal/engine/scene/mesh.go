package scene

import "github.com/Faultbox/scenegraph/pkg/math"

// Vertex is the interleaved vertex layout shared by the importer, the
// procedural generators and the renderer.
type Vertex struct {
	Position  math.Vec3
	Normal    math.Vec3
	Tangent   math.Vec3
	Bitangent math.Vec3
	TexCoord  math.Vec2
}

// Mesh is triangle geometry with a material. Meshes are shared by pointer
// between nodes and the scene registry.
type Mesh struct {
	Name     string
	Vertices []Vertex
	Indices  []uint32
	Material *Material

	aabb BoundingBox
}

// NewMesh creates a mesh and computes its bounding box from the vertices.
func NewMesh(name string, vertices []Vertex, indices []uint32) *Mesh {
	m := &Mesh{Name: name, Vertices: vertices, Indices: indices}
	m.UpdateAABB()
	return m
}

// AABB returns the bounding box of the mesh in its local space.
func (m *Mesh) AABB() BoundingBox {
	return m.aabb
}

// SetAABB overrides the bounding box.
func (m *Mesh) SetAABB(b BoundingBox) {
	m.aabb = b
}

// UpdateAABB recomputes the bounding box from the vertex positions.
func (m *Mesh) UpdateAABB() {
	points := make([]math.Vec3, len(m.Vertices))
	for i, v := range m.Vertices {
		points[i] = v.Position
	}
	m.aabb = BoundsOf(points...)
}

// ComputeTangents fills the tangent frame of every vertex from the texture
// coordinate gradients of the triangles using it. Normals must be set.
func (m *Mesh) ComputeTangents() {
	tangents := make([]math.Vec3, len(m.Vertices))
	bitangents := make([]math.Vec3, len(m.Vertices))

	for i := 0; i+2 < len(m.Indices); i += 3 {
		i0, i1, i2 := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		v0, v1, v2 := m.Vertices[i0], m.Vertices[i1], m.Vertices[i2]

		e1 := v1.Position.Sub(v0.Position)
		e2 := v2.Position.Sub(v0.Position)
		du1 := v1.TexCoord.Sub(v0.TexCoord)
		du2 := v2.TexCoord.Sub(v0.TexCoord)

		det := du1.X*du2.Y - du2.X*du1.Y
		if det == 0 {
			continue
		}
		r := 1 / det
		t := e1.Scale(du2.Y).Sub(e2.Scale(du1.Y)).Scale(r)
		b := e2.Scale(du1.X).Sub(e1.Scale(du2.X)).Scale(r)

		for _, idx := range [3]uint32{i0, i1, i2} {
			tangents[idx] = tangents[idx].Add(t)
			bitangents[idx] = bitangents[idx].Add(b)
		}
	}

	// Gram-Schmidt against the normal
	for i := range m.Vertices {
		n := m.Vertices[i].Normal
		t := tangents[i].Sub(n.Scale(n.Dot(tangents[i]))).Normalize()
		b := bitangents[i].Sub(n.Scale(n.Dot(bitangents[i]))).Sub(t.Scale(t.Dot(bitangents[i]))).Normalize()
		m.Vertices[i].Tangent = t
		m.Vertices[i].Bitangent = b
	}
}

// TriangleCount returns the number of indexed triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// EffectiveMaterial returns the material to draw with.
func (m *Mesh) EffectiveMaterial() *Material {
	if m.Material == nil {
		return DefaultMaterial
	}
	return m.Material
}

// Accept calls v.VisitMesh.
func (m *Mesh) Accept(v Visitor) {
	v.VisitMesh(m)
}
