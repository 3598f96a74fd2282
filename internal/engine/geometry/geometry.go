// Package geometry generates primitive meshes. Triangles are wound so that
// (b-a)x(c-a) points out of the surface, the same convention the importer
// produces.
package geometry

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/scenegraph/internal/engine/scene"
	"github.com/Faultbox/scenegraph/pkg/math"
)

// MinTessellation is the smallest tessellation accepted by Sphere and Cone.
const MinTessellation = 3

// Cube returns an axis-aligned cube centered at the origin with 24 vertices
// so each face has its own normal.
func Cube(size float32) *scene.Mesh {
	normals := [6]math.Vec3{
		{Z: 1}, {Z: -1}, {X: 1}, {X: -1}, {Y: 1}, {Y: -1},
	}
	uvs := [4]math.Vec2{{X: 1}, {X: 1, Y: 1}, {Y: 1}, {}}
	half := size / 2

	vertices := make([]scene.Vertex, 0, 24)
	indices := make([]uint32, 0, 36)
	for _, n := range normals {
		// side1 is n with its components rotated, so it is perpendicular
		side1 := math.Vec3{X: n.Y, Y: n.Z, Z: n.X}
		side2 := n.Cross(side1)

		base := uint32(len(vertices))
		indices = append(indices, base, base+2, base+1, base, base+3, base+2)

		corners := [4]math.Vec3{
			n.Sub(side1).Sub(side2),
			n.Sub(side1).Add(side2),
			n.Add(side1).Add(side2),
			n.Add(side1).Sub(side2),
		}
		for i, c := range corners {
			vertices = append(vertices, scene.Vertex{
				Position: c.Scale(half),
				Normal:   n,
				TexCoord: uvs[i],
			})
		}
	}

	m := scene.NewMesh("Cube", vertices, indices)
	m.ComputeTangents()
	return m
}

// Sphere returns a UV sphere centered at the origin. tessellation is the
// number of latitude bands; twice as many longitude segments are used.
func Sphere(radius float32, tessellation int) *scene.Mesh {
	vertical := max(tessellation, MinTessellation)
	horizontal := vertical * 2
	stride := uint32(horizontal + 1)

	var vertices []scene.Vertex
	for i := 0; i <= vertical; i++ {
		latitude := float32(i)*math32.Pi/float32(vertical) - math32.Pi/2
		dy, dxz := math32.Sin(latitude), math32.Cos(latitude)

		for j := 0; j <= horizontal; j++ {
			longitude := float32(j) * 2 * math32.Pi / float32(horizontal)
			dx, dz := math32.Sin(longitude), math32.Cos(longitude)

			n := math.Vec3{X: dx * dxz, Y: dy, Z: dz * dxz}
			vertices = append(vertices, scene.Vertex{
				Position: n.Scale(radius),
				Normal:   n,
				TexCoord: math.Vec2{
					X: float32(j) / float32(horizontal),
					Y: 1 - float32(i)/float32(vertical),
				},
			})
		}
	}

	var indices []uint32
	for i := uint32(0); i < uint32(vertical); i++ {
		for j := uint32(0); j < uint32(horizontal); j++ {
			cur := i * stride
			next := (i + 1) * stride
			indices = append(indices,
				cur+j, cur+j+1, next+j,
				cur+j+1, next+j+1, next+j,
			)
		}
	}

	m := scene.NewMesh("Sphere", vertices, indices)
	m.ComputeTangents()
	return m
}

// Cone returns a cone with its apex at +height/2 and its base cap at
// -height/2.
func Cone(radius, height float32, tessellation int) *scene.Mesh {
	segments := max(tessellation, MinTessellation)
	half := height / 2
	apex := math.Vec3{Y: half}

	var vertices []scene.Vertex
	var indices []uint32

	// Side: one apex and one base vertex per segment edge so normals and
	// UVs stay per column.
	for i := 0; i <= segments; i++ {
		angle := float32(i) * 2 * math32.Pi / float32(segments)
		s, c := math32.Sin(angle), math32.Cos(angle)
		dir := math.Vec3{X: s, Z: c}
		normal := math.Vec3{X: dir.X * height, Y: radius, Z: dir.Z * height}.Normalize()
		u := float32(i) / float32(segments)

		vertices = append(vertices,
			scene.Vertex{Position: apex, Normal: normal, TexCoord: math.Vec2{X: u}},
			scene.Vertex{Position: dir.Scale(radius).Add(math.Vec3{Y: -half}), Normal: normal, TexCoord: math.Vec2{X: u, Y: 1}},
		)
	}
	for i := uint32(0); i < uint32(segments); i++ {
		a := i * 2
		indices = append(indices, a, a+1, a+3)
	}

	// Base cap
	center := uint32(len(vertices))
	down := math.Vec3{Y: -1}
	vertices = append(vertices, scene.Vertex{
		Position: math.Vec3{Y: -half},
		Normal:   down,
		TexCoord: math.Vec2{X: 0.5, Y: 0.5},
	})
	for i := 0; i < segments; i++ {
		angle := float32(i) * 2 * math32.Pi / float32(segments)
		s, c := math32.Sin(angle), math32.Cos(angle)
		vertices = append(vertices, scene.Vertex{
			Position: math.Vec3{X: s * radius, Y: -half, Z: c * radius},
			Normal:   down,
			TexCoord: math.Vec2{X: 0.5 + s*0.5, Y: 0.5 + c*0.5},
		})
	}
	for i := uint32(0); i < uint32(segments); i++ {
		cur := center + 1 + i
		next := center + 1 + (i+1)%uint32(segments)
		indices = append(indices, center, next, cur)
	}

	m := scene.NewMesh("Cone", vertices, indices)
	m.ComputeTangents()
	return m
}

// Plane returns a quad in the XZ plane facing +Y.
func Plane(width, depth float32) *scene.Mesh {
	w, d := width/2, depth/2
	up := math.Vec3{Y: 1}
	vertices := []scene.Vertex{
		{Position: math.Vec3{X: -w, Z: -d}, Normal: up, TexCoord: math.Vec2{Y: 1}},
		{Position: math.Vec3{X: -w, Z: d}, Normal: up, TexCoord: math.Vec2{}},
		{Position: math.Vec3{X: w, Z: d}, Normal: up, TexCoord: math.Vec2{X: 1}},
		{Position: math.Vec3{X: w, Z: -d}, Normal: up, TexCoord: math.Vec2{X: 1, Y: 1}},
	}
	m := scene.NewMesh("Plane", vertices, []uint32{0, 1, 2, 0, 2, 3})
	m.ComputeTangents()
	return m
}

// NewScene wraps mesh in a scene with a single root node. The mesh material,
// when set, is registered with the scene.
func NewScene(mesh *scene.Mesh) *scene.Scene {
	s := scene.New()
	root := scene.NewNode()
	root.SetName(mesh.Name)
	root.AddMesh(mesh)
	s.AddMesh(mesh)
	if mesh.Material != nil {
		s.AddMaterial(mesh.Material)
	}
	s.SetRootNode(root)
	return s
}
