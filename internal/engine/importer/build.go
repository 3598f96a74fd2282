package importer

import (
	"fmt"
	"regexp"

	"github.com/chewxy/math32"
	"github.com/g3n/engine/loader/obj"

	"github.com/Faultbox/scenegraph/internal/engine/scene"
	"github.com/Faultbox/scenegraph/pkg/math"
)

const invalidIndex = -1

// corner is one face vertex: indices into the position, uv and normal
// arrays, or invalidIndex.
type corner struct {
	v, t, n int
}

// run is a sequence of faces sharing one material.
type run struct {
	material string
	faces    [][]corner
}

// noMaterial is the name the decoder gives faces before any usemtl.
const noMaterial = "internal default"

var unnamedObject = regexp.MustCompile(`^unnamed\d+$`)

// build turns decoded objects into a scene: a root node with one child per
// object and one mesh per material run.
func (l *loader) build(dec *obj.Decoder, materials []*scene.Material, rootName string) (*scene.Scene, error) {
	s := scene.New()
	root := scene.NewNode()
	root.SetName(rootName)

	byName := make(map[string]*scene.Material, len(materials))
	for _, m := range materials {
		byName[m.Name] = m
		s.AddMaterial(m)
	}

	for _, o := range dec.Objects {
		runs, err := l.runs(dec, o)
		if err != nil {
			return nil, err
		}
		if len(runs) == 0 {
			continue
		}

		name := o.Name
		if unnamedObject.MatchString(name) {
			name = "default"
		}
		node := scene.NewNode()
		node.SetName(name)
		if err := root.AddChild(node); err != nil {
			return nil, err
		}
		for _, r := range runs {
			mesh := l.imp.buildMesh(dec, name, r)
			mesh.Material = l.material(s, byName, r.material)
			node.AddMesh(mesh)
			s.AddMesh(mesh)
		}
	}

	s.SetRootNode(root)
	return s, nil
}

// runs groups the faces of o by consecutive material and resolves their
// indices. Position indices must exist; missing or out of range uv and
// normal indices mean the corner has none.
func (l *loader) runs(dec *obj.Decoder, o obj.Object) ([]*run, error) {
	positions := len(dec.Vertices) / 3
	uvs := len(dec.Uvs) / 2
	normals := len(dec.Normals) / 3

	var runs []*run
	for _, f := range o.Faces {
		material := f.Material
		if material == noMaterial {
			material = ""
		}
		if n := len(runs); n == 0 || runs[n-1].material != material {
			runs = append(runs, &run{material: material})
		}

		face := make([]corner, len(f.Vertices))
		for i, v := range f.Vertices {
			if v < 0 || v >= positions {
				return nil, &ParseError{
					File: l.file,
					Err:  fmt.Errorf("%w: object %q: vertex index %d out of range (have %d)", ErrMalformed, o.Name, v+1, positions),
				}
			}
			face[i] = corner{v: v, t: optionalIndex(f.Uvs, i, uvs), n: optionalIndex(f.Normals, i, normals)}
		}
		r := runs[len(runs)-1]
		r.faces = append(r.faces, face)
	}
	return runs, nil
}

func optionalIndex(indices []int, i, count int) int {
	if i >= len(indices) || indices[i] < 0 || indices[i] >= count {
		return invalidIndex
	}
	return indices[i]
}

// material returns the named material, creating a default one for names no
// library defined. The empty name means no material.
func (l *loader) material(s *scene.Scene, byName map[string]*scene.Material, name string) *scene.Material {
	if name == "" {
		return nil
	}
	if m, ok := byName[name]; ok {
		return m
	}
	l.imp.warn(l.file, "undefined material "+name)
	m := scene.NewMaterial(name)
	byName[name] = m
	s.AddMaterial(m)
	return m
}

func (imp *Importer) buildMesh(dec *obj.Decoder, objName string, r *run) *scene.Mesh {
	lh := imp.opts.LeftHanded

	var tris [][3]corner
	for _, face := range r.faces {
		for i := 1; i+1 < len(face); i++ {
			t := [3]corner{face[0], face[i], face[i+1]}
			if lh {
				t[1], t[2] = t[2], t[1]
			}
			tris = append(tris, t)
		}
	}

	position := func(c corner) math.Vec3 {
		p := math.Vec3{X: dec.Vertices[3*c.v], Y: dec.Vertices[3*c.v+1], Z: dec.Vertices[3*c.v+2]}
		if lh {
			p.Z = -p.Z
		}
		return p
	}

	faceNormals := make([]math.Vec3, len(tris))
	byPosition := make(map[int][]int)
	for i, t := range tris {
		a, b, c := position(t[0]), position(t[1]), position(t[2])
		faceNormals[i] = b.Sub(a).Cross(c.Sub(a)).Normalize()
		for _, k := range t {
			if k.n == invalidIndex {
				byPosition[k.v] = append(byPosition[k.v], i)
			}
		}
	}

	cosLimit := float32(-2) // accept every face
	if imp.opts.SmoothingAngle > 0 {
		cosLimit = math32.Cos(math.ToRadians(imp.opts.SmoothingAngle))
	}

	var (
		vertices []scene.Vertex
		indices  []uint32
		hasUV    bool
		seen     = make(map[scene.Vertex]uint32)
	)
	for ti, t := range tris {
		for _, c := range t {
			v := scene.Vertex{Position: position(c)}

			if c.n != invalidIndex {
				n := math.Vec3{X: dec.Normals[3*c.n], Y: dec.Normals[3*c.n+1], Z: dec.Normals[3*c.n+2]}
				if lh {
					n.Z = -n.Z
				}
				v.Normal = n.Normalize()
			} else {
				var sum math.Vec3
				for _, other := range byPosition[c.v] {
					if faceNormals[other].Dot(faceNormals[ti]) >= cosLimit {
						sum = sum.Add(faceNormals[other])
					}
				}
				v.Normal = sum.Normalize()
			}

			if c.t != invalidIndex {
				uv := math.Vec2{X: dec.Uvs[2*c.t], Y: dec.Uvs[2*c.t+1]}
				if lh {
					uv.Y = 1 - uv.Y
				}
				v.TexCoord = uv
				hasUV = true
			}

			idx, ok := seen[v]
			if !ok {
				idx = uint32(len(vertices))
				vertices = append(vertices, v)
				seen[v] = idx
			}
			indices = append(indices, idx)
		}
	}

	name := objName
	if r.material != "" {
		name += ":" + r.material
	}
	mesh := scene.NewMesh(name, vertices, indices)
	if hasUV {
		mesh.ComputeTangents()
	}
	return mesh
}
