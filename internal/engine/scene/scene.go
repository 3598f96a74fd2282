// Package scene implements the scene graph: a tree of transform nodes that
// reference shared meshes and materials, traversed with a Visitor.
package scene

import (
	"slices"
)

// Scene owns the root node and the registry of materials and meshes created
// while building the graph.
type Scene struct {
	root *Node

	materials      []*Material
	materialByName map[string]*Material
	meshes         []*Mesh
}

// New creates an empty scene.
func New() *Scene {
	return &Scene{materialByName: make(map[string]*Material)}
}

// RootNode returns the root node, or nil.
func (s *Scene) RootNode() *Node {
	return s.root
}

// SetRootNode replaces the root. A node that still has a parent is detached
// first, keeping its world transform.
//
// The root never has a parent while it is traversed: a root attached to
// another node after SetRootNode is detached again by Accept.
func (s *Scene) SetRootNode(n *Node) {
	s.root = n
	s.detachRoot()
}

func (s *Scene) detachRoot() {
	if s.root == nil {
		return
	}
	if p := s.root.Parent(); p != nil {
		p.RemoveChild(s.root)
	}
}

// Accept calls v.VisitScene and then traverses the root node.
func (s *Scene) Accept(v Visitor) {
	s.detachRoot()
	v.VisitScene(s)
	if s.root != nil {
		s.root.Accept(v)
	}
}

// AABB returns the bounding box of the root node, or the zero box.
func (s *Scene) AABB() BoundingBox {
	if s.root == nil {
		return BoundingBox{}
	}
	return s.root.AABB()
}

// AddMaterial registers m and returns its index. Registering the same
// material twice returns the existing index. Named materials can be found
// with Material; a later material with the same name replaces the earlier
// one in the lookup.
func (s *Scene) AddMaterial(m *Material) int {
	if m == nil {
		return NoIndex
	}
	if i := slices.Index(s.materials, m); i >= 0 {
		return i
	}
	s.materials = append(s.materials, m)
	if m.Name != "" {
		if s.materialByName == nil {
			s.materialByName = make(map[string]*Material)
		}
		s.materialByName[m.Name] = m
	}
	return len(s.materials) - 1
}

// Material returns the registered material with the given name, or nil.
func (s *Scene) Material(name string) *Material {
	return s.materialByName[name]
}

// Materials returns the registered materials.
func (s *Scene) Materials() []*Material {
	return s.materials
}

// AddMesh registers m and returns its index, deduplicating by identity.
func (s *Scene) AddMesh(m *Mesh) int {
	if m == nil {
		return NoIndex
	}
	if i := slices.Index(s.meshes, m); i >= 0 {
		return i
	}
	s.meshes = append(s.meshes, m)
	return len(s.meshes) - 1
}

// Meshes returns the registered meshes.
func (s *Scene) Meshes() []*Mesh {
	return s.meshes
}

// Reset drops the root node and the registries.
func (s *Scene) Reset() {
	s.root = nil
	s.materials = nil
	s.materialByName = make(map[string]*Material)
	s.meshes = nil
}
