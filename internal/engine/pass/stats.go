package pass

import (
	"fmt"
	"strings"

	"github.com/Faultbox/scenegraph/internal/engine/scene"
)

// Stats counts what a traversal sees and records an indented outline of the
// node tree.
type Stats struct {
	Nodes     int
	Meshes    int
	Triangles int
	Vertices  int
	MaxDepth  int

	// Transparent counts meshes whose material is transparent.
	Transparent int

	materials map[*scene.Material]struct{}
	rows      []TreeRow
	node      *scene.Node
}

// TreeRow is one line of the outline. Mesh is nil on node rows; on mesh
// rows Node is the owner.
type TreeRow struct {
	Depth int
	Node  *scene.Node
	Mesh  *scene.Mesh
	Label string
}

// VisitScene resets the counters.
func (s *Stats) VisitScene(*scene.Scene) {
	*s = Stats{rows: s.rows[:0]}
}

// VisitNode counts n and adds its outline row, with the mesh count when it
// has any.
func (s *Stats) VisitNode(n *scene.Node) {
	s.Nodes++
	s.node = n
	depth := n.Depth()
	s.MaxDepth = max(s.MaxDepth, depth)

	label := n.Name()
	if meshes := len(n.Meshes()); meshes > 0 {
		label = fmt.Sprintf("%s [%d mesh(es)]", label, meshes)
	}
	s.rows = append(s.rows, TreeRow{Depth: depth, Node: n, Label: label})
}

// VisitMesh adds m's geometry to the totals and its row under the current
// node. Meshes without a material count against the default one.
func (s *Stats) VisitMesh(m *scene.Mesh) {
	s.Meshes++
	s.Triangles += m.TriangleCount()
	s.Vertices += len(m.Vertices)

	material := m.EffectiveMaterial()
	if material.IsTransparent() {
		s.Transparent++
	}
	if s.materials == nil {
		s.materials = make(map[*scene.Material]struct{})
	}
	s.materials[material] = struct{}{}

	depth := 1
	if s.node != nil {
		depth += s.node.Depth()
	}
	s.rows = append(s.rows, TreeRow{
		Depth: depth,
		Node:  s.node,
		Mesh:  m,
		Label: fmt.Sprintf("- %s: %d tris, material %s", m.Name, m.TriangleCount(), material.Name),
	})
}

// Materials returns the number of distinct materials referenced by meshes.
func (s *Stats) Materials() int {
	return len(s.materials)
}

// Rows returns the outline of the last traversal in visit order. The slice
// is reused by the next traversal.
func (s *Stats) Rows() []TreeRow {
	return s.rows
}

// Tree returns the outline built during the last traversal.
func (s *Stats) Tree() string {
	var b strings.Builder
	for _, r := range s.rows {
		b.WriteString(strings.Repeat("  ", r.Depth))
		b.WriteString(r.Label)
		b.WriteByte('\n')
	}
	return b.String()
}
