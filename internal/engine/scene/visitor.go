package scene

// Visitor receives callbacks during a scene traversal.
//
// Scene.Accept calls VisitScene once, then walks the node tree depth-first in
// pre-order: VisitNode for a node, VisitMesh for each of its meshes in
// attachment order, then the node's children in order.
type Visitor interface {
	VisitScene(s *Scene)
	VisitNode(n *Node)
	VisitMesh(m *Mesh)
}
