package scene

import (
	"fmt"
	"slices"
	"weak"

	"go.uber.org/zap"

	"github.com/Faultbox/scenegraph/internal/logger"
	"github.com/Faultbox/scenegraph/pkg/math"
)

// DefaultNodeName is the name given to nodes created by NewNode.
const DefaultNodeName = "SceneNode"

// Node is an element of the scene hierarchy. It owns its children, observes
// its parent through a weak pointer and references shared meshes.
//
// World transforms are not cached; WorldTransform walks the ancestors on
// every call. Only the inverse of the local transform is stored, and it is
// refreshed whenever the local transform changes.
type Node struct {
	name string

	local    math.Mat4
	invLocal math.Mat4

	aabb BoundingBox

	parent   weak.Pointer[Node]
	children []*Node
	byName   map[string][]*Node

	meshes []*Mesh
}

// NewNode creates a node named DefaultNodeName. The optional argument is the
// initial local transform; identity is used when it is omitted.
func NewNode(local ...math.Mat4) *Node {
	n := &Node{name: DefaultNodeName}
	if len(local) > 0 {
		n.SetLocalTransform(local[0])
	} else {
		n.SetLocalTransform(math.Identity())
	}
	return n
}

// Name returns the node name.
func (n *Node) Name() string {
	return n.name
}

// SetName renames the node and updates the parent's name index.
func (n *Node) SetName(name string) {
	if name == n.name {
		return
	}
	parent := n.Parent()
	if parent != nil {
		parent.unindex(n)
	}
	n.name = name
	if parent != nil {
		parent.index(n)
	}
}

// LocalTransform returns the transform relative to the parent.
func (n *Node) LocalTransform() math.Mat4 {
	return n.local
}

// InverseLocalTransform returns the inverse of LocalTransform.
func (n *Node) InverseLocalTransform() math.Mat4 {
	return n.invLocal
}

// SetLocalTransform replaces the local transform.
func (n *Node) SetLocalTransform(m math.Mat4) {
	n.local = m
	n.invLocal = m.Inverse()
}

// WorldTransform returns the local transform followed by the parent's world
// transform.
func (n *Node) WorldTransform() math.Mat4 {
	return n.local.Then(n.ParentWorldTransform())
}

// InverseWorldTransform returns the inverse of WorldTransform.
func (n *Node) InverseWorldTransform() math.Mat4 {
	return n.WorldTransform().Inverse()
}

// ParentWorldTransform returns the parent's world transform, or identity for
// a node without a live parent.
func (n *Node) ParentWorldTransform() math.Mat4 {
	if parent := n.Parent(); parent != nil {
		return parent.WorldTransform()
	}
	return math.Identity()
}

// Parent returns the parent node, or nil when the node is detached or the
// parent has been collected.
func (n *Node) Parent() *Node {
	return n.parent.Value()
}

// Children returns the children in insertion order. The slice must not be
// modified.
func (n *Node) Children() []*Node {
	return n.children
}

// Child returns a child with the given name, or nil. When several children
// share the name the earliest indexed one is returned.
func (n *Node) Child(name string) *Node {
	if nodes := n.byName[name]; len(nodes) > 0 {
		return nodes[0]
	}
	return nil
}

// ChildrenNamed returns every child with the given name.
func (n *Node) ChildrenNamed(name string) []*Node {
	return slices.Clone(n.byName[name])
}

// AddChild attaches child to n while keeping its world transform. Adding nil
// or an existing child does nothing. Adding n itself or one of its ancestors
// fails with ErrCycle and leaves the graph unchanged.
//
// A child that belongs to another parent is detached from it first.
func (n *Node) AddChild(child *Node) error {
	if child == nil || slices.Contains(n.children, child) {
		return nil
	}
	for a := n; a != nil; a = a.Parent() {
		if a == child {
			logger.Debug("rejected node cycle",
				zap.String("parent", n.name), zap.String("child", child.name))
			return fmt.Errorf("add %q to %q: %w", child.name, n.name, ErrCycle)
		}
	}

	world := child.WorldTransform()
	if old := child.Parent(); old != nil {
		old.unlink(child)
	}

	child.parent = weak.Make(n)
	child.SetLocalTransform(world.Then(n.InverseWorldTransform()))

	n.children = append(n.children, child)
	n.index(child)
	return nil
}

// RemoveChild detaches child from the subtree rooted at n. A direct child is
// removed here; otherwise the request is passed down to every child. The
// detached node keeps its world transform as its new local transform.
// It reports whether child was found.
func (n *Node) RemoveChild(child *Node) bool {
	if child == nil {
		return false
	}
	if slices.Contains(n.children, child) {
		world := child.WorldTransform()
		n.unlink(child)
		child.parent = weak.Pointer[Node]{}
		child.SetLocalTransform(world)
		return true
	}
	for _, c := range n.children {
		if c.RemoveChild(child) {
			return true
		}
	}
	return false
}

// SetParent moves n under parent. A nil parent detaches n, keeping its world
// transform.
func (n *Node) SetParent(parent *Node) error {
	if parent != nil {
		return parent.AddChild(n)
	}
	if old := n.Parent(); old != nil {
		old.RemoveChild(n)
	}
	return nil
}

// unlink drops child from the child list and name index without touching
// its transform or parent pointer.
func (n *Node) unlink(child *Node) {
	n.children = slices.DeleteFunc(n.children, func(c *Node) bool { return c == child })
	n.unindex(child)
}

func (n *Node) index(child *Node) {
	if child.name == "" {
		return
	}
	if n.byName == nil {
		n.byName = make(map[string][]*Node)
	}
	n.byName[child.name] = append(n.byName[child.name], child)
}

func (n *Node) unindex(child *Node) {
	nodes, ok := n.byName[child.name]
	if !ok {
		return
	}
	nodes = slices.DeleteFunc(nodes, func(c *Node) bool { return c == child })
	if len(nodes) == 0 {
		delete(n.byName, child.name)
	} else {
		n.byName[child.name] = nodes
	}
}

// AddMesh attaches mesh and grows the node's bounding box to include it.
// It returns the mesh index, the existing index for a mesh that is already
// attached, or NoIndex for nil.
func (n *Node) AddMesh(mesh *Mesh) int {
	if mesh == nil {
		return NoIndex
	}
	if i := slices.Index(n.meshes, mesh); i >= 0 {
		return i
	}
	n.meshes = append(n.meshes, mesh)
	n.aabb = n.aabb.Merge(mesh.AABB())
	return len(n.meshes) - 1
}

// RemoveMesh detaches mesh if present. The bounding box is left as is; call
// ResetAABB to shrink it.
func (n *Node) RemoveMesh(mesh *Mesh) {
	if i := slices.Index(n.meshes, mesh); i >= 0 {
		n.meshes = slices.Delete(n.meshes, i, i+1)
	}
}

// Mesh returns the mesh at index i, or nil when i is out of range.
func (n *Node) Mesh(i int) *Mesh {
	if i < 0 || i >= len(n.meshes) {
		return nil
	}
	return n.meshes[i]
}

// Meshes returns the attached meshes. The slice must not be modified.
func (n *Node) Meshes() []*Mesh {
	return n.meshes
}

// AABB returns the accumulated bounding box of the attached meshes in local
// space. It always contains the origin.
func (n *Node) AABB() BoundingBox {
	return n.aabb
}

// ResetAABB recomputes the bounding box from the currently attached meshes.
func (n *Node) ResetAABB() {
	n.aabb = BoundingBox{}
	for _, m := range n.meshes {
		n.aabb = n.aabb.Merge(m.AABB())
	}
}

// Accept visits n, its meshes and then its children, depth first.
func (n *Node) Accept(v Visitor) {
	v.VisitNode(n)
	for _, m := range n.meshes {
		m.Accept(v)
	}
	for _, c := range n.children {
		c.Accept(v)
	}
}

// Depth returns the number of live ancestors.
func (n *Node) Depth() int {
	depth := 0
	for p := n.Parent(); p != nil; p = p.Parent() {
		depth++
	}
	return depth
}
