package pass

import (
	"github.com/Faultbox/scenegraph/internal/engine/scene"
	"github.com/Faultbox/scenegraph/pkg/math"
)

// Bounds accumulates the world-space box of every mesh in a scene. Each mesh
// box is transformed corner by corner with its node's world transform.
type Bounds struct {
	world math.Mat4
	box   scene.BoundingBox
	found bool
}

// NewBounds creates an empty bounds visitor.
func NewBounds() *Bounds {
	return &Bounds{world: math.Identity()}
}

// VisitScene clears the result so the visitor can be reused.
func (b *Bounds) VisitScene(*scene.Scene) {
	b.box = scene.BoundingBox{}
	b.found = false
}

// VisitNode records the world transform applied to n's meshes.
func (b *Bounds) VisitNode(n *scene.Node) {
	b.world = n.WorldTransform()
}

// VisitMesh merges the world-space box of m into the result.
func (b *Bounds) VisitMesh(m *scene.Mesh) {
	box := m.AABB().Transform(b.world)
	if !b.found {
		b.box = box
		b.found = true
		return
	}
	b.box = b.box.Merge(box)
}

// Box returns the accumulated box. ok is false when no mesh was visited.
func (b *Bounds) Box() (box scene.BoundingBox, ok bool) {
	return b.box, b.found
}
