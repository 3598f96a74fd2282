package picking

import (
	"github.com/Faultbox/scenegraph/internal/engine/scene"
	"github.com/Faultbox/scenegraph/pkg/math"
)

// Hit is the nearest node whose mesh boxes a ray crosses.
type Hit struct {
	Node     *scene.Node
	Mesh     *scene.Mesh
	Distance float32
	Point    math.Vec3
}

// Picker is a scene visitor that tests each mesh's world-space box against
// a ray and keeps the closest hit.
type Picker struct {
	ray   Ray
	node  *scene.Node
	world math.Mat4

	hit   Hit
	found bool
}

// NewPicker creates a picker for ray.
func NewPicker(ray Ray) *Picker {
	return &Picker{ray: ray, world: math.Identity()}
}

// VisitScene clears the previous result.
func (p *Picker) VisitScene(*scene.Scene) {
	p.hit = Hit{}
	p.found = false
}

func (p *Picker) VisitNode(n *scene.Node) {
	p.node = n
	p.world = n.WorldTransform()
}

func (p *Picker) VisitMesh(m *scene.Mesh) {
	t, ok := p.ray.IntersectAABB(m.AABB().Transform(p.world))
	if !ok || (p.found && t >= p.hit.Distance) {
		return
	}
	p.hit = Hit{Node: p.node, Mesh: m, Distance: t, Point: p.ray.At(t)}
	p.found = true
}

// Result returns the closest hit. ok is false when the ray missed.
func (p *Picker) Result() (hit Hit, ok bool) {
	return p.hit, p.found
}

// Pick casts ray into s and returns the closest hit.
func Pick(s *scene.Scene, ray Ray) (Hit, bool) {
	p := NewPicker(ray)
	s.Accept(p)
	return p.Result()
}
