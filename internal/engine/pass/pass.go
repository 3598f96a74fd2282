// Package pass implements scene visitors: the render pass that turns a
// traversal into draw calls, and helpers that measure a scene.
package pass

import (
	"github.com/Faultbox/scenegraph/internal/engine/scene"
	"github.com/Faultbox/scenegraph/pkg/math"
)

// CommandList records draw calls.
type CommandList interface {
	DrawMesh(m *scene.Mesh)
}

// Effect is a shading pipeline. Setters stage state; Apply binds it on the
// command list before a draw.
type Effect interface {
	SetViewMatrix(view math.Mat4)
	SetProjectionMatrix(proj math.Mat4)
	SetWorldMatrix(world math.Mat4)
	SetMaterial(m *scene.Material)
	Apply(cl CommandList)
}

// View supplies camera matrices. *camera.Camera implements it.
type View interface {
	ViewMatrix() math.Mat4
	ProjectionMatrix() math.Mat4
}

// Pass draws the meshes of a scene whose material transparency matches the
// pass. Running an opaque and a transparent Pass over the same scene draws
// every mesh exactly once.
type Pass struct {
	commands    CommandList
	view        View
	effect      Effect
	transparent bool

	drawn int
}

// New creates a render pass.
func New(commands CommandList, view View, effect Effect, transparent bool) *Pass {
	return &Pass{
		commands:    commands,
		view:        view,
		effect:      effect,
		transparent: transparent,
	}
}

// VisitScene pushes the camera matrices to the effect.
func (p *Pass) VisitScene(*scene.Scene) {
	p.effect.SetViewMatrix(p.view.ViewMatrix())
	p.effect.SetProjectionMatrix(p.view.ProjectionMatrix())
}

// VisitNode pushes the node's world transform to the effect.
func (p *Pass) VisitNode(n *scene.Node) {
	p.effect.SetWorldMatrix(n.WorldTransform())
}

// VisitMesh draws m if it belongs to this pass.
func (p *Pass) VisitMesh(m *scene.Mesh) {
	material := m.EffectiveMaterial()
	if material.IsTransparent() != p.transparent {
		return
	}
	p.effect.SetMaterial(material)
	p.effect.Apply(p.commands)
	p.commands.DrawMesh(m)
	p.drawn++
}

// Drawn returns the number of meshes drawn since the pass was created.
func (p *Pass) Drawn() int {
	return p.drawn
}
