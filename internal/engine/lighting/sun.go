// Package lighting describes the light sources fed to the lit effect.
// Every light keeps its world-space parameters alongside a view-space copy
// that UpdateView refreshes once per frame.
package lighting

import "github.com/Faultbox/scenegraph/pkg/math"

// Direction converts yaw (around Y) and pitch (around X), both in radians,
// to a unit direction by rotating +Z first by pitch and then by yaw.
func Direction(yaw, pitch float32) math.Vec3 {
	rot := math.RotateX(pitch).Then(math.RotateY(yaw))
	return rot.TransformDirection(math.Vec3{Z: 1}).Normalize()
}

// LookAtMatrix returns a world matrix that places a marker at position with
// its +Z axis along direction. It is the inverse of math.LookToLH.
func LookAtMatrix(position, direction, up math.Vec3) math.Mat4 {
	z := direction.Normalize()
	x := up.Cross(z).Normalize()
	y := z.Cross(x)

	return math.Mat4{
		x.X, x.Y, x.Z, 0,
		y.X, y.Y, y.Z, 0,
		z.X, z.Y, z.Z, 0,
		position.X, position.Y, position.Z, 1,
	}
}

// DirectionalLight lights the whole scene from one direction, like the sun.
type DirectionalLight struct {
	DirectionWS math.Vec4 // direction the light travels, W = 0
	DirectionVS math.Vec4
	Color       math.Vec4
}

// NewDirectionalLight returns a light travelling along dir.
func NewDirectionalLight(dir math.Vec3, color math.Vec4) DirectionalLight {
	d := dir.Normalize().Vec4(0)
	return DirectionalLight{DirectionWS: d, DirectionVS: d, Color: color}
}

// UpdateView recomputes the view-space direction.
func (l *DirectionalLight) UpdateView(view math.Mat4) {
	l.DirectionVS = view.MulVec4(l.DirectionWS)
}
