// Package camera provides the view and projection state used by render
// passes, plus an orbit controller that drives it from mouse input.
package camera

import (
	"github.com/Faultbox/scenegraph/pkg/math"
)

// Space selects the frame a relative move is expressed in.
type Space int

const (
	// Local moves are rotated by the camera orientation first.
	Local Space = iota
	// World moves are applied as given.
	World
)

// Camera holds a view and a perspective projection. The four derived
// matrices are cached and rebuilt on first read after a setter marks them
// stale. Getters therefore use pointer receivers even though they are
// observably read-only. A Camera is not safe for concurrent use.
type Camera struct {
	translation math.Vec4
	rotation    math.Quat
	focalPoint  math.Vec4

	fov    float32 // vertical, degrees
	aspect float32
	near   float32
	far    float32

	view        math.Mat4
	inverseView math.Mat4
	proj        math.Mat4
	inverseProj math.Mat4

	viewDirty        bool
	inverseViewDirty bool
	projDirty        bool
	inverseProjDirty bool
}

// New creates a camera at the origin with a 45 degree field of view, aspect
// ratio 1 and clip planes at 0.1 and 100.
func New() *Camera {
	return &Camera{
		rotation:         math.QuatIdentity(),
		fov:              45,
		aspect:           1,
		near:             0.1,
		far:              100,
		viewDirty:        true,
		inverseViewDirty: true,
		projDirty:        true,
		inverseProjDirty: true,
	}
}

// SetLookAt sets the view to look from eye at target. Translation and
// rotation are derived from the resulting matrix so later relative moves
// start from this pose.
func (c *Camera) SetLookAt(eye, target, up math.Vec3) {
	c.view = math.LookAtLH(eye, target, up)
	c.translation = eye.Vec4(1)
	c.rotation = math.QuatFromMat4(c.view.Transpose())

	c.inverseViewDirty = true
	c.viewDirty = false
}

// ViewMatrix returns the world-to-view transform.
func (c *Camera) ViewMatrix() math.Mat4 {
	if c.viewDirty {
		c.updateView()
	}
	return c.view
}

// InverseViewMatrix returns the view-to-world transform.
func (c *Camera) InverseViewMatrix() math.Mat4 {
	if c.viewDirty || c.inverseViewDirty {
		c.inverseView = c.ViewMatrix().Inverse()
		c.inverseViewDirty = false
	}
	return c.inverseView
}

// SetProjection sets the vertical field of view in degrees, the aspect
// ratio and the clip planes.
func (c *Camera) SetProjection(fovY, aspect, near, far float32) {
	c.fov = fovY
	c.aspect = aspect
	c.near = near
	c.far = far

	c.projDirty = true
	c.inverseProjDirty = true
}

// ProjectionMatrix returns the view-to-clip transform.
func (c *Camera) ProjectionMatrix() math.Mat4 {
	if c.projDirty {
		c.updateProjection()
	}
	return c.proj
}

// InverseProjectionMatrix returns the clip-to-view transform.
func (c *Camera) InverseProjectionMatrix() math.Mat4 {
	if c.projDirty || c.inverseProjDirty {
		c.inverseProj = c.ProjectionMatrix().Inverse()
		c.inverseProjDirty = false
	}
	return c.inverseProj
}

// SetFoV changes the vertical field of view in degrees.
func (c *Camera) SetFoV(fovY float32) {
	if c.fov == fovY {
		return
	}
	c.fov = fovY
	c.projDirty = true
	c.inverseProjDirty = true
}

// FoV returns the vertical field of view in degrees.
func (c *Camera) FoV() float32 {
	return c.fov
}

// AspectRatio returns the projection aspect ratio.
func (c *Camera) AspectRatio() float32 {
	return c.aspect
}

// ClipPlanes returns the near and far plane distances.
func (c *Camera) ClipPlanes() (near, far float32) {
	return c.near, c.far
}

// SetTranslation sets the camera position term of the view.
func (c *Camera) SetTranslation(t math.Vec4) {
	c.translation = t
	c.viewDirty = true
}

// Translation returns the camera position term of the view.
func (c *Camera) Translation() math.Vec4 {
	return c.translation
}

// SetFocalPoint sets the point the view rotates about.
func (c *Camera) SetFocalPoint(p math.Vec4) {
	c.focalPoint = p
	c.viewDirty = true
}

// FocalPoint returns the point the view rotates about.
func (c *Camera) FocalPoint() math.Vec4 {
	return c.focalPoint
}

// SetRotation sets the camera orientation.
func (c *Camera) SetRotation(q math.Quat) {
	c.rotation = q
	c.viewDirty = true
}

// Rotation returns the camera orientation.
func (c *Camera) Rotation() math.Quat {
	return c.rotation
}

// Translate moves the camera by v.
func (c *Camera) Translate(v math.Vec3, space Space) {
	c.translation = c.offset(c.translation, v, space)
	c.viewDirty = true
}

// MoveFocalPoint moves the focal point by v.
func (c *Camera) MoveFocalPoint(v math.Vec3, space Space) {
	c.focalPoint = c.offset(c.focalPoint, v, space)
	c.viewDirty = true
}

// Rotate applies q after the current orientation.
func (c *Camera) Rotate(q math.Quat) {
	c.rotation = c.rotation.Mul(q)
	c.viewDirty = true
}

func (c *Camera) offset(p math.Vec4, v math.Vec3, space Space) math.Vec4 {
	if space == Local {
		v = c.rotation.Rotate(v)
	}
	return p.Add(v.Vec4(0)).WithW(1)
}

// updateView composes focal offset, inverse orientation and translation, in
// that order.
func (c *Camera) updateView() {
	focal := math.TranslateVec(c.focalPoint.XYZ().Negate())
	rotation := c.rotation.ToMat4().Transpose()
	translation := math.TranslateVec(c.translation.XYZ().Negate())

	c.view = focal.Then(rotation).Then(translation)

	c.inverseViewDirty = true
	c.viewDirty = false
}

func (c *Camera) updateProjection() {
	c.proj = math.PerspectiveFovLH(math.ToRadians(c.fov), c.aspect, c.near, c.far)

	c.projDirty = false
	c.inverseProjDirty = true
}
