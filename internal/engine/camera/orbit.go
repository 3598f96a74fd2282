package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/scenegraph/internal/engine/scene"
	"github.com/Faultbox/scenegraph/pkg/math"
)

// Orbit turns mouse and keyboard input into a camera that circles a center
// point.
//
// Apply expresses the orbit through the camera's own terms: the focal point
// is the center, the rotation is the look-at orientation and the translation
// pushes the eye back along the view axis by Distance.
type Orbit struct {
	// Center point to orbit around
	Center math.Vec3

	// Spherical coordinates
	Distance float32 // Distance from center
	Pitch    float32 // Vertical angle, radians, positive looks down
	Yaw      float32 // Horizontal angle, radians

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32
	PanSensitivity  float32
}

// NewOrbit creates an orbit controller with defaults suited to scenes a few
// units across.
func NewOrbit() *Orbit {
	return &Orbit{
		Distance:        5,
		MinDistance:     0.5,
		MaxDistance:     90,
		MinPitch:        -1.5,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
		PanSensitivity:  0.002,
	}
}

// FromEye sets the orbit so the camera sits at eye looking at target.
func (o *Orbit) FromEye(eye, target math.Vec3) {
	offset := eye.Sub(target)
	length := offset.Length()
	o.Center = target
	o.Distance = o.clampDistance(length)
	if length == 0 {
		return
	}
	o.Pitch = o.clampPitch(math32.Asin(offset.Y / length))
	o.Yaw = math32.Atan2(offset.X, offset.Z)
}

// Position returns the eye position in world space.
func (o *Orbit) Position() math.Vec3 {
	cp := math32.Cos(o.Pitch)
	return o.Center.Add(math.Vec3{
		X: o.Distance * cp * math32.Sin(o.Yaw),
		Y: o.Distance * math32.Sin(o.Pitch),
		Z: o.Distance * cp * math32.Cos(o.Yaw),
	})
}

// HandleDrag updates rotation based on mouse drag delta.
func (o *Orbit) HandleDrag(deltaX, deltaY float32) {
	o.Yaw -= deltaX * o.DragSensitivity
	o.Pitch = o.clampPitch(o.Pitch + deltaY*o.DragSensitivity)
}

// HandleZoom updates distance based on scroll wheel delta.
func (o *Orbit) HandleZoom(delta float32) {
	o.Distance = o.clampDistance(o.Distance - delta*o.Distance*o.ZoomSensitivity)
}

// Pan slides the center in the view plane by a screen-space delta. The
// camera's focal point is moved in its local frame and the center follows.
func (o *Orbit) Pan(c *Camera, deltaX, deltaY float32) {
	o.Apply(c)
	speed := o.Distance * o.PanSensitivity
	c.MoveFocalPoint(math.Vec3{X: -deltaX * speed, Y: deltaY * speed}, Local)
	o.Center = c.FocalPoint().XYZ()
}

// FitToBounds centers the orbit on b and backs off far enough to see it.
func (o *Orbit) FitToBounds(b scene.BoundingBox) {
	o.Center = b.Center()
	o.Distance = o.clampDistance(b.Extents().Length() * 3)
	o.Pitch = o.clampPitch(0.4)
	o.Yaw = 0
}

// Apply writes the orbit pose into c.
func (o *Orbit) Apply(c *Camera) {
	up := math.Vec3{Y: 1}
	view := math.LookAtLH(o.Position(), o.Center, up)

	c.SetFocalPoint(o.Center.Vec4(1))
	c.SetRotation(math.QuatFromMat4(view.Transpose()))
	c.SetTranslation(math.Point(0, 0, -o.Distance))
}

func (o *Orbit) clampPitch(p float32) float32 {
	return min(max(p, o.MinPitch), o.MaxPitch)
}

func (o *Orbit) clampDistance(d float32) float32 {
	return min(max(d, o.MinDistance), o.MaxDistance)
}
