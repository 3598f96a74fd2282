package camera

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/scenegraph/internal/engine/scene"
	"github.com/Faultbox/scenegraph/pkg/math"
)

func TestOrbitFromEye(t *testing.T) {
	o := NewOrbit()
	eye := math.Vec3{X: 2, Y: 1, Z: -4}
	o.FromEye(eye, math.Vec3{})
	assertVec3(t, eye, o.Position())
}

func TestOrbitApplyMatchesLookAt(t *testing.T) {
	o := NewOrbit()
	o.Center = math.Vec3{X: 1, Y: 0.5, Z: 2}
	o.Distance = 6
	o.Pitch = 0.4
	o.Yaw = 2.1

	c := New()
	o.Apply(c)

	want := math.LookAtLH(o.Position(), o.Center, math.Vec3{Y: 1})
	assertMatrix(t, want, c.ViewMatrix())
	assertVec3(t, math.Vec3{Z: 6}, c.ViewMatrix().TransformPoint(o.Center))
}

func TestOrbitClamps(t *testing.T) {
	o := NewOrbit()

	o.HandleDrag(0, 1e6)
	assert.Equal(t, o.MaxPitch, o.Pitch)
	o.HandleDrag(0, -1e6)
	assert.Equal(t, o.MinPitch, o.Pitch)

	o.HandleZoom(100)
	assert.Equal(t, o.MinDistance, o.Distance)

	// Zoom is proportional to the current distance: one step out from the
	// minimum grows by delta*distance*sensitivity and stays below the max.
	o.HandleZoom(-1000)
	assert.InDelta(t, 0.5+1000*0.5*o.ZoomSensitivity, o.Distance, eps)
	o.HandleZoom(-1000)
	assert.Equal(t, o.MaxDistance, o.Distance)

	yaw := o.Yaw
	o.HandleDrag(10, 0)
	assert.InDelta(t, yaw-10*o.DragSensitivity, o.Yaw, eps)
}

func TestOrbitPan(t *testing.T) {
	o := NewOrbit()
	c := New()

	o.Pan(c, 100, 0)

	// Camera at +Z looking down -Z: a horizontal pan moves along X only
	assert.InDelta(t, 1, math32.Abs(o.Center.X), eps)
	assert.InDelta(t, 0, o.Center.Y, eps)
	assert.InDelta(t, 0, o.Center.Z, eps)

	o.Apply(c)
	assertVec3(t, math.Vec3{Z: o.Distance}, c.ViewMatrix().TransformPoint(o.Center))
}

func TestOrbitFitToBounds(t *testing.T) {
	o := NewOrbit()
	o.FitToBounds(scene.BoundingBox{
		Min: math.Vec3{X: -1, Y: 0, Z: -1},
		Max: math.Vec3{X: 3, Y: 2, Z: 1},
	})
	assertVec3(t, math.Vec3{X: 1, Y: 1}, o.Center)
	assert.Greater(t, o.Distance, float32(3))
}
