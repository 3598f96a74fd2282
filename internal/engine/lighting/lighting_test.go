package lighting

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/scenegraph/pkg/math"
)

func assertVec3(t *testing.T, want, got math.Vec3) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-5, "x")
	assert.InDelta(t, want.Y, got.Y, 1e-5, "y")
	assert.InDelta(t, want.Z, got.Z, 1e-5, "z")
}

func TestDirection(t *testing.T) {
	tests := []struct {
		name       string
		yaw, pitch float32
		want       math.Vec3
	}{
		{"forward", 0, 0, math.Vec3{Z: 1}},
		{"yaw 90", math32.Pi / 2, 0, math.Vec3{X: 1}},
		{"pitch 90", 0, math32.Pi / 2, math.Vec3{Y: -1}},
		{"yaw 180", math32.Pi, 0, math.Vec3{Z: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertVec3(t, tt.want, Direction(tt.yaw, tt.pitch))
		})
	}
}

func TestDirectionClosedForm(t *testing.T) {
	yaw, pitch := float32(0.7), float32(-0.3)
	want := math.Vec3{
		X: math32.Sin(yaw) * math32.Cos(pitch),
		Y: -math32.Sin(pitch),
		Z: math32.Cos(yaw) * math32.Cos(pitch),
	}
	assertVec3(t, want, Direction(yaw, pitch))
}

func TestLookAtMatrix(t *testing.T) {
	pos := math.Vec3{X: 1, Y: 2, Z: 3}
	dir := math.Vec3{X: 1, Y: -1, Z: 0}
	up := math.Vec3{Y: 1}

	world := LookAtMatrix(pos, dir, up)

	assertVec3(t, pos, world.TransformPoint(math.Vec3{}))
	assertVec3(t, dir.Normalize(), world.TransformDirection(math.Vec3{Z: 1}))
	assert.True(t, world.Then(math.LookToLH(pos, dir, up)).ApproxEqual(math.Identity(), 1e-5))
}

func TestDirectionalLightUpdateView(t *testing.T) {
	sun := NewDirectionalLight(math.Vec3{Y: -2}, math.Vec4{X: 1, Y: 1, Z: 1, W: 1})
	assert.Equal(t, math.Direction(0, -1, 0), sun.DirectionWS)

	// Translation must not affect a direction.
	sun.UpdateView(math.Translate(5, 5, 5).Then(math.RotateY(math32.Pi / 2)))
	assertVec3(t, math.Vec3{Y: -1}, sun.DirectionVS.XYZ())
	assert.InDelta(t, 0, sun.DirectionVS.W, 1e-6)
}

func TestPointLight(t *testing.T) {
	l := NewPointLight(math.Vec3{X: 1}, math.Vec4{X: 1, W: 1})
	l.UpdateView(math.Translate(0, 0, 10))
	assert.Equal(t, math.Point(1, 0, 10), l.PositionVS)
	assert.Equal(t, math.Point(1, 0, 0), l.PositionWS)

	t.Run("attenuation", func(t *testing.T) {
		assert.InDelta(t, 1, l.Attenuation(4), 1e-6)
		l.LinearAttenuation = 0.5
		l.QuadraticAttenuation = 0.25
		assert.InDelta(t, 1.0/(1+2+4), l.Attenuation(4), 1e-6)
	})

	t.Run("degenerate", func(t *testing.T) {
		zero := PointLight{}
		assert.Equal(t, float32(1), zero.Attenuation(3))
	})
}

func TestSpotLight(t *testing.T) {
	spot := NewSpotLight(math.Vec3{}, math.Vec3{Z: 1}, math.ToRadians(30), math.Vec4{W: 1})

	assert.Equal(t, float32(1), spot.Cone(math.Vec3{Z: 5}))
	assert.Equal(t, float32(1), spot.Cone(math.Vec3{X: 1, Z: 5}))
	assert.Equal(t, float32(0), spot.Cone(math.Vec3{X: 5, Z: 1}))
	assert.Equal(t, float32(0), spot.Cone(math.Vec3{Z: -1}))

	spot.UpdateView(math.RotateY(math32.Pi / 2))
	assertVec3(t, math.Vec3{X: 1}, spot.DirectionVS.XYZ())

	world := spot.World(2)
	assertVec3(t, math.Vec3{Z: 2}, world.TransformDirection(math.Vec3{Z: 1}))

	down := NewSpotLight(math.Vec3{Y: 3}, math.Vec3{Y: -1}, 0.3, math.Vec4{W: 1})
	world = down.World(1)
	assertVec3(t, math.Vec3{Y: -1}, world.TransformDirection(math.Vec3{Z: 1}))
	assertVec3(t, math.Vec3{Y: 3}, world.TransformPoint(math.Vec3{}))
	assert.InDelta(t, 1, world.TransformDirection(math.Vec3{X: 1}).Length(), 1e-5)
}

func TestBuffer(t *testing.T) {
	b := NewBuffer(NewDirectionalLight(math.Vec3{Z: 1}, math.Vec4{W: 1}))

	for i := 0; i < MaxPointLights-1; i++ {
		assert.True(t, b.AddLight(NewPointLight(math.Vec3{X: float32(i)}, math.Vec4{X: 1, W: 1})))
	}
	assert.True(t, b.AddSpot(NewSpotLight(math.Vec3{}, math.Vec3{Z: 1}, math32.Pi/4, math.Vec4{Y: 1, W: 1})))
	assert.False(t, b.AddLight(NewPointLight(math.Vec3{}, math.Vec4{})))
	assert.False(t, b.AddSpot(SpotLight{}))
	assert.Equal(t, MaxPointLights, b.Len())

	b.UpdateView(math.Translate(0, 1, 0))
	positions, colors, attenuations, directions := b.Uniforms()

	assert.Len(t, positions, MaxPointLights*3)
	assert.Equal(t, []float32{2, 1, 0}, positions[6:9])
	assert.Equal(t, []float32{1, 0, 0}, colors[0:3])
	assert.Equal(t, []float32{1, 0, 0}, attenuations[0:3])
	assert.Equal(t, float32(-1), directions[3])

	last := (MaxPointLights - 1) * 4
	assert.Equal(t, []float32{0, 0, 1}, directions[last:last+3])
	assert.InDelta(t, math32.Cos(math32.Pi/4), directions[last+3], 1e-6)
}
