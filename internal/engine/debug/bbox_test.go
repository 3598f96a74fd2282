package debug

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/scenegraph/internal/engine/scene"
	"github.com/Faultbox/scenegraph/pkg/math"
)

var unitBox = scene.BoundingBox{
	Min: math.Vec3{X: -1, Y: -1, Z: -1},
	Max: math.Vec3{X: 1, Y: 1, Z: 1},
}

func TestBoxWireframeEdges(t *testing.T) {
	points := BoxWireframe(unitBox, math.Identity(), 0)
	require.Len(t, points, BoxWireframeVertexCount)

	seen := make(map[[2]math.Vec3]bool)
	for i := 0; i < len(points); i += 2 {
		a, b := points[i], points[i+1]
		d := b.Sub(a)

		// Every edge runs along exactly one axis and spans the box.
		axes := 0
		for _, c := range []float32{d.X, d.Y, d.Z} {
			if c != 0 {
				axes++
				assert.InDelta(t, 2, math32.Abs(c), 1e-6)
			}
		}
		assert.Equal(t, 1, axes, "edge %v -> %v", a, b)

		assert.False(t, seen[[2]math.Vec3{a, b}] || seen[[2]math.Vec3{b, a}], "duplicate edge %v -> %v", a, b)
		seen[[2]math.Vec3{a, b}] = true
	}
	assert.Len(t, seen, 12)
}

func TestBoxWireframePadding(t *testing.T) {
	points := BoxWireframe(unitBox, math.Identity(), 0.5)
	box := scene.BoundsOf(points...)
	assert.Equal(t, math.Vec3{X: -1.5, Y: -1.5, Z: -1.5}, box.Min)
	assert.Equal(t, math.Vec3{X: 1.5, Y: 1.5, Z: 1.5}, box.Max)
}

func TestBoxWireframeWorld(t *testing.T) {
	box := scene.BoundingBox{Max: math.Vec3{X: 2, Y: 1, Z: 1}}

	// Translation moves every endpoint.
	points := BoxWireframe(box, math.Translate(10, 0, 0), 0)
	moved := scene.BoundsOf(points...)
	assert.InDelta(t, 10, moved.Min.X, 1e-5)
	assert.InDelta(t, 12, moved.Max.X, 1e-5)

	// A quarter turn about Z swaps the long side onto Y.
	points = BoxWireframe(box, math.RotateZ(1.5707964), 0)
	turned := scene.BoundsOf(points...)
	assert.InDelta(t, 2, turned.Max.Y-turned.Min.Y, 1e-4)
	assert.InDelta(t, 1, turned.Max.X-turned.Min.X, 1e-4)
}
