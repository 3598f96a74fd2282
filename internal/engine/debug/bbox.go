// Package debug builds line geometry for debug visualization.
package debug

import (
	"github.com/Faultbox/scenegraph/internal/engine/scene"
	"github.com/Faultbox/scenegraph/pkg/math"
)

// BoxWireframeVertexCount is the number of line endpoints for a box wireframe (12 edges × 2).
const BoxWireframeVertexCount = 24

// SelectionPadding grows the selection box so its lines sit outside the
// mesh surface.
const SelectionPadding = 0.01

// boxEdges indexes BoundingBox.Corners: bit 0 of an index is X, bit 1 Y,
// bit 2 Z.
var boxEdges = [12][2]int{
	// Bottom face
	{0, 1}, {1, 5}, {5, 4}, {4, 0},
	// Top face
	{2, 3}, {3, 7}, {7, 6}, {6, 2},
	// Vertical edges
	{0, 2}, {1, 3}, {5, 7}, {4, 6},
}

// BoxWireframe returns line endpoints, two per edge, of box b grown by
// padding on every side and then transformed by world. The result is an
// oriented box: rotation in world is kept.
func BoxWireframe(b scene.BoundingBox, world math.Mat4, padding float32) []math.Vec3 {
	pad := math.Vec3{X: padding, Y: padding, Z: padding}
	b = scene.BoundingBox{Min: b.Min.Sub(pad), Max: b.Max.Add(pad)}

	corners := b.Corners()
	for i := range corners {
		corners[i] = world.TransformPoint(corners[i])
	}

	points := make([]math.Vec3, 0, BoxWireframeVertexCount)
	for _, e := range boxEdges {
		points = append(points, corners[e[0]], corners[e[1]])
	}
	return points
}
