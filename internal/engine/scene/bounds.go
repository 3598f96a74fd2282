package scene

import "github.com/Faultbox/scenegraph/pkg/math"

// BoundingBox is an axis-aligned box. The zero value is a degenerate box at
// the origin.
type BoundingBox struct {
	Min math.Vec3
	Max math.Vec3
}

// BoundsOf returns the smallest box containing all points. It returns the
// zero box when points is empty.
func BoundsOf(points ...math.Vec3) BoundingBox {
	if len(points) == 0 {
		return BoundingBox{}
	}
	b := BoundingBox{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		b.Min = b.Min.Min(p)
		b.Max = b.Max.Max(p)
	}
	return b
}

// Merge returns the union of b and other.
func (b BoundingBox) Merge(other BoundingBox) BoundingBox {
	return BoundingBox{Min: b.Min.Min(other.Min), Max: b.Max.Max(other.Max)}
}

// Center returns the midpoint of the box.
func (b BoundingBox) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Extents returns the half-size of the box along each axis.
func (b BoundingBox) Extents() math.Vec3 {
	return b.Max.Sub(b.Min).Scale(0.5)
}

// Contains reports whether other lies entirely inside b.
func (b BoundingBox) Contains(other BoundingBox) bool {
	return b.Min.X <= other.Min.X && b.Min.Y <= other.Min.Y && b.Min.Z <= other.Min.Z &&
		b.Max.X >= other.Max.X && b.Max.Y >= other.Max.Y && b.Max.Z >= other.Max.Z
}

// Corners returns the eight corner points.
func (b BoundingBox) Corners() [8]math.Vec3 {
	return [8]math.Vec3{
		{X: b.Min.X, Y: b.Min.Y, Z: b.Min.Z},
		{X: b.Max.X, Y: b.Min.Y, Z: b.Min.Z},
		{X: b.Min.X, Y: b.Max.Y, Z: b.Min.Z},
		{X: b.Max.X, Y: b.Max.Y, Z: b.Min.Z},
		{X: b.Min.X, Y: b.Min.Y, Z: b.Max.Z},
		{X: b.Max.X, Y: b.Min.Y, Z: b.Max.Z},
		{X: b.Min.X, Y: b.Max.Y, Z: b.Max.Z},
		{X: b.Max.X, Y: b.Max.Y, Z: b.Max.Z},
	}
}

// Transform returns the box enclosing b's corners after transforming them by m.
func (b BoundingBox) Transform(m math.Mat4) BoundingBox {
	corners := b.Corners()
	for i := range corners {
		corners[i] = m.TransformPoint(corners[i])
	}
	return BoundsOf(corners[:]...)
}
