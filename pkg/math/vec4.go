package math

// Vec4 is a homogeneous 4-component vector. Points carry W = 1 and
// directions W = 0.
type Vec4 struct {
	X, Y, Z, W float32
}

// Point returns the homogeneous point (x, y, z, 1).
func Point(x, y, z float32) Vec4 {
	return Vec4{x, y, z, 1}
}

// Direction returns the homogeneous direction (x, y, z, 0).
func Direction(x, y, z float32) Vec4 {
	return Vec4{x, y, z, 0}
}

// Add returns the component-wise sum, including W.
func (v Vec4) Add(other Vec4) Vec4 {
	return Vec4{v.X + other.X, v.Y + other.Y, v.Z + other.Z, v.W + other.W}
}

// XYZ drops the W component.
func (v Vec4) XYZ() Vec3 {
	return Vec3{v.X, v.Y, v.Z}
}

// WithW returns v with its W component replaced.
func (v Vec4) WithW(w float32) Vec4 {
	v.W = w
	return v
}
