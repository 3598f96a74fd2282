package lighting

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/scenegraph/pkg/math"
)

// MaxPointLights is the size of the light arrays in the lit shader.
const MaxPointLights = 8

// PointLight emits in every direction from a position.
type PointLight struct {
	PositionWS math.Vec4
	PositionVS math.Vec4
	Color      math.Vec4

	ConstantAttenuation  float32
	LinearAttenuation    float32
	QuadraticAttenuation float32
}

// NewPointLight returns a light at position with constant attenuation only.
func NewPointLight(position math.Vec3, color math.Vec4) PointLight {
	p := position.Vec4(1)
	return PointLight{
		PositionWS:          p,
		PositionVS:          p,
		Color:               color,
		ConstantAttenuation: 1,
	}
}

// UpdateView recomputes the view-space position.
func (l *PointLight) UpdateView(view math.Mat4) {
	l.PositionVS = view.MulVec4(l.PositionWS)
}

// Attenuation returns the intensity factor at distance d.
func (l *PointLight) Attenuation(d float32) float32 {
	denom := l.ConstantAttenuation + l.LinearAttenuation*d + l.QuadraticAttenuation*d*d
	if denom <= 0 {
		return 1
	}
	return 1 / denom
}

// SpotLight is a point light restricted to a cone around a direction.
type SpotLight struct {
	PointLight

	DirectionWS math.Vec4
	DirectionVS math.Vec4
	SpotAngle   float32 // half angle of the cone in radians
}

// NewSpotLight returns a spot light at position pointing along dir.
func NewSpotLight(position, dir math.Vec3, angle float32, color math.Vec4) SpotLight {
	d := dir.Normalize().Vec4(0)
	return SpotLight{
		PointLight:  NewPointLight(position, color),
		DirectionWS: d,
		DirectionVS: d,
		SpotAngle:   angle,
	}
}

// UpdateView recomputes the view-space position and direction.
func (l *SpotLight) UpdateView(view math.Mat4) {
	l.PointLight.UpdateView(view)
	l.DirectionVS = view.MulVec4(l.DirectionWS)
}

// Cone returns 1 for points inside the cone and 0 outside.
func (l *SpotLight) Cone(point math.Vec3) float32 {
	toPoint := point.Sub(l.PositionWS.XYZ()).Normalize()
	if toPoint.Dot(l.DirectionWS.XYZ()) >= math32.Cos(l.SpotAngle) {
		return 1
	}
	return 0
}

// World returns the marker matrix for the light, scaled by size, with +Z
// along the light direction.
func (l *SpotLight) World(size float32) math.Mat4 {
	dir := l.DirectionWS.XYZ()
	up := math.Vec3{Y: 1}
	// Avoid an up vector parallel to a vertical light.
	if math32.Abs(dir.Normalize().Y) > 0.99 {
		up = math.Vec3{Z: 1}
	}
	return math.Scale(size, size, size).Then(LookAtMatrix(l.PositionWS.XYZ(), dir, up))
}

// Buffer holds view-space light data laid out for uniform upload.
type Buffer struct {
	Sun    DirectionalLight
	Lights []PointLight
	Spots  []SpotLight
}

// NewBuffer creates an empty light buffer.
func NewBuffer(sun DirectionalLight) *Buffer {
	return &Buffer{
		Sun:    sun,
		Lights: make([]PointLight, 0, MaxPointLights),
	}
}

// Len returns the number of lights that will be uploaded.
func (b *Buffer) Len() int {
	return min(len(b.Lights)+len(b.Spots), MaxPointLights)
}

// AddLight adds a point light. It returns false if the buffer is full.
func (b *Buffer) AddLight(light PointLight) bool {
	if b.Len() >= MaxPointLights {
		return false
	}
	b.Lights = append(b.Lights, light)
	return true
}

// AddSpot adds a spot light. It returns false if the buffer is full.
func (b *Buffer) AddSpot(light SpotLight) bool {
	if b.Len() >= MaxPointLights {
		return false
	}
	b.Spots = append(b.Spots, light)
	return true
}

// UpdateView moves every light into view space.
func (b *Buffer) UpdateView(view math.Mat4) {
	b.Sun.UpdateView(view)
	for i := range b.Lights {
		b.Lights[i].UpdateView(view)
	}
	for i := range b.Spots {
		b.Spots[i].UpdateView(view)
	}
}

// Uniforms flattens the point and spot lights for GPU upload. Point lights
// come first; spot lights carry a cosine cutoff, point lights -1.
func (b *Buffer) Uniforms() (positions, colors, attenuations, directions []float32) {
	positions = make([]float32, MaxPointLights*3)
	colors = make([]float32, MaxPointLights*3)
	attenuations = make([]float32, MaxPointLights*3)
	directions = make([]float32, MaxPointLights*4)

	put := func(i int, l *PointLight, dir math.Vec4, cutoff float32) {
		positions[i*3+0] = l.PositionVS.X
		positions[i*3+1] = l.PositionVS.Y
		positions[i*3+2] = l.PositionVS.Z
		colors[i*3+0] = l.Color.X
		colors[i*3+1] = l.Color.Y
		colors[i*3+2] = l.Color.Z
		attenuations[i*3+0] = l.ConstantAttenuation
		attenuations[i*3+1] = l.LinearAttenuation
		attenuations[i*3+2] = l.QuadraticAttenuation
		directions[i*4+0] = dir.X
		directions[i*4+1] = dir.Y
		directions[i*4+2] = dir.Z
		directions[i*4+3] = cutoff
	}

	n := 0
	for i := range b.Lights {
		if n == MaxPointLights {
			return
		}
		put(n, &b.Lights[i], math.Vec4{}, -1)
		n++
	}
	for i := range b.Spots {
		if n == MaxPointLights {
			return
		}
		put(n, &b.Spots[i].PointLight, b.Spots[i].DirectionVS, math32.Cos(b.Spots[i].SpotAngle))
		n++
	}
	return
}
