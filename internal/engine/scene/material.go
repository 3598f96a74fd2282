package scene

import "github.com/Faultbox/scenegraph/pkg/math"

// TextureType identifies the slot a texture is bound to.
type TextureType int

// Texture slots, in shader binding order.
const (
	TextureAmbient TextureType = iota
	TextureEmissive
	TextureDiffuse
	TextureSpecular
	TextureSpecularPower
	TextureNormal
	TextureBump
	TextureOpacity
	numTextureTypes
)

var textureTypeNames = [...]string{
	"ambient", "emissive", "diffuse", "specular",
	"specular_power", "normal", "bump", "opacity",
}

func (t TextureType) String() string {
	if t < 0 || t >= numTextureTypes {
		return "unknown"
	}
	return textureTypeNames[t]
}

// TextureTypes lists every texture slot.
func TextureTypes() []TextureType {
	types := make([]TextureType, numTextureTypes)
	for i := range types {
		types[i] = TextureType(i)
	}
	return types
}

// Properties holds the scalar and color parameters of a material. The layout
// mirrors the uniform block consumed by the lit shader.
type Properties struct {
	Ambient     math.Vec4
	Emissive    math.Vec4
	Diffuse     math.Vec4
	Specular    math.Vec4
	Reflectance math.Vec4

	SpecularPower     float32
	Opacity           float32
	IndexOfRefraction float32
	BumpIntensity     float32
}

// Material describes the surface of a mesh.
type Material struct {
	Name       string
	Properties Properties

	textures map[TextureType]string
}

// NewMaterial creates an opaque white material.
func NewMaterial(name string) *Material {
	return &Material{
		Name: name,
		Properties: Properties{
			Diffuse:           math.Vec4{X: 1, Y: 1, Z: 1, W: 1},
			Specular:          math.Vec4{W: 1},
			Ambient:           math.Vec4{W: 1},
			Emissive:          math.Vec4{W: 1},
			SpecularPower:     128,
			Opacity:           1,
			IndexOfRefraction: 1,
			BumpIntensity:     1,
		},
	}
}

// SetTexture binds a texture path to slot t. An empty path clears the slot.
func (m *Material) SetTexture(t TextureType, path string) {
	if path == "" {
		delete(m.textures, t)
		return
	}
	if m.textures == nil {
		m.textures = make(map[TextureType]string)
	}
	m.textures[t] = path
}

// Texture returns the texture path bound to slot t.
func (m *Material) Texture(t TextureType) (string, bool) {
	path, ok := m.textures[t]
	return path, ok
}

// HasTexture reports whether slot t has a texture.
func (m *Material) HasTexture(t TextureType) bool {
	_, ok := m.textures[t]
	return ok
}

// IsTransparent reports whether meshes using m belong to the transparent pass.
func (m *Material) IsTransparent() bool {
	return m.Properties.Opacity < 1 || m.HasTexture(TextureOpacity)
}

func emissive(name string, r, g, b float32) *Material {
	m := &Material{Name: name}
	m.Properties.Emissive = math.Vec4{X: r, Y: g, Z: b, W: 1}
	m.Properties.Opacity = 1
	return m
}

// Preset materials used for light markers and debug geometry.
var (
	Zero  = emissive("Zero", 0, 0, 0)
	Red   = emissive("Red", 1, 0, 0)
	Green = emissive("Green", 0, 1, 0)
	Blue  = emissive("Blue", 0, 0, 1)
	White = emissive("White", 1, 1, 1)
	Black = emissive("Black", 0, 0, 0)
)

// DefaultMaterial is used for meshes without a material.
var DefaultMaterial = NewMaterial("Default")
