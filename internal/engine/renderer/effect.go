package renderer

import (
	"errors"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/scenegraph/internal/engine/lighting"
	"github.com/Faultbox/scenegraph/internal/engine/pass"
	"github.com/Faultbox/scenegraph/internal/engine/renderer/shaders"
	"github.com/Faultbox/scenegraph/internal/engine/scene"
	"github.com/Faultbox/scenegraph/internal/engine/shader"
	"github.com/Faultbox/scenegraph/pkg/math"
)

var errTextureUpload = errors.New("texture upload failed")

var (
	_ pass.Effect      = (*Effect)(nil)
	_ pass.CommandList = (*Renderer)(nil)
	_ TextureSource    = (*Renderer)(nil)
)

// Variant selects the shading and blend state of an Effect.
type Variant int

const (
	// Lit shades with the light buffer, depth tested and written.
	Lit Variant = iota
	// Decal is Lit with alpha blending and no depth writes, for
	// transparent meshes.
	Decal
	// Unlit draws the emissive color only.
	Unlit
)

func (v Variant) String() string {
	switch v {
	case Lit:
		return "lit"
	case Decal:
		return "decal"
	case Unlit:
		return "unlit"
	}
	return fmt.Sprintf("Variant(%d)", int(v))
}

// TextureSource resolves texture paths to GL textures. *Renderer
// implements it.
type TextureSource interface {
	Texture(path string) uint32
}

// texture units for material slots
var textureUnits = []struct {
	slot    scene.TextureType
	sampler string
	flag    string
}{
	{scene.TextureDiffuse, "uDiffuseTexture", "uHasDiffuseTexture"},
	{scene.TextureNormal, "uNormalTexture", "uHasNormalTexture"},
	{scene.TextureOpacity, "uOpacityTexture", "uHasOpacityTexture"},
}

// Effect implements pass.Effect on top of a shader program.
type Effect struct {
	variant  Variant
	program  *shader.Program
	lights   *lighting.Buffer
	textures TextureSource

	// GlobalAmbient is added to every material's ambient term.
	GlobalAmbient math.Vec4

	view, projection, world math.Mat4
	material                *scene.Material
}

// NewEffect compiles the program for variant. lights and textures are only
// used by the Lit and Decal variants and may be nil for Unlit.
func NewEffect(variant Variant, lights *lighting.Buffer, textures TextureSource) (*Effect, error) {
	vert, frag := shaders.LitVertexShader, shaders.LitFragmentShader
	if variant == Unlit {
		vert, frag = shaders.UnlitVertexShader, shaders.UnlitFragmentShader
	}

	program, err := shader.NewProgram(vert, frag)
	if err != nil {
		return nil, fmt.Errorf("%s shader: %w", variant, err)
	}

	return &Effect{
		variant:       variant,
		program:       program,
		lights:        lights,
		textures:      textures,
		GlobalAmbient: math.Vec4{X: 0.1, Y: 0.1, Z: 0.1, W: 1},
		view:          math.Identity(),
		projection:    math.Identity(),
		world:         math.Identity(),
		material:      scene.DefaultMaterial,
	}, nil
}

// Close releases the shader program.
func (e *Effect) Close() {
	e.program.Delete()
}

func (e *Effect) Variant() Variant {
	return e.variant
}

func (e *Effect) SetViewMatrix(view math.Mat4) {
	e.view = view
}

func (e *Effect) SetProjectionMatrix(proj math.Mat4) {
	e.projection = proj
}

func (e *Effect) SetWorldMatrix(world math.Mat4) {
	e.world = world
}

func (e *Effect) SetMaterial(m *scene.Material) {
	if m == nil {
		m = scene.DefaultMaterial
	}
	e.material = m
}

// Apply binds the program, blend state and uniforms for the next draw.
func (e *Effect) Apply(pass.CommandList) {
	e.program.Use()
	e.applyState()

	worldView := e.world.Then(e.view)
	e.program.SetMat4("uWorldView", worldView)
	e.program.SetMat4("uProjection", e.projection)

	props := &e.material.Properties
	e.program.SetVec4("uEmissiveColor", props.Emissive)
	if e.variant == Unlit {
		return
	}

	e.program.SetMat4("uNormalMatrix", worldView.Inverse().Transpose())
	e.program.SetVec4("uGlobalAmbient", e.GlobalAmbient)
	e.program.SetVec4("uAmbientColor", props.Ambient)
	e.program.SetVec4("uDiffuseColor", props.Diffuse)
	e.program.SetVec4("uSpecularColor", props.Specular)
	e.program.SetFloat("uSpecularPower", props.SpecularPower)
	e.program.SetFloat("uOpacity", props.Opacity)
	e.program.SetFloat("uBumpIntensity", props.BumpIntensity)

	for unit, t := range textureUnits {
		path, ok := e.material.Texture(t.slot)
		ok = ok && e.textures != nil
		e.program.SetBool(t.flag, ok)
		e.program.SetInt(t.sampler, int32(unit))
		if ok {
			gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
			gl.BindTexture(gl.TEXTURE_2D, e.textures.Texture(path))
		}
	}

	e.applyLights()
}

func (e *Effect) applyState() {
	switch e.variant {
	case Decal:
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
		gl.DepthMask(false)
	default:
		gl.Disable(gl.BLEND)
		gl.DepthMask(true)
	}
}

func (e *Effect) applyLights() {
	if e.lights == nil {
		e.program.SetInt("uLightCount", 0)
		e.program.SetVec4("uSunColor", math.Vec4{})
		return
	}

	e.program.SetVec3("uSunDirection", e.lights.Sun.DirectionVS.XYZ())
	e.program.SetVec4("uSunColor", e.lights.Sun.Color)

	positions, colors, attenuations, directions := e.lights.Uniforms()
	e.program.SetInt("uLightCount", int32(e.lights.Len()))
	e.program.SetVec3Array("uLightPositions", positions)
	e.program.SetVec3Array("uLightColors", colors)
	e.program.SetVec3Array("uLightAttenuations", attenuations)
	e.program.SetVec4Array("uLightDirections", directions)
}
