// Package renderer draws scene meshes with OpenGL.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/scenegraph/internal/engine/scene"
	"github.com/Faultbox/scenegraph/internal/logger"
	"github.com/Faultbox/scenegraph/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	ClearColor math.Vec4

	// FlipTextures uploads images bottom row first, for texture
	// coordinates with V pointing up.
	FlipTextures bool
}

type gpuMesh struct {
	vao, vbo, ebo uint32
	count         int32
}

// Renderer owns GPU copies of meshes and textures. Meshes are uploaded on
// first draw and keyed by pointer, so a mesh shared by several nodes is
// uploaded once.
//
// Renderer implements pass.CommandList.
type Renderer struct {
	config Config
	log    *zap.Logger

	meshes   map[*scene.Mesh]*gpuMesh
	textures *textureCache

	// Shared stream buffer for DrawLines, created on first use.
	lineVAO, lineVBO uint32

	drawCalls int
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r := &Renderer{
		config: cfg,
		log:    logger.Named("renderer"),
		meshes: make(map[*scene.Mesh]*gpuMesh),
	}

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)

	// Outward faces are clockwise on screen with the left-handed projection.
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CW)

	r.SetClearColor(cfg.ClearColor)
	r.Resize(cfg.Width, cfg.Height)

	textures, err := newTextureCache(r.log, cfg.FlipTextures)
	if err != nil {
		return nil, fmt.Errorf("failed to create texture cache: %w", err)
	}
	r.textures = textures

	return r, nil
}

// Close releases every GPU resource owned by the renderer.
func (r *Renderer) Close() {
	r.log.Info("closing renderer", zap.Int("meshes", len(r.meshes)))
	for m := range r.meshes {
		r.Release(m)
	}
	if r.textures != nil {
		r.textures.close()
	}
	if r.lineVAO != 0 {
		gl.DeleteVertexArrays(1, &r.lineVAO)
		gl.DeleteBuffers(1, &r.lineVBO)
		r.lineVAO, r.lineVBO = 0, 0
	}
}

// Resize updates the viewport.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// AspectRatio returns width / height of the viewport.
func (r *Renderer) AspectRatio() float32 {
	if r.config.Height == 0 {
		return 1
	}
	return float32(r.config.Width) / float32(r.config.Height)
}

// SetClearColor sets the color Begin clears to.
func (r *Renderer) SetClearColor(c math.Vec4) {
	r.config.ClearColor = c
	gl.ClearColor(c.X, c.Y, c.Z, c.W)
}

// ReadPixels returns the current framebuffer as RGBA bytes, bottom row
// first.
func (r *Renderer) ReadPixels() (pixels []byte, width, height int) {
	width, height = r.config.Width, r.config.Height
	pixels = make([]byte, width*height*4)
	if len(pixels) == 0 {
		return pixels, width, height
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, width, height
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	r.drawCalls = 0
	gl.DepthMask(true)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// End finishes the current frame.
func (r *Renderer) End() {
	gl.BindVertexArray(0)
	gl.UseProgram(0)
}

// DrawCalls returns the number of draws issued since Begin.
func (r *Renderer) DrawCalls() int {
	return r.drawCalls
}

// DrawMesh draws m with the currently applied effect.
func (r *Renderer) DrawMesh(m *scene.Mesh) {
	if m == nil || len(m.Indices) == 0 || len(m.Vertices) == 0 {
		return
	}
	g, ok := r.meshes[m]
	if !ok {
		g = r.upload(m)
		r.meshes[m] = g
	}
	gl.BindVertexArray(g.vao)
	gl.DrawElements(gl.TRIANGLES, g.count, gl.UNSIGNED_INT, nil)
	r.drawCalls++
}

// DrawLines draws a line segment for each pair of points with the currently
// applied effect. Only the position attribute is fed.
func (r *Renderer) DrawLines(points []math.Vec3) {
	if len(points) < 2 {
		return
	}
	if r.lineVAO == 0 {
		gl.GenVertexArrays(1, &r.lineVAO)
		gl.BindVertexArray(r.lineVAO)
		gl.GenBuffers(1, &r.lineVBO)
		gl.BindBuffer(gl.ARRAY_BUFFER, r.lineVBO)
		gl.VertexAttribPointer(0, 3, gl.FLOAT, false, int32(unsafe.Sizeof(math.Vec3{})), gl.PtrOffset(0))
		gl.EnableVertexAttribArray(0)
	}

	gl.BindVertexArray(r.lineVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.lineVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(points)*int(unsafe.Sizeof(math.Vec3{})), gl.Ptr(points), gl.STREAM_DRAW)
	gl.DrawArrays(gl.LINES, 0, int32(len(points)&^1))
	r.drawCalls++
}

// Release frees the GPU copy of m. It is uploaded again if drawn later.
func (r *Renderer) Release(m *scene.Mesh) {
	g, ok := r.meshes[m]
	if !ok {
		return
	}
	gl.DeleteVertexArrays(1, &g.vao)
	gl.DeleteBuffers(1, &g.vbo)
	gl.DeleteBuffers(1, &g.ebo)
	delete(r.meshes, m)
}

// Texture returns the GL texture for path, loading it on first use.
// Textures that fail to load resolve to a 1x1 white texture.
func (r *Renderer) Texture(path string) uint32 {
	return r.textures.get(path)
}

func (r *Renderer) upload(m *scene.Mesh) *gpuMesh {
	g := &gpuMesh{count: int32(len(m.Indices))}

	gl.GenVertexArrays(1, &g.vao)
	gl.BindVertexArray(g.vao)

	var v scene.Vertex
	stride := int32(unsafe.Sizeof(v))

	gl.GenBuffers(1, &g.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, g.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(m.Vertices)*int(stride), gl.Ptr(m.Vertices), gl.STATIC_DRAW)

	gl.GenBuffers(1, &g.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, g.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, gl.Ptr(m.Indices), gl.STATIC_DRAW)

	attribs := []struct {
		size   int32
		offset uintptr
	}{
		{3, unsafe.Offsetof(v.Position)},
		{3, unsafe.Offsetof(v.Normal)},
		{3, unsafe.Offsetof(v.Tangent)},
		{3, unsafe.Offsetof(v.Bitangent)},
		{2, unsafe.Offsetof(v.TexCoord)},
	}
	for i, a := range attribs {
		gl.VertexAttribPointer(uint32(i), a.size, gl.FLOAT, false, stride, gl.PtrOffset(int(a.offset)))
		gl.EnableVertexAttribArray(uint32(i))
	}

	gl.BindVertexArray(0)

	r.log.Debug("mesh uploaded",
		zap.String("mesh", m.Name),
		zap.Int("vertices", len(m.Vertices)),
		zap.Int32("indices", g.count),
	)
	return g
}
