package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/scenegraph/pkg/math"
)

func TestSceneRootHasNoParent(t *testing.T) {
	p := named("p", math.Translate(1, 0, 0))
	n := named("n", math.Translate(0, 1, 0))
	require.NoError(t, p.AddChild(n))
	world := n.WorldTransform()

	s := New()
	s.SetRootNode(n)

	assert.Same(t, n, s.RootNode())
	assert.Nil(t, n.Parent())
	assert.Empty(t, p.Children())
	assertMatrix(t, world, n.WorldTransform())
}

func TestSceneAcceptDetachesParentedRoot(t *testing.T) {
	n := named("n", math.Translate(0, 1, 0))
	s := New()
	s.SetRootNode(n)

	p := named("p", math.Translate(1, 0, 0))
	require.NoError(t, p.AddChild(n))
	require.Same(t, p, n.Parent())
	world := n.WorldTransform()

	rec := &recorder{}
	s.Accept(rec)

	assert.Nil(t, n.Parent())
	assert.Empty(t, p.Children())
	assertMatrix(t, world, n.WorldTransform())
	assert.Equal(t, "scene", rec.calls[0])
}

func TestSceneEmpty(t *testing.T) {
	s := New()
	rec := &recorder{}
	s.Accept(rec)

	assert.Equal(t, []string{"scene"}, rec.calls)
	assert.Equal(t, BoundingBox{}, s.AABB())
}

func TestSceneRegistry(t *testing.T) {
	s := New()
	red := NewMaterial("red")
	glass := NewMaterial("glass")
	glass.Properties.Opacity = 0.5

	assert.Equal(t, 0, s.AddMaterial(red))
	assert.Equal(t, 1, s.AddMaterial(glass))
	assert.Equal(t, 0, s.AddMaterial(red))
	assert.Equal(t, NoIndex, s.AddMaterial(nil))
	assert.Same(t, glass, s.Material("glass"))
	assert.Nil(t, s.Material("missing"))

	m := &Mesh{Name: "m"}
	assert.Equal(t, 0, s.AddMesh(m))
	assert.Equal(t, 0, s.AddMesh(m))
	assert.Len(t, s.Meshes(), 1)

	root := NewNode()
	root.AddMesh(boxMesh("b", math.Vec3{X: -1, Y: -1, Z: -1}, math.Vec3{X: 1, Y: 1, Z: 1}))
	s.SetRootNode(root)
	assert.Equal(t, root.AABB(), s.AABB())

	s.Reset()
	assert.Nil(t, s.RootNode())
	assert.Empty(t, s.Materials())
	assert.Empty(t, s.Meshes())
	assert.Nil(t, s.Material("red"))
}

func TestMaterialTransparency(t *testing.T) {
	tests := []struct {
		name    string
		opacity float32
		texture string
		want    bool
	}{
		{"opaque", 1, "", false},
		{"translucent", 0.4, "", true},
		{"opacity map", 1, "alpha.png", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMaterial(tt.name)
			m.Properties.Opacity = tt.opacity
			m.SetTexture(TextureOpacity, tt.texture)
			assert.Equal(t, tt.want, m.IsTransparent())
		})
	}

	assert.False(t, DefaultMaterial.IsTransparent())
	assert.False(t, Red.IsTransparent())
}

func TestMaterialTextures(t *testing.T) {
	m := NewMaterial("m")
	m.SetTexture(TextureDiffuse, "wood.png")

	path, ok := m.Texture(TextureDiffuse)
	assert.True(t, ok)
	assert.Equal(t, "wood.png", path)

	m.SetTexture(TextureDiffuse, "")
	assert.False(t, m.HasTexture(TextureDiffuse))
	assert.Equal(t, "specular_power", TextureSpecularPower.String())
	assert.Len(t, TextureTypes(), 8)
}

func TestMeshBounds(t *testing.T) {
	m := NewMesh("tri", []Vertex{
		{Position: math.Vec3{X: -1, Y: 0, Z: 2}},
		{Position: math.Vec3{X: 3, Y: 1, Z: 0}},
		{Position: math.Vec3{X: 0, Y: -2, Z: 1}},
	}, []uint32{0, 1, 2})

	assert.Equal(t, BoundingBox{
		Min: math.Vec3{X: -1, Y: -2, Z: 0},
		Max: math.Vec3{X: 3, Y: 1, Z: 2},
	}, m.AABB())
	assert.Equal(t, 1, m.TriangleCount())
	assert.Same(t, DefaultMaterial, m.EffectiveMaterial())
}

func TestBoundingBoxTransform(t *testing.T) {
	b := BoundingBox{Min: math.Vec3{X: -1, Y: -1, Z: -1}, Max: math.Vec3{X: 1, Y: 1, Z: 1}}
	moved := b.Transform(math.Translate(10, 0, 0))
	assert.Equal(t, math.Vec3{X: 9, Y: -1, Z: -1}, moved.Min)
	assert.Equal(t, math.Vec3{X: 11, Y: 1, Z: 1}, moved.Max)
	assert.Equal(t, math.Vec3{X: 10}, moved.Center())
	assert.Equal(t, math.Vec3{X: 1, Y: 1, Z: 1}, moved.Extents())
}
