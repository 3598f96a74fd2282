package ui2d

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/scenegraph/pkg/math"
)

func cellCoverage(f *Font, r rune) int {
	x0, y0 := f.cell(r)
	total := 0
	for y := y0; y < y0+f.glyphH; y++ {
		for x := x0; x < x0+f.glyphW; x++ {
			total += int(f.atlas.AlphaAt(x, y).A)
		}
	}
	return total
}

func TestFontAtlas(t *testing.T) {
	f := NewFont()

	w, h := f.GlyphSize()
	assert.Equal(t, 7, w)
	assert.Equal(t, 13, h)

	assert.Positive(t, cellCoverage(f, 'A'))
	assert.Positive(t, cellCoverage(f, '~'))
	assert.Zero(t, cellCoverage(f, ' '))
	assert.NotEqual(t, cellCoverage(f, 'i'), cellCoverage(f, 'W'))

	for r := firstGlyph; r <= lastGlyph; r++ {
		u0, v0, u1, v1 := f.GetGlyphUV(r)
		require.True(t, u0 >= 0 && v0 >= 0 && u1 <= 1 && v1 <= 1, "glyph %q: %v %v %v %v", r, u0, v0, u1, v1)
		require.Less(t, u0, u1)
		require.Less(t, v0, v1)
	}

	// Runes outside the atlas draw as '?'.
	u0, v0, _, _ := f.GetGlyphUV('é')
	qu, qv, _, _ := f.GetGlyphUV('?')
	assert.Equal(t, qu, u0)
	assert.Equal(t, qv, v0)

	// No GL texture until Upload.
	assert.Zero(t, f.TextureID())
}

func TestMeasureText(t *testing.T) {
	f := NewFont()

	tests := []struct {
		text  string
		scale float32
		w, h  float32
	}{
		{"", 1, 0, 13},
		{"abc", 1, 21, 13},
		{"ab\nabcd", 1, 28, 26},
		{"abc", 2, 42, 26},
	}
	for _, tt := range tests {
		w, h := f.MeasureText(tt.text, tt.scale)
		assert.Equal(t, tt.w, w, "%q width", tt.text)
		assert.Equal(t, tt.h, h, "%q height", tt.text)
	}
}

func TestRendererBatches(t *testing.T) {
	r := newRenderer(640, 480)
	defer r.Close()

	r.Begin()
	r.DrawRect(0, 0, 10, 10, ColorText)
	assert.Len(t, r.solidVertices, 6*solidStride)

	r.DrawPanel(0, 0, 10, 10, ColorPanelBg, ColorPanelBorder)
	assert.Len(t, r.solidVertices, 6*6*solidStride, "a panel is one fill and four border quads")

	// Spaces advance without a quad.
	r.DrawText(0, 0, "a b", 1, ColorText)
	assert.Len(t, r.textVertices, 2*6*textStride)

	// Without GL, End draws nothing and keeps the batch.
	r.End()
	assert.NotEmpty(t, r.textVertices)

	r.Begin()
	assert.Empty(t, r.solidVertices)
	assert.Empty(t, r.textVertices)
}

func TestRendererProjection(t *testing.T) {
	r := newRenderer(800, 600)
	proj := r.Projection()

	tests := []struct {
		in, want math.Vec3
	}{
		{math.Vec3{}, math.Vec3{X: -1, Y: 1}},
		{math.Vec3{X: 800, Y: 600}, math.Vec3{X: 1, Y: -1}},
		{math.Vec3{X: 400, Y: 300}, math.Vec3{}},
	}
	for _, tt := range tests {
		got := proj.TransformPoint(tt.in)
		assert.InDelta(t, tt.want.X, got.X, 1e-6, "%v", tt.in)
		assert.InDelta(t, tt.want.Y, got.Y, 1e-6, "%v", tt.in)
	}

	r.Resize(400, 300)
	got := r.Projection().TransformPoint(math.Vec3{X: 400, Y: 300})
	assert.InDelta(t, 1, got.X, 1e-6)
	assert.InDelta(t, -1, got.Y, 1e-6)
}

func TestInputEdges(t *testing.T) {
	var in InputState

	in.MouseX, in.MouseY = 10, 20
	in.MouseLeftDown = true
	in.Update()
	assert.True(t, in.MouseLeftPressed)
	assert.False(t, in.MouseLeftReleased)
	assert.Equal(t, float32(10), in.MouseDeltaX)
	assert.Equal(t, float32(20), in.MouseDeltaY)

	in.MouseX = 15
	in.Update()
	assert.False(t, in.MouseLeftPressed, "held, not pressed again")
	assert.Equal(t, float32(5), in.MouseDeltaX)
	assert.Zero(t, in.MouseDeltaY)

	in.MouseLeftDown = false
	in.Update()
	assert.True(t, in.MouseLeftReleased)

	in.ScrollY = 2
	in.MouseLeftClicked = true
	in.EndFrame()
	assert.Zero(t, in.ScrollY)
	assert.False(t, in.MouseLeftClicked)

	assert.True(t, in.IsMouseInRect(10, 15, 10, 10))
	assert.False(t, in.IsMouseInRect(16, 15, 10, 10))
}

func TestCheckbox(t *testing.T) {
	c := NewHeadlessContext(800, 600)
	defer c.Close()

	frame := func(checked bool) bool {
		c.Begin()
		defer c.End()
		require.True(t, c.BeginWindow("w", 10, 10, 200, 100, "Window"))
		defer c.EndWindow()
		c.Row(14)
		return c.Checkbox("box", "Option", checked)
	}

	// The box sits at (18, 42).
	checked := frame(false)
	assert.False(t, checked)
	assert.False(t, c.WantsMouse())

	in := c.Input()
	in.MouseX, in.MouseY = 20, 48
	in.MouseLeftClicked = true
	checked = frame(checked)
	assert.True(t, checked)
	assert.True(t, c.WantsMouse())

	// The click latch is cleared, so the next frame keeps the state.
	checked = frame(checked)
	assert.True(t, checked)

	// The label is clickable too.
	in.MouseX = 60
	in.MouseLeftDown = true
	checked = frame(checked)
	assert.False(t, checked)
	in.MouseLeftDown = false
	frame(checked)
	assert.Empty(t, c.activeWidget)
}

func TestWindowDrag(t *testing.T) {
	c := NewHeadlessContext(800, 600)
	in := c.Input()

	frame := func() {
		c.Begin()
		c.BeginWindow("w", 10, 10, 200, 100, "Window")
		c.EndWindow()
		c.End()
	}

	// Grab the title bar; the press frame does not move the window.
	in.MouseX, in.MouseY = 20, 15
	in.MouseLeftDown = true
	frame()
	ws := c.Window("w")
	require.NotNil(t, ws)
	assert.True(t, ws.Moving)
	assert.Equal(t, float32(10), ws.X)

	in.MouseX, in.MouseY = 50, 45
	frame()
	assert.Equal(t, float32(40), ws.X)
	assert.Equal(t, float32(40), ws.Y)
	assert.True(t, c.WantsMouse())

	in.MouseLeftDown = false
	frame()
	assert.False(t, ws.Moving)

	// The dragged position sticks even though BeginWindow passes 10, 10.
	in.MouseX, in.MouseY = 700, 500
	frame()
	assert.Equal(t, float32(40), ws.X)
	assert.False(t, c.WantsMouse())
}

func TestListBoxScroll(t *testing.T) {
	c := NewHeadlessContext(800, 600)
	in := c.Input()

	// The list starts at y 32 inside a window at the origin and shows
	// rows from y 36, 18 points apart.
	frame := func() (clicked []int) {
		c.Begin()
		defer c.End()
		c.BeginWindow("w", 0, 0, 200, 300, "List")
		defer c.EndWindow()
		c.BeginListBox("l", 0, 100)
		for i := range 20 {
			if c.Selectable(fmt.Sprintf("row%d", i), fmt.Sprintf("row %d", i), false) {
				clicked = append(clicked, i)
			}
		}
		c.EndListBox()
		return clicked
	}

	in.MouseX, in.MouseY = 50, 45
	frame()
	lb := c.listBoxes["w_l"]
	require.NotNil(t, lb)
	assert.Equal(t, float32(360), lb.content)

	in.MouseLeftClicked = true
	assert.Equal(t, []int{0}, frame())

	// Scrolling far down stops at the last full page.
	in.ScrollY = -100
	frame()
	assert.Equal(t, float32(360-100+8), lb.ScrollY)

	// Row 15 is now the first visible row, at y 38.
	in.MouseLeftClicked = true
	assert.Equal(t, []int{15}, frame())

	in.ScrollY = 100
	frame()
	assert.Zero(t, lb.ScrollY)
}

func TestRect(t *testing.T) {
	r := Rect{X: 10, Y: 10, W: 5, H: 5}
	assert.True(t, r.Contains(10, 10))
	assert.True(t, r.Contains(14.9, 14.9))
	assert.False(t, r.Contains(15, 12))
	assert.False(t, r.Contains(9.9, 12))
}
