package ui2d

import (
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Printable ASCII is baked into the atlas; other runes draw as '?'.
const (
	firstGlyph = ' '
	lastGlyph  = '~'
	atlasCols  = 16
)

// Font is a fixed-width bitmap font baked from basicfont.Face7x13 into a
// single-channel atlas.
type Font struct {
	atlas   *image.Alpha
	glyphW  int
	glyphH  int
	texture uint32
}

// NewFont bakes the atlas on the CPU. Upload must be called with a current
// GL context before the font is drawn.
func NewFont() *Font {
	face := basicfont.Face7x13
	f := &Font{glyphW: face.Advance, glyphH: face.Height}

	count := int(lastGlyph-firstGlyph) + 1
	rows := (count + atlasCols - 1) / atlasCols
	f.atlas = image.NewAlpha(image.Rect(0, 0, atlasCols*f.glyphW, rows*f.glyphH))

	d := font.Drawer{Dst: f.atlas, Src: image.Opaque, Face: face}
	for r := firstGlyph; r <= lastGlyph; r++ {
		x, y := f.cell(r)
		d.Dot = fixed.P(x, y+face.Ascent)
		d.DrawString(string(r))
	}
	return f
}

// cell returns the top-left atlas pixel of r.
func (f *Font) cell(r rune) (int, int) {
	if r < firstGlyph || r > lastGlyph {
		r = '?'
	}
	i := int(r - firstGlyph)
	return (i % atlasCols) * f.glyphW, (i / atlasCols) * f.glyphH
}

// Upload creates the GL texture for the atlas.
func (f *Font) Upload() {
	if f.texture != 0 {
		return
	}
	b := f.atlas.Bounds()
	gl.GenTextures(1, &f.texture)
	gl.BindTexture(gl.TEXTURE_2D, f.texture)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.R8, int32(b.Dx()), int32(b.Dy()), 0, gl.RED, gl.UNSIGNED_BYTE, gl.Ptr(f.atlas.Pix))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// Close deletes the GL texture.
func (f *Font) Close() {
	if f.texture != 0 {
		gl.DeleteTextures(1, &f.texture)
		f.texture = 0
	}
}

// TextureID returns the GL texture, or 0 before Upload.
func (f *Font) TextureID() uint32 {
	return f.texture
}

// GlyphSize returns the cell size in pixels.
func (f *Font) GlyphSize() (int, int) {
	return f.glyphW, f.glyphH
}

// GetGlyphUV returns the atlas coordinates of r, top-left then
// bottom-right.
func (f *Font) GetGlyphUV(r rune) (u0, v0, u1, v1 float32) {
	x, y := f.cell(r)
	b := f.atlas.Bounds()
	w, h := float32(b.Dx()), float32(b.Dy())
	return float32(x) / w, float32(y) / h,
		float32(x+f.glyphW) / w, float32(y+f.glyphH) / h
}

// MeasureText returns the size of text drawn at scale. Lines are split on
// '\n'.
func (f *Font) MeasureText(text string, scale float32) (float32, float32) {
	lines, longest, cur := 1, 0, 0
	for _, r := range text {
		if r == '\n' {
			lines++
			cur = 0
			continue
		}
		cur++
		longest = max(longest, cur)
	}
	return float32(longest*f.glyphW) * scale, float32(lines*f.glyphH) * scale
}
