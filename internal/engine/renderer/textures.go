package renderer

import (
	"image"
	"os"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/scenegraph/internal/engine/texture"
)

// maxTextureSize caps uploaded images; larger ones are scaled down.
const maxTextureSize = 4096

type textureCache struct {
	log      *zap.Logger
	flip     bool
	textures map[string]uint32
	fallback uint32
}

func newTextureCache(log *zap.Logger, flip bool) (*textureCache, error) {
	white := image.NewRGBA(image.Rect(0, 0, 1, 1))
	copy(white.Pix, []byte{255, 255, 255, 255})

	c := &textureCache{
		log:      log,
		flip:     flip,
		textures: make(map[string]uint32),
	}
	c.fallback = upload(white)
	if c.fallback == 0 {
		return nil, errTextureUpload
	}
	return c, nil
}

func (c *textureCache) get(path string) uint32 {
	if id, ok := c.textures[path]; ok {
		return id
	}

	id := c.fallback
	if img, err := c.load(path); err != nil {
		c.log.Warn("texture not loaded", zap.String("path", path), zap.Error(err))
	} else if tex := upload(img); tex != 0 {
		id = tex
		c.log.Debug("texture loaded",
			zap.String("path", path),
			zap.Int("width", img.Bounds().Dx()),
			zap.Int("height", img.Bounds().Dy()),
		)
	}

	// Failures are cached too so a missing file is reported once.
	c.textures[path] = id
	return id
}

func (c *textureCache) load(path string) (*image.RGBA, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	img, err := texture.Decode(path, data)
	if err != nil {
		return nil, err
	}

	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	if w > maxTextureSize || h > maxTextureSize {
		scale := float32(maxTextureSize) / float32(max(w, h))
		img = texture.Scale(img, max(int(float32(w)*scale), 1), max(int(float32(h)*scale), 1))
	}
	if c.flip {
		texture.FlipVertical(img)
	}
	return img, nil
}

func (c *textureCache) close() {
	for path, id := range c.textures {
		if id != c.fallback {
			gl.DeleteTextures(1, &id)
		}
		delete(c.textures, path)
	}
	if c.fallback != 0 {
		gl.DeleteTextures(1, &c.fallback)
		c.fallback = 0
	}
}

func upload(img *image.RGBA) uint32 {
	var id uint32
	gl.GenTextures(1, &id)
	if id == 0 {
		return 0
	}
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8,
		int32(img.Bounds().Dx()), int32(img.Bounds().Dy()), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return id
}
