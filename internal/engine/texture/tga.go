package texture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// TGA image types.
const (
	TGATypeUncompressed = 2
	TGATypeRLE          = 10
)

// ErrUnsupported reports an image variant the decoders do not handle.
var ErrUnsupported = errors.New("unsupported image")

type tgaHeader struct {
	idLength      int
	colorMapType  byte
	imageType     byte
	width, height int
	bytesPerPixel int
	topToBottom   bool
}

func parseTGAHeader(data []byte) (tgaHeader, error) {
	if len(data) < 18 {
		return tgaHeader{}, errors.New("tga: header too short")
	}
	h := tgaHeader{
		idLength:      int(data[0]),
		colorMapType:  data[1],
		imageType:     data[2],
		width:         int(data[12]) | int(data[13])<<8,
		height:        int(data[14]) | int(data[15])<<8,
		bytesPerPixel: int(data[16]) / 8,
		topToBottom:   data[17]&0x20 != 0,
	}

	switch {
	case h.colorMapType != 0:
		return h, fmt.Errorf("tga: color-mapped: %w", ErrUnsupported)
	case h.imageType != TGATypeUncompressed && h.imageType != TGATypeRLE:
		return h, fmt.Errorf("tga: type %d: %w", h.imageType, ErrUnsupported)
	case h.bytesPerPixel != 3 && h.bytesPerPixel != 4:
		return h, fmt.Errorf("tga: %d bits per pixel: %w", data[16], ErrUnsupported)
	}
	return h, nil
}

// DecodeTGA decodes uncompressed and RLE true-color TGA images with 24 or
// 32 bits per pixel.
func DecodeTGA(data []byte) (*image.RGBA, error) {
	h, err := parseTGAHeader(data)
	if err != nil {
		return nil, err
	}

	offset := 18 + h.idLength
	if offset > len(data) {
		return nil, errors.New("tga: truncated id field")
	}
	pixels := data[offset:]
	img := image.NewRGBA(image.Rect(0, 0, h.width, h.height))

	// Pixels are stored bottom-up unless the descriptor says otherwise.
	n := h.width * h.height
	put := func(i int, c color.RGBA) {
		x, y := i%h.width, i/h.width
		if !h.topToBottom {
			y = h.height - 1 - y
		}
		img.SetRGBA(x, y, c)
	}

	if h.imageType == TGATypeUncompressed {
		if len(pixels) < n*h.bytesPerPixel {
			return nil, errors.New("tga: truncated pixel data")
		}
		for i := 0; i < n; i++ {
			put(i, h.pixel(pixels[i*h.bytesPerPixel:]))
		}
		return img, nil
	}

	i, p := 0, 0
	for i < n && p < len(pixels) {
		packet := pixels[p]
		p++
		count := int(packet&0x7F) + 1

		if packet&0x80 != 0 {
			if p+h.bytesPerPixel > len(pixels) {
				break
			}
			c := h.pixel(pixels[p:])
			p += h.bytesPerPixel
			for ; count > 0 && i < n; count-- {
				put(i, c)
				i++
			}
			continue
		}

		for ; count > 0 && i < n && p+h.bytesPerPixel <= len(pixels); count-- {
			put(i, h.pixel(pixels[p:]))
			p += h.bytesPerPixel
			i++
		}
	}

	return img, nil
}

// pixel reads one BGR(A) pixel.
func (h tgaHeader) pixel(b []byte) color.RGBA {
	c := color.RGBA{R: b[2], G: b[1], B: b[0], A: 255}
	if h.bytesPerPixel == 4 {
		c.A = b[3]
	}
	return c
}
