package imgconv

import (
	"image"
	"image/color"
)

// ToNRGBA converts any image m to an *image.NRGBA image.
// Any Image may be converted, but images that are not image.NRGBA might be converted lossily.
func ToNRGBA(m image.Image) *image.NRGBA {
	if nrgba, ok := m.(*image.NRGBA); ok {
		return nrgba
	}

	img := image.NewNRGBA(m.Bounds())

	for x := m.Bounds().Min.X; x < m.Bounds().Max.X; x++ {
		for y := m.Bounds().Min.Y; y < m.Bounds().Max.Y; y++ {
			px := m.At(x, y)
			px = color.NRGBAModel.Convert(px)
			img.Set(x, y, px)
		}
	}

	return img
}

// BuildNRGBA rebuilds an *image.NRGBA from a raw pixel buffer of
// width*height*channels bytes (channels inferred from the buffer length).
// 3-channel input is treated as opaque.
func BuildNRGBA(pixels []byte, width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	if width == 0 || height == 0 {
		return img
	}
	channels := len(pixels) / (width * height)

	i := 0
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := color.NRGBA{R: pixels[i], G: pixels[i+1], B: pixels[i+2], A: 255}
			if channels == 4 {
				c.A = pixels[i+3]
			}
			img.SetNRGBA(x, y, c)
			i += channels
		}
	}
	return img
}
