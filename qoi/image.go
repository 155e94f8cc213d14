package qoi

import (
	"image"
	"image/color"
	"io"

	"github.com/qoicodec/qoi/imgconv"
)

func init() {
	image.RegisterFormat("qoi", magic, DecodeImage, DecodeImageConfig)
}

// EncodeImage writes img to w as a QOI stream. Any image.Image may be
// passed; images that are not already *image.NRGBA are normalized to one
// via imgconv.ToNRGBA, which may be lossy for exotic color models exactly
// as the standard library's own image encoders are. Once normalized, the
// pixel buffer is read straight out of the NRGBA's Pix/Stride rather than
// walking At(x, y) a second time.
func EncodeImage(w io.Writer, img image.Image) error {
	nrgba := imgconv.ToNRGBA(img)
	b := nrgba.Bounds()
	width, height := b.Dx(), b.Dy()

	pixels := make([]byte, width*height*4)
	rowBytes := width * 4
	for y := 0; y < height; y++ {
		off := y * nrgba.Stride
		copy(pixels[y*rowBytes:(y+1)*rowBytes], nrgba.Pix[off:off+rowBytes])
	}

	h := Header{
		Width:      uint32(width),
		Height:     uint32(height),
		Channels:   4,
		Colorspace: ColorspaceSRGB,
	}
	_, err := EncodeTo(w, h, pixels, nil)
	return err
}

// DecodeImage reads a QOI stream from r and returns it as an *image.NRGBA.
// It matches the signature image.RegisterFormat requires and is registered
// under the "qoi" format name in this package's init function.
func DecodeImage(r io.Reader) (image.Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &SourceError{Err: err}
	}
	h, pixels, err := Decode(data, 4, nil)
	if err != nil {
		return nil, err
	}
	return imgconv.BuildNRGBA(pixels, int(h.Width), int(h.Height)), nil
}

// DecodeImageConfig reads just enough of r to report the image's
// dimensions and color model, without decoding any pixels.
func DecodeImageConfig(r io.Reader) (image.Config, error) {
	var hdr [HeaderSize]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return image.Config{}, &SourceError{Err: err}
	}
	h, err := DecodeHeader(hdr[:])
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{
		ColorModel: color.NRGBAModel,
		Width:      int(h.Width),
		Height:     int(h.Height),
	}, nil
}
