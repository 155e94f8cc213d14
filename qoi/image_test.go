package qoi

import (
	"bytes"
	"image"
	"image/color"
	"testing"
)

func buildTestNRGBA() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	colors := []color.NRGBA{
		{R: 10, G: 20, B: 30, A: 255},
		{R: 10, G: 20, B: 30, A: 255},
		{R: 200, G: 0, B: 0, A: 128},
		{R: 0, G: 0, B: 0, A: 255},
		{R: 0, G: 0, B: 0, A: 255},
		{R: 1, G: 2, B: 3, A: 255},
	}
	i := 0
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			img.SetNRGBA(x, y, colors[i])
			i++
		}
	}
	return img
}

func TestEncodeDecodeImageRoundTrip(t *testing.T) {
	src := buildTestNRGBA()

	var buf bytes.Buffer
	if err := EncodeImage(&buf, src); err != nil {
		t.Fatalf("EncodeImage: %v", err)
	}

	got, err := DecodeImage(&buf)
	if err != nil {
		t.Fatalf("DecodeImage: %v", err)
	}

	gotNRGBA, ok := got.(*image.NRGBA)
	if !ok {
		t.Fatalf("DecodeImage returned %T, want *image.NRGBA", got)
	}
	if gotNRGBA.Bounds() != src.Bounds() {
		t.Fatalf("bounds = %v, want %v", gotNRGBA.Bounds(), src.Bounds())
	}
	b := src.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			want := src.NRGBAAt(x, y)
			got := gotNRGBA.NRGBAAt(x, y)
			if got != want {
				t.Fatalf("pixel (%d,%d) = %+v, want %+v", x, y, got, want)
			}
		}
	}
}

func TestDecodeImageConfig(t *testing.T) {
	src := buildTestNRGBA()
	var buf bytes.Buffer
	if err := EncodeImage(&buf, src); err != nil {
		t.Fatalf("EncodeImage: %v", err)
	}

	cfg, err := DecodeImageConfig(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("DecodeImageConfig: %v", err)
	}
	if cfg.Width != 3 || cfg.Height != 2 {
		t.Fatalf("cfg = %+v, want 3x2", cfg)
	}
}

func TestRegisteredWithStandardLibrary(t *testing.T) {
	src := buildTestNRGBA()
	var buf bytes.Buffer
	if err := EncodeImage(&buf, src); err != nil {
		t.Fatalf("EncodeImage: %v", err)
	}

	_, format, err := image.Decode(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("image.Decode: %v", err)
	}
	if format != "qoi" {
		t.Fatalf("format = %q, want %q", format, "qoi")
	}
}
