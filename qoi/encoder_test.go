package qoi

import (
	"bytes"
	"errors"
	"testing"
)

// header4 builds the 4-channel sRGB header for a w x h image. It does not
// validate w and h, so it can also build the invalid headers used below.
func header4(w, h uint32) Header {
	return Header{Width: w, Height: h, Channels: 4, Colorspace: ColorspaceSRGB}
}

func encodeBody(t *testing.T, h Header, pixels []byte) []byte {
	t.Helper()
	dst := make([]byte, EncodedSizeLimit(h.Width, h.Height, h.Channels))
	n, err := EncodeToSlice(dst, h, pixels, nil)
	if err != nil {
		t.Fatalf("EncodeToSlice: %v", err)
	}
	return dst[HeaderSize : n-endMarkerSize]
}

func TestEncodeConcreteScenarios(t *testing.T) {
	tests := []struct {
		name     string
		w, h     uint32
		pixels   []byte
		wantBody []byte
	}{
		{
			name:     "single opaque black pixel is a run of one",
			w:        1,
			h:        1,
			pixels:   []byte{0, 0, 0, 255},
			wantBody: []byte{0xC0},
		},
		{
			name:     "two identical opaque black pixels is a run of two",
			w:        2,
			h:        1,
			pixels:   []byte{0, 0, 0, 255, 0, 0, 0, 255},
			wantBody: []byte{0xC1},
		},
		{
			name: "diff boundary pixel encodes as a single DIFF byte",
			w:    2,
			h:    1,
			// p1 forces RGB (dg=100 is outside LUMA's -32..31 range),
			// p2 - p1 = (-1, +1, -2), each within DIFF's -2..1 range.
			pixels:   []byte{100, 100, 100, 255, 99, 101, 98, 255},
			wantBody: []byte{opRGB, 100, 100, 100, 0x5C},
		},
		{
			name: "luma boundary pixel encodes as two LUMA bytes",
			w:    2,
			h:    1,
			// p2 - p1 = (7, 10, 14): dg=10, dr-dg=-3, db-dg=+4.
			pixels:   []byte{50, 50, 50, 255, 57, 60, 64, 255},
			wantBody: []byte{opRGB, 50, 50, 50, 0xAA, 0x5C},
		},
		{
			name: "alpha-only change always forces RGBA",
			w:    2,
			h:    1,
			// RGB is unchanged and would fit in a 1-byte DIFF if alpha
			// could be ignored, but alpha differs so RGBA (5 bytes) is
			// mandatory: DIFF/LUMA/RGB can none of them carry alpha.
			pixels:   []byte{10, 20, 30, 255, 10, 20, 30, 100},
			wantBody: []byte{opRGB, 10, 20, 30, opRGBA, 10, 20, 30, 100},
		},
		{
			name: "run longer than 62 splits into two RUN chunks",
			w:    64,
			h:    1,
			pixels: func() []byte {
				p := make([]byte, 64*4)
				for i := 0; i < 64; i++ {
					p[i*4], p[i*4+1], p[i*4+2], p[i*4+3] = 5, 5, 5, 255
				}
				return p
			}(),
			wantBody: []byte{0xA5, 0x88, 0xFD, 0xC0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := encodeBody(t, header4(tt.w, tt.h), tt.pixels)
			if !bytes.Equal(got, tt.wantBody) {
				t.Errorf("body = % X, want % X", got, tt.wantBody)
			}
		})
	}
}

func TestEncodeIndexHit(t *testing.T) {
	// Third pixel repeats the first, which was stored in the index when it
	// was encoded. The middle pixel's delta from the first is a
	// valid LUMA (dg=30, dr-dg=0, db-dg=0), not RGB: the selection grammar
	// always prefers the cheapest opcode that can represent the delta.
	h := header4(3, 1)
	pixels := []byte{
		10, 20, 30, 255,
		40, 50, 60, 255,
		10, 20, 30, 255,
	}
	got := encodeBody(t, h, pixels)

	p1 := rgbaPixel(10, 20, 30, 255)
	want := []byte{opRGB, 10, 20, 30, 0xBE, 0x88, opIndex | p1.hash()}
	if !bytes.Equal(got, want) {
		t.Fatalf("body = % X, want % X", got, want)
	}
}

func TestEncodeToSliceErrors(t *testing.T) {
	t.Run("wrong pixel buffer length", func(t *testing.T) {
		h := header4(2, 2)
		dst := make([]byte, EncodedSizeLimit(2, 2, 4))
		_, err := EncodeToSlice(dst, h, make([]byte, 3), nil)
		if err != ErrInputBufferSize {
			t.Fatalf("err = %v, want ErrInputBufferSize", err)
		}
	})

	t.Run("destination too short", func(t *testing.T) {
		h := header4(4, 4)
		pixels := make([]byte, 4*4*4)
		dst := make([]byte, HeaderSize)
		_, err := EncodeToSlice(dst, h, pixels, nil)
		if err != ErrOutputTooShort {
			t.Fatalf("err = %v, want ErrOutputTooShort", err)
		}
	})

	t.Run("invalid header", func(t *testing.T) {
		h := header4(0, 4)
		dst := make([]byte, 64)
		_, err := EncodeToSlice(dst, h, nil, nil)
		var he *HeaderError
		if !errors.As(err, &he) || he.Kind != EmptyImage {
			t.Fatalf("err = %v, want EmptyImage HeaderError", err)
		}
	})
}
