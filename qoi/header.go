package qoi

import "encoding/binary"

// HeaderSize is the fixed, wire-exact size of a QOI header.
const HeaderSize = 14

// MaxPixels is the largest width*height the format allows.
const MaxPixels = 400_000_000

// magic is the 4-byte ASCII signature every QOI stream starts with.
const magic = "qoif"

// Colorspace values stored in a Header's Colorspace field.
const (
	ColorspaceSRGB   uint8 = 0
	ColorspaceLinear uint8 = 1
)

// Header describes an image's dimensions and pixel layout, exactly as
// stored in the first 14 bytes of a QOI stream.
type Header struct {
	Width      uint32
	Height     uint32
	Channels   uint8
	Colorspace uint8
}

// NPixels returns Width*Height as an int, the number of pixels the stream
// encodes. Callers must have already validated the header (via
// DecodeHeader or EncodeHeader) before calling this to avoid overflow on
// 32-bit platforms; both validators already reject headers where the
// product would exceed MaxPixels.
func (h Header) NPixels() int {
	return int(h.Width) * int(h.Height)
}

func (h Header) validate() error {
	if h.Width == 0 || h.Height == 0 {
		return &HeaderError{Kind: EmptyImage}
	}
	if uint64(h.Width)*uint64(h.Height) > MaxPixels {
		return &HeaderError{Kind: ImageTooLarge}
	}
	if h.Channels != 3 && h.Channels != 4 {
		return &HeaderError{Kind: InvalidChannels}
	}
	if h.Colorspace != ColorspaceSRGB && h.Colorspace != ColorspaceLinear {
		return &HeaderError{Kind: InvalidColorspace}
	}
	return nil
}

// EncodeHeader validates h and returns its 14-byte wire encoding.
func EncodeHeader(h Header) ([HeaderSize]byte, error) {
	var out [HeaderSize]byte
	if err := h.validate(); err != nil {
		return out, err
	}
	copy(out[0:4], magic)
	binary.BigEndian.PutUint32(out[4:8], h.Width)
	binary.BigEndian.PutUint32(out[8:12], h.Height)
	out[12] = h.Channels
	out[13] = h.Colorspace
	return out, nil
}

// DecodeHeader parses and validates the first HeaderSize bytes of b.
// Validation order is magic, then empty-image, then image-too-large, then
// channels, then colorspace — any other order would surface the wrong
// HeaderError kind for a stream that fails more than one check at once.
func DecodeHeader(b []byte) (Header, error) {
	var h Header
	if len(b) < HeaderSize {
		return h, ErrUnexpectedEOF
	}
	if string(b[0:4]) != magic {
		return h, &HeaderError{Kind: BadMagic}
	}
	h.Width = binary.BigEndian.Uint32(b[4:8])
	h.Height = binary.BigEndian.Uint32(b[8:12])
	h.Channels = b[12]
	h.Colorspace = b[13]

	if h.Width == 0 || h.Height == 0 {
		return h, &HeaderError{Kind: EmptyImage}
	}
	if uint64(h.Width)*uint64(h.Height) > MaxPixels {
		return h, &HeaderError{Kind: ImageTooLarge}
	}
	if h.Channels != 3 && h.Channels != 4 {
		return h, &HeaderError{Kind: InvalidChannels}
	}
	if h.Colorspace != ColorspaceSRGB && h.Colorspace != ColorspaceLinear {
		return h, &HeaderError{Kind: InvalidColorspace}
	}
	return h, nil
}
