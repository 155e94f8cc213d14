// Package qoi implements a streaming encoder and decoder for the QOI
// (Quite OK Image) lossless raster format. It is bit-exact with the
// published QOI specification: decode(encode(p)) reproduces p exactly for
// any 8-bit-per-channel pixel buffer, three- or four-channel.
//
// The package exposes three additive tiers of entry points:
//
//   - slice tier (EncodeToSlice, DecodeToSlice, EncodedSizeLimit): no
//     allocation beyond buffers the caller already owns;
//   - streaming tier (EncodeTo, DecodeFrom): the same engine fed by an
//     io.Writer/io.Reader;
//   - heap tier (Encode, Decode): convenience wrappers that allocate and
//     return a fresh slice.
//
// A fourth entry point, EncodeImage/DecodeImage, bridges to the standard
// library's image.Image and is registered with image.RegisterFormat so
// image.Decode recognizes ".qoi" streams transparently.
package qoi

const (
	maxRunLength  = 62
	indexSize     = 64
	endMarkerSize = 8
)

// endMarker is the fixed 8-byte suffix terminating every QOI chunk stream.
var endMarker = [endMarkerSize]byte{0, 0, 0, 0, 0, 0, 0, 1}

// Chunk tag bytes and masks. RGB/RGBA overlap the 11_xxxxxx RUN tag space,
// so dispatch must test the two exact bytes before the two-bit prefix.
const (
	opIndex uint8 = 0b00_000000
	opDiff  uint8 = 0b01_000000
	opLuma  uint8 = 0b10_000000
	opRun   uint8 = 0b11_000000
	opRGB   uint8 = 0b1111_1110
	opRGBA  uint8 = 0b1111_1111
)

const (
	tagMask  uint8 = 0b11_000000
	sixBits  uint8 = 0b00_111111
	fourBits uint8 = 0b0000_1111
	twoBits  uint8 = 0b0000_0011
)

// EncodedSizeLimit returns the worst-case number of bytes EncodeToSlice
// could write for an image of the given dimensions and channel count: the
// header, one RGBA chunk per pixel (5 bytes for a 4-channel pixel, 4 for a
// 3-channel one, since it never needs the alpha byte), and the end marker.
func EncodedSizeLimit(width, height uint32, channels uint8) int {
	return HeaderSize + int(width)*int(height)*(int(channels)+1) + endMarkerSize
}
