package qoi

import "golang.org/x/exp/slices"

// Encode allocates and returns the QOI encoding of pixels. It is a thin
// convenience wrapper over EncodeToSlice: the worst-case buffer is
// allocated via EncodedSizeLimit, then trimmed to the bytes actually
// written with slices.Clone so the returned slice doesn't keep the
// worst-case backing array's unused tail alive.
func Encode(h Header, pixels []byte, opts *Options) ([]byte, error) {
	dst := make([]byte, EncodedSizeLimit(h.Width, h.Height, h.Channels))
	n, err := EncodeToSlice(dst, h, pixels, opts)
	if err != nil {
		return nil, err
	}
	return slices.Clone(dst[:n]), nil
}

// Decode allocates and returns the pixel buffer decoded from src. If
// channels is 0 the stream's own header.Channels governs the output
// width.
func Decode(src []byte, channels uint8, opts *Options) (Header, []byte, error) {
	h, err := DecodeHeader(src)
	if err != nil {
		return h, nil, err
	}
	if channels == 0 {
		channels = h.Channels
	}
	if channels != 3 && channels != 4 {
		return h, nil, &HeaderError{Kind: InvalidChannels}
	}
	dst := make([]byte, h.NPixels()*int(channels))
	source := &sliceSource{buf: src[HeaderSize:]}
	st := newDecoderState()
	if err := decodePixels(source, dst, int(channels), h.NPixels(), &st); err != nil {
		return h, nil, err
	}
	if opts.verifyTrailer() {
		trailer, err := source.readN(endMarkerSize)
		if err != nil {
			return h, nil, err
		}
		if !slices.Equal(trailer, endMarker[:]) {
			return h, nil, ErrTrailingJunk
		}
	}
	return h, dst, nil
}
