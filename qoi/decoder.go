package qoi

// byteSource is the pull-style origin a chunk stream is read from.
// sliceSource and streamSource are its two implementations.
type byteSource interface {
	// readN returns the next n bytes and advances past them. The
	// returned slice is only valid until the next call.
	readN(n int) ([]byte, error)
}

// sliceSource reads from a caller-owned slice with no copying.
type sliceSource struct {
	buf []byte
}

func (s *sliceSource) readN(n int) ([]byte, error) {
	if len(s.buf) < n {
		return nil, ErrUnexpectedEOF
	}
	b := s.buf[:n]
	s.buf = s.buf[n:]
	return b, nil
}

// decoderState is the decoder's running state, the mirror image of
// encoderState: the previous (most recently reconstructed) pixel and the
// 64-entry index cache.
type decoderState struct {
	prev  Pixel
	index [indexSize]Pixel
}

func newDecoderState() decoderState {
	return decoderState{prev: startPixel}
}

// decodePixels reconstructs n pixels from source, writing channels bytes
// per pixel into out, which must be exactly n*channels bytes long.
func decodePixels(source byteSource, out []byte, channels, n int, st *decoderState) error {
	for i := 0; i < n; i++ {
		tagBuf, err := source.readN(1)
		if err != nil {
			return err
		}
		tag := tagBuf[0]

		switch {
		case tag == opRGB: // exact byte, tested before the 11_xxxxxx RUN prefix
			b, err := source.readN(3)
			if err != nil {
				return err
			}
			cur := Pixel{R: b[0], G: b[1], B: b[2], A: st.prev.A}
			st.index[cur.hash()] = cur
			st.prev = cur
			writePixel(out, i, channels, cur)

		case tag == opRGBA: // exact byte, tested before the 11_xxxxxx RUN prefix
			b, err := source.readN(4)
			if err != nil {
				return err
			}
			cur := Pixel{R: b[0], G: b[1], B: b[2], A: b[3]}
			st.index[cur.hash()] = cur
			st.prev = cur
			writePixel(out, i, channels, cur)

		case tag&tagMask == opIndex:
			cur := st.index[tag&sixBits]
			st.prev = cur
			writePixel(out, i, channels, cur)

		case tag&tagMask == opDiff:
			dr := int8((tag>>4)&twoBits) - 2
			dg := int8((tag>>2)&twoBits) - 2
			db := int8(tag&twoBits) - 2
			cur := st.prev.addDiff(dr, dg, db)
			st.index[cur.hash()] = cur
			st.prev = cur
			writePixel(out, i, channels, cur)

		case tag&tagMask == opLuma:
			b, err := source.readN(1)
			if err != nil {
				return err
			}
			dg := int8(tag&sixBits) - 32
			dr := dg - 8 + int8((b[0]>>4)&fourBits)
			db := dg - 8 + int8(b[0]&fourBits)
			cur := st.prev.addDiff(dr, dg, db)
			st.index[cur.hash()] = cur
			st.prev = cur
			writePixel(out, i, channels, cur)

		default: // opRun: only tag shape left once the exact RGB/RGBA bytes are ruled out
			runLen := int(tag&sixBits) + 1
			if runLen > n-i {
				return ErrRunOverflow
			}
			for k := 0; k < runLen; k++ {
				writePixel(out, i+k, channels, st.prev)
			}
			i += runLen - 1
		}
	}
	return nil
}

func writePixel(dst []byte, i, channels int, p Pixel) {
	off := i * channels
	px := dst[off : off+channels]
	px[0], px[1], px[2] = p.R, p.G, p.B
	if channels == 4 {
		px[3] = p.A
	}
}

// DecodeToSlice decodes src (a full QOI stream: header, chunks, end
// marker) into dst. If channels is 0 the header's own Channels field
// governs the output width; otherwise channels (3 or 4) overrides it,
// per spec §4.4's pixel-width mismatch policy. It allocates nothing.
func DecodeToSlice(dst, src []byte, channels uint8, opts *Options) (Header, int, error) {
	h, err := DecodeHeader(src)
	if err != nil {
		return h, 0, err
	}
	if channels == 0 {
		channels = h.Channels
	}
	if channels != 3 && channels != 4 {
		return h, 0, &HeaderError{Kind: InvalidChannels}
	}

	n := h.NPixels()
	want := n * int(channels)
	if len(dst) < want {
		return h, 0, ErrOutputTooShort
	}

	source := &sliceSource{buf: src[HeaderSize:]}
	st := newDecoderState()
	if err := decodePixels(source, dst[:want], int(channels), n, &st); err != nil {
		return h, 0, err
	}
	return h, want, nil
}
