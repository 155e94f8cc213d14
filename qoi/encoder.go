package qoi

// byteSink is the push-style destination a chunk stream is written to.
// sliceSink and streamSink are its two implementations, corresponding to
// the slice and streaming I/O tiers described in SPEC_FULL.md §4.5.
type byteSink interface {
	write(b []byte) error
}

// sliceSink writes into a caller-owned, pre-sized slice. Every write is
// bounds-checked once against the remaining capacity (dst[off:]) rather
// than byte-by-byte, so the compiler can prove the subsequent copy safe.
type sliceSink struct {
	dst []byte
	off int
}

func (s *sliceSink) write(b []byte) error {
	room := s.dst[s.off:]
	if len(room) < len(b) {
		return ErrOutputTooShort
	}
	copy(room[:len(b)], b)
	s.off += len(b)
	return nil
}

// encoderState is the encoder's running state: the previous pixel, the
// 64-entry index cache, the in-progress run length, and the bookkeeping
// the reference-mode substitution needs. It lives on the stack for the
// duration of one encode call and is never retained.
type encoderState struct {
	prev         Pixel
	index        [indexSize]Pixel
	run          int
	indexAllowed bool
	hashPrev     uint8
	reference    bool
}

func newEncoderState(reference bool) encoderState {
	return encoderState{prev: startPixel, reference: reference}
}

// encodePixels runs the chunk-selection grammar (spec §4.3) over n pixels
// read from buf (channels bytes each) and writes the resulting chunks to
// sink. It does not write the header or the end marker; callers append
// those around it.
func encodePixels(sink byteSink, buf []byte, channels, n int, st *encoderState) error {
	var chunk [5]byte
	for i := 0; i < n; i++ {
		cur := readPixel(buf, i, channels)

		if cur == st.prev {
			st.run++
			if st.run == maxRunLength {
				if err := sink.write([]byte{opRun | uint8(st.run-1)}); err != nil {
					return err
				}
				st.run = 0
			}
			continue
		}

		if st.run > 0 {
			if !st.reference && st.run == 1 && st.indexAllowed {
				if err := sink.write([]byte{opIndex | st.hashPrev}); err != nil {
					return err
				}
			} else if err := sink.write([]byte{opRun | uint8(st.run-1)}); err != nil {
				return err
			}
			st.run = 0
		}

		st.indexAllowed = true
		h := cur.hash()
		st.hashPrev = h

		if st.index[h] == cur {
			if err := sink.write([]byte{opIndex | h}); err != nil {
				return err
			}
		} else {
			st.index[h] = cur
			n, err := encodeNewPixel(chunk[:], cur, st.prev)
			if err != nil {
				return err
			}
			if err := sink.write(chunk[:n]); err != nil {
				return err
			}
		}
		st.prev = cur
	}

	if st.run > 0 {
		if err := sink.write([]byte{opRun | uint8(st.run-1)}); err != nil {
			return err
		}
		st.run = 0
	}
	return nil
}

// encodeNewPixel fills chunk with the DIFF/LUMA/RGB/RGBA encoding of cur
// relative to prev (cur is known to not be an index hit) and returns how
// many bytes of chunk were used.
func encodeNewPixel(chunk []byte, cur, prev Pixel) (int, error) {
	if cur.A != prev.A {
		chunk[0] = opRGBA
		chunk[1] = cur.R
		chunk[2] = cur.G
		chunk[3] = cur.B
		chunk[4] = cur.A
		return 5, nil
	}

	dr, dg, db := cur.diff(prev)
	if inRange(dr, -2, 1) && inRange(dg, -2, 1) && inRange(db, -2, 1) {
		chunk[0] = opDiff | uint8(dr+2)<<4 | uint8(dg+2)<<2 | uint8(db+2)
		return 1, nil
	}

	drDg := dr - dg
	dbDg := db - dg
	if inRange(dg, -32, 31) && inRange(drDg, -8, 7) && inRange(dbDg, -8, 7) {
		chunk[0] = opLuma | uint8(dg+32)
		chunk[1] = uint8(drDg+8)<<4 | uint8(dbDg+8)
		return 2, nil
	}

	chunk[0] = opRGB
	chunk[1] = cur.R
	chunk[2] = cur.G
	chunk[3] = cur.B
	return 4, nil
}

func inRange(v int8, lo, hi int8) bool {
	return v >= lo && v <= hi
}

func readPixel(buf []byte, i, channels int) Pixel {
	off := i * channels
	if channels == 3 {
		return rgbPixel(buf[off], buf[off+1], buf[off+2])
	}
	return rgbaPixel(buf[off], buf[off+1], buf[off+2], buf[off+3])
}

// EncodeToSlice encodes pixels (a raw buffer of h.Width*h.Height*h.Channels
// bytes) into dst and returns the number of bytes written. It allocates
// nothing; dst must be at least EncodedSizeLimit(h.Width, h.Height,
// h.Channels) bytes to be guaranteed to succeed, per spec §8's "slice
// size bound" property.
func EncodeToSlice(dst []byte, h Header, pixels []byte, opts *Options) (int, error) {
	if err := h.validate(); err != nil {
		return 0, err
	}
	n := h.NPixels()
	if len(pixels) != n*int(h.Channels) {
		return 0, ErrInputBufferSize
	}

	header, err := EncodeHeader(h)
	if err != nil {
		return 0, err
	}

	sink := &sliceSink{dst: dst}
	if err := sink.write(header[:]); err != nil {
		return 0, err
	}

	st := newEncoderState(opts.reference())
	if err := encodePixels(sink, pixels, int(h.Channels), n, &st); err != nil {
		return 0, err
	}
	if err := sink.write(endMarker[:]); err != nil {
		return 0, err
	}
	return sink.off, nil
}
