package qoi

import (
	"bufio"
	"io"
)

// streamSink adapts an io.Writer into a byteSink, wrapping write failures
// in *SinkError so callers can errors.As down to the underlying cause.
type streamSink struct {
	w io.Writer
	n int
}

func (s *streamSink) write(b []byte) error {
	nw, err := s.w.Write(b)
	s.n += nw
	if err != nil {
		return &SinkError{Err: err}
	}
	return nil
}

// streamSource adapts an io.Reader into a byteSource. Reads of genuinely
// fewer bytes than requested (io.EOF / io.ErrUnexpectedEOF) are reported
// as the stream-shape ErrUnexpectedEOF rather than wrapped as a source
// failure, matching spec §7's error taxonomy (EOF is a stream-shape
// error, not an I/O error).
type streamSource struct {
	r   io.Reader
	buf [HeaderSize]byte // large enough for any single chunk read or the header
}

func (s *streamSource) readN(n int) ([]byte, error) {
	b := s.buf[:n]
	if _, err := io.ReadFull(s.r, b); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, ErrUnexpectedEOF
		}
		return nil, &SourceError{Err: err}
	}
	return b, nil
}

// EncodeTo writes header and the QOI encoding of pixels to w, returning the
// number of bytes written. Unlike EncodeToSlice, partial output may already
// be on w if an error is returned midway (per spec §5's cancellation
// contract: output is indeterminate on error).
func EncodeTo(w io.Writer, h Header, pixels []byte, opts *Options) (int, error) {
	if err := h.validate(); err != nil {
		return 0, err
	}
	n := h.NPixels()
	if len(pixels) != n*int(h.Channels) {
		return 0, ErrInputBufferSize
	}

	headerBytes, err := EncodeHeader(h)
	if err != nil {
		return 0, err
	}

	sink := &streamSink{w: w}
	if err := sink.write(headerBytes[:]); err != nil {
		return sink.n, err
	}

	st := newEncoderState(opts.reference())
	if err := encodePixels(sink, pixels, int(h.Channels), n, &st); err != nil {
		return sink.n, err
	}
	if err := sink.write(endMarker[:]); err != nil {
		return sink.n, err
	}
	return sink.n, nil
}

// DecodeFrom reads a full QOI stream from r and writes the decoded pixels
// into dst, exactly as DecodeToSlice does for an in-memory source. r is
// internally buffered since the chunk grammar reads in small (1-5 byte)
// increments, matching the bufio-wrapping every QOI decoder in the
// research corpus applies around its reader.
func DecodeFrom(r io.Reader, dst []byte, channels uint8, opts *Options) (Header, int, error) {
	br := bufio.NewReaderSize(r, 4096)
	source := &streamSource{r: br}

	headerBytes, err := source.readN(HeaderSize)
	if err != nil {
		return Header{}, 0, err
	}
	h, err := DecodeHeader(headerBytes)
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

	st := newDecoderState()
	if err := decodePixels(source, dst[:want], int(channels), n, &st); err != nil {
		return h, 0, err
	}

	if opts.verifyTrailer() {
		trailer, err := source.readN(endMarkerSize)
		if err != nil {
			return h, want, err
		}
		for i, b := range trailer {
			if b != endMarker[i] {
				return h, want, ErrTrailingJunk
			}
		}
	}
	return h, want, nil
}
