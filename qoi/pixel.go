package qoi

// Pixel is the atomic unit the codec operates on: an ordered (r, g, b, a)
// 4-tuple of 8-bit channel values. For 3-channel sources/sinks the alpha
// channel is implicitly 255.
type Pixel struct {
	R, G, B, A uint8
}

// startPixel is the running-state seed for both the encoder and the
// decoder: prev begins life as opaque black.
var startPixel = Pixel{R: 0, G: 0, B: 0, A: 255}

// zeroPixel is what every index slot holds before it is first written.
// It is deliberately not startPixel: slot hash(startPixel) starts zeroed
// like every other slot, which is observable (see pixel_test.go).
var zeroPixel = Pixel{}

// rgbPixel builds a pixel with alpha fixed at 255, the value used when
// reading 3-channel input.
func rgbPixel(r, g, b uint8) Pixel {
	return Pixel{R: r, G: g, B: b, A: 255}
}

func rgbaPixel(r, g, b, a uint8) Pixel {
	return Pixel{R: r, G: g, B: b, A: a}
}

// hash computes the 6-bit index-cache slot for p. The multiplications wrap
// in 8 bits by construction (each operand and its constant factor both fit
// comfortably in uint16, so Go's normal uint8 arithmetic already wraps
// exactly the way the format requires); the final & 0x3f keeps every
// access into the 64-entry cache a compile-time-provable bound rather than
// a runtime mod.
func (p Pixel) hash() uint8 {
	return (p.R*3 + p.G*5 + p.B*7 + p.A*11) & 0x3f
}

// diff returns the per-channel wrapping difference p - prev, each channel
// reinterpreted as a signed 8-bit value so DIFF/LUMA range tests can
// compare against the format's small signed intervals.
func (p Pixel) diff(prev Pixel) (dr, dg, db int8) {
	dr = int8(p.R - prev.R)
	dg = int8(p.G - prev.G)
	db = int8(p.B - prev.B)
	return
}

// addDiff applies a per-channel wrapping signed delta to p, the decode-side
// inverse of diff.
func (p Pixel) addDiff(dr, dg, db int8) Pixel {
	p.R += uint8(dr)
	p.G += uint8(dg)
	p.B += uint8(db)
	return p
}
