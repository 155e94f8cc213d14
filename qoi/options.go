package qoi

// Options configures the encoder and decoder's optional behaviour. The
// zero value (and a nil *Options) is the fast, default configuration.
type Options struct {
	// Reference forces the encoder to match the canonical C encoder
	// byte-for-byte, even in the one case (a terminated run of length 1)
	// where the default mode substitutes an equivalent, shorter-to-select
	// INDEX chunk. See SPEC_FULL.md §4.3.
	Reference bool

	// VerifyTrailer asks a streaming or heap-tier decode to check that the
	// 8 bytes following the last pixel are the end marker, returning
	// ErrTrailingJunk if not. Slice-tier decodes ignore this field: the
	// caller already knows exactly how much input there is.
	VerifyTrailer bool
}

func (o *Options) reference() bool {
	return o != nil && o.Reference
}

func (o *Options) verifyTrailer() bool {
	return o != nil && o.VerifyTrailer
}
