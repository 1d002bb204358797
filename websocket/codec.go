package websocket

import "math"

// Options configures a Codec.
//
// All fields are optional. Zero values use sensible defaults.
type Options struct {
	// MaxPayload caps the payload of each frame produced by Write.
	// Longer messages are fragmented into continuation frames.
	// 0 = unlimited (one frame per message).
	MaxPayload uint64

	// DisableMasking makes Write emit unmasked frames.
	// RFC 6455 Section 5.1: clients MUST mask, servers MUST NOT.
	// Default: masking enabled.
	DisableMasking bool

	// LengthOrder selects the byte order of extended length fields.
	// Default: NetworkOrder.
	LengthOrder LengthOrder

	// MaxBufferSize is the largest length a destination buffer may reach.
	// Read and Write fail with ErrBufferFull rather than grow past it.
	// 0 = math.MaxInt.
	MaxBufferSize int

	// KeySource supplies masking keys.
	// nil = process-wide mutex-guarded pseudo-random generator.
	KeySource KeySource
}

// Codec translates between WebSocket wire bytes and application messages.
//
// A Codec holds configuration only. It is safe for concurrent use as long
// as no buffer is handed to two calls at the same time.
type Codec struct {
	maxPayload uint64
	mask       bool
	order      wireOrder
	maxBuffer  int
	keys       KeySource
}

// NewCodec creates a Codec from opts. nil opts selects all defaults.
func NewCodec(opts *Options) *Codec {
	if opts == nil {
		opts = &Options{}
	}

	c := &Codec{
		maxPayload: opts.MaxPayload,
		mask:       !opts.DisableMasking,
		order:      opts.LengthOrder.byteOrder(),
		maxBuffer:  opts.MaxBufferSize,
		keys:       opts.KeySource,
	}
	if c.maxBuffer <= 0 {
		c.maxBuffer = math.MaxInt
	}
	if c.keys == nil {
		c.keys = defaultKeySource
	}
	return c
}

// fits reports whether a buffer of length have can grow by n bytes.
func (c *Codec) fits(have, n int) bool {
	return have <= c.maxBuffer && n <= c.maxBuffer-have
}

var defaultCodec = NewCodec(nil)

// Read decodes one message from in into out with the default Codec.
// See Codec.Read.
func Read(in, out *[]byte) (Opcode, error) {
	return defaultCodec.Read(in, out)
}

// Write encodes msg into out as a single masked frame with the default
// Codec. See Codec.Write.
func Write(msg, out *[]byte, op Opcode) error {
	return defaultCodec.Write(msg, out, op)
}
