package websocket

import (
	"math"
	"slices"
)

// Write encodes the message in *msg as one or more frames appended to *out.
//
// RFC 6455 Section 5.2 / 5.3 / 5.4: Framing, masking and fragmentation.
//
// Steps:
//  1. Split *msg into chunks of at most MaxPayload bytes (0 = one chunk)
//  2. Give the first chunk opcode op, later chunks OpcodeContinuation
//  3. Set FIN on the last chunk only
//  4. Mask each chunk with its own fresh key unless masking is disabled
//
// op must be text, binary, close, ping or pong; any other value is sent as
// binary. An empty message still produces exactly one FIN frame, which is
// how bodiless control frames are sent. RSV bits are always zero.
//
// On success *msg is emptied (its capacity is kept for reuse). If *out
// cannot grow by the encoded size Write returns ErrBufferFull and leaves
// both buffers untouched.
func (c *Codec) Write(msg, out *[]byte, op Opcode) error {
	src := *msg

	size := c.encodedSize(uint64(len(src)))
	if size < 0 || !c.fits(len(*out), size) {
		return ErrBufferFull
	}

	// Nothing below can fail, so frames go straight into *out's spare capacity.
	dst := slices.Grow(*out, size)
	pos := 0
	for {
		n := len(src) - pos
		if c.maxPayload > 0 && uint64(n) > c.maxPayload {
			n = int(c.maxPayload)
		}

		h := Header{
			Fin:    pos+n == len(src),
			Opcode: OpcodeContinuation,
			Masked: c.mask,
			Length: uint64(n),
		}
		if pos == 0 {
			h.Opcode = op.outgoing()
		}
		if h.Masked {
			h.Mask = c.keys.MaskKey()
		}

		dst = appendHeader(dst, h, c.order)
		start := len(dst)
		dst = append(dst, src[pos:pos+n]...)
		if h.Masked {
			applyMask(dst[start:], h.Mask, 0)
		}

		pos += n
		if h.Fin {
			break
		}
	}

	*out = dst
	*msg = src[:0]
	return nil
}

// encodedSize returns the number of wire bytes Write produces for a message
// of n bytes, or -1 if that does not fit in an int.
func (c *Codec) encodedSize(n uint64) int {
	chunk := n
	if c.maxPayload > 0 && c.maxPayload < n {
		chunk = c.maxPayload
	}

	frames := uint64(1)
	if chunk > 0 {
		frames = (n + chunk - 1) / chunk
	}

	last := n - (frames-1)*chunk
	full := Header{Masked: c.mask, Length: chunk}
	tail := Header{Masked: c.mask, Length: last}

	overhead := (frames-1)*uint64(full.Size()) + uint64(tail.Size())
	total := n + overhead
	if total < n || total > math.MaxInt {
		return -1
	}
	return int(total)
}
