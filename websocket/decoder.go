package websocket

// Read decodes the next message from the front of *in and appends its
// payload to *out.
//
// RFC 6455 Section 5.2 / 5.4: Base framing and fragmentation.
//
// Steps:
//  1. Parse a frame header (base, extended length, masking key)
//  2. Copy the payload, unmasking it when a key is present
//  3. Repeat until a frame with FIN=1 has been consumed
//  4. Trim the consumed bytes from *in and append the message to *out
//
// The returned opcode is the one declared by the first frame, control and
// reserved opcodes included. Continuation frames never replace it. Control
// frames get no special treatment: their payload is returned like any other.
//
// Returns:
//   - ErrIncomplete: *in ends before the FIN frame is complete. Append more
//     bytes and call again.
//   - ErrBufferFull: *out cannot grow by the message length.
//
// On error neither buffer is modified.
func (c *Codec) Read(in, out *[]byte) (Opcode, error) {
	src := *in
	pos := 0

	var (
		opcode Opcode
		msg    []byte
	)

	for first := true; ; first = false {
		h, n, ok := parseHeader(src[pos:], c.order)
		if !ok {
			return 0, ErrIncomplete
		}
		if first {
			opcode = h.Opcode
		}
		pos += n

		if h.Length > uint64(len(src)-pos) {
			return 0, ErrIncomplete
		}
		end := pos + int(h.Length)

		start := len(msg)
		msg = append(msg, src[pos:end]...)
		if h.Masked {
			applyMask(msg[start:], h.Mask, 0)
		}
		pos = end

		if h.Fin {
			break
		}
	}

	if !c.fits(len(*out), len(msg)) {
		return 0, ErrBufferFull
	}

	*out = append(*out, msg...)
	if pos == len(src) {
		*in = src[:0]
	} else {
		*in = src[pos:]
	}
	return opcode, nil
}
