package websocket

import (
	"encoding/binary"
	"fmt"
)

// Header sizes and payload length encoding thresholds (RFC 6455 Section 5.2).
const (
	// baseHeaderSize is the fixed FIN/RSV/opcode + MASK/length prefix.
	baseHeaderSize = 2

	// maskKeySize is the length of the masking key.
	maskKeySize = 4

	// MaxHeaderSize is the largest possible frame header:
	// base + 64-bit extended length + masking key.
	MaxHeaderSize = baseHeaderSize + 8 + maskKeySize

	// maxControlPayload is the maximum payload length for control frames.
	// RFC 6455 Section 5.5: Control frames must have payload <= 125 bytes.
	maxControlPayload = 125

	payloadLen7Bit  = 125 // 0-125: stored in 7 bits
	payloadLen16Bit = 126 // 126: followed by 16-bit length
	payloadLen64Bit = 127 // 127: followed by 64-bit length
)

// Bits of the base header.
const (
	finBit    = 0x80
	rsv1Bit   = 0x40
	rsv2Bit   = 0x20
	rsv3Bit   = 0x10
	opcodeBit = 0x0F
	maskBit   = 0x80
	lenBits   = 0x7F
)

// Header is the structured view of one frame header (RFC 6455 Section 5.2).
//
// Frame structure:
//
//	 0                   1                   2                   3
//	 0 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5 6 7 8 9 0 1
//	+-+-+-+-+-------+-+-------------+-------------------------------+
//	|F|R|R|R| opcode|M| Payload len |    Extended payload length    |
//	|I|S|S|S|  (4)  |A|     (7)     |             (16/64)           |
//	|N|V|V|V|       |S|             |   (if payload len==126/127)   |
//	| |1|2|3|       |K|             |                               |
//	+-+-+-+-+-------+-+-------------+ - - - - - - - - - - - - - - - +
//	|     Extended payload length continued, if payload len == 127  |
//	+ - - - - - - - - - - - - - - - +-------------------------------+
//	|                               |Masking-key, if MASK set to 1  |
//	+-------------------------------+-------------------------------+
//	| Masking-key (continued)       |          Payload Data         |
//	+-------------------------------- - - - - - - - - - - - - - - - +
//
// Bit 0 is the most significant bit of the first byte, whatever the host.
type Header struct {
	// Fin marks the final fragment of a message.
	Fin bool

	// Rsv1, Rsv2, Rsv3 are extension bits. Preserved when parsed,
	// never set by Write.
	Rsv1, Rsv2, Rsv3 bool

	// Opcode is the frame type as declared on the wire, reserved values included.
	Opcode Opcode

	// Masked reports whether a masking key follows the length fields.
	Masked bool

	// Length is the true payload length after extended-length decoding.
	Length uint64

	// Mask is the masking key; meaningful only when Masked is set.
	Mask [4]byte
}

// Size returns the number of bytes the header occupies on the wire.
func (h Header) Size() int {
	n := baseHeaderSize
	switch {
	case h.Length <= payloadLen7Bit:
	case h.Length <= 0xFFFF:
		n += 2
	default:
		n += 8
	}
	if h.Masked {
		n += maskKeySize
	}
	return n
}

// ParseHeader decodes the frame header at the start of buf using network
// byte order for extended lengths.
//
// Returns the header and the number of header bytes consumed, or
// ErrIncomplete when buf ends inside a header field.
func ParseHeader(buf []byte) (Header, int, error) {
	h, n, ok := parseHeader(buf, binary.BigEndian)
	if !ok {
		return Header{}, 0, ErrIncomplete
	}
	return h, n, nil
}

// AppendTo appends the wire encoding of h to dst using network byte order
// and the shortest length encoding.
func (h Header) AppendTo(dst []byte) []byte {
	return appendHeader(dst, h, binary.BigEndian)
}

// Validate checks h against the RFC 6455 rules the codec deliberately leaves
// to its caller. Read and Write never call it.
func (h Header) Validate() error {
	if h.Opcode.IsReserved() {
		return fmt.Errorf("%w: 0x%X", ErrInvalidOpcode, byte(h.Opcode))
	}
	if h.Rsv1 || h.Rsv2 || h.Rsv3 {
		return ErrReservedBits
	}
	if h.Opcode.IsControl() {
		if !h.Fin {
			return ErrControlFragmented
		}
		if h.Length > maxControlPayload {
			return ErrControlTooLarge
		}
	}
	// RFC 6455 Section 5.2: Most significant bit must be 0.
	if h.Length&(1<<63) != 0 {
		return fmt.Errorf("%w: 64-bit length has most significant bit set", ErrProtocolError)
	}
	return nil
}

// parseHeader reads one header from the front of buf.
//
// ok is false when buf is shorter than any fixed-size field the header
// announces; nothing is consumed in that case.
func parseHeader(buf []byte, order wireOrder) (h Header, n int, ok bool) {
	if len(buf) < baseHeaderSize {
		return Header{}, 0, false
	}

	// Byte 0: FIN(1) RSV(3) Opcode(4)
	// Byte 1: MASK(1) PayloadLen(7)
	h = Header{
		Fin:    buf[0]&finBit != 0,
		Rsv1:   buf[0]&rsv1Bit != 0,
		Rsv2:   buf[0]&rsv2Bit != 0,
		Rsv3:   buf[0]&rsv3Bit != 0,
		Opcode: Opcode(buf[0] & opcodeBit),
		Masked: buf[1]&maskBit != 0,
		Length: uint64(buf[1] & lenBits),
	}
	n = baseHeaderSize

	switch h.Length {
	case payloadLen16Bit:
		if len(buf)-n < 2 {
			return Header{}, 0, false
		}
		h.Length = uint64(order.Uint16(buf[n:]))
		n += 2
	case payloadLen64Bit:
		if len(buf)-n < 8 {
			return Header{}, 0, false
		}
		h.Length = order.Uint64(buf[n:])
		n += 8
	}

	if h.Masked {
		if len(buf)-n < maskKeySize {
			return Header{}, 0, false
		}
		copy(h.Mask[:], buf[n:n+maskKeySize])
		n += maskKeySize
	}

	return h, n, true
}

// appendHeader appends the wire form of h to dst.
func appendHeader(dst []byte, h Header, order wireOrder) []byte {
	var b0, b1 byte
	if h.Fin {
		b0 |= finBit
	}
	if h.Rsv1 {
		b0 |= rsv1Bit
	}
	if h.Rsv2 {
		b0 |= rsv2Bit
	}
	if h.Rsv3 {
		b0 |= rsv3Bit
	}
	b0 |= byte(h.Opcode) & opcodeBit

	if h.Masked {
		b1 |= maskBit
	}

	switch {
	case h.Length <= payloadLen7Bit:
		dst = append(dst, b0, b1|byte(h.Length))
	case h.Length <= 0xFFFF:
		dst = append(dst, b0, b1|payloadLen16Bit)
		dst = order.AppendUint16(dst, uint16(h.Length))
	default:
		dst = append(dst, b0, b1|payloadLen64Bit)
		dst = order.AppendUint64(dst, h.Length)
	}

	if h.Masked {
		dst = append(dst, h.Mask[:]...)
	}
	return dst
}
