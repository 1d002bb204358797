// Package websocket implements the RFC 6455 Section 5 framing codec.
//
// The codec is a pure buffer transform. It never touches the network:
//   - Read consumes wire bytes from the front of an input buffer and appends
//     one reassembled message to an output buffer
//   - Write splits a message into (optionally masked) frames and appends
//     them to an output buffer
//
// Handshake, keepalive, extensions and connection lifecycle belong to the
// caller. A failed call never modifies the buffers it was given.
//
// RFC Reference: https://datatracker.ietf.org/doc/html/rfc6455
package websocket

import "fmt"

// Opcode is the 4-bit frame operation code (RFC 6455 Section 5.2).
//
// Opcodes 0x0-0x2 are data frames, 0x8-0xA are control frames.
// Opcodes 0x3-0x7 and 0xB-0xF are reserved for future use.
type Opcode byte

const (
	// OpcodeContinuation indicates a continuation frame (RFC 6455 Section 5.4).
	// Used for fragmented messages where FIN=0 in previous frame.
	OpcodeContinuation Opcode = 0x0

	// OpcodeText indicates a text data frame (RFC 6455 Section 5.6).
	OpcodeText Opcode = 0x1

	// OpcodeBinary indicates a binary data frame (RFC 6455 Section 5.6).
	OpcodeBinary Opcode = 0x2

	// OpcodeClose indicates a close control frame (RFC 6455 Section 5.5.1).
	OpcodeClose Opcode = 0x8

	// OpcodePing indicates a ping control frame (RFC 6455 Section 5.5.2).
	OpcodePing Opcode = 0x9

	// OpcodePong indicates a pong control frame (RFC 6455 Section 5.5.3).
	OpcodePong Opcode = 0xA
)

// IsControl returns true if the opcode is a control frame (0x8-0xF).
//
// RFC 6455 Section 5.5: Control frames are identified by opcodes where
// the most significant bit of the opcode is 1.
func (o Opcode) IsControl() bool {
	return o&0x08 != 0
}

// IsData returns true if the opcode is a data frame (0x0-0x2).
func (o Opcode) IsData() bool {
	return o == OpcodeContinuation ||
		o == OpcodeText ||
		o == OpcodeBinary
}

// IsReserved returns true for opcodes RFC 6455 leaves undefined
// (0x3-0x7 and 0xB-0xF). The decoder passes them through untouched.
func (o Opcode) IsReserved() bool {
	switch o {
	case OpcodeContinuation, OpcodeText, OpcodeBinary,
		OpcodeClose, OpcodePing, OpcodePong:
		return false
	default:
		return true
	}
}

// String returns the opcode name, or its hex value when reserved.
func (o Opcode) String() string {
	switch o {
	case OpcodeContinuation:
		return "Continuation"
	case OpcodeText:
		return "Text"
	case OpcodeBinary:
		return "Binary"
	case OpcodeClose:
		return "Close"
	case OpcodePing:
		return "Ping"
	case OpcodePong:
		return "Pong"
	default:
		return fmt.Sprintf("Reserved(0x%X)", byte(o))
	}
}

// outgoing maps an application-supplied opcode to the opcode of the first
// frame Write emits. Anything that cannot start a message becomes binary.
func (o Opcode) outgoing() Opcode {
	switch o {
	case OpcodeText, OpcodeBinary, OpcodeClose, OpcodePing, OpcodePong:
		return o
	default:
		return OpcodeBinary
	}
}
