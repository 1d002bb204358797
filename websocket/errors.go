package websocket

import "errors"

// Codec outcomes. Read and Write never return any other error.

var (
	// ErrIncomplete indicates the input does not yet hold a complete message.
	//
	// Not a failure: the caller appends more wire bytes and calls Read again.
	// The input buffer is left exactly as it was.
	ErrIncomplete = errors.New("websocket: incomplete frame data")

	// ErrBufferFull indicates the destination buffer cannot grow by the
	// amount required (see Options.MaxBufferSize).
	//
	// Definitive for this call; both buffers are left exactly as they were.
	ErrBufferFull = errors.New("websocket: destination buffer full")
)

// Protocol error types defined by RFC 6455 Section 7.4.1.
//
// The codec itself does not validate frames. These are reported by
// Header.Validate and ParseClose for callers that do.

var (
	// ErrProtocolError indicates a violation of the WebSocket protocol.
	// RFC 6455 Section 7.4.1: Status code 1002.
	ErrProtocolError = errors.New("websocket: protocol error")

	// ErrInvalidUTF8 indicates text data contains invalid UTF-8.
	// RFC 6455 Section 8.1. Status code 1007.
	ErrInvalidUTF8 = errors.New("websocket: invalid UTF-8 in text frame")

	// ErrReservedBits indicates RSV1/RSV2/RSV3 bits are set.
	// RFC 6455 Section 5.2: Reserved bits must be 0 unless extension negotiated.
	ErrReservedBits = errors.New("websocket: reserved bits must be 0")

	// ErrInvalidOpcode indicates an unknown or reserved opcode.
	// RFC 6455 Section 5.2: Opcodes 0x3-0x7 and 0xB-0xF are reserved.
	ErrInvalidOpcode = errors.New("websocket: invalid opcode")

	// ErrControlFragmented indicates a control frame with FIN=0.
	// RFC 6455 Section 5.5: Control frames must NOT be fragmented.
	ErrControlFragmented = errors.New("websocket: control frame must not be fragmented")

	// ErrControlTooLarge indicates control frame payload > 125 bytes.
	// RFC 6455 Section 5.5: Control frame payload length must be <= 125.
	ErrControlTooLarge = errors.New("websocket: control frame payload too large")

	// ErrInvalidCloseCode indicates a close code that must not appear on the wire.
	// RFC 6455 Section 7.4.1: 1005, 1006 and 1015 are reserved for local use.
	ErrInvalidCloseCode = errors.New("websocket: invalid close code")
)
