package websocket

import (
	"encoding/binary"
	"fmt"
	"unicode/utf8"
)

// Message is one reassembled application message.
type Message struct {
	// Opcode is the opcode of the message's first frame.
	Opcode Opcode

	// Payload is the unmasked, concatenated frame payload.
	Payload []byte
}

// IsControl reports whether the message is a close, ping or pong
// (or a reserved control opcode).
func (m Message) IsControl() bool {
	return m.Opcode.IsControl()
}

// CloseCode represents WebSocket close status codes (RFC 6455 Section 7.4).
//
// Close frames MAY contain a status code indicating the reason for closure.
// Status codes 1000-4999 are defined by the WebSocket protocol.
type CloseCode int

const (
	// CloseNormalClosure indicates normal closure (1000).
	CloseNormalClosure CloseCode = 1000

	// CloseGoingAway indicates endpoint going away (1001).
	CloseGoingAway CloseCode = 1001

	// CloseProtocolError indicates protocol error (1002).
	CloseProtocolError CloseCode = 1002

	// CloseUnsupportedData indicates unsupported data type (1003).
	CloseUnsupportedData CloseCode = 1003

	// 1004 is reserved and MUST NOT be used.

	// CloseNoStatusReceived indicates no status code was received (1005).
	// Reserved: MUST NOT be set in a close frame.
	CloseNoStatusReceived CloseCode = 1005

	// CloseAbnormalClosure indicates abnormal closure (1006).
	// Reserved: MUST NOT be set in a close frame.
	CloseAbnormalClosure CloseCode = 1006

	// CloseInvalidFramePayloadData indicates invalid frame payload (1007).
	CloseInvalidFramePayloadData CloseCode = 1007

	// ClosePolicyViolation indicates policy violation (1008).
	ClosePolicyViolation CloseCode = 1008

	// CloseMessageTooBig indicates message too large (1009).
	CloseMessageTooBig CloseCode = 1009

	// CloseMandatoryExtension indicates missing extension (1010).
	CloseMandatoryExtension CloseCode = 1010

	// CloseInternalServerErr indicates internal server error (1011).
	CloseInternalServerErr CloseCode = 1011

	// CloseServiceRestart indicates service restart (1012).
	CloseServiceRestart CloseCode = 1012

	// CloseTryAgainLater indicates try again later (1013).
	CloseTryAgainLater CloseCode = 1013

	// 1014 is reserved and MUST NOT be used.

	// CloseTLSHandshake indicates TLS handshake failure (1015).
	// Reserved: MUST NOT be set in a close frame.
	CloseTLSHandshake CloseCode = 1015
)

// String returns string representation of close code.
//
//nolint:cyclop // 14 close codes per RFC 6455
func (cc CloseCode) String() string {
	switch cc {
	case CloseNormalClosure:
		return "Normal Closure"
	case CloseGoingAway:
		return "Going Away"
	case CloseProtocolError:
		return "Protocol Error"
	case CloseUnsupportedData:
		return "Unsupported Data"
	case CloseNoStatusReceived:
		return "No Status Received"
	case CloseAbnormalClosure:
		return "Abnormal Closure"
	case CloseInvalidFramePayloadData:
		return "Invalid Frame Payload Data"
	case ClosePolicyViolation:
		return "Policy Violation"
	case CloseMessageTooBig:
		return "Message Too Big"
	case CloseMandatoryExtension:
		return "Mandatory Extension"
	case CloseInternalServerErr:
		return "Internal Server Error"
	case CloseServiceRestart:
		return "Service Restart"
	case CloseTryAgainLater:
		return "Try Again Later"
	case CloseTLSHandshake:
		return "TLS Handshake"
	default:
		return "Unknown"
	}
}

// sendable reports whether the code may appear in a close frame.
func (cc CloseCode) sendable() bool {
	switch cc {
	case CloseNoStatusReceived, CloseAbnormalClosure, CloseTLSHandshake:
		return false
	}
	return cc >= 1000 && cc <= 4999 && cc != 1004 && cc != 1014
}

// FormatClose builds a close frame body: the status code as a 2-byte
// big-endian integer followed by the UTF-8 reason.
//
// RFC 6455 Section 5.5.1. The body must fit in a control frame (125 bytes),
// which leaves 123 bytes for the reason. Pass the result to Write with
// OpcodeClose.
func FormatClose(code CloseCode, reason string) ([]byte, error) {
	if !code.sendable() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCloseCode, int(code))
	}
	if !utf8.ValidString(reason) {
		return nil, ErrInvalidUTF8
	}
	if 2+len(reason) > maxControlPayload {
		return nil, ErrControlTooLarge
	}

	payload := make([]byte, 2, 2+len(reason))
	binary.BigEndian.PutUint16(payload, uint16(code))
	return append(payload, reason...), nil
}

// ParseClose decodes a close frame body produced by a peer.
//
// An empty body yields CloseNoStatusReceived. A 1-byte body, an unsendable
// code or a reason that is not UTF-8 is a protocol error.
func ParseClose(payload []byte) (CloseCode, string, error) {
	switch {
	case len(payload) == 0:
		return CloseNoStatusReceived, "", nil
	case len(payload) == 1:
		return 0, "", fmt.Errorf("%w: 1-byte close payload", ErrProtocolError)
	case len(payload) > maxControlPayload:
		return 0, "", ErrControlTooLarge
	}

	code := CloseCode(binary.BigEndian.Uint16(payload))
	if !code.sendable() {
		return 0, "", fmt.Errorf("%w: %d", ErrInvalidCloseCode, int(code))
	}
	reason := payload[2:]
	if !utf8.Valid(reason) {
		return 0, "", ErrInvalidUTF8
	}
	return code, string(reason), nil
}
