package websocket

import (
	"encoding/binary"

	"golang.org/x/sys/cpu"
)

// LengthOrder selects the byte order of the 16-bit and 64-bit extended
// payload length fields.
type LengthOrder int

const (
	// NetworkOrder writes extended lengths big-endian, as RFC 6455 Section 5.2
	// requires. This is the default.
	NetworkOrder LengthOrder = iota

	// HostOrder writes extended lengths in the byte order of the running CPU.
	//
	// Frames produced this way only interoperate with standard peers on
	// big-endian hosts, where HostOrder and NetworkOrder are identical. Use it
	// to exchange frames with legacy endpoints that copy the length field
	// without conversion.
	HostOrder
)

// String returns the order name.
func (o LengthOrder) String() string {
	switch o {
	case NetworkOrder:
		return "network"
	case HostOrder:
		return "host"
	default:
		return "unknown"
	}
}

// wireOrder reads and appends extended length fields.
type wireOrder interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

func (o LengthOrder) byteOrder() wireOrder {
	if o == HostOrder && !cpu.IsBigEndian {
		return binary.LittleEndian
	}
	return binary.BigEndian
}
