package websocket

import (
	"bytes"
	"errors"
	"fmt"
	"runtime"
	"testing"
)

// encodeAll writes msgs into one wire buffer with c.
func encodeAll(t *testing.T, c *Codec, msgs []Message) []byte {
	t.Helper()

	var wire []byte
	for _, m := range msgs {
		payload := append([]byte(nil), m.Payload...)
		if err := c.Write(&payload, &wire, m.Opcode); err != nil {
			t.Fatalf("Write failed: %v", err)
		}
	}
	return wire
}

func TestStream_WholeBuffer(t *testing.T) {
	c := NewCodec(&Options{MaxPayload: 4})
	msgs := []Message{
		{Opcode: OpcodeText, Payload: []byte("first message")},
		{Opcode: OpcodePing, Payload: nil},
		{Opcode: OpcodeBinary, Payload: []byte{0, 1, 2, 3, 4, 5, 6, 7, 8}},
	}

	s := NewStream(c)
	n, err := s.Write(encodeAll(t, c, msgs))
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if n == 0 {
		t.Fatal("expected bytes accepted")
	}
	if s.Pending() != len(msgs) {
		t.Fatalf("expected %d pending, got %d", len(msgs), s.Pending())
	}
	if s.Buffered() != 0 {
		t.Errorf("expected no buffered bytes, got %d", s.Buffered())
	}

	for i, want := range msgs {
		got, ok := s.Next()
		if !ok {
			t.Fatalf("message %d: queue empty", i)
		}
		if got.Opcode != want.Opcode || !bytes.Equal(got.Payload, want.Payload) {
			t.Errorf("message %d: expected %v %q, got %v %q", i, want.Opcode, want.Payload, got.Opcode, got.Payload)
		}
	}

	if _, ok := s.Next(); ok {
		t.Error("expected empty queue")
	}
}

// TestStream_ByteAtATime feeds the wire one byte per Write.
func TestStream_ByteAtATime(t *testing.T) {
	c := NewCodec(&Options{MaxPayload: 3})
	msgs := []Message{
		{Opcode: OpcodeText, Payload: []byte("hello")},
		{Opcode: OpcodeBinary, Payload: bytes.Repeat([]byte{0xEE}, 200)},
		{Opcode: OpcodeClose, Payload: []byte{0x03, 0xE8}},
	}
	wire := encodeAll(t, c, msgs)

	s := NewStream(c)
	var got []Message
	for i := range wire {
		if _, err := s.Write(wire[i : i+1]); err != nil {
			t.Fatalf("byte %d: %v", i, err)
		}
		for m, ok := s.Next(); ok; m, ok = s.Next() {
			got = append(got, m)
		}
		if i < len(wire)-1 && len(got) == len(msgs) {
			t.Fatalf("all messages decoded before the last byte (at %d)", i)
		}
	}

	if len(got) != len(msgs) {
		t.Fatalf("expected %d messages, got %d", len(msgs), len(got))
	}
	for i := range msgs {
		if got[i].Opcode != msgs[i].Opcode || !bytes.Equal(got[i].Payload, msgs[i].Payload) {
			t.Errorf("message %d mismatch", i)
		}
	}
}

func TestStream_PartialFrameBuffered(t *testing.T) {
	s := NewStream(nil)

	if _, err := s.Write([]byte{0x81, 0x05, 'H', 'e'}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if s.Pending() != 0 || s.Buffered() != 4 {
		t.Fatalf("expected 0 pending / 4 buffered, got %d / %d", s.Pending(), s.Buffered())
	}

	if _, err := s.Write([]byte{'l', 'l', 'o', 0x89}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if s.Pending() != 1 || s.Buffered() != 1 {
		t.Fatalf("expected 1 pending / 1 buffered, got %d / %d", s.Pending(), s.Buffered())
	}

	m, _ := s.Next()
	if m.Opcode != OpcodeText || string(m.Payload) != "Hello" {
		t.Errorf("unexpected message %v %q", m.Opcode, m.Payload)
	}
}

func TestStream_BufferFull(t *testing.T) {
	s := NewStream(NewCodec(&Options{MaxBufferSize: 4}))

	if _, err := s.Write([]byte{0x81, 0x05, 'H'}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	n, err := s.Write([]byte{'e', 'l'})
	if !errors.Is(err, ErrBufferFull) {
		t.Fatalf("expected ErrBufferFull, got %v", err)
	}
	if n != 0 || s.Buffered() != 3 {
		t.Errorf("expected nothing accepted, n=%d buffered=%d", n, s.Buffered())
	}
}

// TestStream_Concurrent runs a producer and a consumer on separate goroutines.
func TestStream_Concurrent(t *testing.T) {
	const count = 200

	c := NewCodec(&Options{MaxPayload: 5})
	var msgs []Message
	for i := 0; i < count; i++ {
		msgs = append(msgs, Message{Opcode: OpcodeText, Payload: []byte(fmt.Sprintf("message-%03d", i))})
	}
	wire := encodeAll(t, c, msgs)

	s := NewStream(c)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for len(wire) > 0 {
			n := min(7, len(wire))
			if _, err := s.Write(wire[:n]); err != nil {
				t.Errorf("Write failed: %v", err)
				return
			}
			wire = wire[n:]
		}
	}()

	received := 0
	for received < count {
		m, ok := s.Next()
		if !ok {
			select {
			case <-done:
				if s.Pending() == 0 {
					t.Fatalf("producer finished after %d messages", received)
				}
			default:
				runtime.Gosched()
			}
			continue
		}
		if string(m.Payload) != fmt.Sprintf("message-%03d", received) {
			t.Fatalf("out of order: got %q at %d", m.Payload, received)
		}
		received++
	}
	<-done
}
