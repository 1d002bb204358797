package websocket

import (
	"errors"
	"sync"

	"github.com/eapache/queue"
)

// Stream decodes messages incrementally from an arbitrarily chunked byte
// stream.
//
// Bytes are fed in with Write as they arrive from the transport; every
// message completed by those bytes is queued and handed out by Next in
// arrival order. Partial frames stay buffered until the rest arrives.
//
// Example Usage:
//
//	s := websocket.NewStream(nil)
//	for {
//	    n, err := conn.Read(buf)
//	    if err != nil {
//	        return err
//	    }
//	    if _, err := s.Write(buf[:n]); err != nil {
//	        return err
//	    }
//	    for msg, ok := s.Next(); ok; msg, ok = s.Next() {
//	        handle(msg)
//	    }
//	}
//
// Stream is safe for concurrent use.
type Stream struct {
	codec *Codec

	mu      sync.Mutex
	in      []byte       // Undecoded wire bytes
	pending *queue.Queue // Decoded Messages awaiting Next
}

// NewStream creates a Stream decoding with codec. nil codec uses the
// package defaults.
func NewStream(codec *Codec) *Stream {
	if codec == nil {
		codec = defaultCodec
	}
	return &Stream{
		codec:   codec,
		pending: queue.New(),
	}
}

// Write appends wire bytes and decodes every message they complete.
//
// Implements io.Writer. It always accepts all of p unless the internal
// buffer would exceed the codec's MaxBufferSize, in which case nothing is
// accepted and ErrBufferFull is returned.
func (s *Stream) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.codec.fits(len(s.in), len(p)) {
		return 0, ErrBufferFull
	}
	s.in = append(s.in, p...)

	for len(s.in) > 0 {
		var payload []byte
		opcode, err := s.codec.Read(&s.in, &payload)
		if errors.Is(err, ErrIncomplete) {
			break
		}
		if err != nil {
			return len(p), err
		}
		s.pending.Add(Message{Opcode: opcode, Payload: payload})
	}
	return len(p), nil
}

// Next pops the oldest decoded message. ok is false when none is pending.
func (s *Stream) Next() (msg Message, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending.Length() == 0 {
		return Message{}, false
	}
	return s.pending.Remove().(Message), true
}

// Pending returns the number of decoded messages waiting for Next.
func (s *Stream) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending.Length()
}

// Buffered returns the number of wire bytes not yet forming a whole message.
func (s *Stream) Buffered() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.in)
}
