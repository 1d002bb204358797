package websocket

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/bits"
	"math/rand/v2"
	"sync"
)

// applyMask applies the WebSocket masking algorithm to data.
//
// RFC 6455 Section 5.3: Client-to-Server Masking.
//
//	transformed-octet-i = original-octet-i XOR masking-key-octet-j
//	where j = (pos + i) MOD 4
//
// XOR is its own inverse, so the same call masks and unmasks. data is
// modified in place. Returns the key position following the last byte.
func applyMask(data []byte, key [4]byte, pos int) int {
	if len(data) < 8 {
		for i := range data {
			data[i] ^= key[pos&3]
			pos++
		}
		return pos & 3
	}

	// Whole 64-bit words first. Rotating the doubled key aligns byte i of
	// each word with key[(pos+i)&3]; a multiple of 8 leaves pos unchanged.
	key64 := uint64(binary.LittleEndian.Uint32(key[:]))
	key64 |= key64 << 32
	key64 = bits.RotateLeft64(key64, -8*(pos&3))

	i := 0
	for ; len(data)-i >= 8; i += 8 {
		binary.LittleEndian.PutUint64(data[i:], binary.LittleEndian.Uint64(data[i:])^key64)
	}
	for ; i < len(data); i++ {
		data[i] ^= key[pos&3]
		pos++
	}
	return pos & 3
}

// KeySource supplies masking keys to Write.
//
// Implementations must be safe for concurrent use: one Codec may be shared
// by many writers.
type KeySource interface {
	MaskKey() [4]byte
}

// lockedKeySource is the process-wide default KeySource: a ChaCha8 stream
// seeded from crypto/rand on first use. mu guards rng.
type lockedKeySource struct {
	once sync.Once
	mu   sync.Mutex
	rng  *rand.Rand
}

var defaultKeySource = &lockedKeySource{}

func (s *lockedKeySource) setup() {
	var seed [32]byte
	if _, err := crand.Read(seed[:]); err != nil {
		// Fall back to the runtime-seeded global source.
		binary.LittleEndian.PutUint64(seed[0:], rand.Uint64())
		binary.LittleEndian.PutUint64(seed[8:], rand.Uint64())
		binary.LittleEndian.PutUint64(seed[16:], rand.Uint64())
		binary.LittleEndian.PutUint64(seed[24:], rand.Uint64())
	}
	s.rng = rand.New(rand.NewChaCha8(seed))
}

// MaskKey returns four fresh pseudo-random bytes.
func (s *lockedKeySource) MaskKey() [4]byte {
	s.once.Do(s.setup)

	s.mu.Lock()
	v := s.rng.Uint32()
	s.mu.Unlock()

	var key [4]byte
	binary.LittleEndian.PutUint32(key[:], v)
	return key
}
