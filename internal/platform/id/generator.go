package id

import (
	"crypto/rand"
	"encoding/hex"
	"strconv"
	"sync/atomic"
	"time"
)

const maxInboundLength = 64

// Generator creates opaque request identifiers.
type Generator interface {
	NewID() string
}

// RandomGenerator returns 32 hex characters per id. If the entropy source
// fails it degrades to a clock and counter based id.
type RandomGenerator struct {
	fallback atomic.Uint64
	read     func([]byte) (int, error)
}

func NewRandomGenerator() *RandomGenerator {
	return &RandomGenerator{read: rand.Read}
}

func (g *RandomGenerator) NewID() string {
	buf := make([]byte, 16)
	if _, err := g.read(buf); err != nil {
		seq := g.fallback.Add(1)
		return strconv.FormatInt(time.Now().UnixNano(), 36) + "-" + strconv.FormatUint(seq, 36)
	}
	return hex.EncodeToString(buf)
}

// Valid reports whether an id supplied by a client is safe to echo back
// in headers and logs.
func Valid(value string) bool {
	if value == "" || len(value) > maxInboundLength {
		return false
	}
	for _, r := range value {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
		default:
			return false
		}
	}
	return true
}
