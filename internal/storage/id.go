package storage

import (
	"math/rand/v2"
	"time"
)

const (
	// IDLength is the number of symbols in a row id.
	IDLength = 12

	idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

	DefaultMaxIDAttempts = 8
)

// IDGenerator produces candidate row ids. Uniqueness within a table is
// enforced by the caller.
type IDGenerator interface {
	NewID() string
}

type randomIDGenerator struct {
	r *rand.Rand
}

// NewIDGenerator returns a generator seeded with the current time in
// milliseconds, drawing IDLength symbols uniformly from [0-9a-z].
func NewIDGenerator() IDGenerator {
	return NewSeededIDGenerator(uint64(time.Now().UnixMilli()))
}

// NewSeededIDGenerator returns a deterministic generator.
func NewSeededIDGenerator(seed uint64) IDGenerator {
	return &randomIDGenerator{r: rand.New(rand.NewPCG(seed, seed))}
}

func (g *randomIDGenerator) NewID() string {
	b := make([]byte, IDLength)
	for i := range b {
		b[i] = idAlphabet[g.r.IntN(len(idAlphabet))]
	}
	return string(b)
}
