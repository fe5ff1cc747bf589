package random

import (
	"crypto/rand"
	"math/big"

	"github.com/google/uuid"
)

// Random is the source of dice rolls and identifiers. Tests swap in a
// queued mock so every roll is known in advance.
type Random interface {
	// Intn returns a random int in [0, n)
	Intn(n int) int

	// UUID returns a new random identifier
	UUID() string
}

// CryptoRandom implements Random using crypto/rand
type CryptoRandom struct{}

// New creates a new CryptoRandom
func New() *CryptoRandom {
	return &CryptoRandom{}
}

// Intn returns a uniformly distributed int in [0, n), or 0 when n <= 0
func (r *CryptoRandom) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	result, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0
	}
	return int(result.Int64())
}

// UUID returns a version 4 UUID string
func (r *CryptoRandom) UUID() string {
	return uuid.NewString()
}
