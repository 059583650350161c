package id

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// Generator creates opaque IDs suitable for external references.
type Generator interface {
	NewID() (string, error)
}

// CodeGenerator creates short human-typeable codes over a fixed alphabet.
type CodeGenerator interface {
	NewCode(alphabet string, length int) (string, error)
}

type RandomGenerator struct{}

func NewRandomGenerator() *RandomGenerator {
	return &RandomGenerator{}
}

func (g *RandomGenerator) NewID() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}

	return hex.EncodeToString(buf), nil
}

// NewCode draws each symbol independently. The alphabet length must divide
// 256 for the draw to stay uniform; 32-symbol alphabets do.
func (g *RandomGenerator) NewCode(alphabet string, length int) (string, error) {
	if alphabet == "" {
		return "", fmt.Errorf("code alphabet is required")
	}
	if length <= 0 {
		return "", fmt.Errorf("code length must be > 0")
	}

	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes for code: %w", err)
	}

	out := make([]byte, length)
	for i, b := range buf {
		out[i] = alphabet[int(b)%len(alphabet)]
	}
	return string(out), nil
}
